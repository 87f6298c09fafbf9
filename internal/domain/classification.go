package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Label is the judge's relevance verdict for one document.
type Label string

// Relevance labels, strongest first.
const (
	LabelSmokingGun Label = "smoking_gun"
	LabelStrong     Label = "strong"
	LabelRelated    Label = "related"
	LabelIrrelevant Label = "irrelevant"
)

// Tier returns the ordinal rank of the label. Unknown labels rank with
// irrelevant so malformed judge output sorts to the bottom.
func (l Label) Tier() int {
	switch l {
	case LabelSmokingGun:
		return 3
	case LabelStrong:
		return 2
	case LabelRelated:
		return 1
	default:
		return 0
	}
}

// Confidence is a [0,1] float that tolerates judge output quirks: numbers,
// numeric strings, and anything unparseable (which decodes to 0).
type Confidence float64

// UnmarshalJSON accepts a JSON number or a numeric string; everything else
// yields 0 without error.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = Confidence(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*c = Confidence(f)
			return nil
		}
	}
	*c = 0
	return nil
}

// FacetKind discriminates the value forms a judge may emit for a facet.
type FacetKind int

// Facet value kinds.
const (
	FacetAbsent FacetKind = iota
	FacetBool
	FacetNumber
	FacetString
	FacetList
)

// FacetValue is a tagged value for judge facet fields, which arrive as
// booleans, numbers, strings, or string lists interchangeably.
type FacetValue struct {
	kind FacetKind
	b    bool
	n    float64
	s    string
	list []string
}

// BoolFacet creates a boolean facet value.
func BoolFacet(v bool) FacetValue { return FacetValue{kind: FacetBool, b: v} }

// StringFacet creates a string facet value.
func StringFacet(v string) FacetValue { return FacetValue{kind: FacetString, s: v} }

// ListFacet creates a list facet value.
func ListFacet(v ...string) FacetValue { return FacetValue{kind: FacetList, list: v} }

// Kind returns the value form.
func (v FacetValue) Kind() FacetKind { return v.kind }

// Truthy applies the flag rule: booleans as-is, non-zero numbers true,
// strings true only for "true"/"yes"/"y"/"1" (case-insensitive, trimmed),
// lists true when non-empty, absent false.
func (v FacetValue) Truthy() bool {
	switch v.kind {
	case FacetBool:
		return v.b
	case FacetNumber:
		return v.n != 0
	case FacetString:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "true", "yes", "y", "1":
			return true
		}
		return false
	case FacetList:
		return len(v.list) > 0
	default:
		return false
	}
}

// Text renders the value for substring matching: strings as-is, lists joined
// with spaces, booleans and numbers in their JSON form.
func (v FacetValue) Text() string {
	switch v.kind {
	case FacetString:
		return v.s
	case FacetList:
		return strings.Join(v.list, " ")
	case FacetBool:
		return strconv.FormatBool(v.b)
	case FacetNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON renders the value back in its original form.
func (v FacetValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case FacetBool:
		return json.Marshal(v.b)
	case FacetNumber:
		return json.Marshal(v.n)
	case FacetString:
		return json.Marshal(v.s)
	case FacetList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes whichever form the judge produced. Unrecognized
// forms (objects, mixed lists) collapse to their string rendering so a
// sloppy facet never fails the whole classification entry.
func (v *FacetValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = FacetValue{kind: FacetBool, b: b}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = FacetValue{kind: FacetNumber, n: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FacetValue{kind: FacetString, s: s}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		list := make([]string, 0, len(raw))
		for _, item := range raw {
			var el string
			if json.Unmarshal(item, &el) != nil {
				el = string(item)
			}
			list = append(list, el)
		}
		*v = FacetValue{kind: FacetList, list: list}
		return nil
	}
	*v = FacetValue{kind: FacetString, s: string(data)}
	return nil
}

// Facets maps facet names to their tagged values.
type Facets map[string]FacetValue

// Flag reports the truthiness of a named facet; absent facets are false.
func (f Facets) Flag(name string) bool { return f[name].Truthy() }

// Text returns the string rendering of a named facet.
func (f Facets) Text(name string) string { return f[name].Text() }

// ClassificationResult is the judge's verdict for one document.
// Evidence and Reasons are passed through unmodified.
type ClassificationResult struct {
	Label      Label           `json:"label"`
	Confidence Confidence      `json:"confidence"`
	Facets     Facets          `json:"facets,omitempty"`
	Evidence   json.RawMessage `json:"evidence,omitempty"`
	Reasons    json.RawMessage `json:"reasons,omitempty"`
}

// Normalize applies wire defaults: a missing label becomes irrelevant.
func (c *ClassificationResult) Normalize() {
	if c.Label == "" {
		c.Label = LabelIrrelevant
	}
}
