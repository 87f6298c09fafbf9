package solr

import "encoding/json"

// hit is one raw backend record, reduced to the metadata the pipeline
// consumes. Field decoding prefers the modern names and falls back to the
// legacy short names ("ti", "dt", "dd", "bn").
type hit struct {
	ID    string
	Title string
	Type  string
	Date  string
	Bates string
}

// flexString decodes a field that may arrive as a string, a number, or a
// multivalued array (first element wins).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			*f = ""
			return nil
		}
		var el flexString
		if err := json.Unmarshal(list[0], &el); err != nil {
			return err
		}
		*f = el
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// UnmarshalJSON decodes a backend record with legacy-name fallback.
func (h *hit) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      flexString `json:"id"`
		Title   flexString `json:"title"`
		TI      flexString `json:"ti"`
		Type    flexString `json:"type"`
		DT      flexString `json:"dt"`
		DateISO flexString `json:"documentdateiso"`
		DD      flexString `json:"dd"`
		Bates   flexString `json:"bates"`
		BN      flexString `json:"bn"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	h.ID = string(raw.ID)
	h.Title = firstNonEmpty(string(raw.Title), string(raw.TI))
	h.Type = firstNonEmpty(string(raw.Type), string(raw.DT))
	h.Date = firstNonEmpty(string(raw.DateISO), string(raw.DD))
	h.Bates = firstNonEmpty(string(raw.Bates), string(raw.BN))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
