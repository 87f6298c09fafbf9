// Package rank turns the classification map into one deterministic,
// deduplicated document ordering: tiered label/confidence/facet scoring,
// a title-frequency tie-break within confidence bands, then a sequential
// near-duplicate collapse over content fingerprints.
package rank

import (
	"math"
	"sort"
	"strings"

	"github.com/archivelabs/docsift/internal/domain"
)

// Facet boost increments (tie-break signal only, never tier-crossing).
const (
	boostDirective = 0.05
	boostBudget    = 0.05
	boostDate      = 0.02
	boostBrands    = 0.02
	boostDocType   = 0.03
)

// preferredDocTypes are the doc_type facet values that earn boostDocType.
var preferredDocTypes = []string{"brand plan", "memo", "budget", "marketing document"}

// Corpus is the document table view the engine ranks against.
type Corpus interface {
	Get(id string) (domain.Document, bool)
	TitleFrequency(id string) int
}

// Engine orders classified documents.
type Engine struct {
	corpus Corpus
}

// New creates a ranking engine over the given corpus.
func New(corpus Corpus) *Engine {
	return &Engine{corpus: corpus}
}

// sortKey is the primary per-document ordering key, compared descending.
type sortKey struct {
	tier       int
	confidence float64
	boost      float64
}

func (k sortKey) less(other sortKey) bool {
	if k.tier != other.tier {
		return k.tier < other.tier
	}
	if k.confidence != other.confidence {
		return k.confidence < other.confidence
	}
	return k.boost < other.boost
}

// Rank produces the final ordered id list for the classified documents.
func (e *Engine) Rank(analysis map[string]domain.ClassificationResult) []string {
	ordered := e.primaryOrder(analysis)
	ordered = e.frequencyTieBreak(ordered, analysis)
	return e.collapseNearDuplicates(ordered)
}

// primaryOrder sorts ids by (tier, confidence, facet boost) descending.
// Ids are pre-sorted lexicographically so the result is deterministic
// regardless of map iteration order.
func (e *Engine) primaryOrder(analysis map[string]domain.ClassificationResult) []string {
	ids := make([]string, 0, len(analysis))
	for id := range analysis {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	keys := make(map[string]sortKey, len(ids))
	for _, id := range ids {
		keys[id] = keyFor(analysis[id])
	}

	sort.SliceStable(ids, func(i, j int) bool {
		return keys[ids[j]].less(keys[ids[i]])
	})
	return ids
}

func keyFor(res domain.ClassificationResult) sortKey {
	return sortKey{
		tier:       res.Label.Tier(),
		confidence: float64(res.Confidence),
		boost:      facetBoost(res.Facets),
	}
}

func facetBoost(f domain.Facets) float64 {
	boost := 0.0
	if f.Flag("directive_language") {
		boost += boostDirective
	}
	if f.Flag("budget_numbers") {
		boost += boostBudget
	}
	if f.Flag("date_in_range") {
		boost += boostDate
	}
	if f.Flag("mentions_brands") {
		boost += boostBrands
	}
	docType := strings.ToLower(f.Text("doc_type"))
	for _, preferred := range preferredDocTypes {
		if strings.Contains(docType, preferred) {
			boost += boostDocType
			break
		}
	}
	return boost
}

// band groups documents whose tier and two-decimal confidence match.
type band struct {
	tier       int
	confidence float64
}

// frequencyTieBreak regroups the primary ordering by (tier, confidence
// band) and reorders each group by descending title frequency, stable so
// the primary order survives as the final tiebreaker. Groups concatenate in
// descending band order.
func (e *Engine) frequencyTieBreak(
	ordered []string, analysis map[string]domain.ClassificationResult,
) []string {
	groups := make(map[band][]string)
	var bands []band
	for _, id := range ordered {
		res := analysis[id]
		b := band{
			tier:       res.Label.Tier(),
			confidence: math.Round(float64(res.Confidence)*100) / 100,
		}
		if _, ok := groups[b]; !ok {
			bands = append(bands, b)
		}
		groups[b] = append(groups[b], id)
	}

	sort.Slice(bands, func(i, j int) bool {
		if bands[i].tier != bands[j].tier {
			return bands[i].tier > bands[j].tier
		}
		return bands[i].confidence > bands[j].confidence
	})

	final := make([]string, 0, len(ordered))
	for _, b := range bands {
		ids := groups[b]
		sort.SliceStable(ids, func(i, j int) bool {
			return e.corpus.TitleFrequency(ids[i]) > e.corpus.TitleFrequency(ids[j])
		})
		final = append(final, ids...)
	}
	return final
}

// collapseNearDuplicates walks the ordering, skipping documents whose
// display title was already kept or whose body fingerprint is within the
// Jaccard cutoff of any kept document. Untitled documents are exempt from
// the title check but still fingerprinted.
func (e *Engine) collapseNearDuplicates(ordered []string) []string {
	seenTitles := make(map[string]struct{})
	var kept []string
	var keptShingles []map[string]struct{}

	for _, id := range ordered {
		var title, body string
		if doc, ok := e.corpus.Get(id); ok {
			title = strings.TrimSpace(doc.Title())
			body = doc.Body()
		}

		if title != "" && title != domain.UntitledSentinel {
			if _, seen := seenTitles[title]; seen {
				continue
			}
		}

		cur := shingles(body)
		dup := false
		for _, prev := range keptShingles {
			if jaccard(cur, prev) >= duplicateCutoff {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		kept = append(kept, id)
		keptShingles = append(keptShingles, cur)
		if title != "" && title != domain.UntitledSentinel {
			seenTitles[title] = struct{}{}
		}
	}
	return kept
}
