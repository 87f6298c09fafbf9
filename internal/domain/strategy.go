package domain

// SearchStrategy is one generated backend query: search terms plus optional
// field filters. Rationale is informational only and never sent to the
// backend.
type SearchStrategy struct {
	SearchTerms string            `json:"search_terms"`
	Filters     map[string]string `json:"filters,omitempty"`
	Rationale   string            `json:"rationale,omitempty"`
}
