package retrieval

import (
	"context"

	"github.com/archivelabs/docsift/internal/domain"
)

// Backend is the paginated search backend contract. A non-empty cursor
// selects cursorMark paging; otherwise start is a numeric offset. The
// returned token is empty under offset paging and repeats the request token
// at true end of results.
type Backend interface {
	FetchPage(
		ctx context.Context, terms string, filters []string, sort string, start int, cursor string,
	) ([]domain.Document, string, error)
	PageSize() int
}

// Admitter is the document table the retrieval loop feeds.
type Admitter interface {
	Admit(doc domain.Document, strategyTerms string) bool
	FillMissingBodies(ctx context.Context)
}
