// Package retrieval executes search strategies against the paginated
// backend and feeds the document store.
package retrieval

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
	"github.com/archivelabs/docsift/internal/metrics"
	"github.com/archivelabs/docsift/internal/transport/solr"
)

// publicOnlyFilter restricts every query to publicly available records.
const publicOnlyFilter = "availability:public"

// Service runs per-strategy paginated retrieval.
type Service struct {
	backend   Backend
	useCursor bool
	logger    *zap.Logger
}

// New creates a retrieval service.
func New(backend Backend, useCursor bool, logger *zap.Logger) *Service {
	return &Service{backend: backend, useCursor: useCursor, logger: logger}
}

// Retrieve executes every strategy, pages until targetCount raw hits are
// collected (or the backend is exhausted), trims to targetCount, and admits
// the remainder into st. A backend failure aborts only the failing
// strategy; documents admitted for earlier strategies are preserved.
// Returns the number of newly admitted documents.
func (s *Service) Retrieve(
	ctx context.Context,
	st Admitter,
	strategies []domain.SearchStrategy,
	targetCount int,
	extraFilters []string,
) int {
	admitted := 0
	for _, strat := range strategies {
		s.logger.Info("executing strategy", zap.String("terms", strat.SearchTerms))

		collected, err := s.collect(ctx, strat, targetCount, extraFilters)
		if err != nil {
			metrics.RetrievalErrorsTotal.Inc()
			s.logger.Warn("strategy retrieval failed",
				zap.String("terms", strat.SearchTerms), zap.Error(err))
			continue
		}

		if len(collected) > targetCount {
			collected = collected[:targetCount]
		}
		metrics.RetrievalDocsTotal.Add(float64(len(collected)))

		for _, doc := range collected {
			if st.Admit(doc, strat.SearchTerms) {
				admitted++
			}
		}
		st.FillMissingBodies(ctx)
	}
	return admitted
}

// collect pages one strategy until targetCount raw hits, an empty page, or
// a repeated cursor token.
func (s *Service) collect(
	ctx context.Context, strat domain.SearchStrategy, targetCount int, extraFilters []string,
) ([]domain.Document, error) {
	filters := s.buildFilters(strat, extraFilters)

	var collected []domain.Document
	if s.useCursor {
		cursor := solr.CursorStart
		for len(collected) < targetCount {
			docs, next, err := s.backend.FetchPage(
				ctx, strat.SearchTerms, filters, solr.SortRelevanceStable, 0, cursor)
			if err != nil {
				return nil, err
			}
			metrics.RetrievalPagesTotal.WithLabelValues("cursor").Inc()
			if len(docs) == 0 {
				break
			}
			collected = append(collected, docs...)
			if next == "" || next == cursor {
				break
			}
			cursor = next
		}
		return collected, nil
	}

	start := 0
	for len(collected) < targetCount {
		docs, _, err := s.backend.FetchPage(
			ctx, strat.SearchTerms, filters, solr.SortRelevance, start, "")
		if err != nil {
			return nil, err
		}
		metrics.RetrievalPagesTotal.WithLabelValues("offset").Inc()
		if len(docs) == 0 {
			break
		}
		collected = append(collected, docs...)
		start += s.backend.PageSize()
	}
	return collected, nil
}

// buildFilters combines the mandatory public filter, caller extras, and the
// strategy's own field filters (in sorted field order for determinism).
func (s *Service) buildFilters(strat domain.SearchStrategy, extraFilters []string) []string {
	filters := []string{publicOnlyFilter}
	filters = append(filters, extraFilters...)

	fields := make([]string, 0, len(strat.Filters))
	for field := range strat.Filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		filters = append(filters, solr.FilterExpr(field, strat.Filters[field]))
	}
	return filters
}
