// Package analyze orchestrates one research run: strategy generation,
// retrieval into a fresh document store, batch classification, ranking,
// and summarization of the head of the ranked list.
package analyze

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
	"github.com/archivelabs/docsift/internal/store"
	"github.com/archivelabs/docsift/internal/usecase/classify"
	"github.com/archivelabs/docsift/internal/usecase/rank"
	"github.com/archivelabs/docsift/internal/usecase/retrieval"
	"github.com/archivelabs/docsift/internal/usecase/strategy"
	"github.com/archivelabs/docsift/internal/usecase/summary"
)

// Config holds run-shape defaults.
type Config struct {
	TargetPerStrategy int
	SummarizeTop      int
	Store             store.Config
}

// Pipeline wires the run phases together. It is long-lived; each Run owns
// a fresh document store.
type Pipeline struct {
	strategies *strategy.Service
	retrieval  *retrieval.Service
	classifier *classify.Service
	summaries  *summary.Service
	fetcher    store.BodyFetcher
	cfg        Config
	logger     *zap.Logger
}

// New creates a pipeline.
func New(
	strategies *strategy.Service,
	retr *retrieval.Service,
	classifier *classify.Service,
	summaries *summary.Service,
	fetcher store.BodyFetcher,
	cfg Config,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		strategies: strategies,
		retrieval:  retr,
		classifier: classifier,
		summaries:  summaries,
		fetcher:    fetcher,
		cfg:        cfg,
		logger:     logger,
	}
}

// Request shapes one research run.
type Request struct {
	Query             string
	TargetPerStrategy int                     // 0 = configured default
	ExtraFilters      []string                // additional backend fq expressions
	Strategies        []domain.SearchStrategy // non-empty skips generation
	SummarizeTop      int                     // 0 = configured default
	SkipSummaries     bool
}

// RankedDocument is one entry of the final ordering with its
// classification detail.
type RankedDocument struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Type       string            `json:"type"`
	Date       string            `json:"date"`
	Strategy   string            `json:"strategy,omitempty"`
	Label      domain.Label      `json:"label"`
	Confidence domain.Confidence `json:"confidence"`
	Facets     domain.Facets     `json:"facets,omitempty"`
	Reasons    any               `json:"reasons,omitempty"`
}

// Report is the run output: the ranked id sequence plus detail and
// summaries for its head.
type Report struct {
	RunID         string                    `json:"run_id"`
	Query         string                    `json:"query"`
	Strategies    []domain.SearchStrategy   `json:"strategies"`
	DocumentCount int                       `json:"document_count"`
	Ranked        []RankedDocument          `json:"ranked"`
	Summaries     []summary.DocumentSummary `json:"summaries,omitempty"`
}

// Run executes one research run. Collaborator failures degrade the run
// (fewer documents, default classifications) rather than aborting it; the
// only hard errors are an empty query and context cancellation.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Report, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID))
	logger.Info("starting analysis", zap.String("query", req.Query))

	strategies := req.Strategies
	if len(strategies) == 0 {
		strategies = p.strategies.Generate(ctx, req.Query)
	}

	target := req.TargetPerStrategy
	if target <= 0 {
		target = p.cfg.TargetPerStrategy
	}

	st := store.New(p.fetcher, p.cfg.Store, logger)
	admitted := p.retrieval.Retrieve(ctx, st, strategies, target, req.ExtraFilters)
	logger.Info("retrieval complete",
		zap.Int("admitted", admitted), zap.Int("strategies", len(strategies)))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run canceled: %w", err)
	}

	docs := st.Documents()
	analysis := p.classifier.Classify(ctx, docs, req.Query)
	logger.Info("classification complete",
		zap.Int("documents", len(docs)), zap.Int("classified", len(analysis)))

	rankedIDs := rank.New(st).Rank(analysis)
	logger.Info("ranking complete",
		zap.Int("ranked", len(rankedIDs)), zap.Int("collapsed", len(analysis)-len(rankedIDs)))

	report := &Report{
		RunID:         runID,
		Query:         req.Query,
		Strategies:    strategies,
		DocumentCount: st.Len(),
		Ranked:        p.rankedDetail(st, rankedIDs, analysis),
	}

	if !req.SkipSummaries {
		n := req.SummarizeTop
		if n <= 0 {
			n = p.cfg.SummarizeTop
		}
		report.Summaries = p.summaries.SummarizeTop(ctx, req.Query, rankedIDs, st, n)
	}

	return report, nil
}

func (p *Pipeline) rankedDetail(
	st *store.Store, ids []string, analysis map[string]domain.ClassificationResult,
) []RankedDocument {
	out := make([]RankedDocument, 0, len(ids))
	for _, id := range ids {
		entry := RankedDocument{ID: id, Label: domain.LabelIrrelevant}
		if doc, ok := st.Get(id); ok {
			entry.Title = doc.Title()
			entry.Type = doc.Type()
			entry.Date = doc.Date()
			entry.Strategy = doc.Strategy()
		}
		if res, ok := analysis[id]; ok {
			entry.Label = res.Label
			entry.Confidence = res.Confidence
			entry.Facets = res.Facets
			if len(res.Reasons) > 0 {
				entry.Reasons = res.Reasons
			}
		}
		out = append(out, entry)
	}
	return out
}
