// Package summary produces per-document free-text summaries for the head
// of the ranked list.
package summary

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
	"github.com/archivelabs/docsift/internal/prompt"
)

// Judge is the generative-language collaborator contract.
type Judge interface {
	Complete(ctx context.Context, promptText string) (string, error)
}

// Corpus resolves ranked ids back to documents.
type Corpus interface {
	Get(id string) (domain.Document, bool)
}

// DocumentSummary pairs a document id with its summary text.
type DocumentSummary struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

// Service summarizes ranked documents.
type Service struct {
	judge   Judge
	prompts *prompt.Builder
	logger  *zap.Logger
}

// New creates a summary service.
func New(judge Judge, prompts *prompt.Builder, logger *zap.Logger) *Service {
	return &Service{judge: judge, prompts: prompts, logger: logger}
}

// Summarize produces a free-text summary of one document for the query.
func (s *Service) Summarize(ctx context.Context, query string, doc domain.Document) (string, error) {
	text, err := s.judge.Complete(ctx, s.prompts.Summary(doc, query))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// SummarizeTop summarizes the first n ranked documents, preserving rank
// order. A failed summary is logged and skipped; it never aborts the rest.
func (s *Service) SummarizeTop(
	ctx context.Context, query string, rankedIDs []string, corpus Corpus, n int,
) []DocumentSummary {
	if n > len(rankedIDs) {
		n = len(rankedIDs)
	}

	summaries := make([]DocumentSummary, 0, n)
	for _, id := range rankedIDs[:n] {
		doc, ok := corpus.Get(id)
		if !ok {
			continue
		}
		text, err := s.Summarize(ctx, query, doc)
		if err != nil {
			s.logger.Warn("summary failed", zap.String("doc_id", id), zap.Error(err))
			continue
		}
		summaries = append(summaries, DocumentSummary{ID: id, Summary: text})
	}
	return summaries
}
