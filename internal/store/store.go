// Package store owns the in-memory document table for one pipeline run:
// admission with exact-id and normalized-title deduplication, the title
// frequency index, and the lazy body-text fill.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/archivelabs/docsift/internal/domain"
)

// BodyFetcher retrieves the full body text for a document id.
// Misses and errors yield empty text; errors are never fatal.
type BodyFetcher interface {
	FetchBody(ctx context.Context, docID string) (string, error)
}

// Config holds store settings.
type Config struct {
	// MaxBodyChars truncates fetched body text. <=0 means no truncation.
	MaxBodyChars int
	// SkipBodyFetch writes empty bodies instead of calling the fetcher.
	SkipBodyFetch bool
	// FetchConcurrency bounds parallel body fetches (default 1).
	FetchConcurrency int
}

// Store is the owned document table. Admission is its only mutation entry
// point and runs as one critical section, so the first-writer-wins title
// rule holds under concurrent retrieval.
type Store struct {
	mu         sync.Mutex
	docs       map[string]*domain.Document
	order      []string
	titleIndex map[string]map[string]int

	fetcher BodyFetcher
	cfg     Config
	logger  *zap.Logger
}

// New creates an empty store.
func New(fetcher BodyFetcher, cfg Config, logger *zap.Logger) *Store {
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 1
	}
	return &Store{
		docs:       make(map[string]*domain.Document),
		titleIndex: make(map[string]map[string]int),
		fetcher:    fetcher,
		cfg:        cfg,
		logger:     logger,
	}
}

// Admit applies the dedup invariant: a no-op when the id is already present
// or when the document's non-empty normalized title has been seen before.
// Every sighting is counted in the frequency index, admitted or not.
// Returns whether the document entered the table.
func (s *Store) Admit(doc domain.Document, strategyTerms string) bool {
	norm := NormalizeTitle(doc.Title())

	s.mu.Lock()
	defer s.mu.Unlock()

	admitted := s.admitLocked(doc, norm, strategyTerms)

	byID := s.titleIndex[norm]
	if byID == nil {
		byID = make(map[string]int)
		s.titleIndex[norm] = byID
	}
	byID[doc.ID()]++

	return admitted
}

func (s *Store) admitLocked(doc domain.Document, norm, strategyTerms string) bool {
	if _, ok := s.docs[doc.ID()]; ok {
		return false
	}
	if norm != "" {
		if byID, ok := s.titleIndex[norm]; ok && len(byID) > 0 {
			return false
		}
	}

	if doc.Title() == "" {
		doc.SetTitle(domain.UntitledSentinel)
	}
	doc.SetStrategy(strategyTerms)

	d := doc
	s.docs[d.ID()] = &d
	s.order = append(s.order, d.ID())
	return true
}

// Len returns the number of admitted documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Get returns a copy of the document with the given id.
func (s *Store) Get(id string) (domain.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return domain.Document{}, false
	}
	return *d, true
}

// Documents returns copies of all admitted documents in admission order.
func (s *Store) Documents() []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.docs[id])
	}
	return out
}

// TitleFrequency returns the popularity signal for a document: the sum of
// all per-id sighting counts recorded for its normalized title. Unknown ids
// and unindexed titles count as 1.
func (s *Store) TitleFrequency(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[id]
	if !ok {
		return 1
	}
	byID, ok := s.titleIndex[NormalizeTitle(d.Title())]
	if !ok {
		return 1
	}
	total := 0
	for _, n := range byID {
		total += n
	}
	if total == 0 {
		return 1
	}
	return total
}

// FillMissingBodies fetches body text for every document that has none yet,
// truncated to MaxBodyChars. Idempotent: filled bodies are never rewritten.
// With SkipBodyFetch set, bodies are written as empty strings instead.
func (s *Store) FillMissingBodies(ctx context.Context) {
	pending := s.pendingBodyIDs()
	if len(pending) == 0 {
		return
	}

	if s.cfg.SkipBodyFetch || s.fetcher == nil {
		for _, id := range pending {
			s.setBody(id, "")
		}
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.FetchConcurrency)
	for _, id := range pending {
		id := id
		g.Go(func() error {
			text, err := s.fetcher.FetchBody(ctx, id)
			if err != nil {
				s.logger.Warn("body fetch failed, keeping empty body",
					zap.String("doc_id", id), zap.Error(err))
				text = ""
			}
			s.setBody(id, truncate(text, s.cfg.MaxBodyChars))
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; body failures are non-fatal
}

func (s *Store) pendingBodyIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, id := range s.order {
		if !s.docs[id].BodyFilled() {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Store) setBody(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.docs[id]; ok {
		d.SetBody(text)
	}
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
