package store

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
)

type mockFetcher struct {
	bodies map[string]string
	err    error
	calls  atomic.Int32
}

func (m *mockFetcher) FetchBody(_ context.Context, docID string) (string, error) {
	m.calls.Add(1)
	if m.err != nil {
		return "", m.err
	}
	return m.bodies[docID], nil
}

func newTestStore(fetcher BodyFetcher, cfg Config) *Store {
	return New(fetcher, cfg, zap.NewNop())
}

func makeDoc(id, title string) domain.Document {
	return domain.NewDocument(id, title, "memo", "1988-04-02", "")
}

func TestAdmit_FirstDocumentEnters(t *testing.T) {
	s := newTestStore(nil, Config{})

	if !s.Admit(makeDoc("a1", "Brand Plan"), "marketing plan") {
		t.Fatal("expected first document to be admitted")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 document, got %d", s.Len())
	}

	doc, ok := s.Get("a1")
	if !ok {
		t.Fatal("expected document a1 present")
	}
	if doc.Strategy() != "marketing plan" {
		t.Errorf("expected originating strategy recorded, got %q", doc.Strategy())
	}
}

func TestAdmit_DuplicateIDIsNoOp(t *testing.T) {
	s := newTestStore(nil, Config{})

	s.Admit(makeDoc("a1", "Brand Plan"), "first")
	if s.Admit(makeDoc("a1", "Brand Plan"), "second") {
		t.Fatal("expected duplicate id to be rejected")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 document, got %d", s.Len())
	}

	doc, _ := s.Get("a1")
	if doc.Strategy() != "first" {
		t.Errorf("expected first strategy kept, got %q", doc.Strategy())
	}
}

func TestAdmit_TitleVariantIsRejected(t *testing.T) {
	s := newTestStore(nil, Config{})

	s.Admit(makeDoc("a1", "R. J. Reynolds Budget"), "s1")
	if s.Admit(makeDoc("b2", "R.J. Reynolds Budget!"), "s1") {
		t.Fatal("expected normalized-title duplicate to be rejected")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 document, got %d", s.Len())
	}
}

func TestAdmit_UntitledDocumentsAllEnter(t *testing.T) {
	s := newTestStore(nil, Config{})

	s.Admit(makeDoc("a1", ""), "s1")
	if !s.Admit(makeDoc("b2", ""), "s1") {
		t.Fatal("expected second untitled document to be admitted")
	}

	doc, _ := s.Get("a1")
	if doc.Title() != domain.UntitledSentinel {
		t.Errorf("expected untitled sentinel, got %q", doc.Title())
	}
}

func TestAdmit_PunctuationOnlyTitleIsExempt(t *testing.T) {
	s := newTestStore(nil, Config{})

	// Both normalize to "" which is exempt from title deduplication.
	s.Admit(makeDoc("a1", "***"), "s1")
	if !s.Admit(makeDoc("b2", "---"), "s1") {
		t.Fatal("expected punctuation-only titles to bypass title dedup")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 documents, got %d", s.Len())
	}
}

func TestTitleFrequency_CountsDroppedSightings(t *testing.T) {
	s := newTestStore(nil, Config{})

	s.Admit(makeDoc("a1", "Brand Plan"), "s1")
	s.Admit(makeDoc("a1", "Brand Plan"), "s1") // duplicate id
	s.Admit(makeDoc("b2", "Brand Plan"), "s2") // title variant, dropped
	s.Admit(makeDoc("c3", "Unrelated Memo"), "s1")

	if got := s.TitleFrequency("a1"); got != 3 {
		t.Errorf("expected frequency 3 for a1, got %d", got)
	}
	if got := s.TitleFrequency("c3"); got != 1 {
		t.Errorf("expected frequency 1 for c3, got %d", got)
	}
	if got := s.TitleFrequency("missing"); got != 1 {
		t.Errorf("expected frequency 1 for unknown id, got %d", got)
	}
}

func TestDocuments_AdmissionOrder(t *testing.T) {
	s := newTestStore(nil, Config{})

	s.Admit(makeDoc("c3", "Third"), "s1")
	s.Admit(makeDoc("a1", "First"), "s1")
	s.Admit(makeDoc("b2", "Second"), "s1")

	docs := s.Documents()
	want := []string{"c3", "a1", "b2"}
	if len(docs) != len(want) {
		t.Fatalf("expected %d documents, got %d", len(want), len(docs))
	}
	for i, id := range want {
		if docs[i].ID() != id {
			t.Errorf("position %d: expected %s, got %s", i, id, docs[i].ID())
		}
	}
}

func TestFillMissingBodies_FetchesAndTruncates(t *testing.T) {
	fetcher := &mockFetcher{bodies: map[string]string{
		"a1": strings.Repeat("x", 50),
		"b2": "short",
	}}
	s := newTestStore(fetcher, Config{MaxBodyChars: 10, FetchConcurrency: 2})

	s.Admit(makeDoc("a1", "One"), "s1")
	s.Admit(makeDoc("b2", "Two"), "s1")
	s.FillMissingBodies(context.Background())

	a, _ := s.Get("a1")
	if len(a.Body()) != 10 {
		t.Errorf("expected body truncated to 10 chars, got %d", len(a.Body()))
	}
	b, _ := s.Get("b2")
	if b.Body() != "short" {
		t.Errorf("expected full short body, got %q", b.Body())
	}
}

func TestFillMissingBodies_Idempotent(t *testing.T) {
	fetcher := &mockFetcher{bodies: map[string]string{"a1": "text"}}
	s := newTestStore(fetcher, Config{})

	s.Admit(makeDoc("a1", "One"), "s1")
	s.FillMissingBodies(context.Background())
	s.FillMissingBodies(context.Background())

	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 fetch, got %d", got)
	}
}

func TestFillMissingBodies_ErrorLeavesEmptyBody(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("host unreachable")}
	s := newTestStore(fetcher, Config{})

	s.Admit(makeDoc("a1", "One"), "s1")
	s.FillMissingBodies(context.Background())

	doc, _ := s.Get("a1")
	if doc.Body() != "" {
		t.Errorf("expected empty body after fetch error, got %q", doc.Body())
	}
	if !doc.BodyFilled() {
		t.Error("expected body marked filled even after fetch error")
	}
}

func TestFillMissingBodies_SkipFetch(t *testing.T) {
	fetcher := &mockFetcher{bodies: map[string]string{"a1": "text"}}
	s := newTestStore(fetcher, Config{SkipBodyFetch: true})

	s.Admit(makeDoc("a1", "One"), "s1")
	s.FillMissingBodies(context.Background())

	if got := fetcher.calls.Load(); got != 0 {
		t.Errorf("expected no fetches in skip mode, got %d", got)
	}
	doc, _ := s.Get("a1")
	if !doc.BodyFilled() {
		t.Error("expected body marked filled in skip mode")
	}
}
