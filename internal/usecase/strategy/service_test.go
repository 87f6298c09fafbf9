package strategy

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/prompt"
)

type mockJudge struct {
	text string
	err  error
}

func (m *mockJudge) Complete(_ context.Context, _ string) (string, error) {
	return m.text, m.err
}

func newTestService(judge Judge) *Service {
	return New(judge, prompt.NewBuilder(0), zap.NewNop())
}

func TestGenerate_ParsesJudgeStrategies(t *testing.T) {
	judge := &mockJudge{text: `Here you go:
{"strategies": [
  {"search_terms": "youth AND marketing", "filters": {"type": "memo"}, "rationale": "internal directives"},
  {"search_terms": "teen campaign budget", "filters": {}, "rationale": "budget trail"}
]}`}
	svc := newTestService(judge)

	got := svc.Generate(context.Background(), "youth marketing campaigns")

	if len(got) != 2 {
		t.Fatalf("expected 2 strategies, got %d", len(got))
	}
	if got[0].SearchTerms != "youth AND marketing" {
		t.Errorf("unexpected terms: %q", got[0].SearchTerms)
	}
	if got[0].Filters["type"] != "memo" {
		t.Errorf("expected filters decoded, got %v", got[0].Filters)
	}
}

func TestGenerate_JudgeErrorFallsBack(t *testing.T) {
	judge := &mockJudge{err: errors.New("unavailable")}
	svc := newTestService(judge)

	got := svc.Generate(context.Background(), "youth marketing campaigns")

	if len(got) == 0 {
		t.Fatal("expected fallback strategies")
	}
}

func TestGenerate_EmptyStrategyListFallsBack(t *testing.T) {
	judge := &mockJudge{text: `{"strategies": []}`}
	svc := newTestService(judge)

	got := svc.Generate(context.Background(), "youth marketing campaigns")

	if len(got) == 0 {
		t.Fatal("expected fallback strategies for empty judge list")
	}
}

func TestGenerate_NoJSONFallsBack(t *testing.T) {
	judge := &mockJudge{text: "I suggest searching for marketing terms."}
	svc := newTestService(judge)

	got := svc.Generate(context.Background(), "youth marketing campaigns")

	if len(got) == 0 {
		t.Fatal("expected fallback strategies when response has no JSON")
	}
}

func TestFallback_PairsAndCombined(t *testing.T) {
	got := Fallback("cigarette advertising to teenagers in magazines")

	if len(got) != 3 {
		t.Fatalf("expected 3 strategies, got %d", len(got))
	}
	// Word pairs come out of the query in order.
	if got[0].SearchTerms != "cigarette advertising AND to teenagers" {
		t.Errorf("unexpected primary terms: %q", got[0].SearchTerms)
	}
	if got[1].SearchTerms != "to teenagers AND in magazines" {
		t.Errorf("unexpected secondary terms: %q", got[1].SearchTerms)
	}
	for _, st := range got {
		if st.Rationale == "" {
			t.Error("expected a rationale on every fallback strategy")
		}
		if st.Filters == nil {
			t.Error("expected non-nil filters map")
		}
	}
}

func TestFallback_QuotedPhraseKeptWhole(t *testing.T) {
	got := Fallback(`"brand plan" budget approval`)

	if got[0].SearchTerms != "brand plan AND budget approval" {
		t.Errorf("expected quoted phrase kept intact, got %q", got[0].SearchTerms)
	}
}

func TestFallback_SingleWordQuery(t *testing.T) {
	got := Fallback("menthol")

	if len(got) != 1 {
		t.Fatalf("expected 1 strategy for a single term, got %d", len(got))
	}
	if got[0].SearchTerms != "menthol" {
		t.Errorf("expected the lone term, got %q", got[0].SearchTerms)
	}
}
