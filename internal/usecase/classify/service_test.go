package classify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/archivelabs/docsift/internal/domain"
)

func TestClassify_SingleBatchSuccess(t *testing.T) {
	judge := &mockJudge{responses: []judgeResponse{
		{text: "Here is my analysis:\n" + evalJSON("strong", "a1", "b2")},
	}}
	svc := newTestService(judge)

	results := svc.Classify(context.Background(), makeDocs("a1", "b2"), "youth marketing")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["a1"].Label != domain.LabelStrong {
		t.Errorf("expected strong, got %s", results["a1"].Label)
	}
	if len(judge.prompts) != 1 {
		t.Fatalf("expected 1 judge call, got %d", len(judge.prompts))
	}
	if !hasContent(judge.prompts[0]) {
		t.Error("expected full-content prompt on the primary path")
	}
}

func TestClassify_PartitionsIntoBatches(t *testing.T) {
	judge := &mockJudge{responses: []judgeResponse{
		{text: evalJSON("related", "d1", "d2", "d3", "d4", "d5")},
		{text: evalJSON("related", "d6", "d7")},
	}}
	svc := newTestService(judge)

	docs := makeDocs("d1", "d2", "d3", "d4", "d5", "d6", "d7")
	results := svc.Classify(context.Background(), docs, "q")

	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}
	if len(judge.prompts) != 2 {
		t.Fatalf("expected 2 judge calls, got %d", len(judge.prompts))
	}
	if got := docCount(judge.prompts[0]); got != 5 {
		t.Errorf("expected 5 documents in first batch, got %d", got)
	}
	if got := docCount(judge.prompts[1]); got != 2 {
		t.Errorf("expected 2 documents in second batch, got %d", got)
	}
}

func TestClassify_ContentPolicyFallsBackToIndividual(t *testing.T) {
	judge := &mockJudge{responses: []judgeResponse{
		{err: fmt.Errorf("refused: %w", domain.ErrContentPolicy)},
		{text: evalJSON("smoking_gun", "a1")},
		{text: evalJSON("irrelevant", "b2")},
		{text: evalJSON("strong", "c3")},
	}}
	svc := newTestService(judge)

	results := svc.Classify(context.Background(), makeDocs("a1", "b2", "c3"), "q")

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results["a1"].Label != domain.LabelSmokingGun {
		t.Errorf("expected smoking_gun for a1, got %s", results["a1"].Label)
	}
	if len(judge.prompts) != 4 {
		t.Fatalf("expected 1 batch + 3 individual calls, got %d", len(judge.prompts))
	}
	for _, p := range judge.prompts[1:] {
		if got := docCount(p); got != 1 {
			t.Errorf("expected single-document prompt, got %d documents", got)
		}
		if !hasContent(p) {
			t.Error("expected individual retries to keep full content")
		}
	}
}

func TestClassify_IndividualRetriesMetadataThenSkips(t *testing.T) {
	policyErr := fmt.Errorf("refused: %w", domain.ErrContentPolicy)
	judge := &mockJudge{responses: []judgeResponse{
		{err: policyErr},                   // batch
		{err: policyErr},                   // a1 full content
		{text: evalJSON("related", "a1")},  // a1 metadata retry
		{err: policyErr},                   // b2 full content
		{err: errors.New("timeout")},       // b2 metadata retry
	}}
	svc := newTestService(judge)

	results := svc.Classify(context.Background(), makeDocs("a1", "b2"), "q")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results["a1"].Label != domain.LabelRelated {
		t.Errorf("expected related for a1, got %s", results["a1"].Label)
	}
	if hasContent(judge.prompts[2]) {
		t.Error("expected metadata-only retry for a1")
	}
}

func TestClassify_TransientErrorFallsBackToMetadata(t *testing.T) {
	judge := &mockJudge{responses: []judgeResponse{
		{err: fmt.Errorf("503: %w", domain.ErrJudgeTransient)},
		{text: evalJSON("related", "a1", "b2")},
	}}
	svc := newTestService(judge)

	results := svc.Classify(context.Background(), makeDocs("a1", "b2"), "q")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if len(judge.prompts) != 2 {
		t.Fatalf("expected 2 judge calls, got %d", len(judge.prompts))
	}
	if hasContent(judge.prompts[1]) {
		t.Error("expected metadata-only prompt on the fallback path")
	}
	if got := docCount(judge.prompts[1]); got != 2 {
		t.Errorf("expected whole batch in metadata fallback, got %d documents", got)
	}
}

func TestClassify_FailedBatchDoesNotAbortLaterBatches(t *testing.T) {
	judge := &mockJudge{responses: []judgeResponse{
		{err: fmt.Errorf("503: %w", domain.ErrJudgeTransient)}, // batch 1 full
		{err: fmt.Errorf("503: %w", domain.ErrJudgeTransient)}, // batch 1 metadata
		{text: evalJSON("strong", "f6")},                       // batch 2 full
	}}
	svc := newTestService(judge)

	docs := makeDocs("a1", "b2", "c3", "d4", "e5", "f6")
	results := svc.Classify(context.Background(), docs, "q")

	if len(results) != 1 {
		t.Fatalf("expected only the second batch classified, got %d results", len(results))
	}
	if results["f6"].Label != domain.LabelStrong {
		t.Errorf("expected strong for f6, got %s", results["f6"].Label)
	}
}

func TestClassify_NoJSONInResponseIsEmptyNotError(t *testing.T) {
	judge := &mockJudge{responses: []judgeResponse{
		{text: "I cannot provide structured output for this request."},
	}}
	svc := newTestService(judge)

	results := svc.Classify(context.Background(), makeDocs("a1"), "q")

	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	// No fallback: a parseable-but-empty response is a terminal outcome.
	if len(judge.prompts) != 1 {
		t.Fatalf("expected 1 judge call, got %d", len(judge.prompts))
	}
}

func TestClassify_MalformedJSONIsEmptyNotError(t *testing.T) {
	judge := &mockJudge{responses: []judgeResponse{
		{text: `{"a1": {"label": "strong", "confidence":}}`},
	}}
	svc := newTestService(judge)

	results := svc.Classify(context.Background(), makeDocs("a1"), "q")

	if len(results) != 0 {
		t.Fatalf("expected no results for malformed JSON, got %d", len(results))
	}
	if len(judge.prompts) != 1 {
		t.Fatalf("expected 1 judge call, got %d", len(judge.prompts))
	}
}

func TestClassify_MissingLabelNormalizedToIrrelevant(t *testing.T) {
	judge := &mockJudge{responses: []judgeResponse{
		{text: `{"a1": {"confidence": 0.4}}`},
	}}
	svc := newTestService(judge)

	results := svc.Classify(context.Background(), makeDocs("a1"), "q")

	if results["a1"].Label != domain.LabelIrrelevant {
		t.Errorf("expected irrelevant default, got %q", results["a1"].Label)
	}
}

func TestClassify_EmptyDocList(t *testing.T) {
	judge := &mockJudge{}
	svc := newTestService(judge)

	results := svc.Classify(context.Background(), nil, "q")

	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if len(judge.prompts) != 0 {
		t.Fatalf("expected no judge calls, got %d", len(judge.prompts))
	}
}
