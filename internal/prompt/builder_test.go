package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/archivelabs/docsift/internal/domain"
)

func makeDoc(id, title, body string) domain.Document {
	d := domain.NewDocument(id, title, "memo", "1989-06-01", "")
	d.SetBody(body)
	return d
}

func TestBatchEval_IncludesQueryAndDocuments(t *testing.T) {
	b := NewBuilder(0)
	docs := []domain.Document{
		makeDoc("a1", "Brand Plan", "body one"),
		makeDoc("b2", "Memo", "body two"),
	}

	p := b.BatchEval(docs, "youth marketing")

	if !strings.Contains(p, "youth marketing") {
		t.Error("expected query in prompt")
	}
	if strings.Count(p, "Document ID:") != 2 {
		t.Error("expected both documents rendered")
	}
	if !strings.Contains(p, "body one") || !strings.Contains(p, "body two") {
		t.Error("expected body text in full-content prompt")
	}
	if !strings.Contains(p, "\n---\n") {
		t.Error("expected document separator")
	}
}

func TestBatchEval_TruncatesBodyToContentLimit(t *testing.T) {
	b := NewBuilder(10)
	docs := []domain.Document{makeDoc("a1", "Long", strings.Repeat("x", 100))}

	p := b.BatchEval(docs, "q")

	if strings.Contains(p, strings.Repeat("x", 11)) {
		t.Error("expected body capped at content limit")
	}
	if !strings.Contains(p, strings.Repeat("x", 10)) {
		t.Error("expected truncated body present")
	}
}

func TestMetadataEval_OmitsBody(t *testing.T) {
	b := NewBuilder(0)
	docs := []domain.Document{makeDoc("a1", "Brand Plan", "secret body")}

	p := b.MetadataEval(docs, "q")

	if strings.Contains(p, "secret body") {
		t.Error("expected no body text in metadata prompt")
	}
	if strings.Contains(p, "Content:") {
		t.Error("expected no content section in metadata prompt")
	}
	if !strings.Contains(p, "Title: Brand Plan") {
		t.Error("expected title metadata present")
	}
}

func TestExampleEvalJSONIsValid(t *testing.T) {
	var v map[string]json.RawMessage
	if err := json.Unmarshal([]byte(exampleEvalJSON), &v); err != nil {
		t.Fatalf("example JSON does not parse: %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"prose around object", `Sure! Here it is: {"a": 1} Hope that helps.`, `{"a": 1}`, true},
		{"nested objects", `{"a": {"b": {"c": 3}}}`, `{"a": {"b": {"c": 3}}}`, true},
		{"brace inside string", `{"text": "use { and } freely"}`, `{"text": "use { and } freely"}`, true},
		{"escaped quote inside string", `{"text": "say \"hi\" {now}"}`, `{"text": "say \"hi\" {now}"}`, true},
		{"first of two objects", `{"a": 1} {"b": 2}`, `{"a": 1}`, true},
		{"no object", "no structured output here", "", false},
		{"unbalanced", `{"a": {"b": 1}`, "", false},
		{"empty input", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSON(tc.in)
			if ok != tc.ok {
				t.Fatalf("ExtractJSON(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
