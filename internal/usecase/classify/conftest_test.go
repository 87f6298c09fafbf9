package classify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
	"github.com/archivelabs/docsift/internal/prompt"
)

// mockJudge scripts one response per Complete call, in order, and records
// the prompts it received.
type mockJudge struct {
	responses []judgeResponse
	prompts   []string
}

type judgeResponse struct {
	text string
	err  error
}

func (m *mockJudge) Complete(_ context.Context, promptText string) (string, error) {
	m.prompts = append(m.prompts, promptText)
	if len(m.responses) == 0 {
		return "", fmt.Errorf("mockJudge: unexpected call %d", len(m.prompts))
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.text, resp.err
}

func newTestService(judge Judge) *Service {
	return New(judge, prompt.NewBuilder(0), zap.NewNop())
}

func makeDocs(ids ...string) []domain.Document {
	docs := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		d := domain.NewDocument(id, "Title "+id, "memo", "1990-01-01", "")
		d.SetBody("body text for " + id)
		docs = append(docs, d)
	}
	return docs
}

// evalJSON builds a judge response classifying each id as the given label.
func evalJSON(label string, ids ...string) string {
	entries := make([]string, 0, len(ids))
	for _, id := range ids {
		entries = append(entries,
			fmt.Sprintf(`%q: {"label": %q, "confidence": 0.8}`, id, label))
	}
	return "{" + strings.Join(entries, ", ") + "}"
}

// hasContent reports whether a recorded prompt carried document body text.
func hasContent(promptText string) bool {
	return strings.Contains(promptText, "Content:")
}

// docCount counts the documents rendered into a recorded prompt.
func docCount(promptText string) int {
	return strings.Count(promptText, "Document ID:")
}
