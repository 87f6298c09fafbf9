// Package prompt renders judge prompts and extracts the structured JSON
// object from free-form judge responses.
package prompt

import (
	"fmt"
	"strings"

	"github.com/archivelabs/docsift/internal/domain"
)

// DefaultContentLimit caps per-document body text inside prompts.
const DefaultContentLimit = 3000

// Builder renders prompts for the judge collaborator.
type Builder struct {
	contentLimit int
}

// NewBuilder creates a Builder. contentLimit <= 0 uses DefaultContentLimit.
func NewBuilder(contentLimit int) *Builder {
	if contentLimit <= 0 {
		contentLimit = DefaultContentLimit
	}
	return &Builder{contentLimit: contentLimit}
}

// BatchEval renders the full-content classification prompt for a batch.
func (b *Builder) BatchEval(docs []domain.Document, query string) string {
	return fmt.Sprintf(batchEvalTemplate, query, exampleEvalJSON, b.joinDocuments(docs, true))
}

// MetadataEval renders the degraded metadata-only classification prompt.
func (b *Builder) MetadataEval(docs []domain.Document, query string) string {
	return fmt.Sprintf(batchEvalTemplate, query, exampleEvalJSON, b.joinDocuments(docs, false))
}

// StrategyGen renders the search-strategy generation prompt.
func (b *Builder) StrategyGen(query string) string {
	return fmt.Sprintf(strategyTemplate, query)
}

// Summary renders the single-document summarization prompt.
func (b *Builder) Summary(doc domain.Document, query string) string {
	return fmt.Sprintf(summaryTemplate, query, b.joinDocuments([]domain.Document{doc}, true))
}

func (b *Builder) joinDocuments(docs []domain.Document, withBody bool) string {
	parts := make([]string, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		lines := []string{
			"Document ID: " + doc.ID(),
			"Title: " + doc.Title(),
			"Type: " + doc.Type(),
			"Date: " + doc.Date(),
		}
		if withBody {
			body := doc.Body()
			if len(body) > b.contentLimit {
				body = body[:b.contentLimit]
			}
			lines = append(lines, "Content:", body)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n---\n")
}

// ExtractJSON returns the first balanced JSON object in text, tracking
// string literals and escapes so braces inside quoted values do not
// terminate the scan. Returns false when no complete object is present.
func ExtractJSON(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
