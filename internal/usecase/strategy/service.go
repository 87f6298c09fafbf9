// Package strategy generates backend search strategies for a research
// query via the judge, with a heuristic term-extraction fallback when the
// judge is unavailable or returns nothing usable.
package strategy

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
	"github.com/archivelabs/docsift/internal/prompt"
)

// Judge is the generative-language collaborator contract.
type Judge interface {
	Complete(ctx context.Context, promptText string) (string, error)
}

// Service generates search strategies.
type Service struct {
	judge   Judge
	prompts *prompt.Builder
	logger  *zap.Logger
}

// New creates a strategy service.
func New(judge Judge, prompts *prompt.Builder, logger *zap.Logger) *Service {
	return &Service{judge: judge, prompts: prompts, logger: logger}
}

// Generate asks the judge for strategies and falls back to heuristic term
// extraction on any failure, so a run always has at least one strategy.
func (s *Service) Generate(ctx context.Context, query string) []domain.SearchStrategy {
	text, err := s.judge.Complete(ctx, s.prompts.StrategyGen(query))
	if err != nil {
		s.logger.Warn("strategy generation failed, using query-term fallback", zap.Error(err))
		return Fallback(query)
	}

	obj, ok := prompt.ExtractJSON(text)
	if !ok {
		s.logger.Warn("no JSON in strategy response, using query-term fallback")
		return Fallback(query)
	}

	var parsed struct {
		Strategies []domain.SearchStrategy `json:"strategies"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil || len(parsed.Strategies) == 0 {
		s.logger.Warn("undecodable strategy JSON, using query-term fallback", zap.Error(err))
		return Fallback(query)
	}

	for _, strat := range parsed.Strategies {
		s.logger.Info("generated strategy",
			zap.String("terms", strat.SearchTerms),
			zap.Any("filters", strat.Filters),
			zap.String("rationale", strat.Rationale))
	}
	return parsed.Strategies
}

// termPattern pulls quoted phrases, adjacent word pairs, and single words
// out of the raw query text.
var termPattern = regexp.MustCompile(`"([^"]*)"|\b\w+\s+\w+\b|\b\w+\b`)

// Fallback builds basic strategies from the query's own terms.
func Fallback(query string) []domain.SearchStrategy {
	terms := extractTerms(strings.ToLower(query))

	var strategies []domain.SearchStrategy
	if len(terms) >= 2 {
		strategies = append(strategies, domain.SearchStrategy{
			SearchTerms: terms[0] + " AND " + terms[1],
			Filters:     map[string]string{},
			Rationale:   "Primary terms combination",
		})
	}
	if len(terms) >= 3 {
		strategies = append(strategies, domain.SearchStrategy{
			SearchTerms: terms[1] + " AND " + terms[2],
			Filters:     map[string]string{},
			Rationale:   "Secondary terms combination",
		})
	}

	head := terms
	if len(head) > 4 {
		head = head[:4]
	}
	strategies = append(strategies, domain.SearchStrategy{
		SearchTerms: strings.Join(head, " AND "),
		Filters:     map[string]string{},
		Rationale:   "Combined key terms",
	})
	return strategies
}

func extractTerms(query string) []string {
	var terms []string
	for _, m := range termPattern.FindAllStringSubmatch(query, -1) {
		term := m[0]
		if m[1] != "" {
			term = m[1] // quoted phrase without the quotes
		}
		term = strings.TrimSpace(term)
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
