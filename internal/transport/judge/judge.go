// Package judge is the generative-language collaborator client. It sends a
// single prompt per call to an OpenAI-compatible chat endpoint and maps
// provider failures onto the closed domain error set, so fallback routing
// upstream is type dispatch rather than message matching.
package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/archivelabs/docsift/internal/domain"
	"github.com/archivelabs/docsift/internal/metrics"
)

// Config holds judge provider settings.
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
	Logger            *zap.Logger
}

// Judge calls the chat completion API.
type Judge struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a judge client.
func New(cfg Config) *Judge {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Judge{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
		limiter: limiter,
		logger:  logger,
	}
}

// Complete submits one prompt and returns the raw response text.
// Content-policy refusals surface as domain.ErrContentPolicy; every other
// failure (including the per-call timeout) as domain.ErrJudgeTransient.
func (j *Judge) Complete(ctx context.Context, prompt string) (string, error) {
	if err := j.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %v: %w", err, domain.ErrJudgeTransient)
	}

	callCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	start := time.Now()
	resp, err := j.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: j.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	metrics.JudgeRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		mapped := mapAPIError(err)
		if errors.Is(mapped, domain.ErrContentPolicy) {
			metrics.JudgeRequestsTotal.WithLabelValues("content_policy").Inc()
		} else {
			metrics.JudgeRequestsTotal.WithLabelValues("error").Inc()
		}
		return "", mapped
	}

	if len(resp.Choices) == 0 {
		metrics.JudgeRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrJudgeTransient)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		metrics.JudgeRequestsTotal.WithLabelValues("content_policy").Inc()
		return "", fmt.Errorf("completion stopped by content filter: %w", domain.ErrContentPolicy)
	}

	metrics.JudgeRequestsTotal.WithLabelValues("success").Inc()
	return choice.Message.Content, nil
}

// HealthCheck verifies the provider is reachable and the API key is accepted.
func (j *Judge) HealthCheck(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := j.client.ListModels(callCtx); err != nil {
		return fmt.Errorf("judge health check: %w", err)
	}
	return nil
}

// mapAPIError folds provider errors into the closed domain error set.
func mapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if isPolicyCode(apiErr.Code) || isPolicyType(apiErr.Type) {
			return fmt.Errorf("judge API error %d: %s: %w",
				apiErr.HTTPStatusCode, apiErr.Message, domain.ErrContentPolicy)
		}
		return fmt.Errorf("judge API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, domain.ErrJudgeTransient)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("judge request error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), domain.ErrJudgeTransient)
	}

	return fmt.Errorf("judge request failed: %v: %w", err, domain.ErrJudgeTransient)
}

func isPolicyCode(code any) bool {
	s, ok := code.(string)
	if !ok {
		return false
	}
	s = strings.ToLower(s)
	return strings.Contains(s, "content_policy") || strings.Contains(s, "content_filter")
}

func isPolicyType(t string) bool {
	return strings.Contains(strings.ToLower(t), "invalid_prompt")
}
