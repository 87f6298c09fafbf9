package judge

import (
	"errors"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/archivelabs/docsift/internal/domain"
)

func TestMapAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "content policy code",
			err:  &openai.APIError{Code: "content_policy_violation", HTTPStatusCode: 400},
			want: domain.ErrContentPolicy,
		},
		{
			name: "content filter code",
			err:  &openai.APIError{Code: "content_filter", HTTPStatusCode: 400},
			want: domain.ErrContentPolicy,
		},
		{
			name: "invalid prompt type",
			err:  &openai.APIError{Type: "invalid_prompt", HTTPStatusCode: 400},
			want: domain.ErrContentPolicy,
		},
		{
			name: "rate limit",
			err:  &openai.APIError{Code: "rate_limit_exceeded", HTTPStatusCode: 429},
			want: domain.ErrJudgeTransient,
		},
		{
			name: "non-string code",
			err:  &openai.APIError{Code: 42, HTTPStatusCode: 500},
			want: domain.ErrJudgeTransient,
		},
		{
			name: "wrapped api error",
			err:  fmt.Errorf("call failed: %w", &openai.APIError{Code: "content_policy_violation"}),
			want: domain.ErrContentPolicy,
		},
		{
			name: "request error",
			err:  &openai.RequestError{HTTPStatusCode: 503, Body: []byte("unavailable")},
			want: domain.ErrJudgeTransient,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: domain.ErrJudgeTransient,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapAPIError(tc.err)
			if !errors.Is(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
