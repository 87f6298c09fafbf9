package domain

import "errors"

var (
	// ErrContentPolicy signals that the judge refused a request because it
	// would reproduce protected source text. Routes to per-document fallback.
	ErrContentPolicy = errors.New("judge content policy refusal")
	// ErrJudgeTransient signals any other judge failure (timeout, backend
	// error, oversized request). Routes to metadata-only fallback.
	ErrJudgeTransient = errors.New("judge request failed")
	// ErrMalformed signals a judge response whose JSON could not be decoded.
	// Treated as an empty result, never propagated across batches.
	ErrMalformed = errors.New("malformed judge response")
	// ErrRetrieval signals a search backend failure. Aborts only the current
	// strategy's retrieval.
	ErrRetrieval = errors.New("search backend error")
	// ErrBodyFetch signals a body-text fetch failure. Never fatal; the
	// document keeps an empty body.
	ErrBodyFetch = errors.New("body text fetch failed")
)
