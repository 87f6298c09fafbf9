// Package classify produces a classification for every document in the
// working set via the generative judge, batch by batch, with a fallback
// cascade so no single failure loses the rest of the run.
package classify

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
	"github.com/archivelabs/docsift/internal/metrics"
	"github.com/archivelabs/docsift/internal/prompt"
)

// DefaultBatchSize is the number of documents per judge request.
const DefaultBatchSize = 5

// Judge is the generative-language collaborator contract.
type Judge interface {
	Complete(ctx context.Context, promptText string) (string, error)
}

// Service partitions documents into batches and classifies them.
type Service struct {
	judge     Judge
	prompts   *prompt.Builder
	batchSize int
	logger    *zap.Logger
}

// New creates a classification service.
func New(judge Judge, prompts *prompt.Builder, logger *zap.Logger) *Service {
	return &Service{judge: judge, prompts: prompts, batchSize: DefaultBatchSize, logger: logger}
}

// WithBatchSize configures the batch size.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// Classify produces results for docs in contiguous batches. Per batch:
// full-content prompt first; on a content-policy refusal each document is
// retried individually (so one problematic document cannot suppress its
// batch); on any other failure the whole batch is retried with a
// metadata-only prompt. No batch failure aborts later batches. Documents
// the judge never answered for are simply absent from the result map and
// rank with the irrelevant defaults downstream.
func (s *Service) Classify(
	ctx context.Context, docs []domain.Document, query string,
) map[string]domain.ClassificationResult {
	results := make(map[string]domain.ClassificationResult, len(docs))

	for start := 0; start < len(docs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		s.merge(results, s.classifyBatch(ctx, batch, query))
	}
	return results
}

func (s *Service) classifyBatch(
	ctx context.Context, batch []domain.Document, query string,
) map[string]domain.ClassificationResult {
	parsed, err := s.submit(ctx, s.prompts.BatchEval(batch, query))
	if err == nil {
		metrics.ClassifyBatchesTotal.WithLabelValues("batch", outcome(parsed)).Inc()
		return parsed
	}

	if errors.Is(err, domain.ErrContentPolicy) {
		s.logger.Warn("content policy refusal, classifying batch individually",
			zap.Int("batch_size", len(batch)))
		return s.classifyIndividually(ctx, batch, query)
	}

	s.logger.Warn("batch classification failed, falling back to metadata-only",
		zap.Int("batch_size", len(batch)), zap.Error(err))
	parsed, err = s.submit(ctx, s.prompts.MetadataEval(batch, query))
	if err != nil {
		metrics.ClassifyBatchesTotal.WithLabelValues("metadata", "error").Inc()
		s.logger.Warn("metadata fallback failed, batch unclassified", zap.Error(err))
		return nil
	}
	metrics.ClassifyBatchesTotal.WithLabelValues("metadata", outcome(parsed)).Inc()
	return parsed
}

// classifyIndividually sends one full-content prompt per document, with a
// per-document metadata retry, so results for the rest of the batch survive
// whatever tripped the batch request.
func (s *Service) classifyIndividually(
	ctx context.Context, batch []domain.Document, query string,
) map[string]domain.ClassificationResult {
	results := make(map[string]domain.ClassificationResult, len(batch))
	for i := range batch {
		single := batch[i : i+1]

		parsed, err := s.submit(ctx, s.prompts.BatchEval(single, query))
		if err != nil {
			s.logger.Warn("individual classification failed, retrying with metadata",
				zap.String("doc_id", single[0].ID()), zap.Error(err))
			parsed, err = s.submit(ctx, s.prompts.MetadataEval(single, query))
		}
		if err != nil {
			metrics.ClassifyBatchesTotal.WithLabelValues("individual", "error").Inc()
			s.logger.Warn("document unclassified",
				zap.String("doc_id", single[0].ID()), zap.Error(err))
			continue
		}
		metrics.ClassifyBatchesTotal.WithLabelValues("individual", outcome(parsed)).Inc()
		s.merge(results, parsed)
	}
	return results
}

// submit sends one prompt and decodes the first balanced JSON object of the
// response. A response with no JSON object, or undecodable JSON, is an
// empty result, not an error.
func (s *Service) submit(
	ctx context.Context, promptText string,
) (map[string]domain.ClassificationResult, error) {
	text, err := s.judge.Complete(ctx, promptText)
	if err != nil {
		return nil, err
	}

	obj, ok := prompt.ExtractJSON(text)
	if !ok {
		s.logger.Debug("judge response contained no JSON object")
		return map[string]domain.ClassificationResult{}, nil
	}

	var parsed map[string]domain.ClassificationResult
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		s.logger.Debug("judge JSON undecodable, treating as empty",
			zap.Error(domain.ErrMalformed), zap.NamedError("cause", err))
		return map[string]domain.ClassificationResult{}, nil
	}

	for id, res := range parsed {
		res.Normalize()
		parsed[id] = res
	}
	return parsed, nil
}

// merge folds src into dst; a later entry for the same id overwrites.
func (s *Service) merge(dst, src map[string]domain.ClassificationResult) {
	for id, res := range src {
		if _, ok := dst[id]; ok {
			s.logger.Debug("duplicate classification id, keeping later result",
				zap.String("doc_id", id))
		}
		dst[id] = res
	}
}

func outcome(parsed map[string]domain.ClassificationResult) string {
	if len(parsed) == 0 {
		return "empty"
	}
	return "ok"
}
