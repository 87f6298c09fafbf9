// Package httpapi exposes the research pipeline over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
	"github.com/archivelabs/docsift/internal/domain/catalog"
	"github.com/archivelabs/docsift/internal/transport/solr"
	analyzeuc "github.com/archivelabs/docsift/internal/usecase/analyze"
	healthuc "github.com/archivelabs/docsift/internal/usecase/health"
)

// Error codes returned in JSON error responses.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeRetrievalFailed  = "retrieval_failed"
	codeJudgeUnavailable = "judge_unavailable"
	codeInternalError    = "internal_error"
)

// errorResponse is the wire shape of every error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// researchRequest is the POST /research body.
type researchRequest struct {
	Query             string                  `json:"query"`
	TargetPerStrategy int                     `json:"target_per_strategy,omitempty"`
	Filters           map[string]string       `json:"filters,omitempty"`
	Strategies        []domain.SearchStrategy `json:"strategies,omitempty"`
	SummarizeTop      int                     `json:"summarize_top,omitempty"`
	SkipSummaries     bool                    `json:"skip_summaries,omitempty"`
}

// Server handles HTTP requests against the pipeline and health services.
type Server struct {
	pipeline *analyzeuc.Pipeline
	health   *healthuc.Service
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(pipeline *analyzeuc.Pipeline, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{pipeline: pipeline, health: health, logger: logger}
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/v1/research", s.Research)
	r.Get("/api/v1/filters", s.Filters)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Research handles POST /api/v1/research. One call runs a full pipeline pass
// and returns the ranked report. Long-running by nature; the server's write
// timeout bounds it.
func (s *Server) Research(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}

	extra, err := filterExprs(req.Filters)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	report, err := s.pipeline.Run(r.Context(), analyzeuc.Request{
		Query:             req.Query,
		TargetPerStrategy: req.TargetPerStrategy,
		ExtraFilters:      extra,
		Strategies:        req.Strategies,
		SummarizeTop:      req.SummarizeTop,
		SkipSummaries:     req.SkipSummaries,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Filters handles GET /api/v1/filters and returns the curated filter
// vocabularies clients can present for faceted narrowing.
func (s *Server) Filters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"fields": catalog.Fields()})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// filterExprs converts field/value pairs into backend filter expressions,
// rejecting fields outside the curated catalog.
func filterExprs(filters map[string]string) ([]string, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	known := catalog.Fields()
	out := make([]string, 0, len(filters))
	for field, value := range filters {
		if _, ok := known[field]; !ok {
			return nil, errors.New("unknown filter field: " + field)
		}
		if value == "" {
			return nil, errors.New("empty value for filter field: " + field)
		}
		out = append(out, solr.FilterExpr(field, value))
	}
	return out, nil
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("pipeline error", zap.Error(err))

	switch {
	case errors.Is(err, domain.ErrRetrieval):
		writeError(w, http.StatusBadGateway, codeRetrievalFailed, domain.ErrRetrieval.Error())
	case errors.Is(err, domain.ErrJudgeTransient):
		writeError(w, http.StatusBadGateway, codeJudgeUnavailable, domain.ErrJudgeTransient.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
