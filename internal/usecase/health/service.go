// Package health aggregates component health checks.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// JudgeChecker verifies judge provider availability.
type JudgeChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks the optional body cache.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// Service coordinates health checks.
type Service struct {
	judge JudgeChecker
	cache CachePinger
}

// New creates a Service. Either checker can be nil.
func New(judge JudgeChecker, cache CachePinger) *Service {
	return &Service{judge: judge, cache: cache}
}

// Check runs health checks against the configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.judge != nil {
		if err := s.judge.HealthCheck(ctx); err != nil {
			checks["judge"] = CheckError
		} else {
			checks["judge"] = CheckOK
		}
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	return Report{Status: aggregate(checks), Checks: checks}
}

func aggregate(checks map[string]CheckResult) Status {
	failures := 0
	for _, c := range checks {
		if c == CheckError {
			failures++
		}
	}
	switch {
	case failures == 0:
		return Healthy
	case failures == len(checks):
		return Unhealthy
	default:
		return Degraded
	}
}
