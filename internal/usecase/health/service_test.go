package health

import (
	"context"
	"errors"
	"testing"
)

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockChecker{}, &mockPinger{})

	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("expected ok, got %s", report.Status)
	}
	if report.Checks["judge"] != CheckOK || report.Checks["cache"] != CheckOK {
		t.Errorf("unexpected checks: %v", report.Checks)
	}
}

func TestCheck_PartialFailureIsDegraded(t *testing.T) {
	svc := New(&mockChecker{}, &mockPinger{err: errors.New("refused")})

	report := svc.Check(context.Background())

	if report.Status != Degraded {
		t.Errorf("expected degraded, got %s", report.Status)
	}
	if report.Checks["cache"] != CheckError {
		t.Errorf("expected cache check failed, got %v", report.Checks)
	}
}

func TestCheck_TotalFailureIsUnhealthy(t *testing.T) {
	svc := New(&mockChecker{err: errors.New("401")}, &mockPinger{err: errors.New("refused")})

	report := svc.Check(context.Background())

	if report.Status != Unhealthy {
		t.Errorf("expected error status, got %s", report.Status)
	}
}

func TestCheck_NilCheckersSkipped(t *testing.T) {
	svc := New(&mockChecker{}, nil)

	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("expected ok with cache disabled, got %s", report.Status)
	}
	if _, ok := report.Checks["cache"]; ok {
		t.Error("expected no cache check when cache is disabled")
	}
}
