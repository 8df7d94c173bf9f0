package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/geocoord/internal/logger"
)

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
	Errors map[string]string      `json:"errors,omitempty"`
}

type namedCheck struct {
	name    string
	checker Checker
}

// Service runs named health checks in registration order.
type Service struct {
	checks []namedCheck
}

// New creates a Service with no checks.
func New() *Service {
	return &Service{}
}

// WithCheck registers checker under name. A nil checker is ignored.
func (s *Service) WithCheck(name string, checker Checker) *Service {
	if checker != nil {
		s.checks = append(s.checks, namedCheck{name: name, checker: checker})
	}
	return s
}

// Check runs every registered check.
func (s *Service) Check(ctx context.Context) Report {
	log := logger.FromContext(ctx)
	checks := make(map[string]CheckResult, len(s.checks))
	var errs map[string]string

	failed := 0
	for _, c := range s.checks {
		if err := c.checker.HealthCheck(ctx); err != nil {
			checks[c.name] = CheckError
			if errs == nil {
				errs = make(map[string]string)
			}
			errs[c.name] = err.Error()
			failed++
			log.Warn("Health check failed", zap.String("check", c.name), zap.Error(err))
			continue
		}
		checks[c.name] = CheckOK
	}

	status := Healthy
	switch {
	case failed == 0:
	case failed == len(s.checks):
		status = Unhealthy
	default:
		status = Degraded
	}

	return Report{Status: status, Checks: checks, Errors: errs}
}
