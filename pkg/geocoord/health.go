package geocoord

import (
	"context"

	healthuc "github.com/kailas-cloud/geocoord/internal/usecase/health"
)

// HealthStatus represents the outcome of the registry self-checks.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // check → "ok"/"error"
}

// Health runs the interning and conversion self-checks against r.
func Health(ctx context.Context, r *Registry) HealthStatus {
	report := healthuc.ForRegistry(r).Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
