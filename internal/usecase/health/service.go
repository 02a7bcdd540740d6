package health

import (
	"context"
	"sort"
	"time"
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

const defaultCheckTimeout = 5 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks of the upstream providers.
type Service struct {
	providers map[string]ProviderChecker
	timeout   time.Duration
}

// New creates a Service. Nil checkers are skipped.
func New(search, completion ProviderChecker) *Service {
	providers := make(map[string]ProviderChecker, 2)
	if search != nil {
		providers["search"] = search
	}
	if completion != nil {
		providers["completion"] = completion
	}
	return &Service{providers: providers, timeout: defaultCheckTimeout}
}

// Check runs health checks against all providers.
// Status is Unhealthy when every provider fails, Degraded when some do.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]CheckResult, len(names))
	failed := 0
	for _, name := range names {
		if err := s.providers[name].HealthCheck(ctx); err != nil {
			checks[name] = CheckError
			failed++
			continue
		}
		checks[name] = CheckOK
	}

	status := Healthy
	switch {
	case failed > 0 && failed == len(names):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
