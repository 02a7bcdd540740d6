package health

import "context"

// ProviderChecker checks an upstream provider's availability.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
