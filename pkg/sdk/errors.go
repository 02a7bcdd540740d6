package explorer

import "github.com/kailas-cloud/explorer/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest   = domain.ErrInvalidRequest
	ErrConfiguration    = domain.ErrConfiguration
	ErrSearchFailed     = domain.ErrSearchFailed
	ErrNoResults        = domain.ErrNoResults
	ErrCompletionFailed = domain.ErrCompletionFailed
)
