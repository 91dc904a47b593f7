package devindex

import "github.com/kailas-cloud/devindex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest  = domain.ErrInvalidRequest
	ErrUnknownCategory = domain.ErrUnknownCategory
	ErrQueryService    = domain.ErrQueryService
)
