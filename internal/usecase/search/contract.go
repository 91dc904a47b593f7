package search

import (
	"context"

	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
)

// Repository runs planned queries against the engine.
type Repository interface {
	Search(ctx context.Context, p request.Params) (result.Response, error)
}
