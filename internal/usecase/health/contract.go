package health

import (
	"context"

	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
)

// DBPinger checks engine connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker reports whether the search index exists.
type IndexChecker interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}

// CorpusSearcher counts the documents the index serves.
type CorpusSearcher interface {
	Search(ctx context.Context, p request.Params) (result.Response, error)
}
