package ingest

import (
	"context"

	"github.com/kailas-cloud/devindex/internal/domain/changeset"
	domdoc "github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
)

// Repository writes documents to the engine.
type Repository interface {
	EnsureIndex(ctx context.Context) (created bool, err error)
	Upsert(ctx context.Context, records []domdoc.Record) error
	Delete(ctx context.Context, ids []string) error
}

// Manifest remembers what the engine already holds.
type Manifest interface {
	Diff(records []domdoc.Record) (changeset.Set, error)
	Commit(set changeset.Set) error
}

// Searcher reads live facet counts.
type Searcher interface {
	Search(ctx context.Context, p request.Params) (result.Response, error)
}
