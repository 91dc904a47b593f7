// Package db declares the storage contracts the search engine adapter fulfils.
// Consumers depend on the narrow parts; only process wiring sees Store.
package db

import (
	"context"
	"time"
)

// Store is everything the engine adapter offers.
type Store interface {
	Pinger
	DocumentWriter
	IndexAdmin
	Searcher
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem is one document hash: its key and field values.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// DocumentWriter writes and removes document hashes in bulk.
type DocumentWriter interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	DelMulti(ctx context.Context, keys []string) error
}

// IndexAdmin manages the FT index lifecycle.
type IndexAdmin interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher reads pages of hits and facet counts.
type Searcher interface {
	Search(ctx context.Context, q *Query) (*SearchResult, error)
	Facets(ctx context.Context, q *FacetQuery) (map[string]int, error)
}
