// Package document stores corpus records as engine hashes and owns the index lifecycle.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/devindex/internal/db"
	domdoc "github.com/kailas-cloud/devindex/internal/domain/document"
)

// store is the consumer interface for documents (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	DelMulti(ctx context.Context, keys []string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/ingest.Repository.
type Repo struct {
	store  store
	layout Layout
}

// New creates a document repository.
func New(s store, layout Layout) *Repo {
	return &Repo{store: s, layout: layout}
}

// EnsureIndex creates the index unless it exists. Reports whether it was created.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, r.layout.IndexName)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", r.layout.IndexName, err)
	}
	if exists {
		return false, nil
	}

	def, err := r.layout.Definition()
	if err != nil {
		return false, fmt.Errorf("index definition: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", r.layout.IndexName, err)
	}
	return true, nil
}

// DropIndex removes the index definition. A missing index is not an error.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.layout.IndexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.layout.IndexName, err)
	}
	return nil
}

// Upsert writes records in one pipelined round-trip.
func (r *Repo) Upsert(ctx context.Context, records []domdoc.Record) error {
	if len(records) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(records))
	for i := range records {
		items[i] = db.HashSetItem{
			Key:    r.layout.Key(records[i].ID),
			Fields: buildHashFields(&records[i]),
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d documents: %w", len(records), err)
	}
	return nil
}

// Delete removes documents by id.
func (r *Repo) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.layout.Key(id)
	}
	if err := r.store.DelMulti(ctx, keys); err != nil {
		return fmt.Errorf("delete %d documents: %w", len(ids), err)
	}
	return nil
}

// Decode rebuilds a document from a search hit's hash fields.
func (r *Repo) Decode(key string, fields map[string]string) (domdoc.Document, error) {
	return domdoc.FromRecord(parseHashFields(r.layout.ID(key), fields))
}
