package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/devindex/internal/db"
	docrepo "github.com/kailas-cloud/devindex/internal/repository/document"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	facetsFn func(ctx context.Context, q *db.FacetQuery) (map[string]int, error)
}

func (m *mockStore) Search(ctx context.Context, q *db.Query) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) Facets(ctx context.Context, q *db.FacetQuery) (map[string]int, error) {
	if m.facetsFn != nil {
		return m.facetsFn(ctx, q)
	}
	return map[string]int{}, nil
}

var testLayout = docrepo.Layout{IndexName: "devindex", KeyPrefix: "devindex:doc:"}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, docrepo.New(nil, testLayout), testLayout), ms
}
