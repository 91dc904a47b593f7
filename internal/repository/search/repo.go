// Package search runs planned queries against the engine and shapes the response.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/devindex/internal/db"
	domdoc "github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
	docrepo "github.com/kailas-cloud/devindex/internal/repository/document"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	Facets(ctx context.Context, q *db.FacetQuery) (map[string]int, error)
}

// decoder turns a hit's hash fields into a document.
type decoder interface {
	Decode(key string, fields map[string]string) (domdoc.Document, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store   store
	decoder decoder
	layout  docrepo.Layout
	now     func() time.Time
}

// New creates a search repository.
func New(s store, d decoder, layout docrepo.Layout) *Repo {
	return &Repo{store: s, decoder: d, layout: layout, now: time.Now}
}

// Search fetches one page of hits and the requested facet counts over the same filtered set.
func (r *Repo) Search(ctx context.Context, p request.Params) (result.Response, error) {
	start := r.now()

	sr, err := r.store.Search(ctx, &db.Query{
		IndexName:    r.layout.IndexName,
		Text:         p.Query,
		TextFields:   docrepo.TextFields,
		Filters:      p.Filter,
		Offset:       p.Offset,
		Limit:        p.Limit,
		ReturnFields: docrepo.DisplayFields,
	})
	if err != nil {
		return result.Response{}, fmt.Errorf("search %s: %w", r.layout.IndexName, err)
	}

	hits := make([]domdoc.Document, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		doc, err := r.decoder.Decode(e.Key, e.Fields)
		if err != nil {
			return result.Response{}, fmt.Errorf("decode hit %s: %w", e.Key, err)
		}
		hits = append(hits, doc)
	}

	var facets map[string]map[string]int
	for _, field := range p.Facets {
		counts, err := r.store.Facets(ctx, &db.FacetQuery{
			IndexName:  r.layout.IndexName,
			Text:       p.Query,
			TextFields: docrepo.TextFields,
			Filters:    p.Filter,
			Field:      field,
		})
		if err != nil {
			return result.Response{}, fmt.Errorf("facet %s: %w", field, err)
		}
		if facets == nil {
			facets = make(map[string]map[string]int, len(p.Facets))
		}
		facets[field] = counts
	}

	return result.Response{
		Hits:               hits,
		EstimatedTotalHits: sr.Total,
		FacetDistribution:  facets,
		ProcessingTimeMs:   r.now().Sub(start).Milliseconds(),
	}, nil
}
