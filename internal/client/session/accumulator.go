package session

import (
	"github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
)

// Accumulator concatenates result pages in order and tracks how many were loaded.
type Accumulator struct {
	pageSize int
	page     int
	hits     []document.Document
	total    int
	facets   map[string]int
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator(pageSize int) *Accumulator {
	return &Accumulator{pageSize: pageSize}
}

// Reset discards every page.
func (a *Accumulator) Reset() {
	a.page = 0
	a.hits = nil
	a.total = 0
	a.facets = nil
}

// Append adds the next page and advances the counter.
func (a *Accumulator) Append(resp result.Response) {
	a.hits = append(a.hits, resp.Hits...)
	a.page++
	a.total = resp.Total()
	a.facets = resp.CategoryCounts()
}

// HasMore reports whether another page exists past the loaded ones.
func (a *Accumulator) HasMore() bool {
	return a.page > 0 && a.page*a.pageSize < a.total
}

// Total returns the authoritative total of the last page.
func (a *Accumulator) Total() int { return a.total }

// Page returns the number of loaded pages.
func (a *Accumulator) Page() int { return a.page }

// Len returns the number of accumulated hits.
func (a *Accumulator) Len() int { return len(a.hits) }

// Hits returns a copy of the accumulated hits.
func (a *Accumulator) Hits() []document.Document {
	out := make([]document.Document, len(a.hits))
	copy(out, a.hits)
	return out
}

// Facets returns a copy of the per-category counts from the last page.
func (a *Accumulator) Facets() map[string]int {
	if a.facets == nil {
		return nil
	}
	out := make(map[string]int, len(a.facets))
	for k, v := range a.facets {
		out[k] = v
	}
	return out
}
