// Package result holds the search engine response.
package result

import "github.com/kailas-cloud/devindex/internal/domain/document"

// CategoryField is the facet the UI shows per-category totals for.
const CategoryField = "category"

// Response is one page of ranked hits plus counts.
type Response struct {
	Hits               []document.Document
	EstimatedTotalHits int
	FacetDistribution  map[string]map[string]int
	ProcessingTimeMs   int64
}

// CategoryCounts returns the per-category facet counts, nil if none were computed.
func (r Response) CategoryCounts() map[string]int {
	return r.FacetDistribution[CategoryField]
}

// FacetTotal sums the category facet counts.
func (r Response) FacetTotal() int {
	total := 0
	for _, n := range r.CategoryCounts() {
		total += n
	}
	return total
}

// Total is the authoritative hit count: the facet sum when positive, otherwise the estimate.
func (r Response) Total() int {
	if t := r.FacetTotal(); t > 0 {
		return t
	}
	return r.EstimatedTotalHits
}
