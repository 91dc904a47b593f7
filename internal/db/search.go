package db

import "github.com/kailas-cloud/devindex/internal/domain/search/filter"

// Query is the input for a paginated full-text search.
// An empty Text matches every document that passes Filters.
type Query struct {
	IndexName    string
	Text         string
	TextFields   []string
	Filters      filter.Expression
	Offset       int
	Limit        int
	ReturnFields []string
}

// FacetQuery counts matching documents grouped by one TAG field.
type FacetQuery struct {
	IndexName  string
	Text       string
	TextFields []string
	Filters    filter.Expression
	Field      string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
