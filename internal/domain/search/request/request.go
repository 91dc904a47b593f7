// Package request holds the client-side search request and the planned engine call.
package request

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 512
	// DefaultPageSize is the number of hits fetched per page.
	DefaultPageSize = 100
	// MaxLimit bounds a single engine call.
	MaxLimit = 1000
	// MaxCategories bounds a multi-selection.
	MaxCategories = filter.MaxConditionsPerGroup
)

// Request is what the user asked for: text, a category selection and a page.
// An empty selection means all categories.
type Request struct {
	query      string
	categories []string
	page       int
}

// New validates a request. Categories are UI labels; duplicates are dropped, first occurrence wins.
func New(query string, categories []string, page int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if page < 1 {
		return Request{}, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidRequest, page)
	}

	var cats []string
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || slices.Contains(cats, c) {
			continue
		}
		cats = append(cats, c)
	}
	if len(cats) > MaxCategories {
		return Request{}, fmt.Errorf("%w: too many categories (max %d)", domain.ErrInvalidRequest, MaxCategories)
	}

	return Request{query: query, categories: cats, page: page}, nil
}

// Query returns the free-text query.
func (r Request) Query() string { return r.query }

// Categories returns the selected labels in selection order.
func (r Request) Categories() []string { return slices.Clone(r.categories) }

// Page returns the 1-based page number.
func (r Request) Page() int { return r.page }

// Signature identifies the result set the request belongs to, independent of page
// and of the order in which categories were selected.
func (r Request) Signature() string {
	sorted := slices.Clone(r.categories)
	slices.Sort(sorted)
	return r.query + "\x00" + strings.Join(sorted, ",")
}

// Params is one planned call to the search engine.
type Params struct {
	Query  string
	Limit  int
	Offset int
	Filter filter.Expression
	Facets []string
}

// Validate checks the bounds the engine relies on.
func (p Params) Validate() error {
	if len(p.Query) > MaxQueryLength {
		return fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if p.Limit < 0 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 0 and %d", domain.ErrInvalidRequest, MaxLimit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidRequest)
	}
	return nil
}
