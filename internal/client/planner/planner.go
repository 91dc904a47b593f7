// Package planner turns the user's selection into the parameters of one engine call.
package planner

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/search/filter"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
)

// DefaultAliases maps UI labels whose stored literal differs.
func DefaultAliases() map[string]string {
	return map[string]string{"emojis": string(category.Emoji)}
}

// Planner builds request.Params from a request.Request.
type Planner struct {
	aliases  map[string]category.Category
	pageSize int
}

// New creates a planner. Every alias must target a known category literal.
// A label with no alias is used as the literal itself.
func New(aliases map[string]string, pageSize int) (*Planner, error) {
	if pageSize <= 0 {
		pageSize = request.DefaultPageSize
	}
	if pageSize > request.MaxLimit {
		return nil, fmt.Errorf("page size %d exceeds %d", pageSize, request.MaxLimit)
	}

	resolved := make(map[string]category.Category, len(aliases))
	for label, literal := range aliases {
		c, ok := category.Parse(literal)
		if !ok {
			return nil, fmt.Errorf("alias %q: %w: %q", label, domain.ErrUnknownCategory, literal)
		}
		resolved[label] = c
	}
	return &Planner{aliases: resolved, pageSize: pageSize}, nil
}

// PageSize returns the number of hits per page.
func (p *Planner) PageSize() int { return p.pageSize }

// Resolve maps a UI label to its stored literal.
func (p *Planner) Resolve(label string) (category.Category, error) {
	if c, ok := p.aliases[label]; ok {
		return c, nil
	}
	if c, ok := category.Parse(label); ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownCategory, label)
}

// Plan builds the engine call for req. No categories means no filter, one gives an equality
// predicate, several give an OR of equalities in selection order. Category facets are
// always requested.
func (p *Planner) Plan(req request.Request) (request.Params, error) {
	var literals []string
	for _, label := range req.Categories() {
		c, err := p.Resolve(label)
		if err != nil {
			return request.Params{}, err
		}
		if !slices.Contains(literals, string(c)) {
			literals = append(literals, string(c))
		}
	}

	expr, err := filter.AnyOf(result.CategoryField, literals...)
	if err != nil {
		return request.Params{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	return request.Params{
		Query:  req.Query(),
		Limit:  p.pageSize,
		Offset: (req.Page() - 1) * p.pageSize,
		Filter: expr,
		Facets: []string{result.CategoryField},
	}, nil
}
