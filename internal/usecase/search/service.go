// Package search serves planned search calls on behalf of the client.
package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/search/filter"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
	"github.com/kailas-cloud/devindex/internal/logger"
	"github.com/kailas-cloud/devindex/internal/metrics"
)

// Service validates search calls and forwards them to the engine.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search runs one planned call. Engine failures are reported as ErrQueryService.
func (s *Service) Search(ctx context.Context, p request.Params) (result.Response, error) {
	if err := p.Validate(); err != nil {
		return result.Response{}, err
	}
	if err := validateFilter(p.Filter); err != nil {
		return result.Response{}, err
	}
	for _, f := range p.Facets {
		if f != result.CategoryField {
			return result.Response{}, fmt.Errorf("%w: unsupported facet %q", domain.ErrInvalidRequest, f)
		}
	}

	filtered := strconv.FormatBool(!p.Filter.IsEmpty())
	start := time.Now()
	resp, err := s.repo.Search(ctx, p)
	metrics.SearchEngineDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(filtered, "error").Inc()
		logger.FromContext(ctx).Warn("search failed",
			zap.String("query", p.Query),
			zap.String("filter", p.Filter.String()),
			zap.Error(err),
		)
		return result.Response{}, fmt.Errorf("%w: %w", domain.ErrQueryService, err)
	}

	metrics.SearchRequestsTotal.WithLabelValues(filtered, "ok").Inc()
	return resp, nil
}

// validateFilter accepts only category predicates over the stored category literals.
func validateFilter(expr filter.Expression) error {
	for _, group := range [][]filter.Condition{expr.Must(), expr.Should(), expr.MustNot()} {
		for _, c := range group {
			if c.Key() != result.CategoryField {
				return fmt.Errorf("%w: unsupported filter field %q", domain.ErrInvalidRequest, c.Key())
			}
			if !category.Category(c.Match()).IsValid() {
				return fmt.Errorf("%w: %w: %q", domain.ErrInvalidRequest, domain.ErrUnknownCategory, c.Match())
			}
		}
	}
	return nil
}
