// Package api defines the JSON contract of the search HTTP endpoint shared by the server and the client.
package api

import (
	"fmt"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/domain/search/filter"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
)

// SearchPath is the route of the search endpoint.
const SearchPath = "/search"

// ErrorCode is a machine-readable error kind.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest      ErrorCode = "bad_request"
	ErrorCodeUnknownCategory ErrorCode = "unknown_category"
	ErrorCodeSearchService   ErrorCode = "search_service_error"
	ErrorCodeUnauthorized    ErrorCode = "unauthorized"
	ErrorCodeInternal        ErrorCode = "internal_error"
)

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Q      string   `json:"q"`
	Limit  *int     `json:"limit,omitempty"`
	Offset int      `json:"offset,omitempty"`
	Filter string   `json:"filter,omitempty"`
	Facets []string `json:"facets,omitempty"`
}

// SearchResponse is the body of a successful POST /search.
type SearchResponse struct {
	Hits               []document.Record         `json:"hits"`
	EstimatedTotalHits int                       `json:"estimatedTotalHits"`
	FacetDistribution  map[string]map[string]int `json:"facetDistribution,omitempty"`
	ProcessingTimeMs   int64                     `json:"processingTimeMs"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// FromParams renders planned params as a request body.
func FromParams(p request.Params) SearchRequest {
	limit := p.Limit
	return SearchRequest{
		Q:      p.Query,
		Limit:  &limit,
		Offset: p.Offset,
		Filter: p.Filter.String(),
		Facets: p.Facets,
	}
}

// Params parses the request body. A missing limit means one default page.
func (r SearchRequest) Params() (request.Params, error) {
	expr, err := filter.Parse(r.Filter)
	if err != nil {
		return request.Params{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	limit := request.DefaultPageSize
	if r.Limit != nil {
		limit = *r.Limit
	}

	p := request.Params{
		Query:  r.Q,
		Limit:  limit,
		Offset: r.Offset,
		Filter: expr,
		Facets: r.Facets,
	}
	if err := p.Validate(); err != nil {
		return request.Params{}, err
	}
	return p, nil
}

// FromResponse renders a response. Stems are internal to the index and are not sent.
func FromResponse(resp result.Response) SearchResponse {
	hits := make([]document.Record, len(resp.Hits))
	for i, d := range resp.Hits {
		rec := d.Record()
		rec.Stems = nil
		hits[i] = rec
	}
	return SearchResponse{
		Hits:               hits,
		EstimatedTotalHits: resp.EstimatedTotalHits,
		FacetDistribution:  resp.FacetDistribution,
		ProcessingTimeMs:   resp.ProcessingTimeMs,
	}
}

// Response decodes the hits back into document variants.
func (r SearchResponse) Response() (result.Response, error) {
	hits := make([]document.Document, 0, len(r.Hits))
	for _, rec := range r.Hits {
		d, err := document.FromRecord(rec)
		if err != nil {
			return result.Response{}, err
		}
		hits = append(hits, d)
	}
	return result.Response{
		Hits:               hits,
		EstimatedTotalHits: r.EstimatedTotalHits,
		FacetDistribution:  r.FacetDistribution,
		ProcessingTimeMs:   r.ProcessingTimeMs,
	}, nil
}
