package devindex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/devindex/internal/client/httpclient"
	"github.com/kailas-cloud/devindex/internal/client/planner"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
)

// searchFetcher is the transport; replaced in tests.
type searchFetcher interface {
	Search(ctx context.Context, p request.Params) (result.Response, error)
}

// Client is the devindex SDK entry point. It is safe for concurrent use.
type Client struct {
	planner *planner.Planner
	fetcher searchFetcher
	obs     *observer
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		aliases:  planner.DefaultAliases(),
		pageSize: request.DefaultPageSize,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	p, err := planner.New(cfg.aliases, cfg.pageSize)
	if err != nil {
		return nil, fmt.Errorf("devindex: %w", err)
	}

	var hopts []httpclient.Option
	if cfg.apiKey != "" {
		hopts = append(hopts, httpclient.WithAPIKey(cfg.apiKey))
	}
	if cfg.httpClient != nil {
		hopts = append(hopts, httpclient.WithHTTPClient(cfg.httpClient))
	}
	hc, err := httpclient.New(baseURL, hopts...)
	if err != nil {
		return nil, fmt.Errorf("devindex: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return &Client{planner: p, fetcher: hc, obs: obs}, nil
}

// Search fetches page (1-based) of query, optionally restricted to categories.
// Categories are UI labels or stored literals; several are OR-ed together.
func (c *Client) Search(ctx context.Context, query string, page int, categories ...string) (Page, error) {
	start := time.Now()
	ev := searchEvent{query: query, page: page, categories: categories}
	ev.params, ev.result, ev.err = c.search(ctx, query, page, categories)
	c.obs.observeSearch(start, ev)
	return ev.result, ev.err
}

func (c *Client) search(ctx context.Context, query string, page int, categories []string) (request.Params, Page, error) {
	req, err := request.New(query, categories, page)
	if err != nil {
		return request.Params{}, Page{}, err
	}
	params, err := c.planner.Plan(req)
	if err != nil {
		return request.Params{}, Page{}, err
	}

	resp, err := c.fetcher.Search(ctx, params)
	if err != nil {
		return params, Page{}, err
	}

	hits := make([]Hit, len(resp.Hits))
	for i, d := range resp.Hits {
		r := d.Record()
		hits[i] = Hit{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Category:    string(r.Category),
			Path:        r.Path,
			Image:       r.Image,
			Code:        r.Code,
			Keywords:    r.Keywords,
		}
	}

	total := resp.Total()
	return params, Page{
		Number:  page,
		Hits:    hits,
		Total:   total,
		HasMore: page*c.planner.PageSize() < total,
		Facets:  resp.CategoryCounts(),
	}, nil
}

// PageSize returns the number of hits per page.
func (c *Client) PageSize() int { return c.planner.PageSize() }
