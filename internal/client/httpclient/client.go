// Package httpclient calls the search HTTP API.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
	"github.com/kailas-cloud/devindex/internal/transport/api"
)

const (
	defaultTimeout = 10 * time.Second
	// maxErrorBody bounds how much of a failed response is read for the message.
	maxErrorBody = 4 << 10
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAPIKey sends the key as a Bearer token.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// Client executes planned search calls against a devindex server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("httpclient: base url is required")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Search posts p to the search endpoint. Transport failures and non-2xx answers are
// reported as ErrQueryService; a 400 is reported as ErrInvalidRequest.
func (c *Client) Search(ctx context.Context, p request.Params) (result.Response, error) {
	body, err := json.Marshal(api.FromParams(p))
	if err != nil {
		return result.Response{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+api.SearchPath, bytes.NewReader(body))
	if err != nil {
		return result.Response{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return result.Response{}, fmt.Errorf("%w: %w", domain.ErrQueryService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result.Response{}, statusError(resp)
	}

	var out api.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return result.Response{}, fmt.Errorf("%w: decode response: %w", domain.ErrQueryService, err)
	}
	decoded, err := out.Response()
	if err != nil {
		return result.Response{}, fmt.Errorf("%w: %w", domain.ErrQueryService, err)
	}
	return decoded, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := strings.TrimSpace(string(raw))
	var e api.ErrorResponse
	if json.Unmarshal(raw, &e) == nil && e.Message != "" {
		msg = e.Message
	}

	sentinel := domain.ErrQueryService
	if resp.StatusCode == http.StatusBadRequest {
		sentinel = domain.ErrInvalidRequest
	}
	return fmt.Errorf("%w: status %d: %s", sentinel, resp.StatusCode, msg)
}
