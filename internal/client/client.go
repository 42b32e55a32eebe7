// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client calls the operator search API.
//
// A Client performs exactly one GET per call and hands back the server's
// response untouched. It does not validate input, retry, cache, or log;
// every failure reaches the caller through the returned error.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/operator-search/internal/httputil"
	"github.com/pdiddy/operator-search/pkg/types"
)

// DefaultLimit is the limit sent when the caller does not supply one.
const DefaultLimit = 10

const searchPath = "/search"

// Response is the raw outcome of a successful search call.
type Response struct {
	*httputil.Response
}

// Decode parses the body as the search API's JSON envelope. SearchOperators
// never calls this; it exists for callers that want typed results.
func (r *Response) Decode() (types.SearchResult, error) {
	var out types.SearchResult
	if err := json.Unmarshal(r.Body, &out); err != nil {
		return types.SearchResult{}, fmt.Errorf("parsing search response: %w", err)
	}
	return out, nil
}

// Client is bound to one base address for its whole lifetime. It holds no
// mutable state and is safe for concurrent use.
type Client struct {
	http      *http.Client
	base      string
	userAgent string
}

// New returns a Client for cfg.BaseURL (DefaultBaseURL when empty). When
// httpClient is nil a client with cfg.Timeout is created.
func New(cfg types.ClientConfig, httpClient *http.Client) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = types.DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", base, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be an absolute http(s) URL", base)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:      httpClient,
		base:      strings.TrimRight(base, "/"),
		userAgent: cfg.UserAgent,
	}, nil
}

// BaseURL returns the address requests are issued against.
func (c *Client) BaseURL() string { return c.base }

// SearchOperators searches with the default limit of 10.
func (c *Client) SearchOperators(ctx context.Context, query string) (*Response, error) {
	return c.SearchOperatorsLimit(ctx, query, DefaultLimit)
}

// SearchOperatorsLimit issues GET {base}/search?query=...&limit=... with both
// values sent verbatim. A non-2xx reply is returned as *httputil.StatusError.
func (c *Client) SearchOperatorsLimit(ctx context.Context, query string, limit int) (*Response, error) {
	params := url.Values{
		"query": {query},
		"limit": {strconv.Itoa(limit)},
	}
	reqURL := c.base + searchPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.Do(c.http, req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	return &Response{Response: resp}, nil
}
