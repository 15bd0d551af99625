// Package catalogapi talks to the plant catalog's HTTP API.
package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"herbalsearch/internal/domain"
)

// RequestIDHeader carries a per-request id so client and server logs can be matched
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is kept in StatusError
const maxErrorBody = 512

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog api: unexpected status %d: %s", e.StatusCode, e.Message)
}

// Client queries the catalog API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    *time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout; 0 keeps requests unbounded.
// It applies to a copy of the http.Client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// NewClient creates a client for the catalog at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid catalog url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// SearchPlants runs GET /api/plants?search=term
func (c *Client) SearchPlants(ctx context.Context, term string) (*domain.PlantsResponse, error) {
	q := url.Values{}
	q.Set("search", term)
	return c.plants(ctx, q)
}

// PlantsInCategory runs GET /api/plants?category=category
func (c *Client) PlantsInCategory(ctx context.Context, category string) (*domain.PlantsResponse, error) {
	q := url.Values{}
	q.Set("category", category)
	return c.plants(ctx, q)
}

func (c *Client) plants(ctx context.Context, q url.Values) (*domain.PlantsResponse, error) {
	u := c.baseURL.JoinPath("api", "plants")
	u.RawQuery = q.Encode()

	var resp domain.PlantsResponse
	if err := c.getJSON(ctx, u.String(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", reqID, err)
	}
	defer res.Body.Close()
	log.Printf("GET %s -> %d in %s (request %s)", rawURL, res.StatusCode, time.Since(start).Round(time.Millisecond), reqID)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return statusError(res)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for request %s: %w", reqID, err)
	}
	return nil
}

func statusError(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	var er domain.ErrorResponse
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &er) == nil && er.Error != "" {
		msg = er.Error
	}
	return &StatusError{StatusCode: res.StatusCode, Message: msg}
}
