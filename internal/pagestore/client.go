// Package pagestore fetches page sources and rendered pages from the page
// server that hosts them.
package pagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// maxPageBytes caps the size of a fetched page.
const maxPageBytes = 8 << 20

// ErrPageNotFound is returned when the page server has no page by that name.
var ErrPageNotFound = errors.New("page not found")

// StatusError is an unexpected HTTP status from the page server.
type StatusError struct {
	Op   string
	Page string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Op, e.Page, e.Code, e.Body)
}

// Retryable reports whether the request may succeed if repeated.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Client communicates with the page server HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
}

func NewClient(baseURL, apiKey string, timeout time.Duration, attempts int) *Client {
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		attempts: uint(attempts),
		delay:    500 * time.Millisecond,
	}
}

// GetSource returns the markdown source of a page.
func (c *Client) GetSource(ctx context.Context, name string) ([]byte, error) {
	return c.get(ctx, "get source", name, c.baseURL+"/"+url.PathEscape(name)+"/source")
}

// GetRendered returns the rendered HTML of a page.
func (c *Client) GetRendered(ctx context.Context, name string) ([]byte, error) {
	return c.get(ctx, "get page", name, c.baseURL+"/"+url.PathEscape(name))
}

func (c *Client) get(ctx context.Context, op, name, u string) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			return c.fetch(ctx, op, name, u)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
	)
}

func (c *Client) fetch(ctx context.Context, op, name, u string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s %s: %w", op, name, ErrPageNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Op: op, Page: name, Code: resp.StatusCode, Body: string(respBody)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return body, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrPageNotFound) || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
