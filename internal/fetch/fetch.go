// Package fetch is the raw-page fetching collaborator: plain HTTP GETs with
// a stable identity string and capped retries for transient failures.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Getter fetches one URL and returns the response body. Source adapters
// depend on this interface so tests can serve fixtures instead.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Client is the production Getter.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client identifying itself with the given user agent.
func New(userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: userAgent,
	}
}

// Get fetches a URL, retrying transient failures with capped exponential
// backoff. Client errors (4xx) are permanent and not retried.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	return body, nil
}
