// Package fetch crawls published movesets for dataset maintenance. Pages
// are fetched politely: rate limited, retried with backoff, and cached.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"royalemeta/internal/config"
)

const maxBackoff = 16 * time.Second

// NotFoundError marks a dex page that does not exist upstream.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.URL)
}

// Client fetches moveset pages with rate limiting and retry logic.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string
	maxRetries  int
	backoffSeed time.Duration
}

// NewClient creates a crawler client from config. The configured delay
// drives both the request rate and the retry backoff seed.
func NewClient(cfg config.FetchConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(cfg.Delay), 1),
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		maxRetries:  cfg.MaxRetries,
		backoffSeed: 10 * cfg.Delay,
	}
}

// MovesetPage fetches the raw dex page for a dex page number like "382".
func (c *Client) MovesetPage(ctx context.Context, dexID string) ([]byte, error) {
	url := fmt.Sprintf("%s/pokedex-sv/%s.shtml", c.baseURL, dexID)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dex page %s: %w", dexID, err)
	}
	return body, nil
}

// get performs a GET with rate limiting, retries on network errors, and
// honors Retry-After on 429 responses.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	backoff := c.backoffSeed

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < c.maxRetries {
				if err := sleep(ctx, backoff); err != nil {
					return nil, err
				}
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return nil, lastErr
		}

		body, status, err := drain(resp)
		if err != nil {
			return nil, err
		}

		switch status {
		case http.StatusOK:
			return body, nil

		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			if attempt < c.maxRetries {
				wait := backoff
				if ra := resp.Header.Get("Retry-After"); ra != "" {
					if d, err := time.ParseDuration(ra + "s"); err == nil {
						wait = d
					}
				}
				if err := sleep(ctx, wait); err != nil {
					return nil, err
				}
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return nil, lastErr

		case http.StatusNotFound:
			return nil, &NotFoundError{URL: url}

		default:
			return nil, fmt.Errorf("request failed with status %d: %s", status, string(body))
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func drain(resp *http.Response) ([]byte, int, error) {
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
