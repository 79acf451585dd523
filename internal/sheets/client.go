// Package sheets fetches published Google Sheets worksheets as CSV.
//
// A worksheet is retrieved through the gviz export endpoint
// (https://docs.google.com/spreadsheets/d/{id}/gviz/tq?tqx=out:csv&sheet={name})
// which needs no credentials for sheets shared as "anyone with the link".
package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/corpix/uarand"

	apperrors "github.com/wayacademy/manychat-bot-go/internal/errors"
	"github.com/wayacademy/manychat-bot-go/internal/metrics"
)

const exportURLFormat = "https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s"

// Client fetches worksheet rows over HTTP with retries.
type Client struct {
	httpClient   *http.Client
	spreadsheet  string
	baseURL      string // overrides the Google endpoint in tests
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	userAgents   []string
	metrics      *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternative export endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithMetrics attaches a metrics recorder to fetches.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRetry overrides the retry budget and backoff window.
func WithRetry(maxRetries int, initialDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialDelay = initialDelay
		c.maxDelay = maxDelay
	}
}

// NewClient creates a sheet client for the given spreadsheet ID.
func NewClient(spreadsheetID string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		spreadsheet:  spreadsheetID,
		maxRetries:   3,
		initialDelay: 1 * time.Second,
		maxDelay:     8 * time.Second,
		userAgents:   generateUserAgents(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRows downloads a worksheet and parses it as CSV. The first row is
// the header row; ragged rows are tolerated and handled downstream.
func (c *Client) FetchRows(ctx context.Context, sheet string) ([][]string, error) {
	start := time.Now()
	rows, err := c.fetchRows(ctx, sheet)

	if c.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordSheetRequest(sheet, status, time.Since(start).Seconds())
	}
	return rows, err
}

func (c *Client) fetchRows(ctx context.Context, sheet string) ([][]string, error) {
	var rows [][]string

	err := RetryWithBackoff(ctx, c.maxRetries, c.initialDelay, c.maxDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.exportURL(sheet), nil)
		if err != nil {
			return Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		req.Header.Set("User-Agent", c.randomUserAgent())
		req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			err := apperrors.NewSheetError(sheet, resp.StatusCode,
				fmt.Errorf("unexpected status %d", resp.StatusCode))

			// 4xx means a bad sheet name or revoked share link; retrying
			// cannot help. 429 is the exception.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return Permanent(err)
			}
			return err
		}

		reader := csv.NewReader(resp.Body)
		reader.FieldsPerRecord = -1 // worksheets routinely have ragged rows

		parsed, err := reader.ReadAll()
		if err != nil {
			return Permanent(apperrors.NewSheetError(sheet, resp.StatusCode,
				fmt.Errorf("failed to parse csv: %w", err)))
		}

		rows = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (c *Client) exportURL(sheet string) string {
	if c.baseURL != "" {
		return fmt.Sprintf("%s?tqx=out:csv&sheet=%s", c.baseURL, url.QueryEscape(sheet))
	}
	return fmt.Sprintf(exportURLFormat, url.PathEscape(c.spreadsheet), url.QueryEscape(sheet))
}

// randomUserAgent returns a user agent string, falling back to uarand
// when the static pool is empty.
func (c *Client) randomUserAgent() string {
	if len(c.userAgents) == 0 {
		return uarand.GetRandom()
	}
	return c.userAgents[time.Now().UnixNano()%int64(len(c.userAgents))]
}

func generateUserAgents() []string {
	return []string{
		// Chrome on Windows
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		// Chrome on macOS
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		// Firefox on Windows
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		// Safari on macOS
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
		// Chrome on Linux
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}
