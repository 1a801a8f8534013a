// Package nrc fetches and parses the NRC power reactor status page.
package nrc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultStatusURL is the NRC daily power reactor status report.
const DefaultStatusURL = "https://www.nrc.gov/reading-rm/doc-collections/event-status/reactor-status/ps.html"

const userAgent = "reactor-watch/1.0"

// Client fetches the reactor status page.
type Client struct {
	url    string
	client *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// NewClient creates a status page client.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchStatusPage downloads the raw status page HTML.
func (c *Client) FetchStatusPage(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch status page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, c.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read status page: %w", err)
	}
	return string(body), nil
}
