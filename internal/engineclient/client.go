// Package engineclient provides the HTTP client the native host bridge uses
// to hand URLs to the running TurboGet engine.
package engineclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dariusconca170-prog/turboget-bridge/internal/relay"
)

// DefaultTimeout bounds one hand-off request to the engine's local endpoint.
const DefaultTimeout = 5 * time.Second

// AddDownloadPath is the engine's hand-off endpoint.
const AddDownloadPath = "/add_download"

// Client is an HTTP client for the engine's local control endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a Client for the engine at baseURL
// (e.g. "http://127.0.0.1:9876").
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the engine endpoint this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AddDownload hands one URL to the engine. The engine queues the retrieval
// independently; a successful response only means the URL was accepted.
func (c *Client) AddDownload(ctx context.Context, msg relay.Message) error {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(msg); err != nil {
		return fmt.Errorf("failed to encode request; %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+AddDownloadPath, buf)
	if err != nil {
		return fmt.Errorf("failed to create request; %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach engine; %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine rejected download (status %d)", resp.StatusCode)
	}

	return nil
}
