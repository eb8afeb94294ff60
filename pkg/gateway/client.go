// Package gateway implements the three upstream preference integrations.
// Each gateway executes a GraphQL-over-HTTP call carrying the caller's
// credential and returns the domain-shaped payload or fails. Gateways never
// substitute defaults for missing data, defaulting belongs to the aggregator.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// Config holds the settings shared by all gateways.
type Config struct {
	Endpoint      string
	Timeout       time.Duration
	RetryAttempts int // 1 means fail-fast, no retry
}

// Client executes GraphQL queries against a single upstream endpoint.
type Client struct {
	name     string
	endpoint string
	attempts int
	client   *http.Client
}

// NewClient creates a client for the named upstream
func NewClient(name string, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		name:     name,
		endpoint: cfg.Endpoint,
		attempts: attempts,
		client:   &http.Client{Timeout: timeout},
	}
}

// query posts the GraphQL query with the caller's credential and decodes the
// data envelope into out. Transient failures are retried with backoff when
// the client is configured with more than one attempt.
func (c *Client) query(ctx context.Context, credential, gqlQuery string, out any) error {
	retrier := repeater.NewBackoff(c.attempts, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		return c.queryOnce(ctx, credential, gqlQuery, out)
	})
}

func (c *Client) queryOnce(ctx context.Context, credential, gqlQuery string, out any) error {
	body, err := json.Marshal(map[string]any{"query": gqlQuery, "variables": map[string]any{}})
	if err != nil {
		return fmt.Errorf("marshal %s query: %w", c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Access-Token", credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upstream %s call: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream %s returned status %d", c.name, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("upstream %s read response: %w", c.name, err)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("upstream %s malformed response: %w", c.name, err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("upstream %s query failed: %s", c.name, envelope.Errors[0].Message)
	}
	if envelope.Data == nil || bytes.Equal(envelope.Data, []byte("null")) {
		return fmt.Errorf("upstream %s returned no data", c.name)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("upstream %s malformed data: %w", c.name, err)
	}
	return nil
}
