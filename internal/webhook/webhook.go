// Package webhook delivers lead records to the remote collection endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rootwave/site/internal/lead"
	"github.com/rootwave/site/internal/metrics"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of a rejected response is kept for logging.
const maxErrorBody = 512

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook responded %d", e.Code)
}

// StatusCode returns the HTTP status of the rejected delivery.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Client posts records as JSON. It never retries.
type Client struct {
	url     string
	http    *http.Client
	metrics *metrics.LeadMetrics
}

// New returns a client for endpoint. A zero timeout uses DefaultTimeout;
// m may be nil.
func New(endpoint string, timeout time.Duration, m *metrics.LeadMetrics) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("webhook url is required")
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("webhook url must be http(s), got %q", endpoint)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:     endpoint,
		http:    &http.Client{Timeout: timeout},
		metrics: m,
	}, nil
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.url
}

// Deliver sends rec in one POST. Any 2xx response is success.
func (c *Client) Deliver(ctx context.Context, rec lead.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("submitting lead to webhook", "url", c.url)
	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		c.metrics.ObserveDelivery("failed", elapsed)
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.ObserveDelivery("rejected", elapsed)
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	c.metrics.ObserveDelivery("ok", elapsed)
	return nil
}
