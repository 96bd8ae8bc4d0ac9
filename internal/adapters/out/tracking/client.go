// Package tracking talks to the shipment tracking service over HTTP.
package tracking

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orderledger/internal/core/domain/model/parcel"
	"orderledger/internal/core/ports"
)

const maxBodyBytes = 1 << 20

// StatusError is returned for any non-2xx answer.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error includes the response body the service sent.
func (e *StatusError) Error() string {
	return fmt.Sprintf("tracking service: %s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// DefaultTimeout bounds each call when NewClient is given no positive timeout.
const DefaultTimeout = 5 * time.Second

// Client implements ports.TrackingClient against GET and PUT {base}/parcels/{id}.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a client. Each call gets its own deadline of timeout on top of the
// caller's context; a timeout that is not positive becomes DefaultTimeout. httpClient may
// be nil.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    httpClient,
		logger:  logger.With("component", "tracking-client"),
	}
}

// GetParcel fetches the parcel document and the ETag it was served with.
func (c *Client) GetParcel(ctx context.Context, parcelID string) (*parcel.Parcel, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.parcelURL(parcelID), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	body, etag, err := c.do(req)
	if err != nil {
		return nil, err
	}

	return parcel.Decode(parcelID, body, etag)
}

// UpdateParcel replaces the parcel document. The ETag of p, when set, is sent as If-Match
// so a concurrent change on the tracking side makes the write fail with 412.
func (c *Client) UpdateParcel(ctx context.Context, p *parcel.Parcel) (*parcel.Parcel, error) {
	payload, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.parcelURL(p.ID()), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if etag := p.ETag(); etag != "" {
		req.Header.Set("If-Match", etag)
	}

	body, etag, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return p.WithETag(etag), nil
	}
	return parcel.Decode(p.ID(), body, etag)
}

func (c *Client) do(req *http.Request) ([]byte, string, error) {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(req.Context(), "tracking request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err,
		)
		return nil, "", fmt.Errorf("tracking service: %s %s: %w", req.Method, req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("tracking service: read response: %w", err)
	}

	c.logger.DebugContext(req.Context(), "tracking request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), 256),
		}
	}

	return body, resp.Header.Get("ETag"), nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) parcelURL(parcelID string) string {
	return c.baseURL + "/parcels/" + url.PathEscape(parcelID)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ ports.TrackingClient = (*Client)(nil)
