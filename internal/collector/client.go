// Package collector fetches the authoritative facility list for a reload pass.
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"facilities/internal/facility/models"
)

const (
	collectPath    = "/collect/facilities"
	defaultTimeout = 5 * time.Minute
	// errorBodyLimit caps how much of a failed response is kept for the message.
	errorBodyLimit = 512
)

// HTTPClient pulls facilities from the collector service over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout bounds a whole collection round-trip.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// NewHTTPClient creates a collector client for baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollectFacilities performs GET {baseURL}/collect/facilities. The body is
// either a bare JSON array or an object wrapping the array in "data".
func (c *HTTPClient) CollectFacilities(ctx context.Context) ([]models.Facility, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+collectPath, nil)
	if err != nil {
		return nil, newError(ErrorOutage, "create request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, newError(ErrorTimeout, "collect facilities", err)
		}
		return nil, newError(ErrorOutage, "collect facilities", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, newError(ErrorTimeout, "read response", err)
		}
		return nil, newError(ErrorOutage, "read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newError(ErrorOutage, fmt.Sprintf("unexpected status %s: %s", resp.Status, truncate(body)), nil)
	}

	facilities, err := decodeFacilities(body)
	if err != nil {
		return nil, newError(ErrorBadData, "decode facilities", err)
	}

	c.logger.InfoContext(ctx, "collected facilities",
		"count", len(facilities),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return facilities, nil
}

type envelope struct {
	Data []models.Facility `json:"data"`
}

// decodeFacilities accepts a JSON array or {"data": [...]}.
func decodeFacilities(body []byte) ([]models.Facility, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}
	if trimmed[0] == '[' {
		var facilities []models.Facility
		if err := json.Unmarshal(trimmed, &facilities); err != nil {
			return nil, err
		}
		return facilities, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, errors.New(`missing "data" array`)
	}
	return env.Data, nil
}

// DecodeFacilities parses a push-trigger body using the collector's wire format.
func DecodeFacilities(body []byte) ([]models.Facility, error) {
	facilities, err := decodeFacilities(body)
	if err != nil {
		return nil, fmt.Errorf("decode facilities: %w", err)
	}
	return facilities, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(body []byte) string {
	if len(body) > errorBodyLimit {
		body = body[:errorBodyLimit]
	}
	return string(bytes.TrimSpace(body))
}
