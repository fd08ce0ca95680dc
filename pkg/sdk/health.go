package sdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// Health returns the server's health report. A degraded server answers
// 503 with a report body; that body is returned alongside ErrUnavailable
// so callers can inspect which probe failed.
func (c *Client) Health(ctx context.Context) (h Health, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	err = c.do(ctx, request{
		method: http.MethodGet,
		path:   "/healthz",
	}, &h)
	if err == nil {
		return h, nil
	}

	// 503 carries the health report in place of the error envelope.
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusServiceUnavailable {
		if degraded, ok := healthFromError(apiErr); ok {
			return degraded, err
		}
	}
	return Health{}, fmt.Errorf("health: %w", err)
}

// healthFromError recovers the report embedded in a 503 response body.
func healthFromError(apiErr *APIError) (Health, bool) {
	var h Health
	if json.Unmarshal([]byte(apiErr.Message), &h) != nil || h.Status == "" {
		return Health{}, false
	}
	return h, true
}
