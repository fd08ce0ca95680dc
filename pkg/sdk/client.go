package sdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

const defaultTimeout = 30 * time.Second

// Client is a lexord API client. Safe for concurrent use.
type Client struct {
	baseURL   string
	httpc     *http.Client
	token     string
	userAgent string
	encoder   *zstd.Encoder
	obs       *observer
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("sdk: base URL required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("sdk: invalid base URL: %w", err)
	}

	cfg := &clientConfig{
		userAgent: "lexord-sdk/" + sdkVersion,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		httpc:     cfg.httpClient,
		token:     cfg.token,
		userAgent: cfg.userAgent,
		obs:       obs,
	}

	if cfg.compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("sdk: create zstd encoder: %w", err)
		}
		c.encoder = enc
	}

	return c, nil
}

const sdkVersion = "0.1.0"

// request describes one API call for the do helper.
type request struct {
	method   string
	path     string
	query    url.Values
	body     any
	compress bool // zstd the body when the client has compression enabled
}

// do executes an API request and decodes a 2xx JSON response into out.
// Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, req request, out any) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	compressed := false
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("sdk: encode request body: %w", err)
		}
		if req.compress && c.encoder != nil {
			raw = c.encoder.EncodeAll(raw, nil)
			compressed = true
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("sdk: build request: %w", err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if compressed {
		httpReq.Header.Set("Content-Encoding", "zstd")
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sdk: %s %s: %w", req.method, req.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sdk: decode response: %w", err)
	}
	return nil
}

// decodeAPIError turns a non-2xx response into *APIError. A body that is
// not the error envelope is kept verbatim as the message (the health
// endpoint answers 503 with a report body instead of an envelope).
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		var envelope errorBody
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		} else if len(raw) > 0 {
			apiErr.Message = string(raw)
		}
	}
	if apiErr.Code == "" {
		apiErr.Code = "http_" + fmt.Sprint(resp.StatusCode)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func corpusPath(name string, tail string) string {
	return "/api/v1/corpora/" + url.PathEscape(name) + tail
}
