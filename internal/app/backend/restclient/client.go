// internal/app/backend/restclient/client.go
//
// Package restclient implements backend.Backend over the asset-management
// REST API. Reads are retried with exponential backoff; writes are sent once.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/backend"
	"github.com/dalemusser/assetdesk/internal/app/system/metrics"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Retries is the number of attempts for GET requests (minimum 1).
	Retries      int
	RetryBackoff time.Duration
	MaxBackoff   time.Duration

	// RateLimit is requests per second across the client; zero disables it.
	RateLimit float64
	RateBurst int

	// Client-credentials auth; disabled when ClientID or TokenURL is empty.
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string

	// Transport overrides the base HTTP transport (tests).
	Transport http.RoundTripper
}

// Client talks to the REST backend.
type Client struct {
	base       *url.URL
	http       *http.Client
	limiter    *rate.Limiter
	retries    int
	backoff    time.Duration
	maxBackoff time.Duration
	log        *zap.Logger
}

var _ backend.Backend = (*Client)(nil)

// New builds a Client from cfg.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("restclient: base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("restclient: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("restclient: base URL must be http or https, got %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	hc := &http.Client{Transport: transport, Timeout: cfg.Timeout}
	if cfg.ClientID != "" && cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Transport: transport, Timeout: cfg.Timeout})
		hc = cc.Client(ctx)
		hc.Timeout = cfg.Timeout
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		base:       base,
		http:       hc,
		limiter:    limiter,
		retries:    cfg.Retries,
		backoff:    cfg.RetryBackoff,
		maxBackoff: cfg.MaxBackoff,
		log:        logger,
	}, nil
}

// request describes one API call. Op is the templated operation name used
// for metrics and errors, e.g. "GET /asset-items/{id}".
type request struct {
	Op     string
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// do sends req and returns the decoded JSON body (nil for empty responses).
func (c *Client) do(ctx context.Context, req request) (any, error) {
	start := time.Now()
	raw, err := c.doRetry(ctx, req)
	metrics.ObserveBackend(req.Op, start, err)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &backend.Error{Op: req.Op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}

func (c *Client) doRetry(ctx context.Context, req request) ([]byte, error) {
	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &backend.Error{Op: req.Op, Err: fmt.Errorf("encode request: %w", err)}
		}
		payload = b
	}

	attempts := 1
	if req.Method == http.MethodGet {
		attempts = c.retries
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			wait := backoff(attempt-1, c.backoff, c.maxBackoff)
			c.log.Debug("retrying backend call",
				zap.String("op", req.Op),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(lastErr))
			metrics.ObserveRetry(req.Op)
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, &backend.Error{Op: req.Op, Err: ctx.Err()}
			case <-t.C:
			}
		}

		body, err := c.once(ctx, req, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err
		var be *backend.Error
		if ctx.Err() != nil || !errors.As(err, &be) || !be.Retryable() {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) once(ctx context.Context, req request, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &backend.Error{Op: req.Op, Err: err}
		}
	}

	// req.Path is already escaped; url.URL keeps the decoded form in Path.
	u := *c.base
	raw := c.base.EscapedPath() + req.Path
	path, err := url.PathUnescape(raw)
	if err != nil {
		return nil, &backend.Error{Op: req.Op, Err: err}
	}
	u.Path, u.RawPath = path, raw
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, &backend.Error{Op: req.Op, Err: err}
	}
	hreq.Header.Set("Accept", "application/json")
	if payload != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, &backend.Error{Op: req.Op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &backend.Error{Op: req.Op, Status: resp.StatusCode, Message: errorMessage(b)}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &backend.Error{Op: req.Op, Status: resp.StatusCode, Err: err}
	}
	return b, nil
}

// errorMessage extracts a human message from an error body, accepting the
// common {"message"}, {"error"}, {"detail"} shapes or plain text.
func errorMessage(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	var m map[string]any
	if json.Unmarshal(b, &m) == nil {
		for _, k := range []string{"message", "error", "detail"} {
			switch v := m[k].(type) {
			case string:
				if v != "" {
					return v
				}
			case map[string]any:
				if s, ok := v["message"].(string); ok && s != "" {
					return s
				}
			}
		}
		return ""
	}
	s := string(b)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// backoff returns base * 2^(n-1), capped at limit.
func backoff(n int, base, limit time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	d := base
	for i := 1; i < n; i++ {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	if d > limit {
		return limit
	}
	return d
}
