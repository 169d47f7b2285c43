// Package api is the REST adapter for the storefront backend. It implements
// the core ports over HTTP and converts every failure into a *domain.Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/core/ports"
	"github.com/pawshop/storefront/internal/infrastructure/metrics"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 4 << 20

type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenSource
	log     zerolog.Logger
}

var (
	_ ports.AuthAPI    = (*Client)(nil)
	_ ports.CatalogAPI = (*Client)(nil)
	_ ports.BookingAPI = (*Client)(nil)
	_ ports.AdminAPI   = (*Client)(nil)
)

// NewClient builds a client for the backend at cfg.BaseURL. tokens supplies
// the bearer credential per request and may be nil for anonymous use.
func NewClient(cfg Config, tokens ports.TokenSource, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid base url %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base url %q must be http or https", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    hc,
		tokens:  tokens,
		log:     log.With().Str("component", "api_client").Logger(),
	}, nil
}

// call describes one backend request. endpoint is the logical operation and
// labels metrics and logs; path is the concrete URL path.
type call struct {
	endpoint    string
	method      string
	path        string
	body        io.Reader
	contentType string
}

func jsonCall(endpoint, method, path string, payload any) (call, error) {
	c := call{endpoint: endpoint, method: method, path: path}
	if payload == nil {
		return c, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return c, fmt.Errorf("%s: encode request: %w", endpoint, err)
	}
	c.body = bytes.NewReader(raw)
	c.contentType = "application/json"
	return c, nil
}

// do sends the request and returns the raw response body. Non-2xx answers
// and transport failures come back as *domain.Error.
func (c *Client) do(ctx context.Context, in call) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, in.method, c.baseURL+in.path, in.body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", in.endpoint, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in.contentType != "" {
		req.Header.Set("Content-Type", in.contentType)
	}
	if c.tokens != nil {
		if tok := c.tokens.AccessToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.APIRequestDuration.WithLabelValues(in.endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(in.endpoint, string(domain.KindNetwork)).Inc()
		c.log.Debug().Err(err).
			Str("endpoint", in.endpoint).
			Str("request_id", requestID).
			Msg("backend unreachable")
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(in.endpoint, string(domain.KindNetwork)).Inc()
		return nil, networkError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := classify(in.endpoint, resp.StatusCode, body)
		metrics.APIRequestsTotal.WithLabelValues(in.endpoint, string(apiErr.Kind)).Inc()
		c.log.Debug().
			Str("endpoint", in.endpoint).
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Str("kind", string(apiErr.Kind)).
			Msg("backend rejected request")
		return nil, apiErr
	}

	metrics.APIRequestsTotal.WithLabelValues(in.endpoint, "ok").Inc()
	c.log.Trace().
		Str("endpoint", in.endpoint).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("backend call")
	return body, nil
}

// fetch is do plus JSON decoding into out.
func (c *Client) fetch(ctx context.Context, in call, out any) error {
	body, err := c.do(ctx, in)
	if err != nil {
		return err
	}
	return decode(in.endpoint, body, out)
}

func (c *Client) get(ctx context.Context, endpoint, path string, out any) error {
	return c.fetch(ctx, call{endpoint: endpoint, method: http.MethodGet, path: path}, out)
}

func (c *Client) delete(ctx context.Context, endpoint, path string) error {
	_, err := c.do(ctx, call{endpoint: endpoint, method: http.MethodDelete, path: path})
	return err
}

func (c *Client) sendJSON(ctx context.Context, endpoint, method, path string, payload, out any) error {
	in, err := jsonCall(endpoint, method, path, payload)
	if err != nil {
		return err
	}
	return c.fetch(ctx, in, out)
}

func decode(endpoint string, body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domain.Error{
			Kind:    domain.KindServer,
			Message: "the server sent a response this client cannot read",
			Err:     fmt.Errorf("%s: decode response: %w", endpoint, err),
		}
	}
	return nil
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
