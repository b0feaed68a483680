// Package httpapi is the client of the storefront REST API.
package httpapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	_ port.CatalogAPI = (*Client)(nil)
	_ port.CartAPI    = (*Client)(nil)
	_ port.OrderAPI   = (*Client)(nil)
	_ port.AuthAPI    = (*Client)(nil)
)

const maxErrorBody = 1 << 20

var ErrInvalidBaseURL = errors.New("invalid base url")

type ClientOpt func(*clientOpts) error

type clientOpts struct {
	httpClient *http.Client
	timeout    time.Duration
	tlsConfig  *tls.Config
}

// HTTPClientOpt replaces the underlying [http.Client].
func HTTPClientOpt(hc *http.Client) ClientOpt {
	return func(o *clientOpts) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		o.httpClient = hc
		return nil
	}
}

// TimeoutOpt sets the request timeout. Zero means no timeout.
func TimeoutOpt(d time.Duration) ClientOpt {
	return func(o *clientOpts) error {
		if d < 0 {
			return fmt.Errorf("negative timeout %s", d)
		}
		o.timeout = d
		return nil
	}
}

func TLSConfigOpt(cfg *tls.Config) ClientOpt {
	return func(o *clientOpts) error {
		o.tlsConfig = cfg
		return nil
	}
}

// A Client calls the storefront API, attaching the bearer token of the
// token source to every request when one is present.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     port.TokenSource
}

func New(baseURL string, tokens port.TokenSource, opts ...ClientOpt) (*Client, error) {
	const op = "httpapi.New"

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrInvalidBaseURL, baseURL)
	}

	var options clientOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return &Client{
		baseURL:    u,
		httpClient: options.build(),
		tokens:     tokens,
	}, nil
}

func (o clientOpts) build() *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}

	hc := &http.Client{Timeout: o.timeout}
	if o.tlsConfig != nil {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = o.tlsConfig
		hc.Transport = tr
	}
	return hc
}

func (c *Client) url(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawPath = ""
	return u.String()
}

func (c *Client) accessToken() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.AccessToken()
}

// do sends the request and decodes a 2xx JSON body into out, if out is not nil.
func (c *Client) do(
	ctx context.Context, method, path string, in, out any,
) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Debug("failed to close response body", "err", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeAPIError(res)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeAPIError reads a DRF style error body: {"detail": "..."} or
// {"field": ["msg", ...]} or {"field": "msg"}.
func decodeAPIError(res *http.Response) error {
	apiErr := &domain.APIError{Status: res.StatusCode}

	b, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return apiErr
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return apiErr
	}

	for k, raw := range fields {
		msgs := decodeMessages(raw)
		if len(msgs) == 0 {
			continue
		}
		if k == "detail" {
			apiErr.Detail = msgs[0]
			continue
		}
		if apiErr.Fields == nil {
			apiErr.Fields = make(map[string][]string)
		}
		apiErr.Fields[k] = msgs
	}
	return apiErr
}

func decodeMessages(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var ss []string
	if err := json.Unmarshal(raw, &ss); err == nil {
		return ss
	}
	return nil
}
