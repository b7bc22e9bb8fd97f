// Package api dispatches typed requests against the GitHub REST API. The
// dispatcher issues one GET per call, parses the body into a raw JSON
// object, and delegates to the endpoint's decode constructor; transport,
// protocol, and decode failures each surface through their own error type.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/douhashi/kensaku/internal/decode"
	"github.com/douhashi/kensaku/internal/logger"
	"github.com/douhashi/kensaku/internal/version"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com/"

// Client holds the shared request configuration: base URL, HTTP client,
// and default headers. It is read-only after construction and safe for
// concurrent use; each dispatch is independent.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

// clientConfig collects option values before validation
type clientConfig struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logger.Logger
}

// Option はクライアントの設定オプション
type Option func(*clientConfig)

// WithBaseURL はAPIのベースURLを設定するオプション
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithToken は認証トークンを設定するオプション
func WithToken(token string) Option {
	return func(c *clientConfig) {
		c.token = token
	}
}

// WithHTTPClient は下位のHTTPクライアントを差し替えるオプション
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = httpClient
	}
}

// WithLogger はリクエスト/レスポンスのデバッグログを有効にするオプション
func WithLogger(l logger.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// NewClient creates a new API client. Without options it talks to the
// public GitHub API anonymously over http.DefaultClient's transport.
func NewClient(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	base, err := url.Parse(cfg.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("invalid base URL: %q is not absolute", cfg.baseURL)
	}
	// Endpoint paths are resolved relative to the base, so it must end
	// with a slash or the last path segment would be dropped.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		if cfg.token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.token})
			httpClient = oauth2.NewClient(context.Background(), ts)
		} else {
			httpClient = &http.Client{}
		}
	}

	if cfg.logger != nil {
		transport := httpClient.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		wrapped := *httpClient
		wrapped.Transport = &loggingRoundTripper{base: transport, logger: cfg.logger}
		httpClient = &wrapped
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		userAgent:  "kensaku/" + version.Get().Version,
	}, nil
}

// Do issues the endpoint's request and decodes the response body through
// the endpoint's decode constructor. The returned response and error are
// mutually exclusive. Transport and protocol failures come back as
// *APIError; decode failures come back as *decode.Error.
func Do[T any](ctx context.Context, c *Client, ep Endpoint[T]) (*T, error) {
	if ep.Method != http.MethodGet {
		return nil, fmt.Errorf("unsupported method: %s", ep.Method)
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: ep.Path})
	u.RawQuery = ep.Params.Encode()

	req, err := http.NewRequestWithContext(ctx, ep.Method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			Type:        ErrorTypeNetwork,
			Message:     err.Error(),
			OriginalErr: err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{
			Type:        ErrorTypeNetwork,
			Message:     "failed to read response body",
			OriginalErr: err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	var obj decode.Object
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, &APIError{
			Type:        ErrorTypeUnexpectedResponse,
			StatusCode:  resp.StatusCode,
			Message:     "response body is not a JSON object",
			OriginalErr: err,
		}
	}

	v, err := ep.Decode(obj)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Request dispatches the endpoint asynchronously and delivers the outcome
// through handler, which is invoked exactly once, off the caller's stack
// frame, with either a response or an error but never both. Concurrent
// Request calls race on the transport and complete in no defined order.
func Request[T any](ctx context.Context, c *Client, ep Endpoint[T], handler func(*T, error)) {
	go func() {
		handler(Do(ctx, c, ep))
	}()
}
