// Package api is the client for the content API that owns blog posts,
// projects, comments and accounts. The frontend server never stores any of
// these records itself.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	dialTimeout    = 5 * time.Second
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// Client issues requests against the API rooted at a base URL. A Client
// without a token is anonymous; WithToken returns a copy that authenticates
// every request.
type Client struct {
	base  *url.URL
	http  *http.Client
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client with a copy of hc.
// Its Transport is wrapped so the bearer credential is still attached.
// Options run in order, so a WithTimeout after it applies to the copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.http = &cp
	}
}

// WithTimeout sets the per-request timeout (default 15s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates an anonymous Client for the API at baseURL,
// e.g. "http://localhost:5000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base url %q must be absolute", baseURL)
	}
	dialer := &net.Dialer{Timeout: dialTimeout}
	c := &Client{
		base: u,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext:         dialer.DialContext,
				MaxIdleConnsPerHost: 16,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithToken returns a copy of c that sends token as a bearer credential.
// An empty token yields an anonymous copy.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token returns the bearer credential this client sends, if any.
func (c *Client) Token() string {
	return c.token
}

// bearerTransport adds the Authorization header to each outgoing request.
type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+t.token)
	return t.next.RoundTrip(r)
}

func (c *Client) httpClient() *http.Client {
	if c.token == "" {
		return c.http
	}
	next := c.http.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	hc := *c.http
	hc.Transport = &bearerTransport{token: c.token, next: next}
	return &hc
}

// endpoint joins the base URL with an already-escaped path.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.RawPath = c.base.EscapedPath() + path
	if p, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = p
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request. route is the templated path used for metrics and
// errors ("/blog/:id"); path is the concrete one. in is JSON-encoded when
// non-nil and out is decoded from a 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &APIError{Kind: ErrTransport, Method: method, Endpoint: route, Err: fmt.Errorf("encode body: %w", err)}
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return &APIError{Kind: ErrTransport, Method: method, Endpoint: route, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		observe(method, route, 0, time.Since(start))
		return &APIError{Kind: ErrTransport, Method: method, Endpoint: route, Err: err}
	}
	defer resp.Body.Close()
	observe(method, route, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newHTTPError(method, route, resp, errBody)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: ErrDecode, Method: method, Endpoint: route, Status: resp.StatusCode, Err: err}
	}
	return nil
}
