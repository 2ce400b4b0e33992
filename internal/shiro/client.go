package shiro

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/alvarorichard/goshiro/internal/util"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// emptyResultBody is what the API sends for a search without hits. It does
// not decode into the search shapes, so callers check for it first.
var emptyResultBody = []byte(`{"status":"Found","data":[]}`)

// IsEmptyResult reports whether body is the API's no-results answer
func IsEmptyResult(body []byte) bool {
	return bytes.Equal(bytes.TrimSpace(body), emptyResultBody)
}

// Escape percent-encodes s for a query value or a path segment, with
// spaces as %20.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Client issues token-authenticated GET requests against the API host
type Client struct {
	client    *http.Client
	apiBase   string
	userAgent string
	tokens    *TokenStore
}

// NewClient creates an API client for cfg.APIURL using tokens for auth
func NewClient(client *http.Client, cfg Config, tokens *TokenStore) *Client {
	if client == nil {
		client = util.GetSharedClient()
	}
	return &Client{
		client:    client,
		apiBase:   strings.TrimRight(cfg.APIURL, "/"),
		userAgent: cfg.UserAgent,
		tokens:    tokens,
	}
}

// Request performs GET apiBase+path with query and the token appended and
// returns the raw body. A timeout of zero means util.DefaultRequestTimeout.
//
// When the API refuses the token (401/403) the token is refreshed and the
// request retried once.
func (c *Client) Request(ctx context.Context, path string, query url.Values, timeout time.Duration) ([]byte, error) {
	token, err := c.tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenUnavailable, err)
	}

	body, err := c.get(ctx, path, query, token, timeout)
	var httpErr *HTTPError
	if err == nil || !errors.As(err, &httpErr) || !httpErr.IsAuthFailure() {
		return body, err
	}

	util.Debug("Shiro token refused, refreshing", "path", path, "status", httpErr.StatusCode)
	token, err = c.tokens.refreshIfStale(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenUnavailable, err)
	}
	return c.get(ctx, path, query, token, timeout)
}

// Decode unmarshals body into v, reporting failures as MalformedResponse
func Decode(path string, body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &MalformedResponse{Path: path, Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, token string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := util.WithRequestTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path, query, token), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	util.Debug("Shiro API response", "path", path, "status", resp.StatusCode, "bytes", len(body), "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Path: path, StatusCode: resp.StatusCode}
	}
	return body, nil
}

// buildURL encodes query values in key order and appends the token last
func (c *Client) buildURL(path string, query url.Values, token string) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(c.apiBase)
	sb.WriteString(path)
	sb.WriteByte('?')
	for _, k := range keys {
		for _, v := range query[k] {
			sb.WriteString(Escape(k))
			sb.WriteByte('=')
			sb.WriteString(Escape(v))
			sb.WriteByte('&')
		}
	}
	sb.WriteString("token=")
	sb.WriteString(Escape(token))
	return sb.String()
}
