package shiro

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/alvarorichard/goshiro/internal/util"
	"github.com/pkg/errors"
)

var (
	scriptTagRe    = regexp.MustCompile(`src="(/static/js/main.*?)"`)
	tokenLiteralRe = regexp.MustCompile(`token:"(.*?)"`)
)

// TokenSource obtains a fresh API token
type TokenSource interface {
	Acquire(ctx context.Context) (string, error)
}

// ExtractScriptPath finds the main bundle path referenced by the site's HTML
func ExtractScriptPath(html string) (string, error) {
	m := scriptTagRe.FindStringSubmatch(html)
	if len(m) < 2 {
		return "", &ScrapeError{Reason: NoScriptTag}
	}
	return m[1], nil
}

// ExtractToken finds the token literal inside the main bundle
func ExtractToken(script string) (string, error) {
	m := tokenLiteralRe.FindStringSubmatch(script)
	if len(m) < 2 {
		return "", &ScrapeError{Reason: NoTokenLiteral}
	}
	return m[1], nil
}

// PatternSource scrapes the token from the site root and its main script
type PatternSource struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
}

// NewPatternSource creates a scraper against cfg.MainURL
func NewPatternSource(client *http.Client, cfg Config) *PatternSource {
	if client == nil {
		client = util.GetSharedClient()
	}
	return &PatternSource{
		client:    client,
		baseURL:   cfg.MainURL,
		userAgent: cfg.UserAgent,
		timeout:   cfg.ScrapeTimeout,
	}
}

// Acquire fetches the root page, follows the main script reference and
// returns the token literal found there. No retries.
func (s *PatternSource) Acquire(ctx context.Context) (string, error) {
	html, err := s.fetch(ctx, s.baseURL)
	if err != nil {
		return "", err
	}

	path, err := ExtractScriptPath(html)
	if err != nil {
		return "", err
	}
	util.Debug("Shiro main script found", "path", path)

	script, err := s.fetch(ctx, s.baseURL+path)
	if err != nil {
		return "", err
	}
	return ExtractToken(script)
}

func (s *PatternSource) fetch(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := util.WithRequestTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &TransportError{Path: pageURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{Path: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Path: pageURL, Err: err}
	}
	return string(body), nil
}

// TokenStore owns the API token. It is safe for concurrent use. Acquisitions
// are shared: while one scrape is in flight every other caller that needs a
// token waits for it, and each waiter can leave early through its context.
// The value is always replaced wholesale.
type TokenStore struct {
	source TokenSource

	mu       sync.Mutex
	token    string
	valid    bool
	inflight *tokenCall
}

// tokenCall is one in-flight acquisition; done is closed once token and err
// are set.
type tokenCall struct {
	done  chan struct{}
	token string
	err   error
}

// NewTokenStore creates an empty store backed by source
func NewTokenStore(source TokenSource) *TokenStore {
	return &TokenStore{source: source}
}

// Get returns the cached token, acquiring one if none is cached
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.valid {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	call := s.startLocked()
	s.mu.Unlock()
	return s.wait(ctx, call)
}

// Peek returns the cached token without acquiring
func (s *TokenStore) Peek() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.valid
}

// Set installs a known token
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	s.token, s.valid = token, true
	s.mu.Unlock()
}

// Invalidate drops the cached token; the next Get scrapes again
func (s *TokenStore) Invalidate() {
	s.mu.Lock()
	s.token, s.valid = "", false
	s.mu.Unlock()
}

// Refresh forces a new scrape, joining one already in flight. On failure the
// store is left empty.
func (s *TokenStore) Refresh(ctx context.Context) (string, error) {
	s.mu.Lock()
	s.token, s.valid = "", false
	call := s.startLocked()
	s.mu.Unlock()
	return s.wait(ctx, call)
}

// refreshIfStale re-acquires only when the cached token is still the one
// that was refused, so concurrent auth failures cause a single scrape.
func (s *TokenStore) refreshIfStale(ctx context.Context, stale string) (string, error) {
	s.mu.Lock()
	if s.valid && s.token != stale {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	s.token, s.valid = "", false
	call := s.startLocked()
	s.mu.Unlock()
	return s.wait(ctx, call)
}

// startLocked returns the in-flight acquisition, starting one if needed.
// The scrape runs detached from the callers' contexts; PatternSource bounds
// it with its own timeout.
func (s *TokenStore) startLocked() *tokenCall {
	if s.inflight != nil {
		return s.inflight
	}
	call := &tokenCall{done: make(chan struct{})}
	s.inflight = call
	go s.acquire(call)
	return call
}

func (s *TokenStore) acquire(call *tokenCall) {
	var token string
	var err error
	if s.source == nil {
		err = errors.New("no token source configured")
	} else {
		token, err = s.source.Acquire(context.Background())
	}

	s.mu.Lock()
	if err != nil {
		util.Debug("Shiro token acquisition failed", "error", err)
	} else {
		s.token, s.valid = token, true
	}
	s.inflight = nil
	call.token, call.err = token, err
	s.mu.Unlock()
	close(call.done)
}

func (s *TokenStore) wait(ctx context.Context, call *tokenCall) (string, error) {
	select {
	case <-call.done:
		return call.token, call.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
