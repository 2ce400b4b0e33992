package shiro

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTokenUnavailable means no API token could be obtained. Every provider
	// operation fails with it before issuing any API call.
	ErrTokenUnavailable = errors.New("shiro: api token unavailable")

	// ErrShowNotFound is returned by Load when the API answers with the
	// empty-result body.
	ErrShowNotFound = errors.New("shiro: show not found")
)

// ScrapeReason tells which step of the token scrape found nothing
type ScrapeReason int

const (
	NoScriptTag ScrapeReason = iota + 1
	NoTokenLiteral
)

func (r ScrapeReason) String() string {
	switch r {
	case NoScriptTag:
		return "no main script tag in page"
	case NoTokenLiteral:
		return "no token literal in script"
	default:
		return "unknown"
	}
}

// ScrapeError is returned when the page or the script no longer contain
// the expected patterns.
type ScrapeError struct {
	Reason ScrapeReason
}

func (e *ScrapeError) Error() string {
	return "shiro: token scrape failed: " + e.Reason.String()
}

// TransportError wraps network failures and timeouts. Path never includes
// the token.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("shiro: request %s failed: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx answer
type HTTPError struct {
	Path       string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("shiro: request %s returned status %d", e.Path, e.StatusCode)
}

// IsAuthFailure reports whether the status means the token was refused
func (e *HTTPError) IsAuthFailure() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// MalformedResponse is a body that did not decode into the expected shape
type MalformedResponse struct {
	Path string
	Err  error
}

func (e *MalformedResponse) Error() string {
	return fmt.Sprintf("shiro: malformed response from %s: %v", e.Path, e.Err)
}

func (e *MalformedResponse) Unwrap() error { return e.Err }
