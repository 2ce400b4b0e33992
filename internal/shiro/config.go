// Package shiro implements the Shiro content provider: token scraping, the
// token-authenticated API client and the mapping of its payloads into the
// shared show models.
package shiro

import "time"

const (
	ShiroBase      = "https://shiro.is"
	ShiroAPI       = "https://tapi.shiro.is"
	ShiroCDN       = "https://cdn.shiro.is"
	VidstreamBase  = "https://gogo-stream.com"
	ShiroUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0"

	ListingTimeout = 60 * time.Second
	DetailTimeout  = 120 * time.Second
)

// Config holds the hosts and per-call timeouts used by the provider.
// A zero timeout means util.DefaultRequestTimeout applies.
type Config struct {
	MainURL      string
	APIURL       string
	CDNURL       string
	VidstreamURL string
	UserAgent    string

	ListingTimeout time.Duration
	DetailTimeout  time.Duration
	SearchTimeout  time.Duration
	// ScrapeTimeout bounds each of the two token page fetches
	ScrapeTimeout time.Duration
}

// DefaultConfig returns the production hosts and timeouts
func DefaultConfig() Config {
	return Config{
		MainURL:        ShiroBase,
		APIURL:         ShiroAPI,
		CDNURL:         ShiroCDN,
		VidstreamURL:   VidstreamBase,
		UserAgent:      ShiroUserAgent,
		ListingTimeout: ListingTimeout,
		DetailTimeout:  DetailTimeout,
	}
}
