// Package goshiro provides a public API for browsing the Shiro catalog.
// This package can be used as a library in other Go projects.
package goshiro

import (
	"context"
	"net/http"
	"time"

	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/alvarorichard/goshiro/internal/scraper"
	"github.com/alvarorichard/goshiro/internal/shiro"
	"github.com/alvarorichard/goshiro/pkg/goshiro/types"
)

var (
	// ErrTokenUnavailable is returned when no API token could be scraped
	ErrTokenUnavailable = shiro.ErrTokenUnavailable
	// ErrShowNotFound is returned by Load for unknown slugs
	ErrShowNotFound = shiro.ErrShowNotFound
)

// Options overrides the hosts and timeouts. Zero values keep the defaults.
type Options struct {
	MainURL      string
	APIURL       string
	CDNURL       string
	VidstreamURL string
	UserAgent    string

	ListingTimeout time.Duration
	DetailTimeout  time.Duration
	SearchTimeout  time.Duration

	HTTPClient *http.Client
}

func (o Options) config() shiro.Config {
	cfg := shiro.DefaultConfig()
	setString(&cfg.MainURL, o.MainURL)
	setString(&cfg.APIURL, o.APIURL)
	setString(&cfg.CDNURL, o.CDNURL)
	setString(&cfg.VidstreamURL, o.VidstreamURL)
	setString(&cfg.UserAgent, o.UserAgent)
	if o.ListingTimeout > 0 {
		cfg.ListingTimeout = o.ListingTimeout
	}
	if o.DetailTimeout > 0 {
		cfg.DetailTimeout = o.DetailTimeout
	}
	if o.SearchTimeout > 0 {
		cfg.SearchTimeout = o.SearchTimeout
	}
	return cfg
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Client is the main client for interacting with the catalog
type Client struct {
	manager *scraper.ScraperManager
}

// NewClient creates a client against the production hosts
func NewClient() *Client {
	return NewClientWithOptions(Options{})
}

// NewClientWithOptions creates a client with overridden hosts or timeouts
func NewClientWithOptions(opts Options) *Client {
	return &Client{
		manager: scraper.NewScraperManager(opts.config(), shiro.ProviderOptions{HTTPClient: opts.HTTPClient}),
	}
}

func (c *Client) source(source types.Source) (scraper.UnifiedScraper, error) {
	return c.manager.GetScraper(source.ToScraperType())
}

// Home returns the Trending, Ongoing and Latest sections
func (c *Client) Home(ctx context.Context) ([]*types.HomeSection, error) {
	s, err := c.source(types.SourceShiro)
	if err != nil {
		return nil, err
	}
	lists, err := s.MainPage(ctx)
	if err != nil {
		return nil, err
	}
	return types.FromInternalHome(lists), nil
}

// Search runs a full search. If source is nil, every available source is
// searched. An empty result is not an error.
func (c *Client) Search(ctx context.Context, query string, source *types.Source) ([]*types.Show, error) {
	var scraperType *scraper.ScraperType
	if source != nil {
		st := source.ToScraperType()
		scraperType = &st
	}

	results, err := c.manager.SearchAll(ctx, query, scraperType)
	if err != nil {
		return nil, err
	}
	return types.FromInternalShowList(results), nil
}

// QuickSearch queries the auto-complete endpoint
func (c *Client) QuickSearch(ctx context.Context, query string) ([]*types.Show, error) {
	s, err := c.source(types.SourceShiro)
	if err != nil {
		return nil, err
	}
	results, err := s.QuickSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	return types.FromInternalShowList(results), nil
}

// Load fetches a show by its page URL or slug
func (c *Client) Load(ctx context.Context, urlOrSlug string) (*types.ShowDetail, error) {
	s, err := c.source(types.SourceShiro)
	if err != nil {
		return nil, err
	}
	detail, err := s.Load(ctx, urlOrSlug)
	if err != nil {
		return nil, err
	}
	return types.FromInternalDetail(detail), nil
}

// Links resolves the mirrors of an episode video id
func (c *Client) Links(ctx context.Context, videoID string) ([]*types.Link, error) {
	s, err := c.source(types.SourceShiro)
	if err != nil {
		return nil, err
	}
	var links []*types.Link
	err = s.LoadLinks(ctx, videoID, func(l models.ExtractorLink) {
		links = append(links, types.FromInternalLink(l))
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// GetAvailableSources returns a list of all available sources
func (c *Client) GetAvailableSources() []types.Source {
	return []types.Source{types.SourceShiro}
}
