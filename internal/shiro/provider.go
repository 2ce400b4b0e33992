package shiro

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alvarorichard/goshiro/internal/extractors"
	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/alvarorichard/goshiro/internal/util"
	"github.com/pkg/errors"
)

// LinkExtractor resolves playable links for a video id. It is shared by
// every provider that hosts its videos on the same mirrors.
type LinkExtractor interface {
	Extract(ctx context.Context, videoID string, callback func(models.ExtractorLink)) error
}

// ProviderOptions overrides the provider's collaborators. Zero fields fall
// back to the shared HTTP client, the pattern token scraper and the
// Vidstream extractor.
type ProviderOptions struct {
	HTTPClient  *http.Client
	TokenSource TokenSource
	Extractor   LinkExtractor
}

// Provider is the Shiro content provider
type Provider struct {
	cfg        Config
	api        *Client
	tokens     *TokenStore
	normalizer Normalizer
	extractor  LinkExtractor
}

// NewProvider wires a provider for cfg
func NewProvider(cfg Config, opts ProviderOptions) *Provider {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = util.GetSharedClient()
	}
	source := opts.TokenSource
	if source == nil {
		source = NewPatternSource(httpClient, cfg)
	}
	tokens := NewTokenStore(source)
	extractor := opts.Extractor
	if extractor == nil {
		extractor = extractors.NewVidstream(httpClient, cfg.VidstreamURL, cfg.UserAgent)
	}

	return &Provider{
		cfg:        cfg,
		api:        NewClient(httpClient, cfg, tokens),
		tokens:     tokens,
		normalizer: Normalizer{MainURL: cfg.MainURL, CDNURL: cfg.CDNURL},
		extractor:  extractor,
	}
}

func (p *Provider) Name() string         { return sourceName }
func (p *Provider) MainURL() string      { return p.cfg.MainURL }
func (p *Provider) HasMainPage() bool    { return true }
func (p *Provider) HasQuickSearch() bool { return true }

// Tokens exposes the credential holder so hosts can invalidate it
func (p *Provider) Tokens() *TokenStore { return p.tokens }

// MainPage returns the Trending, Ongoing and Latest sections
func (p *Provider) MainPage(ctx context.Context) ([]models.HomePageList, error) {
	const path = "/latest"
	body, err := p.api.Request(ctx, path, nil, p.cfg.ListingTimeout)
	if err != nil {
		return nil, err
	}

	var page homePage
	if err := Decode(path, body, &page); err != nil {
		return nil, err
	}

	return []models.HomePageList{
		p.homeList("Trending", page.Data.TrendingAnimes),
		p.homeList("Ongoing", page.Data.OngoingAnimes),
		p.homeList("Latest", page.Data.LatestAnimes),
	}, nil
}

func (p *Provider) homeList(name string, list []animePageData) models.HomePageList {
	items := make([]models.ShowSummary, 0, len(list))
	for _, d := range list {
		items = append(items, p.normalizer.ListingSummary(d))
	}
	return models.HomePageList{Name: name, Items: items}
}

// QuickSearch queries the auto-complete endpoint
func (p *Provider) QuickSearch(ctx context.Context, query string) ([]models.ShowSummary, error) {
	path := "/anime/auto-complete/" + Escape(query)
	body, err := p.api.Request(ctx, path, nil, p.cfg.SearchTimeout)
	if err != nil {
		return nil, err
	}
	if IsEmptyResult(body) {
		return []models.ShowSummary{}, nil
	}

	var resp searchResponse
	if err := Decode(path, body, &resp); err != nil {
		return nil, err
	}
	return p.summaries(resp.Data), nil
}

// Search queries the advanced search endpoint
func (p *Provider) Search(ctx context.Context, query string) ([]models.ShowSummary, error) {
	const path = "/advanced"
	body, err := p.api.Request(ctx, path, url.Values{"search": {query}}, p.cfg.SearchTimeout)
	if err != nil {
		return nil, err
	}
	if IsEmptyResult(body) {
		return []models.ShowSummary{}, nil
	}

	var resp fullSearchResponse
	if err := Decode(path, body, &resp); err != nil {
		return nil, err
	}
	return p.summaries(resp.Data.Nav.CurrentPage.Items), nil
}

func (p *Provider) summaries(shows []searchShow) []models.ShowSummary {
	out := make([]models.ShowSummary, 0, len(shows))
	for _, s := range shows {
		out = append(out, p.normalizer.SearchSummary(s))
	}
	return out
}

// Load fetches a show by page URL or slug
func (p *Provider) Load(ctx context.Context, showURL string) (*models.ShowDetail, error) {
	slug := p.normalizer.SlugFromURL(showURL)
	if slug == "" {
		return nil, errors.Errorf("no slug in %q", showURL)
	}

	path := "/anime/slug/" + Escape(slug)
	body, err := p.api.Request(ctx, path, nil, p.cfg.DetailTimeout)
	if err != nil {
		return nil, err
	}
	if IsEmptyResult(body) {
		return nil, errors.Wrapf(ErrShowNotFound, "slug %s", slug)
	}

	var page animePage
	if err := Decode(path, body, &page); err != nil {
		return nil, err
	}

	detail := p.normalizer.Detail(page.Data)
	util.Debug("Shiro show loaded", "slug", slug, "episodes", len(detail.Episodes), "dub", detail.DubStatus)
	return &detail, nil
}

// LoadLinks hands the video id to the shared link extractor. It needs no
// API token.
func (p *Provider) LoadLinks(ctx context.Context, videoID string, callback func(models.ExtractorLink)) error {
	return p.extractor.Extract(ctx, videoID, callback)
}
