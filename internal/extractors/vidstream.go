// Package extractors resolves video ids into playable links. Extractors are
// shared between providers that host their videos on the same mirrors.
package extractors

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/alvarorichard/goshiro/internal/util"
	"github.com/pkg/errors"
)

// ErrNoLinks is returned when the mirror page lists no servers
var ErrNoLinks = errors.New("extractor: no links found")

const vidstreamName = "Vidstream"

// Vidstream reads the mirror list of a Vidstream streaming page
type Vidstream struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
}

// NewVidstream creates an extractor for the Vidstream host at baseURL
func NewVidstream(client *http.Client, baseURL, userAgent string) *Vidstream {
	if client == nil {
		client = util.GetSharedClient()
	}
	return &Vidstream{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// SetTimeout bounds the mirror page fetch; zero means util.DefaultRequestTimeout
func (v *Vidstream) SetTimeout(d time.Duration) { v.timeout = d }

// Name returns the extractor name used as link source
func (v *Vidstream) Name() string { return vidstreamName }

// Extract calls callback once per mirror listed for videoID
func (v *Vidstream) Extract(ctx context.Context, videoID string, callback func(models.ExtractorLink)) error {
	if strings.TrimSpace(videoID) == "" {
		return errors.New("extractor: empty video id")
	}
	pageURL := fmt.Sprintf("%s/streaming.php?id=%s", v.baseURL, url.QueryEscape(videoID))

	ctx, cancel := util.WithRequestTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if v.userAgent != "" {
		req.Header.Set("User-Agent", v.userAgent)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to fetch streaming page")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("streaming page returned: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to parse streaming page")
	}

	links := parseMirrors(doc, pageURL)
	util.Debug("Vidstream mirrors", "id", videoID, "count", len(links))
	if len(links) == 0 {
		return ErrNoLinks
	}
	for _, link := range links {
		callback(link)
	}
	return nil
}

func parseMirrors(doc *goquery.Document, referer string) []models.ExtractorLink {
	var links []models.ExtractorLink
	seen := make(map[string]bool)

	doc.Find(".list-server-items li").Each(func(i int, s *goquery.Selection) {
		src, exists := s.Attr("data-video")
		src = strings.TrimSpace(src)
		if !exists || src == "" {
			return
		}
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		if seen[src] {
			return
		}
		seen[src] = true

		name := strings.TrimSpace(s.Text())
		if name == "" {
			name = fmt.Sprintf("Mirror %d", i+1)
		}
		links = append(links, models.ExtractorLink{
			Source:  vidstreamName,
			Name:    name,
			URL:     src,
			Referer: referer,
			Quality: "Unknown",
			IsM3u8:  strings.Contains(src, ".m3u8"),
		})
	})
	return links
}
