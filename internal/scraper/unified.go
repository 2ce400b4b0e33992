// Package scraper provides a unified interface over the content providers
package scraper

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/alvarorichard/goshiro/internal/shiro"
	"github.com/alvarorichard/goshiro/internal/util"
)

// ScraperType represents different scraper types
type ScraperType int

const (
	ShiroType ScraperType = iota
)

// UnifiedScraper provides a common interface for all providers
type UnifiedScraper interface {
	MainPage(ctx context.Context) ([]models.HomePageList, error)
	QuickSearch(ctx context.Context, query string) ([]models.ShowSummary, error)
	Search(ctx context.Context, query string) ([]models.ShowSummary, error)
	Load(ctx context.Context, showURL string) (*models.ShowDetail, error)
	LoadLinks(ctx context.Context, videoID string, callback func(models.ExtractorLink)) error
	GetType() ScraperType
}

// ScraperManager manages multiple scrapers
type ScraperManager struct {
	scrapers map[ScraperType]UnifiedScraper
	timeout  time.Duration
}

// NewScraperManager creates a manager with the Shiro provider configured by
// cfg. SearchAll waits as long as the provider's own search call may take.
func NewScraperManager(cfg shiro.Config, opts shiro.ProviderOptions) *ScraperManager {
	manager := NewScraperManagerWith(&ShiroAdapter{Provider: shiro.NewProvider(cfg, opts)})
	manager.SetSearchTimeout(cfg.SearchTimeout)
	return manager
}

// NewScraperManagerWith creates a manager over the given scrapers. SearchAll
// waits up to util.DefaultRequestTimeout unless SetSearchTimeout says otherwise.
func NewScraperManagerWith(scrapers ...UnifiedScraper) *ScraperManager {
	manager := &ScraperManager{
		scrapers: make(map[ScraperType]UnifiedScraper, len(scrapers)),
		timeout:  util.DefaultRequestTimeout,
	}
	for _, s := range scrapers {
		manager.scrapers[s.GetType()] = s
	}
	return manager
}

// SetSearchTimeout changes how long SearchAll waits for slow scrapers
func (sm *ScraperManager) SetSearchTimeout(d time.Duration) {
	if d > 0 {
		sm.timeout = d
	}
}

// GetScraper returns a specific scraper by type
func (sm *ScraperManager) GetScraper(scraperType ScraperType) (UnifiedScraper, error) {
	if scraper, exists := sm.scrapers[scraperType]; exists {
		return scraper, nil
	}
	return nil, fmt.Errorf("scraper type %v not found", scraperType)
}

// Types lists the registered scraper types in ascending order
func (sm *ScraperManager) Types() []ScraperType {
	types := make([]ScraperType, 0, len(sm.scrapers))
	for t := range sm.scrapers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// SearchAll runs the query on one scraper when scraperType is set, otherwise
// on every registered scraper concurrently. Failed or slow sources are
// skipped as long as another source answered.
func (sm *ScraperManager) SearchAll(ctx context.Context, query string, scraperType *ScraperType) ([]models.ShowSummary, error) {
	if scraperType != nil {
		scraper, err := sm.GetScraper(*scraperType)
		if err != nil {
			return nil, err
		}
		util.Debug("Searching specific scraper", "scraper", DisplayName(*scraperType))
		results, err := scraper.Search(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search failed on %s: %w", DisplayName(*scraperType), err)
		}
		return results, nil
	}

	util.Debug("Starting concurrent search across all sources", "query", query)

	type searchResult struct {
		scraperType ScraperType
		results     []models.ShowSummary
		err         error
	}

	ctx, cancel := context.WithTimeout(ctx, sm.timeout)
	defer cancel()

	resultChan := make(chan searchResult, len(sm.scrapers))
	var wg sync.WaitGroup

	for sType, scraper := range sm.scrapers {
		wg.Add(1)
		go func(st ScraperType, s UnifiedScraper) {
			defer wg.Done()

			done := make(chan searchResult, 1)
			go func() {
				results, err := s.Search(ctx, query)
				done <- searchResult{scraperType: st, results: results, err: err}
			}()

			select {
			case res := <-done:
				resultChan <- res
			case <-ctx.Done():
				util.Debug("Search timeout", "source", DisplayName(st))
				resultChan <- searchResult{
					scraperType: st,
					err:         fmt.Errorf("search timed out after %v", sm.timeout),
				}
			}
		}(sType, scraper)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var searchErrors []string
	var firstErr error
	results := []models.ShowSummary{}
	for res := range resultChan {
		if res.err != nil {
			sourceName := DisplayName(res.scraperType)
			util.Debug("Search error", "source", sourceName, "error", res.err)
			searchErrors = append(searchErrors, fmt.Sprintf("%s: %v", sourceName, res.err))
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		results = append(results, res.results...)
	}

	if len(searchErrors) > 0 {
		for _, errMsg := range searchErrors {
			util.Warn("Search source unavailable", "details", errMsg)
		}
		if len(results) == 0 && len(searchErrors) == len(sm.scrapers) {
			return nil, fmt.Errorf("all sources failed (%s): %w", strings.Join(searchErrors, "; "), firstErr)
		}
	}

	util.Debug("Search summary", "query", query, "total", len(results))
	return results, nil
}

// DisplayName returns the display name for the scraper type
func DisplayName(scraperType ScraperType) string {
	switch scraperType {
	case ShiroType:
		return "Shiro"
	default:
		return "Unknown"
	}
}

// ShiroAdapter adapts the Shiro provider to the UnifiedScraper interface
type ShiroAdapter struct {
	*shiro.Provider
}

func (a *ShiroAdapter) GetType() ScraperType {
	return ShiroType
}
