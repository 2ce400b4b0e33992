package scraper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/alvarorichard/goshiro/internal/shiro"
	"github.com/alvarorichard/goshiro/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockScraper implements UnifiedScraper for testing
type MockScraper struct {
	searchFunc      func(query string) ([]models.ShowSummary, error)
	scraperType     ScraperType
	searchCallCount atomic.Int32
	searchDelay     time.Duration
}

func (m *MockScraper) MainPage(ctx context.Context) ([]models.HomePageList, error) {
	return nil, nil
}

func (m *MockScraper) QuickSearch(ctx context.Context, query string) ([]models.ShowSummary, error) {
	return m.Search(ctx, query)
}

func (m *MockScraper) Search(ctx context.Context, query string) ([]models.ShowSummary, error) {
	m.searchCallCount.Add(1)
	if m.searchDelay > 0 {
		select {
		case <-time.After(m.searchDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.searchFunc != nil {
		return m.searchFunc(query)
	}
	return nil, nil
}

func (m *MockScraper) Load(ctx context.Context, showURL string) (*models.ShowDetail, error) {
	return nil, nil
}

func (m *MockScraper) LoadLinks(ctx context.Context, videoID string, callback func(models.ExtractorLink)) error {
	return nil
}

func (m *MockScraper) GetType() ScraperType {
	return m.scraperType
}

const secondType ScraperType = ShiroType + 1

func found(titles ...string) func(string) ([]models.ShowSummary, error) {
	return func(string) ([]models.ShowSummary, error) {
		out := make([]models.ShowSummary, 0, len(titles))
		for _, t := range titles {
			out = append(out, models.ShowSummary{Title: t})
		}
		return out, nil
	}
}

func TestSearchAll_BothSourcesSucceed(t *testing.T) {
	t.Parallel()

	first := &MockScraper{scraperType: ShiroType, searchFunc: found("Naruto", "Naruto Shippuden")}
	second := &MockScraper{scraperType: secondType, searchFunc: found("Naruto")}

	manager := NewScraperManagerWith(first, second)
	results, err := manager.SearchAll(context.Background(), "naruto", nil)

	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, int32(1), first.searchCallCount.Load())
	assert.Equal(t, int32(1), second.searchCallCount.Load())
}

func TestSearchAll_OneSourceFails(t *testing.T) {
	t.Parallel()

	first := &MockScraper{scraperType: ShiroType, searchFunc: found("Naruto")}
	second := &MockScraper{scraperType: secondType, searchFunc: func(string) ([]models.ShowSummary, error) {
		return nil, errors.New("connection refused")
	}}

	results, err := NewScraperManagerWith(first, second).SearchAll(context.Background(), "naruto", nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchAll_AllSourcesFail(t *testing.T) {
	t.Parallel()

	first := &MockScraper{scraperType: ShiroType, searchFunc: func(string) ([]models.ShowSummary, error) {
		return nil, shiro.ErrTokenUnavailable
	}}

	_, err := NewScraperManagerWith(first).SearchAll(context.Background(), "naruto", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shiro.ErrTokenUnavailable))
	assert.Contains(t, err.Error(), "Shiro")
}

func TestSearchAll_NoResultsIsNotAnError(t *testing.T) {
	t.Parallel()

	first := &MockScraper{scraperType: ShiroType, searchFunc: found()}
	results, err := NewScraperManagerWith(first).SearchAll(context.Background(), "zzz", nil)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchAll_SlowSourceTimesOut(t *testing.T) {
	t.Parallel()

	fast := &MockScraper{scraperType: ShiroType, searchFunc: found("Bleach")}
	slow := &MockScraper{scraperType: secondType, searchDelay: 5 * time.Second, searchFunc: found("Late")}

	manager := NewScraperManagerWith(fast, slow)
	manager.SetSearchTimeout(50 * time.Millisecond)

	start := time.Now()
	results, err := manager.SearchAll(context.Background(), "bleach", nil)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	require.Len(t, results, 1)
	assert.Equal(t, "Bleach", results[0].Title)
}

func TestSearchAll_SpecificSource(t *testing.T) {
	t.Parallel()

	first := &MockScraper{scraperType: ShiroType, searchFunc: found("Naruto")}
	second := &MockScraper{scraperType: secondType, searchFunc: found("Other")}
	manager := NewScraperManagerWith(first, second)

	st := ShiroType
	results, err := manager.SearchAll(context.Background(), "naruto", &st)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int32(0), second.searchCallCount.Load())

	missing := ScraperType(42)
	_, err = manager.SearchAll(context.Background(), "naruto", &missing)
	assert.Error(t, err)
}

func TestGetScraperAndTypes(t *testing.T) {
	t.Parallel()

	manager := NewScraperManagerWith(
		&MockScraper{scraperType: secondType},
		&MockScraper{scraperType: ShiroType},
	)
	assert.Equal(t, []ScraperType{ShiroType, secondType}, manager.Types())

	s, err := manager.GetScraper(ShiroType)
	require.NoError(t, err)
	assert.Equal(t, ShiroType, s.GetType())

	_, err = manager.GetScraper(ScraperType(9))
	assert.Error(t, err)
}

func TestNewScraperManagerFollowsSearchTimeout(t *testing.T) {
	t.Parallel()

	cfg := shiro.DefaultConfig()
	cfg.SearchTimeout = 45 * time.Second
	assert.Equal(t, 45*time.Second, NewScraperManager(cfg, shiro.ProviderOptions{}).timeout)
}

func TestNewScraperManagerRegistersShiro(t *testing.T) {
	t.Parallel()

	manager := NewScraperManager(shiro.DefaultConfig(), shiro.ProviderOptions{})
	assert.Equal(t, []ScraperType{ShiroType}, manager.Types())
	assert.Equal(t, util.DefaultRequestTimeout, manager.timeout)
	assert.Equal(t, "Shiro", DisplayName(ShiroType))
	assert.Equal(t, "Unknown", DisplayName(ScraperType(7)))
}
