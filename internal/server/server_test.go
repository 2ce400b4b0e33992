package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alvarorichard/goshiro/internal/extractors"
	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/alvarorichard/goshiro/internal/shiro"
	"github.com/alvarorichard/goshiro/internal/util"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	err       error
	homeCalls atomic.Int32
	loadCalls atomic.Int32
	lastQuery string
}

func (f *fakeService) MainPage(ctx context.Context) ([]models.HomePageList, error) {
	f.homeCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []models.HomePageList{{Name: "Trending", Items: []models.ShowSummary{{Title: "Bleach"}}}}, nil
}

func (f *fakeService) QuickSearch(ctx context.Context, query string) ([]models.ShowSummary, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return []models.ShowSummary{}, nil
}

func (f *fakeService) Search(ctx context.Context, query string) ([]models.ShowSummary, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return []models.ShowSummary{{Title: "Naruto ", DubStatus: models.Dubbed}}, nil
}

func (f *fakeService) Load(ctx context.Context, showURL string) (*models.ShowDetail, error) {
	f.loadCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ShowDetail{
		ShowSummary: models.ShowSummary{Slug: showURL, Title: "Naruto"},
		Status:      models.StatusOngoing,
		Episodes:    []models.EpisodeRef{{Number: 1, VideoID: "v1"}},
	}, nil
}

func (f *fakeService) LoadLinks(ctx context.Context, videoID string, callback func(models.ExtractorLink)) error {
	if f.err != nil {
		return f.err
	}
	callback(models.ExtractorLink{Name: "Main", URL: "https://mirror.example/" + videoID})
	return nil
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHomeIsCached(t *testing.T) {
	svc := &fakeService{}
	app := InitApp(svc, AppConfig{})

	for i := 0; i < 2; i++ {
		status, body := get(t, app, "/api/home")
		require.Equal(t, http.StatusOK, status)

		var lists []models.HomePageList
		require.NoError(t, json.Unmarshal(body, &lists))
		require.Len(t, lists, 1)
		assert.Equal(t, "Trending", lists[0].Name)
	}
	assert.Equal(t, int32(1), svc.homeCalls.Load())
}

func TestSearchRoutes(t *testing.T) {
	svc := &fakeService{}
	app := InitApp(svc, AppConfig{})

	status, body := get(t, app, "/api/search?q=naruto%20shippuden")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "naruto shippuden", svc.lastQuery)
	assert.Contains(t, string(body), `"dubStatus":"Dubbed"`)

	status, body = get(t, app, "/api/quick?q=bleach")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", string(body))

	status, _ = get(t, app, "/api/search")
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = get(t, app, "/api/quick?q=%20")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAnimeAndLinksRoutes(t *testing.T) {
	svc := &fakeService{}
	app := InitApp(svc, AppConfig{})

	status, body := get(t, app, "/api/anime/naruto")
	require.Equal(t, http.StatusOK, status)
	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "naruto", detail["slug"])
	assert.Equal(t, "Ongoing", detail["status"])

	_, _ = get(t, app, "/api/anime/naruto")
	assert.Equal(t, int32(1), svc.loadCalls.Load())

	status, body = get(t, app, "/api/links/v1")
	require.Equal(t, http.StatusOK, status)
	var links []models.ExtractorLink
	require.NoError(t, json.Unmarshal(body, &links))
	require.Len(t, links, 1)
	assert.Equal(t, "https://mirror.example/v1", links[0].URL)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target string
		want   int
	}{
		{"token unavailable", fmt.Errorf("%w: %w", shiro.ErrTokenUnavailable, &shiro.ScrapeError{Reason: shiro.NoScriptTag}), "/api/home", http.StatusServiceUnavailable},
		{"upstream status", &shiro.HTTPError{Path: "/advanced", StatusCode: 500}, "/api/search?q=x", http.StatusBadGateway},
		{"transport", &shiro.TransportError{Path: "/latest", Err: context.DeadlineExceeded}, "/api/home", http.StatusBadGateway},
		{"malformed", &shiro.MalformedResponse{Path: "/anime/slug/x", Err: io.ErrUnexpectedEOF}, "/api/anime/x", http.StatusBadGateway},
		{"not found", shiro.ErrShowNotFound, "/api/anime/x", http.StatusNotFound},
		{"no links", extractors.ErrNoLinks, "/api/links/x", http.StatusNotFound},
		{"other", io.EOF, "/api/quick?q=x", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := InitApp(&fakeService{err: tt.err}, AppConfig{})
			status, body := get(t, app, tt.target)
			assert.Equal(t, tt.want, status)

			var e errorBody
			require.NoError(t, json.Unmarshal(body, &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestFailuresAreNotCached(t *testing.T) {
	svc := &fakeService{err: shiro.ErrTokenUnavailable}
	app := InitApp(svc, AppConfig{})

	status, _ := get(t, app, "/api/home")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	svc.err = nil
	status, _ = get(t, app, "/api/home")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int32(2), svc.homeCalls.Load())
}

func TestCORS(t *testing.T) {
	app := InitApp(&fakeService{}, AppConfig{AllowedOrigins: []string{"*"}})
	req := httptest.NewRequest(http.MethodGet, "/api/home", nil)
	req.Header.Set("Origin", "https://example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServerErrorsAreLogged(t *testing.T) {
	prev := util.Logger
	t.Cleanup(func() { util.Logger = prev })

	var buf bytes.Buffer
	util.InitLoggerTo(&buf)

	app := InitApp(&fakeService{err: &shiro.HTTPError{Path: "/latest", StatusCode: 500}}, AppConfig{})
	status, _ := get(t, app, "/api/home")
	require.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, buf.String(), "Request failed")
	assert.Contains(t, buf.String(), "/api/home")

	buf.Reset()
	app = InitApp(&fakeService{err: shiro.ErrShowNotFound}, AppConfig{})
	status, _ = get(t, app, "/api/anime/missing")
	require.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, buf.String())
}
