// Package server exposes the provider operations as a JSON HTTP API
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	cache "github.com/patrickmn/go-cache"
)

const (
	baseURL    = "/api"
	homeURL    = baseURL + "/home"
	searchURL  = baseURL + "/search"
	quickURL   = baseURL + "/quick"
	animeURL   = baseURL + "/anime/:slug"
	linksURL   = baseURL + "/links/:videoId"
	defaultTTL = 5 * time.Minute
)

// Service is what the routes need from a provider
type Service interface {
	MainPage(ctx context.Context) ([]models.HomePageList, error)
	QuickSearch(ctx context.Context, query string) ([]models.ShowSummary, error)
	Search(ctx context.Context, query string) ([]models.ShowSummary, error)
	Load(ctx context.Context, showURL string) (*models.ShowDetail, error)
	LoadLinks(ctx context.Context, videoID string, callback func(models.ExtractorLink)) error
}

// AppConfig configures the fiber app
type AppConfig struct {
	// CacheTTL is how long home and show responses are kept; defaults to 5m
	CacheTTL time.Duration
	// AccessLog enables the request log middleware
	AccessLog bool
	// AllowedOrigins enables CORS for the listed origins
	AllowedOrigins []string
}

// InitApp creates the fiber app with the JSON codec, middlewares and routes
func InitApp(svc Service, cfg AppConfig) *fiber.App {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	f := fiber.New(fiber.Config{
		AppName:               "GoShiro",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	if cfg.AccessLog {
		f.Use(logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
		}))
	}
	f.Use(recover.New())
	if len(cfg.AllowedOrigins) > 0 {
		f.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.AllowedOrigins, ", "),
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: strings.Join([]string{http.MethodGet, http.MethodHead}, ","),
		}))
	}

	h := &handlers{svc: svc, cache: cache.New(ttl, 2*ttl)}
	h.register(f)
	return f
}
