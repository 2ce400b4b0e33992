package server

import (
	"net/http"
	"strings"

	"github.com/alvarorichard/goshiro/internal/extractors"
	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/alvarorichard/goshiro/internal/shiro"
	"github.com/alvarorichard/goshiro/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	cache "github.com/patrickmn/go-cache"
)

const homeCacheKey = "home"

type handlers struct {
	svc   Service
	cache *cache.Cache
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *handlers) register(app *fiber.App) {
	app.Get(homeURL, h.home)
	app.Get(searchURL, h.search)
	app.Get(quickURL, h.quick)
	app.Get(animeURL, h.anime)
	app.Get(linksURL, h.links)
}

func (h *handlers) home(c *fiber.Ctx) error {
	if cached, ok := h.cache.Get(homeCacheKey); ok {
		return c.JSON(cached)
	}
	lists, err := h.svc.MainPage(c.UserContext())
	if err != nil {
		return err
	}
	h.cache.SetDefault(homeCacheKey, lists)
	return c.JSON(lists)
}

func queryParam(c *fiber.Ctx) (string, error) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "missing query parameter q")
	}
	return q, nil
}

func (h *handlers) search(c *fiber.Ctx) error {
	q, err := queryParam(c)
	if err != nil {
		return err
	}
	results, err := h.svc.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

func (h *handlers) quick(c *fiber.Ctx) error {
	q, err := queryParam(c)
	if err != nil {
		return err
	}
	results, err := h.svc.QuickSearch(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

func (h *handlers) anime(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing slug")
	}
	key := "anime:" + slug
	if cached, ok := h.cache.Get(key); ok {
		return c.JSON(cached)
	}
	detail, err := h.svc.Load(c.UserContext(), slug)
	if err != nil {
		return err
	}
	h.cache.SetDefault(key, detail)
	return c.JSON(detail)
}

func (h *handlers) links(c *fiber.Ctx) error {
	videoID := strings.TrimSpace(c.Params("videoId"))
	if videoID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing video id")
	}
	links := []models.ExtractorLink{}
	err := h.svc.LoadLinks(c.UserContext(), videoID, func(l models.ExtractorLink) {
		links = append(links, l)
	})
	if err != nil {
		return err
	}
	return c.JSON(links)
}

// StatusFor maps a provider error to the HTTP status returned to clients
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var httpErr *shiro.HTTPError
	var transportErr *shiro.TransportError
	var malformed *shiro.MalformedResponse

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, shiro.ErrTokenUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, shiro.ErrShowNotFound), errors.Is(err, extractors.ErrNoLinks):
		return http.StatusNotFound
	case errors.As(err, &httpErr), errors.As(err, &transportErr), errors.As(err, &malformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		util.Error("Request failed", "path", c.Path(), "status", status, "error", err)
	}
	return c.Status(status).JSON(errorBody{Error: err.Error()})
}
