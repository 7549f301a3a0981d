package router // package router defines how HTTP routes are registered for the API

import (
	"strings"

	"github.com/labstack/echo/v4"                     // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware"   // request logging and panic recovery
	"github.com/redis/go-redis/v9"                    // shared client for cache and rate limiting

	"github.com/iliyamo/game-catalog/internal/config"     // cache and rate limit settings
	"github.com/iliyamo/game-catalog/internal/handler"    // handlers that implement each endpoint
	"github.com/iliyamo/game-catalog/internal/middleware" // write guard, cache and token bucket
)

// Handlers groups every resource controller the API exposes.
type Handlers struct {
	Developers *handler.GameDeveloperHandler
	Categories *handler.CategoryHandler
	Games      *handler.GameHandler
	Health     *handler.HealthHandler
}

// Options carries the cross-cutting settings applied while registering
// routes.  A nil Redis client disables both the cache and the rate limiter;
// an empty JWTSecret leaves write routes open.
type Options struct {
	Prefix    string
	JWTSecret string
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
}

// New builds an Echo instance with request logging, panic recovery and all
// catalogue routes registered.
func New(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	RegisterRoutes(e, h, opts)
	return e
}

// RegisterRoutes mounts the catalogue under opts.Prefix (default /api).
// Reads are cached, writes purge the cache and, when a secret is set,
// require a token with the admin or editor role.
func RegisterRoutes(e *echo.Echo, h Handlers, opts Options) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "/api"
	}
	api := e.Group(prefix)
	if strings.TrimSpace(opts.JWTSecret) != "" {
		// identifies the caller for user-keyed rate limits; writes still go through the guard
		api.Use(middleware.OptionalIdentity(opts.JWTSecret))
	}
	api.Use(middleware.NewTokenBucket(opts.RateLimit, opts.Redis))
	api.Use(middleware.InvalidateCache(opts.Cache, opts.Redis))
	api.Use(middleware.NewRedisCache(opts.Cache, opts.Redis))

	// The health check bypasses the cache so it always reflects the store.
	e.GET(prefix+"/health", h.Health.Health)

	guard := middleware.WriteGuard(opts.JWTSecret)

	registerResource(api.Group("/game-developers"), guard, resource{
		create: h.Developers.Create, list: h.Developers.List, get: h.Developers.Get,
		update: h.Developers.Update, remove: h.Developers.Delete, bulkDelete: h.Developers.BulkDelete,
	})
	registerResource(api.Group("/categories"), guard, resource{
		create: h.Categories.Create, list: h.Categories.List, get: h.Categories.Get,
		update: h.Categories.Update, remove: h.Categories.Delete, bulkDelete: h.Categories.BulkDelete,
	})
	registerResource(api.Group("/games"), guard, resource{
		create: h.Games.Create, list: h.Games.List, get: h.Games.Get,
		update: h.Games.Update, remove: h.Games.Delete, bulkDelete: h.Games.BulkDelete,
	})
}

// resource is the set of handlers every catalogue collection provides.
type resource struct {
	create, list, get, update, remove, bulkDelete echo.HandlerFunc
}

func registerResource(g *echo.Group, guard []echo.MiddlewareFunc, r resource) {
	g.POST("", r.create, guard...)
	g.GET("", r.list)
	// bulk-delete is a static segment, so Echo matches it before :id
	g.POST("/bulk-delete", r.bulkDelete, guard...)
	g.GET("/:id", r.get)
	g.PATCH("/:id", r.update, guard...)
	g.DELETE("/:id", r.remove, guard...)
}
