// Package router registers the HTTP routes of the venue service.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-ticket-service/internal/config"
	"github.com/iliyamo/venue-ticket-service/internal/handler"
	"github.com/iliyamo/venue-ticket-service/internal/middleware"
)

// RegisterRoutes registers routes that do not touch the venue: the health
// probe and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterVenue registers the public seat endpoints under /v1.  The venue
// description is served through the Redis response cache, and the two
// mutating routes go through the token bucket limiter.  A nil rdb disables
// both.
func RegisterVenue(e *echo.Echo, h *handler.VenueHandler, rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig) {
	g := e.Group("/v1")
	limit := middleware.NewTokenBucket(rlCfg, rdb)

	g.GET("/venue", h.GetVenue, middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/seats/available", h.Available)
	g.GET("/seats", h.SeatMap)
	g.POST("/holds", h.CreateHold, limit)
	g.POST("/holds/:id/reserve", h.ReserveHold, limit)
	g.GET("/reservations/:id", h.GetReservation)
}

// RegisterAuth registers the admin login endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/v1/auth/login", a.Login)
}

// RegisterAdmin registers operator endpoints.  Every route requires a valid
// access token with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleAdmin),
	)
	g.GET("/stats", h.Stats)
	g.GET("/seats/available", h.AvailableAsOf)
}
