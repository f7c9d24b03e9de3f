package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/hitechmekong/eventProject/internal/config"
	"github.com/hitechmekong/eventProject/internal/handler"    // import the handlers that implement business logic
	"github.com/hitechmekong/eventProject/internal/middleware" // import middleware for JWT authentication and rate limiting
	"github.com/hitechmekong/eventProject/internal/model"
	"github.com/hitechmekong/eventProject/internal/ws"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterCheckin registers the public check-in surface: the two check-in
// endpoints and the websocket entry point for welcome screens.
//
// The check-in paths are deliberately unversioned and unauthenticated.  They
// are baked into printed QR codes and scanner firmware at venues, so their
// shape cannot change with API versions.  Abuse is contained by the Redis
// token bucket instead of a login wall.
func RegisterCheckin(e *echo.Echo, ch *handler.CheckinHandler, hub *ws.Hub, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Self-service: the guest scans the event poster and submits their own code.
	e.POST("/checkin/self", ch.SelfCheckin, limiter)
	// Staff-assisted: staff scan the guest's personal QR code at the door.
	e.POST("/checkin/scan", ch.ScanCheckin, limiter)

	// Welcome screens connect here and then send a join_event frame to pick
	// the room they want notifications from.
	e.GET("/ws", hub.Serve)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session.
	g := e.Group("/v1/auth")
	// One-time bootstrap of the first admin account.  The handler refuses to
	// run again once any ADMIN exists.
	g.POST("/init", a.Init)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and issues a new pair.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a JSON body containing a `refresh_token` and revokes it.
	// No JWT is required, so a client with an expired access token can still
	// terminate its session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleModerator))
	auth.GET("/me", a.Me)
}
