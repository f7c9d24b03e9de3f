package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/hitechmekong/eventProject/internal/handler"    // event, guest and user handlers
	"github.com/hitechmekong/eventProject/internal/middleware" // JWT + role middlewares
	"github.com/hitechmekong/eventProject/internal/model"
)

// RegisterManagement registers the staff-facing management endpoints under
// /v1.  Reading and updating events and guests accepts both roles, with
// handlers narrowing moderators to their assigned events.  Creating and
// deleting events, and all user administration, is ADMIN only.
func RegisterManagement(e *echo.Echo, ev *handler.EventHandler, g *handler.GuestHandler, u *handler.UserHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	staff := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleModerator),
	)
	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Events ----
	staff.GET("/events", ev.List) // moderators see only assigned events
	staff.GET("/events/:id", ev.Get)
	staff.PUT("/events/:id", ev.Update)
	staff.PATCH("/events/:id", ev.Update) // partial updates use the same pointer-field handler
	admin.POST("/events", ev.Create)
	admin.DELETE("/events/:id", ev.Delete)

	// ---- Guests ----
	staff.GET("/guests", g.List) // ?event_id=N filters to one event
	staff.POST("/guests", g.Create)
	staff.POST("/guests/batch", g.BatchCreate)
	// Reset flips a guest back to PENDING, the only path that ever does.
	staff.POST("/guests/:id/reset", g.Reset)
	// Personal QR code PNG for the guest's ticket, used on printed badges.
	staff.GET("/guests/:id/qr", g.QRCode)

	// ---- Users (ADMIN only) ----
	admin.GET("/users", u.List)
	admin.POST("/users", u.Create)
	admin.PUT("/users/:id/assign-events", u.AssignEvents)
	admin.DELETE("/users/:id", u.Delete)
}
