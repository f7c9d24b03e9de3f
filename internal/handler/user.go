package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hitechmekong/eventProject/internal/config"
	"github.com/hitechmekong/eventProject/internal/model"
	"github.com/hitechmekong/eventProject/internal/repository"
)

// UserHandler exposes ADMIN-only staff account management: listing,
// creating moderators, assigning events and deletion.
type UserHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Events *repository.EventRepo
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(cfg config.Config, users *repository.UserRepo, events *repository.EventRepo) *UserHandler {
	if users == nil || events == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Cfg: cfg, Users: users, Events: events}
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}

type createUserReq struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	EventIDs []uint64 `json:"event_ids"`
}

// Create handles POST /v1/users.  New accounts default to MODERATOR;
// an optional event_ids list assigns them immediately.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/password required"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role != model.RoleAdmin && role != model.RoleModerator {
		role = model.RoleModerator
	}

	ctx := c.Request().Context()
	uid, err := h.Users.Create(ctx, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create user failed"})
	}
	if len(req.EventIDs) > 0 {
		if err := h.Events.ReplaceAssignments(ctx, uid, req.EventIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "assign events failed"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User created",
		"data":    userPart{ID: uid, Email: req.Email, Role: role},
	})
}

type assignEventsReq struct {
	EventIDs []uint64 `json:"event_ids"`
}

// AssignEvents handles PUT /v1/users/:id/assign-events, replacing the
// moderator's event set.
func (h *UserHandler) AssignEvents(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	var req assignEventsReq
	if err := c.Bind(&req); err != nil || req.EventIDs == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "event_ids must be an array"})
	}
	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}
	if err := h.Events.ReplaceAssignments(ctx, id, req.EventIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "assign events failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Events assigned"})
}

// Delete handles DELETE /v1/users/:id.  Self-deletion is refused.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if callerID == id {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Cannot delete yourself"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User deleted"})
}
