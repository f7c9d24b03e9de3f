package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hitechmekong/eventProject/internal/model"
	"github.com/hitechmekong/eventProject/internal/repository"
)

// EventHandler exposes event CRUD for organizer staff.  Admins see and
// manage everything; moderators are scoped to their assigned events.
type EventHandler struct {
	Events *repository.EventRepo
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events *repository.EventRepo) *EventHandler {
	if events == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{Events: events}
}

// List handles GET /v1/events.  Admins get all events; moderators get
// only the events assigned to them.
func (h *EventHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	ctx := c.Request().Context()
	var events []model.Event
	if currentRole(c) == model.RoleAdmin {
		events, err = h.Events.ListAll(ctx)
	} else {
		events, err = h.Events.ListAssigned(ctx, userID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	if events == nil {
		events = []model.Event{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": events})
}

// Get handles GET /v1/events/:id with the moderator assignment check.
func (h *EventHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}
	ctx := c.Request().Context()
	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	if currentRole(c) != model.RoleAdmin {
		ok, err := h.Events.IsAssignedTo(ctx, id, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
		}
		if !ok {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": event})
}

type eventReq struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	Time            *time.Time `json:"time"`
	Location        *string    `json:"location"`
	BackgroundImage *string    `json:"background_image"`
	Capacity        *uint32    `json:"capacity"`
	IsCheckinOpen   *bool      `json:"is_checkin_open"`
	EnableSeatMap   *bool      `json:"enable_seat_map"`
}

// Create handles POST /v1/events (ADMIN only, enforced by middleware).
func (h *EventHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.Name == nil || *req.Name == "" || req.Time == nil || req.Location == nil || *req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name, time, and location are required"})
	}
	event := &model.Event{
		Name:        *req.Name,
		Description: req.Description,
		Time:        *req.Time,
		Location:    *req.Location,
		Capacity:    100,
		CreatedBy:   &userID,
	}
	if req.BackgroundImage != nil {
		event.BackgroundImage = req.BackgroundImage
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.IsCheckinOpen != nil {
		event.IsCheckinOpen = *req.IsCheckinOpen
	}
	if req.EnableSeatMap != nil {
		event.EnableSeatMap = *req.EnableSeatMap
	}
	if err := h.Events.Create(c.Request().Context(), event); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Event created", "data": event})
}

// Update handles PUT /v1/events/:id.  Moderators may only touch their
// assigned events; toggling is_checkin_open here is how self-service
// check-in is opened and closed.
func (h *EventHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}
	ctx := c.Request().Context()
	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	if currentRole(c) != model.RoleAdmin {
		ok, err := h.Events.IsAssignedTo(ctx, id, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
		}
		if !ok {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
		}
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.Name != nil && *req.Name != "" {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Location != nil && *req.Location != "" {
		event.Location = *req.Location
	}
	if req.BackgroundImage != nil {
		event.BackgroundImage = req.BackgroundImage
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.IsCheckinOpen != nil {
		event.IsCheckinOpen = *req.IsCheckinOpen
	}
	if req.EnableSeatMap != nil {
		event.EnableSeatMap = *req.EnableSeatMap
	}
	if err := h.Events.Update(ctx, event); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Event updated", "data": event})
}

// Delete handles DELETE /v1/events/:id (ADMIN only, enforced by
// middleware).  Guests and assignments go with the event.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}
	if err := h.Events.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Event deleted"})
}
