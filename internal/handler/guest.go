package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hitechmekong/eventProject/internal/config"
	"github.com/hitechmekong/eventProject/internal/model"
	"github.com/hitechmekong/eventProject/internal/repository"
	"github.com/hitechmekong/eventProject/internal/utils"
)

// GuestHandler bundles the dependencies for guest-list management:
// listing with check-in stats, creation with ticket code generation,
// batch import, the explicit check-in reset, and QR rendering.
type GuestHandler struct {
	Guests *repository.GuestRepo
	Events *repository.EventRepo
	Cfg    config.Config
}

// NewGuestHandler constructs a GuestHandler with the provided repositories.
func NewGuestHandler(cfg config.Config, guests *repository.GuestRepo, events *repository.EventRepo) *GuestHandler {
	if guests == nil || events == nil {
		panic("nil repository passed to NewGuestHandler")
	}
	return &GuestHandler{Guests: guests, Events: events, Cfg: cfg}
}

type guestStats struct {
	Total     int `json:"total"`
	CheckedIn int `json:"checked_in"`
	Pending   int `json:"pending"`
}

// List handles GET /v1/guests?event_id=N.  It returns the guest list
// together with aggregate check-in stats for the organizer dashboard.
func (h *GuestHandler) List(c echo.Context) error {
	var eventID uint64
	if raw := c.QueryParam("event_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event_id"})
		}
		eventID = id
	}
	guests, err := h.Guests.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	stats := guestStats{Total: len(guests)}
	for _, g := range guests {
		if g.CheckinStatus == model.CheckinCheckedIn {
			stats.CheckedIn++
		}
	}
	stats.Pending = stats.Total - stats.CheckedIn
	if guests == nil {
		guests = []model.Guest{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    guests,
		"stats":   stats,
	})
}

type createGuestReq struct {
	EventID      uint64  `json:"event_id"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Company      *string `json:"company"`
	Avatar       *string `json:"avatar"`
	TicketCode   string  `json:"ticket_code"`
	SeatLocation *string `json:"seat_location"`
	IsVIP        bool    `json:"is_vip"`
}

// Create handles POST /v1/guests.  When no ticket code is supplied one
// is generated.  A colliding ticket code is a client error, not a
// server fault.
func (h *GuestHandler) Create(c echo.Context) error {
	var req createGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.Name == "" || req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing required fields"})
	}
	ctx := c.Request().Context()
	if _, err := h.Events.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	code := req.TicketCode
	if code == "" {
		generated, err := utils.GenerateTicketCode(utils.TicketCodeLength)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
		}
		code = generated
	}
	guest := &model.Guest{
		EventID:      req.EventID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Company:      req.Company,
		Avatar:       req.Avatar,
		TicketCode:   code,
		SeatLocation: req.SeatLocation,
		IsVIP:        req.IsVIP,
	}
	if err := h.Guests.Create(ctx, guest); err != nil {
		if errors.Is(err, repository.ErrTicketCodeExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Ticket code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": guest})
}

type batchCreateReq struct {
	EventID uint64           `json:"event_id"`
	Guests  []createGuestReq `json:"guests"`
}

// BatchCreate handles POST /v1/guests/batch for bulk guest import.
// Fresh ticket codes are generated for every entry without one, unique
// against each other and everything already in the database.
func (h *GuestHandler) BatchCreate(c echo.Context) error {
	var req batchCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.EventID == 0 || len(req.Guests) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing required fields"})
	}
	ctx := c.Request().Context()
	if _, err := h.Events.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	missing := 0
	for _, g := range req.Guests {
		if g.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "every guest requires a name"})
		}
		if g.TicketCode == "" {
			missing++
		}
	}
	var fresh []string
	if missing > 0 {
		existing, err := h.Guests.ListTicketCodes(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
		}
		fresh, err = utils.GenerateUniqueCodes(missing, existing)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not generate ticket codes"})
		}
	}

	created := make([]*model.Guest, 0, len(req.Guests))
	next := 0
	for _, in := range req.Guests {
		code := in.TicketCode
		if code == "" {
			code = fresh[next]
			next++
		}
		guest := &model.Guest{
			EventID:      req.EventID,
			Name:         in.Name,
			Phone:        in.Phone,
			Email:        in.Email,
			Company:      in.Company,
			Avatar:       in.Avatar,
			TicketCode:   code,
			SeatLocation: in.SeatLocation,
			IsVIP:        in.IsVIP,
		}
		if err := h.Guests.Create(ctx, guest); err != nil {
			if errors.Is(err, repository.ErrTicketCodeExists) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"message": "Ticket code already exists",
					"code":    code,
					"created": len(created),
				})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
		}
		created = append(created, guest)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": created, "count": len(created)})
}

// Reset handles POST /v1/guests/:id/reset, the only path back from
// CHECKED_IN to PENDING.  The check-in time is cleared so a subsequent
// check-in stamps a new one.
func (h *GuestHandler) Reset(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid guest id"})
	}
	ctx := c.Request().Context()
	if err := h.Guests.ResetCheckin(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	guest, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Guest status reset", "data": guest})
}

// QRCode handles GET /v1/guests/:id/qr.  It renders the guest's
// personal check-in URL as a PNG for badge printing.
func (h *GuestHandler) QRCode(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid guest id"})
	}
	guest, err := h.Guests.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	png, err := utils.GuestQRCodePNG(h.Cfg.BaseURL, guest.EventID, guest.TicketCode)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
