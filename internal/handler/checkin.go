package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hitechmekong/eventProject/internal/model"
	"github.com/hitechmekong/eventProject/internal/queue"
	"github.com/hitechmekong/eventProject/internal/repository"
	"github.com/hitechmekong/eventProject/internal/ws"
)

// GuestStore is the persistence surface the check-in flow depends on:
// a lookup by unique ticket code joined with the event, and the
// monotonic PENDING to CHECKED_IN transition.
type GuestStore interface {
	FindByTicketCode(ctx context.Context, ticketCode string) (*model.Guest, *model.Event, error)
	MarkCheckedIn(ctx context.Context, id uint64, at time.Time) (bool, error)
}

// Publisher fans a named payload out to every connection in an event's
// room.  Delivery is fire-and-forget; Publish never reports failure.
type Publisher interface {
	Publish(event string, data interface{}, room string)
}

// AuditFunc records a fresh check-in on the audit trail.  Failures are
// logged and swallowed; the check-in itself is already persisted.
type AuditFunc func(ctx context.Context, ev queue.CheckinLoggedEvent) error

// CheckinHandler implements the two check-in operations.  Both look a
// guest up by ticket code, apply the monotonic state transition, and
// broadcast a new_checkin notification to the event's room.  They
// differ only in the self-service open gate and the wording.
//
// No guest-level lock is taken: two concurrent calls for the same
// ticket code may both broadcast.  The guarded UPDATE in the store
// keeps checkin_time first-write-wins, and a duplicate notification on
// the welcome screen is an accepted outcome.
type CheckinHandler struct {
	Guests GuestStore
	Hub    Publisher
	Audit  AuditFunc // optional
}

// NewCheckinHandler constructs a CheckinHandler.  The audit function
// may be nil when no broker is configured.
func NewCheckinHandler(guests GuestStore, hub Publisher, audit AuditFunc) *CheckinHandler {
	if guests == nil {
		panic("nil guest store passed to NewCheckinHandler")
	}
	return &CheckinHandler{Guests: guests, Hub: hub, Audit: audit}
}

type checkinReq struct {
	TicketCode string `json:"ticket_code"`
}

type checkinResp struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *model.Guest `json:"data"`
}

// SelfCheckin handles POST /checkin/self.  The guest scans the event's
// fixed QR code and submits their own ticket code.  Self-service is
// gated by the event's is_checkin_open flag; a closed event returns
// 403 and nothing is broadcast.  A guest re-submitting an
// already-checked-in ticket gets the duplicate-safe message but the
// broadcast is re-emitted, re-announcing them on the welcome screen.
func (h *CheckinHandler) SelfCheckin(c echo.Context) error {
	var req checkinReq
	if err := c.Bind(&req); err != nil || req.TicketCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Ticket code is required"})
	}
	ctx := c.Request().Context()

	guest, event, err := h.Guests.FindByTicketCode(ctx, req.TicketCode)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Guest not found"})
		}
		log.Printf("checkin: self lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	if !event.IsCheckinOpen {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Check-in is currently closed for this event"})
	}

	fresh, err := h.transition(ctx, guest)
	if err != nil {
		log.Printf("checkin: self transition failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	h.broadcast(guest, event, fmt.Sprintf("Welcome %s!", guest.Name))
	if fresh {
		h.audit(guest, queue.MethodSelf)
	}

	msg := "Check-in successful"
	if !fresh {
		msg = "Already checked in"
	}
	return c.JSON(http.StatusOK, checkinResp{Success: true, Message: msg, Data: guest})
}

// ScanCheckin handles POST /checkin/scan.  Staff scan the guest's
// personal QR code; the open gate does not apply, so staff can check
// guests in even while self-service is closed.  The response is a
// success once the guest is found, whether or not the transition was
// fresh.
func (h *CheckinHandler) ScanCheckin(c echo.Context) error {
	var req checkinReq
	if err := c.Bind(&req); err != nil || req.TicketCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Ticket code is required"})
	}
	ctx := c.Request().Context()

	guest, event, err := h.Guests.FindByTicketCode(ctx, req.TicketCode)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Guest not found"})
		}
		log.Printf("checkin: scan lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	fresh, err := h.transition(ctx, guest)
	if err != nil {
		log.Printf("checkin: scan transition failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	h.broadcast(guest, event, fmt.Sprintf("Verified: %s", guest.Name))
	if fresh {
		h.audit(guest, queue.MethodScan)
	}

	return c.JSON(http.StatusOK, checkinResp{Success: true, Message: "Guest verified and checked in", Data: guest})
}

// transition applies the PENDING to CHECKED_IN state change when the
// guest is not already checked in, stamping checkin_time exactly once.
// It reports whether this call performed a fresh transition and
// mutates the in-memory guest to match what was persisted.
func (h *CheckinHandler) transition(ctx context.Context, guest *model.Guest) (bool, error) {
	if guest.CheckinStatus == model.CheckinCheckedIn {
		return false, nil
	}
	now := time.Now().UTC()
	fresh, err := h.Guests.MarkCheckedIn(ctx, guest.ID, now)
	if err != nil {
		return false, err
	}
	guest.CheckinStatus = model.CheckinCheckedIn
	if fresh {
		guest.CheckinTime = &now
	}
	return fresh, nil
}

// broadcast publishes the new_checkin notification to the room keyed
// by the guest's event id.  It is unconditional once the guest is
// found and the gate passed: duplicate check-ins re-announce.  A
// missing hub only logs a warning; the persisted transition is never
// rolled back because a notification was lost.
func (h *CheckinHandler) broadcast(guest *model.Guest, event *model.Event, welcome string) {
	if h.Hub == nil {
		log.Printf("checkin: broadcast hub not configured, dropping notification for %s", guest.TicketCode)
		return
	}
	seat := "TBD"
	if guest.SeatLocation != nil && *guest.SeatLocation != "" {
		seat = *guest.SeatLocation
	}
	payload := ws.CheckinNotification{
		Name:           guest.Name,
		Avatar:         deref(guest.Avatar),
		JobTitle:       deref(guest.Company),
		Seat:           seat,
		WelcomeMessage: welcome,
		EventID:        strconv.FormatUint(event.ID, 10),
	}
	h.Hub.Publish(ws.EventNewCheckin, payload, payload.EventID)
}

// audit records a fresh transition on the check-in audit trail in the
// background.  Re-entry check-ins are not audited.
func (h *CheckinHandler) audit(guest *model.Guest, method string) {
	if h.Audit == nil {
		return
	}
	ev := queue.CheckinLoggedEvent{
		GuestID:     guest.ID,
		EventID:     guest.EventID,
		TicketCode:  guest.TicketCode,
		GuestName:   guest.Name,
		Method:      method,
		CheckedInAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Audit(ctx, ev); err != nil {
			log.Printf("checkin: audit publish failed: %v", err)
		}
	}()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
