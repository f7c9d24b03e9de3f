// Package repository contains data access logic for the guest list.
// Guests are looked up by their unique ticket code during check-in and
// managed by organizer staff through the CRUD endpoints.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hitechmekong/eventProject/internal/model"
)

// guestColumns is the projection shared by every guest SELECT.
const guestColumns = `g.id, g.event_id, g.name, g.phone, g.email, g.company, g.avatar,
       g.ticket_code, g.seat_location, g.is_vip, g.checkin_status, g.checkin_time,
       g.created_at, g.updated_at`

// GuestRepo manages persistence for guests.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the given DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo {
	return &GuestRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need transactions
// spanning multiple repositories.
func (r *GuestRepo) DB() *sql.DB {
	return r.db
}

// FindByTicketCode fetches one guest by ticket code together with the
// joined event record, which the check-in flow needs to evaluate the
// check-in-open gate.  It returns ErrGuestNotFound when no row matches.
func (r *GuestRepo) FindByTicketCode(ctx context.Context, ticketCode string) (*model.Guest, *model.Event, error) {
	const q = `SELECT ` + guestColumns + `,
       e.id, e.name, e.description, e.time, e.location, e.background_image,
       e.capacity, e.is_checkin_open, e.enable_seat_map, e.created_by, e.created_at, e.updated_at
       FROM guests g
       JOIN events e ON e.id = g.event_id
       WHERE g.ticket_code = ?
       LIMIT 1`
	var g model.Guest
	var e model.Event
	err := r.db.QueryRowContext(ctx, q, ticketCode).Scan(
		&g.ID, &g.EventID, &g.Name, &g.Phone, &g.Email, &g.Company, &g.Avatar,
		&g.TicketCode, &g.SeatLocation, &g.IsVIP, &g.CheckinStatus, &g.CheckinTime,
		&g.CreatedAt, &g.UpdatedAt,
		&e.ID, &e.Name, &e.Description, &e.Time, &e.Location, &e.BackgroundImage,
		&e.Capacity, &e.IsCheckinOpen, &e.EnableSeatMap, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrGuestNotFound
		}
		return nil, nil, err
	}
	return &g, &e, nil
}

// GetByID retrieves one guest by primary key.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	const q = `SELECT ` + guestColumns + ` FROM guests g WHERE g.id = ? LIMIT 1`
	var g model.Guest
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&g.ID, &g.EventID, &g.Name, &g.Phone, &g.Email, &g.Company, &g.Avatar,
		&g.TicketCode, &g.SeatLocation, &g.IsVIP, &g.CheckinStatus, &g.CheckinTime,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

// MarkCheckedIn transitions a guest to CHECKED_IN and stamps the
// check-in time.  The WHERE clause keeps the transition monotonic: a
// guest already checked in is left untouched, so checkin_time is only
// ever written by the first successful transition even when two
// concurrent check-in calls race on the same ticket code.  It returns
// true when this call performed the transition.
func (r *GuestRepo) MarkCheckedIn(ctx context.Context, id uint64, at time.Time) (bool, error) {
	const q = `UPDATE guests
       SET checkin_status = ?, checkin_time = ?, updated_at = CURRENT_TIMESTAMP
       WHERE id = ? AND checkin_status <> ?`
	res, err := r.db.ExecContext(ctx, q, model.CheckinCheckedIn, at, id, model.CheckinCheckedIn)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ResetCheckin returns a guest to PENDING and clears the check-in
// time.  This is the only path back from CHECKED_IN.
func (r *GuestRepo) ResetCheckin(ctx context.Context, id uint64) error {
	const q = `UPDATE guests
       SET checkin_status = ?, checkin_time = NULL, updated_at = CURRENT_TIMESTAMP
       WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, model.CheckinPending, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish a missing guest from an already-pending one.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a new guest and assigns the generated ID back to the
// struct.  A duplicate ticket code surfaces as ErrTicketCodeExists.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const q = `INSERT INTO guests
       (event_id, name, phone, email, company, avatar, ticket_code, seat_location, is_vip, checkin_status)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		g.EventID, g.Name, g.Phone, g.Email, g.Company, g.Avatar,
		g.TicketCode, g.SeatLocation, g.IsVIP, model.CheckinPending)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrTicketCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	g.CheckinStatus = model.CheckinPending
	return nil
}

// ListByEvent returns the guests of one event ordered by creation time
// descending.  A zero event id returns every guest.
func (r *GuestRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Guest, error) {
	q := `SELECT ` + guestColumns + ` FROM guests g`
	args := []interface{}{}
	if eventID != 0 {
		q += ` WHERE g.event_id = ?`
		args = append(args, eventID)
	}
	q += ` ORDER BY g.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Guest
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(
			&g.ID, &g.EventID, &g.Name, &g.Phone, &g.Email, &g.Company, &g.Avatar,
			&g.TicketCode, &g.SeatLocation, &g.IsVIP, &g.CheckinStatus, &g.CheckinTime,
			&g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListTicketCodes returns every ticket code currently in use.  The
// batch-create flow feeds these into the unique code generator as the
// exclusion set.
func (r *GuestRepo) ListTicketCodes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ticket_code FROM guests`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// isDuplicateKey reports whether err is a MySQL duplicate entry error
// (code 1062), the condition raised by the UNIQUE ticket_code index.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
