package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hitechmekong/eventProject/internal/model"
)

const eventColumns = `id, name, description, time, location, background_image,
       capacity, is_checkin_open, enable_seat_map, created_by, created_at, updated_at`

// EventRepo manages persistence for events and the user-event
// assignment table that scopes what moderators can see.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

func scanEvent(row interface{ Scan(...interface{}) error }, e *model.Event) error {
	return row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Time, &e.Location, &e.BackgroundImage,
		&e.Capacity, &e.IsCheckinOpen, &e.EnableSeatMap, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
}

// GetByID retrieves an event by id, returning ErrEventNotFound when
// no row matches.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ? LIMIT 1`
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListAll returns every event, newest first.  Used for ADMIN listings.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	return r.list(ctx, q)
}

// ListAssigned returns the events assigned to one user, newest first.
// Moderators only ever see their assigned events.
func (r *EventRepo) ListAssigned(ctx context.Context, userID uint64) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events
       WHERE id IN (SELECT event_id FROM user_events WHERE user_id = ?)
       ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *EventRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// IsAssignedTo reports whether the user is assigned to the event.
func (r *EventRepo) IsAssignedTo(ctx context.Context, eventID, userID uint64) (bool, error) {
	const q = `SELECT 1 FROM user_events WHERE event_id = ? AND user_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, eventID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a new event and assigns the generated ID back to the
// struct.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events
       (name, description, time, location, background_image, capacity, is_checkin_open, enable_seat_map, created_by)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.Description, e.Time, e.Location, e.BackgroundImage,
		e.Capacity, e.IsCheckinOpen, e.EnableSeatMap, e.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// Update overwrites an event's mutable attributes, including the
// is_checkin_open gate that controls self-service check-in.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events
       SET name = ?, description = ?, time = ?, location = ?, background_image = ?,
           capacity = ?, is_checkin_open = ?, enable_seat_map = ?, updated_at = CURRENT_TIMESTAMP
       WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.Description, e.Time, e.Location, e.BackgroundImage,
		e.Capacity, e.IsCheckinOpen, e.EnableSeatMap, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, e.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an event together with its guests and assignments.
// The deletion runs in a transaction so no partial cleanup occurs.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrEventNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM guests WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM user_events WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// AssignUser links a user to an event.  Assigning twice is a no-op.
func (r *EventRepo) AssignUser(ctx context.Context, eventID, userID uint64) error {
	const q = `INSERT IGNORE INTO user_events (user_id, event_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, userID, eventID)
	return err
}

// ReplaceAssignments swaps a user's event assignments for the given
// set atomically.
func (r *EventRepo) ReplaceAssignments(ctx context.Context, userID uint64, eventIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM user_events WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, eid := range eventIDs {
		if _, err = tx.ExecContext(ctx, `INSERT INTO user_events (user_id, event_id) VALUES (?, ?)`, userID, eid); err != nil {
			return err
		}
	}
	return nil
}
