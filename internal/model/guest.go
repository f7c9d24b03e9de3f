package model

import "time"

// Check-in status values for a guest.  A guest starts PENDING and
// moves to CHECKED_IN the first time either check-in operation
// succeeds.  The only way back to PENDING is the explicit reset
// endpoint; neither check-in operation ever reverses the status.
const (
	CheckinPending   = "PENDING"
	CheckinCheckedIn = "CHECKED_IN"
)

// Guest represents one invited attendee of an event.  Each guest is
// identified by a globally unique ticket code which is the lookup key
// for both self-service and staff-assisted check-in.  This struct
// corresponds to a row in the `guests` table.
//
// Fields:
//  ID            – primary key identifier.
//  EventID       – event this guest is invited to.
//  Name          – display name shown on the welcome screen.
//  Phone         – optional contact phone.
//  Email         – optional contact email.
//  Company       – optional company / job title line.
//  Avatar        – optional avatar image URL.
//  TicketCode    – unique ticket code (uppercase alphanumeric).
//  SeatLocation  – optional assigned seat; broadcast as "TBD" when unset.
//  IsVIP         – whether the guest is flagged as a VIP.
//  CheckinStatus – PENDING or CHECKED_IN.
//  CheckinTime   – set exactly once at the first transition to CHECKED_IN.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Guest struct {
	ID            uint64     `json:"id"`
	EventID       uint64     `json:"event_id"`
	Name          string     `json:"name"`
	Phone         *string    `json:"phone,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Company       *string    `json:"company,omitempty"`
	Avatar        *string    `json:"avatar,omitempty"`
	TicketCode    string     `json:"ticket_code"`
	SeatLocation  *string    `json:"seat_location,omitempty"`
	IsVIP         bool       `json:"is_vip"`
	CheckinStatus string     `json:"checkin_status"`
	CheckinTime   *time.Time `json:"checkin_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
