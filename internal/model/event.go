package model

import "time"

// Event represents a single organized event with its own guest list.
// The IsCheckinOpen flag gates self-service check-in only; staff scans
// are accepted regardless.  This struct corresponds to a row in the
// `events` table.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – event name.
//  Description     – optional free-form description.
//  Time            – when the event takes place.
//  Location        – venue of the event.
//  BackgroundImage – optional welcome-screen background image URL.
//  Capacity        – maximum number of guests.
//  IsCheckinOpen   – whether self-service check-in is currently accepted.
//  EnableSeatMap   – whether a seat map is shown on the welcome screen.
//  CreatedBy       – user that created the event (nullable).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Event struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Time            time.Time `json:"time"`
	Location        string    `json:"location"`
	BackgroundImage *string   `json:"background_image,omitempty"`
	Capacity        uint32    `json:"capacity"`
	IsCheckinOpen   bool      `json:"is_checkin_open"`
	EnableSeatMap   bool      `json:"enable_seat_map"`
	CreatedBy       *uint64   `json:"created_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
