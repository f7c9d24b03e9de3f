// Package queue defines message payloads exchanged over the message broker.
package queue

// Check-in methods recorded on the audit trail.
const (
	MethodSelf = "SELF" // guest-initiated, fixed event QR
	MethodScan = "SCAN" // staff-assisted, personal QR
)

// CheckinLoggedEvent is published once per fresh PENDING to CHECKED_IN
// transition.  Re-entry check-ins re-broadcast on the welcome screen
// but are not audited again.  It carries enough information for
// downstream consumers to log or trigger analytics without querying
// the primary database.
type CheckinLoggedEvent struct {
	GuestID     uint64 `json:"guest_id"`
	EventID     uint64 `json:"event_id"`
	TicketCode  string `json:"ticket_code"`
	GuestName   string `json:"guest_name"`
	Method      string `json:"method"` // SELF | SCAN
	CheckedInAt string `json:"checked_in_at"`
}
