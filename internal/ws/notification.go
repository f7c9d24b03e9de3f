// Package ws implements the real-time check-in broadcast layer.  A Hub
// tracks which live WebSocket connections joined which event room and
// fans named JSON messages out to them.  Delivery is best-effort and
// at-most-once: nothing is acknowledged, queued for later, or replayed
// after a reconnect.
package ws

// Message names exchanged over the wire.  Clients send EventJoin to
// subscribe to one event's room; the server pushes EventNewCheckin to
// every member of that room whenever a guest checks in.
const (
	EventJoin       = "join_event"
	EventNewCheckin = "new_checkin"
)

// Envelope is the named JSON message framing used on the WebSocket.
// For join_event the data is the event id as a JSON string; for
// new_checkin it is a CheckinNotification object.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// CheckinNotification is the ephemeral payload pushed to a welcome
// screen when a guest checks in.  It is never persisted: if no display
// is connected at emit time, the notification is lost.
type CheckinNotification struct {
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	JobTitle       string `json:"job_title"`
	Seat           string `json:"seat"`
	WelcomeMessage string `json:"welcome_message"`
	EventID        string `json:"event_id"`
}
