package display

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"

	"github.com/hitechmekong/eventProject/internal/ws"
)

// Client connects a Controller to the server's broadcast channel.  It
// dials the WebSocket endpoint, joins the room for one event and feeds
// every new_checkin notification into the controller in arrival order.
//
// Connectivity is reported through the OnStatus callback straight from
// the transport's own connect/disconnect transitions.  There is no
// heartbeat and no reconnection backoff beyond what the transport
// provides; a disconnect simply ends Run.
type Client struct {
	URL      string // e.g. ws://localhost:8080/ws
	EventID  string
	Ctrl     *Controller
	OnStatus func(connected bool) // optional connectivity indicator
}

// Run dials the server, joins the event room and consumes notifications
// until the context is cancelled or the connection drops.  It returns
// the transport error that ended the session, or nil on a clean
// context cancellation.
func (c *Client) Run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	c.setStatus(true)
	defer c.setStatus(false)

	// Rooms are ephemeral server-side, so every fresh connection must
	// announce its event explicitly.
	if err := conn.WriteJSON(ws.Envelope{Event: ws.EventJoin, Data: c.EventID}); err != nil {
		return err
	}

	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var in struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(msg, &in); err != nil {
			log.Printf("display: malformed message from server: %v", err)
			continue
		}
		if in.Event != ws.EventNewCheckin {
			continue
		}
		var n ws.CheckinNotification
		if err := json.Unmarshal(in.Data, &n); err != nil {
			log.Printf("display: malformed notification: %v", err)
			continue
		}
		c.Ctrl.Enqueue(n)
	}
}

func (c *Client) setStatus(connected bool) {
	if c.OnStatus != nil {
		c.OnStatus(connected)
	}
}
