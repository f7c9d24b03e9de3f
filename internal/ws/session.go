package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// sendBuffer is the per-connection outbound queue depth.  When a
// recipient falls this far behind, further envelopes addressed to it
// are dropped rather than blocking the publisher.
const sendBuffer = 32

// writeWait bounds how long a single socket write may take before the
// connection is considered dead.
const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The broadcast channel is unauthenticated and displays are served
	// from arbitrary origins (kiosk machines, venue screens).
	CheckOrigin: func(*http.Request) bool { return true },
}

// session is one upgraded WebSocket connection.  Incoming messages are
// handled on the read goroutine; outgoing envelopes are queued on a
// buffered channel drained by a single writer goroutine, which keeps
// per-connection delivery in publish order.
type session struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Envelope

	mu     sync.Mutex
	closed bool
}

// deliver queues an envelope for the writer goroutine.  It never
// blocks: if the session's buffer is full the envelope is dropped and
// logged, per the at-most-once delivery contract.  The closed flag
// covers the window between a publish snapshotting this session as a
// room member and the read loop tearing it down.
func (s *session) deliver(env Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.send <- env:
	default:
		log.Printf("ws: session %s send buffer full, dropping %q", s.id, env.Event)
	}
}

// shutdown marks the session closed and releases the writer goroutine.
func (s *session) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

// Serve upgrades the HTTP request to a WebSocket connection, registers
// it with the hub and runs the read loop until the client disconnects.
// It is registered as an Echo handler on GET /ws.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response.
		return nil
	}
	s := &session{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan Envelope, sendBuffer),
	}
	h.register(s)
	log.Printf("ws: client connected: %s", s.id)

	go s.writePump()
	s.readPump()
	return nil
}

// readPump consumes inbound messages until the connection closes.  The
// only message a client is expected to send is join_event; anything
// else is ignored.  On exit the session is unregistered, which also
// stops the writer.
func (s *session) readPump() {
	defer func() {
		s.hub.unregister(s)
		s.shutdown()
		_ = s.conn.Close()
		log.Printf("ws: client disconnected: %s", s.id)
	}()
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var in struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(msg, &in); err != nil {
			log.Printf("ws: session %s sent malformed message: %v", s.id, err)
			continue
		}
		switch in.Event {
		case EventJoin:
			var eventID string
			if err := json.Unmarshal(in.Data, &eventID); err != nil || eventID == "" {
				log.Printf("ws: session %s sent invalid join_event payload", s.id)
				continue
			}
			s.hub.join(s, eventID)
			log.Printf("ws: session %s joined event %s", s.id, eventID)
		default:
			// Unknown client events are dropped silently.
		}
	}
}

// writePump serializes queued envelopes onto the socket.  It exits
// when the send channel is closed by readPump's cleanup.
func (s *session) writePump() {
	for env := range s.send {
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteJSON(env); err != nil {
			log.Printf("ws: session %s write failed: %v", s.id, err)
			// Drain remaining envelopes so deliver() keeps making
			// progress until the read side notices the dead socket.
			for range s.send {
			}
			return
		}
	}
}
