package ws

import (
	"log"
	"sync"
)

// subscriber is one live connection the hub can deliver envelopes to.
// deliver must never block: a slow or stalled recipient cannot be
// allowed to hold up a publish call.
type subscriber interface {
	deliver(Envelope)
}

// Hub is the process-wide room registry and broadcast publisher.  It
// maintains a many-to-many relation between live connections and event
// room identifiers.  The hub is built once in the composition root and
// passed by reference to the HTTP server and the check-in handler; it
// never self-instantiates.
//
// All membership maps are guarded by a mutex because connections are
// served from independent goroutines.
type Hub struct {
	mu    sync.RWMutex
	subs  map[subscriber]struct{}            // every live connection
	rooms map[string]map[subscriber]struct{} // event id -> members
}

// NewHub returns an empty hub with no connections or rooms.
func NewHub() *Hub {
	return &Hub{
		subs:  make(map[subscriber]struct{}),
		rooms: make(map[string]map[subscriber]struct{}),
	}
}

// Publish delivers a named payload to every connection currently in
// the given room, one copy each.  An empty room id broadcasts to all
// connections.  Publishing to a room with no members does nothing, and
// a nil hub only logs: the broadcast is fire-and-forget and a lost
// notification is an accepted outcome.  Publish never returns an error
// and never blocks on a recipient.
func (h *Hub) Publish(event string, data interface{}, room string) {
	if h == nil {
		log.Printf("ws: hub not initialized, dropping %q", event)
		return
	}
	env := Envelope{Event: event, Data: data}

	h.mu.RLock()
	var targets []subscriber
	if room == "" {
		targets = make([]subscriber, 0, len(h.subs))
		for s := range h.subs {
			targets = append(targets, s)
		}
	} else {
		members := h.rooms[room]
		targets = make([]subscriber, 0, len(members))
		for s := range members {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	// Delivery order across distinct recipients is unspecified; per
	// recipient, envelopes arrive in publish order because each
	// connection drains its own send queue with a single writer.
	for _, s := range targets {
		s.deliver(env)
	}
}

// register adds a freshly upgraded connection to the hub.  The
// connection belongs to no room until it sends a join_event message.
func (h *Hub) register(s subscriber) {
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
}

// join adds a connection to a room's membership set.  Joining the same
// room twice is a no-op; there is no capacity limit and no ack.
func (h *Hub) join(s subscriber, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[subscriber]struct{})
		h.rooms[room] = members
	}
	members[s] = struct{}{}
	h.mu.Unlock()
}

// unregister removes a connection from the hub and from every room it
// joined.  Room membership is not persisted anywhere, so a
// reconnecting client must join again.
func (h *Hub) unregister(s subscriber) {
	h.mu.Lock()
	delete(h.subs, s)
	for room, members := range h.rooms {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()
}

// RoomSize reports how many connections are currently in a room.  It
// exists for observability endpoints and tests.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
