package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSub records every envelope delivered to it.
type fakeSub struct {
	got []Envelope
}

func (f *fakeSub) deliver(env Envelope) { f.got = append(f.got, env) }

func TestHub_PublishReachesOnlyRoomMembers(t *testing.T) {
	h := NewHub()
	a, b, outsider := &fakeSub{}, &fakeSub{}, &fakeSub{}
	h.register(a)
	h.register(b)
	h.register(outsider)
	h.join(a, "42")
	h.join(b, "42")
	h.join(outsider, "7")

	n := CheckinNotification{Name: "Alice", WelcomeMessage: "Welcome Alice!", EventID: "42"}
	h.Publish(EventNewCheckin, n, "42")

	require.Len(t, a.got, 1)
	require.Len(t, b.got, 1)
	require.Empty(t, outsider.got, "no cross-room leakage")
	require.Equal(t, EventNewCheckin, a.got[0].Event)
	require.Equal(t, n, a.got[0].Data)
}

func TestHub_JoinIsIdempotent(t *testing.T) {
	h := NewHub()
	a := &fakeSub{}
	h.register(a)
	h.join(a, "42")
	h.join(a, "42")
	h.join(a, "42")

	require.Equal(t, 1, h.RoomSize("42"))
	h.Publish(EventNewCheckin, CheckinNotification{Name: "Bob"}, "42")
	require.Len(t, a.got, 1, "one copy per member regardless of repeated joins")
}

func TestHub_PublishEmptyRoomIsNoOp(t *testing.T) {
	h := NewHub()
	a := &fakeSub{}
	h.register(a)
	h.join(a, "42")

	// Must not panic, error, or deliver anywhere.
	h.Publish(EventNewCheckin, CheckinNotification{Name: "Carol"}, "999")
	require.Empty(t, a.got)
}

func TestHub_NilHubPublishIsNoOp(t *testing.T) {
	var h *Hub
	require.NotPanics(t, func() {
		h.Publish(EventNewCheckin, CheckinNotification{Name: "Dave"}, "42")
	})
}

func TestHub_PublishWithoutRoomReachesEveryConnection(t *testing.T) {
	h := NewHub()
	a, b := &fakeSub{}, &fakeSub{}
	h.register(a)
	h.register(b)
	h.join(a, "42")
	// b never joined any room.

	h.Publish("announcement", "doors open", "")
	require.Len(t, a.got, 1)
	require.Len(t, b.got, 1)
}

func TestHub_UnregisterRemovesFromAllRooms(t *testing.T) {
	h := NewHub()
	a := &fakeSub{}
	h.register(a)
	h.join(a, "42")
	h.join(a, "7")
	h.unregister(a)

	require.Equal(t, 0, h.RoomSize("42"))
	require.Equal(t, 0, h.RoomSize("7"))
	h.Publish(EventNewCheckin, CheckinNotification{Name: "Eve"}, "42")
	require.Empty(t, a.got)
}

func TestHub_PerSubscriberOrderMatchesPublishOrder(t *testing.T) {
	h := NewHub()
	a := &fakeSub{}
	h.register(a)
	h.join(a, "42")

	for _, name := range []string{"n1", "n2", "n3"} {
		h.Publish(EventNewCheckin, CheckinNotification{Name: name}, "42")
	}
	require.Len(t, a.got, 3)
	for i, name := range []string{"n1", "n2", "n3"} {
		require.Equal(t, name, a.got[i].Data.(CheckinNotification).Name)
	}
}
