package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitechmekong/eventProject/internal/model"
	"github.com/hitechmekong/eventProject/internal/queue"
	"github.com/hitechmekong/eventProject/internal/repository"
	"github.com/hitechmekong/eventProject/internal/ws"
)

// fakeGuestStore backs the handler with an in-memory guest so tests can
// assert on state transitions without a database.
type fakeGuestStore struct {
	guest   *model.Guest
	event   *model.Event
	findErr error
	markErr error
	marked  int // MarkCheckedIn call count
}

func (f *fakeGuestStore) FindByTicketCode(_ context.Context, code string) (*model.Guest, *model.Event, error) {
	if f.findErr != nil {
		return nil, nil, f.findErr
	}
	if f.guest == nil || f.guest.TicketCode != code {
		return nil, nil, repository.ErrGuestNotFound
	}
	return f.guest, f.event, nil
}

func (f *fakeGuestStore) MarkCheckedIn(_ context.Context, id uint64, at time.Time) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	f.marked++
	if f.guest.CheckinStatus == model.CheckinCheckedIn {
		return false, nil
	}
	f.guest.CheckinStatus = model.CheckinCheckedIn
	return true, nil
}

type published struct {
	event string
	data  interface{}
	room  string
}

type recordingHub struct {
	mu   sync.Mutex
	sent []published
}

func (r *recordingHub) Publish(event string, data interface{}, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, published{event: event, data: data, room: room})
}

func (r *recordingHub) all() []published {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]published, len(r.sent))
	copy(out, r.sent)
	return out
}

func pendingGuest() (*model.Guest, *model.Event) {
	g := &model.Guest{
		ID:            7,
		EventID:       42,
		Name:          "Linh Tran",
		TicketCode:    "ABCD1234",
		CheckinStatus: model.CheckinPending,
	}
	ev := &model.Event{ID: 42, Name: "Launch Night", IsCheckinOpen: true}
	return g, ev
}

func doCheckin(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec
}

func TestSelfCheckin_MissingTicketCode(t *testing.T) {
	store := &fakeGuestStore{}
	hub := &recordingHub{}
	h := NewCheckinHandler(store, hub, nil)

	rec := doCheckin(t, h.SelfCheckin, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ticket code is required")
	assert.Empty(t, hub.all())
}

func TestSelfCheckin_GuestNotFound(t *testing.T) {
	store := &fakeGuestStore{}
	hub := &recordingHub{}
	h := NewCheckinHandler(store, hub, nil)

	rec := doCheckin(t, h.SelfCheckin, `{"ticket_code":"NOPE0000"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Guest not found")
	assert.Empty(t, hub.all())
}

func TestSelfCheckin_ClosedEventIsRejected(t *testing.T) {
	guest, event := pendingGuest()
	event.IsCheckinOpen = false
	store := &fakeGuestStore{guest: guest, event: event}
	hub := &recordingHub{}
	h := NewCheckinHandler(store, hub, nil)

	rec := doCheckin(t, h.SelfCheckin, `{"ticket_code":"ABCD1234"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Check-in is currently closed for this event")
	// Nothing is broadcast and the guest stays PENDING.
	assert.Empty(t, hub.all())
	assert.Equal(t, model.CheckinPending, guest.CheckinStatus)
	assert.Zero(t, store.marked)
}

func TestSelfCheckin_FreshTransition(t *testing.T) {
	guest, event := pendingGuest()
	store := &fakeGuestStore{guest: guest, event: event}
	hub := &recordingHub{}
	h := NewCheckinHandler(store, hub, nil)

	rec := doCheckin(t, h.SelfCheckin, `{"ticket_code":"ABCD1234"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Check-in successful")
	assert.Equal(t, model.CheckinCheckedIn, guest.CheckinStatus)
	require.NotNil(t, guest.CheckinTime)

	sent := hub.all()
	require.Len(t, sent, 1)
	assert.Equal(t, ws.EventNewCheckin, sent[0].event)
	assert.Equal(t, "42", sent[0].room)
	n, ok := sent[0].data.(ws.CheckinNotification)
	require.True(t, ok)
	assert.Equal(t, "Linh Tran", n.Name)
	assert.Equal(t, "Welcome Linh Tran!", n.WelcomeMessage)
	assert.Equal(t, "TBD", n.Seat) // no seat assigned
	assert.Equal(t, "42", n.EventID)
}

func TestSelfCheckin_RepeatKeepsTimeButRebroadcasts(t *testing.T) {
	guest, event := pendingGuest()
	store := &fakeGuestStore{guest: guest, event: event}
	hub := &recordingHub{}
	h := NewCheckinHandler(store, hub, nil)

	rec := doCheckin(t, h.SelfCheckin, `{"ticket_code":"ABCD1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, guest.CheckinTime)
	first := *guest.CheckinTime

	rec = doCheckin(t, h.SelfCheckin, `{"ticket_code":"ABCD1234"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Already checked in")
	// checkin_time is first-write-wins; the announcement still repeats.
	require.NotNil(t, guest.CheckinTime)
	assert.Equal(t, first, *guest.CheckinTime)
	assert.Len(t, hub.all(), 2)
}

func TestScanCheckin_IgnoresClosedGate(t *testing.T) {
	guest, event := pendingGuest()
	event.IsCheckinOpen = false
	store := &fakeGuestStore{guest: guest, event: event}
	hub := &recordingHub{}
	h := NewCheckinHandler(store, hub, nil)

	rec := doCheckin(t, h.ScanCheckin, `{"ticket_code":"ABCD1234"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Guest verified and checked in")
	assert.Equal(t, model.CheckinCheckedIn, guest.CheckinStatus)

	sent := hub.all()
	require.Len(t, sent, 1)
	n, ok := sent[0].data.(ws.CheckinNotification)
	require.True(t, ok)
	assert.Equal(t, "Verified: Linh Tran", n.WelcomeMessage)
}

func TestCheckin_AuditOnlyOnFreshTransition(t *testing.T) {
	guest, event := pendingGuest()
	store := &fakeGuestStore{guest: guest, event: event}
	hub := &recordingHub{}

	audited := make(chan queue.CheckinLoggedEvent, 2)
	audit := func(_ context.Context, ev queue.CheckinLoggedEvent) error {
		audited <- ev
		return nil
	}
	h := NewCheckinHandler(store, hub, audit)

	doCheckin(t, h.SelfCheckin, `{"ticket_code":"ABCD1234"}`)
	select {
	case ev := <-audited:
		assert.Equal(t, queue.MethodSelf, ev.Method)
		assert.Equal(t, "ABCD1234", ev.TicketCode)
	case <-time.After(time.Second):
		t.Fatal("expected an audit event for the fresh transition")
	}

	doCheckin(t, h.SelfCheckin, `{"ticket_code":"ABCD1234"}`)
	select {
	case <-audited:
		t.Fatal("re-entry must not be audited")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCheckin_NilHubDoesNotPanic(t *testing.T) {
	guest, event := pendingGuest()
	store := &fakeGuestStore{guest: guest, event: event}
	h := NewCheckinHandler(store, nil, nil)

	require.NotPanics(t, func() {
		rec := doCheckin(t, h.SelfCheckin, `{"ticket_code":"ABCD1234"}`)
		// Persistence wins even when no screen is listening.
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	assert.Equal(t, model.CheckinCheckedIn, guest.CheckinStatus)
}

func TestScanCheckin_SeatPassedThroughWhenAssigned(t *testing.T) {
	guest, event := pendingGuest()
	seat := "A-12"
	guest.SeatLocation = &seat
	store := &fakeGuestStore{guest: guest, event: event}
	hub := &recordingHub{}
	h := NewCheckinHandler(store, hub, nil)

	rec := doCheckin(t, h.ScanCheckin, `{"ticket_code":"ABCD1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	sent := hub.all()
	require.Len(t, sent, 1)
	n := sent[0].data.(ws.CheckinNotification)
	assert.Equal(t, "A-12", n.Seat)
}
