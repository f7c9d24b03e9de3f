// Package display implements the welcome-screen side of the check-in
// pipeline: a WebSocket client that joins one event's room, and a
// queue controller that shows arriving check-in notifications one at a
// time with a fixed dwell duration.
package display

import (
	"sync"
	"time"

	"github.com/hitechmekong/eventProject/internal/ws"
)

// DefaultDwell is how long a notification stays on screen before the
// next one rotates in.
const DefaultDwell = 30 * time.Second

// Snapshot is the controller state handed to the render callback.
type Snapshot struct {
	Current *ws.CheckinNotification // nil while idle
	Pending int                     // queued notifications not yet shown
}

// Controller buffers check-in notifications in arrival order and
// promotes exactly one at a time to the "current" slot.  The queue is
// unbounded: under a sustained burst, later guests wait longer rather
// than being dropped or reordered.
//
// Rotation is driven by a single cancellable timer.  Expiry clears the
// current slot and then runs the same idle-check promotion path used
// when a notification arrives while the screen is idle, so both cases
// converge on one piece of logic.
type Controller struct {
	mu       sync.Mutex
	dwell    time.Duration
	queue    []ws.CheckinNotification
	current  *ws.CheckinNotification
	timer    *time.Timer
	closed   bool
	onChange func(Snapshot)
}

// NewController builds a controller with the given dwell duration.
// onChange, if non-nil, is invoked under the controller lock whenever
// the current slot or queue depth changes; it must not call back into
// the controller.
func NewController(dwell time.Duration, onChange func(Snapshot)) *Controller {
	if dwell <= 0 {
		dwell = DefaultDwell
	}
	return &Controller{dwell: dwell, onChange: onChange}
}

// Enqueue appends a notification to the tail of the queue.  If the
// screen is idle the notification is promoted to current in the same
// step.  Notifications received after Close are discarded.
func (c *Controller) Enqueue(n ws.CheckinNotification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.queue = append(c.queue, n)
	c.promoteIfIdleLocked()
	c.notifyLocked()
}

// Current returns the notification being displayed, if any.
func (c *Controller) Current() (ws.CheckinNotification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ws.CheckinNotification{}, false
	}
	return *c.current, true
}

// Pending reports how many notifications are queued behind the current
// one.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Close releases the dwell timer and freezes the controller.  No
// notification delivered afterwards may mutate state; a timer that has
// already fired finds the closed flag and does nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
	c.queue = nil
}

// promoteIfIdleLocked moves the head of the queue into the current
// slot when nothing is displayed, and arms the dwell timer.  Caller
// holds the lock.
func (c *Controller) promoteIfIdleLocked() {
	if c.current != nil || len(c.queue) == 0 {
		return
	}
	head := c.queue[0]
	c.queue = c.queue[1:]
	c.current = &head
	c.timer = time.AfterFunc(c.dwell, c.rotate)
}

// rotate fires when the dwell duration elapses.  It clears the current
// slot; the vacancy is then filled through the same idle-check path
// used by Enqueue.
func (c *Controller) rotate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.current = nil
	c.timer = nil
	c.promoteIfIdleLocked()
	c.notifyLocked()
}

func (c *Controller) notifyLocked() {
	if c.onChange != nil {
		c.onChange(Snapshot{Current: c.current, Pending: len(c.queue)})
	}
}
