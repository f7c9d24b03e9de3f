package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hitechmekong/eventProject/internal/ws"
)

const testDwell = 40 * time.Millisecond

func note(name string) ws.CheckinNotification {
	return ws.CheckinNotification{Name: name, WelcomeMessage: "Welcome " + name + "!"}
}

func TestController_IdleArrivalPromotesImmediately(t *testing.T) {
	c := NewController(testDwell, nil)
	defer c.Close()

	c.Enqueue(note("n1"))

	cur, ok := c.Current()
	require.True(t, ok, "idle arrival becomes current in the same step")
	require.Equal(t, "n1", cur.Name)
	require.Equal(t, 0, c.Pending())
}

func TestController_BusyArrivalQueuesWithoutInterrupting(t *testing.T) {
	c := NewController(testDwell, nil)
	defer c.Close()

	c.Enqueue(note("n1"))
	c.Enqueue(note("n2"))

	cur, ok := c.Current()
	require.True(t, ok)
	require.Equal(t, "n1", cur.Name, "current item is not interrupted")
	require.Equal(t, 1, c.Pending())
}

func TestController_RotationAfterDwell(t *testing.T) {
	c := NewController(testDwell, nil)
	defer c.Close()

	c.Enqueue(note("n1"))
	c.Enqueue(note("n2"))

	require.Eventually(t, func() bool {
		cur, ok := c.Current()
		return ok && cur.Name == "n2"
	}, time.Second, 5*time.Millisecond, "n2 becomes current after the dwell elapses")
	require.Equal(t, 0, c.Pending(), "queue drains as items rotate through")
}

func TestController_ReturnsToIdleWhenQueueEmpty(t *testing.T) {
	c := NewController(testDwell, nil)
	defer c.Close()

	c.Enqueue(note("n1"))
	require.Eventually(t, func() bool {
		_, ok := c.Current()
		return !ok
	}, time.Second, 5*time.Millisecond, "current clears once dwell expires with an empty queue")
}

func TestController_StrictFIFOUnderBurst(t *testing.T) {
	var order []string
	c := NewController(5*time.Millisecond, func(s Snapshot) {
		if s.Current != nil && (len(order) == 0 || order[len(order)-1] != s.Current.Name) {
			order = append(order, s.Current.Name)
		}
	})
	defer c.Close()

	names := []string{"a", "b", "c", "d", "e"}
	for _, n := range names {
		c.Enqueue(note(n))
	}
	require.Eventually(t, func() bool {
		_, ok := c.Current()
		return !ok && c.Pending() == 0
	}, time.Second, 2*time.Millisecond)
	require.Equal(t, names, order, "display order equals arrival order")
}

func TestController_CloseStopsTimerAndRejectsLateEnqueues(t *testing.T) {
	c := NewController(testDwell, nil)
	c.Enqueue(note("n1"))
	c.Close()

	_, ok := c.Current()
	require.False(t, ok, "teardown clears the current slot")

	c.Enqueue(note("late"))
	_, ok = c.Current()
	require.False(t, ok, "no notification after teardown may mutate state")
	require.Equal(t, 0, c.Pending())

	// A fired timer after Close must not resurrect anything.
	time.Sleep(2 * testDwell)
	_, ok = c.Current()
	require.False(t, ok)
}

func TestController_OnChangeSeesPromotions(t *testing.T) {
	var snaps []Snapshot
	c := NewController(testDwell, func(s Snapshot) { snaps = append(snaps, s) })
	defer c.Close()

	c.Enqueue(note("n1"))
	require.NotEmpty(t, snaps)
	require.NotNil(t, snaps[len(snaps)-1].Current)
	require.Equal(t, "n1", snaps[len(snaps)-1].Current.Name)
}
