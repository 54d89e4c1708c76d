package occupancy

import (
	"sync"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/monitoring"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

// historyLimit caps how many recent events Counter retains in memory for
// the status API; older events still reach the persistence layer, which
// has its own retention.
const historyLimit = 500

// Counter implements thermal.EventSink: it maintains running entrance/exit
// totals and the derived occupancy from CrossingEvents, and forwards each
// event to an optional downstream sink (typically the persistence store).
type Counter struct {
	mu sync.Mutex

	entrances int64
	exits     int64
	history   []thermal.CrossingEvent

	downstream thermal.EventSink
}

// New constructs a Counter. downstream may be nil; if set, every event is
// forwarded to it after the count is updated.
func New(downstream thermal.EventSink) *Counter {
	return &Counter{downstream: downstream}
}

// OnEvent implements thermal.EventSink. Entrance increments entrances, Exit
// increments exits; occupancy (entrances-exits) is floored at 0 when read.
// The totals themselves are never clamped, so exits in excess of entrances
// keep offsetting later entrances.
func (c *Counter) OnEvent(e thermal.CrossingEvent) {
	c.mu.Lock()
	switch e.Direction {
	case thermal.Entrance:
		c.entrances++
	case thermal.Exit:
		c.exits++
	}
	c.history = append(c.history, e)
	if len(c.history) > historyLimit {
		c.history = c.history[len(c.history)-historyLimit:]
	}
	occupancy := c.occupancyLocked()
	c.mu.Unlock()

	monitoring.Logf("occupancy: track=%d direction=%s occupancy=%d", e.TrackID, e.Direction, occupancy)

	if c.downstream != nil {
		c.downstream.OnEvent(e)
	}
}

func (c *Counter) occupancyLocked() int64 {
	occ := c.entrances - c.exits
	if occ < 0 {
		return 0
	}
	return occ
}

// Count returns the current occupancy (entrances - exits, floored at 0).
func (c *Counter) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.occupancyLocked()
}

// EntrancesAndExits returns the running entrance and exit totals.
func (c *Counter) EntrancesAndExits() (entrances, exits int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entrances, c.exits
}

// Recent returns up to n of the most recent events, newest last.
func (c *Counter) Recent(n int) []thermal.CrossingEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 || n > len(c.history) {
		n = len(c.history)
	}
	out := make([]thermal.CrossingEvent, n)
	copy(out, c.history[len(c.history)-n:])
	return out
}

// Reset zeroes entrances, exits and occupancy without clearing event
// history. Wires the host's "reset count" control signal, for operator
// correction after a miscount (e.g. a known double-entry).
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entrances = 0
	c.exits = 0
}

// Since reports the wall-clock time of the oldest event still in history,
// or the zero time if history is empty.
func (c *Counter) Since() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) == 0 {
		return time.Time{}
	}
	return c.history[0].WallClock
}
