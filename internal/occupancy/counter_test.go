package occupancy

import (
	"testing"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

type recordingSink struct {
	events []thermal.CrossingEvent
}

func (r *recordingSink) OnEvent(e thermal.CrossingEvent) {
	r.events = append(r.events, e)
}

func TestCounter_EntranceAndExit(t *testing.T) {
	c := New(nil)
	c.OnEvent(thermal.CrossingEvent{TrackID: 1, Direction: thermal.Entrance, WallClock: time.Now()})
	c.OnEvent(thermal.CrossingEvent{TrackID: 2, Direction: thermal.Entrance, WallClock: time.Now()})
	if c.Count() != 2 {
		t.Fatalf("expected count 2, got %d", c.Count())
	}
	c.OnEvent(thermal.CrossingEvent{TrackID: 3, Direction: thermal.Exit, WallClock: time.Now()})
	if c.Count() != 1 {
		t.Fatalf("expected count 1, got %d", c.Count())
	}
}

func TestCounter_NeverGoesNegative(t *testing.T) {
	c := New(nil)
	c.OnEvent(thermal.CrossingEvent{TrackID: 1, Direction: thermal.Exit, WallClock: time.Now()})
	if c.Count() != 0 {
		t.Fatalf("expected count clamped to 0, got %d", c.Count())
	}
}

func TestCounter_EntrancesAndExitsTrackedIndependently(t *testing.T) {
	c := New(nil)
	c.OnEvent(thermal.CrossingEvent{TrackID: 1, Direction: thermal.Entrance, WallClock: time.Now()})
	c.OnEvent(thermal.CrossingEvent{TrackID: 2, Direction: thermal.Exit, WallClock: time.Now()})
	c.OnEvent(thermal.CrossingEvent{TrackID: 3, Direction: thermal.Exit, WallClock: time.Now()})

	entrances, exits := c.EntrancesAndExits()
	if entrances != 1 || exits != 2 {
		t.Fatalf("expected entrances=1 exits=2, got entrances=%d exits=%d", entrances, exits)
	}
	if c.Count() != 0 {
		t.Fatalf("expected occupancy floored at 0, got %d", c.Count())
	}
}

func TestCounter_ForwardsToDownstream(t *testing.T) {
	rec := &recordingSink{}
	c := New(rec)
	e := thermal.CrossingEvent{TrackID: 7, Direction: thermal.Entrance, WallClock: time.Now()}
	c.OnEvent(e)
	if len(rec.events) != 1 || rec.events[0].TrackID != 7 {
		t.Fatalf("expected the event to be forwarded downstream, got %v", rec.events)
	}
}

func TestCounter_RecentReturnsNewestLast(t *testing.T) {
	c := New(nil)
	for i := int64(1); i <= 3; i++ {
		c.OnEvent(thermal.CrossingEvent{TrackID: i, Direction: thermal.Entrance, WallClock: time.Now()})
	}
	recent := c.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 events, got %d", len(recent))
	}
	if recent[len(recent)-1].TrackID != 3 {
		t.Fatalf("expected newest event last, got %v", recent)
	}
}

func TestCounter_RecentCapsAtHistoryLimit(t *testing.T) {
	c := New(nil)
	for i := 0; i < historyLimit+10; i++ {
		c.OnEvent(thermal.CrossingEvent{TrackID: int64(i), Direction: thermal.Entrance, WallClock: time.Now()})
	}
	recent := c.Recent(historyLimit + 10)
	if len(recent) != historyLimit {
		t.Fatalf("expected history capped at %d, got %d", historyLimit, len(recent))
	}
	if recent[len(recent)-1].TrackID != int64(historyLimit+9) {
		t.Fatalf("expected newest event retained, got track id %d", recent[len(recent)-1].TrackID)
	}
}

func TestCounter_Reset(t *testing.T) {
	c := New(nil)
	c.OnEvent(thermal.CrossingEvent{TrackID: 1, Direction: thermal.Entrance, WallClock: time.Now()})
	c.Reset()
	if c.Count() != 0 {
		t.Fatalf("expected count reset to 0, got %d", c.Count())
	}
	if len(c.Recent(10)) != 1 {
		t.Fatalf("expected Reset to preserve event history, got %d entries", len(c.Recent(10)))
	}
}
