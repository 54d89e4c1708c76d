package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_InsertAndRecentEvents(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.InsertEvent(thermal.CrossingEvent{
			TrackID:    int64(i + 1),
			Direction:  thermal.Entrance,
			WallClock:  base.Add(time.Duration(i) * time.Second),
			FrameIndex: int64(i),
		})
		if err != nil {
			t.Fatalf("InsertEvent %d: %v", i, err)
		}
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].TrackID != 2 || got[1].TrackID != 3 {
		t.Fatalf("expected oldest-first order [2,3], got [%d,%d]", got[0].TrackID, got[1].TrackID)
	}
	if got[1].ID == "" {
		t.Fatalf("expected a non-empty UUID")
	}
}

func TestStore_EventsSinceFiltersByWallClock(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := s.InsertEvent(thermal.CrossingEvent{TrackID: 1, Direction: thermal.Entrance, WallClock: base.Add(-time.Hour)}); err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}
	if _, err := s.InsertEvent(thermal.CrossingEvent{TrackID: 2, Direction: thermal.Entrance, WallClock: base}); err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}
	if _, err := s.InsertEvent(thermal.CrossingEvent{TrackID: 3, Direction: thermal.Entrance, WallClock: base.Add(time.Hour)}); err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}

	got, err := s.EventsSince(base)
	if err != nil {
		t.Fatalf("EventsSince: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events at or after base, got %d", len(got))
	}
	if got[0].TrackID != 2 || got[1].TrackID != 3 {
		t.Fatalf("expected oldest-first [2,3], got [%d,%d]", got[0].TrackID, got[1].TrackID)
	}
}

func TestStore_RecentOnEmptyStoreReturnsNone(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)

	var bg thermal.Background
	bg[3][4] = 21.5
	bg[7][7] = 19.25

	takenAt := time.Now()
	id, err := s.InsertSnapshot("sensor-1", "calibration", bg, takenAt)
	if err != nil {
		t.Fatalf("InsertSnapshot: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a non-empty snapshot id")
	}

	got, err := s.LatestSnapshot("sensor-1")
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if got == nil {
		t.Fatalf("expected a snapshot")
	}
	if got.Grid != bg {
		t.Fatalf("snapshot grid mismatch: got %+v, want %+v", got.Grid, bg)
	}
	if got.Reason != "calibration" {
		t.Fatalf("expected reason %q, got %q", "calibration", got.Reason)
	}
}

func TestStore_LatestSnapshotOnUnknownSensorReturnsNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.LatestSnapshot("no-such-sensor")
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil snapshot, got %+v", got)
	}
}

func TestStore_LatestSnapshotPicksMostRecent(t *testing.T) {
	s := openTestStore(t)

	var older, newer thermal.Background
	older[0][0] = 1
	newer[0][0] = 2

	if _, err := s.InsertSnapshot("sensor-1", "periodic", older, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("InsertSnapshot older: %v", err)
	}
	if _, err := s.InsertSnapshot("sensor-1", "periodic", newer, time.Now()); err != nil {
		t.Fatalf("InsertSnapshot newer: %v", err)
	}

	got, err := s.LatestSnapshot("sensor-1")
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if got.Grid != newer {
		t.Fatalf("expected the newer snapshot, got %+v", got.Grid)
	}
}
