package analytics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/persistence"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

func openTestStore(t *testing.T) *persistence.Store {
	t.Helper()
	s, err := persistence.Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHourlyHistogram_BucketsByHour(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	events := []struct {
		offset time.Duration
		dir    thermal.Direction
	}{
		{0, thermal.Entrance},
		{10 * time.Minute, thermal.Entrance},
		{90 * time.Minute, thermal.Exit},
	}
	for i, e := range events {
		if _, err := store.InsertEvent(thermal.CrossingEvent{
			TrackID:   int64(i),
			Direction: e.dir,
			WallClock: base.Add(e.offset),
		}); err != nil {
			t.Fatalf("InsertEvent: %v", err)
		}
	}

	buckets, err := HourlyHistogram(store, base)
	if err != nil {
		t.Fatalf("HourlyHistogram: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 hourly buckets, got %d", len(buckets))
	}
	if buckets[0].Entrances != 2 || buckets[0].Exits != 0 {
		t.Fatalf("expected hour 0 to have 2 entrances, 0 exits, got %+v", buckets[0])
	}
	if buckets[1].Entrances != 0 || buckets[1].Exits != 1 {
		t.Fatalf("expected hour 1 to have 0 entrances, 1 exit, got %+v", buckets[1])
	}
}

func TestHourlyHistogram_EmptyStoreReturnsNoBuckets(t *testing.T) {
	store := openTestStore(t)
	buckets, err := HourlyHistogram(store, time.Now())
	if err != nil {
		t.Fatalf("HourlyHistogram: %v", err)
	}
	if len(buckets) != 0 {
		t.Fatalf("expected no buckets, got %d", len(buckets))
	}
}

func TestDailyHistogram_BucketsByDay(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := store.InsertEvent(thermal.CrossingEvent{TrackID: 1, Direction: thermal.Entrance, WallClock: base}); err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}
	if _, err := store.InsertEvent(thermal.CrossingEvent{TrackID: 2, Direction: thermal.Entrance, WallClock: base.Add(25 * time.Hour)}); err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}

	buckets, err := DailyHistogram(store, base)
	if err != nil {
		t.Fatalf("DailyHistogram: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 daily buckets, got %d", len(buckets))
	}
	if buckets[0].Entrances != 1 || buckets[1].Entrances != 1 {
		t.Fatalf("expected 1 entrance per day, got %+v", buckets)
	}
}
