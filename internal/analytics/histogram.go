package analytics

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/persistence"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

// Bucket is one histogram bucket: the count of entrances and exits whose
// wall clock fell within [Start, Start+Width).
type Bucket struct {
	Start     time.Time
	Entrances float64
	Exits     float64
}

// HourlyHistogram buckets every event at or after since into hourly
// entrance/exit counts using gonum/stat's weighted histogram.
func HourlyHistogram(store *persistence.Store, since time.Time) ([]Bucket, error) {
	return histogram(store, since, time.Hour)
}

// DailyHistogram buckets every event at or after since into daily
// entrance/exit counts.
func DailyHistogram(store *persistence.Store, since time.Time) ([]Bucket, error) {
	return histogram(store, since, 24*time.Hour)
}

func histogram(store *persistence.Store, since time.Time, width time.Duration) ([]Bucket, error) {
	events, err := store.EventsSince(since)
	if err != nil {
		return nil, fmt.Errorf("analytics: load events: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	last := events[len(events)-1].WallClock
	nBuckets := int(last.Sub(since)/width) + 1
	if nBuckets < 1 {
		nBuckets = 1
	}

	dividers := make([]float64, nBuckets+1)
	for i := range dividers {
		dividers[i] = float64(i) * float64(width)
	}

	var entranceOffsets, exitOffsets []float64
	for _, e := range events {
		offset := float64(e.WallClock.Sub(since))
		switch e.Direction {
		case thermal.Entrance:
			entranceOffsets = append(entranceOffsets, offset)
		case thermal.Exit:
			exitOffsets = append(exitOffsets, offset)
		}
	}

	entranceCounts := stat.Histogram(nil, dividers, entranceOffsets, nil)
	exitCounts := stat.Histogram(nil, dividers, exitOffsets, nil)

	buckets := make([]Bucket, nBuckets)
	for i := range buckets {
		buckets[i] = Bucket{
			Start:     since.Add(time.Duration(dividers[i])),
			Entrances: entranceCounts[i],
			Exits:     exitCounts[i],
		}
	}
	return buckets, nil
}
