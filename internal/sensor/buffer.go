package sensor

import (
	"context"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

// reading pairs a Frame with the wall-clock time it was captured.
type reading struct {
	at    time.Time
	frame thermal.Frame
}

// buffer is a single-slot, latest-reading-wins handoff between the
// sensor's reader goroutine and NextFrame. A full slot is drained and
// overwritten rather than blocking the writer, so a bursty or jittery
// transport never backs up behind a pipeline step; the consumer always
// sees the most recent frame, never a stale queued one.
type buffer struct {
	ch chan reading
}

func newBuffer() *buffer {
	return &buffer{ch: make(chan reading, 1)}
}

// put installs r as the current reading, discarding whatever was there.
func (b *buffer) put(r reading) {
	for {
		select {
		case b.ch <- r:
			return
		default:
		}
		select {
		case <-b.ch:
		default:
		}
	}
}

// next blocks until a reading is available or ctx is done.
func (b *buffer) next(ctx context.Context) (reading, error) {
	select {
	case r := <-b.ch:
		return r, nil
	case <-ctx.Done():
		return reading{}, ctx.Err()
	}
}
