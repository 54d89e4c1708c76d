package sensor

import (
	"context"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

// FrameSource is the pipeline's pull contract onto whatever is supplying
// frames, per SPEC_FULL.md §5/§6. NextFrame blocks until a frame is
// available or ctx is done; a context deadline exceeded while waiting
// past the grace window is the caller's signal of a stalled sensor.
type FrameSource interface {
	NextFrame(ctx context.Context) (time.Time, thermal.Frame, error)
	Close() error
}

// NominalPeriod is the sensor's target sample interval (10 Hz).
const NominalPeriod = 100 * time.Millisecond

// StallGrace is the multiple of NominalPeriod NextFrame will wait before a
// caller should treat the absence of a frame as a stalled sensor, per
// SPEC_FULL.md's SensorStalled condition.
const StallGrace = 3 * NominalPeriod
