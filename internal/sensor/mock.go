package sensor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/timeutil"
)

// MockFrameSource replays a fixed sequence of Frames, one per NextFrame
// call (or, if Clock is set, paced at Period using the clock's timer so
// tests can drive it deterministically). Reference fixture-replay
// implementation for tests and the demo binary.
type MockFrameSource struct {
	mu     sync.Mutex
	frames []thermal.Frame
	idx    int
	period time.Duration
	clock  timeutil.Clock
	closed bool
}

// NewMockFrameSource constructs a MockFrameSource over frames, paced at
// period using clock. A nil clock disables pacing: NextFrame returns
// immediately, which is what most unit tests want.
func NewMockFrameSource(frames []thermal.Frame, period time.Duration, clock timeutil.Clock) *MockFrameSource {
	return &MockFrameSource{frames: frames, period: period, clock: clock}
}

// NextFrame returns the next fixture frame in order. Once the fixture is
// exhausted it blocks until ctx is done, mirroring a sensor that has
// stopped producing.
func (m *MockFrameSource) NextFrame(ctx context.Context) (time.Time, thermal.Frame, error) {
	if m.clock != nil {
		select {
		case <-m.clock.After(m.period):
		case <-ctx.Done():
			return time.Time{}, thermal.Frame{}, ctx.Err()
		}
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return time.Time{}, thermal.Frame{}, errors.New("sensor: mock frame source closed")
	}
	if m.idx >= len(m.frames) {
		m.mu.Unlock()
		<-ctx.Done()
		return time.Time{}, thermal.Frame{}, ctx.Err()
	}
	f := m.frames[m.idx]
	m.idx++
	m.mu.Unlock()

	now := time.Now()
	if m.clock != nil {
		now = m.clock.Now()
	}
	return now, f, nil
}

// Close marks the source closed; any NextFrame call already blocked on an
// exhausted fixture is left to ctx cancellation, consistent with a real
// transport that stops delivering after Close.
func (m *MockFrameSource) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Remaining reports how many fixture frames have not yet been consumed.
func (m *MockFrameSource) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames) - m.idx
}
