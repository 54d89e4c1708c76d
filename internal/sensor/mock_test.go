package sensor

import (
	"context"
	"testing"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

func TestMockFrameSource_ReplaysInOrder(t *testing.T) {
	frames := []thermal.Frame{{}, {}}
	frames[0][0][0] = 1
	frames[1][0][0] = 2

	m := NewMockFrameSource(frames, 0, nil)
	ctx := context.Background()

	_, f0, err := m.NextFrame(ctx)
	if err != nil || f0[0][0] != 1 {
		t.Fatalf("expected first frame, got %v err=%v", f0, err)
	}
	_, f1, err := m.NextFrame(ctx)
	if err != nil || f1[0][0] != 2 {
		t.Fatalf("expected second frame, got %v err=%v", f1, err)
	}
	if m.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", m.Remaining())
	}
}

func TestMockFrameSource_ExhaustedBlocksUntilCancel(t *testing.T) {
	m := NewMockFrameSource(nil, 0, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := m.NextFrame(ctx)
	if err == nil {
		t.Fatalf("expected an error once the fixture is exhausted and ctx is cancelled")
	}
}

func TestMockFrameSource_ClosedReturnsError(t *testing.T) {
	frames := []thermal.Frame{{}}
	m := NewMockFrameSource(frames, 0, nil)
	m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := m.NextFrame(ctx); err == nil {
		t.Fatalf("expected an error from a closed source")
	}
}
