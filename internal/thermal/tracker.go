package thermal

import (
	"sort"
	"time"
)

// Tracker maintains the set of live Tracks across frames and emits
// directional CrossingEvents at track death, per SPEC_FULL.md §4.4. It
// owns all live Tracks; callers only ever see immutable CrossingEvent
// values.
type Tracker struct {
	cfg Config

	tracks map[int64]*Track
	nextID int64
}

// NewTracker constructs a Tracker from cfg.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		cfg:    cfg,
		tracks: make(map[int64]*Track),
	}
}

// LiveTracks returns the number of tracks that are not yet dead. Exposed
// for diagnostics/metrics, not used by the core itself.
func (tr *Tracker) LiveTracks() int {
	return len(tr.tracks)
}

// Step advances the tracker by one frame: predict, match, extend/miss,
// birth, then death and event emission. Events for this frame are returned
// in ascending track id order, per the temporal ordering guarantee.
func (tr *Tracker) Step(frameIndex int64, wallClock time.Time, detections []Detection) []CrossingEvent {
	ids := tr.liveIDsSorted()
	tracks := make([]*Track, len(ids))
	predicted := make([]point, len(ids))
	for i, id := range ids {
		t := tr.tracks[id]
		tracks[i] = t
		predicted[i] = predictPosition(t)
	}

	pairs := buildCandidates(tracks, predicted, detections, tr.cfg)
	trackToDet, matchedDets := greedyAssign(tracks, pairs)

	for i, t := range tracks {
		if di := trackToDet[i]; di >= 0 {
			det := detections[di]
			extendTrack(t, frameIndex, det)
			if t.State == TrackDying {
				t.State = TrackConfirmed
			}
			if !t.EverConfirmed && len(t.Trajectory) >= tr.cfg.MinConfirmSamples {
				t.State = TrackConfirmed
				t.EverConfirmed = true
			}
		} else {
			t.Misses++
			if t.State == TrackConfirmed {
				t.State = TrackDying
			}
		}
	}

	// Birth: unmatched detections spawn new provisional tracks.
	for di, det := range detections {
		if matchedDets[di] {
			continue
		}
		tr.birth(frameIndex, det)
	}

	return tr.reapDead(frameIndex, wallClock)
}

// Stop finishes the current frame and flushes every remaining track as if
// it died this frame, running the direction classifier once on each, per
// spec §5's cooperative shutdown contract.
func (tr *Tracker) Stop(frameIndex int64, wallClock time.Time) []CrossingEvent {
	for _, t := range tr.tracks {
		t.State = TrackDead
	}
	return tr.reapDead(frameIndex, wallClock)
}

func (tr *Tracker) birth(frameIndex int64, det Detection) {
	tr.nextID++
	t := &Track{
		ID:    tr.nextID,
		State: TrackProvisional,
	}
	extendTrack(t, frameIndex, det)
	tr.tracks[t.ID] = t
}

// reapDead marks tracks dead on miss-budget/edge-exit, classifies them,
// emits qualifying events in ascending id order, and removes them from the
// live set immediately after.
func (tr *Tracker) reapDead(frameIndex int64, wallClock time.Time) []CrossingEvent {
	for _, t := range tr.tracks {
		if t.State == TrackDead {
			continue
		}
		if t.Misses > tr.cfg.MaxMisses || outsideGrid(t.LastRow, t.LastCol) {
			t.State = TrackDead
		}
	}

	ids := tr.liveIDsSorted()
	var events []CrossingEvent
	for _, id := range ids {
		t := tr.tracks[id]
		if t.State != TrackDead {
			continue
		}
		if !t.Counted {
			if dir, ok := classifyDirection(t, tr.cfg); ok {
				t.Counted = true
				events = append(events, CrossingEvent{
					TrackID:    t.ID,
					Direction:  dir,
					WallClock:  wallClock,
					FrameIndex: frameIndex,
				})
			}
		}
		delete(tr.tracks, id)
	}
	return events
}

func (tr *Tracker) liveIDsSorted() []int64 {
	ids := make([]int64, 0, len(tr.tracks))
	for id := range tr.tracks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func extendTrack(t *Track, frameIndex int64, det Detection) {
	t.Trajectory = append(t.Trajectory, TrajectoryPoint{
		FrameIndex: frameIndex,
		Row:        det.CentroidRow,
		Col:        det.CentroidCol,
	})
	t.LastFrameIndex = frameIndex
	t.LastRow = det.CentroidRow
	t.LastCol = det.CentroidCol
	t.LastMeanTemp = det.MeanTemp
	t.Misses = 0
}

func predictPosition(t *Track) point {
	n := len(t.Trajectory)
	if n < 2 {
		return point{Row: t.LastRow, Col: t.LastCol}
	}
	last := t.Trajectory[n-1]
	prev := t.Trajectory[n-2]
	vr := last.Row - prev.Row
	vc := last.Col - prev.Col
	return point{Row: last.Row + vr, Col: last.Col + vc}
}

func outsideGrid(row, col float64) bool {
	const margin = 0.0
	return row < -margin || row > float64(GridSize-1)+margin ||
		col < -margin || col > float64(GridSize-1)+margin
}
