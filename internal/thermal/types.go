package thermal

import "time"

// GridSize is the fixed side length of the sensor grid. Every Frame,
// Background and Mask in this package is GridSize x GridSize.
const GridSize = 8

// Frame is an 8x8 matrix of Celsius temperatures read from the sensor for
// one tick. Row index increases toward one side of the doorway; column
// index runs along the traversal axis.
type Frame [GridSize][GridSize]float64

// Background is the current per-cell baseline temperature, same shape as
// Frame.
type Background [GridSize][GridSize]float64

// Delta is a per-cell frame-minus-background matrix.
type Delta [GridSize][GridSize]float64

// Mask marks, per cell, whether that cell is foreground for the current
// frame.
type Mask [GridSize][GridSize]bool

// CellPos identifies one grid cell.
type CellPos struct {
	Row, Col int
}

// Detection is one candidate body found in a single frame by the Body
// Extractor. Detections within a frame have pairwise-disjoint Cells.
type Detection struct {
	MinRow, MinCol int // bounding rectangle, inclusive
	MaxRow, MaxCol int

	CentroidRow float64 // sub-cell, temperature-weighted
	CentroidCol float64

	MeanTemp float64 // mean Delta over the region
	PeakTemp float64 // peak Delta over the region

	Cells []CellPos
}

// CellCount returns the number of cells making up this detection.
func (d Detection) CellCount() int {
	return len(d.Cells)
}

// TrackState is the lifecycle state of a Track.
type TrackState int

const (
	// TrackProvisional is the state of a freshly-born track.
	TrackProvisional TrackState = iota
	// TrackConfirmed means the trajectory has reached MinConfirmSamples points.
	TrackConfirmed
	// TrackDying means the most recent frame had no matching detection.
	TrackDying
	// TrackDead means the track has exceeded its miss budget, left the
	// grid, or was flushed at shutdown.
	TrackDead
)

func (s TrackState) String() string {
	switch s {
	case TrackProvisional:
		return "provisional"
	case TrackConfirmed:
		return "confirmed"
	case TrackDying:
		return "dying"
	case TrackDead:
		return "dead"
	default:
		return "unknown"
	}
}

// TrajectoryPoint is one sample of a track's position history.
type TrajectoryPoint struct {
	FrameIndex int64
	Row, Col   float64
}

// Track is a persistent hypothesis about one person crossing the doorway.
type Track struct {
	ID int64

	State TrackState

	Trajectory []TrajectoryPoint

	LastFrameIndex int64
	LastRow        float64
	LastCol        float64
	LastMeanTemp   float64

	Misses int

	// EverConfirmed records whether the track ever reached TrackConfirmed,
	// which it may have since left (e.g. while dying) without losing
	// eligibility for a crossing event at death.
	EverConfirmed bool

	// Counted is set once this track has emitted a CrossingEvent.
	Counted bool
}

// Direction is the label of a CrossingEvent.
type Direction string

const (
	Entrance Direction = "entrance"
	Exit     Direction = "exit"
)

// CrossingEvent is emitted at most once per track, when it dies and its
// trajectory qualifies.
type CrossingEvent struct {
	TrackID    int64
	Direction  Direction
	WallClock  time.Time
	FrameIndex int64
}
