package thermal

import "math"

// CalibrationStatus reports the progress of the Background Model's
// calibration phase.
type CalibrationStatus int

const (
	// CalibrationMore means more frames are needed before the baseline is
	// ready.
	CalibrationMore CalibrationStatus = iota
	// CalibrationReady means calibration is complete: either it finished on
	// this call and the background now reflects the mean of the calibration
	// window, or it had already finished (or was seeded) and the frame was
	// ignored.
	CalibrationReady
)

// Background model: calibration phase followed by an adaptive EWMA phase.
// Owns its matrix exclusively; mutated only from FeedCalibration and
// UpdateAdaptive, always from the pipeline thread (spec §5 — no locks).
type BackgroundModel struct {
	cfg Config

	calibrated bool
	sum        Background // running sum during calibration
	count      int

	bg Background
}

// NewBackgroundModel constructs a BackgroundModel that will calibrate over
// cfg.CalibrationFrames frames.
func NewBackgroundModel(cfg Config) *BackgroundModel {
	return &BackgroundModel{cfg: cfg}
}

// Calibrated reports whether calibration has completed.
func (bm *BackgroundModel) Calibrated() bool {
	return bm.calibrated
}

// FeedCalibration consumes one frame during the calibration window. A
// non-finite cell causes the frame to be discarded without advancing the
// counter, per spec §7 FrameInvalid policy.
func (bm *BackgroundModel) FeedCalibration(frame Frame) (CalibrationStatus, error) {
	if bm.calibrated {
		return CalibrationReady, nil
	}
	if err := validateFrame(frame); err != nil {
		return CalibrationMore, err
	}

	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			bm.sum[r][c] += frame[r][c]
		}
	}
	bm.count++

	if bm.count < bm.cfg.CalibrationFrames {
		return CalibrationMore, nil
	}

	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			bm.bg[r][c] = bm.sum[r][c] / float64(bm.count)
		}
	}
	bm.calibrated = true
	return CalibrationReady, nil
}

// Current returns the current baseline. Before calibration completes this
// is the zero matrix; callers must check Calibrated first.
func (bm *BackgroundModel) Current() Background {
	return bm.bg
}

// UpdateAdaptive applies the EWMA update bg <- (1-a)*bg + a*frame to every
// cell that was classified as non-foreground in the current frame. Cells
// under a person are left untouched so a lingering body is never baked
// into the baseline.
func (bm *BackgroundModel) UpdateAdaptive(frame Frame, mask Mask) {
	if !bm.calibrated {
		return
	}
	alpha := bm.cfg.AdaptiveAlpha
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if mask[r][c] {
				continue
			}
			bm.bg[r][c] = (1-alpha)*bm.bg[r][c] + alpha*frame[r][c]
		}
	}
}

// Seed installs bg as the baseline and marks calibration complete, skipping
// the calibration window entirely. Used on startup to resume from a
// persisted background file (spec §6); staleness policy is the caller's
// responsibility (internal/config's TuningFile.MaxBackgroundAge).
func (bm *BackgroundModel) Seed(bg Background) {
	bm.bg = bg
	bm.calibrated = true
	bm.count = 0
	bm.sum = Background{}
}

// Recalibrate resets calibration state so the next FeedCalibration calls
// start a fresh learning window. Wires the host's "recalibrate" control
// signal (SPEC_FULL.md §9.4).
func (bm *BackgroundModel) Recalibrate() {
	bm.calibrated = false
	bm.count = 0
	bm.sum = Background{}
}

func validateFrame(frame Frame) error {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			v := frame[r][c]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &FrameInvalidError{Reason: "non-finite cell"}
			}
		}
	}
	return nil
}
