package thermal

import "fmt"

// AxisPolarity fixes which direction along the traversal axis counts as an
// entrance.
type AxisPolarity int

const (
	// PolarityPlusAxis means an increasing traversal-axis index (the column
	// by default, the row when TraversalAxisIsRow is set) is an entrance.
	PolarityPlusAxis AxisPolarity = iota
	// PolarityMinusAxis means a decreasing traversal-axis index is an
	// entrance.
	PolarityMinusAxis
)

// Config holds every tunable of the core pipeline. All fields have
// sensible defaults via DefaultConfig; Validate rejects out-of-range
// combinations at construction time.
type Config struct {
	// Background model
	CalibrationFrames int     // calibration window length, frames
	AdaptiveAlpha     float64 // background EWMA weight, (0, 1]

	// Foreground discriminator
	ActivityThresholdC        float64 // Gate A scalar, °C
	OtsuMaxForegroundFraction float64 // Gate B saturation cap, (0, 1]
	OtsuMinBetweenClassVar    float64 // Gate B noise floor
	TrackingTempThresholdC    float64 // Gate C scalar, °C

	// Body extractor
	MinBodyCells       int // Gate C / size filter lower bound
	MaxBodyCells       int // size filter upper bound
	SingleBodyCells    int // split trigger
	MinPeakSeparation  int // Chebyshev distance, cells

	// Tracker
	SpatialDistanceThreshold     float64 // cells
	TemperatureDistanceThreshold float64 // °C
	WeightSpatial                float64 // w_s
	WeightTemperature            float64 // w_t
	MinConfirmSamples            int
	MaxMisses                    int
	MinCrossingSpan              float64 // cells, along traversal axis

	// Axis configuration
	TraversalAxisIsRow bool // true: traversal axis is the row index; false: column index
	EntrancePolarity   AxisPolarity
}

// DefaultConfig returns the configuration defaults named in SPEC_FULL.md §6.
func DefaultConfig() Config {
	return Config{
		CalibrationFrames: 250,
		AdaptiveAlpha:     0.01,

		ActivityThresholdC:        0.25,
		OtsuMaxForegroundFraction: 0.60,
		OtsuMinBetweenClassVar:    1e-6,
		TrackingTempThresholdC:    0.25,

		MinBodyCells:      2,
		MaxBodyCells:      20,
		SingleBodyCells:   8,
		MinPeakSeparation: 2,

		SpatialDistanceThreshold:     3.0,
		TemperatureDistanceThreshold: 1.5,
		WeightSpatial:                1.0,
		WeightTemperature:            0.5,
		MinConfirmSamples:            3,
		MaxMisses:                    3,
		MinCrossingSpan:              4.0,

		TraversalAxisIsRow: false,
		EntrancePolarity:   PolarityPlusAxis,
	}
}

// Validate rejects configurations that cannot be interpreted, returning a
// *ConfigInvalidError wrapping the first problem found.
func (c Config) Validate() error {
	switch {
	case c.CalibrationFrames <= 0:
		return &ConfigInvalidError{Reason: "calibration_frames must be positive"}
	case c.AdaptiveAlpha <= 0 || c.AdaptiveAlpha > 1:
		return &ConfigInvalidError{Reason: "adaptive_alpha must be in (0, 1]"}
	case c.ActivityThresholdC < 0:
		return &ConfigInvalidError{Reason: "activity_threshold_c must be non-negative"}
	case c.OtsuMaxForegroundFraction <= 0 || c.OtsuMaxForegroundFraction > 1:
		return &ConfigInvalidError{Reason: "otsu_max_foreground_fraction must be in (0, 1]"}
	case c.TrackingTempThresholdC < 0:
		return &ConfigInvalidError{Reason: "tracking_temp_threshold_c must be non-negative"}
	case c.MinBodyCells <= 0:
		return &ConfigInvalidError{Reason: "min_body_cells must be positive"}
	case c.MaxBodyCells < c.MinBodyCells:
		return &ConfigInvalidError{Reason: "max_body_cells must be >= min_body_cells"}
	case c.MaxBodyCells > GridSize*GridSize:
		return &ConfigInvalidError{Reason: fmt.Sprintf("max_body_cells cannot exceed %d cells", GridSize*GridSize)}
	case c.SingleBodyCells < c.MinBodyCells || c.SingleBodyCells > c.MaxBodyCells:
		return &ConfigInvalidError{Reason: "single_body_cells must be between min_body_cells and max_body_cells"}
	case c.MinPeakSeparation <= 0:
		return &ConfigInvalidError{Reason: "min_peak_separation must be positive"}
	case c.SpatialDistanceThreshold <= 0:
		return &ConfigInvalidError{Reason: "spatial_distance_threshold must be positive"}
	case c.TemperatureDistanceThreshold <= 0:
		return &ConfigInvalidError{Reason: "temperature_distance_threshold must be positive"}
	case c.WeightSpatial < 0 || c.WeightTemperature < 0:
		return &ConfigInvalidError{Reason: "w_s and w_t must be non-negative"}
	case c.MinConfirmSamples <= 0:
		return &ConfigInvalidError{Reason: "min_confirm_samples must be positive"}
	case c.MaxMisses < 0:
		return &ConfigInvalidError{Reason: "max_misses must be non-negative"}
	case c.MinCrossingSpan <= 0 || c.MinCrossingSpan > float64(GridSize):
		return &ConfigInvalidError{Reason: "min_crossing_span must be in (0, grid size]"}
	}
	return nil
}
