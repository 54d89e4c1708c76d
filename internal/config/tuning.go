package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

// TuningFile is the on-disk JSON shape for thermal.Config overrides.
// Every field is optional; anything omitted keeps thermal.DefaultConfig's
// value. It is read once at startup; the HTTP control endpoints take no
// tuning payload.
type TuningFile struct {
	CalibrationFrames *int     `json:"calibration_frames,omitempty"`
	AdaptiveAlpha     *float64 `json:"adaptive_alpha,omitempty"`

	ActivityThresholdC        *float64 `json:"activity_threshold_c,omitempty"`
	OtsuMaxForegroundFraction *float64 `json:"otsu_max_foreground_fraction,omitempty"`
	OtsuMinBetweenClassVar    *float64 `json:"otsu_min_between_class_var,omitempty"`
	TrackingTempThresholdC    *float64 `json:"tracking_temp_threshold_c,omitempty"`

	MinBodyCells      *int `json:"min_body_cells,omitempty"`
	MaxBodyCells      *int `json:"max_body_cells,omitempty"`
	SingleBodyCells   *int `json:"single_body_cells,omitempty"`
	MinPeakSeparation *int `json:"min_peak_separation,omitempty"`

	SpatialDistanceThreshold     *float64 `json:"spatial_distance_threshold,omitempty"`
	TemperatureDistanceThreshold *float64 `json:"temperature_distance_threshold,omitempty"`
	WeightSpatial                *float64 `json:"weight_spatial,omitempty"`
	WeightTemperature            *float64 `json:"weight_temperature,omitempty"`
	MinConfirmSamples            *int     `json:"min_confirm_samples,omitempty"`
	MaxMisses                    *int     `json:"max_misses,omitempty"`
	MinCrossingSpan              *float64 `json:"min_crossing_span,omitempty"`

	TraversalAxisIsRow *bool   `json:"traversal_axis_is_row,omitempty"`
	EntrancePolarity   *string `json:"entrance_polarity,omitempty"` // "plus" or "minus"

	// MaxBackgroundAge bounds how stale a persisted background file may be
	// before the pipeline discards it and recalibrates from scratch
	// instead. Given as a duration string, e.g. "6h".
	MaxBackgroundAge *string `json:"max_background_age,omitempty"`
}

const maxTuningFileSize = 1 << 20 // 1MB

// Load reads a TuningFile from path, applies it over thermal.DefaultConfig,
// and validates the result.
func Load(path string) (thermal.Config, time.Duration, error) {
	cfg := thermal.DefaultConfig()
	maxAge := 6 * time.Hour

	if path == "" {
		return cfg, maxAge, nil
	}

	clean := filepath.Clean(path)
	if ext := filepath.Ext(clean); ext != ".json" {
		return cfg, maxAge, fmt.Errorf("config: tuning file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(clean)
	if err != nil {
		return cfg, maxAge, fmt.Errorf("config: stat tuning file: %w", err)
	}
	if info.Size() > maxTuningFileSize {
		return cfg, maxAge, fmt.Errorf("config: tuning file too large: %d bytes", info.Size())
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return cfg, maxAge, fmt.Errorf("config: read tuning file: %w", err)
	}

	var tf TuningFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return cfg, maxAge, fmt.Errorf("config: parse tuning file: %w", err)
	}

	cfg = tf.apply(cfg)
	if tf.MaxBackgroundAge != nil {
		d, err := time.ParseDuration(*tf.MaxBackgroundAge)
		if err != nil {
			return cfg, maxAge, fmt.Errorf("config: invalid max_background_age %q: %w", *tf.MaxBackgroundAge, err)
		}
		maxAge = d
	}

	if err := cfg.Validate(); err != nil {
		return cfg, maxAge, fmt.Errorf("config: %w", err)
	}
	return cfg, maxAge, nil
}

// apply overlays the non-nil fields of tf onto base.
func (tf TuningFile) apply(base thermal.Config) thermal.Config {
	if tf.CalibrationFrames != nil {
		base.CalibrationFrames = *tf.CalibrationFrames
	}
	if tf.AdaptiveAlpha != nil {
		base.AdaptiveAlpha = *tf.AdaptiveAlpha
	}
	if tf.ActivityThresholdC != nil {
		base.ActivityThresholdC = *tf.ActivityThresholdC
	}
	if tf.OtsuMaxForegroundFraction != nil {
		base.OtsuMaxForegroundFraction = *tf.OtsuMaxForegroundFraction
	}
	if tf.OtsuMinBetweenClassVar != nil {
		base.OtsuMinBetweenClassVar = *tf.OtsuMinBetweenClassVar
	}
	if tf.TrackingTempThresholdC != nil {
		base.TrackingTempThresholdC = *tf.TrackingTempThresholdC
	}
	if tf.MinBodyCells != nil {
		base.MinBodyCells = *tf.MinBodyCells
	}
	if tf.MaxBodyCells != nil {
		base.MaxBodyCells = *tf.MaxBodyCells
	}
	if tf.SingleBodyCells != nil {
		base.SingleBodyCells = *tf.SingleBodyCells
	}
	if tf.MinPeakSeparation != nil {
		base.MinPeakSeparation = *tf.MinPeakSeparation
	}
	if tf.SpatialDistanceThreshold != nil {
		base.SpatialDistanceThreshold = *tf.SpatialDistanceThreshold
	}
	if tf.TemperatureDistanceThreshold != nil {
		base.TemperatureDistanceThreshold = *tf.TemperatureDistanceThreshold
	}
	if tf.WeightSpatial != nil {
		base.WeightSpatial = *tf.WeightSpatial
	}
	if tf.WeightTemperature != nil {
		base.WeightTemperature = *tf.WeightTemperature
	}
	if tf.MinConfirmSamples != nil {
		base.MinConfirmSamples = *tf.MinConfirmSamples
	}
	if tf.MaxMisses != nil {
		base.MaxMisses = *tf.MaxMisses
	}
	if tf.MinCrossingSpan != nil {
		base.MinCrossingSpan = *tf.MinCrossingSpan
	}
	if tf.TraversalAxisIsRow != nil {
		base.TraversalAxisIsRow = *tf.TraversalAxisIsRow
	}
	if tf.EntrancePolarity != nil {
		if *tf.EntrancePolarity == "minus" {
			base.EntrancePolarity = thermal.PolarityMinusAxis
		} else {
			base.EntrancePolarity = thermal.PolarityPlusAxis
		}
	}
	return base
}
