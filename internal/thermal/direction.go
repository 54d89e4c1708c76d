package thermal

// classifyDirection implements SPEC_FULL.md §4.4's direction classifier. It
// returns a Direction and true if the track's trajectory qualifies as a
// crossing; otherwise it returns false and the caller must not emit an
// event (noise, loitering, or a partial crossing).
func classifyDirection(t *Track, cfg Config) (Direction, bool) {
	if !t.EverConfirmed || len(t.Trajectory) < cfg.MinConfirmSamples {
		return "", false
	}

	first := t.Trajectory[0]
	last := t.Trajectory[len(t.Trajectory)-1]

	firstAxis := axisValue(first.Row, first.Col, cfg)
	lastAxis := axisValue(last.Row, last.Col, cfg)

	span := lastAxis - firstAxis
	absSpan := span
	if absSpan < 0 {
		absSpan = -absSpan
	}
	if absSpan < cfg.MinCrossingSpan {
		return "", false
	}

	mid := float64(GridSize-1) / 2
	firstHalf := firstAxis < mid
	lastHalf := lastAxis < mid
	if firstHalf == lastHalf {
		// Never actually crossed the midline.
		return "", false
	}

	positiveMove := span > 0
	if cfg.EntrancePolarity == PolarityMinusAxis {
		positiveMove = !positiveMove
	}
	if positiveMove {
		return Entrance, true
	}
	return Exit, true
}

// axisValue projects a centroid onto the configured traversal axis.
func axisValue(row, col float64, cfg Config) float64 {
	if cfg.TraversalAxisIsRow {
		return row
	}
	return col
}
