package thermal

// ForegroundResult is the output of the Discriminator's three-gate
// cascade: the refined mask plus the Delta it was computed from, which the
// Body Extractor reuses for weighted centroids.
type ForegroundResult struct {
	Mask    Mask
	Delta   Delta
	Present bool // false if any gate declared the frame empty
}

// Discriminator implements the three-test cascade of SPEC_FULL.md §4.2:
// Gate A (distribution), Gate B (Otsu split), Gate C (absolute excess).
// Failing any gate yields the empty result, which the caller must treat as
// "no foreground" so the Background Model adapts into every cell.
type Discriminator struct {
	cfg Config
}

// NewDiscriminator constructs a Discriminator from cfg.
func NewDiscriminator(cfg Config) *Discriminator {
	return &Discriminator{cfg: cfg}
}

// Classify runs the cascade over one frame against the current background.
func (d *Discriminator) Classify(frame Frame, bg Background) ForegroundResult {
	var delta Delta
	maxDelta := 0.0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			v := frame[r][c] - bg[r][c]
			delta[r][c] = v
			if v > maxDelta {
				maxDelta = v
			}
		}
	}

	empty := ForegroundResult{Delta: delta, Present: false}

	// Gate A — distribution test.
	if maxDelta < d.cfg.ActivityThresholdC {
		return empty
	}

	// Gate B — Otsu-style split.
	split := otsuSplit(delta)
	if split.BetweenClassVar < d.cfg.OtsuMinBetweenClassVar {
		return empty
	}
	if split.WarmFraction > d.cfg.OtsuMaxForegroundFraction {
		return empty
	}

	var tentative Mask
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if delta[r][c] >= split.Threshold {
				tentative[r][c] = true
			}
		}
	}

	// Gate C — absolute excess refinement.
	var refined Mask
	refinedCount := 0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if tentative[r][c] && delta[r][c] >= d.cfg.TrackingTempThresholdC {
				refined[r][c] = true
				refinedCount++
			}
		}
	}
	if refinedCount < d.cfg.MinBodyCells {
		return empty
	}

	return ForegroundResult{Mask: refined, Delta: delta, Present: true}
}
