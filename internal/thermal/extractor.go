package thermal

// BodyExtractor turns a foreground mask into a list of Detections,
// splitting blobs that look like two people sharing cells.
type BodyExtractor struct {
	cfg Config
}

// NewBodyExtractor constructs a BodyExtractor from cfg.
func NewBodyExtractor(cfg Config) *BodyExtractor {
	return &BodyExtractor{cfg: cfg}
}

// Extract runs the four-step body extraction pipeline of SPEC_FULL.md §4.3
// over mask/delta and returns the surviving Detections. Detections are
// guaranteed pairwise cell-disjoint.
func (be *BodyExtractor) Extract(mask Mask, delta Delta) []Detection {
	comps := connectedComponents(mask)

	var sized []component
	for _, comp := range comps {
		n := len(comp)
		if n < be.cfg.MinBodyCells || n > be.cfg.MaxBodyCells {
			continue
		}
		sized = append(sized, comp)
	}

	var final []component
	for _, comp := range sized {
		final = append(final, be.maybeSplit(comp, delta)...)
	}

	detections := make([]Detection, 0, len(final))
	for _, comp := range final {
		detections = append(detections, buildDetection(comp, delta))
	}
	return detections
}

// maybeSplit applies step 3 of SPEC_FULL.md §4.3: split components larger
// than SingleBodyCells or whose Delta histogram is bimodal, undoing the
// split if either child would fall below MinBodyCells.
func (be *BodyExtractor) maybeSplit(comp component, delta Delta) []component {
	needsSplit := len(comp) > be.cfg.SingleBodyCells || isBimodal(comp, delta, be.cfg.MinPeakSeparation)
	if !needsSplit {
		return []component{comp}
	}

	children := splitComponent(comp, delta, be.cfg.MinPeakSeparation)
	if children == nil {
		return []component{comp}
	}
	for _, child := range children {
		if len(child) < be.cfg.MinBodyCells {
			return []component{comp}
		}
	}
	return children
}

// buildDetection constructs a Detection from one final component.
func buildDetection(comp component, delta Delta) Detection {
	d := Detection{
		MinRow: GridSize, MinCol: GridSize,
		MaxRow: -1, MaxCol: -1,
		Cells: make([]CellPos, len(comp)),
	}
	copy(d.Cells, comp)

	var weightedRow, weightedCol, weightSum float64
	var geomRow, geomCol float64
	var tempSum, peak float64

	for i, p := range comp {
		if p.Row < d.MinRow {
			d.MinRow = p.Row
		}
		if p.Row > d.MaxRow {
			d.MaxRow = p.Row
		}
		if p.Col < d.MinCol {
			d.MinCol = p.Col
		}
		if p.Col > d.MaxCol {
			d.MaxCol = p.Col
		}

		t := delta[p.Row][p.Col]
		tempSum += t
		if i == 0 || t > peak {
			peak = t
		}

		geomRow += float64(p.Row)
		geomCol += float64(p.Col)

		if t > 0 {
			weightedRow += t * float64(p.Row)
			weightedCol += t * float64(p.Col)
			weightSum += t
		}
	}

	n := float64(len(comp))
	d.MeanTemp = tempSum / n
	d.PeakTemp = peak

	if weightSum > 0 {
		d.CentroidRow = weightedRow / weightSum
		d.CentroidCol = weightedCol / weightSum
	} else {
		d.CentroidRow = geomRow / n
		d.CentroidCol = geomCol / n
	}

	return d
}
