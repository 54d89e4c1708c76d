package thermal

import "testing"

func TestBodyExtractor_ExtractsSingleBlob(t *testing.T) {
	cfg := DefaultConfig()
	be := NewBodyExtractor(cfg)

	var mask Mask
	var delta Delta
	for _, p := range []CellPos{{3, 3}, {3, 4}, {4, 3}, {4, 4}} {
		mask[p.Row][p.Col] = true
		delta[p.Row][p.Col] = 2.0
	}

	dets := be.Extract(mask, delta)
	if len(dets) != 1 {
		t.Fatalf("expected 1 detection, got %d", len(dets))
	}
	d := dets[0]
	if d.CellCount() != 4 {
		t.Fatalf("expected 4 cells, got %d", d.CellCount())
	}
	if d.CentroidRow != 3.5 || d.CentroidCol != 3.5 {
		t.Fatalf("expected centroid (3.5,3.5), got (%v,%v)", d.CentroidRow, d.CentroidCol)
	}
}

func TestBodyExtractor_DropsUndersizedComponent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBodyCells = 3
	be := NewBodyExtractor(cfg)

	var mask Mask
	var delta Delta
	mask[0][0] = true
	delta[0][0] = 2.0

	dets := be.Extract(mask, delta)
	if len(dets) != 0 {
		t.Fatalf("expected the undersized component to be dropped, got %d detections", len(dets))
	}
}

func TestBodyExtractor_SplitsTwoAbreast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SingleBodyCells = 4
	cfg.MinPeakSeparation = 3
	cfg.MinBodyCells = 1
	be := NewBodyExtractor(cfg)

	var mask Mask
	var delta Delta
	// One connected blob, two hot peaks 4 apart, joined by a cooler bridge.
	cells := []struct {
		p CellPos
		t float64
	}{
		{CellPos{0, 0}, 5.0},
		{CellPos{0, 1}, 1.0},
		{CellPos{0, 2}, 1.0},
		{CellPos{0, 3}, 1.0},
		{CellPos{0, 4}, 5.0},
	}
	for _, c := range cells {
		mask[c.p.Row][c.p.Col] = true
		delta[c.p.Row][c.p.Col] = c.t
	}

	dets := be.Extract(mask, delta)
	if len(dets) != 2 {
		t.Fatalf("expected the blob to split into 2 detections, got %d", len(dets))
	}
	total := dets[0].CellCount() + dets[1].CellCount()
	if total != 5 {
		t.Fatalf("expected children to partition all 5 cells, got %d", total)
	}
}

func TestBodyExtractor_UndoesSplitWhenChildTooSmall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SingleBodyCells = 2
	cfg.MinPeakSeparation = 2
	cfg.MinBodyCells = 2
	be := NewBodyExtractor(cfg)

	var mask Mask
	var delta Delta
	// 3-cell line; splitting around two separated peaks would leave one
	// child with a single cell, below MinBodyCells, so it must undo.
	cells := []struct {
		p CellPos
		t float64
	}{
		{CellPos{0, 0}, 5.0},
		{CellPos{0, 1}, 1.0},
		{CellPos{0, 2}, 5.0},
	}
	for _, c := range cells {
		mask[c.p.Row][c.p.Col] = true
		delta[c.p.Row][c.p.Col] = c.t
	}

	dets := be.Extract(mask, delta)
	if len(dets) != 1 {
		t.Fatalf("expected split to be undone, got %d detections", len(dets))
	}
	if dets[0].CellCount() != 3 {
		t.Fatalf("expected the undone detection to keep all 3 cells, got %d", dets[0].CellCount())
	}
}

func TestBodyExtractor_GeometricCentroidFallbackWhenNoPositiveDelta(t *testing.T) {
	cfg := DefaultConfig()
	be := NewBodyExtractor(cfg)

	var mask Mask
	var delta Delta
	for _, p := range []CellPos{{2, 2}, {2, 3}} {
		mask[p.Row][p.Col] = true
		delta[p.Row][p.Col] = 0 // no positive weight anywhere
	}

	dets := be.Extract(mask, delta)
	if len(dets) != 1 {
		t.Fatalf("expected 1 detection, got %d", len(dets))
	}
	if dets[0].CentroidRow != 2.0 || dets[0].CentroidCol != 2.5 {
		t.Fatalf("expected geometric-centroid fallback (2,2.5), got (%v,%v)", dets[0].CentroidRow, dets[0].CentroidCol)
	}
}
