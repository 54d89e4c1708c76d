package thermal

// component is a set of cells found to be 8-connected in the mask.
type component []CellPos

// neighborOffsets are the 8-connectivity offsets (Chebyshev distance 1).
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// connectedComponents labels the mask's true cells into 8-connected
// components via breadth-first flood fill.
func connectedComponents(mask Mask) []component {
	var visited [GridSize][GridSize]bool
	var components []component

	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if !mask[r][c] || visited[r][c] {
				continue
			}

			queue := []CellPos{{Row: r, Col: c}}
			visited[r][c] = true
			var comp component

			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				comp = append(comp, cur)

				for _, off := range neighborOffsets {
					nr, nc := cur.Row+off[0], cur.Col+off[1]
					if nr < 0 || nr >= GridSize || nc < 0 || nc >= GridSize {
						continue
					}
					if !mask[nr][nc] || visited[nr][nc] {
						continue
					}
					visited[nr][nc] = true
					queue = append(queue, CellPos{Row: nr, Col: nc})
				}
			}
			components = append(components, comp)
		}
	}
	return components
}

// chebyshev returns the Chebyshev distance between two cells.
func chebyshev(a, b CellPos) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}

// localPeaks returns the cells of comp whose Delta is >= every in-component
// 8-neighbor's Delta (a cell with no in-component neighbors is trivially a
// peak). Used to detect bimodal blobs ahead of the split step.
func localPeaks(comp component, delta Delta) []CellPos {
	member := make(map[CellPos]bool, len(comp))
	for _, p := range comp {
		member[p] = true
	}

	var peaks []CellPos
	for _, p := range comp {
		isPeak := true
		for _, off := range neighborOffsets {
			n := CellPos{Row: p.Row + off[0], Col: p.Col + off[1]}
			if !member[n] {
				continue
			}
			if delta[n.Row][n.Col] > delta[p.Row][p.Col] {
				isPeak = false
				break
			}
		}
		if isPeak {
			peaks = append(peaks, p)
		}
	}
	return peaks
}

// splitComponent divides comp into two children around its two hottest
// cells that are at least minSep cells apart (Chebyshev). Every cell is
// assigned to whichever peak it is nearer to; ties favor the peak with the
// higher Delta value. Returns nil if no two sufficiently-separated peak
// candidates exist.
func splitComponent(comp component, delta Delta, minSep int) []component {
	// Candidate peaks: local maxima, falling back to every cell if the
	// blob has no interior structure (e.g. a thin line).
	candidates := localPeaks(comp, delta)
	if len(candidates) < 2 {
		candidates = comp
	}

	// Find the pair of candidates, >= minSep apart, maximizing combined
	// heat (so we split around the two real hot spots, not two cool
	// fringe cells that happen to be far apart).
	var peakA, peakB CellPos
	found := false
	bestHeat := -1.0
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			if chebyshev(a, b) < minSep {
				continue
			}
			heat := delta[a.Row][a.Col] + delta[b.Row][b.Col]
			if heat > bestHeat {
				bestHeat = heat
				peakA, peakB = a, b
				found = true
			}
		}
	}
	if !found {
		return nil
	}

	var childA, childB component
	for _, p := range comp {
		da := chebyshev(p, peakA)
		db := chebyshev(p, peakB)
		switch {
		case da < db:
			childA = append(childA, p)
		case db < da:
			childB = append(childB, p)
		default:
			// Tie: favor the peak with the higher Delta.
			if delta[peakA.Row][peakA.Col] >= delta[peakB.Row][peakB.Col] {
				childA = append(childA, p)
			} else {
				childB = append(childB, p)
			}
		}
	}
	return []component{childA, childB}
}

// isBimodal reports whether comp's Delta histogram shows two distinct
// local maxima separated by at least minSep cells.
func isBimodal(comp component, delta Delta, minSep int) bool {
	peaks := localPeaks(comp, delta)
	for i := 0; i < len(peaks); i++ {
		for j := i + 1; j < len(peaks); j++ {
			if chebyshev(peaks[i], peaks[j]) >= minSep {
				return true
			}
		}
	}
	return false
}
