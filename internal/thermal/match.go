package thermal

import "math"

// candidatePair is a gated (track, detection) pairing with its combined
// assignment cost.
type candidatePair struct {
	trackIdx int
	detIdx   int
	cost     float64
}

// buildCandidates computes the gated cost matrix between predicted track
// positions and the current frame's detections, per SPEC_FULL.md §4.4
// step 2. Pairs whose spatial or temperature distance exceeds the
// configured thresholds are dropped entirely.
func buildCandidates(tracks []*Track, predicted []point, detections []Detection, cfg Config) []candidatePair {
	var pairs []candidatePair
	for ti, t := range tracks {
		pred := predicted[ti]
		for di, det := range detections {
			spatial := euclidean(pred.Row, pred.Col, det.CentroidRow, det.CentroidCol)
			if spatial > cfg.SpatialDistanceThreshold {
				continue
			}
			tempDiff := math.Abs(t.LastMeanTemp - det.MeanTemp)
			if tempDiff > cfg.TemperatureDistanceThreshold {
				continue
			}
			cost := cfg.WeightSpatial*spatial + cfg.WeightTemperature*tempDiff
			pairs = append(pairs, candidatePair{trackIdx: ti, detIdx: di, cost: cost})
		}
	}
	return pairs
}

// greedyAssign resolves candidates smallest-cost-first, ties broken by
// lower track id for determinism. Returns, per track index, the matched
// detection index (-1 if unmatched), and the set of matched detection
// indices.
func greedyAssign(tracks []*Track, pairs []candidatePair) (trackToDet []int, matchedDets map[int]bool) {
	trackToDet = make([]int, len(tracks))
	for i := range trackToDet {
		trackToDet[i] = -1
	}
	matchedDets = make(map[int]bool)

	sortCandidates(tracks, pairs)

	matchedTracks := make(map[int]bool)
	for _, p := range pairs {
		if matchedTracks[p.trackIdx] || matchedDets[p.detIdx] {
			continue
		}
		trackToDet[p.trackIdx] = p.detIdx
		matchedTracks[p.trackIdx] = true
		matchedDets[p.detIdx] = true
	}
	return trackToDet, matchedDets
}

// sortCandidates orders pairs by ascending cost, ties broken by ascending
// track id. Insertion sort is plenty at the handful of candidates this
// sensor ever produces per frame.
func sortCandidates(tracks []*Track, pairs []candidatePair) {
	for i := 1; i < len(pairs); i++ {
		j := i
		for j > 0 && less(tracks, pairs[j], pairs[j-1]) {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
			j--
		}
	}
}

func less(tracks []*Track, a, b candidatePair) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return tracks[a.trackIdx].ID < tracks[b.trackIdx].ID
}

type point struct {
	Row, Col float64
}

func euclidean(r1, c1, r2, c2 float64) float64 {
	dr := r1 - r2
	dc := c1 - c2
	return math.Sqrt(dr*dr + dc*dc)
}
