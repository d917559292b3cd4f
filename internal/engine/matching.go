package engine

import (
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// idealGoodDiagonalSet picks a maximum set of pairwise non-crossing
// diagonals out of the intersecting pairs. The pairs form a bipartite graph
// of vertical versus horizontal diagonals; a maximum independent set is the
// complement of a minimum vertex cover, which for unit capacities equals a
// maximum matching. The cover is read off the matching with the König
// construction: starting from unmatched verticals, alternate unmatched and
// matched edges; reachable verticals and unreachable horizontals are kept,
// the same sets a residual max-flow graph colors source-side.
//
// The endpoints of every kept diagonal are marked handled.
func idealGoodDiagonalSet(pairs []diagonalPair, handled map[geom.Point]bool) []geom.Segment {
	log := logging.Logger()
	if len(pairs) == 0 {
		log.Debug("no intersecting good diagonals")
		return nil
	}

	verticalIDs := make(map[geom.Segment]int)
	horizontalIDs := make(map[geom.Segment]int)
	var verticals, horizontals []geom.Segment
	for _, pair := range pairs {
		if _, ok := verticalIDs[pair.vertical]; !ok {
			verticalIDs[pair.vertical] = len(verticals)
			verticals = append(verticals, pair.vertical)
		}
		if _, ok := horizontalIDs[pair.horizontal]; !ok {
			horizontalIDs[pair.horizontal] = len(horizontals)
			horizontals = append(horizontals, pair.horizontal)
		}
	}

	crossings := make([][]int, len(verticals))
	for _, pair := range pairs {
		v := verticalIDs[pair.vertical]
		crossings[v] = append(crossings[v], horizontalIDs[pair.horizontal])
	}

	matchOfVertical := make([]int, len(verticals))
	matchOfHorizontal := make([]int, len(horizontals))
	for i := range matchOfVertical {
		matchOfVertical[i] = -1
	}
	for i := range matchOfHorizontal {
		matchOfHorizontal[i] = -1
	}

	var tryAugment func(v int, visited []bool) bool
	tryAugment = func(v int, visited []bool) bool {
		for _, h := range crossings[v] {
			if visited[h] {
				continue
			}
			visited[h] = true
			if matchOfHorizontal[h] == -1 || tryAugment(matchOfHorizontal[h], visited) {
				matchOfVertical[v] = h
				matchOfHorizontal[h] = v
				return true
			}
		}
		return false
	}

	matched := 0
	for v := range verticals {
		visited := make([]bool, len(horizontals))
		if tryAugment(v, visited) {
			matched++
		}
	}
	log.Debug("matched intersecting diagonals", "matching", matched,
		"verticals", len(verticals), "horizontals", len(horizontals))

	// Alternating reachability from unmatched verticals.
	reachableV := make([]bool, len(verticals))
	reachableH := make([]bool, len(horizontals))
	var queue []int
	for v := range verticals {
		if matchOfVertical[v] == -1 {
			reachableV[v] = true
			queue = append(queue, v)
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, h := range crossings[v] {
			if reachableH[h] {
				continue
			}
			reachableH[h] = true
			if w := matchOfHorizontal[h]; w != -1 && !reachableV[w] {
				reachableV[w] = true
				queue = append(queue, w)
			}
		}
	}

	var kept []geom.Segment
	for v, segment := range verticals {
		if reachableV[v] {
			kept = append(kept, segment)
			handled[segment.Source] = true
			handled[segment.Target] = true
		}
	}
	for h, segment := range horizontals {
		if !reachableH[h] {
			kept = append(kept, segment)
			handled[segment.Source] = true
			handled[segment.Target] = true
		}
	}

	log.Debug("picked ideal diagonal set", "kept", len(kept))
	return kept
}
