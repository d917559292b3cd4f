package engine

import (
	"fmt"
	"sort"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// Partition computes a minimum-cardinality partition of the polygon into
// interior-disjoint rectangles: good diagonals between aligned concave
// vertices are selected via a maximum independent set of the
// vertical/horizontal intersection graph, remaining concave vertices get one
// arbitrary cut each, and the rectangles are read off the resulting planar
// arrangement.
type Partition struct{}

// NewPartition returns the partition algorithm.
func NewPartition() *Partition { return &Partition{} }

// TimedOut always reports false; the partition algorithm runs to completion.
func (p *Partition) TimedOut() bool { return false }

// CoverFor computes the partition.
func (p *Partition) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	log := logging.Logger()
	log.Info("running partition algorithm")

	concave := cover.FindConcaveVertices(polygon)
	handled := make(map[geom.Point]bool)

	goodDiagonals := findGoodDiagonals(polygon, concave)
	intersecting := findIntersectingGoodDiagonals(goodDiagonals)
	cuts := idealGoodDiagonalSet(intersecting, handled)

	intersectingSet := make(map[geom.Segment]bool)
	for _, pair := range intersecting {
		intersectingSet[pair.vertical] = true
		intersectingSet[pair.horizontal] = true
	}

	// Good diagonals that cross nothing are always part of the cut set.
	for _, diagonal := range goodDiagonals {
		if !intersectingSet[diagonal] {
			cuts = append(cuts, diagonal)
			handled[diagonal.Source] = true
			handled[diagonal.Target] = true
		}
	}

	// Every concave vertex not touched by a chosen diagonal still needs a
	// cut; any open direction will do. Sorted order keeps the result
	// deterministic.
	for _, entry := range cover.SortedConcaveVertices(concave) {
		if handled[entry.Point] {
			continue
		}
		cut, err := pickCut(polygon, entry, cuts, handled)
		if err != nil {
			return nil, err
		}
		cuts = append(cuts, cut)
	}
	log.Debug("picked cuts", "count", len(cuts))

	arr, err := geom.NewArrangement(append(polygon.AllEdges(), cuts...))
	if err != nil {
		return nil, err
	}
	partition := cover.ParseRectangles(arr, polygon)

	log.Info("partition algorithm finished", "rectangles", len(partition))
	return partition, nil
}

// findGoodDiagonals scans concave vertices aligned on a shared coordinate
// and keeps the chords that connect compatible open directions without
// crossing any edge interior.
func findGoodDiagonals(polygon geom.PolygonWithHoles, concave map[geom.Point]cover.OpenDirections) []geom.Segment {
	xAligned := make(map[int64][]int64) // y -> xs of horizontally aligned vertices
	yAligned := make(map[int64][]int64) // x -> ys of vertically aligned vertices
	for vertex := range concave {
		xAligned[vertex.Y] = append(xAligned[vertex.Y], vertex.X)
		yAligned[vertex.X] = append(yAligned[vertex.X], vertex.Y)
	}

	var diagonals []geom.Segment
	diagonals = appendAlignedDiagonals(diagonals, polygon, geom.Up, yAligned, concave)
	diagonals = appendAlignedDiagonals(diagonals, polygon, geom.Right, xAligned, concave)
	return diagonals
}

func appendAlignedDiagonals(diagonals []geom.Segment, polygon geom.PolygonWithHoles,
	positive geom.Direction, aligned map[int64][]int64, concave map[geom.Point]cover.OpenDirections) []geom.Segment {

	negative := positive.Rot180()
	horizontal := positive.DY == 0

	fixedCoordinates := make([]int64, 0, len(aligned))
	for fixed := range aligned {
		fixedCoordinates = append(fixedCoordinates, fixed)
	}
	sort.Slice(fixedCoordinates, func(i, j int) bool { return fixedCoordinates[i] < fixedCoordinates[j] })

	for _, fixed := range fixedCoordinates {
		variable := aligned[fixed]
		if len(variable) <= 1 {
			continue
		}
		sort.Slice(variable, func(i, j int) bool { return variable[i] < variable[j] })

		at := func(v int64) geom.Point {
			if horizontal {
				return geom.Point{X: v, Y: fixed}
			}
			return geom.Point{X: fixed, Y: v}
		}

		i := 0
		for i < len(variable)-1 {
			point := at(variable[i])
			if !concave[point].Contains(positive) {
				// Not open toward the next aligned vertex, so no diagonal can
				// start here; the next vertex may still pair with its own
				// successor.
				i++
				continue
			}
			other := at(variable[i+1])
			if !concave[other].Contains(negative) {
				i++
				continue
			}
			candidate := geom.Segment{Source: point, Target: other}
			if isValidGoodDiagonal(candidate, polygon) {
				diagonals = append(diagonals, candidate)
			}
			// The successor is negatively open and cannot start another
			// diagonal along this axis, so it is skipped.
			i++
			if i != len(variable)-1 {
				i++
			}
		}
	}
	return diagonals
}

// isValidGoodDiagonal accepts a chord that intersects no polygon edge except
// at its endpoints.
func isValidGoodDiagonal(segment geom.Segment, polygon geom.PolygonWithHoles) bool {
	for _, edge := range polygon.AllEdges() {
		if geom.IntersectsInterior(edge, segment) {
			return false
		}
	}
	return true
}

type diagonalPair struct {
	vertical   geom.Segment
	horizontal geom.Segment
}

// findIntersectingGoodDiagonals pairs every vertical diagonal with every
// horizontal diagonal it touches, endpoints included.
func findIntersectingGoodDiagonals(diagonals []geom.Segment) []diagonalPair {
	var verticals, horizontals []geom.Segment
	for _, d := range diagonals {
		if d.IsHorizontal() {
			horizontals = append(horizontals, d)
		} else {
			verticals = append(verticals, d)
		}
	}

	var pairs []diagonalPair
	for _, v := range verticals {
		for _, h := range horizontals {
			if geom.Intersects(v, h) {
				pairs = append(pairs, diagonalPair{vertical: v, horizontal: h})
			}
		}
	}
	return pairs
}

// pickCut shoots a cut from a leftover concave vertex along its first open
// direction to the closest single-point intersection with any polygon edge
// or previously chosen cut.
func pickCut(polygon geom.PolygonWithHoles, entry cover.ConcaveVertex,
	previousCuts []geom.Segment, handled map[geom.Point]bool) (geom.Segment, error) {

	handled[entry.Point] = true
	dir := entry.Open[0]

	var candidates []geom.Point
	for _, edge := range polygon.AllEdges() {
		if p, ok := cover.RayPointIntersection(entry.Point, dir, edge); ok {
			candidates = append(candidates, p)
		}
	}
	for _, cut := range previousCuts {
		if p, ok := cover.RayPointIntersection(entry.Point, dir, cut); ok {
			candidates = append(candidates, p)
		}
	}

	target, ok := cover.PickClosest(entry.Point, dir, candidates)
	if !ok {
		return geom.Segment{}, fmt.Errorf("%w: cut ray from (%d, %d) leaves the polygon",
			geom.ErrGeometryFailure, entry.Point.X, entry.Point.Y)
	}
	return geom.Segment{Source: entry.Point, Target: target}, nil
}
