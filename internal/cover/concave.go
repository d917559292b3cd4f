package cover

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// OpenDirections are the two interior-facing axis directions of a concave
// vertex, along which cut rays are shot.
type OpenDirections [2]geom.Direction

// Contains reports whether d is one of the two open directions.
func (o OpenDirections) Contains(d geom.Direction) bool {
	return o[0] == d || o[1] == d
}

// ConcaveVertex pairs a concave vertex with its open directions.
type ConcaveVertex struct {
	Point geom.Point
	Open  OpenDirections
}

// FindConcaveVertices returns the concave (reflex) vertices of the region
// bounded by the polygon, mapped to their open directions. Hole boundaries
// contribute their own concave vertices; a vertex concave in both the outer
// boundary and a hole straddles the two and is removed, so the result is the
// symmetric difference of the per-ring sets.
func FindConcaveVertices(p geom.PolygonWithHoles) map[geom.Point]OpenDirections {
	log := logging.Logger()
	log.Debug("finding concave vertices", "holes", len(p.Holes))

	concave := ringConcaveVertices(p.Outer)
	for _, hole := range p.Holes {
		for vertex, open := range ringConcaveVertices(hole) {
			if _, seen := concave[vertex]; seen {
				delete(concave, vertex)
			} else {
				concave[vertex] = open
			}
		}
	}
	return concave
}

// ringConcaveVertices walks consecutive edges of a ring. The shared endpoint
// of edge d and next edge d' is concave exactly when d' equals rot270(d).
func ringConcaveVertices(ring geom.Polygon) map[geom.Point]OpenDirections {
	concave := make(map[geom.Point]OpenDirections)
	edges := ring.Edges()
	for i, edge := range edges {
		next := edges[(i+1)%len(edges)]
		d := edge.Direction().Normalize()
		if next.Direction().Normalize() != d.Rot270() {
			continue
		}
		concave[edge.Target] = OpenDirections{d, d.Rot90()}
	}
	return concave
}

// SortedConcaveVertices flattens the concave map into ascending
// lexicographic point order, which keeps every downstream cut choice
// deterministic.
func SortedConcaveVertices(m map[geom.Point]OpenDirections) []ConcaveVertex {
	out := make([]ConcaveVertex, 0, len(m))
	for p, open := range m {
		out = append(out, ConcaveVertex{Point: p, Open: open})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Point.Less(out[j].Point) })
	return out
}

// indexedEdge makes a polygon edge insertable into an R-tree. Boxes of
// axis-aligned edges are degenerate, so they are padded by half a unit; the
// exact integer predicates filter any false candidates the padding lets in.
type indexedEdge struct {
	seg    geom.Segment
	bounds rtreego.Rect
}

func (e *indexedEdge) Bounds() rtreego.Rect { return e.bounds }

func newIndexedEdge(s geom.Segment) *indexedEdge {
	x1, x2 := float64(s.Source.X), float64(s.Target.X)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 := float64(s.Source.Y), float64(s.Target.Y)
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	bounds, _ := rtreego.NewRect(
		rtreego.Point{x1 - 0.25, y1 - 0.25},
		[]float64{x2 - x1 + 0.5, y2 - y1 + 0.5},
	)
	return &indexedEdge{seg: s, bounds: bounds}
}

// EdgeIndex is an R-tree over all boundary edges of a polygon, used to
// answer cut-ray queries without scanning every edge.
type EdgeIndex struct {
	tree *rtreego.Rtree
	min  geom.Point
	max  geom.Point
}

// NewEdgeIndex indexes the outer boundary and hole edges of the polygon.
func NewEdgeIndex(p geom.PolygonWithHoles) *EdgeIndex {
	min, max := p.BBox()
	tree := rtreego.NewTree(2, 25, 50)
	for _, edge := range p.AllEdges() {
		tree.Insert(newIndexedEdge(edge))
	}
	return &EdgeIndex{tree: tree, min: min, max: max}
}

// corridor returns the query box covering the ray from source to the polygon
// bounding box in the given axis direction.
func (idx *EdgeIndex) corridor(source geom.Point, dir geom.Direction) rtreego.Rect {
	x1, y1 := float64(source.X), float64(source.Y)
	x2, y2 := x1, y1
	switch dir {
	case geom.Up:
		y2 = float64(idx.max.Y)
	case geom.Down:
		y2 = float64(idx.min.Y)
	case geom.Right:
		x2 = float64(idx.max.X)
	case geom.Left:
		x2 = float64(idx.min.X)
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	rect, _ := rtreego.NewRect(
		rtreego.Point{x1 - 0.25, y1 - 0.25},
		[]float64{x2 - x1 + 0.5, y2 - y1 + 0.5},
	)
	return rect
}

// ClosestIntersection shoots an axis-aligned ray from source and returns the
// closest intersection with any indexed edge that does not have source as an
// endpoint. Collinear overlaps contribute both overlap endpoints. Among tied
// candidates, rays going up or right take the lexicographically smallest
// point and rays going down or left the largest, which is the nearest along
// the ray in either case.
func (idx *EdgeIndex) ClosestIntersection(source geom.Point, dir geom.Direction) (geom.Point, bool) {
	var candidates []geom.Point
	for _, item := range idx.tree.SearchIntersect(idx.corridor(source, dir)) {
		edge := item.(*indexedEdge).seg
		if edge.HasEndpoint(source) {
			continue
		}
		candidates = append(candidates, rayEdgeIntersections(source, dir, edge)...)
	}
	return PickClosest(source, dir, candidates)
}

// rayEdgeIntersections returns the points where the ray from source in
// direction dir meets the axis-aligned segment s, clipped to the ray.
func rayEdgeIntersections(source geom.Point, dir geom.Direction, s geom.Segment) []geom.Point {
	vertical := dir.DX == 0
	if s.IsVertical() == vertical {
		// Parallel: only collinear overlaps count, via their endpoints.
		if vertical {
			if s.Source.X != source.X {
				return nil
			}
		} else if s.Source.Y != source.Y {
			return nil
		}
		var pts []geom.Point
		for _, p := range []geom.Point{s.Source, s.Target} {
			if onRay(source, dir, p) {
				pts = append(pts, p)
			}
		}
		return pts
	}

	// Perpendicular crossing.
	var p geom.Point
	if vertical {
		p = geom.Point{X: source.X, Y: s.Source.Y}
		lo, hi := s.Source.X, s.Target.X
		if lo > hi {
			lo, hi = hi, lo
		}
		if source.X < lo || source.X > hi {
			return nil
		}
	} else {
		p = geom.Point{X: s.Source.X, Y: source.Y}
		lo, hi := s.Source.Y, s.Target.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		if source.Y < lo || source.Y > hi {
			return nil
		}
	}
	if !onRay(source, dir, p) {
		return nil
	}
	return []geom.Point{p}
}

func onRay(source geom.Point, dir geom.Direction, p geom.Point) bool {
	switch dir {
	case geom.Up:
		return p.X == source.X && p.Y >= source.Y
	case geom.Down:
		return p.X == source.X && p.Y <= source.Y
	case geom.Right:
		return p.Y == source.Y && p.X >= source.X
	case geom.Left:
		return p.Y == source.Y && p.X <= source.X
	}
	return false
}

// PickClosest applies the direction-dependent tie-breaking to a candidate
// set, ignoring the ray source itself: rays going up or right take the
// lexicographically smallest candidate, rays going down or left the largest.
func PickClosest(source geom.Point, dir geom.Direction, candidates []geom.Point) (geom.Point, bool) {
	var best geom.Point
	found := false
	positive := dir.DX+dir.DY > 0
	for _, p := range candidates {
		if p == source {
			continue
		}
		if !found {
			best, found = p, true
			continue
		}
		if positive && p.Less(best) {
			best = p
		} else if !positive && best.Less(p) {
			best = p
		}
	}
	return best, found
}

// RayPointIntersection returns the single point where the ray from source
// meets the segment, if any. Collinear overlaps yield no point, mirroring
// the single-point intersection used for arbitrary-cut picking.
func RayPointIntersection(source geom.Point, dir geom.Direction, s geom.Segment) (geom.Point, bool) {
	vertical := dir.DX == 0
	if s.IsVertical() == vertical {
		return geom.Point{}, false
	}
	pts := rayEdgeIntersections(source, dir, s)
	if len(pts) != 1 {
		return geom.Point{}, false
	}
	return pts[0], true
}
