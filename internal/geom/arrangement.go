package geom

import (
	"errors"
	"fmt"
	"sort"
)

// ErrGeometryFailure is returned when arrangement construction is handed
// input it cannot subdivide, such as non-axis-aligned or degenerate segments.
var ErrGeometryFailure = errors.New("planar arrangement construction failed")

// Arrangement is the planar subdivision induced by a set of axis-aligned
// segments. Segments are split at every crossing, T-intersection and
// collinear overlap; the bounded faces of the subdivision are traced as
// counterclockwise vertex cycles.
type Arrangement struct {
	faces []Polygon
}

// BoundedFaces returns the vertex cycle of every bounded face. Cycles run
// counterclockwise and include subdivision vertices, so consecutive edges of
// a cycle may be collinear.
func (a *Arrangement) BoundedFaces() []Polygon { return a.faces }

// direction slot indices around a vertex, in clockwise order.
const (
	slotUp = iota
	slotRight
	slotDown
	slotLeft
)

type vertexLinks struct {
	has [4]bool
	to  [4]Point
}

type directedEdge struct {
	from Point
	slot int
}

// NewArrangement subdivides the given axis-aligned segments and extracts the
// bounded faces.
func NewArrangement(segments []Segment) (*Arrangement, error) {
	type hseg struct{ y, x1, x2 int64 }
	type vseg struct{ x, y1, y2 int64 }

	var hs []hseg
	var vs []vseg
	for _, s := range segments {
		switch {
		case s.Source == s.Target:
			return nil, fmt.Errorf("%w: degenerate segment at (%d, %d)", ErrGeometryFailure, s.Source.X, s.Source.Y)
		case s.IsHorizontal():
			x1, x2 := ordered(s.Source.X, s.Target.X)
			hs = append(hs, hseg{y: s.Source.Y, x1: x1, x2: x2})
		case s.IsVertical():
			y1, y2 := ordered(s.Source.Y, s.Target.Y)
			vs = append(vs, vseg{x: s.Source.X, y1: y1, y2: y2})
		default:
			return nil, fmt.Errorf("%w: segment (%d, %d)-(%d, %d) is not axis-aligned",
				ErrGeometryFailure, s.Source.X, s.Source.Y, s.Target.X, s.Target.Y)
		}
	}

	adj := make(map[Point]*vertexLinks)
	link := func(a, b Point, slotAB, slotBA int) {
		la := adj[a]
		if la == nil {
			la = &vertexLinks{}
			adj[a] = la
		}
		la.has[slotAB] = true
		la.to[slotAB] = b
		lb := adj[b]
		if lb == nil {
			lb = &vertexLinks{}
			adj[b] = lb
		}
		lb.has[slotBA] = true
		lb.to[slotBA] = a
	}

	// Split every horizontal segment at collinear endpoints and at crossing
	// verticals, then emit unit edges between consecutive split points.
	// Duplicate unit edges from overlapping segments collapse in the
	// adjacency map.
	for _, h := range hs {
		xs := []int64{h.x1, h.x2}
		for _, o := range hs {
			if o.y != h.y {
				continue
			}
			if o.x1 > h.x1 && o.x1 < h.x2 {
				xs = append(xs, o.x1)
			}
			if o.x2 > h.x1 && o.x2 < h.x2 {
				xs = append(xs, o.x2)
			}
		}
		for _, v := range vs {
			if v.x >= h.x1 && v.x <= h.x2 && h.y >= v.y1 && h.y <= v.y2 {
				xs = append(xs, v.x)
			}
		}
		xs = sortedUnique(xs)
		for i := 0; i+1 < len(xs); i++ {
			link(Point{xs[i], h.y}, Point{xs[i+1], h.y}, slotRight, slotLeft)
		}
	}
	for _, v := range vs {
		ys := []int64{v.y1, v.y2}
		for _, o := range vs {
			if o.x != v.x {
				continue
			}
			if o.y1 > v.y1 && o.y1 < v.y2 {
				ys = append(ys, o.y1)
			}
			if o.y2 > v.y1 && o.y2 < v.y2 {
				ys = append(ys, o.y2)
			}
		}
		for _, h := range hs {
			if h.y >= v.y1 && h.y <= v.y2 && v.x >= h.x1 && v.x <= h.x2 {
				ys = append(ys, h.y)
			}
		}
		ys = sortedUnique(ys)
		for i := 0; i+1 < len(ys); i++ {
			link(Point{v.x, ys[i]}, Point{v.x, ys[i+1]}, slotUp, slotDown)
		}
	}

	if len(adj) == 0 {
		return &Arrangement{}, nil
	}

	arr := &Arrangement{}
	visited := make(map[directedEdge]bool)
	for from, links := range adj {
		for slot := 0; slot < 4; slot++ {
			if !links.has[slot] {
				continue
			}
			start := directedEdge{from: from, slot: slot}
			if visited[start] {
				continue
			}
			face, err := traceFace(adj, visited, start)
			if err != nil {
				return nil, err
			}
			if face.SignedDoubleArea() > 0 {
				arr.faces = append(arr.faces, face)
			}
		}
	}

	// Map iteration above is unordered; give callers a stable face order.
	sort.Slice(arr.faces, func(i, j int) bool {
		iMin, _ := arr.faces[i].BBox()
		jMin, _ := arr.faces[j].BBox()
		if iMin != jMin {
			return iMin.Less(jMin)
		}
		return len(arr.faces[i]) < len(arr.faces[j])
	})

	return arr, nil
}

// traceFace walks the face lying to the left of the starting directed edge.
// At each vertex the walk continues with the first outgoing edge clockwise
// from the reversed incoming direction, falling back to the reversal itself
// at dead ends.
func traceFace(adj map[Point]*vertexLinks, visited map[directedEdge]bool, start directedEdge) (Polygon, error) {
	var face Polygon
	cur := start
	for steps := 0; ; steps++ {
		if steps > 4*len(adj)*4 {
			return nil, fmt.Errorf("%w: face walk did not close", ErrGeometryFailure)
		}
		visited[cur] = true
		face = append(face, cur.from)

		next := adj[cur.from].to[cur.slot]
		rev := (cur.slot + 2) % 4
		links := adj[next]
		nextSlot := rev
		for i := 1; i <= 3; i++ {
			candidate := (rev + i) % 4
			if links.has[candidate] {
				nextSlot = candidate
				break
			}
		}
		cur = directedEdge{from: next, slot: nextSlot}
		if cur == start {
			return face, nil
		}
	}
}

func sortedUnique(vals []int64) []int64 {
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	out := vals[:0]
	for i, v := range vals {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
