package geom

import (
	"math"
	"sort"

	polyclip "github.com/ctessum/polyclip-go"
)

// The boolean operations below bridge to polyclip, which works on float64
// contours. Core coordinates are integers well below 2^53, so the round trip
// is exact.

func ringToContour(ring Polygon) polyclip.Contour {
	contour := make(polyclip.Contour, len(ring))
	for i, v := range ring {
		contour[i] = polyclip.Point{X: float64(v.X), Y: float64(v.Y)}
	}
	return contour
}

func toClip(p PolygonWithHoles) polyclip.Polygon {
	out := polyclip.Polygon{ringToContour(p.Outer)}
	for _, hole := range p.Holes {
		out = append(out, ringToContour(hole))
	}
	return out
}

func contourToRing(c polyclip.Contour) Polygon {
	ring := make(Polygon, len(c))
	for i, v := range c {
		ring[i] = Point{X: int64(math.Round(v.X)), Y: int64(math.Round(v.Y))}
	}
	return ring
}

// interiorProbe returns a point guaranteed to lie strictly inside the ring:
// half a unit up-right of the lowest-then-leftmost vertex. With integer
// vertices no boundary can pass between that corner and the probe.
func interiorProbe(ring polyclip.Contour) polyclip.Point {
	best := ring[0]
	for _, v := range ring[1:] {
		if v.Y < best.Y || (v.Y == best.Y && v.X < best.X) {
			best = v
		}
	}
	return polyclip.Point{X: best.X + 0.5, Y: best.Y + 0.5}
}

func ringContains(ring polyclip.Contour, p polyclip.Point) bool {
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// assemble groups the contours of a boolean result into polygons with holes.
// A contour at even nesting depth is an outer boundary; odd-depth contours
// become holes of their immediately enclosing outer.
func assemble(result polyclip.Polygon) []PolygonWithHoles {
	n := len(result)
	if n == 0 {
		return nil
	}

	type info struct {
		depth  int
		parent int
	}
	infos := make([]info, n)
	for i, c := range result {
		infos[i].parent = -1
		probe := interiorProbe(c)
		for j, other := range result {
			if i == j {
				continue
			}
			if ringContains(other, probe) {
				infos[i].depth++
				// The immediate parent is the smallest enclosing contour.
				if infos[i].parent < 0 || math.Abs(signedArea(other)) < math.Abs(signedArea(result[infos[i].parent])) {
					infos[i].parent = j
				}
			}
		}
	}

	polys := make(map[int]*PolygonWithHoles)
	var order []int
	for i, inf := range infos {
		if inf.depth%2 == 0 {
			ring := contourToRing(result[i])
			if !ring.IsCCW() {
				ring = ring.Reversed()
			}
			polys[i] = &PolygonWithHoles{Outer: ring}
			order = append(order, i)
		}
	}
	for i, inf := range infos {
		if inf.depth%2 == 1 && inf.parent >= 0 {
			if parent, ok := polys[inf.parent]; ok {
				ring := contourToRing(result[i])
				if ring.IsCCW() {
					ring = ring.Reversed()
				}
				parent.Holes = append(parent.Holes, ring)
			}
		}
	}

	sort.Ints(order)
	out := make([]PolygonWithHoles, 0, len(order))
	for _, i := range order {
		out = append(out, *polys[i])
	}
	return out
}

func signedArea(c polyclip.Contour) float64 {
	var sum float64
	n := len(c)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return sum / 2
}

func construct(a, b PolygonWithHoles, op polyclip.Op) []PolygonWithHoles {
	return assemble(toClip(a).Construct(op, toClip(b)))
}

// Union returns the combined area of a and b.
func Union(a, b PolygonWithHoles) []PolygonWithHoles {
	return construct(a, b, polyclip.UNION)
}

// Difference returns the area of a not covered by b.
func Difference(a, b PolygonWithHoles) []PolygonWithHoles {
	return construct(a, b, polyclip.DIFFERENCE)
}

// SymmetricDifference returns the area covered by exactly one of a and b.
func SymmetricDifference(a, b PolygonWithHoles) []PolygonWithHoles {
	return construct(a, b, polyclip.XOR)
}

// UnionRectangles joins the rectangles into disjoint polygons with holes.
func UnionRectangles(rects []Rectangle) []PolygonWithHoles {
	var acc polyclip.Polygon
	for _, r := range rects {
		clip := polyclip.Polygon{ringToContour(r.Polygon())}
		if acc == nil {
			acc = clip
			continue
		}
		acc = acc.Construct(polyclip.UNION, clip)
	}
	return assemble(acc)
}
