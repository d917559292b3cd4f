package geom

// Polygon is a closed simple rectilinear boundary as an ordered vertex
// sequence. The ring is implicitly closed: the last vertex connects back to
// the first.
type Polygon []Point

// Edges returns the polygon's boundary segments in ring order.
func (p Polygon) Edges() []Segment {
	edges := make([]Segment, 0, len(p))
	for i := range p {
		edges = append(edges, Segment{Source: p[i], Target: p[(i+1)%len(p)]})
	}
	return edges
}

// SignedDoubleArea returns twice the signed area of the ring; positive for
// counterclockwise orientation.
func (p Polygon) SignedDoubleArea() int64 {
	var sum int64
	for i := range p {
		j := (i + 1) % len(p)
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return sum
}

// IsCCW reports whether the ring winds counterclockwise.
func (p Polygon) IsCCW() bool { return p.SignedDoubleArea() > 0 }

// Reversed returns the ring with its orientation flipped.
func (p Polygon) Reversed() Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// BBox returns the ring's axis-aligned bounding box corners.
func (p Polygon) BBox() (min, max Point) {
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
	}
	return min, max
}

// IsRectilinear reports whether every edge is axis-aligned and none is
// degenerate.
func (p Polygon) IsRectilinear() bool {
	for _, e := range p.Edges() {
		if e.Source == e.Target {
			return false
		}
		if !e.IsHorizontal() && !e.IsVertical() {
			return false
		}
	}
	return true
}

// PolygonWithHoles is an outer boundary plus zero or more holes lying
// strictly inside it. The outer ring winds counterclockwise, holes wind
// clockwise.
type PolygonWithHoles struct {
	Outer Polygon
	Holes []Polygon
}

// HasHoles reports whether the polygon has at least one hole.
func (p PolygonWithHoles) HasHoles() bool { return len(p.Holes) > 0 }

// AllEdges returns the outer boundary edges followed by all hole edges.
func (p PolygonWithHoles) AllEdges() []Segment {
	edges := p.Outer.Edges()
	for _, hole := range p.Holes {
		edges = append(edges, hole.Edges()...)
	}
	return edges
}

// BBox returns the bounding box of the outer boundary.
func (p PolygonWithHoles) BBox() (min, max Point) { return p.Outer.BBox() }

// Normalize reorients the outer ring counterclockwise and every hole
// clockwise, in place.
func (p *PolygonWithHoles) Normalize() {
	if !p.Outer.IsCCW() {
		p.Outer = p.Outer.Reversed()
	}
	for i, hole := range p.Holes {
		if hole.IsCCW() {
			p.Holes[i] = hole.Reversed()
		}
	}
}
