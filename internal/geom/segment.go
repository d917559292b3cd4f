package geom

// Segment is an ordered, non-degenerate pair of points. Segments produced by
// this package are always axis-aligned.
type Segment struct {
	Source Point
	Target Point
}

// IsVertical reports whether both endpoints share an X coordinate.
func (s Segment) IsVertical() bool { return s.Source.X == s.Target.X }

// IsHorizontal reports whether both endpoints share a Y coordinate.
func (s Segment) IsHorizontal() bool { return s.Source.Y == s.Target.Y }

// Direction returns the (unnormalized) direction from source to target.
func (s Segment) Direction() Direction {
	return Direction{DX: s.Target.X - s.Source.X, DY: s.Target.Y - s.Source.Y}
}

// Opposite returns the segment with source and target swapped.
func (s Segment) Opposite() Segment {
	return Segment{Source: s.Target, Target: s.Source}
}

// HasEndpoint reports whether p is one of the segment's endpoints.
func (s Segment) HasEndpoint(p Point) bool {
	return s.Source == p || s.Target == p
}

// ordered returns the segment's extent on its variable axis as (lo, hi).
func ordered(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// Intersects reports whether two axis-aligned segments share at least one
// point, endpoints included.
func Intersects(a, b Segment) bool {
	if a.IsVertical() == b.IsVertical() {
		// Parallel: they can only meet when collinear with overlapping extents.
		if a.IsVertical() {
			if a.Source.X != b.Source.X {
				return false
			}
			aLo, aHi := ordered(a.Source.Y, a.Target.Y)
			bLo, bHi := ordered(b.Source.Y, b.Target.Y)
			return aLo <= bHi && bLo <= aHi
		}
		if a.Source.Y != b.Source.Y {
			return false
		}
		aLo, aHi := ordered(a.Source.X, a.Target.X)
		bLo, bHi := ordered(b.Source.X, b.Target.X)
		return aLo <= bHi && bLo <= aHi
	}

	v, h := a, b
	if h.IsVertical() {
		v, h = b, a
	}
	vLo, vHi := ordered(v.Source.Y, v.Target.Y)
	hLo, hHi := ordered(h.Source.X, h.Target.X)
	return hLo <= v.Source.X && v.Source.X <= hHi &&
		vLo <= h.Source.Y && h.Source.Y <= vHi
}

// IntersectsInterior reports whether the two axis-aligned segments intersect
// anywhere except at their endpoints. Collinear segments intersect in the
// interior when their extents overlap in more than a single shared endpoint;
// perpendicular segments do when the crossing point is interior to both.
func IntersectsInterior(a, b Segment) bool {
	aVertical := a.IsVertical()
	bVertical := b.IsVertical()

	switch {
	case aVertical && bVertical:
		if a.Source.X != b.Source.X {
			return false
		}
		aLo, aHi := ordered(a.Source.Y, a.Target.Y)
		bLo, bHi := ordered(b.Source.Y, b.Target.Y)
		return !((bLo >= aHi && bHi >= aHi) || (bLo <= aLo && bHi <= aLo))
	case !aVertical && !bVertical:
		if a.Source.Y != b.Source.Y {
			return false
		}
		aLo, aHi := ordered(a.Source.X, a.Target.X)
		bLo, bHi := ordered(b.Source.X, b.Target.X)
		return !((bLo >= aHi && bHi >= aHi) || (bLo <= aLo && bHi <= aLo))
	default:
		h, v := a, b
		if h.IsVertical() {
			h, v = b, a
		}
		vLo, vHi := ordered(v.Source.Y, v.Target.Y)
		if !(h.Source.Y > vLo && h.Source.Y < vHi) {
			return false
		}
		hLo, hHi := ordered(h.Source.X, h.Target.X)
		return v.Source.X > hLo && v.Source.X < hHi
	}
}
