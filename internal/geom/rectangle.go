package geom

import (
	"errors"
	"fmt"
)

// ErrInvalidRectangle is returned when a rectangle would have non-positive
// width or height.
var ErrInvalidRectangle = errors.New("rectangle has invalid min/max coordinates")

// Rectangle is an axis-aligned box held by its bottom-left and top-right
// corners, with bl.X < tr.X and bl.Y < tr.Y.
type Rectangle struct {
	bl Point
	tr Point
}

// NewRectangle builds a rectangle from its extreme coordinates. It fails
// when the extent is not strictly positive on both axes.
func NewRectangle(minX, minY, maxX, maxY int64) (Rectangle, error) {
	if minX >= maxX || minY >= maxY {
		return Rectangle{}, fmt.Errorf("%w: %d %d %d %d", ErrInvalidRectangle, minX, minY, maxX, maxY)
	}
	return Rectangle{bl: Point{minX, minY}, tr: Point{maxX, maxY}}, nil
}

// RectangleFromCorners builds a rectangle from its bottom-left and top-right
// corners, which the caller guarantees to be ordered.
func RectangleFromCorners(bl, tr Point) Rectangle {
	return Rectangle{bl: bl, tr: tr}
}

func (r Rectangle) BottomLeft() Point  { return r.bl }
func (r Rectangle) TopRight() Point    { return r.tr }
func (r Rectangle) BottomRight() Point { return Point{r.tr.X, r.bl.Y} }
func (r Rectangle) TopLeft() Point     { return Point{r.bl.X, r.tr.Y} }

func (r Rectangle) MinX() int64 { return r.bl.X }
func (r Rectangle) MinY() int64 { return r.bl.Y }
func (r Rectangle) MaxX() int64 { return r.tr.X }
func (r Rectangle) MaxY() int64 { return r.tr.Y }

func (r Rectangle) Width() int64  { return r.tr.X - r.bl.X }
func (r Rectangle) Height() int64 { return r.tr.Y - r.bl.Y }
func (r Rectangle) Area() int64   { return r.Width() * r.Height() }

func (r Rectangle) BottomEdge() Segment { return Segment{r.bl, r.BottomRight()} }
func (r Rectangle) RightEdge() Segment  { return Segment{r.BottomRight(), r.tr} }
func (r Rectangle) TopEdge() Segment    { return Segment{r.tr, r.TopLeft()} }
func (r Rectangle) LeftEdge() Segment   { return Segment{r.TopLeft(), r.bl} }

// Contains reports whether r fully contains other, boundaries included.
func (r Rectangle) Contains(other Rectangle) bool {
	return r.bl.X <= other.bl.X && r.bl.Y <= other.bl.Y &&
		r.tr.X >= other.tr.X && r.tr.Y >= other.tr.Y
}

// Intersects reports whether the interiors of r and other overlap. Touching
// rectangles do not intersect.
func (r Rectangle) Intersects(other Rectangle) bool {
	if other.tr.X <= r.bl.X || r.tr.X <= other.bl.X {
		return false
	}
	if other.tr.Y <= r.bl.Y || r.tr.Y <= other.bl.Y {
		return false
	}
	return true
}

// FullyIntersects reports whether the segment crosses the rectangle's
// interior, rather than merely touching its boundary.
func (r Rectangle) FullyIntersects(s Segment) bool {
	if s.IsVertical() {
		x := s.Target.X
		if x >= r.MaxX() || x <= r.MinX() {
			return false
		}
		y1, y2 := s.Target.Y, s.Source.Y
		return !((y1 >= r.MaxY() && y2 >= r.MaxY()) || (y1 <= r.MinY() && y2 <= r.MinY()))
	}
	y := s.Target.Y
	if y >= r.MaxY() || y <= r.MinY() {
		return false
	}
	x1, x2 := s.Target.X, s.Source.X
	return !((x1 >= r.MaxX() && x2 >= r.MaxX()) || (x1 <= r.MinX() && x2 <= r.MinX()))
}

// Join returns the smallest rectangle containing both r and other.
func (r Rectangle) Join(other Rectangle) Rectangle {
	return Rectangle{
		bl: Point{min64(r.MinX(), other.MinX()), min64(r.MinY(), other.MinY())},
		tr: Point{max64(r.MaxX(), other.MaxX()), max64(r.MaxY(), other.MaxY())},
	}
}

// Less orders rectangles lexicographically on (bottom-left, top-right).
func (r Rectangle) Less(other Rectangle) bool {
	if r.bl != other.bl {
		return r.bl.Less(other.bl)
	}
	return r.tr.Less(other.tr)
}

// Polygon returns the rectangle's boundary as a counterclockwise ring.
func (r Rectangle) Polygon() Polygon {
	return Polygon{r.bl, r.BottomRight(), r.tr, r.TopLeft()}
}

// ExtendDown moves the bottom edge down by amount.
func (r *Rectangle) ExtendDown(amount int64) { r.bl.Y -= amount }

// ExtendLeft moves the left edge left by amount.
func (r *Rectangle) ExtendLeft(amount int64) { r.bl.X -= amount }

// ExtendRight moves the right edge right by amount.
func (r *Rectangle) ExtendRight(amount int64) { r.tr.X += amount }

// ShrinkUp moves the bottom edge up by amount.
func (r *Rectangle) ShrinkUp(amount int64) { r.bl.Y += amount }

// ShrinkDown moves the top edge down by amount.
func (r *Rectangle) ShrinkDown(amount int64) { r.tr.Y -= amount }

// ShrinkLeft moves the left edge right by amount.
func (r *Rectangle) ShrinkLeft(amount int64) { r.bl.X += amount }

// ShrinkRight moves the right edge left by amount.
func (r *Rectangle) ShrinkRight(amount int64) { r.tr.X -= amount }

func (r Rectangle) String() string {
	return fmt.Sprintf("[ (%d, %d) / (%d, %d) ]", r.bl.X, r.bl.Y, r.tr.X, r.tr.Y)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
