package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionRectangles_MergesTouchingSquares(t *testing.T) {
	rects := []Rectangle{
		mustRect(t, 0, 0, 1, 1),
		mustRect(t, 1, 0, 2, 1),
	}
	joined := UnionRectangles(rects)
	require.Len(t, joined, 1)

	min, max := joined[0].BBox()
	assert.Equal(t, Point{0, 0}, min)
	assert.Equal(t, Point{2, 1}, max)
	assert.Empty(t, joined[0].Holes)
}

func TestUnionRectangles_DisjointSquaresStaySeparate(t *testing.T) {
	rects := []Rectangle{
		mustRect(t, 0, 0, 1, 1),
		mustRect(t, 3, 3, 4, 4),
	}
	joined := UnionRectangles(rects)
	assert.Len(t, joined, 2)
}

func TestUnionRectangles_RingOfRectanglesFormsHole(t *testing.T) {
	// Four rectangles framing an empty 1x1 center.
	rects := []Rectangle{
		mustRect(t, 0, 0, 3, 1),
		mustRect(t, 0, 2, 3, 3),
		mustRect(t, 0, 1, 1, 2),
		mustRect(t, 2, 1, 3, 2),
	}
	joined := UnionRectangles(rects)
	require.Len(t, joined, 1)
	require.Len(t, joined[0].Holes, 1)

	min, max := joined[0].Holes[0].BBox()
	assert.Equal(t, Point{1, 1}, min)
	assert.Equal(t, Point{2, 2}, max)
	assert.True(t, joined[0].Outer.IsCCW())
	assert.False(t, joined[0].Holes[0].IsCCW())
}

func TestSymmetricDifference_EqualRegionsAreEmpty(t *testing.T) {
	a := PolygonWithHoles{Outer: lShape()}
	b := PolygonWithHoles{Outer: lShape()}
	assert.Empty(t, SymmetricDifference(a, b))
}

func TestSymmetricDifference_DetectsMismatch(t *testing.T) {
	a := PolygonWithHoles{Outer: lShape()}
	b := PolygonWithHoles{Outer: mustRect(t, 0, 0, 4, 4).Polygon()}
	assert.NotEmpty(t, SymmetricDifference(a, b))
}

func TestDifference_InsideRegionIsEmpty(t *testing.T) {
	inner := PolygonWithHoles{Outer: mustRect(t, 0, 0, 2, 2).Polygon()}
	outer := PolygonWithHoles{Outer: lShape()}
	assert.Empty(t, Difference(inner, outer))
	assert.NotEmpty(t, Difference(outer, inner))
}
