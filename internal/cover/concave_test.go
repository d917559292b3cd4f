package cover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeRecCover/WeRecCover/internal/geom"
)

func TestFindConcaveVertices_LShape(t *testing.T) {
	concave := FindConcaveVertices(lShape())
	require.Len(t, concave, 1)

	open, ok := concave[geom.Point{X: 2, Y: 2}]
	require.True(t, ok)
	assert.Equal(t, OpenDirections{geom.Left, geom.Down}, open)
}

func TestFindConcaveVertices_SquareHasNone(t *testing.T) {
	square := geom.PolygonWithHoles{
		Outer: geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	}
	assert.Empty(t, FindConcaveVertices(square))
}

func TestFindConcaveVertices_HoleCornersAreReflex(t *testing.T) {
	concave := FindConcaveVertices(holedSquare())
	require.Len(t, concave, 4)

	assert.Equal(t, OpenDirections{geom.Left, geom.Down}, concave[geom.Point{X: 1, Y: 1}])
	assert.Equal(t, OpenDirections{geom.Up, geom.Left}, concave[geom.Point{X: 1, Y: 2}])
	assert.Equal(t, OpenDirections{geom.Right, geom.Up}, concave[geom.Point{X: 2, Y: 2}])
	assert.Equal(t, OpenDirections{geom.Down, geom.Right}, concave[geom.Point{X: 2, Y: 1}])
}

func TestSortedConcaveVertices_IsDeterministic(t *testing.T) {
	sorted := SortedConcaveVertices(FindConcaveVertices(holedSquare()))
	require.Len(t, sorted, 4)

	expected := []geom.Point{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 2}}
	for i, vertex := range sorted {
		assert.Equal(t, expected[i], vertex.Point)
	}
}

func TestEdgeIndex_ClosestIntersection(t *testing.T) {
	index := NewEdgeIndex(lShape())

	// The concave vertex's two cut rays.
	hit, ok := index.ClosestIntersection(geom.Point{X: 2, Y: 2}, geom.Left)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 0, Y: 2}, hit)

	hit, ok = index.ClosestIntersection(geom.Point{X: 2, Y: 2}, geom.Down)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 2, Y: 0}, hit)
}

func TestEdgeIndex_ClosestIntersectionStopsAtHole(t *testing.T) {
	index := NewEdgeIndex(holedSquare())

	// Shooting up from the hole's top-left corner: the nearest non-incident
	// edge is the outer top wall.
	hit, ok := index.ClosestIntersection(geom.Point{X: 1, Y: 2}, geom.Up)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 1, Y: 4}, hit)

	// From outside the hole toward it, the hole wall is the closest hit.
	hit, ok = index.ClosestIntersection(geom.Point{X: 1, Y: 0}, geom.Up)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 1, Y: 1}, hit)
}

func TestRayPointIntersection(t *testing.T) {
	edge := geom.Segment{Source: geom.Point{X: 0, Y: 3}, Target: geom.Point{X: 5, Y: 3}}

	p, ok := RayPointIntersection(geom.Point{X: 2, Y: 0}, geom.Up, edge)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 2, Y: 3}, p)

	// Behind the source.
	_, ok = RayPointIntersection(geom.Point{X: 2, Y: 4}, geom.Up, edge)
	assert.False(t, ok)

	// Parallel segments never yield a single point.
	_, ok = RayPointIntersection(geom.Point{X: 0, Y: 0}, geom.Right,
		geom.Segment{Source: geom.Point{X: 1, Y: 0}, Target: geom.Point{X: 3, Y: 0}})
	assert.False(t, ok)
}

func TestPickClosest_TieBreaking(t *testing.T) {
	source := geom.Point{X: 0, Y: 0}
	candidates := []geom.Point{{X: 0, Y: 3}, {X: 0, Y: 1}, {X: 0, Y: 5}}

	up, ok := PickClosest(source, geom.Up, candidates)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 0, Y: 1}, up, "upward rays take the smallest point")

	down, ok := PickClosest(geom.Point{X: 0, Y: 9}, geom.Down, candidates)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 0, Y: 5}, down, "downward rays take the largest point")

	_, ok = PickClosest(source, geom.Up, []geom.Point{source})
	assert.False(t, ok, "the source itself never counts")
}
