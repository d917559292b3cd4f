package cover

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/WeRecCover/WeRecCover/internal/geom"
)

// lShape is the canonical six-vertex L with one concave vertex at (2, 2).
func lShape() geom.PolygonWithHoles {
	return geom.PolygonWithHoles{
		Outer: geom.Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4}},
	}
}

// holedSquare is a 4x4 square with a unit hole from (1, 1) to (2, 2). The
// hole ring is stored clockwise.
func holedSquare() geom.PolygonWithHoles {
	return geom.PolygonWithHoles{
		Outer: geom.Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
		Holes: []geom.Polygon{{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}}},
	}
}

func rect(t *testing.T, minX, minY, maxX, maxY int64) geom.Rectangle {
	t.Helper()
	r, err := geom.NewRectangle(minX, minY, maxX, maxY)
	require.NoError(t, err)
	return r
}

// lShapeBaseRects are the three base rectangles the L decomposes into.
func lShapeBaseRects(t *testing.T) []geom.Rectangle {
	t.Helper()
	return []geom.Rectangle{
		rect(t, 0, 2, 2, 4),
		rect(t, 0, 0, 2, 2),
		rect(t, 2, 0, 4, 2),
	}
}
