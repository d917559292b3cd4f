package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
)

func lShape() geom.PolygonWithHoles {
	return geom.PolygonWithHoles{
		Outer: geom.Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4}},
	}
}

func holedSquare() geom.PolygonWithHoles {
	return geom.PolygonWithHoles{
		Outer: geom.Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
		Holes: []geom.Polygon{{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}}},
	}
}

// plusWithHole is a plus shape spanning 0..12 with arms four units wide and
// a rectangular hole from (4, 5) to (8, 7) in its center. Its four outer
// concave vertices align with the hole's corners, so the partition can
// handle all eight concave vertices with four short good diagonals.
func plusWithHole() geom.PolygonWithHoles {
	return geom.PolygonWithHoles{
		Outer: geom.Polygon{
			{X: 4, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 4}, {X: 12, Y: 4}, {X: 12, Y: 8}, {X: 8, Y: 8},
			{X: 8, Y: 12}, {X: 4, Y: 12}, {X: 4, Y: 8}, {X: 0, Y: 8}, {X: 0, Y: 4}, {X: 4, Y: 4},
		},
		Holes: []geom.Polygon{{{X: 4, Y: 5}, {X: 4, Y: 7}, {X: 8, Y: 7}, {X: 8, Y: 5}}},
	}
}

func rect(t *testing.T, minX, minY, maxX, maxY int64) geom.Rectangle {
	t.Helper()
	r, err := geom.NewRectangle(minX, minY, maxX, maxY)
	require.NoError(t, err)
	return r
}

func unitCosts() cover.Costs { return cover.Costs{Creation: 0, Area: 1} }

// stubProvider hands a fixed cover to a postprocessor under test.
type stubProvider struct {
	cover cover.Cover
}

func (s *stubProvider) CoverFor(geom.PolygonWithHoles, cover.Costs, *cover.RuntimeEnv) (cover.Cover, error) {
	out := make(cover.Cover, len(s.cover))
	copy(out, s.cover)
	return out, nil
}

func (s *stubProvider) TimedOut() bool { return false }
