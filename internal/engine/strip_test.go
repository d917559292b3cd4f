package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
)

func TestStrip_LShape(t *testing.T) {
	env := &cover.RuntimeEnv{}
	c, err := NewStrip().CoverFor(lShape(), unitCosts(), env)
	require.NoError(t, err)

	assert.ElementsMatch(t, cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}, c)
	assert.True(t, cover.IsValidCover(c, lShape()))
}

func TestStrip_HoledSquare(t *testing.T) {
	env := &cover.RuntimeEnv{}
	polygon := holedSquare()
	c, err := NewStrip().CoverFor(polygon, unitCosts(), env)
	require.NoError(t, err)

	assert.True(t, cover.IsValidCover(c, polygon))
	assert.LessOrEqual(t, len(c), len(env.Graph.Nodes()),
		"strip cover is linear in the graph size")
}

func TestStrip_PopulatesEnvironment(t *testing.T) {
	env := &cover.RuntimeEnv{}
	_, err := NewStrip().CoverFor(lShape(), unitCosts(), env)
	require.NoError(t, err)

	assert.NotEmpty(t, env.BaseRects)
	assert.False(t, env.Graph.Empty())
}

func TestStrip_ReusesPrebuiltGraph(t *testing.T) {
	env := &cover.RuntimeEnv{}
	rects, err := cover.BaseRectangles(lShape())
	require.NoError(t, err)
	env.BaseRects = rects
	env.Graph.Build(rects)

	c, err := NewStrip().CoverFor(lShape(), unitCosts(), env)
	require.NoError(t, err)
	assert.Len(t, c, 2)
}

func TestStrip_TrivialPolygonFails(t *testing.T) {
	square := geom.PolygonWithHoles{
		Outer: geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	}
	_, err := NewStrip().CoverFor(square, unitCosts(), &cover.RuntimeEnv{})
	assert.ErrorIs(t, err, cover.ErrEmptyArrangement)
}
