package cover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeRecCover/WeRecCover/internal/geom"
)

func lShapeGraph(t *testing.T) *BaseRectGraph {
	t.Helper()
	g := &BaseRectGraph{}
	g.Build(lShapeBaseRects(t))
	return g
}

func TestBaseRectGraph_BuildLinks(t *testing.T) {
	g := lShapeGraph(t)
	nodes := g.Nodes()
	require.Len(t, nodes, 3)

	// Insertion order: top-left x ascending, then top-left y descending.
	top := nodes[0]    // (0,2)-(2,4)
	middle := nodes[1] // (0,0)-(2,2)
	right := nodes[2]  // (2,0)-(4,2)

	assert.Equal(t, rect(t, 0, 2, 2, 4), top.Base)
	assert.Equal(t, rect(t, 0, 0, 2, 2), middle.Base)
	assert.Equal(t, rect(t, 2, 0, 4, 2), right.Base)

	assert.Equal(t, 1, top.Bottom)
	assert.Equal(t, 0, middle.Top)
	assert.Equal(t, 2, middle.Right)
	assert.Equal(t, 1, right.Left)
	assert.Equal(t, NoNeighbor, top.Top)
	assert.Equal(t, NoNeighbor, top.Left)
	assert.Equal(t, NoNeighbor, right.Bottom)
}

func TestBaseRectGraph_PointMapsMatchNodes(t *testing.T) {
	g := lShapeGraph(t)
	for id, node := range g.Nodes() {
		assert.Equal(t, id, g.BottomLeftMap()[node.Base.BottomLeft()])
		assert.Equal(t, id, g.TopRightMap()[node.Base.TopRight()])
	}
	assert.Len(t, g.BottomLeftMap(), len(g.Nodes()))
	assert.Len(t, g.TopRightMap(), len(g.Nodes()))
}

func TestBaseRectGraph_AdjacencyIsSymmetric(t *testing.T) {
	g := &BaseRectGraph{}
	rects, err := BaseRectangles(holedSquare())
	require.NoError(t, err)
	g.Build(rects)

	for id, node := range g.Nodes() {
		if node.Right != NoNeighbor {
			assert.Equal(t, id, g.Nodes()[node.Right].Left)
		}
		if node.Bottom != NoNeighbor {
			assert.Equal(t, id, g.Nodes()[node.Bottom].Top)
		}
	}
}

func TestBaseRectGraph_NodeHeights(t *testing.T) {
	g := lShapeGraph(t)
	heights := g.NodeHeights()
	assert.Equal(t, []int{1, 0, 0}, heights)
}

func TestBaseRectGraph_ContainedIterator(t *testing.T) {
	g := lShapeGraph(t)

	var visited []geom.Rectangle
	for it := g.Begin(geom.Point{X: 2, Y: 4}, geom.Point{X: 0, Y: 0}); !it.Done(); it = it.Next() {
		visited = append(visited, g.Nodes()[it.Node()].Base)
	}
	assert.ElementsMatch(t, []geom.Rectangle{
		rect(t, 0, 2, 2, 4),
		rect(t, 0, 0, 2, 2),
	}, visited)

	// The full bounding query over the bottom strip.
	visited = nil
	for it := g.Begin(geom.Point{X: 4, Y: 2}, geom.Point{X: 0, Y: 0}); !it.Done(); it = it.Next() {
		visited = append(visited, g.Nodes()[it.Node()].Base)
	}
	assert.ElementsMatch(t, []geom.Rectangle{
		rect(t, 2, 0, 4, 2),
		rect(t, 0, 0, 2, 2),
	}, visited)
}

func TestBaseRectGraph_AllRectangles(t *testing.T) {
	g := lShapeGraph(t)

	all := g.AllRectangles()
	assert.ElementsMatch(t, []geom.Rectangle{
		rect(t, 0, 2, 2, 4),
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 2, 2),
		rect(t, 2, 0, 4, 2),
		rect(t, 0, 0, 4, 2),
	}, all)
	assert.Equal(t, len(all), g.CountAllRectangles())
}

func TestBaseRectGraph_RectanglesWithin(t *testing.T) {
	g := lShapeGraph(t)

	within := g.RectanglesWithin(geom.Point{X: 2, Y: 4}, geom.Point{X: 0, Y: 0})
	assert.ElementsMatch(t, []geom.Rectangle{
		rect(t, 0, 2, 2, 4),
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 2, 2),
	}, within)
}

func TestBaseRectGraph_MaximalRectangles(t *testing.T) {
	g := lShapeGraph(t)

	maximal := g.MaximalRectangles()
	assert.ElementsMatch(t, []geom.Rectangle{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}, maximal)
}

func TestBaseRectGraph_ClearAndEmpty(t *testing.T) {
	g := lShapeGraph(t)
	assert.False(t, g.Empty())
	g.Clear()
	assert.True(t, g.Empty())
}
