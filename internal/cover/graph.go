package cover

import (
	"sort"

	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// NoNeighbor marks a missing adjacency in a BaseRectNode.
const NoNeighbor = -1

// BaseRectNode is a base rectangle with links to its four full-edge
// neighbors. Links are indices into the owning graph's node slice.
type BaseRectNode struct {
	Left   int
	Right  int
	Top    int
	Bottom int
	Base   geom.Rectangle
}

// BaseRectGraph is the grid-graph abstraction over a polygon's base
// rectangles: an indexed node arena plus point lookups for bottom-left and
// top-right corners.
type BaseRectGraph struct {
	nodes      []BaseRectNode
	bottomLeft map[geom.Point]int
	topRight   map[geom.Point]int
}

// BuildFromPolygon extracts the polygon's base rectangles and builds the
// graph from them.
func (g *BaseRectGraph) BuildFromPolygon(polygon geom.PolygonWithHoles) error {
	rects, err := BaseRectangles(polygon)
	if err != nil {
		return err
	}
	g.Build(rects)
	return nil
}

// Build constructs the graph. Nodes are inserted in (top-left x ascending,
// top-left y descending) order so that a node's left neighbor, whose
// top-right corner equals this node's top-left corner, and its top neighbor,
// whose bottom-left corner equals this node's top-left corner, already exist
// when the node is added.
func (g *BaseRectGraph) Build(baseRects []geom.Rectangle) {
	logging.Logger().Info("building base rect graph", "nodes", len(baseRects))

	g.Clear()
	sorted := make([]geom.Rectangle, len(baseRects))
	copy(sorted, baseRects)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].TopLeft(), sorted[j].TopLeft()
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y > b.Y
	})

	g.nodes = make([]BaseRectNode, 0, len(sorted))
	g.bottomLeft = make(map[geom.Point]int, len(sorted))
	g.topRight = make(map[geom.Point]int, len(sorted))

	for _, rect := range sorted {
		id := len(g.nodes)
		node := BaseRectNode{Left: NoNeighbor, Right: NoNeighbor, Top: NoNeighbor, Bottom: NoNeighbor, Base: rect}
		tl := rect.TopLeft()
		if left, ok := g.topRight[tl]; ok {
			node.Left = left
			g.nodes[left].Right = id
		}
		if top, ok := g.bottomLeft[tl]; ok {
			node.Top = top
			g.nodes[top].Bottom = id
		}
		g.nodes = append(g.nodes, node)
		g.bottomLeft[rect.BottomLeft()] = id
		g.topRight[rect.TopRight()] = id
	}
}

// Nodes returns the node arena.
func (g *BaseRectGraph) Nodes() []BaseRectNode { return g.nodes }

// BottomLeftMap maps each base rectangle's bottom-left corner to its node.
func (g *BaseRectGraph) BottomLeftMap() map[geom.Point]int { return g.bottomLeft }

// TopRightMap maps each base rectangle's top-right corner to its node.
func (g *BaseRectGraph) TopRightMap() map[geom.Point]int { return g.topRight }

// Clear drops all nodes and lookups.
func (g *BaseRectGraph) Clear() {
	g.nodes = nil
	g.bottomLeft = nil
	g.topRight = nil
}

// Empty reports whether the graph has no nodes.
func (g *BaseRectGraph) Empty() bool { return len(g.nodes) == 0 }

// SuperRectangleIterator yields every node whose base rectangle lies inside
// a query rectangle. It starts at the node in the query's top-right corner
// and walks each column downward before stepping left to the top of the next
// column. Copies of an iterator advance independently.
type SuperRectangleIterator struct {
	goingLeft  int
	goingDown  int
	bottomLeft geom.Point
	g          *BaseRectGraph
}

// Begin returns an iterator over the base rectangles inside the rectangle
// spanned by bottomLeft and topRight.
func (g *BaseRectGraph) Begin(topRight, bottomLeft geom.Point) SuperRectangleIterator {
	start, ok := g.topRight[topRight]
	if !ok {
		start = NoNeighbor
	}
	return SuperRectangleIterator{goingLeft: start, goingDown: start, bottomLeft: bottomLeft, g: g}
}

// Done reports whether the iterator is exhausted.
func (it SuperRectangleIterator) Done() bool { return it.goingDown == NoNeighbor }

// Node returns the current node index.
func (it SuperRectangleIterator) Node() int { return it.goingDown }

// Next returns the iterator advanced by one node.
func (it SuperRectangleIterator) Next() SuperRectangleIterator {
	nodes := it.g.nodes
	switch {
	case nodes[it.goingDown].Base.BottomLeft().Y > it.bottomLeft.Y &&
		nodes[it.goingDown].Bottom != NoNeighbor:
		it.goingDown = nodes[it.goingDown].Bottom
	case nodes[it.goingLeft].Base.BottomLeft().X > it.bottomLeft.X &&
		nodes[it.goingLeft].Left != NoNeighbor:
		it.goingLeft = nodes[it.goingLeft].Left
		it.goingDown = it.goingLeft
	default:
		it.goingLeft = NoNeighbor
		it.goingDown = NoNeighbor
	}
	return it
}

// NodeHeights returns, for each node, the length of the downward chain below
// it: nodes without a bottom neighbor have height zero and each step up adds
// one.
func (g *BaseRectGraph) NodeHeights() []int {
	heights := make([]int, len(g.nodes))
	for i := range g.nodes {
		if g.nodes[i].Bottom != NoNeighbor {
			continue
		}
		h := 0
		for top := g.nodes[i].Top; top != NoNeighbor; top = g.nodes[top].Top {
			h++
			heights[top] = h
		}
	}
	return heights
}

// AllRectangles enumerates every rectangle that is a union of base
// rectangles. Each node acts as the top-right corner; walking left clamps
// the reachable depth to the shallowest column passed so far, and every
// (column, depth) pair below that bound yields one rectangle.
func (g *BaseRectGraph) AllRectangles() []geom.Rectangle {
	var rects []geom.Rectangle
	heights := g.NodeHeights()
	for i := range g.nodes {
		tr := g.nodes[i].Base.TopRight()
		maxHeight := heights[i]
		for left := i; left != NoNeighbor; left = g.nodes[left].Left {
			if heights[left] < maxHeight {
				maxHeight = heights[left]
			}
			down := left
			for h := 0; h <= maxHeight; h++ {
				rects = append(rects, geom.RectangleFromCorners(g.nodes[down].Base.BottomLeft(), tr))
				down = g.nodes[down].Bottom
			}
		}
	}
	return rects
}

// CountAllRectangles returns the number of rectangles AllRectangles would
// yield without materializing them.
func (g *BaseRectGraph) CountAllRectangles() int {
	count := 0
	heights := g.NodeHeights()
	for i := range g.nodes {
		maxHeight := heights[i]
		for left := i; left != NoNeighbor; left = g.nodes[left].Left {
			if heights[left] < maxHeight {
				maxHeight = heights[left]
			}
			count += maxHeight + 1
		}
	}
	return count
}

// RectanglesWithin enumerates every union-of-base rectangle contained in the
// query rectangle.
func (g *BaseRectGraph) RectanglesWithin(topRight, bottomLeft geom.Point) []geom.Rectangle {
	var rects []geom.Rectangle
	for it := g.Begin(topRight, bottomLeft); !it.Done(); it = it.Next() {
		tr := g.nodes[it.Node()].Base.TopRight()
		for jt := it; !jt.Done(); jt = jt.Next() {
			bl := g.nodes[jt.Node()].Base.BottomLeft()
			if bl.Y < tr.Y {
				rects = append(rects, geom.RectangleFromCorners(bl, tr))
			}
		}
	}
	return rects
}

// MaximalRectangles returns the union-of-base rectangles that cannot be
// extended in any direction. For every top-lacking node and depth, the span
// is widened while the neighboring columns are deep enough; the rectangle is
// maximal exactly when the shallowest column met equals the depth.
func (g *BaseRectGraph) MaximalRectangles() []geom.Rectangle {
	seen := make(map[geom.Rectangle]struct{})
	heights := g.NodeHeights()
	for i := range g.nodes {
		if g.nodes[i].Top != NoNeighbor {
			continue
		}
		for h := 0; h <= heights[i]; h++ {
			left, right := i, i
			minHeight := heights[i]
			for g.nodes[left].Left != NoNeighbor && heights[g.nodes[left].Left] >= h {
				left = g.nodes[left].Left
				if heights[left] < minHeight {
					minHeight = heights[left]
				}
			}
			for g.nodes[right].Right != NoNeighbor && heights[g.nodes[right].Right] >= h {
				right = g.nodes[right].Right
				if heights[right] < minHeight {
					minHeight = heights[right]
				}
			}
			if minHeight != h {
				continue
			}
			bottomLeft := left
			for j := 0; j < h; j++ {
				bottomLeft = g.nodes[bottomLeft].Bottom
			}
			rect := geom.RectangleFromCorners(g.nodes[bottomLeft].Base.BottomLeft(), g.nodes[right].Base.TopRight())
			seen[rect] = struct{}{}
		}
	}

	rects := make([]geom.Rectangle, 0, len(seen))
	for rect := range seen {
		rects = append(rects, rect)
	}
	sort.Slice(rects, func(i, j int) bool { return rects[i].Less(rects[j]) })
	return rects
}
