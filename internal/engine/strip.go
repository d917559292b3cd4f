package engine

import (
	"sort"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// Strip covers the polygon with maximal horizontal strips: one rectangle per
// top-lacking node of the base-rectangle graph, expanded sideways while the
// neighboring columns are at least as deep and extended to the bottom of its
// span. Linear in the graph size.
type Strip struct{}

// NewStrip returns the strip algorithm.
func NewStrip() *Strip { return &Strip{} }

// TimedOut always reports false; the strip algorithm runs to completion.
func (s *Strip) TimedOut() bool { return false }

// CoverFor computes the strip cover.
func (s *Strip) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	log := logging.Logger()
	log.Info("running strip algorithm")

	if err := ensureGraph(polygon, env); err != nil {
		return nil, err
	}
	nodes := env.Graph.Nodes()
	heights := env.Graph.NodeHeights()

	seen := make(map[geom.Rectangle]struct{})
	for i := range nodes {
		if nodes[i].Top != cover.NoNeighbor {
			continue
		}
		h := heights[i]
		left := i
		for nodes[left].Left != cover.NoNeighbor && heights[nodes[left].Left] >= h {
			left = nodes[left].Left
		}
		right := i
		for nodes[right].Right != cover.NoNeighbor && heights[nodes[right].Right] >= h {
			right = nodes[right].Right
		}
		bottomLeft := left
		for j := 0; j < h; j++ {
			bottomLeft = nodes[bottomLeft].Bottom
		}
		strip := geom.RectangleFromCorners(nodes[bottomLeft].Base.BottomLeft(), nodes[right].Base.TopRight())
		seen[strip] = struct{}{}
	}

	c := make(cover.Cover, 0, len(seen))
	for rect := range seen {
		c = append(c, rect)
	}
	sort.Slice(c, func(i, j int) bool { return c[i].Less(c[j]) })

	log.Info("strip algorithm finished", "rectangles", len(c))
	return c, nil
}
