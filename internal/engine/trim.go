package engine

import (
	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// Trimmer shrinks each cover rectangle's borders inward while the row or
// column of base rectangles just inside a border is covered elsewhere too.
// It walks the base-rectangle graph border by border and stops at the first
// one containing a uniquely covered base. Assumes no fully redundant
// rectangles remain, so prune first.
type Trimmer struct {
	chain
}

// NewTrimmer wraps the previous provider with trimming.
func NewTrimmer(previous cover.Provider) *Trimmer {
	return &Trimmer{chain{previous: previous}}
}

// CoverFor trims the previous provider's cover. Sides are processed top,
// left, bottom, right.
func (t *Trimmer) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	c, err := t.previous.CoverFor(polygon, costs, env)
	if err != nil {
		return nil, err
	}

	logging.Logger().Info("running trimmer", "rectangles", len(c))

	env.PixelInvalidated = true
	if err := ensureCoverage(polygon, c, env); err != nil {
		return nil, err
	}

	for i := range c {
		trimTop(&c[i], &env.Graph, env.CoverageCounts)
		trimLeft(&c[i], &env.Graph, env.CoverageCounts)
		trimBottom(&c[i], &env.Graph, env.CoverageCounts)
		trimRight(&c[i], &env.Graph, env.CoverageCounts)
	}
	return c, nil
}

// trimTop walks the rectangle's top row right to left. A row where every
// base is covered more than once is shaved off and the walk restarts one row
// lower.
func trimTop(rect *geom.Rectangle, g *cover.BaseRectGraph, coverage []int) {
	nodes := g.Nodes()
	curr, ok := g.TopRightMap()[rect.TopRight()]
	if !ok {
		return
	}
	for {
		rowAnchor := curr
		topLeft := rect.TopLeft()
		var seen []int
		redundant := true
		for {
			if coverage[curr] == 1 {
				redundant = false
				break
			}
			seen = append(seen, curr)
			if nodes[curr].Base.TopLeft() == topLeft {
				break
			}
			curr = nodes[curr].Left
			if curr == cover.NoNeighbor {
				redundant = false
				break
			}
		}
		if !redundant {
			return
		}
		rect.ShrinkDown(nodes[rowAnchor].Base.Height())
		curr = nodes[rowAnchor].Bottom
		for _, idx := range seen {
			coverage[idx]--
		}
		if curr == cover.NoNeighbor {
			return
		}
	}
}

// trimLeft walks the rectangle's left column bottom to top.
func trimLeft(rect *geom.Rectangle, g *cover.BaseRectGraph, coverage []int) {
	nodes := g.Nodes()
	curr, ok := g.BottomLeftMap()[rect.BottomLeft()]
	if !ok {
		return
	}
	for {
		columnAnchor := curr
		topLeft := rect.TopLeft()
		var seen []int
		redundant := true
		for {
			if coverage[curr] == 1 {
				redundant = false
				break
			}
			seen = append(seen, curr)
			if nodes[curr].Base.TopLeft() == topLeft {
				break
			}
			curr = nodes[curr].Top
			if curr == cover.NoNeighbor {
				redundant = false
				break
			}
		}
		if !redundant {
			return
		}
		rect.ShrinkLeft(nodes[columnAnchor].Base.Width())
		curr = nodes[columnAnchor].Right
		for _, idx := range seen {
			coverage[idx]--
		}
		if curr == cover.NoNeighbor {
			return
		}
	}
}

// trimBottom walks the rectangle's bottom row left to right.
func trimBottom(rect *geom.Rectangle, g *cover.BaseRectGraph, coverage []int) {
	nodes := g.Nodes()
	curr, ok := g.BottomLeftMap()[rect.BottomLeft()]
	if !ok {
		return
	}
	for {
		rowAnchor := curr
		bottomRight := rect.BottomRight()
		var seen []int
		redundant := true
		for {
			if coverage[curr] == 1 {
				redundant = false
				break
			}
			seen = append(seen, curr)
			if nodes[curr].Base.BottomRight() == bottomRight {
				break
			}
			curr = nodes[curr].Right
			if curr == cover.NoNeighbor {
				redundant = false
				break
			}
		}
		if !redundant {
			return
		}
		rect.ShrinkUp(nodes[rowAnchor].Base.Height())
		curr = nodes[rowAnchor].Top
		for _, idx := range seen {
			coverage[idx]--
		}
		if curr == cover.NoNeighbor {
			return
		}
	}
}

// trimRight walks the rectangle's right column top to bottom.
func trimRight(rect *geom.Rectangle, g *cover.BaseRectGraph, coverage []int) {
	nodes := g.Nodes()
	curr, ok := g.TopRightMap()[rect.TopRight()]
	if !ok {
		return
	}
	for {
		columnAnchor := curr
		bottomRight := rect.BottomRight()
		var seen []int
		redundant := true
		for {
			if coverage[curr] == 1 {
				redundant = false
				break
			}
			seen = append(seen, curr)
			if nodes[curr].Base.BottomRight() == bottomRight {
				break
			}
			curr = nodes[curr].Bottom
			if curr == cover.NoNeighbor {
				redundant = false
				break
			}
		}
		if !redundant {
			return
		}
		rect.ShrinkRight(nodes[columnAnchor].Base.Width())
		curr = nodes[columnAnchor].Left
		for _, idx := range seen {
			coverage[idx]--
		}
		if curr == cover.NoNeighbor {
			return
		}
	}
}
