package engine

import (
	"sort"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// splitFunc proposes a replacement set for a single cover rectangle,
// covering at least its uniquely covered area.
type splitFunc func(rect geom.Rectangle, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error)

// postprocessSplit applies a splitter: each cover rectangle whose proposed
// split is strictly cheaper is replaced by it, and the coverage counts of
// base rectangles the replacement no longer covers are decremented.
// Replacements join the cover after the scan so they are not re-split in the
// same pass.
func postprocessSplit(c cover.Cover, polygon geom.PolygonWithHoles, costs cover.Costs,
	env *cover.RuntimeEnv, split splitFunc) (cover.Cover, error) {

	log := logging.Logger()
	if err := ensureCoverage(polygon, c, env); err != nil {
		return nil, err
	}
	env.PixelInvalidated = true

	var added cover.Cover
	for i := 0; i < len(c); {
		currentCost := cover.TotalRectangleCost(c[i], costs)
		replacement, err := split(c[i], costs, env)
		if err != nil {
			return nil, err
		}
		replacementCost := cover.TotalCoverCost(replacement, costs)

		if replacementCost >= currentCost {
			i++
			continue
		}
		log.Debug("split improves cover", "rectangle", c[i].String(),
			"old_cost", currentCost, "new_cost", replacementCost)
		added = append(added, replacement...)
		reduceCoveredAmount(c[i], replacement, env)
		c[i] = c[len(c)-1]
		c = c[:len(c)-1]
	}

	return append(c, added...), nil
}

// reduceCoveredAmount decrements the coverage of every base rectangle of the
// original rectangle that none of the replacement rectangles still covers.
func reduceCoveredAmount(original geom.Rectangle, replacement cover.Cover, env *cover.RuntimeEnv) {
	nodes := env.Graph.Nodes()
	for it := env.Graph.Begin(original.TopRight(), original.BottomLeft()); !it.Done(); it = it.Next() {
		base := nodes[it.Node()].Base
		stillCovered := false
		for _, r := range replacement {
			if r.Contains(base) {
				stillCovered = true
				break
			}
		}
		if !stillCovered {
			env.CoverageCounts[it.Node()]--
		}
	}
}

// uniquelyCoveredNodes returns the nodes inside the rectangle that no other
// cover rectangle covers.
func uniquelyCoveredNodes(rect geom.Rectangle, env *cover.RuntimeEnv) []int {
	var unique []int
	for it := env.Graph.Begin(rect.TopRight(), rect.BottomLeft()); !it.Done(); it = it.Next() {
		if env.CoverageCounts[it.Node()] == 1 {
			unique = append(unique, it.Node())
		}
	}
	return unique
}

// splitIntoPolygons unions the rectangle's uniquely covered base rectangles
// into connected polygons, possibly with holes.
func splitIntoPolygons(rect geom.Rectangle, env *cover.RuntimeEnv) []geom.PolygonWithHoles {
	nodes := env.Graph.Nodes()
	unique := uniquelyCoveredNodes(rect, env)
	sort.Slice(unique, func(i, j int) bool {
		return nodes[unique[i]].Base.Less(nodes[unique[j]].Base)
	})

	bases := make([]geom.Rectangle, 0, len(unique))
	for _, id := range unique {
		bases = append(bases, nodes[id].Base)
	}
	return geom.UnionRectangles(bases)
}
