package engine

import (
	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// FullJoiner considers every pair of cover rectangles, not just aligned
// ones. Each pass applies the single join with the largest cost reduction
// that stays inside the polygon; passes repeat until no join improves the
// cover. Quadratic per pass, and it terminates because every pass strictly
// decreases cost.
type FullJoiner struct {
	chain
}

// NewFullJoiner wraps the previous provider with exhaustive joining.
func NewFullJoiner(previous cover.Provider) *FullJoiner {
	return &FullJoiner{chain{previous: previous}}
}

// CoverFor exhaustively joins the previous provider's cover.
func (f *FullJoiner) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	c, err := f.previous.CoverFor(polygon, costs, env)
	if err != nil {
		return nil, err
	}

	log := logging.Logger()
	log.Info("running full joiner", "rectangles", len(c))

	for {
		bestA, bestB := -1, -1
		var bestJoined geom.Rectangle
		var bestReduction int64

		for a := 0; a < len(c); a++ {
			for b := a + 1; b < len(c); b++ {
				joined := c[a].Join(c[b])
				separateCost := cover.TotalRectangleCost(c[a], costs) + cover.TotalRectangleCost(c[b], costs)
				joinedCost := cover.TotalRectangleCost(joined, costs)
				if joinedCost >= separateCost {
					continue
				}
				reduction := separateCost - joinedCost
				if bestA >= 0 && reduction <= bestReduction {
					continue
				}
				if !fullJoinIsValid(polygon, joined) {
					continue
				}
				bestA, bestB = a, b
				bestJoined = joined
				bestReduction = reduction
			}
		}

		if bestA < 0 {
			break
		}
		// Remove the higher index first so the lower one stays valid.
		c[bestB] = c[len(c)-1]
		c = c[:len(c)-1]
		c[bestA] = c[len(c)-1]
		c = c[:len(c)-1]
		c = append(c, bestJoined)
	}

	log.Info("full joiner finished", "rectangles", len(c))
	return c, nil
}

// fullJoinIsValid accepts a joined rectangle whose interior no polygon edge
// crosses.
func fullJoinIsValid(polygon geom.PolygonWithHoles, rect geom.Rectangle) bool {
	for _, edge := range polygon.AllEdges() {
		if rect.FullyIntersects(edge) {
			return false
		}
	}
	return true
}
