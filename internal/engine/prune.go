package engine

import (
	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// Pruner removes fully redundant cover rectangles: those whose base
// rectangles are all covered by at least one other cover rectangle.
type Pruner struct {
	chain
}

// NewPruner wraps the previous provider with pruning.
func NewPruner(previous cover.Provider) *Pruner {
	return &Pruner{chain{previous: previous}}
}

// CoverFor prunes the previous provider's cover.
func (p *Pruner) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	c, err := p.previous.CoverFor(polygon, costs, env)
	if err != nil {
		return nil, err
	}

	log := logging.Logger()
	log.Info("running pruner", "rectangles", len(c))

	env.PixelInvalidated = true
	if err := ensureCoverage(polygon, c, env); err != nil {
		return nil, err
	}
	covered := env.CoverageCounts

	pruned := 0
	for i := 0; i < len(c); {
		tr, bl := c[i].TopRight(), c[i].BottomLeft()
		redundant := true
		for it := env.Graph.Begin(tr, bl); !it.Done(); it = it.Next() {
			if covered[it.Node()] == 1 {
				redundant = false
				break
			}
		}
		if !redundant {
			i++
			continue
		}
		for it := env.Graph.Begin(tr, bl); !it.Done(); it = it.Next() {
			covered[it.Node()]--
		}
		c[i] = c[len(c)-1]
		c = c[:len(c)-1]
		pruned++
	}

	log.Info("pruner finished", "pruned", pruned)
	return c, nil
}
