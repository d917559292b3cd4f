package engine

import (
	"fmt"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// Greedy computes a cover by weighted greedy set cover over all rectangles
// enumerable from the base-rectangle graph. Each queue entry tracks the area
// it would cover that no picked rectangle covers yet; the entry with the
// lowest cost per uncovered unit wins each round.
type Greedy struct{}

// NewGreedy returns the greedy set-cover algorithm.
func NewGreedy() *Greedy { return &Greedy{} }

// TimedOut always reports false; the greedy algorithm runs to completion.
func (g *Greedy) TimedOut() bool { return false }

type queueEntry struct {
	rect          geom.Rectangle
	area          int64
	effectiveArea int64
	cost          int64
	costPerUnit   float64
}

func newQueueEntry(rect geom.Rectangle, costs cover.Costs) queueEntry {
	area := rect.Area()
	cost := cover.TotalRectangleCost(rect, costs)
	return queueEntry{
		rect:          rect,
		area:          area,
		effectiveArea: area,
		cost:          cost,
		costPerUnit:   float64(cost) / float64(area),
	}
}

// update subtracts from the entry's effective area whatever the picked
// rectangle newly covered. An entry fully contained in the picked rectangle
// is dead and gets effective area zero.
func (e *queueEntry) update(picked geom.Rectangle, newlyCovered []geom.Rectangle) {
	if !picked.Intersects(e.rect) {
		return
	}
	if picked.Contains(e.rect) {
		e.effectiveArea = 0
		return
	}
	for _, base := range newlyCovered {
		if e.rect.Contains(base) {
			e.effectiveArea -= base.Area()
		}
	}
	if e.effectiveArea == 0 {
		return
	}
	e.costPerUnit = float64(e.cost) / float64(e.effectiveArea)
}

// CoverFor computes the greedy cover.
func (g *Greedy) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	log := logging.Logger()
	log.Info("running greedy set cover algorithm")

	if err := ensureGraph(polygon, env); err != nil {
		return nil, err
	}
	nodes := env.Graph.Nodes()
	log.Debug("problem size", "base_rectangles", len(nodes),
		"enumerable_rectangles", env.Graph.CountAllRectangles())

	all := env.Graph.AllRectangles()
	queue := make([]queueEntry, 0, len(all))
	for _, rect := range all {
		queue = append(queue, newQueueEntry(rect, costs))
	}
	log.Debug("queued candidate rectangles", "count", len(queue))

	// Bootstrap with the largest rectangle: coverage first, cost later.
	best := 0
	for i := range queue {
		if queue[i].area > queue[best].area {
			best = i
		}
	}

	var c cover.Cover
	covered := make(map[geom.Rectangle]struct{})
	for {
		if len(queue) == 0 {
			return nil, fmt.Errorf("%w: greedy queue exhausted with %d/%d base rectangles covered",
				geom.ErrGeometryFailure, len(covered), len(nodes))
		}

		picked := queue[best].rect
		var newlyCovered []geom.Rectangle
		for it := env.Graph.Begin(picked.TopRight(), picked.BottomLeft()); !it.Done(); it = it.Next() {
			base := nodes[it.Node()].Base
			if _, ok := covered[base]; !ok {
				covered[base] = struct{}{}
				newlyCovered = append(newlyCovered, base)
			}
		}

		c = append(c, picked)
		queue[best] = queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		log.Debug("picked rectangle", "covered", len(covered), "total", len(nodes))
		if len(covered) == len(nodes) {
			break
		}

		best = -1
		for i := 0; i < len(queue); {
			queue[i].update(picked, newlyCovered)
			if queue[i].effectiveArea == 0 {
				queue[i] = queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				continue
			}
			if best < 0 ||
				queue[i].costPerUnit < queue[best].costPerUnit ||
				(queue[i].costPerUnit == queue[best].costPerUnit &&
					queue[i].effectiveArea > queue[best].effectiveArea) {
				best = i
			}
			i++
		}
	}

	log.Info("greedy set cover finished", "rectangles", len(c))
	return c, nil
}
