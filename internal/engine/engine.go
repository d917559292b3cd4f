// Package engine implements the cover-producing algorithms (strip,
// partition, greedy set cover), the postprocessor chain that iteratively
// improves a cover, and the runner that drives a provider over the polygons
// of a problem instance.
package engine

import (
	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
)

// ensureBaseRects materializes the polygon's base rectangles in the runtime
// environment if they are not there yet.
func ensureBaseRects(polygon geom.PolygonWithHoles, env *cover.RuntimeEnv) error {
	if len(env.BaseRects) > 0 {
		return nil
	}
	rects, err := cover.BaseRectangles(polygon)
	if err != nil {
		return err
	}
	env.BaseRects = rects
	return nil
}

// ensureGraph materializes the base-rectangle graph, extracting base
// rectangles first when needed.
func ensureGraph(polygon geom.PolygonWithHoles, env *cover.RuntimeEnv) error {
	if !env.Graph.Empty() {
		return nil
	}
	if err := ensureBaseRects(polygon, env); err != nil {
		return err
	}
	env.Graph.Build(env.BaseRects)
	return nil
}

// ensureCoverage materializes the per-node coverage counts for the given
// cover: how many cover rectangles fully contain each base rectangle.
func ensureCoverage(polygon geom.PolygonWithHoles, c cover.Cover, env *cover.RuntimeEnv) error {
	if env.CoverageCounts != nil {
		return nil
	}
	if err := ensureGraph(polygon, env); err != nil {
		return err
	}
	counts := make([]int, len(env.Graph.Nodes()))
	for _, rect := range c {
		for it := env.Graph.Begin(rect.TopRight(), rect.BottomLeft()); !it.Done(); it = it.Next() {
			counts[it.Node()]++
		}
	}
	env.CoverageCounts = counts
	return nil
}
