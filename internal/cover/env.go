package cover

import "github.com/WeRecCover/WeRecCover/internal/geom"

// RuntimeEnv carries the per-polygon structures shared by an algorithm and
// its postprocessor chain. Empty fields mean "not yet computed"; whoever
// needs a structure first materializes it. Derived structures depend only on
// structures built before them, never on siblings.
type RuntimeEnv struct {
	BaseRects      []geom.Rectangle
	CoverageCounts []int
	Graph          BaseRectGraph

	// PixelInvalidated is a one-shot flag for external pixel-coverage
	// callers: set whenever a postprocessor changes which rectangles cover
	// which area.
	PixelInvalidated bool
}

// Clear resets the environment between polygons.
func (e *RuntimeEnv) Clear() {
	e.BaseRects = nil
	e.CoverageCounts = nil
	e.Graph.Clear()
	e.PixelInvalidated = false
}
