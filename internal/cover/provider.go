package cover

import "github.com/WeRecCover/WeRecCover/internal/geom"

// Provider computes a rectangle cover for a polygon. Algorithms produce an
// initial cover; postprocessors wrap another provider and transform its
// result. Implementations may consult and populate the runtime environment.
type Provider interface {
	CoverFor(polygon geom.PolygonWithHoles, costs Costs, env *RuntimeEnv) (Cover, error)

	// TimedOut reports whether the last CoverFor call was cut short by a
	// deadline. Only deadline-aware providers ever return true.
	TimedOut() bool
}
