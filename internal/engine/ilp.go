package engine

import (
	"errors"
	"time"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
)

// ErrUnsupported is returned when an exact ILP cover is requested but no
// solver backend is linked into the binary.
var ErrUnsupported = errors.New("ilp formulation unavailable: no solver backend is linked")

// ErrTimeout reports that a deadline-aware provider hit its per-polygon
// deadline. The runner surfaces it as a distinct validity state rather than
// aborting the run.
var ErrTimeout = errors.New("per-polygon timeout exceeded")

// ILP is the exact set-cover formulation over enumerated rectangles, or over
// all unit pixels when usePixels is set. The formulation needs an external
// MIP solver; without one every call fails with ErrUnsupported.
type ILP struct {
	usePixels bool
	timeout   time.Duration
	timedOut  bool
}

// NewILP returns the ILP front-end. A zero timeout means no deadline.
func NewILP(usePixels bool, timeout time.Duration) *ILP {
	return &ILP{usePixels: usePixels, timeout: timeout}
}

// TimedOut reports whether the last solve hit its deadline.
func (a *ILP) TimedOut() bool { return a.timedOut }

// CoverFor fails with ErrUnsupported: no solver is linked.
func (a *ILP) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	return nil, ErrUnsupported
}
