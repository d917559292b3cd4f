package engine

import (
	"errors"
	"time"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// Validity is the verification outcome of one polygon's cover.
type Validity int

const (
	Invalid Validity = iota
	Valid
	Unchecked
	TimedOut
)

func (v Validity) String() string {
	switch v {
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	case TimedOut:
		return "timeout"
	default:
		return "unchecked"
	}
}

// Result is the outcome of running a provider on one polygon. Index zero of
// a run's result slice aggregates all polygons.
type Result struct {
	CoverSize     int
	Cost          cover.Costs
	ExecutionTime time.Duration
	Validity      Validity
	Cover         cover.Cover
	Err           error
}

// Run drives the provider over every polygon. Hole-free quadrilaterals are
// rectangles with a trivial cover and are skipped. Verification time does
// not count toward execution time. Per-polygon errors are recorded and the
// run continues with the next polygon; results[0] carries the totals.
func Run(provider cover.Provider, polygons []geom.PolygonWithHoles, costs cover.Costs, verify bool) []Result {
	log := logging.Logger()

	results := make([]Result, 1, len(polygons)+1)
	results[0].Validity = Unchecked
	if verify {
		results[0].Validity = Valid
	}

	env := &cover.RuntimeEnv{}
	skipped := 0
	for i, polygon := range polygons {
		if len(polygon.Outer) == 4 && !polygon.HasHoles() {
			log.Info("polygon is a hole-free rectangle, skipping", "polygon", i+1)
			skipped++
			continue
		}

		env.Clear()
		log.Info("computing cover", "polygon", i+1, "total", len(polygons))

		start := time.Now()
		c, err := provider.CoverFor(polygon, costs, env)
		duration := time.Since(start)

		validity := Unchecked
		switch {
		case provider.TimedOut() || errors.Is(err, ErrTimeout):
			validity = TimedOut
		case err != nil:
			log.Warn("cover computation failed", "polygon", i+1, "error", err)
			validity = Invalid
		case verify:
			validity = Valid
			if verr := cover.EnsureValid(c, polygon); verr != nil {
				validity = Invalid
				err = verr
			}
		}

		cost := cover.CoverCost(c, costs)
		log.Info("finished polygon", "duration_ns", duration.Nanoseconds(), "validity", validity.String())

		results = append(results, Result{
			CoverSize:     len(c),
			Cost:          cost,
			ExecutionTime: duration,
			Validity:      validity,
			Cover:         c,
			Err:           err,
		})

		results[0].CoverSize += len(c)
		results[0].Cost.Add(cost)
		results[0].ExecutionTime += duration
		if validity == TimedOut {
			results[0].Validity = TimedOut
		} else if validity == Invalid && results[0].Validity != TimedOut {
			results[0].Validity = Invalid
		}
	}

	log.Info("run finished", "skipped_trivial", skipped)
	return results
}

// ExitCode folds the per-polygon validities into the process exit code: bit
// one is set when any cover failed verification, bit two when any polygon
// timed out.
func ExitCode(results []Result) int {
	code := 0
	for _, r := range results[1:] {
		if r.Validity == Invalid {
			code |= 1
		}
		if r.Validity == TimedOut {
			code |= 2
		}
	}
	return code
}
