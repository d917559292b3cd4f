package cover

import (
	"errors"
	"sort"

	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// ErrCoverInvalid reports that a computed cover does not equal the input
// polygon.
var ErrCoverInvalid = errors.New("cover does not equal the input polygon")

// EnsureValid returns ErrCoverInvalid when the cover does not equal the
// polygon.
func EnsureValid(c Cover, polygon geom.PolygonWithHoles) error {
	if !IsValidCover(c, polygon) {
		return ErrCoverInvalid
	}
	return nil
}

func sortedCopy(c Cover) Cover {
	rects := make(Cover, len(c))
	copy(rects, c)
	sort.Slice(rects, func(i, j int) bool { return rects[i].Less(rects[j]) })
	return rects
}

// IsValidCover reports whether the rectangles cover the polygon exactly:
// their union must form a single polygon whose symmetric difference with the
// input is empty.
func IsValidCover(c Cover, polygon geom.PolygonWithHoles) bool {
	log := logging.Logger()
	log.Debug("verifying cover", "rectangles", len(c))

	rects := sortedCopy(c)
	for _, r := range rects {
		if r.MaxX() <= r.MinX() || r.MaxY() <= r.MinY() {
			return false
		}
	}

	joined := geom.UnionRectangles(rects)
	if len(joined) != 1 {
		log.Debug("cover union is not a single polygon", "components", len(joined))
		return false
	}

	diff := geom.SymmetricDifference(polygon, joined[0])
	return len(diff) == 0
}

// VerifyCover is the subtractive second opinion: every rectangle must lie
// inside the polygon, and subtracting all rectangles from the polygon must
// leave nothing.
func VerifyCover(c Cover, polygon geom.PolygonWithHoles) bool {
	rects := sortedCopy(c)

	uncovered := []geom.PolygonWithHoles{polygon}
	for _, r := range rects {
		if r.MaxX() <= r.MinX() || r.MaxY() <= r.MinY() {
			return false
		}
		rectPoly := geom.PolygonWithHoles{Outer: r.Polygon()}
		if len(geom.Difference(rectPoly, polygon)) != 0 {
			// Rectangle pokes outside the polygon.
			return false
		}
		var remaining []geom.PolygonWithHoles
		for _, uc := range uncovered {
			remaining = append(remaining, geom.Difference(uc, rectPoly)...)
		}
		uncovered = remaining
	}
	return len(uncovered) == 0
}
