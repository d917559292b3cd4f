package cover

import (
	"errors"
	"fmt"

	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// ErrEmptyArrangement is returned when base-rectangle extraction is asked to
// slice a polygon that induces no cuts: a hole-free quadrilateral is its own
// cover and must be special-cased by the caller.
var ErrEmptyArrangement = errors.New("polygon has no concave vertices and no holes")

// PickCuts returns the two cut segments of a concave vertex, each shot along
// one open direction to the closest boundary intersection.
func PickCuts(index *EdgeIndex, vertex ConcaveVertex) ([]geom.Segment, error) {
	cuts := make([]geom.Segment, 0, 2)
	for _, dir := range vertex.Open {
		hit, ok := index.ClosestIntersection(vertex.Point, dir)
		if !ok {
			return nil, fmt.Errorf("%w: cut ray from (%d, %d) leaves the polygon",
				geom.ErrGeometryFailure, vertex.Point.X, vertex.Point.Y)
		}
		cuts = append(cuts, geom.Segment{Source: vertex.Point, Target: hit})
	}
	return cuts, nil
}

// Cuts collects the cut segments of every concave vertex of the polygon.
func Cuts(polygon geom.PolygonWithHoles) ([]geom.Segment, error) {
	concave := FindConcaveVertices(polygon)
	if len(concave) == 0 {
		return nil, nil
	}
	index := NewEdgeIndex(polygon)
	var cuts []geom.Segment
	for _, vertex := range SortedConcaveVertices(concave) {
		picked, err := PickCuts(index, vertex)
		if err != nil {
			return nil, err
		}
		cuts = append(cuts, picked...)
	}
	return cuts, nil
}

// BaseRectangles slices the polygon into its base rectangles: the bounded
// rectangular faces of the planar arrangement of the polygon's edges and the
// cuts shot from its concave vertices.
func BaseRectangles(polygon geom.PolygonWithHoles) ([]geom.Rectangle, error) {
	log := logging.Logger()

	if len(polygon.Outer) == 4 && !polygon.HasHoles() {
		return nil, ErrEmptyArrangement
	}

	cuts, err := Cuts(polygon)
	if err != nil {
		return nil, err
	}
	if len(cuts) == 0 {
		return nil, ErrEmptyArrangement
	}
	log.Debug("picked cuts", "count", len(cuts))

	arr, err := geom.NewArrangement(append(polygon.AllEdges(), cuts...))
	if err != nil {
		return nil, err
	}

	rects := ParseRectangles(arr, polygon)
	log.Debug("extracted base rectangles", "count", len(rects))
	return rects, nil
}

// ParseRectangles walks every bounded face of the arrangement and keeps the
// rectangular ones. A face is a rectangle when its boundary changes
// direction exactly four times around the cycle, ignoring 180 degree
// reversals at subdivision vertices. Faces whose bounding box coincides with
// a hole's bounding box are the holes themselves and are discarded.
func ParseRectangles(arr *geom.Arrangement, polygon geom.PolygonWithHoles) []geom.Rectangle {
	type bbox struct{ min, max geom.Point }
	holeBoxes := make([]bbox, 0, len(polygon.Holes))
	for _, hole := range polygon.Holes {
		min, max := hole.BBox()
		holeBoxes = append(holeBoxes, bbox{min, max})
	}

	var rects []geom.Rectangle
	for _, face := range arr.BoundedFaces() {
		if !faceIsRectangle(face) {
			continue
		}
		min, max := face.BBox()
		isHole := false
		for _, hb := range holeBoxes {
			if hb.min == min && hb.max == max {
				isHole = true
				break
			}
		}
		if isHole {
			continue
		}
		rects = append(rects, geom.RectangleFromCorners(min, max))
	}
	return rects
}

func faceIsRectangle(face geom.Polygon) bool {
	edges := face.Edges()
	current := edges[len(edges)-1].Direction().Normalize()
	changes := 0
	for _, e := range edges {
		d := e.Direction().Normalize()
		if d != current && d != current.Rot180() {
			changes++
			if changes > 4 {
				return false
			}
		}
		current = d
	}
	return changes == 4
}
