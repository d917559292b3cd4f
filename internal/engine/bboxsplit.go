package engine

import (
	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
)

// BBoxSplitter replaces a cover rectangle by the bounding boxes of the
// connected components of its uniquely covered area whenever that is
// cheaper.
type BBoxSplitter struct {
	chain
}

// NewBBoxSplitter wraps the previous provider with bounding-box splitting.
func NewBBoxSplitter(previous cover.Provider) *BBoxSplitter {
	return &BBoxSplitter{chain{previous: previous}}
}

// CoverFor applies bounding-box splitting to the previous provider's cover.
func (s *BBoxSplitter) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	c, err := s.previous.CoverFor(polygon, costs, env)
	if err != nil {
		return nil, err
	}
	return postprocessSplit(c, polygon, costs, env, splitToBoundingBoxes)
}

func splitToBoundingBoxes(rect geom.Rectangle, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	var replacement cover.Cover
	for _, component := range splitIntoPolygons(rect, env) {
		min, max := component.BBox()
		replacement = append(replacement, geom.RectangleFromCorners(min, max))
	}
	return replacement, nil
}
