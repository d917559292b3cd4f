package engine

import (
	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
)

// PartitionSplitter replaces a cover rectangle by an optimal partition of
// the connected components of its uniquely covered area whenever that is
// cheaper. Unlike the bounding-box splitter the replacement never covers
// anything outside the original rectangle.
type PartitionSplitter struct {
	chain
	partition *Partition
}

// NewPartitionSplitter wraps the previous provider with partition splitting.
func NewPartitionSplitter(previous cover.Provider) *PartitionSplitter {
	return &PartitionSplitter{chain: chain{previous: previous}, partition: NewPartition()}
}

// CoverFor applies partition splitting to the previous provider's cover.
func (s *PartitionSplitter) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	c, err := s.previous.CoverFor(polygon, costs, env)
	if err != nil {
		return nil, err
	}
	split := func(rect geom.Rectangle, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
		var replacement cover.Cover
		for _, component := range splitIntoPolygons(rect, env) {
			// The partition algorithm reads nothing from the environment, so
			// the enclosing polygon's environment can be passed through.
			partitioned, err := s.partition.CoverFor(component, costs, env)
			if err != nil {
				return nil, err
			}
			replacement = append(replacement, partitioned...)
		}
		return replacement, nil
	}
	return postprocessSplit(c, polygon, costs, env, split)
}
