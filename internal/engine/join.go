package engine

import (
	"sort"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/logging"
)

// Joiner merges aligned neighboring cover rectangles into one when the
// joined rectangle is cheaper and still lies inside the polygon. Rectangles
// sharing a y-extent are candidates for horizontal joins, rectangles sharing
// an x-extent for vertical joins; within a chain a successful join keeps
// absorbing the next rectangle. Horizontal joins run first since joining
// changes the alignments.
type Joiner struct {
	chain
}

// NewJoiner wraps the previous provider with joining.
func NewJoiner(previous cover.Provider) *Joiner {
	return &Joiner{chain{previous: previous}}
}

type extent struct {
	lo int64
	hi int64
}

// CoverFor joins the previous provider's cover.
func (j *Joiner) CoverFor(polygon geom.PolygonWithHoles, costs cover.Costs, env *cover.RuntimeEnv) (cover.Cover, error) {
	c, err := j.previous.CoverFor(polygon, costs, env)
	if err != nil {
		return nil, err
	}

	log := logging.Logger()
	log.Info("running joiner", "rectangles", len(c))

	c = joinPass(polygon, c, costs, false)
	c = joinPass(polygon, c, costs, true)

	log.Info("joiner finished", "rectangles", len(c))
	return c, nil
}

// joinPass groups the cover by the extent orthogonal to the join direction,
// joins within each group, then compacts the cover.
func joinPass(polygon geom.PolygonWithHoles, c cover.Cover, costs cover.Costs, vertical bool) cover.Cover {
	groups := make(map[extent][]int)
	for i, r := range c {
		key := extent{lo: r.MinY(), hi: r.MaxY()}
		if vertical {
			key = extent{lo: r.MinX(), hi: r.MaxX()}
		}
		groups[key] = append(groups[key], i)
	}

	keys := make([]extent, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lo != keys[j].lo {
			return keys[i].lo < keys[j].lo
		}
		return keys[i].hi < keys[j].hi
	})

	joined := make(map[int]bool)
	for _, key := range keys {
		indices := groups[key]
		sort.Slice(indices, func(a, b int) bool {
			if vertical {
				return c[indices[a]].MinY() < c[indices[b]].MinY()
			}
			return c[indices[a]].MinX() < c[indices[b]].MinX()
		})
		for idx := range joinAlignedEntries(polygon, &c, indices, costs, vertical) {
			joined[idx] = true
		}
	}

	out := make(cover.Cover, 0, len(c)-len(joined))
	for i, r := range c {
		if !joined[i] {
			out = append(out, r)
		}
	}
	return out
}

// joinAlignedEntries tries to join consecutive rectangles of one aligned
// chain: in a chain a, b, c a successful join of a and b continues with ab
// against c, a failed one with b against c. Joined results are appended to
// the cover; the returned set holds the indices they replace.
func joinAlignedEntries(polygon geom.PolygonWithHoles, c *cover.Cover, indices []int,
	costs cover.Costs, vertical bool) map[int]struct{} {

	toDelete := make(map[int]struct{})
	if len(indices) <= 1 {
		return toDelete
	}

	prev := indices[0]
	for _, idx := range indices[1:] {
		separateCost := cover.TotalRectangleCost((*c)[prev], costs) +
			cover.TotalRectangleCost((*c)[idx], costs)
		proposed := (*c)[idx].Join((*c)[prev])
		proposedCost := cover.TotalRectangleCost(proposed, costs)

		if proposedCost < separateCost && joinIsValid(polygon, proposed, vertical) {
			toDelete[prev] = struct{}{}
			toDelete[idx] = struct{}{}
			*c = append(*c, proposed)
			prev = len(*c) - 1
		} else {
			prev = idx
		}
	}
	return toDelete
}

// joinIsValid accepts a joined rectangle that no polygon edge crosses.
// Edges parallel to the join axis cannot enter the joined interior without
// having crossed one of the original rectangles, so only the perpendicular
// half of the edges is checked.
func joinIsValid(polygon geom.PolygonWithHoles, rect geom.Rectangle, vertical bool) bool {
	for _, edge := range polygon.AllEdges() {
		if vertical == edge.IsVertical() {
			continue
		}
		if rect.FullyIntersects(edge) {
			return false
		}
	}
	return true
}
