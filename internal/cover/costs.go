// Package cover holds the core entities of the rectilinear polygon covering
// problem: covers and their costs, the runtime environment threaded through
// an algorithm/postprocessor chain, concave-vertex analysis, base-rectangle
// extraction and the base-rectangle graph.
package cover

import "github.com/WeRecCover/WeRecCover/internal/geom"

// Cover is a multiset of rectangles. It is valid for a polygon when the
// union of its rectangles equals the polygon exactly; rectangles may
// overlap.
type Cover = []geom.Rectangle

// Costs holds the cost model of a problem instance: a fixed cost per created
// rectangle and a cost per unit of rectangle area.
type Costs struct {
	Creation int64 `json:"creation_cost"`
	Area     int64 `json:"area_cost"`
}

// Add accumulates other into c.
func (c *Costs) Add(other Costs) {
	c.Creation += other.Creation
	c.Area += other.Area
}

// Sum returns the combined creation and area cost.
func (c Costs) Sum() int64 { return c.Creation + c.Area }

// RectangleCost returns the creation and area cost a rectangle incurs.
func RectangleCost(r geom.Rectangle, costs Costs) Costs {
	return Costs{Creation: costs.Creation, Area: costs.Area * r.Area()}
}

// CoverCost returns the accumulated creation and area cost of a cover.
func CoverCost(cover Cover, costs Costs) Costs {
	var total Costs
	for _, r := range cover {
		total.Add(RectangleCost(r, costs))
	}
	return total
}

// TotalRectangleCost returns the total cost of a single rectangle.
func TotalRectangleCost(r geom.Rectangle, costs Costs) int64 {
	return RectangleCost(r, costs).Sum()
}

// TotalCoverCost returns the total cost of a cover.
func TotalCoverCost(cover Cover, costs Costs) int64 {
	return CoverCost(cover, costs).Sum()
}
