package export

import (
	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
)

// WriteDXF writes a CAD drawing of the run: the polygon boundaries on a
// BOUNDARY layer and every cover rectangle outline on a COVER layer.
func WriteDXF(path string, polygons []geom.PolygonWithHoles, rects cover.Cover) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer("BOUNDARY", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}
	for _, polygon := range polygons {
		for _, edge := range polygon.AllEdges() {
			if _, err := d.Line(
				float64(edge.Source.X), float64(edge.Source.Y), 0,
				float64(edge.Target.X), float64(edge.Target.Y), 0); err != nil {
				return err
			}
		}
	}

	if _, err := d.AddLayer("COVER", dxfcolor.Red, dxf.DefaultLineType, true); err != nil {
		return err
	}
	for _, r := range rects {
		edges := []geom.Segment{r.BottomEdge(), r.RightEdge(), r.TopEdge(), r.LeftEdge()}
		for _, edge := range edges {
			if _, err := d.Line(
				float64(edge.Source.X), float64(edge.Source.Y), 0,
				float64(edge.Target.X), float64(edge.Target.Y), 0); err != nil {
				return err
			}
		}
	}

	return d.SaveAs(path)
}
