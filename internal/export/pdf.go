package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/WeRecCover/WeRecCover/internal/engine"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/instance"
)

// rectColor is an RGB color for a cover rectangle.
type rectColor struct {
	R, G, B int
}

var rectColors = []rectColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 28.0
)

// WritePDF renders one page per covered polygon, showing the polygon
// boundary and the cover rectangles, followed by a summary page carrying the
// run totals and a QR stamp of the record.
func WritePDF(path string, inst *instance.Instance, results []engine.Result, rec Record) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	covered := nonTrivialPolygons(inst.Polygons)
	for i, r := range results[1:] {
		if i >= len(covered) {
			break
		}
		pdf.AddPage()
		renderPolygonPage(pdf, covered[i], r, i+1, len(results)-1)
	}

	pdf.AddPage()
	if err := renderSummaryPage(pdf, rec); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

// nonTrivialPolygons filters out the hole-free rectangles the runner skips,
// so pages pair up with results.
func nonTrivialPolygons(polygons []geom.PolygonWithHoles) []geom.PolygonWithHoles {
	var out []geom.PolygonWithHoles
	for _, p := range polygons {
		if len(p.Outer) == 4 && !p.HasHoles() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func renderPolygonPage(pdf *fpdf.Fpdf, polygon geom.PolygonWithHoles, result engine.Result, num, total int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Polygon %d/%d: %d rectangles, cost %d", num, total, result.CoverSize, result.Cost.Sum())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Creation cost: %d | Area cost: %d | Time: %s | Validity: %s",
		result.Cost.Creation, result.Cost.Area, result.ExecutionTime, result.Validity)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	min, max := polygon.BBox()
	width := float64(max.X - min.X)
	height := float64(max.Y - min.Y)

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := drawWidth / width
	if s := drawHeight / height; s < scale {
		scale = s
	}

	offsetX := marginLeft + (drawWidth-width*scale)/2
	offsetY := drawAreaTop
	// PDF y grows downward; flip around the polygon's top edge.
	toPage := func(p geom.Point) (float64, float64) {
		return offsetX + float64(p.X-min.X)*scale, offsetY + float64(max.Y-p.Y)*scale
	}

	// Cover rectangles first, boundary on top.
	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetAlpha(0.55, "Normal")
	for i, r := range result.Cover {
		col := rectColors[i%len(rectColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		x, y := toPage(r.TopLeft())
		pdf.Rect(x, y, float64(r.Width())*scale, float64(r.Height())*scale, "FD")
	}
	pdf.SetAlpha(1.0, "Normal")

	pdf.SetLineWidth(0.6)
	pdf.SetDrawColor(0, 0, 0)
	for _, edge := range polygon.AllEdges() {
		x1, y1 := toPage(edge.Source)
		x2, y2 := toPage(edge.Target)
		pdf.Line(x1, y1, x2, y2)
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, rec Record) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Run summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Run: %s", rec.RunID),
		fmt.Sprintf("Instance: %s", rec.InstanceName),
		fmt.Sprintf("Algorithm: %s", rec.Algorithm),
		fmt.Sprintf("Costs: creation %d, area %d", rec.CreationCost, rec.AreaCost),
		fmt.Sprintf("Cover size: %d", rec.CoverSize),
		fmt.Sprintf("Total cost: %d (creation %d, area %d)", rec.TotalCost, rec.TotalCreationCost, rec.TotalAreaCost),
		fmt.Sprintf("Execution time: %d ms", rec.ExecutionTimeMilliseconds),
		fmt.Sprintf("Valid: %s", validityString(rec.IsValid)),
		fmt.Sprintf("Started: %s", rec.TimeStart),
		fmt.Sprintf("Finished: %s", rec.TimeEnd),
	}
	y := marginTop + headerHeight + 4
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, 6, line, "", 1, "L", false, 0, "")
		y += 6.5
	}

	// QR stamp with the machine-readable run summary.
	summary := map[string]any{
		"run_id":     rec.RunID,
		"instance":   rec.InstanceName,
		"algorithm":  rec.Algorithm,
		"cover_size": rec.CoverSize,
		"total_cost": rec.TotalCost,
		"valid":      rec.IsValid,
	}
	qrData, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generating QR code: %w", err)
	}
	imgName := fmt.Sprintf("qr_%s", rec.RunID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	return nil
}
