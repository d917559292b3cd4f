// Package export writes run results to the filesystem: a JSON object or CSV
// rows per run, an XLSX workbook, a PDF of the cover layouts and a DXF
// drawing of the cover rectangles.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/engine"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/instance"
)

// PolygonResult is one polygon's slice of a run record.
type PolygonResult struct {
	Polygon                   int   `json:"polygon"`
	CoverSize                 int   `json:"cover_size"`
	TotalCost                 int64 `json:"total_cost"`
	TotalCreationCost         int64 `json:"total_creation_cost"`
	TotalAreaCost             int64 `json:"total_area_cost"`
	ExecutionTimeSeconds      int64 `json:"execution_time_seconds"`
	ExecutionTimeMilliseconds int64 `json:"execution_time_milliseconds"`
	ExecutionTimeNanoseconds  int64 `json:"execution_time_nanoseconds"`
	IsValid                   any   `json:"is_valid"`
}

// Record is the full result of one run on one instance.
type Record struct {
	RunID                     string          `json:"run_id"`
	TimeStart                 string          `json:"time_start"`
	TimeEnd                   string          `json:"time_end"`
	Algorithm                 string          `json:"algorithm"`
	InstanceName              string          `json:"instance_name"`
	InputPolygon              string          `json:"input_polygon"`
	CreationCost              int64           `json:"creation_cost"`
	AreaCost                  int64           `json:"area_cost"`
	Cover                     string          `json:"cover"`
	CoverSize                 int             `json:"cover_size"`
	TotalCost                 int64           `json:"total_cost"`
	TotalCreationCost         int64           `json:"total_creation_cost"`
	TotalAreaCost             int64           `json:"total_area_cost"`
	ExecutionTimeSeconds      int64           `json:"execution_time_seconds"`
	ExecutionTimeMilliseconds int64           `json:"execution_time_milliseconds"`
	ExecutionTimeNanoseconds  int64           `json:"execution_time_nanoseconds"`
	IsValid                   any             `json:"is_valid"`
	Polygons                  []PolygonResult `json:"polygon"`
}

func validityValue(v engine.Validity) any {
	switch v {
	case engine.Valid:
		return true
	case engine.Invalid:
		return false
	case engine.TimedOut:
		return "timeout"
	default:
		return nil
	}
}

func validityString(v any) string {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	default:
		return "null"
	}
}

// NewRecord assembles the run record from an instance and its results.
// results[0] must be the aggregate entry.
func NewRecord(inst *instance.Instance, results []engine.Result, algorithmFullName, timeStart, timeEnd string) Record {
	var coverRects []geom.Rectangle
	for _, r := range results {
		coverRects = append(coverRects, r.Cover...)
	}

	rec := Record{
		RunID:                     uuid.New().String()[:8],
		TimeStart:                 timeStart,
		TimeEnd:                   timeEnd,
		Algorithm:                 algorithmFullName,
		InstanceName:              inst.Name,
		InputPolygon:              instance.MultiPolygonWKT(inst.Polygons),
		CreationCost:              inst.Costs.Creation,
		AreaCost:                  inst.Costs.Area,
		Cover:                     instance.RectanglesWKT(coverRects),
		CoverSize:                 results[0].CoverSize,
		TotalCost:                 results[0].Cost.Sum(),
		TotalCreationCost:         results[0].Cost.Creation,
		TotalAreaCost:             results[0].Cost.Area,
		ExecutionTimeSeconds:      int64(results[0].ExecutionTime.Seconds()),
		ExecutionTimeMilliseconds: results[0].ExecutionTime.Milliseconds(),
		ExecutionTimeNanoseconds:  results[0].ExecutionTime.Nanoseconds(),
		IsValid:                   validityValue(results[0].Validity),
	}

	for i, r := range results[1:] {
		rec.Polygons = append(rec.Polygons, PolygonResult{
			Polygon:                   i + 1,
			CoverSize:                 r.CoverSize,
			TotalCost:                 r.Cost.Sum(),
			TotalCreationCost:         r.Cost.Creation,
			TotalAreaCost:             r.Cost.Area,
			ExecutionTimeSeconds:      int64(r.ExecutionTime.Seconds()),
			ExecutionTimeMilliseconds: r.ExecutionTime.Milliseconds(),
			ExecutionTimeNanoseconds:  r.ExecutionTime.Nanoseconds(),
			IsValid:                   validityValue(r.Validity),
		})
	}
	return rec
}

// Write stores the record at path, choosing the format by extension: .csv
// appends rows (writing the header only for a new file), .xlsx writes a
// workbook, anything else writes a single JSON object. Parent directories
// are created as needed.
func Write(path string, rec Record) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(path, rec)
	case ".xlsx":
		return WriteXLSX(path, rec)
	default:
		return writeJSON(path, rec)
	}
}

func writeJSON(path string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// csvHeader lists the columns of one result row; index zero rows aggregate a
// whole run.
var csvHeader = []string{
	"time_start", "time_end", "instance_name", "num_polygons", "polygon_id",
	"algorithm", "creation_cost", "area_cost", "cover_size",
	"total_creation_cost", "total_area_cost", "total_cost",
	"execution_time_seconds", "execution_time_milliseconds", "execution_time_nanoseconds",
	"valid",
}

// csvRows renders the aggregate row followed by one row per polygon.
func csvRows(rec Record) [][]string {
	row := func(id int, coverSize int, creation, area int64, secs, millis, nanos int64, valid any) []string {
		return []string{
			rec.TimeStart, rec.TimeEnd, rec.InstanceName,
			strconv.Itoa(len(rec.Polygons)), strconv.Itoa(id),
			rec.Algorithm,
			strconv.FormatInt(rec.CreationCost, 10), strconv.FormatInt(rec.AreaCost, 10),
			strconv.Itoa(coverSize),
			strconv.FormatInt(creation, 10), strconv.FormatInt(area, 10),
			strconv.FormatInt(creation+area, 10),
			strconv.FormatInt(secs, 10), strconv.FormatInt(millis, 10), strconv.FormatInt(nanos, 10),
			validityString(valid),
		}
	}

	rows := [][]string{row(0, rec.CoverSize, rec.TotalCreationCost, rec.TotalAreaCost,
		rec.ExecutionTimeSeconds, rec.ExecutionTimeMilliseconds, rec.ExecutionTimeNanoseconds, rec.IsValid)}
	for _, p := range rec.Polygons {
		rows = append(rows, row(p.Polygon, p.CoverSize, p.TotalCreationCost, p.TotalAreaCost,
			p.ExecutionTimeSeconds, p.ExecutionTimeMilliseconds, p.ExecutionTimeNanoseconds, p.IsValid))
	}
	return rows
}

func writeCSV(path string, rec Record) error {
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.WriteAll(csvRows(rec)); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing csv result: %w", err)
	}
	return nil
}

// TotalCoverOf collects every cover rectangle of a run in result order.
func TotalCoverOf(results []engine.Result) cover.Cover {
	var rects cover.Cover
	for _, r := range results {
		rects = append(rects, r.Cover...)
	}
	return rects
}
