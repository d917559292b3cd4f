package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/engine"
	"github.com/WeRecCover/WeRecCover/internal/geom"
	"github.com/WeRecCover/WeRecCover/internal/instance"
)

func testInstance(t *testing.T) *instance.Instance {
	t.Helper()
	polygons, err := instance.ParseMultiPolygon("MULTIPOLYGON (((0 0, 4 0, 4 2, 2 2, 2 4, 0 4, 0 0)))")
	require.NoError(t, err)
	return &instance.Instance{
		Path:     "corridors/small.wkt",
		Name:     "corridors_small",
		Polygons: polygons,
		Costs:    cover.Costs{Creation: 10, Area: 1},
	}
}

func testResults(t *testing.T) []engine.Result {
	t.Helper()
	r1, err := geom.NewRectangle(0, 0, 2, 4)
	require.NoError(t, err)
	r2, err := geom.NewRectangle(0, 0, 4, 2)
	require.NoError(t, err)

	polygonResult := engine.Result{
		CoverSize:     2,
		Cost:          cover.Costs{Creation: 20, Area: 16},
		ExecutionTime: 1500 * time.Microsecond,
		Validity:      engine.Valid,
		Cover:         cover.Cover{r1, r2},
	}
	total := polygonResult
	total.Cover = nil
	return []engine.Result{total, polygonResult}
}

func testRecord(t *testing.T) Record {
	t.Helper()
	return NewRecord(testInstance(t), testResults(t), "strip+prune", "2024-03-01 10:00:00", "2024-03-01 10:00:01")
}

func TestNewRecord_FillsAllFields(t *testing.T) {
	rec := testRecord(t)

	assert.NotEmpty(t, rec.RunID)
	assert.Equal(t, "strip+prune", rec.Algorithm)
	assert.Equal(t, "corridors_small", rec.InstanceName)
	assert.Equal(t, int64(10), rec.CreationCost)
	assert.Equal(t, int64(1), rec.AreaCost)
	assert.Equal(t, 2, rec.CoverSize)
	assert.Equal(t, int64(36), rec.TotalCost)
	assert.Equal(t, int64(20), rec.TotalCreationCost)
	assert.Equal(t, int64(16), rec.TotalAreaCost)
	assert.Equal(t, int64(1), rec.ExecutionTimeMilliseconds)
	assert.Equal(t, int64(1500000), rec.ExecutionTimeNanoseconds)
	assert.Equal(t, true, rec.IsValid)
	assert.Contains(t, rec.InputPolygon, "MULTIPOLYGON")
	assert.Contains(t, rec.Cover, "MULTIPOLYGON")

	require.Len(t, rec.Polygons, 1)
	assert.Equal(t, 1, rec.Polygons[0].Polygon)
	assert.Equal(t, 2, rec.Polygons[0].CoverSize)
}

func TestWrite_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "run.json")
	require.NoError(t, Write(path, testRecord(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "corridors_small", decoded["instance_name"])
	assert.Equal(t, true, decoded["is_valid"])
	assert.Equal(t, float64(36), decoded["total_cost"])
}

func TestWrite_CSVAppendsWithSingleHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")
	require.NoError(t, Write(path, testRecord(t)))
	require.NoError(t, Write(path, testRecord(t)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// One header, then two runs of (total row + one polygon row) each.
	require.Len(t, rows, 5)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "0", rows[1][4], "first data row is the aggregate")
	assert.Equal(t, "1", rows[2][4])
	assert.Equal(t, "true", rows[1][15])
}

func TestWrite_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.xlsx")
	require.NoError(t, Write(path, testRecord(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestValidityString(t *testing.T) {
	assert.Equal(t, "true", validityString(true))
	assert.Equal(t, "false", validityString(false))
	assert.Equal(t, "timeout", validityString("timeout"))
	assert.Equal(t, "null", validityString(nil))
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.pdf")
	inst := testInstance(t)
	results := testResults(t)
	require.NoError(t, WritePDF(path, inst, results, testRecord(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.dxf")
	inst := testInstance(t)
	results := testResults(t)
	require.NoError(t, WriteDXF(path, inst.Polygons, TotalCoverOf(results)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "COVER")
}
