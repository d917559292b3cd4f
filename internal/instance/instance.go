// Package instance loads problem instances: a WKT MULTIPOLYGON file plus the
// rectangle creation and area costs it is to be covered under.
package instance

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/WeRecCover/WeRecCover/internal/cover"
	"github.com/WeRecCover/WeRecCover/internal/geom"
)

// ErrInvalidInput is returned for missing files, wrong extensions and
// malformed or non-rectilinear WKT content.
var ErrInvalidInput = errors.New("invalid input")

// Instance is a single problem instance: the polygons to cover and the cost
// model.
type Instance struct {
	Path     string
	Name     string
	Polygons []geom.PolygonWithHoles
	Costs    cover.Costs
}

// Load reads the WKT file at path into an instance.
func Load(path string, costs cover.Costs) (*Instance, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: input WKT file %q not found", ErrInvalidInput, path)
	}
	if filepath.Ext(path) != ".wkt" {
		return nil, fmt.Errorf("%w: file %q is not a .wkt file", ErrInvalidInput, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	polygons, err := ParseMultiPolygon(string(data))
	if err != nil {
		return nil, err
	}

	return &Instance{
		Path:     path,
		Name:     NameFromPath(path),
		Polygons: polygons,
		Costs:    costs,
	}, nil
}

// ParseMultiPolygon decodes a WKT MULTIPOLYGON (or POLYGON) into rectilinear
// polygons with holes.
func ParseMultiPolygon(data string) ([]geom.PolygonWithHoles, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed WKT: %v", ErrInvalidInput, err)
	}

	var mp orb.MultiPolygon
	switch v := g.(type) {
	case orb.MultiPolygon:
		mp = v
	case orb.Polygon:
		mp = orb.MultiPolygon{v}
	default:
		return nil, fmt.Errorf("%w: expected MULTIPOLYGON, got %s", ErrInvalidInput, g.GeoJSONType())
	}

	polygons := make([]geom.PolygonWithHoles, 0, len(mp))
	for _, p := range mp {
		converted, err := fromOrbPolygon(p)
		if err != nil {
			return nil, err
		}
		polygons = append(polygons, converted)
	}
	return polygons, nil
}

func fromOrbPolygon(p orb.Polygon) (geom.PolygonWithHoles, error) {
	if len(p) == 0 {
		return geom.PolygonWithHoles{}, fmt.Errorf("%w: polygon without outer boundary", ErrInvalidInput)
	}
	outer, err := fromOrbRing(p[0])
	if err != nil {
		return geom.PolygonWithHoles{}, err
	}
	out := geom.PolygonWithHoles{Outer: outer}
	for _, hole := range p[1:] {
		ring, err := fromOrbRing(hole)
		if err != nil {
			return geom.PolygonWithHoles{}, err
		}
		out.Holes = append(out.Holes, ring)
	}
	out.Normalize()
	return out, nil
}

func fromOrbRing(ring orb.Ring) (geom.Polygon, error) {
	pts := []orb.Point(ring)
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 4 {
		return nil, fmt.Errorf("%w: ring has fewer than 4 vertices", ErrInvalidInput)
	}
	out := make(geom.Polygon, 0, len(pts))
	for _, p := range pts {
		x, y := p[0], p[1]
		if x != math.Trunc(x) || y != math.Trunc(y) {
			return nil, fmt.Errorf("%w: non-integer coordinate (%v, %v)", ErrInvalidInput, x, y)
		}
		out = append(out, geom.Point{X: int64(x), Y: int64(y)})
	}
	if !out.IsRectilinear() {
		return nil, fmt.Errorf("%w: polygon is not rectilinear", ErrInvalidInput)
	}
	return out, nil
}

// NameFromPath derives the compact instance name: parent directory plus file
// stem, with path separators and spaces replaced by underscores.
func NameFromPath(path string) string {
	parent := filepath.Base(filepath.Dir(path))
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := parent + "_" + stem
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ' ':
			return '_'
		}
		return r
	}, name)
}

func toOrbRing(ring geom.Polygon) orb.Ring {
	out := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		out = append(out, orb.Point{float64(p.X), float64(p.Y)})
	}
	out = append(out, out[0])
	return out
}

func toOrbPolygon(p geom.PolygonWithHoles) orb.Polygon {
	out := orb.Polygon{toOrbRing(p.Outer)}
	for _, hole := range p.Holes {
		out = append(out, toOrbRing(hole))
	}
	return out
}

// MultiPolygonWKT renders the polygons as a WKT MULTIPOLYGON string.
func MultiPolygonWKT(polygons []geom.PolygonWithHoles) string {
	mp := make(orb.MultiPolygon, 0, len(polygons))
	for _, p := range polygons {
		mp = append(mp, toOrbPolygon(p))
	}
	return wkt.MarshalString(mp)
}

// RectanglesWKT renders the rectangles as a WKT MULTIPOLYGON string, one
// polygon per rectangle.
func RectanglesWKT(rects []geom.Rectangle) string {
	mp := make(orb.MultiPolygon, 0, len(rects))
	for _, r := range rects {
		mp = append(mp, toOrbPolygon(geom.PolygonWithHoles{Outer: r.Polygon()}))
	}
	return wkt.MarshalString(mp)
}
