// seehuhn.de/go/multiclass - multiclass density map compositing
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package tile

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/multiclass/raster"
)

var (
	// ErrNoGeometries is returned when geographic tiling is requested
	// without a non-empty feature or geometry collection.
	ErrNoGeometries = errors.New("tile: no geometries for geographic tiling")

	// ErrUnknownProjection is returned for unsupported projection names.
	ErrUnknownProjection = errors.New("tile: unknown projection")
)

// GeoOptions controls how geographic features are placed on the canvas.
type GeoOptions struct {
	// Projection is "mercator" (the default) or "identity".  The identity
	// projection uses longitude and latitude as planar coordinates.
	// Both keep north at the top of the canvas.
	Projection string `json:"projection,omitempty"`

	// Latitudes and Longitudes, if set, give the [min, max] extent
	// mapped onto the canvas.  Features outside are clipped.  Otherwise
	// the extent of all features is used.
	Latitudes  []float64 `json:"latitudes,omitempty"`
	Longitudes []float64 `json:"longitudes,omitempty"`

	// NameProperty is the feature property holding the tile name.
	// The default is "name".
	NameProperty string `json:"nameProperty,omitempty"`
}

type feature struct {
	name string
	geom orb.Geometry
}

// GeoTiling rasterizes the polygons of a GeoJSON FeatureCollection or
// GeometryCollection into one tile per feature, in collection order.
// Features without area on the canvas produce no tile.  Holes are
// handled with the even-odd rule.
func GeoTiling(width, height int, data []byte, opt *GeoOptions) ([]*Tile, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrBadSize, width, height)
	}
	if opt == nil {
		opt = &GeoOptions{}
	}
	features, err := decodeFeatures(data, cmp.Or(opt.NameProperty, "name"))
	if err != nil {
		return nil, err
	}

	var proj orb.Projection
	switch strings.ToLower(opt.Projection) {
	case "", "mercator":
		proj = project.WGS84.ToMercator
	case "identity", "none":
		proj = func(p orb.Point) orb.Point { return p }
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownProjection, opt.Projection)
	}

	var extent orb.Bound
	for i := range features {
		features[i].geom = project.Geometry(orb.Clone(features[i].geom), proj)
		if i == 0 {
			extent = features[i].geom.Bound()
		} else {
			extent = extent.Union(features[i].geom.Bound())
		}
	}
	if len(opt.Latitudes) == 2 && len(opt.Longitudes) == 2 {
		extent = project.Bound(orb.Bound{
			Min: orb.Point{opt.Longitudes[0], opt.Latitudes[0]},
			Max: orb.Point{opt.Longitudes[1], opt.Latitudes[1]},
		}, proj)
	}

	fit := fitMatrix(extent, width, height)
	var regions []region
	var kept []int
	clipped := make([]orb.Geometry, len(features))
	for i, f := range features {
		clipped[i] = clip.Geometry(extent, f.geom)
		rings := collectRings(nil, clipped[i], fit)
		if len(rings) == 0 {
			continue
		}
		regions = append(regions, newRegion(rings))
		kept = append(kept, i)
	}

	var tiles []*Tile
	for k, t := range partition(width, height, regions, raster.EvenOdd) {
		if t == nil {
			continue
		}
		f := features[kept[k]]
		t.Name = f.name
		if c, area := planar.CentroidArea(clipped[kept[k]]); area > 0 {
			t.Center = apply(fit, c)
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// checkGeometries verifies that data holds a non-empty feature or
// geometry collection.
func checkGeometries(data []byte) error {
	if len(data) == 0 {
		return ErrNoGeometries
	}
	var probe struct {
		Type       string            `json:"type"`
		Features   []json.RawMessage `json:"features"`
		Geometries []json.RawMessage `json:"geometries"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("%w: %v", ErrNoGeometries, err)
	}
	switch probe.Type {
	case "FeatureCollection":
		if len(probe.Features) > 0 {
			return nil
		}
	case "GeometryCollection":
		if len(probe.Geometries) > 0 {
			return nil
		}
	default:
		return fmt.Errorf("%w: unsupported type %q", ErrNoGeometries, probe.Type)
	}
	return fmt.Errorf("%w: empty %s", ErrNoGeometries, probe.Type)
}

func decodeFeatures(data []byte, nameProp string) ([]feature, error) {
	if err := checkGeometries(data); err != nil {
		return nil, err
	}

	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		res := make([]feature, 0, len(fc.Features))
		for i, f := range fc.Features {
			if f.Geometry == nil {
				continue
			}
			name, _ := f.Properties[nameProp].(string)
			if name == "" && f.ID != nil {
				name = fmt.Sprint(f.ID)
			}
			if name == "" {
				name = fmt.Sprintf("feature %d", i)
			}
			res = append(res, feature{name: name, geom: f.Geometry})
		}
		return res, nil
	}

	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGeometries, err)
	}
	res := make([]feature, 0, len(g.Geometries))
	for i, sub := range g.Geometries {
		res = append(res, feature{name: fmt.Sprintf("geometry %d", i), geom: sub.Geometry()})
	}
	return res, nil
}

// fitMatrix maps the projected extent onto the canvas, preserving the
// aspect ratio, centering the result and flipping the y axis.
func fitMatrix(b orb.Bound, width, height int) matrix.Matrix {
	bw := b.Max[0] - b.Min[0]
	bh := b.Max[1] - b.Min[1]
	s := math.Inf(1)
	if bw > 0 {
		s = float64(width) / bw
	}
	if bh > 0 {
		s = min(s, float64(height)/bh)
	}
	if math.IsInf(s, 1) {
		s = 1
	}
	offX := (float64(width) - s*bw) / 2
	offY := (float64(height) - s*bh) / 2
	return matrix.Matrix{s, 0, 0, -s, offX - s*b.Min[0], offY + s*b.Max[1]}
}

func apply(m matrix.Matrix, p orb.Point) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p[0] + m[2]*p[1] + m[4],
		Y: m[1]*p[0] + m[3]*p[1] + m[5],
	}
}

// collectRings appends the rings of all areal parts of g, mapped to
// canvas coordinates.
func collectRings(rings [][]vec.Vec2, g orb.Geometry, m matrix.Matrix) [][]vec.Vec2 {
	switch g := g.(type) {
	case orb.Ring:
		if len(g) >= 3 {
			ring := make([]vec.Vec2, len(g))
			for i, p := range g {
				ring[i] = apply(m, p)
			}
			rings = append(rings, ring)
		}
	case orb.Polygon:
		for _, ring := range g {
			rings = collectRings(rings, ring, m)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			rings = collectRings(rings, poly, m)
		}
	case orb.Collection:
		for _, sub := range g {
			rings = collectRings(rings, sub, m)
		}
	case orb.Bound:
		rings = collectRings(rings, g.ToRing(), m)
	}
	return rings
}
