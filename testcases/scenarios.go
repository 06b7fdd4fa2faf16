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

package testcases

import (
	"seehuhn.de/go/multiclass"
	"seehuhn.de/go/multiclass/assembly"
	"seehuhn.de/go/multiclass/glyph"
	"seehuhn.de/go/multiclass/tile"
)

// quadrants is a 4×3 degree area split into four named features, one of
// them with a hole.
const quadrants = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "north-west"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,1.5],[2,1.5],[2,3],[0,3],[0,1.5]]]}},
    {"type": "Feature", "properties": {"name": "north-east"},
     "geometry": {"type": "Polygon", "coordinates": [
       [[2,1.5],[4,1.5],[4,3],[2,3],[2,1.5]],
       [[2.5,2],[2.5,2.5],[3.5,2.5],[3.5,2],[2.5,2]]]}},
    {"type": "Feature", "properties": {"name": "south"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[0,0],[2,0],[2,1.5],[0,1.5],[0,0]]],
       [[[2,0],[4,0],[4,1.5],[2,1.5],[2,0]]]]}}
  ]
}`

var rebinCases = []TestCase{
	{
		Name:   "none",
		Config: config(tile.RebinConfig{}, assembly.Config{Type: "max"}),
	},
	{
		Name:   "square",
		Config: config(tile.RebinConfig{Type: "square", Size: 8}, assembly.Config{Type: "max"}),
	},
	{
		Name: "rect_sum",
		Config: config(tile.RebinConfig{Type: "rect", Width: 16, Height: 6, Aggregation: "sum"},
			assembly.Config{Type: "mean"}),
	},
	{
		Name: "voronoi_points",
		Config: config(tile.RebinConfig{
			Type:   "voronoi",
			Points: [][2]float64{{10, 10}, {50, 8}, {30, 30}, {8, 40}, {56, 40}},
		}, assembly.Config{Type: "max"}),
	},
	{
		Name:   "voronoi_random",
		Config: config(tile.RebinConfig{Type: "voronoi", Size: 30, Seed: 3}, assembly.Config{Type: "mean"}),
	},
	{
		Name:   "hexa",
		Config: config(tile.RebinConfig{Type: "hexa", Size: 8, Aggregation: "max"}, assembly.Config{Type: "max"}),
	},
	{
		Name: "geo",
		Config: config(tile.RebinConfig{
			Type:    "geo",
			GeoJSON: []byte(quadrants),
			Geo:     tile.GeoOptions{Projection: "identity"},
		}, assembly.Config{Type: "mean"}),
	},
	{
		Name:   "hexa_stroke",
		Config: stroked(config(tile.RebinConfig{Type: "hexa", Size: 12}, assembly.Config{Type: "mean"})),
	},
}

func stroked(c *multiclass.Config) *multiclass.Config {
	c.Stroke = &multiclass.StrokeConfig{Color: "#333", Width: 0.75}
	return c
}

var assemblyCases = []TestCase{
	{Name: "max", Config: config(tile.RebinConfig{Type: "square", Size: 4}, assembly.Config{Type: "max"})},
	{Name: "mean", Config: config(tile.RebinConfig{Type: "square", Size: 4}, assembly.Config{Type: "mean"})},
	{Name: "invmin", Config: config(tile.RebinConfig{Type: "square", Size: 4},
		assembly.Config{Type: "invmin", Threshold: 2, IgnoreZero: true})},
	{Name: "multiply", Config: config(tile.RebinConfig{}, assembly.Config{Type: "multiply"})},
	{Name: "add", Config: config(tile.RebinConfig{}, assembly.Config{Type: "add"})},
	{Name: "separate", Config: config(tile.RebinConfig{Type: "square", Size: 4}, assembly.Config{Type: "separate"})},
	{Name: "time", Config: config(tile.RebinConfig{Type: "square", Size: 4}, assembly.Config{Type: "time", Duration: 1})},
	{Name: "weaving_square", Config: config(tile.RebinConfig{}, assembly.Config{Type: "weaving", Shape: "square", Size: 4})},
	{Name: "weaving_hex", Config: config(tile.RebinConfig{}, assembly.Config{Type: "weaving", Shape: "hex", Size: 6, Random: true, Seed: 9})},
	{Name: "weaving_tri", Config: config(tile.RebinConfig{}, assembly.Config{Type: "weaving", Shape: "tri", Size: 6})},
	{Name: "dotdensity", Config: config(tile.RebinConfig{Type: "square", Size: 8, Aggregation: "sum"},
		assembly.Config{Type: "dotdensity", Size: 1, Seed: 4})},
	{Name: "hatching", Config: config(tile.RebinConfig{Type: "square", Size: 16},
		assembly.Config{Type: "hatching", Size: 3, Sort: true})},
	{Name: "propline", Config: config(tile.RebinConfig{Type: "square", Size: 16},
		assembly.Config{Type: "propline", Size: 2, ColProp: true})},
	{Name: "glyph_bars", Config: config(tile.RebinConfig{Type: "square", Size: 16},
		assembly.Config{Type: "glyph", Glyph: &glyph.Spec{Template: glyph.Bars, Width: 12, Height: 12}})},
	{Name: "glyph_punchcard", Config: config(tile.RebinConfig{Type: "rect", Width: 24, Height: 12},
		assembly.Config{Type: "glyph", Glyph: &glyph.Spec{Template: glyph.Punchcard, Width: 18, Height: 6}})},
}

func withScale(name string, sc multiclass.ScaleConfig) TestCase {
	c := config(tile.RebinConfig{Type: "square", Size: 4}, assembly.Config{Type: "max"})
	c.Scale = sc
	return TestCase{Name: name, Config: c}
}

var scaleCases = []TestCase{
	withScale("linear", multiclass.ScaleConfig{Type: "linear"}),
	withScale("sqrt", multiclass.ScaleConfig{Type: "sqrt"}),
	withScale("cbrt", multiclass.ScaleConfig{Type: "cbrt"}),
	withScale("log", multiclass.ScaleConfig{Type: "log", Base: 2}),
	withScale("equidepth", multiclass.ScaleConfig{Type: "equidepth", Levels: 5}),
	withScale("fixed_domain", multiclass.ScaleConfig{Domain: []float64{0, 50}}),
}
