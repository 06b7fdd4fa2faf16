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

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/multiclass/mask"
)

var (
	// ErrBadSize is returned for non-positive canvas or cell sizes.
	ErrBadSize = errors.New("tile: invalid size")

	// ErrUnknownRebin is returned for unsupported tiling types.
	ErrUnknownRebin = errors.New("tile: unknown rebin type")
)

// PixelTiling returns one 1×1 tile per canvas pixel, in row-major order.
func PixelTiling(width, height int) ([]*Tile, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrBadSize, width, height)
	}
	tiles := make([]*Tile, 0, width*height)
	for y := range height {
		for x := range width {
			tiles = append(tiles, &Tile{
				X:      float64(x),
				Y:      float64(y),
				Mask:   mask.New(1, 1, 1),
				Center: vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5},
			})
		}
	}
	return tiles, nil
}

// RectangularTiling covers the canvas with tw×th rectangles in row-major
// order.  Tiles at the right and bottom border are truncated to the
// canvas.
func RectangularTiling(width, height, tw, th int) ([]*Tile, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrBadSize, width, height)
	}
	if tw <= 0 || th <= 0 {
		return nil, fmt.Errorf("%w: tile %dx%d", ErrBadSize, tw, th)
	}
	nx := (width + tw - 1) / tw
	ny := (height + th - 1) / th
	tiles := make([]*Tile, 0, nx*ny)
	for y := 0; y < height; y += th {
		for x := 0; x < width; x += tw {
			w, h := min(tw, width-x), min(th, height-y)
			tiles = append(tiles, &Tile{
				X:      float64(x),
				Y:      float64(y),
				Mask:   mask.New(w, h, 1),
				Center: vec.Vec2{X: float64(x) + float64(w)/2, Y: float64(y) + float64(h)/2},
			})
		}
	}
	return tiles, nil
}

// RebinConfig describes how the canvas is partitioned.
type RebinConfig struct {
	// Type is one of "none", "square", "rect", "voronoi", "hexa" and "geo".
	Type string `json:"type,omitempty"`

	// Aggregation is one of "mean", "min", "max" and "sum".
	Aggregation string `json:"aggregation,omitempty"`

	// Size is the edge length for "square", the lattice spacing for
	// "hexa" and the number of random sites for "voronoi".
	Size int `json:"size,omitempty"`

	// Width and Height give the rectangle size for "rect".
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Points, if set, are the Voronoi sites.
	Points [][2]float64 `json:"points,omitempty"`

	// Seed seeds the random Voronoi sites.
	Seed uint64 `json:"seed,omitempty"`

	// GeoJSON holds the features for "geo".
	GeoJSON json.RawMessage `json:"geojson,omitempty"`
	Geo     GeoOptions      `json:"geo,omitempty"`
}

// Rebin types.
const (
	RebinNone    = "none"
	RebinSquare  = "square"
	RebinRect    = "rect"
	RebinVoronoi = "voronoi"
	RebinHexa    = "hexa"
	RebinGeo     = "geo"
)

const defaultSize = 10

// Kind returns the normalized rebin type.
func (c *RebinConfig) Kind() (string, error) {
	switch t := strings.ToLower(c.Type); t {
	case "", RebinNone:
		return RebinNone, nil
	case RebinSquare, RebinRect, RebinVoronoi, RebinHexa:
		return t, nil
	case RebinGeo, "geojson", "topojson":
		return RebinGeo, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownRebin, c.Type)
	}
}

// CellSize returns the rectangle size used by "square" and "rect", with
// defaults applied.
func (c *RebinConfig) CellSize() (int, int) {
	kind, _ := c.Kind()
	if kind == RebinSquare {
		s := cmp.Or(c.Size, defaultSize)
		return s, s
	}
	return cmp.Or(c.Width, defaultSize), cmp.Or(c.Height, defaultSize)
}

// Validate checks the configuration without generating tiles.
func (c *RebinConfig) Validate() error {
	kind, err := c.Kind()
	if err != nil {
		return err
	}
	if _, err := ParseAggregation(c.Aggregation); err != nil {
		return err
	}
	if c.Size < 0 || c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: negative rebin size", ErrBadSize)
	}
	if kind == RebinGeo {
		return checkGeometries(c.GeoJSON)
	}
	return nil
}

// Generate partitions a width×height canvas as described by c.
func Generate(width, height int, c *RebinConfig) ([]*Tile, error) {
	kind, err := c.Kind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case RebinSquare, RebinRect:
		tw, th := c.CellSize()
		return RectangularTiling(width, height, tw, th)
	case RebinVoronoi:
		if len(c.Points) > 0 {
			sites := make([]vec.Vec2, len(c.Points))
			for i, p := range c.Points {
				sites[i] = vec.Vec2{X: p[0], Y: p[1]}
			}
			return VoronoiTiling(width, height, sites)
		}
		return RandomVoronoiTiling(width, height, cmp.Or(c.Size, defaultSize), c.Seed)
	case RebinHexa:
		return HexTiling(width, height, float64(cmp.Or(c.Size, defaultSize)))
	case RebinGeo:
		return GeoTiling(width, height, c.GeoJSON, &c.Geo)
	default:
		return PixelTiling(width, height)
	}
}

// Pick returns the tile containing the canvas pixel (x, y), or nil.
// Pixel and rectangular tilings are looked up directly, other tilings
// are searched in emission order.
func Pick(tiles []*Tile, c *RebinConfig, width, height int, x, y float64) *Tile {
	if len(tiles) == 0 || x < 0 || y < 0 || x >= float64(width) || y >= float64(height) {
		return nil
	}
	ix, iy := int(math.Floor(x)), int(math.Floor(y))

	kind, _ := c.Kind()
	idx := -1
	switch kind {
	case RebinNone:
		idx = iy*width + ix
	case RebinSquare, RebinRect:
		tw, th := c.CellSize()
		nx := (width + tw - 1) / tw
		idx = (iy/th)*nx + ix/tw
	}
	if idx >= 0 && idx < len(tiles) {
		return tiles[idx]
	}

	for _, t := range tiles {
		if t.Contains(x, y) {
			return t
		}
	}
	return nil
}
