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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/raster"
)

// coverageThreshold is the fraction of a pixel which must lie inside the
// union of all outlines for the pixel to be assigned to a tile.
const coverageThreshold = 0.5

// region is an outline in tile-local coordinates, together with the
// integer position and size of its tile on the canvas.
type region struct {
	x0, y0 int
	w, h   int
	path   *path.Data
}

// newRegion places the rings, given in canvas coordinates, at their
// integer bounding box.
func newRegion(rings [][]vec.Vec2) region {
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, ring := range rings {
		for _, p := range ring {
			xMin, xMax = min(xMin, p.X), max(xMax, p.X)
			yMin, yMax = min(yMin, p.Y), max(yMax, p.Y)
		}
	}
	x0, y0 := math.Floor(xMin), math.Floor(yMin)
	offset := vec.Vec2{X: x0, Y: y0}

	p := &path.Data{}
	for _, ring := range rings {
		if len(ring) == 0 {
			continue
		}
		p = p.MoveTo(ring[0].Sub(offset))
		for _, q := range ring[1:] {
			p = p.LineTo(q.Sub(offset))
		}
		p = p.Close()
	}
	return region{
		x0:   int(x0),
		y0:   int(y0),
		w:    int(math.Ceil(xMax) - x0),
		h:    int(math.Ceil(yMax) - y0),
		path: p,
	}
}

// partition rasterizes the regions onto a width×height canvas and gives
// every pixel to the region covering the largest part of it.  On a tie
// the earlier region wins, so that no pixel belongs to two tiles.  A
// pixel is only handed out if the regions together cover at least
// coverageThreshold of it.
//
// The result has one entry per region; regions left without pixels give
// nil.
func partition(width, height int, regions []region, rule raster.FillRule) []*Tile {
	owner := make([]int32, width*height)
	best := make([]float32, width*height)
	total := make([]float32, width*height)

	r := raster.New(rect.Rect{URx: float64(width), URy: float64(height)})
	for i, reg := range regions {
		if reg.w <= 0 || reg.h <= 0 {
			continue
		}
		r.Reset(rect.Rect{URx: float64(reg.w), URy: float64(reg.h)})
		r.Fill(reg.path, rule, func(y, xMin int, coverage []float32) {
			cy := reg.y0 + y
			if y < 0 || y >= reg.h || cy < 0 || cy >= height {
				return
			}
			for j, c := range coverage {
				x := xMin + j
				cx := reg.x0 + x
				if c <= 0 || x < 0 || x >= reg.w || cx < 0 || cx >= width {
					continue
				}
				k := cy*width + cx
				total[k] += c
				if c > best[k] {
					best[k] = c
					owner[k] = int32(i)
				}
			}
		})
	}

	tiles := make([]*Tile, len(regions))
	for i, reg := range regions {
		if reg.w <= 0 || reg.h <= 0 {
			continue
		}
		m := mask.New(reg.w, reg.h, 0)
		m.Path = reg.path
		for row := range reg.h {
			cy := reg.y0 + row
			if cy < 0 || cy >= height {
				continue
			}
			for col := range reg.w {
				cx := reg.x0 + col
				if cx < 0 || cx >= width {
					continue
				}
				k := cy*width + cx
				if best[k] > 0 && owner[k] == int32(i) && total[k] >= coverageThreshold {
					m.Bits[row*reg.w+col] = 1
				}
			}
		}
		if m.Area() == 0 {
			continue
		}
		tiles[i] = New(float64(reg.x0), float64(reg.y0), m)
	}
	return tiles
}
