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

package multiclass

import (
	"math"
	"time"

	"seehuhn.de/go/multiclass/assembly"
	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/scale"
	"seehuhn.de/go/multiclass/style"
	"seehuhn.de/go/multiclass/tile"
)

// Result is the outcome of a render pass.
type Result struct {
	Width, Height int
	Background    palette.Color

	// Tiles are in the order of the tiling, with DataValues set.
	Tiles []*tile.Tile

	// Tokens holds one token per tile, for all strategies except
	// "separate" and "time".  Glyph tokens are nil for tiles too small
	// to hold a glyph.
	Tokens []assembly.Token

	// Planes holds the per-class colors for "separate" and "time".
	Planes assembly.Planes

	// Interval is how long each plane is shown for "time", and zero for
	// all other strategies.
	Interval time.Duration

	// Scale is the final value scale, shared by all classes.
	Scale *scale.Scale

	// Classes are the styled classes, with color scales set.
	Classes []*style.ClassBuffer

	// Stroke, if non-nil, is drawn along the boundary of every tile.
	Stroke *Outline

	rebin            *tile.RebinConfig
	xDomain, yDomain []float64
}

// Outline is the pen used for tile boundaries.
type Outline struct {
	Color palette.Color
	Width float64
}

// Frame returns the index of the plane shown after the given time has
// elapsed in a "time" animation.  The planes are shown in class order and
// the animation loops.  Without an interval, plane 0 is shown.
func (r *Result) Frame(elapsed time.Duration) int {
	n := len(r.Planes)
	if n == 0 {
		return -1
	}
	if r.Interval <= 0 || elapsed < 0 {
		return 0
	}
	return int(elapsed/r.Interval) % n
}

func (r *Result) inside(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(r.Width) && y < float64(r.Height)
}

// Pick returns the tile containing the canvas position (x, y), or nil.
func (r *Result) Pick(x, y float64) *tile.Tile {
	return tile.Pick(r.Tiles, r.rebin, r.Width, r.Height, x, y)
}

// PickValues returns the raw class values at the canvas position (x, y),
// in class order.  Outside the canvas the result is nil.
func (r *Result) PickValues(x, y float64) []float64 {
	if !r.inside(x, y) {
		return nil
	}
	ix, iy := int(math.Floor(x)), int(math.Floor(y))
	res := make([]float64, len(r.Classes))
	for i, b := range r.Classes {
		res[i] = b.Grid.At(ix, iy)
	}
	return res
}

// PickDomains converts the canvas position (x, y) into data coordinates.
// The last return value is false outside the canvas.
func (r *Result) PickDomains(x, y float64) (float64, float64, bool) {
	if !r.inside(x, y) {
		return 0, 0, false
	}
	lerp := func(d []float64, t, size float64) float64 {
		if len(d) != 2 {
			return t
		}
		return d[0] + (d[1]-d[0])*t/size
	}
	return lerp(r.xDomain, x, float64(r.Width)), lerp(r.yDomain, y, float64(r.Height)), true
}
