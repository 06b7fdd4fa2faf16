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

package raster

import (
	"image"

	"seehuhn.de/go/geom/path"
)

// FillAlpha rasterizes p into dst.  Pixels outside dst.Rect are dropped.
// Where dst already has coverage, the larger value is kept, so several
// paths can be accumulated into one alpha mask.
func (r *Rasterizer) FillAlpha(p *path.Data, rule FillRule, dst *image.Alpha) {
	r.Fill(p, rule, toAlpha(dst))
}

// StrokeAlpha is like FillAlpha, but draws the outline of p with the given
// line width.
func (r *Rasterizer) StrokeAlpha(p *path.Data, width float64, dst *image.Alpha) {
	r.Stroke(p, width, toAlpha(dst))
}

func toAlpha(dst *image.Alpha) func(y, xMin int, coverage []float32) {
	return func(y, xMin int, coverage []float32) {
		if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
			return
		}
		for i, c := range coverage {
			x := xMin + i
			if x < dst.Rect.Min.X || x >= dst.Rect.Max.X {
				continue
			}
			a := uint8(min(c, 1)*255 + 0.5)
			k := dst.PixOffset(x, y)
			dst.Pix[k] = max(dst.Pix[k], a)
		}
	}
}
