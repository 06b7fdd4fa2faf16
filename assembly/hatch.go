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

package assembly

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/raster"
	"seehuhn.de/go/multiclass/style"
)

// Stripe is one family of parallel lines.  The line centers are the lines
// through Center (of the enclosing pattern) at the given angle, shifted
// perpendicularly by Offset + k·Spacing for all integers k.
type Stripe struct {
	Angle   float64 // radians, counterclockwise from the x-axis
	Width   float64
	Offset  float64
	Spacing float64
	Color   palette.Color
	Cap     graphics.LineCapStyle
}

// HatchPattern is a set of stripe families, drawn in order.
type HatchPattern struct {
	Center  vec.Vec2
	Stripes []Stripe
}

// HatchOptions configures [Hatch] and [PropLines].
type HatchOptions struct {
	// Thickness is the stripe width at scaled value 1.
	Thickness float64

	// Sort draws wider stripes first, so that narrow stripes stay visible.
	Sort bool

	// WidthProp, if positive, makes stripe widths proportional to the raw
	// values: a value of WidthProp gives a stripe of width Thickness.
	// Otherwise the widths follow the scaled values.
	WidthProp float64

	// ColProp colors each stripe by its value through the class color
	// scale.  Otherwise the high color of the class is used.
	ColProp bool

	Cap graphics.LineCapStyle
}

// SetHatchAngles gives class i of n the angle π·i/n, so that the classes
// evenly divide a half-turn.
func SetHatchAngles(buffers []*style.ClassBuffer) {
	for i, b := range buffers {
		b.Angle = math.Pi * float64(i) / float64(len(buffers))
	}
}

func (opt *HatchOptions) stripe(b *style.ClassBuffer, v float64) (float64, palette.Color) {
	thickness := cmp.Or(opt.Thickness, DefaultThickness)
	var w float64
	if opt.WidthProp > 0 {
		w = thickness * v / opt.WidthProp
	} else {
		w = thickness * b.ColorScale.Scale.Map(v)
	}
	col := b.Color1
	if opt.ColProp {
		col = b.ColorScale.Map(v)
	}
	return max(w, 0), col
}

// Hatch returns the hatch pattern of a tile: one stripe family per class,
// at the class angle, with spacing twice the thickness.  Classes with zero
// width are left out.
func Hatch(buffers []*style.ClassBuffer, values []float64, center vec.Vec2, opt *HatchOptions) *HatchPattern {
	if opt == nil {
		opt = &HatchOptions{}
	}
	h := &HatchPattern{Center: center}
	for i, v := range values {
		w, col := opt.stripe(buffers[i], v)
		if w <= 0 {
			continue
		}
		h.Stripes = append(h.Stripes, Stripe{
			Angle:   buffers[i].Angle,
			Width:   w,
			Spacing: 2 * cmp.Or(opt.Thickness, DefaultThickness),
			Color:   col,
			Cap:     opt.Cap,
		})
	}
	if opt.Sort {
		slices.SortStableFunc(h.Stripes, func(a, b Stripe) int {
			return cmp.Compare(b.Width, a.Width)
		})
	}
	return h
}

// PropLines returns a pattern of horizontal lines in which the classes are
// stacked next to each other.  Each class takes a band whose width is
// proportional to its value; the pattern repeats every len(values)
// thicknesses.
func PropLines(buffers []*style.ClassBuffer, values []float64, center vec.Vec2, opt *HatchOptions) *HatchPattern {
	if opt == nil {
		opt = &HatchOptions{}
	}
	period := float64(len(values)) * cmp.Or(opt.Thickness, DefaultThickness)
	h := &HatchPattern{Center: center}
	offset := 0.0
	for i, v := range values {
		w, col := opt.stripe(buffers[i], v)
		if w <= 0 {
			continue
		}
		h.Stripes = append(h.Stripes, Stripe{
			Width:   w,
			Offset:  offset + w/2,
			Spacing: period,
			Color:   col,
			Cap:     opt.Cap,
		})
		offset += w
	}
	return h
}

// Masks rasterizes every stripe family into a mask covering the canvas
// rectangle clip, which must have integer corners.  Mask cell (0, 0)
// corresponds to canvas pixel (clip.LLx, clip.LLy).  A cell is set if at
// least half of the pixel is covered.
func (h *HatchPattern) Masks(clip rect.Rect) []*mask.Mask {
	res := make([]*mask.Mask, len(h.Stripes))
	w, ht := int(clip.URx-clip.LLx), int(clip.URy-clip.LLy)
	local := rect.Rect{URx: float64(w), URy: float64(ht)}
	r := raster.New(local)

	// pattern center relative to the mask
	c := vec.Vec2{X: h.Center.X - clip.LLx, Y: h.Center.Y - clip.LLy}
	reach := math.Hypot(float64(w), float64(ht)) + c.Length()

	for i, s := range h.Stripes {
		m := mask.New(w, ht, 0)
		res[i] = m
		if s.Width <= 0 || s.Spacing <= 0 || w <= 0 || ht <= 0 {
			continue
		}

		p := &path.Data{}
		kMax := int(math.Ceil(reach/s.Spacing)) + 1
		for k := -kMax; k <= kMax; k++ {
			y := s.Offset + float64(k)*s.Spacing
			a := vec.Vec2{X: -reach, Y: y}
			b := vec.Vec2{X: reach, Y: y}
			if q := raster.Stripe(a, b, s.Width, s.Cap); q != nil {
				p.Cmds = append(p.Cmds, q.Cmds...)
				p.Coords = append(p.Coords, q.Coords...)
			}
		}

		r.Reset(local)
		sin, cos := math.Sincos(s.Angle)
		r.CTM = matrix.Matrix{cos, sin, -sin, cos, c.X, c.Y}
		mask.FillFrom(m, r, p, raster.NonZero, 0.5)
	}
	return res
}
