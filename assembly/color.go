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
	"math"

	"seehuhn.de/go/multiclass/internal/numeric"
	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/style"
)

// The functions in this file take the class buffers, with color scales
// set, and one raw value per class.

// One returns the color of class b at value v.
func One(b *style.ClassBuffer, v float64) palette.Color {
	return b.ColorScale.Map(v)
}

// MaxColor returns the color of the class with the largest value.  Ties go
// to the first class.  Without classes the result is palette.None.
func MaxColor(buffers []*style.ClassBuffer, values []float64) palette.Color {
	i := numeric.ArgMax(values)
	if i < 0 {
		return palette.None
	}
	return One(buffers[i], values[i])
}

// MeanColor blends the class colors, weighted by the scaled values.  If all
// scaled values are zero the result is palette.None.
func MeanColor(buffers []*style.ClassBuffer, values []float64) palette.Color {
	var res palette.Color
	total := 0.0
	for i, v := range values {
		w := buffers[i].ColorScale.Scale.Map(v)
		if w <= 0 {
			continue
		}
		c := One(buffers[i], v)
		res.R += w * c.R
		res.G += w * c.G
		res.B += w * c.B
		res.A += w * c.A
		total += w
	}
	if total == 0 {
		return palette.None
	}
	return palette.Color{
		R: res.R / total,
		G: res.G / total,
		B: res.B / total,
		A: res.A / total,
	}
}

// InvMinOptions configures [InvMinColor].
type InvMinOptions struct {
	// Threshold is the value the minimum must exceed.
	Threshold float64

	// IgnoreZero excludes classes with value 0 from the minimum.
	IgnoreZero bool
}

// InvMinColor returns the color of the class with the smallest value, if
// that value exceeds the threshold.  Ties go to the first class.  Otherwise the result is palette.None.
func InvMinColor(buffers []*style.ClassBuffer, values []float64, opt *InvMinOptions) palette.Color {
	if opt == nil {
		opt = &InvMinOptions{}
	}
	candidates := values
	if opt.IgnoreZero {
		candidates = make([]float64, len(values))
		for i, v := range values {
			if v == 0 {
				v = math.Inf(1)
			}
			candidates[i] = v
		}
	}
	k := numeric.ArgMin(candidates)
	if k < 0 || (opt.IgnoreZero && values[k] == 0) || values[k] <= opt.Threshold {
		return palette.None
	}
	return One(buffers[k], values[k])
}

// MultiplyColor multiplies the class colors channel by channel, starting
// from white.  Each class contributes its color faded towards white
// according to its scaled value.
func MultiplyColor(buffers []*style.ClassBuffer, values []float64) palette.Color {
	res := palette.White
	for i, v := range values {
		cs := buffers[i].ColorScale
		c := palette.Lerp(palette.White, cs.Color1, cs.Scale.Map(v))
		res.R *= c.R
		res.G *= c.G
		res.B *= c.B
	}
	return res.Clamp()
}

// AddColor adds the class colors, weighted by the scaled values, and
// clamps every channel.
func AddColor(buffers []*style.ClassBuffer, values []float64) palette.Color {
	var res palette.Color
	for i, v := range values {
		cs := buffers[i].ColorScale
		w := cs.Scale.Map(v)
		res.R += w * cs.Color1.R
		res.G += w * cs.Color1.G
		res.B += w * cs.Color1.B
		res.A += w * cs.Color1.A
	}
	return res.Clamp()
}

// Colors returns one color per class, as used by the separate and time
// strategies and by weaving.
func Colors(buffers []*style.ClassBuffer, values []float64) []palette.Color {
	res := make([]palette.Color, len(values))
	for i, v := range values {
		res[i] = One(buffers[i], v)
	}
	return res
}

// SeparatePlanes returns the per-class color planes for the given tile
// values, where values[k] holds the values of tile k.
func SeparatePlanes(buffers []*style.ClassBuffer, values [][]float64) Planes {
	res := make(Planes, len(buffers))
	for i, b := range buffers {
		plane := make([]palette.Color, len(values))
		for k, vv := range values {
			plane[k] = One(b, vv[i])
		}
		res[i] = plane
	}
	return res
}
