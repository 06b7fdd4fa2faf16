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

package scale

import "seehuhn.de/go/multiclass/palette"

// ColorScale maps raw values of one class to colors.  The value is first
// mapped through Scale and the result interpolates between Color0 (at 0)
// and Color1 (at 1).
type ColorScale struct {
	Scale          *Scale
	Color0, Color1 palette.Color
}

// Map returns the color for the raw value v.
func (c *ColorScale) Map(v float64) palette.Color {
	return c.MapUnit(c.Scale.Map(v))
}

// MapUnit returns the color for an already scaled value u.
func (c *ColorScale) MapUnit(u float64) palette.Color {
	return palette.Lerp(c.Color0, c.Color1, u)
}

// Thresholds returns n raw values, evenly spaced in the unit range of the
// scale and excluding both end points.  Contour and legend code uses these
// as level values.
func (c *ColorScale) Thresholds(n int) []float64 {
	if n <= 0 {
		return nil
	}
	res := make([]float64, n)
	for i := range res {
		res[i] = c.Scale.InvMap(float64(i+1) / float64(n+1))
	}
	return res
}
