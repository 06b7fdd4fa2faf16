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

// Package palette implements the colors used to encode classes.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	None  = Color{}
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 0.5, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

// Category10 is the d3 ten-color categorical palette.  Class i uses
// Category10[i%10] as its high-end color unless styled otherwise.
var Category10 = mustParseAll(
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
)

// Category10t is Category10 with zero alpha, used as transparent low-end
// colors.
var Category10t = transparent(Category10)

// ErrSyntax is returned by Parse for malformed color strings.
var ErrSyntax = errors.New("palette: invalid color syntax")

var named = map[string]Color{
	"none":        None,
	"transparent": None,
	"white":       White,
	"black":       Black,
	"red":         Red,
	"green":       Green,
	"blue":        Blue,
	"grey":        {0.5, 0.5, 0.5, 1},
	"gray":        {0.5, 0.5, 0.5, 1},
	"orange":      {1, 0.647, 0, 1},
	"yellow":      {1, 1, 0, 1},
	"purple":      {0.5, 0, 0.5, 1},
}

// Parse converts a CSS-style color description into a Color.  Supported
// forms are the names in a small built-in table, "#rgb", "#rrggbb",
// "#rrggbbaa", "rgb(r,g,b)" and "rgba(r,g,b,a)".
func Parse(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		switch len(hex) {
		case 3:
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		case 6, 8:
		default:
			return None, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return None, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return Color{
			R: float64(v>>24&0xff) / 255,
			G: float64(v>>16&0xff) / 255,
			B: float64(v>>8&0xff) / 255,
			A: float64(v&0xff) / 255,
		}, nil
	}

	var args string
	var wantAlpha bool
	if rest, ok := strings.CutPrefix(s, "rgba("); ok {
		args, wantAlpha = rest, true
	} else if rest, ok := strings.CutPrefix(s, "rgb("); ok {
		args = rest
	} else {
		return None, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	args, ok := strings.CutSuffix(args, ")")
	if !ok {
		return None, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	parts := strings.Split(args, ",")
	if wantAlpha && len(parts) != 4 || !wantAlpha && len(parts) != 3 {
		return None, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, part := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return None, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		if i < 3 {
			x /= 255
		}
		ch[i] = clamp(x)
	}
	return Color{ch[0], ch[1], ch[2], ch[3]}, nil
}

// Lerp interpolates linearly between a (t=0) and b (t=1).
func Lerp(a, b Color, t float64) Color {
	s := 1 - t
	return Color{
		R: a.R*s + b.R*t,
		G: a.G*s + b.G*t,
		B: a.B*s + b.B*t,
		A: a.A*s + b.A*t,
	}
}

// Clamp limits every channel to [0, 1].
func (c Color) Clamp() Color {
	return Color{clamp(c.R), clamp(c.G), clamp(c.B), clamp(c.A)}
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// IsNone reports whether c is fully transparent.
func (c Color) IsNone() bool {
	return c.A == 0
}

// RGBA implements the image/color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts c to an 8-bit non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	c = c.Clamp()
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// CSS returns the color in "rgba(r,g,b,a)" notation.
func (c Color) CSS() string {
	n := c.NRGBA()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", n.R, n.G, n.B,
		strconv.FormatFloat(c.A, 'f', -1, 64))
}

func (c Color) String() string {
	return c.CSS()
}

func clamp(x float64) float64 {
	return min(max(x, 0), 1)
}

func mustParseAll(ss ...string) []Color {
	res := make([]Color, len(ss))
	for i, s := range ss {
		c, err := Parse(s)
		if err != nil {
			panic(err)
		}
		res[i] = c
	}
	return res
}

func transparent(cc []Color) []Color {
	res := make([]Color, len(cc))
	for i, c := range cc {
		res[i] = c.WithAlpha(0)
	}
	return res
}
