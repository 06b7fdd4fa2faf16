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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Polygon returns the closed path through the given vertices.
// It returns nil if fewer than three vertices are given.
func Polygon(pts []vec.Vec2) *path.Data {
	if len(pts) < 3 {
		return nil
	}
	p := (&path.Data{}).MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	return p.Close()
}

// Rectangle returns the closed path of an axis-aligned rectangle.
func Rectangle(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

// Circle returns a circle approximated by four cubic Bézier segments.
func Circle(cx, cy, radius float64) *path.Data {
	const k = 0.5522847498
	kr := k * radius
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }
	return (&path.Data{}).
		MoveTo(pt(cx+radius, cy)).
		CubeTo(pt(cx+radius, cy+kr), pt(cx+kr, cy+radius), pt(cx, cy+radius)).
		CubeTo(pt(cx-kr, cy+radius), pt(cx-radius, cy+kr), pt(cx-radius, cy)).
		CubeTo(pt(cx-radius, cy-kr), pt(cx-kr, cy-radius), pt(cx, cy-radius)).
		CubeTo(pt(cx+kr, cy-radius), pt(cx+radius, cy-kr), pt(cx+radius, cy)).
		Close()
}

// Stripe returns the outline of the straight line from a to b stroked with
// the given width.  Butt caps end the stripe at the endpoints, square caps
// extend it by half the width and round caps add half discs.
//
// Zero-length stripes and non-positive widths give nil.
func Stripe(a, b vec.Vec2, width float64, capStyle graphics.LineCapStyle) *path.Data {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold || width <= 0 {
		return nil
	}
	t := d.Mul(1 / l)
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(width / 2)

	if capStyle == graphics.LineCapSquare {
		a = a.Sub(t.Mul(width / 2))
		b = b.Add(t.Mul(width / 2))
	}

	p := (&path.Data{}).MoveTo(a.Add(n)).LineTo(b.Add(n))
	if capStyle == graphics.LineCapRound {
		p = halfDisc(p, b, n, t)
	}
	p = p.LineTo(b.Sub(n)).LineTo(a.Sub(n))
	if capStyle == graphics.LineCapRound {
		p = halfDisc(p, a, n.Mul(-1), t.Mul(-1))
	}
	return p.Close()
}

// halfDisc continues p around center from center+n to center-n, bulging in
// direction t.
func halfDisc(p *path.Data, center, n, t vec.Vec2) *path.Data {
	r := n.Length()
	tr := t.Mul(r)
	for i := 1; i < halfDiscSteps; i++ {
		phi := math.Pi * float64(i) / halfDiscSteps
		q := center.Add(n.Mul(math.Cos(phi))).Add(tr.Mul(math.Sin(phi)))
		p = p.LineTo(q)
	}
	return p
}

const (
	// zeroLengthThreshold is the minimal length of a stripe.
	zeroLengthThreshold = 1e-10

	halfDiscSteps = 12
)
