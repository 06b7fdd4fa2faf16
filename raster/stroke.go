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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke rasterizes the line drawn along p with a pen of the given width.
// Joins and caps are round.  Unlike for Fill, open subpaths are not
// closed.  The emit callback is used as for Fill.
//
// The stroke is the union of one round-capped stripe per flattened
// segment.
func (r *Rasterizer) Stroke(p *path.Data, width float64, emit func(y, xMin int, coverage []float32)) {
	if p == nil || !(width > 0) {
		return
	}

	outline := &path.Data{
		Cmds:   r.strokeCmds[:0],
		Coords: r.strokeCoords[:0],
	}
	r.flatten(p, false, func(a, b vec.Vec2) {
		s := Stripe(a, b, width, graphics.LineCapRound)
		if s == nil {
			return
		}
		outline.Cmds = append(outline.Cmds, s.Cmds...)
		outline.Coords = append(outline.Coords, s.Coords...)
	})
	if len(outline.Cmds) == 0 {
		// a path of zero length still leaves a dot
		if len(p.Coords) == 0 {
			return
		}
		c := p.Coords[0]
		outline = Circle(c.X, c.Y, width/2)
	}
	r.strokeCmds, r.strokeCoords = outline.Cmds, outline.Coords

	r.Fill(outline, NonZero, emit)
}
