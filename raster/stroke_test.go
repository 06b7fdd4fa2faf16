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
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func strokeArea(r *Rasterizer, p *path.Data, width float64) float64 {
	var sum float64
	r.Stroke(p, width, func(y, xMin int, coverage []float32) {
		for _, c := range coverage {
			sum += float64(c)
		}
	})
	return sum
}

func TestStrokeAreas(t *testing.T) {
	clip := rect.Rect{URx: 64, URy: 64}
	r := New(clip)

	// the half discs are 12-segment polygons, which lose about 1.2% of
	// the cap area
	cases := []struct {
		name  string
		p     *path.Data
		width float64
		want  float64
	}{
		{
			name:  "line",
			p:     (&path.Data{}).MoveTo(vec.Vec2{X: 10, Y: 10}).LineTo(vec.Vec2{X: 30, Y: 10}),
			width: 4,
			want:  20*4 + math.Pi*4,
		},
		{
			name:  "square",
			p:     Rectangle(10, 10, 20, 20),
			width: 2,
			want:  (12*12 - 8*8) + math.Pi - 4, // rounded outer corners
		},
		{
			name:  "dot",
			p:     (&path.Data{}).MoveTo(vec.Vec2{X: 32, Y: 32}),
			width: 4,
			want:  math.Pi * 4,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r.Reset(clip)
			got := strokeArea(r, tc.p, tc.width)
			if math.Abs(got-tc.want) > 0.5 {
				t.Errorf("area %g, want %g", got, tc.want)
			}
		})
	}
}

func TestStrokeOpenPath(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 30, Y: 10}).
		LineTo(vec.Vec2{X: 30, Y: 30})
	dst := image.NewAlpha(image.Rect(0, 0, 40, 40))
	r := New(rect.Rect{URx: 40, URy: 40})
	r.StrokeAlpha(p, 2, dst)

	if a := dst.AlphaAt(20, 10).A; a != 255 {
		t.Errorf("on the line: alpha %d", a)
	}
	if a := dst.AlphaAt(30, 20).A; a != 255 {
		t.Errorf("on the second segment: alpha %d", a)
	}
	// the closing diagonal is not drawn
	if a := dst.AlphaAt(20, 20).A; a != 0 {
		t.Errorf("open path was closed: alpha %d", a)
	}
}

func TestStrokeDegenerate(t *testing.T) {
	r := New(rect.Rect{URx: 10, URy: 10})
	called := false
	emit := func(int, int, []float32) { called = true }
	r.Stroke(nil, 1, emit)
	r.Stroke(Rectangle(1, 1, 5, 5), 0, emit)
	r.Stroke(&path.Data{}, 1, emit)
	if called {
		t.Error("degenerate stroke produced output")
	}
}
