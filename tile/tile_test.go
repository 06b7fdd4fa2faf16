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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/raster"
	"seehuhn.de/go/multiclass/style"
)

func grid(t *testing.T, w, h int, values ...float64) *style.ClassGrid {
	t.Helper()
	g, err := style.NewClassGrid("test", w, h, values)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRectangularScenario(t *testing.T) {
	tiles, err := RectangularTiling(100, 100, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(tiles) != 100 {
		t.Fatalf("got %d tiles, want 100", len(tiles))
	}
	for i, tl := range tiles {
		if tl.Mask.Width != 10 || tl.Mask.Height != 10 || tl.Area() != 100 {
			t.Errorf("tile %d: mask %dx%d", i, tl.Mask.Width, tl.Mask.Height)
		}
	}
	if !tiles[0].Contains(0, 0) {
		t.Error("tile 0 does not contain (0, 0)")
	}
	if tiles[0].Contains(10, 0) {
		t.Error("tile 0 contains (10, 0)")
	}
	if !tiles[1].Contains(10, 0) || !tiles[10].Contains(0, 10) {
		t.Error("tiles not in row-major order")
	}
}

func TestRectangularTruncated(t *testing.T) {
	tiles, err := RectangularTiling(25, 15, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	var sizes [][2]int
	total := 0
	for _, tl := range tiles {
		sizes = append(sizes, [2]int{tl.Mask.Width, tl.Mask.Height})
		total += tl.Area()
	}
	want := [][2]int{{10, 10}, {10, 10}, {5, 10}, {10, 5}, {10, 5}, {5, 5}}
	if diff := cmp.Diff(want, sizes); diff != "" {
		t.Errorf("mask sizes mismatch (-want +got):\n%s", diff)
	}
	if total != 25*15 {
		t.Errorf("tiles cover %d pixels, want %d", total, 25*15)
	}
}

func TestPixelTiling(t *testing.T) {
	tiles, err := PixelTiling(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	g := grid(t, 4, 3,
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12)
	for i, tl := range tiles {
		for _, op := range []Aggregation{Min, Mean, Sum, Max} {
			got := tl.Aggregate([]*style.ClassGrid{g}, op)
			if got[0] != g.Values[i] {
				t.Errorf("tile %d, %s: got %g, want %g", i, op, got[0], g.Values[i])
			}
		}
	}
}

func TestAggregate(t *testing.T) {
	g := grid(t, 4, 3,
		0, 2, 0, 4,
		5, 0, 7, 8,
		9, 10, 0, 12)
	zero := grid(t, 4, 3, make([]float64, 12)...)

	// a 3×2 tile at (1, 1) with one cell cleared
	m := mask.New(3, 2, 1)
	m.Set(1, 2, 0)
	tl := New(1, 1, m)

	cases := []struct {
		op   Aggregation
		want float64
	}{
		{Min, 7},  // 0 cells are ignored
		{Max, 10}, // cells 0, 7, 8, 10, 0
		{Sum, 25},
		{Mean, 5},
	}
	for _, tc := range cases {
		if got := tl.AggregateOne(g, tc.op); got != tc.want {
			t.Errorf("%s: got %g, want %g", tc.op, got, tc.want)
		}
		if got := tl.AggregateOne(zero, tc.op); got != 0 || math.IsNaN(got) {
			t.Errorf("%s on zero grid: got %g", tc.op, got)
		}
	}

	empty := New(0, 0, mask.New(3, 3, 0))
	outside := New(10, 10, mask.New(2, 2, 1))
	for _, op := range []Aggregation{Min, Mean, Sum, Max} {
		if got := empty.AggregateOne(g, op); got != 0 {
			t.Errorf("empty mask, %s: got %g", op, got)
		}
		if got := outside.AggregateOne(g, op); got != 0 {
			t.Errorf("tile outside grid, %s: got %g", op, got)
		}
	}

	// clipped at the bottom right corner
	corner := New(3, 2, mask.New(5, 5, 1))
	if got := corner.AggregateOne(g, Sum); got != 12 {
		t.Errorf("clipped tile: got %g, want 12", got)
	}

	tl.DataValues = tl.Aggregate([]*style.ClassGrid{g, zero}, Sum)
	if tl.MaxValue() != 25 || tl.SumValue() != 25 {
		t.Errorf("MaxValue %g, SumValue %g", tl.MaxValue(), tl.SumValue())
	}
}

func TestParseAggregation(t *testing.T) {
	for name, want := range map[string]Aggregation{"": Mean, "mean": Mean, "MIN": Min, "max": Max, "sum": Sum} {
		got, err := ParseAggregation(name)
		if err != nil || got != want {
			t.Errorf("ParseAggregation(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseAggregation("median"); err == nil {
		t.Error("median accepted")
	}
}

func TestRectAtCenter(t *testing.T) {
	tiles, _ := RectangularTiling(30, 20, 10, 10)
	r, ok := tiles[1].RectAtCenter()
	if !ok || r.LLx != 10 || r.LLy != 0 || r.URx != 20 || r.URy != 10 {
		t.Errorf("rect tile: %v, %t", r, ok)
	}

	m := mask.New(9, 9, 0)
	for y := 1; y < 8; y++ {
		m.Fill(1, 8, y)
	}
	m.Set(1, 1, 0)
	m.Path = raster.Rectangle(1, 1, 8, 8)
	tl := New(20, 30, m)
	r, ok = tl.RectAtCenter()
	if !ok {
		t.Fatal("no rectangle found")
	}
	want := rect.Rect{LLx: 22, LLy: 32, URx: 27, URy: 37}
	if r != want {
		t.Errorf("outline tile: got %v, want %v", r, want)
	}
}
