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

package style

import (
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/multiclass/palette"
)

func TestNewClassGrid(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		values []float64
		ok     bool
	}{
		{"ok", 2, 2, []float64{1, 2, 3, 4}, true},
		{"short", 2, 2, []float64{1, 2, 3}, false},
		{"empty", 0, 2, nil, false},
		{"nan", 2, 1, []float64{1, math.NaN()}, false},
		{"inf", 1, 1, []float64{math.Inf(1)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewClassGrid(tc.name, tc.w, tc.h, tc.values)
			if tc.ok {
				if err != nil {
					t.Fatal(err)
				}
				if g.At(1, 1) != 4 || g.Max() != 4 {
					t.Errorf("At(1, 1) = %g, Max() = %g", g.At(1, 1), g.Max())
				}
			} else if !errors.Is(err, ErrBadGrid) {
				t.Errorf("got %v, want ErrBadGrid", err)
			}
		})
	}
}

func grids(t *testing.T, names ...string) []*ClassGrid {
	t.Helper()
	var res []*ClassGrid
	for _, name := range names {
		g, err := NewClassGrid(name, 1, 1, []float64{1})
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, g)
	}
	return res
}

func TestApplyDefaults(t *testing.T) {
	bufs, err := Apply(grids(t, "a", "b"), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range bufs {
		if b.Color0 != palette.White || b.Color1 != palette.Category10[i] {
			t.Errorf("class %d: colors %v, %v", i, b.Color0, b.Color1)
		}
	}
	if bufs[1].Name != "b" {
		t.Errorf("name %q, want b", bufs[1].Name)
	}
}

func TestApplySpecs(t *testing.T) {
	specs := []Spec{
		{Name: "b", Alias: "Bee", Color1: "red"},
		{Name: "a", Color0: "#000"},
	}
	bufs, err := Apply(grids(t, "a", "b"), specs)
	if err != nil {
		t.Fatal(err)
	}
	if bufs[0].Grid.Name != "b" || bufs[0].Name != "Bee" || bufs[0].Color1 != palette.Red {
		t.Errorf("first class: %+v", bufs[0])
	}
	if bufs[1].Grid.Name != "a" || bufs[1].Color0 != palette.Black ||
		bufs[1].Color1 != palette.Category10[1] {
		t.Errorf("second class: %+v", bufs[1])
	}
}

func TestApplyErrors(t *testing.T) {
	g := grids(t, "a", "b")
	cases := map[string][]Spec{
		"count":   {{Name: "a"}},
		"missing": {{Name: "a"}, {Name: "c"}},
		"twice":   {{Name: "a"}, {Name: "a"}},
	}
	for name, specs := range cases {
		if _, err := Apply(g, specs); !errors.Is(err, ErrClassMismatch) {
			t.Errorf("%s: got %v, want ErrClassMismatch", name, err)
		}
	}
	if _, err := Apply(g, []Spec{{Color0: "mauve-ish"}, {}}); !errors.Is(err, palette.ErrSyntax) {
		t.Errorf("bad color: got %v", err)
	}
}
