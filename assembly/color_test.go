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
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/scale"
	"seehuhn.de/go/multiclass/style"
)

func buffers(hi float64, colors ...palette.Color) []*style.ClassBuffer {
	s := scale.NewLinear(scale.Domain{Lo: 0, Hi: hi})
	res := make([]*style.ClassBuffer, len(colors))
	for i, c := range colors {
		res[i] = &style.ClassBuffer{
			Color0:     palette.White,
			Color1:     c,
			ColorScale: &scale.ColorScale{Scale: s, Color0: palette.White, Color1: c},
		}
	}
	return res
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestMaxScenario(t *testing.T) {
	bb := buffers(6, palette.Red, palette.Blue)
	got := MaxColor(bb, []float64{2, 6})
	if diff := cmp.Diff(palette.Blue, got, approx); diff != "" {
		t.Errorf("max (-want +got):\n%s", diff)
	}
	if got := MaxColor(nil, nil); got != palette.None {
		t.Errorf("no classes: %v", got)
	}
}

func TestMeanScenario(t *testing.T) {
	bb := buffers(6, palette.Red, palette.Blue)
	got := MeanColor(bb, []float64{6, 6})
	want := palette.Color{R: 0.5, B: 0.5, A: 1}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("mean (-want +got):\n%s", diff)
	}

	got = MeanColor(bb, []float64{6, 0})
	if diff := cmp.Diff(palette.Red, got, approx); diff != "" {
		t.Errorf("one class (-want +got):\n%s", diff)
	}

	if got := MeanColor(bb, []float64{0, 0}); got != palette.None {
		t.Errorf("zero values: %v", got)
	}
}

func TestInvMin(t *testing.T) {
	bb := buffers(6, palette.Red, palette.Blue)
	cases := []struct {
		values []float64
		opt    *InvMinOptions
		want   palette.Color
	}{
		{[]float64{3, 5}, &InvMinOptions{Threshold: 2}, palette.Color{R: 1, G: 0.5, B: 0.5, A: 1}},
		{[]float64{3, 5}, &InvMinOptions{Threshold: 3}, palette.None},
		{[]float64{0, 6}, nil, palette.None},
		{[]float64{0, 6}, &InvMinOptions{IgnoreZero: true}, palette.Blue},
		{[]float64{0, 0}, &InvMinOptions{IgnoreZero: true}, palette.None},
		{[]float64{6, 6}, nil, palette.Red},
		{[]float64{6, 6}, &InvMinOptions{IgnoreZero: true}, palette.Red},
	}
	for i, tc := range cases {
		got := InvMinColor(bb, tc.values, tc.opt)
		if diff := cmp.Diff(tc.want, got, approx); diff != "" {
			t.Errorf("%d: (-want +got):\n%s", i, diff)
		}
	}
}

func TestArithmetic(t *testing.T) {
	bb := buffers(6, palette.Red, palette.Blue)

	if got := MultiplyColor(bb, []float64{0, 0}); got != palette.White {
		t.Errorf("multiply zero: %v", got)
	}
	got := MultiplyColor(bb, []float64{6, 6})
	if diff := cmp.Diff(palette.Black, got, approx); diff != "" {
		t.Errorf("multiply (-want +got):\n%s", diff)
	}

	got = AddColor(bb, []float64{6, 6})
	want := palette.Color{R: 1, B: 1, A: 1}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("add (-want +got):\n%s", diff)
	}
	got = AddColor(bb, []float64{3, 0})
	want = palette.Color{R: 0.5, A: 0.5}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("add half (-want +got):\n%s", diff)
	}
}

func TestSeparatePlanes(t *testing.T) {
	bb := buffers(4, palette.Red, palette.Blue)
	planes := SeparatePlanes(bb, [][]float64{{4, 0}, {0, 4}, {2, 2}})
	if len(planes) != 2 || len(planes[0]) != 3 {
		t.Fatalf("got %d planes", len(planes))
	}
	if planes[0][0] != palette.Red || planes[0][1] != palette.White {
		t.Errorf("plane 0: %v", planes[0])
	}
	if planes[1][1] != palette.Blue {
		t.Errorf("plane 1: %v", planes[1])
	}
}

func TestParseType(t *testing.T) {
	for name, want := range map[string]Type{
		"":           Mean,
		"max":        Max,
		"INVMIN":     InvMin,
		"dotdensity": DotDensity,
		"weaving":    Weaving,
		"propline":   Propline,
		"glyph":      Glyph,
	} {
		got, err := ParseType(name)
		if err != nil || got != want {
			t.Errorf("ParseType(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseType("blend"); !errors.Is(err, ErrUnknownAssembly) {
		t.Errorf("blend: got %v", err)
	}
	if Hatching.String() != "hatching" {
		t.Errorf("Hatching.String() = %q", Hatching.String())
	}
}

func TestInterval(t *testing.T) {
	if got := (&Config{Type: "time", Duration: 0.25}).Interval(); got != 250*time.Millisecond {
		t.Errorf("Interval = %v, want 250ms", got)
	}
	if got := (&Config{Type: "time"}).Interval(); got != time.Second {
		t.Errorf("default Interval = %v, want 1s", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		conf Config
		want error
	}{
		{Config{Type: "weaving", Shape: "hex"}, nil},
		{Config{Type: "weaving", Shape: "star"}, ErrUnknownShape},
		{Config{Type: "max", Size: -1}, ErrBadSize},
		{Config{Type: "unknown"}, ErrUnknownAssembly},
		{Config{Type: "time", Duration: 0.5}, nil},
		{Config{Type: "time", Duration: -1}, ErrBadDuration},
		{Config{Type: "time", Duration: math.Inf(1)}, ErrBadDuration},
	}
	for _, tc := range cases {
		if err := tc.conf.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%+v: got %v, want %v", tc.conf, err, tc.want)
		}
	}
	if err := (&Config{Type: "glyph"}).Validate(); err == nil {
		t.Error("glyph without spec accepted")
	}

	c := &Config{Type: "weaving"}
	if c.CellSize() != DefaultWeavingSize {
		t.Errorf("weaving size %d", c.CellSize())
	}
	c = &Config{Type: "dotdensity", Size: 3}
	if c.CellSize() != 3 {
		t.Errorf("dot size %d", c.CellSize())
	}
}
