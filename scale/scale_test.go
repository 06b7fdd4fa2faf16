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

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/multiclass/palette"
)

func TestRoundTrip(t *testing.T) {
	d := Domain{Lo: 0, Hi: 1000}
	scales := []*Scale{
		NewLinear(d),
		NewSqrt(d),
		NewCbrt(d),
		NewRoot(d, 5),
		NewLog(d, 0),
		NewLog(d, math.E),
		NewLog(Domain{Lo: 3, Hi: 70}, 2),
	}
	for _, s := range scales {
		t.Run(s.Kind.String(), func(t *testing.T) {
			lo := s.Domain().Lo
			for i := 0; i <= 100; i++ {
				v := lo + (s.Domain().Hi-lo)*float64(i)/100
				u := s.Map(v)
				if u < 0 || u > 1 {
					t.Fatalf("Map(%g) = %g outside [0, 1]", v, u)
				}
				back := s.InvMap(u)
				if math.Abs(back-v) > 1e-9*max(1, math.Abs(v)) {
					t.Errorf("InvMap(Map(%g)) = %g", v, back)
				}
			}
		})
	}
}

func TestMapValues(t *testing.T) {
	d := Domain{Lo: 0, Hi: 100}
	cases := []struct {
		s    *Scale
		v    float64
		want float64
	}{
		{NewLinear(d), 25, 0.25},
		{NewLinear(d), -5, 0},
		{NewLinear(d), 500, 1},
		{NewSqrt(d), 25, 0.5},
		{NewCbrt(Domain{Lo: 0, Hi: 1000}), 125, 0.5},
		{NewLog(d, 10), 10, 0.5},
		{NewLog(d, 10), 0, 0},
		{NewLog(d, 10), 100, 1},
		{NewLinear(Domain{Lo: 3, Hi: 3}), 3, 0},
		{NewLinear(Domain{Lo: 3, Hi: 3}), 4, 1},
	}
	for _, tc := range cases {
		got := tc.s.Map(tc.v)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%s.Map(%g) = %g, want %g", tc.s.Kind, tc.v, got, tc.want)
		}
	}

	if got := NewLog(d, 10).Domain(); got.Lo != LogEpsilon {
		t.Errorf("log domain starts at %g, want %g", got.Lo, LogEpsilon)
	}
}

func TestEquiDepth(t *testing.T) {
	const n, k = 1000, 4
	s := NewEquiDepth(Domain{Lo: 0, Hi: 1}, k)

	rng := rand.New(rand.NewPCG(1, 2))
	values := make([]float64, n)
	for i := range values {
		values[i] = rng.Float64()
	}
	s.AddPoints(values...)

	if _, err := s.MapErr(0.5); !errors.Is(err, ErrBoundsNotComputed) {
		t.Errorf("MapErr before ComputeBounds: got %v", err)
	}
	s.ComputeBounds()

	b := s.Bounds()
	if len(b) != k+1 {
		t.Fatalf("%d bounds, want %d", len(b), k+1)
	}
	for i := 1; i < len(b); i++ {
		if b[i] < b[i-1] {
			t.Errorf("bounds decrease at %d: %v", i, b)
		}
	}

	counts := make(map[float64]int)
	for _, v := range values {
		counts[s.Map(v)]++
	}
	share := (n + k - 1) / k
	for u, c := range counts {
		if math.Abs(float64(c-n/k)) > float64(share) {
			t.Errorf("bucket %g holds %d values, want about %d", u, c, n/k)
		}
	}

	prev := -1.0
	for i := 0; i <= 200; i++ {
		u := s.Map(float64(i) / 200)
		if u < prev {
			t.Fatalf("Map not monotonic at %g", float64(i)/200)
		}
		prev = u
	}
	if u := s.Map(b[k]); u != 1 {
		t.Errorf("Map(max) = %g, want 1", u)
	}
}

func TestEquiDepthExact(t *testing.T) {
	s := NewEquiDepth(Domain{Lo: 1, Hi: 8}, 4)
	s.AddPoints(8, 7, 6, 5)
	s.AddPoints(4, 3, 2, 1)
	s.ComputeBounds()

	if diff := cmp.Diff([]float64{1, 2, 4, 6, 8}, s.Bounds()); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
	want := []float64{0, 0, 1.0 / 3, 1.0 / 3, 2.0 / 3, 2.0 / 3, 1, 1}
	var got []float64
	for v := 1.0; v <= 8; v++ {
		got = append(got, s.Map(v))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Map mismatch (-want +got):\n%s", diff)
	}
	if got := s.InvMap(1.0 / 3); got != 4 {
		t.Errorf("InvMap(1/3) = %g, want 4", got)
	}
	if got := s.InvMap(0); got != 2 {
		t.Errorf("InvMap(0) = %g, want 2", got)
	}
	if u := s.Map(0); u != 0 {
		t.Errorf("Map below the smallest sample = %g, want 0", u)
	}
	if u := s.Map(100); u != 1 {
		t.Errorf("Map above the largest sample = %g, want 1", u)
	}
}

// Every sample of one bucket must map to the same unit value, and the
// buckets must be spread over all of [0, 1].
func TestEquiDepthBucketsShareValue(t *testing.T) {
	for _, k := range []int{2, 3, 4, 7} {
		s := NewEquiDepth(Domain{Lo: 0, Hi: 100}, k)
		for i := 1; i <= 5*k; i++ {
			s.AddPoints(float64(i * i))
		}
		s.ComputeBounds()

		perBucket := make(map[float64]int)
		for i := 1; i <= 5*k; i++ {
			perBucket[s.Map(float64(i*i))]++
		}
		if len(perBucket) != k {
			t.Errorf("k=%d: %d distinct unit values, want %d", k, len(perBucket), k)
		}
		for u, c := range perBucket {
			if c != 5 {
				t.Errorf("k=%d: unit value %g holds %d samples, want 5", k, u, c)
			}
		}
		if perBucket[0] == 0 || perBucket[1] == 0 {
			t.Errorf("k=%d: buckets do not reach both ends: %v", k, perBucket)
		}
	}
}

func TestEquiDepthSingleLevel(t *testing.T) {
	s := NewEquiDepth(Domain{Lo: 0, Hi: 10}, 1)
	s.AddPoints(3, 5, 9)
	s.ComputeBounds()
	for _, v := range []float64{3, 5, 9} {
		if u := s.Map(v); u != 1 {
			t.Errorf("Map(%g) = %g, want 1", v, u)
		}
	}
	if got := s.InvMap(0.5); got != 9 {
		t.Errorf("InvMap(0.5) = %g, want 9", got)
	}
}

func TestEquiDepthNoSamples(t *testing.T) {
	s := NewEquiDepth(Domain{Lo: 0, Hi: 8}, 4)
	s.ComputeBounds()
	if diff := cmp.Diff([]float64{0, 2, 4, 6, 8}, s.Bounds()); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	for name, want := range map[string]Kind{
		"linear":     Linear,
		"":           Linear,
		"Sqrt":       Sqrt,
		"cbrt":       Cbrt,
		"log":        Log,
		"equidepth":  EquiDepth,
		"equi-depth": EquiDepth,
	} {
		got, err := Parse(name)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := Parse("quantize"); !errors.Is(err, ErrUnknownScale) {
		t.Errorf("Parse(quantize): got %v", err)
	}
}

func TestColorScale(t *testing.T) {
	cs := &ColorScale{
		Scale:  NewLinear(Domain{Lo: 0, Hi: 10}),
		Color0: palette.White,
		Color1: palette.Blue,
	}
	opt := cmpopts.EquateApprox(0, 1e-12)
	if diff := cmp.Diff(palette.Color{R: 0.5, G: 0.5, B: 1, A: 1}, cs.Map(5), opt); diff != "" {
		t.Errorf("Map(5) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(palette.Blue, cs.Map(20), opt); diff != "" {
		t.Errorf("Map(20) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2.5, 5, 7.5}, cs.Thresholds(3), opt); diff != "" {
		t.Errorf("Thresholds mismatch (-want +got):\n%s", diff)
	}
}
