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

package glyph

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/scale"
)

func TestBars(t *testing.T) {
	req := &Request{
		Spec:   Spec{Template: Bars, Width: 20, Height: 10},
		Values: []float64{10, 5},
		Colors: []palette.Color{palette.Red, palette.Blue},
		Scale:  scale.NewLinear(scale.Domain{Lo: 0, Hi: 10}),
	}
	img, err := Builtin{}.Render(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	rgba := img.(*image.RGBA)

	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 0, color.RGBA{R: 255, A: 255}},
		{5, 9, color.RGBA{R: 255, A: 255}},
		{15, 2, color.RGBA{}},
		{15, 7, color.RGBA{B: 255, A: 255}},
	}
	for _, tc := range cases {
		if got := rgba.RGBAAt(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d, %d): got %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestPunchcard(t *testing.T) {
	req := &Request{
		Spec:   Spec{Template: Punchcard, Width: 30, Height: 10},
		Values: []float64{0, 4, 1},
		Colors: []palette.Color{palette.Red, palette.Green, palette.Blue},
		Scale:  scale.NewLinear(scale.Domain{Lo: 0, Hi: 4}),
	}
	img, err := Builtin{}.Render(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	rgba := img.(*image.RGBA)
	if a := rgba.RGBAAt(5, 5).A; a != 0 {
		t.Errorf("empty disc has alpha %d", a)
	}
	if got := rgba.RGBAAt(15, 5); got.G < 100 || got.A != 255 {
		t.Errorf("full disc center: %v", got)
	}
	// radius of the last disc is half of the full one
	if a := rgba.RGBAAt(25, 1).A; a != 0 {
		t.Errorf("small disc reaches (25, 1)")
	}
	if got := rgba.RGBAAt(25, 5); got.B != 255 {
		t.Errorf("small disc center: %v", got)
	}
}

func TestSpecValidate(t *testing.T) {
	cases := []struct {
		spec Spec
		want error
	}{
		{Spec{Template: Bars, Width: 10, Height: 10}, nil},
		{Spec{Template: "pie", Width: 10, Height: 10}, ErrUnknownTemplate},
		{Spec{Template: Punchcard, Width: 0, Height: 10}, ErrBadSize},
	}
	for _, tc := range cases {
		if err := tc.spec.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%v: got %v, want %v", tc.spec, err, tc.want)
		}
	}
}

// delayed renders a w×1 image after a delay which decreases with w, so
// that later requests finish first.
type delayed struct{}

func (delayed) Render(ctx context.Context, req *Request) (image.Image, error) {
	time.Sleep(time.Duration(10-req.Width) * time.Millisecond)
	if req.Width == 7 {
		return nil, errors.New("seven")
	}
	return image.NewRGBA(image.Rect(0, 0, req.Width, 1)), nil
}

func TestBatchOrder(t *testing.T) {
	b := NewBatch(delayed{})
	for w := 1; w <= 5; w++ {
		if idx := b.Submit(context.Background(), &Request{Spec: Spec{Width: w}}); idx != w-1 {
			t.Errorf("request %d got index %d", w, idx)
		}
	}
	imgs, err := b.Wait()
	if err != nil {
		t.Fatal(err)
	}
	for i, img := range imgs {
		if img.Bounds().Dx() != i+1 {
			t.Errorf("image %d has width %d", i, img.Bounds().Dx())
		}
	}

	b = NewBatch(delayed{})
	b.Submit(context.Background(), &Request{Spec: Spec{Width: 3}})
	b.Submit(context.Background(), &Request{Spec: Spec{Width: 7}})
	if _, err := b.Wait(); err == nil {
		t.Error("failed request not reported")
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Builtin{}.Render(ctx, &Request{Spec: Spec{Template: Bars, Width: 1, Height: 1}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}
