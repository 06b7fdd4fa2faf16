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

package paint

import (
	"image"
	"image/color"
	"testing"
	"time"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/multiclass"
	"seehuhn.de/go/multiclass/assembly"
	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/tile"
)

func squares(t *testing.T, w, h, size int) []*tile.Tile {
	t.Helper()
	tiles, err := tile.RectangularTiling(w, h, size, size)
	if err != nil {
		t.Fatal(err)
	}
	return tiles
}

func check(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	if got := img.RGBAAt(x, y); got != want {
		t.Errorf("pixel (%d, %d): got %v, want %v", x, y, got, want)
	}
}

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func TestColorTokens(t *testing.T) {
	res := &multiclass.Result{
		Width:      4,
		Height:     2,
		Background: palette.White,
		Tiles:      squares(t, 4, 2, 2),
		Tokens: []assembly.Token{
			assembly.ColorToken{Color: palette.Red},
			assembly.ColorToken{Color: palette.None},
		},
	}
	img := Image(res)
	check(t, img, 0, 0, red)
	check(t, img, 1, 1, red)
	check(t, img, 2, 0, white)
	check(t, img, 3, 1, white)
}

func TestTransparentBackground(t *testing.T) {
	res := &multiclass.Result{
		Width:  2,
		Height: 2,
		Tiles:  squares(t, 2, 2, 2),
		Tokens: []assembly.Token{nil},
	}
	img := Image(res)
	check(t, img, 1, 1, color.RGBA{})
}

func TestMaskToken(t *testing.T) {
	// class 0 owns the left column, class 1 the right one
	left := mask.New(4, 4, 0)
	right := mask.New(4, 4, 0)
	for row := range 4 {
		left.Fill(0, 2, row)
		right.Fill(2, 4, row)
	}
	tok := assembly.MaskToken{
		Colors: []palette.Color{palette.Red, palette.Blue},
		Masks:  []*mask.Mask{left, right},
	}
	tiles := squares(t, 4, 4, 4)
	res := &multiclass.Result{
		Width:      4,
		Height:     4,
		Background: palette.White,
		Tiles:      tiles,
		Tokens:     []assembly.Token{tok},
	}
	img := Image(res)
	check(t, img, 0, 3, red)
	check(t, img, 1, 0, red)
	check(t, img, 2, 2, blue)
	check(t, img, 3, 1, blue)
}

func TestGlyphToken(t *testing.T) {
	glyph := image.NewUniform(color.RGBA{255, 0, 0, 255})
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			src.Set(x, y, glyph.C)
		}
	}
	res := &multiclass.Result{
		Width:      8,
		Height:     8,
		Background: palette.White,
		Tiles:      squares(t, 8, 8, 8),
		Tokens: []assembly.Token{
			assembly.GlyphToken{Image: src, Rect: rect.Rect{LLx: 2, LLy: 2, URx: 6, URy: 6}},
		},
	}
	img := Image(res)
	check(t, img, 3, 3, red)
	check(t, img, 1, 1, white)
	check(t, img, 6, 6, white)
}

func TestPlanes(t *testing.T) {
	res := &multiclass.Result{
		Width:      4,
		Height:     2,
		Background: palette.White,
		Tiles:      squares(t, 4, 2, 2),
		Planes: assembly.Planes{
			{palette.Red, palette.None},
			{palette.None, palette.Blue},
		},
	}
	imgs := Planes(res)
	if len(imgs) != 2 {
		t.Fatalf("%d planes", len(imgs))
	}
	check(t, imgs[0], 0, 0, red)
	check(t, imgs[0], 3, 0, white)
	check(t, imgs[1], 0, 0, white)
	check(t, imgs[1], 3, 0, blue)
}

func TestAnimation(t *testing.T) {
	res := &multiclass.Result{
		Width:      4,
		Height:     2,
		Background: palette.White,
		Tiles:      squares(t, 4, 2, 2),
		Planes: assembly.Planes{
			{palette.Red, palette.None},
			{palette.None, palette.Blue},
		},
		Interval: 250 * time.Millisecond,
	}
	anim := Animation(res)
	if len(anim.Image) != 2 || len(anim.Delay) != 2 {
		t.Fatalf("%d frames, %d delays", len(anim.Image), len(anim.Delay))
	}
	for i, d := range anim.Delay {
		if d != 25 {
			t.Errorf("frame %d: delay %d, want 25", i, d)
		}
	}
	at := func(frame, x, y int) color.RGBA {
		return color.RGBAModel.Convert(anim.Image[frame].At(x, y)).(color.RGBA)
	}
	if got := at(0, 0, 0); got != red {
		t.Errorf("frame 0 at (0, 0): %v", got)
	}
	if got := at(1, 3, 0); got != blue {
		t.Errorf("frame 1 at (3, 0): %v", got)
	}
	if got := at(1, 0, 0); got != white {
		t.Errorf("frame 1 at (0, 0): %v", got)
	}
}

func TestOutlines(t *testing.T) {
	res := &multiclass.Result{
		Width:      20,
		Height:     10,
		Background: palette.White,
		Tiles:      squares(t, 20, 10, 10),
		Tokens: []assembly.Token{
			assembly.ColorToken{Color: palette.Red},
			assembly.ColorToken{Color: palette.Red},
		},
		Stroke: &multiclass.Outline{Color: palette.Black, Width: 2},
	}
	img := Image(res)

	// the shared edge at x = 10 covers pixels 9 and 10
	check(t, img, 9, 5, black)
	check(t, img, 10, 5, black)
	check(t, img, 0, 5, black)
	check(t, img, 5, 0, black)
	check(t, img, 5, 5, red)
	check(t, img, 15, 5, red)

	res.Stroke = nil
	check(t, Image(res), 9, 5, red)
}
