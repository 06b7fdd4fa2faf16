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

// Package paint draws the result of a render pass into an image.
//
// This is a reference implementation, used by the command line tool and
// by tests.  Tiles are painted in the order of the tiling, with later
// tiles drawn over earlier ones.
package paint

import (
	"image"
	colorpalette "image/color/palette"
	"image/gif"
	"math"
	"time"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/multiclass"
	"seehuhn.de/go/multiclass/assembly"
	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/raster"
	"seehuhn.de/go/multiclass/tile"
)

// Image paints the tokens of res onto a canvas filled with the background
// color.  For the "separate" and "time" strategies, which produce planes
// instead of tokens, use [Planes].
func Image(res *multiclass.Result) *image.RGBA {
	img := canvas(res)
	for k, t := range res.Tiles {
		if k >= len(res.Tokens) || res.Tokens[k] == nil {
			continue
		}
		Token(img, t, res.Tokens[k])
	}
	Outlines(img, res)
	return img
}

// Planes paints one image per class plane.
func Planes(res *multiclass.Result) []*image.RGBA {
	imgs := make([]*image.RGBA, len(res.Planes))
	for i, plane := range res.Planes {
		img := canvas(res)
		for k, t := range res.Tiles {
			fill(img, footprint(t, nil), plane[k])
		}
		Outlines(img, res)
		imgs[i] = img
	}
	return imgs
}

// Animation combines the planes of a "time" result into a looping GIF,
// showing each plane for res.Interval.  Colors are reduced to the
// web-safe palette.
func Animation(res *multiclass.Result) *gif.GIF {
	delay := int(res.Interval / (10 * time.Millisecond))
	anim := &gif.GIF{}
	for _, img := range Planes(res) {
		frame := image.NewPaletted(img.Rect, colorpalette.WebSafe)
		draw.Draw(frame, frame.Rect, img, image.Point{}, draw.Src)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return anim
}

func canvas(res *multiclass.Result) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	if !res.Background.IsNone() {
		draw.Draw(img, img.Rect, image.NewUniform(res.Background.NRGBA()), image.Point{}, draw.Src)
	}
	return img
}

// Token paints a single token over the footprint of t.
func Token(img *image.RGBA, t *tile.Tile, tok assembly.Token) {
	switch tok := tok.(type) {
	case assembly.ColorToken:
		fill(img, footprint(t, nil), tok.Color)

	case assembly.MaskToken:
		for i, col := range tok.Colors {
			fill(img, footprint(t, &localMask{m: tok.Masks[i]}), col)
		}

	case assembly.HatchToken:
		b := t.Bounds()
		for i, m := range tok.Pattern.Masks(b) {
			fill(img, footprint(t, &localMask{m: m, x0: int(b.LLx), y0: int(b.LLy)}), tok.Pattern.Stripes[i].Color)
		}

	case assembly.GlyphToken:
		if tok.Image == nil {
			return
		}
		draw.ApproxBiLinear.Scale(img, pixelRect(tok.Rect), tok.Image, tok.Image.Bounds(), draw.Over, nil)
	}
}

// Outlines strokes the boundary of every tile with the pen of res.
// Nothing is drawn if res has no pen.
func Outlines(img *image.RGBA, res *multiclass.Result) {
	pen := res.Stroke
	if pen == nil || len(res.Tiles) == 0 {
		return
	}
	alpha := image.NewAlpha(img.Rect)
	r := raster.New(rect.Rect{URx: float64(img.Rect.Dx()), URy: float64(img.Rect.Dy())})
	for _, t := range res.Tiles {
		b := t.Bounds()
		p := t.Mask.Path
		if p == nil {
			p = raster.Rectangle(0, 0, b.URx-b.LLx, b.URy-b.LLy)
		}
		r.CTM = matrix.Matrix{1, 0, 0, 1, b.LLx, b.LLy}
		r.StrokeAlpha(p, pen.Width, alpha)
	}
	fill(img, alpha, pen.Color)
}

// localMask is a mask whose cell (0, 0) covers canvas pixel (x0, y0).
type localMask struct {
	m      *mask.Mask
	x0, y0 int
}

func (l localMask) at(x, y int) bool {
	return l.m.Get(y-l.y0, x-l.x0) != 0
}

// footprint returns the alpha mask of the tile, restricted to the set
// cells of extra if extra is non-nil.
func footprint(t *tile.Tile, extra *localMask) *image.Alpha {
	b := t.Bounds()
	x0, y0 := int(b.LLx), int(b.LLy)
	m := t.Mask
	alpha := image.NewAlpha(image.Rect(x0, y0, x0+m.Width, y0+m.Height))

	for row := range m.Height {
		for col := range m.Width {
			if m.Get(row, col) == 0 {
				continue
			}
			if extra != nil && !extra.at(x0+col, y0+row) {
				continue
			}
			alpha.Pix[row*alpha.Stride+col] = 0xff
		}
	}
	return alpha
}

func fill(img *image.RGBA, alpha *image.Alpha, col palette.Color) {
	if col.IsNone() {
		return
	}
	draw.DrawMask(img, alpha.Rect, image.NewUniform(col.NRGBA()), image.Point{}, alpha, alpha.Rect.Min, draw.Over)
}

func pixelRect(r rect.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.LLx)), int(math.Round(r.LLy)),
		int(math.Round(r.URx)), int(math.Round(r.URy)))
}
