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

// Package glyph draws small per-tile charts.
//
// A glyph summarizes the class values of one tile as a bar chart or a
// punchcard (a row of discs).  Rendering goes through the [Renderer]
// interface so that an external charting engine can be plugged in;
// [Builtin] implements the templates with the raster package.  Requests
// may complete in any order; a [Batch] collects them and returns the
// images in submission order.
package glyph

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/raster"
	"seehuhn.de/go/multiclass/scale"
)

// Glyph templates.
const (
	Bars      = "bars"
	Punchcard = "punchcard"
)

var (
	// ErrUnknownTemplate is returned for unsupported glyph templates.
	ErrUnknownTemplate = errors.New("glyph: unknown template")

	// ErrBadSize is returned for glyphs without area.
	ErrBadSize = errors.New("glyph: invalid glyph size")
)

// Spec is the configured glyph shape.
type Spec struct {
	Template string `json:"template"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Validate checks the template name and size.
func (s *Spec) Validate() error {
	switch s.Template {
	case Bars, Punchcard:
	default:
		return fmt.Errorf("%w %q", ErrUnknownTemplate, s.Template)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, s.Width, s.Height)
	}
	return nil
}

// Request holds everything needed to draw the glyph of one tile.
type Request struct {
	Spec

	// Values holds one raw value per class.
	Values []float64

	// Colors holds one color per class.
	Colors []palette.Color

	// Scale maps values to bar heights or disc areas.  The scale must be
	// final, for equi-depth scales this means its bounds are computed.
	Scale *scale.Scale
}

// Renderer draws glyphs.  Implementations must be safe for concurrent use.
type Renderer interface {
	Render(ctx context.Context, req *Request) (image.Image, error)
}

// Builtin renders the built-in templates.
type Builtin struct{}

// Render implements the [Renderer] interface.
func (Builtin) Render(ctx context.Context, req *Request) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w, h := req.Width, req.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	n := len(req.Values)
	if n == 0 {
		return img, nil
	}

	clip := rect.Rect{URx: float64(w), URy: float64(h)}
	r := raster.New(clip)
	alpha := image.NewAlpha(img.Rect)
	slot := float64(w) / float64(n)
	for i, v := range req.Values {
		u := req.Scale.Map(v)
		if u <= 0 {
			continue
		}
		col := palette.Black
		if i < len(req.Colors) {
			col = req.Colors[i]
		}

		clear(alpha.Pix)
		r.Reset(clip)
		switch req.Template {
		case Bars:
			top := float64(h) * (1 - u)
			r.FillAlpha(raster.Rectangle(float64(i)*slot, top, float64(i+1)*slot, float64(h)), raster.NonZero, alpha)
		case Punchcard:
			radius := math.Sqrt(u) * min(slot, float64(h)) / 2
			r.FillAlpha(raster.Circle((float64(i)+0.5)*slot, float64(h)/2, radius), raster.NonZero, alpha)
		}
		draw.DrawMask(img, img.Rect, image.NewUniform(col.NRGBA()), image.Point{}, alpha, image.Point{}, draw.Over)
	}
	return img, nil
}
