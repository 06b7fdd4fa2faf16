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

// Package style holds the per-class input rasters and their styling.
package style

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/scale"
)

var (
	// ErrBadGrid is returned by NewClassGrid for inconsistent input.
	ErrBadGrid = errors.New("style: invalid class grid")

	// ErrClassMismatch is returned when the class styles cannot be
	// matched with the data classes.
	ErrClassMismatch = errors.New("style: class styles do not match data classes")
)

// ClassGrid is the density raster of a single class.  Values are stored
// row-major and are never modified after construction.
type ClassGrid struct {
	Name          string
	Width, Height int
	Values        []float64
}

// NewClassGrid checks and wraps a row-major value array.  The values must
// be finite and there must be exactly width*height of them.
func NewClassGrid(name string, width, height int, values []float64) (*ClassGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %q has size %dx%d", ErrBadGrid, name, width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: %q has %d values, want %d",
			ErrBadGrid, name, len(values), width*height)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q has non-finite value at (%d, %d)",
				ErrBadGrid, name, i%width, i/width)
		}
	}
	return &ClassGrid{Name: name, Width: width, Height: height, Values: values}, nil
}

// At returns the value at column x and row y.  The coordinates must be
// inside the grid.
func (g *ClassGrid) At(x, y int) float64 {
	return g.Values[y*g.Width+x]
}

// Max returns the largest value of the grid.
func (g *ClassGrid) Max() float64 {
	m := math.Inf(-1)
	for _, v := range g.Values {
		m = max(m, v)
	}
	return m
}

// ClassBuffer is a ClassGrid together with the way it is drawn.
type ClassBuffer struct {
	Grid *ClassGrid

	// Name is the display name, the grid name unless renamed.
	Name string

	// Color0 and Color1 are the colors for the lowest and highest scaled
	// values.
	Color0, Color1 palette.Color

	// ColorScale is set once the global scale is known.
	ColorScale *scale.ColorScale

	// Mask optionally restricts the class to a set of pixels, as produced
	// by the weaving strategies.
	Mask *mask.Mask

	// Angle is the hatching angle, in radians.
	Angle float64
}

// Spec is the configured style of one class.  Empty fields keep the
// defaults.
type Spec struct {
	// Name selects the data class.  If empty, the class at the same
	// position is used.
	Name   string `json:"name,omitempty"`
	Alias  string `json:"alias,omitempty"`
	Color0 string `json:"color0,omitempty"`
	Color1 string `json:"color1,omitempty"`
}

// Apply wraps grids into class buffers.  If specs is non-empty it must
// have one entry per grid, and the buffers are returned in the order of
// specs.  Class i of the result defaults to white as its low color and
// palette.Category10[i] as its high color.
func Apply(grids []*ClassGrid, specs []Spec) ([]*ClassBuffer, error) {
	if len(specs) > 0 && len(specs) != len(grids) {
		return nil, fmt.Errorf("%w: %d styles for %d classes",
			ErrClassMismatch, len(specs), len(grids))
	}

	res := make([]*ClassBuffer, len(grids))
	used := make([]bool, len(grids))
	for i := range res {
		var s Spec
		if len(specs) > 0 {
			s = specs[i]
		}
		k := i
		if s.Name != "" {
			k = slices.IndexFunc(grids, func(g *ClassGrid) bool { return g.Name == s.Name })
			if k < 0 {
				return nil, fmt.Errorf("%w: no class named %q", ErrClassMismatch, s.Name)
			}
		}
		if used[k] {
			return nil, fmt.Errorf("%w: class %q styled twice", ErrClassMismatch, grids[k].Name)
		}
		used[k] = true

		g := grids[k]
		cb := &ClassBuffer{
			Grid:   g,
			Name:   g.Name,
			Color0: palette.White,
			Color1: palette.Category10[i%len(palette.Category10)],
		}
		if s.Alias != "" {
			cb.Name = s.Alias
		}
		var err error
		if s.Color0 != "" {
			if cb.Color0, err = palette.Parse(s.Color0); err != nil {
				return nil, fmt.Errorf("class %q: %w", g.Name, err)
			}
		}
		if s.Color1 != "" {
			if cb.Color1, err = palette.Parse(s.Color1); err != nil {
				return nil, fmt.Errorf("class %q: %w", g.Name, err)
			}
		}
		res[i] = cb
	}
	return res, nil
}

// Grids returns the grids of the given buffers.
func Grids(buffers []*ClassBuffer) []*ClassGrid {
	res := make([]*ClassGrid, len(buffers))
	for i, b := range buffers {
		res[i] = b.Grid
	}
	return res
}
