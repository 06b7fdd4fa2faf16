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

// Package mask implements boolean membership grids.
//
// A Mask describes the footprint of a tile, the pixels owned by a class
// in a weaving pattern, or the dots scattered by a dot density map.
package mask

import (
	"errors"
	"math/rand/v2"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/multiclass/raster"
)

// Mask is a width×height grid of 0/1 cells, stored row-major.
type Mask struct {
	Width, Height int
	Bits          []uint8

	// Path, if non-nil, is the outline the mask was rasterized from, in the
	// mask's own coordinate system.
	Path *path.Data
}

var (
	// ErrEmptyMask is returned when sampling from a mask without set cells.
	ErrEmptyMask = errors.New("mask: sampling from empty mask")

	// ErrCorruptRowCounts indicates that the row counts passed to
	// RandomPoint do not describe the mask.
	ErrCorruptRowCounts = errors.New("mask: row counts inconsistent with mask")
)

// New allocates a mask with every cell set to fill.
func New(width, height int, fill uint8) *Mask {
	width = max(width, 0)
	height = max(height, 0)
	m := &Mask{
		Width:  width,
		Height: height,
		Bits:   make([]uint8, width*height),
	}
	if fill != 0 {
		for i := range m.Bits {
			m.Bits[i] = 1
		}
	}
	return m
}

// Get returns the cell at the given row and column.
// Cells outside the mask read as 0.
func (m *Mask) Get(row, col int) uint8 {
	if row < 0 || row >= m.Height || col < 0 || col >= m.Width {
		return 0
	}
	return m.Bits[row*m.Width+col]
}

// Set changes the cell at the given row and column.
// Writes outside the mask are ignored.
func (m *Mask) Set(row, col int, v uint8) {
	if row < 0 || row >= m.Height || col < 0 || col >= m.Width {
		return
	}
	if v != 0 {
		v = 1
	}
	m.Bits[row*m.Width+col] = v
}

// Contains reports whether the cell containing the point (x, y), given
// in mask coordinates, is set.
func (m *Mask) Contains(x, y float64) bool {
	if x < 0 || y < 0 {
		return false
	}
	return m.Get(int(y), int(x)) != 0
}

// Fill sets the cells [x0, x1) of the given row, clipped to the mask.
func (m *Mask) Fill(x0, x1, row int) {
	if row < 0 || row >= m.Height {
		return
	}
	x0 = max(x0, 0)
	x1 = min(x1, m.Width)
	line := m.Bits[row*m.Width:]
	for x := x0; x < x1; x++ {
		line[x] = 1
	}
}

// Bounds returns the mask rectangle in its own coordinate system.
func (m *Mask) Bounds() rect.Rect {
	return rect.Rect{URx: float64(m.Width), URy: float64(m.Height)}
}

// RowCounts returns the cumulative number of set cells, sampled every step
// cells along both axes.  Entry i counts the sampled rows 0, step, ...,
// i*step.  A step below 1 is treated as 1.
func (m *Mask) RowCounts(step int) []int {
	step = max(step, 1)
	res := make([]int, 0, (m.Height+step-1)/step)
	total := 0
	for y := 0; y < m.Height; y += step {
		line := m.Bits[y*m.Width : (y+1)*m.Width]
		for x := 0; x < m.Width; x += step {
			total += int(line[x])
		}
		res = append(res, total)
	}
	return res
}

// PixCount returns the number of set cells on the step-strided sub-grid.
// This is the number of dots of size step which fit into the mask.
func (m *Mask) PixCount(step int) int {
	rc := m.RowCounts(step)
	if len(rc) == 0 {
		return 0
	}
	return rc[len(rc)-1]
}

// Area returns the number of set cells.
func (m *Mask) Area() int {
	return m.PixCount(1)
}

// RandomPoint draws a set cell, uniformly distributed over all set cells.
//
// If rowcounts is non-nil, it must be the result of m.RowCounts(1); callers
// drawing many points pass it in to avoid recomputing it.
func (m *Mask) RandomPoint(rng *rand.Rand, rowcounts []int) (row, col int, err error) {
	if rowcounts == nil {
		rowcounts = m.RowCounts(1)
	}
	if len(rowcounts) != m.Height {
		return 0, 0, ErrCorruptRowCounts
	}
	if m.Height == 0 || rowcounts[m.Height-1] == 0 {
		return 0, 0, ErrEmptyMask
	}
	d := rng.IntN(rowcounts[m.Height-1])

	row = 0
	for row < m.Height && rowcounts[row] <= d {
		row++
	}
	if row == m.Height {
		return 0, 0, ErrCorruptRowCounts
	}
	if row > 0 {
		d -= rowcounts[row-1]
	}

	line := m.Bits[row*m.Width : (row+1)*m.Width]
	for col, b := range line {
		if b == 0 {
			continue
		}
		if d == 0 {
			return row, col, nil
		}
		d--
	}
	return 0, 0, ErrCorruptRowCounts
}

// NewRand returns the deterministic pseudo-random source used for all
// sampling.  The same seed always gives the same sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^pcgStream))
}

const pcgStream = 0x9e3779b97f4a7c15

// FromPath rasterizes the closed outline p into a width×height mask.  A
// cell is set if at least threshold of its area lies inside the outline;
// a threshold of 0.5 approximates sampling at pixel centers.  The
// outline is kept in the Path field.
func FromPath(p *path.Data, width, height int, threshold float64) *Mask {
	m := New(width, height, 0)
	m.Path = p
	if p == nil || width <= 0 || height <= 0 {
		return m
	}
	r := raster.New(m.Bounds())
	FillFrom(m, r, p, raster.NonZero, threshold)
	return m
}

// FillFrom sets the cells of m covered by p, using the given rasterizer
// and fill rule.  Cells already set stay set.
func FillFrom(m *Mask, r *raster.Rasterizer, p *path.Data, rule raster.FillRule, threshold float64) {
	if p == nil {
		return
	}
	r.Fill(p, rule, func(y, xMin int, coverage []float32) {
		if y < 0 || y >= m.Height {
			return
		}
		line := m.Bits[y*m.Width : (y+1)*m.Width]
		for i, c := range coverage {
			x := xMin + i
			if x >= 0 && x < m.Width && c > 0 && float64(c) >= threshold {
				line[x] = 1
			}
		}
	})
}
