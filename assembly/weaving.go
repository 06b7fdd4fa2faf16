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
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/raster"
	"seehuhn.de/go/multiclass/tile"
)

// WeavingMasks divides a width×height canvas into a lattice of cells of
// the given size and assigns every cell to one of len(weights) classes.
// The share of cells owned by class i is proportional to weights[i]; if
// weights is nil or all zero, every class gets an equal share.  Cells are
// handed out in an interleaved order.  If random is set, the order within
// each run of len(weights) consecutive cells is shuffled using the given
// seed.  The same arguments always give the same masks.
//
// The result holds one canvas-sized ownership mask per class.
func WeavingMasks(shape Shape, weights []float64, size, width, height int, random bool, seed uint64) ([]*mask.Mask, error) {
	n := len(weights)
	if n == 0 {
		return nil, nil
	}
	if size <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: weaving size %d on %dx%d canvas", ErrBadSize, size, width, height)
	}

	var cells []cell
	switch shape {
	case Square:
		cells = squareCells(size, width, height)
	case Hex:
		tiles, err := tile.HexTiling(width, height, float64(size))
		if err != nil {
			return nil, err
		}
		cells = make([]cell, len(tiles))
		for i, t := range tiles {
			cells[i] = cell{t: t}
		}
	case Triangle:
		cells = triangleCells(float64(size), width, height)
	default:
		return nil, fmt.Errorf("%w: Shape(%d)", ErrUnknownShape, int(shape))
	}

	var perm func([]int)
	if random {
		rng := mask.NewRand(seed)
		perm = func(xs []int) {
			rng.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
		}
	}
	labels := interleave(weights, len(cells), perm)

	own := &ownership{
		width:  width,
		height: height,
		owner:  make([]int16, width*height),
		best:   make([]float32, width*height),
	}
	r := raster.New(rect.Rect{URx: float64(width), URy: float64(height)})
	for i, c := range cells {
		c.paint(own, int16(labels[i]), r)
	}

	masks := make([]*mask.Mask, n)
	for i := range masks {
		masks[i] = mask.New(width, height, 0)
	}
	for k, o := range own.owner {
		if own.best[k] > 0 {
			masks[o].Bits[k] = 1
		}
	}
	return masks, nil
}

// SquareMasks returns weaving masks for n equally weighted classes on a
// square lattice.
func SquareMasks(n, size, width, height int, random bool, seed uint64) ([]*mask.Mask, error) {
	return WeavingMasks(Square, make([]float64, n), size, width, height, random, seed)
}

// HexMasks returns weaving masks for n equally weighted classes on a
// hexagonal lattice.
func HexMasks(n, size, width, height int, random bool, seed uint64) ([]*mask.Mask, error) {
	return WeavingMasks(Hex, make([]float64, n), size, width, height, random, seed)
}

// TriangleMasks returns weaving masks for n equally weighted classes on a
// lattice of equilateral triangles.
func TriangleMasks(n, size, width, height int, random bool, seed uint64) ([]*mask.Mask, error) {
	return WeavingMasks(Triangle, make([]float64, n), size, width, height, random, seed)
}

// interleave assigns k cells to classes in proportion to the weights,
// using smooth weighted round-robin.  Every prefix of the result is within
// one cell of the exact share of each class.  If perm is non-nil, it is
// applied to every run of len(weights) consecutive labels.
func interleave(weights []float64, k int, perm func([]int)) []int {
	n := len(weights)
	w := make([]float64, n)
	total := 0.0
	for i, x := range weights {
		if x > 0 && !math.IsInf(x, 1) {
			w[i] = x
			total += x
		}
	}
	if total == 0 {
		for i := range w {
			w[i] = 1
		}
		total = float64(n)
	}

	labels := make([]int, k)
	current := make([]float64, n)
	for j := range labels {
		best := 0
		for i := range current {
			current[i] += w[i]
			if current[i] > current[best] {
				best = i
			}
		}
		current[best] -= total
		labels[j] = best
	}

	if perm != nil {
		for start := 0; start < k; start += n {
			perm(labels[start:min(start+n, k)])
		}
	}
	return labels
}

// cell is one lattice cell: a rectangle, a tile or a polygon.
type cell struct {
	box  [4]int // x0, y0, x1, y1 for rectangles
	t    *tile.Tile
	poly []vec.Vec2
}

// ownership records, for every canvas pixel, the label of the cell
// covering the largest part of the pixel.
type ownership struct {
	width, height int
	owner         []int16
	best          []float32
}

// claim assigns pixel (x, y) to label if the new coverage c exceeds the
// coverage of the current owner.
func (o *ownership) claim(x, y int, label int16, c float32) {
	if x < 0 || x >= o.width || y < 0 || y >= o.height {
		return
	}
	k := y*o.width + x
	if c > o.best[k] {
		o.best[k] = c
		o.owner[k] = label
	}
}

// paint claims the pixels of c for label.
func (c cell) paint(o *ownership, label int16, r *raster.Rasterizer) {
	switch {
	case c.t != nil:
		b := c.t.Bounds()
		x0, y0 := int(b.LLx), int(b.LLy)
		m := c.t.Mask
		for row := range m.Height {
			for col := range m.Width {
				if m.Get(row, col) != 0 {
					o.claim(x0+col, y0+row, label, 1)
				}
			}
		}
	case c.poly != nil:
		r.Reset(rect.Rect{URx: float64(o.width), URy: float64(o.height)})
		r.Fill(raster.Polygon(c.poly), raster.NonZero, func(y, xMin int, coverage []float32) {
			for i, a := range coverage {
				o.claim(xMin+i, y, label, a)
			}
		})
	default:
		for y := c.box[1]; y < c.box[3]; y++ {
			for x := c.box[0]; x < c.box[2]; x++ {
				o.claim(x, y, label, 1)
			}
		}
	}
}

// squareCells returns the cells of a square lattice.  Within each row
// the cells are rotated by the row index, so that interleaved labels form
// a diagonal weave instead of columns.
func squareCells(size, width, height int) []cell {
	cols := (width + size - 1) / size
	rows := (height + size - 1) / size
	cells := make([]cell, cols*rows)
	for row := range rows {
		for col := range cols {
			k := row*cols + (col+row)%cols
			cells[k] = cell{box: [4]int{
				col * size, row * size,
				min((col+1)*size, width), min((row+1)*size, height),
			}}
		}
	}
	return cells
}

// triangleCells returns the cells of a lattice of equilateral triangles
// with side length size.  Rows are size·√3/2 high and alternate between
// upward and downward pointing triangles.
func triangleCells(size float64, width, height int) []cell {
	hh := size * math.Sqrt(3) / 2
	var cells []cell
	for row := 0; float64(row)*hh < float64(height); row++ {
		y0 := float64(row) * hh
		y1 := y0 + hh
		for j := -1; float64(j)*size/2 < float64(width); j++ {
			x := float64(j) * size / 2
			var poly []vec.Vec2
			if (j+row)%2 == 0 {
				poly = []vec.Vec2{{X: x, Y: y1}, {X: x + size, Y: y1}, {X: x + size/2, Y: y0}}
			} else {
				poly = []vec.Vec2{{X: x, Y: y0}, {X: x + size, Y: y0}, {X: x + size/2, Y: y1}}
			}
			cells = append(cells, cell{poly: poly})
		}
	}
	return cells
}
