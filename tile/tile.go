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

// Package tile partitions a canvas into tiles and reduces class grids
// over them.
//
// A tile is a footprint mask placed at an offset on the canvas.  The
// tiling generators in this package (pixel, rectangular, Voronoi, hexagonal
// and geographic) return tiles in a fixed emission order, which is also
// the order in which tiles are composed.
package tile

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/multiclass/internal/numeric"
	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/style"
)

// Tile is a region of the canvas together with its aggregated values.
type Tile struct {
	// X and Y give the top-left corner of the mask on the canvas.  Mask
	// cell (0, 0) covers canvas pixel (ceil(X), ceil(Y)).
	X, Y float64

	Mask *mask.Mask

	// Center is the anchor for glyphs and hatch patterns, in canvas
	// coordinates.
	Center vec.Vec2

	// Name identifies geographic features.  It is empty for other tilings.
	Name string

	// DataValues holds one aggregated value per class after aggregation.
	DataValues []float64
}

// New returns a tile at (x, y) with the given mask.  The center is the
// centroid of the set mask cells, or the middle of the mask if no cell
// is set.
func New(x, y float64, m *mask.Mask) *Tile {
	t := &Tile{X: x, Y: y, Mask: m}
	t.Center = t.centroid()
	return t
}

func (t *Tile) origin() (int, int) {
	return int(math.Ceil(t.X)), int(math.Ceil(t.Y))
}

func (t *Tile) centroid() vec.Vec2 {
	x0, y0 := t.origin()
	m := t.Mask
	var sx, sy float64
	n := 0
	for r := range m.Height {
		for c, b := range m.Bits[r*m.Width : (r+1)*m.Width] {
			if b != 0 {
				sx += float64(c)
				sy += float64(r)
				n++
			}
		}
	}
	if n == 0 {
		return vec.Vec2{
			X: float64(x0) + float64(m.Width)/2,
			Y: float64(y0) + float64(m.Height)/2,
		}
	}
	return vec.Vec2{
		X: float64(x0) + sx/float64(n) + 0.5,
		Y: float64(y0) + sy/float64(n) + 0.5,
	}
}

// Area returns the number of canvas pixels covered by the tile.
func (t *Tile) Area() int {
	return t.Mask.Area()
}

// PixCount returns the number of dots of size step which fit into the tile.
func (t *Tile) PixCount(step int) int {
	return t.Mask.PixCount(step)
}

// MaxValue returns the largest aggregated value, or 0 before aggregation.
func (t *Tile) MaxValue() float64 {
	return numeric.Max(t.DataValues)
}

// SumValue returns the sum of the aggregated values.
func (t *Tile) SumValue() float64 {
	return numeric.Sum(t.DataValues)
}

// Contains reports whether the canvas pixel containing (x, y) belongs to
// the tile.
func (t *Tile) Contains(x, y float64) bool {
	x0, y0 := t.origin()
	return t.Mask.Contains(math.Floor(x)-float64(x0), math.Floor(y)-float64(y0))
}

// Bounds returns the canvas rectangle covered by the mask.
func (t *Tile) Bounds() rect.Rect {
	x0, y0 := t.origin()
	return rect.Rect{
		LLx: float64(x0),
		LLy: float64(y0),
		URx: float64(x0 + t.Mask.Width),
		URy: float64(y0 + t.Mask.Height),
	}
}

// RectAtCenter returns a rectangle inside the tile where a glyph can be
// placed.  For tiles rasterized from an outline this is the largest square
// of set cells centered on the cell containing Center; for all other
// tiles it is the bounding box of the mask.  The second return value is
// false if no such rectangle exists.
func (t *Tile) RectAtCenter() (rect.Rect, bool) {
	if t.Mask.Path == nil {
		return t.Bounds(), t.Mask.Width > 0 && t.Mask.Height > 0
	}

	x0, y0 := t.origin()
	cx := int(math.Floor(t.Center.X)) - x0
	cy := int(math.Floor(t.Center.Y)) - y0
	if t.Mask.Get(cy, cx) == 0 {
		return rect.Rect{}, false
	}
	r := 0
	for t.squareSet(cx, cy, r+1) {
		r++
	}
	return rect.Rect{
		LLx: float64(x0 + cx - r),
		LLy: float64(y0 + cy - r),
		URx: float64(x0 + cx + r + 1),
		URy: float64(y0 + cy + r + 1),
	}, true
}

// squareSet reports whether the ring of cells at Chebyshev distance r
// around (cx, cy) is fully set.
func (t *Tile) squareSet(cx, cy, r int) bool {
	m := t.Mask
	for i := -r; i <= r; i++ {
		if m.Get(cy-r, cx+i) == 0 || m.Get(cy+r, cx+i) == 0 ||
			m.Get(cy+i, cx-r) == 0 || m.Get(cy+i, cx+r) == 0 {
			return false
		}
	}
	return true
}

// Aggregation selects how the cells of a tile are reduced to one value.
type Aggregation int

// These are the supported aggregation operators.
const (
	// Min ignores zero cells, which are treated as missing data.
	Min Aggregation = iota
	Mean
	Sum
	Max
)

// ErrUnknownAggregation is returned by ParseAggregation.
var ErrUnknownAggregation = errors.New("tile: unknown aggregation")

// ParseAggregation converts a configuration name into an Aggregation.
// The empty string selects Mean.
func ParseAggregation(name string) (Aggregation, error) {
	switch strings.ToLower(name) {
	case "", "mean":
		return Mean, nil
	case "min":
		return Min, nil
	case "max":
		return Max, nil
	case "sum":
		return Sum, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownAggregation, name)
}

func (op Aggregation) String() string {
	switch op {
	case Min:
		return "min"
	case Mean:
		return "mean"
	case Sum:
		return "sum"
	case Max:
		return "max"
	}
	return fmt.Sprintf("Aggregation(%d)", int(op))
}

// Aggregate reduces every grid over the tile and returns one value per
// grid.  The result is not stored in DataValues.
func (t *Tile) Aggregate(grids []*style.ClassGrid, op Aggregation) []float64 {
	res := make([]float64, len(grids))
	if t.Mask.Width == 1 && t.Mask.Height == 1 {
		if t.Mask.Bits[0] == 0 {
			return res
		}
		x, y := t.origin()
		for i, g := range grids {
			if x >= 0 && x < g.Width && y >= 0 && y < g.Height {
				res[i] = g.At(x, y)
			}
		}
		return res
	}
	for i, g := range grids {
		res[i] = t.AggregateOne(g, op)
	}
	return res
}

// AggregateOne reduces g over the set cells of the tile.  Cells outside
// the grid are skipped.  A tile without included cells gives 0 for every
// operator.
func (t *Tile) AggregateOne(g *style.ClassGrid, op Aggregation) float64 {
	x0, y0 := t.origin()
	m := t.Mask
	rMin, rMax := max(y0, 0), min(y0+m.Height, g.Height)
	cMin, cMax := max(x0, 0), min(x0+m.Width, g.Width)

	var val float64
	cnt := 0
	for r := rMin; r < rMax; r++ {
		row := g.Values[r*g.Width : (r+1)*g.Width]
		bits := m.Bits[(r-y0)*m.Width : (r-y0+1)*m.Width]
		for c := cMin; c < cMax; c++ {
			if bits[c-x0] == 0 {
				continue
			}
			v := row[c]
			switch op {
			case Min:
				if v == 0 {
					continue
				}
				if cnt == 0 || v < val {
					val = v
				}
			case Max:
				if cnt == 0 || v > val {
					val = v
				}
			default:
				val += v
			}
			cnt++
		}
	}

	if op == Mean && cnt > 0 {
		val /= float64(cnt)
	}
	return val
}
