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

// Package raster converts closed vector outlines into per-pixel coverage.
//
// The rasterizer is used to turn tile boundaries (Voronoi cells, hexagons,
// geographic features), hatch stripes and glyph shapes into pixel masks.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// FillRule selects how overlapping subpaths determine the interior.
type FillRule int

const (
	// NonZero treats a point as inside if the winding number is non-zero.
	NonZero FillRule = iota

	// EvenOdd treats a point as inside if the winding number is odd.
	EvenOdd
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// Rasterizer computes the fraction of each pixel covered by a filled path.
// Coverage ranges from 0 (outside) to 1 (inside).
//
// A Rasterizer keeps its scratch buffers between calls, so reusing one
// instance for many paths avoids allocations.  A Rasterizer is not safe for
// concurrent use.
type Rasterizer struct {
	// CTM maps path coordinates to device pixels. Must be non-singular.
	CTM matrix.Matrix

	// Clip restricts output to this device rectangle.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal deviation, in device pixels, allowed when
	// curves are replaced by line segments.
	Flatness float64

	cover     []float32 // signed cover change per pixel, reused as output
	area      []float32 // area contribution within each pixel
	edges     []edge
	active    []int
	crossings []float64

	bbox    [4]float64 // xMin, xMax, yMin, yMax of all edges
	hasBBox bool

	strokeCmds   []path.Command
	strokeCoords []vec.Vec2
}

// New returns a Rasterizer which clips to the given rectangle and uses the
// identity transformation.
func New(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// Reset prepares the Rasterizer for a new clip rectangle.  Buffer capacity
// is preserved.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.crossings = r.crossings[:0]
}

// Fill rasterizes the interior of p.  Coverage is delivered one scanline at
// a time: emit receives the row y, the x coordinate of the first pixel and
// the coverage values from there on.  The slice is only valid during the
// call.  Rows without coverage are not reported.
func (r *Rasterizer) Fill(p *path.Data, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.collectEdges(p)
	if !ok {
		return
	}
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bottom := float64(y + 1)

		for next < len(r.edges) && r.edges[next].yMin() < bottom {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.yMax() <= top {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			if r.accumulate(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		if rule == EvenOdd {
			integrateEvenOdd(r.cover, r.area)
		} else {
			integrateNonZero(r.cover, r.area)
		}
		if row, offset := trimZeros(r.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// collectEdges flattens p into device space line segments and returns the
// integer bounding box of the result, clamped to the clip rectangle.
func (r *Rasterizer) collectEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.hasBBox = false

	r.flatten(p, true, r.addEdge)

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.bbox[0])), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bbox[1]))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bbox[2])), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bbox[3]))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// flatten replaces the curves of p by line segments and reports every
// segment to line.  If closeAll is set, open subpaths are closed as for
// filling.
func (r *Rasterizer) flatten(p *path.Data, closeAll bool, line func(a, b vec.Vec2)) {
	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if closeAll && current != start {
				line(current, start) // implicit close
			}
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			line(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(current, p.Coords[k], p.Coords[k+1], line)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCube(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], line)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				line(current, start)
			}
			current = start
		}
	}
	if closeAll && current != start {
		line(current, start)
	}
}

// toDevice applies the CTM to a point.
func (r *Rasterizer) toDevice(p vec.Vec2) (float64, float64) {
	m := r.CTM
	return m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]
}

func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	x0, y0 := r.toDevice(p0)
	x1, y1 := r.toDevice(p1)

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	lx, hx := min(x0, x1), max(x0, x1)
	ly, hy := min(y0, y1), max(y0, y1)
	if !r.hasBBox {
		r.bbox = [4]float64{lx, hx, ly, hy}
		r.hasBBox = true
		return
	}
	r.bbox[0] = min(r.bbox[0], lx)
	r.bbox[1] = max(r.bbox[1], hx)
	r.bbox[2] = min(r.bbox[2], ly)
	r.bbox[3] = max(r.bbox[3], hy)
}

// deviceLength returns the length of v after the linear part of the CTM.
func (r *Rasterizer) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}.Length()
}

func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2, line func(a, b vec.Vec2)) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		line(prev, q)
		prev = q
	}
}

func (r *Rasterizer) flattenCube(p0, p1, p2, p3 vec.Vec2, line func(a, b vec.Vec2)) {
	// Wang's formula
	d := max(r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)), r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)))
	n := 1
	if d > 0 {
		if f := math.Sqrt(3 * d / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).Add(p1.Mul(3 * s * s * t)).Add(p2.Mul(3 * s * t * t)).Add(p3.Mul(t * t * t))
		line(prev, q)
		prev = q
	}
}

// Coverage model: every edge crossing a pixel adds its signed vertical
// extent to cover[x] and that extent weighted by the uncovered part of the
// pixel to the right of the crossing to area[x].  A left-to-right prefix sum
// over cover, plus area of the current pixel, is the signed area of the
// path inside the pixel.

// accumulate adds the contribution of e within scanline y.  It reports
// whether anything was added.
func (r *Rasterizer) accumulate(e *edge, y, xMin, xMax int) bool {
	top := max(float64(y), e.yMin())
	bottom := min(float64(y+1), e.yMax())
	if bottom <= top {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(top-e.y0)
	xb := e.x0 + e.dxdy*(bottom-e.y0)
	left, right := min(xa, xb), max(xa, xb)
	pixLeft := int(math.Floor(left))
	pixRight := int(math.Floor(right))

	if pixLeft >= xMax {
		return false
	}
	if pixRight < xMin || pixLeft == pixRight {
		r.deposit(e, top, bottom, sign, pixLeft, xMin, xMax)
		return true
	}

	// split the segment where it crosses vertical pixel boundaries
	r.crossings = append(r.crossings[:0], top, bottom)
	dydx := 1 / e.dxdy
	for x := pixLeft + 1; x <= pixRight; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > top && yx < bottom {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)
	for i := 0; i+1 < len(r.crossings); i++ {
		a, b := r.crossings[i], r.crossings[i+1]
		if b <= a {
			continue
		}
		xm := e.x0 + e.dxdy*((a+b)/2-e.y0)
		r.deposit(e, a, b, sign, int(math.Floor(xm)), xMin, xMax)
	}
	return true
}

// deposit records a piece of e between top and bottom that lies within
// pixel column pix.
func (r *Rasterizer) deposit(e *edge, top, bottom float64, sign float32, pix, xMin, xMax int) {
	c := sign * float32(bottom-top)
	if pix < xMin {
		r.cover[0] += c
		r.area[0] += c
		return
	}
	if pix >= xMax {
		return
	}
	xm := e.x0 + e.dxdy*((top+bottom)/2-e.y0)
	frac := xm - float64(pix)
	i := pix - xMin
	r.cover[i] += c
	r.area[i] += c * float32(1-frac)
}

// integrateNonZero turns cover/area into coverage using the nonzero rule.
// The result overwrites cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd turns cover/area into coverage using the even-odd rule.
// The result overwrites cover.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		v -= 2 * float32(int(v/2))
		if v > 1 {
			v = 2 - v
		}
		cover[i] = v
	}
}

// trimZeros strips leading and trailing zeros.  It returns nil if all
// values are zero.
func trimZeros(row []float32) ([]float32, int) {
	lo := 0
	for lo < len(row) && row[lo] == 0 {
		lo++
	}
	if lo == len(row) {
		return nil, 0
	}
	hi := len(row)
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	return row[lo:hi], lo
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimal vertical extent for an edge to
	// contribute coverage.
	horizontalEdgeThreshold = 1e-10
)
