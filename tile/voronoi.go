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

package tile

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/raster"
)

// ErrDegenerateSite is returned for Voronoi sites which coincide with an
// earlier site or are not finite.
var ErrDegenerateSite = errors.New("tile: degenerate Voronoi site")

// VoronoiTiling partitions the canvas into the Voronoi cells of the given
// sites.  Each cell is clipped to the canvas and rasterized into a mask;
// a pixel belongs to the cell covering the largest part of it, and on a
// tie to the cell of the earlier site.  Tiles are returned in site order.  Sites whose cell misses the canvas, or
// covers no pixel, produce no tile.
func VoronoiTiling(width, height int, sites []vec.Vec2) ([]*Tile, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrBadSize, width, height)
	}

	seen := make(map[vec.Vec2]int, len(sites))
	for i, s := range sites {
		if math.IsNaN(s.X) || math.IsNaN(s.Y) || math.IsInf(s.X, 0) || math.IsInf(s.Y, 0) {
			return nil, fmt.Errorf("%w: site %d is %v", ErrDegenerateSite, i, s)
		}
		if j, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w: sites %d and %d coincide", ErrDegenerateSite, j, i)
		}
		seen[s] = i
	}

	// sites sorted by x, so that neighbors can be visited in order of
	// increasing horizontal distance
	order := make([]int, len(sites))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(sites[a].X, sites[b].X)
	})
	pos := make([]int, len(sites))
	for k, i := range order {
		pos[i] = k
	}

	canvas := []vec.Vec2{
		{X: 0, Y: 0},
		{X: float64(width), Y: 0},
		{X: float64(width), Y: float64(height)},
		{X: 0, Y: float64(height)},
	}

	regions := make([]region, 0, len(sites))
	var buf []vec.Vec2
	for i, s := range sites {
		poly := slices.Clone(canvas)
		radius := maxDist(poly, s)

		lo, hi := pos[i]-1, pos[i]+1
		for len(poly) > 0 && (lo >= 0 || hi < len(order)) {
			var j int
			switch {
			case lo < 0:
				j, hi = order[hi], hi+1
			case hi >= len(order):
				j, lo = order[lo], lo-1
			case s.X-sites[order[lo]].X <= sites[order[hi]].X-s.X:
				j, lo = order[lo], lo-1
			default:
				j, hi = order[hi], hi+1
			}
			if math.Abs(sites[j].X-s.X) > 2*radius {
				break
			}
			poly, buf = clipHalfPlane(poly, buf, s, sites[j]), poly
			radius = maxDist(poly, s)
		}
		if len(poly) < 3 {
			continue
		}
		regions = append(regions, newRegion([][]vec.Vec2{poly}))
	}

	var tiles []*Tile
	for _, t := range partition(width, height, regions, raster.NonZero) {
		if t != nil {
			tiles = append(tiles, t)
		}
	}
	return tiles, nil
}

// RandomVoronoiTiling scatters n sites uniformly over the canvas and
// returns their Voronoi tiling.  The same seed gives the same partition.
func RandomVoronoiTiling(width, height, n int, seed uint64) ([]*Tile, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d Voronoi sites", ErrBadSize, n)
	}
	rng := mask.NewRand(seed)
	sites := make([]vec.Vec2, n)
	for i := range sites {
		sites[i] = vec.Vec2{
			X: rng.Float64() * float64(width),
			Y: rng.Float64() * float64(height),
		}
	}
	return VoronoiTiling(width, height, sites)
}

// HexSites returns the centers of a hexagonal lattice with the given
// spacing.  Rows are size/√2 apart and odd rows are shifted by size/2.
// The lattice extends one cell beyond the right canvas edge.
func HexSites(width, height int, size float64) []vec.Vec2 {
	if !(size > 0) {
		return nil
	}
	dy := size / math.Sqrt2
	var sites []vec.Vec2
	for row := 0; ; row++ {
		y := float64(row) * dy
		if y >= float64(height) {
			break
		}
		x0 := float64(row%2) * size / 2
		for col := 0; ; col++ {
			x := x0 + float64(col)*size
			if x >= float64(width)+size {
				break
			}
			sites = append(sites, vec.Vec2{X: x, Y: y})
		}
	}
	return sites
}

// HexTiling returns the Voronoi tiling of the hexagonal lattice with the
// given spacing.
func HexTiling(width, height int, size float64) ([]*Tile, error) {
	if !(size > 0) {
		return nil, fmt.Errorf("%w: hexagon size %g", ErrBadSize, size)
	}
	return VoronoiTiling(width, height, HexSites(width, height, size))
}

// clipHalfPlane returns the part of the convex polygon poly which is at
// least as close to s as to q.  The result is written into buf.
func clipHalfPlane(poly, buf []vec.Vec2, s, q vec.Vec2) []vec.Vec2 {
	d := q.Sub(s)
	m := s.Add(q).Mul(0.5)
	side := func(p vec.Vec2) float64 {
		return p.Sub(m).Dot(d)
	}

	out := buf[:0]
	n := len(poly)
	for k := range n {
		a, b := poly[k], poly[(k+1)%n]
		fa, fb := side(a), side(b)
		if fa <= 0 {
			out = append(out, a)
		}
		if (fa < 0 && fb > 0) || (fa > 0 && fb < 0) {
			t := fa / (fa - fb)
			out = append(out, a.Add(b.Sub(a).Mul(t)))
		}
	}
	return out
}

func maxDist(poly []vec.Vec2, s vec.Vec2) float64 {
	var r float64
	for _, p := range poly {
		r = max(r, p.Sub(s).Length())
	}
	return r
}
