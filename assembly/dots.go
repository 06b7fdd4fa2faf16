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
	"math"
	"math/rand/v2"

	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/tile"
)

// DotDensityMasks scatters dots of size×size pixels over the tiles and
// returns one canvas-sized mask per class, marking the dots of that class.
//
// The capacity of a tile is the number of dots which fit into its mask.
// The tile with the highest density (sum of values per capacity) fills
// all of its capacity; in other tiles class i gets a number of dots
// proportional to its value.  The dots are placed by a Fisher-Yates
// shuffle of the tile's capacity slots.  The shuffle uses a PCG source
// seeded with seed, where a seed of 0 is replaced by 1, so that the same
// arguments always give the same masks.
func DotDensityMasks(tiles []*tile.Tile, n, size, width, height int, seed uint64) []*mask.Mask {
	size = max(size, 1)
	masks := make([]*mask.Mask, n)
	for i := range masks {
		masks[i] = mask.New(width, height, 0)
	}

	capacity := make([]int, len(tiles))
	maxDensity := 0.0
	for k, t := range tiles {
		capacity[k] = t.PixCount(size)
		if capacity[k] > 0 {
			maxDensity = max(maxDensity, t.SumValue()/float64(capacity[k]))
		}
	}
	if maxDensity <= 0 || math.IsInf(maxDensity, 1) {
		return masks
	}

	if seed == 0 {
		seed = 1
	}
	rng := mask.NewRand(seed)
	var slots []uint8
	for k, t := range tiles {
		if capacity[k] == 0 {
			continue
		}
		slots = dotLabels(slots[:0], t.DataValues[:min(n, len(t.DataValues))], maxDensity, capacity[k], rng)
		scatter(masks, t, slots, size)
	}
	return masks
}

// dotLabels fills one slot per unit of capacity: slot label i+1 is a dot
// of class i and label 0 is an empty slot.  The slots are shuffled.
func dotLabels(slots []uint8, values []float64, maxDensity float64, capacity int, rng *rand.Rand) []uint8 {
	slots = append(slots, make([]uint8, capacity)...)
	acc := 0.0
	prev := 0
	for i, v := range values {
		if i >= math.MaxUint8 {
			break
		}
		if v > 0 {
			acc += v / maxDensity
		}
		next := min(int(math.Floor(acc)), capacity)
		for j := prev; j < next; j++ {
			slots[j] = uint8(i + 1)
		}
		prev = max(prev, next)
	}

	for i := capacity - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		slots[i], slots[j] = slots[j], slots[i]
	}
	return slots
}

// scatter places the labeled slots on the step-strided cells of the tile
// mask, in row-major order.
func scatter(masks []*mask.Mask, t *tile.Tile, slots []uint8, size int) {
	b := t.Bounds()
	x0, y0 := int(b.LLx), int(b.LLy)
	m := t.Mask
	k := 0
	for row := 0; row < m.Height; row += size {
		for col := 0; col < m.Width; col += size {
			if m.Get(row, col) == 0 {
				continue
			}
			id := slots[k]
			k++
			if id == 0 {
				continue
			}
			dst := masks[id-1]
			for dy := range size {
				y := y0 + row + dy
				if y < 0 || y >= dst.Height {
					continue
				}
				dst.Fill(x0+col, x0+col+size, y)
			}
		}
	}
}
