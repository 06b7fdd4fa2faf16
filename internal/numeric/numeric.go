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

// Package numeric holds small generic helpers for slices of numbers.
package numeric

import "golang.org/x/exp/constraints"

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum returns the sum of all elements of xs.
func Sum[T Number](xs []T) T {
	var s T
	for _, x := range xs {
		s += x
	}
	return s
}

// Max returns the largest element of xs, or zero for an empty slice.
func Max[T Number](xs []T) T {
	var m T
	for i, x := range xs {
		if i == 0 || x > m {
			m = x
		}
	}
	return m
}

// ArgMax returns the index of the first largest element of xs, or -1 for
// an empty slice.
func ArgMax[T Number](xs []T) int {
	best := -1
	for i, x := range xs {
		if best < 0 || x > xs[best] {
			best = i
		}
	}
	return best
}

// ArgMin returns the index of the first smallest element of xs, or -1 for
// an empty slice.
func ArgMin[T Number](xs []T) int {
	best := -1
	for i, x := range xs {
		if best < 0 || x < xs[best] {
			best = i
		}
	}
	return best
}

// Clamp limits x to the interval [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Span is a closed interval [Lo, Hi].
type Span[T Number] struct {
	Lo, Hi T
}

// Extend grows s to include x.
func (s Span[T]) Extend(x T) Span[T] {
	return Span[T]{Lo: min(s.Lo, x), Hi: max(s.Hi, x)}
}

// Len returns Hi-Lo.
func (s Span[T]) Len() T {
	return s.Hi - s.Lo
}
