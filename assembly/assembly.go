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

// Package assembly combines the per-class values of a tile into something
// that can be drawn.
//
// Most strategies reduce the values to a single color ([ColorToken]).
// Weaving and dot density maps assign pixels to classes instead
// ([MaskToken]), hatching produces a stripe pattern ([HatchToken]) and
// glyphs are small charts ([GlyphToken]).  The separate and time
// strategies produce one plane of colors per class ([Planes]).
package assembly

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/multiclass/glyph"
	"seehuhn.de/go/multiclass/mask"
	"seehuhn.de/go/multiclass/palette"
)

// Type selects an assembly strategy.
type Type int

// These are the supported strategies.
const (
	Max Type = iota
	Mean
	InvMin
	Multiply
	Add
	Separate
	Time
	Weaving
	DotDensity
	Hatching
	Propline
	Glyph
)

var typeNames = []string{
	Max:        "max",
	Mean:       "mean",
	InvMin:     "invmin",
	Multiply:   "multiply",
	Add:        "add",
	Separate:   "separate",
	Time:       "time",
	Weaving:    "weaving",
	DotDensity: "dotdensity",
	Hatching:   "hatching",
	Propline:   "propline",
	Glyph:      "glyph",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

var (
	// ErrUnknownAssembly is returned for unsupported strategy names.
	ErrUnknownAssembly = errors.New("assembly: unknown assembly type")

	// ErrUnknownShape is returned for unsupported weaving lattices.
	ErrUnknownShape = errors.New("assembly: unknown weaving shape")

	// ErrBadSize is returned for negative sizes.
	ErrBadSize = errors.New("assembly: invalid size")

	// ErrBadDuration is returned for negative or non-finite frame
	// durations.
	ErrBadDuration = errors.New("assembly: invalid duration")
)

// ParseType converts a configuration name into a Type.  The empty string
// selects Mean.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(name)
	if name == "" {
		return Mean, nil
	}
	if name == "dot-density" {
		return DotDensity, nil
	}
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownAssembly, name)
}

// Shape is a weaving lattice.
type Shape int

// These are the supported weaving lattices.
const (
	Square Shape = iota
	Hex
	Triangle
)

// ParseShape converts a configuration name into a Shape.  The empty
// string selects Square.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(name) {
	case "", "square":
		return Square, nil
	case "hex", "hexa":
		return Hex, nil
	case "tri", "triangle":
		return Triangle, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownShape, name)
}

// Defaults for the size parameter.
const (
	DefaultWeavingSize = 8
	DefaultDotSize     = 1
	DefaultThickness   = 4
)

// DefaultDuration is the time per class, in seconds, for "time".
const DefaultDuration = 1.0

// Config selects and parameterizes a strategy.
type Config struct {
	Type string `json:"type,omitempty"`

	// Shape is the weaving lattice: "square", "hex" or "tri".
	Shape string `json:"shape,omitempty"`

	// Size is the weaving cell size, the dot size, or the stripe
	// thickness for hatching.
	Size int `json:"size,omitempty"`

	// Random shuffles the weaving lattice.  Seed seeds the weaving and
	// dot density shuffles.
	Random bool   `json:"random,omitempty"`
	Seed   uint64 `json:"seed,omitempty"`

	// Weights, if set, gives the share of weaving cells per class.
	Weights []float64 `json:"weights,omitempty"`

	// Threshold and IgnoreZero configure "invmin".
	Threshold  float64 `json:"threshold,omitempty"`
	IgnoreZero bool    `json:"ignoreZero,omitempty"`

	// Sort, WidthProp and ColProp configure hatching.
	Sort      bool    `json:"sort,omitempty"`
	WidthProp float64 `json:"widthprop,omitempty"`
	ColProp   bool    `json:"colprop,omitempty"`

	// Duration is the time per class, in seconds, for "time".  The
	// default is DefaultDuration.
	Duration float64 `json:"duration,omitempty"`

	Glyph *glyph.Spec `json:"glyphSpec,omitempty"`
}

// Kind returns the parsed strategy type.
func (c *Config) Kind() (Type, error) {
	return ParseType(c.Type)
}

// CellSize returns Size, with the default for the strategy applied.
func (c *Config) CellSize() int {
	if c.Size > 0 {
		return c.Size
	}
	switch t, _ := c.Kind(); t {
	case Weaving:
		return DefaultWeavingSize
	case DotDensity:
		return DefaultDotSize
	default:
		return DefaultThickness
	}
}

// Interval returns the time each class plane is shown for "time".
func (c *Config) Interval() time.Duration {
	d := c.Duration
	if !(d > 0) {
		d = DefaultDuration
	}
	return time.Duration(d * float64(time.Second))
}

// Validate checks the configuration without doing any work.
func (c *Config) Validate() error {
	t, err := c.Kind()
	if err != nil {
		return err
	}
	if c.Size < 0 {
		return fmt.Errorf("%w: %d", ErrBadSize, c.Size)
	}
	if c.Duration < 0 || math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: %g seconds", ErrBadDuration, c.Duration)
	}
	switch t {
	case Weaving:
		_, err = ParseShape(c.Shape)
	case Glyph:
		if c.Glyph == nil {
			return fmt.Errorf("%w: missing glyph specification", glyph.ErrUnknownTemplate)
		}
		err = c.Glyph.Validate()
	}
	return err
}

// Token is the drawable result for one tile.  It is one of ColorToken,
// MaskToken, HatchToken and GlyphToken.
type Token interface {
	isToken()
}

// ColorToken fills the whole tile with one color.
type ColorToken struct {
	Color palette.Color
}

// MaskToken paints class i with Colors[i], restricted to the set cells of
// Masks[i].  The masks cover the whole canvas.
type MaskToken struct {
	Colors []palette.Color
	Masks  []*mask.Mask
}

// HatchToken paints a stripe pattern over the tile.
type HatchToken struct {
	Pattern *HatchPattern
}

// GlyphToken places a chart inside Rect, a canvas rectangle inside the
// tile.
type GlyphToken struct {
	Image image.Image
	Rect  rect.Rect
}

func (ColorToken) isToken() {}
func (MaskToken) isToken()  {}
func (HatchToken) isToken() {}
func (GlyphToken) isToken() {}

// Planes holds, for the separate and time strategies, one color per tile
// for every class: Planes[i][k] is the color of tile k in the plane of
// class i.
type Planes [][]palette.Color
