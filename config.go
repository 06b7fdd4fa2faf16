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

package multiclass

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/multiclass/assembly"
	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/scale"
	"seehuhn.de/go/multiclass/style"
	"seehuhn.de/go/multiclass/tile"
)

var (
	// ErrNoData is returned for configurations without data classes.
	ErrNoData = errors.New("multiclass: no data classes")

	// ErrBadDomain is returned for malformed domain pairs.
	ErrBadDomain = errors.New("multiclass: domain must have two increasing values")
)

// Config describes one multiclass density map.
type Config struct {
	Description string `json:"description,omitempty"`

	// Background is the canvas color, in CSS notation.  The default is
	// transparent.
	Background string `json:"background,omitempty"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// Data holds one density grid per class, each with Width*Height
	// values in row-major order.
	Data []ClassData `json:"data"`

	// Style optionally renames, recolors and reorders the classes.
	Style []style.Spec `json:"style,omitempty"`

	Rebin    tile.RebinConfig `json:"rebin"`
	Scale    ScaleConfig      `json:"scale"`
	Assembly assembly.Config  `json:"assembly"`

	// Stroke, if set, outlines every tile.
	Stroke *StrokeConfig `json:"stroke,omitempty"`

	// XDomain and YDomain give the data coordinates of the canvas edges,
	// for PickDomains.  They default to pixel coordinates.
	XDomain []float64 `json:"xdomain,omitempty"`
	YDomain []float64 `json:"ydomain,omitempty"`
}

// ClassData is the raw density grid of one class.
type ClassData struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// StrokeConfig describes the tile outlines.
type StrokeConfig struct {
	Color string  `json:"color,omitempty"` // default black
	Width float64 `json:"lineWidth,omitempty"`
}

// ErrBadStroke is returned for invalid tile outline settings.
var ErrBadStroke = errors.New("multiclass: invalid stroke")

// ScaleConfig selects the value scale.
type ScaleConfig struct {
	// Type is one of "linear", "sqrt", "cbrt", "log" and "equidepth".
	Type string `json:"type,omitempty"`

	// Base is the logarithm base for "log".
	Base float64 `json:"base,omitempty"`

	// Levels is the number of buckets for "equidepth".
	Levels int `json:"levels,omitempty"`

	// Domain, if set, overrides the domain computed from the tiles.
	Domain []float64 `json:"domain,omitempty"`
}

// ReadConfig decodes a JSON configuration and validates it.
func ReadConfig(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	c := &Config{}
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration.  All configuration errors are
// reported here, before any tiling work is done.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", tile.ErrBadSize, c.Width, c.Height)
	}
	if len(c.Data) == 0 {
		return ErrNoData
	}
	grids, err := c.grids()
	if err != nil {
		return err
	}
	if _, err := style.Apply(grids, c.Style); err != nil {
		return err
	}
	if err := c.Rebin.Validate(); err != nil {
		return err
	}
	if _, err := scale.Parse(c.Scale.Type); err != nil {
		return err
	}
	if c.Scale.Domain != nil {
		if _, err := domain(c.Scale.Domain); err != nil {
			return fmt.Errorf("scale: %w", err)
		}
	}
	if err := c.Assembly.Validate(); err != nil {
		return err
	}
	if _, err := c.background(); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := c.stroke(); err != nil {
		return err
	}
	for _, d := range [][]float64{c.XDomain, c.YDomain} {
		if d != nil {
			if _, err := domain(d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Config) grids() ([]*style.ClassGrid, error) {
	grids := make([]*style.ClassGrid, len(c.Data))
	for i, d := range c.Data {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("class %d", i)
		}
		g, err := style.NewClassGrid(name, c.Width, c.Height, d.Values)
		if err != nil {
			return nil, err
		}
		grids[i] = g
	}
	return grids, nil
}

func (c *Config) background() (palette.Color, error) {
	if c.Background == "" {
		return palette.None, nil
	}
	return palette.Parse(c.Background)
}

func (c *Config) stroke() (*Outline, error) {
	if c.Stroke == nil {
		return nil, nil
	}
	if c.Stroke.Width < 0 {
		return nil, fmt.Errorf("%w: line width %g", ErrBadStroke, c.Stroke.Width)
	}
	o := &Outline{Color: palette.Black, Width: c.Stroke.Width}
	if o.Width == 0 {
		o.Width = 1
	}
	if c.Stroke.Color != "" {
		col, err := palette.Parse(c.Stroke.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadStroke, err)
		}
		o.Color = col
	}
	return o, nil
}

func domain(d []float64) (scale.Domain, error) {
	if len(d) != 2 || !(d[0] < d[1]) {
		return scale.Domain{}, fmt.Errorf("%w: %v", ErrBadDomain, d)
	}
	return scale.Domain{Lo: d[0], Hi: d[1]}, nil
}
