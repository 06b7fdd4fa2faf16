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

// Package testcases holds named end-to-end scenarios.  They are used by
// the tests and benchmarks of the multiclass package and by the export
// command, which renders every scenario into a PNG file.
package testcases

import (
	"math"

	"seehuhn.de/go/multiclass"
	"seehuhn.de/go/multiclass/assembly"
	"seehuhn.de/go/multiclass/tile"
)

// TestCase is one render configuration.
type TestCase struct {
	Name   string // lowercase a-z, 0-9 and _ only
	Config *multiclass.Config
}

// Canvas size used by most scenarios.
const (
	Width  = 64
	Height = 48
)

// blob returns a Gaussian bump with the given peak value, rounded to
// integer counts.
func blob(w, h int, cx, cy, sigma, peak float64) []float64 {
	res := make([]float64, w*h)
	for y := range h {
		for x := range w {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			res[y*w+x] = math.Round(peak * math.Exp(-(dx*dx+dy*dy)/(2*sigma*sigma)))
		}
	}
	return res
}

// ramp returns values increasing from 0 at the left edge to peak at the
// right edge.
func ramp(w, h int, peak float64) []float64 {
	res := make([]float64, w*h)
	for y := range h {
		for x := range w {
			res[y*w+x] = math.Round(peak * float64(x) / float64(w-1))
		}
	}
	return res
}

// threeClasses returns overlapping density blobs for three classes.
func threeClasses() []multiclass.ClassData {
	return []multiclass.ClassData{
		{Name: "alpha", Values: blob(Width, Height, 20, 16, 12, 100)},
		{Name: "beta", Values: blob(Width, Height, 44, 20, 10, 60)},
		{Name: "gamma", Values: ramp(Width, Height, 40)},
	}
}

// config returns a configuration for the three standard classes.
func config(rebin tile.RebinConfig, asm assembly.Config) *multiclass.Config {
	return &multiclass.Config{
		Width:      Width,
		Height:     Height,
		Background: "white",
		Data:       threeClasses(),
		Rebin:      rebin,
		Assembly:   asm,
	}
}
