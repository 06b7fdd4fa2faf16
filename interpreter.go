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

// Package multiclass renders multiclass density maps.
//
// The input is one density grid per class.  A render pass partitions the
// canvas into tiles, aggregates every class over every tile, maps the
// aggregated values through a common scale and finally combines the
// values of each tile into a drawable token, according to the assembly
// strategy.  The result lists the tiles with their tokens in the order
// of the tiling, which is also the order in which they are painted.
package multiclass

import (
	"context"
	"runtime"
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/multiclass/assembly"
	"seehuhn.de/go/multiclass/glyph"
	"seehuhn.de/go/multiclass/palette"
	"seehuhn.de/go/multiclass/scale"
	"seehuhn.de/go/multiclass/style"
	"seehuhn.de/go/multiclass/tile"
)

// Options controls how a render pass is executed.
type Options struct {
	// Workers is the number of goroutines used for aggregation.  The
	// default is runtime.GOMAXPROCS(0).
	Workers int

	// Renderer draws glyphs.  The default is glyph.Builtin.
	Renderer glyph.Renderer

	// Total, if set, is called once per render pass with the number of
	// tiles to aggregate, before the first call to Progress.
	Total func(n int)

	// Progress, if set, is called with the number of tiles completed
	// since the previous call.  It may be called from several goroutines
	// at once.
	Progress func(n int)
}

// Interpreter executes render passes for a fixed configuration.
type Interpreter struct {
	conf *Config
	opt  Options
}

// New validates conf and returns an interpreter for it.  The
// configuration must not be modified while the interpreter is in use.
func New(conf *Config, opt *Options) (*Interpreter, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	ip := &Interpreter{conf: conf}
	if opt != nil {
		ip.opt = *opt
	}
	if ip.opt.Workers <= 0 {
		ip.opt.Workers = runtime.GOMAXPROCS(0)
	}
	if ip.opt.Renderer == nil {
		ip.opt.Renderer = glyph.Builtin{}
	}
	return ip, nil
}

// Run executes one render pass.  The context is checked between the
// phases of the pass; a pass which has started composing runs to
// completion.
func (ip *Interpreter) Run(ctx context.Context) (*Result, error) {
	conf := ip.conf
	log := Logger()

	grids, err := conf.grids()
	if err != nil {
		return nil, err
	}
	buffers, err := style.Apply(grids, conf.Style)
	if err != nil {
		return nil, err
	}
	bg, err := conf.background()
	if err != nil {
		return nil, err
	}
	outline, err := conf.stroke()
	if err != nil {
		return nil, err
	}

	tiles, err := tile.Generate(conf.Width, conf.Height, &conf.Rebin)
	if err != nil {
		return nil, err
	}
	kind, _ := conf.Rebin.Kind()
	log.Debug("tiling", "type", kind, "tiles", len(tiles))
	if ip.opt.Total != nil {
		ip.opt.Total(len(tiles))
	}

	op, err := tile.ParseAggregation(conf.Rebin.Aggregation)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ip.aggregate(tiles, style.Grids(buffers), op)
	log.Debug("aggregated", "op", op, "workers", ip.opt.Workers)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sc, err := ip.newScale(tiles)
	if err != nil {
		return nil, err
	}
	for _, b := range buffers {
		b.ColorScale = &scale.ColorScale{Scale: sc, Color0: b.Color0, Color1: b.Color1}
	}
	d := sc.Domain()
	log.Debug("scale", "kind", sc.Kind, "lo", d.Lo, "hi", d.Hi)

	res := &Result{
		Width:      conf.Width,
		Height:     conf.Height,
		Background: bg,
		Tiles:      tiles,
		Scale:      sc,
		Classes:    buffers,
		Stroke:     outline,
		rebin:      &conf.Rebin,
		xDomain:    conf.XDomain,
		yDomain:    conf.YDomain,
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ip.assemble(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// aggregate sets the DataValues of all tiles.  Tiles are split into
// contiguous ranges, one per worker.
func (ip *Interpreter) aggregate(tiles []*tile.Tile, grids []*style.ClassGrid, op tile.Aggregation) {
	numWorkers := min(ip.opt.Workers, len(tiles))
	if numWorkers == 0 {
		return
	}
	perWorker := (len(tiles) + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for start := 0; start < len(tiles); start += perWorker {
		end := min(start+perWorker, len(tiles))
		wg.Add(1)
		go func(part []*tile.Tile) {
			defer wg.Done()
			const batch = 256
			done := 0
			for _, t := range part {
				t.DataValues = t.Aggregate(grids, op)
				done++
				if done == batch && ip.opt.Progress != nil {
					ip.opt.Progress(done)
					done = 0
				}
			}
			if done > 0 && ip.opt.Progress != nil {
				ip.opt.Progress(done)
			}
		}(tiles[start:end])
	}
	wg.Wait()
}

// valueSpan returns the interval from 0 to the largest aggregated value
// of any class in any tile.
func valueSpan(tiles []*tile.Tile) scale.Domain {
	var d scale.Domain
	for _, t := range tiles {
		d = d.Extend(t.MaxValue())
	}
	return d
}

// maxCount returns the largest aggregated value of any class in any tile.
func maxCount(tiles []*tile.Tile) float64 {
	return valueSpan(tiles).Hi
}

// newScale builds the scale from the aggregated tile values.  The
// equi-depth bounds are computed here, after all tiles are aggregated.
func (ip *Interpreter) newScale(tiles []*tile.Tile) (*scale.Scale, error) {
	conf := &ip.conf.Scale
	kind, err := scale.Parse(conf.Type)
	if err != nil {
		return nil, err
	}

	d := valueSpan(tiles)
	if conf.Domain != nil {
		d, err = domain(conf.Domain)
		if err != nil {
			return nil, err
		}
	}
	if d.Len() <= 0 {
		Logger().Warn("empty value domain, using [0, 1]", "hi", d.Hi)
		d = scale.Domain{Lo: 0, Hi: 1}
	}

	sc := scale.New(kind, d, &scale.Options{Base: conf.Base, Levels: conf.Levels})
	if kind == scale.EquiDepth {
		for _, t := range tiles {
			sc.AddPoints(t.DataValues...)
		}
		sc.ComputeBounds()
	}
	return sc, nil
}

// assemble computes the tokens or planes of res.
func (ip *Interpreter) assemble(ctx context.Context, res *Result) error {
	conf := &ip.conf.Assembly
	kind, err := conf.Kind()
	if err != nil {
		return err
	}
	buffers := res.Classes
	tiles := res.Tiles
	n := len(buffers)
	Logger().Debug("assembly", "type", kind, "classes", n)

	colorTokens := func(f func([]*style.ClassBuffer, []float64) assembly.Token) {
		res.Tokens = make([]assembly.Token, len(tiles))
		for k, t := range tiles {
			res.Tokens[k] = f(buffers, t.DataValues)
		}
	}

	switch kind {
	case assembly.Max:
		colorTokens(func(bb []*style.ClassBuffer, v []float64) assembly.Token {
			return assembly.ColorToken{Color: assembly.MaxColor(bb, v)}
		})
	case assembly.Mean:
		colorTokens(func(bb []*style.ClassBuffer, v []float64) assembly.Token {
			return assembly.ColorToken{Color: assembly.MeanColor(bb, v)}
		})
	case assembly.InvMin:
		opt := &assembly.InvMinOptions{Threshold: conf.Threshold, IgnoreZero: conf.IgnoreZero}
		colorTokens(func(bb []*style.ClassBuffer, v []float64) assembly.Token {
			return assembly.ColorToken{Color: assembly.InvMinColor(bb, v, opt)}
		})
	case assembly.Multiply:
		colorTokens(func(bb []*style.ClassBuffer, v []float64) assembly.Token {
			return assembly.ColorToken{Color: assembly.MultiplyColor(bb, v)}
		})
	case assembly.Add:
		colorTokens(func(bb []*style.ClassBuffer, v []float64) assembly.Token {
			return assembly.ColorToken{Color: assembly.AddColor(bb, v)}
		})

	case assembly.Separate, assembly.Time:
		values := make([][]float64, len(tiles))
		for k, t := range tiles {
			values[k] = t.DataValues
		}
		res.Planes = assembly.SeparatePlanes(buffers, values)
		if kind == assembly.Time {
			res.Interval = conf.Interval()
		}

	case assembly.Weaving:
		shape, err := assembly.ParseShape(conf.Shape)
		if err != nil {
			return err
		}
		weights := conf.Weights
		if len(weights) != n {
			if weights != nil {
				Logger().Warn("ignoring weaving weights", "weights", len(weights), "classes", n)
			}
			weights = make([]float64, n)
		}
		masks, err := assembly.WeavingMasks(shape, weights, conf.CellSize(),
			res.Width, res.Height, conf.Random, conf.Seed)
		if err != nil {
			return err
		}
		for i, b := range buffers {
			b.Mask = masks[i]
		}
		colorTokens(func(bb []*style.ClassBuffer, v []float64) assembly.Token {
			return assembly.MaskToken{Colors: assembly.Colors(bb, v), Masks: masks}
		})

	case assembly.DotDensity:
		masks := assembly.DotDensityMasks(tiles, n, conf.CellSize(), res.Width, res.Height, conf.Seed)
		colors := make([]palette.Color, n)
		for i, b := range buffers {
			colors[i] = b.Color1
			b.Mask = masks[i]
		}
		colorTokens(func([]*style.ClassBuffer, []float64) assembly.Token {
			return assembly.MaskToken{Colors: colors, Masks: masks}
		})

	case assembly.Hatching, assembly.Propline:
		opt := &assembly.HatchOptions{
			Thickness: float64(conf.CellSize()),
			Sort:      conf.Sort,
			WidthProp: conf.WidthProp,
			ColProp:   conf.ColProp,
		}
		pattern := assembly.PropLines
		if kind == assembly.Hatching {
			assembly.SetHatchAngles(buffers)
			opt.WidthProp *= maxCount(tiles)
			pattern = assembly.Hatch
		}
		res.Tokens = make([]assembly.Token, len(tiles))
		for k, t := range tiles {
			res.Tokens[k] = assembly.HatchToken{Pattern: pattern(buffers, t.DataValues, t.Center, opt)}
		}

	case assembly.Glyph:
		return ip.glyphs(ctx, res)
	}
	return nil
}

// glyphs renders one glyph per tile.  Tiles too small for the glyph get a
// nil token.  All requests are joined before glyphs returns.
func (ip *Interpreter) glyphs(ctx context.Context, res *Result) error {
	spec := ip.conf.Assembly.Glyph
	colors := make([]palette.Color, len(res.Classes))
	for i, b := range res.Classes {
		colors[i] = b.Color1
	}

	batch := glyph.NewBatch(ip.opt.Renderer)
	var submitted []int
	for k, t := range res.Tiles {
		if t.Mask.Width < spec.Width || t.Mask.Height < spec.Height {
			continue
		}
		batch.Submit(ctx, &glyph.Request{
			Spec:   *spec,
			Values: t.DataValues,
			Colors: colors,
			Scale:  res.Scale,
		})
		submitted = append(submitted, k)
	}
	imgs, err := batch.Wait()
	if err != nil {
		return err
	}
	Logger().Debug("glyphs", "rendered", len(imgs), "skipped", len(res.Tiles)-len(imgs))

	res.Tokens = make([]assembly.Token, len(res.Tiles))
	for i, k := range submitted {
		t := res.Tiles[k]
		box, ok := t.RectAtCenter()
		if !ok {
			continue
		}
		cx := (box.LLx + box.URx) / 2
		cy := (box.LLy + box.URy) / 2
		w, h := float64(spec.Width), float64(spec.Height)
		res.Tokens[k] = assembly.GlyphToken{
			Image: imgs[i],
			Rect:  rect.Rect{LLx: cx - w/2, LLy: cy - h/2, URx: cx + w/2, URy: cy + h/2},
		}
	}
	return nil
}
