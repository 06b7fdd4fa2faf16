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

// Package scale maps aggregated tile values to the unit interval.
//
// All scales share one type, [Scale], tagged by its [Kind].  The
// linear, root and log scales are pure functions of their domain.  The
// equi-depth scale is stateful: every observed value is added with
// [Scale.AddPoints] and [Scale.ComputeBounds] is called once, after all
// values are known and before the first call to [Scale.Map].
package scale

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"seehuhn.de/go/multiclass/internal/numeric"
)

// Kind selects the mapping implemented by a Scale.
type Kind int

// These are the supported scale kinds.
const (
	Linear Kind = iota
	Sqrt
	Cbrt
	Log
	EquiDepth
)

var kindNames = []string{
	Linear:    "linear",
	Sqrt:      "sqrt",
	Cbrt:      "cbrt",
	Log:       "log",
	EquiDepth: "equidepth",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

var (
	// ErrUnknownScale is returned by Parse for unsupported scale names.
	ErrUnknownScale = errors.New("scale: unknown scale type")

	// ErrBoundsNotComputed is returned by MapErr when an equi-depth scale
	// is used before ComputeBounds.
	ErrBoundsNotComputed = errors.New("scale: equi-depth bounds not computed")
)

// Parse converts a configuration name into a Kind.  Names are case
// insensitive; "equi-depth" is accepted as an alias for "equidepth".
func Parse(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "linear":
		return Linear, nil
	case "sqrt":
		return Sqrt, nil
	case "cbrt":
		return Cbrt, nil
	case "log":
		return Log, nil
	case "equidepth", "equi-depth":
		return EquiDepth, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownScale, name)
}

const (
	// LogEpsilon is the smallest lower domain bound of a log scale.
	// Aggregated values are counts, so this equals one observation.
	LogEpsilon = 1.0

	// DefaultLogBase is the log base used when none is configured.
	DefaultLogBase = 10.0

	// DefaultLevels is the default number of equi-depth buckets.
	DefaultLevels = 4
)

// Domain is a closed interval of raw values.
type Domain = numeric.Span[float64]

// Scale maps a raw domain to the range [0, 1].
type Scale struct {
	Kind   Kind
	Degree float64 // root degree for Sqrt and Cbrt
	Base   float64 // logarithm base for Log
	Levels int     // bucket count for EquiDepth

	domain  Domain
	samples []float64
	bounds  []float64
}

// Options holds the kind-specific scale parameters.  Zero values select
// the defaults.
type Options struct {
	Base   float64
	Levels int
}

// New returns a scale of the given kind.
func New(kind Kind, d Domain, opt *Options) *Scale {
	if opt == nil {
		opt = &Options{}
	}
	switch kind {
	case Sqrt:
		return NewSqrt(d)
	case Cbrt:
		return NewCbrt(d)
	case Log:
		return NewLog(d, opt.Base)
	case EquiDepth:
		return NewEquiDepth(d, opt.Levels)
	default:
		return NewLinear(d)
	}
}

// NewLinear returns the scale (v - lo) / (hi - lo).
func NewLinear(d Domain) *Scale {
	return &Scale{Kind: Linear, domain: d}
}

// NewRoot returns the scale ((v - lo) / (hi - lo))^(1/degree).
func NewRoot(d Domain, degree float64) *Scale {
	s := &Scale{Kind: Sqrt, Degree: degree, domain: d}
	if degree == 3 {
		s.Kind = Cbrt
	}
	return s
}

// NewSqrt returns a root scale of degree 2.
func NewSqrt(d Domain) *Scale {
	return NewRoot(d, 2)
}

// NewCbrt returns a root scale of degree 3.
func NewCbrt(d Domain) *Scale {
	return NewRoot(d, 3)
}

// NewLog returns a logarithmic scale.  The lower domain bound is raised
// to LogEpsilon if necessary.  A base <= 1 selects DefaultLogBase.
func NewLog(d Domain, base float64) *Scale {
	if !(base > 1) {
		base = DefaultLogBase
	}
	d.Lo = max(d.Lo, LogEpsilon)
	d.Hi = max(d.Hi, d.Lo)
	return &Scale{Kind: Log, Base: base, domain: d}
}

// NewEquiDepth returns a quantile scale with the given number of buckets.
// A non-positive level count selects DefaultLevels.
func NewEquiDepth(d Domain, levels int) *Scale {
	if levels <= 0 {
		levels = DefaultLevels
	}
	return &Scale{Kind: EquiDepth, Levels: levels, domain: d}
}

// Domain returns the raw value interval of the scale.
func (s *Scale) Domain() Domain {
	return s.domain
}

// Range returns the output interval, which is always [0, 1].
func (s *Scale) Range() Domain {
	return Domain{Lo: 0, Hi: 1}
}

// AddPoints records observed values for an equi-depth scale.  Adding
// points discards previously computed bounds.  For other kinds this is a
// no-op.
func (s *Scale) AddPoints(values ...float64) {
	if s.Kind != EquiDepth {
		return
	}
	s.samples = append(s.samples, values...)
	s.bounds = nil
}

// ComputeBounds sorts the recorded values and splits them into Levels
// buckets of equal count.  Bucket i holds the values in (b[i], b[i+1]],
// except that bucket 0 also holds b[0], the smallest sample.  Map sends
// bucket i to i/(Levels-1), so the lowest bucket maps to 0 and the
// highest to 1.  Without samples the domain is split
// evenly.  For other kinds this is a no-op.
func (s *Scale) ComputeBounds() {
	if s.Kind != EquiDepth {
		return
	}
	k := s.Levels
	if k <= 0 {
		k = DefaultLevels
	}
	b := make([]float64, k+1)
	n := len(s.samples)
	if n == 0 {
		for i := range b {
			b[i] = s.domain.Lo + s.domain.Len()*float64(i)/float64(k)
		}
		s.bounds = b
		return
	}

	sorted := slices.Clone(s.samples)
	slices.Sort(sorted)
	b[0] = sorted[0]
	for i := 1; i <= k; i++ {
		idx := (i*n+k-1)/k - 1 // ceil(i*n/k) - 1
		b[i] = sorted[idx]
	}
	s.bounds = b
}

// Bounds returns a copy of the equi-depth bucket boundaries, or nil if
// they have not been computed.
func (s *Scale) Bounds() []float64 {
	return slices.Clone(s.bounds)
}

// Map returns the unit value for v, clamped to [0, 1].  An equi-depth
// scale without bounds maps everything to 0; use MapErr to detect this.
func (s *Scale) Map(v float64) float64 {
	u, _ := s.MapErr(v)
	return u
}

// MapErr is like Map but reports an equi-depth scale used before
// ComputeBounds.
func (s *Scale) MapErr(v float64) (float64, error) {
	d := s.domain
	switch s.Kind {
	case Sqrt, Cbrt:
		return math.Pow(unit(v, d.Lo, d.Hi), 1/s.degree()), nil
	case Log:
		lo, hi := s.logDomain()
		return unit(s.log(v), lo, hi), nil
	case EquiDepth:
		if s.bounds == nil {
			return 0, ErrBoundsNotComputed
		}
		k := len(s.bounds) - 1
		if k == 1 {
			return 1, nil
		}
		// b[0] is a sample, not a cut point: search only b[1:k].
		idx := sort.SearchFloat64s(s.bounds[1:k], v)
		return float64(idx) / float64(k-1), nil
	default:
		return unit(v, d.Lo, d.Hi), nil
	}
}

// InvMap returns the raw value corresponding to the unit value u.  For
// an equi-depth scale, the upper boundary of the bucket closest to u is
// returned.
func (s *Scale) InvMap(u float64) float64 {
	u = numeric.Clamp(u, 0, 1)
	d := s.domain
	switch s.Kind {
	case Sqrt, Cbrt:
		return d.Lo + math.Pow(u, s.degree())*d.Len()
	case Log:
		lo, hi := s.logDomain()
		return math.Pow(s.base(), lo+u*(hi-lo))
	case EquiDepth:
		if s.bounds == nil {
			return d.Lo + u*d.Len()
		}
		k := len(s.bounds) - 1
		i := int(math.Round(u * float64(k-1)))
		return s.bounds[i+1]
	default:
		return d.Lo + u*d.Len()
	}
}

func (s *Scale) degree() float64 {
	if s.Degree > 0 {
		return s.Degree
	}
	if s.Kind == Cbrt {
		return 3
	}
	return 2
}

func (s *Scale) base() float64 {
	if s.Base > 1 {
		return s.Base
	}
	return DefaultLogBase
}

func (s *Scale) log(v float64) float64 {
	return math.Log(max(v, LogEpsilon)) / math.Log(s.base())
}

func (s *Scale) logDomain() (float64, float64) {
	return s.log(s.domain.Lo), s.log(s.domain.Hi)
}

// unit maps v linearly from [lo, hi] to [0, 1], clamping the result.
// An empty interval maps v <= lo to 0 and everything else to 1.
func unit(v, lo, hi float64) float64 {
	if !(hi > lo) {
		if v <= lo {
			return 0
		}
		return 1
	}
	return numeric.Clamp((v-lo)/(hi-lo), 0, 1)
}
