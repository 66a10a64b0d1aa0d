// Package interpolate holds the numeric side of color interpolation:
// stop placement, hue unwrapping, easing, premultiplication and the
// piecewise spline evaluators. It works on plain coordinate slices, the
// color aware layer lives in the prism package.
package interpolate

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/prism/algebra"
)

var _ = fmt.Print

// Method selects how values between stops are computed.
type Method string

const (
	MethodLinear     Method = "linear"
	MethodContinuous Method = "continuous"
	MethodBSpline    Method = "bspline"
	MethodNatural    Method = "natural"
	MethodCatRom     Method = "catrom"
	MethodMonotone   Method = "monotone"
)

func Methods() []Method {
	return []Method{MethodLinear, MethodContinuous, MethodBSpline, MethodNatural, MethodCatRom, MethodMonotone}
}

func (m Method) kernel() (Kernel, error) {
	switch m {
	case MethodLinear, MethodContinuous, "":
		return nil, nil
	case MethodBSpline, MethodNatural:
		return BSpline, nil
	case MethodCatRom:
		return CatRom, nil
	case MethodMonotone:
		return Monotone, nil
	}
	return nil, fmt.Errorf("unknown interpolation method: %#v", string(m))
}

func (m Method) Validate() error {
	_, err := m.kernel()
	return err
}

// Premultiply scales every non angle channel by alpha, which is the last
// value of coords. Colors with undefined or full alpha are left alone.
func Premultiply(coords []float64, angle []bool) {
	alpha := coords[len(coords)-1]
	if math.IsNaN(alpha) || alpha == 1 {
		return
	}
	for i := range coords[:len(coords)-1] {
		if !angle[i] {
			coords[i] *= alpha
		}
	}
}

// Postdivide undoes Premultiply. Colors with undefined, zero or full alpha
// are left alone.
func Postdivide(coords []float64, angle []bool) {
	alpha := coords[len(coords)-1]
	if math.IsNaN(alpha) || alpha == 0 || alpha == 1 {
		return
	}
	for i := range coords[:len(coords)-1] {
		if !angle[i] {
			coords[i] /= alpha
		}
	}
}

// Piecewise evaluates a sequence of coordinate sets placed at stops.
type Piecewise struct {
	method Method
	kernel Kernel
	coords [][]float64
	// per channel values with undefined runs filled
	filled [][]float64
	// per channel spline control points including the phantom end points
	controls    [][]float64
	stops       []float64
	easings     []Easing
	progress    Progress
	names       []string
	extrapolate bool
}

type Options struct {
	Method Method
	// Stops are the positions of each coordinate set, as returned by CalcStops.
	Stops []float64
	// Easings has one entry per segment, nil entries fall back to Progress.
	Easings []Easing
	// Progress eases channels by name.
	Progress Progress
	// Names of the channels, used to look up Progress.
	Names       []string
	Extrapolate bool
	// Kernel, when set, is used instead of the kernel of Method.
	Kernel Kernel
}

// New creates an evaluator for coords. Each coordinate set must have the
// same length. Hues must already be unwrapped.
func New(coords [][]float64, opts Options) (*Piecewise, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("need at least two colors to interpolate, got %d", len(coords))
	}
	kernel := opts.Kernel
	if kernel == nil {
		var err error
		if kernel, err = opts.Method.kernel(); err != nil {
			return nil, err
		}
	}
	n := len(coords[0])
	for _, c := range coords {
		if len(c) != n {
			return nil, fmt.Errorf("coordinate sets of differing lengths: %d != %d", len(c), n)
		}
	}
	stops := opts.Stops
	if len(stops) != len(coords) {
		stops = CalcStops(stops, len(coords))
	}
	p := &Piecewise{
		method: opts.Method, kernel: kernel, stops: stops, easings: opts.Easings,
		progress: opts.Progress, names: opts.Names, extrapolate: opts.Extrapolate,
		coords: make([][]float64, len(coords)),
	}
	for i, c := range coords {
		p.coords[i] = append([]float64(nil), c...)
	}
	if p.method != MethodLinear && p.method != "" {
		p.filled = make([][]float64, n)
		for ch := range n {
			vals := make([]float64, len(coords))
			for i, c := range coords {
				vals[i] = c[ch]
			}
			FillNaNRuns(vals)
			p.filled[ch] = vals
		}
	}
	if kernel != nil {
		p.controls = make([][]float64, n)
		for ch, f := range p.filled {
			vals := append([]float64(nil), f...)
			if !math.IsNaN(vals[0]) {
				if p.method == MethodNatural {
					Naturalize(vals)
				}
				last := len(vals) - 1
				vals = append([]float64{2*vals[0] - vals[1]}, vals...)
				vals = append(vals, 2*vals[last+1]-vals[last])
			}
			p.controls[ch] = vals
		}
	}
	return p, nil
}

func (p *Piecewise) Stops() []float64 { return p.stops }

func (p *Piecewise) easing_for(segment, channel int) Easing {
	if segment-1 < len(p.easings) {
		if e := p.easings[segment-1]; e != nil {
			return e
		}
	}
	name := ""
	if channel < len(p.names) {
		name = p.names[channel]
	}
	return p.progress.For(name)
}

// At evaluates every channel at point. Points outside the stops are
// clamped unless extrapolation is on, in which case the end segments are
// extended linearly.
func (p *Piecewise) At(point float64) []float64 {
	start, end := p.stops[0], p.stops[len(p.stops)-1]
	outside := false
	if p.extrapolate {
		outside = point < start || point > end
	} else {
		point = algebra.Clamp(point, 0, 1)
		point = algebra.Clamp(point, start, end)
	}
	last := start
	segment := len(p.stops) - 1
	t := 1.0
	for i := 1; i < len(p.stops); i++ {
		s := p.stops[i]
		if point <= s || i == len(p.stops)-1 {
			segment = i
			if r := s - last; r != 0 {
				t = (point - last) / r
			} else if outside && point < start {
				t = 0
			}
			break
		}
		last = s
	}
	ans := make([]float64, len(p.coords[0]))
	for ch := range ans {
		if outside {
			ans[ch] = p.linear_value(segment, ch, t)
			continue
		}
		et := t
		if e := p.easing_for(segment, ch); e != nil {
			et = e(t)
		}
		et = algebra.Clamp(et, 0, 1)
		switch {
		case p.kernel != nil:
			vals := p.controls[ch]
			if math.IsNaN(vals[0]) {
				ans[ch] = math.NaN()
			} else {
				ans[ch] = p.kernel(vals[segment-1], vals[segment], vals[segment+1], vals[segment+2], et)
			}
		default:
			ans[ch] = p.linear_value(segment, ch, et)
		}
	}
	return ans
}

func (p *Piecewise) linear_value(segment, ch int, t float64) float64 {
	var a, b float64
	if p.filled != nil {
		a, b = p.filled[ch][segment-1], p.filled[ch][segment]
	} else {
		a, b = p.coords[segment-1][ch], p.coords[segment][ch]
	}
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return math.NaN()
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	}
	return algebra.Lerp(a, b, t)
}
