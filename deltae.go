package prism

import (
	"fmt"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/distance"
	"github.com/kovidgoyal/prism/spaces"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

// DeltaEPlugin is a color difference method.
type DeltaEPlugin interface {
	Name() string
	Distance(c1, c2 *Color, o *Options) (float64, error)
}

// Measure computes a difference from coordinates, without alpha and with
// undefined channels set to zero, in the working space s.
type Measure func(c1, c2 []float64, s types.Space, o *Options) (float64, error)

// DeltaEMethod is a DeltaEPlugin that converts both colors to a working space
// and applies a Measure. The DeltaESpace option overrides the working
// space unless the method is Fixed.
type DeltaEMethod struct {
	name    string
	Space   string
	Fixed   bool
	Measure Measure
}

func NewDeltaE(name, space string, m Measure) *DeltaEMethod {
	return &DeltaEMethod{name: name, Space: space, Measure: m}
}

func (d *DeltaEMethod) Name() string { return d.name }

func (d *DeltaEMethod) Distance(c1, c2 *Color, o *Options) (float64, error) {
	space := d.Space
	if o.Space != "" && !d.Fixed {
		space = o.Space
	}
	a, err := c1.Convert(space)
	if err != nil {
		return 0, err
	}
	b, err := c2.Convert(space)
	if err != nil {
		return 0, err
	}
	return d.Measure(algebra.NoNaNs(a.Coords()), algebra.NoNaNs(b.Coords()), a.space, o)
}

func lab_indexes(s types.Space) ([3]int, error) {
	if p, ok := s.(types.Perceptual); ok && types.HueIndex(s) < 0 {
		return p.Indexes(), nil
	}
	return [3]int{}, fmt.Errorf("%w: %s is not a Lab like space", ErrValue, s.Name())
}

// lab_measure adapts a formula on L, a, b to spaces that order their
// channels differently.
func lab_measure(f func(lab1, lab2 []float64, o *Options) float64) Measure {
	return func(c1, c2 []float64, s types.Space, o *Options) (float64, error) {
		idx, err := lab_indexes(s)
		if err != nil {
			return 0, err
		}
		pick := func(c []float64) []float64 { return []float64{c[idx[0]], c[idx[1]], c[idx[2]]} }
		return f(pick(c1), pick(c2), o), nil
	}
}

func fixed(d *DeltaEMethod) *DeltaEMethod {
	d.Fixed = true
	return d
}

func builtin_delta_e() []DeltaEPlugin {
	return []DeltaEPlugin{
		NewDeltaE("76", "lab-d65", lab_measure(func(a, b []float64, o *Options) float64 {
			return distance.CIE76(a, b)
		})),
		NewDeltaE("94", "lab", lab_measure(func(a, b []float64, o *Options) float64 {
			return distance.CIE94Weighted(a, b, o.weight(0, 1), o.weight(1, 0.045), o.weight(2, 0.015))
		})),
		NewDeltaE("cmc", "lab", lab_measure(func(a, b []float64, o *Options) float64 {
			return distance.CMC(a, b, o.weight(0, 2), o.weight(1, 1))
		})),
		NewDeltaE("2000", "lab", lab_measure(func(a, b []float64, o *Options) float64 {
			return distance.CIEDE2000(a, b, o.weight(0, 1), o.weight(1, 1), o.weight(2, 1))
		})),
		NewDeltaE("hyab", "lab-d65", func(a, b []float64, s types.Space, o *Options) (float64, error) {
			idx, err := lab_indexes(s)
			if err != nil {
				return 0, err
			}
			return distance.HyAB(a, b, idx), nil
		}),
		fixed(NewDeltaE("ok", "oklab", func(a, b []float64, s types.Space, o *Options) (float64, error) {
			scalar := o.Scalar
			if scalar == 0 {
				scalar = 1
			}
			return scalar * distance.Euclidean(a, b), nil
		})),
		fixed(NewDeltaE("99o", "din99o", func(a, b []float64, s types.Space, o *Options) (float64, error) {
			return distance.Euclidean(a, b), nil
		})),
		fixed(NewDeltaE("cam16", "cam16-jmh", func(a, b []float64, s types.Space, o *Options) (float64, error) {
			return distance.CAM16(a, b, distance.CAM16UCS), nil
		})),
		fixed(NewDeltaE("hct", "hct", func(a, b []float64, s types.Space, o *Options) (float64, error) {
			return distance.HCT(a, b, spaces.HCTEnv.FLRoot()), nil
		})),
	}
}

// DeltaE measures the difference between two colors with the named
// method, DefaultDeltaE when empty.
func DeltaE(c1, c2 *Color, method string, opts ...Option) (float64, error) {
	m, err := c1.reg.delta_e_method(method)
	if err != nil {
		return 0, err
	}
	return m.Distance(c1, c2, build_options(opts))
}

func (c *Color) DeltaE(other *Color, method string, opts ...Option) (float64, error) {
	return DeltaE(c, other, method, opts...)
}

// Distance is the Euclidean distance between two colors in the named
// space, lab when empty. Undefined channels count as zero.
func Distance(c1, c2 *Color, space string) (float64, error) {
	if space == "" {
		space = "lab"
	}
	a, err := c1.Convert(space)
	if err != nil {
		return 0, err
	}
	b, err := c2.Convert(space)
	if err != nil {
		return 0, err
	}
	return distance.Euclidean(algebra.NoNaNs(a.Coords()), algebra.NoNaNs(b.Coords())), nil
}

func (c *Color) Distance(other *Color, space string) (float64, error) {
	return Distance(c, other, space)
}
