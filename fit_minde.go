package prism

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/cat"
)

var _ = fmt.Print

// MinConvergence is the chroma interval at which MINDE stops searching.
const MinConvergence = 0.0001

// MINDE reduces chroma in a perceptual space with a binary search, keeping
// the clipped candidate within a just noticeable difference of the
// reduced color. Lightness and hue are preserved.
type MINDE struct {
	name          string
	PSpace        string
	JND           float64
	DeltaE        string
	DeltaEOptions []Option
	// called after every search step with the chroma bracket and the
	// smallest delta-E seen so far
	observe func(low, high, best float64)
}

func NewMINDE(name, pspace string, jnd float64, delta_e string, delta_e_options ...Option) *MINDE {
	return &MINDE{name: name, PSpace: pspace, JND: jnd, DeltaE: delta_e, DeltaEOptions: delta_e_options}
}

func (m *MINDE) Name() string { return m.name }

func (m *MINDE) String() string {
	return fmt.Sprintf("MINDE{%s in %s jnd=%v delta-e=%s}", m.name, m.PSpace, m.JND, m.DeltaE)
}

func jnd_epsilon(jnd float64) float64 {
	return math.Pow(10, float64(algebra.Order(jnd)-2))
}

func (m *MINDE) Fit(c *Color, space string, o *Options) error {
	pname := m.PSpace
	if o.PSpace != "" {
		pname = o.PSpace
	}
	jnd := m.JND
	if !math.IsNaN(o.JND) {
		jnd = o.JND
	}
	de_method, de_opts := m.DeltaE, m.DeltaEOptions
	if o.DeltaE != "" {
		de_method, de_opts = o.DeltaE, o.DeltaEOptions
	}
	p, err := c.reg.perceptual_space(pname)
	if err != nil {
		return err
	}
	mapcolor, err := c.to_perceptual(p)
	if err != nil {
		return err
	}
	alpha := c.Alpha()
	extreme := func(xyz algebra.Vec3) (*Color, float64, error) {
		x := c.reg.must_new("xyz-d65", xyz.Slice(), alpha)
		if err := x.convert_in_place(pname, &Options{}); err != nil {
			return nil, 0, err
		}
		return x, x.coords[p.l], nil
	}
	white, max_light, err := extreme(algebra.XYToXYZ(cat.D65))
	if err != nil {
		return err
	}
	light, chroma, hue := p.lch(mapcolor.coords)
	epsilon := jnd_epsilon(jnd)
	var low, high, alight float64
	if o.Adaptive == 0 {
		if light >= max_light || math.Abs(light-max_light) <= 1e-6 {
			return c.update_clipped(white)
		}
		black, min_light, err := extreme(algebra.Vec3{})
		if err != nil {
			return err
		}
		if light <= min_light {
			return c.update_clipped(black)
		}
		high = chroma
	} else {
		alight = adaptive_hue_independent(light/max_light, max(chroma, 0)/max_light, o.Adaptive) * max_light
		high = 1
	}
	gamutcolor := c.Clone()
	clip_channels(gamutcolor.space, gamutcolor.coords)
	de := func(a, b *Color) (float64, error) { return DeltaE(a, b, de_method, de_opts...) }
	d := 0.0
	if jnd != 0 {
		if d, err = de(mapcolor, gamutcolor); err != nil {
			return err
		}
	}
	if jnd == 0 || d >= jnd {
		lower_in_gamut := true
		best := math.Inf(1)
		if jnd != 0 {
			best = d
		}
		step := func() {
			if m.observe != nil {
				m.observe(low, high, best)
			}
		}
		for high-low > MinConvergence {
			value := (high + low) * 0.5
			if o.Adaptive == 0 {
				p.set_chroma(mapcolor.coords, value, hue)
			} else {
				mapcolor.coords[p.l] = algebra.Lerp(alight, light, value)
				p.set_chroma(mapcolor.coords, algebra.Lerp(0, chroma, value), hue)
			}
			candidate, err := mapcolor.to_space(space)
			if err != nil {
				return err
			}
			in := false
			if lower_in_gamut {
				if in, err = candidate.in_gamut(0); err != nil {
					return err
				}
			}
			if in {
				low = value
				step()
				continue
			}
			gamutcolor = candidate
			clip_channels(gamutcolor.space, gamutcolor.coords)
			d = 0
			if jnd != 0 {
				if d, err = de(mapcolor, gamutcolor); err != nil {
					return err
				}
			}
			best = min(best, d)
			if d < jnd {
				if jnd-d < epsilon {
					step()
					break
				}
				lower_in_gamut = false
				low = value
			} else {
				high = value
			}
			step()
		}
	}
	copy(c.coords, gamutcolor.coords)
	return nil
}

// to_space returns an unnormalized copy of c converted to space.
func (c *Color) to_space(space string) (*Color, error) {
	ans := c.Clone()
	if err := ans.convert_in_place(space, &Options{}); err != nil {
		return nil, err
	}
	return ans, nil
}

// update_clipped replaces c with o converted to the space of c and clipped.
func (c *Color) update_clipped(o *Color) error {
	conv, err := o.to_space(c.Space())
	if err != nil {
		return err
	}
	clip_channels(conv.space, conv.coords)
	copy(c.coords, conv.coords)
	return nil
}
