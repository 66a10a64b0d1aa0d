package prism

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

// Fit is a gamut mapping method.
type Fit interface {
	Name() string
	// Fit maps c into the gamut of the named space in place. c is in that
	// space when Fit is called and must still be in it on return.
	Fit(c *Color, space string, o *Options) error
}

func builtin_fits() []Fit {
	return []Fit{
		NewMINDE("minde-chroma", "oklch", 0.02, "ok"),
		NewMINDE("oklch-chroma", "oklch", 0.02, "ok"),
		NewMINDE("lch-chroma", "lch-d65", 2, "2000", DeltaESpace("lab-d65")),
		NewMINDE("hct-chroma", "hct", 2, "hct"),
		NewRayTrace("raytrace", "oklch"),
		NewRayTrace("oklch-raytrace", "oklch"),
		NewRayTrace("lch-raytrace", "lch-d65"),
	}
}

// Fit maps c into the gamut of the named space, or its own space when
// space is empty, using the named method, DefaultFit when empty. The
// color stays in its own space. Colors already in gamut only have their
// hue canonicalized.
func (c *Color) Fit(space, method string, opts ...Option) error {
	if method == "" {
		method = DefaultFit
	}
	if method == "clip" {
		return c.Clip(space)
	}
	plugin, err := c.reg.fit_method(method)
	if err != nil {
		return err
	}
	if space == "" {
		space = c.Space()
	}
	o := build_options(opts)
	defaults := build_options(nil)
	w := c.Clone()
	if err = w.convert_in_place(space, defaults); err != nil {
		return err
	}
	in, err := w.in_gamut(0)
	if err != nil {
		return err
	}
	if in {
		constrain_hue(w)
	} else {
		c.reg.Logger().Debug("gamut mapping", "method", method, "space", space, "color", c)
		if err = plugin.Fit(w, space, o); err != nil {
			return err
		}
	}
	if err = w.convert_in_place(c.Space(), defaults); err != nil {
		return err
	}
	c.coords = w.coords
	return nil
}

// perceptual describes how a gamut mapper reads a perceptual space.
type perceptual struct {
	space         types.Space
	polar         bool
	l, c, h, a, b int
}

func (r *Registry) perceptual_space(name string) (p perceptual, err error) {
	if p.space, err = r.Space(name); err != nil {
		return
	}
	ps, ok := p.space.(types.Perceptual)
	if !ok {
		return p, fmt.Errorf("%w: %s is not a perceptual space with lightness and chroma channels", ErrValue, name)
	}
	idx := ps.Indexes()
	p.polar = types.HueIndex(p.space) > -1
	p.l = idx[0]
	if p.polar {
		p.c, p.h = idx[1], idx[2]
	} else {
		p.a, p.b = idx[1], idx[2]
	}
	return
}

// lch returns the lightness, chroma and hue of coords.
func (p perceptual) lch(coords []float64) (l, c, h float64) {
	if p.polar {
		return coords[p.l], coords[p.c], coords[p.h]
	}
	c, h = algebra.RectToPolar(coords[p.a], coords[p.b])
	return coords[p.l], c, h
}

// set_chroma writes chroma and hue into coords.
func (p perceptual) set_chroma(coords []float64, c, h float64) {
	if p.polar {
		coords[p.c], coords[p.h] = c, h
	} else {
		coords[p.a], coords[p.b] = algebra.PolarToRect(c, h)
	}
}

// to_perceptual returns a copy of c in the space of p without normalization
// and with undefined channels resolved.
func (c *Color) to_perceptual(p perceptual) (*Color, error) {
	ans := c.Clone()
	if c.Space() != p.space.Name() {
		if err := ans.convert_in_place(p.space.Name(), &Options{}); err != nil {
			return nil, err
		}
		return ans, nil
	}
	n := len(ans.coords) - 1
	coords := types.ResolveNaNs(ans.space, ans.coords[:n])
	if norm, ok := ans.space.(types.Normalizer); ok {
		coords = norm.Normalize(coords)
	}
	copy(ans.coords, coords)
	return ans, nil
}

// adaptive_hue_independent computes the lightness anchor of Björn
// Ottosson's adaptive, hue independent gamut clipping. l and c are
// relative to the maximum lightness.
func adaptive_hue_independent(l, c, alpha float64) float64 {
	ld := l - 0.5
	abs_ld := math.Abs(ld)
	e1 := 0.5 + abs_ld + alpha*c
	return 0.5 * (1 + algebra.Sign(ld)*(e1-math.Sqrt(e1*e1-2*abs_ld)))
}
