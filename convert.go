package prism

import (
	"fmt"

	"github.com/kovidgoyal/prism/cat"
)

var _ = fmt.Print

func (r *Registry) run_chain(from, to string, coords []float64, o *Options) ([]float64, *Chain, error) {
	chain, err := r.Chain(from, to)
	if err != nil {
		return nil, nil, err
	}
	var m cat.Method
	if o.CAT != "" {
		if m, err = r.cat_method(o.CAT); err != nil {
			return nil, nil, err
		}
	}
	return chain.Run(coords, o.Normalize, m), chain, nil
}

// ConvertCoords converts coordinates, without alpha, between two spaces.
func (r *Registry) ConvertCoords(from, to string, coords []float64, opts ...Option) ([]float64, error) {
	ans, _, err := r.run_chain(from, to, coords, build_options(opts))
	return ans, err
}

func (c *Color) convert_in_place(space string, o *Options) error {
	if space == c.Space() {
		return nil
	}
	n := len(c.coords) - 1
	coords, chain, err := c.reg.run_chain(c.Space(), space, c.coords[:n], o)
	if err != nil {
		return err
	}
	c.space = chain.Target
	c.coords = append(coords, c.coords[n])
	return nil
}

// ConvertInPlace converts c to the named space. With the GamutMapped
// option, a result that is out of gamut is fitted.
func (c *Color) ConvertInPlace(space string, opts ...Option) error {
	o := build_options(opts)
	if o.FitMethod != "" {
		w := c.Clone()
		in, err := w.InGamut(space, Tolerance(0))
		if err != nil {
			return err
		}
		if err = w.convert_in_place(space, o); err != nil {
			return err
		}
		if !in {
			if err = w.Fit("", o.FitMethod, opts...); err != nil {
				return err
			}
		}
		c.space, c.coords = w.space, w.coords
		return nil
	}
	return c.convert_in_place(space, o)
}

// Convert returns a copy of c converted to the named space.
func (c *Color) Convert(space string, opts ...Option) (*Color, error) {
	ans := c.Clone()
	if err := ans.ConvertInPlace(space, opts...); err != nil {
		return nil, err
	}
	return ans, nil
}

// Update replaces the coordinates and alpha of c with those of o
// converted to the space of c.
func (c *Color) Update(o *Color, opts ...Option) error {
	conv, err := o.Convert(c.Space(), opts...)
	if err != nil {
		return err
	}
	c.coords = conv.coords
	return nil
}
