package prism

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

func verify(s types.Space, coords []float64, tolerance float64) bool {
	for i, ch := range s.Channels() {
		v := coords[i]
		if ch.IsAngle() || !ch.Bound || math.IsNaN(v) {
			continue
		}
		if v < ch.Low-tolerance || v > ch.High+tolerance {
			return false
		}
	}
	return true
}

func clip_channels(s types.Space, coords []float64) (clipped bool) {
	for i, ch := range s.Channels() {
		v := coords[i]
		switch {
		case ch.IsAngle():
			coords[i] = algebra.ConstrainHue(v)
		case !ch.Bound || math.IsNaN(v):
		case v < ch.Low:
			coords[i], clipped = ch.Low, true
		case v > ch.High:
			coords[i], clipped = ch.High, true
		}
	}
	return
}

// Verify reports whether the bound channels of c are within range,
// allowing for tolerance. Angles and undefined channels are ignored.
func Verify(c *Color, tolerance float64) bool {
	return verify(c.space, c.coords, tolerance)
}

// ClipChannels wraps hues and clamps bound channels of c into range,
// reporting whether any bound channel was changed.
func ClipChannels(c *Color) bool {
	return clip_channels(c.space, c.coords)
}

func (c *Color) in_gamut(tolerance float64) (bool, error) {
	if check := types.GamutSpace(c.space); check != c.Space() {
		o, err := c.Convert(check)
		if err != nil {
			return false, err
		}
		if !verify(o.space, o.coords, tolerance) {
			return false, nil
		}
	}
	return verify(c.space, c.coords, tolerance), nil
}

// InGamut reports whether c is within the gamut of the named space, or
// its own space when space is empty. Use the Tolerance option to change
// the allowed slack from DefaultFitTolerance.
func (c *Color) InGamut(space string, opts ...Option) (bool, error) {
	o := build_options(opts)
	if space == "" || space == c.Space() {
		return c.in_gamut(o.Tolerance)
	}
	conv, err := c.Convert(space)
	if err != nil {
		return false, err
	}
	return conv.in_gamut(o.Tolerance)
}

func constrain_hue(c *Color) {
	if h := types.HueIndex(c.space); h > -1 {
		c.coords[h] = algebra.ConstrainHue(c.coords[h])
	}
}

func (c *Color) clip_in_place() error {
	in, err := c.in_gamut(0)
	if err != nil {
		return err
	}
	if in {
		constrain_hue(c)
		return nil
	}
	clip_channels(c.space, c.coords)
	check := types.GamutSpace(c.space)
	if check == c.Space() {
		return nil
	}
	if in, err = c.in_gamut(0); err != nil || in {
		return err
	}
	space := c.Space()
	if err = c.convert_in_place(check, build_options(nil)); err != nil {
		return err
	}
	clip_channels(c.space, c.coords)
	return c.convert_in_place(space, build_options(nil))
}

// Clip brings c into the gamut of the named space, or its own space when
// space is empty, by clamping channels. Spaces that defer their gamut to
// another space are clamped in that space as well.
func (c *Color) Clip(space string) error {
	w := c.Clone()
	if space == "" {
		space = c.Space()
	}
	o := build_options(nil)
	if err := w.convert_in_place(space, o); err != nil {
		return err
	}
	if space != c.Space() {
		// colors already inside are left alone so that clipping twice
		// does not accumulate conversion round-off
		if in, err := w.in_gamut(0); err != nil || in {
			if in {
				constrain_hue(c)
			}
			return err
		}
	}
	if err := w.clip_in_place(); err != nil {
		return err
	}
	if err := w.convert_in_place(c.Space(), o); err != nil {
		return err
	}
	c.coords = w.coords
	return nil
}
