package prism

import (
	"fmt"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

// RayTrace maps colors into RGB gamuts by casting a ray from the
// achromatic version of the color towards it and intersecting the RGB
// cube. Between passes the intersection is corrected back onto the
// lightness and hue of the original in a perceptual space.
type RayTrace struct {
	name   string
	PSpace string
}

const raytrace_passes = 4

func NewRayTrace(name, pspace string) *RayTrace {
	return &RayTrace{name: name, PSpace: pspace}
}

func (rt *RayTrace) Name() string { return rt.name }

func (rt *RayTrace) String() string {
	return fmt.Sprintf("RayTrace{%s in %s}", rt.name, rt.PSpace)
}

func (rt *RayTrace) Fit(c *Color, space string, o *Options) error {
	target, err := c.reg.Space(space)
	if err != nil {
		return err
	}
	if !types.IsRGB(target) {
		cyl, ok := target.(types.CylinderRGB)
		if !ok {
			return fmt.Errorf("%w: ray trace gamut mapping needs an RGB space, %s is not one", ErrValue, space)
		}
		rgb, err := c.to_space(cyl.RGBParent())
		if err != nil {
			return err
		}
		if err = rt.Fit(rgb, rgb.Space(), o); err != nil {
			return err
		}
		return c.Update(rgb)
	}
	if linear := target.(types.RGBSpace).Linear(); linear != "" {
		if _, err := c.reg.Space(linear); err == nil {
			space = linear
		}
	}
	pname := rt.PSpace
	if o.PSpace != "" {
		pname = o.PSpace
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
	light, chroma, hue := p.lch(mapcolor.coords)
	achroma := mapcolor.Clone()
	p.set_chroma(achroma.coords, 0, hue)
	alight := light
	if o.Adaptive != 0 {
		top, err := c.reg.must_new(space, []float64{1, 1, 1}, alpha).to_space(pname)
		if err != nil {
			return err
		}
		max_light := top.coords[p.l]
		alight = adaptive_hue_independent(light/max_light, max(chroma, 0)/max_light, o.Adaptive) * max_light
		achroma.coords[p.l] = alight
	}
	arg, err := achroma.to_space(space)
	if err != nil {
		return err
	}
	mean := (arg.coords[0] + arg.coords[1] + arg.coords[2]) / 3
	anchor := algebra.Vec3{mean, mean, mean}
	bmin, bmax := algebra.Vec3{}, algebra.Vec3{1, 1, 1}
	finish := func(rgb algebra.Vec3) error {
		for i := range rgb {
			rgb[i] = algebra.Clamp(rgb[i], bmin[i], bmax[i])
		}
		return c.Update(c.reg.must_new(space, rgb.Slice(), alpha))
	}
	switch {
	case mean >= bmax[0]:
		return finish(bmax)
	case mean <= 0:
		return finish(bmin)
	}
	a, b := algebra.PolarToRect(chroma, hue)
	start, end := algebra.Vec3{light, a, b}, algebra.Vec3{alight, 0, 0}
	const low = 1e-6
	high := bmax[0] - low
	current, err := mapcolor.to_space(space)
	if err != nil {
		return err
	}
	for i := range raytrace_passes {
		if i > 0 {
			pc, err := current.to_space(pname)
			if err != nil {
				return err
			}
			if o.Adaptive != 0 {
				l, cc, h := p.lch(pc.coords)
				a, b := algebra.PolarToRect(cc, h)
				proj := algebra.ProjectOnto(algebra.Vec3{l, a, b}, start, end)
				pc.coords[p.l] = proj[0]
				cc, h = algebra.RectToPolar(proj[1], proj[2])
				p.set_chroma(pc.coords, cc, h)
			} else {
				_, cc, _ := p.lch(pc.coords)
				pc.coords[p.l] = alight
				p.set_chroma(pc.coords, cc, hue)
			}
			if current, err = pc.to_space(space); err != nil {
				return err
			}
		}
		coords := algebra.FromSlice(current.coords)
		hit, ok := algebra.RaytraceBox(anchor, coords, bmin, bmax)
		if i > 0 && low < min(coords[0], coords[1], coords[2]) && max(coords[0], coords[1], coords[2]) < high {
			anchor = coords
		}
		if !ok {
			break
		}
		copy(current.coords, hit[:])
	}
	return finish(algebra.FromSlice(current.coords))
}
