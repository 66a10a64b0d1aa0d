package spaces

import (
	"math"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/types"
)

// below this lightness margin hsl saturation is pure round-off
const achromatic_threshold = 1e-9

// Cylinder is one of the HSL, HSV or HWB renditions of sRGB. Gamut checks
// are done in sRGB.
type Cylinder struct {
	Space
	kinds      []types.ChannelKind
	achromatic func([]float64) bool
	// true when channel 1 is a saturation that may be negative
	saturation bool
}

func (s *Cylinder) HueIndex() int                     { return 0 }
func (s *Cylinder) GamutCheck() string                { return "srgb" }
func (s *Cylinder) RGBParent() string                 { return "srgb" }
func (s *Cylinder) ChannelKinds() []types.ChannelKind { return s.kinds }
func (s *Cylinder) IsAchromatic(c []float64) bool     { return s.achromatic(c) }

func (s *Cylinder) Normalize(c []float64) []float64 {
	if s.saturation && c[1] < 0 {
		c[1] = -c[1]
		c[0] += 180
	}
	c[0] = algebra.ConstrainHue(c[0])
	return c
}

func srgb_to_hsl(rgb []float64) []float64 {
	r, g, b := rgb[0], rgb[1], rgb[2]
	mx, mn := max(r, g, b), min(r, g, b)
	h, s, l := 0.0, 0.0, (mn+mx)/2
	c := mx - mn
	if c != 0 {
		switch mx {
		case r:
			h = (g - b) / c
		case g:
			h = (b-r)/c + 2
		default:
			h = (r-g)/c + 4
		}
		if d := min(l, 1-l); math.Abs(d) > achromatic_threshold {
			s = (mx - l) / d
		}
		h *= 60
		if s < 0 {
			s = -s
			h += 180
		}
	}
	return []float64{algebra.ConstrainHue(h), s, l}
}

func hsl_to_srgb(hsl []float64) []float64 {
	h, s, l := math.Mod(algebra.NoNaN(hsl[0], 0), 360), hsl[1], hsl[2]
	f := func(n float64) float64 {
		k := math.Mod(n+h/30, 12)
		if k < 0 {
			k += 12
		}
		a := s * min(l, 1-l)
		return l - a*max(-1, min(k-3, 9-k, 1))
	}
	return []float64{f(0), f(8), f(4)}
}

func hsl_to_hsv(hsl []float64) []float64 {
	h, s, l := hsl[0], hsl[1], hsl[2]
	v := l + s*min(l, 1-l)
	sv := 0.0
	if v != 0 {
		sv = 2 * (1 - l/v)
	}
	return []float64{h, sv, v}
}

func hsv_to_hsl(hsv []float64) []float64 {
	h, s, v := hsv[0], hsv[1], hsv[2]
	l := v * (1 - s/2)
	sl := 0.0
	if d := min(l, 1-l); math.Abs(d) > achromatic_threshold {
		sl = (v - l) / d
	}
	return []float64{h, sl, l}
}

func hsv_to_hwb(hsv []float64) []float64 {
	h, s, v := hsv[0], hsv[1], hsv[2]
	return []float64{h, v * (1 - s), 1 - v}
}

func hwb_to_hsv(hwb []float64) []float64 {
	h, w, b := hwb[0], hwb[1], hwb[2]
	if w+b >= 1 {
		gray := w / (w + b)
		return []float64{h, 0, gray}
	}
	v := 1 - b
	s := 0.0
	if v != 0 {
		s = 1 - w/v
	}
	return []float64{h, s, v}
}

var (
	HSL = &Cylinder{
		Space: Space{
			name: "hsl", base: "srgb", white: whiteD65,
			channels: []types.Channel{types.Angle("h"), types.Bound("s", 0, 1, types.FlagPercent), types.Bound("l", 0, 1, types.FlagPercent)},
			aliases:  map[string]string{"hue": "h", "saturation": "s", "lightness": "l"},
			to:       hsl_to_srgb, from: srgb_to_hsl,
		},
		kinds:      []types.ChannelKind{types.KindHue, types.KindColorfulness, types.KindLightness},
		saturation: true,
		achromatic: func(c []float64) bool {
			return math.Abs(c[1]) < achromatic_threshold || c[2] == 0 || math.Abs(1-c[2]) < achromatic_threshold
		},
	}

	HSV = &Cylinder{
		Space: Space{
			name: "hsv", base: "hsl", white: whiteD65,
			channels: []types.Channel{types.Angle("h"), types.Bound("s", 0, 1, types.FlagPercent), types.Bound("v", 0, 1, types.FlagPercent)},
			aliases:  map[string]string{"hue": "h", "saturation": "s", "value": "v"},
			to:       hsv_to_hsl, from: hsl_to_hsv,
		},
		kinds:      []types.ChannelKind{types.KindHue, types.KindColorfulness, types.KindOther},
		saturation: true,
		achromatic: func(c []float64) bool { return math.Abs(c[1]) < achromatic_threshold || c[2] == 0 },
	}

	HWB = &Cylinder{
		Space: Space{
			name: "hwb", base: "hsv", white: whiteD65,
			channels: []types.Channel{types.Angle("h"), types.Bound("w", 0, 1, types.FlagPercent), types.Bound("b", 0, 1, types.FlagPercent)},
			aliases:  map[string]string{"hue": "h", "whiteness": "w", "blackness": "b"},
			to:       hwb_to_hsv, from: hsv_to_hwb,
		},
		kinds:      []types.ChannelKind{types.KindHue, types.KindOther, types.KindOther},
		achromatic: func(c []float64) bool { return c[1]+c[2] >= 1-1e-7 },
	}
)
