package spaces

import (
	"math"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/types"
)

const (
	LabEpsilon  = 216.0 / 24389
	LabEpsilon3 = 6.0 / 29
	LabKappa    = 24389.0 / 27
	// LabKE is LabKappa * LabEpsilon
	LabKE = 8.0
)

// LChAchromaticThreshold is the chroma below which CIE LCh style colors
// have no hue.
const LChAchromaticThreshold = 0.0005

func XYZToLab(xyz []float64, white [2]float64) []float64 {
	w := algebra.XYToXYZ(white)
	f := func(t float64) float64 {
		if t > LabEpsilon {
			return algebra.NthRoot(t, 3)
		}
		return (LabKappa*t + 16) / 116
	}
	fx, fy, fz := f(xyz[0]/w[0]), f(xyz[1]/w[1]), f(xyz[2]/w[2])
	return []float64{116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)}
}

func LabToXYZ(lab []float64, white [2]float64) []float64 {
	l, a, b := lab[0], lab[1], lab[2]
	fy := (l + 16) / 116
	fx := a/500 + fy
	fz := fy - b/200
	finv := func(t float64) float64 {
		if t > LabEpsilon3 {
			return t * t * t
		}
		return (116*t - 16) / LabKappa
	}
	y := l / LabKappa
	if l > LabKE {
		y = fy * fy * fy
	}
	w := algebra.XYToXYZ(white)
	return []float64{finv(fx) * w[0], y * w[1], finv(fz) * w[2]}
}

// YToLstar converts relative luminance to CIE L*.
func YToLstar(y float64) float64 {
	fy := (LabKappa*y + 16) / 116
	if y > LabEpsilon {
		fy = algebra.NthRoot(y, 3)
	}
	return 116*fy - 16
}

// LstarToY is the inverse of YToLstar.
func LstarToY(lstar float64) float64 {
	if lstar > LabKE {
		fy := (lstar + 16) / 116
		return fy * fy * fy
	}
	return lstar / LabKappa
}

func new_lab(name, base string, white [2]float64) *Lab {
	return &Lab{Space{
		name: name, base: base, white: white, channels: lab_channels(100, 125), aliases: lab_aliases,
		to:   func(c []float64) []float64 { return LabToXYZ(c, white) },
		from: func(c []float64) []float64 { return XYZToLab(c, white) },
	}}
}

func xyz_to_luv(xyz []float64, white [2]float64) []float64 {
	u, v := algebra.XYZToUV(algebra.Vec3{xyz[0], xyz[1], xyz[2]})
	w := algebra.XYToXYZ(white)
	ur, vr := algebra.XYZToUV(w)
	yr := xyz[1] / w[1]
	l := LabKappa * yr
	if yr > LabEpsilon {
		l = 116*algebra.NthRoot(yr, 3) - 16
	}
	if l == 0 {
		return []float64{0, 0, 0}
	}
	return []float64{l, 13 * l * (u - ur), 13 * l * (v - vr)}
}

func luv_to_xyz(luv []float64, white [2]float64) []float64 {
	l, u, v := luv[0], luv[1], luv[2]
	if l == 0 {
		return []float64{0, 0, 0}
	}
	w := algebra.XYToXYZ(white)
	ur, vr := algebra.XYZToUV(w)
	up := u/(13*l) + ur
	vp := v/(13*l) + vr
	y := l / LabKappa
	if l > LabKE {
		y = math.Pow((l+16)/116, 3)
	}
	y *= w[1]
	if vp == 0 {
		return []float64{0, y, 0}
	}
	return []float64{y * (9 * up) / (4 * vp), y, y * (12 - 3*up - 20*vp) / (4 * vp)}
}

var (
	LabD50 = new_lab("lab", "xyz-d50", whiteD50)
	LChD50 = new_lch("lch", "lab", whiteD50, lch_channels(100, 150), lch_aliases, LChAchromaticThreshold)
	LabD65 = new_lab("lab-d65", "xyz-d65", whiteD65)
	LChD65 = new_lch("lch-d65", "lab-d65", whiteD65, lch_channels(100, 150), lch_aliases, LChAchromaticThreshold)

	Luv = &Lab{Space{
		name: "luv", base: "xyz-d65", white: whiteD65, aliases: lab_aliases,
		channels: []types.Channel{
			types.Unbound("l", 0, 100, types.FlagOptPercent),
			types.Unbound("u", -215, 215, types.FlagMirrorPercent),
			types.Unbound("v", -215, 215, types.FlagMirrorPercent),
		},
		to:   func(c []float64) []float64 { return luv_to_xyz(c, whiteD65) },
		from: func(c []float64) []float64 { return xyz_to_luv(c, whiteD65) },
	}}
	LChuv = new_lch("lchuv", "luv", whiteD65, lch_channels(100, 220), lch_aliases, LChAchromaticThreshold)
)
