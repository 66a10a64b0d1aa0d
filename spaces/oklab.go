package spaces

import (
	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/types"
)

// OklchAchromaticThreshold is smaller than the CIE one as Oklab lightness
// is in [0, 1].
const OklchAchromaticThreshold = 0.000002

var (
	xyzd65_to_lms = algebra.Mat3{
		{0.8190224379967030, 0.3619062600528904, -0.1288737815209879},
		{0.0329836539323885, 0.9292868615863434, 0.0361446663506424},
		{0.0481771893596242, 0.2642395317527308, 0.6335478284694309},
	}
	lms3_to_oklab = algebra.Mat3{
		{0.2104542683093140, 0.7936177747023054, -0.0040720430116193},
		{1.9779985324311684, -2.4285922420485799, 0.4505937096174110},
		{0.0259040424655478, 0.7827717124575296, -0.8086757549230774},
	}
	lms_to_xyzd65 = algebra.MustInvert(xyzd65_to_lms)
	oklab_to_lms3 = algebra.MustInvert(lms3_to_oklab)
)

func xyz_to_oklab(xyz []float64) []float64 {
	lms := xyzd65_to_lms.Apply(algebra.FromSlice(xyz))
	for i, v := range lms {
		lms[i] = algebra.NthRoot(v, 3)
	}
	return lms3_to_oklab.Apply(lms).Slice()
}

func oklab_to_xyz(lab []float64) []float64 {
	lms := oklab_to_lms3.Apply(algebra.FromSlice(lab))
	for i, v := range lms {
		lms[i] = v * v * v
	}
	return lms_to_xyzd65.Apply(lms).Slice()
}

var (
	Oklab = &Lab{Space{
		name: "oklab", base: "xyz-d65", white: whiteD65, aliases: lab_aliases,
		channels: []types.Channel{
			types.Unbound("l", 0, 1, types.FlagOptPercent),
			types.Unbound("a", -0.4, 0.4, types.FlagMirrorPercent),
			types.Unbound("b", -0.4, 0.4, types.FlagMirrorPercent),
		},
		to: oklab_to_xyz, from: xyz_to_oklab,
	}}
	Oklch = new_lch("oklch", "oklab", whiteD65, lch_channels(1, 0.4), lch_aliases, OklchAchromaticThreshold)
)
