package spaces

import (
	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/types"
)

const JzczhzAchromaticThreshold = 0.0003

const (
	jz_b  = 1.15
	jz_g  = 0.66
	jz_c1 = 3424.0 / 4096
	jz_c2 = 2413.0 / 128
	jz_c3 = 2392.0 / 128
	jz_n  = 2610.0 / 16384
	jz_p  = 1.7 * 2523 / 32
	jz_d  = -0.56
	jz_d0 = 1.6295499532821566e-11
	// Luminance of the reference white in cd/m²
	jz_yw = 203.0
)

var (
	jz_xyz_to_lms = algebra.Mat3{
		{0.41478972, 0.579999, 0.0146480},
		{-0.2015100, 1.120649, 0.0531008},
		{-0.0166008, 0.264800, 0.6684799},
	}
	jz_lms_to_iab = algebra.Mat3{
		{0.5, 0.5, 0},
		{3.524000, -4.066708, 0.542708},
		{0.199076, 1.096799, -1.295875},
	}
	jz_lms_to_xyz = algebra.MustInvert(jz_xyz_to_lms)
	jz_iab_to_lms = algebra.MustInvert(jz_lms_to_iab)
)

// pq_encode is the SMPTE ST 2084 inverse EOTF with a custom exponent m2.
func pq_encode(v float64) float64 {
	c := algebra.Spow(v/10000, jz_n)
	return algebra.Spow((jz_c1+jz_c2*c)/(1+jz_c3*c), jz_p)
}

func pq_decode(v float64) float64 {
	c := algebra.Spow(v, 1/jz_p)
	return 10000 * algebra.Spow((c-jz_c1)/(jz_c2-jz_c3*c), 1/jz_n)
}

func xyz_to_jzazbz(xyz []float64) []float64 {
	xa, ya, za := xyz[0]*jz_yw, xyz[1]*jz_yw, xyz[2]*jz_yw
	xm := jz_b*xa - (jz_b-1)*za
	ym := jz_g*ya - (jz_g-1)*xa
	lms := jz_xyz_to_lms.Apply(algebra.Vec3{xm, ym, za})
	for i, v := range lms {
		lms[i] = pq_encode(v)
	}
	iab := jz_lms_to_iab.Apply(lms)
	iz := iab[0]
	jz := (1+jz_d)*iz/(1+jz_d*iz) - jz_d0
	return []float64{jz, iab[1], iab[2]}
}

func jzazbz_to_xyz(jab []float64) []float64 {
	jz, az, bz := jab[0], jab[1], jab[2]
	iz := (jz + jz_d0) / (1 + jz_d - jz_d*(jz+jz_d0))
	lms := jz_iab_to_lms.Apply(algebra.Vec3{iz, az, bz})
	for i, v := range lms {
		lms[i] = pq_decode(v)
	}
	m := jz_lms_to_xyz.Apply(lms)
	xm, ym, za := m[0], m[1], m[2]
	xa := (xm + (jz_b-1)*za) / jz_b
	ya := (ym + (jz_g-1)*xa) / jz_g
	return []float64{xa / jz_yw, ya / jz_yw, za / jz_yw}
}

var (
	Jzazbz = &Lab{Space{
		name: "jzazbz", base: "xyz-d65", white: whiteD65, aliases: map[string]string{"lightness": "jz"},
		channels: []types.Channel{
			types.Unbound("jz", 0, 1, types.FlagOptPercent),
			types.Unbound("az", -0.5, 0.5, types.FlagMirrorPercent),
			types.Unbound("bz", -0.5, 0.5, types.FlagMirrorPercent),
		},
		to: jzazbz_to_xyz, from: xyz_to_jzazbz,
	}}
	Jzczhz = new_lch("jzczhz", "jzazbz", whiteD65, []types.Channel{
		types.Unbound("jz", 0, 1, types.FlagOptPercent),
		types.Unbound("cz", 0, 0.5, types.FlagOptPercent),
		types.Angle("hz"),
	}, map[string]string{"lightness": "jz", "chroma": "cz", "hue": "hz"}, JzczhzAchromaticThreshold)
)
