package spaces

import (
	"math"

	"github.com/kovidgoyal/prism/types"
)

const (
	din99o_rads   = 26 * math.Pi / 180
	din99o_factor = 0.83
	din99o_c1     = 303.67
	din99o_c2     = 0.0039
	din99o_c3     = 0.075
	din99o_c4     = 0.0435
)

func lab_to_din99o(lab []float64) []float64 {
	l, a, b := lab[0], lab[1], lab[2]
	l99o := din99o_c1 * math.Log(1+din99o_c2*l)
	if a == 0 && b == 0 {
		return []float64{l99o, 0, 0}
	}
	sin, cos := math.Sincos(din99o_rads)
	eo := a*cos + b*sin
	fo := din99o_factor * (b*cos - a*sin)
	g := math.Sqrt(eo*eo + fo*fo)
	c := math.Log(1+din99o_c3*g) / din99o_c4
	h := math.Atan2(fo, eo) + din99o_rads
	return []float64{l99o, c * math.Cos(h), c * math.Sin(h)}
}

func din99o_to_lab(din []float64) []float64 {
	l99o, a99o, b99o := din[0], din[1], din[2]
	h := math.Atan2(b99o, a99o)
	c := math.Sqrt(a99o*a99o + b99o*b99o)
	g := (math.Exp(din99o_c4*c) - 1) / din99o_c3
	e := g * math.Cos(h-din99o_rads)
	f := g * math.Sin(h-din99o_rads)
	sin, cos := math.Sincos(din99o_rads)
	return []float64{
		(math.Exp(l99o/din99o_c1) - 1) / din99o_c2,
		e*cos - (f/din99o_factor)*sin,
		e*sin + (f/din99o_factor)*cos,
	}
}

var (
	DIN99o = &Lab{Space{
		name: "din99o", base: "lab-d65", white: whiteD65, aliases: lab_aliases,
		channels: []types.Channel{
			types.Unbound("l", 0, 100, types.FlagOptPercent),
			types.Unbound("a", -55, 55, types.FlagMirrorPercent),
			types.Unbound("b", -55, 55, types.FlagMirrorPercent),
		},
		to: din99o_to_lab, from: lab_to_din99o,
	}}
	LCh99o = new_lch("lch99o", "din99o", whiteD65, lch_channels(100, 60), lch_aliases, LChAchromaticThreshold)
)
