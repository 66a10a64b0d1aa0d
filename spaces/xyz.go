package spaces

import (
	"github.com/kovidgoyal/prism/types"
)

func xyz_channels() []types.Channel {
	return []types.Channel{
		types.Unbound("x", 0, 1, 0),
		types.Unbound("y", 0, 1, 0),
		types.Unbound("z", 0, 1, 0),
	}
}

func identity(c []float64) []float64 {
	return []float64{c[0], c[1], c[2]}
}

// XYZ is a CIE XYZ space relative to its white point. The chain executor
// applies chromatic adaptation on the edge between XYZ spaces with
// different whites.
type XYZ struct {
	Space
}

func (s *XYZ) ExtendedRange() bool { return true }

// XYZD65 is the root of the conversion tree.
var XYZD65 = &XYZ{Space{name: "xyz-d65", base: "xyz-d65", white: whiteD65, channels: xyz_channels(), to: identity, from: identity}}

var XYZD50 = &XYZ{Space{name: "xyz-d50", base: "xyz-d65", white: whiteD50, channels: xyz_channels(), to: identity, from: identity}}
