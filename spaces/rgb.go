package spaces

import (
	"math"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/types"
)

// Primaries holds red, green and blue xy chromaticities.
type Primaries [3][2]float64

var (
	SRGBPrimaries     = Primaries{{0.64, 0.33}, {0.30, 0.60}, {0.15, 0.06}}
	P3Primaries       = Primaries{{0.68, 0.32}, {0.265, 0.69}, {0.15, 0.06}}
	A98Primaries      = Primaries{{0.64, 0.33}, {0.21, 0.71}, {0.15, 0.06}}
	ProPhotoPrimaries = Primaries{{0.734699, 0.265301}, {0.159597, 0.840403}, {0.036598, 0.000105}}
	Rec2020Primaries  = Primaries{{0.708, 0.292}, {0.170, 0.797}, {0.131, 0.046}}
)

// NewLinearRGB creates a linear light RGB space converting directly to the
// XYZ space base, whose white must equal white.
func NewLinearRGB(name, base string, p Primaries, white [2]float64) *RGB {
	to_xyz := algebra.RGBToXYZMatrix(p[0], p[1], p[2], white)
	from_xyz := algebra.MustInvert(to_xyz)
	return &RGB{
		Space: Space{
			name: name, base: base, white: white, channels: rgb_channels(), aliases: rgb_aliases,
			to:   func(c []float64) []float64 { return to_xyz.ApplySlice(identity(c)) },
			from: func(c []float64) []float64 { return from_xyz.ApplySlice(identity(c)) },
		},
		linear: name,
	}
}

// NewGammaRGB creates an RGB space encoding the linear space base with a
// transfer function. decode maps encoded values to linear light.
func NewGammaRGB(name string, linear *RGB, decode, encode func(float64) float64) *RGB {
	return &RGB{
		Space: Space{
			name: name, base: linear.Name(), white: linear.White(), channels: rgb_channels(), aliases: rgb_aliases,
			to:   func(c []float64) []float64 { return []float64{decode(c[0]), decode(c[1]), decode(c[2])} },
			from: func(c []float64) []float64 { return []float64{encode(c[0]), encode(c[1]), encode(c[2])} },
		},
		linear: linear.Name(),
	}
}

// The transfer functions below are mirrored around zero so that extended
// range values survive a round trip.

func srgb_decode(v float64) float64 {
	a := math.Abs(v)
	if a <= 0.04045 {
		return v / 12.92
	}
	return math.Copysign(math.Pow((a+0.055)/1.055, 2.4), v)
}

func srgb_encode(v float64) float64 {
	a := math.Abs(v)
	if a > 0.0031308 {
		return math.Copysign(1.055*math.Pow(a, 1/2.4)-0.055, v)
	}
	return 12.92 * v
}

func a98_decode(v float64) float64 { return algebra.Spow(v, 563.0/256) }
func a98_encode(v float64) float64 { return algebra.Spow(v, 256.0/563) }

const prophoto_et = 1.0 / 512
const prophoto_et2 = 16.0 / 512

func prophoto_decode(v float64) float64 {
	if math.Abs(v) < prophoto_et2 {
		return v / 16
	}
	return algebra.Spow(v, 1.8)
}

func prophoto_encode(v float64) float64 {
	if math.Abs(v) < prophoto_et {
		return 16 * v
	}
	return algebra.Spow(v, 1/1.8)
}

const (
	rec2020_alpha = 1.09929682680944
	rec2020_beta  = 0.018053968510807
)

func rec2020_decode(v float64) float64 {
	a := math.Abs(v)
	if a < rec2020_beta*4.5 {
		return v / 4.5
	}
	return math.Copysign(math.Pow((a+rec2020_alpha-1)/rec2020_alpha, 1/0.45), v)
}

func rec2020_encode(v float64) float64 {
	a := math.Abs(v)
	if a < rec2020_beta {
		return 4.5 * v
	}
	return math.Copysign(rec2020_alpha*math.Pow(a, 0.45)-(rec2020_alpha-1), v)
}

var (
	SRGBLinear = NewLinearRGB("srgb-linear", "xyz-d65", SRGBPrimaries, whiteD65)
	SRGB       = NewGammaRGB("srgb", SRGBLinear, srgb_decode, srgb_encode)

	DisplayP3Linear = NewLinearRGB("display-p3-linear", "xyz-d65", P3Primaries, whiteD65)
	DisplayP3       = NewGammaRGB("display-p3", DisplayP3Linear, srgb_decode, srgb_encode)

	A98RGBLinear = NewLinearRGB("a98-rgb-linear", "xyz-d65", A98Primaries, whiteD65)
	A98RGB       = NewGammaRGB("a98-rgb", A98RGBLinear, a98_decode, a98_encode)

	ProPhotoRGBLinear = NewLinearRGB("prophoto-rgb-linear", "xyz-d50", ProPhotoPrimaries, whiteD50)
	ProPhotoRGB       = NewGammaRGB("prophoto-rgb", ProPhotoRGBLinear, prophoto_decode, prophoto_encode)

	Rec2020Linear = NewLinearRGB("rec2020-linear", "xyz-d65", Rec2020Primaries, whiteD65)
	Rec2020       = NewGammaRGB("rec2020", Rec2020Linear, rec2020_decode, rec2020_encode)
)

var _ types.RGBSpace = SRGB
