package prism

import (
	"fmt"
	"math"
)

var _ = fmt.Print

const (
	DefaultFit         = "oklch-chroma"
	DefaultDeltaE      = "76"
	DefaultInterpolate = "oklab"
	DefaultCAT         = "bradford"
	DefaultHue         = "shorter"
	// DefaultFitTolerance is the slack allowed by InGamut.
	DefaultFitTolerance = 0.000075
	DefaultMix          = 0.5
	DefaultMaxSteps     = 1000
)

// Options holds the settings of the conversion, gamut and distance
// operations. Plugins receive the fully resolved Options.
type Options struct {
	// Normalize canonicalizes converted coordinates and marks the hue of
	// achromatic colors undefined.
	Normalize bool
	// FitMethod, when set, gamut maps the result of a conversion with the
	// named method.
	FitMethod string
	Tolerance float64
	CAT       string
	// Space is the working space of a delta-E method, empty for its default.
	Space string
	// Scalar multiplies the result of the ok delta-E, 0 means 1.
	Scalar float64
	// Weights are the parametric factors of the 94 (kL, k1, k2), cmc (l, c)
	// and 2000 (kL, kC, kH) delta-E methods.
	Weights []float64
	// PSpace is the perceptual space used by gamut mapping.
	PSpace string
	// JND is the just noticeable difference for MINDE, NaN for the method default.
	JND           float64
	DeltaE        string
	DeltaEOptions []Option
	// Adaptive, when non-zero, is the alpha of the adaptive lightness anchor
	// used by gamut mapping.
	Adaptive float64
}

// Option sets an optional parameter of an operation.
type Option func(*Options)

func default_options() Options {
	return Options{Normalize: true, Tolerance: DefaultFitTolerance, JND: math.NaN()}
}

func build_options(opts []Option) *Options {
	ans := default_options()
	for _, o := range opts {
		o(&ans)
	}
	return &ans
}

// WithoutNormalize leaves converted coordinates exactly as the transforms
// produced them.
func WithoutNormalize() Option {
	return func(o *Options) { o.Normalize = false }
}

// GamutMapped makes Convert fit the result into the target space with the
// named method when it is out of gamut. An empty method uses DefaultFit.
func GamutMapped(method string) Option {
	return func(o *Options) {
		if method == "" {
			method = DefaultFit
		}
		o.FitMethod = method
	}
}

func Tolerance(t float64) Option {
	return func(o *Options) { o.Tolerance = t }
}

// UsingCAT selects the chromatic adaptation method for white point changes.
func UsingCAT(name string) Option {
	return func(o *Options) { o.CAT = name }
}

// DeltaESpace sets the working space of a delta-E method.
func DeltaESpace(space string) Option {
	return func(o *Options) { o.Space = space }
}

func Scalar(s float64) Option {
	return func(o *Options) { o.Scalar = s }
}

func Weights(w ...float64) Option {
	return func(o *Options) { o.Weights = w }
}

// Perceptual sets the space gamut mapping preserves lightness and hue in.
func Perceptual(space string) Option {
	return func(o *Options) { o.PSpace = space }
}

func JND(v float64) Option {
	return func(o *Options) { o.JND = v }
}

// FitDeltaE sets the delta-E method, and its options, used by MINDE.
func FitDeltaE(method string, opts ...Option) Option {
	return func(o *Options) {
		o.DeltaE = method
		o.DeltaEOptions = opts
	}
}

// Adaptive enables adaptive lightness for gamut mapping, alpha is typically 0.05.
func Adaptive(alpha float64) Option {
	return func(o *Options) { o.Adaptive = alpha }
}

func (o *Options) weight(i int, def float64) float64 {
	if i < len(o.Weights) {
		return o.Weights[i]
	}
	return def
}
