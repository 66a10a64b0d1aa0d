// Package types defines the contract a color space must satisfy to take
// part in conversions, along with the optional capabilities the rest of
// the library probes for with type assertions.
package types

import (
	"fmt"
	"strings"
)

var _ = fmt.Print

// ChannelFlag describes how a channel is to be treated.
type ChannelFlag uint8

const (
	FlagAngle ChannelFlag = 1 << iota
	FlagPercent
	FlagOptPercent
	FlagMirrorPercent
)

func (f ChannelFlag) String() string {
	var parts []string
	for _, x := range []struct {
		f ChannelFlag
		n string
	}{{FlagAngle, "angle"}, {FlagPercent, "percent"}, {FlagOptPercent, "opt-percent"}, {FlagMirrorPercent, "mirror-percent"}} {
		if f&x.f != 0 {
			parts = append(parts, x.n)
		}
	}
	return strings.Join(parts, "|")
}

// Channel describes one coordinate of a color space.
type Channel struct {
	Name      string
	Low, High float64
	// Bound channels are clamped to [Low, High] by clipping, unbound ones
	// are only used for gamut checks and scaling.
	Bound bool
	Flags ChannelFlag
	// Limit, when non-zero, is a hard range applied to values assigned to
	// the channel.
	Limit [2]float64
	// NaNs is the value substituted for an undefined channel before it is
	// used in a transform.
	NaNs float64
}

func (c Channel) IsAngle() bool { return c.Flags&FlagAngle != 0 }

// Span returns High - Low, or 360 for angles.
func (c Channel) Span() float64 {
	if c.IsAngle() {
		return 360
	}
	return c.High - c.Low
}

// Limited applies the channel's hard limits to v.
func (c Channel) Limited(v float64) float64 {
	if v != v || c.Limit == [2]float64{} {
		return v
	}
	return max(c.Limit[0], min(v, c.Limit[1]))
}

func (c Channel) String() string {
	return fmt.Sprintf("Channel{%s [%v, %v] bound=%v %s}", c.Name, c.Low, c.High, c.Bound, c.Flags)
}

// Angle returns a hue channel.
func Angle(name string) Channel {
	return Channel{Name: name, Low: 0, High: 360, Flags: FlagAngle, NaNs: 0}
}

// Unbound returns a channel whose range is informative only.
func Unbound(name string, low, high float64, flags ChannelFlag) Channel {
	return Channel{Name: name, Low: low, High: high, Flags: flags}
}

// Bound returns a channel that clipping clamps to its range.
func Bound(name string, low, high float64, flags ChannelFlag) Channel {
	return Channel{Name: name, Low: low, High: high, Bound: true, Flags: flags}
}

// Alpha is the implicit last channel of every color.
var Alpha = Channel{Name: "alpha", Low: 0, High: 1, Bound: true, Flags: FlagPercent, Limit: [2]float64{0, 1}}

// Space is a node in the conversion graph. Coordinates passed to ToBase
// and FromBase never include alpha and must not be retained. Both return
// freshly allocated slices.
type Space interface {
	Name() string
	// Base is the name of the space this one converts to directly. Root
	// spaces return their own name.
	Base() string
	Channels() []Channel
	// White is the reference white as xy chromaticity.
	White() [2]float64
	ToBase(coords []float64) []float64
	FromBase(coords []float64) []float64
}

// Aliased spaces accept alternate channel names, alias -> channel name.
type Aliased interface {
	Aliases() map[string]string
}

// Cylindrical spaces have a hue channel.
type Cylindrical interface {
	HueIndex() int
}

// Achromatic spaces can report when coords have no perceptible hue.
type Achromatic interface {
	IsAchromatic(coords []float64) bool
}

// Normalizer canonicalizes coordinates, for instance flipping negative chroma.
type Normalizer interface {
	Normalize(coords []float64) []float64
}

// NaNResolver substitutes undefined channels before a transform. Spaces
// that do not implement it have NaNs replaced with each channel's NaNs value.
type NaNResolver interface {
	ResolveNaNs(coords []float64) []float64
}

// GamutChecker spaces defer gamut membership to another space.
type GamutChecker interface {
	GamutCheck() string
}

// RGBSpace marks RGB-ish spaces. Linear names the linear light variant,
// which may be the space itself or empty.
type RGBSpace interface {
	Linear() string
}

// CylinderRGB marks spaces such as HSL that are a cylindrical rendition
// of RGBSpace. Gamut mappers that need an RGB cube work in RGBParent.
type CylinderRGB interface {
	RGBParent() string
}

// ExtendedRange spaces can hold colors outside their nominal bounds
// without gamut mapping before interpolation.
type ExtendedRange interface {
	ExtendedRange() bool
}

// Perceptual spaces report the indices of their lightness channel and the
// two chromatic channels. For cylindrical spaces these are chroma then hue,
// otherwise the two opponent axes.
type Perceptual interface {
	Indexes() [3]int
}

// Channel kinds used when carrying undefined channels between spaces.
type ChannelKind uint8

const (
	KindOther ChannelKind = iota
	KindRed
	KindGreen
	KindBlue
	KindLightness
	KindColorfulness
	KindHue
)

// Kinded spaces categorize their channels so that undefined values can
// be carried forward into analogous channels of another space.
type Kinded interface {
	ChannelKinds() []ChannelKind
}

func HueIndex(s Space) int {
	if c, ok := s.(Cylindrical); ok {
		return c.HueIndex()
	}
	return -1
}

func IsRGB(s Space) bool {
	_, ok := s.(RGBSpace)
	return ok
}

func IsExtendedRange(s Space) bool {
	if e, ok := s.(ExtendedRange); ok {
		return e.ExtendedRange()
	}
	return false
}

// GamutSpace is the name of the space gamut checks for s are done in.
func GamutSpace(s Space) string {
	if g, ok := s.(GamutChecker); ok {
		if ans := g.GamutCheck(); ans != "" {
			return ans
		}
	}
	return s.Name()
}

// IsAchromatic reports false for spaces that cannot tell.
func IsAchromatic(s Space, coords []float64) bool {
	if a, ok := s.(Achromatic); ok {
		return a.IsAchromatic(coords)
	}
	return false
}

// ChannelKinds returns the kinds of every channel of s, KindOther for
// spaces that do not categorize them.
func ChannelKinds(s Space) []ChannelKind {
	if k, ok := s.(Kinded); ok {
		return k.ChannelKinds()
	}
	ans := make([]ChannelKind, len(s.Channels()))
	if h := HueIndex(s); h > -1 {
		ans[h] = KindHue
	}
	return ans
}

// ResolveNaNs returns a copy of coords with undefined channels replaced.
func ResolveNaNs(s Space, coords []float64) []float64 {
	if r, ok := s.(NaNResolver); ok {
		return r.ResolveNaNs(coords)
	}
	ans := make([]float64, len(coords))
	chans := s.Channels()
	for i, v := range coords {
		if v != v {
			v = chans[i].NaNs
		}
		ans[i] = v
	}
	return ans
}

// ChannelIndex finds a channel by name or alias, returning -1 when absent.
func ChannelIndex(s Space, name string) int {
	if a, ok := s.(Aliased); ok {
		if real, found := a.Aliases()[name]; found {
			name = real
		}
	}
	for i, c := range s.Channels() {
		if c.Name == name {
			return i
		}
	}
	if name == "alpha" {
		return len(s.Channels())
	}
	return -1
}
