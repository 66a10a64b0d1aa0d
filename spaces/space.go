// Package spaces contains the color spaces shipped with prism. Every space
// is a node in a tree rooted at xyz-d65, converting only to and from its
// direct base.
package spaces

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/cat"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

type transform = func([]float64) []float64

// Space is a plain node with no optional capabilities. The other space
// types in this package embed it.
type Space struct {
	name, base string
	channels   []types.Channel
	white      [2]float64
	aliases    map[string]string
	to, from   transform
}

// New creates a space from a pair of transforms. Use it to define custom
// spaces that need no capabilities beyond conversion.
func New(name, base string, white [2]float64, channels []types.Channel, aliases map[string]string, to_base, from_base func([]float64) []float64) *Space {
	return &Space{name: name, base: base, channels: channels, white: white, aliases: aliases, to: to_base, from: from_base}
}

func (s *Space) Name() string { return s.name }
func (s *Space) Base() string { return s.base }
func (s *Space) Channels() []types.Channel { return s.channels }
func (s *Space) White() [2]float64 { return s.white }
func (s *Space) Aliases() map[string]string { return s.aliases }
func (s *Space) ToBase(c []float64) []float64 { return s.to(c) }
func (s *Space) FromBase(c []float64) []float64 { return s.from(c) }

func (s *Space) String() string {
	return fmt.Sprintf("Space{%s -> %s}", s.name, s.base)
}

// RGB is an RGB-ish space with channels r, g and b bound to [0, 1].
type RGB struct {
	Space
	linear string
}

func (s *RGB) Linear() string { return s.linear }
func (s *RGB) ExtendedRange() bool { return true }
func (s *RGB) ChannelKinds() []types.ChannelKind {
	return []types.ChannelKind{types.KindRed, types.KindGreen, types.KindBlue}
}

func rgb_channels() []types.Channel {
	return []types.Channel{
		types.Bound("r", 0, 1, types.FlagPercent),
		types.Bound("g", 0, 1, types.FlagPercent),
		types.Bound("b", 0, 1, types.FlagPercent),
	}
}

var rgb_aliases = map[string]string{"red": "r", "green": "g", "blue": "b"}

// Lab is a rectangular perceptual space with lightness first.
type Lab struct {
	Space
}

func (s *Lab) Indexes() [3]int { return [3]int{0, 1, 2} }
func (s *Lab) ChannelKinds() []types.ChannelKind {
	return []types.ChannelKind{types.KindLightness, types.KindOther, types.KindOther}
}

func lab_channels(lightness, ab float64) []types.Channel {
	return []types.Channel{
		types.Unbound("l", 0, lightness, types.FlagOptPercent),
		types.Unbound("a", -ab, ab, types.FlagMirrorPercent),
		types.Unbound("b", -ab, ab, types.FlagMirrorPercent),
	}
}

var lab_aliases = map[string]string{"lightness": "l"}

// LCh is a cylindrical perceptual space. idx holds the lightness, chroma
// and hue indices. Colors with chroma below threshold are achromatic
// unless achromatic is set, in which case it decides.
type LCh struct {
	Space
	idx        [3]int
	threshold  float64
	achromatic func(coords []float64) bool
	resolve    func(coords []float64) []float64
}

func (s *LCh) HueIndex() int { return s.idx[2] }
func (s *LCh) Indexes() [3]int { return s.idx }
func (s *LCh) ChannelKinds() []types.ChannelKind {
	ans := make([]types.ChannelKind, 3)
	ans[s.idx[0]] = types.KindLightness
	ans[s.idx[1]] = types.KindColorfulness
	ans[s.idx[2]] = types.KindHue
	return ans
}

func (s *LCh) IsAchromatic(coords []float64) bool {
	if s.achromatic != nil {
		return s.achromatic(coords)
	}
	return math.Abs(coords[s.idx[1]]) < s.threshold
}

// Normalize flips negative chroma to the opposite hue and wraps the hue.
func (s *LCh) Normalize(coords []float64) []float64 {
	c, h := s.idx[1], s.idx[2]
	if coords[c] < 0 {
		coords[c] = -coords[c]
		coords[h] += 180
	}
	coords[h] = algebra.ConstrainHue(coords[h])
	return coords
}

func (s *LCh) ResolveNaNs(coords []float64) []float64 {
	if s.resolve != nil {
		return s.resolve(coords)
	}
	ans := make([]float64, len(coords))
	for i, v := range coords {
		ans[i] = algebra.NoNaN(v, s.channels[i].NaNs)
	}
	return ans
}

func lch_channels(lightness, chroma float64) []types.Channel {
	return []types.Channel{
		types.Unbound("l", 0, lightness, types.FlagOptPercent),
		types.Unbound("c", 0, chroma, types.FlagOptPercent),
		types.Angle("h"),
	}
}

var lch_aliases = map[string]string{"lightness": "l", "chroma": "c", "hue": "h"}

func new_lch(name, base string, white [2]float64, chans []types.Channel, aliases map[string]string, threshold float64) *LCh {
	return &LCh{
		Space: Space{
			name: name, base: base, white: white, channels: chans, aliases: aliases,
			to: lch_to_lab, from: lab_to_lch,
		},
		idx: [3]int{0, 1, 2}, threshold: threshold,
	}
}

func lab_to_lch(lab []float64) []float64 {
	c, h := algebra.RectToPolar(lab[1], lab[2])
	return []float64{lab[0], c, h}
}

func lch_to_lab(lch []float64) []float64 {
	a, b := algebra.PolarToRect(lch[1], algebra.NoNaN(lch[2], 0))
	return []float64{lch[0], a, b}
}

var (
	whiteD65 = cat.D65
	whiteD50 = cat.D50
)
