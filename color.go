package prism

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

// Color is a set of coordinates in a registered space. The last coordinate
// is alpha. NaN marks an undefined channel.
type Color struct {
	reg    *Registry
	space  types.Space
	coords []float64
}

// New creates a color in the named space. coords must have one value per
// channel of the space.
func (r *Registry) New(space string, coords []float64, alpha float64) (*Color, error) {
	s, err := r.Space(space)
	if err != nil {
		return nil, err
	}
	chans := s.Channels()
	if len(coords) != len(chans) {
		return nil, fmt.Errorf("%w: the space %s has %d channels, got %d coordinates", ErrValue, space, len(chans), len(coords))
	}
	ans := &Color{reg: r, space: s, coords: make([]float64, len(coords)+1)}
	for i, v := range coords {
		ans.coords[i] = chans[i].Limited(v)
	}
	ans.coords[len(coords)] = types.Alpha.Limited(alpha)
	return ans, nil
}

// New creates a color using the default registry.
func New(space string, coords []float64, alpha float64) (*Color, error) {
	return DefaultRegistry().New(space, coords, alpha)
}

func (r *Registry) must_new(space string, coords []float64, alpha float64) *Color {
	ans, err := r.New(space, coords, alpha)
	if err != nil {
		panic(err)
	}
	return ans
}

func parse_hex(s string) (rgba [4]float64, ok bool) {
	var digits int
	switch len(s) {
	case 3, 4:
		digits = 1
	case 6, 8:
		digits = 2
	default:
		return
	}
	rgba[3] = 1
	for i := range len(s) / digits {
		x, err := strconv.ParseUint(s[i*digits:(i+1)*digits], 16, 8)
		if err != nil {
			return rgba, false
		}
		if digits == 1 {
			x *= 17
		}
		rgba[i] = float64(x) / 255
	}
	return rgba, true
}

// Parse creates an sRGB color from a CSS color name, transparent or hex
// notation such as #f00, #ff000080.
func (r *Registry) Parse(text string) (*Color, error) {
	q := strings.ToLower(strings.TrimSpace(text))
	if hex, found := strings.CutPrefix(q, "#"); found {
		if rgba, ok := parse_hex(hex); ok {
			return r.New("srgb", rgba[:3], rgba[3])
		}
		return nil, fmt.Errorf("%w: %#v is not a valid hex color", ErrValue, text)
	}
	if q == "transparent" {
		return r.New("srgb", []float64{0, 0, 0}, 0)
	}
	if c, found := colornames.Map[q]; found {
		return r.FromColor(c), nil
	}
	return nil, fmt.Errorf("%w: %#v is not a known color", ErrValue, text)
}

// Parse creates a color using the default registry.
func Parse(text string) (*Color, error) {
	return DefaultRegistry().Parse(text)
}

// FromColor creates an sRGB color from any image/color value.
func (r *Registry) FromColor(c color.Color) *Color {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return r.must_new("srgb", []float64{float64(n.R) / 0xffff, float64(n.G) / 0xffff, float64(n.B) / 0xffff}, float64(n.A)/0xffff)
}

func (c *Color) Registry() *Registry { return c.reg }

// Space returns the name of the space of c.
func (c *Color) Space() string { return c.space.Name() }

func (c *Color) ColorSpace() types.Space { return c.space }

// Coords returns a copy of the coordinates of c without alpha.
func (c *Color) Coords() []float64 {
	return append([]float64(nil), c.coords[:len(c.coords)-1]...)
}

func (c *Color) Alpha() float64 { return c.coords[len(c.coords)-1] }

func (c *Color) Clone() *Color {
	return &Color{reg: c.reg, space: c.space, coords: append([]float64(nil), c.coords...)}
}

// SetCoords replaces the coordinates and alpha of c.
func (c *Color) SetCoords(coords []float64, alpha float64) error {
	chans := c.space.Channels()
	if len(coords) != len(chans) {
		return fmt.Errorf("%w: the space %s has %d channels, got %d coordinates", ErrValue, c.Space(), len(chans), len(coords))
	}
	for i, v := range coords {
		c.coords[i] = chans[i].Limited(v)
	}
	c.coords[len(chans)] = types.Alpha.Limited(alpha)
	return nil
}

func (c *Color) channel(name string) (int, types.Channel, error) {
	idx := types.ChannelIndex(c.space, name)
	chans := c.space.Channels()
	switch {
	case idx < 0:
		return idx, types.Channel{}, fmt.Errorf("%w: the space %s has no channel named %#v", ErrLookup, c.Space(), name)
	case idx == len(chans):
		return idx, types.Alpha, nil
	}
	return idx, chans[idx], nil
}

// Get returns the value of a channel. Names can be channel names, their
// aliases or alpha. A name of the form space.channel reads the channel
// from c converted to that space.
func (c *Color) Get(name string) (float64, error) {
	if space, channel, found := strings.Cut(name, "."); found {
		o, err := c.Convert(space)
		if err != nil {
			return 0, err
		}
		return o.Get(channel)
	}
	idx, _, err := c.channel(name)
	if err != nil {
		return 0, err
	}
	return c.coords[idx], nil
}

// Set assigns a channel value, applying the channel's hard limits. A
// name of the form space.channel converts c to that space, sets the
// channel there and converts back.
func (c *Color) Set(name string, v float64) error {
	if space, channel, found := strings.Cut(name, "."); found {
		o, err := c.Convert(space)
		if err != nil {
			return err
		}
		if err = o.Set(channel, v); err != nil {
			return err
		}
		return c.Update(o)
	}
	idx, ch, err := c.channel(name)
	if err != nil {
		return err
	}
	c.coords[idx] = ch.Limited(v)
	return nil
}

func (c *Color) IsNaN(name string) (bool, error) {
	v, err := c.Get(name)
	return math.IsNaN(v), err
}

// Normalize canonicalizes the coordinates of c, marking the hue of
// achromatic colors undefined.
func (c *Color) Normalize() *Color {
	coords := types.ResolveNaNs(c.space, c.coords[:len(c.coords)-1])
	normalize_coords(c.space, coords)
	copy(c.coords, coords)
	return c
}

// ToNRGBA64 clips c into sRGB and returns it as an image/color value.
// Undefined channels are treated as zero.
func (c *Color) ToNRGBA64() (color.NRGBA64, error) {
	s, err := c.Convert("srgb")
	if err != nil {
		return color.NRGBA64{}, err
	}
	if err = s.Clip(""); err != nil {
		return color.NRGBA64{}, err
	}
	q := func(v float64) uint16 {
		return uint16(math.Round(algebra.Clamp(algebra.NoNaN(v, 0), 0, 1) * 0xffff))
	}
	return color.NRGBA64{R: q(s.coords[0]), G: q(s.coords[1]), B: q(s.coords[2]), A: q(s.coords[3])}, nil
}

func format_float(v float64) string {
	if math.IsNaN(v) {
		return "none"
	}
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 5, 64)
}

func (c *Color) String() string {
	parts := make([]string, 0, len(c.coords)+1)
	for _, v := range c.coords[:len(c.coords)-1] {
		parts = append(parts, format_float(v))
	}
	return fmt.Sprintf("color(%s %s / %s)", c.Space(), strings.Join(parts, " "), format_float(c.Alpha()))
}

// XY returns the xy chromaticity of c relative to its space's white.
func (c *Color) XY() ([2]float64, error) {
	xyz, err := c.Convert("xyz-d65")
	if err != nil {
		return [2]float64{}, err
	}
	v, err := c.reg.ChromaticAdaptation(xyz.space.White(), c.space.White(), xyz.Coords(), "")
	if err != nil {
		return [2]float64{}, err
	}
	return algebra.XYZToXY(algebra.FromSlice(v)), nil
}
