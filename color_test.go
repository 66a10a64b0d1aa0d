package prism

import (
	"fmt"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/prism/cat"
)

var _ = fmt.Print

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		text     string
		expected []float64
		alpha    float64
	}{
		{"red", []float64{1, 0, 0}, 1},
		{"  CornflowerBlue ", []float64{100 / 255., 149 / 255., 237 / 255.}, 1},
		{"#f00", []float64{1, 0, 0}, 1},
		{"#00ff0080", []float64{0, 1, 0}, 0x80 / 255.},
		{"#0000FF", []float64{0, 0, 1}, 1},
		{"#fff8", []float64{1, 1, 1}, 0x88 / 255.},
		{"transparent", []float64{0, 0, 0}, 0},
	} {
		t.Run(tc.text, func(t *testing.T) {
			c, err := Parse(tc.text)
			require.NoError(t, err)
			assert.Equal(t, "srgb", c.Space())
			assert_coords(t, tc.expected, c, 1e-12)
			assert.InDelta(t, tc.alpha, c.Alpha(), 1e-12)
		})
	}
	for _, bad := range []string{"", "#12", "#ggg", "#1234567", "not-a-color"} {
		_, err := Parse(bad)
		require.ErrorIs(t, err, ErrValue, bad)
	}
}

func TestNewValidation(t *testing.T) {
	r := DefaultRegistry()
	_, err := r.New("srgb", []float64{1, 0}, 1)
	require.ErrorIs(t, err, ErrValue)
	_, err = r.New("nonexistent", []float64{1, 0, 0}, 1)
	require.ErrorIs(t, err, ErrLookup)
	c := must_color(t, r, "srgb", 2, -1, 0)
	// RGB channels have no hard limits, alpha does
	assert_coords(t, []float64{2, -1, 0}, c, 0)
	c, err = r.New("srgb", []float64{0, 0, 0}, 7)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Alpha())

	require.ErrorIs(t, c.SetCoords([]float64{1}, 1), ErrValue)
	require.NoError(t, c.SetCoords([]float64{0.1, 0.2, 0.3}, 0.5))
	assert_coords(t, []float64{0.1, 0.2, 0.3}, c, 0)
	assert.Equal(t, 0.5, c.Alpha())
}

func TestGetSet(t *testing.T) {
	r := DefaultRegistry()
	c := must_color(t, r, "srgb", 1, 0, 0)
	for _, tc := range []struct {
		name     string
		expected float64
	}{
		{"r", 1}, {"red", 1}, {"g", 0}, {"alpha", 1}, {"hsl.s", 1}, {"hsl.lightness", 0.5}, {"hsl.h", 0},
	} {
		v, err := c.Get(tc.name)
		require.NoError(t, err, tc.name)
		assert.InDelta(t, tc.expected, v, 1e-9, tc.name)
	}
	_, err := c.Get("nonexistent")
	require.ErrorIs(t, err, ErrLookup)
	_, err = c.Get("nonexistent.r")
	require.ErrorIs(t, err, ErrLookup)

	require.NoError(t, c.Set("hsl.lightness", 0.25))
	assert.Equal(t, "srgb", c.Space())
	assert_coords(t, []float64{0.5, 0, 0}, c, 1e-9)
	require.NoError(t, c.Set("alpha", 0.5))
	assert.Equal(t, 0.5, c.Alpha())
	// a failed lookup leaves the color untouched
	before := c.Coords()
	require.ErrorIs(t, c.Set("nonexistent.x", 1), ErrLookup)
	require.ErrorIs(t, c.Set("hsl.nonexistent", 1), ErrLookup)
	assert.Equal(t, before, c.Coords())

	require.NoError(t, c.Set("g", math.NaN()))
	undefined, err := c.IsNaN("g")
	require.NoError(t, err)
	assert.True(t, undefined)
}

func TestNormalize(t *testing.T) {
	r := DefaultRegistry()
	c := must_color(t, r, "lch", 50, -10, 20)
	c.Normalize()
	assert_coords(t, []float64{50, 10, 200}, c, 1e-12)
	gray := must_color(t, r, "oklch", 0.5, 0, 120)
	h, err := gray.Normalize().IsNaN("h")
	require.NoError(t, err)
	assert.True(t, h)
}

func TestString(t *testing.T) {
	c := must_color(t, DefaultRegistry(), "oklch", 0.5, math.NaN(), 123.456789)
	assert.Equal(t, "color(oklch 0.5 none 123.46 / 1)", c.String())
}

func TestImageColorBridge(t *testing.T) {
	r := DefaultRegistry()
	c := r.FromColor(color.NRGBA{R: 255, G: 128, B: 0, A: 128})
	assert.Equal(t, "srgb", c.Space())
	assert.InDelta(t, 128/255., c.Alpha(), 1e-3)
	q, err := c.ToNRGBA64()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA64Model.Convert(color.NRGBA{R: 255, G: 128, B: 0, A: 128}), color.Color(q))

	// out of gamut colors are clipped
	p3 := must_color(t, r, "display-p3", 1, 0, 0)
	q, err = p3.ToNRGBA64()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA64{R: 0xffff, A: 0xffff}, q)
}

func TestXY(t *testing.T) {
	r := DefaultRegistry()
	white := must_color(t, r, "srgb", 1, 1, 1)
	xy, err := white.XY()
	require.NoError(t, err)
	assert.InDelta(t, cat.D65[0], xy[0], 1e-4)
	assert.InDelta(t, cat.D65[1], xy[1], 1e-4)
	white = must_color(t, r, "lab", 100, 0, 0)
	xy, err = white.XY()
	require.NoError(t, err)
	assert.InDelta(t, cat.D50[0], xy[0], 1e-4)
	assert.InDelta(t, cat.D50[1], xy[1], 1e-4)
}

func TestUpdate(t *testing.T) {
	r := DefaultRegistry()
	c := must_color(t, r, "srgb", 0, 0, 0)
	o := must_color(t, r, "hsl", 0, 1, 0.5)
	require.NoError(t, c.Update(o))
	assert.Equal(t, "srgb", c.Space())
	assert_coords(t, []float64{1, 0, 0}, c, 1e-9)
	require.NoError(t, c.ConvertInPlace("hsv"))
	assert.Equal(t, "hsv", c.Space())
	assert_coords(t, []float64{0, 1, 1}, c, 1e-9)
	require.ErrorIs(t, c.ConvertInPlace("nonexistent"), ErrLookup)
	assert.Equal(t, "hsv", c.Space())
}
