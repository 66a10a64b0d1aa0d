package prism

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestClip(t *testing.T) {
	r := DefaultRegistry()
	c := must_color(t, r, "srgb", 2, -1, 0)
	require.NoError(t, c.Clip(""))
	assert_coords(t, []float64{1, 0, 0}, c, 0)
	require.NoError(t, c.Clip(""))
	assert_coords(t, []float64{1, 0, 0}, c, 0)

	lab := must_color(t, r, "lab", 50, 100, 0)
	in, err := lab.InGamut("srgb")
	require.NoError(t, err)
	require.False(t, in)
	require.NoError(t, lab.Clip("srgb"))
	assert.Equal(t, "lab", lab.Space())
	in, err = lab.InGamut("srgb")
	require.NoError(t, err)
	assert.True(t, in)
	once := lab.Coords()
	require.NoError(t, lab.Clip("srgb"))
	assert_coords(t, once, lab, 1e-9)

	h := must_color(t, r, "hsl", 400, 1.5, 0.5)
	require.NoError(t, h.Clip("srgb"))
	assert_coords(t, []float64{45, 1, 0.5}, h, 1e-9)
	once = h.Coords()
	require.NoError(t, h.Clip("srgb"))
	assert.Equal(t, once, h.Coords())
	inside := must_color(t, r, "hsl", 380, 0.5, 0.5)
	require.NoError(t, inside.Clip("srgb"))
	assert.Equal(t, []float64{20, 0.5, 0.5}, inside.Coords())

	require.ErrorIs(t, lab.Clip("nonexistent"), ErrLookup)
}

func TestInGamutTolerance(t *testing.T) {
	r := DefaultRegistry()
	c := must_color(t, r, "srgb", 1.00005, 0, 0)
	in, err := c.InGamut("")
	require.NoError(t, err)
	assert.True(t, in)
	in, err = c.InGamut("", Tolerance(0))
	require.NoError(t, err)
	assert.False(t, in)

	// unbound channels never leave the gamut
	lab := must_color(t, r, "lab", 150, -300, 300)
	in, err = lab.InGamut("")
	require.NoError(t, err)
	assert.True(t, in)

	// undefined channels are ignored
	n := must_color(t, r, "srgb", 0.5, math.NaN(), 0.5)
	in, err = n.InGamut("")
	require.NoError(t, err)
	assert.True(t, in)
}

func TestVerifyAndClipChannels(t *testing.T) {
	r := DefaultRegistry()
	c := must_color(t, r, "hsl", 400, 1.5, -0.1)
	assert.False(t, Verify(c, 0))
	assert.True(t, ClipChannels(c))
	assert_coords(t, []float64{40, 1, 0}, c, 1e-12)
	assert.True(t, Verify(c, 0))
	assert.False(t, ClipChannels(c))

	// angles are wrapped without counting as clipping
	h := must_color(t, r, "oklch", 0.5, 0.1, -30)
	assert.True(t, Verify(h, 0))
	assert.False(t, ClipChannels(h))
	assert_coords(t, []float64{0.5, 0.1, 330}, h, 1e-12)
}

func TestCylinderGamutDefersToRGB(t *testing.T) {
	r := DefaultRegistry()
	c := must_color(t, r, "hsl", 0, 1.5, 0.5)
	in, err := c.InGamut("")
	require.NoError(t, err)
	assert.False(t, in)
	require.NoError(t, c.Clip(""))
	assert_coords(t, []float64{0, 1, 0.5}, c, 1e-9)
	in, err = c.InGamut("srgb", Tolerance(0))
	require.NoError(t, err)
	assert.True(t, in)
}
