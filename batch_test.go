package prism

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestConvertAll(t *testing.T) {
	r := DefaultRegistry()
	colors := make([]*Color, 257)
	for i := range colors {
		v := float64(i) / float64(len(colors)-1)
		colors[i] = must_color(t, r, "srgb", v, 1-v, 0.5)
	}
	require.NoError(t, ConvertAll(colors, "oklch"))
	for i, c := range colors {
		assert.Equal(t, "oklch", c.Space())
		v := float64(i) / float64(len(colors)-1)
		back, err := c.Convert("srgb")
		require.NoError(t, err)
		assert_coords(t, []float64{v, 1 - v, 0.5}, back, 1e-6)
	}

	clone := r.Clone()
	require.NoError(t, clone.Deregister(false, "space:hsl"))
	mixed := []*Color{must_color(t, r, "srgb", 1, 0, 0), must_color(t, clone, "srgb", 0, 1, 0)}
	err := ConvertAll(mixed, "hsl")
	require.ErrorIs(t, err, ErrLookup)
	assert.Equal(t, "hsl", mixed[0].Space())
	assert.Equal(t, "srgb", mixed[1].Space())
}

func TestFitAll(t *testing.T) {
	r := DefaultRegistry()
	colors := make([]*Color, 64)
	for i := range colors {
		colors[i] = must_color(t, r, "oklch", 0.7, 0.4, float64(i)*360/float64(len(colors)))
	}
	require.NoError(t, FitAll(colors, "srgb", ""))
	for _, c := range colors {
		assert.Equal(t, "oklch", c.Space())
		in, err := c.InGamut("srgb")
		require.NoError(t, err)
		assert.True(t, in, c.String())
	}
	require.ErrorIs(t, FitAll(colors, "srgb", "nonexistent"), ErrLookup)
}
