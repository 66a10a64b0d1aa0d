package prism

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestChainRoute(t *testing.T) {
	r := NewDefaultRegistry()
	for _, tc := range []struct{ from, to, expected string }{
		{"srgb", "srgb", "srgb"},
		{"srgb", "hsl", "srgb → hsl"},
		{"hwb", "hsl", "hwb → hsv → hsl"},
		{"hsl", "srgb-linear", "hsl → srgb → srgb-linear"},
		{"lch", "oklch", "lch → lab → xyz-d50 → xyz-d65 → oklab → oklch"},
	} {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			c, err := r.Chain(tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c.String())
		})
	}
	c, err := r.Chain("lab", "xyz-d65")
	require.NoError(t, err)
	adapted := 0
	for _, s := range c.Steps {
		if s.Adapt {
			adapted++
			assert.Equal(t, ToBase, s.Direction)
		}
	}
	assert.Equal(t, 1, adapted)

	c, err = r.Chain("hsl", "xyz-d50")
	require.NoError(t, err)
	steps := make([]string, len(c.Steps))
	for i, s := range c.Steps {
		steps[i] = fmt.Sprintf("%s>%s %s %v", s.From.Name(), s.To.Name(), s.Direction, s.Adapt)
	}
	assert.Equal(t, []string{
		"hsl>srgb to-base false", "srgb>srgb-linear to-base false",
		"srgb-linear>xyz-d65 to-base false", "xyz-d65>xyz-d50 from-base true",
	}, steps)
	_, err = r.Chain("srgb", "nonexistent")
	require.ErrorIs(t, err, ErrLookup)
}

func TestChainCache(t *testing.T) {
	r := NewDefaultRegistry()
	a, err := r.Chain("srgb", "oklch")
	require.NoError(t, err)
	b, err := r.Chain("srgb", "oklch")
	require.NoError(t, err)
	require.Same(t, a, b)
	require.NoError(t, r.Register(false, identity_space("other", "srgb")))
	b, err = r.Chain("srgb", "oklch")
	require.NoError(t, err)
	require.NotSame(t, a, b)
	require.NoError(t, r.Deregister(false, "space:oklab"))
	_, err = r.Chain("srgb", "oklch")
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestChainLimits(t *testing.T) {
	r := NewDefaultRegistry()
	require.NoError(t, r.Register(false, identity_space("loop-a", "loop-b"), identity_space("loop-b", "loop-a")))
	_, err := r.Chain("loop-a", "srgb")
	require.ErrorIs(t, err, ErrConfiguration)

	require.NoError(t, r.Register(false, identity_space("island", "island"), identity_space("islander", "island")))
	_, err = r.Chain("islander", "srgb")
	require.ErrorIs(t, err, ErrConfiguration)

	prev := "srgb"
	for i := range MaxChainHops {
		name := fmt.Sprintf("deep-%d", i)
		require.NoError(t, r.Register(false, identity_space(name, prev)))
		prev = name
	}
	_, err = r.Chain(prev, "srgb")
	require.ErrorIs(t, err, ErrConfiguration)
	_, err = r.Chain("deep-5", "srgb")
	require.NoError(t, err)
}

func TestConversionScenarios(t *testing.T) {
	r := NewDefaultRegistry()
	red := must_color(t, r, "srgb", 1, 0, 0)
	hsl, err := red.Convert("hsl")
	require.NoError(t, err)
	assert_coords(t, []float64{0, 1, 0.5}, hsl, 1e-9)

	white := must_color(t, r, "srgb", 1, 1, 1)
	hsl, err = white.Convert("hsl")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(hsl.Coords()[0]), "the hue of white must be undefined: %s", hsl)
	raw, err := white.Convert("hsl", WithoutNormalize())
	require.NoError(t, err)
	assert.False(t, math.IsNaN(raw.Coords()[0]))

	// undefined channels count as zero when converting
	c := must_color(t, r, "srgb", 1, math.NaN(), 0)
	conv, err := c.Convert("hsl")
	require.NoError(t, err)
	assert_coords(t, []float64{0, 1, 0.5}, conv, 1e-9)
}

func TestRoundTrips(t *testing.T) {
	r := NewDefaultRegistry()
	samples := [][]float64{{0.2, 0.4, 0.6}, {0.9, 0.1, 0.3}, {0.5, 0.5, 0.5}, {0.05, 0.8, 0.2}}
	for _, name := range r.Spaces() {
		t.Run(name, func(t *testing.T) {
			for _, s := range samples {
				orig := must_color(t, r, "srgb", s...)
				there, err := orig.Convert(name, WithoutNormalize())
				require.NoError(t, err)
				back, err := there.Convert("srgb")
				require.NoError(t, err)
				assert_coords(t, s, back, 1e-5, "via", there)
			}
		})
	}
}

func TestConvertCoords(t *testing.T) {
	r := NewDefaultRegistry()
	ans, err := r.ConvertCoords("srgb", "srgb-linear", []float64{1, 0.5, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1, ans[0], 1e-12)
	assert.InDelta(t, 0.21404114048223255, ans[1], 1e-9)
	assert.InDelta(t, 0, ans[2], 1e-12)
	xyz1, err := r.ConvertCoords("lab", "xyz-d65", []float64{50, 20, -30})
	require.NoError(t, err)
	xyz2, err := r.ConvertCoords("lab", "xyz-d65", []float64{50, 20, -30}, UsingCAT("cat16"))
	require.NoError(t, err)
	assert.NotEqual(t, xyz1, xyz2)
	_, err = r.ConvertCoords("lab", "xyz-d65", []float64{50, 20, -30}, UsingCAT("nonexistent"))
	require.ErrorIs(t, err, ErrLookup)
}

func TestChainSymmetry(t *testing.T) {
	r := NewDefaultRegistry()
	names := r.Spaces()
	for _, a := range names {
		for _, b := range names {
			there, err := r.Chain(a, b)
			require.NoError(t, err)
			back, err := r.Chain(b, a)
			require.NoError(t, err)
			require.Len(t, back.Steps, len(there.Steps), "%s <-> %s", a, b)
			for i, s := range there.Steps {
				o := back.Steps[len(back.Steps)-1-i]
				assert.Equal(t, s.From.Name(), o.To.Name())
				assert.Equal(t, s.To.Name(), o.From.Name())
				assert.NotEqual(t, s.Direction, o.Direction)
				assert.Equal(t, s.Adapt, o.Adapt)
			}
		}
	}
	c := must_color(t, r, "srgb", 0.3, 0.6, 0.2)
	for _, name := range []string{"hwb", "jzczhz", "prophoto-rgb", "cam16-jmh", "lch99o"} {
		there, err := c.Convert(name)
		require.NoError(t, err)
		back, err := there.Convert("hsl")
		require.NoError(t, err)
		direct, err := c.Convert("hsl")
		require.NoError(t, err)
		assert_coords(t, direct.Coords(), back, 1e-5, "via", name)
	}
}
