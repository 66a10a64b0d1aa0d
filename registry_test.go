package prism

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/cat"
	"github.com/kovidgoyal/prism/spaces"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

var approx = cmp.Options{cmpopts.EquateApprox(0, 1e-6), cmpopts.EquateNaNs()}

func must_color(t *testing.T, r *Registry, space string, coords ...float64) *Color {
	t.Helper()
	c, err := r.New(space, coords, 1)
	require.NoError(t, err)
	return c
}

func assert_coords(t *testing.T, expected []float64, c *Color, tolerance float64, msg ...any) {
	t.Helper()
	opts := cmp.Options{cmpopts.EquateApprox(0, tolerance), cmpopts.EquateNaNs()}
	if diff := cmp.Diff(expected, c.Coords(), opts); diff != "" {
		t.Fatalf("%s coordinates differ (-expected +actual):\n%s\n%v", c.Space(), diff, msg)
	}
}

// identity_space is a copy of sRGB under another name.
func identity_space(name, base string) types.Space {
	chans := []types.Channel{types.Bound("r", 0, 1, 0), types.Bound("g", 0, 1, 0), types.Bound("b", 0, 1, 0)}
	same := func(c []float64) []float64 { return append([]float64(nil), c...) }
	return spaces.New(name, base, cat.D65, chans, nil, same, same)
}

func TestRegistryIsolation(t *testing.T) {
	base := NewDefaultRegistry()
	clone := base.Clone()
	require.NoError(t, clone.Register(false, identity_space("my-srgb", "srgb")))
	_, err := clone.Space("my-srgb")
	require.NoError(t, err)
	_, err = base.Space("my-srgb")
	require.ErrorIs(t, err, ErrLookup)

	require.NoError(t, clone.Deregister(false, "space:hsl"))
	_, err = clone.Space("hsl")
	require.ErrorIs(t, err, ErrLookup)
	_, err = base.Space("hsl")
	require.NoError(t, err)

	// colors resolve plugins through their own registry
	c := must_color(t, clone, "srgb", 1, 0, 0)
	_, err = c.Convert("hsl")
	require.ErrorIs(t, err, ErrLookup)
	c = must_color(t, base, "srgb", 1, 0, 0)
	_, err = c.Convert("hsl")
	require.NoError(t, err)

	empty := NewRegistry()
	assert.Empty(t, empty.Spaces())
	_, err = empty.New("srgb", []float64{1, 0, 0}, 1)
	require.ErrorIs(t, err, ErrLookup)
}

func TestRegistryConflicts(t *testing.T) {
	r := NewDefaultRegistry()
	err := r.Register(false, identity_space("srgb", "xyz-d65"))
	require.ErrorIs(t, err, ErrRegistryConflict)
	require.NoError(t, r.Register(true, identity_space("srgb", "xyz-d65")))

	// a failed registration registers nothing
	err = r.Register(false, identity_space("new-one", "srgb"), identity_space("new-one", "srgb"))
	require.ErrorIs(t, err, ErrRegistryConflict)
	_, err = r.Space("new-one")
	require.ErrorIs(t, err, ErrLookup)

	require.ErrorIs(t, r.Register(true, NewMINDE("clip", "oklch", 0.02, "ok")), ErrRegistryConflict)
	require.ErrorIs(t, r.Deregister(false, "fit:clip"), ErrRegistryConflict)
	require.ErrorIs(t, r.Register(false, identity_space("bad.name", "srgb")), ErrValue)
	require.ErrorIs(t, r.Register(false, 42), ErrValue)
}

func TestDeregister(t *testing.T) {
	r := NewDefaultRegistry()
	require.ErrorIs(t, r.Deregister(false, "space:nonexistent"), ErrLookup)
	require.NoError(t, r.Deregister(true, "space:nonexistent"))
	require.ErrorIs(t, r.Deregister(false, "nonsense"), ErrValue)
	require.ErrorIs(t, r.Deregister(false, "widgets:foo"), ErrValue)

	require.NoError(t, r.Deregister(false, "delta-e:2000", "fit:raytrace"))
	assert.NotContains(t, r.Names(CategoryDeltaE), "2000")
	assert.NotContains(t, r.Names(CategoryFit), "raytrace")
	assert.Contains(t, r.Names(CategoryFit), "clip")

	require.NoError(t, r.Deregister(false, "interpolate:*"))
	assert.Empty(t, r.Names(CategoryInterpolate))
	assert.NotEmpty(t, r.Names(CategoryCAT))

	require.NoError(t, r.Deregister(false, "*"))
	assert.Empty(t, r.Spaces())
	assert.Equal(t, []string{"clip"}, r.Names(CategoryFit))
}

type double_chroma struct{}

func (double_chroma) Name() string { return "double" }

func (double_chroma) Filter(c *Color, amount float64) error {
	return c.Set("oklch.c", (1+amount)*must_get(c, "oklch.c"))
}

func must_get(c *Color, name string) float64 {
	v, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

func TestFilterCategory(t *testing.T) {
	r := NewDefaultRegistry()
	_, err := r.Filter("double")
	require.ErrorIs(t, err, ErrLookup)
	require.NoError(t, r.Register(false, double_chroma{}))
	f, err := r.Filter("double")
	require.NoError(t, err)
	c := must_color(t, r, "oklch", 0.5, 0.05, 30)
	require.NoError(t, f.Filter(c, 1))
	assert.InDelta(t, 0.1, c.Coords()[1], 1e-9)
	require.NoError(t, r.Deregister(false, "filter:double"))
	assert.Empty(t, r.Names(CategoryFilter))
}

func TestCustomCAT(t *testing.T) {
	r := NewDefaultRegistry()
	m, err := cat.NewMatrix("my-bradford", cat.Bradford.ConeResponse())
	require.NoError(t, err)
	require.NoError(t, r.Register(false, m))
	xyz := algebra.XYToXYZ(cat.D65).Slice()
	a, err := r.ChromaticAdaptation(cat.D65, cat.D50, xyz, "my-bradford")
	require.NoError(t, err)
	b, err := r.ChromaticAdaptation(cat.D65, cat.D50, xyz, "bradford")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(b, a, approx))
	// the white maps to the white
	require.Empty(t, cmp.Diff(algebra.XYToXYZ(cat.D50).Slice(), a, approx))
	_, err = r.ChromaticAdaptation(cat.D65, cat.D50, xyz, "nonexistent")
	require.ErrorIs(t, err, ErrLookup)
	same, err := ChromaticAdaptation(cat.D65, cat.D65, xyz, "")
	require.NoError(t, err)
	require.Equal(t, xyz, same)
	_, err = r.ChromaticAdaptation(cat.D65, cat.D50, xyz[:2], "")
	require.ErrorIs(t, err, ErrValue)
	assert.False(t, math.IsNaN(a[0]))
}
