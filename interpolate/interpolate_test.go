package interpolate

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

var approx = cmp.Options{cmpopts.EquateApprox(0, 1e-9), cmpopts.EquateNaNs()}

func TestCalcStops(t *testing.T) {
	nan := math.NaN()
	for _, tc := range []struct {
		name     string
		stops    []float64
		count    int
		expected []float64
	}{
		{"empty", nil, 3, []float64{0, 0.5, 1}},
		{"two", nil, 2, []float64{0, 1}},
		{"explicit", []float64{0, 0.2, 1}, 3, []float64{0, 0.2, 1}},
		{"hole", []float64{0, nan, nan, 0.9}, 4, []float64{0, 0.3, 0.6, 0.9}},
		{"missing first", []float64{nan, 0.5}, 3, []float64{0, 0.5, 1}},
		{"non decreasing", []float64{0.5, 0.2, 1}, 3, []float64{0.5, 0.5, 1}},
		{"trailing", []float64{0.2}, 3, []float64{0.2, 0.6, 1}},
		{"held past end", []float64{0, 1.5}, 3, []float64{0, 1.5, 1.5}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if d := cmp.Diff(tc.expected, CalcStops(tc.stops, tc.count), approx); d != "" {
				t.Fatalf("unexpected stops (-want +got):\n%s", d)
			}
		})
	}
}

func TestHuePolicies(t *testing.T) {
	for _, tc := range []struct {
		policy   HuePolicy
		h1, h2   float64
		expected float64
	}{
		{Shorter, 350, 10, 370},
		{Shorter, 10, 350, -10},
		{Shorter, 0, 180, 180},
		{Longer, 350, 10, 10},
		{Longer, 10, 30, -330},
		{Longer, 30, 30, 390},
		{Increasing, 350, 10, 370},
		{Increasing, 10, 350, 350},
		{Decreasing, 10, 350, -10},
		{Decreasing, 350, 10, 10},
		{Specified, 350, 10, 10},
	} {
		t.Run(fmt.Sprintf("%s-%v-%v", tc.policy, tc.h1, tc.h2), func(t *testing.T) {
			coords := [][]float64{{tc.h1}, {tc.h2}}
			require.NoError(t, UnwrapHues(coords, 0, tc.policy))
			assert.InDelta(t, tc.h1, coords[0][0], 1e-9)
			assert.InDelta(t, tc.expected, coords[1][0], 1e-9)
		})
	}
	require.Error(t, UnwrapHues([][]float64{{1}, {2}}, 0, "sideways"))
	require.NoError(t, HuePolicy("").Validate())
}

func TestUnwrapCumulative(t *testing.T) {
	coords := [][]float64{{0}, {120}, {240}, {math.NaN()}, {0}}
	require.NoError(t, UnwrapHues(coords, 0, Increasing))
	got := make([]float64, len(coords))
	for i, c := range coords {
		got[i] = c[0]
	}
	if d := cmp.Diff([]float64{0, 120, 240, math.NaN(), 360}, got, approx); d != "" {
		t.Fatalf("unexpected hues (-want +got):\n%s", d)
	}
}

func TestFillNaNRuns(t *testing.T) {
	nan := math.NaN()
	for _, tc := range []struct {
		in, expected []float64
	}{
		{[]float64{nan, 1, nan, nan, 4, nan}, []float64{1, 1, 2, 3, 4, 4}},
		{[]float64{nan, nan}, []float64{nan, nan}},
		{[]float64{5}, []float64{5}},
	} {
		FillNaNRuns(tc.in)
		if d := cmp.Diff(tc.expected, tc.in, approx); d != "" {
			t.Fatalf("unexpected fill (-want +got):\n%s", d)
		}
	}
}

func TestNaturalize(t *testing.T) {
	// a B-spline through the naturalized control points passes through the
	// original interior values
	for _, vals := range [][]float64{
		{0, 1},
		{0, 3, 1},
		{0, 3, 1, 4, 2},
	} {
		controls := append([]float64(nil), vals...)
		Naturalize(controls)
		assert.Equal(t, vals[0], controls[0])
		assert.Equal(t, vals[len(vals)-1], controls[len(vals)-1])
		last := len(controls) - 1
		padded := append([]float64{2*controls[0] - controls[1]}, controls...)
		padded = append(padded, 2*controls[last]-controls[last-1])
		for i := 1; i < len(vals)-1; i++ {
			got := BSpline(padded[i], padded[i+1], padded[i+2], padded[i+3], 0)
			assert.InDelta(t, vals[i], got, 1e-9, "value %d of %v", i, vals)
		}
	}
}

func TestMonotoneNoOvershoot(t *testing.T) {
	for i := range 11 {
		v := Monotone(0, 0, 1, 1, float64(i)/10)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Equal(t, 2.0, Monotone(1, 2, 2, 3, 0.5))
}

func TestEndpointsExact(t *testing.T) {
	coords := [][]float64{{0.1, 0.8, 20, 1}, {0.5, 0.2, 90, 0.5}, {0.9, 0.4, 200, 1}}
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			p, err := New(coords, Options{Method: m})
			require.NoError(t, err)
			if d := cmp.Diff(coords[0], p.At(0), approx); d != "" {
				t.Fatalf("start (-want +got):\n%s", d)
			}
			if d := cmp.Diff(coords[2], p.At(1), approx); d != "" {
				t.Fatalf("end (-want +got):\n%s", d)
			}
			if m != MethodBSpline {
				if d := cmp.Diff(coords[1], p.At(0.5), approx); d != "" {
					t.Fatalf("middle (-want +got):\n%s", d)
				}
			}
		})
	}
}

func TestLinearNaN(t *testing.T) {
	nan := math.NaN()
	p, err := New([][]float64{{nan, 1, nan}, {0.5, nan, nan}}, Options{})
	require.NoError(t, err)
	if d := cmp.Diff([]float64{0.5, 1, nan}, p.At(0.3), approx); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
}

func TestContinuousNaN(t *testing.T) {
	nan := math.NaN()
	p, err := New([][]float64{{0}, {nan}, {1}}, Options{Method: MethodContinuous})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, p.At(0.25)[0], 1e-9)
	assert.InDelta(t, 0.5, p.At(0.5)[0], 1e-9)
}

func TestExtrapolate(t *testing.T) {
	coords := [][]float64{{0}, {1}}
	p, err := New(coords, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.At(1.5)[0])
	p, err = New(coords, Options{Extrapolate: true})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, p.At(1.5)[0], 1e-9)
	assert.InDelta(t, -0.5, p.At(-0.5)[0], 1e-9)
	p, err = New([][]float64{{0}, {1}, {4}}, Options{Method: MethodNatural, Extrapolate: true})
	require.NoError(t, err)
	assert.InDelta(t, 7, p.At(1.5)[0], 1e-9)
}

func TestNewErrors(t *testing.T) {
	_, err := New([][]float64{{1}}, Options{})
	require.Error(t, err)
	_, err = New([][]float64{{1}, {2}}, Options{Method: "cosine"})
	require.Error(t, err)
	_, err = New([][]float64{{1}, {2, 3}}, Options{})
	require.Error(t, err)
}

func TestEasings(t *testing.T) {
	for name, e := range map[string]Easing{
		"linear": Linear, "ease": Ease, "ease-in": EaseIn, "ease-out": EaseOut, "ease-in-out": EaseInOut,
	} {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, e(0), 1e-6)
			assert.InDelta(t, 1, e(1), 1e-6)
			prev := -1.0
			for i := range 21 {
				v := e(float64(i) / 20)
				assert.GreaterOrEqual(t, v, prev-1e-9)
				prev = v
			}
		})
	}
	assert.InDelta(t, 0.5, EaseInOut(0.5), 1e-6)
	assert.InDelta(t, 0.5, Hint(0.25)(0.25), 1e-9)
	assert.Equal(t, 0.0, Midpoint(0.5, 1))
	p := Progress{"h": EaseIn, AllChannels: Linear}
	assert.NotNil(t, p.For("h"))
	assert.InDelta(t, 0.3, p.For("l")(0.3), 1e-9)
	assert.Nil(t, Progress(nil).For("h"))
}

func TestSegmentEasing(t *testing.T) {
	p, err := New([][]float64{{0}, {1}, {2}}, Options{Easings: []Easing{nil, Hint(0.25)}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p.At(0.25)[0], 1e-9)
	assert.InDelta(t, 1.5, p.At(0.625)[0], 1e-9)
}

func TestPremultiply(t *testing.T) {
	angle := []bool{false, false, true}
	c := []float64{0.5, 0.4, 120, 0.5}
	Premultiply(c, angle)
	if d := cmp.Diff([]float64{0.25, 0.2, 120, 0.5}, c, approx); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
	Postdivide(c, angle)
	if d := cmp.Diff([]float64{0.5, 0.4, 120, 0.5}, c, approx); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
	z := []float64{0.5, 0.4, 120, 0}
	Postdivide(z, angle)
	assert.Equal(t, 0.5, z[0])
}
