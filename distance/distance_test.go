package distance

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestCIEDE2000(t *testing.T) {
	// Reference pairs from Sharma, Wu and Dalal
	for i, tc := range []struct {
		lab1, lab2 []float64
		expected   float64
	}{
		{[]float64{50, 2.6772, -79.7751}, []float64{50, 0, -82.7485}, 2.0425},
		{[]float64{50, 3.1571, -77.2803}, []float64{50, 0, -82.7485}, 2.8615},
		{[]float64{50, 2.8361, -74.0200}, []float64{50, 0, -82.7485}, 3.4412},
		{[]float64{50, 0, 0}, []float64{50, -1, 2}, 2.3669},
		{[]float64{50, 2.5, 0}, []float64{73, 25, -18}, 27.1492},
		{[]float64{60.2574, -34.0099, 36.2677}, []float64{60.4626, -34.1751, 39.4387}, 1.2644},
	} {
		t.Run(fmt.Sprintf("pair-%d", i), func(t *testing.T) {
			assert.InDelta(t, tc.expected, CIEDE2000(tc.lab1, tc.lab2, 1, 1, 1), 1e-4)
			assert.InDelta(t, tc.expected, CIEDE2000(tc.lab2, tc.lab1, 1, 1, 1), 1e-4)
		})
	}
}

func TestIdentity(t *testing.T) {
	lab := []float64{40, 30, -20}
	for name, f := range map[string]func(a, b []float64) float64{
		"76":   CIE76,
		"94":   CIE94,
		"cmc":  func(a, b []float64) float64 { return CMC(a, b, 2, 1) },
		"2000": func(a, b []float64) float64 { return CIEDE2000(a, b, 1, 1, 1) },
		"hyab": func(a, b []float64) float64 { return HyAB(a, b, [3]int{0, 1, 2}) },
		"cam16": func(a, b []float64) float64 {
			return CAM16(a, b, CAM16UCS)
		},
		"hct": func(a, b []float64) float64 { return HCT(a, b, 1.2) },
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, 0.0, f(lab, lab))
		})
	}
}

func TestLightnessOnly(t *testing.T) {
	a, b := []float64{50, 0, 0}, []float64{60, 0, 0}
	assert.InDelta(t, 10, CIE76(a, b), 1e-12)
	assert.InDelta(t, 10, CIE94(a, b), 1e-12)
	assert.InDelta(t, 4.594264795607077, CMC(a, b, 2, 1), 1e-9)
	assert.InDelta(t, 10, HyAB(a, b, [3]int{0, 1, 2}), 1e-12)
}

func TestHyAB(t *testing.T) {
	assert.InDelta(t, 5+5, HyAB([]float64{50, 0, 0}, []float64{45, 3, 4}, [3]int{0, 1, 2}), 1e-12)
	// channel order is taken from idx
	assert.InDelta(t, 5+5, HyAB([]float64{0, 0, 50}, []float64{3, 4, 45}, [3]int{2, 0, 1}), 1e-12)
}

func TestEuclideanNaN(t *testing.T) {
	assert.InDelta(t, 5, Euclidean([]float64{math.NaN(), 3, 4}, []float64{0, 0, 0}), 1e-12)
}

func TestCAM16(t *testing.T) {
	// hue is irrelevant without colorfulness
	assert.InDelta(t, 0, CAM16([]float64{50, 0, 10}, []float64{50, 0, 200}, CAM16UCS), 1e-12)
	jp, _, _ := CAM16UCS.Jab(100, 0, 0)
	assert.InDelta(t, 100, jp, 1e-12)
	d1 := CAM16([]float64{50, 10, 10}, []float64{50, 20, 10}, CAM16UCS)
	d2 := CAM16([]float64{50, 60, 10}, []float64{50, 70, 10}, CAM16UCS)
	// colorfulness differences are compressed at high colorfulness
	assert.Greater(t, d1, d2)
	assert.InDelta(t, 0, HCT([]float64{10, 0, 50}, []float64{300, 0, 50}, 1.2), 1e-12)
	assert.InDelta(t, 5, HCT([]float64{10, 0, 50}, []float64{300, 0, 55}, 1.2), 1e-12)
}
