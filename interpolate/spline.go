package interpolate

import (
	"math"

	"github.com/kovidgoyal/prism/algebra"
)

// Kernel evaluates a cubic segment between p1 and p2 using the
// neighboring points p0 and p3.
type Kernel func(p0, p1, p2, p3, t float64) float64

// BSpline is the uniform cubic B-spline basis. It passes through the end
// points when they are extended with phantom points and approximates the
// interior points.
func BSpline(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return (math.Pow(1-t, 3)*p0 +
		(3*t3-6*t2+4)*p1 +
		(-3*t3+3*t2+3*t+1)*p2 +
		t3*p3) / 6
}

// CatRom is the Catmull-Rom spline. It passes through every point.
func CatRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return ((-t3+2*t2-t)*p0 +
		(3*t3-5*t2+2)*p1 +
		(-3*t3+4*t2+t)*p2 +
		(t3-t2)*p3) / 2
}

// Monotone is a Hermite spline with tangents limited so that it never
// overshoots between p1 and p2.
func Monotone(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	s0, s1, s2 := p1-p0, p2-p1, p3-p2
	m1, m2 := (s0+s1)*0.5, (s1+s2)*0.5
	if algebra.IsClose(p1, p2) {
		m1, m2 = 0, 0
	} else {
		if algebra.IsClose(p0, p1) || math.Signbit(s0) != math.Signbit(s1) {
			m1 = 0
		} else {
			m1 *= min(3*s0/m1, 3*s1/m1, 1)
		}
		if algebra.IsClose(p2, p3) || math.Signbit(s1) != math.Signbit(s2) {
			m2 = 0
		} else {
			m2 *= min(3*s1/m2, 3*s2/m2, 1)
		}
	}
	result := (m1+m2-2*s1)*t3 + (3*s1-2*m1-m2)*t2 + m1*t + p1
	return algebra.Clamp(result, min(p1, p2), max(p1, p2))
}

// Naturalize replaces the interior values with B-spline control points
// such that a B-spline through them passes through the original values.
// The end values stay as they are. This solves the tridiagonal 1-4-1
// system of a natural spline.
func Naturalize(values []float64) {
	n := len(values) - 2
	switch {
	case n < 1:
		return
	case n == 1:
		values[1] = (6*values[1] - values[0] - values[2]) / 4
		return
	}
	rhs := make([]float64, n)
	for r := range n {
		rhs[r] = 6 * values[r+1]
	}
	rhs[0] -= values[0]
	rhs[n-1] -= values[n+1]
	// forward sweep of the Thomas algorithm
	cp := make([]float64, n)
	cp[0] = 1.0 / 4
	rhs[0] /= 4
	for i := 1; i < n; i++ {
		m := 4 - cp[i-1]
		cp[i] = 1 / m
		rhs[i] = (rhs[i] - rhs[i-1]) / m
	}
	for i := n - 2; i >= 0; i-- {
		rhs[i] -= cp[i] * rhs[i+1]
	}
	copy(values[1:n+1], rhs)
}

// FillNaNRuns replaces runs of NaN with values linearly interpolated
// between the nearest defined values on either side. Runs at the ends hold
// the nearest defined value. A slice with no defined value is left as is.
func FillNaNRuns(values []float64) {
	prev := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		switch {
		case prev < 0:
			for j := range i {
				values[j] = v
			}
		case i-prev > 1:
			a := values[prev]
			for j := prev + 1; j < i; j++ {
				values[j] = algebra.Lerp(a, v, float64(j-prev)/float64(i-prev))
			}
		}
		prev = i
	}
	if prev > -1 {
		for j := prev + 1; j < len(values); j++ {
			values[j] = values[prev]
		}
	}
}
