// Package algebra holds the small numeric helpers shared by the color
// spaces, the gamut mappers and the interpolators: fixed 3x3 matrices,
// NaN aware scalar helpers, polar/rectangular conversion and ray casting.
package algebra

import (
	"fmt"
	"math"
)

var _ = fmt.Print

type Vec3 [3]float64
type Mat3 [3][3]float64

var Identity = Mat3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

var NaN = math.NaN()

func IsNaN(x float64) bool { return x != x }

// NoNaN returns def if x is NaN.
func NoNaN(x, def float64) float64 {
	if x != x {
		return def
	}
	return x
}

// NoNaNs replaces every NaN in v with zero, in place, and returns v.
func NoNaNs(v []float64) []float64 {
	for i, x := range v {
		if x != x {
			v[i] = 0
		}
	}
	return v
}

func Lerp(p0, p1, t float64) float64 {
	return p0 + (p1-p0)*t
}

// ILerp is the inverse of Lerp, returning t.
func ILerp(p0, p1, v float64) float64 {
	d := p1 - p0
	if d == 0 {
		return 0
	}
	return (v - p0) / d
}

func Clamp(x, lo, hi float64) float64 {
	return max(lo, min(x, hi))
}

func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x
}

// NthRoot returns the p-th root of n, preserving the sign of n.
func NthRoot(n, p float64) float64 {
	if p == 0 {
		return math.Inf(1)
	}
	if n == 0 {
		return 0
	}
	return math.Copysign(math.Pow(math.Abs(n), 1/p), n)
}

// Spow raises the magnitude of base to exp, preserving the sign of base.
func Spow(base, exp float64) float64 {
	return math.Copysign(math.Pow(math.Abs(base), exp), base)
}

// Order returns the decimal order of magnitude of x, 0 for x == 0.
func Order(x float64) int {
	if x == 0 {
		return 0
	}
	return int(math.Floor(math.Log10(math.Abs(x))))
}

// IsClose compares with a relative tolerance of 1e-9, the way most
// numeric libraries define closeness.
func IsClose(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*max(math.Abs(a), math.Abs(b))
}

func RectToPolar(a, b float64) (c, h float64) {
	c = math.Sqrt(a*a + b*b)
	h = ConstrainHue(math.Atan2(b, a) * 180 / math.Pi)
	return
}

func PolarToRect(c, h float64) (a, b float64) {
	r := h * math.Pi / 180
	return c * math.Cos(r), c * math.Sin(r)
}

// ConstrainHue wraps h into [0, 360). NaN is returned unchanged.
func ConstrainHue(h float64) float64 {
	if h != h {
		return h
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h == 360 {
		h = 0
	}
	return h
}

func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Div(o Vec3) Vec3 {
	return Vec3{v[0] / o[0], v[1] / o[1], v[2] / o[2]}
}

func (v Vec3) Slice() []float64 { return []float64{v[0], v[1], v[2]} }

// FromSlice copies the first three values of s.
func FromSlice(s []float64) Vec3 { return Vec3{s[0], s[1], s[2]} }

func (m Mat3) String() string {
	return fmt.Sprintf("Matrix3{ %.6v, %.6v, %.6v }", m[0], m[1], m[2])
}

// Mul returns m·b.
func (m Mat3) Mul(b Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			sum := 0.0
			for k := range 3 {
				sum += m[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Apply returns m·v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// ApplySlice transforms the first three values of s in place.
func (m Mat3) ApplySlice(s []float64) []float64 {
	r := m.Apply(Vec3{s[0], s[1], s[2]})
	s[0], s[1], s[2] = r[0], r[1], r[2]
	return s
}

func (m Mat3) Transposed() Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			out[i][j] = m[j][i]
		}
	}
	return out
}

func (m Mat3) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

func (m Mat3) Inverted() (ans Mat3, err error) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) {
		return ans, fmt.Errorf("matrix is singular and cannot be inverted, det=%v", det)
	}
	invDet := 1 / det
	ans[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	ans[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	ans[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet
	ans[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	ans[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	ans[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * invDet
	ans[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	ans[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	ans[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet
	return ans, nil
}

// MustInvert is for matrices known at compile time to be invertible.
func MustInvert(m Mat3) Mat3 {
	ans, err := m.Inverted()
	if err != nil {
		panic(err)
	}
	return ans
}

func Diag(v Vec3) Mat3 {
	return Mat3{
		{v[0], 0, 0},
		{0, v[1], 0},
		{0, 0, v[2]},
	}
}

func (m Mat3) Equal(o Mat3, threshold float64) bool {
	for i := range 3 {
		for j := range 3 {
			if math.Abs(m[i][j]-o[i][j]) > threshold {
				return false
			}
		}
	}
	return true
}
