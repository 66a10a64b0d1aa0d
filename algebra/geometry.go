package algebra

import (
	"math"
)

// XYToXYZ converts xy chromaticity into XYZ with Y = 1.
func XYToXYZ(xy [2]float64) Vec3 {
	x, y := xy[0], xy[1]
	if y == 0 {
		return Vec3{}
	}
	return Vec3{x / y, 1, (1 - x - y) / y}
}

func XYZToXY(xyz Vec3) [2]float64 {
	s := xyz[0] + xyz[1] + xyz[2]
	if s == 0 {
		return [2]float64{0, 0}
	}
	return [2]float64{xyz[0] / s, xyz[1] / s}
}

// XYZToUV returns the CIE 1976 u'v' coordinates.
func XYZToUV(xyz Vec3) (u, v float64) {
	d := xyz[0] + 15*xyz[1] + 3*xyz[2]
	if d == 0 {
		return 0, 0
	}
	return 4 * xyz[0] / d, 9 * xyz[1] / d
}

// RGBToXYZMatrix builds the linear RGB to XYZ matrix for the given red,
// green and blue primaries and white point chromaticities.
func RGBToXYZMatrix(r, g, b, white [2]float64) Mat3 {
	rx, gx, bx := XYToXYZ(r), XYToXYZ(g), XYToXYZ(b)
	m := Mat3{
		{rx[0], gx[0], bx[0]},
		{rx[1], gx[1], bx[1]},
		{rx[2], gx[2], bx[2]},
	}
	s := MustInvert(m).Apply(XYToXYZ(white))
	return m.Mul(Diag(s))
}

// RaytraceBox intersects the ray from start towards end with the axis
// aligned box [bmin, bmax] using the slab method. The first intersection in
// the direction of travel is returned, ok is false on a miss.
func RaytraceBox(start, end, bmin, bmax Vec3) (hit Vec3, ok bool) {
	tfar := math.Inf(1)
	tnear := math.Inf(-1)
	var dir Vec3
	for i := range 3 {
		a, b := start[i], end[i]
		d := b - a
		dir[i] = d
		bn, bx := bmin[i], bmax[i]
		if d != 0 {
			inv := 1 / d
			t1 := (bn - a) * inv
			t2 := (bx - a) * inv
			tnear = max(min(t1, t2), tnear)
			tfar = min(max(t1, t2), tfar)
		} else if a < bn || a > bx {
			return
		}
	}
	if tnear > tfar || tfar < 0 {
		return
	}
	if tnear < 0 {
		tnear = tfar
	}
	if math.IsInf(tnear, 0) {
		return
	}
	return start.Add(dir.Scale(tnear)), true
}

// ProjectOnto projects the vector o→a onto o→b, clamping the result to the
// segment between o and b.
func ProjectOnto(a, b, o Vec3) Vec3 {
	oa, ob := a.Sub(o), b.Sub(o)
	d := ob.Dot(ob)
	if d == 0 {
		return o
	}
	r := Clamp(oa.Dot(ob)/d, 0, 1)
	return o.Add(ob.Scale(r))
}
