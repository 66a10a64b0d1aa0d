// Package distance implements color difference formulas on raw
// coordinates. Converting colors into the space a formula expects is the
// job of the caller.
package distance

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/prism/algebra"
)

var _ = fmt.Print

// Euclidean is the straight line distance between two coordinate sets.
// Undefined channels are treated as zero.
func Euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range min(len(a), len(b)) {
		d := algebra.NoNaN(a[i], 0) - algebra.NoNaN(b[i], 0)
		sum += d * d
	}
	return math.Sqrt(sum)
}

// CIE76 is Euclidean distance in CIE Lab.
func CIE76(lab1, lab2 []float64) float64 { return Euclidean(lab1, lab2) }

func chroma(a, b float64) float64 { return math.Sqrt(a*a + b*b) }

// delta_h2 is the square of the metric hue difference.
func delta_h2(da, db, dc float64) float64 {
	return max(0, da*da+db*db-dc*dc)
}

// CIE94 is the 1994 formula with the graphic arts weights of K1=0.045 and
// K2=0.015, kL, kC and kH at 1.
func CIE94(lab1, lab2 []float64) float64 {
	return CIE94Weighted(lab1, lab2, 1, 0.045, 0.015)
}

func CIE94Weighted(lab1, lab2 []float64, kl, k1, k2 float64) float64 {
	l1, a1, b1 := lab1[0], lab1[1], lab1[2]
	l2, a2, b2 := lab2[0], lab2[1], lab2[2]
	c1, c2 := chroma(a1, b1), chroma(a2, b2)
	dl, dc := l1-l2, c1-c2
	dh2 := delta_h2(a1-a2, b1-b2, dc)
	sc := 1 + k1*c1
	sh := 1 + k2*c1
	return math.Sqrt(math.Pow(dl/kl, 2) + math.Pow(dc/sc, 2) + dh2/(sh*sh))
}

// CMC is the l:c formula of the Colour Measurement Committee. The
// customary weights are 2:1 for acceptability and 1:1 for perceptibility.
func CMC(lab1, lab2 []float64, l, c float64) float64 {
	l1, a1, b1 := lab1[0], lab1[1], lab1[2]
	l2, a2, b2 := lab2[0], lab2[1], lab2[2]
	c1, c2 := chroma(a1, b1), chroma(a2, b2)
	dl, dc := l1-l2, c1-c2
	dh2 := delta_h2(a1-a2, b1-b2, dc)
	sl := 0.511
	if l1 >= 16 {
		sl = 0.040975 * l1 / (1 + 0.01765*l1)
	}
	sc := 0.0638*c1/(1+0.0131*c1) + 0.638
	h1 := algebra.ConstrainHue(math.Atan2(b1, a1) * 180 / math.Pi)
	var t float64
	if h1 >= 164 && h1 <= 345 {
		t = 0.56 + math.Abs(0.2*math.Cos((h1+168)*math.Pi/180))
	} else {
		t = 0.36 + math.Abs(0.4*math.Cos((h1+35)*math.Pi/180))
	}
	c4 := math.Pow(c1, 4)
	f := math.Sqrt(c4 / (c4 + 1900))
	sh := sc * (f*t + 1 - f)
	return math.Sqrt(math.Pow(dl/(l*sl), 2) + math.Pow(dc/(c*sc), 2) + dh2/(sh*sh))
}

const deg = math.Pi / 180

// CIEDE2000 with the parametric factors kL, kC and kH, customarily all 1.
func CIEDE2000(lab1, lab2 []float64, kl, kc, kh float64) float64 {
	l1, a1, b1 := lab1[0], lab1[1], lab1[2]
	l2, a2, b2 := lab2[0], lab2[1], lab2[2]
	cm := (chroma(a1, b1) + chroma(a2, b2)) / 2
	c7 := math.Pow(cm, 7)
	g := 0.5 * (1 - math.Sqrt(c7/(c7+math.Pow(25, 7))))
	ap1, ap2 := (1+g)*a1, (1+g)*a2
	cp1, cp2 := chroma(ap1, b1), chroma(ap2, b2)
	hue := func(b, a float64) float64 {
		if a == 0 && b == 0 {
			return 0
		}
		return algebra.ConstrainHue(math.Atan2(b, a) / deg)
	}
	hp1, hp2 := hue(b1, ap1), hue(b2, ap2)

	dl := l2 - l1
	dc := cp2 - cp1
	var dh float64
	if cp1*cp2 != 0 {
		dh = hp2 - hp1
		switch {
		case dh > 180:
			dh -= 360
		case dh < -180:
			dh += 360
		}
	}
	dH := 2 * math.Sqrt(cp1*cp2) * math.Sin(dh/2*deg)

	lm := (l1 + l2) / 2
	cpm := (cp1 + cp2) / 2
	hpm := hp1 + hp2
	if cp1*cp2 != 0 {
		switch {
		case math.Abs(hp1-hp2) <= 180:
			hpm /= 2
		case hpm < 360:
			hpm = (hpm + 360) / 2
		default:
			hpm = (hpm - 360) / 2
		}
	}
	t := 1 - 0.17*math.Cos((hpm-30)*deg) + 0.24*math.Cos(2*hpm*deg) +
		0.32*math.Cos((3*hpm+6)*deg) - 0.20*math.Cos((4*hpm-63)*deg)
	dtheta := 30 * math.Exp(-math.Pow((hpm-275)/25, 2))
	cpm7 := math.Pow(cpm, 7)
	rc := 2 * math.Sqrt(cpm7/(cpm7+math.Pow(25, 7)))
	lm50 := (lm - 50) * (lm - 50)
	sl := 1 + 0.015*lm50/math.Sqrt(20+lm50)
	sc := 1 + 0.045*cpm
	sh := 1 + 0.015*cpm*t
	rt := -math.Sin(2*dtheta*deg) * rc

	fl, fc, fh := dl/(kl*sl), dc/(kc*sc), dH/(kh*sh)
	return math.Sqrt(fl*fl + fc*fc + fh*fh + rt*fc*fh)
}

// HyAB combines the absolute lightness difference with the Euclidean
// distance of the two opponent channels. idx holds the lightness index
// followed by the opponent channel indices.
func HyAB(c1, c2 []float64, idx [3]int) float64 {
	v := func(c []float64, i int) float64 { return algebra.NoNaN(c[idx[i]], 0) }
	return math.Abs(v(c1, 0)-v(c2, 0)) + math.Hypot(v(c1, 1)-v(c2, 1), v(c1, 2)-v(c2, 2))
}

// UCS coefficients (KL, c1, c2) of the CAM16 uniform color spaces.
type UCS struct{ KL, C1, C2 float64 }

var (
	CAM16UCS = UCS{1, 0.007, 0.0228}
	CAM16LCD = UCS{0.77, 0.007, 0.0053}
	CAM16SCD = UCS{1.24, 0.007, 0.0363}
)

// Jab maps CAM16 lightness, colorfulness and hue to the uniform space.
func (u UCS) Jab(j, m, h float64) (jp, a, b float64) {
	m = math.Log(1+u.C2*algebra.NoNaN(m, 0)) / u.C2
	a, b = algebra.PolarToRect(m, algebra.NoNaN(h, 0))
	return (1 + 100*u.C1) * j / (1 + u.C1*j), a, b
}

// CAM16 measures the difference of two colors given as CAM16 J, M, h.
func CAM16(jmh1, jmh2 []float64, u UCS) float64 {
	j1, a1, b1 := u.Jab(jmh1[0], jmh1[1], jmh1[2])
	j2, a2, b2 := u.Jab(jmh2[0], jmh2[1], jmh2[2])
	dj := (j1 - j2) / u.KL
	return math.Sqrt(dj*dj + (a1-a2)*(a1-a2) + (b1-b2)*(b1-b2))
}

// HCT measures the difference of two colors given as HCT h, c, t. Chroma
// is turned into colorfulness with fl_root, compressed the way CAM16 UCS
// does and tone is used as is.
func HCT(hct1, hct2 []float64, fl_root float64) float64 {
	conv := func(c []float64) (t, a, b float64) {
		m := algebra.NoNaN(c[1], 0) * fl_root
		m = math.Log(1+CAM16UCS.C2*m) / CAM16UCS.C2
		a, b = algebra.PolarToRect(m, algebra.NoNaN(c[0], 0))
		return algebra.NoNaN(c[2], 0), a, b
	}
	t1, a1, b1 := conv(hct1)
	t2, a2, b2 := conv(hct2)
	return math.Sqrt((t1-t2)*(t1-t2) + (a1-a2)*(a1-a2) + (b1-b2)*(b1-b2))
}
