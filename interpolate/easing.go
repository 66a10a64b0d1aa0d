package interpolate

import (
	"math"
)

// Easing remaps interpolation progress.
type Easing func(t float64) float64

// Midpoint eases so that progress 0.5 happens at t = h. It is 0 for h
// outside (0, 1).
func Midpoint(t, h float64) float64 {
	if h <= 0 || h >= 1 {
		return 0
	}
	return math.Pow(t, math.Log(0.5)/math.Log(h))
}

// Hint returns an easing that moves the midpoint of a segment to mid.
func Hint(mid float64) Easing {
	return func(t float64) float64 { return Midpoint(t, mid) }
}

const bezier_epsilon = 1e-6

// CubicBezier returns the CSS easing function defined by the control
// points (x1, y1) and (x2, y2). x1 and x2 are clamped to [0, 1].
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1, x2 = max(0, min(x1, 1)), max(0, min(x2, 1))
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by
	sample_x := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sample_y := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	sample_dx := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }
	solve_x := func(x float64) float64 {
		t := x
		for range 8 {
			e := sample_x(t) - x
			if math.Abs(e) < bezier_epsilon {
				return t
			}
			d := sample_dx(t)
			if math.Abs(d) < bezier_epsilon {
				break
			}
			t -= e / d
		}
		lo, hi := 0.0, 1.0
		t = x
		for hi-lo > bezier_epsilon {
			v := sample_x(t)
			if math.Abs(v-x) < bezier_epsilon {
				break
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (hi + lo) / 2
		}
		return t
	}
	return func(t float64) float64 {
		switch {
		case t <= 0:
			if x1 > 0 {
				return t * y1 / x1
			}
			return 0
		case t >= 1:
			if x2 < 1 {
				return 1 + (t-1)*(y2-1)/(x2-1)
			}
			return 1
		}
		return sample_y(solve_x(t))
	}
}

var (
	Linear    Easing = func(t float64) float64 { return t }
	Ease             = CubicBezier(0.25, 0.1, 0.25, 1)
	EaseIn           = CubicBezier(0.42, 0, 1, 1)
	EaseOut          = CubicBezier(0, 0, 0.58, 1)
	EaseInOut        = CubicBezier(0.42, 0, 0.58, 1)
)

// AllChannels is the Progress key that applies to channels with no entry
// of their own.
const AllChannels = "all"

// Progress maps channel names to easings.
type Progress map[string]Easing

func (p Progress) For(channel string) Easing {
	if p == nil {
		return nil
	}
	if e := p[channel]; e != nil {
		return e
	}
	return p[AllChannels]
}
