package spaces

import (
	"math"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/cat"
	"github.com/kovidgoyal/prism/types"
)

// CAM16AchromaticHue is the hue CAM16 assigns to neutral colors under the
// default viewing conditions. Undefined hues resolve to it.
const CAM16AchromaticHue = 209.5333344635329

// Achromatic colors in CAM16 based spaces are within this colorfulness
// distance of the neutral gray of the same lightness.
const CAM16AchromaticDistance = 0.002

type Surround struct{ F, C, Nc float64 }

var (
	SurroundAverage = Surround{1, 0.69, 1}
	SurroundDim     = Surround{0.9, 0.59, 0.9}
	SurroundDark    = Surround{0.8, 0.525, 0.8}
)

var (
	m16     = cat.CAT16.ConeResponse()
	m16_inv = algebra.MustInvert(m16)
	cam_m1  = algebra.Mat3{
		{460, 451, 288},
		{460, -891, -261},
		{460, -220, -6300},
	}
)

// Environment holds the viewing conditions of a CAM16 model along with
// the values derived from them.
type Environment struct {
	RefWhite                algebra.Vec3
	La, Yb, Yw              float64
	Surround                Surround
	Discounting             bool
	fl, fl_root, n, z       float64
	nbb, ncb, d, a_w        float64
	d_rgb, d_rgb_inv, rgb_w algebra.Vec3
}

// NewEnvironment computes viewing conditions for the given white,
// adapting luminance in cd/m² and relative background luminance.
func NewEnvironment(white [2]float64, adapting_luminance, background_luminance float64, surround Surround, discounting bool) *Environment {
	e := &Environment{RefWhite: algebra.XYToXYZ(white), La: adapting_luminance, Yb: background_luminance, Surround: surround, Discounting: discounting}
	xyz_w := e.RefWhite.Scale(100)
	e.Yw = xyz_w[1]
	k := 1 / (5*e.La + 1)
	k4 := k * k * k * k
	e.fl = 0.2*k4*(5*e.La) + 0.1*(1-k4)*(1-k4)*algebra.NthRoot(5*e.La, 3)
	e.fl_root = algebra.NthRoot(e.fl, 4)
	e.n = e.Yb / e.Yw
	e.z = 1.48 + math.Sqrt(e.n)
	e.nbb = 0.725 * math.Pow(1/e.n, 0.2)
	e.ncb = e.nbb
	e.d = 1
	if !discounting {
		e.d = algebra.Clamp(surround.F*(1-1/3.6*math.Exp((-e.La-42)/92)), 0, 1)
	}
	e.rgb_w = m16.Apply(xyz_w)
	for i, c := range e.rgb_w {
		e.d_rgb[i] = algebra.Lerp(1, e.Yw/c, e.d)
		e.d_rgb_inv[i] = 1 / e.d_rgb[i]
	}
	rgb_cw := algebra.Vec3{e.rgb_w[0] * e.d_rgb[0], e.rgb_w[1] * e.d_rgb[1], e.rgb_w[2] * e.d_rgb[2]}
	rgb_aw := cam_adapt(rgb_cw, e.fl)
	e.a_w = e.nbb * (2*rgb_aw[0] + rgb_aw[1] + 0.05*rgb_aw[2])
	return e
}

// FLRoot is the fourth root of the luminance level adaptation factor,
// relating CAM16 chroma and colorfulness.
func (e *Environment) FLRoot() float64 { return e.fl_root }

func cam_adapt(coords algebra.Vec3, fl float64) (ans algebra.Vec3) {
	for i, c := range coords {
		x := math.Pow(fl*math.Abs(c)*0.01, 0.42)
		ans[i] = 400 * math.Copysign(x, c) / (x + 27.13)
	}
	return
}

func cam_unadapt(coords algebra.Vec3, fl float64) (ans algebra.Vec3) {
	for i, c := range coords {
		x := math.Abs(c)
		ans[i] = math.Copysign(100/fl*math.Pow(27.13*x/(400-x), 1/0.42), c)
	}
	return
}

func eccentricity(h float64) float64 {
	return 0.25 * (math.Cos(h+2) + 3.8)
}

// CAM16 holds the correlates computed by the forward model.
type CAM16 struct {
	J, C, H, S, Q, M float64
}

// XYZToCAM16 runs the forward CAM16 model on XYZ relative to Y = 1.
func (e *Environment) XYZToCAM16(xyz []float64) CAM16 {
	rgb := m16.Apply(algebra.Vec3{xyz[0] * 100, xyz[1] * 100, xyz[2] * 100})
	for i := range rgb {
		rgb[i] *= e.d_rgb[i]
	}
	rgb_a := cam_adapt(rgb, e.fl)
	p2 := 2*rgb_a[0] + rgb_a[1] + 0.05*rgb_a[2]
	a := rgb_a[0] + (-12*rgb_a[1]+rgb_a[2])/11
	b := (rgb_a[0] + rgb_a[1] - 2*rgb_a[2]) / 9
	u := rgb_a[0] + rgb_a[1] + 1.05*rgb_a[2]
	h_rad := math.Mod(math.Atan2(b, a), 2*math.Pi)
	if h_rad < 0 {
		h_rad += 2 * math.Pi
	}
	et := eccentricity(h_rad)
	p1 := 5e4 / 13 * e.Surround.Nc * e.ncb * et
	t := 0.0
	if u+0.305 != 0 {
		t = p1 * math.Sqrt(a*a+b*b) / (u + 0.305)
	}
	alpha := algebra.Spow(t, 0.9) * math.Pow(1.64-math.Pow(0.29, e.n), 0.73)
	A := e.nbb * p2
	J := 100 * algebra.Spow(A/e.a_w, e.Surround.C*e.z)
	j_root := algebra.NthRoot(J/100, 2)
	Q := 4 / e.Surround.C * j_root * (e.a_w + 4) * e.fl_root
	C := alpha * j_root
	M := C * e.fl_root
	s := 50 * algebra.NthRoot(e.Surround.C*alpha/(e.a_w+4), 2)
	h := algebra.ConstrainHue(h_rad * 180 / math.Pi)
	return CAM16{J: J, C: C, H: h, S: s, Q: Q, M: M}
}

// CAM16ToXYZ inverts the model from lightness J, hue h and either chroma
// or, when colorfulness is true, colorfulness M.
func (e *Environment) CAM16ToXYZ(J, chroma, h float64, colorfulness bool) []float64 {
	if J == 0 {
		return []float64{0, 0, 0}
	}
	h_rad := algebra.ConstrainHue(h) * math.Pi / 180
	j_root := algebra.NthRoot(J, 2) * 0.1
	var alpha float64
	if colorfulness {
		alpha = (chroma / e.fl_root) / j_root
	} else {
		alpha = chroma / j_root
	}
	t := algebra.Spow(alpha*math.Pow(1.64-math.Pow(0.29, e.n), -0.73), 10.0/9)
	et := eccentricity(h_rad)
	A := e.a_w * algebra.Spow(j_root, 2/e.Surround.C/e.z)
	sin_h, cos_h := math.Sincos(h_rad)
	p1 := 5e4 / 13 * e.Surround.Nc * e.ncb * et
	p2 := A / e.nbb
	r := 0.0
	if d := 23*p1 + t*(11*cos_h+108*sin_h); d != 0 {
		r = 23 * (p2 + 0.305) * t / d
	}
	rgb_a := cam_m1.Apply(algebra.Vec3{p2, r * cos_h, r * sin_h}).Scale(1.0 / 1403)
	rgb_c := cam_unadapt(rgb_a, e.fl)
	for i := range rgb_c {
		rgb_c[i] *= e.d_rgb_inv[i]
	}
	return m16_inv.Apply(rgb_c).Scale(0.01).Slice()
}

// gray_reference returns the colorfulness (or chroma) and hue of the
// neutral color with luminance y.
func (e *Environment) gray_reference(y float64, colorfulness bool) (c, h float64) {
	cam := e.XYZToCAM16(e.RefWhite.Scale(y).Slice())
	if colorfulness {
		return cam.M, cam.H
	}
	return cam.C, cam.H
}

// gray_for_lightness finds the luminance of the neutral color with CAM16
// lightness J by bisection.
func (e *Environment) gray_for_lightness(J float64) float64 {
	lo, hi := 0.0, 1.0
	for e.XYZToCAM16(e.RefWhite.Scale(hi).Slice()).J < J && hi < 1e6 {
		lo, hi = hi, hi*2
	}
	for range 64 {
		mid := (lo + hi) / 2
		if e.XYZToCAM16(e.RefWhite.Scale(mid).Slice()).J < J {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-15 {
			break
		}
	}
	return (lo + hi) / 2
}

func polar_distance(c1, h1, c2, h2 float64) float64 {
	a1, b1 := algebra.PolarToRect(c1, h1)
	a2, b2 := algebra.PolarToRect(c2, h2)
	return math.Hypot(a1-a2, b1-b2)
}

// CAM16Env is the viewing conditions of cam16-jmh: a D65 white, 64 lux
// with a gray world assumption, 20% background and average surround.
var CAM16Env = NewEnvironment(whiteD65, 64/math.Pi*0.2, 20, SurroundAverage, false)

func new_cam16_jmh() *LCh {
	env := CAM16Env
	s := &LCh{
		Space: Space{
			name: "cam16-jmh", base: "xyz-d65", white: whiteD65,
			channels: []types.Channel{
				{Name: "j", Low: 0, High: 100, Limit: [2]float64{0, math.Inf(1)}},
				{Name: "m", Low: 0, High: 105, Limit: [2]float64{0, math.Inf(1)}},
				types.Angle("h"),
			},
			aliases: map[string]string{"lightness": "j", "colorfulness": "m", "hue": "h"},
			to:      func(c []float64) []float64 { return env.CAM16ToXYZ(c[0], c[1], c[2], true) },
			from: func(c []float64) []float64 {
				cam := env.XYZToCAM16(c)
				return []float64{cam.J, cam.M, cam.H}
			},
		},
		idx: [3]int{0, 1, 2},
	}
	s.achromatic = func(c []float64) bool {
		if c[0] <= 0 {
			return true
		}
		gm, gh := env.gray_reference(env.gray_for_lightness(c[0]), true)
		return polar_distance(c[1], c[2], gm, gh) < CAM16AchromaticDistance
	}
	s.resolve = func(c []float64) []float64 {
		ans := []float64{algebra.NoNaN(c[0], 0), algebra.NoNaN(c[1], 0), c[2]}
		if ans[2] != ans[2] {
			ans[2] = CAM16AchromaticHue
		}
		return ans
	}
	return s
}

// HCTEnv assumes a background and adapting field of L* 50.
var HCTEnv = NewEnvironment(whiteD65, 200/math.Pi*LstarToY(50), LstarToY(50)*100, SurroundAverage, false)

func hct_to_xyz(coords []float64, env *Environment) []float64 {
	h, c, t := coords[0], coords[1], coords[2]
	if t == 0 {
		return []float64{0, 0, 0}
	}
	y := LstarToY(t) * env.RefWhite[1]
	var j float64
	if t > 0 {
		j = 0.00379058511492914*t*t + 0.608983189401032*t + 0.9155088574762233
	} else {
		j = 9.514440756550361e-06*t*t + 0.08693057439788597*t - 21.928975842194614
	}
	const threshold = 2e-12
	const max_attempts = 15
	last := math.Inf(1)
	best := j
	for range max_attempts + 1 {
		xyz := env.CAM16ToXYZ(j, c, h, false)
		delta := math.Abs(xyz[1] - y)
		if delta < last {
			if delta <= threshold {
				return xyz
			}
			best = j
			last = delta
		}
		if xyz[1] == 0 {
			break
		}
		j = j - (xyz[1]-y)*j/(2*xyz[1])
	}
	return env.CAM16ToXYZ(best, c, h, false)
}

func xyz_to_hct(xyz []float64, env *Environment) []float64 {
	t := YToLstar(xyz[1] / env.RefWhite[1])
	if t == 0 {
		return []float64{0, 0, 0}
	}
	cam := env.XYZToCAM16(xyz)
	return []float64{cam.H, cam.C, t}
}

func new_hct() *LCh {
	env := HCTEnv
	s := &LCh{
		Space: Space{
			name: "hct", base: "xyz-d65", white: whiteD65,
			channels: []types.Channel{
				types.Angle("h"),
				types.Unbound("c", 0, 145, 0),
				types.Unbound("t", 0, 100, 0),
			},
			aliases: map[string]string{"lightness": "t", "tone": "t", "chroma": "c", "hue": "h"},
			to:      func(c []float64) []float64 { return hct_to_xyz(c, env) },
			from:    func(c []float64) []float64 { return xyz_to_hct(c, env) },
		},
		idx: [3]int{2, 1, 0},
	}
	gray := func(t float64) (c, h float64) {
		if t <= 0 {
			return 0, CAM16AchromaticHue
		}
		return env.gray_reference(LstarToY(t), false)
	}
	s.achromatic = func(c []float64) bool {
		if c[2] == 0 {
			return true
		}
		gc, gh := gray(c[2])
		return polar_distance(c[1], c[0], gc, gh) < CAM16AchromaticDistance
	}
	s.resolve = func(c []float64) []float64 {
		t := algebra.NoNaN(c[2], 0)
		ans := []float64{c[0], c[1], t}
		if ans[0] != ans[0] || ans[1] != ans[1] {
			gc, gh := gray(t)
			ans[0] = algebra.NoNaN(ans[0], gh)
			ans[1] = algebra.NoNaN(ans[1], gc)
		}
		return ans
	}
	return s
}

var (
	CAM16JMh = new_cam16_jmh()
	HCT      = new_hct()
)
