package prism

import (
	"fmt"
	"image/color"
	"math"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/interpolate"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

// Interpolation is a named interpolation method that can be registered
// in the interpolate category.
type Interpolation struct {
	name   string
	method interpolate.Method
	kernel interpolate.Kernel
}

// NewInterpolation creates a spline interpolation method from a kernel.
// Undefined channels are filled as for the continuous method and the
// end points are extended with phantom points.
func NewInterpolation(name string, kernel interpolate.Kernel) *Interpolation {
	return &Interpolation{name: name, method: interpolate.Method(name), kernel: kernel}
}

func (i *Interpolation) Name() string { return i.name }

func builtin_interpolations() []*Interpolation {
	ans := make([]*Interpolation, 0, len(interpolate.Methods()))
	for _, m := range interpolate.Methods() {
		ans = append(ans, &Interpolation{name: string(m), method: m})
	}
	return ans
}

// Stop places a color at an explicit position in [0, 1].
type Stop struct {
	Color    *Color
	Position float64
}

type interpolate_config struct {
	space         string
	out_space     string
	hue           interpolate.HuePolicy
	premultiplied bool
	progress      interpolate.Progress
	method        string
	extrapolate   bool
	carryforward  bool
	powerless     bool
	padding       [2]float64
	domain        []float64
	steps         int
	max_steps     int
	max_delta_e   float64
	delta_e       string
	delta_e_opts  []Option
}

// InterpolateOption configures Interpolate, Steps, Mix and Discrete.
type InterpolateOption func(*interpolate_config)

func default_interpolate_config() interpolate_config {
	return interpolate_config{
		space: DefaultInterpolate, hue: DefaultHue, premultiplied: true,
		method: string(interpolate.MethodLinear), max_steps: DefaultMaxSteps, steps: 2,
	}
}

// InSpace sets the space colors are interpolated in, DefaultInterpolate
// by default.
func InSpace(space string) InterpolateOption {
	return func(c *interpolate_config) { c.space = space }
}

// OutSpace sets the space of the returned colors. The default is the
// space of the first color.
func OutSpace(space string) InterpolateOption {
	return func(c *interpolate_config) { c.out_space = space }
}

// Hue sets the hue policy: shorter, longer, increasing, decreasing or
// specified.
func Hue(policy string) InterpolateOption {
	return func(c *interpolate_config) { c.hue = interpolate.HuePolicy(policy) }
}

func Premultiplied(on bool) InterpolateOption {
	return func(c *interpolate_config) { c.premultiplied = on }
}

// WithProgress eases every channel that has no easing of its own.
func WithProgress(e interpolate.Easing) InterpolateOption {
	return WithChannelProgress(interpolate.AllChannels, e)
}

// WithChannelProgress eases a single channel, by name or alias.
func WithChannelProgress(channel string, e interpolate.Easing) InterpolateOption {
	return func(c *interpolate_config) {
		if c.progress == nil {
			c.progress = make(interpolate.Progress)
		}
		c.progress[channel] = e
	}
}

// Method selects a registered interpolation method, linear by default.
func Method(name string) InterpolateOption {
	return func(c *interpolate_config) { c.method = name }
}

// Extrapolate evaluates points outside [0, 1] on the end segments instead
// of clamping them.
func Extrapolate() InterpolateOption {
	return func(c *interpolate_config) { c.extrapolate = true }
}

// Carryforward marks channels of the interpolation space undefined when
// an analogous channel of the original color was undefined.
func Carryforward() InterpolateOption {
	return func(c *interpolate_config) { c.carryforward = true }
}

// Powerless treats the hue of achromatic colors as undefined even when the
// colors are already in the interpolation space.
func Powerless() InterpolateOption {
	return func(c *interpolate_config) { c.powerless = true }
}

// Padding trims the start and end of the interpolation range, as
// fractions of it.
func Padding(start, end float64) InterpolateOption {
	return func(c *interpolate_config) { c.padding = [2]float64{start, end} }
}

// Domain remaps input positions. The values are spread evenly over
// [0, 1], so Domain(0, 100) accepts inputs from 0 to 100.
func Domain(values ...float64) InterpolateOption {
	return func(c *interpolate_config) { c.domain = values }
}

// StepCount sets the number of colors Steps returns, or the number of
// bands of Discrete.
func StepCount(n int) InterpolateOption {
	return func(c *interpolate_config) { c.steps = n }
}

func MaxSteps(n int) InterpolateOption {
	return func(c *interpolate_config) { c.max_steps = n }
}

// MaxDeltaE makes Steps insert colors until adjacent colors are no more
// than limit apart according to the named delta-E method.
func MaxDeltaE(limit float64, method string, opts ...Option) InterpolateOption {
	return func(c *interpolate_config) {
		c.max_delta_e, c.delta_e, c.delta_e_opts = limit, method, opts
	}
}

// Interpolator evaluates an interpolation at positions in [0, 1].
type Interpolator struct {
	reg           *Registry
	space         types.Space
	out_space     string
	premultiplied bool
	angle         []bool
	piecewise     *interpolate.Piecewise
	cfg           interpolate_config
	bands         int
}

type interpolation_input struct {
	color    *Color
	position float64
}

func (r *Registry) interpolation_input(x any) (ans interpolation_input, err error) {
	ans.position = math.NaN()
	switch v := x.(type) {
	case *Color:
		ans.color = v
	case Stop:
		ans.color, ans.position = v.Color, v.Position
	case *Stop:
		ans.color, ans.position = v.Color, v.Position
	case string:
		if ans.color, err = r.Parse(v); err != nil {
			return
		}
	case color.Color:
		ans.color = r.FromColor(v)
	default:
		return ans, fmt.Errorf("%w: cannot interpolate a value of type %T", ErrValue, x)
	}
	if ans.color == nil {
		return ans, fmt.Errorf("%w: nil color in interpolation list", ErrValue)
	}
	if ans.color.reg != r {
		ans.color, err = r.New(ans.color.Space(), ans.color.Coords(), ans.color.Alpha())
	} else {
		ans.color = ans.color.Clone()
	}
	return
}

func as_easing(x any) (interpolate.Easing, bool) {
	switch v := x.(type) {
	case interpolate.Easing:
		return v, v != nil
	case func(float64) float64:
		return v, v != nil
	}
	return nil, false
}

// prepare moves c into the interpolation space, fitting it when the space
// cannot hold out of gamut colors and premultiplying alpha.
func (r *Registry) prepare(c *Color, space types.Space, cfg *interpolate_config) error {
	var undefined []types.ChannelKind
	if cfg.carryforward {
		kinds := types.ChannelKinds(c.space)
		for i, v := range c.coords[:len(c.coords)-1] {
			if math.IsNaN(v) && kinds[i] != types.KindOther {
				undefined = append(undefined, kinds[i])
			}
		}
	}
	if err := c.convert_in_place(space.Name(), build_options(nil)); err != nil {
		return err
	}
	if len(undefined) > 0 {
		for i, k := range types.ChannelKinds(space) {
			for _, u := range undefined {
				if k == u {
					c.coords[i] = math.NaN()
				}
			}
		}
	}
	if cfg.powerless {
		n := len(c.coords) - 1
		if h := types.HueIndex(space); h > -1 && types.IsAchromatic(space, types.ResolveNaNs(space, c.coords[:n])) {
			c.coords[h] = math.NaN()
		}
	}
	if !types.IsExtendedRange(space) {
		in, err := c.InGamut("")
		if err != nil {
			return err
		}
		if !in {
			if err = c.Fit("", ""); err != nil {
				return err
			}
		}
	}
	if cfg.premultiplied {
		interpolate.Premultiply(c.coords, angle_channels(space))
	}
	return nil
}

func angle_channels(s types.Space) []bool {
	chans := s.Channels()
	ans := make([]bool, len(chans)+1)
	for i, ch := range chans {
		ans[i] = ch.IsAngle()
	}
	return ans
}

func (r *Registry) interpolator(colors []any, cfg interpolate_config) (*Interpolator, error) {
	if err := cfg.hue.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValue, err)
	}
	method, err := r.interpolation(cfg.method)
	if err != nil {
		return nil, err
	}
	space, err := r.Space(cfg.space)
	if err != nil {
		return nil, err
	}
	var (
		coords  [][]float64
		stops   []float64
		easings []interpolate.Easing
		pending interpolate.Easing
	)
	for i, x := range colors {
		if e, ok := as_easing(x); ok {
			switch {
			case i == 0:
				return nil, fmt.Errorf("%w: an easing cannot be the first item of an interpolation", ErrValue)
			case i == len(colors)-1:
				return nil, fmt.Errorf("%w: an easing cannot be the last item of an interpolation", ErrValue)
			case pending != nil:
				return nil, fmt.Errorf("%w: two easings in a row in an interpolation", ErrValue)
			}
			pending = e
			continue
		}
		in, err := r.interpolation_input(x)
		if err != nil {
			return nil, err
		}
		if cfg.out_space == "" {
			cfg.out_space = in.color.Space()
		}
		if err = r.prepare(in.color, space, &cfg); err != nil {
			return nil, err
		}
		if len(coords) > 0 {
			easings = append(easings, pending)
		}
		pending = nil
		coords = append(coords, in.color.coords)
		stops = append(stops, in.position)
	}
	if len(coords) < 2 {
		return nil, fmt.Errorf("%w: need at least two colors to interpolate, got %d", ErrValue, len(coords))
	}
	if _, err = r.Space(cfg.out_space); err != nil {
		return nil, err
	}
	if err = interpolate.UnwrapHues(coords, types.HueIndex(space), cfg.hue); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValue, err)
	}
	names := make([]string, 0, len(space.Channels())+1)
	for _, ch := range space.Channels() {
		names = append(names, ch.Name)
	}
	names = append(names, types.Alpha.Name)
	var progress interpolate.Progress
	if cfg.progress != nil {
		progress = make(interpolate.Progress, len(cfg.progress))
		for k, e := range cfg.progress {
			if k != interpolate.AllChannels {
				if idx := types.ChannelIndex(space, k); idx > -1 {
					k = names[idx]
				}
			}
			progress[k] = e
		}
	}
	pw, err := interpolate.New(coords, interpolate.Options{
		Method: method.method, Kernel: method.kernel, Stops: interpolate.CalcStops(stops, len(coords)),
		Easings: easings, Progress: progress, Names: names, Extrapolate: cfg.extrapolate,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValue, err)
	}
	r.Logger().Debug("interpolating", "method", cfg.method, "space", space.Name(), "colors", len(coords), "hue", cfg.hue)
	return &Interpolator{
		reg: r, space: space, out_space: cfg.out_space, premultiplied: cfg.premultiplied,
		angle: angle_channels(space), piecewise: pw, cfg: cfg,
	}, nil
}

// Interpolate creates an Interpolator over colors. Each item is a *Color,
// a Stop, a color name or hex string, an image/color value, or an
// interpolate.Easing placed between two colors to ease that segment.
func (r *Registry) Interpolate(colors []any, opts ...InterpolateOption) (*Interpolator, error) {
	cfg := default_interpolate_config()
	for _, o := range opts {
		o(&cfg)
	}
	return r.interpolator(colors, cfg)
}

// Discrete creates an Interpolator that is a step function over colors.
// The number of bands is set with StepCount and defaults to the number of
// colors. Each band has the color the continuous interpolation has at the
// band's position.
func (r *Registry) Discrete(colors []any, opts ...InterpolateOption) (*Interpolator, error) {
	cfg := default_interpolate_config()
	cfg.steps = 0
	for _, o := range opts {
		o(&cfg)
	}
	ans, err := r.interpolator(colors, cfg)
	if err != nil {
		return nil, err
	}
	ans.bands = cfg.steps
	if ans.bands < 1 {
		ans.bands = len(ans.piecewise.Stops())
	}
	return ans, nil
}

// Steps returns colors evenly spaced along the interpolation of colors.
// See Interpolator.Steps.
func (r *Registry) Steps(colors []any, opts ...InterpolateOption) ([]*Color, error) {
	cfg := default_interpolate_config()
	for _, o := range opts {
		o(&cfg)
	}
	i, err := r.interpolator(colors, cfg)
	if err != nil {
		return nil, err
	}
	return i.steps(cfg.steps, cfg.max_steps, cfg.max_delta_e, cfg.delta_e, cfg.delta_e_opts)
}

// Mix returns the color at t between c1 and c2.
func (r *Registry) Mix(c1, c2 any, t float64, opts ...InterpolateOption) (*Color, error) {
	i, err := r.Interpolate([]any{c1, c2}, opts...)
	if err != nil {
		return nil, err
	}
	return i.At(t)
}

func Interpolate(colors []any, opts ...InterpolateOption) (*Interpolator, error) {
	return DefaultRegistry().Interpolate(colors, opts...)
}

func Discrete(colors []any, opts ...InterpolateOption) (*Interpolator, error) {
	return DefaultRegistry().Discrete(colors, opts...)
}

func Steps(colors []any, opts ...InterpolateOption) ([]*Color, error) {
	return DefaultRegistry().Steps(colors, opts...)
}

func Mix(c1, c2 any, t float64, opts ...InterpolateOption) (*Color, error) {
	return DefaultRegistry().Mix(c1, c2, t, opts...)
}

func (c *Color) with(others []any) []any {
	return append([]any{c}, others...)
}

// Interpolate interpolates from c through others.
func (c *Color) Interpolate(others []any, opts ...InterpolateOption) (*Interpolator, error) {
	return c.reg.Interpolate(c.with(others), opts...)
}

func (c *Color) Steps(others []any, opts ...InterpolateOption) ([]*Color, error) {
	return c.reg.Steps(c.with(others), opts...)
}

// Mix returns the color at t between c and other. c is not changed.
func (c *Color) Mix(other any, t float64, opts ...InterpolateOption) (*Color, error) {
	return c.reg.Mix(c, other, t, opts...)
}

// remap_domain maps point from the domain onto [0, 1]. Points outside the
// domain are extended linearly from the end intervals.
func remap_domain(domain []float64, point float64) float64 {
	n := len(domain) - 1
	if n < 1 {
		return point
	}
	segment := n
	for i := 1; i <= n; i++ {
		if point <= domain[i] {
			segment = i
			break
		}
	}
	lo, hi := domain[segment-1], domain[segment]
	t := 0.0
	if hi != lo {
		t = (point - lo) / (hi - lo)
	}
	return (float64(segment-1) + t) / float64(n)
}

func (i *Interpolator) position(point float64) float64 {
	point = remap_domain(i.cfg.domain, point)
	if pad := i.cfg.padding; pad != [2]float64{} {
		point = algebra.Lerp(pad[0], 1-pad[1], point)
	}
	if i.bands > 0 {
		band := int(math.Floor(algebra.Clamp(point, 0, 1) * float64(i.bands)))
		band = min(band, i.bands-1)
		if i.bands == 1 {
			return 0.5
		}
		point = float64(band) / float64(i.bands-1)
	}
	return point
}

// At returns the color at point, normally in [0, 1].
func (i *Interpolator) At(point float64) (*Color, error) {
	coords := i.piecewise.At(i.position(point))
	if i.premultiplied {
		interpolate.Postdivide(coords, i.angle)
	}
	if h := types.HueIndex(i.space); h > -1 {
		coords[h] = algebra.ConstrainHue(coords[h])
	}
	c := &Color{reg: i.reg, space: i.space, coords: coords}
	if err := c.convert_in_place(i.out_space, build_options(nil)); err != nil {
		return nil, err
	}
	return c, nil
}

func (i *Interpolator) Space() string { return i.space.Name() }

func (i *Interpolator) OutSpace() string { return i.out_space }

// Stops returns the resolved positions of the input colors.
func (i *Interpolator) Stops() []float64 {
	return append([]float64(nil), i.piecewise.Stops()...)
}

// Steps returns steps evenly spaced colors. With a positive maxDeltaE at
// least two colors are produced and midpoints are inserted between every
// adjacent pair until no pair is more than maxDeltaE apart or doubling
// would exceed maxSteps. deltaE names the difference method, DefaultDeltaE
// when empty.
func (i *Interpolator) Steps(steps, maxSteps int, maxDeltaE float64, deltaE string, opts ...Option) ([]*Color, error) {
	return i.steps(steps, maxSteps, maxDeltaE, deltaE, opts)
}

func (i *Interpolator) steps(steps, max_steps int, max_delta_e float64, delta_e string, de_opts []Option) ([]*Color, error) {
	type sample struct {
		p     float64
		color *Color
	}
	actual := steps
	if max_delta_e > 0 {
		actual = max(actual, 2)
	}
	if max_steps > 0 {
		actual = min(actual, max_steps)
	}
	var ret []sample
	add := func(p float64) error {
		c, err := i.At(p)
		if err == nil {
			ret = append(ret, sample{p, c})
		}
		return err
	}
	switch {
	case actual == 1:
		if err := add(0.5); err != nil {
			return nil, err
		}
	case actual > 1:
		step := 1 / float64(actual-1)
		for n := range actual {
			if err := add(float64(n) * step); err != nil {
				return nil, err
			}
		}
	}
	if max_delta_e > 0 {
		de := func(a, b *Color) (float64, error) { return DeltaE(a, b, delta_e, de_opts...) }
		m_delta := 0.0
		for n := 1; n < len(ret); n++ {
			d, err := de(ret[n-1].color, ret[n].color)
			if err != nil {
				return nil, err
			}
			m_delta = max(m_delta, d)
		}
		total := len(ret)
		for m_delta > max_delta_e && (max_steps <= 0 || total*2-1 <= max_steps) {
			m_delta = 0
			next := make([]sample, 0, total*2-1)
			next = append(next, ret[0])
			for n := 1; n < total; n++ {
				prev, cur := ret[n-1], ret[n]
				p := (prev.p + cur.p) / 2
				c, err := i.At(p)
				if err != nil {
					return nil, err
				}
				d1, err := de(c, prev.color)
				if err != nil {
					return nil, err
				}
				d2, err := de(c, cur.color)
				if err != nil {
					return nil, err
				}
				m_delta = max(m_delta, d1, d2)
				next = append(next, sample{p, c}, cur)
			}
			ret = next
			total = len(ret)
		}
	}
	ans := make([]*Color, len(ret))
	for n, s := range ret {
		ans[n] = s.color
	}
	return ans, nil
}
