package prism

import (
	"fmt"
	"strings"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/cat"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

// MaxChainHops is the maximum number of ToBase steps from any space to
// its root.
const MaxChainHops = 10

type Direction uint8

const (
	ToBase Direction = iota
	FromBase
)

func (d Direction) String() string {
	if d == ToBase {
		return "to-base"
	}
	return "from-base"
}

// ChainStep is a single edge of a conversion. For ToBase steps From is
// the child and To its base, for FromBase steps the reverse.
type ChainStep struct {
	From, To  types.Space
	Direction Direction
	// Adapt is set when the two spaces have different reference whites.
	Adapt bool
}

// Chain is the resolved route between two spaces.
type Chain struct {
	Source, Target types.Space
	Steps          []ChainStep
	adapter        cat.Method
}

func (c *Chain) String() string {
	names := make([]string, 0, len(c.Steps)+1)
	names = append(names, c.Source.Name())
	for _, s := range c.Steps {
		names = append(names, s.To.Name())
	}
	return strings.Join(names, " → ")
}

// Run converts coords, which must not include alpha, along the chain.
// Undefined channels are resolved before the first transform. When
// normalize is set the result is canonicalized for the target space and
// achromatic colors in cylindrical targets get an undefined hue. White
// point changes use m, or the registry default when m is nil.
func (c *Chain) Run(coords []float64, normalize bool, m cat.Method) []float64 {
	if len(c.Steps) == 0 {
		return append([]float64(nil), coords...)
	}
	if m == nil {
		m = c.adapter
	}
	coords = types.ResolveNaNs(c.Source, coords)
	for _, s := range c.Steps {
		switch s.Direction {
		case ToBase:
			coords = s.From.ToBase(coords)
			if s.Adapt {
				coords = cat.Adapt(m, s.From.White(), s.To.White(), algebra.FromSlice(coords)).Slice()
			}
		case FromBase:
			if s.Adapt {
				coords = cat.Adapt(m, s.From.White(), s.To.White(), algebra.FromSlice(coords)).Slice()
			}
			coords = s.To.FromBase(coords)
		}
	}
	if normalize {
		normalize_coords(c.Target, coords)
	}
	return coords
}

func normalize_coords(s types.Space, coords []float64) {
	if n, ok := s.(types.Normalizer); ok {
		copy(coords, n.Normalize(coords))
	}
	if h := types.HueIndex(s); h > -1 && types.IsAchromatic(s, coords) {
		coords[h] = algebra.NaN
	}
}

// ancestry returns s followed by its bases up to the root, the caller
// must hold the lock.
func (r *Registry) ancestry(s types.Space) ([]types.Space, error) {
	ans := []types.Space{s}
	for s.Base() != s.Name() {
		if len(ans) > MaxChainHops {
			return nil, fmt.Errorf("%w: the space %s is more than %d steps away from its root", ErrConfiguration, ans[0].Name(), MaxChainHops)
		}
		base, found := r.spaces[s.Base()]
		if !found {
			return nil, fmt.Errorf("%w: the base %s of the space %s is not registered", ErrConfiguration, s.Base(), s.Name())
		}
		s = base
		ans = append(ans, s)
	}
	return ans, nil
}

// Chain returns the conversion route from src to dst, resolving and
// caching it if needed.
func (r *Registry) Chain(src, dst string) (*Chain, error) {
	key := [2]string{src, dst}
	r.mu.RLock()
	ans, found := r.chains[key]
	r.mu.RUnlock()
	if found {
		return ans, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ans, found = r.chains[key]; found {
		return ans, nil
	}
	ans, err := r.resolve_chain(src, dst)
	if err != nil {
		return nil, err
	}
	r.chains[key] = ans
	r.logger.Debug("resolved conversion chain", "chain", ans.String())
	return ans, nil
}

func (r *Registry) resolve_chain(src, dst string) (*Chain, error) {
	s, err := r.space(src)
	if err != nil {
		return nil, err
	}
	d, err := r.space(dst)
	if err != nil {
		return nil, err
	}
	m, found := r.cats[DefaultCAT]
	if !found {
		m = cat.Bradford
	}
	ans := &Chain{Source: s, Target: d, adapter: m}
	if src == dst {
		return ans, nil
	}
	up, err := r.ancestry(s)
	if err != nil {
		return nil, err
	}
	down, err := r.ancestry(d)
	if err != nil {
		return nil, err
	}
	pos := make(map[string]int, len(down))
	for i, x := range down {
		pos[x.Name()] = i
	}
	lca, di := -1, -1
	for i, x := range up {
		if j, found := pos[x.Name()]; found {
			lca, di = i, j
			break
		}
	}
	if lca < 0 {
		return nil, fmt.Errorf("%w: the spaces %s and %s have no common ancestor", ErrConfiguration, src, dst)
	}
	step := func(from, to types.Space, dir Direction) ChainStep {
		return ChainStep{From: from, To: to, Direction: dir, Adapt: from.White() != to.White()}
	}
	for i := range lca {
		ans.Steps = append(ans.Steps, step(up[i], up[i+1], ToBase))
	}
	for j := di; j > 0; j-- {
		ans.Steps = append(ans.Steps, step(down[j], down[j-1], FromBase))
	}
	return ans, nil
}
