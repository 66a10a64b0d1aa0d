package prism

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/kovidgoyal/prism/cat"
	"github.com/kovidgoyal/prism/interpolate"
	"github.com/kovidgoyal/prism/spaces"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

// Filter is a named color filter. No filters ship with prism, the
// category exists so applications can register their own.
type Filter interface {
	Name() string
	Filter(c *Color, amount float64) error
}

// Registry categories, used as prefixes in Deregister.
const (
	CategorySpace       = "space"
	CategoryDeltaE      = "delta-e"
	CategoryCAT         = "cat"
	CategoryFit         = "fit"
	CategoryFilter      = "filter"
	CategoryInterpolate = "interpolate"
)

var categories = []string{CategorySpace, CategoryDeltaE, CategoryCAT, CategoryFit, CategoryFilter, CategoryInterpolate}

// Registry holds the plugins colors are converted, measured, mapped and
// interpolated with. Colors keep a pointer to the registry that created
// them. A Registry is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	spaces      map[string]types.Space
	delta_e     map[string]DeltaEPlugin
	cats        map[string]cat.Method
	fits        map[string]Fit
	filters     map[string]Filter
	interpolate map[string]*Interpolation
	chains      map[[2]string]*Chain
	logger      hclog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		spaces: make(map[string]types.Space), delta_e: make(map[string]DeltaEPlugin),
		cats: make(map[string]cat.Method), fits: make(map[string]Fit),
		filters: make(map[string]Filter), interpolate: make(map[string]*Interpolation),
		chains: make(map[[2]string]*Chain), logger: hclog.NewNullLogger(),
	}
}

// Builtins returns every plugin shipped with prism.
func Builtins() []any {
	ans := []any{}
	for _, s := range spaces.All() {
		ans = append(ans, s)
	}
	for _, m := range cat.Builtins() {
		ans = append(ans, m)
	}
	for _, d := range builtin_delta_e() {
		ans = append(ans, d)
	}
	for _, f := range builtin_fits() {
		ans = append(ans, f)
	}
	for _, i := range builtin_interpolations() {
		ans = append(ans, i)
	}
	return ans
}

// NewDefaultRegistry returns a registry holding all built-in plugins.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.Register(false, Builtins()...); err != nil {
		panic(err)
	}
	return r
}

var DefaultRegistry = sync.OnceValue(NewDefaultRegistry)

// Clone returns an independent copy of the registry. Plugins are shared,
// the maps that hold them are not, so registering with the clone leaves
// the original untouched.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ans := &Registry{
		spaces: clone_map(r.spaces), delta_e: clone_map(r.delta_e), cats: clone_map(r.cats),
		fits: clone_map(r.fits), filters: clone_map(r.filters), interpolate: clone_map(r.interpolate),
		chains: make(map[[2]string]*Chain), logger: r.logger,
	}
	return ans
}

func clone_map[K comparable, V any](m map[K]V) map[K]V {
	ans := make(map[K]V, len(m))
	for k, v := range m {
		ans[k] = v
	}
	return ans
}

func (r *Registry) SetLogger(l hclog.Logger) {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	r.mu.Lock()
	r.logger = l
	r.mu.Unlock()
}

func (r *Registry) Logger() hclog.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logger
}

type named interface {
	Name() string
}

func category_of(p any) (string, error) {
	switch p.(type) {
	case types.Space:
		return CategorySpace, nil
	case DeltaEPlugin:
		return CategoryDeltaE, nil
	case cat.Method:
		return CategoryCAT, nil
	case Fit:
		return CategoryFit, nil
	case Filter:
		return CategoryFilter, nil
	case *Interpolation:
		return CategoryInterpolate, nil
	}
	return "", fmt.Errorf("%w: %T is not a plugin", ErrValue, p)
}

func (r *Registry) has(category, name string) bool {
	found := false
	switch category {
	case CategorySpace:
		_, found = r.spaces[name]
	case CategoryDeltaE:
		_, found = r.delta_e[name]
	case CategoryCAT:
		_, found = r.cats[name]
	case CategoryFit:
		_, found = r.fits[name]
	case CategoryFilter:
		_, found = r.filters[name]
	case CategoryInterpolate:
		_, found = r.interpolate[name]
	}
	return found
}

func validate_space(s types.Space) error {
	name := s.Name()
	if name == "" || name == "*" || strings.ContainsAny(name, ".:") {
		return fmt.Errorf("%w: invalid space name: %#v", ErrValue, name)
	}
	if len(s.Channels()) == 0 {
		return fmt.Errorf("%w: the space %s has no channels", ErrValue, name)
	}
	return nil
}

// Register adds plugins to the registry. Each plugin must be one of
// types.Space, DeltaEPlugin, cat.Method, Fit, Filter or *Interpolation. Unless
// overwrite is set, registering a name that already exists in its
// category is an error. Nothing is registered if any plugin fails
// validation.
func (r *Registry) Register(overwrite bool, plugins ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[[2]string]bool, len(plugins))
	for _, p := range plugins {
		category, err := category_of(p)
		if err != nil {
			return err
		}
		name := p.(named).Name()
		if name == "" || name == "*" {
			return fmt.Errorf("%w: invalid %s plugin name: %#v", ErrValue, category, name)
		}
		if category == CategoryFit && name == "clip" {
			return fmt.Errorf("%w: fit:clip is reserved", ErrRegistryConflict)
		}
		if s, ok := p.(types.Space); ok {
			if err = validate_space(s); err != nil {
				return err
			}
		}
		key := [2]string{category, name}
		if !overwrite && (seen[key] || r.has(category, name)) {
			return fmt.Errorf("%w: a %s plugin named %s is already registered", ErrRegistryConflict, category, name)
		}
		seen[key] = true
	}
	for _, p := range plugins {
		switch v := p.(type) {
		case types.Space:
			r.spaces[v.Name()] = v
		case DeltaEPlugin:
			r.delta_e[v.Name()] = v
		case cat.Method:
			r.cats[v.Name()] = v
		case Fit:
			r.fits[v.Name()] = v
		case Filter:
			r.filters[v.Name()] = v
		case *Interpolation:
			r.interpolate[v.Name()] = v
		}
	}
	r.logger.Debug("registered plugins", "count", len(plugins), "overwrite", overwrite)
	r.invalidate()
	return nil
}

func (r *Registry) remove(category, name string) {
	switch category {
	case CategorySpace:
		delete(r.spaces, name)
	case CategoryDeltaE:
		delete(r.delta_e, name)
	case CategoryCAT:
		delete(r.cats, name)
	case CategoryFit:
		delete(r.fits, name)
	case CategoryFilter:
		delete(r.filters, name)
	case CategoryInterpolate:
		delete(r.interpolate, name)
	}
}

func (r *Registry) clear_category(category string) {
	switch category {
	case CategorySpace:
		clear(r.spaces)
	case CategoryDeltaE:
		clear(r.delta_e)
	case CategoryCAT:
		clear(r.cats)
	case CategoryFit:
		clear(r.fits)
	case CategoryFilter:
		clear(r.filters)
	case CategoryInterpolate:
		clear(r.interpolate)
	}
}

// Deregister removes plugins named as category:name, for example
// space:hsl or fit:raytrace. category:* removes a whole category and *
// removes everything. Unless silent is set, naming a plugin that is not
// registered is an error. Nothing is removed if any name is invalid.
func (r *Registry) Deregister(silent bool, names ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	type item struct{ category, name string }
	items := make([]item, 0, len(names))
	for _, q := range names {
		if q == "*" {
			items = append(items, item{"*", "*"})
			continue
		}
		category, name, found := strings.Cut(q, ":")
		if !found || !slices.Contains(categories, category) {
			return fmt.Errorf("%w: %#v is not of the form category:name", ErrValue, q)
		}
		if category == CategoryFit && name == "clip" {
			return fmt.Errorf("%w: fit:clip is reserved", ErrRegistryConflict)
		}
		if name != "*" && !silent && !r.has(category, name) {
			return fmt.Errorf("%w: no %s plugin named %s is registered", ErrLookup, category, name)
		}
		items = append(items, item{category, name})
	}
	for _, x := range items {
		switch {
		case x.category == "*":
			for _, c := range categories {
				r.clear_category(c)
			}
		case x.name == "*":
			r.clear_category(x.category)
		default:
			r.remove(x.category, x.name)
		}
	}
	r.logger.Debug("deregistered plugins", "names", names)
	r.invalidate()
	return nil
}

// invalidate drops cached chains, the caller must hold the write lock.
func (r *Registry) invalidate() {
	if len(r.chains) > 0 {
		r.logger.Debug("chain cache invalidated", "entries", len(r.chains))
		clear(r.chains)
	}
}

// Space returns the registered space named name.
func (r *Registry) Space(name string) (types.Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.space(name)
}

func (r *Registry) space(name string) (types.Space, error) {
	if s, found := r.spaces[name]; found {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %#v is not a registered color space", ErrLookup, name)
}

// Spaces returns the names of the registered spaces, sorted.
func (r *Registry) Spaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ans := make([]string, 0, len(r.spaces))
	for name := range r.spaces {
		ans = append(ans, name)
	}
	slices.Sort(ans)
	return ans
}

// Names returns the sorted plugin names registered in category.
func (r *Registry) Names(category string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ans []string
	add := func(name string) { ans = append(ans, name) }
	switch category {
	case CategorySpace:
		for n := range r.spaces {
			add(n)
		}
	case CategoryDeltaE:
		for n := range r.delta_e {
			add(n)
		}
	case CategoryCAT:
		for n := range r.cats {
			add(n)
		}
	case CategoryFit:
		add("clip")
		for n := range r.fits {
			add(n)
		}
	case CategoryFilter:
		for n := range r.filters {
			add(n)
		}
	case CategoryInterpolate:
		for n := range r.interpolate {
			add(n)
		}
	}
	slices.Sort(ans)
	return ans
}

func (r *Registry) delta_e_method(name string) (DeltaEPlugin, error) {
	if name == "" {
		name = DefaultDeltaE
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, found := r.delta_e[name]; found {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %#v is not a registered delta-E method", ErrLookup, name)
}

func (r *Registry) fit_method(name string) (Fit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, found := r.fits[name]; found {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %#v is not a registered gamut mapping method", ErrLookup, name)
}

func (r *Registry) cat_method(name string) (cat.Method, error) {
	if name == "" {
		name = DefaultCAT
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, found := r.cats[name]; found {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %#v is not a registered chromatic adaptation method", ErrLookup, name)
}

func (r *Registry) interpolation(name string) (*Interpolation, error) {
	if name == "" {
		name = string(interpolate.MethodLinear)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, found := r.interpolate[name]; found {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %#v is not a registered interpolation method", ErrValue, name)
}

// Filter looks up a registered filter.
func (r *Registry) Filter(name string) (Filter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, found := r.filters[name]; found {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %#v is not a registered filter", ErrLookup, name)
}
