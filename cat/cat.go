// Package cat implements von Kries style chromatic adaptation transforms
// that move XYZ values measured under one reference white to another.
package cat

import (
	"fmt"
	"sync"

	"github.com/kovidgoyal/prism/algebra"
)

var _ = fmt.Print

// Reference whites as CIE 1931 2° xy chromaticities.
var (
	A       = [2]float64{0.44757, 0.40745}
	C       = [2]float64{0.31006, 0.31616}
	D50     = [2]float64{0.34570, 0.35850}
	D55     = [2]float64{0.33243, 0.34744}
	D65     = [2]float64{0.31270, 0.32900}
	D75     = [2]float64{0.29903, 0.31488}
	E       = [2]float64{1.0 / 3, 1.0 / 3}
	ACESD60 = [2]float64{0.32168, 0.33767}
)

var whites = map[string][2]float64{
	"A": A, "C": C, "D50": D50, "D55": D55, "D65": D65, "D75": D75, "E": E, "ACES-D60": ACESD60,
}

// White looks up a named reference white such as "D65".
func White(name string) (ans [2]float64, found bool) {
	ans, found = whites[name]
	return
}

// Method is a chromatic adaptation transform.
type Method interface {
	Name() string
	// AdaptationMatrix returns the matrix that maps XYZ relative to w1 to
	// XYZ relative to w2.
	AdaptationMatrix(w1, w2 [2]float64) algebra.Mat3
}

// Matrix is a Method defined by a cone response matrix. The adaptation is
// M⁻¹·diag(M·w2 / M·w1)·M.
type Matrix struct {
	name     string
	m, inv   algebra.Mat3
	cache    map[[2][2]float64]algebra.Mat3
	cache_mu sync.Mutex
}

func NewMatrix(name string, m algebra.Mat3) (*Matrix, error) {
	inv, err := m.Inverted()
	if err != nil {
		return nil, fmt.Errorf("the cone response matrix for %s is not invertible: %w", name, err)
	}
	return &Matrix{name: name, m: m, inv: inv, cache: make(map[[2][2]float64]algebra.Mat3)}, nil
}

func must(name string, m algebra.Mat3) *Matrix {
	ans, err := NewMatrix(name, m)
	if err != nil {
		panic(err)
	}
	return ans
}

func (c *Matrix) Name() string { return c.name }

func (c *Matrix) ConeResponse() algebra.Mat3 { return c.m }

func (c *Matrix) String() string {
	return fmt.Sprintf("CAT{%s %s}", c.name, c.m)
}

func (c *Matrix) AdaptationMatrix(w1, w2 [2]float64) algebra.Mat3 {
	if w1 == w2 {
		return algebra.Identity
	}
	key := [2][2]float64{w1, w2}
	c.cache_mu.Lock()
	defer c.cache_mu.Unlock()
	if ans, found := c.cache[key]; found {
		return ans
	}
	src := c.m.Apply(algebra.XYToXYZ(w1))
	dst := c.m.Apply(algebra.XYToXYZ(w2))
	ans := c.inv.Mul(algebra.Diag(dst.Div(src))).Mul(c.m)
	c.cache[key] = ans
	return ans
}

// Adapt transforms xyz from white w1 to white w2. Identical whites are a no-op.
func Adapt(m Method, w1, w2 [2]float64, xyz algebra.Vec3) algebra.Vec3 {
	if w1 == w2 {
		return xyz
	}
	return m.AdaptationMatrix(w1, w2).Apply(xyz)
}

var (
	Bradford = must("bradford", algebra.Mat3{
		{0.8951000, 0.2664000, -0.1614000},
		{-0.7502000, 1.7135000, 0.0367000},
		{0.0389000, -0.0685000, 1.0296000},
	})
	VonKries = must("von-kries", algebra.Mat3{
		{0.4002400, 0.7076000, -0.0808100},
		{-0.2263000, 1.1653200, 0.0457000},
		{0.0000000, 0.0000000, 0.9182200},
	})
	XYZScaling = must("xyz-scaling", algebra.Identity)
	CAT02      = must("cat02", algebra.Mat3{
		{0.7328000, 0.4296000, -0.1624000},
		{-0.7036000, 1.6975000, 0.0061000},
		{0.0030000, 0.0136000, 0.9834000},
	})
	CMCCAT97 = must("cmccat97", algebra.Mat3{
		{0.8951000, -0.7502000, 0.0389000},
		{0.2664000, 1.7135000, 0.0685000},
		{-0.1614000, 0.0367000, 1.0296000},
	})
	Sharp = must("sharp", algebra.Mat3{
		{1.2694000, -0.0988000, -0.1706000},
		{-0.8364000, 1.8006000, 0.0357000},
		{0.0297000, -0.0315000, 1.0018000},
	})
	CMCCAT2000 = must("cmccat2000", algebra.Mat3{
		{0.7982000, 0.3389000, -0.1371000},
		{-0.5918000, 1.5512000, 0.0406000},
		{0.0008000, 0.0239000, 0.9753000},
	})
	CAT16 = must("cat16", algebra.Mat3{
		{0.401288, 0.650173, -0.051461},
		{-0.250268, 1.204414, 0.045854},
		{-0.002079, 0.048952, 0.953127},
	})
)

// Builtins returns every transform shipped with the package.
func Builtins() []Method {
	return []Method{Bradford, VonKries, XYZScaling, CAT02, CMCCAT97, Sharp, CMCCAT2000, CAT16}
}
