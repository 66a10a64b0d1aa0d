package prism

import (
	"fmt"

	"github.com/kovidgoyal/prism/algebra"
	"github.com/kovidgoyal/prism/cat"
)

var _ = fmt.Print

// ChromaticAdaptation maps xyz from reference white w1 to w2 using the
// named method, DefaultCAT when empty.
func (r *Registry) ChromaticAdaptation(w1, w2 [2]float64, xyz []float64, method string) ([]float64, error) {
	if len(xyz) != 3 {
		return nil, fmt.Errorf("%w: XYZ needs 3 coordinates, got %d", ErrValue, len(xyz))
	}
	m, err := r.cat_method(method)
	if err != nil {
		return nil, err
	}
	ans := cat.Adapt(m, w1, w2, algebra.FromSlice(xyz))
	return ans.Slice(), nil
}

// ChromaticAdaptation adapts using the default registry.
func ChromaticAdaptation(w1, w2 [2]float64, xyz []float64, method string) ([]float64, error) {
	return DefaultRegistry().ChromaticAdaptation(w1, w2, xyz, method)
}
