package prism

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/go-parallel"
)

var _ = fmt.Print

func for_all(colors []*Color, f func(*Color) error) error {
	errs := make([]error, len(colors))
	if err := parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for i := start; i < limit; i++ {
			errs[i] = f(colors[i])
		}
	}, 0, len(colors)); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// ConvertAll converts every color in place, in parallel. Colors that fail
// to convert are left unchanged and their errors joined.
func ConvertAll(colors []*Color, space string, opts ...Option) error {
	return for_all(colors, func(c *Color) error { return c.ConvertInPlace(space, opts...) })
}

// FitAll gamut maps every color in place, in parallel. See Color.Fit.
func FitAll(colors []*Color, space, method string, opts ...Option) error {
	return for_all(colors, func(c *Color) error { return c.Fit(space, method, opts...) })
}
