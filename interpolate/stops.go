package interpolate

import (
	"math"
)

// CalcStops resolves stop positions for count colors. stops may be shorter
// than count and NaN marks a missing position. The first stop defaults to
// 0, positions never decrease, runs of missing stops are spread evenly
// between their neighbors and a trailing run is spread up to 1, or held
// at the last position when an explicit stop exceeded 1.
func CalcStops(stops []float64, count int) []float64 {
	get := func(i int) float64 {
		if i < len(stops) {
			return stops[i]
		}
		return math.NaN()
	}
	final := make([]float64, count)
	if count == 0 {
		return final
	}
	first := get(0)
	if math.IsNaN(first) {
		first = 0
	}
	last := first * 100
	highest := last
	empty := -1
	for i := range count {
		value := get(i)
		if i == 0 {
			value = first
		}
		if math.IsNaN(value) {
			if empty < 0 {
				empty = i - 1
			}
			continue
		}
		value *= 100
		value = max(value, last)
		highest = max(highest, value)
		if empty > -1 {
			increment := (value - last) / float64(i-empty)
			for j := empty + 1; j < i; j++ {
				last += increment
				final[j] = last / 100
			}
			empty = -1
		}
		last = value
		final[i] = last / 100
	}
	if empty > -1 {
		increment := 0.0
		if highest <= 100 {
			increment = (100 - last) / float64(count-1-empty)
		}
		for j := empty + 1; j < count; j++ {
			last += increment
			final[j] = last / 100
		}
	}
	return final
}
