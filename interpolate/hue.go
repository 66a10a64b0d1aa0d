package interpolate

import (
	"fmt"
	"math"
)

// HuePolicy decides which way around the hue circle consecutive hues are
// interpolated.
type HuePolicy string

const (
	Shorter    HuePolicy = "shorter"
	Longer     HuePolicy = "longer"
	Increasing HuePolicy = "increasing"
	Decreasing HuePolicy = "decreasing"
	Specified  HuePolicy = "specified"
)

// adjuster returns h2 moved by a multiple of 360 relative to h1
type adjuster func(h1, h2 float64) float64

func adjust_shorter(h1, h2 float64) float64 {
	switch d := h2 - h1; {
	case d > 180:
		h2 -= 360
	case d < -180:
		h2 += 360
	}
	return h2
}

func adjust_longer(h1, h2 float64) float64 {
	switch d := h2 - h1; {
	case 0 < d && d < 180:
		h2 -= 360
	case -180 < d && d <= 0:
		h2 += 360
	}
	return h2
}

func adjust_increasing(h1, h2 float64) float64 {
	if h2 < h1 {
		h2 += 360
	}
	return h2
}

func adjust_decreasing(h1, h2 float64) float64 {
	if h2 > h1 {
		h2 -= 360
	}
	return h2
}

func (p HuePolicy) adjuster() (adjuster, error) {
	switch p {
	case Shorter, "":
		return adjust_shorter, nil
	case Longer:
		return adjust_longer, nil
	case Increasing:
		return adjust_increasing, nil
	case Decreasing:
		return adjust_decreasing, nil
	case Specified:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown hue policy: %#v", string(p))
}

func (p HuePolicy) Validate() error {
	_, err := p.adjuster()
	return err
}

// UnwrapHues rewrites the hue channel at index idx of every coordinate set
// so that linear interpolation between consecutive sets follows the
// policy. Each hue is adjusted relative to the previous defined hue and
// the adjustments accumulate, so long sequences can wind around the
// circle more than once. Undefined hues are skipped.
func UnwrapHues(coords [][]float64, idx int, policy HuePolicy) error {
	adjust, err := policy.adjuster()
	if err != nil || adjust == nil || idx < 0 {
		return err
	}
	var last_raw, last_adjusted float64
	have_last := false
	for _, c := range coords {
		h := c[idx]
		if math.IsNaN(h) {
			continue
		}
		h = math.Mod(h, 360)
		if h < 0 {
			h += 360
		}
		if !have_last {
			c[idx] = h
			last_raw, last_adjusted, have_last = h, h, true
			continue
		}
		adjusted := adjust(last_raw, h) - last_raw + last_adjusted
		c[idx] = adjusted
		last_raw, last_adjusted = h, adjusted
	}
	return nil
}
