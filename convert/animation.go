package convert

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
)

var _ = fmt.Print

// Frame is a full canvas image shown for Delay.
type Frame struct {
	Image image.Image
	Delay time.Duration
}

// Animation is a sequence of frames of identical size.
type Animation struct {
	Frames    []Frame
	LoopCount uint // 0 means loop forever
}

// Swatch draws colors as a horizontal strip of cells of the given size.
func Swatch(colors []color.Color, cell image.Point) *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, cell.X*len(colors), cell.Y))
	for i, c := range colors {
		r := image.Rect(i*cell.X, 0, (i+1)*cell.X, cell.Y)
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

// SwatchAnimation shows each color filling a canvas of the given size in
// turn, forwards then back, so that the loop is seamless.
func SwatchAnimation(colors []color.Color, size image.Point, delay time.Duration) *Animation {
	ans := &Animation{}
	add := func(c color.Color) {
		img := image.NewNRGBA64(image.Rectangle{Max: size})
		draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		ans.Frames = append(ans.Frames, Frame{Image: img, Delay: delay})
	}
	for _, c := range colors {
		add(c)
	}
	for i := len(colors) - 2; i > 0; i-- {
		add(colors[i])
	}
	return ans
}

// as_fraction expresses d in seconds as a fraction with uint16 terms.
func as_fraction(d time.Duration) (num, den uint16) {
	if d <= 0 {
		return 0, 1
	}
	n, q := d.Milliseconds(), int64(1000)
	g := gcd(n, q)
	n, q = n/g, q/g
	if n > math.MaxUint16 {
		q = max(1, int64(math.Round(float64(q)*math.MaxUint16/float64(n))))
		n = math.MaxUint16
	}
	return uint16(n), uint16(q)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return max(a, 1)
}

func (a *Animation) as_apng() apng.APNG {
	ans := apng.APNG{LoopCount: a.LoopCount}
	for _, f := range a.Frames {
		af := apng.Frame{Image: f.Image, DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_SOURCE}
		af.DelayNumerator, af.DelayDenominator = as_fraction(f.Delay)
		ans.Frames = append(ans.Frames, af)
	}
	return ans
}

// EncodeAsPNG writes an animated PNG, or a plain PNG when there is a
// single frame.
func (a *Animation) EncodeAsPNG(w io.Writer) error {
	switch len(a.Frames) {
	case 0:
		return fmt.Errorf("cannot encode an animation with no frames")
	case 1:
		return png.Encode(w, a.Frames[0].Image)
	}
	return apng.Encode(w, a.as_apng())
}
