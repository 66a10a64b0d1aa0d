// Package convert converts the pixels of images between RGB color spaces
// using a prism registry.
package convert

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/kovidgoyal/go-parallel"

	"github.com/kovidgoyal/prism"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

// Transform maps one pixel in place. Channels are in [0, 1].
type Transform func(rgb []float64) error

// NewTransform returns a Transform from the RGB space from to the RGB
// space to. Results are gamut mapped into to with fit, which may be clip
// or any registered fit method, DefaultFit when empty. A nil Transform is
// returned when the spaces are the same.
func NewTransform(reg *prism.Registry, from, to, fit string) (Transform, error) {
	for _, name := range []string{from, to} {
		s, err := reg.Space(name)
		if err != nil {
			return nil, err
		}
		if !types.IsRGB(s) {
			return nil, fmt.Errorf("%w: %s is not an RGB space", prism.ErrValue, name)
		}
	}
	if from == to {
		return nil, nil
	}
	if fit == "" {
		fit = prism.DefaultFit
	}
	reg.Logger().Debug("image transform", "from", from, "to", to, "fit", fit)
	return func(rgb []float64) error {
		c, err := reg.New(from, rgb, 1)
		if err != nil {
			return err
		}
		if err = c.ConvertInPlace(to, prism.GamutMapped(fit)); err != nil {
			return err
		}
		copy(rgb, c.Coords())
		return nil
	}, nil
}

type converter struct {
	transform Transform
	mu        sync.Mutex
	err       error
}

func (c *converter) fail(err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

const max_cache_entries = 1 << 16

// worker holds the scratch space of a single goroutine.
type worker struct {
	*converter
	buf   []float64
	cache map[[3]uint8][3]uint8
}

func (c *converter) worker() *worker {
	return &worker{converter: c, buf: make([]float64, 3), cache: make(map[[3]uint8][3]uint8)}
}

func quantize(v, maxval float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Round(max(0, min(v, 1)) * maxval)
}

func (w *worker) convert8(px []uint8) {
	key := [3]uint8{px[0], px[1], px[2]}
	if ans, found := w.cache[key]; found {
		px[0], px[1], px[2] = ans[0], ans[1], ans[2]
		return
	}
	for i := range 3 {
		w.buf[i] = float64(px[i]) / 0xff
	}
	if err := w.transform(w.buf); err != nil {
		w.fail(err)
		return
	}
	for i := range 3 {
		px[i] = uint8(quantize(w.buf[i], 0xff))
	}
	if len(w.cache) < max_cache_entries {
		w.cache[key] = [3]uint8{px[0], px[1], px[2]}
	}
}

func (w *worker) convert16(px []uint16) {
	for i := range 3 {
		w.buf[i] = float64(px[i]) / 0xffff
	}
	if err := w.transform(w.buf); err != nil {
		w.fail(err)
		return
	}
	for i := range 3 {
		px[i] = uint16(quantize(w.buf[i], 0xffff))
	}
}

func premultiply8(r, a uint8) uint8 {
	return uint8((uint16(r) * uint16(a)) / 0xff)
}

func unpremultiply8(r, a uint8) uint8 {
	return uint8((uint16(r) * 0xff) / uint16(a))
}

func unpremultiply(r, a uint32) uint16 {
	return uint16((r * 0xffff) / a)
}

func premultiply(r, a uint32) uint16 {
	return uint16((r * a) / 0xffff)
}

func read16(s []uint8, px []uint16) {
	px[0] = uint16(s[0])<<8 | uint16(s[1])
	px[1] = uint16(s[2])<<8 | uint16(s[3])
	px[2] = uint16(s[4])<<8 | uint16(s[5])
}

func write16(px []uint16, s []uint8) {
	s[0], s[1] = uint8(px[0]>>8), uint8(px[0])
	s[2], s[3] = uint8(px[1]>>8), uint8(px[1])
	s[4], s[5] = uint8(px[2]>>8), uint8(px[2])
}

// Image converts every pixel of img from the RGB space from to the RGB
// space to, see NewTransform. Images of the standard non-premultiplied and
// premultiplied types are modified in place and returned. Gray images are
// promoted to *RGB or *image.NRGBA64 and other types are copied into an
// *image.NRGBA64. Rows are converted in parallel.
func Image(img image.Image, reg *prism.Registry, from, to, fit string) (image.Image, error) {
	tr, err := NewTransform(reg, from, to, fit)
	if err != nil || tr == nil {
		return img, err
	}
	c := &converter{transform: tr}
	ans, err := convert(img, c)
	if err == nil {
		err = c.err
	}
	return ans, err
}

func convert(image_any image.Image, c *converter) (ans image.Image, err error) {
	b := image_any.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return image_any, nil
	}
	ans = image_any
	var f func(start, limit int)
	switch img := image_any.(type) {
	case *RGB:
		f = func(start, limit int) {
			w := c.worker()
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[3*(width-1)]
				for range width {
					w.convert8(row[0:3:3])
					row = row[3:]
				}
			}
		}
	case *image.NRGBA:
		f = func(start, limit int) {
			w := c.worker()
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[4*(width-1)]
				for range width {
					w.convert8(row[0:3:3])
					row = row[4:]
				}
			}
		}
	case *image.NRGBA64:
		f = func(start, limit int) {
			w := c.worker()
			px := make([]uint16, 3)
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[8*(width-1)]
				for range width {
					s := row[0:8:8]
					read16(s, px)
					w.convert16(px)
					write16(px, s)
					row = row[8:]
				}
			}
		}
	case *image.RGBA:
		f = func(start, limit int) {
			w := c.worker()
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[4*(width-1)]
				for range width {
					r := row[0:3:3]
					if a := row[3]; a != 0 {
						r[0], r[1], r[2] = unpremultiply8(r[0], a), unpremultiply8(r[1], a), unpremultiply8(r[2], a)
						w.convert8(r)
						r[0], r[1], r[2] = premultiply8(r[0], a), premultiply8(r[1], a), premultiply8(r[2], a)
					}
					row = row[4:]
				}
			}
		}
	case *image.RGBA64:
		f = func(start, limit int) {
			w := c.worker()
			px := make([]uint16, 3)
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[8*(width-1)]
				for range width {
					s := row[0:8:8]
					if a := uint32(s[6])<<8 | uint32(s[7]); a != 0 {
						read16(s, px)
						for i, v := range px {
							px[i] = unpremultiply(uint32(v), a)
						}
						w.convert16(px)
						for i, v := range px {
							px[i] = premultiply(uint32(v), a)
						}
						write16(px, s)
					}
					row = row[8:]
				}
			}
		}
	case *image.Paletted:
		w := c.worker()
		px := make([]uint16, 3)
		for i, pc := range img.Palette {
			n := color.NRGBA64Model.Convert(pc).(color.NRGBA64)
			if n.A != 0 {
				px[0], px[1], px[2] = n.R, n.G, n.B
				w.convert16(px)
				img.Palette[i] = color.NRGBA64{R: px[0], G: px[1], B: px[2], A: n.A}
			}
		}
		return
	case *image.Gray:
		d := NewRGB(b)
		ans = d
		f = func(start, limit int) {
			w := c.worker()
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[width-1]
				drow := d.Pix[d.Stride*y:]
				_ = drow[3*(width-1)]
				for _, gray := range row[:width] {
					px := drow[0:3:3]
					px[0], px[1], px[2] = gray, gray, gray
					w.convert8(px)
					drow = drow[3:]
				}
			}
		}
	case *image.Gray16:
		d := image.NewNRGBA64(b)
		ans = d
		f = func(start, limit int) {
			w := c.worker()
			px := make([]uint16, 3)
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[2*(width-1)]
				drow := d.Pix[d.Stride*y:]
				_ = drow[8*(width-1)]
				for range width {
					gray := uint16(row[0])<<8 | uint16(row[1])
					px[0], px[1], px[2] = gray, gray, gray
					w.convert16(px)
					s := drow[0:8:8]
					write16(px, s)
					s[6], s[7] = 0xff, 0xff
					row = row[2:]
					drow = drow[8:]
				}
			}
		}
	default:
		d := image.NewNRGBA64(b)
		ans = d
		f = func(start, limit int) {
			w := c.worker()
			px := make([]uint16, 3)
			for y := start; y < limit; y++ {
				row := d.Pix[d.Stride*y:]
				for x := range width {
					n := color.NRGBA64Model.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.NRGBA64)
					if n.A != 0 {
						px[0], px[1], px[2] = n.R, n.G, n.B
						w.convert16(px)
						s := row[8*x : 8*x+8 : 8*x+8]
						write16(px, s)
						s[6], s[7] = uint8(n.A>>8), uint8(n.A)
					}
				}
			}
		}
	}
	err = parallel.Run_in_parallel_over_range(0, f, 0, height)
	return
}
