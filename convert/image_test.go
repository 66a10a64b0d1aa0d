package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/kettek/apng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/prism"
)

var _ = fmt.Print

func abs_diff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func expected_pixel(t *testing.T, reg *prism.Registry, from, to string, c color.NRGBA) color.NRGBA {
	t.Helper()
	pc, err := reg.New(from, []float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}, 1)
	require.NoError(t, err)
	require.NoError(t, pc.ConvertInPlace(to, prism.GamutMapped("")))
	coords := pc.Coords()
	q := func(v float64) uint8 { return uint8(quantize(v, 0xff)) }
	return color.NRGBA{R: q(coords[0]), G: q(coords[1]), B: q(coords[2]), A: c.A}
}

func TestNewTransform(t *testing.T) {
	reg := prism.DefaultRegistry()
	tr, err := NewTransform(reg, "srgb", "srgb", "")
	require.NoError(t, err)
	require.Nil(t, tr)
	_, err = NewTransform(reg, "srgb", "lab", "")
	require.ErrorIs(t, err, prism.ErrValue)
	_, err = NewTransform(reg, "nonexistent", "srgb", "")
	require.ErrorIs(t, err, prism.ErrLookup)
	tr, err = NewTransform(reg, "display-p3", "srgb", "clip")
	require.NoError(t, err)
	px := []float64{1, 0, 0}
	require.NoError(t, tr(px))
	assert.InDelta(t, 1, px[0], 1e-9)
	assert.InDelta(t, 0, px[1], 1e-9)
	assert.InDelta(t, 0, px[2], 1e-9)
}

func TestImageMatchesColorConversion(t *testing.T) {
	reg := prism.DefaultRegistry()
	img := image.NewNRGBA(image.Rect(3, 5, 23, 15))
	b := img.Bounds()
	orig := map[image.Point]color.NRGBA{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA{R: uint8(x * 11), G: uint8(y * 17), B: uint8(x * y), A: uint8(128 + x)}
			img.SetNRGBA(x, y, c)
			orig[image.Point{x, y}] = c
		}
	}
	for _, tc := range []struct{ from, to string }{{"srgb", "display-p3"}, {"display-p3", "srgb"}, {"srgb", "rec2020"}} {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			work := image.NewNRGBA(b)
			copy(work.Pix, img.Pix)
			ans, err := Image(work, reg, tc.from, tc.to, "")
			require.NoError(t, err)
			require.Same(t, work, ans)
			for p, c := range orig {
				expected := expected_pixel(t, reg, tc.from, tc.to, c)
				actual := work.NRGBAAt(p.X, p.Y)
				for i, pair := range [][2]uint8{{expected.R, actual.R}, {expected.G, actual.G}, {expected.B, actual.B}} {
					require.LessOrEqual(t, abs_diff(pair[0], pair[1]), uint8(1), "channel %d of pixel %v: %v != %v", i, p, expected, actual)
				}
				require.Equal(t, c.A, actual.A)
			}
		})
	}
}

func TestGrayIsPromoted(t *testing.T) {
	reg := prism.DefaultRegistry()
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 30)
	}
	ans, err := Image(img, reg, "srgb", "display-p3", "")
	require.NoError(t, err)
	rgb, ok := ans.(*RGB)
	require.True(t, ok, "gray images must be promoted to RGB, got %T", ans)
	for i, g := range img.Pix {
		px := rgb.Pix[3*i : 3*i+3]
		for _, v := range px {
			// display-p3 shares the white point and transfer curve of sRGB
			assert.LessOrEqual(t, abs_diff(g, v), uint8(1))
		}
	}

	g16 := image.NewGray16(image.Rect(0, 0, 2, 2))
	g16.SetGray16(1, 1, color.Gray16{Y: 0x8000})
	ans, err = Image(g16, reg, "srgb", "display-p3", "")
	require.NoError(t, err)
	n, ok := ans.(*image.NRGBA64)
	require.True(t, ok)
	c := n.NRGBA64At(1, 1)
	assert.Equal(t, uint16(0xffff), c.A)
	assert.InDelta(t, 0x8000, int(c.R), 2)
}

func TestPremultipliedTransparentPixelsUntouched(t *testing.T) {
	reg := prism.DefaultRegistry()
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0, G: 0, B: 0, A: 0})
	img.SetRGBA(1, 0, color.RGBA{R: 100, G: 50, B: 25, A: 200})
	_, err := Image(img, reg, "display-p3", "srgb", "clip")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
	c := img.RGBAAt(1, 0)
	assert.Equal(t, uint8(200), c.A)
	assert.LessOrEqual(t, c.R, c.A)
}

func TestSpaceFromExif(t *testing.T) {
	assert.Equal(t, "srgb", SpaceFromExif(nil))
}

func TestAsFraction(t *testing.T) {
	for _, tc := range []struct {
		d        time.Duration
		num, den uint16
	}{
		{0, 0, 1},
		{100 * time.Millisecond, 1, 10},
		{1500 * time.Millisecond, 3, 2},
		{40 * time.Millisecond, 1, 25},
	} {
		num, den := as_fraction(tc.d)
		assert.Equal(t, [2]uint16{tc.num, tc.den}, [2]uint16{num, den}, "%s", tc.d)
	}
}

func TestSwatch(t *testing.T) {
	colors := []color.Color{color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 0, 255, 255}}
	img := Swatch(colors, image.Pt(4, 3))
	require.Equal(t, image.Rect(0, 0, 8, 3), img.Bounds())
	assert.Equal(t, color.NRGBA64{R: 0xffff, A: 0xffff}, img.NRGBA64At(3, 2))
	assert.Equal(t, color.NRGBA64{B: 0xffff, A: 0xffff}, img.NRGBA64At(4, 0))
}

func TestSwatchAnimation(t *testing.T) {
	colors := []color.Color{color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 255, 0, 255}, color.NRGBA{0, 0, 255, 255}}
	a := SwatchAnimation(colors, image.Pt(2, 2), 50*time.Millisecond)
	require.Len(t, a.Frames, 4)
	var buf bytes.Buffer
	require.NoError(t, a.EncodeAsPNG(&buf))
	decoded, err := apng.DecodeAll(&buf)
	require.NoError(t, err)
	count := 0
	for _, f := range decoded.Frames {
		if !f.IsDefault {
			count++
		}
	}
	require.Equal(t, len(a.Frames), count)
	require.Error(t, (&Animation{}).EncodeAsPNG(&buf))
}
