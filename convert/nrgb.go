package convert

import (
	"fmt"
	"image"
	"image/color"
)

var _ = fmt.Print

// RGBColor is an opaque 8-bit color.
type RGBColor struct {
	R, G, B uint8
}

func (c RGBColor) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGBColor) RGBA() (r, g, b, a uint32) {
	r, g, b = uint32(c.R), uint32(c.G), uint32(c.B)
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

func rgb_model(c color.Color) color.Color {
	if _, ok := c.(RGBColor); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBColor{n.R, n.G, n.B}
}

var RGBModel color.Model = color.ModelFunc(rgb_model)

// RGB is an opaque in-memory image with three bytes per pixel. Gray
// images are promoted to it so that conversion can give them color.
type RGB struct {
	// Pix holds the pixels in R, G, B order. The pixel at (x, y) starts at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

func NewRGB(r image.Rectangle) *RGB {
	return &RGB{Pix: make([]uint8, 3*r.Dx()*r.Dy()), Stride: 3 * r.Dx(), Rect: r}
}

func (p *RGB) ColorModel() color.Model { return RGBModel }

func (p *RGB) Bounds() image.Rectangle { return p.Rect }

func (p *RGB) Opaque() bool { return true }

func (p *RGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGB) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return RGBColor{}
	}
	s := p.Pix[p.PixOffset(x, y):]
	return RGBColor{s[0], s[1], s[2]}
}

func (p *RGB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	q := RGBModel.Convert(c).(RGBColor)
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = q.R, q.G, q.B
}
