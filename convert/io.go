package convert

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var _ = fmt.Print

// SpaceFromExif guesses the RGB space of an image from its EXIF data.
// Adobe RGB files carry the interoperability index R03, everything else
// is assumed to be sRGB.
func SpaceFromExif(x *exif.Exif) string {
	if x == nil {
		return "srgb"
	}
	if tag, err := x.Get(exif.InteroperabilityIndex); err == nil && tag != nil && tag.Format() == exif_tiff.StringVal {
		if idx, err := tag.StringVal(); err == nil && strings.TrimRight(idx, "\x00 ") == "R03" {
			return "a98-rgb"
		}
	}
	return "srgb"
}

// Decode reads an image and the name of the RGB space its samples are in,
// detected from EXIF data when present.
func Decode(r io.Reader) (img image.Image, space string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	if img, _, err = image.Decode(bytes.NewReader(data)); err != nil {
		return nil, "", err
	}
	space = "srgb"
	if x, xerr := exif.Decode(bytes.NewReader(data)); xerr == nil {
		space = SpaceFromExif(x)
	}
	return img, space, nil
}

func Open(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return Decode(f)
}

// Save writes img to path as PNG.
func Save(img image.Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
