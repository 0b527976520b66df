// Package imageio decodes, resizes and encodes the raster images fed to a
// recolor job.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"
	"image/png"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrInvalidWidth is returned when a resize target width is not positive.
var ErrInvalidWidth = errors.New("imageio: width must be positive")

// Decode reads a BMP, GIF, JPEG, PNG, TIFF or WEBP image.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return img, format, nil
}

// Open decodes the image file at path.
func Open(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// ResizeToWidth scales img to width pixels keeping its aspect ratio.
// The height is floor(width*h/w) but at least 1.
func ResizeToWidth(img image.Image, width int) (*image.RGBA, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	b := img.Bounds()
	if b.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	height := max(width*b.Dy()/b.Dx(), 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), Opaque(img), b, draw.Src, nil)
	return dst, nil
}

// Opaque returns a copy of img with every alpha set to 0xff. Straight RGB is
// kept, so a fully transparent pixel keeps its stored colour instead of
// collapsing to black when premultiplied.
func Opaque(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := stdcolor.NRGBAModel.Convert(img.At(x, y)).(stdcolor.NRGBA)
			c.A = 0xff
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path as PNG, replacing any existing file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := png.Encode(bw, img); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
