package fractal

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// RenderImage converts a finished fractal to an image, mapping each
// iteration count through colorFn. Row 0 of the fractal is the bottom
// edge, so rows are flipped while filling the image.
func RenderImage(frac *Fractal, colorFn func(uint32) Color) *image.NRGBA {
	width, height := frac.Dom.Columns, frac.Dom.Rows
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < height; i++ {
		y := height - 1 - i
		for j := 0; j < width; j++ {
			clr := colorFn(frac.Values[i*width+j])
			p := img.PixOffset(j, y)
			img.Pix[p+0] = clr.R
			img.Pix[p+1] = clr.G
			img.Pix[p+2] = clr.B
			img.Pix[p+3] = 255
		}
	}
	return img
}

// WriteImage encodes the fractal as "png" or "bmp" (24-bit).
func WriteImage(w io.Writer, frac *Fractal, colorFn func(uint32) Color, format string) error {
	img := RenderImage(frac, colorFn)
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp", "":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// SaveImage writes the image to path, choosing the format by extension:
// .png writes PNG, anything else BMP. Path "-" writes BMP to stdout.
func SaveImage(path string, frac *Fractal, colorFn func(uint32) Color) error {
	if path == "-" {
		return WriteImage(os.Stdout, frac, colorFn, "bmp")
	}
	format := "bmp"
	if strings.EqualFold(filepath.Ext(path), ".png") {
		format = "png"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteImage(f, frac, colorFn, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
