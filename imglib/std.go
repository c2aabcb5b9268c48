package imglib

import (
	"image"
)

// FromStd copies a standard library image into an Image.
// Alpha is dropped; every sample comes back opaque.
func FromStd(src image.Image) Image {
	bounds := src.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy(), Black())

	// Fast path for RGBA images
	if rgba, ok := src.(*image.RGBA); ok {
		for y := range img.height {
			row := rgba.Pix[y*rgba.Stride:]
			line := img.Line(y)
			for x := range line {
				line[x] = Color{R: row[x*4], G: row[x*4+1], B: row[x*4+2], A: 255}
			}
		}
		return img
	}

	for y := range img.height {
		line := img.Line(y)
		for x := range line {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA() returns 16-bit values
			line[x] = Color{R: byte(r >> 8), G: byte(g >> 8), B: byte(b >> 8), A: 255}
		}
	}
	return img
}

// ToStd converts the image to an opaque *image.RGBA.
func (img Image) ToStd() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.width, img.height))
	for y := range img.height {
		row := rgba.Pix[y*rgba.Stride:]
		for x, c := range img.Line(y) {
			row[x*4] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = 255
		}
	}
	return rgba
}
