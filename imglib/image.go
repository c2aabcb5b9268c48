// Package imglib holds the in-memory pixel buffer shared by all codecs.
package imglib

// Color is one RGB sample. A is carried along but codecs are free to ignore it.
type Color struct {
	R, G, B, A byte
}

// Black returns opaque black, the fill of a freshly decoded image.
func Black() Color {
	return Color{A: 255}
}

// Image is a row-major grid of Width*Height colors.
// The zero value is the empty image returned when a load fails.
type Image struct {
	width  int
	height int
	pixels []Color
}

// NewImage creates a width x height image filled with fill.
// Negative dimensions are treated as zero.
func NewImage(width, height int, fill Color) Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	pixels := make([]Color, width*height)
	for i := range pixels {
		pixels[i] = fill
	}
	return Image{width: width, height: height, pixels: pixels}
}

func (img Image) Width() int  { return img.width }
func (img Image) Height() int { return img.height }

// IsEmpty reports whether the image is the empty sentinel.
func (img Image) IsEmpty() bool {
	return img.width == 0 && img.height == 0
}

// Line returns row y. The slice aliases the image, so writes go through.
func (img Image) Line(y int) []Color {
	start := y * img.width
	return img.pixels[start : start+img.width : start+img.width]
}

// At returns the color at (x, y), or the zero Color when out of bounds.
func (img Image) At(x, y int) Color {
	if !img.inBounds(x, y) {
		return Color{}
	}
	return img.pixels[y*img.width+x]
}

// Set stores c at (x, y). Out of bounds writes are dropped.
func (img Image) Set(x, y int, c Color) {
	if !img.inBounds(x, y) {
		return
	}
	img.pixels[y*img.width+x] = c
}

func (img Image) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.width && y < img.height
}
