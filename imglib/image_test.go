package imglib

import (
	"image"
	"image/color"
	"testing"
)

func TestNewImage(t *testing.T) {
	img := NewImage(3, 2, Black())
	if img.Width() != 3 || img.Height() != 2 {
		t.Fatalf("Dimensions = (%d, %d), want (3, 2)", img.Width(), img.Height())
	}
	if img.IsEmpty() {
		t.Error("IsEmpty() = true for 3x2 image")
	}
	for y := range img.Height() {
		if got := len(img.Line(y)); got != 3 {
			t.Errorf("len(Line(%d)) = %d, want 3", y, got)
		}
		for x, c := range img.Line(y) {
			if c != Black() {
				t.Errorf("pixel (%d, %d) = %v, want black", x, y, c)
			}
		}
	}
}

func TestEmptySentinel(t *testing.T) {
	var img Image
	if !img.IsEmpty() {
		t.Error("zero Image is not empty")
	}
	if NewImage(0, 4, Black()).IsEmpty() {
		t.Error("0x4 image reported empty")
	}
	neg := NewImage(-1, -5, Black())
	if !neg.IsEmpty() {
		t.Errorf("NewImage(-1, -5) = %dx%d, want empty", neg.Width(), neg.Height())
	}
}

func TestLineAliasesPixels(t *testing.T) {
	img := NewImage(2, 2, Black())
	img.Line(1)[0] = Color{R: 10, G: 20, B: 30, A: 255}

	if got := img.At(0, 1); got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("At(0, 1) = %v, want {10 20 30}", got)
	}
}

func TestSetAtBounds(t *testing.T) {
	img := NewImage(2, 2, Black())
	img.Set(5, 5, Color{R: 1})
	img.Set(-1, 0, Color{R: 1})
	if got := img.At(5, 5); got != (Color{}) {
		t.Errorf("At(5, 5) = %v, want zero color", got)
	}
	img.Set(1, 0, Color{R: 9, A: 255})
	if got := img.At(1, 0); got.R != 9 {
		t.Errorf("At(1, 0).R = %d, want 9", got.R)
	}
}

func TestStdRoundTrip(t *testing.T) {
	img := NewImage(4, 3, Black())
	for y := range img.Height() {
		for x := range img.Width() {
			img.Set(x, y, Color{R: byte(x * 40), G: byte(y * 70), B: byte(x + y), A: 0})
		}
	}

	std := img.ToStd()
	if std.Bounds().Dx() != 4 || std.Bounds().Dy() != 3 {
		t.Fatalf("ToStd() bounds = %v, want 4x3", std.Bounds())
	}
	// Alpha is ignored, the std image must be opaque.
	if a := std.RGBAAt(0, 0).A; a != 255 {
		t.Errorf("ToStd() alpha = %d, want 255", a)
	}

	back := FromStd(std)
	for y := range img.Height() {
		for x := range img.Width() {
			want, got := img.At(x, y), back.At(x, y)
			if want.R != got.R || want.G != got.G || want.B != got.B {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFromStd_Generic(t *testing.T) {
	gray := image.NewGray(image.Rect(2, 2, 5, 4))
	gray.SetGray(3, 3, color.Gray{Y: 128})

	img := FromStd(gray)
	if img.Width() != 3 || img.Height() != 2 {
		t.Fatalf("Dimensions = (%d, %d), want (3, 2)", img.Width(), img.Height())
	}
	if got := img.At(1, 1); got != (Color{R: 128, G: 128, B: 128, A: 255}) {
		t.Errorf("At(1, 1) = %v, want gray 128", got)
	}
}
