// Package jpeg adapts the standard library JPEG codec to imglib images.
package jpeg

import (
	"fmt"
	stdjpeg "image/jpeg"
	"io"
	"os"
	"path/filepath"

	"ImgConverter/imglib"
)

// Decode decodes a JPEG image from r.
func Decode(r io.Reader) (imglib.Image, error) {
	img, err := stdjpeg.Decode(r)
	if err != nil {
		return imglib.Image{}, fmt.Errorf("jpeg: decode: %w", err)
	}
	return imglib.FromStd(img), nil
}

// Encode encodes img as JPEG with the library's default quality.
func Encode(w io.Writer, img imglib.Image) error {
	if err := stdjpeg.Encode(w, img.ToStd(), nil); err != nil {
		return fmt.Errorf("jpeg: encode: %w", err)
	}
	return nil
}

// Load loads a JPEG image from the given file path.
func Load(path string) (imglib.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return imglib.Image{}, fmt.Errorf("jpeg: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Save saves img as a JPEG file.
func Save(path string, img imglib.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("jpeg: create file: %w", err)
	}

	if err := Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
