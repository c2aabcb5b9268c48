// Package ppm adapts the gopnm codec to imglib images.
package ppm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	pnm "github.com/jbuchbinder/gopnm"

	"ImgConverter/imglib"
)

// Decode decodes a PPM image from r.
func Decode(r io.Reader) (imglib.Image, error) {
	img, err := pnm.Decode(r)
	if err != nil {
		return imglib.Image{}, fmt.Errorf("ppm: decode: %w", err)
	}
	return imglib.FromStd(img), nil
}

// Encode writes img as a binary PPM.
func Encode(w io.Writer, img imglib.Image) error {
	if err := pnm.Encode(w, img.ToStd(), pnm.PPM); err != nil {
		return fmt.Errorf("ppm: encode: %w", err)
	}
	return nil
}

// Load loads a PPM image from the given file path.
func Load(path string) (imglib.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return imglib.Image{}, fmt.Errorf("ppm: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Save saves img as a PPM file.
func Save(path string, img imglib.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("ppm: create file: %w", err)
	}

	if err := Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
