// Package bmp reads and writes 24-bit uncompressed bottom-up bitmaps.
//
// The reader only accepts files laid out exactly the way the writer lays
// them out: fixed resolution, color table fields and pixel offset included.
// Standard BMP files from other tools are rejected with ErrMalformedHeader.
package bmp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ImgConverter/imglib"
)

const bytesPerPixel = 3

// Stride returns the length in bytes of one stored row, padding included.
func Stride(width int) int {
	return 4 * ((width*bytesPerPixel + 3) / 4)
}

// Encode writes img to w in BMP layout.
func Encode(w io.Writer, img imglib.Image) error {
	width, height := img.Width(), img.Height()
	fh, ih, err := NewHeaders(width, height)
	if err != nil {
		return err
	}

	// Create a buffer (to reduce syscalls)
	bw := bufio.NewWriter(w)

	if err := fh.Write(bw); err != nil {
		return fmt.Errorf("bmp: write file header: %w", err)
	}
	if err := ih.Write(bw); err != nil {
		return fmt.Errorf("bmp: write info header: %w", err)
	}

	// Rows go bottom-up; the padding tail of row stays zero.
	var row []byte
	if height > 0 {
		row = make([]byte, Stride(width))
	}
	for y := height - 1; y >= 0; y-- {
		for x, c := range img.Line(y) {
			row[x*3+0] = c.B
			row[x*3+1] = c.G
			row[x*3+2] = c.R
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("bmp: write row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("bmp: flush: %w", err)
	}
	return nil
}

// Decode reads a BMP produced by Encode. On failure the returned image is
// empty and the error wraps ErrMalformedHeader, ErrTruncatedStream or the
// underlying read error.
func Decode(r io.Reader) (imglib.Image, error) {
	br := bufio.NewReader(r)

	_, ih, err := readHeaders(br)
	if err != nil {
		return imglib.Image{}, err
	}

	// Pixel data is read in full before the image is allocated.
	// The stored ImageSize is never trusted; stride comes from the width.
	width, height := int(ih.Width), int(ih.Height)
	size, _ := DataSize(width, height)
	data, err := io.ReadAll(io.LimitReader(br, size))
	if err != nil {
		return imglib.Image{}, fmt.Errorf("bmp: pixel data: %w", err)
	}
	if int64(len(data)) < size {
		return imglib.Image{}, fmt.Errorf("%w: pixel data has %d of %d bytes", ErrTruncatedStream, len(data), size)
	}

	img := imglib.NewImage(width, height, imglib.Black())
	if width == 0 || height == 0 {
		return img, nil
	}
	stride := int(size / int64(height))
	for y := 0; y < height; y++ {
		row := data[(height-1-y)*stride:]
		line := img.Line(y)
		for x := range line {
			line[x].B = row[x*3+0]
			line[x].G = row[x*3+1]
			line[x].R = row[x*3+2]
		}
	}

	return img, nil
}

func readHeaders(r io.Reader) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader
	if err := fh.Read(r); err != nil {
		return fh, ih, fmt.Errorf("bmp: %w", err)
	}
	if err := ih.Read(r); err != nil {
		return fh, ih, fmt.Errorf("bmp: %w", err)
	}
	if err := Validate(&fh, &ih); err != nil {
		return fh, ih, err
	}
	return fh, ih, nil
}

// Save writes img to path. A failed save may leave a partial file behind.
func Save(path string, img imglib.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("bmp: create file: %w", err)
	}

	if err := Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("bmp: close file: %w", err)
	}
	return nil
}

// Load reads the BMP at path. It returns the empty image on any failure.
func Load(path string) (imglib.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return imglib.Image{}, fmt.Errorf("bmp: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Catch a short file before allocating the pixel buffer it claims to hold.
	if err := checkLength(f); err != nil {
		return imglib.Image{}, err
	}

	return Decode(f)
}

// checkLength peeks at the headers of f and compares the declared pixel
// data against the real file size, then rewinds f.
func checkLength(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("bmp: stat file: %w", err)
	}
	_, ih, err := readHeaders(f)
	if err != nil {
		return err
	}
	size, _ := DataSize(int(ih.Width), int(ih.Height))
	need := int64(PixelOffset) + size
	if info.Size() < need {
		return fmt.Errorf("%w: file has %d bytes, header needs %d", ErrTruncatedStream, info.Size(), need)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("bmp: rewind: %w", err)
	}
	return nil
}
