package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Fixed sizes and sentinel values of the headers this codec writes.
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	PixelOffset    = FileHeaderSize + InfoHeaderSize

	BitsPerPixel = 24

	// Resolution is 300 DPI expressed in pixels per meter.
	Resolution = 11811

	// SignificantColors is not standard BMP semantics; it is simply the
	// value this codec writes and expects back.
	SignificantColors = 0x1000000

	// MaxDataSize is the largest pixel array a header can describe, since
	// FileSize is a uint32 that also counts the headers.
	MaxDataSize = math.MaxUint32 - PixelOffset
)

// Signature is the magic at the start of every BMP file.
var Signature = [2]byte{'B', 'M'}

// FileHeader is the 14-byte BITMAPFILEHEADER.
type FileHeader struct {
	Signature [2]byte // offset 0: "BM"
	FileSize  uint32  // offset 2: whole file in bytes
	Reserved  uint32  // offset 6: zero
	Offset    uint32  // offset 10: start of the pixel rows
}

// InfoHeader is the 40-byte BITMAPINFOHEADER.
type InfoHeader struct {
	HeaderSize        uint32 // offset 14
	Width             int32  // offset 18
	Height            int32  // offset 22
	Planes            uint16 // offset 26
	BitsPerPixel      uint16 // offset 28
	Compression       uint32 // offset 30
	ImageSize         uint32 // offset 34: stride * height
	XPixelsPerMeter   int32  // offset 38
	YPixelsPerMeter   int32  // offset 42
	ColorsUsed        uint32 // offset 46
	SignificantColors uint32 // offset 50
}

// DataSize returns the length in bytes of the pixel array of a width x height
// image. It reports false when the dimensions cannot be stored in a header.
func DataSize(width, height int) (int64, bool) {
	if width < 0 || height < 0 || width > math.MaxInt32 || height > math.MaxInt32 {
		return 0, false
	}
	stride := 4 * ((int64(width)*bytesPerPixel + 3) / 4)
	if height != 0 && stride > MaxDataSize/int64(height) {
		return 0, false
	}
	return stride * int64(height), true
}

// NewHeaders returns the pair of headers written for a width x height image.
func NewHeaders(width, height int) (FileHeader, InfoHeader, error) {
	size, ok := DataSize(width, height)
	if !ok {
		return FileHeader{}, InfoHeader{}, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	dataSize := uint32(size)
	fh := FileHeader{
		Signature: Signature,
		FileSize:  PixelOffset + dataSize,
		Offset:    PixelOffset,
	}
	ih := InfoHeader{
		HeaderSize:        InfoHeaderSize,
		Width:             int32(width),
		Height:            int32(height),
		Planes:            1,
		BitsPerPixel:      BitsPerPixel,
		ImageSize:         dataSize,
		XPixelsPerMeter:   Resolution,
		YPixelsPerMeter:   Resolution,
		SignificantColors: SignificantColors,
	}
	return fh, ih, nil
}

func (h *FileHeader) Read(r io.Reader) error {
	var b [FileHeaderSize]byte
	if err := readFull(r, b[:]); err != nil {
		return fmt.Errorf("file header: %w", err)
	}
	copy(h.Signature[:], b[0:2])
	h.FileSize = binary.LittleEndian.Uint32(b[2:6])
	h.Reserved = binary.LittleEndian.Uint32(b[6:10])
	h.Offset = binary.LittleEndian.Uint32(b[10:14])
	return nil
}

func (h *FileHeader) Write(w io.Writer) error {
	var b [FileHeaderSize]byte
	copy(b[0:2], h.Signature[:])
	binary.LittleEndian.PutUint32(b[2:6], h.FileSize)
	binary.LittleEndian.PutUint32(b[6:10], h.Reserved)
	binary.LittleEndian.PutUint32(b[10:14], h.Offset)
	_, err := w.Write(b[:])
	return err
}

func (h *InfoHeader) Read(r io.Reader) error {
	var b [InfoHeaderSize]byte
	if err := readFull(r, b[:]); err != nil {
		return fmt.Errorf("info header: %w", err)
	}
	le := binary.LittleEndian
	h.HeaderSize = le.Uint32(b[0:4])
	h.Width = int32(le.Uint32(b[4:8]))
	h.Height = int32(le.Uint32(b[8:12]))
	h.Planes = le.Uint16(b[12:14])
	h.BitsPerPixel = le.Uint16(b[14:16])
	h.Compression = le.Uint32(b[16:20])
	h.ImageSize = le.Uint32(b[20:24])
	h.XPixelsPerMeter = int32(le.Uint32(b[24:28]))
	h.YPixelsPerMeter = int32(le.Uint32(b[28:32]))
	h.ColorsUsed = le.Uint32(b[32:36])
	h.SignificantColors = le.Uint32(b[36:40])
	return nil
}

func (h *InfoHeader) Write(w io.Writer) error {
	var b [InfoHeaderSize]byte
	le := binary.LittleEndian
	le.PutUint32(b[0:4], h.HeaderSize)
	le.PutUint32(b[4:8], uint32(h.Width))
	le.PutUint32(b[8:12], uint32(h.Height))
	le.PutUint16(b[12:14], h.Planes)
	le.PutUint16(b[14:16], h.BitsPerPixel)
	le.PutUint32(b[16:20], h.Compression)
	le.PutUint32(b[20:24], h.ImageSize)
	le.PutUint32(b[24:28], uint32(h.XPixelsPerMeter))
	le.PutUint32(b[28:32], uint32(h.YPixelsPerMeter))
	le.PutUint32(b[32:36], h.ColorsUsed)
	le.PutUint32(b[36:40], h.SignificantColors)
	_, err := w.Write(b[:])
	return err
}

// Validate checks every field this codec insists on. Reserved, FileSize and
// ImageSize are written but not checked on read. The dimensions must describe
// a pixel array of at most MaxDataSize bytes.
func Validate(fh *FileHeader, ih *InfoHeader) error {
	switch {
	case fh.Signature != Signature:
		return fmt.Errorf("%w: signature %q", ErrMalformedHeader, fh.Signature[:])
	case fh.Offset != PixelOffset:
		return fmt.Errorf("%w: pixel offset %d, want %d", ErrMalformedHeader, fh.Offset, PixelOffset)
	case ih.HeaderSize != InfoHeaderSize:
		return fmt.Errorf("%w: info header size %d, want %d", ErrMalformedHeader, ih.HeaderSize, InfoHeaderSize)
	case ih.Width < 0 || ih.Height < 0:
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrMalformedHeader, ih.Width, ih.Height)
	case !fitsHeader(ih):
		return fmt.Errorf("%w: %dx%d pixel array exceeds %d bytes", ErrMalformedHeader, ih.Width, ih.Height, int64(MaxDataSize))
	case ih.Planes != 1:
		return fmt.Errorf("%w: planes %d, want 1", ErrMalformedHeader, ih.Planes)
	case ih.BitsPerPixel != BitsPerPixel:
		return fmt.Errorf("%w: %d bits per pixel, want %d", ErrMalformedHeader, ih.BitsPerPixel, BitsPerPixel)
	case ih.Compression != 0:
		return fmt.Errorf("%w: compression %d, want 0", ErrMalformedHeader, ih.Compression)
	case ih.XPixelsPerMeter != Resolution || ih.YPixelsPerMeter != Resolution:
		return fmt.Errorf("%w: resolution %dx%d, want %d", ErrMalformedHeader, ih.XPixelsPerMeter, ih.YPixelsPerMeter, Resolution)
	case ih.ColorsUsed != 0:
		return fmt.Errorf("%w: colors used %d, want 0", ErrMalformedHeader, ih.ColorsUsed)
	case ih.SignificantColors != SignificantColors:
		return fmt.Errorf("%w: significant colors %#x, want %#x", ErrMalformedHeader, ih.SignificantColors, SignificantColors)
	}
	return nil
}

func fitsHeader(ih *InfoHeader) bool {
	_, ok := DataSize(int(ih.Width), int(ih.Height))
	return ok
}

// readFull is io.ReadFull with short reads reported as ErrTruncatedStream.
func readFull(r io.Reader, b []byte) error {
	n, err := io.ReadFull(r, b)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: read %d of %d bytes", ErrTruncatedStream, n, len(b))
	}
	return err
}
