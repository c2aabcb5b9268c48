package bmp

import "errors"

var (
	// ErrMalformedHeader is returned when a header field does not hold the
	// value this codec writes. The file is either not a BMP or was not
	// produced by this codec.
	ErrMalformedHeader = errors.New("bmp: malformed header")

	// ErrTruncatedStream is returned when the input ends inside a header or
	// inside the pixel rows.
	ErrTruncatedStream = errors.New("bmp: truncated stream")

	// ErrTooLarge is returned by Encode for images whose pixel array does not
	// fit the 32-bit size fields of the headers.
	ErrTooLarge = errors.New("bmp: image too large")
)
