// Package format maps file extensions to image codecs.
//
// Format is a closed set: BMP, JPEG, PPM and Unknown. Every known format has
// a codec behind the single Interface, so a conversion is just
// in.Codec().Load followed by out.Codec().Save.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"ImgConverter/bmp"
	"ImgConverter/imglib"
	"ImgConverter/jpeg"
	"ImgConverter/ppm"
)

// ErrUnrecognizedFormat is returned by Lookup for an extension outside the known set.
var ErrUnrecognizedFormat = errors.New("format: unrecognized format")

// Interface is the capability every codec provides.
type Interface interface {
	// Load reads the image at path. On failure it returns the empty image.
	Load(path string) (imglib.Image, error)

	// Save writes img to path.
	Save(path string, img imglib.Image) error
}

type Format int

const (
	Unknown Format = iota
	BMP
	JPEG
	PPM
)

var names = [...]string{
	Unknown: "unknown",
	BMP:     "BMP",
	JPEG:    "JPEG",
	PPM:     "PPM",
}

func (f Format) String() string {
	if f < Unknown || int(f) >= len(names) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return names[f]
}

// Extension returns the canonical file extension of f, or "" for Unknown.
func (f Format) Extension() string {
	switch f {
	case BMP:
		return ".bmp"
	case JPEG:
		return ".jpg"
	case PPM:
		return ".ppm"
	}
	return ""
}

type bmpFormat struct{}

func (bmpFormat) Load(path string) (imglib.Image, error)   { return bmp.Load(path) }
func (bmpFormat) Save(path string, img imglib.Image) error { return bmp.Save(path, img) }

type jpegFormat struct{}

func (jpegFormat) Load(path string) (imglib.Image, error)   { return jpeg.Load(path) }
func (jpegFormat) Save(path string, img imglib.Image) error { return jpeg.Save(path, img) }

type ppmFormat struct{}

func (ppmFormat) Load(path string) (imglib.Image, error)   { return ppm.Load(path) }
func (ppmFormat) Save(path string, img imglib.Image) error { return ppm.Save(path, img) }

// Codec returns the codec for f, or nil for Unknown.
func (f Format) Codec() Interface {
	switch f {
	case BMP:
		return bmpFormat{}
	case JPEG:
		return jpegFormat{}
	case PPM:
		return ppmFormat{}
	}
	return nil
}

// Known lists every format that has a codec.
func Known() []Format {
	return []Format{BMP, JPEG, PPM}
}

var byExtension = map[string]Format{
	".bmp":  BMP,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".ppm":  PPM,
}

// Ext returns the extension of the last path element, dot included.
// A leading dot alone (".bmp" as a whole file name) is not an extension.
func Ext(path string) string {
	base := filepath.Base(path)
	if strings.LastIndexByte(base, '.') <= 0 {
		return ""
	}
	return filepath.Ext(base)
}

// Resolver maps paths to formats.
type Resolver struct {
	// FoldCase makes ".BMP" resolve like ".bmp".
	FoldCase bool
}

// Resolve returns the format for path, or Unknown.
func (r Resolver) Resolve(path string) Format {
	ext := Ext(path)
	if r.FoldCase {
		ext = strings.ToLower(ext)
	}
	if f, ok := byExtension[ext]; ok {
		return f
	}
	return Unknown
}

// Lookup resolves path and returns its codec, or ErrUnrecognizedFormat.
func (r Resolver) Lookup(path string) (Format, Interface, error) {
	f := r.Resolve(path)
	if f == Unknown {
		return Unknown, nil, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, Ext(path))
	}
	return f, f.Codec(), nil
}

// ByExtension resolves path with case-sensitive matching.
func ByExtension(path string) Format {
	return Resolver{}.Resolve(path)
}

// Lookup resolves path with case-sensitive matching.
func Lookup(path string) (Format, Interface, error) {
	return Resolver{}.Lookup(path)
}
