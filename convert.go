package main

import (
	"errors"
	"fmt"
	"log"

	"ImgConverter/format"
)

// ExitCode is the process status for each conversion outcome.
type ExitCode int

const (
	ExitOK ExitCode = iota
	ExitUsage
	ExitUnknownInput
	ExitUnknownOutput
	ExitLoadFailed
	ExitSaveFailed

	// ExitBadConfig is returned when the config file or the layout file it
	// names cannot be read or parsed.
	ExitBadConfig
)

var exitMessages = map[ExitCode]string{
	ExitUnknownInput:  "Unknown format of the input file",
	ExitUnknownOutput: "Unknown format of the output file",
	ExitLoadFailed:    "Loading failed",
	ExitSaveFailed:    "Saving failed",
	ExitBadConfig:     "Invalid configuration",
}

// ConvertError tells apart the ways a conversion can fail.
type ConvertError struct {
	Code ExitCode
	Path string
	Err  error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s: %s: %v", exitMessages[e.Code], e.Path, e.Err)
}

func (e *ConvertError) Unwrap() error { return e.Err }

// exitCode maps the result of Convert to a process status.
func exitCode(err error) ExitCode {
	if err == nil {
		return ExitOK
	}
	var ce *ConvertError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ExitLoadFailed
}

// Converter loads one file and saves it in the format of another.
type Converter struct {
	Resolver format.Resolver

	// Choose, if set, picks the output format when the output extension is
	// unknown. Returning format.Unknown keeps the failure.
	Choose func(path string) (format.Format, error)
}

// Convert reads inPath and writes it to outPath. Both formats are resolved
// before anything is read, so an unknown output format never touches disk.
func (c *Converter) Convert(inPath, outPath string) error {
	inFormat := c.Resolver.Resolve(inPath)
	if inFormat == format.Unknown {
		return &ConvertError{Code: ExitUnknownInput, Path: inPath, Err: format.ErrUnrecognizedFormat}
	}

	outFormat := c.Resolver.Resolve(outPath)
	if outFormat == format.Unknown && c.Choose != nil {
		chosen, err := c.Choose(outPath)
		if err != nil {
			return &ConvertError{Code: ExitUnknownOutput, Path: outPath, Err: err}
		}
		outFormat = chosen
	}
	if outFormat == format.Unknown {
		return &ConvertError{Code: ExitUnknownOutput, Path: outPath, Err: format.ErrUnrecognizedFormat}
	}

	log.Printf("Loading %s as %s...", inPath, inFormat)
	img, err := inFormat.Codec().Load(inPath)
	if err != nil {
		return &ConvertError{Code: ExitLoadFailed, Path: inPath, Err: err}
	}
	log.Printf("Loaded %dx%d image.", img.Width(), img.Height())

	log.Printf("Saving %s as %s...", outPath, outFormat)
	if err := outFormat.Codec().Save(outPath, img); err != nil {
		return &ConvertError{Code: ExitSaveFailed, Path: outPath, Err: err}
	}
	log.Printf("Saved %s.", outPath)
	return nil
}
