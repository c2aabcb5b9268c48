package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ImgConverter/bmp"
	"ImgConverter/layout"
)

type headerSummary struct {
	Width        int32  `layout:"Width"`
	Height       int32  `layout:"Height"`
	BitsPerPixel uint16 `layout:"BitsPerPixel"`
}

// Inspect prints every header field of the file at path with the outcome of
// its rule, then whether the bmp codec accepts the file. It reports true
// when both the enforced rules and the codec accept it.
func Inspect(w io.Writer, path string, ff *layout.FileFormat) (bool, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return false, fmt.Errorf("inspect: %w", err)
	}

	fmt.Fprintf(w, "File: %s (%d bytes)\n", path, len(data))
	fmt.Fprintf(w, "Layout: %s\n\n", ff.Name)

	if len(data) < ff.Size() {
		fmt.Fprintf(w, "Header: truncated, %d of %d bytes\n", len(data), ff.Size())
		return false, nil
	}

	rec, err := ff.Decode(data)
	if err != nil {
		return false, fmt.Errorf("inspect: %w", err)
	}
	results := ff.Check(rec)

	for _, res := range results {
		fmt.Fprintf(w, "%4d  %-18s %-12s %s\n", res.Field.Offset, res.Field.Name, formatValue(res.Value), status(res))
	}

	var summary headerSummary
	if err := rec.Decode(&summary); err == nil {
		size, ok := bmp.DataSize(int(summary.Width), int(summary.Height))
		if ok {
			need := int64(ff.Size()) + size
			fmt.Fprintf(w, "\nStride: %d bytes, pixel data: %d bytes, file needs %d bytes\n", bmp.Stride(int(summary.Width)), size, need)
		} else {
			fmt.Fprintf(w, "\nDimensions: %dx%d cannot be stored in a bitmap\n", summary.Width, summary.Height)
		}
	}

	rulesOK := layout.Valid(results)
	fmt.Fprintf(w, "\nRules: %s\n", verdict(rulesOK))

	_, codecErr := bmp.Load(path)
	if codecErr != nil {
		fmt.Fprintf(w, "Codec: rejected: %v\n", codecErr)
	} else {
		fmt.Fprintln(w, "Codec: accepted")
	}

	return rulesOK && codecErr == nil, nil
}

func formatValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

func status(res layout.Result) string {
	switch {
	case res.Field.Require == "":
		return ""
	case res.Err != nil:
		return fmt.Sprintf("FAIL (%s: %v)", res.Field.Require, res.Err)
	case res.Passed:
		return "ok"
	case res.Advisory:
		return fmt.Sprintf("warn (%s)", res.Field.Require)
	}
	return fmt.Sprintf("FAIL (%s)", res.Field.Require)
}

func verdict(ok bool) string {
	if ok {
		return "all enforced rules hold"
	}
	return "violated"
}
