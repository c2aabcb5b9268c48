package layout

import (
	"fmt"

	"github.com/knetic/govaluate"
)

// GetExpressionFunctions defines functions usable in Require expressions.
func GetExpressionFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		// Stride(width): bytes per stored 24-bit row, padded to 4.
		"Stride": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("Stride expects 1 argument (width)")
			}
			width, ok := args[0].(float64)
			if !ok {
				return nil, fmt.Errorf("arg 1 (width) must be numeric for Stride")
			}
			return float64(paddedRow(int(width), 3)), nil
		},

		// PaddedSize(width, height, bitsPerPixel): size of the pixel rows.
		"PaddedSize": func(args ...interface{}) (interface{}, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("PaddedSize expects 3 arguments (width, height, bitsPerPixel)")
			}

			// govaluate hands numbers over as float64
			var width, height, bitsPerPixel float64
			var ok bool

			width, ok = args[0].(float64)
			if !ok {
				return nil, fmt.Errorf("arg 1 (width) must be numeric for PaddedSize")
			}
			height, ok = args[1].(float64)
			if !ok {
				return nil, fmt.Errorf("arg 2 (height) must be numeric for PaddedSize")
			}
			bitsPerPixel, ok = args[2].(float64)
			if !ok {
				return nil, fmt.Errorf("arg 3 (bitsPerPixel) must be numeric for PaddedSize")
			}

			bytesPerPixel := int(bitsPerPixel / 8)
			if bytesPerPixel <= 0 || int(bitsPerPixel)%8 != 0 {
				return nil, fmt.Errorf("unsupported bitsPerPixel for PaddedSize: %v", bitsPerPixel)
			}

			return float64(int(height) * paddedRow(int(width), bytesPerPixel)), nil
		},
	}
}

func paddedRow(width, bytesPerPixel int) int {
	bytesPerRow := width * bytesPerPixel
	return bytesPerRow + (4-bytesPerRow%4)%4
}
