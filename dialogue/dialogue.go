package dialogue

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ImgConverter/format"
)

// ChooseFormat asks which of choices to write path as. An empty answer
// cancels and returns format.Unknown.
func ChooseFormat(in io.Reader, out io.Writer, path string, choices []format.Format) (format.Format, error) {
	if len(choices) == 0 {
		return format.Unknown, nil
	}
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "\nUnknown output format for %s. Available formats:\n", path)
	for i, f := range choices {
		fmt.Fprintf(out, "%d. %s (%s)\n", i+1, f, f.Extension())
	}

	fmt.Fprint(out, "\nSelect a format (e.g., 1), or press Enter to cancel: ")
	input, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return format.Unknown, fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return format.Unknown, nil
	}

	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > len(choices) {
		return format.Unknown, fmt.Errorf("invalid selection '%s': please enter a number between 1 and %d", input, len(choices))
	}
	return choices[idx-1], nil
}
