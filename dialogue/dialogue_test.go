package dialogue

import (
	"bytes"
	"strings"
	"testing"

	"ImgConverter/format"
)

func TestChooseFormat(t *testing.T) {
	choices := format.Known()
	tests := []struct {
		name    string
		input   string
		want    format.Format
		wantErr bool
	}{
		{"first", "1\n", format.BMP, false},
		{"padded", "  3 \n", format.PPM, false},
		{"no newline", "2", format.JPEG, false},
		{"enter cancels", "\n", format.Unknown, false},
		{"eof cancels", "", format.Unknown, false},
		{"out of range", "4\n", format.Unknown, true},
		{"zero", "0\n", format.Unknown, true},
		{"not a number", "bmp\n", format.Unknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ChooseFormat(strings.NewReader(tt.input), &out, "picture.xyz", choices)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ChooseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ChooseFormat() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), "picture.xyz") {
				t.Errorf("prompt %q does not name the file", out.String())
			}
		})
	}
}

func TestChooseFormatNoChoices(t *testing.T) {
	got, err := ChooseFormat(strings.NewReader("1\n"), &bytes.Buffer{}, "x.xyz", nil)
	if err != nil || got != format.Unknown {
		t.Errorf("ChooseFormat() = %v, %v; want Unknown, nil", got, err)
	}
}
