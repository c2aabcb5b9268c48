// Package layout describes fixed binary headers in YAML and checks decoded
// headers against per-field rules written as expressions.
//
// The description shipped with the package (bmp.yml) mirrors the headers
// the bmp codec writes; Inspect-style tooling uses it to explain which field
// of a rejected file is off.
package layout

import (
	"fmt"
	"sort"
	"strconv"
)

type FileFormat struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Structs     map[string]Struct `yaml:"structs"`
}

type Struct struct {
	Fields []Field `yaml:"fields"`
}

type Field struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	// Offset is the absolute byte offset of the field in the file.
	Offset int `yaml:"offset"`
	// Length is only used for fixed-size strings, e.g. a 2-byte signature.
	Length string `yaml:"length,omitempty"`
	// Require is an expression over the field names that must hold for a
	// valid header, e.g. "Planes == 1".
	Require string `yaml:"require,omitempty"`
	// Advisory rules are reported but do not make a header invalid.
	Advisory bool `yaml:"advisory,omitempty"`
}

var typeSizes = map[string]int{
	"uint8":  1,
	"int8":   1,
	"uint16": 2,
	"int16":  2,
	"uint32": 4,
	"int32":  4,
}

func (f *Field) GetLength() (int, error) {
	// If Length is empty, return 0
	if f.Length == "" {
		return 0, nil
	}

	length, err := strconv.Atoi(f.Length)
	if err != nil {
		return 0, fmt.Errorf("invalid length for field %s: %w", f.Name, err)
	}

	return length, nil
}

// Size returns the number of bytes the field occupies.
func (f *Field) Size() (int, error) {
	if size, ok := typeSizes[f.Type]; ok {
		return size, nil
	}
	if f.Type == "string" {
		length, err := f.GetLength()
		if err != nil {
			return 0, err
		}
		if length <= 0 {
			return 0, fmt.Errorf("field %s: string needs a positive length", f.Name)
		}
		return length, nil
	}
	return 0, fmt.Errorf("field %s: unsupported type %q", f.Name, f.Type)
}

// Fields returns the fields of every struct ordered by offset.
func (ff *FileFormat) Fields() []Field {
	var fields []Field
	for _, s := range ff.Structs {
		fields = append(fields, s.Fields...)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Offset < fields[j].Offset
	})
	return fields
}

// Size returns the number of bytes spanned by all fields.
func (ff *FileFormat) Size() int {
	end := 0
	for _, f := range ff.Fields() {
		size, err := f.Size()
		if err != nil {
			continue
		}
		end = max(end, f.Offset+size)
	}
	return end
}
