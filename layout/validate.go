package layout

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/knetic/govaluate"
	"gopkg.in/yaml.v2"
)

//go:embed bmp.yml
var defaultBMP []byte

// Default returns the description of the headers the bmp codec writes.
func Default() *FileFormat {
	ff, err := Parse(defaultBMP)
	if err != nil {
		panic(fmt.Sprintf("layout: embedded bmp.yml: %v", err))
	}
	return ff
}

// LoadFile reads and validates a layout description from disk.
func LoadFile(path string) (*FileFormat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file '%s': %w", path, err)
	}
	ff, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout file '%s': %w", path, err)
	}
	return ff, nil
}

// Parse unmarshals a YAML layout description and validates it.
func Parse(data []byte) (*FileFormat, error) {
	var ff FileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		yamlErr, ok := err.(*yaml.TypeError)
		if ok {
			for _, msg := range yamlErr.Errors {
				log.Printf("YAML unmarshal error: %s", msg)
			}
		}
		return nil, fmt.Errorf("error unmarshaling layout YAML: %w", err)
	}
	if err := Validate(&ff); err != nil {
		return nil, err
	}
	return &ff, nil
}

// Validate checks that every field has a known type and size, that fields
// are laid out back to back from offset 0, and that each Require expression
// compiles and only refers to declared fields.
func Validate(ff *FileFormat) error {
	validationErrors := 0

	names := make(map[string]bool)
	for _, f := range ff.Fields() {
		if names[f.Name] {
			log.Printf("ERROR: Validation error: field '%s' is declared twice.", f.Name)
			validationErrors++
		}
		names[f.Name] = true
	}

	next := 0
	for _, field := range ff.Fields() {
		// Validate Type exists
		if strings.TrimSpace(field.Type) == "" {
			log.Printf("ERROR: Validation error: field '%s' is missing a 'type'.", field.Name)
			validationErrors++
			continue
		}

		size, err := field.Size()
		if err != nil {
			log.Printf("ERROR: Validation error: %v", err)
			validationErrors++
			continue
		}
		if field.Type != "string" && field.Length != "" {
			log.Printf("Warning: field '%s' of fixed-size type '%s' has an unnecessary 'Length: %s'. It will be ignored.", field.Name, field.Type, field.Length)
		}

		if field.Offset != next {
			log.Printf("ERROR: Validation error: field '%s' starts at offset %d, expected %d.", field.Name, field.Offset, next)
			validationErrors++
		}
		next = field.Offset + size

		if strings.TrimSpace(field.Require) == "" {
			continue
		}
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(field.Require, GetExpressionFunctions())
		if err != nil {
			log.Printf("ERROR: Validation error: field '%s' has invalid rule '%s': %v", field.Name, field.Require, err)
			validationErrors++
			continue
		}
		for _, v := range expr.Vars() {
			if !names[v] {
				log.Printf("ERROR: Validation error: rule of field '%s' refers to unknown field '%s'.", field.Name, v)
				validationErrors++
			}
		}
	}

	if validationErrors > 0 {
		return fmt.Errorf("found %d validation error(s) in layout '%s'", validationErrors, ff.Name)
	}
	return nil
}
