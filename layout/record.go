package layout

import (
	"encoding/binary"
	"fmt"

	"github.com/knetic/govaluate"
	"github.com/mitchellh/mapstructure"
)

// Record holds decoded field values keyed by field name. Values keep the
// Go type of the field: uint32 for "uint32", string for "string" and so on.
type Record map[string]interface{}

// Decode extracts every field of ff from raw, little-endian.
func (ff *FileFormat) Decode(raw []byte) (Record, error) {
	if len(raw) < ff.Size() {
		return nil, fmt.Errorf("layout %s: need %d bytes, have %d", ff.Name, ff.Size(), len(raw))
	}

	le := binary.LittleEndian
	rec := make(Record)
	for _, f := range ff.Fields() {
		size, err := f.Size()
		if err != nil {
			return nil, err
		}
		b := raw[f.Offset : f.Offset+size]
		switch f.Type {
		case "uint8":
			rec[f.Name] = b[0]
		case "int8":
			rec[f.Name] = int8(b[0])
		case "uint16":
			rec[f.Name] = le.Uint16(b)
		case "int16":
			rec[f.Name] = int16(le.Uint16(b))
		case "uint32":
			rec[f.Name] = le.Uint32(b)
		case "int32":
			rec[f.Name] = int32(le.Uint32(b))
		case "string":
			rec[f.Name] = string(b)
		}
	}
	return rec, nil
}

// Params converts the record to expression parameters; numbers become float64.
func (r Record) Params() map[string]interface{} {
	params := make(map[string]interface{}, len(r))
	for k, v := range r {
		switch n := v.(type) {
		case uint8:
			params[k] = float64(n)
		case int8:
			params[k] = float64(n)
		case uint16:
			params[k] = float64(n)
		case int16:
			params[k] = float64(n)
		case uint32:
			params[k] = float64(n)
		case int32:
			params[k] = float64(n)
		default:
			params[k] = v
		}
	}
	return params
}

// Decode copies the record into out, matching fields by their `layout` tag
// or, failing that, by name.
func (r Record) Decode(out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "layout",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if err := dec.Decode(map[string]interface{}(r)); err != nil {
		return fmt.Errorf("layout: decode record: %w", err)
	}
	return nil
}

// Result is the outcome of one field rule.
type Result struct {
	Field    Field
	Value    interface{}
	Passed   bool
	Err      error // set when the rule could not be evaluated
	Advisory bool
}

// Check evaluates the Require rule of every field against rec. Fields
// without a rule are reported as passed.
func (ff *FileFormat) Check(rec Record) []Result {
	params := rec.Params()
	functions := GetExpressionFunctions()

	var results []Result
	for _, f := range ff.Fields() {
		res := Result{Field: f, Value: rec[f.Name], Passed: true, Advisory: f.Advisory}
		if f.Require != "" {
			res.Passed, res.Err = evaluate(f.Require, functions, params)
		}
		results = append(results, res)
	}
	return results
}

func evaluate(rule string, functions map[string]govaluate.ExpressionFunction, params map[string]interface{}) (bool, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(rule, functions)
	if err != nil {
		return false, err
	}
	v, err := expr.Evaluate(params)
	if err != nil {
		return false, err
	}
	ok, isBool := v.(bool)
	if !isBool {
		return false, fmt.Errorf("rule %q is not a condition (got %v)", rule, v)
	}
	return ok, nil
}

// Valid reports whether every non-advisory rule passed.
func Valid(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Advisory {
			return false
		}
	}
	return true
}
