package api

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/samcharles93/subword/internal/tokenizer"
)

// InputValue holds a request "input" field, which is either a string or an
// array. Array elements are checked later so the error names the bad index.
type InputValue struct {
	String *string
	Items  []any
}

func (v *InputValue) UnmarshalJSON(b []byte) error {
	if v == nil {
		return fmt.Errorf("input value: nil receiver")
	}
	if len(b) == 0 || string(b) == "null" {
		*v = InputValue{}
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("input value: %w", err)
		}
		*v = InputValue{String: &s}
		return nil
	case '[':
		var items []any
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("input value: %w", err)
		}
		if items == nil {
			items = []any{}
		}
		*v = InputValue{Items: items}
		return nil
	default:
		return newInvalidRequest("input: expected string or array of strings")
	}
}

func (v InputValue) MarshalJSON() ([]byte, error) {
	if v.String != nil {
		return json.Marshal(*v.String)
	}
	if v.Items != nil {
		return json.Marshal(v.Items)
	}
	return []byte("null"), nil
}

// Texts returns the input as a list; single reports a bare string.
func (v *InputValue) Texts() (texts []string, single bool, err error) {
	switch {
	case v == nil || (v.String == nil && v.Items == nil):
		return nil, false, newInvalidRequest("input is required")
	case v.String != nil:
		return tokenizer.TextsFromInput(*v.String)
	default:
		return tokenizer.TextsFromInput(v.Items)
	}
}
