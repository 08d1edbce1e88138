package tokenizer

import "fmt"

// TextsFromInput normalises a dynamically typed corpus or text argument.
// It accepts a string (single is true), a []string, or a []any whose
// elements are all strings, such as a decoded JSON array.
func TextsFromInput(v any) (texts []string, single bool, err error) {
	switch x := v.(type) {
	case string:
		return []string{x}, true, nil
	case []string:
		return append([]string(nil), x...), false, nil
	case []any:
		texts = make([]string, len(x))
		for i, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false, fmt.Errorf("%w: element %d is %T", ErrInvalidInput, i, item)
			}
			texts[i] = s
		}
		return texts, false, nil
	default:
		return nil, false, fmt.Errorf("%w: got %T", ErrInvalidInput, v)
	}
}
