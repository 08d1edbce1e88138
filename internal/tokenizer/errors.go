package tokenizer

import "errors"

var (
	// ErrInvalidInput is returned when a corpus or text argument is neither a
	// string nor a list of strings.
	ErrInvalidInput = errors.New("tokenizer: input is neither a string nor a list of strings")
	// ErrInvalidIterations is returned by Train for a non-positive iteration count.
	ErrInvalidIterations = errors.New("tokenizer: number of iterations must be a positive integer")
	// ErrUntrained is returned by encode operations before Train has succeeded.
	ErrUntrained = errors.New("tokenizer: not trained")
	// ErrTokenIDOutOfRange is returned when an ID has no vocabulary entry.
	ErrTokenIDOutOfRange = errors.New("tokenizer: token id out of range")
	// ErrUnknownStrategy is returned by NewStrategy for unrecognised names.
	ErrUnknownStrategy = errors.New("tokenizer: unknown strategy")
)
