package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/subword/internal/tokenizer"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// classify maps tokenizer and request errors onto an HTTP status and an
// error type for the response body.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, tokenizer.ErrInvalidInput),
		errors.Is(err, tokenizer.ErrInvalidIterations):
		return http.StatusBadRequest, "invalid_request_error"
	case errors.Is(err, tokenizer.ErrUntrained):
		return http.StatusConflict, "not_trained_error"
	case errors.Is(err, tokenizer.ErrTokenIDOutOfRange):
		return http.StatusNotFound, "not_found_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}
