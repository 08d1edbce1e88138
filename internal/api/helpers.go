package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "", "")
}

// writeErr classifies err and writes it.
func writeErr(c *echo.Context, err error) error {
	status, typ := classify(err)
	return writeError(c, status, typ, err.Error(), "", "")
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	body, err := io.ReadAll(r)
	if err != nil {
		return out, newInvalidRequest("invalid request body: " + err.Error())
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, newInvalidRequest(describeDecodeError[T](body, err))
	}
	return out, nil
}

// describeDecodeError names the offending field when body is well-formed
// JSON whose values do not fit T.
func describeDecodeError[T any](body []byte, err error) string {
	if json.Valid(body) {
		var fields map[string]any
		if json.Unmarshal(body, &fields) == nil {
			if msg := mismatchedField(reflect.TypeFor[T](), fields); msg != "" {
				return msg
			}
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" && typeErr.Type != nil {
			if want := kindName(typeErr.Type); want != "" {
				return fmt.Sprintf("invalid request body: %s must be %s", typeErr.Field, want)
			}
		}
	}
	return "invalid request body: " + err.Error()
}

func mismatchedField(rt reflect.Type, fields map[string]any) string {
	if rt.Kind() != reflect.Struct {
		return ""
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		v, ok := fields[name]
		if name == "" || !ok || v == nil {
			continue
		}
		want := kindName(f.Type)
		if want == "" || fitsKind(f.Type, v) {
			continue
		}
		return fmt.Sprintf("invalid request body: %s must be %s", name, want)
	}
	return ""
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	default:
		return ""
	}
}

func fitsKind(t reflect.Type, v any) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.(float64)
		return ok && n == math.Trunc(n)
	case reflect.Bool:
		_, ok := v.(bool)
		return ok
	case reflect.String:
		_, ok := v.(string)
		return ok
	default:
		return true
	}
}

func newEncodingID() string {
	return "enc_" + uuid.NewString()
}
