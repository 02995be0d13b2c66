// Package errors defines the coded errors and warnings of the word-cloud
// pipeline.
//
// Failures split two ways. Settings that cannot work (a negative width, an
// unknown palette) are fatal [*Error] values returned before any stage runs.
// Inputs that are missing or broken (the text file, the mask, the font) are
// [Warning] values: the stage falls back to a default and the run goes on.
//
// Codes group by prefix:
//   - INVALID_*: the request or configuration is wrong; [Code.Invalid] reports it
//   - *_NOT_FOUND, *_UNREADABLE: an input could not be used
//   - everything else: a processing or internal failure
//
// The HTTP server maps codes to statuses with [HTTPStatus].
//
//	if err := errors.ValidatePositive("width", w); err != nil {
//	    return err // INVALID_CONFIG
//	}
//	m, _, err := mask.Load(path, opts)
//	if err != nil {
//	    warnings = append(warnings, errors.AsWarning(err, errors.ErrCodeMaskUnreadable))
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidColor      Code = "INVALID_COLOR"
	ErrCodeInvalidPalette    Code = "INVALID_PALETTE"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeTextUnreadable Code = "TEXT_UNREADABLE"
	ErrCodeMaskUnreadable Code = "MASK_UNREADABLE"
	ErrCodeFontUnreadable Code = "FONT_UNREADABLE"

	ErrCodeSegmenter   Code = "SEGMENTER_ERROR"
	ErrCodeLayout      Code = "LAYOUT_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Invalid reports whether c blames the caller's settings or request.
func (c Code) Invalid() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Status is the HTTP status for c.
func (c Code) Status() int {
	switch {
	case c.Invalid(), c == ErrCodeUnsupported:
		return http.StatusBadRequest
	case c == ErrCodeNotFound, c == ErrCodeFileNotFound:
		return http.StatusNotFound
	case c == ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure with a code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by code, so errors.Is(err, &Error{Code: c})
// works with the standard library as well.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// HTTPStatus maps err to a response status. Uncoded errors are 500.
func HTTPStatus(err error) int {
	if c := GetCode(err); c != "" {
		return c.Status()
	}
	return http.StatusInternalServerError
}

// UserMessage returns the message without the code prefix for an *Error,
// else err.Error().
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
