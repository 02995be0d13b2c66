package errors

import "fmt"

// Warning describes an input problem that was handled by falling back to a
// default (empty text, no mask, default font). Warnings never abort the
// pipeline; they are collected and reported to the caller.
type Warning struct {
	Code    Code
	Message string
	Cause   error
}

// String formats the warning like an *Error without implying failure.
func (w Warning) String() string {
	if w.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", w.Code, w.Message, w.Cause)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Warn creates a Warning with a formatted message.
func Warn(code Code, cause error, format string, args ...any) Warning {
	return Warning{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// AsWarning converts an error into a Warning, keeping its code when the
// error is an *Error and falling back to the given code otherwise.
func AsWarning(err error, fallback Code) Warning {
	if err == nil {
		return Warning{}
	}
	code := GetCode(err)
	if code == "" {
		code = fallback
	}
	return Warning{Code: code, Message: UserMessage(err), Cause: err}
}
