package certificate

import (
	"errors"
	"fmt"
)

// ErrorCode classifies certificate failures.
type ErrorCode string

const (
	CodeTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
	CodeFontLoadFailure   ErrorCode = "FONT_LOAD_FAILURE"
	CodeRenderFailure     ErrorCode = "RENDER_FAILURE"
	CodeValidationFailure ErrorCode = "VALIDATION_FAILURE"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrTemplateNotFound  = &Error{Code: CodeTemplateNotFound}
	ErrFontLoadFailure   = &Error{Code: CodeFontLoadFailure}
	ErrRenderFailure     = &Error{Code: CodeRenderFailure}
	ErrValidationFailure = &Error{Code: CodeValidationFailure}
)

type Error struct {
	Code    ErrorCode
	Message string
	Path    string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func templateNotFound(path string, err error) *Error {
	return &Error{
		Code:    CodeTemplateNotFound,
		Message: "certificate template image not found; make sure it is deployed at the configured path",
		Path:    path,
		Err:     err,
	}
}

func renderFailure(msg string, err error) *Error {
	return &Error{Code: CodeRenderFailure, Message: msg, Err: err}
}

func fontLoadFailure(source, path string, err error) *Error {
	return &Error{Code: CodeFontLoadFailure, Message: source + " font unavailable", Path: path, Err: err}
}
