package custerror

import "fmt"

const (
	CodeInternal uint32 = iota + 1
	CodeInvalidArgument
	CodeNotFound
	CodeAlreadyExists
	CodePermissionDenied
	CodeUnavailable
)

type CustomError struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

func (e *CustomError) Error() string {
	return e.Message
}

// Is matches on the error code only, so errors.Is(err, ErrorInvalidArgument)
// holds for every formatted invalid argument error.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewError(code uint32, message string) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
	}
}

var (
	ErrorInternal         = NewError(CodeInternal, "internal error")
	ErrorInvalidArgument  = NewError(CodeInvalidArgument, "invalid argument")
	ErrorNotFound         = NewError(CodeNotFound, "not found")
	ErrorAlreadyExists    = NewError(CodeAlreadyExists, "already exists")
	ErrorPermissionDenied = NewError(CodePermissionDenied, "permission denied")
	ErrorUnavailable      = NewError(CodeUnavailable, "unavailable")
)

func FormatInternalError(format string, args ...interface{}) *CustomError {
	return NewError(CodeInternal, fmt.Sprintf(format, args...))
}

func FormatInvalidArgument(format string, args ...interface{}) *CustomError {
	return NewError(CodeInvalidArgument, fmt.Sprintf(format, args...))
}

func FormatNotFound(format string, args ...interface{}) *CustomError {
	return NewError(CodeNotFound, fmt.Sprintf(format, args...))
}

func FormatAlreadyExists(format string, args ...interface{}) *CustomError {
	return NewError(CodeAlreadyExists, fmt.Sprintf(format, args...))
}

func FormatUnavailable(format string, args ...interface{}) *CustomError {
	return NewError(CodeUnavailable, fmt.Sprintf(format, args...))
}
