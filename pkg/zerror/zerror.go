// Package zerror provides errors classified by a transport-independent
// Status and identified by a stable code.
package zerror

import (
	"fmt"
	"strings"
)

// ZError is an immutable classified error. The With* and Wrap methods
// return modified copies, so package-level values can serve as templates.
type ZError struct {
	status Status
	code   string
	msg    string
	cause  error
}

// New creates a ZError. code is an upper snake case identifier such as
// GREEN_COFFEE_NOT_FOUND.
func New(status Status, code, msg string) ZError {
	return ZError{status: status, code: code, msg: msg}
}

func NotFound(code, msg string) ZError         { return New(StatusNotFound, code, msg) }
func BadRequest(code, msg string) ZError       { return New(StatusBadRequest, code, msg) }
func ValidationFailed(code, msg string) ZError { return New(StatusValidationFailed, code, msg) }
func Internal(code, msg string) ZError         { return New(StatusInternalServerError, code, msg) }

// Error formats as "[CODE] msg: cause".
func (e ZError) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(e.code)
	b.WriteString("] ")
	b.WriteString(e.msg)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Wrap returns a copy of e caused by cause. A nil cause leaves e unchanged.
func (e ZError) Wrap(cause error) ZError {
	if cause != nil {
		e.cause = cause
	}
	return e
}

func (e ZError) WithMsg(msg string) ZError {
	e.msg = msg
	return e
}

func (e ZError) WithMsgf(format string, args ...any) ZError {
	return e.WithMsg(fmt.Sprintf(format, args...))
}

func (e ZError) Unwrap() error { return e.cause }

// Is matches any ZError with the same status and code, whatever its message.
func (e ZError) Is(target error) bool {
	t, ok := target.(ZError)
	return ok && e.status == t.status && e.code == t.code
}

func (e ZError) Status() Status { return e.status }
func (e ZError) Code() string   { return e.code }
func (e ZError) Msg() string    { return e.msg }
