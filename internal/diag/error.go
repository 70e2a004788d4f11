package diag

import (
	"fmt"

	"github.com/zigadel/openxr-zig/internal/source"
)

// Error is a structured, kind-tagged stage failure. Every stage of the
// generator fails fast with one of these; the Code identifies both the
// failing stage and the reason.
type Error struct {
	Code Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

// Errorf builds a tagged Error and reports it to r in one step.
func Errorf(r Reporter, code Code, span source.Span, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	ReportError(r, code, span, msg)
	return &Error{Code: code, Span: span, Msg: msg}
}
