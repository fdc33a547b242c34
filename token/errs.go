package token

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel for all lexical/grammar violations.
var ErrSyntax = errors.New("syntax error")

// SyntaxErr wraps a lexical error with the span of the offending input.
type SyntaxErr struct {
	Err  error
	Span Span
}

func NewSyntaxErr(e error, s Span) *SyntaxErr {
	return &SyntaxErr{Err: e, Span: s}
}

func (e *SyntaxErr) Unwrap() error {
	return e.Err
}

func (e *SyntaxErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Span)
}

func syntaxErrAt(p Pos, format string, args ...any) error {
	return NewSyntaxErr(fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...)), SpanAt(p))
}

func syntaxErr(s Span, format string, args ...any) error {
	return NewSyntaxErr(fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...)), s)
}
