package parse

import (
	"errors"
	"fmt"

	"github.com/zparse/zparse/token"
)

// ErrSemantic marks input that scans and nests correctly but violates a
// structural rule of its format, such as a duplicate key.
var ErrSemantic = errors.New("semantic error")

// ErrSyntax is re-exported so callers need not import token to classify
// parse failures.
var ErrSyntax = token.ErrSyntax

// SemanticErr carries the span of the offending construct and, when the
// violation involves an earlier construct (the first duplicate key, the
// opening tag), that prior span too.
type SemanticErr struct {
	Err   error
	Span  token.Span
	Prior token.Span
}

func (e *SemanticErr) Error() string {
	if !e.Prior.IsZero() {
		return fmt.Sprintf("%s at %s (first at %s)", e.Err, e.Span, e.Prior)
	}
	return fmt.Sprintf("%s at %s", e.Err, e.Span)
}

func (e *SemanticErr) Unwrap() error {
	return e.Err
}

func syntaxErrTok(tok token.Token, format string, args ...any) error {
	return token.NewSyntaxErr(
		fmt.Errorf("%w: %s", token.ErrSyntax, fmt.Sprintf(format, args...)),
		tok.Span,
	)
}

func syntaxErrSpan(s token.Span, format string, args ...any) error {
	return token.NewSyntaxErr(
		fmt.Errorf("%w: %s", token.ErrSyntax, fmt.Sprintf(format, args...)),
		s,
	)
}

func semanticErr(s token.Span, format string, args ...any) error {
	return &SemanticErr{
		Err:  fmt.Errorf("%w: %s", ErrSemantic, fmt.Sprintf(format, args...)),
		Span: s,
	}
}

func semanticErr2(s, prior token.Span, format string, args ...any) error {
	return &SemanticErr{
		Err:   fmt.Errorf("%w: %s", ErrSemantic, fmt.Sprintf(format, args...)),
		Span:  s,
		Prior: prior,
	}
}
