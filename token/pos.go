package token

import "fmt"

// Pos is a position in the source document. Line and Col are 1-based,
// Off is the byte offset from the start of the input.
type Pos struct {
	Off  int
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Col)
}

// Span is a half-open byte range [Start.Off, End.Off) in the source.
type Span struct {
	Start Pos
	End   Pos
}

func SpanAt(p Pos) Span {
	return Span{Start: p, End: p}
}

func (s Span) String() string {
	return s.Start.String()
}

// IsZero reports whether the span carries no position information.
func (s Span) IsZero() bool {
	return s.Start.Line == 0
}
