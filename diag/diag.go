package diag

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/zparse/zparse/parse"
	"github.com/zparse/zparse/token"
)

// Render returns a human readable report for err. When err carries a
// span and src is the input it refers to, the report includes the
// offending source line with a caret under the span.
func Render(err error, src []byte) string {
	var sb strings.Builder
	render(&sb, err, src, noStyle)
	return sb.String()
}

// Fprint writes the report for err to w, colorized when w is a
// terminal.
func Fprint(w io.Writer, err error, src []byte) {
	st := noStyle
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		st = colorStyle
	}
	var sb strings.Builder
	render(&sb, err, src, st)
	io.WriteString(w, sb.String())
}

type style struct {
	head  func(string) string
	caret func(string) string
	note  func(string) string
}

var noStyle = style{
	head:  func(s string) string { return s },
	caret: func(s string) string { return s },
	note:  func(s string) string { return s },
}

var colorStyle = style{
	head:  sprintWith(color.New(color.FgRed, color.Bold)),
	caret: sprintWith(color.New(color.FgRed)),
	note:  sprintWith(color.New(color.FgCyan)),
}

func sprintWith(c *color.Color) func(string) string {
	return func(s string) string { return c.Sprint(s) }
}

func render(sb *strings.Builder, err error, src []byte, st style) {
	sb.WriteString(st.head(err.Error()))
	sb.WriteByte('\n')

	var sem *parse.SemanticErr
	if errors.As(err, &sem) {
		excerpt(sb, src, sem.Span, st)
		if !sem.Prior.IsZero() {
			sb.WriteString(st.note(fmt.Sprintf("first occurrence at %s\n", sem.Prior)))
			excerpt(sb, src, sem.Prior, st)
		}
		return
	}
	var syn *token.SyntaxErr
	if errors.As(err, &syn) {
		excerpt(sb, src, syn.Span, st)
	}
}

// excerpt writes the source line holding span with a caret line under
// it. Spans past the end of src, as from truncated input, still render
// the line number header.
func excerpt(sb *strings.Builder, src []byte, span token.Span, st style) {
	if span.IsZero() || len(src) == 0 {
		return
	}
	text := lineAt(src, span.Start.Off)
	prefix := fmt.Sprintf("%4d | ", span.Start.Line)
	sb.WriteString(prefix)
	sb.WriteString(strings.ReplaceAll(text, "\t", " "))
	sb.WriteByte('\n')

	width := span.End.Col - span.Start.Col
	if span.End.Line != span.Start.Line || width < 1 {
		width = 1
	}
	col := span.Start.Col
	if col < 1 {
		col = 1
	}
	pad := strings.Repeat(" ", len(prefix)+col-1)
	sb.WriteString(pad)
	sb.WriteString(st.caret(strings.Repeat("^", width)))
	sb.WriteByte('\n')
}

func lineAt(src []byte, off int) string {
	if off > len(src) {
		off = len(src)
	}
	start := off
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := off
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return string(src[start:end])
}
