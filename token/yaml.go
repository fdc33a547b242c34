package token

import (
	"strings"
	"unicode/utf8"

	"github.com/zparse/zparse/debug"
	"github.com/zparse/zparse/limits"
)

// YAMLScanner produces indentation-aware YAML tokens. Each new line's
// first-content column is compared against an indent stack, emitting
// TIndent/TDedent pairs around the line's content tokens. Flow
// collections ([...] and {...}) suspend the indentation signal until
// their closing delimiter.
type YAMLScanner struct {
	cur     *Cursor
	guard   *limits.Guard
	pending []Token
	indents []int
	flow    int
}

func NewYAMLScanner(d []byte, guard *limits.Guard) *YAMLScanner {
	return &YAMLScanner{
		cur:     NewCursor(d),
		guard:   guard,
		indents: []int{0},
	}
}

func (s *YAMLScanner) Next() (Token, error) {
	t, err := s.next()
	if debug.Scan() {
		debug.Logf("yaml scan: %s %q err=%v\n", t.Type, t.Str, err)
	}
	return t, err
}

func (s *YAMLScanner) next() (Token, error) {
	for {
		if len(s.pending) > 0 {
			t := s.pending[0]
			s.pending = s.pending[1:]
			return t, nil
		}
		if s.cur.EOF() {
			if len(s.indents) > 1 {
				s.indents = s.indents[:len(s.indents)-1]
				return Token{Type: TDedent, Span: SpanAt(s.cur.Pos())}, nil
			}
			return Token{Type: TEOF, Span: SpanAt(s.cur.Pos())}, nil
		}
		if err := s.scanLine(); err != nil {
			return Token{}, err
		}
	}
}

// scanLine consumes one source line and queues its tokens.
func (s *YAMLScanner) scanLine() error {
	if s.flow > 0 {
		// inside a flow collection the line structure is inert
		s.skipSpaceAndBreaks()
		if s.cur.EOF() {
			return nil
		}
		return s.scanContent()
	}

	lineStart := s.cur.Pos()
	indent := 0
	for {
		switch s.cur.Cur() {
		case ' ':
			indent++
			s.cur.Next()
			continue
		case '\t':
			return syntaxErrAt(s.cur.Pos(), "tab used for indentation")
		}
		break
	}
	// blank or comment-only lines carry no indentation signal
	if s.cur.EOF() || s.cur.Cur() == '\n' || s.cur.Cur() == '\r' || s.cur.Cur() == '#' {
		s.skipToEOL()
		s.cur.Consume('\r')
		s.cur.Consume('\n')
		return nil
	}
	if indent == 0 && s.cur.HasPrefix("---") && isBreakOrSpace(s.cur.Peek(3)) {
		s.cur.NextN(3)
		s.pending = append(s.pending, Token{Type: TDocSep, Span: Span{Start: lineStart, End: s.cur.Pos()}})
	}

	top := s.indents[len(s.indents)-1]
	switch {
	case indent > top:
		s.indents = append(s.indents, indent)
		s.pending = append(s.pending, Token{Type: TIndent, Span: SpanAt(lineStart)})
	case indent < top:
		for len(s.indents) > 1 && s.indents[len(s.indents)-1] > indent {
			s.indents = s.indents[:len(s.indents)-1]
			s.pending = append(s.pending, Token{Type: TDedent, Span: SpanAt(lineStart)})
		}
		if s.indents[len(s.indents)-1] != indent {
			return syntaxErrAt(lineStart, "invalid indentation")
		}
	}
	return s.scanContent()
}

// scanContent queues the tokens of the current line, ending with
// TNewline once the line (or the enclosing flow run) is done.
func (s *YAMLScanner) scanContent() error {
	for {
		for s.cur.Cur() == ' ' || s.cur.Cur() == '\t' {
			s.cur.Next()
		}
		if s.flow > 0 && (s.cur.Cur() == '\n' || s.cur.Cur() == '\r') {
			// flow content continues on the next line
			s.cur.Consume('\r')
			s.cur.Consume('\n')
			return nil
		}
		if s.cur.EOF() || s.cur.Cur() == '\n' || s.cur.Cur() == '\r' || s.cur.Cur() == '#' {
			s.skipToEOL()
			s.cur.Consume('\r')
			s.cur.Consume('\n')
			if s.flow == 0 {
				s.pending = append(s.pending, Token{Type: TNewline, Span: SpanAt(s.cur.Pos())})
			}
			return nil
		}
		start := s.cur.Pos()
		switch b := s.cur.Cur(); b {
		case '[':
			s.cur.Next()
			s.flow++
			s.push(TLSquare, start)
		case ']':
			s.cur.Next()
			if s.flow > 0 {
				s.flow--
			}
			s.push(TRSquare, start)
		case '{':
			s.cur.Next()
			s.flow++
			s.push(TLCurl, start)
		case '}':
			s.cur.Next()
			if s.flow > 0 {
				s.flow--
			}
			s.push(TRCurl, start)
		case ',':
			s.cur.Next()
			s.push(TComma, start)
		case ':':
			if s.flow > 0 || isBreakOrSpace(s.cur.Peek(1)) {
				s.cur.Next()
				s.push(TColon, start)
				continue
			}
			if err := s.scanPlain(start); err != nil {
				return err
			}
		case '-':
			if s.flow == 0 && isBreakOrSpace(s.cur.Peek(1)) {
				s.cur.Next()
				s.push(TDash, start)
				continue
			}
			if err := s.scanPlain(start); err != nil {
				return err
			}
		case '"', '\'':
			if err := s.scanQuoted(start, b); err != nil {
				return err
			}
		case '|', '>':
			if s.flow == 0 && s.blockScalarHeader() {
				return s.scanBlockScalar(start, b)
			}
			if err := s.scanPlain(start); err != nil {
				return err
			}
		default:
			if err := s.scanPlain(start); err != nil {
				return err
			}
		}
	}
}

func (s *YAMLScanner) push(tt TokenType, start Pos) {
	s.pending = append(s.pending, Token{Type: tt, Span: Span{Start: start, End: s.cur.Pos()}})
}

func (s *YAMLScanner) skipToEOL() {
	for !s.cur.EOF() && s.cur.Cur() != '\n' {
		s.cur.Next()
	}
}

func (s *YAMLScanner) skipSpaceAndBreaks() {
	for {
		switch s.cur.Cur() {
		case ' ', '\t', '\n', '\r':
			s.cur.Next()
		default:
			return
		}
	}
}

func isBreakOrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == 0
}

// scanPlain consumes an unquoted scalar. Outside flow it ends at a
// value colon (": "), a trailing comment, or end of line; inside flow
// also at flow delimiters.
func (s *YAMLScanner) scanPlain(start Pos) error {
	var end int
	for !s.cur.EOF() {
		b := s.cur.Cur()
		if b == '\n' || b == '\r' {
			break
		}
		if s.flow > 0 && (b == ',' || b == '[' || b == ']' || b == '{' || b == '}' || b == ':') {
			break
		}
		if s.flow == 0 && b == ':' && isBreakOrSpace(s.cur.Peek(1)) {
			break
		}
		if b == '#' && s.cur.Off() > start.Off {
			prev := s.cur.Peek(-1)
			if prev == ' ' || prev == '\t' {
				break
			}
		}
		s.cur.Next()
		end = s.cur.Off()
	}
	text := strings.TrimRight(string(s.cur.SliceFrom(start.Off)[:end-start.Off]), " \t")
	if s.guard != nil {
		if err := s.guard.AddString(len(text)); err != nil {
			return err
		}
	}
	if !utf8.ValidString(text) {
		return syntaxErr(Span{Start: start, End: s.cur.Pos()}, "invalid UTF-8 in scalar")
	}
	s.pending = append(s.pending, Token{
		Type: TLiteral,
		Span: Span{Start: start, End: s.cur.Pos()},
		Str:  text,
	})
	return nil
}

func (s *YAMLScanner) scanQuoted(start Pos, quote byte) error {
	s.cur.Next()
	var sb strings.Builder
	for {
		if s.cur.EOF() || s.cur.Cur() == '\n' {
			return syntaxErr(Span{Start: start, End: s.cur.Pos()}, "unterminated string")
		}
		b := s.cur.Cur()
		switch {
		case b == quote && quote == '\'':
			if s.cur.Peek(1) == '\'' {
				sb.WriteByte('\'')
				s.cur.NextN(2)
				continue
			}
			s.cur.Next()
			return s.pushString(start, sb.String())
		case b == quote:
			s.cur.Next()
			return s.pushString(start, sb.String())
		case b == '\\' && quote == '"':
			escPos := s.cur.Pos()
			s.cur.Next()
			e := s.cur.Cur()
			s.cur.Next()
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case '0':
				sb.WriteByte(0)
			case 'u':
				r, err := scanEscapedRune(s.cur, escPos)
				if err != nil {
					return err
				}
				sb.WriteRune(r)
			default:
				return syntaxErrAt(escPos, "invalid escape %q", `\`+string(rune(e)))
			}
		default:
			sb.WriteByte(b)
			s.cur.Next()
		}
	}
}

func (s *YAMLScanner) pushString(start Pos, text string) error {
	if s.guard != nil {
		if err := s.guard.AddString(len(text)); err != nil {
			return err
		}
	}
	if !utf8.ValidString(text) {
		return syntaxErr(Span{Start: start, End: s.cur.Pos()}, "invalid UTF-8 in scalar")
	}
	s.pending = append(s.pending, Token{
		Type: TString,
		Span: Span{Start: start, End: s.cur.Pos()},
		Str:  text,
	})
	return nil
}

// blockScalarHeader reports whether the cursor sits on a block scalar
// indicator: '|' or '>' followed by an optional chomp sign, then EOL.
func (s *YAMLScanner) blockScalarHeader() bool {
	i := 1
	if b := s.cur.Peek(i); b == '-' || b == '+' {
		i++
	}
	return isBreakOrSpace(s.cur.Peek(i)) || s.cur.Peek(i) == '#'
}

// scanBlockScalar consumes a literal (|) or folded (>) block scalar and
// queues it as a single string token plus the line's trailing newline.
func (s *YAMLScanner) scanBlockScalar(start Pos, style byte) error {
	s.cur.Next()
	chomp := byte(0)
	if b := s.cur.Cur(); b == '-' || b == '+' {
		chomp = b
		s.cur.Next()
	}
	s.skipToEOL()
	s.cur.Consume('\r')
	s.cur.Consume('\n')

	baseIndent := s.indents[len(s.indents)-1]
	blockIndent := -1
	var lines []string
	for !s.cur.EOF() {
		indent := 0
		for s.cur.Cur() == ' ' {
			indent++
			s.cur.Next()
		}
		if s.cur.Cur() == '\n' || s.cur.Cur() == '\r' || s.cur.EOF() {
			s.cur.Consume('\r')
			s.cur.Consume('\n')
			lines = append(lines, "")
			continue
		}
		if blockIndent < 0 {
			if indent <= baseIndent {
				// empty block scalar, this line belongs to the parent
				return s.finishBlockScalar(start, style, chomp, blockIndent, lines, indent)
			}
			blockIndent = indent
		}
		if indent < blockIndent {
			// the block ends here; this line's indentation signal is
			// emitted by finishBlockScalar before its content tokens
			return s.finishBlockScalar(start, style, chomp, blockIndent, lines, indent)
		}
		contentStart := s.cur.Off()
		s.skipToEOL()
		text := strings.Repeat(" ", indent-blockIndent) + string(s.cur.SliceFrom(contentStart))
		s.cur.Consume('\r')
		s.cur.Consume('\n')
		lines = append(lines, text)
	}
	return s.finishBlockScalar(start, style, chomp, blockIndent, lines, -1)
}

func (s *YAMLScanner) finishBlockScalar(start Pos, style, chomp byte, blockIndent int, lines []string, nextIndent int) error {
	// trailing blank lines are subject to chomping
	nTrailing := 0
	for nTrailing < len(lines) && lines[len(lines)-1-nTrailing] == "" {
		nTrailing++
	}
	body := lines[:len(lines)-nTrailing]

	var text string
	if style == '|' {
		text = strings.Join(body, "\n")
	} else {
		// folding: one break becomes a space, n breaks become n-1
		// newlines, more-indented lines keep their breaks literal
		var sb strings.Builder
		blanks := 0
		prevIndented := false
		first := true
		for _, ln := range body {
			if ln == "" {
				if !first {
					blanks++
				}
				continue
			}
			indented := strings.HasPrefix(ln, " ")
			switch {
			case first:
			case blanks > 0:
				sb.WriteString(strings.Repeat("\n", blanks))
			case indented || prevIndented:
				sb.WriteByte('\n')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(ln)
			first = false
			prevIndented = indented
			blanks = 0
		}
		text = sb.String()
	}
	switch chomp {
	case '-':
	case '+':
		if len(body) > 0 || nTrailing > 0 {
			text += strings.Repeat("\n", nTrailing+1)
		}
	default:
		if len(body) > 0 {
			text += "\n"
		}
	}
	if err := s.pushString(start, text); err != nil {
		return err
	}
	s.pending = append(s.pending, Token{Type: TNewline, Span: SpanAt(s.cur.Pos())})

	if nextIndent >= 0 {
		// the dedented line after the block: emit its indent signal now
		lineStart := s.cur.Pos()
		top := s.indents[len(s.indents)-1]
		if nextIndent < top {
			for len(s.indents) > 1 && s.indents[len(s.indents)-1] > nextIndent {
				s.indents = s.indents[:len(s.indents)-1]
				s.pending = append(s.pending, Token{Type: TDedent, Span: SpanAt(lineStart)})
			}
			if s.indents[len(s.indents)-1] != nextIndent {
				return syntaxErrAt(lineStart, "invalid indentation")
			}
		} else if nextIndent > top {
			s.indents = append(s.indents, nextIndent)
			s.pending = append(s.pending, Token{Type: TIndent, Span: SpanAt(lineStart)})
		}
		return s.scanContent()
	}
	return nil
}
