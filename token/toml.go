package token

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zparse/zparse/limits"
)

// TOMLScanner produces TOML tokens. Bare keys and quoted keys both come
// out as tokens; the parser decides whether a token is key or value
// position. Date/time literals are detected here and classified by the
// parser. Doubled brackets are recognized only where a table header can
// start: at the beginning of a line, outside any open value. Inside
// array values brackets always pair one at a time.
type TOMLScanner struct {
	cur   *Cursor
	guard *limits.Guard
	// true until the first token of the current line has been scanned
	lineStart bool
	// an array-of-tables header is open, awaiting its ]]
	inHeader bool
	// open [ and { values carried across line breaks
	depth int
}

func NewTOMLScanner(d []byte, guard *limits.Guard) *TOMLScanner {
	return &TOMLScanner{cur: NewCursor(d), guard: guard, lineStart: true}
}

func (s *TOMLScanner) Next() (Token, error) {
	s.skipSpace()
	for s.cur.Cur() == '#' {
		s.skipComment()
		s.skipSpace()
	}
	start := s.cur.Pos()
	if s.cur.EOF() {
		return Token{Type: TEOF, Span: SpanAt(start)}, nil
	}
	atLineStart := s.lineStart
	s.lineStart = false
	var tt TokenType
	switch b := s.cur.Cur(); b {
	case '\n':
		s.cur.Next()
		tt = TNewline
		s.lineStart = true
		s.inHeader = false
	case '[':
		if atLineStart && s.depth == 0 && s.cur.Peek(1) == '[' {
			s.cur.NextN(2)
			tt = TLSquare2
			s.inHeader = true
		} else {
			s.cur.Next()
			tt = TLSquare
			s.depth++
		}
	case ']':
		if s.inHeader && s.cur.Peek(1) == ']' {
			s.cur.NextN(2)
			tt = TRSquare2
			s.inHeader = false
		} else {
			s.cur.Next()
			tt = TRSquare
			if s.depth > 0 {
				s.depth--
			}
		}
	case '{':
		s.cur.Next()
		tt = TLCurl
		s.depth++
	case '}':
		s.cur.Next()
		tt = TRCurl
		if s.depth > 0 {
			s.depth--
		}
	case '=':
		s.cur.Next()
		tt = TEquals
	case ',':
		s.cur.Next()
		tt = TComma
	case '.':
		s.cur.Next()
		tt = TDot
	case '"':
		return s.scanBasicString(start)
	case '\'':
		return s.scanLiteralString(start)
	default:
		switch {
		case b == '-' && isBareKeyByte(s.cur.Peek(1)) && !isDigit(s.cur.Peek(1)):
			return s.scanBareKey(start)
		case b == '+' || b == '-' || isDigit(b):
			return s.scanNumberOrDatetime(start)
		case isBareKeyByte(b):
			return s.scanBareKey(start)
		default:
			return Token{}, syntaxErrAt(start, "unexpected character %q", string(rune(b)))
		}
	}
	return Token{Type: tt, Span: Span{Start: start, End: s.cur.Pos()}}, nil
}

func (s *TOMLScanner) skipSpace() {
	for {
		switch s.cur.Cur() {
		case ' ', '\t', '\r':
			s.cur.Next()
		default:
			return
		}
	}
}

func (s *TOMLScanner) skipComment() {
	for !s.cur.EOF() && s.cur.Cur() != '\n' {
		s.cur.Next()
	}
}

func isBareKeyByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' ||
		b >= '0' && b <= '9' || b == '_' || b == '-'
}

func (s *TOMLScanner) scanBareKey(start Pos) (Token, error) {
	for isBareKeyByte(s.cur.Cur()) {
		s.cur.Next()
	}
	text := string(s.cur.SliceFrom(start.Off))
	span := Span{Start: start, End: s.cur.Pos()}
	switch text {
	case "true":
		return Token{Type: TTrue, Span: span}, nil
	case "false":
		return Token{Type: TFalse, Span: span}, nil
	case "inf", "nan":
		f, _ := parseSpecialFloat(text)
		return Token{Type: TFloat, Span: span, Float: f, Str: text}, nil
	}
	return Token{Type: TLiteral, Span: span, Str: text}, nil
}

func (s *TOMLScanner) scanBasicString(start Pos) (Token, error) {
	if s.cur.HasPrefix(`"""`) {
		return s.scanMultilineBasic(start)
	}
	s.cur.Next()
	var sb strings.Builder
	for {
		if s.cur.EOF() || s.cur.Cur() == '\n' {
			return Token{}, syntaxErr(Span{Start: start, End: s.cur.Pos()}, "unterminated string")
		}
		switch b := s.cur.Cur(); b {
		case '"':
			s.cur.Next()
			return s.stringToken(start, sb.String())
		case '\\':
			if err := s.scanTOMLEscape(&sb, false); err != nil {
				return Token{}, err
			}
		default:
			sb.WriteByte(b)
			s.cur.Next()
		}
	}
}

func (s *TOMLScanner) scanMultilineBasic(start Pos) (Token, error) {
	s.cur.NextN(3)
	s.cur.Consume('\r')
	s.cur.Consume('\n') // newline right after opening delimiter is trimmed
	var sb strings.Builder
	for {
		if s.cur.EOF() {
			return Token{}, syntaxErr(Span{Start: start, End: s.cur.Pos()}, "unterminated multi-line string")
		}
		switch b := s.cur.Cur(); b {
		case '"':
			if s.cur.HasPrefix(`"""`) {
				s.cur.NextN(3)
				return s.stringToken(start, sb.String())
			}
			sb.WriteByte('"')
			s.cur.Next()
		case '\\':
			if err := s.scanTOMLEscape(&sb, true); err != nil {
				return Token{}, err
			}
		default:
			sb.WriteByte(b)
			s.cur.Next()
		}
	}
}

// scanTOMLEscape decodes one backslash escape. In multi-line strings a
// backslash before a line ending trims all following whitespace.
func (s *TOMLScanner) scanTOMLEscape(sb *strings.Builder, multiline bool) error {
	escPos := s.cur.Pos()
	s.cur.Next()
	b := s.cur.Cur()
	if multiline && (b == '\n' || b == '\r' || b == ' ' || b == '\t') {
		// the backslash may only be followed by whitespace up to the
		// line break; after the break all whitespace is trimmed
		for s.cur.Cur() == ' ' || s.cur.Cur() == '\t' {
			s.cur.Next()
		}
		if c := s.cur.Cur(); c != '\n' && c != '\r' {
			return syntaxErrAt(escPos, "line continuation must end the line")
		}
		for {
			switch s.cur.Cur() {
			case ' ', '\t', '\n', '\r':
				s.cur.Next()
				continue
			}
			return nil
		}
	}
	s.cur.Next()
	switch b {
	case '"':
		sb.WriteByte('"')
	case '\\':
		sb.WriteByte('\\')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'u':
		return s.scanHexEscape(sb, 4, escPos)
	case 'U':
		return s.scanHexEscape(sb, 8, escPos)
	default:
		return syntaxErrAt(escPos, "invalid escape %q", `\`+string(rune(b)))
	}
	return nil
}

func (s *TOMLScanner) scanHexEscape(sb *strings.Builder, digits int, at Pos) error {
	var v rune
	for range digits {
		b := s.cur.Cur()
		var d rune
		switch {
		case b >= '0' && b <= '9':
			d = rune(b - '0')
		case b >= 'a' && b <= 'f':
			d = rune(b-'a') + 10
		case b >= 'A' && b <= 'F':
			d = rune(b-'A') + 10
		default:
			return syntaxErrAt(at, "invalid unicode escape")
		}
		v = v<<4 | d
		s.cur.Next()
	}
	if v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
		return syntaxErrAt(at, "invalid unicode escape")
	}
	sb.WriteRune(v)
	return nil
}

func (s *TOMLScanner) scanLiteralString(start Pos) (Token, error) {
	if s.cur.HasPrefix(`'''`) {
		return s.scanMultilineLiteral(start)
	}
	s.cur.Next()
	strStart := s.cur.Off()
	for {
		if s.cur.EOF() || s.cur.Cur() == '\n' {
			return Token{}, syntaxErr(Span{Start: start, End: s.cur.Pos()}, "unterminated string")
		}
		if s.cur.Cur() == '\'' {
			text := string(s.cur.SliceFrom(strStart))
			s.cur.Next()
			return s.stringToken(start, text)
		}
		s.cur.Next()
	}
}

func (s *TOMLScanner) scanMultilineLiteral(start Pos) (Token, error) {
	s.cur.NextN(3)
	s.cur.Consume('\r')
	s.cur.Consume('\n')
	strStart := s.cur.Off()
	for {
		if s.cur.EOF() {
			return Token{}, syntaxErr(Span{Start: start, End: s.cur.Pos()}, "unterminated multi-line string")
		}
		if s.cur.HasPrefix(`'''`) {
			text := string(s.cur.SliceFrom(strStart))
			s.cur.NextN(3)
			return s.stringToken(start, text)
		}
		s.cur.Next()
	}
}

func (s *TOMLScanner) stringToken(start Pos, text string) (Token, error) {
	if s.guard != nil {
		if err := s.guard.AddString(len(text)); err != nil {
			return Token{}, err
		}
	}
	span := Span{Start: start, End: s.cur.Pos()}
	if !utf8.ValidString(text) {
		return Token{}, syntaxErr(span, "invalid UTF-8 in string")
	}
	return Token{Type: TString, Span: span, Str: text}, nil
}

func (s *TOMLScanner) scanNumberOrDatetime(start Pos) (Token, error) {
	if b := s.cur.Cur(); b == '+' || b == '-' {
		s.cur.Next()
	}
	// inf/nan with sign
	if s.cur.HasPrefix("inf") || s.cur.HasPrefix("nan") {
		s.cur.NextN(3)
		text := string(s.cur.SliceFrom(start.Off))
		f, _ := parseSpecialFloat(text)
		return Token{Type: TFloat, Span: Span{Start: start, End: s.cur.Pos()}, Float: f, Str: text}, nil
	}
	for {
		b := s.cur.Cur()
		switch {
		case isDigit(b), b == '_', b == '.', b == ':', b == '-', b == '+',
			b == 'e', b == 'E', b == 'T', b == 'Z', b == 'z',
			b == 'x', b == 'X', b == 'o', b == 'O', b == 'b', b == 'B',
			b >= 'a' && b <= 'f', b >= 'A' && b <= 'F':
			s.cur.Next()
			continue
		case b == ' ' && looksLikeTimeFollows(s.cur):
			// space-separated date and time in one literal
			s.cur.Next()
			continue
		}
		break
	}
	text := string(s.cur.SliceFrom(start.Off))
	span := Span{Start: start, End: s.cur.Pos()}

	if isDatetimeLike(text) {
		return Token{Type: TDatetime, Span: span, Str: text}, nil
	}

	norm := strings.ReplaceAll(text, "_", "")
	sign := int64(1)
	digits := norm
	if rest, ok := strings.CutPrefix(digits, "-"); ok {
		sign, digits = -1, rest
	} else if rest, ok := strings.CutPrefix(digits, "+"); ok {
		digits = rest
	}
	base := 10
	switch {
	case strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X"):
		base, digits = 16, digits[2:]
	case strings.HasPrefix(digits, "0o") || strings.HasPrefix(digits, "0O"):
		base, digits = 8, digits[2:]
	case strings.HasPrefix(digits, "0b") || strings.HasPrefix(digits, "0B"):
		base, digits = 2, digits[2:]
	}
	if base == 10 && strings.ContainsAny(digits, ".eE") {
		f, err := strconv.ParseFloat(norm, 64)
		if err != nil {
			return Token{}, syntaxErr(span, "invalid number %q", text)
		}
		return Token{Type: TFloat, Span: span, Float: f, Str: text}, nil
	}
	i, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return Token{}, syntaxErr(span, "invalid number %q", text)
	}
	return Token{Type: TInteger, Span: span, Int: sign * i, Str: text}, nil
}

func parseSpecialFloat(text string) (float64, bool) {
	switch text {
	case "inf", "+inf":
		return inf(1), true
	case "-inf":
		return inf(-1), true
	case "nan", "+nan", "-nan":
		return nan(), true
	}
	return 0, false
}

func inf(sign int) float64 {
	f, _ := strconv.ParseFloat("inf", 64)
	if sign < 0 {
		return -f
	}
	return f
}

func nan() float64 {
	f, _ := strconv.ParseFloat("nan", 64)
	return f
}

// looksLikeTimeFollows reports whether the bytes after a space continue a
// space-separated datetime like "1979-05-27 07:32:00".
func looksLikeTimeFollows(c *Cursor) bool {
	return isDigit(c.Peek(1)) && isDigit(c.Peek(2)) && c.Peek(3) == ':'
}

// isDatetimeLike mirrors TOML's three datetime shapes: anything with a
// time separator, a trailing zone, or two dashes between digits.
func isDatetimeLike(text string) bool {
	if strings.ContainsRune(text, 'T') || strings.ContainsRune(text, ':') ||
		strings.HasSuffix(text, "Z") || strings.HasSuffix(text, "z") {
		return true
	}
	dashes := 0
	for _, ch := range text {
		switch {
		case ch == '-':
			dashes++
		case ch >= '0' && ch <= '9':
		default:
			return false
		}
	}
	return dashes >= 2 && len(text) >= 8
}
