package token

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/zparse/zparse/limits"
)

// JSONScanner produces JSON tokens from input bytes. With Comments set,
// // and /* */ comments are skipped as whitespace.
type JSONScanner struct {
	cur      *Cursor
	guard    *limits.Guard
	Comments bool
}

func NewJSONScanner(d []byte, guard *limits.Guard) *JSONScanner {
	return &JSONScanner{cur: NewCursor(d), guard: guard}
}

func (s *JSONScanner) Next() (Token, error) {
	if err := s.skipSpace(); err != nil {
		return Token{}, err
	}
	start := s.cur.Pos()
	if s.cur.EOF() {
		return Token{Type: TEOF, Span: SpanAt(start)}, nil
	}
	var tt TokenType
	switch b := s.cur.Cur(); b {
	case '{':
		s.cur.Next()
		tt = TLCurl
	case '}':
		s.cur.Next()
		tt = TRCurl
	case '[':
		s.cur.Next()
		tt = TLSquare
	case ']':
		s.cur.Next()
		tt = TRSquare
	case ':':
		s.cur.Next()
		tt = TColon
	case ',':
		s.cur.Next()
		tt = TComma
	case '"':
		return s.scanString(start)
	case 't':
		return s.scanKeyword(start, "true", TTrue)
	case 'f':
		return s.scanKeyword(start, "false", TFalse)
	case 'n':
		return s.scanKeyword(start, "null", TNull)
	default:
		if b == '-' || (b >= '0' && b <= '9') {
			return s.scanNumber(start)
		}
		return Token{}, syntaxErrAt(start, "unexpected character %q", string(rune(b)))
	}
	return Token{Type: tt, Span: Span{Start: start, End: s.cur.Pos()}}, nil
}

func (s *JSONScanner) skipSpace() error {
	for {
		switch s.cur.Cur() {
		case ' ', '\t', '\n', '\r':
			s.cur.Next()
		case '/':
			if !s.Comments {
				return nil
			}
			if err := s.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
		if s.cur.EOF() {
			return nil
		}
	}
}

func (s *JSONScanner) skipComment() error {
	start := s.cur.Pos()
	switch s.cur.Peek(1) {
	case '/':
		for !s.cur.EOF() && s.cur.Cur() != '\n' {
			s.cur.Next()
		}
		return nil
	case '*':
		s.cur.NextN(2)
		for !s.cur.EOF() {
			if s.cur.Cur() == '*' && s.cur.Peek(1) == '/' {
				s.cur.NextN(2)
				return nil
			}
			s.cur.Next()
		}
		return syntaxErrAt(start, "unterminated block comment")
	default:
		return syntaxErrAt(start, "unexpected character %q", "/")
	}
}

func (s *JSONScanner) scanKeyword(start Pos, kw string, tt TokenType) (Token, error) {
	if !s.cur.HasPrefix(kw) {
		return Token{}, syntaxErrAt(start, "invalid literal")
	}
	s.cur.NextN(len(kw))
	return Token{Type: tt, Span: Span{Start: start, End: s.cur.Pos()}}, nil
}

func (s *JSONScanner) scanString(start Pos) (Token, error) {
	s.cur.Next() // opening quote
	var sb strings.Builder
	for {
		if s.cur.EOF() {
			return Token{}, syntaxErr(Span{Start: start, End: s.cur.Pos()}, "unterminated string")
		}
		b := s.cur.Cur()
		switch {
		case b == '"':
			s.cur.Next()
			if s.guard != nil {
				if err := s.guard.AddString(sb.Len()); err != nil {
					return Token{}, err
				}
			}
			span := Span{Start: start, End: s.cur.Pos()}
			if !utf8.ValidString(sb.String()) {
				return Token{}, syntaxErr(span, "invalid UTF-8 in string")
			}
			return Token{Type: TString, Span: span, Str: sb.String()}, nil
		case b == '\\':
			if err := s.scanEscape(&sb); err != nil {
				return Token{}, err
			}
		case b < 0x20:
			return Token{}, syntaxErrAt(s.cur.Pos(), "control character in string")
		default:
			sb.WriteByte(b)
			s.cur.Next()
		}
		if s.guard != nil && sb.Len() > s.guard.Config().MaxStringLen {
			if err := s.guard.AddString(sb.Len()); err != nil {
				return Token{}, err
			}
		}
	}
}

func (s *JSONScanner) scanEscape(sb *strings.Builder) error {
	escPos := s.cur.Pos()
	s.cur.Next() // backslash
	if s.cur.EOF() {
		return syntaxErrAt(escPos, "invalid escape at end of input")
	}
	b := s.cur.Cur()
	s.cur.Next()
	switch b {
	case '"':
		sb.WriteByte('"')
	case '\\':
		sb.WriteByte('\\')
	case '/':
		sb.WriteByte('/')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := scanEscapedRune(s.cur, escPos)
		if err != nil {
			return err
		}
		sb.WriteRune(r)
	default:
		return syntaxErrAt(escPos, "invalid escape %q", `\`+string(rune(b)))
	}
	return nil
}

// scanEscapedRune reads the four hex digits of a \u escape, combining a
// following \u escape into one rune when the first names a surrogate.
func scanEscapedRune(cur *Cursor, at Pos) (rune, error) {
	r, err := scanHex4(cur, at)
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(r) {
		if !cur.HasPrefix(`\u`) {
			return 0, syntaxErrAt(at, "unpaired surrogate escape")
		}
		cur.NextN(2)
		lo, err := scanHex4(cur, at)
		if err != nil {
			return 0, err
		}
		r = utf16.DecodeRune(r, lo)
		if r == utf8.RuneError {
			return 0, syntaxErrAt(at, "invalid surrogate pair")
		}
	}
	return r, nil
}

func scanHex4(cur *Cursor, at Pos) (rune, error) {
	var v rune
	for range 4 {
		b := cur.Cur()
		var d rune
		switch {
		case b >= '0' && b <= '9':
			d = rune(b - '0')
		case b >= 'a' && b <= 'f':
			d = rune(b-'a') + 10
		case b >= 'A' && b <= 'F':
			d = rune(b-'A') + 10
		default:
			return 0, syntaxErrAt(at, "invalid unicode escape")
		}
		v = v<<4 | d
		cur.Next()
	}
	return v, nil
}

func (s *JSONScanner) scanNumber(start Pos) (Token, error) {
	s.cur.Consume('-')
	switch {
	case s.cur.Cur() == '0':
		s.cur.Next()
		if isDigit(s.cur.Cur()) {
			return Token{}, syntaxErrAt(start, "invalid number: leading zero")
		}
	case s.cur.Cur() >= '1' && s.cur.Cur() <= '9':
		for s.cur.Cur() >= '0' && s.cur.Cur() <= '9' {
			s.cur.Next()
		}
	default:
		return Token{}, syntaxErrAt(start, "invalid number")
	}
	isFloat := false
	if s.cur.Cur() == '.' {
		isFloat = true
		s.cur.Next()
		if !isDigit(s.cur.Cur()) {
			return Token{}, syntaxErrAt(start, "invalid number: expected fraction digits")
		}
		for isDigit(s.cur.Cur()) {
			s.cur.Next()
		}
	}
	if b := s.cur.Cur(); b == 'e' || b == 'E' {
		isFloat = true
		s.cur.Next()
		if b := s.cur.Cur(); b == '+' || b == '-' {
			s.cur.Next()
		}
		if !isDigit(s.cur.Cur()) {
			return Token{}, syntaxErrAt(start, "invalid number: expected exponent digits")
		}
		for isDigit(s.cur.Cur()) {
			s.cur.Next()
		}
	}
	text := string(s.cur.SliceFrom(start.Off))
	span := Span{Start: start, End: s.cur.Pos()}
	if !isFloat {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Token{Type: TInteger, Span: span, Int: i, Str: text}, nil
		}
		// out of int64 range, fall through to float
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, syntaxErr(span, "invalid number %q", text)
	}
	return Token{Type: TFloat, Span: span, Float: f, Str: text}, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
