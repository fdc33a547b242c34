package token

import (
	"errors"
	"testing"

	"github.com/zparse/zparse/limits"
)

func scanAllTOML(t *testing.T, src string) []Token {
	t.Helper()
	s := NewTOMLScanner([]byte(src), limits.NewGuard(nil))
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("scan %q: %v", src, err)
		}
		toks = append(toks, tok)
		if tok.Type == TEOF {
			return toks
		}
	}
}

func TestTOMLScannerTypes(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want []TokenType
	}{
		{"key = 1", []TokenType{TLiteral, TEquals, TInteger, TEOF}},
		{"[table]", []TokenType{TLSquare, TLiteral, TRSquare, TEOF}},
		{"[[arr]]", []TokenType{TLSquare2, TLiteral, TRSquare2, TEOF}},
		{"a.b = true", []TokenType{TLiteral, TDot, TLiteral, TEquals, TTrue, TEOF}},
		{"x = { y = 1 }", []TokenType{TLiteral, TEquals, TLCurl, TLiteral, TEquals, TInteger, TRCurl, TEOF}},
		{"v = [1, 2]", []TokenType{TLiteral, TEquals, TLSquare, TInteger, TComma, TInteger, TRSquare, TEOF}},
		{"v = [[1]]", []TokenType{TLiteral, TEquals, TLSquare, TLSquare, TInteger, TRSquare, TRSquare, TEOF}},
		{"v = [\n[1],\n[2]]", []TokenType{
			TLiteral, TEquals, TLSquare, TNewline,
			TLSquare, TInteger, TRSquare, TComma, TNewline,
			TLSquare, TInteger, TRSquare, TRSquare, TEOF,
		}},
		{"a = 1\nb = 2", []TokenType{TLiteral, TEquals, TInteger, TNewline, TLiteral, TEquals, TInteger, TEOF}},
	} {
		got := types(scanAllTOML(t, tc.src))
		if !eqTypes(got, tc.want) {
			t.Errorf("%q: got %v want %v", tc.src, got, tc.want)
		}
	}
}

func TestTOMLScannerNumbers(t *testing.T) {
	for _, tc := range []struct {
		src     string
		tt      TokenType
		asInt   int64
		asFloat float64
	}{
		{"x = 42", TInteger, 42, 0},
		{"x = -17", TInteger, -17, 0},
		{"x = 1_000_000", TInteger, 1000000, 0},
		{"x = 0xDEADBEEF", TInteger, 0xDEADBEEF, 0},
		{"x = 0o755", TInteger, 0o755, 0},
		{"x = 0b1010", TInteger, 10, 0},
		{"x = 3.14", TFloat, 0, 3.14},
		{"x = 5e2", TFloat, 0, 500},
		{"x = -2.5e-1", TFloat, 0, -0.25},
		{"x = inf", TFloat, 0, 0},
		{"x = +1", TInteger, 1, 0},
	} {
		toks := scanAllTOML(t, tc.src)
		tok := toks[2]
		if tok.Type != tc.tt {
			t.Errorf("%q: type %v want %v", tc.src, tok.Type, tc.tt)
			continue
		}
		if tc.tt == TInteger && tok.Int != tc.asInt {
			t.Errorf("%q: got %d want %d", tc.src, tok.Int, tc.asInt)
		}
		if tc.tt == TFloat && tc.src != "x = inf" && tok.Float != tc.asFloat {
			t.Errorf("%q: got %v want %v", tc.src, tok.Float, tc.asFloat)
		}
	}
}

func TestTOMLScannerDatetimes(t *testing.T) {
	for _, src := range []string{
		"d = 1979-05-27",
		"d = 07:32:00",
		"d = 1979-05-27T07:32:00",
		"d = 1979-05-27T00:32:00-07:00",
		"d = 1979-05-27 07:32:00Z",
	} {
		toks := scanAllTOML(t, src)
		if toks[2].Type != TDatetime {
			t.Errorf("%q: got %v want datetime", src, toks[2].Type)
		}
	}
}

func TestTOMLScannerStrings(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want string
	}{
		{`s = "plain"`, "plain"},
		{`s = "esc\t\u00e9"`, "esc\t\u00e9"},
		{`s = 'C:\raw'`, `C:\raw`},
		{"s = \"\"\"\nfirst\nsecond\"\"\"", "first\nsecond"},
		{"s = \"\"\"one \\\n   two\"\"\"", "one two"},
		{"s = '''\nkeep\\it'''", `keep\it`},
		{`s = "\U0001F600"`, "\U0001f600"},
	} {
		toks := scanAllTOML(t, tc.src)
		if toks[2].Type != TString {
			t.Errorf("%q: got %v want string", tc.src, toks[2].Type)
			continue
		}
		if toks[2].Str != tc.want {
			t.Errorf("%q: got %q want %q", tc.src, toks[2].Str, tc.want)
		}
	}
}

func TestTOMLScannerComments(t *testing.T) {
	got := types(scanAllTOML(t, "# top\na = 1 # trailing\n"))
	want := []TokenType{TNewline, TLiteral, TEquals, TInteger, TNewline, TEOF}
	if !eqTypes(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestTOMLScannerErrors(t *testing.T) {
	for _, src := range []string{
		`s = "unterminated`,
		`s = "bad \q"`,
		`s = "\uD800"`,
		`x = 0x`,
		`x = 12..3`,
		"s = \"\"\"a \\ b\"\"\"",
		"s = \"bad \x87 byte\"",
		"s = 'bad \x87 byte'",
	} {
		s := NewTOMLScanner([]byte(src), limits.NewGuard(nil))
		var err error
		for err == nil {
			var tok Token
			tok, err = s.Next()
			if err == nil && tok.Type == TEOF {
				t.Errorf("%q: scanned clean, want syntax error", src)
				break
			}
		}
		if err != nil && !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: got %v, want syntax error", src, err)
		}
	}
}
