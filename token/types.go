package token

import "fmt"

type TokenType int

const (
	TEOF TokenType = iota
	TNewline
	TIndent
	TDedent
	TDash
	TColon
	TEquals
	TComma
	TDot
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TLSquare2
	TRSquare2
	TString
	TLiteral
	TInteger
	TFloat
	TTrue
	TFalse
	TNull
	TDatetime
	TDocSep
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:      "TEOF",
		TNewline:  "TNewline",
		TIndent:   "TIndent",
		TDedent:   "TDedent",
		TDash:     "TDash",
		TColon:    "TColon",
		TEquals:   "TEquals",
		TComma:    "TComma",
		TDot:      "TDot",
		TLCurl:    "TLCurl",
		TRCurl:    "TRCurl",
		TLSquare:  "TLSquare",
		TRSquare:  "TRSquare",
		TLSquare2: "TLSquare2",
		TRSquare2: "TRSquare2",
		TString:   "TString",
		TLiteral:  "TLiteral",
		TInteger:  "TInteger",
		TFloat:    "TFloat",
		TTrue:     "TTrue",
		TFalse:    "TFalse",
		TNull:     "TNull",
		TDatetime: "TDatetime",
		TDocSep:   "TDocSep",
	}[t]
}

// Token is a single lexical unit. Str holds the decoded text for
// TString/TLiteral/TDatetime, Int and Float the parsed numeric value
// for TInteger/TFloat.
type Token struct {
	Type  TokenType
	Span  Span
	Str   string
	Int   int64
	Float float64
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Span)
}

// Name returns the token's display name for error messages.
func (t *Token) Name() string {
	switch t.Type {
	case TEOF:
		return "end of input"
	case TNewline:
		return "newline"
	case TString:
		return "string"
	case TLiteral:
		return fmt.Sprintf("%q", t.Str)
	case TInteger:
		return "integer"
	case TFloat:
		return "float"
	case TDatetime:
		return "datetime"
	case TLCurl:
		return "'{'"
	case TRCurl:
		return "'}'"
	case TLSquare:
		return "'['"
	case TRSquare:
		return "']'"
	case TLSquare2:
		return "'[['"
	case TRSquare2:
		return "']]'"
	case TColon:
		return "':'"
	case TEquals:
		return "'='"
	case TComma:
		return "','"
	case TDot:
		return "'.'"
	case TDash:
		return "'-'"
	default:
		return t.Type.String()
	}
}
