package parse

import (
	"strconv"
	"strings"

	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/limits"
	"github.com/zparse/zparse/token"
)

type yamlParser struct {
	s     *token.YAMLScanner
	guard *limits.Guard
	opts  *parseOpts
	tok   token.Token
	buf   []token.Token
}

func parseYAML(d []byte, guard *limits.Guard, opts *parseOpts) (*ir.Node, error) {
	p := &yamlParser{s: token.NewYAMLScanner(d, guard), guard: guard, opts: opts}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Type == token.TDocSep {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Type == token.TNewline {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if p.tok.Type == token.TEOF {
		return ir.Null(), nil
	}
	node, err := p.block()
	if err != nil {
		return nil, err
	}
	if p.tok.Type == token.TDocSep {
		return nil, syntaxErrTok(p.tok, "multiple documents are not supported")
	}
	if p.tok.Type != token.TEOF {
		return nil, syntaxErrTok(p.tok, "trailing content")
	}
	return node, nil
}

func (p *yamlParser) next() error {
	if n := len(p.buf); n > 0 {
		p.tok = p.buf[n-1]
		p.buf = p.buf[:n-1]
		return nil
	}
	tok, err := p.s.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// peek returns the token after the current one.
func (p *yamlParser) peek() (token.Token, error) {
	cur := p.tok
	if err := p.next(); err != nil {
		return token.Token{}, err
	}
	nxt := p.tok
	p.buf = append(p.buf, nxt)
	p.tok = cur
	return nxt, nil
}

func isYAMLScalarTok(tt token.TokenType) bool {
	return tt == token.TLiteral || tt == token.TString
}

// block parses a node whose content starts at the current indentation
// level: a dash sequence, a mapping, or a single value line.
func (p *yamlParser) block() (*ir.Node, error) {
	switch {
	case p.tok.Type == token.TDash:
		return p.sequence()
	case isYAMLScalarTok(p.tok.Type):
		nxt, err := p.peek()
		if err != nil {
			return nil, err
		}
		if nxt.Type == token.TColon {
			return p.mapping()
		}
		node, err := p.scalarValue()
		if err != nil {
			return nil, err
		}
		return node, p.endLine()
	case p.tok.Type == token.TLSquare || p.tok.Type == token.TLCurl:
		node, err := p.flow()
		if err != nil {
			return nil, err
		}
		return node, p.endLine()
	}
	return nil, syntaxErrTok(p.tok, "unexpected %s", p.tok.Name())
}

func (p *yamlParser) endLine() error {
	if p.tok.Type != token.TNewline {
		return syntaxErrTok(p.tok, "expected end of line, got %s", p.tok.Name())
	}
	return p.next()
}

func (p *yamlParser) atBlockEnd() bool {
	switch p.tok.Type {
	case token.TDedent, token.TEOF, token.TDocSep:
		return true
	}
	return false
}

// mapping parses `key: value` entries until the level ends. A repeated
// key replaces the earlier entry, last one wins.
func (p *yamlParser) mapping() (*ir.Node, error) {
	if err := p.guard.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.guard.ExitDepth()
	obj := ir.NewObject()
	trackSpan(obj, p.tok.Span, p.opts)
	for {
		if !isYAMLScalarTok(p.tok.Type) {
			return nil, syntaxErrTok(p.tok, "expected mapping key, got %s", p.tok.Name())
		}
		key := p.opts.interned(p.tok.Str)
		keySpan := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Type != token.TColon {
			return nil, syntaxErrTok(p.tok, "expected ':', got %s", p.tok.Name())
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		val, err := p.mappingValue()
		if err != nil {
			return nil, err
		}
		if obj.FieldIndex(key) < 0 {
			if err := p.guard.AddEntry(obj.Len()); err != nil {
				return nil, err
			}
		}
		keyIdx := obj.FieldIndex(key)
		obj.SetField(key, val)
		if keyIdx < 0 && p.opts.positions {
			obj.Fields[len(obj.Fields)-1].Span = keySpan
		}
		if p.atBlockEnd() {
			return obj, nil
		}
	}
}

// mappingValue parses what follows a key's colon: an inline value, an
// indented block, a same-level dash sequence, or nothing (null).
func (p *yamlParser) mappingValue() (*ir.Node, error) {
	if p.tok.Type != token.TNewline {
		var node *ir.Node
		var err error
		switch {
		case isYAMLScalarTok(p.tok.Type):
			nxt, perr := p.peek()
			if perr != nil {
				return nil, perr
			}
			if nxt.Type == token.TColon {
				// compact mapping on the key's line
				return p.compactMapping()
			}
			node, err = p.scalarValue()
		case p.tok.Type == token.TLSquare || p.tok.Type == token.TLCurl:
			node, err = p.flow()
		case p.tok.Type == token.TDash:
			return p.compactSequence()
		default:
			return nil, syntaxErrTok(p.tok, "unexpected %s", p.tok.Name())
		}
		if err != nil {
			return nil, err
		}
		return node, p.endLine()
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	switch {
	case p.tok.Type == token.TIndent:
		if err := p.next(); err != nil {
			return nil, err
		}
		node, err := p.block()
		if err != nil {
			return nil, err
		}
		if p.tok.Type != token.TDedent {
			return nil, syntaxErrTok(p.tok, "expected dedent, got %s", p.tok.Name())
		}
		return node, p.next()
	case p.tok.Type == token.TDash:
		// a sequence may sit at the same indentation as its key
		return p.sequence()
	}
	return ir.Null(), nil
}

func (p *yamlParser) sequence() (*ir.Node, error) {
	if err := p.guard.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.guard.ExitDepth()
	arr := ir.NewArray()
	trackSpan(arr, p.tok.Span, p.opts)
	for p.tok.Type == token.TDash {
		if err := p.guard.AddEntry(len(arr.Values)); err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		val, err := p.sequenceEntry()
		if err != nil {
			return nil, err
		}
		arr.Append(val)
	}
	return arr, nil
}

// sequenceEntry parses what follows a dash.
func (p *yamlParser) sequenceEntry() (*ir.Node, error) {
	if p.tok.Type == token.TNewline {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Type != token.TIndent {
			return ir.Null(), nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		node, err := p.block()
		if err != nil {
			return nil, err
		}
		if p.tok.Type != token.TDedent {
			return nil, syntaxErrTok(p.tok, "expected dedent, got %s", p.tok.Name())
		}
		return node, p.next()
	}
	switch {
	case isYAMLScalarTok(p.tok.Type):
		nxt, err := p.peek()
		if err != nil {
			return nil, err
		}
		if nxt.Type == token.TColon {
			return p.compactMapping()
		}
		node, err := p.scalarValue()
		if err != nil {
			return nil, err
		}
		return node, p.endLine()
	case p.tok.Type == token.TLSquare || p.tok.Type == token.TLCurl:
		node, err := p.flow()
		if err != nil {
			return nil, err
		}
		return node, p.endLine()
	case p.tok.Type == token.TDash:
		return p.compactSequence()
	}
	return nil, syntaxErrTok(p.tok, "unexpected %s", p.tok.Name())
}

// compactMapping parses a mapping whose first pair shares a line with
// its dash or key. Continuation pairs arrive indented.
func (p *yamlParser) compactMapping() (*ir.Node, error) {
	if err := p.guard.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.guard.ExitDepth()
	obj := ir.NewObject()
	trackSpan(obj, p.tok.Span, p.opts)
	if err := p.compactPair(obj); err != nil {
		return nil, err
	}
	if p.tok.Type != token.TIndent {
		return obj, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	for !p.atBlockEnd() {
		if err := p.compactPair(obj); err != nil {
			return nil, err
		}
	}
	if p.tok.Type != token.TDedent {
		return obj, nil
	}
	return obj, p.next()
}

func (p *yamlParser) compactPair(obj *ir.Node) error {
	if !isYAMLScalarTok(p.tok.Type) {
		return syntaxErrTok(p.tok, "expected mapping key, got %s", p.tok.Name())
	}
	key := p.opts.interned(p.tok.Str)
	if err := p.next(); err != nil {
		return err
	}
	if p.tok.Type != token.TColon {
		return syntaxErrTok(p.tok, "expected ':', got %s", p.tok.Name())
	}
	if err := p.next(); err != nil {
		return err
	}
	val, err := p.mappingValue()
	if err != nil {
		return err
	}
	if obj.FieldIndex(key) < 0 {
		if err := p.guard.AddEntry(obj.Len()); err != nil {
			return err
		}
	}
	obj.SetField(key, val)
	return nil
}

// compactSequence parses a sequence whose first dash shares a line with
// an outer dash.
func (p *yamlParser) compactSequence() (*ir.Node, error) {
	if err := p.guard.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.guard.ExitDepth()
	arr := ir.NewArray()
	trackSpan(arr, p.tok.Span, p.opts)
	if err := p.next(); err != nil {
		return nil, err
	}
	first, err := p.sequenceEntry()
	if err != nil {
		return nil, err
	}
	arr.Append(first)
	if p.tok.Type != token.TIndent {
		return arr, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	for p.tok.Type == token.TDash {
		if err := p.guard.AddEntry(len(arr.Values)); err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		val, err := p.sequenceEntry()
		if err != nil {
			return nil, err
		}
		arr.Append(val)
	}
	if p.tok.Type != token.TDedent {
		return arr, nil
	}
	return arr, p.next()
}

// flow parses [..] and {..} collections, which read like JSON with
// optional quoting.
func (p *yamlParser) flow() (*ir.Node, error) {
	if err := p.guard.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.guard.ExitDepth()
	switch p.tok.Type {
	case token.TLSquare:
		arr := ir.NewArray()
		trackSpan(arr, p.tok.Span, p.opts)
		if err := p.next(); err != nil {
			return nil, err
		}
		for {
			if p.tok.Type == token.TRSquare {
				return arr, p.next()
			}
			if err := p.guard.AddEntry(len(arr.Values)); err != nil {
				return nil, err
			}
			val, err := p.flowValue()
			if err != nil {
				return nil, err
			}
			arr.Append(val)
			switch p.tok.Type {
			case token.TComma:
				if err := p.next(); err != nil {
					return nil, err
				}
			case token.TRSquare:
			default:
				return nil, syntaxErrTok(p.tok, "expected ',' or ']', got %s", p.tok.Name())
			}
		}
	case token.TLCurl:
		obj := ir.NewObject()
		trackSpan(obj, p.tok.Span, p.opts)
		if err := p.next(); err != nil {
			return nil, err
		}
		for {
			if p.tok.Type == token.TRCurl {
				return obj, p.next()
			}
			if !isYAMLScalarTok(p.tok.Type) {
				return nil, syntaxErrTok(p.tok, "expected mapping key, got %s", p.tok.Name())
			}
			key := p.opts.interned(p.tok.Str)
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.tok.Type != token.TColon {
				return nil, syntaxErrTok(p.tok, "expected ':', got %s", p.tok.Name())
			}
			if err := p.next(); err != nil {
				return nil, err
			}
			val, err := p.flowValue()
			if err != nil {
				return nil, err
			}
			if obj.FieldIndex(key) < 0 {
				if err := p.guard.AddEntry(obj.Len()); err != nil {
					return nil, err
				}
			}
			obj.SetField(key, val)
			switch p.tok.Type {
			case token.TComma:
				if err := p.next(); err != nil {
					return nil, err
				}
			case token.TRCurl:
			default:
				return nil, syntaxErrTok(p.tok, "expected ',' or '}', got %s", p.tok.Name())
			}
		}
	}
	return nil, syntaxErrTok(p.tok, "unexpected %s", p.tok.Name())
}

func (p *yamlParser) flowValue() (*ir.Node, error) {
	switch {
	case p.tok.Type == token.TLSquare || p.tok.Type == token.TLCurl:
		return p.flow()
	case isYAMLScalarTok(p.tok.Type):
		return p.scalarValue()
	}
	return nil, syntaxErrTok(p.tok, "unexpected %s", p.tok.Name())
}

// scalarValue turns the current scalar token into a node. Quoted
// scalars stay strings; plain scalars resolve to null, bool, number,
// or string.
func (p *yamlParser) scalarValue() (*ir.Node, error) {
	tok := p.tok
	var node *ir.Node
	if tok.Type == token.TString {
		node = ir.FromString(tok.Str)
	} else {
		node = resolvePlain(tok.Str)
	}
	trackSpan(node, tok.Span, p.opts)
	return node, p.next()
}

func resolvePlain(s string) *ir.Node {
	switch s {
	case "", "~", "null", "Null", "NULL":
		return ir.Null()
	case "true", "True", "TRUE":
		return ir.FromBool(true)
	case "false", "False", "FALSE":
		return ir.FromBool(false)
	}
	if looksNumeric(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ir.FromInt(i)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return ir.FromFloat(f)
		}
	}
	return ir.FromString(s)
}

func looksNumeric(s string) bool {
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		switch b := s[i]; {
		case b >= '0' && b <= '9':
		case b == '.' || b == 'e' || b == 'E' || b == '-' || b == '+':
		default:
			return false
		}
	}
	return strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
}
