package parse

import (
	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/limits"
	"github.com/zparse/zparse/token"
)

type jsonParser struct {
	s     *token.JSONScanner
	guard *limits.Guard
	opts  *parseOpts
	tok   token.Token
}

func parseJSON(d []byte, guard *limits.Guard, opts *parseOpts) (*ir.Node, error) {
	s := token.NewJSONScanner(d, guard)
	s.Comments = opts.comments
	p := &jsonParser{s: s, guard: guard, opts: opts}
	if err := p.next(); err != nil {
		return nil, err
	}
	node, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != token.TEOF {
		return nil, syntaxErrTok(p.tok, "trailing content")
	}
	return node, nil
}

func (p *jsonParser) next() error {
	tok, err := p.s.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *jsonParser) value() (*ir.Node, error) {
	tok := p.tok
	switch tok.Type {
	case token.TLCurl:
		return p.object()
	case token.TLSquare:
		return p.array()
	case token.TString:
		node := ir.FromString(tok.Str)
		trackSpan(node, tok.Span, p.opts)
		return node, p.next()
	case token.TInteger:
		node := ir.FromInt(tok.Int)
		trackSpan(node, tok.Span, p.opts)
		return node, p.next()
	case token.TFloat:
		node := ir.FromFloat(tok.Float)
		trackSpan(node, tok.Span, p.opts)
		return node, p.next()
	case token.TTrue, token.TFalse:
		node := ir.FromBool(tok.Type == token.TTrue)
		trackSpan(node, tok.Span, p.opts)
		return node, p.next()
	case token.TNull:
		node := ir.Null()
		trackSpan(node, tok.Span, p.opts)
		return node, p.next()
	case token.TEOF:
		return nil, syntaxErrTok(tok, "unexpected end of input")
	}
	return nil, syntaxErrTok(tok, "unexpected %s", tok.Name())
}

func (p *jsonParser) object() (*ir.Node, error) {
	open := p.tok
	if err := p.guard.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.guard.ExitDepth()
	if err := p.next(); err != nil {
		return nil, err
	}
	obj := ir.NewObject()
	trackSpan(obj, open.Span, p.opts)
	seen := map[string]token.Span{}
	for {
		if p.tok.Type == token.TRCurl {
			return obj, p.next()
		}
		if p.tok.Type != token.TString {
			return nil, syntaxErrTok(p.tok, "expected object key, got %s", p.tok.Name())
		}
		key, keySpan := p.opts.interned(p.tok.Str), p.tok.Span
		if prior, dup := seen[key]; dup {
			return nil, semanticErr2(keySpan, prior, "duplicate key %q", key)
		}
		seen[key] = keySpan
		if err := p.guard.AddEntry(len(obj.Fields)); err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Type != token.TColon {
			return nil, syntaxErrTok(p.tok, "expected ':', got %s", p.tok.Name())
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		keyNode := ir.FromString(key)
		trackSpan(keyNode, keySpan, p.opts)
		obj.Fields = append(obj.Fields, keyNode)
		obj.Values = append(obj.Values, val)

		switch p.tok.Type {
		case token.TComma:
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.tok.Type == token.TRCurl && !p.opts.trailing {
				return nil, syntaxErrTok(p.tok, "trailing comma before '}'")
			}
		case token.TRCurl:
		default:
			return nil, syntaxErrTok(p.tok, "expected ',' or '}', got %s", p.tok.Name())
		}
	}
}

func (p *jsonParser) array() (*ir.Node, error) {
	open := p.tok
	if err := p.guard.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.guard.ExitDepth()
	if err := p.next(); err != nil {
		return nil, err
	}
	arr := ir.NewArray()
	trackSpan(arr, open.Span, p.opts)
	for {
		if p.tok.Type == token.TRSquare {
			return arr, p.next()
		}
		if err := p.guard.AddEntry(len(arr.Values)); err != nil {
			return nil, err
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		arr.Values = append(arr.Values, val)

		switch p.tok.Type {
		case token.TComma:
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.tok.Type == token.TRSquare && !p.opts.trailing {
				return nil, syntaxErrTok(p.tok, "trailing comma before ']'")
			}
		case token.TRSquare:
		default:
			return nil, syntaxErrTok(p.tok, "expected ',' or ']', got %s", p.tok.Name())
		}
	}
}
