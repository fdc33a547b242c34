package parse

import (
	"strings"
	"time"

	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/limits"
	"github.com/zparse/zparse/token"
)

type tomlParser struct {
	s     *token.TOMLScanner
	guard *limits.Guard
	opts  *parseOpts
	tok   token.Token

	root *ir.Node
	// table currently receiving key-value lines
	ctx *ir.Node
	// spans of keys assigned directly, for duplicate reporting
	keySpans map[*ir.Node]map[string]token.Span
	// tables opened with an explicit [header]
	explicit map[*ir.Node]token.Span
	// arrays created by [[header]]
	arrayTables map[*ir.Node]bool
	// values that may not be extended: inline tables and value arrays
	closed map[*ir.Node]bool
}

func parseTOML(d []byte, guard *limits.Guard, opts *parseOpts) (*ir.Node, error) {
	p := &tomlParser{
		s:           token.NewTOMLScanner(d, guard),
		guard:       guard,
		opts:        opts,
		root:        ir.NewObject(),
		keySpans:    map[*ir.Node]map[string]token.Span{},
		explicit:    map[*ir.Node]token.Span{},
		arrayTables: map[*ir.Node]bool{},
		closed:      map[*ir.Node]bool{},
	}
	p.ctx = p.root
	if err := p.next(); err != nil {
		return nil, err
	}
	for {
		switch p.tok.Type {
		case token.TEOF:
			return p.root, nil
		case token.TNewline:
			if err := p.next(); err != nil {
				return nil, err
			}
		case token.TLSquare:
			if err := p.tableHeader(); err != nil {
				return nil, err
			}
		case token.TLSquare2:
			if err := p.arrayTableHeader(); err != nil {
				return nil, err
			}
		default:
			if err := p.keyValue(p.ctx); err != nil {
				return nil, err
			}
			if p.tok.Type != token.TNewline && p.tok.Type != token.TEOF {
				return nil, syntaxErrTok(p.tok, "expected end of line, got %s", p.tok.Name())
			}
		}
	}
}

func (p *tomlParser) next() error {
	tok, err := p.s.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// key reads one dotted key path with the span of each segment.
func (p *tomlParser) key() ([]string, []token.Span, error) {
	var segs []string
	var spans []token.Span
	for {
		switch p.tok.Type {
		case token.TLiteral, token.TString:
			segs = append(segs, p.opts.interned(p.tok.Str))
		case token.TInteger, token.TFloat, token.TDatetime, token.TTrue, token.TFalse:
			// bare keys may be all digits or read like keywords
			segs = append(segs, p.opts.interned(p.rawKeyText()))
		default:
			return nil, nil, syntaxErrTok(p.tok, "expected key, got %s", p.tok.Name())
		}
		spans = append(spans, p.tok.Span)
		if err := p.next(); err != nil {
			return nil, nil, err
		}
		if p.tok.Type != token.TDot {
			return segs, spans, nil
		}
		if err := p.next(); err != nil {
			return nil, nil, err
		}
	}
}

func (p *tomlParser) rawKeyText() string {
	switch p.tok.Type {
	case token.TTrue:
		return "true"
	case token.TFalse:
		return "false"
	}
	return p.tok.Str
}

// descend walks all but the last key segment, creating implicit tables.
func (p *tomlParser) descend(from *ir.Node, segs []string, spans []token.Span) (*ir.Node, error) {
	cur := from
	for i := 0; i < len(segs)-1; i++ {
		if err := p.guard.EnterDepth(); err != nil {
			return nil, err
		}
		defer p.guard.ExitDepth()
		next := cur.Get(segs[i])
		switch {
		case next == nil:
			if err := p.guard.AddEntry(cur.Len()); err != nil {
				return nil, err
			}
			next = ir.NewObject()
			trackSpan(next, spans[i], p.opts)
			cur.SetField(segs[i], next)
		case p.closed[next]:
			return nil, semanticErr(spans[i], "cannot extend inline value %q", segs[i])
		case next.Type == ir.ArrayType && p.arrayTables[next]:
			next = next.Values[len(next.Values)-1]
		case next.Type != ir.ObjectType:
			return nil, semanticErr(spans[i], "key %q is not a table", segs[i])
		}
		cur = next
	}
	return cur, nil
}

func (p *tomlParser) keyValue(table *ir.Node) error {
	segs, spans, err := p.key()
	if err != nil {
		return err
	}
	if p.tok.Type != token.TEquals {
		return syntaxErrTok(p.tok, "expected '=', got %s", p.tok.Name())
	}
	if err := p.next(); err != nil {
		return err
	}
	val, err := p.value()
	if err != nil {
		return err
	}
	target, err := p.descend(table, segs, spans)
	if err != nil {
		return err
	}
	last, lastSpan := segs[len(segs)-1], spans[len(spans)-1]
	if p.closed[target] {
		return semanticErr(lastSpan, "cannot extend inline value")
	}
	if prior, dup := p.spanOf(target, last); dup {
		return semanticErr2(lastSpan, prior, "duplicate key %q", last)
	}
	if target.Get(last) != nil {
		return semanticErr(lastSpan, "key %q conflicts with a table", last)
	}
	if err := p.guard.AddEntry(target.Len()); err != nil {
		return err
	}
	keyNode := ir.FromString(last)
	trackSpan(keyNode, lastSpan, p.opts)
	target.Fields = append(target.Fields, keyNode)
	target.Values = append(target.Values, val)
	p.setSpan(target, last, lastSpan)
	return nil
}

func (p *tomlParser) spanOf(table *ir.Node, key string) (token.Span, bool) {
	s, ok := p.keySpans[table][key]
	return s, ok
}

func (p *tomlParser) setSpan(table *ir.Node, key string, s token.Span) {
	m := p.keySpans[table]
	if m == nil {
		m = map[string]token.Span{}
		p.keySpans[table] = m
	}
	m[key] = s
}

func (p *tomlParser) tableHeader() error {
	headSpan := p.tok.Span
	if err := p.next(); err != nil {
		return err
	}
	segs, spans, err := p.key()
	if err != nil {
		return err
	}
	if p.tok.Type != token.TRSquare {
		return syntaxErrTok(p.tok, "expected ']', got %s", p.tok.Name())
	}
	if err := p.next(); err != nil {
		return err
	}
	parent, err := p.descend(p.root, segs, spans)
	if err != nil {
		return err
	}
	last, lastSpan := segs[len(segs)-1], spans[len(spans)-1]
	table := parent.Get(last)
	switch {
	case table == nil:
		if err := p.guard.AddEntry(parent.Len()); err != nil {
			return err
		}
		table = ir.NewObject()
		trackSpan(table, headSpan, p.opts)
		parent.SetField(last, table)
	case p.closed[table]:
		return semanticErr(lastSpan, "cannot redefine inline value %q", last)
	case table.Type != ir.ObjectType:
		return semanticErr(lastSpan, "key %q is not a table", last)
	}
	if prior, dup := p.explicit[table]; dup {
		return semanticErr2(lastSpan, prior, "table %q already defined", strings.Join(segs, "."))
	}
	if _, assigned := p.spanOf(parent, last); assigned {
		prior := p.keySpans[parent][last]
		return semanticErr2(lastSpan, prior, "table %q already defined", strings.Join(segs, "."))
	}
	p.explicit[table] = lastSpan
	p.ctx = table
	return nil
}

func (p *tomlParser) arrayTableHeader() error {
	if err := p.next(); err != nil {
		return err
	}
	segs, spans, err := p.key()
	if err != nil {
		return err
	}
	if p.tok.Type != token.TRSquare2 {
		return syntaxErrTok(p.tok, "expected ']]', got %s", p.tok.Name())
	}
	if err := p.next(); err != nil {
		return err
	}
	parent, err := p.descend(p.root, segs, spans)
	if err != nil {
		return err
	}
	last, lastSpan := segs[len(segs)-1], spans[len(spans)-1]
	arr := parent.Get(last)
	switch {
	case arr == nil:
		if err := p.guard.AddEntry(parent.Len()); err != nil {
			return err
		}
		arr = ir.NewArray()
		trackSpan(arr, lastSpan, p.opts)
		parent.SetField(last, arr)
		p.arrayTables[arr] = true
	case !p.arrayTables[arr]:
		return semanticErr(lastSpan, "key %q is not an array of tables", last)
	}
	if err := p.guard.AddEntry(len(arr.Values)); err != nil {
		return err
	}
	table := ir.NewObject()
	trackSpan(table, lastSpan, p.opts)
	arr.Append(table)
	p.ctx = table
	return nil
}

func (p *tomlParser) value() (*ir.Node, error) {
	tok := p.tok
	switch tok.Type {
	case token.TString, token.TLiteral:
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
	case token.TDatetime:
		node, err := datetimeNode(tok)
		if err != nil {
			return nil, err
		}
		trackSpan(node, tok.Span, p.opts)
		return node, p.next()
	case token.TLSquare:
		return p.valueArray()
	case token.TLCurl:
		return p.inlineTable()
	}
	return nil, syntaxErrTok(tok, "expected value, got %s", tok.Name())
}

// valueArray parses a bracketed array value. Line breaks are allowed
// anywhere between elements.
func (p *tomlParser) valueArray() (*ir.Node, error) {
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
	p.closed[arr] = true
	for {
		for p.tok.Type == token.TNewline {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
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
		arr.Append(val)
		for p.tok.Type == token.TNewline {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
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
}

func (p *tomlParser) inlineTable() (*ir.Node, error) {
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
	if p.tok.Type == token.TRCurl {
		p.closed[obj] = true
		return obj, p.next()
	}
	for {
		if err := p.keyValue(obj); err != nil {
			return nil, err
		}
		switch p.tok.Type {
		case token.TComma:
			if err := p.next(); err != nil {
				return nil, err
			}
		case token.TRCurl:
			p.closed[obj] = true
			return obj, p.next()
		default:
			return nil, syntaxErrTok(p.tok, "expected ',' or '}', got %s", p.tok.Name())
		}
	}
}

// datetimeNode classifies a datetime literal into one of the four
// temporal node types.
func datetimeNode(tok token.Token) (*ir.Node, error) {
	text := tok.Str
	norm := strings.ReplaceAll(text, " ", "T")
	norm = strings.Replace(norm, "t", "T", 1)
	if strings.HasSuffix(norm, "z") {
		norm = strings.TrimSuffix(norm, "z") + "Z"
	}
	for _, shape := range []struct {
		layout string
		typ    ir.Type
	}{
		{"2006-01-02T15:04:05Z07:00", ir.DateTimeOffsetType},
		{"2006-01-02T15:04:05", ir.DateTimeType},
		{"2006-01-02", ir.DateType},
		{"15:04:05", ir.TimeType},
	} {
		if t, err := time.Parse(shape.layout, norm); err == nil {
			return ir.FromTime(shape.typ, t), nil
		}
	}
	return nil, syntaxErrSpan(tok.Span, "invalid datetime %q", text)
}
