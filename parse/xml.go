package parse

import (
	"strconv"
	"strings"

	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/limits"
	"github.com/zparse/zparse/token"
)

type xmlParser struct {
	cur   *token.Cursor
	guard *limits.Guard
	opts  *parseOpts
}

func parseXML(d []byte, guard *limits.Guard, opts *parseOpts) (*ir.Node, error) {
	p := &xmlParser{cur: token.NewCursor(d), guard: guard, opts: opts}
	p.skipMisc()
	if p.cur.EOF() {
		return nil, syntaxErrSpan(token.SpanAt(p.cur.Pos()), "missing root element")
	}
	if p.cur.Cur() != '<' {
		return nil, syntaxErrSpan(token.SpanAt(p.cur.Pos()), "expected '<', got %q", string(rune(p.cur.Cur())))
	}
	root, err := p.element()
	if err != nil {
		return nil, err
	}
	p.skipMisc()
	if !p.cur.EOF() {
		return nil, syntaxErrSpan(token.SpanAt(p.cur.Pos()), "content after root element")
	}
	return root, nil
}

// skipMisc consumes whitespace, comments, processing instructions, and
// doctype declarations between markup.
func (p *xmlParser) skipMisc() {
	for {
		switch p.cur.Cur() {
		case ' ', '\t', '\n', '\r':
			p.cur.Next()
			continue
		case '<':
			switch {
			case p.cur.HasPrefix("<?"):
				p.skipUntil("?>")
				continue
			case p.cur.HasPrefix("<!--"):
				p.skipUntil("-->")
				continue
			case p.cur.HasPrefix("<!DOCTYPE") || p.cur.HasPrefix("<!doctype"):
				p.skipDoctype()
				continue
			}
		}
		return
	}
}

func (p *xmlParser) skipUntil(end string) {
	for !p.cur.EOF() && !p.cur.HasPrefix(end) {
		p.cur.Next()
	}
	p.cur.NextN(len(end))
}

func (p *xmlParser) skipDoctype() {
	// internal subsets nest brackets
	depth := 0
	for !p.cur.EOF() {
		switch p.cur.Cur() {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth <= 0 {
				p.cur.Next()
				return
			}
		}
		p.cur.Next()
	}
}

func isNameStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_' || b >= 0x80
}

func isNameByte(b byte) bool {
	return isNameStart(b) || b >= '0' && b <= '9' || b == '-' || b == '.' || b == ':'
}

func (p *xmlParser) name() (string, token.Span, error) {
	start := p.cur.Pos()
	if !isNameStart(p.cur.Cur()) {
		return "", token.SpanAt(start), syntaxErrSpan(token.SpanAt(start), "expected name")
	}
	for isNameByte(p.cur.Cur()) {
		p.cur.Next()
	}
	return string(p.cur.SliceFrom(start.Off)), token.Span{Start: start, End: p.cur.Pos()}, nil
}

func (p *xmlParser) skipSpace() {
	for {
		switch p.cur.Cur() {
		case ' ', '\t', '\n', '\r':
			p.cur.Next()
		default:
			return
		}
	}
}

// element parses one element, cursor on '<'.
func (p *xmlParser) element() (*ir.Node, error) {
	if err := p.guard.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.guard.ExitDepth()

	openStart := p.cur.Pos()
	p.cur.Next()
	tag, tagSpan, err := p.name()
	if err != nil {
		return nil, err
	}
	el := ir.NewElement(tag)
	trackSpan(el, token.Span{Start: openStart, End: p.cur.Pos()}, p.opts)

	attrSpans := map[string]token.Span{}
	for {
		p.skipSpace()
		switch p.cur.Cur() {
		case '/':
			p.cur.Next()
			if !p.cur.Consume('>') {
				return nil, syntaxErrSpan(token.SpanAt(p.cur.Pos()), "expected '>' after '/'")
			}
			return el, nil
		case '>':
			p.cur.Next()
			if err := p.content(el, tag, tagSpan); err != nil {
				return nil, err
			}
			return el, nil
		case 0:
			return nil, syntaxErrSpan(token.SpanAt(p.cur.Pos()), "unterminated element <%s>", tag)
		}
		aName, aSpan, err := p.name()
		if err != nil {
			return nil, err
		}
		if prior, dup := attrSpans[aName]; dup {
			return nil, semanticErr2(aSpan, prior, "duplicate attribute %q", aName)
		}
		attrSpans[aName] = aSpan
		p.skipSpace()
		if !p.cur.Consume('=') {
			return nil, syntaxErrSpan(token.SpanAt(p.cur.Pos()), "expected '=' after attribute %q", aName)
		}
		p.skipSpace()
		aVal, err := p.attrValue()
		if err != nil {
			return nil, err
		}
		if err := p.guard.AddEntry(len(el.Attrs)); err != nil {
			return nil, err
		}
		el.Attrs = append(el.Attrs, ir.Attr{Name: p.opts.interned(aName), Value: aVal})
	}
}

func (p *xmlParser) attrValue() (string, error) {
	quote := p.cur.Cur()
	if quote != '"' && quote != '\'' {
		return "", syntaxErrSpan(token.SpanAt(p.cur.Pos()), "expected quoted attribute value")
	}
	start := p.cur.Pos()
	p.cur.Next()
	var sb strings.Builder
	for {
		switch b := p.cur.Cur(); {
		case p.cur.EOF():
			return "", syntaxErrSpan(token.Span{Start: start, End: p.cur.Pos()}, "unterminated attribute value")
		case b == quote:
			p.cur.Next()
			if p.guard != nil {
				if err := p.guard.AddString(sb.Len()); err != nil {
					return "", err
				}
			}
			return sb.String(), nil
		case b == '&':
			if err := p.entity(&sb); err != nil {
				return "", err
			}
		case b == '<':
			return "", syntaxErrSpan(token.SpanAt(p.cur.Pos()), "'<' in attribute value")
		default:
			sb.WriteByte(b)
			p.cur.Next()
		}
	}
}

// content parses children and character data up to the matching close
// tag.
func (p *xmlParser) content(el *ir.Node, tag string, tagSpan token.Span) error {
	var text strings.Builder
	flushText := func() error {
		t := strings.TrimSpace(text.String())
		text.Reset()
		if t == "" {
			return nil
		}
		if err := p.guard.AddString(len(t)); err != nil {
			return err
		}
		if err := p.guard.AddEntry(len(el.Values)); err != nil {
			return err
		}
		el.Append(ir.FromString(t))
		return nil
	}
	for {
		switch b := p.cur.Cur(); {
		case p.cur.EOF():
			return syntaxErrSpan(tagSpan, "unterminated element <%s>", tag)
		case b == '<':
			switch {
			case p.cur.HasPrefix("</"):
				if err := flushText(); err != nil {
					return err
				}
				p.cur.NextN(2)
				closeName, closeSpan, err := p.name()
				if err != nil {
					return err
				}
				if closeName != tag {
					return semanticErr2(closeSpan, tagSpan,
						"closing tag </%s> does not match <%s>", closeName, tag)
				}
				p.skipSpace()
				if !p.cur.Consume('>') {
					return syntaxErrSpan(token.SpanAt(p.cur.Pos()), "expected '>' in closing tag")
				}
				return nil
			case p.cur.HasPrefix("<!--"):
				p.skipUntil("-->")
			case p.cur.HasPrefix("<![CDATA["):
				p.cur.NextN(9)
				start := p.cur.Off()
				for !p.cur.EOF() && !p.cur.HasPrefix("]]>") {
					p.cur.Next()
				}
				if p.cur.EOF() {
					return syntaxErrSpan(tagSpan, "unterminated CDATA section")
				}
				text.Write(p.cur.SliceFrom(start))
				p.cur.NextN(3)
			case p.cur.HasPrefix("<?"):
				p.skipUntil("?>")
			default:
				if err := flushText(); err != nil {
					return err
				}
				if err := p.guard.AddEntry(len(el.Values)); err != nil {
					return err
				}
				child, err := p.element()
				if err != nil {
					return err
				}
				el.Append(child)
			}
		case b == '&':
			if err := p.entity(&text); err != nil {
				return err
			}
		case b == '>':
			return syntaxErrSpan(token.SpanAt(p.cur.Pos()), "stray '>' in content")
		default:
			text.WriteByte(b)
			p.cur.Next()
		}
	}
}

// entity decodes one &name; or &#n; reference, cursor on '&'.
func (p *xmlParser) entity(sb *strings.Builder) error {
	start := p.cur.Pos()
	p.cur.Next()
	refStart := p.cur.Off()
	for !p.cur.EOF() && p.cur.Cur() != ';' && p.cur.Off()-refStart < 12 {
		p.cur.Next()
	}
	if p.cur.Cur() != ';' {
		return syntaxErrSpan(token.SpanAt(start), "unterminated entity reference")
	}
	ref := string(p.cur.SliceFrom(refStart))
	p.cur.Next()
	switch ref {
	case "amp":
		sb.WriteByte('&')
	case "lt":
		sb.WriteByte('<')
	case "gt":
		sb.WriteByte('>')
	case "quot":
		sb.WriteByte('"')
	case "apos":
		sb.WriteByte('\'')
	default:
		if !strings.HasPrefix(ref, "#") {
			return syntaxErrSpan(token.Span{Start: start, End: p.cur.Pos()},
				"unknown entity &%s;", ref)
		}
		num := ref[1:]
		base := 10
		if strings.HasPrefix(num, "x") || strings.HasPrefix(num, "X") {
			base, num = 16, num[1:]
		}
		v, err := strconv.ParseUint(num, base, 32)
		if err != nil || v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
			return syntaxErrSpan(token.Span{Start: start, End: p.cur.Pos()},
				"invalid character reference &%s;", ref)
		}
		sb.WriteRune(rune(v))
	}
	return nil
}
