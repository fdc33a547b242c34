package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/zparse/zparse/ir"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8"?>`

func encodeXML(node *ir.Node, w io.Writer, es *EncState) error {
	if node.Type != ir.ElementType {
		return fmt.Errorf("%w: XML requires an element at the root, got %s",
			ErrEncode, node.Type)
	}
	if !es.wire {
		if err := writeString(w, xmlDecl+"\n"); err != nil {
			return err
		}
	}
	if err := xmlElement(node, w, es); err != nil {
		return err
	}
	if !es.wire {
		return writeString(w, "\n")
	}
	return nil
}

func xmlElement(node *ir.Node, w io.Writer, es *EncState) error {
	open := "<" + node.String
	for _, a := range node.Attrs {
		open += " " + a.Name + `="` + escapeXML(a.Value, true) + `"`
	}
	if len(node.Values) == 0 {
		return writeString(w, open+"/>")
	}
	if err := writeString(w, open+">"); err != nil {
		return err
	}
	if onlyText(node) {
		for _, v := range node.Values {
			if err := writeString(w, escapeXML(v.String, false)); err != nil {
				return err
			}
		}
		return writeString(w, "</"+node.String+">")
	}
	es.depth++
	for _, v := range node.Values {
		if err := xmlBreak(w, es); err != nil {
			return err
		}
		switch v.Type {
		case ir.ElementType:
			if err := xmlElement(v, w, es); err != nil {
				return err
			}
		case ir.StringType:
			if err := writeString(w, escapeXML(v.String, false)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s node inside element <%s>, convert it first",
				ErrEncode, v.Type, node.String)
		}
	}
	es.depth--
	if err := xmlBreak(w, es); err != nil {
		return err
	}
	return writeString(w, "</"+node.String+">")
}

func onlyText(node *ir.Node) bool {
	for _, v := range node.Values {
		if v.Type != ir.StringType {
			return false
		}
	}
	return true
}

func xmlBreak(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	return writeIndent(w, es)
}

func escapeXML(s string, attr bool) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	if attr {
		r = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;",
			`"`, "&quot;", "'", "&apos;")
	}
	return r.Replace(s)
}
