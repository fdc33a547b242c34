package encode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zparse/zparse/debug"
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/ir"
)

const defaultIndent = 2

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{format: format.JSONFormat, indent: defaultIndent}
	for _, opt := range opts {
		opt(es)
	}
	if es.indent < 0 {
		return fmt.Errorf("%w: indent must be positive, got %d", ErrEncode, es.indent)
	}
	if es.indent == 0 {
		es.indent = defaultIndent
	}
	if debug.Encode() {
		debug.Logf("encode %s: root %s\n", es.format, node.Type)
	}
	switch es.format {
	case format.JSONFormat:
		return encodeJSON(node, w, es)
	case format.TOMLFormat:
		return encodeTOML(node, w, es)
	case format.YAMLFormat:
		return encodeYAML(node, w, es)
	case format.XMLFormat:
		return encodeXML(node, w, es)
	}
	return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
}

func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func MustString(node *ir.Node, opts ...EncodeOption) string {
	s, err := String(node, opts...)
	if err != nil {
		panic(err)
	}
	return strings.TrimRight(s, "\n")
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeIndent(w io.Writer, es *EncState) error {
	return writeString(w, strings.Repeat(" ", es.depth*es.indent))
}

// formatFloat renders a finite f so it reads back as a float, not an
// integer. Infinities and NaN are handled per format by the emitters.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func elementErr(node *ir.Node, target string) error {
	return fmt.Errorf("%w: cannot render element <%s> as %s, convert it first",
		ErrEncode, node.String, target)
}
