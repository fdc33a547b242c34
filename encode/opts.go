package encode

import (
	"errors"
	"slices"
	"strings"

	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/ir"
)

// ErrEncode marks trees an emitter cannot express in its target
// format, such as a scalar root in TOML.
var ErrEncode = errors.New("encode error")

type EncState struct {
	format format.Format
	indent int
	sort   bool
	wire   bool
	colors *Colors
	depth  int
}

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeJSON() EncodeOption {
	return EncodeFormat(format.JSONFormat)
}
func EncodeTOML() EncodeOption {
	return EncodeFormat(format.TOMLFormat)
}
func EncodeYAML() EncodeOption {
	return EncodeFormat(format.YAMLFormat)
}
func EncodeXML() EncodeOption {
	return EncodeFormat(format.XMLFormat)
}

// Indent sets the number of spaces per nesting level.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// SortKeys orders object entries by key instead of insertion order.
func SortKeys(v bool) EncodeOption {
	return func(es *EncState) { es.sort = v }
}

// EncodeWire produces the most compact rendering of the format.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(t, a, s)
}

// fieldOrder returns object entry indices in emission order.
func (es *EncState) fieldOrder(node *ir.Node) []int {
	idx := make([]int, len(node.Fields))
	for i := range idx {
		idx[i] = i
	}
	if es.sort {
		slices.SortStableFunc(idx, func(a, b int) int {
			return strings.Compare(node.Fields[a].String, node.Fields[b].String)
		})
	}
	return idx
}
