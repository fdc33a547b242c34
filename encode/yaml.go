package encode

import (
	"io"
	"math"

	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/token"
)

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	if node.Type == ir.ElementType {
		return elementErr(node, "YAML")
	}
	if es.wire {
		return yamlFlow(node, w, es)
	}
	if node.Type.IsScalar() || node.Len() == 0 {
		if err := writeString(w, yamlScalar(node, es)); err != nil {
			return err
		}
		return writeString(w, "\n")
	}
	return yamlBlock(node, w, es)
}

// yamlBlock renders a non-empty container as indented block lines.
func yamlBlock(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		for _, i := range es.fieldOrder(node) {
			if err := writeIndent(w, es); err != nil {
				return err
			}
			if err := yamlEntry(node.Fields[i].String, node.Values[i], w, es); err != nil {
				return err
			}
		}
		return nil
	case ir.ArrayType:
		for _, v := range node.Values {
			if err := writeIndent(w, es); err != nil {
				return err
			}
			if err := yamlSeqEntry(v, w, es); err != nil {
				return err
			}
		}
		return nil
	}
	return elementErr(node, "YAML")
}

// yamlEntry writes one `key: value` line, descending for container
// values.
func yamlEntry(key string, val *ir.Node, w io.Writer, es *EncState) error {
	k := yamlKey(key, es)
	if err := writeString(w, k); err != nil {
		return err
	}
	if val.Type.IsScalar() || val.Len() == 0 {
		if err := writeString(w, es.color(ir.ObjectType, SepColor, ": ")); err != nil {
			return err
		}
		if err := writeString(w, yamlScalar(val, es)); err != nil {
			return err
		}
		return writeString(w, "\n")
	}
	if err := writeString(w, es.color(ir.ObjectType, SepColor, ":")); err != nil {
		return err
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	es.depth++
	err := yamlBlock(val, w, es)
	es.depth--
	return err
}

// yamlSeqEntry writes one dash entry. A mapping starts compact on the
// dash line only when every field is a scalar; a mapping holding
// containers goes on its own lines, since the dash column is not part
// of the indentation the continuation lines can return to.
func yamlSeqEntry(v *ir.Node, w io.Writer, es *EncState) error {
	if v.Type.IsScalar() || v.Len() == 0 {
		if err := writeString(w, "- "+yamlScalar(v, es)); err != nil {
			return err
		}
		return writeString(w, "\n")
	}
	if v.Type == ir.ObjectType && flatFields(v) {
		if err := writeString(w, "- "); err != nil {
			return err
		}
		es.depth++
		for n, i := range es.fieldOrder(v) {
			if n > 0 {
				if err := writeIndent(w, es); err != nil {
					return err
				}
			}
			if err := yamlEntry(v.Fields[i].String, v.Values[i], w, es); err != nil {
				return err
			}
		}
		es.depth--
		return nil
	}
	if v.Type != ir.ObjectType && v.Type != ir.ArrayType {
		return elementErr(v, "YAML")
	}
	if err := writeString(w, "-\n"); err != nil {
		return err
	}
	es.depth++
	err := yamlBlock(v, w, es)
	es.depth--
	return err
}

// flatFields reports whether every value of obj renders on the key's
// own line.
func flatFields(obj *ir.Node) bool {
	for _, v := range obj.Values {
		if !v.Type.IsScalar() && v.Len() > 0 {
			return false
		}
	}
	return true
}

func yamlFlow(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ArrayType:
		if err := writeString(w, "["); err != nil {
			return err
		}
		for i, v := range node.Values {
			if i > 0 {
				if err := writeString(w, ", "); err != nil {
					return err
				}
			}
			if err := yamlFlow(v, w, es); err != nil {
				return err
			}
		}
		return writeString(w, "]")
	case ir.ObjectType:
		if err := writeString(w, "{"); err != nil {
			return err
		}
		for n, i := range es.fieldOrder(node) {
			if n > 0 {
				if err := writeString(w, ", "); err != nil {
					return err
				}
			}
			if err := writeString(w, yamlKey(node.Fields[i].String, es)+": "); err != nil {
				return err
			}
			if err := yamlFlow(node.Values[i], w, es); err != nil {
				return err
			}
		}
		return writeString(w, "}")
	case ir.ElementType:
		return elementErr(node, "YAML")
	}
	return writeString(w, yamlScalar(node, es))
}

func yamlKey(key string, es *EncState) string {
	if token.PlainYAMLOK(key) {
		return es.color(ir.ObjectType, FieldColor, key)
	}
	return es.color(ir.ObjectType, FieldColor, token.Quote(key))
}

func yamlScalar(node *ir.Node, es *EncState) string {
	switch node.Type {
	case ir.NullType:
		return es.color(ir.NullType, ValueColor, "null")
	case ir.BoolType:
		return es.color(ir.BoolType, ValueColor, boolText(node.Bool))
	case ir.IntType:
		return es.color(ir.IntType, ValueColor, formatInt(node.Int64))
	case ir.FloatType:
		return es.color(ir.FloatType, ValueColor, yamlFloat(node.Float64))
	case ir.StringType:
		if token.PlainYAMLOK(node.String) {
			return es.color(ir.StringType, ValueColor, node.String)
		}
		return es.color(ir.StringType, ValueColor, token.Quote(node.String))
	case ir.DateType, ir.TimeType, ir.DateTimeType, ir.DateTimeOffsetType:
		return es.color(ir.StringType, ValueColor, node.TimeString())
	case ir.ArrayType:
		return "[]"
	case ir.ObjectType:
		return "{}"
	}
	return ""
}

func yamlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	return formatFloat(f)
}
