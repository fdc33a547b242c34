package encode

import (
	"fmt"
	"io"
	"math"

	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/token"
)

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	if err := jsonValue(node, w, es); err != nil {
		return err
	}
	if !es.wire {
		return writeString(w, "\n")
	}
	return nil
}

func jsonValue(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return writeString(w, es.color(ir.NullType, ValueColor, "null"))
	case ir.BoolType:
		return writeString(w, es.color(ir.BoolType, ValueColor, boolText(node.Bool)))
	case ir.IntType:
		return writeString(w, es.color(ir.IntType, ValueColor, formatInt(node.Int64)))
	case ir.FloatType:
		if math.IsInf(node.Float64, 0) || math.IsNaN(node.Float64) {
			return fmt.Errorf("%w: JSON cannot represent %v", ErrEncode, node.Float64)
		}
		return writeString(w, es.color(ir.FloatType, ValueColor, formatFloat(node.Float64)))
	case ir.StringType:
		return writeString(w, es.color(ir.StringType, ValueColor, token.Quote(node.String)))
	case ir.DateType, ir.TimeType, ir.DateTimeType, ir.DateTimeOffsetType:
		return writeString(w, es.color(ir.StringType, ValueColor, token.Quote(node.TimeString())))
	case ir.ArrayType:
		return jsonArray(node, w, es)
	case ir.ObjectType:
		return jsonObject(node, w, es)
	}
	return fmt.Errorf("%w: cannot render %s as JSON, convert it first", ErrEncode, node.Type)
}

func jsonArray(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, "[]")
	}
	if err := writeString(w, "["); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeString(w, ","); err != nil {
				return err
			}
		}
		if err := jsonBreak(w, es); err != nil {
			return err
		}
		if err := jsonValue(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := jsonBreak(w, es); err != nil {
		return err
	}
	return writeString(w, "]")
}

func jsonObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeString(w, "{}")
	}
	if err := writeString(w, "{"); err != nil {
		return err
	}
	es.depth++
	for n, i := range es.fieldOrder(node) {
		if n > 0 {
			if err := writeString(w, ","); err != nil {
				return err
			}
		}
		if err := jsonBreak(w, es); err != nil {
			return err
		}
		key := es.color(node.Values[i].Type, FieldColor, token.Quote(node.Fields[i].String))
		if err := writeString(w, key); err != nil {
			return err
		}
		sep := ": "
		if es.wire {
			sep = ":"
		}
		if err := writeString(w, es.color(ir.ObjectType, SepColor, sep)); err != nil {
			return err
		}
		if err := jsonValue(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := jsonBreak(w, es); err != nil {
		return err
	}
	return writeString(w, "}")
}

func jsonBreak(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	return writeIndent(w, es)
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
