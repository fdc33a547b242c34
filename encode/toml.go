package encode

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/token"
)

func encodeTOML(node *ir.Node, w io.Writer, es *EncState) error {
	if node.Type != ir.ObjectType {
		return fmt.Errorf("%w: TOML requires an object at the root, got %s",
			ErrEncode, node.Type)
	}
	return tomlTable(node, nil, w, es, true)
}

// tomlTable emits one table: plain entries first, then subtables and
// arrays of tables as bracketed sections.
func tomlTable(node *ir.Node, path []string, w io.Writer, es *EncState, first bool) error {
	var sections []int
	for _, i := range es.fieldOrder(node) {
		key, val := node.Fields[i].String, node.Values[i]
		if isTOMLSection(val) {
			sections = append(sections, i)
			continue
		}
		line := tomlKey(key) + " = "
		if err := writeString(w, line); err != nil {
			return err
		}
		v, err := tomlValue(val, append(path, key))
		if err != nil {
			return err
		}
		if err := writeString(w, v+"\n"); err != nil {
			return err
		}
		first = false
	}
	for _, i := range sections {
		key, val := node.Fields[i].String, node.Values[i]
		sub := append(path, key)
		header := tomlPath(sub)
		if val.Type == ir.ObjectType {
			if !first {
				if err := writeString(w, "\n"); err != nil {
					return err
				}
			}
			if err := writeString(w, "["+header+"]\n"); err != nil {
				return err
			}
			if err := tomlTable(val, sub, w, es, true); err != nil {
				return err
			}
			first = false
			continue
		}
		for _, elem := range val.Values {
			if !first {
				if err := writeString(w, "\n"); err != nil {
					return err
				}
			}
			if err := writeString(w, "[["+header+"]]\n"); err != nil {
				return err
			}
			if err := tomlTable(elem, sub, w, es, true); err != nil {
				return err
			}
			first = false
		}
	}
	return nil
}

// isTOMLSection reports whether val is emitted as a bracketed section
// rather than a key = value entry.
func isTOMLSection(val *ir.Node) bool {
	if val.Type == ir.ObjectType {
		return true
	}
	if val.Type != ir.ArrayType || len(val.Values) == 0 {
		return false
	}
	for _, v := range val.Values {
		if v.Type != ir.ObjectType {
			return false
		}
	}
	return true
}

func tomlValue(node *ir.Node, path []string) (string, error) {
	switch node.Type {
	case ir.NullType:
		return "", fmt.Errorf("%w: TOML has no null, at %s", ErrEncode, tomlPath(path))
	case ir.BoolType:
		return boolText(node.Bool), nil
	case ir.IntType:
		return formatInt(node.Int64), nil
	case ir.FloatType:
		return tomlFloat(node.Float64), nil
	case ir.StringType:
		return token.Quote(node.String), nil
	case ir.DateType, ir.TimeType, ir.DateTimeType, ir.DateTimeOffsetType:
		return node.TimeString(), nil
	case ir.ArrayType:
		parts := make([]string, len(node.Values))
		for i, v := range node.Values {
			p, err := tomlValue(v, path)
			if err != nil {
				return "", err
			}
			parts[i] = p
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case ir.ObjectType:
		parts := make([]string, len(node.Fields))
		for i, f := range node.Fields {
			v, err := tomlValue(node.Values[i], append(path, f.String))
			if err != nil {
				return "", err
			}
			parts[i] = tomlKey(f.String) + " = " + v
		}
		if len(parts) == 0 {
			return "{}", nil
		}
		return "{ " + strings.Join(parts, ", ") + " }", nil
	}
	return "", elementErr(node, "TOML")
}

func tomlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return formatFloat(f)
}

func tomlKey(key string) string {
	if token.BareKeyOK(key) {
		return key
	}
	return token.Quote(key)
}

func tomlPath(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = tomlKey(p)
	}
	return strings.Join(parts, ".")
}
