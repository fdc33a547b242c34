package convert

import (
	"strconv"
	"strings"

	"github.com/zparse/zparse/ir"
)

// Reserved keys used when element structure is folded into maps.
const (
	attrsKey = "@attributes"
	textKey  = "#text"
)

// foldElement maps an element onto map conventions: attributes under
// "@attributes", mixed text under "#text", repeated child names into
// arrays. A text-only element folds to its text, an empty one to an
// empty object.
func foldElement(el *ir.Node) (*ir.Node, error) {
	var texts []string
	var elems []*ir.Node
	for _, child := range el.Values {
		switch child.Type {
		case ir.StringType:
			texts = append(texts, child.String)
		case ir.ElementType:
			elems = append(elems, child)
		}
	}
	if len(el.Attrs) == 0 && len(elems) == 0 {
		if len(texts) == 0 {
			return ir.NewObject(), nil
		}
		return ir.FromString(strings.Join(texts, " ")), nil
	}

	obj := ir.NewObject()
	if len(el.Attrs) > 0 {
		attrs := ir.NewObject()
		for _, a := range el.Attrs {
			attrs.SetField(a.Name, ir.FromString(a.Value))
		}
		obj.SetField(attrsKey, attrs)
	}
	grouped := map[string]bool{}
	for _, child := range elems {
		folded, err := foldElement(child)
		if err != nil {
			return nil, err
		}
		existing := obj.Get(child.String)
		switch {
		case existing == nil:
			obj.SetField(child.String, folded)
		case grouped[child.String]:
			existing.Append(folded)
		default:
			arr := ir.NewArray(existing, folded)
			grouped[child.String] = true
			obj.SetField(child.String, arr)
		}
	}
	if len(texts) > 0 {
		obj.SetField(textKey, ir.FromString(strings.Join(texts, " ")))
	}
	return obj, nil
}

// buildElement applies the inverse convention: a single-entry object
// becomes the root element of that name, anything else is wrapped in
// <root>.
func buildElement(node *ir.Node) (*ir.Node, error) {
	if node.Type == ir.ObjectType && len(node.Fields) == 1 &&
		xmlNameOK(node.Fields[0].String) &&
		node.Fields[0].String != attrsKey && node.Fields[0].String != textKey {
		key := node.Fields[0].String
		val := node.Values[0]
		if val.Type != ir.ArrayType {
			el := ir.NewElement(key)
			if err := fillElement(el, val, key); err != nil {
				return nil, err
			}
			return el, nil
		}
	}
	el := ir.NewElement("root")
	if err := fillElement(el, node, ""); err != nil {
		return nil, err
	}
	return el, nil
}

// fillElement populates el from node's content.
func fillElement(el *ir.Node, node *ir.Node, path string) error {
	switch node.Type {
	case ir.ObjectType:
		for i, f := range node.Fields {
			key, val := f.String, node.Values[i]
			switch {
			case key == attrsKey:
				if err := fillAttrs(el, val, childPath(path, key)); err != nil {
					return err
				}
			case key == textKey:
				text, err := scalarText(val, childPath(path, key))
				if err != nil {
					return err
				}
				el.Append(ir.FromString(text))
			default:
				if !xmlNameOK(key) {
					return convertErr(childPath(path, key), "key %q is not a valid XML name", key)
				}
				if err := appendChildren(el, key, val, childPath(path, key)); err != nil {
					return err
				}
			}
		}
		return nil
	case ir.ArrayType:
		return appendChildren(el, "item", node, path)
	case ir.NullType:
		return nil
	default:
		text, err := scalarText(node, path)
		if err != nil {
			return err
		}
		el.Append(ir.FromString(text))
		return nil
	}
}

// appendChildren emits one child element named key per value; array
// values fan out into repeated children.
func appendChildren(el *ir.Node, key string, val *ir.Node, path string) error {
	if val.Type == ir.ArrayType {
		for i, elem := range val.Values {
			if err := appendChildren(el, key, elem, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
		return nil
	}
	child := ir.NewElement(key)
	if err := fillElement(child, val, path); err != nil {
		return err
	}
	el.Append(child)
	return nil
}

func fillAttrs(el *ir.Node, val *ir.Node, path string) error {
	if val.Type != ir.ObjectType {
		return convertErr(path, "%s must be an object", attrsKey)
	}
	for i, f := range val.Fields {
		if !xmlNameOK(f.String) {
			return convertErr(childPath(path, f.String), "attribute %q is not a valid XML name", f.String)
		}
		text, err := scalarText(val.Values[i], childPath(path, f.String))
		if err != nil {
			return err
		}
		el.Attrs = append(el.Attrs, ir.Attr{Name: f.String, Value: text})
	}
	return nil
}

func scalarText(node *ir.Node, path string) (string, error) {
	switch node.Type {
	case ir.StringType:
		return node.String, nil
	case ir.IntType:
		return strconv.FormatInt(node.Int64, 10), nil
	case ir.FloatType:
		return strconv.FormatFloat(node.Float64, 'g', -1, 64), nil
	case ir.BoolType:
		if node.Bool {
			return "true", nil
		}
		return "false", nil
	case ir.NullType:
		return "", nil
	}
	return "", convertErr(path, "expected a scalar, got %s", node.Type)
}

func xmlNameOK(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_' || b >= 0x80:
		case i > 0 && (b >= '0' && b <= '9' || b == '-' || b == '.' || b == ':'):
		default:
			return false
		}
	}
	return true
}
