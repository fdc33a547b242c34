// Package convert transforms ir trees between format conventions.
// Parsing and encoding stay format-specific; everything that depends
// on the source and target format pair lives here.
package convert

import (
	"errors"
	"fmt"

	"github.com/zparse/zparse/debug"
	"github.com/zparse/zparse/encode"
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/parse"
)

// ErrConvert marks values with no representation in the target format.
var ErrConvert = errors.New("conversion error")

func convertErr(path string, f string, args ...any) error {
	if path == "" {
		path = "(root)"
	}
	return fmt.Errorf("%w: %s at %s", ErrConvert, fmt.Sprintf(f, args...), path)
}

// Value maps node, parsed from format from, onto the conventions of
// format to. The input tree is not modified.
func Value(node *ir.Node, from, to format.Format) (*ir.Node, error) {
	if node == nil {
		return nil, convertErr("", "nil value")
	}
	if debug.Convert() {
		debug.Logf("convert %s -> %s: root %s\n", from, to, node.Type)
	}
	res := node.Clone()
	if from.IsXML() && !to.IsXML() {
		if res.Type != ir.ElementType {
			return nil, convertErr("", "XML source did not produce an element")
		}
		folded, err := foldElement(res)
		if err != nil {
			return nil, err
		}
		root := ir.NewObject()
		root.SetField(res.String, folded)
		res = root
	}
	if !to.IsTOML() {
		res = stringifyTemporal(res)
	}
	if to.IsXML() && !from.IsXML() {
		return buildElement(res)
	}
	if to.IsTOML() {
		if res.Type != ir.ObjectType {
			return nil, convertErr("", "TOML requires an object at the root, got %s", res.Type)
		}
		if path, ok := findNull(res, ""); ok {
			return nil, convertErr(path, "TOML has no null")
		}
	}
	return res, nil
}

// Options bundles the knobs for the parse and encode halves of Bytes.
type Options struct {
	Parse  []parse.ParseOption
	Encode []encode.EncodeOption
}

// Bytes parses input as from, converts, and encodes as to.
func Bytes(input []byte, from, to format.Format, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = &Options{}
	}
	pOpts := append([]parse.ParseOption{parse.ParseFormat(from)}, opts.Parse...)
	node, err := parse.Parse(input, pOpts...)
	if err != nil {
		return nil, err
	}
	node, err = Value(node, from, to)
	if err != nil {
		return nil, err
	}
	eOpts := append([]encode.EncodeOption{encode.EncodeFormat(to)}, opts.Encode...)
	out, err := encode.String(node, eOpts...)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// stringifyTemporal replaces date/time nodes with their canonical text
// for targets without a native datetime type.
func stringifyTemporal(node *ir.Node) *ir.Node {
	if node.Type.IsTemporal() {
		return ir.FromString(node.TimeString())
	}
	for i, f := range node.Fields {
		node.Fields[i] = stringifyTemporal(f)
	}
	for i, v := range node.Values {
		node.Values[i] = stringifyTemporal(v)
	}
	return node
}

func findNull(node *ir.Node, path string) (string, bool) {
	if node.Type == ir.NullType {
		return path, true
	}
	if node.Type == ir.ObjectType {
		for i, f := range node.Fields {
			if p, ok := findNull(node.Values[i], childPath(path, f.String)); ok {
				return p, ok
			}
		}
		return "", false
	}
	for i, v := range node.Values {
		if p, ok := findNull(v, fmt.Sprintf("%s[%d]", path, i)); ok {
			return p, ok
		}
	}
	return "", false
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
