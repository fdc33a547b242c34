package zparse

import (
	"errors"
	"fmt"
	"os"

	"github.com/zparse/zparse/convert"
	"github.com/zparse/zparse/encode"
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/limits"
	"github.com/zparse/zparse/parse"
)

// ErrIO marks failures reading or writing documents outside the core,
// such as a missing input file. Core parse, convert, and format calls
// never return it.
var ErrIO = errors.New("i/o error")

// Parse reads d in the given format and returns the value tree.
func Parse(d []byte, f format.Format, opts ...parse.ParseOption) (*ir.Node, error) {
	all := append([]parse.ParseOption{parse.ParseFormat(f)}, opts...)
	return parse.Parse(d, all...)
}

// ParseFile parses the file at path, inferring the format from its
// extension unless opts override it.
func ParseFile(path string, opts ...parse.ParseOption) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	f, err := format.InferPath(path)
	if err != nil {
		return nil, err
	}
	return Parse(d, f, opts...)
}

// Convert parses d as the from format and serializes it as the to
// format, reshaping values that do not exist in the target's data
// model along the way.
func Convert(d []byte, from, to format.Format, opts *convert.Options) ([]byte, error) {
	return convert.Bytes(d, from, to, opts)
}

// Format serializes node in the given format.
func Format(node *ir.Node, f format.Format, opts ...encode.EncodeOption) (string, error) {
	all := append([]encode.EncodeOption{encode.EncodeFormat(f)}, opts...)
	return encode.String(node, all...)
}

// Limits returns a limits configuration with the given ceilings. Zero
// fields keep the defaults.
func Limits(maxDepth, maxSize, maxStringLen, maxEntries int) *limits.Config {
	return &limits.Config{
		MaxDepth:     maxDepth,
		MaxSize:      maxSize,
		MaxStringLen: maxStringLen,
		MaxEntries:   maxEntries,
	}
}
