// Package parse turns JSON, TOML, YAML, and XML text into ir trees.
// All four parsers fail on the first error and guard recursion depth,
// input size, string length, and container entry counts.
package parse

import (
	"fmt"

	"github.com/zparse/zparse/debug"
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/limits"
	"github.com/zparse/zparse/token"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.JSONFormat}
	for _, f := range opts {
		f(pOpts)
	}
	guard := limits.NewGuard(pOpts.limits)
	if err := guard.CheckSize(len(d)); err != nil {
		return nil, err
	}
	var node *ir.Node
	var err error
	switch pOpts.format {
	case format.JSONFormat:
		node, err = parseJSON(d, guard, pOpts)
	case format.TOMLFormat:
		node, err = parseTOML(d, guard, pOpts)
	case format.YAMLFormat:
		node, err = parseYAML(d, guard, pOpts)
	case format.XMLFormat:
		node, err = parseXML(d, guard, pOpts)
	default:
		return nil, fmt.Errorf("%w: %d", format.ErrBadFormat, pOpts.format)
	}
	if debug.Parse() {
		debug.Logf("parse %s: %d bytes, err=%v\n", pOpts.format, len(d), err)
	}
	return node, err
}

func trackSpan(node *ir.Node, span token.Span, opts *parseOpts) {
	if opts.positions {
		node.Span = span
	}
}
