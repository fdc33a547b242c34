package parse

import (
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/intern"
	"github.com/zparse/zparse/limits"
)

type parseOpts struct {
	format    format.Format
	limits    *limits.Config
	comments  bool
	trailing  bool
	positions bool
	intern    *intern.Table
}

type ParseOption func(*parseOpts)

func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseTOML() ParseOption {
	return ParseFormat(format.TOMLFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseXML() ParseOption {
	return ParseFormat(format.XMLFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseLimits overrides the default resource limits. Zero fields keep
// their defaults.
func ParseLimits(cfg *limits.Config) ParseOption {
	return func(o *parseOpts) { o.limits = cfg }
}

// JSONComments accepts // and /* */ comments in JSON input.
func JSONComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

// JSONTrailingCommas accepts a comma before a closing ] or }.
func JSONTrailingCommas(v bool) ParseOption {
	return func(o *parseOpts) { o.trailing = v }
}

// ParsePositions records each node's source span on the node.
func ParsePositions(v bool) ParseOption {
	return func(o *parseOpts) { o.positions = v }
}

// Intern routes object keys and short strings through a shared table.
func Intern(t *intern.Table) ParseOption {
	return func(o *parseOpts) { o.intern = t }
}

func (o *parseOpts) interned(s string) string {
	if o.intern == nil {
		return s
	}
	return o.intern.Intern(s)
}
