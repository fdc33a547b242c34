// Package encode renders ir trees as JSON, TOML, YAML, or XML text.
//
//	node, _ := parse.Parse(input, parse.ParseJSON())
//	out, err := encode.String(node, encode.EncodeFormat(format.YAMLFormat))
//
// Emitters are deterministic: the same tree and options always produce
// the same bytes.
package encode
