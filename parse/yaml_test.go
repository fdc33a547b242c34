package parse

import (
	"errors"
	"testing"

	"github.com/zparse/zparse/ir"
)

func parseYAMLOK(t *testing.T, src string) *ir.Node {
	t.Helper()
	node, err := Parse([]byte(src), ParseYAML())
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return node
}

func TestParseYAMLMapping(t *testing.T) {
	node := parseYAMLOK(t, `
name: zed
count: 3
ratio: 0.5
ok: true
none: null
`)
	if node.Get("name").String != "zed" {
		t.Errorf("name: %+v", node.Get("name"))
	}
	if node.Get("count").Type != ir.IntType || node.Get("count").Int64 != 3 {
		t.Errorf("count: %+v", node.Get("count"))
	}
	if node.Get("ratio").Float64 != 0.5 {
		t.Errorf("ratio: %+v", node.Get("ratio"))
	}
	if node.Get("ok").Type != ir.BoolType || !node.Get("ok").Bool {
		t.Errorf("ok: %+v", node.Get("ok"))
	}
	if node.Get("none").Type != ir.NullType {
		t.Errorf("none: %+v", node.Get("none"))
	}
}

func TestParseYAMLNested(t *testing.T) {
	node := parseYAMLOK(t, `
server:
  host: localhost
  port: 8080
  tls:
    enabled: true
`)
	server := node.Get("server")
	if server.Get("port").Int64 != 8080 {
		t.Errorf("port: %+v", server.Get("port"))
	}
	if !server.Get("tls").Get("enabled").Bool {
		t.Errorf("tls: %+v", server.Get("tls"))
	}
}

func TestParseYAMLSequences(t *testing.T) {
	node := parseYAMLOK(t, `
indented:
  - one
  - two
flush:
- 1
- 2
flow: [a, b]
`)
	ind := node.Get("indented")
	if ind.Type != ir.ArrayType || ind.Values[1].String != "two" {
		t.Errorf("indented: %+v", ind)
	}
	flush := node.Get("flush")
	if len(flush.Values) != 2 || flush.Values[0].Int64 != 1 {
		t.Errorf("flush: %+v", flush)
	}
	flow := node.Get("flow")
	if len(flow.Values) != 2 || flow.Values[1].String != "b" {
		t.Errorf("flow: %+v", flow)
	}
}

func TestParseYAMLSequenceOfMappings(t *testing.T) {
	node := parseYAMLOK(t, `
- name: a
  size: 1
- name: b
  size: 2
`)
	if node.Type != ir.ArrayType || len(node.Values) != 2 {
		t.Fatalf("root: %+v", node)
	}
	if node.Values[0].Get("size").Int64 != 1 {
		t.Errorf("first: %+v", node.Values[0])
	}
	if node.Values[1].Get("name").String != "b" {
		t.Errorf("second: %+v", node.Values[1])
	}
}

func TestParseYAMLQuotedStaysString(t *testing.T) {
	node := parseYAMLOK(t, `
a: "true"
b: '123'
c: "null"
`)
	for _, key := range []string{"a", "b", "c"} {
		if got := node.Get(key); got.Type != ir.StringType {
			t.Errorf("%s: got %v want string", key, got.Type)
		}
	}
}

func TestParseYAMLBlockScalar(t *testing.T) {
	node := parseYAMLOK(t, "text: |\n  line one\n  line two\n")
	if node.Get("text").String != "line one\nline two\n" {
		t.Errorf("got %q", node.Get("text").String)
	}
}

func TestParseYAMLDuplicateKeyLastWins(t *testing.T) {
	node := parseYAMLOK(t, "a: 1\na: 2\n")
	if node.Len() != 1 || node.Get("a").Int64 != 2 {
		t.Errorf("got %+v", node)
	}
}

func TestParseYAMLFlowMapping(t *testing.T) {
	node := parseYAMLOK(t, "m: {a: 1, b: [x, y]}\n")
	m := node.Get("m")
	if m.Get("a").Int64 != 1 {
		t.Errorf("a: %+v", m.Get("a"))
	}
	if m.Get("b").Values[0].String != "x" {
		t.Errorf("b: %+v", m.Get("b"))
	}
}

func TestParseYAMLDocumentHeader(t *testing.T) {
	node := parseYAMLOK(t, "---\na: 1\n")
	if node.Get("a").Int64 != 1 {
		t.Errorf("got %+v", node)
	}
	_, err := Parse([]byte("---\na: 1\n---\nb: 2\n"), ParseYAML())
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("second document: got %v, want syntax error", err)
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	node := parseYAMLOK(t, "")
	if node.Type != ir.NullType {
		t.Errorf("got %v", node.Type)
	}
	node = parseYAMLOK(t, "# only a comment\n")
	if node.Type != ir.NullType {
		t.Errorf("comment only: got %v", node.Type)
	}
}

func TestParseYAMLScalarRoot(t *testing.T) {
	node := parseYAMLOK(t, "just a plain sentence\n")
	if node.Type != ir.StringType || node.String != "just a plain sentence" {
		t.Errorf("got %+v", node)
	}
}

func TestParseYAMLSyntaxErrors(t *testing.T) {
	for _, src := range []string{
		"a:\n\tb: 1\n",
		"a: [1, 2\n",
		"a: \"unterminated\n",
	} {
		_, err := Parse([]byte(src), ParseYAML())
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: got %v, want syntax error", src, err)
		}
	}
}
