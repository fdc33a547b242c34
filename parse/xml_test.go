package parse

import (
	"errors"
	"testing"

	"github.com/zparse/zparse/ir"
)

func parseXMLOK(t *testing.T, src string) *ir.Node {
	t.Helper()
	node, err := Parse([]byte(src), ParseXML())
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return node
}

func TestParseXMLBasic(t *testing.T) {
	node := parseXMLOK(t, `<?xml version="1.0"?>
<config env="prod">
  <host>localhost</host>
  <port>8080</port>
</config>`)
	if node.Type != ir.ElementType || node.String != "config" {
		t.Fatalf("root: %+v", node)
	}
	if v, ok := node.Attr("env"); !ok || v != "prod" {
		t.Errorf("env: %q %v", v, ok)
	}
	if len(node.Values) != 2 {
		t.Fatalf("children: %d", len(node.Values))
	}
	host := node.Values[0]
	if host.String != "host" || host.Values[0].String != "localhost" {
		t.Errorf("host: %+v", host)
	}
}

func TestParseXMLSelfClosing(t *testing.T) {
	node := parseXMLOK(t, `<a><b/><c x="1"/></a>`)
	if len(node.Values) != 2 {
		t.Fatalf("children: %d", len(node.Values))
	}
	if node.Values[0].String != "b" || len(node.Values[0].Values) != 0 {
		t.Errorf("b: %+v", node.Values[0])
	}
	if v, _ := node.Values[1].Attr("x"); v != "1" {
		t.Errorf("c: %+v", node.Values[1])
	}
}

func TestParseXMLEntities(t *testing.T) {
	node := parseXMLOK(t, `<t>a &amp; b &lt;tag&gt; &quot;q&quot; &apos;s&apos; &#65;&#x42;</t>`)
	want := `a & b <tag> "q" 's' AB`
	if got := node.Values[0].String; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestParseXMLCDATA(t *testing.T) {
	node := parseXMLOK(t, `<t><![CDATA[raw <markup> & text]]></t>`)
	if got := node.Values[0].String; got != "raw <markup> & text" {
		t.Errorf("got %q", got)
	}
}

func TestParseXMLCommentsSkipped(t *testing.T) {
	node := parseXMLOK(t, `<!-- head --><a><!-- in -->x</a><!-- tail -->`)
	if len(node.Values) != 1 || node.Values[0].String != "x" {
		t.Errorf("got %+v", node.Values)
	}
}

func TestParseXMLMismatchedTags(t *testing.T) {
	_, err := Parse([]byte("<a>\n  <b>text</c>\n</a>"), ParseXML())
	if !errors.Is(err, ErrSemantic) {
		t.Fatalf("got %v, want semantic error", err)
	}
	var se *SemanticErr
	if !errors.As(err, &se) {
		t.Fatal("no SemanticErr in chain")
	}
	if se.Prior.IsZero() {
		t.Error("opening tag span missing")
	}
}

func TestParseXMLDuplicateAttr(t *testing.T) {
	_, err := Parse([]byte(`<a x="1" x="2"/>`), ParseXML())
	if !errors.Is(err, ErrSemantic) {
		t.Fatalf("got %v, want semantic error", err)
	}
}

func TestParseXMLSyntaxErrors(t *testing.T) {
	for _, src := range []string{
		``,
		`<a>`,
		`<a><b></a>`,
		`<a>&unknown;</a>`,
		`<a>stray & here</a>`,
		`<a x=1/>`,
		`<a></a><b></b>`,
	} {
		_, err := Parse([]byte(src), ParseXML())
		if err == nil {
			t.Errorf("%q: parsed clean", src)
			continue
		}
		if !errors.Is(err, ErrSyntax) && !errors.Is(err, ErrSemantic) {
			t.Errorf("%q: got %v, want classified error", src, err)
		}
	}
}

func TestParseXMLDoctype(t *testing.T) {
	node := parseXMLOK(t, `<!DOCTYPE html [<!ENTITY x "y">]><root>ok</root>`)
	if node.Values[0].String != "ok" {
		t.Errorf("got %+v", node)
	}
}
