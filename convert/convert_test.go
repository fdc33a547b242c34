package convert

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/parse"
)

func TestConvertJSONToTOML(t *testing.T) {
	out, err := Bytes([]byte(`{"name":"zparse"}`), format.JSONFormat, format.TOMLFormat, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "name = \"zparse\"\n" {
		t.Errorf("got %q", out)
	}
}

func TestConvertIdentity(t *testing.T) {
	src, _ := parse.Parse([]byte(`{"a": [1, 2], "b": {"c": true}}`), parse.ParseJSON())
	got, err := Value(src, format.JSONFormat, format.YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(src, got) {
		t.Error("JSON to YAML should be structurally identical")
	}
	got.Get("b").SetField("c", ir.FromBool(false))
	if !src.Get("b").Get("c").Bool {
		t.Error("conversion must not alias the input tree")
	}
}

func TestConvertDatetimeToString(t *testing.T) {
	obj := ir.NewObject()
	obj.SetField("when", ir.FromTime(ir.DateTimeType, time.Date(1979, 5, 27, 7, 32, 0, 0, time.UTC)))
	got, err := Value(obj, format.TOMLFormat, format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	when := got.Get("when")
	if when.Type != ir.StringType || when.String != "1979-05-27T07:32:00" {
		t.Errorf("got %+v", when)
	}

	// back to TOML the datetime stays native
	back, err := Value(obj, format.TOMLFormat, format.TOMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if back.Get("when").Type != ir.DateTimeType {
		t.Errorf("got %v", back.Get("when").Type)
	}
}

func TestConvertXMLToJSON(t *testing.T) {
	out, err := Bytes([]byte(`<root><name>zparse</name></root>`),
		format.XMLFormat, format.JSONFormat, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "root": {
    "name": "zparse"
  }
}
`
	if string(out) != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestConvertXMLFolding(t *testing.T) {
	node, err := parse.Parse([]byte(
		`<lib year="2020"><book>one</book><book>two</book>note text</lib>`),
		parse.ParseXML())
	if err != nil {
		t.Fatal(err)
	}
	got, err := Value(node, format.XMLFormat, format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	lib := got.Get("lib")
	attrs := lib.Get("@attributes")
	if attrs == nil || attrs.Get("year").String != "2020" {
		t.Errorf("attrs: %+v", attrs)
	}
	books := lib.Get("book")
	if books.Type != ir.ArrayType || len(books.Values) != 2 || books.Values[1].String != "two" {
		t.Errorf("books: %+v", books)
	}
	if lib.Get("#text").String != "note text" {
		t.Errorf("text: %+v", lib.Get("#text"))
	}
}

func TestConvertEmptyElement(t *testing.T) {
	node, _ := parse.Parse([]byte(`<a><b/></a>`), parse.ParseXML())
	got, err := Value(node, format.XMLFormat, format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	b := got.Get("a").Get("b")
	if b.Type != ir.ObjectType || b.Len() != 0 {
		t.Errorf("empty element: %+v", b)
	}
}

func TestConvertMapToXML(t *testing.T) {
	out, err := Bytes([]byte(`{"config":{"@attributes":{"env":"prod"},"host":"local","ports":[1,2]}}`),
		format.JSONFormat, format.XMLFormat, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<config env="prod">
  <host>local</host>
  <ports>1</ports>
  <ports>2</ports>
</config>
`
	if string(out) != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestConvertNonObjectRootToXML(t *testing.T) {
	out, err := Bytes([]byte(`[1, 2]`), format.JSONFormat, format.XMLFormat, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<root>
  <item>1</item>
  <item>2</item>
</root>
`
	if string(out) != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestConvertXMLRoundTrip(t *testing.T) {
	src := []byte(`<root><name>zparse</name></root>`)
	asJSON, err := Bytes(src, format.XMLFormat, format.JSONFormat, nil)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Bytes(asJSON, format.JSONFormat, format.XMLFormat, nil)
	if err != nil {
		t.Fatal(err)
	}
	reparsed, err := parse.Parse(back, parse.ParseXML())
	if err != nil {
		t.Fatal(err)
	}
	orig, _ := parse.Parse(src, parse.ParseXML())
	if !ir.Equal(orig, reparsed) {
		t.Errorf("round trip changed the tree:\n%s", back)
	}
}

func TestConvertTOMLRootRequired(t *testing.T) {
	_, err := Bytes([]byte(`[1, 2]`), format.JSONFormat, format.TOMLFormat, nil)
	if !errors.Is(err, ErrConvert) {
		t.Fatalf("got %v, want conversion error", err)
	}
}

func TestConvertNullToTOML(t *testing.T) {
	_, err := Bytes([]byte(`{"a": {"b": null}}`), format.JSONFormat, format.TOMLFormat, nil)
	if !errors.Is(err, ErrConvert) {
		t.Fatalf("got %v, want conversion error", err)
	}
	if got := err.Error(); !strings.Contains(got, "a.b") {
		t.Errorf("error should name the path: %q", got)
	}
}

func TestConvertClosure(t *testing.T) {
	// any output of convert parses cleanly in its target format
	src := []byte(`{"s": "v", "n": 3, "list": [1, "two"], "m": {"k": true}}`)
	for _, to := range format.AllFormats() {
		out, err := Bytes(src, format.JSONFormat, to, nil)
		if err != nil {
			t.Fatalf("to %v: %v", to, err)
		}
		if _, err := parse.Parse(out, parse.ParseFormat(to)); err != nil {
			t.Errorf("to %v: output does not reparse: %v\n%s", to, err, out)
		}
	}
}
