package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/limits"
	"github.com/zparse/zparse/token"
)

func TestParseJSON(t *testing.T) {
	node, err := Parse([]byte(`{"name": "zed", "count": 3, "ratio": 0.5, "ok": true, "none": null, "xs": [1, 2]}`), ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != ir.ObjectType || node.Len() != 6 {
		t.Fatalf("root: %v len %d", node.Type, node.Len())
	}
	if got := node.Get("name"); got.Type != ir.StringType || got.String != "zed" {
		t.Errorf("name: %+v", got)
	}
	if got := node.Get("count"); got.Type != ir.IntType || got.Int64 != 3 {
		t.Errorf("count: %+v", got)
	}
	if got := node.Get("ratio"); got.Type != ir.FloatType || got.Float64 != 0.5 {
		t.Errorf("ratio: %+v", got)
	}
	if got := node.Get("none"); got.Type != ir.NullType {
		t.Errorf("none: %+v", got)
	}
	xs := node.Get("xs")
	if xs.Type != ir.ArrayType || len(xs.Values) != 2 || xs.Values[1].Int64 != 2 {
		t.Errorf("xs: %+v", xs)
	}
}

func TestParseJSONKeyOrder(t *testing.T) {
	node, err := Parse([]byte(`{"z": 1, "a": 2, "m": 3}`), ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, f := range node.Fields {
		keys = append(keys, f.String)
	}
	if strings.Join(keys, ",") != "z,a,m" {
		t.Errorf("order: %v", keys)
	}
}

func TestParseJSONDuplicateKey(t *testing.T) {
	_, err := Parse([]byte("{\"a\": 1,\n \"a\": 2}"), ParseJSON())
	if !errors.Is(err, ErrSemantic) {
		t.Fatalf("got %v, want semantic error", err)
	}
	var se *SemanticErr
	if !errors.As(err, &se) {
		t.Fatal("no SemanticErr in chain")
	}
	if se.Span.Start.Line != 2 || se.Prior.Start.Line != 1 {
		t.Errorf("spans: %v prior %v", se.Span, se.Prior)
	}
}

func TestParseJSONSyntaxErrors(t *testing.T) {
	for _, src := range []string{
		``, `{`, `[1, ]`, `{"a" 1}`, `{"a": 1,}`, `[1 2]`, `{1: 2}`, `[1] extra`,
	} {
		_, err := Parse([]byte(src), ParseJSON())
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: got %v, want syntax error", src, err)
		}
	}
}

func TestParseJSONTrailingCommas(t *testing.T) {
	node, err := Parse([]byte(`{"a": [1, 2,],}`), ParseJSON(), JSONTrailingCommas(true))
	if err != nil {
		t.Fatal(err)
	}
	if node.Get("a").Len() != 2 {
		t.Errorf("got %d values", node.Get("a").Len())
	}
}

func TestParseJSONComments(t *testing.T) {
	src := "// leader\n{\"a\": /* inline */ 1}"
	if _, err := Parse([]byte(src), ParseJSON()); !errors.Is(err, ErrSyntax) {
		t.Errorf("comments off: got %v", err)
	}
	node, err := Parse([]byte(src), ParseJSON(), JSONComments(true))
	if err != nil {
		t.Fatal(err)
	}
	if node.Get("a").Int64 != 1 {
		t.Error("bad value")
	}
}

func TestParseJSONDepthLimit(t *testing.T) {
	deep := strings.Repeat("[", 10000) + strings.Repeat("]", 10000)
	_, err := Parse([]byte(deep), ParseJSON())
	if !errors.Is(err, limits.ErrDepth) {
		t.Fatalf("got %v, want depth limit", err)
	}
	if !errors.Is(err, limits.ErrLimit) {
		t.Error("depth error should wrap the limit sentinel")
	}
}

func TestParseJSONDepthLimitConfigured(t *testing.T) {
	_, err := Parse([]byte(`[[[1]]]`), ParseJSON(), ParseLimits(&limits.Config{MaxDepth: 2}))
	if !errors.Is(err, limits.ErrDepth) {
		t.Fatalf("got %v", err)
	}
	if _, err := Parse([]byte(`[[1]]`), ParseJSON(), ParseLimits(&limits.Config{MaxDepth: 2})); err != nil {
		t.Fatalf("within limit: %v", err)
	}
}

func TestParseJSONSizeLimit(t *testing.T) {
	_, err := Parse([]byte(`[1, 2, 3]`), ParseJSON(), ParseLimits(&limits.Config{MaxSize: 4}))
	if !errors.Is(err, limits.ErrSize) {
		t.Fatalf("got %v, want size limit", err)
	}
}

func TestParseJSONEntryLimit(t *testing.T) {
	_, err := Parse([]byte(`[1, 2, 3, 4, 5]`), ParseJSON(), ParseLimits(&limits.Config{MaxEntries: 3}))
	if !errors.Is(err, limits.ErrEntries) {
		t.Fatalf("got %v, want entry limit", err)
	}
}

func TestParseJSONPositions(t *testing.T) {
	node, err := Parse([]byte("{\n  \"a\": 1\n}"), ParseJSON(), ParsePositions(true))
	if err != nil {
		t.Fatal(err)
	}
	if node.Span.Start.Line != 1 {
		t.Errorf("root span: %v", node.Span)
	}
	if node.Fields[0].Span.Start.Line != 2 {
		t.Errorf("key span: %v", node.Fields[0].Span)
	}
}

func TestParseJSONScalarRoot(t *testing.T) {
	for src, want := range map[string]ir.Type{
		`"s"`:  ir.StringType,
		`12`:   ir.IntType,
		`true`: ir.BoolType,
		`null`: ir.NullType,
	} {
		node, err := Parse([]byte(src), ParseJSON())
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if node.Type != want {
			t.Errorf("%q: got %v want %v", src, node.Type, want)
		}
	}
}

func TestSyntaxErrSpan(t *testing.T) {
	_, err := Parse([]byte("{\"a\": bad}"), ParseJSON())
	var se *token.SyntaxErr
	if !errors.As(err, &se) {
		t.Fatalf("no SyntaxErr in %v", err)
	}
	if se.Span.Start.Line != 1 || se.Span.Start.Col != 7 {
		t.Errorf("span: %v", se.Span)
	}
}
