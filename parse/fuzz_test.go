package parse

import (
	"errors"
	"testing"

	"github.com/zparse/zparse/encode"
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/limits"
)

// Any input must either parse or fail with a classified error. Panics
// and unclassified errors are the bugs fuzzing hunts for. Inputs that
// do parse must re-parse from their own rendering to an equal tree.
func checkClassified(t *testing.T, f format.Format, d []byte) {
	node, err := Parse(d, ParseFormat(f))
	if err != nil {
		if errors.Is(err, ErrSyntax) || errors.Is(err, ErrSemantic) || errors.Is(err, limits.ErrLimit) {
			return
		}
		t.Errorf("unclassified error for %q: %v", d, err)
		return
	}
	text, err := encode.String(node, encode.EncodeFormat(f))
	if err != nil {
		// a parsed tree may still be inexpressible, e.g. a TOML
		// array at the document root
		return
	}
	again, err := Parse([]byte(text), ParseFormat(f))
	if err != nil {
		t.Errorf("own output does not re-parse for %q: %v\n%s", d, err, text)
		return
	}
	if !ir.Equal(node, again) {
		t.Errorf("re-parse of own output differs for %q:\n%s", d, text)
	}
}

func FuzzParseJSON(f *testing.F) {
	f.Add([]byte(`{"a": [1, 2.5, "x", true, null]}`))
	f.Add([]byte(`"\ud83d\ude00"`))
	f.Add([]byte(`[[[[[[1]]]]]]`))
	f.Add([]byte(`{"a": 1, "a": 2}`))
	f.Add([]byte("\"\x87\""))
	f.Fuzz(func(t *testing.T, d []byte) {
		checkClassified(t, format.JSONFormat, d)
	})
}

func FuzzParseTOML(f *testing.F) {
	f.Add([]byte("a = 1\n[t]\nb = \"x\"\n"))
	f.Add([]byte("[[p]]\nq = 1979-05-27T07:32:00Z\n"))
	f.Add([]byte("x = { y = [1, 2], z = '''m''' }\n"))
	f.Add([]byte("a = [[1], [2]]\n"))
	f.Fuzz(func(t *testing.T, d []byte) {
		checkClassified(t, format.TOMLFormat, d)
	})
}

func FuzzParseYAML(f *testing.F) {
	f.Add([]byte("a:\n  - 1\n  - b: true\n"))
	f.Add([]byte("s: |\n  block\n"))
	f.Add([]byte("m: {x: [1, 2]}\n"))
	f.Add([]byte("- a:\n    x: 1\n  b: 2\n"))
	f.Add([]byte("\"\xba\"\n"))
	f.Fuzz(func(t *testing.T, d []byte) {
		checkClassified(t, format.YAMLFormat, d)
	})
}

func FuzzParseXML(f *testing.F) {
	f.Add([]byte(`<root a="1"><child>text &amp; more</child></root>`))
	f.Add([]byte(`<a><![CDATA[
]]></a>`))
	f.Add([]byte(`<a><b/><b/></a>`))
	f.Fuzz(func(t *testing.T, d []byte) {
		checkClassified(t, format.XMLFormat, d)
	})
}
