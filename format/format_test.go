package format

import "testing"

func TestParseFormat(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Format
	}{
		{"json", JSONFormat},
		{"j", JSONFormat},
		{"toml", TOMLFormat},
		{"t", TOMLFormat},
		{"yaml", YAMLFormat},
		{"yml", YAMLFormat},
		{"y", YAMLFormat},
		{"xml", XMLFormat},
		{"x", XMLFormat},
		{"JSON", JSONFormat},
	} {
		got, err := ParseFormat(tc.in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseFormat("ini"); err == nil {
		t.Errorf("ParseFormat(ini): expected error")
	}
}

func TestRoundTripText(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var g Format
		if err := g.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if g != f {
			t.Errorf("round trip %v != %v", g, f)
		}
	}
}

func TestInferPath(t *testing.T) {
	for _, tc := range []struct {
		path string
		want Format
		err  bool
	}{
		{"config.json", JSONFormat, false},
		{"a/b/c.toml", TOMLFormat, false},
		{"deploy.yml", YAMLFormat, false},
		{"doc.xml", XMLFormat, false},
		{"README", 0, true},
		{"notes.txt", 0, true},
	} {
		got, err := InferPath(tc.path)
		if tc.err {
			if err == nil {
				t.Errorf("InferPath(%q): expected error", tc.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("InferPath(%q): %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("InferPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
