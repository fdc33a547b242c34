package gomap

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/parse"
)

type user struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
	Tags []string
	Note string `json:"note,omitempty"`
}

func TestToNodeStruct(t *testing.T) {
	u := user{Name: "ada", Age: 36, Tags: []string{"x"}}
	node, err := ToNode(u)
	if err != nil {
		t.Fatal(err)
	}
	want, err := parse.Parse([]byte(`{"name":"ada","age":36,"Tags":["x"]}`), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(node, want) {
		t.Errorf("got %+v", node)
	}
}

func TestFromNodeStruct(t *testing.T) {
	node, err := parse.Parse([]byte(`{"name":"ada","age":36,"Tags":["x","y"]}`), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	var u user
	if err := FromNode(node, &u); err != nil {
		t.Fatal(err)
	}
	want := user{Name: "ada", Age: 36, Tags: []string{"x", "y"}}
	if diff := cmp.Diff(want, u); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRoundTripMap(t *testing.T) {
	in := map[string]any{
		"b":    true,
		"n":    int64(3),
		"f":    1.5,
		"list": []any{int64(1), "two"},
		"sub":  map[string]any{"k": "v"},
	}
	node, err := ToNode(in)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := FromNode(node, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTime(t *testing.T) {
	when := time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC)
	node, err := ToNode(map[string]any{"at": when})
	if err != nil {
		t.Fatal(err)
	}
	if node.Get("at").Type != ir.DateTimeOffsetType {
		t.Fatalf("got %v", node.Get("at").Type)
	}
	var out struct {
		At time.Time `json:"at"`
	}
	if err := FromNode(node, &out); err != nil {
		t.Fatal(err)
	}
	if !out.At.Equal(when) {
		t.Errorf("got %v", out.At)
	}
}

func TestToGo(t *testing.T) {
	node, err := parse.Parse([]byte(`{"a": [1, null, "s"], "b": 2.5}`), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	got := ToGo(node)
	want := map[string]any{
		"a": []any{int64(1), nil, "s"},
		"b": 2.5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeMismatch(t *testing.T) {
	node, _ := parse.Parse([]byte(`{"a": "text"}`), parse.ParseJSON())
	var out struct {
		A int `json:"a"`
	}
	if err := FromNode(node, &out); err == nil {
		t.Fatal("expected error decoding string into int")
	}
}

func TestNilPointerTarget(t *testing.T) {
	if err := FromNode(ir.Null(), nil); err == nil {
		t.Fatal("expected error")
	}
}
