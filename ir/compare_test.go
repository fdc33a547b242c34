package ir

import "testing"

func TestCompare(t *testing.T) {
	objAB := NewObject()
	objAB.SetField("a", FromInt(1))
	objAB.SetField("b", FromInt(2))
	objBA := NewObject()
	objBA.SetField("b", FromInt(2))
	objBA.SetField("a", FromInt(1))

	for _, tc := range []struct {
		name string
		a, b *Node
		want int
	}{
		{"null null", Null(), Null(), 0},
		{"null < bool", Null(), FromBool(false), -1},
		{"false < true", FromBool(false), FromBool(true), -1},
		{"ints", FromInt(2), FromInt(10), -1},
		{"strings", FromString("b"), FromString("a"), 1},
		{"arrays len", NewArray(FromInt(1)), NewArray(FromInt(1), FromInt(2)), -1},
		{"arrays elem", NewArray(FromInt(2)), NewArray(FromInt(1)), 1},
		{"object order matters", objAB, objBA, -1},
		{"nil < node", nil, Null(), -1},
	} {
		got := Compare(tc.a, tc.b)
		if sign(got) != tc.want {
			t.Errorf("%s: got %d want %d", tc.name, got, tc.want)
		}
		if sign(Compare(tc.b, tc.a)) != -tc.want {
			t.Errorf("%s: not antisymmetric", tc.name)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestEqualIgnoresSpan(t *testing.T) {
	a, b := FromInt(7), FromInt(7)
	b.Span.Start.Line = 42
	if !Equal(a, b) {
		t.Error("span should not affect equality")
	}
}
