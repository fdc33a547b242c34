package ir

import (
	"cmp"
	"strings"
)

// Equal reports structural equality. Spans are ignored; object field
// order is significant.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// Compare gives a total order over nodes: by type first, then by
// payload, containers element-wise.
func Compare(a, b *Node) int {
	if a == nil || b == nil {
		switch {
		case a == b:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if d := cmp.Compare(a.Type, b.Type); d != 0 {
		return d
	}
	switch a.Type {
	case NullType:
		return 0
	case BoolType:
		switch {
		case a.Bool == b.Bool:
			return 0
		case !a.Bool:
			return -1
		default:
			return 1
		}
	case IntType:
		return cmp.Compare(a.Int64, b.Int64)
	case FloatType:
		return cmp.Compare(a.Float64, b.Float64)
	case StringType:
		return strings.Compare(a.String, b.String)
	case DateType, TimeType, DateTimeType, DateTimeOffsetType:
		return a.Time.Compare(b.Time)
	case ArrayType:
		return compareValues(a, b)
	case ObjectType:
		if d := compareNodes(a.Fields, b.Fields); d != 0 {
			return d
		}
		return compareValues(a, b)
	case ElementType:
		if d := strings.Compare(a.String, b.String); d != 0 {
			return d
		}
		if d := compareAttrs(a.Attrs, b.Attrs); d != 0 {
			return d
		}
		return compareValues(a, b)
	}
	return 0
}

func compareValues(a, b *Node) int {
	return compareNodes(a.Values, b.Values)
}

func compareNodes(as, bs []*Node) int {
	if d := cmp.Compare(len(as), len(bs)); d != 0 {
		return d
	}
	for i := range as {
		if d := Compare(as[i], bs[i]); d != 0 {
			return d
		}
	}
	return 0
}

func compareAttrs(as, bs []Attr) int {
	if d := cmp.Compare(len(as), len(bs)); d != 0 {
		return d
	}
	for i := range as {
		if d := strings.Compare(as[i].Name, bs[i].Name); d != 0 {
			return d
		}
		if d := strings.Compare(as[i].Value, bs[i].Value); d != 0 {
			return d
		}
	}
	return 0
}
