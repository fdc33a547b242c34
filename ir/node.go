package ir

import (
	"time"

	"github.com/zparse/zparse/token"
)

// Node is one value in the model. Type selects which fields carry the
// payload:
//
//   - NullType: nothing
//   - BoolType: Bool
//   - IntType: Int64
//   - FloatType: Float64
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields (StringType keys) and Values, parallel and
//     insertion ordered
//   - DateType, TimeType, DateTimeType, DateTimeOffsetType: Time
//   - ElementType: String is the tag name, Attrs the attributes in
//     source order, Values the children (elements and text nodes)
//
// Span is the zero value unless position recording was requested at
// parse time.
type Node struct {
	Type   Type
	Span   token.Span
	Fields []*Node
	Values []*Node
	Attrs  []Attr

	String  string
	Bool    bool
	Int64   int64
	Float64 float64
	Time    time.Time
}

// Attr is one XML attribute. Order is significant and preserved.
type Attr struct {
	Name  string
	Value string
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float64: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromTime(t Type, v time.Time) *Node {
	return &Node{Type: t, Time: v}
}

func NewArray(values ...*Node) *Node {
	return &Node{Type: ArrayType, Values: values}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func NewElement(tag string) *Node {
	return &Node{Type: ElementType, String: tag}
}

// Len returns the number of entries, values, or children of a
// container node, and 0 for scalars.
func (y *Node) Len() int {
	if y.Type == ObjectType {
		return len(y.Fields)
	}
	return len(y.Values)
}

// FieldIndex returns the index of key in an object, or -1.
func (y *Node) FieldIndex(key string) int {
	for i, f := range y.Fields {
		if f.String == key {
			return i
		}
	}
	return -1
}

// Get returns the value of key in an object, or nil.
func (y *Node) Get(key string) *Node {
	if i := y.FieldIndex(key); i >= 0 {
		return y.Values[i]
	}
	return nil
}

// SetField appends or replaces key in an object.
func (y *Node) SetField(key string, v *Node) {
	if i := y.FieldIndex(key); i >= 0 {
		y.Values[i] = v
		return
	}
	y.Fields = append(y.Fields, FromString(key))
	y.Values = append(y.Values, v)
}

// Append adds a value to an array or element node.
func (y *Node) Append(v *Node) {
	y.Values = append(y.Values, v)
}

// Attr returns the named attribute value of an element.
func (y *Node) Attr(name string) (string, bool) {
	for _, a := range y.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// TimeString renders a temporal node in its canonical text form.
// Fractional seconds appear only when present.
func (y *Node) TimeString() string {
	switch y.Type {
	case DateType:
		return y.Time.Format("2006-01-02")
	case TimeType:
		return y.Time.Format("15:04:05.999999999")
	case DateTimeType:
		return y.Time.Format("2006-01-02T15:04:05.999999999")
	case DateTimeOffsetType:
		return y.Time.Format("2006-01-02T15:04:05.999999999Z07:00")
	}
	return ""
}

func (y *Node) Clone() *Node {
	res := &Node{
		Type:    y.Type,
		Span:    y.Span,
		String:  y.String,
		Bool:    y.Bool,
		Int64:   y.Int64,
		Float64: y.Float64,
		Time:    y.Time,
	}
	if y.Attrs != nil {
		res.Attrs = make([]Attr, len(y.Attrs))
		copy(res.Attrs, y.Attrs)
	}
	if y.Fields != nil {
		res.Fields = make([]*Node, len(y.Fields))
		for i, f := range y.Fields {
			res.Fields[i] = f.Clone()
		}
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

// Visit walks the tree depth first, parents before children. The walk
// stops at the first node for which fn returns false.
func (y *Node) Visit(fn func(*Node) bool) bool {
	if !fn(y) {
		return false
	}
	for _, f := range y.Fields {
		if !f.Visit(fn) {
			return false
		}
	}
	for _, v := range y.Values {
		if !v.Visit(fn) {
			return false
		}
	}
	return true
}
