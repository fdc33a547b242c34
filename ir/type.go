package ir

// Type discriminates the Node union.
type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	ArrayType
	ObjectType
	DateType
	TimeType
	DateTimeType
	DateTimeOffsetType
	ElementType
)

var typeNames = map[Type]string{
	NullType:           "null",
	BoolType:           "bool",
	IntType:            "int",
	FloatType:          "float",
	StringType:         "string",
	ArrayType:          "array",
	ObjectType:         "object",
	DateType:           "date",
	TimeType:           "time",
	DateTimeType:       "datetime",
	DateTimeOffsetType: "datetime-offset",
	ElementType:        "element",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "unknown"
}

// IsTemporal reports whether t is one of the four date/time types.
func (t Type) IsTemporal() bool {
	switch t {
	case DateType, TimeType, DateTimeType, DateTimeOffsetType:
		return true
	}
	return false
}

// IsScalar reports whether a node of type t has no children.
func (t Type) IsScalar() bool {
	switch t {
	case ArrayType, ObjectType, ElementType:
		return false
	}
	return true
}
