package gomap

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/zparse/zparse/ir"
)

var ErrMap = errors.New("gomap error")

// ToNode encodes a Go value as a value tree. Maps with string keys
// become objects with sorted keys, slices and arrays become arrays,
// structs become objects of their exported fields.
func ToNode(v any) (*ir.Node, error) {
	return toNode(reflect.ValueOf(v))
}

func toNode(rv reflect.Value) (*ir.Node, error) {
	if !rv.IsValid() {
		return ir.Null(), nil
	}
	if t, ok := rv.Interface().(time.Time); ok {
		return ir.FromTime(ir.DateTimeOffsetType, t), nil
	}
	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return ir.Null(), nil
		}
		return toNode(rv.Elem())
	case reflect.Bool:
		return ir.FromBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > (1<<63)-1 {
			return nil, fmt.Errorf("%w: uint %d overflows", ErrMap, u)
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(rv.Float()), nil
	case reflect.String:
		return ir.FromString(rv.String()), nil
	case reflect.Slice, reflect.Array:
		res := ir.NewArray()
		for i := 0; i < rv.Len(); i++ {
			el, err := toNode(rv.Index(i))
			if err != nil {
				return nil, err
			}
			res.Append(el)
		}
		return res, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrMap, rv.Type().Key())
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		res := ir.NewObject()
		for _, k := range keys {
			el, err := toNode(rv.MapIndex(reflect.ValueOf(k)))
			if err != nil {
				return nil, err
			}
			res.SetField(k, el)
		}
		return res, nil
	case reflect.Struct:
		res := ir.NewObject()
		if err := structFields(rv, res); err != nil {
			return nil, err
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: cannot encode %s", ErrMap, rv.Kind())
	}
}

func structFields(rv reflect.Value, res *ir.Node) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, omit := fieldName(sf)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if sf.Anonymous && sf.Tag.Get("json") == "" {
			if fv.Kind() == reflect.Struct {
				if err := structFields(fv, res); err != nil {
					return err
				}
				continue
			}
		}
		if omit && fv.IsZero() {
			continue
		}
		el, err := toNode(fv)
		if err != nil {
			return err
		}
		res.SetField(name, el)
	}
	return nil
}

func fieldName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name, false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = sf.Name
	}
	omit := false
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omit = true
		}
	}
	return name, omit
}

// FromNode decodes a value tree into the Go value ptr points at.
func FromNode(node *ir.Node, ptr any) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: decode target must be a non-nil pointer", ErrMap)
	}
	return fromNode(node, rv.Elem())
}

func fromNode(node *ir.Node, rv reflect.Value) error {
	if node == nil || node.Type == ir.NullType {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return fromNode(node, rv.Elem())
	}
	if rv.Type() == reflect.TypeOf(time.Time{}) {
		switch node.Type {
		case ir.DateType, ir.TimeType, ir.DateTimeType, ir.DateTimeOffsetType:
			rv.Set(reflect.ValueOf(node.Time))
			return nil
		}
		return fmt.Errorf("%w: cannot decode %v into time.Time", ErrMap, node.Type)
	}
	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		rv.Set(reflect.ValueOf(ToGo(node)))
		return nil
	}
	switch node.Type {
	case ir.BoolType:
		if rv.Kind() != reflect.Bool {
			return decodeErr(node, rv)
		}
		rv.SetBool(node.Bool)
	case ir.IntType:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			rv.SetInt(node.Int64)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if node.Int64 < 0 {
				return decodeErr(node, rv)
			}
			rv.SetUint(uint64(node.Int64))
		case reflect.Float32, reflect.Float64:
			rv.SetFloat(float64(node.Int64))
		default:
			return decodeErr(node, rv)
		}
	case ir.FloatType:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			rv.SetFloat(node.Float64)
		default:
			return decodeErr(node, rv)
		}
	case ir.StringType:
		if rv.Kind() != reflect.String {
			return decodeErr(node, rv)
		}
		rv.SetString(node.String)
	case ir.ArrayType:
		if rv.Kind() != reflect.Slice {
			return decodeErr(node, rv)
		}
		out := reflect.MakeSlice(rv.Type(), len(node.Values), len(node.Values))
		for i, el := range node.Values {
			if err := fromNode(el, out.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(out)
	case ir.ObjectType:
		return fromObject(node, rv)
	default:
		return decodeErr(node, rv)
	}
	return nil
}

func fromObject(node *ir.Node, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return decodeErr(node, rv)
		}
		out := reflect.MakeMapWithSize(rv.Type(), len(node.Fields))
		for i, f := range node.Fields {
			el := reflect.New(rv.Type().Elem()).Elem()
			if err := fromNode(node.Values[i], el); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(f.String), el)
		}
		rv.Set(out)
		return nil
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, _ := fieldName(sf)
			if name == "-" {
				continue
			}
			el := node.Get(name)
			if el == nil {
				continue
			}
			if err := fromNode(el, rv.Field(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return decodeErr(node, rv)
	}
}

func decodeErr(node *ir.Node, rv reflect.Value) error {
	return fmt.Errorf("%w: cannot decode %v into %s", ErrMap, node.Type, rv.Type())
}

// ToGo converts a tree to plain Go values: map[string]any, []any,
// bool, int64, float64, string, time.Time, or nil.
func ToGo(node *ir.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.IntType:
		return node.Int64
	case ir.FloatType:
		return node.Float64
	case ir.StringType:
		return node.String
	case ir.DateType, ir.TimeType, ir.DateTimeType, ir.DateTimeOffsetType:
		return node.Time
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, el := range node.Values {
			res[i] = ToGo(el)
		}
		return res
	case ir.ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			res[f.String] = ToGo(node.Values[i])
		}
		return res
	case ir.ElementType:
		res := map[string]any{"tag": node.String}
		if len(node.Attrs) != 0 {
			attrs := make(map[string]any, len(node.Attrs))
			for _, a := range node.Attrs {
				attrs[a.Name] = a.Value
			}
			res["attributes"] = attrs
		}
		if len(node.Values) != 0 {
			children := make([]any, len(node.Values))
			for i, el := range node.Values {
				children[i] = ToGo(el)
			}
			res["children"] = children
		}
		return res
	default:
		return nil
	}
}
