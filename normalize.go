package toon

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
)

// FromAny converts a Go value to a Value.
//
// Maps become objects with sorted keys. Structs, and any type implementing
// json.Marshaler, go through JSON so that field order and json tags are
// honoured. Channels, functions and complex numbers are rejected.
func FromAny(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case *Value:
		if x == nil {
			return Null(), nil
		}
		return *x, nil
	case *Object:
		return ObjectValue(x), nil
	case json.Number:
		return Number(string(x))
	case json.Marshaler:
		return fromMarshaler(x)
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromMarshaler(m json.Marshaler) (Value, error) {
	if rv := reflect.ValueOf(m); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return Null(), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return Value{}, fmt.Errorf("toon: normalizing %T: %w", m, err)
	}
	return FromJSON(b)
}

func fromReflect(val reflect.Value) (Value, error) {
	switch val.Kind() {
	case reflect.Invalid:
		return Null(), nil
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return Null(), nil
		}
		return FromAny(val.Elem().Interface())
	case reflect.Bool:
		return Bool(val.Bool()), nil
	case reflect.String:
		return String(val.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(val.Uint()), nil
	case reflect.Float32:
		f := val.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
			return Float(f), nil
		}
		return Value{typ: TypeNumber, s: strconv.FormatFloat(f, 'f', -1, 32)}, nil
	case reflect.Float64:
		return Float(val.Float()), nil
	case reflect.Map:
		if val.IsNil() {
			return Null(), nil
		}
		m := make(map[string]Value, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			item, err := FromAny(iter.Value().Interface())
			if err != nil {
				return Value{}, err
			}
			m[mapKey(iter.Key())] = item
		}
		return ObjectValue(sortedObject(m)), nil
	case reflect.Slice:
		if val.IsNil() {
			return Null(), nil
		}
		if val.Type().Elem().Kind() == reflect.Uint8 {
			return viaJSON(val)
		}
		fallthrough
	case reflect.Array:
		items := make([]Value, val.Len())
		for i := range items {
			item, err := FromAny(val.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return Array(items...), nil
	case reflect.Struct:
		return viaJSON(val)
	}
	return Value{}, fmt.Errorf("toon: unsupported type %s", val.Type())
}

func viaJSON(val reflect.Value) (Value, error) {
	b, err := json.Marshal(val.Interface())
	if err != nil {
		return Value{}, fmt.Errorf("toon: normalizing %s: %w", val.Type(), err)
	}
	return FromJSON(b)
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprintf("%v", k.Interface())
}
