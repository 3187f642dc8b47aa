package toon

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Type identifies the variant held by a Value.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tree the codec reads from and writes to. The zero Value is null.
//
// Numbers are held as their decimal text so that a decoded document encodes
// back to the same digits.
type Value struct {
	typ Type
	b   bool
	s   string // string contents, or number text
	arr []Value
	obj *Object
}

// Number text for the non-finite sentinels kept by Float.
const (
	nanText    = "NaN"
	posInfText = "Infinity"
	negInfText = "-Infinity"
)

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{typ: TypeString, s: s} }

// Int returns a number value holding i.
func Int(i int64) Value { return Value{typ: TypeNumber, s: strconv.FormatInt(i, 10)} }

// Uint returns a number value holding u.
func Uint(u uint64) Value { return Value{typ: TypeNumber, s: strconv.FormatUint(u, 10)} }

// Float returns a number value holding f. NaN and the infinities are kept as
// sentinels and encode as null.
func Float(f float64) Value {
	switch {
	case math.IsNaN(f):
		return Value{typ: TypeNumber, s: nanText}
	case math.IsInf(f, 1):
		return Value{typ: TypeNumber, s: posInfText}
	case math.IsInf(f, -1):
		return Value{typ: TypeNumber, s: negInfText}
	case f == 0 && math.Signbit(f):
		return Value{typ: TypeNumber, s: "-0"}
	}
	return Value{typ: TypeNumber, s: formatFloat(f)}
}

// Number returns a number value for the decimal text s.
func Number(s string) (Value, error) {
	switch s {
	case nanText, posInfText, negInfText:
		return Value{typ: TypeNumber, s: s}, nil
	}
	if !isDecimalNumber(s) {
		return Value{}, fmt.Errorf("toon: invalid number %q", s)
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return Value{}, fmt.Errorf("toon: invalid number %q: %w", s, err)
	}
	return Value{typ: TypeNumber, s: s}, nil
}

// Array returns an array value holding items.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{typ: TypeArray, arr: items}
}

// ObjectValue wraps o as a value. A nil o is an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{typ: TypeObject, obj: o}
}

// ObjectOf builds an object value from fields in order.
func ObjectOf(fields ...Field) Value {
	return ObjectValue(NewObject(fields...))
}

// Pair is shorthand for a Field literal.
func Pair(key string, v Value) Field { return Field{Key: key, Value: v} }

// Type returns the variant held by v.
func (v Value) Type() Type { return v.typ }

func (v Value) IsNull() bool { return v.typ == TypeNull }

func (v Value) IsArray() bool { return v.typ == TypeArray }

func (v Value) IsObject() bool { return v.typ == TypeObject }

// IsPrimitive reports whether v is null, a bool, a number or a string.
func (v Value) IsPrimitive() bool {
	return v.typ != TypeArray && v.typ != TypeObject
}

// AsBool returns the boolean, or false for other types.
func (v Value) AsBool() bool { return v.typ == TypeBool && v.b }

// AsString returns the string contents, or "" for other types.
func (v Value) AsString() string {
	if v.typ != TypeString {
		return ""
	}
	return v.s
}

// NumberText returns the decimal text of a number, or "" for other types.
func (v Value) NumberText() string {
	if v.typ != TypeNumber {
		return ""
	}
	return v.s
}

// Float64 parses the number.
func (v Value) Float64() (float64, error) {
	if v.typ != TypeNumber {
		return 0, fmt.Errorf("toon: %s is not a number", v.typ)
	}
	switch v.s {
	case nanText:
		return math.NaN(), nil
	case posInfText:
		return math.Inf(1), nil
	case negInfText:
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(v.s, 64)
}

// Int64 parses the number as an integer.
func (v Value) Int64() (int64, error) {
	if v.typ != TypeNumber {
		return 0, fmt.Errorf("toon: %s is not a number", v.typ)
	}
	return strconv.ParseInt(v.s, 10, 64)
}

// Items returns the elements of an array, or nil for other types.
func (v Value) Items() []Value {
	if v.typ != TypeArray {
		return nil
	}
	return v.arr
}

// Len returns the number of array elements or object fields.
func (v Value) Len() int {
	switch v.typ {
	case TypeArray:
		return len(v.arr)
	case TypeObject:
		return v.obj.Len()
	}
	return 0
}

// Object returns the object, or nil for other types.
func (v Value) Object() *Object {
	if v.typ != TypeObject {
		return nil
	}
	return v.obj
}

// Get looks up key in an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.typ != TypeObject {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Equal reports whether v and o hold the same tree. Numbers compare by text
// and object fields compare in order.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == o.b
	case TypeNumber, TypeString:
		return v.s == o.s
	case TypeArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		a, b := v.obj.Fields(), o.obj.Fields()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].Key != b[i].Key || !a[i].Value.Equal(b[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v to plain Go values: nil, bool, float64, string,
// []interface{} and map[string]interface{}.
func (v Value) Interface() interface{} {
	switch v.typ {
	case TypeBool:
		return v.b
	case TypeNumber:
		f, _ := v.Float64()
		return f
	case TypeString:
		return v.s
	case TypeArray:
		out := make([]interface{}, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case TypeObject:
		out := make(map[string]interface{}, v.obj.Len())
		for _, f := range v.obj.Fields() {
			out[f.Key] = f.Value.Interface()
		}
		return out
	}
	return nil
}

// String renders v as compact JSON.
func (v Value) String() string {
	b, err := ToJSON(v)
	if err != nil {
		return fmt.Sprintf("%%!toon(%v)", err)
	}
	return string(b)
}

// Field is one key/value pair of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is a map that remembers insertion order.
type Object struct {
	fields []Field
	index  map[string]int
}

// NewObject returns an object holding fields in order. Later duplicates
// overwrite earlier ones.
func NewObject(fields ...Field) *Object {
	o := &Object{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		o.Set(f.Key, f.Value)
	}
	return o
}

// Set stores v under key. An existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = v
		return
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: v})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.fields[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key, keeping the order of the remaining fields.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	i, ok := o.index[key]
	if !ok {
		return
	}
	o.fields = append(o.fields[:i], o.fields[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.fields); j++ {
		o.index[o.fields[j].Key] = j
	}
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.fields)
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns the fields in order. The slice must not be modified.
func (o *Object) Fields() []Field {
	if o == nil {
		return nil
	}
	return o.fields
}

// sortedObject builds an object from an unordered Go map.
func sortedObject(m map[string]Value) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o := &Object{index: make(map[string]int, len(keys)), fields: make([]Field, 0, len(keys))}
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
