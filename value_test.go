package toon

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectOrder(t *testing.T) {
	o := NewObject(Pair("b", Int(1)), Pair("a", Int(2)))
	o.Set("c", Int(3))
	o.Set("b", Int(4))

	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	v, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, "4", v.NumberText())

	o.Delete("b")
	assert.Equal(t, []string{"a", "c"}, o.Keys())
	assert.False(t, o.Has("b"))
	v, ok = o.Get("c")
	require.True(t, ok)
	assert.Equal(t, "3", v.NumberText())

	o.Delete("missing")
	assert.Equal(t, 2, o.Len())

	var empty *Object
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Has("a"))
	assert.Nil(t, empty.Keys())
}

func TestNumber(t *testing.T) {
	for _, s := range []string{"0", "-1", "1.50", "1e10", "+3", ".5", "NaN", "Infinity", "-Infinity"} {
		v, err := Number(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, v.NumberText())
	}
	for _, s := range []string{"", "abc", "0x1f", "1e999", "1_0", "inf"} {
		_, err := Number(s)
		assert.Error(t, err, s)
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{1.5, "1.5"},
		{100, "100"},
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{1e21, "1000000000000000000000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Float(tt.f).NumberText())
	}

	f, err := Float(math.Inf(-1)).Float64()
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, -1))
}

func TestValueAccessors(t *testing.T) {
	v := ObjectOf(Pair("n", Int(7)), Pair("s", String("x")), Pair("list", Array(Bool(true), Null())))

	assert.Equal(t, TypeObject, v.Type())
	assert.Equal(t, "object", v.Type().String())
	assert.Equal(t, 3, v.Len())

	n, _ := v.Get("n")
	i, err := n.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(7), i)

	s, _ := v.Get("s")
	assert.Equal(t, "x", s.AsString())
	assert.True(t, s.IsPrimitive())

	list, _ := v.Get("list")
	assert.True(t, list.IsArray())
	assert.True(t, list.Items()[0].AsBool())
	assert.True(t, list.Items()[1].IsNull())

	_, err = s.Float64()
	assert.Error(t, err)
	assert.Equal(t, "", n.AsString())
	assert.Nil(t, s.Object())
}

func TestValueEqual(t *testing.T) {
	a := ObjectOf(Pair("x", Int(1)), Pair("y", Array(String("a"))))
	assert.True(t, a.Equal(ObjectOf(Pair("x", Int(1)), Pair("y", Array(String("a"))))))
	assert.False(t, a.Equal(ObjectOf(Pair("y", Array(String("a"))), Pair("x", Int(1)))))
	assert.False(t, Int(1).Equal(mustNumber(t, "1.0")))
	assert.False(t, String("1").Equal(Int(1)))
	assert.True(t, Null().Equal(Value{}))
}

func TestValueInterface(t *testing.T) {
	v := ObjectOf(
		Pair("n", mustNumber(t, "1.5")),
		Pair("list", Array(Bool(false), Null(), String("s"))),
	)
	want := map[string]interface{}{
		"n":    1.5,
		"list": []interface{}{false, nil, "s"},
	}
	if diff := cmp.Diff(want, v.Interface()); diff != "" {
		t.Errorf("Interface mismatch (-want +got):\n%s", diff)
	}
}
