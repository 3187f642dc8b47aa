package toon

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Secret  string            `json:"-"`
	Email   string            `json:"email,omitempty"`
	Labels  map[string]string `json:"labels"`
	Created time.Time         `json:"created"`
}

func TestFromAny(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	v, err := FromAny(account{ID: 7, Name: "ops", Secret: "x", Labels: map[string]string{"b": "2", "a": "1"}, Created: created})
	require.NoError(t, err)
	assert.Equal(t, `{"id":7,"name":"ops","labels":{"a":"1","b":"2"},"created":"2024-05-01T12:00:00Z"}`, v.String())
}

func TestFromAnyKinds(t *testing.T) {
	var nilPtr *account
	var nilMap map[string]int
	str := "p"

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, "null"},
		{"nil_pointer", nilPtr, "null"},
		{"nil_map", nilMap, "null"},
		{"pointer", &str, `"p"`},
		{"int8", int8(-3), "-3"},
		{"uint64", uint64(math.MaxUint64), "18446744073709551615"},
		{"float32", float32(0.1), "0.1"},
		{"float64", 2.50, "2.5"},
		{"json_number", json.Number("1.50"), "1.50"},
		{"bytes", []byte("hi"), `"aGk="`},
		{"array", [2]bool{true, false}, "[true,false]"},
		{"sorted_map", map[string]interface{}{"b": 1, "a": []int{1}}, `{"a":[1],"b":1}`},
		{"int_keys", map[int]string{2: "b", 10: "a"}, `{"10":"a","2":"b"}`},
		{"value", Int(5), "5"},
		{"object", NewObject(Pair("z", Null())), `{"z":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestFromAnyUnsupported(t *testing.T) {
	for _, in := range []interface{}{make(chan int), func() {}, complex(1, 2), []interface{}{make(chan int)}} {
		_, err := FromAny(in)
		assert.Error(t, err)
	}
}

func TestFromAnyNonFinite(t *testing.T) {
	got, err := Encode(map[string]float64{"x": math.Inf(1)})
	require.NoError(t, err)
	assert.Equal(t, "x: null", got)
}
