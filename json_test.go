package toon

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSONKeepsOrderAndNumbers(t *testing.T) {
	v, err := FromJSON([]byte(`{"b": 1, "a": [true, null, "x"], "n": 1.50, "big": 123456789012345678901234567890}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a", "n", "big"}, v.Object().Keys())
	n, _ := v.Get("n")
	assert.Equal(t, "1.50", n.NumberText())
	big, _ := v.Get("big")
	assert.Equal(t, "123456789012345678901234567890", big.NumberText())

	out, err := ToJSON(v)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":[true,null,"x"],"n":1.50,"big":123456789012345678901234567890}`, string(out))
}

func TestFromJSONInvalid(t *testing.T) {
	inputs := []string{
		``, `{`, `nope`, `"open`,
		`[1 2]`, `[1,,2]`, `[,1]`, `[1,]`, `[1}`, `{"a" 1}`, `{"a":1 "b":2}`,
		`{"a"::1}`, `{"a":1,}`, `{1:2}`, `1,`, `[1] x`, `01`, `[1,`,
	}
	for _, in := range inputs {
		_, err := FromJSON([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestFromJSONEscapes(t *testing.T) {
	v, err := FromJSON([]byte(`{"a\"b": "c\\d", "e" : [ 1 , "\u00e9\n" ] , "f":{}}` + "\n"))
	require.NoError(t, err)

	want := ObjectOf(
		Pair(`a"b`, String(`c\d`)),
		Pair("e", Array(Int(1), String("é\n"))),
		Pair("f", ObjectValue(nil)),
	)
	assert.True(t, v.Equal(want), "got %s", v)
}

func TestToJSONNumbers(t *testing.T) {
	v := Array(Float(math.NaN()), Float(math.Inf(1)), mustNumber(t, "+1"), mustNumber(t, ".5"), mustNumber(t, "1."), Float(math.Copysign(0, -1)))
	out, err := ToJSON(v)
	require.NoError(t, err)
	assert.Equal(t, `[null,null,1,0.5,1,-0]`, string(out))
}

func TestToJSONIndent(t *testing.T) {
	out, err := ToJSONIndent(ObjectOf(Pair("a", Array(Int(1), Int(2)))), "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}", string(out))
}

func TestValueJSONMarshalers(t *testing.T) {
	type envelope struct {
		Data Value `json:"data"`
	}

	in := envelope{Data: ObjectOf(Pair("z", String("last")), Pair("a", Int(1)))}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"z":"last","a":1}}`, string(b))

	var out envelope
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, out.Data.Equal(in.Data), "got %s", out.Data)
}
