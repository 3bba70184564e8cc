package metalyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Value
	}{
		{"empty", "", Value{Kind: KindNull}},
		{"dash sentinel", "-", Value{Kind: KindNull}},
		{"integer", "185", Value{Kind: KindInt, IntVal: 185}},
		{"negative integer", "-12", Value{Kind: KindInt, IntVal: -12}},
		{"decimal comma", "3,14", Value{Kind: KindFloat, FloatVal: 3.14}},
		{"decimal dot", "0.85", Value{Kind: KindFloat, FloatVal: 0.85}},
		{"thousands space", "1 250", Value{Kind: KindInt, IntVal: 1250}},
		{"spaced float", "1 250,5", Value{Kind: KindFloat, FloatVal: 1250.5}},
		{"text passthrough", "Repos", Value{Kind: KindString, StrVal: "Repos"}},
		{"unit suffix stays text", "15,0 km/h", Value{Kind: KindString, StrVal: "15,0 km/h"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Coerce(tc.raw))
		})
	}
}

func TestCoerceIntegerWinsOverFloat(t *testing.T) {
	v := Coerce("150")
	require.Equal(t, KindInt, v.Kind)

	f, ok := v.Float64()
	require.True(t, ok)
	assert.Equal(t, 150.0, f)
}

func TestValueFloat64(t *testing.T) {
	_, ok := Coerce("").Float64()
	assert.False(t, ok)

	_, ok = Coerce("Effort").Float64()
	assert.False(t, ok)

	f, ok := Coerce("2,5").Float64()
	require.True(t, ok)
	assert.Equal(t, 2.5, f)
}

func TestValueMarshalJSON(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", "null"},
		{"-", "null"},
		{"185", "185"},
		{"3,5", "3.5"},
		{"Repos", `"Repos"`},
	}
	for _, tc := range cases {
		out, err := json.Marshal(Coerce(tc.raw))
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(out), "raw %q", tc.raw)
	}
}
