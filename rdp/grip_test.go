// Copyright © 2026 The gripdap authors

package rdp

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGripUnmarshal_Union(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Grip
	}{
		{name: "bare string", in: `"hello"`, want: String("hello")},
		{name: "bare number", in: `42.5`, want: Number(42.5)},
		{name: "bare bool", in: `true`, want: Boolean(true)},
		{name: "json null", in: `null`, want: Null()},
		{name: "typed null", in: `{"type":"null"}`, want: Null()},
		{name: "typed undefined", in: `{"type":"undefined"}`, want: Undefined()},
		{
			name: "object",
			in:   `{"type":"object","actor":"obj17","class":"Array"}`,
			want: Object(&ObjectGrip{Actor: "obj17", Class: "Array"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Grip
			require.NoError(t, json.Unmarshal([]byte(tt.in), &g))
			assert.Equal(t, tt.want, g)
		})
	}
}

func TestGripUnmarshal_SpecialNumbers(t *testing.T) {
	var g Grip
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Infinity"}`), &g))
	assert.True(t, math.IsInf(g.Num, 1))

	require.NoError(t, json.Unmarshal([]byte(`{"type":"-Infinity"}`), &g))
	assert.True(t, math.IsInf(g.Num, -1))

	require.NoError(t, json.Unmarshal([]byte(`{"type":"NaN"}`), &g))
	assert.True(t, math.IsNaN(g.Num))
}

func TestGripUnmarshal_UnknownShapeFails(t *testing.T) {
	var g Grip
	err := json.Unmarshal([]byte(`{"type":"mystery"}`), &g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized grip type")

	err = json.Unmarshal([]byte(`[1,2,3]`), &g)
	require.Error(t, err)
}

func TestGripIsObject(t *testing.T) {
	assert.True(t, Object(&ObjectGrip{Actor: "obj1"}).IsObject())
	assert.False(t, String("x").IsObject())
	assert.False(t, Null().IsObject())
	assert.False(t, Undefined().IsObject())
	// Kind says object but no payload: not resolvable.
	assert.False(t, Grip{Kind: KindObject}.IsObject())
}

func TestGripDisplay(t *testing.T) {
	tests := []struct {
		name string
		g    Grip
		want string
	}{
		{name: "undefined", g: Undefined(), want: "undefined"},
		{name: "null", g: Null(), want: "null"},
		{name: "bool", g: Boolean(false), want: "false"},
		{name: "number", g: Number(3), want: "3"},
		{name: "string quoted", g: String(`a "b"`), want: `"a \"b\""`},
		{name: "object by class", g: Object(&ObjectGrip{Actor: "o1", Class: "Array"}), want: "Array"},
		{name: "object without class", g: Object(&ObjectGrip{Actor: "o1"}), want: "Object"},
		{
			name: "function by display name",
			g:    Object(&ObjectGrip{Actor: "o2", Class: "Function", DisplayName: "add"}),
			want: "function add()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.g.Display())
		})
	}
}

func TestGripMarshal_RoundTrip(t *testing.T) {
	// The wire forms the adapter emits must decode back to the same grip.
	grips := []Grip{
		Undefined(),
		Null(),
		Boolean(true),
		Number(1.5),
		String("s"),
		Object(&ObjectGrip{Actor: "obj9", Class: "Map"}),
	}
	for _, g := range grips {
		data, err := json.Marshal(g)
		require.NoError(t, err)
		var back Grip
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, g, back)
	}
}
