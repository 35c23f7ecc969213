package syrup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSONWithTypes(t *testing.T) {
	testCases := []struct {
		name   string
		item   Item
		result string
	}{
		{"Boolean", Bool(false), `{"type":"Boolean","value":false}`},
		{"Integer", NewInt64(-42), `{"type":"Integer","value":"-42"}`},
		{"Double", Double(1.5), `{"type":"Double","value":"3ff8000000000000"}`},
		{"ByteString", bs("abc"), `{"type":"ByteString","value":"YWJj"}`},
		{"String", String("abc"), `{"type":"String","value":"abc"}`},
		{"Symbol", Symbol("abc"), `{"type":"Symbol","value":"abc"}`},
		{"List", NewList(Bool(true)), `{"type":"List","value":[{"type":"Boolean","value":true}]}`},
		{"EmptyList", NewList(), `{"type":"List","value":[]}`},
		{"Set", NewSet(NewInt64(2), NewInt64(1)),
			`{"type":"Set","value":[{"type":"Integer","value":"1"},{"type":"Integer","value":"2"}]}`},
		{"Map", NewMap(MapElement{Symbol("k"), Bool(true)}),
			`{"type":"Map","value":[{"key":{"type":"Symbol","value":"k"},"value":{"type":"Boolean","value":true}}]}`},
		{"Record", NewRecord(Symbol("r"), NewInt64(1)),
			`{"type":"Record","value":{"args":[{"type":"Integer","value":"1"}],"label":{"type":"Symbol","value":"r"}}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := ToJSONWithTypes(tc.item)
			require.NoError(t, err)
			require.JSONEq(t, tc.result, string(data))

			actual, err := FromJSONWithTypes(data)
			require.NoError(t, err)
			requireItemEqual(t, tc.item, actual)
		})
	}
}

func TestJSONWithTypesSpecialDoubles(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), math.Copysign(0, -1)} {
		data, err := ToJSONWithTypes(Double(f))
		require.NoError(t, err)
		actual, err := FromJSONWithTypes(data)
		require.NoError(t, err)
		requireItemEqual(t, Double(f), actual)
	}
}

func TestToJSONWithTypesErrors(t *testing.T) {
	_, err := ToJSONWithTypes(NewList(nil))
	require.ErrorIs(t, err, ErrNilItem)

	item := Item(NewList())
	for i := 0; i < MaxJSONDepth+1; i++ {
		item = NewList(item)
	}
	_, err = ToJSONWithTypes(item)
	require.ErrorIs(t, err, ErrTooDeep)
}

func TestFromJSONWithTypesErrors(t *testing.T) {
	errCases := map[string]error{
		`{"type":"Buffer","value":"YWJj"}`:                 ErrInvalidType,
		`{"type":"Boolean","value":1}`:                     ErrInvalidValue,
		`{"type":"Integer","value":"1.5"}`:                 ErrInvalidValue,
		`{"type":"Integer","value":1}`:                     ErrInvalidValue,
		`{"type":"Double","value":"3ff8"}`:                 ErrInvalidValue,
		`{"type":"Double","value":"xyz"}`:                  ErrInvalidValue,
		`{"type":"ByteString","value":"!!"}`:               ErrInvalidValue,
		`{"type":"Symbol","value":[]}`:                     ErrInvalidValue,
		`{"type":"List","value":{}}`:                       ErrInvalidValue,
		`{"type":"List","value":[{"type":"Nope"}]}`:        ErrInvalidType,
		`{"type":"Map","value":[{"key":1,"value":2}]}`:     nil,
		`{"type":"Record","value":[]}`:                     ErrInvalidValue,
		`{"type":"Record","value":{"label":{},"args":[]}}`: ErrInvalidType,
	}
	for input, cause := range errCases {
		_, err := FromJSONWithTypes([]byte(input))
		require.Error(t, err, input)
		if cause != nil {
			require.ErrorIs(t, err, cause, input)
		}
	}
}
