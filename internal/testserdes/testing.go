package testserdes

import (
	"testing"

	"github.com/nspcc-dev/syrup/pkg/syrup"
	"github.com/stretchr/testify/require"
)

// EncodeDecode checks if expected stays the same after
// serializing/deserializing and that the encoding is stable, that is
// re-encoding the decoded value produces the same bytes. It returns the
// encoding.
func EncodeDecode(t *testing.T, expected syrup.Item) []byte {
	data, err := syrup.Serialize(expected)
	require.NoError(t, err)
	actual, err := syrup.Deserialize(data, syrup.DecodeOptions{Strict: true})
	require.NoError(t, err)
	RequireEqual(t, expected, actual)

	again, err := syrup.Serialize(actual)
	require.NoError(t, err)
	require.Equal(t, data, again)
	return data
}

// ToFromJSON checks if expected stays the same after conversion to typed
// JSON and back.
func ToFromJSON(t *testing.T, expected syrup.Item) {
	data, err := syrup.ToJSONWithTypes(expected)
	require.NoError(t, err)
	actual, err := syrup.FromJSONWithTypes(data)
	require.NoError(t, err)
	RequireEqual(t, expected, actual)
}

// RequireEqual checks that two items are structurally equal.
func RequireEqual(t testing.TB, expected, actual syrup.Item) {
	t.Helper()
	require.NotNil(t, actual)
	require.Truef(t, expected.Equals(actual), "expected %v, got %v", expected, actual)
}
