package syrup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	typs := []Type{BooleanT, IntegerT, DoubleT, ByteStringT, StringT, SymbolT, ListT, RecordT, MapT, SetT}
	for _, typ := range typs {
		require.True(t, typ.IsValid())
		actual, err := FromString(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, actual)
	}

	_, err := FromString("Buffer")
	require.Error(t, err)
	require.False(t, InvalidT.IsValid())
	require.Equal(t, "INVALID", Type(0x13).String())
}
