package syrup

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestSymbolCache(t *testing.T) {
	c := NewSymbolCache(2)
	a1 := c.Intern([]byte("a"))
	a2 := c.Intern([]byte("a"))
	require.Equal(t, Symbol("a"), a1)
	require.Equal(t, unsafe.StringData(string(a1)), unsafe.StringData(string(a2)))
	require.Equal(t, 1, c.Len())

	c.Intern([]byte("b"))
	c.Intern([]byte("c"))
	require.Equal(t, 2, c.Len())

	d := NewSymbolCache(0)
	for i := 0; i < DefaultSymbolCacheSize+10; i++ {
		d.Intern([]byte{byte(i), byte(i >> 8)})
	}
	require.Equal(t, DefaultSymbolCacheSize, d.Len())
}
