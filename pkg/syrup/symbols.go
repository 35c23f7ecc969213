package syrup

import (
	lru "github.com/hashicorp/golang-lru"
)

// DefaultSymbolCacheSize is the number of symbol names kept by
// NewSymbolCache when a non-positive size is given.
const DefaultSymbolCacheSize = 4096

// SymbolCache interns symbol names seen by the decoder, so that documents
// with many repeated symbols (like record labels and map keys) share a
// single copy of each name. It's safe for concurrent use and can be shared
// between decoders.
type SymbolCache struct {
	cache *lru.Cache
}

// NewSymbolCache creates a SymbolCache holding up to size names.
func NewSymbolCache(size int) *SymbolCache {
	if size <= 0 {
		size = DefaultSymbolCacheSize
	}
	c, _ := lru.New(size) // Never errors for positive size.
	return &SymbolCache{cache: c}
}

// Intern returns a Symbol for the given name reusing the cached one if
// it's present.
func (c *SymbolCache) Intern(name []byte) Symbol {
	if v, ok := c.cache.Get(string(name)); ok {
		return v.(Symbol)
	}
	s := Symbol(name)
	c.cache.Add(string(s), s)
	return s
}

// Len returns the number of cached names.
func (c *SymbolCache) Len() int {
	return c.cache.Len()
}
