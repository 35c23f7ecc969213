package syrup

import (
	"bytes"
	"slices"

	"github.com/twmb/murmur3"
)

// hashIndex maps murmur3 hashes of member encodings to member positions.
type hashIndex map[uint64][]int

func (h hashIndex) add(key []byte, pos int) {
	k := hashKey(key)
	h[k] = append(h[k], pos)
}

func hashKey(key []byte) uint64 {
	return murmur3.Sum64(key)
}

// Compare returns an integer comparing two Items by the byte-lexicographic
// order of their canonical encodings. The result will be 0 if a equals b,
// -1 if a < b, and +1 if a > b. This is the order used for map keys and
// set members.
func Compare(a, b Item) int {
	return bytes.Compare(encodeKey(a), encodeKey(b))
}

// Hash returns murmur3 hash of the Item's canonical encoding, equal Items
// always have equal hashes.
func Hash(item Item) uint64 {
	return hashKey(encodeKey(item))
}

// canonicalOrder returns indices of keys sorted by key bytes with
// duplicates removed. For duplicates the last index is kept if lastWins is
// set and the first one otherwise.
func canonicalOrder(keys [][]byte, lastWins bool) []int {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return bytes.Compare(keys[a], keys[b])
	})
	res := order[:0]
	for _, idx := range order {
		if n := len(res); n > 0 && bytes.Equal(keys[res[n-1]], keys[idx]) {
			if lastWins {
				res[n-1] = idx
			}
			continue
		}
		res = append(res, idx)
	}
	return res
}
