package uhash

import (
	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// KeyFunc projects a key onto the 64-bit word consumed by the table's
// multiply-shift hash. It must be deterministic: equal keys must always
// project to the same word. Distinct keys may collide; collisions only cost
// chain length, never correctness.
type KeyFunc[K any] func(K) uint64

// IntegerKey reinterprets an integer key as a word. The mapping is injective
// for every integer type.
func IntegerKey[K constraints.Integer](key K) uint64 {
	return uint64(key)
}

// StringKey projects a string with xxHash64.
func StringKey(key string) uint64 {
	return xxhash.Sum64String(key)
}
