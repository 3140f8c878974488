/*
Package uhash provides a generic in-memory hash table built on universal hashing,
separate chaining and table doubling/halving.

Basic usage:

	import "github.com/theflywheel/uhash"

	// Create a table keyed by ints
	t, err := uhash.NewInteger[int, string]()
	if err != nil {
		log.Fatal(err)
	}

	// Insert data
	if err := t.Set(5, "a"); err != nil {
		log.Fatal(err)
	}

	// Retrieve data
	v, err := t.Get(5)
	if errors.Is(err, uhash.ErrKeyNotFound) {
		fmt.Println("missing")
	}

	// Remove data
	v, err = t.Remove(5)

Keys of any comparable type can be used by supplying a KeyFunc that projects
them onto a 64-bit word:

	t, err := uhash.New[Point, int](func(p Point) uint64 {
		return uint64(uint32(p.X))<<32 | uint64(uint32(p.Y))
	})

Features:

  - Multiply-shift universal hashing with parameters drawn per table
  - Separate chaining on a singly linked list
  - Doubling when the load factor reaches 1, halving when it falls to 0.25
  - Never shrinks below the minimum size (8 slots by default)
  - Atomic resizes: a failed resize leaves the table as it was
  - Thresholds, sizes and seeds configurable through options or a TOML file
  - Not safe for concurrent use; wrap the table in a mutex when sharing it

Implementation Details:

The table holds M slots, M always a power of two. A key is first projected onto
a 64-bit word x, then hashed to slot ((a*x + b) mod 2^64) >> (64 - log2 M) where
a is a random odd word and b a random word. For any two distinct words the
probability that they share a slot is at most 2/M over the choice of (a, b),
so chains stay O(1) long in expectation while N = O(M).

Every resize draws new parameters and rehashes all N entries into a freshly
allocated slot array, which only replaces the old array once it is complete.
The gap between the growth and shrink thresholds keeps alternating inserts and
removes at a boundary from resizing on every operation, so the cost of a
sequence of operations is amortized O(1) each.
*/
package uhash
