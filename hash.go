package uhash

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/bits"
	"math/rand/v2"
	"time"
)

// wordBits is W, the width of the hash arithmetic.
const wordBits = 64

// hashFunc is one member of the multiply-shift family:
//
//	slot(x) = ((a*x + b) mod 2^64) >> (64 - log2(M))
//
// a is odd. The shift is bound to the slot count the parameters were drawn
// for, so a hashFunc is only valid for the slot array it was created with.
type hashFunc struct {
	a, b  uint64
	shift uint
}

// newHashFunc draws fresh parameters for a table of size slots. size must be a
// power of two.
func newHashFunc(rng *rand.Rand, size int) hashFunc {
	return hashFunc{
		a:     rng.Uint64() | 1,
		b:     rng.Uint64(),
		shift: uint(wordBits - bits.TrailingZeros(uint(size))),
	}
}

func (h hashFunc) slot(x uint64) int {
	return int((h.a*x + h.b) >> h.shift)
}

// newSource returns a private PCG source. Unseeded tables draw their seed from
// crypto/rand so no two tables share a random stream.
func newSource(o *options) *rand.Rand {
	if o.seeded {
		return rand.New(rand.NewPCG(o.seed1, o.seed2))
	}
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		binary.LittleEndian.PutUint64(seed[:8], uint64(time.Now().UnixNano()))
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:])))
}

// nextPow2 rounds n up to a power of two. n <= 1 yields 1.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
