package uhash

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// Table is a hash table using universal hashing, separate chaining and
// table doubling/halving. A Table is not safe for concurrent use.
type Table[K comparable, V any] struct {
	slots   []chain[K, V]
	hash    hashFunc
	project KeyFunc[K]
	rng     *rand.Rand
	n       int

	opts   options
	logger *zap.Logger

	grows    int
	shrinks  int
	rehashed int
}

// New creates a table whose keys are projected onto hash words by project.
func New[K comparable, V any](project KeyFunc[K], opts ...Option) (*Table[K, V], error) {
	if project == nil {
		return nil, fmt.Errorf("%w: nil key projection", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.normalize(); err != nil {
		return nil, err
	}

	slots, err := allocate[K, V](o.initialSize)
	if err != nil {
		return nil, err
	}

	t := &Table[K, V]{
		slots:   slots,
		project: project,
		rng:     newSource(&o),
		opts:    o,
		logger:  o.logger,
	}
	t.hash = newHashFunc(t.rng, len(t.slots))
	return t, nil
}

// NewInteger creates a table keyed by an integer type.
func NewInteger[K constraints.Integer, V any](opts ...Option) (*Table[K, V], error) {
	return New[K, V](IntegerKey[K], opts...)
}

// NewString creates a table keyed by strings.
func NewString[V any](opts ...Option) (*Table[string, V], error) {
	return New[string, V](StringKey, opts...)
}

// Set stores value under key, overwriting any previous value. Adding a new key
// may grow the table; if the growth fails the key is not added and the error
// wraps ErrAllocation.
func (t *Table[K, V]) Set(key K, value V) error {
	c := t.chainFor(key)
	if !c.set(key, value) {
		return nil
	}
	t.n++

	if float64(t.n) >= t.opts.growthLoad*float64(len(t.slots)) {
		if err := t.resize(t.opts.growthFactor); err != nil {
			c.remove(key)
			t.n--
			return err
		}
	}
	return nil
}

// Get returns the value stored under key. The error wraps ErrKeyNotFound if
// the key is absent.
func (t *Table[K, V]) Get(key K) (V, error) {
	v, ok := t.chainFor(key).get(key)
	if !ok {
		return v, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return v, nil
}

// Lookup returns the value stored under key and whether it was present.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	return t.chainFor(key).get(key)
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	return t.chainFor(key).find(key) != nil
}

// Remove deletes key and returns its value. The error wraps ErrKeyNotFound if
// the key is absent. Removing may shrink the table; if the shrink fails the
// key is kept and the error wraps ErrAllocation.
func (t *Table[K, V]) Remove(key K) (V, error) {
	c := t.chainFor(key)
	v, ok := c.remove(key)
	if !ok {
		return v, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	t.n--

	if len(t.slots) > t.opts.minSize && float64(t.n) <= t.opts.shrinkLoad*float64(len(t.slots)) {
		if err := t.resize(t.opts.shrinkFactor); err != nil {
			c.push(key, v)
			t.n++
			var zero V
			return zero, err
		}
	}
	return v, nil
}

// Clear removes every entry and returns the table to its initial size.
func (t *Table[K, V]) Clear() {
	t.slots = make([]chain[K, V], t.opts.initialSize)
	t.hash = newHashFunc(t.rng, len(t.slots))
	t.n = 0
}

// Len returns the number of entries N.
func (t *Table[K, V]) Len() int {
	return t.n
}

// Size returns the number of slots M.
func (t *Table[K, V]) Size() int {
	return len(t.slots)
}

// LoadFactor returns N/M.
func (t *Table[K, V]) LoadFactor() float64 {
	return float64(t.n) / float64(len(t.slots))
}

// Range calls fn for every entry until fn returns false. The table must not
// be modified from fn.
func (t *Table[K, V]) Range(fn func(key K, value V) bool) {
	for i := range t.slots {
		if !t.slots[i].each(fn) {
			return
		}
	}
}

func (t *Table[K, V]) slot(key K) int {
	return t.hash.slot(t.project(key))
}

func (t *Table[K, V]) chainFor(key K) *chain[K, V] {
	return &t.slots[t.slot(key)]
}

// resize rebuilds the table with M scaled by factor. The new slot array is
// filled completely before it replaces the old one, so a failure leaves the
// table untouched.
func (t *Table[K, V]) resize(factor float64) error {
	from := len(t.slots)
	size := t.opts.minSize
	if scaled := int(math.Round(float64(from) * factor)); scaled > size {
		size = scaled
	}
	size = nextPow2(size)
	if size == from {
		return nil
	}

	if size > t.opts.maxSize {
		err := fmt.Errorf("%w: %d slots exceeds limit of %d", ErrAllocation, size, t.opts.maxSize)
		t.logger.Warn("table resize failed", zap.Int("from", from), zap.Int("to", size), zap.Error(err))
		return err
	}
	slots, err := allocate[K, V](size)
	if err != nil {
		t.logger.Warn("table resize failed", zap.Int("from", from), zap.Int("to", size), zap.Error(err))
		return err
	}

	// Nothing below can fail, so the old chains are drained as they are moved.
	hash := newHashFunc(t.rng, size)
	for i := range t.slots {
		for {
			k, v, ok := t.slots[i].pop()
			if !ok {
				break
			}
			slots[hash.slot(t.project(k))].push(k, v)
		}
	}
	t.slots, t.hash = slots, hash
	t.rehashed += t.n

	if size > from {
		t.grows++
	} else {
		t.shrinks++
	}
	t.logger.Debug("table resized",
		zap.Int("from", from),
		zap.Int("to", size),
		zap.Int("entries", t.n),
		zap.Int("grows", t.grows),
		zap.Int("shrinks", t.shrinks))
	return nil
}

// allocate makes a slot array, turning a runtime allocation panic into
// ErrAllocation.
func allocate[K comparable, V any](size int) (slots []chain[K, V], err error) {
	defer func() {
		if r := recover(); r != nil {
			slots, err = nil, fmt.Errorf("%w: %d slots: %v", ErrAllocation, size, r)
		}
	}()
	return make([]chain[K, V], size), nil
}

// Stats describes the shape of a table.
type Stats struct {
	Len          int
	Size         int
	LoadFactor   float64
	Grows        int
	Shrinks      int
	Rehashed     int
	LongestChain int
	EmptySlots   int
}

// Stats walks the slot array and reports the table's shape. It is O(M).
func (t *Table[K, V]) Stats() Stats {
	s := Stats{
		Len:        t.n,
		Size:       len(t.slots),
		LoadFactor: t.LoadFactor(),
		Grows:      t.grows,
		Shrinks:    t.shrinks,
		Rehashed:   t.rehashed,
	}
	for i := range t.slots {
		c := &t.slots[i]
		if c.empty() {
			s.EmptySlots++
			continue
		}
		if l := c.len(); l > s.LongestChain {
			s.LongestChain = l
		}
	}
	return s
}

func (t *Table[K, V]) String() string {
	return fmt.Sprintf("uhash.Table{len: %d, size: %d}", t.n, len(t.slots))
}

// Dump writes every slot and its chain to w, one line per slot:
//
//	len=2 size=8 load=0.25
//	[0] -
//	[1] 13: b -> 5: a
func (t *Table[K, V]) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "len=%d size=%d load=%.2f\n", t.n, len(t.slots), t.LoadFactor())
	for i := range t.slots {
		fmt.Fprintf(bw, "[%d]", i)
		if t.slots[i].empty() {
			bw.WriteString(" -\n")
			continue
		}
		sep := " "
		t.slots[i].each(func(k K, v V) bool {
			fmt.Fprintf(bw, "%s%v: %v", sep, k, v)
			sep = " -> "
			return true
		})
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
