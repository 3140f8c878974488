package uhash

import "github.com/theflywheel/uhash/internal/list"

type entry[K comparable, V any] struct {
	key K
	val V
}

// chain is the bucket stored in every slot. It keeps at most one entry per key
// and is the only code that touches the underlying list.
type chain[K comparable, V any] struct {
	entries list.List[entry[K, V]]
}

func (c *chain[K, V]) find(key K) *entry[K, V] {
	node := c.entries.Find(func(e entry[K, V]) bool { return e.key == key })
	if node == nil {
		return nil
	}
	return &node.Value
}

func (c *chain[K, V]) get(key K) (V, bool) {
	if e := c.find(key); e != nil {
		return e.val, true
	}
	var zero V
	return zero, false
}

// set overwrites the value of key or prepends a new entry. It reports whether
// an entry was added.
func (c *chain[K, V]) set(key K, val V) bool {
	if e := c.find(key); e != nil {
		e.val = val
		return false
	}
	c.push(key, val)
	return true
}

// push prepends without checking for an existing entry. Callers guarantee the
// key is not already in the chain.
func (c *chain[K, V]) push(key K, val V) {
	c.entries.PushFront(entry[K, V]{key: key, val: val})
}

func (c *chain[K, V]) remove(key K) (V, bool) {
	e, ok := c.entries.Remove(func(e entry[K, V]) bool { return e.key == key })
	return e.val, ok
}

// pop unlinks the head entry. ok is false once the chain is empty.
func (c *chain[K, V]) pop() (key K, val V, ok bool) {
	e, ok := c.entries.PopFront()
	return e.key, e.val, ok
}

func (c *chain[K, V]) len() int {
	return c.entries.Len()
}

func (c *chain[K, V]) empty() bool {
	return c.entries.Empty()
}

// each calls fn for every entry until fn returns false. It reports whether
// the walk ran to the end.
func (c *chain[K, V]) each(fn func(K, V) bool) bool {
	for node := c.entries.Front(); node != nil; node = node.Next() {
		if !fn(node.Value.key, node.Value.val) {
			return false
		}
	}
	return true
}
