// Package list implements a generic singly linked list.
//
// Elements are pushed and popped at the head only. Nodes are owned by exactly
// one list; a node unlinked by PopFront or Remove is detached before it is
// returned so the list keeps no reference to it.
package list

// Node is an element of a List.
type Node[T any] struct {
	Value T
	next  *Node[T]
}

// Next returns the node after n, or nil at the end of the list.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// List is a singly linked list. The zero value is an empty list ready to use.
type List[T any] struct {
	head *Node[T]
	n    int
}

// PushFront adds v at the head of the list in O(1).
func (l *List[T]) PushFront(v T) {
	node := &Node[T]{Value: v, next: l.head}
	l.head = node
	l.n++
}

// PopFront removes and returns the head value. ok is false on an empty list.
func (l *List[T]) PopFront() (v T, ok bool) {
	if l.head == nil {
		return v, false
	}
	node := l.head
	l.head = node.next
	node.next = nil
	l.n--
	return node.Value, true
}

// Front returns the head node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] {
	return l.head
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.n
}

// Empty reports whether the list has no elements.
func (l *List[T]) Empty() bool {
	return l.n == 0
}

// Find returns the first node whose value satisfies match, or nil.
func (l *List[T]) Find(match func(T) bool) *Node[T] {
	for node := l.head; node != nil; node = node.next {
		if match(node.Value) {
			return node
		}
	}
	return nil
}

// Remove unlinks the first node whose value satisfies match and returns its
// value. ok is false when no value matched.
func (l *List[T]) Remove(match func(T) bool) (v T, ok bool) {
	var prev *Node[T]
	for node := l.head; node != nil; prev, node = node, node.next {
		if !match(node.Value) {
			continue
		}
		if prev == nil {
			l.head = node.next
		} else {
			prev.next = node.next
		}
		node.next = nil
		l.n--
		return node.Value, true
	}
	return v, false
}
