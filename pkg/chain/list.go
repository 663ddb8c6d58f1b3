package chain

import "iter"

// Node wraps one element of a List. Nodes are created with NewNode and
// become part of a list through InsertAfter or PushBack.
type Node[T any] struct {
	value      T
	prev, next *Node[T]

	// list is the owning list, nil while the node is detached.
	list *List[T]
}

// NewNode returns a detached node holding v.
func NewNode[T any](v T) *Node[T] {
	return &Node[T]{value: v}
}

// Value returns the element held by the node.
func (n *Node[T]) Value() T {
	return n.value
}

// Next returns the forward neighbor, or nil at the tail.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Prev returns the backward neighbor, or nil at the head.
func (n *Node[T]) Prev() *Node[T] {
	return n.prev
}

// List is an ordered chain of nodes with head and tail references.
//
// Between operations head.prev and tail.next are nil, every adjacent pair
// links to each other in both directions, and Len equals the number of
// nodes reachable from head. A List is not safe for concurrent use.
type List[T any] struct {
	head, tail *Node[T]
	length     int

	// limit caps the node count; zero means unbounded.
	limit int
}

// New returns an empty, unbounded list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// NewWithLimit returns an empty list that holds at most limit nodes.
// Insertions past the limit fail with ErrOutOfMemory.
func NewWithLimit[T any](limit int) *List[T] {
	return &List[T]{limit: limit}
}

// Len returns the number of nodes in the list.
func (l *List[T]) Len() int {
	return l.length
}

// Head returns the first node, or nil if the list is empty.
func (l *List[T]) Head() *Node[T] {
	return l.head
}

// Tail returns the last node, or nil if the list is empty.
func (l *List[T]) Tail() *Node[T] {
	return l.tail
}

// allocate builds a node for v, enforcing the list's limit. The list itself
// is not touched.
func (l *List[T]) allocate(v T) (*Node[T], error) {
	if l.limit > 0 && l.length >= l.limit {
		return nil, ErrOutOfMemory
	}
	n := NewNode(v)
	n.list = l
	return n, nil
}

// InsertAfter splices a new node holding v immediately after at and returns
// it. A nil at is a no-op and returns (nil, nil). The tail moves only when
// the new node becomes the last node. On error the chain is unmodified.
func (l *List[T]) InsertAfter(at *Node[T], v T) (*Node[T], error) {
	if at == nil {
		return nil, nil
	}
	if at.list != l {
		return nil, ErrForeignNode
	}

	n, err := l.allocate(v)
	if err != nil {
		return nil, err
	}

	n.prev = at
	n.next = at.next
	if at.next != nil {
		at.next.prev = n
	}
	at.next = n
	if n.next == nil {
		l.tail = n
	}
	l.length++
	return n, nil
}

// PushBack appends v as the new tail. On an empty list the node becomes both
// head and tail.
func (l *List[T]) PushBack(v T) (*Node[T], error) {
	if l.tail == nil {
		n, err := l.allocate(v)
		if err != nil {
			return nil, err
		}
		l.head = n
		l.tail = n
		l.length = 1
		return n, nil
	}
	return l.InsertAfter(l.tail, v)
}

// Delete removes the node under c, repairs the neighboring links and the
// head and tail references, and moves c to the removed node's forward
// neighbor, else its backward neighbor, else leaves it empty. release, when
// non-nil, is called exactly once with the removed element.
//
// Delete is a no-op for an empty cursor or one whose node is not in l.
func (l *List[T]) Delete(c *Cursor[T], release func(T)) {
	if c == nil || c.node == nil || c.node.list != l {
		return
	}

	n := c.node
	next, prev := n.next, n.prev

	if next != nil {
		next.prev = prev
	}
	if prev != nil {
		prev.next = next
	}
	if l.head == n {
		l.head = next
	}
	if l.tail == n {
		l.tail = prev
	}
	l.length--

	switch {
	case next != nil:
		c.node = next
	case prev != nil:
		c.node = prev
	default:
		c.node = nil
	}

	v := n.value
	n.detach()
	if release != nil {
		release(v)
	}
}

// Free releases every element exactly once in forward order and leaves the
// list empty. The walk is iterative so list length does not bound stack
// depth.
func (l *List[T]) Free(release func(T)) {
	n := l.head
	for n != nil {
		next := n.next
		v := n.value
		n.detach()
		if release != nil {
			release(v)
		}
		n = next
	}
	l.head = nil
	l.tail = nil
	l.length = 0
}

// detach clears the node's links and owner so a stale reference cannot reach
// back into the list.
func (n *Node[T]) detach() {
	var zero T
	n.value = zero
	n.prev = nil
	n.next = nil
	n.list = nil
}

// All returns an iterator over the elements in forward order.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Values returns the elements in forward order.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.length)
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}
