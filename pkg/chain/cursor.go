package chain

// Cursor is a movable, non-owning reference to a node, or empty. Moving a
// cursor never mutates the list.
//
// A cursor whose node was removed through another cursor must not be moved
// again; Delete refuses it, but navigation does not check.
type Cursor[T any] struct {
	node *Node[T]
}

// NewCursor returns a cursor positioned at n, which may be nil.
func NewCursor[T any](n *Node[T]) *Cursor[T] {
	return &Cursor[T]{node: n}
}

// First returns a cursor at the head of l.
func (l *List[T]) First() *Cursor[T] {
	return NewCursor(l.head)
}

// Last returns a cursor at the tail of l.
func (l *List[T]) Last() *Cursor[T] {
	return NewCursor(l.tail)
}

// Node returns the node under the cursor, or nil.
func (c *Cursor[T]) Node() *Node[T] {
	return c.node
}

// Empty reports whether the cursor references no node.
func (c *Cursor[T]) Empty() bool {
	return c.node == nil
}

// Value returns the element under the cursor. ok is false for an empty
// cursor.
func (c *Cursor[T]) Value() (v T, ok bool) {
	if c.node == nil {
		return v, false
	}
	return c.node.value, true
}

// Set moves the cursor to n.
func (c *Cursor[T]) Set(n *Node[T]) {
	c.node = n
}

// Prev moves to the backward neighbor if there is one and reports whether
// the cursor moved. At the head it stays put.
func (c *Cursor[T]) Prev() bool {
	if c.node == nil || c.node.prev == nil {
		return false
	}
	c.node = c.node.prev
	return true
}

// Next moves to the forward neighbor if there is one and reports whether the
// cursor moved. At the tail it stays put.
func (c *Cursor[T]) Next() bool {
	if c.node == nil || c.node.next == nil {
		return false
	}
	c.node = c.node.next
	return true
}

// Index returns the 1-based position of the cursor's node, or 0 when empty.
func (c *Cursor[T]) Index() int {
	i := 0
	for n := c.node; n != nil; n = n.prev {
		i++
	}
	return i
}
