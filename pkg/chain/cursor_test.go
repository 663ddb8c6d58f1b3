package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorNavigation(t *testing.T) {
	l := buildList(t, 1, 2, 3)
	c := l.First()

	assert.False(t, c.Prev(), "moved before head")
	v, _ := c.Value()
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, c.Index())

	assert.True(t, c.Next())
	assert.True(t, c.Next())
	v, _ = c.Value()
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, c.Index())

	assert.False(t, c.Next(), "moved past tail")
	v, _ = c.Value()
	assert.Equal(t, 3, v)

	assert.True(t, c.Prev())
	v, _ = c.Value()
	assert.Equal(t, 2, v)
}

func TestCursorMovesDoNotMutate(t *testing.T) {
	l := buildList(t, 1, 2)
	c := l.Last()
	c.Next()
	c.Prev()
	c.Prev()
	assert.Equal(t, []int{1, 2}, l.Values())
	assertLinks(t, l)
}

func TestEmptyCursor(t *testing.T) {
	c := New[int]().First()
	assert.True(t, c.Empty())
	assert.False(t, c.Next())
	assert.False(t, c.Prev())
	assert.Equal(t, 0, c.Index())

	_, ok := c.Value()
	assert.False(t, ok)
	assert.Nil(t, c.Node())
}

func TestCursorSet(t *testing.T) {
	l := buildList(t, 1, 2, 3)
	c := NewCursor[int](nil)
	c.Set(l.Tail())
	v, ok := c.Value()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}
