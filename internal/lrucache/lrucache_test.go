package lrucache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLruCache[string, []byte](2)
	c.Add("a", []byte("1"))
	c.Add("b", []byte("2"))

	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Add("c", []byte("3"))

	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), v)
	assert.Equal(t, 2, c.Len())
}

func TestAddReplacesValue(t *testing.T) {
	c := NewLruCache[int, string](4)
	c.Add(1, "x")
	c.Add(1, "y")

	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "y", v)
	assert.Equal(t, 1, c.Len())
}

func TestRemove(t *testing.T) {
	c := NewLruCache[int, int](4)
	c.Add(1, 10)

	assert.True(t, c.Remove(1))
	assert.False(t, c.Remove(1))
	assert.Equal(t, 0, c.Len())
}

func TestMinimumCapacity(t *testing.T) {
	c := NewLruCache[int, int](0)
	c.Add(1, 1)
	c.Add(2, 2)

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(2)
	assert.True(t, ok)
}
