package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor(t *testing.T) {
	t.Run("down from nothing starts at first", func(t *testing.T) {
		c := NewCursor(3)
		_, ok := c.Selected()
		assert.False(t, ok)

		pos, ok := c.Next()
		assert.True(t, ok)
		assert.Equal(t, 0, pos)
	})

	t.Run("down wraps to first", func(t *testing.T) {
		c := NewCursor(2)
		c.Next()
		c.Next()
		pos, _ := c.Next()
		assert.Equal(t, 0, pos)
	})

	t.Run("up without highlight does nothing", func(t *testing.T) {
		c := NewCursor(3)
		_, ok := c.Prev()
		assert.False(t, ok)
		_, ok = c.Selected()
		assert.False(t, ok)
	})

	t.Run("up wraps to last", func(t *testing.T) {
		c := NewCursor(3)
		c.Next()
		pos, ok := c.Prev()
		assert.True(t, ok)
		assert.Equal(t, 2, pos)

		pos, _ = c.Prev()
		assert.Equal(t, 1, pos)
	})

	t.Run("empty list", func(t *testing.T) {
		c := NewCursor(0)
		_, ok := c.Next()
		assert.False(t, ok)

		var zero Cursor
		_, ok = zero.Next()
		assert.False(t, ok)
	})

	t.Run("reset", func(t *testing.T) {
		c := NewCursor(3)
		c.Next()
		c.Reset(5)
		_, ok := c.Selected()
		assert.False(t, ok)
		pos, _ := c.Prev()
		assert.Equal(t, -1, pos)
		pos, _ = c.Next()
		assert.Equal(t, 0, pos)
	})
}
