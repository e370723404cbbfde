package search

// Cursor tracks the highlighted entry of a suggestion list of fixed length.
// Moving past either end wraps around. The zero value has no highlight and no entries.
type Cursor struct {
	size int
	pos  int
}

// NewCursor returns a cursor over size entries with nothing highlighted.
func NewCursor(size int) *Cursor {
	return &Cursor{size: size, pos: -1}
}

// Next highlights the following entry, or the first one when nothing is highlighted.
func (c *Cursor) Next() (int, bool) {
	if c.size <= 0 {
		return -1, false
	}
	if c.pos < 0 {
		c.pos = 0
	} else {
		c.pos = (c.pos + 1) % c.size
	}
	return c.pos, true
}

// Prev highlights the preceding entry. With nothing highlighted it does nothing.
func (c *Cursor) Prev() (int, bool) {
	if c.size <= 0 || c.pos < 0 {
		return -1, false
	}
	c.pos--
	if c.pos < 0 {
		c.pos = c.size - 1
	}
	return c.pos, true
}

// Selected returns the highlighted position.
func (c *Cursor) Selected() (int, bool) {
	if c.size <= 0 || c.pos < 0 {
		return -1, false
	}
	return c.pos, true
}

// Reset clears the highlight and sets a new list length.
func (c *Cursor) Reset(size int) {
	c.size = size
	c.pos = -1
}
