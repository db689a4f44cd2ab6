package state

// Cursor is a list selection. Index is -1 when nothing is selected; Offset
// is the first row shown in the viewport. Every method takes the current
// list length n because the list itself lives elsewhere.
type Cursor struct {
	Index  int
	Offset int
}

// NewCursor returns an unselected cursor.
func NewCursor() Cursor {
	return Cursor{Index: -1}
}

// Reset selects the first row, or nothing for an empty list.
func (c *Cursor) Reset(n int) {
	c.Offset = 0
	if n > 0 {
		c.Index = 0
		return
	}
	c.Index = -1
}

// Valid reports whether Index addresses a row.
func (c *Cursor) Valid(n int) bool {
	return c.Index >= 0 && c.Index < n
}

// Set moves to i if it is in range.
func (c *Cursor) Set(i, n int) bool {
	if i < 0 || i >= n || i == c.Index {
		return false
	}
	c.Index = i
	return true
}

// Up moves one row up, wrapping to the bottom.
func (c *Cursor) Up(n int) bool {
	if n == 0 {
		c.Index = -1
		return false
	}
	old := c.Index
	if c.Index <= 0 || c.Index >= n {
		c.Index = n - 1
	} else {
		c.Index--
	}
	return old != c.Index
}

// Down moves one row down, wrapping to the top.
func (c *Cursor) Down(n int) bool {
	if n == 0 {
		c.Index = -1
		return false
	}
	old := c.Index
	if c.Index < 0 || c.Index >= n-1 {
		c.Index = 0
	} else {
		c.Index++
	}
	return old != c.Index
}

// Home moves to the first row.
func (c *Cursor) Home(n int) bool {
	if n == 0 {
		c.Index = -1
		return false
	}
	old := c.Index
	c.Index = 0
	return old != c.Index
}

// End moves to the last row.
func (c *Cursor) End(n int) bool {
	if n == 0 {
		c.Index = -1
		return false
	}
	old := c.Index
	c.Index = n - 1
	return old != c.Index
}

// PageUp moves up by one page without wrapping.
func (c *Cursor) PageUp(n, maxVisible int) bool {
	return c.moveBy(n, -pageSize(n, maxVisible))
}

// PageDown moves down by one page without wrapping.
func (c *Cursor) PageDown(n, maxVisible int) bool {
	return c.moveBy(n, pageSize(n, maxVisible))
}

func (c *Cursor) moveBy(n, delta int) bool {
	if n == 0 {
		c.Index = -1
		return false
	}
	old := c.Index
	if c.Index < 0 {
		c.Index = 0
	}
	c.Index += delta
	if c.Index < 0 {
		c.Index = 0
	}
	if c.Index >= n {
		c.Index = n - 1
	}
	return c.Index != old
}

func pageSize(n, maxVisible int) int {
	if n == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > n {
		size = n
	}
	return size
}

// EnsureVisible adjusts Offset so Index falls inside a window of
// maxVisible rows.
func (c *Cursor) EnsureVisible(n, maxVisible int) {
	if n == 0 {
		c.Index = -1
		c.Offset = 0
		return
	}
	if c.Index >= n {
		c.Index = n - 1
	}
	if maxVisible <= 0 {
		c.Offset = 0
		return
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.Offset > maxOffset {
		c.Offset = maxOffset
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
	if c.Index < 0 {
		return
	}
	if c.Index < c.Offset {
		c.Offset = c.Index
	}
	if upper := c.Offset + maxVisible - 1; c.Index > upper {
		c.Offset = c.Index - maxVisible + 1
		if c.Offset > maxOffset {
			c.Offset = maxOffset
		}
	}
}
