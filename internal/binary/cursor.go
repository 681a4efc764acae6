package binary

// Cursor is a forward-reading view over an in-memory buffer.
//
// The cursor owns its buffer for the duration of a decode. Every read either
// succeeds completely and advances the position, or fails with an
// *OutOfBoundsError and leaves the position untouched.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the capacity of the cursor (the full buffer length).
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Position returns the current read offset.
func (c *Cursor) Position() int {
	return c.pos
}

// Seek moves the read offset to pos. pos must lie within [0, Len()].
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return c.bounds(pos, 0, "seek target")
	}
	c.pos = pos
	return nil
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// ReadByte reads one byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, c.bounds(c.pos, 1, "byte")
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// PeekByte returns the next byte without advancing.
func (c *Cursor) PeekByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, c.bounds(c.pos, 1, "byte")
	}
	return c.buf[c.pos], nil
}

// ReadN reads exactly n bytes. The returned slice aliases the cursor's buffer.
func (c *Cursor) ReadN(n int, what string) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, c.bounds(c.pos, n, what)
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int, what string) error {
	if n < 0 || n > c.Remaining() {
		return c.bounds(c.pos, n, what)
	}
	c.pos += n
	return nil
}

func (c *Cursor) bounds(off, n int, what string) error {
	return &OutOfBoundsError{
		What:   what,
		Offset: int64(off),
		Length: n,
		Size:   int64(len(c.buf)),
	}
}
