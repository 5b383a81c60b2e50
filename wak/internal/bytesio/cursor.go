package bytesio

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Cursor reads little-endian values sequentially from an immutable
// byte slice. Reads that return slices alias the underlying buffer;
// callers must not modify them.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// ReadBytes consumes exactly n bytes and advances the position.
// The returned slice aliases the underlying buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.pos {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, c.pos, len(c.data)-c.pos)
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadUint consumes width bytes and interprets them as an unsigned
// little-endian integer.
func (c *Cursor) ReadUint(width int) (uint64, error) {
	b, err := c.ReadBytes(width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i, x := range b {
		v |= uint64(x) << (8 * i)
	}
	return v, nil
}

// ReadString reads a lenWidth-byte little-endian length followed by
// that many bytes of UTF-8 text.
func (c *Cursor) ReadString(lenWidth int) (string, error) {
	n, err := c.ReadUint(lenWidth)
	if err != nil {
		return "", err
	}
	b, err := c.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %q", ErrInvalidEncoding, b)
	}
	return string(b), nil
}

// SliceAt returns n bytes starting at the absolute offset off,
// independent of the current read position. The returned slice aliases
// the underlying buffer.
func (c *Cursor) SliceAt(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(c.data)-n {
		return nil, fmt.Errorf("%w: [%d, %d) in buffer of %d bytes", ErrOutOfRange, off, off+n, len(c.data))
	}
	return c.data[off : off+n], nil
}

// Expect consumes len(literal) bytes and verifies they equal literal.
func (c *Cursor) Expect(literal []byte) error {
	b, err := c.ReadBytes(len(literal))
	if err != nil {
		return err
	}
	if !bytes.Equal(b, literal) {
		return fmt.Errorf("%w: expected % x, found % x at offset %d", ErrMalformedHeader, literal, b, c.pos-len(literal))
	}
	return nil
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}
