package bytesio

import "fmt"

// Sink accumulates little-endian output in memory. Writes append to
// the buffer; Patch variants overwrite bytes at an absolute offset
// that has already been written. The two paths are kept distinct so
// that backfilling a header field is always an explicit, bounds-checked
// operation.
type Sink struct {
	buf []byte
}

// WriteBytes appends p to the buffer.
func (s *Sink) WriteBytes(p []byte) {
	s.buf = append(s.buf, p...)
}

// WriteUint appends v as width little-endian bytes.
func (s *Sink) WriteUint(v uint64, width int) {
	for i := range width {
		s.buf = append(s.buf, byte(v>>(8*i)))
	}
}

// WriteLengthPrefixed appends the length of p as a lenWidth-byte
// little-endian integer, followed by p itself.
func (s *Sink) WriteLengthPrefixed(p []byte, lenWidth int) {
	s.WriteUint(uint64(len(p)), lenWidth)
	s.WriteBytes(p)
}

// PatchBytes overwrites len(p) bytes at the absolute offset off. The
// buffer must already extend past off+len(p); patching never grows it.
func (s *Sink) PatchBytes(p []byte, off int) error {
	if off < 0 || off > len(s.buf)-len(p) {
		return fmt.Errorf("%w: patch [%d, %d) in buffer of %d bytes", ErrOutOfRange, off, off+len(p), len(s.buf))
	}
	copy(s.buf[off:], p)
	return nil
}

// PatchUint overwrites width bytes at the absolute offset off with v
// as a little-endian integer.
func (s *Sink) PatchUint(v uint64, width int, off int) error {
	if off < 0 || off > len(s.buf)-width {
		return fmt.Errorf("%w: patch [%d, %d) in buffer of %d bytes", ErrOutOfRange, off, off+width, len(s.buf))
	}
	for i := range width {
		s.buf[off+i] = byte(v >> (8 * i))
	}
	return nil
}

// PatchLengthPrefixed overwrites a length prefix at off and the bytes
// of p immediately after it.
func (s *Sink) PatchLengthPrefixed(p []byte, lenWidth int, off int) error {
	if err := s.PatchUint(uint64(len(p)), lenWidth, off); err != nil {
		return err
	}
	return s.PatchBytes(p, off+lenWidth)
}

// Len returns the number of bytes written so far.
func (s *Sink) Len() int {
	return len(s.buf)
}

// Bytes returns the accumulated buffer.
func (s *Sink) Bytes() []byte {
	return s.buf
}
