package wak

import (
	"fmt"

	"github.com/NathanSnail/data-utils/wak/internal/bytesio"
)

// Decode parses an archive and returns its entries in table order.
//
// Entry content aliases data; callers must not modify the buffer while
// the entries are in use. Decode performs no filesystem access; use
// [Extract] to materialize entries on disk.
func Decode(data []byte) ([]Entry, error) {
	cur := bytesio.NewCursor(data)

	if err := cur.Expect(magic); err != nil {
		return nil, fmt.Errorf("header start: %w", err)
	}
	count, err := cur.ReadUint(fieldWidth)
	if err != nil {
		return nil, fmt.Errorf("entry count: %w", err)
	}
	// The content start offset is advisory; table records carry
	// absolute addresses, so it is read and ignored.
	if _, err := cur.ReadUint(fieldWidth); err != nil {
		return nil, fmt.Errorf("content start offset: %w", err)
	}
	if err := cur.Expect(magic); err != nil {
		return nil, fmt.Errorf("header end: %w", err)
	}

	entries := make([]Entry, 0, count)
	for i := range count {
		addr, err := cur.ReadUint(fieldWidth)
		if err != nil {
			return nil, fmt.Errorf("record %d addr: %w", i, err)
		}
		size, err := cur.ReadUint(fieldWidth)
		if err != nil {
			return nil, fmt.Errorf("record %d size: %w", i, err)
		}
		path, err := cur.ReadString(fieldWidth)
		if err != nil {
			return nil, fmt.Errorf("record %d path: %w", i, err)
		}
		content, err := cur.SliceAt(int(addr), int(size))
		if err != nil {
			return nil, fmt.Errorf("record %d content %q: %w", i, path, err)
		}
		entries = append(entries, Entry{
			Path:    path,
			Content: content,
			Offset:  uint32(addr),
		})
	}
	return entries, nil
}
