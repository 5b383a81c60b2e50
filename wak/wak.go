// Package wak implements the wak archive container: a flat binary
// format holding named byte blobs, convertible to and from an on-disk
// directory tree.
//
// An archive is a 16-byte header, a linear file table, and a content
// region. All integers are little-endian:
//
//	offset 0                    : 4 zero bytes
//	offset 4                    : u32 entry count
//	offset 8                    : u32 content start offset
//	offset 12                   : 4 zero bytes
//	offset 16                   : one table record per entry:
//	                                u32 addr, u32 size, u32 path length,
//	                                path bytes (UTF-8)
//	offset content start offset : one content block per entry:
//	                                size bytes of raw content, 1 zero byte
//
// Content is stored verbatim; addr values are absolute offsets into
// the archive. Encoding the same entry sequence twice produces
// byte-identical output, and [ScanDir] orders a directory tree
// deterministically, so repeated builds of an unchanged tree are
// reproducible byte for byte.
package wak

import (
	"github.com/NathanSnail/data-utils/wak/internal/bytesio"
)

// Archive layout constants.
const (
	headerSize      = 16
	recordFixedSize = 12 // addr + size + path length fields
	fieldWidth      = 4  // all integer fields are u32
)

// magic is the zero sentinel bracketing the header.
var magic = []byte{0, 0, 0, 0}

// Sentinel errors re-exported from internal/bytesio.
var (
	// ErrTruncated is returned when the archive ends before a read completes.
	ErrTruncated = bytesio.ErrTruncated

	// ErrMalformedHeader is returned when a magic field is not all zero.
	ErrMalformedHeader = bytesio.ErrMalformedHeader

	// ErrInvalidEncoding is returned when a path is not valid UTF-8.
	ErrInvalidEncoding = bytesio.ErrInvalidEncoding

	// ErrOutOfRange is returned when a content range falls outside the archive.
	ErrOutOfRange = bytesio.ErrOutOfRange
)

// Entry is a single named byte blob tracked by the container.
type Entry struct {
	// Path is the entry's forward-slash relative path from the tree root.
	Path string

	// Content is the entry's exact bytes. Entries produced by Decode
	// alias the archive buffer; callers must not modify it.
	Content []byte

	// Offset is the absolute byte offset of the content in the archive.
	// Decode sets it from the file table; Encode ignores it.
	Offset uint32
}

// ContentStart returns the offset at which the content region begins
// for the given entries: the header plus one table record per entry.
func ContentStart(entries []Entry) uint32 {
	n := uint32(headerSize)
	for _, e := range entries {
		n += recordFixedSize + uint32(len(e.Path))
	}
	return n
}
