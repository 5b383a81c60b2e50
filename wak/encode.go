package wak

import (
	"github.com/NathanSnail/data-utils/wak/internal/bytesio"
)

// Encode serializes entries into archive bytes.
//
// Entries are written in input order; Encode does not canonicalize.
// Callers building from a directory tree should obtain entries from
// [ScanDir] so that independent builds of the same tree produce
// byte-identical archives. Each content block is followed by a single
// zero padding byte, accounted for in the table addresses.
func Encode(entries []Entry) []byte {
	var sink bytesio.Sink

	start := ContentStart(entries)
	sink.WriteBytes(magic)
	sink.WriteUint(uint64(len(entries)), fieldWidth)
	sink.WriteUint(uint64(start), fieldWidth)
	sink.WriteBytes(magic)

	addr := start
	for _, e := range entries {
		sink.WriteUint(uint64(addr), fieldWidth)
		sink.WriteUint(uint64(len(e.Content)), fieldWidth)
		sink.WriteLengthPrefixed([]byte(e.Path), fieldWidth)
		addr += uint32(len(e.Content)) + 1
	}

	for _, e := range entries {
		sink.WriteBytes(e.Content)
		sink.WriteUint(0, 1)
	}
	return sink.Bytes()
}
