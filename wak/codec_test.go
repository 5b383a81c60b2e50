package wak

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"no entries", nil},
		{"single file", []Entry{
			{Path: "a.txt", Content: []byte("hello")},
		}},
		{"nested paths", []Entry{
			{Path: "b.txt", Content: []byte("bb")},
			{Path: "sub/c.bin", Content: []byte{0x00, 0xff, 0x10}},
			{Path: "sub/deep/d", Content: []byte("dd")},
		}},
		{"empty file", []Entry{
			{Path: "empty", Content: nil},
			{Path: "full", Content: []byte("x")},
		}},
		{"empty path", []Entry{
			{Path: "", Content: []byte("anonymous")},
		}},
		{"binary content with zeros", []Entry{
			{Path: "z", Content: []byte{0, 0, 0, 0, 0}},
		}},
		{"unicode path", []Entry{
			{Path: "日記/メモ.txt", Content: []byte("こんにちは")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Encode(tt.entries)
			got, err := Decode(data)
			require.NoError(t, err)
			require.Len(t, got, len(tt.entries))
			for i := range tt.entries {
				assert.Equal(t, tt.entries[i].Path, got[i].Path)
				assert.Equal(t, tt.entries[i].Content, []byte(got[i].Content))
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	entries := []Entry{
		{Path: "a", Content: []byte("one")},
		{Path: "b/c", Content: []byte("two")},
	}
	assert.Equal(t, Encode(entries), Encode(entries))
}

func TestEncodeLayout(t *testing.T) {
	// Two entries with 5- and 6-byte paths and 2 bytes of content each:
	// the content region starts at 16 + (12+5) + (12+6) = 51.
	entries := []Entry{
		{Path: "b.txt", Content: []byte("hi")},
		{Path: "_a.txt", Content: []byte("lo")},
	}
	require.Equal(t, uint32(0x33), ContentStart(entries))

	data := Encode(entries)
	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint32(51), got[0].Offset)
	assert.Equal(t, uint32(54), got[1].Offset) // 51 + 2 content bytes + 1 pad

	// Each content block is followed by exactly one zero byte.
	assert.Equal(t, []byte{'h', 'i', 0, 'l', 'o', 0}, data[51:])
}

func TestEncodeEmptyArchive(t *testing.T) {
	data := Encode(nil)
	assert.Equal(t, []byte{
		0, 0, 0, 0,
		0, 0, 0, 0, // entry count
		16, 0, 0, 0, // content start offset
		0, 0, 0, 0,
	}, data)

	entries, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDecodeOffsetsMonotonic(t *testing.T) {
	entries := []Entry{
		{Path: "a", Content: []byte("xxxx")},
		{Path: "b", Content: nil},
		{Path: "c", Content: []byte("y")},
	}
	got, err := Decode(Encode(entries))
	require.NoError(t, err)

	start := ContentStart(entries)
	prevEnd := start
	for i, e := range got {
		assert.GreaterOrEqual(t, e.Offset, start)
		if i > 0 {
			assert.Greater(t, e.Offset, got[i-1].Offset)
		}
		// Contiguous with the previous block's end plus its pad byte.
		assert.Equal(t, prevEnd, e.Offset)
		prevEnd = e.Offset + uint32(len(e.Content)) + 1
	}
}

func TestDecodeCorruptMagic(t *testing.T) {
	data := Encode([]Entry{{Path: "a", Content: []byte("x")}})

	for _, off := range []int{0, 1, 2, 3, 12, 13, 14, 15} {
		corrupt := append([]byte(nil), data...)
		corrupt[off] ^= 0x01
		_, err := Decode(corrupt)
		assert.ErrorIs(t, err, ErrMalformedHeader, "flipped byte at offset %d", off)
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := Encode([]Entry{
		{Path: "a.txt", Content: []byte("aaa")},
		{Path: "b.txt", Content: []byte("bbb")},
	})

	tests := []struct {
		name string
		cut  int
	}{
		{"empty buffer", 0},
		{"mid header", 10},
		{"mid record fields", 20},
		{"mid path bytes", headerSize + recordFixedSize + 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(data[:tt.cut])
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}

	// Cutting inside the content region leaves the table readable but
	// the first record's absolute range dangling.
	_, err := Decode(data[:len(data)-8])
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDecodeInvalidPathEncoding(t *testing.T) {
	data := Encode([]Entry{{Path: "ab", Content: []byte("x")}})
	// The path bytes sit after the record's addr, size, and length fields.
	pathOff := headerSize + recordFixedSize
	data[pathOff] = 0xff
	data[pathOff+1] = 0xfe

	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestDecodeContentOutOfRange(t *testing.T) {
	data := Encode([]Entry{{Path: "a", Content: []byte("x")}})
	// Point the record's addr past the end of the buffer.
	binary.LittleEndian.PutUint32(data[headerSize:], uint32(len(data)))

	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDecodeIgnoresContentStartField(t *testing.T) {
	data := Encode([]Entry{{Path: "a", Content: []byte("x")}})
	// The content start offset is advisory; a bogus value must not
	// affect decoding because addresses are absolute.
	data[8] = 0xff
	data[9] = 0xff

	entries, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []byte("x"), []byte(entries[0].Content))
}
