// Package bytesio implements the little-endian buffer primitives the
// wak container format is built on: a sequential read cursor over an
// immutable byte slice and an append-only sink with explicit patch
// support.
package bytesio

import "errors"

// Sentinel errors shared by Cursor and Sink. The wak package re-exports
// these for callers.
var (
	// ErrTruncated is returned when a read demands more bytes than remain.
	ErrTruncated = errors.New("wak: truncated buffer")

	// ErrMalformedHeader is returned when expected literal bytes do not match.
	ErrMalformedHeader = errors.New("wak: malformed header")

	// ErrInvalidEncoding is returned when string bytes are not valid UTF-8.
	ErrInvalidEncoding = errors.New("wak: invalid string encoding")

	// ErrOutOfRange is returned when an absolute offset falls outside the buffer.
	ErrOutOfRange = errors.New("wak: offset out of range")
)
