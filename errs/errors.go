// Package errs defines the sentinel errors shared across the minitel module.
//
// Callers are expected to match them with errors.Is after unwrapping, e.g.:
//
//	if errors.Is(err, errs.ErrQueueFull) { ... }
package errs

import "errors"

var (
	// ErrQueueFull is returned by throttle.Queue.Enqueue when accepting the
	// payload would grow the backlog beyond the configured limit. Dropping
	// bytes silently is never an option: the renderer's committed grid would
	// no longer describe what the terminal displays.
	ErrQueueFull = errors.New("emission queue full")

	// ErrInvalidBandwidth is returned when a queue is configured with a
	// non-positive bandwidth, tick interval or backlog bound.
	ErrInvalidBandwidth = errors.New("invalid bandwidth configuration")

	// ErrGridBounds is returned when a cell address falls outside the grid.
	ErrGridBounds = errors.New("position outside grid")

	// ErrGridSizeMismatch is returned when two grids of different geometry
	// are diffed or copied into each other.
	ErrGridSizeMismatch = errors.New("grid size mismatch")

	// ErrBadMagic is returned when a capture file does not start with the
	// expected magic bytes.
	ErrBadMagic = errors.New("not a capture file")

	// ErrUnsupportedVersion is returned when a capture file declares a
	// format version this build does not understand.
	ErrUnsupportedVersion = errors.New("unsupported capture version")

	// ErrUnknownCompression is returned when a capture file (or option)
	// names a compression codec this build does not provide.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrChecksumMismatch is returned when a capture file's integrity
	// trailer does not match the decompressed record stream.
	ErrChecksumMismatch = errors.New("capture checksum mismatch")

	// ErrTruncatedCapture is returned when a capture record stream ends in
	// the middle of a record.
	ErrTruncatedCapture = errors.New("truncated capture record")
)
