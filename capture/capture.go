// Package capture records the two byte flows of a terminal session into
// a compact binary file, for later replay and debugging.
//
// A capture file is a fixed header, a compressed stream of timestamped
// records and a checksum trailer:
//
//	magic "VTXC1" | version | compression | compressed records | xxhash64
//
// Each record is, before compression:
//
//	uvarint delta-µs | direction byte | uvarint length | payload bytes
//
// The delta is the time elapsed since the previous record, so replays
// can reproduce the original pacing. The trailer is the xxhash64 of the
// uncompressed record stream.
package capture

import (
	"time"

	"github.com/jmadec/minitel/compress"
)

var magic = []byte("VTXC1")

// Version is the capture format version this package writes.
const Version = 1

const headerSize = len("VTXC1") + 2 // magic + version + compression

// Direction tells which way a record's bytes flowed, relative to the
// terminal.
type Direction uint8

const (
	// ToTerminal marks display-stream bytes sent to the terminal.
	ToTerminal Direction = iota
	// FromTerminal marks bytes the terminal sent back: keystrokes,
	// function keys, protocol answers.
	FromTerminal
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case ToTerminal:
		return "to-terminal"
	case FromTerminal:
		return "from-terminal"
	default:
		return "unknown"
	}
}

// Record is one timestamped burst of bytes in a capture.
type Record struct {
	// Delta is the time elapsed since the previous record.
	Delta time.Duration
	// Dir tells which way the bytes flowed.
	Dir Direction
	// Data is the record payload.
	Data []byte
}

// DefaultCompression is the codec used when a Writer is not configured
// otherwise. S2 keeps the write path fast enough for live sessions.
const DefaultCompression = compress.TypeS2
