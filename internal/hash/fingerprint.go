// Package hash computes xxHash64 fingerprints of screen content, letting
// the renderer skip unchanged rows without a cell-by-cell comparison.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/jmadec/minitel/videotex"
)

// Row fingerprints one row of cells. Every channel of every cell feeds
// the digest, so any visible change moves the fingerprint.
func Row(cells []videotex.Cell) uint64 {
	var d xxhash.Digest
	d.Reset()

	var scratch [11]byte
	for i := range cells {
		binary.LittleEndian.PutUint32(scratch[:4], uint32(cells[i].Char))
		a := &cells[i].Attrs
		scratch[4] = byte(a.Foreground)
		scratch[5] = byte(a.Background)
		scratch[6] = byte(a.Size)
		scratch[7] = byte(a.Blink)
		scratch[8] = byte(a.Invert)
		scratch[9] = byte(a.Separated)
		scratch[10] = byte(a.Charset)
		_, _ = d.Write(scratch[:])
	}

	return d.Sum64()
}
