package capture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/jmadec/minitel/codec"
	"github.com/jmadec/minitel/compress"
	"github.com/jmadec/minitel/errs"
)

// Reader parses a capture file. NewReader consumes the whole input and
// validates the header and checksum up front, so iteration errors are
// limited to record-level truncation.
type Reader struct {
	ctype   compress.Type
	version uint8
	records []byte
}

// NewReader reads a complete capture from r and validates it.
func NewReader(r io.Reader) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("capture: read: %w", err)
	}

	if len(data) < headerSize+8 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrTruncatedCapture, len(data))
	}
	if !bytes.Equal(data[:len(magic)], magic) {
		return nil, fmt.Errorf("%w: % x", errs.ErrBadMagic, data[:len(magic)])
	}

	version := data[len(magic)]
	if version != Version {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
	}

	ctype := compress.Type(data[len(magic)+1])
	cdc, err := compress.ForType(ctype)
	if err != nil {
		return nil, err
	}

	body := data[headerSize : len(data)-8]
	want := binary.LittleEndian.Uint64(data[len(data)-8:])

	records, err := cdc.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("capture: decompress records: %w", err)
	}

	if got := xxhash.Sum64(records); got != want {
		return nil, fmt.Errorf("%w: got %016x want %016x", errs.ErrChecksumMismatch, got, want)
	}

	return &Reader{ctype: ctype, version: version, records: records}, nil
}

// Compression returns the codec named in the header.
func (r *Reader) Compression() compress.Type { return r.ctype }

// All iterates the records in file order. A truncated record yields a
// single errs.ErrTruncatedCapture and ends the sequence. Record data
// aliases the Reader's buffer and must not be modified.
func (r *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		rest := r.records
		for len(rest) > 0 {
			rec, remaining, err := parseRecord(rest)
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
			rest = remaining
		}
	}
}

// Replay feeds every display-stream record through dec in file order and
// returns the accumulated events. Keystroke records are skipped; they
// belong to the opposite flow.
func (r *Reader) Replay(dec *codec.StreamDecoder) ([]codec.Event, error) {
	var events []codec.Event

	for rec, err := range r.All() {
		if err != nil {
			return events, err
		}
		if rec.Dir != ToTerminal {
			continue
		}
		events = append(events, dec.Decode(rec.Data)...)
	}

	return events, nil
}

func parseRecord(data []byte) (Record, []byte, error) {
	deltaUs, n := binary.Uvarint(data)
	if n <= 0 {
		return Record{}, nil, fmt.Errorf("%w: record delta", errs.ErrTruncatedCapture)
	}
	data = data[n:]

	if len(data) < 1 {
		return Record{}, nil, fmt.Errorf("%w: record direction", errs.ErrTruncatedCapture)
	}
	dir := Direction(data[0])
	data = data[1:]

	length, n := binary.Uvarint(data)
	if n <= 0 {
		return Record{}, nil, fmt.Errorf("%w: record length", errs.ErrTruncatedCapture)
	}
	data = data[n:]

	if uint64(len(data)) < length {
		return Record{}, nil, fmt.Errorf("%w: %d byte payload, %d remaining",
			errs.ErrTruncatedCapture, length, len(data))
	}

	rec := Record{
		Delta: time.Duration(deltaUs) * time.Microsecond,
		Dir:   dir,
		Data:  data[:length],
	}

	return rec, data[length:], nil
}
