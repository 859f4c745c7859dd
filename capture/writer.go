package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/jmadec/minitel/compress"
	"github.com/jmadec/minitel/errs"
	"github.com/jmadec/minitel/internal/options"
	"github.com/jmadec/minitel/internal/pool"
)

// ErrWriterClosed is returned by Record and Close after Close succeeded.
var ErrWriterClosed = errors.New("capture: writer closed")

// Writer accumulates session records and writes the capture file on
// Close. Records are buffered uncompressed; the whole stream is
// compressed once, which gives the codec a full window over the
// session's repetition.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w      io.Writer
	buf    *pool.ByteBuffer
	codec  compress.Codec
	ctype  compress.Type
	now    func() time.Time
	last   time.Time
	closed bool
}

// WriterOption customizes a Writer created by NewWriter.
type WriterOption = options.Option[*writerConfig]

type writerConfig struct {
	ctype compress.Type
	now   func() time.Time
}

// WithCompression selects the codec recorded in the header and applied
// to the record stream.
func WithCompression(t compress.Type) WriterOption {
	return options.New(func(c *writerConfig) error {
		if !t.Valid() {
			return fmt.Errorf("%w: %s", errs.ErrUnknownCompression, t)
		}
		c.ctype = t
		return nil
	})
}

// WithClock substitutes the time source, for deterministic captures in
// tests and for re-stamping replays.
func WithClock(now func() time.Time) WriterOption {
	return options.NoError(func(c *writerConfig) { c.now = now })
}

// NewWriter creates a Writer targeting w. Nothing reaches w until Close.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	cfg := writerConfig{
		ctype: DefaultCompression,
		now:   time.Now,
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.ForType(cfg.ctype)
	if err != nil {
		return nil, err
	}

	return &Writer{
		w:     w,
		buf:   pool.GetStreamBuffer(),
		codec: codec,
		ctype: cfg.ctype,
		now:   cfg.now,
	}, nil
}

// Record appends one burst of bytes, stamped with the time elapsed since
// the previous record. The first record carries a zero delta. Empty
// bursts are dropped.
func (w *Writer) Record(dir Direction, data []byte) error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(data) == 0 {
		return nil
	}

	now := w.now()

	var delta time.Duration
	if !w.last.IsZero() {
		delta = now.Sub(w.last)
		if delta < 0 {
			// A clock step backwards must not produce an unreadable
			// varint; the record keeps its place in the sequence.
			delta = 0
		}
	}
	w.last = now

	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], uint64(delta.Microseconds()))
	w.buf.MustWrite(scratch[:n])
	w.buf.MustWriteByte(byte(dir))

	n = binary.PutUvarint(scratch[:], uint64(len(data)))
	w.buf.MustWrite(scratch[:n])
	w.buf.MustWrite(data)

	return nil
}

// Close compresses the record stream and writes the complete capture
// file: header, compressed records, checksum trailer. The Writer cannot
// be used afterwards.
func (w *Writer) Close() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true

	// The Noop codec returns the buffer's own bytes, so the buffer goes
	// back to the pool only after everything is written out.
	defer func() {
		pool.PutStreamBuffer(w.buf)
		w.buf = nil
	}()

	raw := w.buf.Bytes()
	sum := xxhash.Sum64(raw)

	compressed, err := w.codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("capture: compress records: %w", err)
	}

	header := make([]byte, 0, headerSize)
	header = append(header, magic...)
	header = append(header, Version, byte(w.ctype))
	if _, err := w.w.Write(header); err != nil {
		return fmt.Errorf("capture: write header: %w", err)
	}

	if len(compressed) > 0 {
		if _, err := w.w.Write(compressed); err != nil {
			return fmt.Errorf("capture: write records: %w", err)
		}
	}

	var trailer [8]byte
	binary.LittleEndian.PutUint64(trailer[:], sum)
	if _, err := w.w.Write(trailer[:]); err != nil {
		return fmt.Errorf("capture: write trailer: %w", err)
	}

	return nil
}
