package codec

import (
	"github.com/jmadec/minitel/internal/pool"
	"github.com/jmadec/minitel/videotex"
)

// RowEncoder turns a row of cells into the minimal byte sequence that
// reproduces it on the terminal.
//
// The encoder mirrors the attribute state the terminal will hold after
// consuming its output. After any EncodeRow call, that mirror exactly equals
// what a StreamDecoder (and the real terminal) computes from the emitted
// bytes; this equivalence is the encoder's correctness contract.
//
// Note: RowEncoder is NOT safe for concurrent use. Each instance belongs to
// a single outbound flow.
type RowEncoder struct {
	buf *pool.ByteBuffer

	// current mirrors the far end's resolved attribute state. It is always
	// fully resolved (no unset channels), seeded from the row defaults.
	current videotex.AttrState

	// Run-length state: the last displayed character with its resolved
	// attributes, and how many repeats are accumulated but not yet flushed.
	runChar   rune
	runAttrs  videotex.AttrState
	runActive bool
	runCount  int
}

// NewRowEncoder creates an encoder whose attribute mirror starts at the
// protocol's row defaults, matching a terminal that was just positioned.
func NewRowEncoder() *RowEncoder {
	return &RowEncoder{
		buf:     pool.GetStreamBuffer(),
		current: videotex.RowDefaults(),
	}
}

// Current returns the encoder's mirror of the terminal's attribute state.
func (e *RowEncoder) Current() videotex.AttrState {
	return e.current
}

// Reset restores the encoder to its initial state: row-default attributes,
// no pending run, empty output buffer.
func (e *RowEncoder) Reset() {
	e.buf.Reset()
	e.current = videotex.RowDefaults()
	e.runActive = false
	e.runCount = 0
}

// Finish releases the encoder's internal buffer back to the pool. The
// encoder must not be used afterwards.
func (e *RowEncoder) Finish() {
	pool.PutStreamBuffer(e.buf)
	e.buf = nil
}

// EncodeRow encodes one contiguous run of cells and returns the bytes
// reproducing it. moveFirst indicates that a cursor-positioning command
// immediately precedes these bytes on the wire, which resets the terminal's
// attributes to the row defaults; with moveFirst false the encoder carries
// its mirror over from the previous call (a continuation of the same span).
//
// Rules applied, in the wire's own terms:
//   - NUL cells are "no change" placeholders: no byte is ever emitted.
//   - Unrepresentable characters are dropped silently, matching the
//     terminal's tolerance. This is not an error.
//   - Attribute changes are diffed against the mirror and flushed in the
//     protocol-mandated order (charset unprefixed, then size, invert,
//     background, foreground, separated, blink) just before a placement.
//   - Consecutive identical (character, resolved attributes) cells collapse
//     into repeat sequences of at most 63 each.
//
// The returned slice is valid until the next call to EncodeRow, Reset or
// Finish.
func (e *RowEncoder) EncodeRow(cells []videotex.Cell, moveFirst bool) []byte {
	e.buf.Reset()

	if moveFirst {
		// Positioning reset the far end; any previous run is dead too,
		// because the repeat code acts on the last displayed character and
		// the cursor just moved away from it.
		e.current = videotex.RowDefaults()
		e.runActive = false
		e.runCount = 0
	}

	for _, cell := range cells {
		if cell.IsNull() {
			e.flushRun()
			continue
		}

		resolved := e.project(cell.Attrs)
		if !videotex.Representable(cell.Char, resolved.Charset) {
			continue
		}

		// A space looks the same in any foreground color while the mosaic
		// set or video invert is active, so the foreground change is not
		// worth a byte. Normalizing here also lets such spaces join runs.
		if cell.Char == ' ' && (resolved.Charset == videotex.CharsetG1 || resolved.Invert == videotex.FlagOn) {
			resolved.Foreground = e.current.Foreground
		}

		if e.runActive && cell.Char == e.runChar && resolved == e.runAttrs {
			e.runCount++
			continue
		}

		e.flushRun()
		e.flushAttrs(resolved)
		e.place(cell.Char, resolved)
	}

	e.flushRun()

	return e.buf.Bytes()
}

// project computes the resolved state the terminal will hold once the
// requested channels are applied on top of the mirror. A charset change
// resets size and separated mosaics on the terminal before the remaining
// channels apply, so unset channels inherit the post-reset values, not the
// pre-shift ones.
func (e *RowEncoder) project(req videotex.AttrState) videotex.AttrState {
	p := e.current
	if req.Charset != videotex.CharsetUnset && req.Charset != p.Charset {
		p.Charset = req.Charset
		p.Size = videotex.SizeNormal
		p.Separated = videotex.FlagOn
	}

	req.Charset = videotex.CharsetUnset

	return p.Merge(req)
}

// flushAttrs emits the attribute functions taking the mirror to target.
// Charset goes first and unprefixed; selecting a charset also resets size
// and separated mosaics on the terminal, so the mirror follows suit before
// the remaining channels are diffed.
func (e *RowEncoder) flushAttrs(target videotex.AttrState) {
	if target.Charset != e.current.Charset {
		e.buf.MustWriteByte(target.Charset.Code())
		e.current.Charset = target.Charset
		e.current.Size = videotex.SizeNormal
		e.current.Separated = videotex.FlagOn
	}

	if target.Size != e.current.Size {
		e.buf.MustWrite([]byte{videotex.Esc, target.Size.Code()})
		e.current.Size = target.Size
	}

	if target.Invert != e.current.Invert {
		e.buf.MustWrite([]byte{videotex.Esc, videotex.InvertCode(target.Invert)})
		e.current.Invert = target.Invert
	}

	if target.Background != e.current.Background {
		e.buf.MustWrite([]byte{videotex.Esc, target.Background.BgCode()})
		e.current.Background = target.Background
	}

	if target.Foreground != e.current.Foreground {
		e.buf.MustWrite([]byte{videotex.Esc, target.Foreground.FgCode()})
		e.current.Foreground = target.Foreground
	}

	if target.Separated != e.current.Separated {
		e.buf.MustWrite([]byte{videotex.Esc, videotex.SeparatedCode(target.Separated)})
		e.current.Separated = target.Separated
	}

	if target.Blink != e.current.Blink {
		e.buf.MustWrite([]byte{videotex.Esc, videotex.BlinkCode(target.Blink)})
		e.current.Blink = target.Blink
	}
}

// place emits the character's byte sequence and opens a new run.
func (e *RowEncoder) place(r rune, resolved videotex.AttrState) {
	e.buf.B, _ = videotex.EncodeRune(e.buf.B, r, e.current.Charset)

	e.runChar = r
	e.runAttrs = resolved
	e.runActive = true
	e.runCount = 0
}

// flushRun emits the accumulated repeats as maximal repeat sequences.
func (e *RowEncoder) flushRun() {
	for e.runCount > 0 {
		n := e.runCount
		if n > videotex.MaxRepeat {
			n = videotex.MaxRepeat
		}

		seq := videotex.RepeatCount(n)
		e.buf.MustWrite(seq[:])
		e.runCount -= n
	}
}
