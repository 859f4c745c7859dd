package codec

import (
	"iter"

	"github.com/jmadec/minitel/videotex"
)

// decoderState enumerates the positions of the byte-at-a-time automaton.
type decoderState uint8

const (
	// stateNormal interprets controls and printable characters directly.
	stateNormal decoderState = iota
	// stateEscape follows Esc; the next byte selects an attribute function.
	stateEscape
	// stateRepeat follows Rep; the next byte carries 0x40+count.
	stateRepeat
	// stateLocateRow and stateLocateCol follow Us; two bytes carry the
	// 0x40-biased row and column.
	stateLocateRow
	stateLocateCol
	// stateSS2 follows Ss2; the next byte is a G2 code. A diacritic G2 code
	// additionally expects a base letter (stateSS2Base).
	stateSS2
	stateSS2Base
	// stateKey follows Sep; the next byte names a function key.
	stateKey
	// statePro collects the command and argument bytes of a protocol
	// sequence (Esc 0x39/0x3A/0x3B, the terminal's PRO answers).
	statePro
)

// StreamDecoder parses the Videotex byte grammar back into structured
// events. It is resumable: Decode may be called with arbitrary slices of a
// stream and carries its state (automaton position, attribute mirror,
// absolute offset) across calls.
//
// Malformed input never aborts decoding. An invalid byte produces an
// EventMalformed and the automaton resynchronizes at the next byte, keeping
// the terminal usable through line noise.
//
// Note: StreamDecoder is NOT safe for concurrent use. Each instance belongs
// to a single inbound flow.
type StreamDecoder struct {
	st    decoderState
	attrs videotex.AttrState

	pos int // absolute offset of the next byte

	lastChar rune // last placed character, target of the repeat code
	hasLast  bool

	diacritic byte // pending G2 dead key while in stateSS2Base
	locRow    byte // buffered row byte while in stateLocateCol

	// Protocol sequence accumulation while in statePro. A sequence may
	// split across Decode calls like any other.
	proWant int
	proLen  int
	proCmd  byte
	proArgs [2]byte

	events []Event // reused across Decode calls
}

// NewStreamDecoder creates a decoder whose attribute mirror starts at the
// protocol's row defaults.
func NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{
		attrs: videotex.RowDefaults(),
	}
}

// Attrs returns the decoder's mirror of the terminal's attribute state.
func (d *StreamDecoder) Attrs() videotex.AttrState {
	return d.attrs
}

// Reset restores the decoder to its initial state and offset zero.
func (d *StreamDecoder) Reset() {
	d.st = stateNormal
	d.attrs = videotex.RowDefaults()
	d.pos = 0
	d.hasLast = false
}

// Decode consumes data and returns the events it completes. Sequences split
// across calls are carried over and finish on a later call.
//
// The returned slice is reused and valid until the next call to Decode.
func (d *StreamDecoder) Decode(data []byte) []Event {
	d.events = d.events[:0]
	for _, b := range data {
		d.step(b)
	}

	return d.events
}

// All returns an iterator over the events completed by data, without
// retaining an event slice. State carries over exactly as with Decode.
func (d *StreamDecoder) All(data []byte) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, b := range data {
			d.events = d.events[:0]
			d.step(b)
			for _, ev := range d.events {
				if !yield(ev) {
					return
				}
			}
		}
	}
}

// step feeds one byte through the automaton, appending completed events.
func (d *StreamDecoder) step(b byte) {
	pos := d.pos
	d.pos++

	// The protocol is strictly 7-bit; anything above is line noise.
	if b >= 0x80 {
		d.malformed(b, pos)
		return
	}

	switch d.st {
	case stateNormal:
		d.stepNormal(b, pos)
	case stateEscape:
		d.st = stateNormal
		d.stepEscape(b)
	case stateRepeat:
		d.st = stateNormal
		d.stepRepeat(b, pos)
	case stateLocateRow:
		if b < 0x40 {
			d.malformed(b, pos)
			return
		}
		d.locRow = b
		d.st = stateLocateCol
	case stateLocateCol:
		d.st = stateNormal
		if b < 0x41 {
			d.malformed(b, pos)
			return
		}
		// Positioning resets the terminal's attributes.
		d.attrs = videotex.RowDefaults()
		d.emit(Event{
			Kind: EventLocate,
			Row:  int(d.locRow-0x40) - 1, // -1 is the status row
			Col:  int(b - 0x41),
		})
	case stateSS2:
		d.st = stateNormal
		if videotex.IsDiacritic(b) {
			d.diacritic = b
			d.st = stateSS2Base
			return
		}
		if r, ok := videotex.DecodeG2(b); ok {
			d.place(r)
		}
		// Unknown G2 codes are dropped, as the terminal does.
	case stateSS2Base:
		d.st = stateNormal
		d.place(videotex.ComposeDiacritic(d.diacritic, b))
	case stateKey:
		d.st = stateNormal
		if !videotex.IsValidKey(b) {
			d.malformed(b, pos)
			return
		}
		d.emit(Event{Kind: EventKey, Key: videotex.Key(b)})
	case statePro:
		if d.proLen == 0 {
			d.proCmd = b
		} else {
			d.proArgs[d.proLen-1] = b
		}
		d.proLen++
		if d.proLen == d.proWant {
			d.st = stateNormal
			d.emit(Event{
				Kind:     EventProtocol,
				Cmd:      d.proCmd,
				Args:     d.proArgs,
				ArgCount: d.proWant - 1,
			})
		}
	}
}

func (d *StreamDecoder) stepNormal(b byte, pos int) {
	if b >= 0x20 {
		r := rune(b)
		if d.attrs.Charset == videotex.CharsetG1 {
			r = videotex.MosaicRune(b)
		}
		d.place(r)

		return
	}

	switch b {
	case videotex.So:
		d.selectCharset(videotex.CharsetG1)
	case videotex.Si:
		d.selectCharset(videotex.CharsetG0)
	case videotex.Esc:
		d.st = stateEscape
	case videotex.Rep:
		d.st = stateRepeat
	case videotex.Us:
		d.st = stateLocateRow
	case videotex.Ss2:
		d.st = stateSS2
	case videotex.Sep:
		d.st = stateKey
	case videotex.Ff:
		d.attrs = videotex.RowDefaults()
		d.emit(Event{Kind: EventClearScreen})
	case videotex.Rs:
		d.attrs = videotex.RowDefaults()
		d.emit(Event{Kind: EventHome})
	case videotex.Bs:
		d.emit(Event{Kind: EventMoveCursor, Move: MoveLeft})
	case videotex.Ht:
		d.emit(Event{Kind: EventMoveCursor, Move: MoveRight})
	case videotex.Lf:
		d.emit(Event{Kind: EventMoveCursor, Move: MoveDown})
	case videotex.Vt:
		d.emit(Event{Kind: EventMoveCursor, Move: MoveUp})
	case videotex.Cr:
		d.emit(Event{Kind: EventMoveCursor, Move: MoveLineStart})
	case videotex.Con:
		d.emit(Event{Kind: EventCursor, Visible: true})
	case videotex.Coff:
		d.emit(Event{Kind: EventCursor, Visible: false})
	case videotex.Bel:
		d.emit(Event{Kind: EventBeep})
	default:
		// Remaining C0 codes are tolerated and dropped, Nul included.
	}
}

// stepEscape applies a C1 attribute function byte to the mirror. The code
// ranges match the encoder's emission exactly.
func (d *StreamDecoder) stepEscape(b byte) {
	switch {
	case b >= 0x40 && b <= 0x47:
		d.attrs.Foreground = videotex.Color(b-0x40) + videotex.ColorBlack
	case b >= 0x50 && b <= 0x57:
		d.attrs.Background = videotex.Color(b-0x50) + videotex.ColorBlack
	case b >= 0x4C && b <= 0x4F:
		d.attrs.Size = videotex.Size(b-0x4C) + videotex.SizeNormal
	case b == videotex.BlinkCode(videotex.FlagOn):
		d.attrs.Blink = videotex.FlagOn
	case b == videotex.BlinkCode(videotex.FlagOff):
		d.attrs.Blink = videotex.FlagOff
	case b == videotex.SeparatedCode(videotex.FlagOn):
		d.attrs.Separated = videotex.FlagOn
	case b == videotex.SeparatedCode(videotex.FlagOff):
		d.attrs.Separated = videotex.FlagOff
	case b == videotex.InvertCode(videotex.FlagOn):
		d.attrs.Invert = videotex.FlagOn
	case b == videotex.InvertCode(videotex.FlagOff):
		d.attrs.Invert = videotex.FlagOff
	default:
		if n, ok := videotex.ProSeqLen(b); ok {
			d.proWant = n
			d.proLen = 0
			d.proArgs = [2]byte{}
			d.st = statePro
			return
		}
		// Unassigned C1 functions (masking, CSI) are tolerated and
		// dropped.
		return
	}

	d.emit(Event{Kind: EventSetAttr, Attrs: d.attrs})
}

// stepRepeat re-emits the preceding placement count times with the current
// attribute mirror.
func (d *StreamDecoder) stepRepeat(b byte, pos int) {
	count := int(b) - 0x40
	if count < 1 || count > videotex.MaxRepeat || !d.hasLast {
		d.malformed(b, pos)
		return
	}

	for range count {
		d.emit(Event{Kind: EventPlaceChar, Char: d.lastChar, Attrs: d.attrs})
	}
}

// selectCharset mirrors a shift code. Selecting a charset also resets size
// and separated mosaics to their defaults, but only when the charset
// actually changes.
func (d *StreamDecoder) selectCharset(cs videotex.Charset) {
	if d.attrs.Charset != cs {
		d.attrs.Charset = cs
		d.attrs.Size = videotex.SizeNormal
		d.attrs.Separated = videotex.FlagOn
	}

	d.emit(Event{Kind: EventSetAttr, Attrs: d.attrs})
}

func (d *StreamDecoder) place(r rune) {
	d.lastChar = r
	d.hasLast = true
	d.emit(Event{Kind: EventPlaceChar, Char: r, Attrs: d.attrs})
}

func (d *StreamDecoder) malformed(b byte, pos int) {
	d.st = stateNormal
	d.emit(Event{Kind: EventMalformed, Byte: b, Pos: pos})
}

func (d *StreamDecoder) emit(ev Event) {
	d.events = append(d.events, ev)
}
