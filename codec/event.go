package codec

import (
	"fmt"

	"github.com/jmadec/minitel/videotex"
)

// EventKind tags the decoded event variants.
type EventKind uint8

const (
	// EventPlaceChar places Char at the cursor with the Attrs snapshot.
	EventPlaceChar EventKind = iota + 1
	// EventSetAttr records an attribute change; Attrs is the full mirror
	// after the change.
	EventSetAttr
	// EventMoveCursor moves the cursor by one step in direction Move.
	EventMoveCursor
	// EventLocate positions the cursor at (Row, Col). Row -1 addresses the
	// reserved status row.
	EventLocate
	// EventClearScreen clears the display and homes the cursor.
	EventClearScreen
	// EventHome homes the cursor without clearing.
	EventHome
	// EventCursor toggles cursor visibility; Visible carries the new state.
	EventCursor
	// EventBeep rings the terminal beeper.
	EventBeep
	// EventKey reports a function key press; Key carries which one.
	EventKey
	// EventProtocol reports a terminal protocol (PRO) answer, such as
	// the acknowledgement of a mode switch or a speed answer. Cmd, Args
	// and ArgCount carry the sequence.
	EventProtocol
	// EventMalformed reports an invalid byte; Byte and Pos identify it.
	// The decoder resynchronizes and keeps going.
	EventMalformed
)

func (k EventKind) String() string {
	switch k {
	case EventPlaceChar:
		return "PlaceChar"
	case EventSetAttr:
		return "SetAttr"
	case EventMoveCursor:
		return "MoveCursor"
	case EventLocate:
		return "Locate"
	case EventClearScreen:
		return "ClearScreen"
	case EventHome:
		return "Home"
	case EventCursor:
		return "Cursor"
	case EventBeep:
		return "Beep"
	case EventKey:
		return "Key"
	case EventProtocol:
		return "Protocol"
	case EventMalformed:
		return "Malformed"
	default:
		return "Unknown"
	}
}

// CursorMove is a single-step cursor movement direction.
type CursorMove uint8

const (
	MoveLeft CursorMove = iota + 1
	MoveRight
	MoveDown
	MoveUp
	MoveLineStart
)

func (m CursorMove) String() string {
	switch m {
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	case MoveDown:
		return "Down"
	case MoveUp:
		return "Up"
	case MoveLineStart:
		return "LineStart"
	default:
		return "Unknown"
	}
}

// Event is one decoded protocol event. Which fields are meaningful depends
// on Kind; the display and keyboard event categories share the byte grammar
// but are disjoint, so callers dispatch on Kind alone.
type Event struct {
	Kind EventKind

	// Char and Attrs accompany EventPlaceChar; Attrs alone EventSetAttr.
	Char  rune
	Attrs videotex.AttrState

	// Row and Col accompany EventLocate.
	Row int
	Col int

	// Move accompanies EventMoveCursor.
	Move CursorMove

	// Visible accompanies EventCursor.
	Visible bool

	// Key accompanies EventKey.
	Key videotex.Key

	// Cmd, Args and ArgCount accompany EventProtocol: the answer's
	// command byte and its arguments (the first ArgCount entries of
	// Args are meaningful).
	Cmd      byte
	Args     [2]byte
	ArgCount int

	// Byte and Pos accompany EventMalformed. Pos is the absolute offset in
	// the stream since the decoder was created or reset.
	Byte byte
	Pos  int
}

// Speed decodes a protocol speed answer into the terminal's baudrate.
// It reports false for any other event.
func (e Event) Speed() (videotex.Baudrate, bool) {
	if e.Kind != EventProtocol || e.Cmd != videotex.Pro2RespSpeed || e.ArgCount < 1 {
		return 0, false
	}

	return videotex.BaudrateFromCode(e.Args[0])
}

func (e Event) String() string {
	switch e.Kind {
	case EventPlaceChar:
		return fmt.Sprintf("PlaceChar(%q)", e.Char)
	case EventLocate:
		return fmt.Sprintf("Locate(%d,%d)", e.Row, e.Col)
	case EventKey:
		return fmt.Sprintf("Key(%s)", e.Key)
	case EventProtocol:
		return fmt.Sprintf("Protocol(0x%02X)", e.Cmd)
	case EventMalformed:
		return fmt.Sprintf("Malformed(0x%02X@%d)", e.Byte, e.Pos)
	default:
		return e.Kind.String()
	}
}
