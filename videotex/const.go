package videotex

// C0 control codes of the Videotex mode, as defined by STUM1B §2.2.1.
// Only the codes the codec emits or interprets are named; anything else in
// the 0x00-0x1F range is passed through the decoder as an ignored control.
const (
	// Nul is the filler code. It is never transmitted by the encoder and
	// marks "no change" cells in application grids.
	Nul byte = 0x00

	// Bel rings the terminal beeper.
	Bel byte = 0x07

	// Bs moves the cursor one column left.
	Bs byte = 0x08
	// Ht moves the cursor one column right.
	Ht byte = 0x09
	// Lf moves the cursor one row down.
	Lf byte = 0x0A
	// Vt moves the cursor one row up.
	Vt byte = 0x0B
	// Ff homes the cursor and clears the screen.
	Ff byte = 0x0C
	// Cr moves the cursor to the first column of the current row.
	Cr byte = 0x0D

	// So selects the G1 mosaic charset (shift-out).
	So byte = 0x0E
	// Si selects the G0 alphanumeric charset (shift-in).
	Si byte = 0x0F

	// Con makes the cursor visible.
	Con byte = 0x11
	// Rep introduces a repeat sequence; the next byte is 0x40+count.
	Rep byte = 0x12
	// Sep introduces a function-key sequence on the keyboard flow.
	Sep byte = 0x13
	// Coff hides the cursor.
	Coff byte = 0x14

	// Ss2 introduces a G2 special character (accents, symbols).
	Ss2 byte = 0x19

	// Esc introduces a C1 attribute function.
	Esc byte = 0x1B

	// Rs homes the cursor without clearing the screen.
	Rs byte = 0x1E
	// Us introduces a locate sequence: Us, 0x40+row, 0x40+col.
	Us byte = 0x1F
)

// C1 attribute function bytes, valid only after Esc.
const (
	fgBase byte = 0x40 // 0x40-0x47: foreground color
	bgBase byte = 0x50 // 0x50-0x57: background color

	blinkOn  byte = 0x48
	blinkOff byte = 0x49

	sizeBase byte = 0x4C // 0x4C-0x4F: normal, double height, double width, double size

	separatedOn  byte = 0x59
	separatedOff byte = 0x5A

	// 0x5C restores normal video ("fond normal"), 0x5D inverts
	// ("inversion de fond"), per the STUM1B attribute table.
	invertOff byte = 0x5C
	invertOn  byte = 0x5D
)

// MaxRepeat is the largest count a single repeat sequence can carry.
// Longer runs are chunked into consecutive maximal sequences.
const MaxRepeat = 63

// RepeatCount returns the two-byte repeat sequence for n additional copies
// of the last displayed character. n must be in [1, MaxRepeat].
func RepeatCount(n int) [2]byte {
	return [2]byte{Rep, 0x40 + byte(n)}
}

// Locate returns the cursor-positioning sequence for a screen cell.
// Grid coordinates are 0-indexed; the wire addresses screen rows as 1-24
// (row byte 0x40 addresses the status row, see LocateStatus).
func Locate(row, col int) [3]byte {
	return [3]byte{Us, 0x40 + byte(row) + 1, 0x40 + byte(col) + 1}
}

// LocateStatus returns the positioning sequence for a column of the
// reserved status row (wire row 0).
func LocateStatus(col int) [3]byte {
	return [3]byte{Us, 0x40, 0x40 + byte(col) + 1}
}
