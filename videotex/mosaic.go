package videotex

// The G1 mosaic set divides a cell into a 2x3 grid of sextants. A code
// byte carries one bit per sextant: bit 0 top-left, bit 1 top-right,
// bit 2 middle-left, bit 3 middle-right, bit 4 bottom-left, bit 6
// bottom-right. Bit 5 is always set, keeping codes inside 0x20-0x7F.

// sextantToBraille bridges the Unicode "Symbols for Legacy Computing"
// sextant block (U+1FB00-U+1FB3B) to braille, which shares the 2x3 dot
// geometry. The block skips the empty, full and vertical-bar glyphs.
var sextantToBraille = [60]rune{
	'⠁', '⠈', '⠉', '⠂', '⠃', '⠊', '⠋', '⠐', '⠑', '⠘', '⠙', '⠒', '⠓', '⠚', '⠛', '⠄',
	'⠅', '⠌', '⠍', '⠆', '⠎', '⠏', '⠔', '⠕', '⠜', '⠝', '⠖', '⠗', '⠞', '⠟', '⠠', '⠡',
	'⠨', '⠩', '⠢', '⠣', '⠪', '⠫', '⠰', '⠱', '⠹', '⠲', '⠳', '⠺', '⠻', '⠤', '⠥', '⠬',
	'⠭', '⠦', '⠧', '⠮', '⠯', '⠴', '⠵', '⠼', '⠽', '⠶', '⠷', '⠾',
}

// quadrantCodes approximates the Unicode quadrant and block element glyphs
// with the nearest sextant pattern.
var quadrantCodes = map[rune]byte{
	'▘': 0x21,
	'▝': 0x22,
	'▖': 0x30,
	'▗': 0x60,
	'▀': 0x23,
	'▄': 0x70,
	'▌': 0x35,
	'▐': 0x6A,
	'▙': 0x75,
	'▛': 0x37,
	'▜': 0x6B,
	'▟': 0x7A,
	'▚': 0x64,
	'▞': 0x26,
	'█': 0x7F,
	'▉': 0x7F,
	'▊': 0x7F,
	'▋': 0x35,
	'▍': 0x35,
	'▎': 0x20,
	'▏': 0x20,
	'▇': 0x7F,
	'▆': 0x7C,
	'▅': 0x7C,
	'▃': 0x70,
	'▂': 0x70,
	'▁': 0x20,
}

// MosaicFromSextants builds a G1 code from the six sextant bits, ordered
// [row][column] with row 0 on top.
func MosaicFromSextants(bits [3][2]bool) byte {
	var code byte = 1 << 5
	if bits[0][0] {
		code |= 1 << 0
	}
	if bits[0][1] {
		code |= 1 << 1
	}
	if bits[1][0] {
		code |= 1 << 2
	}
	if bits[1][1] {
		code |= 1 << 3
	}
	if bits[2][0] {
		code |= 1 << 4
	}
	if bits[2][1] {
		code |= 1 << 6
	}

	return code
}

// MosaicSextants decomposes a G1 code into its six sextant bits.
func MosaicSextants(code byte) [3][2]bool {
	var bits [3][2]bool
	bits[0][0] = code&(1<<0) != 0
	bits[0][1] = code&(1<<1) != 0
	bits[1][0] = code&(1<<2) != 0
	bits[1][1] = code&(1<<3) != 0
	bits[2][0] = code&(1<<4) != 0
	bits[2][1] = code&(1<<6) != 0

	return bits
}

// ApproximateMosaic maps a Unicode glyph to the closest G1 mosaic code.
// Sextant, braille, quadrant and block-element characters are recognized;
// anything else is unrepresentable in G1.
func ApproximateMosaic(r rune) (byte, bool) {
	if r == ' ' {
		return 0x20, true
	}

	// Sextants route through braille, which shares the dot layout.
	if r >= 0x1FB00 && r <= 0x1FB3B {
		r = sextantToBraille[r-0x1FB00]
	}

	if r >= 0x2800 && r < 0x2900 {
		val := uint32(r) - 0x2800
		var bits [3][2]bool
		bits[0][0] = val&0b00000001 != 0
		bits[1][0] = val&0b00000010 != 0
		bits[2][0] = val&0b00000100 != 0
		bits[0][1] = val&0b00001000 != 0
		bits[1][1] = val&0b00010000 != 0
		bits[2][1] = val&0b00100000 != 0

		return MosaicFromSextants(bits), true
	}

	code, ok := quadrantCodes[r]

	return code, ok
}

// MosaicRune returns the Unicode rendition of a G1 code, used by the
// decoder to report mosaic placements. Codes come back as braille
// characters (the 2x3 geometry carrier), except the blank cell.
func MosaicRune(code byte) rune {
	if code == 0x20 {
		return ' '
	}

	bits := MosaicSextants(code)

	var val rune
	if bits[0][0] {
		val |= 0b00000001
	}
	if bits[1][0] {
		val |= 0b00000010
	}
	if bits[2][0] {
		val |= 0b00000100
	}
	if bits[0][1] {
		val |= 0b00001000
	}
	if bits[1][1] {
		val |= 0b00010000
	}
	if bits[2][1] {
		val |= 0b00100000
	}

	return 0x2800 + val
}
