package videotex

// G2 special-character codes, sent as Ss2 followed by the code byte.
// Diacritic codes are followed by a third byte carrying the base letter.
const (
	g2Pound         byte = 0x23
	g2Dollar        byte = 0x24
	g2Hash          byte = 0x26
	g2Section       byte = 0x27
	g2LeftArrow     byte = 0x2C
	g2UpArrow       byte = 0x2D
	g2RightArrow    byte = 0x2E
	g2DownArrow     byte = 0x2F
	g2Degree        byte = 0x30
	g2PlusMinus     byte = 0x31
	g2Division      byte = 0x38
	g2OneQuarter    byte = 0x3C
	g2OneHalf       byte = 0x3D
	g2ThreeQuarters byte = 0x3E
	g2Grave         byte = 0x41
	g2Acute         byte = 0x42
	g2Circumflex    byte = 0x43
	g2Diaeresis     byte = 0x48
	g2Cedilla       byte = 0x4B
	g2OeMaj         byte = 0x6A
	g2OeMin         byte = 0x7A
	g2Beta          byte = 0x7B
)

// g2Symbols maps directly representable symbols to their G2 code.
var g2Symbols = map[rune]byte{
	'£': g2Pound,
	'§': g2Section,
	'←': g2LeftArrow,
	'↑': g2UpArrow,
	'→': g2RightArrow,
	'↓': g2DownArrow,
	'°': g2Degree,
	'±': g2PlusMinus,
	'÷': g2Division,
	'¼': g2OneQuarter,
	'½': g2OneHalf,
	'¾': g2ThreeQuarters,
	'Œ': g2OeMaj,
	'œ': g2OeMin,
	'β': g2Beta,
}

// g2SymbolRunes is the inverse of g2Symbols, for the decode direction.
var g2SymbolRunes = func() map[byte]rune {
	m := make(map[byte]rune, len(g2Symbols))
	for r, code := range g2Symbols {
		m[code] = r
	}
	// '$' and '#' sit in G2 as well; decoding them yields the plain rune.
	m[g2Dollar] = '$'
	m[g2Hash] = '#'

	return m
}()

// accented maps precomposed accented letters to their dead-key sequence:
// G2 diacritic code followed by the plain base letter.
var accented = map[rune][2]byte{
	'à': {g2Grave, 'a'},
	'è': {g2Grave, 'e'},
	'ù': {g2Grave, 'u'},
	'é': {g2Acute, 'e'},
	'â': {g2Circumflex, 'a'},
	'ê': {g2Circumflex, 'e'},
	'î': {g2Circumflex, 'i'},
	'ô': {g2Circumflex, 'o'},
	'û': {g2Circumflex, 'u'},
	'ä': {g2Diaeresis, 'a'},
	'ë': {g2Diaeresis, 'e'},
	'ï': {g2Diaeresis, 'i'},
	'ö': {g2Diaeresis, 'o'},
	'ü': {g2Diaeresis, 'u'},
	'ç': {g2Cedilla, 'c'},
}

// composed is the inverse of accented, keyed by (diacritic code, base byte).
var composed = func() map[[2]byte]rune {
	m := make(map[[2]byte]rune, len(accented))
	for r, seq := range accented {
		m[seq] = r
	}

	return m
}()

// IsDiacritic reports whether a G2 code is a dead key expecting a base
// letter to follow.
func IsDiacritic(code byte) bool {
	switch code {
	case g2Grave, g2Acute, g2Circumflex, g2Diaeresis, g2Cedilla:
		return true
	default:
		return false
	}
}

// DecodeG2 returns the rune displayed for a non-diacritic G2 code.
func DecodeG2(code byte) (rune, bool) {
	r, ok := g2SymbolRunes[code]
	return r, ok
}

// ComposeDiacritic returns the precomposed rune for a dead-key sequence.
// Unknown combinations fall back to the bare base letter, matching the
// terminal's tolerant rendering.
func ComposeDiacritic(diacritic byte, base byte) rune {
	if r, ok := composed[[2]byte{diacritic, base}]; ok {
		return r
	}

	return rune(base)
}

// EncodeRune appends the protocol byte sequence displaying r under the
// given charset to dst and returns the extended slice. The second return
// value is false when r has no representation; such runes are dropped by
// the encoder, never reported as errors, matching the terminal's own
// tolerance for unknown codes.
func EncodeRune(dst []byte, r rune, cs Charset) ([]byte, bool) {
	if cs == CharsetG1 {
		code, ok := ApproximateMosaic(r)
		if !ok {
			return dst, false
		}

		return append(dst, code), true
	}

	// Plain G0: printable ASCII maps one to one.
	if r >= 0x20 && r <= 0x7E {
		return append(dst, byte(r)), true
	}

	if seq, ok := accented[r]; ok {
		return append(dst, Ss2, seq[0], seq[1]), true
	}

	if code, ok := g2Symbols[r]; ok {
		return append(dst, Ss2, code), true
	}

	return dst, false
}

// Representable reports whether r can be displayed at all under cs.
func Representable(r rune, cs Charset) bool {
	if cs == CharsetG1 {
		_, ok := ApproximateMosaic(r)
		return ok
	}

	if r >= 0x20 && r <= 0x7E {
		return true
	}
	if _, ok := accented[r]; ok {
		return true
	}
	_, ok := g2Symbols[r]

	return ok
}
