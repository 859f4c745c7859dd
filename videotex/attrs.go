package videotex

// Color identifies one of the eight Videotex colors for either the
// foreground or background channel. The zero value ColorUnset means
// "inherit whatever the terminal currently has" and encodes to nothing.
type Color uint8

const (
	ColorUnset Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// FgCode returns the C1 function byte selecting c as foreground color.
// Only valid for a set color.
func (c Color) FgCode() byte {
	return fgBase + byte(c) - 1
}

// BgCode returns the C1 function byte selecting c as background color.
// Only valid for a set color.
func (c Color) BgCode() byte {
	return bgBase + byte(c) - 1
}

func (c Color) String() string {
	switch c {
	case ColorUnset:
		return "Unset"
	case ColorBlack:
		return "Black"
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorYellow:
		return "Yellow"
	case ColorBlue:
		return "Blue"
	case ColorMagenta:
		return "Magenta"
	case ColorCyan:
		return "Cyan"
	case ColorWhite:
		return "White"
	default:
		return "Unknown"
	}
}

// Size identifies the character size channel. The zero value SizeUnset
// inherits the current size.
//
// Size applies to G0 text only; the terminal ignores size selections while
// the mosaic charset is active.
type Size uint8

const (
	SizeUnset Size = iota
	SizeNormal
	SizeDoubleHeight
	SizeDoubleWidth
	SizeDouble
)

// Code returns the C1 function byte selecting s. Only valid for a set size.
func (s Size) Code() byte {
	return sizeBase + byte(s) - 1
}

func (s Size) String() string {
	switch s {
	case SizeUnset:
		return "Unset"
	case SizeNormal:
		return "Normal"
	case SizeDoubleHeight:
		return "DoubleHeight"
	case SizeDoubleWidth:
		return "DoubleWidth"
	case SizeDouble:
		return "DoubleSize"
	default:
		return "Unknown"
	}
}

// Flag is a tri-state boolean attribute channel (blink, invert, separated
// mosaic). The zero value FlagUnset inherits the current setting.
type Flag uint8

const (
	FlagUnset Flag = iota
	FlagOff
	FlagOn
)

// BlinkCode returns the C1 function byte setting the blink channel to f.
// Only valid for a set flag.
func BlinkCode(f Flag) byte {
	if f == FlagOn {
		return blinkOn
	}

	return blinkOff
}

// InvertCode returns the C1 function byte setting the invert channel to f.
// Only valid for a set flag.
func InvertCode(f Flag) byte {
	if f == FlagOn {
		return invertOn
	}

	return invertOff
}

// SeparatedCode returns the C1 function byte setting the separated-mosaic
// channel to f. Only valid for a set flag.
func SeparatedCode(f Flag) byte {
	if f == FlagOn {
		return separatedOn
	}

	return separatedOff
}

func (f Flag) String() string {
	switch f {
	case FlagUnset:
		return "Unset"
	case FlagOff:
		return "Off"
	case FlagOn:
		return "On"
	default:
		return "Unknown"
	}
}

// Charset identifies the active character set. The zero value CharsetUnset
// inherits the current selection.
type Charset uint8

const (
	CharsetUnset Charset = iota
	// CharsetG0 is the alphanumeric set, selected by Si.
	CharsetG0
	// CharsetG1 is the mosaic (semi-graphic) set, selected by So.
	CharsetG1
)

// Code returns the unprefixed C0 shift code selecting cs.
// Only valid for a set charset.
func (cs Charset) Code() byte {
	if cs == CharsetG1 {
		return So
	}

	return Si
}

func (cs Charset) String() string {
	switch cs {
	case CharsetUnset:
		return "Unset"
	case CharsetG0:
		return "G0"
	case CharsetG1:
		return "G1"
	default:
		return "Unknown"
	}
}

// AttrState carries the seven independent attribute channels tracked per
// screen position. Each channel is either unset (no-op, inherit) or an
// explicit target value.
//
// The type is comparable; two states are equal iff every channel matches.
type AttrState struct {
	Foreground Color
	Background Color
	Size       Size
	Blink      Flag
	Invert     Flag
	Separated  Flag
	Charset    Charset
}

// RowDefaults returns the attribute state the terminal assumes right after
// a cursor-positioning sequence: black background, white foreground,
// separated mosaics on, invert off, blink off, normal size, G0 charset.
func RowDefaults() AttrState {
	return AttrState{
		Foreground: ColorWhite,
		Background: ColorBlack,
		Size:       SizeNormal,
		Blink:      FlagOff,
		Invert:     FlagOff,
		Separated:  FlagOn,
		Charset:    CharsetG0,
	}
}

// IsZero reports whether every channel is unset.
func (a AttrState) IsZero() bool {
	return a == AttrState{}
}

// Merge returns a with every set channel of other applied on top.
func (a AttrState) Merge(other AttrState) AttrState {
	if other.Foreground != ColorUnset {
		a.Foreground = other.Foreground
	}
	if other.Background != ColorUnset {
		a.Background = other.Background
	}
	if other.Size != SizeUnset {
		a.Size = other.Size
	}
	if other.Blink != FlagUnset {
		a.Blink = other.Blink
	}
	if other.Invert != FlagUnset {
		a.Invert = other.Invert
	}
	if other.Separated != FlagUnset {
		a.Separated = other.Separated
	}
	if other.Charset != CharsetUnset {
		a.Charset = other.Charset
	}

	return a
}

// DiffFrom returns the channels of a that are set and differ from current.
// Unset channels of a never contribute: they mean "keep whatever is there".
func (a AttrState) DiffFrom(current AttrState) AttrState {
	var d AttrState

	if a.Foreground != ColorUnset && a.Foreground != current.Foreground {
		d.Foreground = a.Foreground
	}
	if a.Background != ColorUnset && a.Background != current.Background {
		d.Background = a.Background
	}
	if a.Size != SizeUnset && a.Size != current.Size {
		d.Size = a.Size
	}
	if a.Blink != FlagUnset && a.Blink != current.Blink {
		d.Blink = a.Blink
	}
	if a.Invert != FlagUnset && a.Invert != current.Invert {
		d.Invert = a.Invert
	}
	if a.Separated != FlagUnset && a.Separated != current.Separated {
		d.Separated = a.Separated
	}
	if a.Charset != CharsetUnset && a.Charset != current.Charset {
		d.Charset = a.Charset
	}

	return d
}

// Cell is one grid position: a character and the attribute state it was
// placed with. Cells are replaced wholesale on update, never mutated.
type Cell struct {
	Char  rune
	Attrs AttrState
}

// NullCell is the "no change" placeholder. The encoder never emits a byte
// for it.
var NullCell = Cell{}

// IsNull reports whether the cell is a "no change" placeholder.
func (c Cell) IsNull() bool {
	return c.Char == 0
}
