package videotex

import "fmt"

// Protocol ("PRO") sequences configure the terminal itself rather than the
// display: speed programming, module routing, operating modes. They travel
// as ESC followed by a length marker and the arguments.
const (
	pro1 byte = 0x39
	pro2 byte = 0x3A
	pro3 byte = 0x3B
)

// Pro1 one-argument commands.
const (
	Pro1EnqSpeed byte = 0x74
	Pro1EnqRom   byte = 0x7B
)

// Pro2 two-argument commands and responses.
const (
	Pro2RoutingTo byte = 0x62
	Pro2Start     byte = 0x69
	Pro2Stop      byte = 0x6A
	Pro2Prog      byte = 0x6B

	Pro2RespStatus byte = 0x73
	Pro2RespSpeed  byte = 0x75
)

// Pro3 three-argument commands.
const (
	Pro3RoutingOff byte = 0x60
	Pro3RoutingOn  byte = 0x61
)

// ProSeqLen returns how many bytes follow a protocol sequence introducer
// (the byte after Esc): the command byte plus its arguments. It reports
// false for bytes that do not introduce a protocol sequence.
func ProSeqLen(b byte) (int, bool) {
	switch b {
	case pro1:
		return 1, true
	case pro2:
		return 2, true
	case pro3:
		return 3, true
	default:
		return 0, false
	}
}

// Pro1 builds a one-argument protocol sequence.
func Pro1(cmd byte) [3]byte {
	return [3]byte{Esc, pro1, cmd}
}

// Pro2 builds a two-argument protocol sequence.
func Pro2(cmd, arg byte) [4]byte {
	return [4]byte{Esc, pro2, cmd, arg}
}

// Pro3 builds a three-argument protocol sequence.
func Pro3(cmd, arg1, arg2 byte) [5]byte {
	return [5]byte{Esc, pro3, cmd, arg1, arg2}
}

// FunctionMode selects a switchable terminal mode for Pro2Start/Pro2Stop.
type FunctionMode byte

const (
	// ModeRoll enables scrolling instead of wrapping back to the top row.
	ModeRoll FunctionMode = 0x43
	// ModeErrorCorrection enables the PCE error correcting procedure.
	ModeErrorCorrection FunctionMode = 0x44
	// ModeLowercase unlocks lowercase keyboard entry.
	ModeLowercase FunctionMode = 0x45
)

// SetMode builds the PRO2 sequence enabling or disabling a terminal mode.
func SetMode(mode FunctionMode, enable bool) [4]byte {
	cmd := Pro2Stop
	if enable {
		cmd = Pro2Start
	}

	return Pro2(cmd, byte(mode))
}

// Baudrate is one of the serial speeds a Minitel supports.
type Baudrate uint8

const (
	Baud300 Baudrate = iota
	Baud1200
	Baud4800
	Baud9600
)

// Hertz returns the speed in bits per second.
func (b Baudrate) Hertz() int {
	switch b {
	case Baud300:
		return 300
	case Baud1200:
		return 1200
	case Baud4800:
		return 4800
	case Baud9600:
		return 9600
	default:
		return 0
	}
}

// Code returns the PRO2 Prog argument selecting b. The byte packs parity
// and the symmetric emission/reception rate fields.
func (b Baudrate) Code() byte {
	switch b {
	case Baud300:
		return 0b01_010_010
	case Baud1200:
		return 0b01_100_100
	case Baud4800:
		return 0b01_110_110
	case Baud9600:
		return 0b01_111_111
	default:
		return 0
	}
}

// BaudrateFromCode parses a PRO2 speed-answer byte.
func BaudrateFromCode(code byte) (Baudrate, bool) {
	switch code {
	case 0b01_010_010:
		return Baud300, true
	case 0b01_100_100:
		return Baud1200, true
	case 0b01_110_110:
		return Baud4800, true
	case 0b01_111_111:
		return Baud9600, true
	default:
		return 0, false
	}
}

func (b Baudrate) String() string {
	return fmt.Sprintf("%d bauds", b.Hertz())
}

// Key identifies a Minitel function key, received as Sep followed by the
// key code.
type Key byte

const (
	KeyEnvoi      Key = 0x41
	KeyRetour     Key = 0x42
	KeyRepetition Key = 0x43
	KeyGuide      Key = 0x44
	KeyAnnulation Key = 0x45
	KeySommaire   Key = 0x46
	KeyCorrection Key = 0x47
	KeySuite      Key = 0x48
	KeyConnexion  Key = 0x49
)

// IsValidKey reports whether a byte following Sep names a function key.
func IsValidKey(code byte) bool {
	return code >= byte(KeyEnvoi) && code <= byte(KeyConnexion)
}

func (k Key) String() string {
	switch k {
	case KeyEnvoi:
		return "Envoi"
	case KeyRetour:
		return "Retour"
	case KeyRepetition:
		return "Répétition"
	case KeyGuide:
		return "Guide"
	case KeyAnnulation:
		return "Annulation"
	case KeySommaire:
		return "Sommaire"
	case KeyCorrection:
		return "Correction"
	case KeySuite:
		return "Suite"
	case KeyConnexion:
		return "Connexion/Fin"
	default:
		return "Unknown"
	}
}
