package compress

import (
	"fmt"

	"github.com/jmadec/minitel/errs"
)

// Codec compresses and decompresses whole blocks. Implementations are
// safe for concurrent use; returned slices are owned by the caller.
type Codec interface {
	// Compress returns the compressed form of data. The input is not
	// modified.
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress. It fails when data is corrupted or
	// was produced by a different codec.
	Decompress(data []byte) ([]byte, error)
}

// Type identifies a codec in a capture file header.
type Type uint8

const (
	TypeNone Type = iota
	TypeZstd
	TypeS2
	TypeLZ4
)

// String returns the codec name.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeZstd:
		return "zstd"
	case TypeS2:
		return "s2"
	case TypeLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t names a known codec.
func (t Type) Valid() bool {
	return t <= TypeLZ4
}

// ForType returns the codec identified by t, or
// errs.ErrUnknownCompression for an unrecognized header byte.
func ForType(t Type) (Codec, error) {
	switch t {
	case TypeNone:
		return Noop{}, nil
	case TypeZstd:
		return Zstd{}, nil
	case TypeS2:
		return S2{}, nil
	case TypeLZ4:
		return LZ4{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, t)
	}
}
