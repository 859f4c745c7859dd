package compress

import "github.com/klauspost/compress/s2"

// S2 compresses with the S2 extension of Snappy. The fastest of the
// real codecs, a good default when captures are written on a live
// session path.
type S2 struct{}

var _ Codec = (*S2)(nil)

func (S2) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (S2) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
