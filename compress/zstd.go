package compress

// Zstd compresses with Zstandard, the best-ratio codec and the right
// choice for archived captures. The pure-Go implementation is the
// default; building with the gozstd tag swaps in the cgo bindings for
// hosts where the native library is available.
type Zstd struct{}

var _ Codec = (*Zstd)(nil)
