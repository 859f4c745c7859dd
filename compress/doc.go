// Package compress provides the block codecs used by session capture
// files.
//
// Capture payloads are streams of 7-bit terminal bytes with heavy
// repetition (attribute prefixes, positioning sequences, repeated page
// fragments), so even the fast codecs reach good ratios. Zstd gives the
// smallest archives, S2 and LZ4 trade ratio for speed, and Noop keeps
// the record stream byte-transparent for debugging.
package compress
