// Package videotex defines the wire-level vocabulary of the STUM1B
// Videotex protocol: control codes, attribute functions, character set
// mappings and protocol (PRO) sequences.
//
// The protocol is strictly 7-bit. Every sequence built by this package
// stays within 0x00-0x7F; bytes above 0x7F never appear on output and are
// rejected as malformed on input by the codec package.
//
// # Attribute channels
//
// A screen position carries seven independent attribute channels, modeled
// by AttrState: foreground and background color, character size, blink,
// video invert, separated mosaics and the active charset. Each channel is
// tri-state: unset (inherit the terminal's current value) or an explicit
// target. The terminal cannot be queried, so both directions of the codec
// mirror its state locally from these definitions.
//
// # Character sets
//
// G0 is the alphanumeric set (printable ASCII plus G2 escape sequences for
// accents and symbols), G1 the 2x3 mosaic set. EncodeRune maps a Unicode
// code point to its byte sequence under a given charset and reports
// unrepresentable runes, which the encoder drops silently.
package videotex
