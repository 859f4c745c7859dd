// Package codec implements the two directions of the Videotex wire
// grammar: RowEncoder compresses rows of cells into minimal byte
// sequences, StreamDecoder parses arbitrary byte streams back into
// structured events.
//
// Both sides mirror the terminal's attribute state locally: the link is a
// slow one-way-at-a-time serial line and the far end cannot be queried.
// The invariant tying the two halves together is that after encoding a
// row, the encoder's mirror equals the state a decoder reaches by
// consuming those bytes.
//
// The decoder never fails. Line noise (bytes above 0x7F, out-of-range
// repeat counts) surfaces as EventMalformed and the automaton
// resynchronizes, because a Minitel session must survive a dirty line.
package codec
