// Package screen provides a retained-mode page model for Videotex
// terminals: applications draw cells into a desired grid, and a Renderer
// diffs it against the committed state to emit the smallest byte stream
// that updates the display.
package screen
