package screen

import (
	"github.com/jmadec/minitel/codec"
	"github.com/jmadec/minitel/internal/hash"
	"github.com/jmadec/minitel/internal/options"
	"github.com/jmadec/minitel/internal/pool"
	"github.com/jmadec/minitel/videotex"
)

// Renderer turns grid mutations into minimal terminal byte streams.
//
// It keeps two grids: the desired grid the application draws into, and a
// committed grid mirroring what the terminal currently displays. Render
// diffs the two and emits positioning plus encoded spans for the cells
// that changed; Commit then records the desired state as transmitted.
// The split exists so a downstream refusal (a full queue, an aborted
// write) leaves the committed grid untouched and the same update is
// simply rendered again later. Rendering an unchanged screen emits
// nothing.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	committed *Grid
	desired   *Grid
	rowSums   []uint64
	enc       *codec.RowEncoder
	buf       *pool.ByteBuffer

	// contRow is the row a full-width span just wrapped into, or -1.
	// A span starting at column 0 of that row continues the cursor's
	// natural wrap and needs no positioning sequence.
	contRow int
}

// maxBridgeGap is the widest run of unchanged cells worth re-sending to
// avoid breaking a span. The positioning sequence costs three bytes; an
// unchanged cell re-sent inside a span usually costs one.
const maxBridgeGap = 2

// RendererOption customizes a Renderer created by NewRenderer.
type RendererOption = options.Option[*rendererConfig]

type rendererConfig struct {
	cols int
	rows int
}

// WithGeometry sets the grid geometry. The default is the standard
// 40x24 Videotex page. Rows and columns beyond 62 are not addressable
// by the single-byte positioning coordinates.
func WithGeometry(cols, rows int) RendererOption {
	return options.NoError(func(c *rendererConfig) {
		c.cols = cols
		c.rows = rows
	})
}

// NewRenderer creates a Renderer with blank committed and desired grids.
func NewRenderer(opts ...RendererOption) *Renderer {
	cfg := rendererConfig{cols: DefaultCols, rows: DefaultRows}
	// Renderer options cannot fail; invalid geometry panics in NewGrid.
	_ = options.Apply(&cfg, opts...)

	r := &Renderer{
		committed: NewGrid(cfg.cols, cfg.rows),
		desired:   NewGrid(cfg.cols, cfg.rows),
		rowSums:   make([]uint64, cfg.rows),
		enc:       codec.NewRowEncoder(),
		buf:       pool.NewByteBuffer(pool.StreamBufferDefaultSize),
		contRow:   -1,
	}

	r.committed.Clear()
	r.desired.Clear()
	for row := 0; row < cfg.rows; row++ {
		r.rowSums[row] = hash.Row(r.committed.Row(row))
	}

	return r
}

// Desired returns the grid the application draws into. Mutations become
// visible on the terminal at the next Render.
func (r *Renderer) Desired() *Grid { return r.desired }

// Render diffs the desired grid against the committed one and returns
// the byte stream that brings the terminal up to date. The returned
// slice is owned by the caller. It returns nil when nothing changed.
//
// Render does not advance the committed state; call Commit once the
// bytes are accepted downstream. Rendering again before a Commit
// produces the same update.
func (r *Renderer) Render() []byte {
	r.buf.Reset()
	r.contRow = -1

	for row := 0; row < r.desired.Rows(); row++ {
		if hash.Row(r.desired.Row(row)) == r.rowSums[row] {
			continue
		}
		r.renderRow(row)
	}

	if r.buf.Len() == 0 {
		return nil
	}

	out := make([]byte, r.buf.Len())
	copy(out, r.buf.Bytes())

	return out
}

// Commit records the desired grid as transmitted, so the next Render
// diffs against it. Call it only after the bytes of the preceding
// Render were successfully handed off; bytes never sent must not enter
// the committed state or the terminal desynchronizes permanently.
func (r *Renderer) Commit() {
	_ = r.committed.CopyFrom(r.desired)
	for row := 0; row < r.desired.Rows(); row++ {
		r.rowSums[row] = hash.Row(r.committed.Row(row))
	}
}

// Clear blanks both grids and returns the byte stream that clears the
// terminal page and homes the cursor. Unlike Render it commits
// immediately: the clear byte rides the direct write path, which either
// delivers or tears the session down.
func (r *Renderer) Clear() []byte {
	r.committed.Clear()
	r.desired.Clear()
	for row := range r.rowSums {
		r.rowSums[row] = hash.Row(r.committed.Row(row))
	}

	return []byte{videotex.Ff}
}

// Invalidate marks the whole committed grid unknown, forcing the next
// Render to repaint every non-placeholder desired cell. Call it after
// bytes reach the terminal outside the Renderer's control.
func (r *Renderer) Invalidate() {
	r.committed.Fill(videotex.NullCell)
	for row := range r.rowSums {
		r.rowSums[row] = hash.Row(r.committed.Row(row))
	}
}

// renderRow emits the dirty spans of one row into r.buf. Runs of up to
// maxBridgeGap unchanged cells between two dirty runs are re-sent rather
// than broken into a fresh span, as long as no placeholder cell sits in
// between (placeholders emit nothing and would desynchronize the cursor).
func (r *Renderer) renderRow(row int) {
	desired := r.desired.Row(row)
	committed := r.committed.Row(row)

	col := 0
	for col < len(desired) {
		if !cellDirty(desired[col], committed[col]) {
			col++
			continue
		}

		start := col
		end := col
		for col < len(desired) {
			if cellDirty(desired[col], committed[col]) {
				col++
				end = col
				continue
			}
			if desired[col].IsNull() || col-end >= maxBridgeGap {
				break
			}
			col++
		}

		r.emitSpan(row, start, desired[start:end])
	}
}

// emitSpan encodes one contiguous run of cells, positioning the cursor
// first unless the span picks up exactly where the previous span's
// cursor wrapped to. A continued span skips the three positioning bytes
// and keeps the encoder's attribute mirror alive across the row break.
func (r *Renderer) emitSpan(row, start int, cells []videotex.Cell) {
	continued := start == 0 && row == r.contRow
	if !continued {
		loc := videotex.Locate(row, start)
		r.buf.MustWrite(loc[:])
	}
	r.buf.MustWrite(r.enc.EncodeRow(cells, !continued))

	if start+len(cells) == r.desired.Cols() {
		r.contRow = row + 1
	} else {
		r.contRow = -1
	}
}

// cellDirty reports whether the desired cell requires repainting. A
// placeholder desired cell expresses no opinion and is never painted.
func cellDirty(desired, committed videotex.Cell) bool {
	if desired.IsNull() {
		return false
	}

	return desired != committed
}
