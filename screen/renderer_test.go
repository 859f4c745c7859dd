package screen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmadec/minitel/codec"
	"github.com/jmadec/minitel/videotex"
)

// terminalModel replays a rendered byte stream the way a terminal would,
// tracking the cursor across positioning and placements.
type terminalModel struct {
	grid *Grid
	row  int
	col  int
}

func newTerminalModel() *terminalModel {
	m := &terminalModel{grid: NewDefaultGrid()}
	m.grid.Clear()

	return m
}

func (m *terminalModel) apply(t *testing.T, data []byte) {
	t.Helper()

	dec := codec.NewStreamDecoder()
	for _, ev := range dec.Decode(data) {
		switch ev.Kind {
		case codec.EventLocate:
			m.row, m.col = ev.Row, ev.Col
		case codec.EventPlaceChar:
			require.NoError(t, m.grid.Set(m.row, m.col, videotex.Cell{Char: ev.Char, Attrs: ev.Attrs}))
			m.col++
			if m.col == m.grid.Cols() {
				m.col = 0
				m.row++
			}
		case codec.EventSetAttr:
			// Placements carry their attribute snapshot already.
		case codec.EventClearScreen:
			m.grid.Clear()
			m.row, m.col = 0, 0
		case codec.EventMalformed:
			t.Fatalf("malformed byte %#x at %d", ev.Byte, ev.Pos)
		default:
			t.Fatalf("unexpected event %v", ev)
		}
	}
}

// render produces one update and marks it transmitted, the way a
// session does once its queue accepts the bytes.
func render(r *Renderer) []byte {
	data := r.Render()
	r.Commit()

	return data
}

// requireConverged checks that every cell the application expressed an
// opinion about reached the model terminal with the expected resolved
// attributes.
func requireConverged(t *testing.T, r *Renderer, m *terminalModel) {
	t.Helper()

	for row := 0; row < r.Desired().Rows(); row++ {
		for col, want := range r.Desired().Row(row) {
			if want.IsNull() {
				continue
			}

			got, err := m.grid.At(row, col)
			require.NoError(t, err)
			require.Equal(t, want.Char, got.Char, "char at (%d,%d)", row, col)

			resolved := videotex.RowDefaults().Merge(want.Attrs)
			require.Equal(t, resolved, got.Attrs, "attrs at (%d,%d)", row, col)
		}
	}
}

func TestRenderer_FreshScreenEmitsNothing(t *testing.T) {
	r := NewRenderer()
	require.Nil(t, r.Render())
}

func TestRenderer_SingleText(t *testing.T) {
	r := NewRenderer()

	_, err := r.Desired().SetText(5, 10, "BONJOUR", videotex.AttrState{})
	require.NoError(t, err)

	data := r.Render()
	require.NotEmpty(t, data)

	loc := videotex.Locate(5, 10)
	require.Equal(t, loc[:], data[:3])

	m := newTerminalModel()
	m.apply(t, data)
	requireConverged(t, r, m)
}

func TestRenderer_Idempotent(t *testing.T) {
	r := NewRenderer()

	_, err := r.Desired().SetText(0, 0, "stable", videotex.AttrState{})
	require.NoError(t, err)

	require.NotEmpty(t, render(r))
	require.Nil(t, render(r))
	require.Nil(t, render(r))
}

func TestRenderer_UncommittedRenderRepeats(t *testing.T) {
	r := NewRenderer()

	_, err := r.Desired().SetText(7, 0, "RETENTE", videotex.AttrState{})
	require.NoError(t, err)

	// Until a Commit acknowledges the hand-off, the update is still
	// owed to the terminal and renders identically again.
	first := r.Render()
	require.NotEmpty(t, first)
	require.Equal(t, first, r.Render())

	r.Commit()
	require.Nil(t, r.Render())
}

func TestRenderer_OnlyChangedCellsRepainted(t *testing.T) {
	r := NewRenderer()

	_, err := r.Desired().SetText(2, 0, "ABCDEFGH", videotex.AttrState{})
	require.NoError(t, err)

	first := render(r)
	require.NotEmpty(t, first)

	// Flip a single distant cell; the update must be much smaller than
	// the initial paint and position straight at it.
	require.NoError(t, r.Desired().Set(2, 6, videotex.Cell{Char: 'x'}))

	second := render(r)
	require.NotEmpty(t, second)
	require.Less(t, len(second), len(first))

	loc := videotex.Locate(2, 6)
	require.Equal(t, append(loc[:], 'x'), second)
}

func TestRenderer_SmallGapsAreBridged(t *testing.T) {
	r := NewRenderer()

	_, err := r.Desired().SetText(0, 0, "AB CD", videotex.AttrState{})
	require.NoError(t, err)
	require.NotEmpty(t, render(r))

	// Changing the cells around an unchanged space should re-send the
	// space instead of paying for a second positioning sequence.
	require.NoError(t, r.Desired().Set(0, 1, videotex.Cell{Char: 'b'}))
	require.NoError(t, r.Desired().Set(0, 3, videotex.Cell{Char: 'c'}))

	loc := videotex.Locate(0, 1)
	require.Equal(t, append(loc[:], 'b', ' ', 'c'), render(r))
}

func TestRenderer_PlaceholdersBreakSpans(t *testing.T) {
	r := NewRenderer()

	require.NoError(t, r.Desired().Set(0, 0, videotex.Cell{Char: 'A'}))
	require.NoError(t, r.Desired().Set(0, 1, videotex.NullCell))
	require.NoError(t, r.Desired().Set(0, 2, videotex.Cell{Char: 'B'}))

	locA := videotex.Locate(0, 0)
	locB := videotex.Locate(0, 2)
	want := append(locA[:], 'A')
	want = append(want, locB[:]...)
	want = append(want, 'B')
	require.Equal(t, want, r.Render())
}

func TestRenderer_PlaceholderExpressesNoOpinion(t *testing.T) {
	r := NewRenderer()

	require.NoError(t, r.Desired().Set(4, 4, videotex.Cell{Char: 'Z'}))
	require.NotEmpty(t, render(r))

	// Withdrawing the opinion must not repaint or blank the cell.
	require.NoError(t, r.Desired().Set(4, 4, videotex.NullCell))
	require.Nil(t, render(r))
}

func TestRenderer_AttributeChangeIsDirty(t *testing.T) {
	r := NewRenderer()

	require.NoError(t, r.Desired().Set(1, 1, videotex.Cell{Char: 'A'}))
	require.NotEmpty(t, render(r))

	require.NoError(t, r.Desired().Set(1, 1, videotex.Cell{
		Char:  'A',
		Attrs: videotex.AttrState{Foreground: videotex.ColorGreen},
	}))

	data := r.Render()
	require.NotEmpty(t, data)

	m := newTerminalModel()
	m.apply(t, data)

	got, err := m.grid.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, videotex.ColorGreen, got.Attrs.Foreground)
}

func TestRenderer_ClearBlanksEverything(t *testing.T) {
	r := NewRenderer()

	_, err := r.Desired().SetText(3, 0, "going away", videotex.AttrState{})
	require.NoError(t, err)
	require.NotEmpty(t, render(r))

	require.Equal(t, []byte{videotex.Ff}, r.Clear())
	require.Nil(t, render(r))

	// Redrawing after a clear repaints from scratch.
	_, err = r.Desired().SetText(3, 0, "going away", videotex.AttrState{})
	require.NoError(t, err)
	require.NotEmpty(t, render(r))
}

func TestRenderer_InvalidateForcesRepaint(t *testing.T) {
	r := NewRenderer()

	_, err := r.Desired().SetText(0, 0, "hi", videotex.AttrState{})
	require.NoError(t, err)

	first := render(r)
	require.NotEmpty(t, first)
	require.Nil(t, render(r))

	r.Invalidate()

	data := render(r)
	require.NotEmpty(t, data)

	m := newTerminalModel()
	m.apply(t, data)
	requireConverged(t, r, m)
}

func TestRenderer_FullScreenConverges(t *testing.T) {
	r := NewRenderer()

	cyan := videotex.AttrState{Foreground: videotex.ColorCyan}
	mosaic := videotex.AttrState{Charset: videotex.CharsetG1, Background: videotex.ColorBlue}

	_, err := r.Desired().SetText(0, 0, "ANNUAIRE ELECTRONIQUE", videotex.AttrState{})
	require.NoError(t, err)
	_, err = r.Desired().SetText(10, 2, "nom de l'abonné ...", cyan)
	require.NoError(t, err)
	for col := 0; col < DefaultCols; col++ {
		require.NoError(t, r.Desired().Set(23, col, videotex.Cell{Char: '⠿', Attrs: mosaic}))
	}

	m := newTerminalModel()
	m.apply(t, render(r))
	requireConverged(t, r, m)

	// Incremental edit over the existing screen converges too.
	_, err = r.Desired().SetText(10, 22, "DURAND", cyan)
	require.NoError(t, err)

	m.apply(t, render(r))
	requireConverged(t, r, m)
}

func TestRenderer_WrappedRowsContinueWithoutRepositioning(t *testing.T) {
	r := NewRenderer()

	green := videotex.AttrState{Foreground: videotex.ColorGreen}
	for col := 0; col < DefaultCols; col++ {
		require.NoError(t, r.Desired().Set(8, col, videotex.Cell{Char: '=', Attrs: green}))
		require.NoError(t, r.Desired().Set(9, col, videotex.Cell{Char: '=', Attrs: green}))
	}

	data := render(r)
	require.NotEmpty(t, data)

	// Row 9 starts where the cursor wraps after row 8's last column, so
	// a single positioning sequence covers both rows.
	require.Equal(t, 1, bytes.Count(data, []byte{videotex.Us}))

	m := newTerminalModel()
	m.apply(t, data)
	requireConverged(t, r, m)

	// A skipped row in between breaks the flow and costs a reposition.
	for col := 0; col < DefaultCols; col++ {
		require.NoError(t, r.Desired().Set(12, col, videotex.Cell{Char: '-', Attrs: green}))
		require.NoError(t, r.Desired().Set(14, col, videotex.Cell{Char: '-', Attrs: green}))
	}

	data = render(r)
	require.Equal(t, 2, bytes.Count(data, []byte{videotex.Us}))

	m.apply(t, data)
	requireConverged(t, r, m)
}

func TestRenderer_CustomGeometry(t *testing.T) {
	r := NewRenderer(WithGeometry(32, 16))

	require.Equal(t, 32, r.Desired().Cols())
	require.Equal(t, 16, r.Desired().Rows())

	_, err := r.Desired().SetText(15, 28, "edge", videotex.AttrState{})
	require.NoError(t, err)
	require.NotEmpty(t, render(r))
	require.Nil(t, render(r))
}
