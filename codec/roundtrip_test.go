package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmadec/minitel/videotex"
)

// resolveRow computes the (character, resolved attributes) pairs a row of
// cells should display, starting from the row defaults, mirroring the
// charset-shift reset the terminal applies.
func resolveRow(cells []videotex.Cell) []videotex.Cell {
	state := videotex.RowDefaults()
	resolved := make([]videotex.Cell, 0, len(cells))

	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		if c.Attrs.Charset != videotex.CharsetUnset && c.Attrs.Charset != state.Charset {
			state.Charset = c.Attrs.Charset
			state.Size = videotex.SizeNormal
			state.Separated = videotex.FlagOn
		}
		req := c.Attrs
		req.Charset = videotex.CharsetUnset
		state = state.Merge(req)

		resolved = append(resolved, videotex.Cell{Char: c.Char, Attrs: state})
	}

	return resolved
}

func decodeRow(t *testing.T, data []byte) []videotex.Cell {
	t.Helper()

	dec := NewStreamDecoder()
	var placed []videotex.Cell
	for _, ev := range dec.Decode(data) {
		require.NotEqual(t, EventMalformed, ev.Kind, "encoder emitted malformed bytes")
		if ev.Kind == EventPlaceChar {
			placed = append(placed, videotex.Cell{Char: ev.Char, Attrs: ev.Attrs})
		}
	}

	return placed
}

func TestRoundTrip_Rows(t *testing.T) {
	tests := []struct {
		name  string
		cells []videotex.Cell
	}{
		{
			name:  "plain text",
			cells: cellsOf("LE KIOSQUE", videotex.AttrState{}),
		},
		{
			name:  "accented text",
			cells: cellsOf("déjà ça", videotex.AttrState{}),
		},
		{
			name: "colored run",
			cells: cellsOf("METEO", videotex.AttrState{
				Foreground: videotex.ColorYellow,
				Background: videotex.ColorBlue,
			}),
		},
		{
			name: "repeated cells",
			cells: repeatCells(videotex.Cell{
				Char:  '-',
				Attrs: videotex.AttrState{Foreground: videotex.ColorCyan},
			}, 40),
		},
		{
			name: "mosaic run",
			cells: repeatCells(videotex.Cell{
				Char:  '⠿',
				Attrs: videotex.AttrState{Charset: videotex.CharsetG1, Foreground: videotex.ColorGreen},
			}, 10),
		},
		{
			name: "mixed charsets and attributes",
			cells: append(
				cellsOf("AB", videotex.AttrState{Blink: videotex.FlagOn}),
				append(
					repeatCells(videotex.Cell{
						Char:  '⠛',
						Attrs: videotex.AttrState{Charset: videotex.CharsetG1, Separated: videotex.FlagOff},
					}, 3),
					cellsOf("fin", videotex.AttrState{Charset: videotex.CharsetG0, Invert: videotex.FlagOn})...,
				)...,
			),
		},
		{
			name: "null placeholders between segments",
			cells: append(
				cellsOf("a", videotex.AttrState{}),
				videotex.NullCell,
				videotex.Cell{Char: 'b'},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewRowEncoder()
			defer enc.Finish()

			data := enc.EncodeRow(tt.cells, true)
			placed := decodeRow(t, data)

			require.Equal(t, resolveRow(tt.cells), placed)
		})
	}
}

func TestRoundTrip_EncoderMirrorAgreesAfterEveryRow(t *testing.T) {
	enc := NewRowEncoder()
	defer enc.Finish()
	dec := NewStreamDecoder()

	rows := [][]videotex.Cell{
		cellsOf("ligne un", videotex.AttrState{Foreground: videotex.ColorRed}),
		repeatCells(videotex.Cell{Char: '⡇', Attrs: videotex.AttrState{Charset: videotex.CharsetG1}}, 12),
		cellsOf("  suite  ", videotex.AttrState{Invert: videotex.FlagOn}),
	}

	for _, row := range rows {
		data := enc.EncodeRow(row, false)
		dec.Decode(data)
		require.Equal(t, enc.Current(), dec.Attrs())
	}
}
