package screen

import (
	"fmt"

	"github.com/jmadec/minitel/errs"
	"github.com/jmadec/minitel/videotex"
)

// Standard Videotex page geometry: 40 columns by 24 rows, plus a reserved
// status row addressed separately.
const (
	DefaultCols = 40
	DefaultRows = 24
)

// Grid is a fixed-size rectangle of cells addressed by (row, col),
// 0-indexed. A session holds two: the desired grid the application draws
// into and the committed grid mirroring what the terminal displays. Both
// are owned and mutated exclusively by the Renderer's flow of control.
type Grid struct {
	cols  int
	rows  int
	cells []videotex.Cell
}

// NewGrid creates a blank grid of the given geometry.
func NewGrid(cols, rows int) *Grid {
	if cols <= 0 || rows <= 0 {
		panic(fmt.Sprintf("screen: invalid grid geometry %dx%d", cols, rows))
	}

	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]videotex.Cell, cols*rows),
	}
}

// NewDefaultGrid creates a blank grid of the standard page geometry.
func NewDefaultGrid() *Grid {
	return NewGrid(DefaultCols, DefaultRows)
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// At returns the cell at (row, col).
func (g *Grid) At(row, col int) (videotex.Cell, error) {
	if !g.contains(row, col) {
		return videotex.Cell{}, fmt.Errorf("%w: (%d,%d) in %dx%d", errs.ErrGridBounds, row, col, g.cols, g.rows)
	}

	return g.cells[row*g.cols+col], nil
}

// Set replaces the cell at (row, col) wholesale.
func (g *Grid) Set(row, col int, cell videotex.Cell) error {
	if !g.contains(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", errs.ErrGridBounds, row, col, g.cols, g.rows)
	}

	g.cells[row*g.cols+col] = cell

	return nil
}

// SetText writes s starting at (row, col) with the given attributes,
// truncating at the row edge. It returns the number of cells written.
func (g *Grid) SetText(row, col int, s string, attrs videotex.AttrState) (int, error) {
	if !g.contains(row, col) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", errs.ErrGridBounds, row, col, g.cols, g.rows)
	}

	n := 0
	for _, r := range s {
		if col+n >= g.cols {
			break
		}
		g.cells[row*g.cols+col+n] = videotex.Cell{Char: r, Attrs: attrs}
		n++
	}

	return n, nil
}

// Fill sets every cell to c.
func (g *Grid) Fill(c videotex.Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Clear blanks the grid: every cell becomes a default-attribute space.
func (g *Grid) Clear() {
	g.Fill(videotex.Cell{Char: ' '})
}

// Row returns the cells of one row. The slice aliases the grid's storage.
func (g *Grid) Row(row int) []videotex.Cell {
	return g.cells[row*g.cols : (row+1)*g.cols]
}

// CopyFrom overwrites g with the contents of src.
func (g *Grid) CopyFrom(src *Grid) error {
	if g.cols != src.cols || g.rows != src.rows {
		return fmt.Errorf("%w: %dx%d vs %dx%d", errs.ErrGridSizeMismatch, g.cols, g.rows, src.cols, src.rows)
	}

	copy(g.cells, src.cells)

	return nil
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	clone := NewGrid(g.cols, g.rows)
	copy(clone.cells, g.cells)

	return clone
}

func (g *Grid) contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}
