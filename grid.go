package platen

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Grid is one full rendered frame: a sequence of rows of cells indexed
// [row][col]. The row count is fixed at construction; individual rows
// may be shorter or longer than the configured width because cells are
// written lazily in column order (see Paint).
type Grid struct {
	cols  int
	rows  int
	cells [][]Cell
}

// NewGrid creates a blank grid of the given dimensions, every cell the
// default cell.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{cols: cols, rows: rows}
	g.allocate()
	return g
}

func (g *Grid) allocate() {
	g.cells = make([][]Cell, g.rows)
	for y := range g.cells {
		row := make([]Cell, g.cols)
		for x := range row {
			row[x] = DefaultCell()
		}
		g.cells[y] = row
	}
}

// Paint stores a cell at (col, row). The row must exist: rows are
// pre-allocated to the fixed grid height and painting past it is an
// error. Columns are asymmetric: painting past the row's current
// length grows the row with default cells first, even beyond the
// configured width. Host draw streams address cells inside the
// configured area, so growth only triggers when a frame producer
// writes wide.
func (g *Grid) Paint(col, row int, cell Cell) error {
	if row < 0 || row >= len(g.cells) {
		return errors.Errorf("platen: paint row %d outside fixed height %d", row, len(g.cells))
	}
	if col < 0 {
		return errors.Errorf("platen: paint column %d negative", col)
	}
	line := g.cells[row]
	for len(line) <= col {
		line = append(line, DefaultCell())
	}
	line[col] = cell
	g.cells[row] = line
	return nil
}

// CellAt returns the cell at (col, row), or the default cell when the
// position lies outside the grid.
func (g *Grid) CellAt(col, row int) Cell {
	if row < 0 || row >= len(g.cells) {
		return DefaultCell()
	}
	if col < 0 || col >= len(g.cells[row]) {
		return DefaultCell()
	}
	return g.cells[row][col]
}

// Clear reinitializes the grid to blank cells at its construction
// dimensions, discarding any lazily grown columns.
func (g *Grid) Clear() {
	g.allocate()
}

// Size returns the grid dimensions as (first row length - 1, row
// count - 1). The off-by-one matches the host front-end protocol this
// engine was built against; correcting it here would shift every
// consumer's drawable area, so the quirk is kept and pinned by tests.
func (g *Grid) Size() (cols, rows int) {
	if len(g.cells) == 0 {
		return 0, 0
	}
	cols = len(g.cells[0]) - 1
	if cols < 0 {
		cols = 0
	}
	rows = len(g.cells) - 1
	if rows < 0 {
		rows = 0
	}
	return cols, rows
}

// Equal reports whether two grids hold identical cells.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || len(g.cells) != len(o.cells) {
		return false
	}
	for y := range g.cells {
		if len(g.cells[y]) != len(o.cells[y]) {
			return false
		}
		for x := range g.cells[y] {
			if g.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{cols: g.cols, rows: g.rows}
	c.cells = make([][]Cell, len(g.cells))
	for y := range g.cells {
		row := make([]Cell, len(g.cells[y]))
		copy(row, g.cells[y])
		c.cells[y] = row
	}
	return c
}

// DiffString lists every position where the two grids disagree, one
// line per cell. Debug aid; the render path never calls it.
func DiffString(a, b *Grid) string {
	var sb strings.Builder
	for y := range a.cells {
		for x := range a.cells[y] {
			if a.cells[y][x] != b.CellAt(x, y) {
				fmt.Fprintf(&sb, "(%d,%d): %+v != %+v\n", x, y, a.cells[y][x], b.CellAt(x, y))
			}
		}
	}
	return sb.String()
}
