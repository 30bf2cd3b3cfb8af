package sokoban

import (
	"fmt"
	"strings"
)

// Grid is the static character layout of a level.
// Cells are stored in row-major order: index = row*columns + column.
// Every row is padded to the full width with spaces; trailing spaces are
// only trimmed when the grid is serialized.
//
// Accessors do no bounds checking beyond slice indexing. Reading or writing
// outside [0,Rows) x [0,Columns) is a programmer error; use InBounds first.
type Grid struct {
	rows    int
	columns int
	cells   []Marker
}

// GridSize returns the dimensions a grid built from items would have:
// one row per item and as many columns as the longest item.
func GridSize(items []string) (rows, columns int) {
	rows = len(items)
	for _, item := range items {
		if len(item) > columns {
			columns = len(item)
		}
	}
	return rows, columns
}

// NewGrid creates a grid from row strings. Unknown characters become spaces.
func NewGrid(items []string) *Grid {
	g := &Grid{}
	g.SetItems(items)
	return g
}

// SetItems rebuilds the grid storage from row strings.
// Rows are addressed byte-wise; every marker is a single ASCII byte.
func (g *Grid) SetItems(items []string) {
	g.rows, g.columns = GridSize(items)
	g.cells = make([]Marker, g.rows*g.columns)
	for row, item := range items {
		for col := range g.columns {
			if col < len(item) {
				g.Insert(row, col, Marker(item[col]))
			} else {
				g.cells[g.index(row, col)] = MarkerSpace
			}
		}
	}
}

// Items returns the grid as row strings with trailing spaces trimmed.
func (g *Grid) Items() []string {
	items := make([]string, g.rows)
	for row := range g.rows {
		items[row] = strings.TrimRight(g.rowString(row), " ")
	}
	return items
}

// String returns the newline-joined rows, the textual form accepted by NewGrid.
func (g *Grid) String() string {
	return strings.Join(g.Items(), "\n")
}

func (g *Grid) rowString(row int) string {
	start := g.index(row, 0)
	buf := make([]byte, g.columns)
	for i, m := range g.cells[start : start+g.columns] {
		buf[i] = byte(m)
	}
	return string(buf)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	return g.columns
}

// SetRows resizes the grid vertically. Removed rows are discarded and new
// rows are filled with spaces.
func (g *Grid) SetRows(rows int) {
	if rows < 0 {
		rows = 0
	}
	if rows < g.rows {
		g.cells = g.cells[:rows*g.columns]
	} else {
		for range (rows - g.rows) * g.columns {
			g.cells = append(g.cells, MarkerSpace)
		}
	}
	g.rows = rows
}

// SetColumns resizes the grid horizontally, keeping the cells that remain
// in bounds and padding new columns with spaces.
func (g *Grid) SetColumns(columns int) {
	if columns < 0 {
		columns = 0
	}
	cells := make([]Marker, g.rows*columns)
	for row := range g.rows {
		for col := range columns {
			m := MarkerSpace
			if col < g.columns {
				m = g.cells[g.index(row, col)]
			}
			cells[row*columns+col] = m
		}
	}
	g.cells = cells
	g.columns = columns
}

func (g *Grid) index(row, col int) int {
	return row*g.columns + col
}

// InBounds returns true if the cell is within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.columns
}

// At returns the marker at the given cell.
func (g *Grid) At(row, col int) Marker {
	return g.cells[g.index(row, col)]
}

// Insert writes a marker into a cell. Invalid markers are stored as space.
func (g *Grid) Insert(row, col int, m Marker) {
	if !m.Valid() {
		m = MarkerSpace
	}
	g.cells[g.index(row, col)] = m
}

// Remove clears a cell.
func (g *Grid) Remove(row, col int) {
	g.cells[g.index(row, col)] = MarkerSpace
}

// Normalize drops blank rows and shrinks the width to the longest
// remaining row. Loaders call it on ragged input.
func (g *Grid) Normalize() {
	items := g.Items()
	kept := items[:0]
	for _, item := range items {
		if item != "" {
			kept = append(kept, item)
		}
	}
	g.SetItems(kept)
}

// Count returns the number of cells whose marker satisfies pred.
func (g *Grid) Count(pred func(Marker) bool) int {
	n := 0
	for _, m := range g.cells {
		if pred(m) {
			n++
		}
	}
	return n
}

// Check validates the grid and returns a *ValidationError describing the
// first rule it breaks:
//   - exactly one worker
//   - at least one goal
//   - as many goals as boxes
func (g *Grid) Check() error {
	workers := g.Count(Marker.HasWorker)
	goals := g.Count(Marker.HasGoal)
	boxes := g.Count(Marker.HasBox)

	switch {
	case workers != 1:
		return &ValidationError{
			Code:    CodeWorkerCount,
			Message: fmt.Sprintf("expected exactly one worker, found %d", workers),
		}
	case goals == 0:
		return &ValidationError{
			Code:    CodeNoGoals,
			Message: "level has no goals",
		}
	case goals != boxes:
		return &ValidationError{
			Code:    CodeGoalBoxMismatch,
			Message: fmt.Sprintf("%d goals but %d boxes", goals, boxes),
		}
	}
	return nil
}

// Validate reports whether the grid is a playable level.
func (g *Grid) Validate() bool {
	return g.Check() == nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Marker, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		rows:    g.rows,
		columns: g.columns,
		cells:   cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.columns != other.columns {
		return false
	}
	for i, m := range g.cells {
		if m != other.cells[i] {
			return false
		}
	}
	return true
}
