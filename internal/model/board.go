package model

import "fmt"

// Default board dimensions
const (
	DefaultRows = 30
	DefaultCols = 15
)

// Cell is the content of a single board square
type Cell uint8

// Empty marks an unoccupied cell. Occupied cells carry the marker of the
// piece type that filled them (see PieceType.Marker).
const Empty Cell = 0

// Valid returns true for Empty or a marker belonging to one of the 7 pieces
func (c Cell) Valid() bool {
	return c == Empty || PieceType(c).Valid()
}

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Board is a fixed-size ROWS x COLS playfield
type Board struct {
	Rows  int
	Cols  int
	Cells [][]Cell // Row-major: Cells[row][col]
}

// NewBoard creates an empty board of the given dimensions
func NewBoard(rows, cols int) *Board {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Board{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// InRows returns true if row is within [0, Rows)
func (b *Board) InRows(row int) bool {
	return row >= 0 && row < b.Rows
}

// InCols returns true if col is within [0, Cols)
func (b *Board) InCols(col int) bool {
	return col >= 0 && col < b.Cols
}

// InBounds returns true if the position lies on the board
func (b *Board) InBounds(pos Position) bool {
	return b.InRows(pos.Row) && b.InCols(pos.Col)
}

// CellAt returns the cell at (row, col)
func (b *Board) CellAt(row, col int) (Cell, error) {
	if !b.InRows(row) || !b.InCols(col) {
		return Empty, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, row, col, b.Rows, b.Cols)
	}
	return b.Cells[row][col], nil
}

// SetAt writes a marker at (row, col)
func (b *Board) SetAt(row, col int, c Cell) error {
	if !b.InRows(row) || !b.InCols(col) {
		return fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, row, col, b.Rows, b.Cols)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCell, c)
	}
	b.Cells[row][col] = c
	return nil
}

// IsEmpty reports whether (row, col) is on the board and unoccupied.
// Anything off the board counts as solid.
func (b *Board) IsEmpty(row, col int) bool {
	if !b.InRows(row) || !b.InCols(col) {
		return false
	}
	return b.Cells[row][col] == Empty
}

// Clone returns a deep copy; mutating the copy never touches b
func (b *Board) Clone() *Board {
	cells := make([][]Cell, b.Rows)
	for i := range cells {
		cells[i] = make([]Cell, b.Cols)
		copy(cells[i], b.Cells[i])
	}
	return &Board{
		Rows:  b.Rows,
		Cols:  b.Cols,
		Cells: cells,
	}
}

// Clear empties every cell
func (b *Board) Clear() {
	for row := range b.Cells {
		for col := range b.Cells[row] {
			b.Cells[row][col] = Empty
		}
	}
}

// IsRowFull returns true if no cell in the row is empty
func (b *Board) IsRowFull(row int) bool {
	if !b.InRows(row) {
		return false
	}
	for _, c := range b.Cells[row] {
		if c == Empty {
			return false
		}
	}
	return true
}

// OccupiedCount returns the number of occupied cells
func (b *Board) OccupiedCount() int {
	count := 0
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			if b.Cells[row][col] != Empty {
				count++
			}
		}
	}
	return count
}

// ColumnHeight returns the number of rows from the floor up to and including
// the highest occupied cell in col, or 0 if the column is empty
func (b *Board) ColumnHeight(col int) int {
	if !b.InCols(col) {
		return 0
	}
	for row := 0; row < b.Rows; row++ {
		if b.Cells[row][col] != Empty {
			return b.Rows - row
		}
	}
	return 0
}

// StackTop returns the highest row holding an occupied cell, or Rows when the
// board is empty
func (b *Board) StackTop() int {
	for row := 0; row < b.Rows; row++ {
		for _, c := range b.Cells[row] {
			if c != Empty {
				return row
			}
		}
	}
	return b.Rows
}
