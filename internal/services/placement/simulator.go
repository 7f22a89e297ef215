package placement

import "github.com/mcoot/blockdrop/internal/model"

// simulateDrop drops piece p at rotation r, anchored in column col, from
// stagingRow and returns the row it comes to rest on. ok is false if the
// piece does not fit at the staging row.
func simulateDrop(board *model.Board, p model.PieceType, r model.Rotation, col, stagingRow int) (restingRow int, ok bool) {
	if !p.Valid() {
		return 0, false
	}
	shape := model.ShapeOf(p, r)
	if !Fits(board, shape, stagingRow, col) {
		return 0, false
	}

	row := stagingRow
	for Fits(board, shape, row+1, col) {
		row++
	}
	return row, true
}

// Fits returns true if every cell of shape anchored at (row, col) is on the
// board and unoccupied
func Fits(board *model.Board, shape model.Shape, row, col int) bool {
	for _, pos := range shape.At(row, col) {
		if !board.IsEmpty(pos.Row, pos.Col) {
			return false
		}
	}
	return true
}

// stamp writes the piece marker into the board without validation.
// Callers must have checked Fits first.
func stamp(board *model.Board, p model.PieceType, shape model.Shape, row, col int) {
	marker := p.Marker()
	for _, pos := range shape.At(row, col) {
		board.Cells[pos.Row][pos.Col] = marker
	}
}
