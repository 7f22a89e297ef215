package placement

import (
	"math"

	"github.com/mcoot/blockdrop/internal/model"
)

// Evaluator scores a board; lower cost is better.
//
// Each row from the top of the stack down contributes
// EmptySpots(row) * Weight(row). Weights grow geometrically towards the
// floor, so gaps low on the board dominate and a piece that rests lower
// leaves a cheaper board.
type Evaluator struct {
	params  Params
	weights []int
}

// NewEvaluator creates an evaluator with its weight table precomputed up to
// the largest supported board
func NewEvaluator(params Params) *Evaluator {
	weights := make([]int, model.MaxRows)
	for i := range weights {
		weights[i] = weightFor(params.Factor, i)
	}
	return &Evaluator{
		params:  params,
		weights: weights,
	}
}

func weightFor(factor float64, row int) int {
	return int(math.Floor(math.Pow(factor, float64(row+1))))
}

// Weight returns the multiplier applied to row's empty spots
func (e *Evaluator) Weight(row int) int {
	if row < 0 {
		return 0
	}
	if row < len(e.weights) {
		return e.weights[row]
	}
	return weightFor(e.params.Factor, row)
}

// Params returns the tuning the evaluator was built with
func (e *Evaluator) Params() Params {
	return e.params
}

// Evaluate returns the total cost of board. Rows above the highest occupied
// cell cost nothing, so an empty board costs 0.
func (e *Evaluator) Evaluate(board *model.Board) int {
	cost := 0
	for row := board.StackTop(); row < board.Rows; row++ {
		cost += e.rowSpots(board, row) * e.Weight(row)
	}
	return cost
}

// EmptySpots returns the unweighted cost of a single row: one per empty cell
// plus Penalty per overhang that does not open onto a shaft. Rows above the
// stack score 0.
func (e *Evaluator) EmptySpots(board *model.Board, row int) int {
	if !board.InRows(row) || row < board.StackTop() {
		return 0
	}
	return e.rowSpots(board, row)
}

func (e *Evaluator) rowSpots(board *model.Board, row int) int {
	spots := 0
	for col, c := range board.Cells[row] {
		if c == model.Empty {
			spots++
			continue
		}
		if !board.IsEmpty(row+1, col) {
			continue
		}
		if e.isOpenShaft(board, row, col) {
			continue
		}
		spots += e.params.Penalty
	}
	return spots
}

// isOpenShaft reports whether the gap below (row, col) continues empty for
// ShaftDepth more rows
func (e *Evaluator) isOpenShaft(board *model.Board, row, col int) bool {
	last := row + 1 + e.params.ShaftDepth
	if last >= board.Rows {
		return false
	}
	for r := row + 2; r <= last; r++ {
		if board.Cells[r][col] != model.Empty {
			return false
		}
	}
	return true
}
