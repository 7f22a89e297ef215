package placement

import (
	"github.com/mcoot/blockdrop/internal/model"
)

// Candidate is one legal trial placement and the cost of the board it leaves
type Candidate struct {
	Rotations  int
	Column     int
	RestingRow int
	Cost       int
}

// Result is the outcome of a full search
type Result struct {
	Placement model.Placement
	// Candidates holds every legal trial, ordered by rotation then column
	Candidates []Candidate
}

// Service finds the cheapest placement for a piece on a board
type Service struct {
	params    Params
	evaluator *Evaluator
}

// New creates a new placement Service
func New(params Params) *Service {
	return &Service{
		params:    params,
		evaluator: NewEvaluator(params),
	}
}

// Evaluator returns the cost evaluator the service scores with
func (s *Service) Evaluator() *Evaluator {
	return s.evaluator
}

// SimulateDrop drops p at rotation r with its anchor in column col, starting
// from the configured staging row, and returns the row it comes to rest on.
// ok is false if the piece does not fit at the staging row.
func (s *Service) SimulateDrop(board *model.Board, p model.PieceType, r model.Rotation, col int) (restingRow int, ok bool) {
	return simulateDrop(board, p, r, col, s.params.StagingRow)
}

// Search returns the cheapest placement of p on board. The board is never
// modified. When nothing fits, the returned placement has Found=false and
// points at the spawn column with no rotation.
func (s *Service) Search(board *model.Board, p model.PieceType) model.Placement {
	return s.search(board, p, nil)
}

// SearchAll is Search that also reports every legal trial
func (s *Service) SearchAll(board *model.Board, p model.PieceType) Result {
	candidates := []Candidate{}
	best := s.search(board, p, func(c Candidate) {
		candidates = append(candidates, c)
	})
	return Result{
		Placement:  best,
		Candidates: candidates,
	}
}

// Trials returns every legal trial of p without scoring them. Cost is left
// at zero.
func (s *Service) Trials(board *model.Board, p model.PieceType) []Candidate {
	trials := []Candidate{}
	s.eachTrial(board, p, func(r model.Rotation, col, row int) {
		trials = append(trials, Candidate{
			Rotations:  int(r),
			Column:     col,
			RestingRow: row,
		})
	})
	return trials
}

// Cost returns the cost of board after p is locked at (row, col) in rotation
// r. The board itself is left untouched.
func (s *Service) Cost(board *model.Board, p model.PieceType, r model.Rotation, row, col int) int {
	trial := board.Clone()
	stamp(trial, p, model.ShapeOf(p, r), row, col)
	return s.evaluator.Evaluate(trial)
}

// HasPlacement reports whether p fits anywhere on board
func (s *Service) HasPlacement(board *model.Board, p model.PieceType) bool {
	found := false
	s.eachTrial(board, p, func(model.Rotation, int, int) {
		found = true
	})
	return found
}

func (s *Service) search(board *model.Board, p model.PieceType, visit func(Candidate)) model.Placement {
	best := model.Placement{
		Piece:  p,
		Column: board.Cols / 2,
	}

	// Columns ascend within a rotation and rotations ascend overall, so
	// keeping only strict improvements leaves the lowest column and then the
	// lowest rotation on ties.
	s.eachTrial(board, p, func(r model.Rotation, col, row int) {
		cost := s.Cost(board, p, r, row, col)

		if visit != nil {
			visit(Candidate{
				Rotations:  int(r),
				Column:     col,
				RestingRow: row,
				Cost:       cost,
			})
		}

		if !best.Found || cost < best.Cost {
			best = model.Placement{
				Piece:      p,
				Column:     col,
				Rotations:  int(r),
				RestingRow: row,
				Cost:       cost,
				Found:      true,
			}
		}
	})

	return best
}

// eachTrial calls fn for every rotation and anchor column at which p
// survives the staging check, in rotation-major, column-ascending order.
// Anchors run from the one that puts the shape against the left wall to the
// one that puts it against the right wall.
func (s *Service) eachTrial(board *model.Board, p model.PieceType, fn func(r model.Rotation, col, row int)) {
	if !p.Valid() {
		return
	}
	for r := model.Rotation(0); r < model.RotationCount; r++ {
		shape := model.ShapeOf(p, r)
		for col := -shape.MinCol; col <= board.Cols-1-shape.MaxCol; col++ {
			row, ok := s.SimulateDrop(board, p, r, col)
			if !ok {
				continue
			}
			fn(r, col, row)
		}
	}
}
