package bot

import (
	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/placement"
)

// RandomStrategy picks any legal placement uniformly at random
type RandomStrategy struct {
	placement *placement.Service
	random    random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(placementService *placement.Service, rnd random.Random) *RandomStrategy {
	return &RandomStrategy{
		placement: placementService,
		random:    rnd,
	}
}

// Choose picks one of the legal trials and scores it
func (s *RandomStrategy) Choose(board *model.Board, p model.PieceType) model.Placement {
	trials := s.placement.Trials(board, p)
	if len(trials) == 0 {
		return model.Placement{Piece: p, Column: board.Cols / 2}
	}
	t := trials[s.random.Intn(len(trials))]
	return model.Placement{
		Piece:      p,
		Column:     t.Column,
		Rotations:  t.Rotations,
		RestingRow: t.RestingRow,
		Cost:       s.placement.Cost(board, p, model.Rotation(t.Rotations), t.RestingRow, t.Column),
		Found:      true,
	}
}
