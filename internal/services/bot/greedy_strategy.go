package bot

import (
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/placement"
)

// GreedyStrategy takes the cheapest placement for the current piece
type GreedyStrategy struct {
	placement *placement.Service
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(placementService *placement.Service) *GreedyStrategy {
	return &GreedyStrategy{placement: placementService}
}

// Choose runs the placement search
func (s *GreedyStrategy) Choose(board *model.Board, p model.PieceType) model.Placement {
	return s.placement.Search(board, p)
}
