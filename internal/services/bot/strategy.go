package bot

import "github.com/mcoot/blockdrop/internal/model"

// Strategy decides where a piece should go
type Strategy interface {
	// Choose returns a placement for p on board. The board must not be
	// modified. A placement with Found=false means nothing fits.
	Choose(board *model.Board, p model.PieceType) model.Placement
}
