package model

// Placement is where a piece should be (or was) dropped.
// Rotations counts clockwise steps from the spawn rotation.
type Placement struct {
	Piece      PieceType
	Column     int
	Rotations  int
	RestingRow int
	Cost       int
	Found      bool // false when no rotation/column pair was legal
}

// Rotation returns the rotation index the placement ends in
func (p Placement) Rotation() Rotation {
	return Rotation(p.Rotations % RotationCount)
}

// Instance returns the placed piece at its resting position
func (p Placement) Instance() Piece {
	return Piece{
		Type:     p.Piece,
		Rotation: p.Rotation(),
		Row:      p.RestingRow,
		Col:      p.Column,
	}
}
