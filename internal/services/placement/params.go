package placement

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when tuning parameters are out of range
var ErrInvalidParams = errors.New("invalid placement params")

// Params tunes the drop simulator and the cost heuristic
type Params struct {
	// Factor is the base of the per-row weight; Weight(i) = floor(Factor^(i+1))
	Factor float64
	// Penalty is charged for an occupied cell that overhangs an empty one
	Penalty int
	// ShaftDepth is how many further empty rows below an overhang make it an
	// open shaft that can still be filled from above
	ShaftDepth int
	// StagingRow is the anchor row a piece is tested at before it falls
	StagingRow int
}

// DefaultParams returns the standard tuning
func DefaultParams() Params {
	return Params{
		Factor:     1.5,
		Penalty:    4,
		ShaftDepth: 3,
		StagingRow: 3,
	}
}

// Validate checks that every parameter is usable
func (p Params) Validate() error {
	if p.Factor < 1 {
		return fmt.Errorf("%w: factor must be >= 1, got %v", ErrInvalidParams, p.Factor)
	}
	if p.Penalty < 0 {
		return fmt.Errorf("%w: penalty must be >= 0, got %d", ErrInvalidParams, p.Penalty)
	}
	if p.ShaftDepth < 0 {
		return fmt.Errorf("%w: shaft depth must be >= 0, got %d", ErrInvalidParams, p.ShaftDepth)
	}
	if p.StagingRow < 0 {
		return fmt.Errorf("%w: staging row must be >= 0, got %d", ErrInvalidParams, p.StagingRow)
	}
	return nil
}
