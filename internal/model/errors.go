package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Board errors
	ErrOutOfBounds    = errors.New("position out of bounds")
	ErrInvalidCell    = errors.New("invalid cell marker")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidBoard   = errors.New("invalid board")
	ErrInvalidConfig  = errors.New("invalid game config")
	ErrPresetNotFound = errors.New("preset not found")
	ErrPresetsEmpty   = errors.New("no presets loaded")

	// Piece errors
	ErrInvalidPiece    = errors.New("invalid piece")
	ErrInvalidRotation = errors.New("invalid rotation")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrNotOwner            = errors.New("player does not own this game")
	ErrGameOver            = errors.New("game is over")
	ErrGameAbandoned       = errors.New("game has been abandoned")
	ErrInvalidPlacement    = errors.New("invalid placement")
	ErrInvalidStrategy     = errors.New("invalid bot strategy")
	ErrNoPlacementPossible = errors.New("no valid placement for piece")
)
