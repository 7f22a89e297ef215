package model

import (
	"fmt"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GameState represents the lifecycle phase of a game
type GameState string

const (
	GameStatePlaying   GameState = "playing"   // Waiting for the next placement
	GameStateOver      GameState = "over"      // Current piece had nowhere to go
	GameStateAbandoned GameState = "abandoned" // Owner gave up
)

// Board dimension limits accepted by GameConfig.Validate
const (
	MinRows = 8
	MaxRows = 60
	MinCols = 4
	MaxCols = 40
)

// GameConfig fixes the board dimensions for the lifetime of a game
type GameConfig struct {
	Rows int
	Cols int
}

// DefaultGameConfig returns the classic 30x15 playfield
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Rows: DefaultRows,
		Cols: DefaultCols,
	}
}

// Validate checks the dimensions are within limits
func (c GameConfig) Validate() error {
	if c.Rows < MinRows || c.Rows > MaxRows {
		return fmt.Errorf("%w: rows must be between %d and %d, got %d", ErrInvalidConfig, MinRows, MaxRows, c.Rows)
	}
	if c.Cols < MinCols || c.Cols > MaxCols {
		return fmt.Errorf("%w: cols must be between %d and %d, got %d", ErrInvalidConfig, MinCols, MaxCols, c.Cols)
	}
	return nil
}

// Game is a single-player session: one board and a stream of pieces
type Game struct {
	ID      GameID
	OwnerID PlayerID
	State   GameState
	Config  GameConfig
	Preset  string // name of the starting board, empty for a blank board

	Board   *Board
	Current PieceType
	Next    PieceType

	Score        int
	LinesCleared int
	PiecesPlaced int

	LastPlacement *Placement

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFinished returns true once no further placements are accepted
func (g *Game) IsFinished() bool {
	return g.State == GameStateOver || g.State == GameStateAbandoned
}

// SpawnColumn is the column new pieces appear at
func (g *Game) SpawnColumn() int {
	return g.Config.Cols / 2
}
