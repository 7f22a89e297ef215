package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated   EventType = "game_created"
	EventPiecePlaced   EventType = "piece_placed"
	EventLinesCleared  EventType = "lines_cleared"
	EventGameOver      EventType = "game_over"
	EventGameReset     EventType = "game_reset"
	EventGameAbandoned EventType = "game_abandoned"
)

// Event is emitted by the game controller after every state change
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	PlayerID  PlayerID // The player who triggered the change
	Payload   any      // Type-specific data
}

// PiecePlacedPayload contains data for piece placed events
type PiecePlacedPayload struct {
	Placement Placement
	Next      PieceType
}

// LinesClearedPayload contains data for lines cleared events
type LinesClearedPayload struct {
	Count int
	Score int
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Score        int
	LinesCleared int
	PiecesPlaced int
	Blocked      PieceType // the piece that could not be placed
}

// GameAbandonedPayload contains data for game abandoned events
type GameAbandonedPayload struct {
	Reason string
}
