package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player owns games. Guests are created on demand and never log in again.
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool
	CreatedAt   time.Time
}

// RegisteredPlayer holds the credentials of a non-guest player.
// The hash is kept apart from Player so it never travels with game data.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // unique, immutable
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
