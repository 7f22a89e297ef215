package storage

import (
	"context"

	"github.com/mcoot/blockdrop/internal/model"
)

// Storage defines the interface for data persistence.
// Implementations return copies: mutating a returned game does not change
// what is stored until it is saved again.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGamesByOwner(ctx context.Context, owner model.PlayerID) ([]*model.Game, error)

	// Preset operations
	SavePresets(ctx context.Context, presets []model.Preset) error
	GetPresets(ctx context.Context) ([]model.Preset, error)
	GetPreset(ctx context.Context, name string) (*model.Preset, error)
}
