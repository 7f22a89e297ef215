package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/blockdrop/internal/model"
)

// GameSource loads the current state of a game
type GameSource interface {
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
}

// Broadcaster pushes rendered game updates to everyone watching a game
type Broadcaster struct {
	hubManager *HubManager
	games      GameSource
	renderer   *Renderer
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, games GameSource, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		games:      games,
		renderer:   NewRenderer(),
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish renders the event and sends it to the game's hub. Games nobody is
// watching are skipped without loading them.
func (b *Broadcaster) Publish(ctx context.Context, event model.Event) {
	hub := b.hubManager.GetHub(event.GameID)
	if hub == nil {
		return
	}

	game, err := b.games.GetGame(ctx, event.GameID)
	if err != nil {
		b.logger.Error("sse failed to load game",
			slog.String("game_id", string(event.GameID)),
			slog.Any("error", err))
		return
	}

	events, err := b.renderer.RenderGameEvent(ctx, event, game)
	if err != nil {
		b.logger.Error("sse failed to render event",
			slog.String("game_id", string(event.GameID)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}
	for _, e := range events {
		hub.BroadcastEvent(e.EventName, e.HTML)
	}
}
