package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/board"
	"github.com/mcoot/blockdrop/internal/services/placement"
	"github.com/mcoot/blockdrop/internal/services/presets"
	"github.com/mcoot/blockdrop/internal/storage"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EventPublisher receives every game event after it has been persisted
type EventPublisher interface {
	Publish(ctx context.Context, event model.Event)
}

// PlaceResult describes the outcome of a single placement
type PlaceResult struct {
	Game         *model.Game
	Placement    model.Placement
	LinesCleared int
	GameOver     bool
}

// Controller runs the game loop: deal a piece, place it, clear rows, deal
// the next one, until a piece has nowhere to go
type Controller struct {
	storage          storage.Storage
	boardService     *board.Service
	placementService *placement.Service
	presetService    *presets.Service
	clock            clock.Clock
	random           random.Random
	publisher        EventPublisher
	logger           *slog.Logger

	// one mutex per game serialises read-modify-write cycles
	locks sync.Map
}

// NewController creates a new GameController. publisher may be nil.
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	placementService *placement.Service,
	presetService *presets.Service,
	clock clock.Clock,
	random random.Random,
	publisher EventPublisher,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:          storage,
		boardService:     boardService,
		placementService: placementService,
		presetService:    presetService,
		clock:            clock,
		random:           random,
		publisher:        publisher,
		logger:           logger.With(slog.String("component", "game-controller")),
	}
}

// CreateGame starts a game for owner on an empty board, or on the named
// preset when preset is not empty
func (c *Controller) CreateGame(ctx context.Context, owner model.PlayerID, cfg model.GameConfig, preset string) (*model.Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := c.startingBoard(cfg, preset)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:        model.GameID(c.random.String(12, gameIDAlphabet)),
		OwnerID:   owner,
		State:     model.GameStatePlaying,
		Config:    cfg,
		Preset:    preset,
		Board:     b,
		Current:   c.drawPiece(),
		Next:      c.drawPiece(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.checkBlocked(game)

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(owner)),
		slog.Int("rows", cfg.Rows),
		slog.Int("cols", cfg.Cols),
		slog.String("preset", preset),
	)
	c.publish(ctx, game, owner, model.EventGameCreated, nil)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns every game owned by the player, oldest first
func (c *Controller) ListGames(ctx context.Context, owner model.PlayerID) ([]*model.Game, error) {
	return c.storage.ListGamesByOwner(ctx, owner)
}

// Place drops the current piece after the given number of clockwise
// rotations at the given column
func (c *Controller) Place(ctx context.Context, gameID model.GameID, playerID model.PlayerID, rotations, column int) (*PlaceResult, error) {
	if rotations < 0 || rotations >= model.RotationCount {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidRotation, rotations)
	}

	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.loadForUpdate(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	piece := game.Current
	rot := model.Rotation(rotations)
	row, ok := c.placementService.SimulateDrop(game.Board, piece, rot, column)
	if !ok {
		return nil, fmt.Errorf("%w: %s with %d rotations at column %d", model.ErrInvalidPlacement, piece, rotations, column)
	}
	if err := c.boardService.Lock(game.Board, piece, rot, row, column); err != nil {
		return nil, err
	}

	placed := model.Placement{
		Piece:      piece,
		Column:     column,
		Rotations:  rotations,
		RestingRow: row,
		Cost:       c.placementService.Evaluator().Evaluate(game.Board),
		Found:      true,
	}
	cleared := c.boardService.ClearFullRows(game.Board)

	game.Score += cleared
	game.LinesCleared += cleared
	game.PiecesPlaced++
	game.LastPlacement = &placed
	game.Current = game.Next
	game.Next = c.drawPiece()
	game.UpdatedAt = c.clock.Now()
	c.checkBlocked(game)

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Debug("piece placed",
		slog.String("game_id", string(gameID)),
		slog.String("piece", piece.String()),
		slog.Int("column", column),
		slog.Int("rotations", rotations),
		slog.Int("cost", placed.Cost),
		slog.Int("lines_cleared", cleared),
	)

	c.publish(ctx, game, playerID, model.EventPiecePlaced, model.PiecePlacedPayload{
		Placement: placed,
		Next:      game.Next,
	})
	if cleared > 0 {
		c.publish(ctx, game, playerID, model.EventLinesCleared, model.LinesClearedPayload{
			Count: cleared,
			Score: game.Score,
		})
	}
	over := game.State == model.GameStateOver
	if over {
		c.logger.Info("game over",
			slog.String("game_id", string(gameID)),
			slog.Int("score", game.Score),
			slog.Int("pieces_placed", game.PiecesPlaced),
		)
		c.publish(ctx, game, playerID, model.EventGameOver, model.GameOverPayload{
			Score:        game.Score,
			LinesCleared: game.LinesCleared,
			PiecesPlaced: game.PiecesPlaced,
			Blocked:      game.Current,
		})
	}

	return &PlaceResult{
		Game:         game,
		Placement:    placed,
		LinesCleared: cleared,
		GameOver:     over,
	}, nil
}

// Reset restarts a game from its starting board with fresh pieces.
// Finished games can be reset; abandoned ones cannot.
func (c *Controller) Reset(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.loadOwned(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if game.State == model.GameStateAbandoned {
		return nil, model.ErrGameAbandoned
	}

	b, err := c.startingBoard(game.Config, game.Preset)
	if err != nil {
		return nil, err
	}
	game.Board = b
	game.State = model.GameStatePlaying
	game.Current = c.drawPiece()
	game.Next = c.drawPiece()
	game.Score = 0
	game.LinesCleared = 0
	game.PiecesPlaced = 0
	game.LastPlacement = nil
	game.UpdatedAt = c.clock.Now()
	c.checkBlocked(game)

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game reset", slog.String("game_id", string(gameID)))
	c.publish(ctx, game, playerID, model.EventGameReset, nil)

	return game, nil
}

// Abandon ends a game early. Abandoning a finished game is a no-op.
func (c *Controller) Abandon(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.loadOwned(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if game.IsFinished() {
		return game, nil
	}

	game.State = model.GameStateAbandoned
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
		slog.Int("score", game.Score),
	)
	c.publish(ctx, game, playerID, model.EventGameAbandoned, model.GameAbandonedPayload{
		Reason: "abandoned by owner",
	})

	return game, nil
}

func (c *Controller) startingBoard(cfg model.GameConfig, preset string) (*model.Board, error) {
	if preset == "" {
		return model.NewBoard(cfg.Rows, cfg.Cols), nil
	}
	return c.presetService.Build(preset, cfg)
}

func (c *Controller) drawPiece() model.PieceType {
	return model.AllPieceTypes[c.random.Intn(len(model.AllPieceTypes))]
}

// checkBlocked ends the game if the current piece cannot be placed anywhere
func (c *Controller) checkBlocked(game *model.Game) {
	if !c.placementService.HasPlacement(game.Board, game.Current) {
		game.State = model.GameStateOver
	}
}

func (c *Controller) loadOwned(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.OwnerID != playerID {
		return nil, model.ErrNotOwner
	}
	return game, nil
}

// loadForUpdate loads a game that must still be in play
func (c *Controller) loadForUpdate(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	game, err := c.loadOwned(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	switch game.State {
	case model.GameStateOver:
		return nil, model.ErrGameOver
	case model.GameStateAbandoned:
		return nil, model.ErrGameAbandoned
	}
	return game, nil
}

func (c *Controller) lock(gameID model.GameID) func() {
	v, _ := c.locks.LoadOrStore(gameID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (c *Controller) publish(ctx context.Context, game *model.Game, playerID model.PlayerID, eventType model.EventType, payload any) {
	if c.publisher == nil {
		return
	}
	c.publisher.Publish(ctx, model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		GameID:    game.ID,
		PlayerID:  playerID,
		Payload:   payload,
	})
}
