package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/game"
)

// MaxAutoplayPieces caps the number of pieces a single Autoplay call places
const MaxAutoplayPieces = 500

// ActionType represents the type of action the autopilot took
type ActionType string

const (
	ActionPlaced       ActionType = "placed"
	ActionLinesCleared ActionType = "lines_cleared"
	ActionGameOver     ActionType = "game_over"
)

// Action is a single step reported by Autoplay
type Action struct {
	Type         ActionType
	Placement    model.Placement
	LinesCleared int
	Score        int
}

// Service advises placements and plays games on a player's behalf
type Service struct {
	gameController *game.Controller
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(gameController *game.Controller, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// Strategy looks up a strategy by name. An empty name selects the default.
func (s *Service) Strategy(name string) (Strategy, error) {
	if name == "" {
		name = model.DefaultBotStrategy
	}
	st, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidStrategy, name)
	}
	return st, nil
}

// Advise returns where the named strategy would put p on board
func (s *Service) Advise(board *model.Board, p model.PieceType, strategy string) (model.Placement, error) {
	if !p.Valid() {
		return model.Placement{}, model.ErrInvalidPiece
	}
	st, err := s.Strategy(strategy)
	if err != nil {
		return model.Placement{}, err
	}
	return st.Choose(board, p), nil
}

// Autoplay places up to maxPieces pieces using the named strategy, stopping
// early when the game ends. A maxPieces outside [1, MaxAutoplayPieces] is
// treated as MaxAutoplayPieces. Actions taken before an error are returned
// along with it.
func (s *Service) Autoplay(ctx context.Context, gameID model.GameID, playerID model.PlayerID, strategy string, maxPieces int) ([]Action, error) {
	st, err := s.Strategy(strategy)
	if err != nil {
		return nil, err
	}
	if maxPieces <= 0 || maxPieces > MaxAutoplayPieces {
		maxPieces = MaxAutoplayPieces
	}

	g, err := s.gameController.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != playerID {
		return nil, model.ErrNotOwner
	}
	switch g.State {
	case model.GameStateOver:
		return nil, model.ErrGameOver
	case model.GameStateAbandoned:
		return nil, model.ErrGameAbandoned
	}

	var actions []Action
	for range maxPieces {
		if err := ctx.Err(); err != nil {
			return actions, err
		}

		advice := st.Choose(g.Board, g.Current)
		if !advice.Found {
			return actions, model.ErrNoPlacementPossible
		}

		result, err := s.gameController.Place(ctx, gameID, playerID, advice.Rotations, advice.Column)
		if err != nil {
			return actions, err
		}
		g = result.Game

		actions = append(actions, Action{
			Type:      ActionPlaced,
			Placement: result.Placement,
			Score:     g.Score,
		})
		if result.LinesCleared > 0 {
			actions = append(actions, Action{
				Type:         ActionLinesCleared,
				LinesCleared: result.LinesCleared,
				Score:        g.Score,
			})
		}
		if result.GameOver {
			actions = append(actions, Action{
				Type:  ActionGameOver,
				Score: g.Score,
			})
			break
		}
	}

	s.logger.Info("autoplay finished",
		slog.String("game_id", string(gameID)),
		slog.String("strategy", strategy),
		slog.Int("actions", len(actions)),
		slog.Int("score", g.Score),
	)

	return actions, nil
}
