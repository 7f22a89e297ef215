package game

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blockdrop/internal/dependencies/mocks"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/board"
	"github.com/mcoot/blockdrop/internal/services/placement"
	"github.com/mcoot/blockdrop/internal/services/presets"
	"github.com/mcoot/blockdrop/internal/storage/memory"
	"github.com/mcoot/blockdrop/internal/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []model.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func (p *recordingPublisher) last() model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type ControllerSuite struct {
	suite.Suite
	storage       *memory.Storage
	boardService  *board.Service
	presetService *presets.Service
	clock         *mocks.MockClock
	random        *mocks.MockRandom
	publisher     *recordingPublisher
	controller    *Controller
	ctx           context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.boardService = board.New()
	s.presetService = presets.New(s.storage, s.boardService, testutil.NopLogger())
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.publisher = &recordingPublisher{}
	s.controller = NewController(
		s.storage,
		s.boardService,
		placement.New(placement.DefaultParams()),
		s.presetService,
		s.clock,
		s.random,
		s.publisher,
		testutil.NopLogger(),
	)
	s.ctx = context.Background()
}

var smallConfig = model.GameConfig{Rows: 8, Cols: 4}

func (s *ControllerSuite) createGame(cfg model.GameConfig, pieces ...model.PieceType) *model.Game {
	s.random.QueueString("GAME00000001")
	s.random.QueuePieces(pieces...)
	game, err := s.controller.CreateGame(s.ctx, "player-1", cfg, "")
	s.Require().NoError(err)
	return game
}

// fillRows occupies cols [0, upTo) of the given rows in storage
func (s *ControllerSuite) fillRows(id model.GameID, upTo int, rows ...int) {
	game, err := s.storage.GetGame(s.ctx, id)
	s.Require().NoError(err)
	for _, row := range rows {
		for col := range upTo {
			s.Require().NoError(game.Board.SetAt(row, col, model.PieceJ.Marker()))
		}
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameSucceeds() {
	game := s.createGame(model.DefaultGameConfig(), model.PieceT, model.PieceS)

	s.Equal(model.GameID("GAME00000001"), game.ID)
	s.Equal(model.PlayerID("player-1"), game.OwnerID)
	s.Equal(model.GameStatePlaying, game.State)
	s.Equal(model.PieceT, game.Current)
	s.Equal(model.PieceS, game.Next)
	s.Equal(model.DefaultRows, game.Board.Rows)
	s.Equal(model.DefaultCols, game.Board.Cols)
	s.Zero(game.Board.OccupiedCount())
	s.Equal([]model.EventType{model.EventGameCreated}, s.publisher.types())
}

func (s *ControllerSuite) TestCreateGameIsPersisted() {
	game := s.createGame(smallConfig)

	retrieved, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(smallConfig, retrieved.Config)
}

func (s *ControllerSuite) TestCreateGameRejectsBadConfig() {
	_, err := s.controller.CreateGame(s.ctx, "player-1", model.GameConfig{Rows: 2, Cols: 4}, "")
	s.ErrorIs(err, model.ErrInvalidConfig)
	s.Empty(s.publisher.types())
}

func (s *ControllerSuite) TestCreateGameFromPreset() {
	s.Require().NoError(s.presetService.LoadDefaults(s.ctx))
	s.random.QueueString("GAME00000001")

	game, err := s.controller.CreateGame(s.ctx, "player-1", model.DefaultGameConfig(), "well")
	s.Require().NoError(err)

	s.Equal("well", game.Preset)
	s.Equal(4*14, game.Board.OccupiedCount())
}

func (s *ControllerSuite) TestCreateGameUnknownPreset() {
	s.Require().NoError(s.presetService.LoadDefaults(s.ctx))

	_, err := s.controller.CreateGame(s.ctx, "player-1", model.DefaultGameConfig(), "nope")
	s.ErrorIs(err, model.ErrPresetNotFound)
}

func (s *ControllerSuite) TestListGames() {
	s.random.QueueString("GAME00000001", "GAME00000002", "GAME00000003")
	_, err := s.controller.CreateGame(s.ctx, "player-1", smallConfig, "")
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.controller.CreateGame(s.ctx, "player-1", smallConfig, "")
	s.Require().NoError(err)
	_, err = s.controller.CreateGame(s.ctx, "player-2", smallConfig, "")
	s.Require().NoError(err)

	games, err := s.controller.ListGames(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal(model.GameID("GAME00000001"), games[0].ID)
	s.Equal(model.GameID("GAME00000002"), games[1].ID)
}

// Place tests

func (s *ControllerSuite) TestPlaceLocksPieceAndDealsNext() {
	game := s.createGame(smallConfig, model.PieceO, model.PieceT, model.PieceZ)

	result, err := s.controller.Place(s.ctx, game.ID, "player-1", 0, 0)
	s.Require().NoError(err)

	// two empty cells left in each of the bottom two rows
	e := placement.NewEvaluator(placement.DefaultParams())
	s.Equal(model.Placement{
		Piece:      model.PieceO,
		Column:     0,
		Rotations:  0,
		RestingRow: 6,
		Cost:       2*e.Weight(6) + 2*e.Weight(7),
		Found:      true,
	}, result.Placement)
	s.Zero(result.LinesCleared)
	s.False(result.GameOver)

	s.Equal(model.PieceT, result.Game.Current)
	s.Equal(model.PieceZ, result.Game.Next)
	s.Equal(1, result.Game.PiecesPlaced)
	s.Equal(4, result.Game.Board.OccupiedCount())
	s.False(result.Game.Board.IsEmpty(6, 0))
	s.False(result.Game.Board.IsEmpty(7, 1))

	stored, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(result.Game.Board.Cells, stored.Board.Cells)
	s.Require().NotNil(stored.LastPlacement)
	s.Equal(result.Placement, *stored.LastPlacement)
}

func (s *ControllerSuite) TestPlaceClearsRowsAndScores() {
	game := s.createGame(smallConfig, model.PieceO, model.PieceO)

	_, err := s.controller.Place(s.ctx, game.ID, "player-1", 0, 0)
	s.Require().NoError(err)
	result, err := s.controller.Place(s.ctx, game.ID, "player-1", 0, 2)
	s.Require().NoError(err)

	s.Equal(2, result.LinesCleared)
	s.Equal(2, result.Game.Score)
	s.Equal(2, result.Game.LinesCleared)
	s.Equal(2, result.Game.PiecesPlaced)
	s.Zero(result.Game.Board.OccupiedCount())

	s.Equal([]model.EventType{
		model.EventGameCreated,
		model.EventPiecePlaced,
		model.EventPiecePlaced,
		model.EventLinesCleared,
	}, s.publisher.types())
	s.Equal(model.LinesClearedPayload{Count: 2, Score: 2}, s.publisher.last().Payload)
}

func (s *ControllerSuite) TestPlaceEndsGameWhenNextPieceIsBlocked() {
	game := s.createGame(smallConfig, model.PieceT, model.PieceO)
	s.fillRows(game.ID, 3, 4, 5, 6, 7)

	result, err := s.controller.Place(s.ctx, game.ID, "player-1", 0, 1)
	s.Require().NoError(err)

	s.Equal(3, result.Placement.RestingRow)
	s.True(result.GameOver)
	s.Equal(model.GameStateOver, result.Game.State)
	s.Equal(model.PieceO, result.Game.Current)

	event := s.publisher.last()
	s.Equal(model.EventGameOver, event.Type)
	payload, ok := event.Payload.(model.GameOverPayload)
	s.Require().True(ok)
	s.Equal(model.PieceO, payload.Blocked)
	s.Equal(1, payload.PiecesPlaced)

	_, err = s.controller.Place(s.ctx, game.ID, "player-1", 0, 0)
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *ControllerSuite) TestPlaceRejectsClippedColumn() {
	game := s.createGame(smallConfig, model.PieceO)

	_, err := s.controller.Place(s.ctx, game.ID, "player-1", 0, 3)
	s.ErrorIs(err, model.ErrInvalidPlacement)

	stored, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Zero(stored.PiecesPlaced)
	s.Zero(stored.Board.OccupiedCount())
}

func (s *ControllerSuite) TestPlaceRejectsBadRotation() {
	game := s.createGame(smallConfig)

	_, err := s.controller.Place(s.ctx, game.ID, "player-1", 4, 0)
	s.ErrorIs(err, model.ErrInvalidRotation)

	_, err = s.controller.Place(s.ctx, game.ID, "player-1", -1, 0)
	s.ErrorIs(err, model.ErrInvalidRotation)
}

func (s *ControllerSuite) TestPlaceRejectsNonOwner() {
	game := s.createGame(smallConfig)

	_, err := s.controller.Place(s.ctx, game.ID, "player-2", 0, 0)
	s.ErrorIs(err, model.ErrNotOwner)
}

func (s *ControllerSuite) TestPlaceUnknownGame() {
	_, err := s.controller.Place(s.ctx, "MISSING", "player-1", 0, 0)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestPlaceAppliesRotation() {
	game := s.createGame(smallConfig, model.PieceI)

	result, err := s.controller.Place(s.ctx, game.ID, "player-1", 1, 0)
	s.Require().NoError(err)

	s.Equal(5, result.Placement.RestingRow)
	for row := 4; row < 8; row++ {
		s.False(result.Game.Board.IsEmpty(row, 0), "row %d", row)
	}
	s.Equal(4, result.Game.Board.ColumnHeight(0))
}

func (s *ControllerSuite) TestPlaceUpdatesTimestamp() {
	game := s.createGame(smallConfig)
	s.clock.Advance(time.Minute)

	result, err := s.controller.Place(s.ctx, game.ID, "player-1", 0, 1)
	s.Require().NoError(err)

	s.Equal(game.CreatedAt.Add(time.Minute), result.Game.UpdatedAt)
	s.Equal(game.CreatedAt, result.Game.CreatedAt)
}

func (s *ControllerSuite) TestConcurrentPlacesAreSerialised() {
	game := s.createGame(model.GameConfig{Rows: model.MaxRows, Cols: 12})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			_, _ = s.controller.Place(s.ctx, game.ID, "player-1", 0, col)
		}(i)
	}
	wg.Wait()

	stored, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(stored.PiecesPlaced*model.CellsPerPiece, stored.Board.OccupiedCount()+stored.LinesCleared*12)
}

// Reset tests

func (s *ControllerSuite) TestResetRestoresStartingState() {
	game := s.createGame(smallConfig, model.PieceO, model.PieceO)
	_, err := s.controller.Place(s.ctx, game.ID, "player-1", 0, 0)
	s.Require().NoError(err)
	_, err = s.controller.Place(s.ctx, game.ID, "player-1", 0, 2)
	s.Require().NoError(err)

	s.random.QueuePieces(model.PieceL, model.PieceJ)
	reset, err := s.controller.Reset(s.ctx, game.ID, "player-1")
	s.Require().NoError(err)

	s.Equal(model.GameStatePlaying, reset.State)
	s.Zero(reset.Score)
	s.Zero(reset.LinesCleared)
	s.Zero(reset.PiecesPlaced)
	s.Nil(reset.LastPlacement)
	s.Equal(model.PieceL, reset.Current)
	s.Equal(model.PieceJ, reset.Next)
	s.Zero(reset.Board.OccupiedCount())
	s.Equal(model.EventGameReset, s.publisher.last().Type)
}

func (s *ControllerSuite) TestResetFinishedGame() {
	game := s.createGame(smallConfig, model.PieceT, model.PieceO)
	s.fillRows(game.ID, 3, 4, 5, 6, 7)
	result, err := s.controller.Place(s.ctx, game.ID, "player-1", 0, 1)
	s.Require().NoError(err)
	s.Require().True(result.GameOver)

	reset, err := s.controller.Reset(s.ctx, game.ID, "player-1")
	s.Require().NoError(err)
	s.Equal(model.GameStatePlaying, reset.State)
}

func (s *ControllerSuite) TestResetKeepsPreset() {
	s.Require().NoError(s.presetService.LoadDefaults(s.ctx))
	s.random.QueueString("GAME00000001")
	game, err := s.controller.CreateGame(s.ctx, "player-1", model.DefaultGameConfig(), "steps")
	s.Require().NoError(err)
	before := s.boardService.Render(game.Board)

	_, err = s.controller.Place(s.ctx, game.ID, "player-1", 0, 7)
	s.Require().NoError(err)

	reset, err := s.controller.Reset(s.ctx, game.ID, "player-1")
	s.Require().NoError(err)
	s.Equal(strings.Join(before, "\n"), strings.Join(s.boardService.Render(reset.Board), "\n"))
}

func (s *ControllerSuite) TestResetRejectsNonOwner() {
	game := s.createGame(smallConfig)

	_, err := s.controller.Reset(s.ctx, game.ID, "player-2")
	s.ErrorIs(err, model.ErrNotOwner)
}

func (s *ControllerSuite) TestResetAbandonedGameFails() {
	game := s.createGame(smallConfig)
	_, err := s.controller.Abandon(s.ctx, game.ID, "player-1")
	s.Require().NoError(err)

	_, err = s.controller.Reset(s.ctx, game.ID, "player-1")
	s.ErrorIs(err, model.ErrGameAbandoned)
}

// Abandon tests

func (s *ControllerSuite) TestAbandon() {
	game := s.createGame(smallConfig)

	abandoned, err := s.controller.Abandon(s.ctx, game.ID, "player-1")
	s.Require().NoError(err)

	s.Equal(model.GameStateAbandoned, abandoned.State)
	s.Equal(model.EventGameAbandoned, s.publisher.last().Type)

	_, err = s.controller.Place(s.ctx, game.ID, "player-1", 0, 0)
	s.ErrorIs(err, model.ErrGameAbandoned)
}

func (s *ControllerSuite) TestAbandonIsIdempotent() {
	game := s.createGame(smallConfig)
	_, err := s.controller.Abandon(s.ctx, game.ID, "player-1")
	s.Require().NoError(err)
	count := len(s.publisher.types())

	again, err := s.controller.Abandon(s.ctx, game.ID, "player-1")
	s.Require().NoError(err)

	s.Equal(model.GameStateAbandoned, again.State)
	s.Len(s.publisher.types(), count)
}

func (s *ControllerSuite) TestAbandonRejectsNonOwner() {
	game := s.createGame(smallConfig)

	_, err := s.controller.Abandon(s.ctx, game.ID, "player-2")
	s.ErrorIs(err, model.ErrNotOwner)
}

func (s *ControllerSuite) TestNilPublisherIsAllowed() {
	controller := NewController(
		s.storage,
		s.boardService,
		placement.New(placement.DefaultParams()),
		s.presetService,
		s.clock,
		s.random,
		nil,
		testutil.NopLogger(),
	)
	s.random.QueueString("GAME00000009")

	game, err := controller.CreateGame(s.ctx, "player-1", smallConfig, "")
	s.Require().NoError(err)
	_, err = controller.Place(s.ctx, game.ID, "player-1", 0, 1)
	s.NoError(err)
}
