package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	games             map[model.GameID]*model.Game
	ownerIndex        map[model.PlayerID]map[model.GameID]struct{}
	presets           []model.Preset
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		games:             make(map[model.GameID]*model.Game),
		ownerIndex:        make(map[model.PlayerID]map[model.GameID]struct{}),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[player.ID] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *rp
	s.registeredPlayers[rp.PlayerID] = &r
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	r := *rp
	return &r, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	r := *rp
	return &r, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	owned, ok := s.ownerIndex[game.OwnerID]
	if !ok {
		owned = make(map[model.GameID]struct{})
		s.ownerIndex[game.OwnerID] = owned
	}
	owned[game.ID] = struct{}{}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game, ok := s.games[id]; ok {
		delete(s.ownerIndex[game.OwnerID], id)
	}
	delete(s.games, id)
	return nil
}

// ListGamesByOwner returns the owner's games, oldest first
func (s *Storage) ListGamesByOwner(ctx context.Context, owner model.PlayerID) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := []*model.Game{}
	for id := range s.ownerIndex[owner] {
		games = append(games, cloneGame(s.games[id]))
	}
	slices.SortFunc(games, func(a, b *model.Game) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return games, nil
}

func cloneGame(game *model.Game) *model.Game {
	g := *game
	if game.Board != nil {
		g.Board = game.Board.Clone()
	}
	if game.LastPlacement != nil {
		p := *game.LastPlacement
		g.LastPlacement = &p
	}
	return &g
}

// Preset operations

func (s *Storage) SavePresets(ctx context.Context, presets []model.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets = make([]model.Preset, len(presets))
	for i, p := range presets {
		s.presets[i] = clonePreset(p)
	}
	return nil
}

func (s *Storage) GetPresets(ctx context.Context) ([]model.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.presets == nil {
		return nil, model.ErrPresetsEmpty
	}
	result := make([]model.Preset, len(s.presets))
	for i, p := range s.presets {
		result[i] = clonePreset(p)
	}
	return result, nil
}

func (s *Storage) GetPreset(ctx context.Context, name string) (*model.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.presets {
		if p.Name == name {
			c := clonePreset(p)
			return &c, nil
		}
	}
	return nil, model.ErrPresetNotFound
}

func clonePreset(p model.Preset) model.Preset {
	p.Rows = slices.Clone(p.Rows)
	return p
}
