package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/auth"
	"github.com/mcoot/blockdrop/internal/services/board"
	"github.com/mcoot/blockdrop/internal/services/bot"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/services/placement"
	"github.com/mcoot/blockdrop/internal/services/presets"
	"github.com/mcoot/blockdrop/internal/storage"
	"github.com/mcoot/blockdrop/internal/storage/memory"
	redisstorage "github.com/mcoot/blockdrop/internal/storage/redis"
	"github.com/mcoot/blockdrop/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService     *board.Service
	PlacementService *placement.Service
	PresetService    *presets.Service
	GameController   *game.Controller
	BotService       *bot.Service
	AuthService      *auth.Service

	// Live updates
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster

	// GameConfig is the board size new games get by default
	GameConfig model.GameConfig
}

// Config holds configuration for the application factory
type Config struct {
	// PresetsPath is a presets file to load (optional)
	// If empty, presets already in storage are used, then the built-in set
	PresetsPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig sets the default board size (optional)
	// If zero value, defaults to model.DefaultGameConfig()
	GameConfig model.GameConfig
	// PlacementParams tunes the placement search (optional)
	// If zero value, defaults to placement.DefaultParams()
	PlacementParams placement.Params
	// RandomSeed makes piece dealing reproducible (optional)
	// If nil, crypto/rand is used
	RandomSeed *uint64
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired and presets
// loaded
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}

	// Create external dependencies
	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.RandomSeed != nil {
		rnd = random.NewSeeded(*cfg.RandomSeed)
		logger.Info("using seeded random source", slog.Uint64("seed", *cfg.RandomSeed))
	}

	// Fill in defaults
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	gameCfg := cfg.GameConfig
	if gameCfg == (model.GameConfig{}) {
		gameCfg = model.DefaultGameConfig()
	}
	if err := gameCfg.Validate(); err != nil {
		return nil, err
	}
	params := cfg.PlacementParams
	if params == (placement.Params{}) {
		params = placement.DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clk, rnd, authCfg, params, gameCfg, logger)
	if err := app.loadPresets(ctx, cfg.PresetsPath, logger); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) loadPresets(ctx context.Context, path string, logger *slog.Logger) error {
	if path != "" {
		if err := a.PresetService.LoadFromFile(ctx, path); err != nil {
			return fmt.Errorf("load presets from %s: %w", path, err)
		}
		return nil
	}

	if err := a.PresetService.LoadFromStorage(ctx); err == nil {
		return nil
	} else if !errors.Is(err, model.ErrPresetsEmpty) {
		logger.Warn("could not load stored presets, using built-in set", slog.String("error", err.Error()))
	}
	return a.PresetService.LoadDefaults(ctx)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	params placement.Params,
	gameCfg model.GameConfig,
	logger *slog.Logger,
) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, store, logger)

	// Create services
	boardService := board.New()
	placementService := placement.New(params)
	presetService := presets.New(store, boardService, logger)
	gameController := game.NewController(store, boardService, placementService, presetService, clk, rnd, broadcaster, logger)
	botService := bot.NewService(gameController, map[string]bot.Strategy{
		model.BotStrategyGreedy: bot.NewGreedyStrategy(placementService),
		model.BotStrategyRandom: bot.NewRandomStrategy(placementService, rnd),
	}, logger)
	authService := auth.New(store, clk, rnd, authCfg, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		BoardService:     boardService,
		PlacementService: placementService,
		PresetService:    presetService,
		GameController:   gameController,
		BotService:       botService,
		AuthService:      authService,
		HubManager:       hubManager,
		Broadcaster:      broadcaster,
		GameConfig:       gameCfg,
	}
}

// Close releases the storage backend's connections
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
