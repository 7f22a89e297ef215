package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockdrop/internal/api/handler"
	"github.com/mcoot/blockdrop/internal/api/middleware"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/auth"
	"github.com/mcoot/blockdrop/internal/services/board"
	"github.com/mcoot/blockdrop/internal/services/bot"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/services/placement"
	"github.com/mcoot/blockdrop/internal/services/presets"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	GameController   *game.Controller
	BotService       *bot.Service
	BoardService     *board.Service
	PlacementService *placement.Service
	PresetService    *presets.Service
	// DefaultGameConfig fills dimensions a create request leaves out
	DefaultGameConfig model.GameConfig
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the API routes under /api/v1 on r
func Mount(r *mux.Router, cfg RouterConfig) {
	defaults := cfg.DefaultGameConfig
	if defaults == (model.GameConfig{}) {
		defaults = model.DefaultGameConfig()
	}

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService, defaults)
	adviseHandler := handler.NewAdviseHandler(cfg.BotService, cfg.BoardService, cfg.PlacementService)
	presetHandler := handler.NewPresetHandler(cfg.PresetService)

	authMiddleware := middleware.Auth(cfg.AuthService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Public routes
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/advise", adviseHandler.Advise).Methods(http.MethodPost)
	api.HandleFunc("/presets", presetHandler.List).Methods(http.MethodGet)

	// Protected player routes
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	players.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/place", gameHandler.Place).Methods(http.MethodPost)
	games.HandleFunc("/{id}/autoplay", gameHandler.Autoplay).Methods(http.MethodPost)
	games.HandleFunc("/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
