package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/auth"
	"github.com/mcoot/blockdrop/internal/services/bot"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/services/presets"
	"github.com/mcoot/blockdrop/internal/web/handler"
	"github.com/mcoot/blockdrop/internal/web/middleware"
	"github.com/mcoot/blockdrop/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	GameController    *game.Controller
	BotService        *bot.Service
	PresetService     *presets.Service
	HubManager        *sse.HubManager
	DefaultGameConfig model.GameConfig
	StaticDir         string // Path to static files directory
}

// NewRouter creates a standalone web router with all pages configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the web pages on r. Mount the API first when sharing a
// router so /api/v1 is matched before the pages.
func Mount(r *mux.Router, cfg RouterConfig) {
	site := r.NewRoute().Subrouter()

	site.Use(middleware.Recovery(cfg.Logger))
	site.Use(middleware.Logging(cfg.Logger))

	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}
	defaults := cfg.DefaultGameConfig
	if defaults == (model.GameConfig{}) {
		defaults = model.DefaultGameConfig()
	}

	homeHandler := handler.NewHomeHandler(cfg.GameController, cfg.PresetService, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService, hubManager, defaults, cfg.Logger)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		site.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public pages show the player in the nav when signed in
	public := site.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)

	authRoutes := site.PathPrefix("/auth").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.Use(optionalAuthMiddleware)
	authRoutes.HandleFunc("/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Game pages require a session
	games := site.PathPrefix("/games").Subrouter()
	games.Use(flashMiddleware)
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.View).Methods(http.MethodGet)
	games.HandleFunc("/{id}/step", gameHandler.Step).Methods(http.MethodPost)
	games.HandleFunc("/{id}/autoplay", gameHandler.Autoplay).Methods(http.MethodPost)
	games.HandleFunc("/{id}/place", gameHandler.Place).Methods(http.MethodPost)
	games.HandleFunc("/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	games.HandleFunc("/{id}/abandon", gameHandler.Abandon).Methods(http.MethodPost)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)
}
