package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/services/presets"
	"github.com/mcoot/blockdrop/internal/web/middleware"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
	"github.com/mcoot/blockdrop/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	gameController *game.Controller
	presetService  *presets.Service
	logger         *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(gameController *game.Controller, presetService *presets.Service, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		gameController: gameController,
		presetService:  presetService,
		logger:         logger,
	}
}

// Home renders the home page. Signed-in players also see their games and
// the new game form.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	data := pages.HomeData{
		PageData: layout.PageData{
			Title:  "Home",
			Player: player,
			Flash:  middleware.GetFlash(r.Context()),
		},
		Next: r.URL.Query().Get("next"),
	}

	if player != nil {
		games, err := h.gameController.ListGames(r.Context(), player.ID)
		if err != nil {
			h.logger.Warn("failed to list games", slog.String("player_id", string(player.ID)), slog.Any("error", err))
		}
		data.Games = games
		data.Presets = h.presetService.List()
	}

	render(w, r, http.StatusOK, pages.Home(data))
}
