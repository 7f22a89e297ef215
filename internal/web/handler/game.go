package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/bot"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/web/middleware"
	"github.com/mcoot/blockdrop/internal/web/sse"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
	"github.com/mcoot/blockdrop/internal/web/templates/pages"
)

// GameHandler handles game pages and actions
type GameHandler struct {
	gameController *game.Controller
	botService     *bot.Service
	hubManager     *sse.HubManager
	defaults       model.GameConfig
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController *game.Controller, botService *bot.Service, hubManager *sse.HubManager, defaults model.GameConfig, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
		hubManager:     hubManager,
		defaults:       defaults,
		logger:         logger,
	}
}

// Create handles the new game form
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		redirect(w, r, "/")
		return
	}

	cfg := h.defaults
	var err error
	if cfg.Rows, err = formInt(r, "rows", h.defaults.Rows); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Rows must be a number")
		redirect(w, r, "/")
		return
	}
	if cfg.Cols, err = formInt(r, "cols", h.defaults.Cols); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Columns must be a number")
		redirect(w, r, "/")
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), player.ID, cfg, strings.TrimSpace(r.FormValue("preset")))
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Could not create game: "+err.Error())
		redirect(w, r, "/")
		return
	}

	redirect(w, r, gamePath(g.ID))
}

// View renders the game page. Anyone signed in may watch; only the owner
// gets the controls.
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	data := pages.GameData{
		PageData: layout.PageData{
			Title:  "Game " + string(g.ID),
			Player: player,
			Flash:  middleware.GetFlash(r.Context()),
		},
		Game:    g,
		IsOwner: g.OwnerID == player.ID,
	}
	render(w, r, http.StatusOK, pages.Game(data))
}

// Step lets the chosen strategy place a single piece
func (h *GameHandler) Step(w http.ResponseWriter, r *http.Request) {
	h.autoplay(w, r, 1)
}

// Autoplay lets the chosen strategy place up to the requested number of pieces
func (h *GameHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		redirect(w, r, gamePath(id))
		return
	}

	pieces, err := formInt(r, "pieces", 0)
	if err != nil || pieces < 0 {
		middleware.SetFlash(w, middleware.FlashError, "Pieces must be a positive number")
		redirect(w, r, gamePath(id))
		return
	}

	h.autoplay(w, r, pieces)
}

func (h *GameHandler) autoplay(w http.ResponseWriter, r *http.Request, pieces int) {
	player := middleware.GetPlayer(r.Context())
	id := gameID(r)

	actions, err := h.botService.Autoplay(r.Context(), id, player.ID, r.FormValue("strategy"), pieces)
	if err != nil && len(actions) == 0 {
		middleware.SetFlash(w, middleware.FlashError, "Could not play: "+err.Error())
		redirect(w, r, gamePath(id))
		return
	}
	if err != nil {
		h.logger.Warn("autoplay stopped early",
			slog.String("game_id", string(id)),
			slog.Int("actions", len(actions)),
			slog.Any("error", err),
		)
	}

	middleware.SetFlash(w, middleware.FlashInfo, summarizeActions(actions))
	redirect(w, r, gamePath(id))
}

// Place drops the current piece at the submitted rotation and column
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	id := gameID(r)

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		redirect(w, r, gamePath(id))
		return
	}

	rotations, err := formInt(r, "rotations", 0)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid rotation")
		redirect(w, r, gamePath(id))
		return
	}
	column, err := strconv.Atoi(strings.TrimSpace(r.FormValue("column")))
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid column")
		redirect(w, r, gamePath(id))
		return
	}

	result, err := h.gameController.Place(r.Context(), id, player.ID, rotations, column)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Could not place piece: "+err.Error())
		redirect(w, r, gamePath(id))
		return
	}

	switch {
	case result.GameOver:
		middleware.SetFlash(w, middleware.FlashInfo, "Game over")
	case result.LinesCleared > 0:
		middleware.SetFlash(w, middleware.FlashSuccess, fmt.Sprintf("Cleared %d %s", result.LinesCleared, plural(result.LinesCleared, "line")))
	}
	redirect(w, r, gamePath(id))
}

// Reset restores the starting board and deals fresh pieces
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	id := gameID(r)

	if _, err := h.gameController.Reset(r.Context(), id, player.ID); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Could not reset game: "+err.Error())
		redirect(w, r, gamePath(id))
		return
	}

	middleware.SetFlash(w, middleware.FlashInfo, "Game reset")
	redirect(w, r, gamePath(id))
}

// Abandon gives up on the game
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	id := gameID(r)

	if _, err := h.gameController.Abandon(r.Context(), id, player.ID); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Could not abandon game: "+err.Error())
		redirect(w, r, gamePath(id))
		return
	}

	middleware.SetFlash(w, middleware.FlashInfo, "Game abandoned")
	redirect(w, r, "/")
}

// Events streams live board updates for the game page
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(g.ID), player.ID)
}

func (h *GameHandler) renderLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, model.ErrGameNotFound) {
		renderError(w, r, http.StatusNotFound, "Game not found")
		return
	}
	h.logger.Error("failed to load game", slog.Any("error", err))
	renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func summarizeActions(actions []bot.Action) string {
	placed, lines := 0, 0
	over := false
	for _, a := range actions {
		switch a.Type {
		case bot.ActionPlaced:
			placed++
		case bot.ActionLinesCleared:
			lines += a.LinesCleared
		case bot.ActionGameOver:
			over = true
		}
	}

	msg := fmt.Sprintf("Placed %d %s, cleared %d %s", placed, plural(placed, "piece"), lines, plural(lines, "line"))
	if over {
		msg += ". Game over"
	}
	return msg
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func formInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func gamePath(id model.GameID) string {
	return "/games/" + string(id)
}
