package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockdrop/internal/api/middleware"
	"github.com/mcoot/blockdrop/internal/api/request"
	"github.com/mcoot/blockdrop/internal/api/response"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/bot"
	"github.com/mcoot/blockdrop/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	botService     *bot.Service
	defaults       model.GameConfig
}

// NewGameHandler creates a new game handler. defaults fills in dimensions a
// create request leaves out.
func NewGameHandler(gameController *game.Controller, botService *bot.Service, defaults model.GameConfig) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
		defaults:       defaults,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateGameRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		WriteError(w, err)
		return
	}

	cfg := h.defaults
	if req.Rows != 0 {
		cfg.Rows = req.Rows
	}
	if req.Cols != 0 {
		cfg.Cols = req.Cols
	}

	g, err := h.gameController.CreateGame(r.Context(), player.ID, cfg, req.Preset)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/games/"+string(g.ID), response.GameFromModel(g))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	games, err := h.gameController.ListGames(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameListFromModel(games))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Place handles POST /api/v1/games/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.PlaceRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		WriteError(w, err)
		return
	}
	if req.Column == nil {
		WriteError(w, NewInvalidRequestError("column is required"))
		return
	}

	result, err := h.gameController.Place(r.Context(), gameID(r), player.ID, req.Rotations, *req.Column)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaceResponse{
		Game:         response.GameFromModel(result.Game),
		Placement:    response.PlacementFromModel(result.Placement),
		LinesCleared: result.LinesCleared,
		GameOver:     result.GameOver,
	})
}

// Autoplay handles POST /api/v1/games/{id}/autoplay
func (h *GameHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := gameID(r)

	var req request.AutoplayRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		WriteError(w, err)
		return
	}
	if req.Pieces < 0 {
		WriteError(w, NewInvalidRequestError("pieces must not be negative"))
		return
	}

	actions, err := h.botService.Autoplay(r.Context(), id, player.ID, req.Strategy, req.Pieces)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AutoplayResponseFrom(g, actions))
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.Reset(r.Context(), gameID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if _, err := h.gameController.Abandon(r.Context(), gameID(r), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
