package handler

import (
	"net/http"

	"github.com/mcoot/blockdrop/internal/api/request"
	"github.com/mcoot/blockdrop/internal/api/response"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/board"
	"github.com/mcoot/blockdrop/internal/services/bot"
	"github.com/mcoot/blockdrop/internal/services/placement"
)

// AdviseHandler answers one-off "where does this piece go" questions about
// a board the caller supplies
type AdviseHandler struct {
	botService       *bot.Service
	boardService     *board.Service
	placementService *placement.Service
}

// NewAdviseHandler creates a new advise handler
func NewAdviseHandler(botService *bot.Service, boardService *board.Service, placementService *placement.Service) *AdviseHandler {
	return &AdviseHandler{
		botService:       botService,
		boardService:     boardService,
		placementService: placementService,
	}
}

// Advise handles POST /api/v1/advise
func (h *AdviseHandler) Advise(w http.ResponseWriter, r *http.Request) {
	var req request.AdviseRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	piece, err := model.ParsePieceType(req.Piece)
	if err != nil {
		WriteError(w, err)
		return
	}

	b, err := h.boardService.Parse(req.Board)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := (model.GameConfig{Rows: b.Rows, Cols: b.Cols}).Validate(); err != nil {
		WriteError(w, err)
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = model.DefaultBotStrategy
	}

	advice, err := h.botService.Advise(b, piece, strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	var candidates []placement.Candidate
	if req.Explain {
		candidates = h.placementService.SearchAll(b, piece).Candidates
	}

	response.JSON(w, http.StatusOK, response.AdviseResponseFrom(advice, strategy, candidates))
}
