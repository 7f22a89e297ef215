package handler

import (
	"net/http"

	"github.com/mcoot/blockdrop/internal/api/response"
	"github.com/mcoot/blockdrop/internal/services/presets"
)

// PresetHandler lists starting boards
type PresetHandler struct {
	presetService *presets.Service
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(presetService *presets.Service) *PresetHandler {
	return &PresetHandler{presetService: presetService}
}

// List handles GET /api/v1/presets
func (h *PresetHandler) List(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.PresetListFromModel(h.presetService.List()))
}
