// Package server assembles the JSON API and the web pages into one handler.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockdrop/internal/api"
	"github.com/mcoot/blockdrop/internal/factory"
	"github.com/mcoot/blockdrop/internal/web"
)

// NewHandler routes /api/v1 to the API and everything else to the web pages
func NewHandler(app *factory.App, logger *slog.Logger, staticDir string) http.Handler {
	r := mux.NewRouter()

	api.Mount(r, api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		GameController:    app.GameController,
		BotService:        app.BotService,
		BoardService:      app.BoardService,
		PlacementService:  app.PlacementService,
		PresetService:     app.PresetService,
		DefaultGameConfig: app.GameConfig,
	})

	web.Mount(r, web.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		GameController:    app.GameController,
		BotService:        app.BotService,
		PresetService:     app.PresetService,
		HubManager:        app.HubManager,
		DefaultGameConfig: app.GameConfig,
		StaticDir:         staticDir,
	})

	return r
}
