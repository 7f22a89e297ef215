package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/blockdrop/internal/middleware"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
	"github.com/mcoot/blockdrop/internal/web/templates/pages"
)

// Recovery turns panics in page handlers into the HTML error page
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, _ any) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		data := layout.PageData{Title: "Error", Player: GetPlayer(r.Context())}
		_ = pages.Error(data, http.StatusInternalServerError, "Something went wrong. Please try again later.").
			Render(r.Context(), w)
	})
}
