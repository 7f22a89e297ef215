package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/blockdrop/internal/api/apierr"
	"github.com/mcoot/blockdrop/internal/middleware"
)

// Recovery turns panics in API handlers into a JSON 500
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
