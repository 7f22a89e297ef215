package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicResponder writes the response for a request whose handler panicked.
// The API answers with JSON and the web pages with an HTML error page.
type PanicResponder func(w http.ResponseWriter, r *http.Request, recovered any)

// Recovery logs the panic with its stack and hands the response to respond
func Recovery(logger *slog.Logger, respond PanicResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				logger.Error("panic recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				respond(w, r, recovered)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
