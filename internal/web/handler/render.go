package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/web/middleware"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
	"github.com/mcoot/blockdrop/internal/web/templates/pages"
)

// render writes a full page
func render(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// renderError writes the error page with the given status
func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := layout.PageData{
		Title:  http.StatusText(status),
		Player: middleware.GetPlayer(r.Context()),
	}
	render(w, r, status, pages.Error(data, status, message))
}

// redirect sends the browser to path. HTMX requests get an HX-Redirect so
// the client navigates instead of swapping the response in.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// safeNext returns next when it is a local path, otherwise "/"
func safeNext(next string) string {
	if len(next) > 1 && next[0] == '/' && next[1] != '/' && next[1] != '\\' {
		return next
	}
	return "/"
}
