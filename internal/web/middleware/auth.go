package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mcoot/blockdrop/internal/model"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session"

type contextKey string

const (
	playerContextKey contextKey = "player"
)

// PlayerLookup resolves a session token to its player
type PlayerLookup interface {
	GetPlayer(token string) (*model.Player, error)
}

// GetPlayer retrieves the signed-in player from the request context.
// Returns nil when nobody is signed in.
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// Auth returns middleware that requires a session. Anonymous visitors are
// sent to the home page with a next parameter pointing back here.
func Auth(players PlayerLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := playerFromCookie(r, players)
			if player == nil {
				http.Redirect(w, r, "/?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the player when there is a valid session and lets
// the request through either way
func OptionalAuth(players PlayerLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := playerFromCookie(r, players)
			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func playerFromCookie(r *http.Request, players PlayerLookup) *model.Player {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	player, err := players.GetPlayer(cookie.Value)
	if err != nil {
		return nil
	}
	return player
}
