package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/web/templates/components"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
	Next    string
	Games   []*model.Game
	Presets []model.Preset
}

// Home renders the landing page: a guest form when signed out, a new game
// form and the player's games when signed in
func Home(data HomeData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Player == nil {
			_, err := io.WriteString(w, `<h1>Blockdrop</h1>`+
				`<form method="post" action="/auth/guest" id="guest-form">`+
				`<input type="hidden" name="next" value="`+templ.EscapeString(data.Next)+`">`+
				`<label>Display name <input type="text" name="display_name" required maxlength="32"></label>`+
				`<button type="submit">Play as guest</button></form>`)
			return err
		}

		out := `<h1>Welcome, ` + templ.EscapeString(data.Player.DisplayName) + `</h1>` +
			`<form method="post" action="/games" id="new-game-form">` +
			`<label>Rows <input type="number" name="rows" value="` + strconv.Itoa(model.DefaultRows) +
			`" min="` + strconv.Itoa(model.MinRows) + `" max="` + strconv.Itoa(model.MaxRows) + `"></label>` +
			`<label>Columns <input type="number" name="cols" value="` + strconv.Itoa(model.DefaultCols) +
			`" min="` + strconv.Itoa(model.MinCols) + `" max="` + strconv.Itoa(model.MaxCols) + `"></label>` +
			`<label>Preset <select name="preset"><option value="">Empty board</option>`
		for _, p := range data.Presets {
			name := templ.EscapeString(p.Name)
			out += `<option value="` + name + `">` + name + `</option>`
		}
		out += `</select></label><button type="submit">New game</button></form><h2>Your games</h2>`
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
		return components.GameList(data.Games).Render(ctx, w)
	}))
}

// LoginData holds data for the login page
type LoginData struct {
	layout.PageData
	Username string
	Error    string
	Next     string
}

// Login renders the login form
func Login(data LoginData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := `<h1>Log in</h1>`
		if data.Error != "" {
			out += `<p class="error">` + templ.EscapeString(data.Error) + `</p>`
		}
		out += `<form method="post" action="/login" id="login-form">` +
			`<input type="hidden" name="next" value="` + templ.EscapeString(data.Next) + `">` +
			`<label>Username <input type="text" name="username" value="` + templ.EscapeString(data.Username) + `"></label>` +
			`<label>Password <input type="password" name="password"></label>` +
			`<button type="submit">Log in</button></form>`
		_, err := io.WriteString(w, out)
		return err
	}))
}

// RegisterData holds data for the registration page
type RegisterData struct {
	layout.PageData
	Username    string
	DisplayName string
	Error       string
	FieldErrors map[string]string
}

// Register renders the registration form
func Register(data RegisterData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		field := func(name, label, kind, value string) string {
			out := `<label>` + label + ` <input type="` + kind + `" name="` + name + `" value="` + templ.EscapeString(value) + `"></label>`
			if msg, ok := data.FieldErrors[name]; ok {
				out += `<span class="field-error" data-field="` + name + `">` + templ.EscapeString(msg) + `</span>`
			}
			return out
		}
		out := `<h1>Register</h1>`
		if data.Error != "" {
			out += `<p class="error">` + templ.EscapeString(data.Error) + `</p>`
		}
		out += `<form method="post" action="/register" id="register-form">` +
			field("username", "Username", "text", data.Username) +
			field("display_name", "Display name", "text", data.DisplayName) +
			field("password", "Password", "password", "") +
			field("password_confirm", "Confirm password", "password", "") +
			`<button type="submit">Register</button></form>`
		_, err := io.WriteString(w, out)
		return err
	}))
}

// GameData holds data for the game page
type GameData struct {
	layout.PageData
	Game    *model.Game
	IsOwner bool
}

// Game renders the board view. The board and status panels subscribe to the
// game's event stream and are swapped in place on every update.
func Game(data GameData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := templ.EscapeString(string(data.Game.ID))
		if _, err := io.WriteString(w, `<h1>Game `+id+`</h1>`+
			`<div class="game" hx-ext="sse" sse-connect="/games/`+id+`/events">`+
			`<div sse-swap="board-update,game-over" hx-swap="none"></div>`); err != nil {
			return err
		}
		if err := wrap(ctx, w, "game-board", components.Board(data.Game)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="side">`); err != nil {
			return err
		}
		if err := wrap(ctx, w, "game-status", components.Status(data.Game)); err != nil {
			return err
		}
		if data.IsOwner {
			if err := wrap(ctx, w, "game-controls", components.Controls(data.Game)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	}))
}

func wrap(ctx context.Context, w io.Writer, id string, c templ.Component) error {
	if _, err := io.WriteString(w, `<div id="`+id+`">`); err != nil {
		return err
	}
	if err := c.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, `</div>`)
	return err
}

// Error renders a standalone error page
func Error(data layout.PageData, status int, message string) templ.Component {
	return layout.Base(data, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>`+strconv.Itoa(status)+`</h1><p class="error">`+
			templ.EscapeString(message)+`</p><p><a href="/">Return to home</a></p>`)
		return err
	}))
}
