package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/model"
)

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData is shared by every full page
type PageData struct {
	Title  string
	Player *model.Player
	Flash  *FlashMessage
}

// Base wraps page content in the site chrome
func Base(data PageData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`+
			templ.EscapeString(data.Title)+` - Blockdrop</title>`+
			`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`+
			`<script src="https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"></script>`+
			`<style>`+styles+`</style></head><body>`); err != nil {
			return err
		}
		if err := nav(data.Player).Render(ctx, w); err != nil {
			return err
		}
		if err := Flash(data.Flash).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main>`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func nav(player *model.Player) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := `<nav><a href="/" class="brand">Blockdrop</a>`
		if player != nil {
			out += `<span id="nav-player">` + templ.EscapeString(player.DisplayName) + `</span>` +
				`<form method="post" action="/auth/logout" class="inline"><button type="submit">Log out</button></form>`
		} else {
			out += `<a href="/login">Log in</a> <a href="/register">Register</a>`
		}
		out += `</nav>`
		_, err := io.WriteString(w, out)
		return err
	})
}

// Flash renders a flash message, or nothing
func Flash(flash *FlashMessage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if flash == nil {
			return nil
		}
		_, err := io.WriteString(w, `<div class="flash flash-`+templ.EscapeString(flash.Type)+`">`+
			templ.EscapeString(flash.Message)+`</div>`)
		return err
	})
}

const styles = `body{font-family:sans-serif;margin:0 auto;max-width:960px}
nav{display:flex;gap:1em;padding:.5em 0;border-bottom:1px solid #ccc}
.inline{display:inline}
.flash{padding:.5em;margin:.5em 0}.flash-error{background:#fdd}.flash-success{background:#dfd}.flash-info{background:#ddf}
.board{display:inline-block;border:2px solid #333;background:#111}
.board-row{display:flex}
.cell{width:16px;height:16px;border:1px solid #222}
.cell-I{background:#0ff}.cell-O{background:#ff0}.cell-T{background:#a0f}.cell-S{background:#0f0}
.cell-Z{background:#f00}.cell-J{background:#00f}.cell-L{background:#f80}
.game{display:flex;gap:2em}`
