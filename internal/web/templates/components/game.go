package components

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/model"
)

// Board renders the playfield. Pages place it inside #game-board so event
// updates can swap it out of band. Occupied cells carry the piece letter as a
// class so each piece keeps its colour.
func Board(game *model.Game) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		b := game.Board
		sb.WriteString(`<div class="board" data-rows="` + strconv.Itoa(b.Rows) +
			`" data-cols="` + strconv.Itoa(b.Cols) + `">`)
		for row := range b.Rows {
			sb.WriteString(`<div class="board-row">`)
			for col := range b.Cols {
				c := b.Cells[row][col]
				if c == model.Empty {
					sb.WriteString(`<span class="cell empty"></span>`)
					continue
				}
				letter := model.PieceType(c).String()
				sb.WriteString(`<span class="cell filled cell-` + letter + `" data-row="` + strconv.Itoa(row) +
					`" data-col="` + strconv.Itoa(col) + `"></span>`)
			}
			sb.WriteString(`</div>`)
		}
		sb.WriteString(`</div>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// Status renders the score panel
func Status(game *model.Game) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<div class="status" data-state="` + string(game.State) + `"><dl>`)
		item := func(key, label, value string) {
			sb.WriteString(`<dt>` + label + `</dt><dd class="` + key + `">` + templ.EscapeString(value) + `</dd>`)
		}
		item("state", "State", string(game.State))
		item("score", "Score", strconv.Itoa(game.Score))
		item("lines", "Lines", strconv.Itoa(game.LinesCleared))
		item("pieces", "Pieces", strconv.Itoa(game.PiecesPlaced))
		item("current", "Current", game.Current.String())
		item("next", "Next", game.Next.String())
		if game.Preset != "" {
			item("preset", "Preset", game.Preset)
		}
		if p := game.LastPlacement; p != nil {
			item("last", "Last move", p.Piece.String()+" col "+strconv.Itoa(p.Column)+
				" rot "+strconv.Itoa(p.Rotations)+" cost "+strconv.Itoa(p.Cost))
		}
		sb.WriteString(`</dl>`)
		switch game.State {
		case model.GameStateOver:
			sb.WriteString(`<p class="game-over">Game over: no room for ` + game.Current.String() + `</p>`)
		case model.GameStateAbandoned:
			sb.WriteString(`<p class="game-over">Game abandoned</p>`)
		}
		sb.WriteString(`</div>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// Controls renders the action forms for the game owner
func Controls(game *model.Game) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		base := "/games/" + templ.EscapeString(string(game.ID))
		var sb strings.Builder
		sb.WriteString(`<div class="controls">`)
		if game.State == model.GameStatePlaying {
			sb.WriteString(`<form method="post" action="` + base + `/step" class="step-form">` +
				strategySelect() + `<button type="submit">Step</button></form>`)
			sb.WriteString(`<form method="post" action="` + base + `/autoplay" class="autoplay-form">` +
				strategySelect() +
				`<input type="number" name="pieces" value="10" min="1">` +
				`<button type="submit">Autoplay</button></form>`)
			sb.WriteString(`<form method="post" action="` + base + `/place" class="place-form">` +
				`<input type="number" name="rotations" value="0" min="0" max="3">` +
				`<input type="number" name="column" value="` + strconv.Itoa(game.SpawnColumn()) + `" min="0">` +
				`<button type="submit">Place</button></form>`)
		}
		if game.State != model.GameStateAbandoned {
			sb.WriteString(`<form method="post" action="` + base + `/reset" class="reset-form"><button type="submit">Reset</button></form>`)
		}
		if game.State == model.GameStatePlaying {
			sb.WriteString(`<form method="post" action="` + base + `/abandon" class="abandon-form"><button type="submit">Abandon</button></form>`)
		}
		sb.WriteString(`</div>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func strategySelect() string {
	out := `<select name="strategy">`
	for _, s := range model.ValidBotStrategies() {
		out += `<option value="` + s + `">` + model.BotStrategyDisplayName(s) + `</option>`
	}
	return out + `</select>`
}

// GameList renders links to a player's games, newest first
func GameList(games []*model.Game) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<ul id="game-list">`)
		for i := len(games) - 1; i >= 0; i-- {
			g := games[i]
			id := templ.EscapeString(string(g.ID))
			sb.WriteString(`<li><a href="/games/` + id + `">` + id + `</a> ` +
				string(g.State) + `, score ` + strconv.Itoa(g.Score) + `</li>`)
		}
		sb.WriteString(`</ul>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}
