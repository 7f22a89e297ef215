package sse

import (
	"bytes"
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/web/templates/components"
)

// Renderer converts game events to HTML fragments for SSE
type Renderer struct{}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// WrapForOOBSwap wraps HTML in a div with hx-swap-oob for out-of-band swaps
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + id + `" hx-swap-oob="true">` + html + `</div>`
}

// EventData is one SSE event ready to broadcast
type EventData struct {
	EventName string
	HTML      string
}

func render(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderGameEvent converts a game event to the SSE events viewers need.
// game must reflect the state after the event.
func (r *Renderer) RenderGameEvent(ctx context.Context, event model.Event, game *model.Game) ([]EventData, error) {
	switch event.Type {
	case model.EventGameCreated, model.EventPiecePlaced, model.EventGameReset:
		boardHTML, err := render(ctx, components.Board(game))
		if err != nil {
			return nil, err
		}
		statusHTML, err := render(ctx, components.Status(game))
		if err != nil {
			return nil, err
		}
		return []EventData{{
			EventName: "board-update",
			HTML:      WrapForOOBSwap("game-board", boardHTML) + WrapForOOBSwap("game-status", statusHTML),
		}}, nil

	case model.EventGameOver, model.EventGameAbandoned:
		statusHTML, err := render(ctx, components.Status(game))
		if err != nil {
			return nil, err
		}
		controlsHTML, err := render(ctx, components.Controls(game))
		if err != nil {
			return nil, err
		}
		return []EventData{{
			EventName: "game-over",
			HTML:      WrapForOOBSwap("game-status", statusHTML) + WrapForOOBSwap("game-controls", controlsHTML),
		}}, nil
	}

	// lines_cleared is already reflected by the piece_placed board update
	return nil, nil
}
