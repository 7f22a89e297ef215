package response

import (
	"time"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/auth"
	"github.com/mcoot/blockdrop/internal/services/board"
	"github.com/mcoot/blockdrop/internal/services/bot"
	"github.com/mcoot/blockdrop/internal/services/placement"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Board is a board in text form, top row first
type Board struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells []string `json:"cells"`
}

// BoardFromModel renders a model.Board
func BoardFromModel(b *model.Board) Board {
	return Board{
		Rows:  b.Rows,
		Cols:  b.Cols,
		Cells: board.New().Render(b),
	}
}

// Placement is a chosen or applied placement
type Placement struct {
	Piece      string `json:"piece"`
	Found      bool   `json:"found"`
	Column     int    `json:"column"`
	Rotations  int    `json:"rotations"`
	RestingRow int    `json:"resting_row"`
	Cost       int    `json:"cost"`
}

// PlacementFromModel converts a model.Placement
func PlacementFromModel(p model.Placement) Placement {
	return Placement{
		Piece:      p.Piece.String(),
		Found:      p.Found,
		Column:     p.Column,
		Rotations:  p.Rotations,
		RestingRow: p.RestingRow,
		Cost:       p.Cost,
	}
}

// Candidate is one legal trial reported by an explained advice request
type Candidate struct {
	Rotations  int `json:"rotations"`
	Column     int `json:"column"`
	RestingRow int `json:"resting_row"`
	Cost       int `json:"cost"`
}

// AdviseResponse is the response for POST /advise
type AdviseResponse struct {
	Placement
	Strategy   string      `json:"strategy"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// AdviseResponseFrom builds an AdviseResponse. Candidates are only included
// when explain was requested.
func AdviseResponseFrom(p model.Placement, strategy string, candidates []placement.Candidate) AdviseResponse {
	resp := AdviseResponse{
		Placement: PlacementFromModel(p),
		Strategy:  strategy,
	}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, Candidate(c))
	}
	return resp
}

// Game represents a game in API responses
type Game struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	State         string     `json:"state"`
	Preset        string     `json:"preset,omitempty"`
	Board         Board      `json:"board"`
	Current       string     `json:"current"`
	Next          string     `json:"next"`
	Score         int        `json:"score"`
	LinesCleared  int        `json:"lines_cleared"`
	PiecesPlaced  int        `json:"pieces_placed"`
	LastPlacement *Placement `json:"last_placement,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	resp := Game{
		ID:           string(g.ID),
		OwnerID:      string(g.OwnerID),
		State:        string(g.State),
		Preset:       g.Preset,
		Board:        BoardFromModel(g.Board),
		Current:      g.Current.String(),
		Next:         g.Next.String(),
		Score:        g.Score,
		LinesCleared: g.LinesCleared,
		PiecesPlaced: g.PiecesPlaced,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	if g.LastPlacement != nil {
		p := PlacementFromModel(*g.LastPlacement)
		resp.LastPlacement = &p
	}
	return resp
}

// GameList is the response for GET /games
type GameList struct {
	Games []Game `json:"games"`
}

// GameListFromModel converts a slice of games
func GameListFromModel(games []*model.Game) GameList {
	resp := GameList{Games: make([]Game, 0, len(games))}
	for _, g := range games {
		resp.Games = append(resp.Games, GameFromModel(g))
	}
	return resp
}

// PlaceResponse is the response for POST /games/{id}/place
type PlaceResponse struct {
	Game         Game      `json:"game"`
	Placement    Placement `json:"placement"`
	LinesCleared int       `json:"lines_cleared"`
	GameOver     bool      `json:"game_over"`
}

// Action is one step taken by autoplay
type Action struct {
	Type         string     `json:"type"`
	Placement    *Placement `json:"placement,omitempty"`
	LinesCleared int        `json:"lines_cleared,omitempty"`
	Score        int        `json:"score"`
}

// AutoplayResponse is the response for POST /games/{id}/autoplay
type AutoplayResponse struct {
	Game    Game     `json:"game"`
	Actions []Action `json:"actions"`
}

// AutoplayResponseFrom converts the bot's actions and the final game
func AutoplayResponseFrom(g *model.Game, actions []bot.Action) AutoplayResponse {
	resp := AutoplayResponse{
		Game:    GameFromModel(g),
		Actions: make([]Action, 0, len(actions)),
	}
	for _, a := range actions {
		action := Action{
			Type:         string(a.Type),
			LinesCleared: a.LinesCleared,
			Score:        a.Score,
		}
		if a.Type == bot.ActionPlaced {
			p := PlacementFromModel(a.Placement)
			action.Placement = &p
		}
		resp.Actions = append(resp.Actions, action)
	}
	return resp
}

// Preset represents a starting board
type Preset struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Rows        []string `json:"rows"`
}

// PresetList is the response for GET /presets
type PresetList struct {
	Presets []Preset `json:"presets"`
}

// PresetListFromModel converts loaded presets
func PresetListFromModel(presets []model.Preset) PresetList {
	resp := PresetList{Presets: make([]Preset, 0, len(presets))}
	for _, p := range presets {
		resp.Presets = append(resp.Presets, Preset{
			Name:        p.Name,
			Description: p.Description,
			Rows:        p.Rows,
		})
	}
	return resp
}
