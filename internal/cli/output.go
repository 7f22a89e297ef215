package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mcoot/blockdrop/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// HealthResult is the response for GET /health
type HealthResult struct {
	Status string `json:"status"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}
	o.printText(data)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(o.w, msg)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case response.AuthResponse:
		o.printPlayer(v.Player)
		fmt.Fprintf(o.w, "Token: %s\n", v.SessionToken)
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.PlaceResponse:
		o.printPlacement(v.Placement)
		if v.LinesCleared > 0 {
			fmt.Fprintf(o.w, "Cleared %d line(s)\n", v.LinesCleared)
		}
		if v.GameOver {
			fmt.Fprintln(o.w, "Game over")
		}
		o.printGame(v.Game)
	case response.AutoplayResponse:
		o.printActions(v.Actions)
		o.printGame(v.Game)
	case response.AdviseResponse:
		o.printAdvice(v)
	case response.PresetList:
		o.printPresets(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p response.Player) {
	guest := "no"
	if p.IsGuest {
		guest = "yes"
	}
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(o.w, "Guest: %s\n", guest)
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s (%s)\n", g.ID, g.State)
	if g.Preset != "" {
		fmt.Fprintf(o.w, "Preset: %s\n", g.Preset)
	}
	fmt.Fprintf(o.w, "Score: %d  Lines: %d  Pieces: %d\n", g.Score, g.LinesCleared, g.PiecesPlaced)
	fmt.Fprintf(o.w, "Current: %s  Next: %s\n", g.Current, g.Next)
	o.printBoard(g.Board)
}

func (o *Output) printBoard(b response.Board) {
	edge := "+" + strings.Repeat("-", b.Cols) + "+"
	fmt.Fprintln(o.w, edge)
	for _, row := range b.Cells {
		fmt.Fprintln(o.w, "|"+row+"|")
	}
	fmt.Fprintln(o.w, edge)
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATE\tSIZE\tSCORE\tPIECES")
	for _, g := range l.Games {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\t%d\n", g.ID, g.State, g.Board.Rows, g.Board.Cols, g.Score, g.PiecesPlaced)
	}
	_ = tw.Flush()
}

func (o *Output) printPlacement(p response.Placement) {
	fmt.Fprintf(o.w, "Placed %s at column %d, rotations %d, row %d, cost %d\n",
		p.Piece, p.Column, p.Rotations, p.RestingRow, p.Cost)
}

func (o *Output) printActions(actions []response.Action) {
	for _, a := range actions {
		switch {
		case a.Placement != nil:
			o.printPlacement(*a.Placement)
		case a.LinesCleared > 0:
			fmt.Fprintf(o.w, "Cleared %d line(s), score %d\n", a.LinesCleared, a.Score)
		default:
			fmt.Fprintf(o.w, "%s, score %d\n", strings.ReplaceAll(a.Type, "_", " "), a.Score)
		}
	}
}

func (o *Output) printAdvice(a response.AdviseResponse) {
	if !a.Found {
		fmt.Fprintf(o.w, "No placement for %s (fallback column %d)\n", a.Piece, a.Column)
	} else {
		fmt.Fprintf(o.w, "%s: column %d, rotations %d, row %d, cost %d (%s)\n",
			a.Piece, a.Column, a.Rotations, a.RestingRow, a.Cost, a.Strategy)
	}
	if len(a.Candidates) == 0 {
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROT\tCOL\tROW\tCOST")
	for _, c := range a.Candidates {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", c.Rotations, c.Column, c.RestingRow, c.Cost)
	}
	_ = tw.Flush()
}

func (o *Output) printPresets(l response.PresetList) {
	for _, p := range l.Presets {
		if p.Description == "" {
			fmt.Fprintln(o.w, p.Name)
			continue
		}
		fmt.Fprintf(o.w, "%s - %s\n", p.Name, p.Description)
	}
}
