package board

import (
	"fmt"
	"strings"

	"github.com/mcoot/blockdrop/internal/model"
)

// EmptyRune is the text form of an empty cell
const EmptyRune = '.'

// Service applies the board rules: locking pieces, clearing rows and
// converting boards to and from text
type Service struct{}

// New creates a new BoardService
func New() *Service {
	return &Service{}
}

// Lock writes piece p at rotation r anchored at (row, col) into the board.
// Every cell must be on the board and empty; on error the board is unchanged.
func (s *Service) Lock(board *model.Board, p model.PieceType, r model.Rotation, row, col int) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", model.ErrInvalidPiece, p)
	}
	cells := model.ShapeOf(p, r).At(row, col)
	for _, pos := range cells {
		if !board.InBounds(pos) {
			return fmt.Errorf("%w: %s at (%d, %d)", model.ErrOutOfBounds, p, pos.Row, pos.Col)
		}
		if !board.IsEmpty(pos.Row, pos.Col) {
			return fmt.Errorf("%w: (%d, %d)", model.ErrCellOccupied, pos.Row, pos.Col)
		}
	}
	for _, pos := range cells {
		board.Cells[pos.Row][pos.Col] = p.Marker()
	}
	return nil
}

// ClearFullRows removes every full row, shifts the rows above down and
// fills the top with empty rows. Returns the number of rows removed.
func (s *Service) ClearFullRows(board *model.Board) int {
	write := board.Rows - 1
	for read := board.Rows - 1; read >= 0; read-- {
		if board.IsRowFull(read) {
			continue
		}
		if write != read {
			copy(board.Cells[write], board.Cells[read])
		}
		write--
	}
	cleared := write + 1
	for row := 0; row <= write; row++ {
		for col := range board.Cells[row] {
			board.Cells[row][col] = model.Empty
		}
	}
	return cleared
}

// Render returns the board as text, one string per row, top first
func (s *Service) Render(board *model.Board) []string {
	rows := make([]string, board.Rows)
	var sb strings.Builder
	for row := 0; row < board.Rows; row++ {
		sb.Reset()
		for _, c := range board.Cells[row] {
			sb.WriteRune(CellRune(c))
		}
		rows[row] = sb.String()
	}
	return rows
}

// CellRune returns the text form of a single cell
func CellRune(c model.Cell) rune {
	if c == model.Empty {
		return EmptyRune
	}
	return rune(model.PieceType(c).String()[0])
}

// Parse builds a board from text rows. Every row must have the same width;
// '.' is empty, a piece letter is that piece's marker and '#' is a generic
// occupied cell.
func (s *Service) Parse(rows []string) (*model.Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", model.ErrInvalidBoard)
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: empty row", model.ErrInvalidBoard)
	}

	board := model.NewBoard(len(rows), cols)
	for row, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", model.ErrInvalidBoard, row, len(line), cols)
		}
		for col, ch := range line {
			c, err := parseCell(ch)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			board.Cells[row][col] = c
		}
	}
	return board, nil
}

// ParseSized parses rows and checks they match the given dimensions
func (s *Service) ParseSized(rows []string, cfg model.GameConfig) (*model.Board, error) {
	board, err := s.Parse(rows)
	if err != nil {
		return nil, err
	}
	if board.Rows != cfg.Rows || board.Cols != cfg.Cols {
		return nil, fmt.Errorf("%w: got %dx%d, expected %dx%d", model.ErrInvalidBoard, board.Rows, board.Cols, cfg.Rows, cfg.Cols)
	}
	return board, nil
}

func parseCell(ch rune) (model.Cell, error) {
	switch ch {
	case EmptyRune, ' ':
		return model.Empty, nil
	case '#':
		return model.PieceI.Marker(), nil
	}
	p, err := model.ParsePieceType(string(ch))
	if err != nil {
		return model.Empty, fmt.Errorf("%w: unknown cell %q", model.ErrInvalidBoard, ch)
	}
	return p.Marker(), nil
}

// FullRows returns the indexes of every full row, top first
func (s *Service) FullRows(board *model.Board) []int {
	rows := []int{}
	for row := 0; row < board.Rows; row++ {
		if board.IsRowFull(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Interface for dependency injection
type ServiceInterface interface {
	Lock(board *model.Board, p model.PieceType, r model.Rotation, row, col int) error
	ClearFullRows(board *model.Board) int
	Render(board *model.Board) []string
	Parse(rows []string) (*model.Board, error)
	ParseSized(rows []string, cfg model.GameConfig) (*model.Board, error)
	FullRows(board *model.Board) []int
}

var _ ServiceInterface = (*Service)(nil)
