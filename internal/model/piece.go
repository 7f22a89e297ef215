package model

import (
	"fmt"
	"strings"
)

// PieceType is one of the 7 canonical tetrominoes
type PieceType uint8

const (
	PieceI PieceType = iota + 1
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// AllPieceTypes lists every piece in marker order
var AllPieceTypes = [7]PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

// RotationCount is the number of discrete rotation states per piece
const RotationCount = 4

// CellsPerPiece is the number of occupied cells in every piece at every rotation
const CellsPerPiece = 4

// Valid returns true for the 7 known piece types
func (p PieceType) Valid() bool {
	return p >= PieceI && p <= PieceL
}

// Marker returns the board cell value used for locked cells of this piece
func (p PieceType) Marker() Cell {
	return Cell(p)
}

func (p PieceType) String() string {
	switch p {
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	default:
		return "?"
	}
}

// MarshalText encodes the piece as its letter. The zero value encodes as
// an empty string.
func (p PieceType) MarshalText() ([]byte, error) {
	if p == 0 {
		return []byte{}, nil
	}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPiece, p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a piece letter
func (p *PieceType) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = 0
		return nil
	}
	parsed, err := ParsePieceType(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePieceType converts a letter (case-insensitive) to a PieceType
func ParsePieceType(s string) (PieceType, error) {
	for _, p := range AllPieceTypes {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPiece, s)
}

// Rotation is a rotation index in [0, RotationCount)
type Rotation uint8

// Next returns the rotation one clockwise step further
func (r Rotation) Next() Rotation {
	return (r + 1) % RotationCount
}

// Offset is a cell position relative to a piece's anchor
type Offset struct {
	Col int
	Row int
}

// Shape is the geometry of a piece at one rotation
type Shape struct {
	Cells  [CellsPerPiece]Offset
	MinCol int
	MaxCol int
	MinRow int
	MaxRow int
}

// Width is the number of columns the shape spans
func (s Shape) Width() int {
	return s.MaxCol - s.MinCol + 1
}

// Height is the number of rows the shape spans
func (s Shape) Height() int {
	return s.MaxRow - s.MinRow + 1
}

// At returns the absolute board positions of the shape anchored at (row, col)
func (s Shape) At(row, col int) [CellsPerPiece]Position {
	var out [CellsPerPiece]Position
	for i, o := range s.Cells {
		out[i] = Position{Row: row + o.Row, Col: col + o.Col}
	}
	return out
}

// Spawn orientations, anchored on the rotation pivot. Rows grow downwards.
var baseShapes = map[PieceType][CellsPerPiece]Offset{
	PieceI: {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	PieceO: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	PieceT: {{0, -1}, {-1, 0}, {0, 0}, {1, 0}},
	PieceS: {{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
	PieceZ: {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	PieceJ: {{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
	PieceL: {{1, -1}, {-1, 0}, {0, 0}, {1, 0}},
}

// shapes is the (type, rotation) lookup table, indexed by PieceType
var shapes = buildShapes()

func buildShapes() [PieceL + 1][RotationCount]Shape {
	var table [PieceL + 1][RotationCount]Shape
	for _, p := range AllPieceTypes {
		cells := baseShapes[p]
		for r := 0; r < RotationCount; r++ {
			table[p][r] = newShape(cells)
			if p == PieceO {
				continue
			}
			// clockwise quarter turn with rows pointing down: (c, r) -> (-r, c)
			for i, o := range cells {
				cells[i] = Offset{Col: -o.Row, Row: o.Col}
			}
		}
	}
	return table
}

func newShape(cells [CellsPerPiece]Offset) Shape {
	s := Shape{
		Cells:  cells,
		MinCol: cells[0].Col,
		MaxCol: cells[0].Col,
		MinRow: cells[0].Row,
		MaxRow: cells[0].Row,
	}
	for _, o := range cells[1:] {
		s.MinCol = min(s.MinCol, o.Col)
		s.MaxCol = max(s.MaxCol, o.Col)
		s.MinRow = min(s.MinRow, o.Row)
		s.MaxRow = max(s.MaxRow, o.Row)
	}
	return s
}

// ShapeOf returns the geometry of piece p at rotation r.
// Invalid pieces yield the zero Shape; callers validate with PieceType.Valid.
func ShapeOf(p PieceType, r Rotation) Shape {
	if !p.Valid() {
		return Shape{}
	}
	return shapes[p][r%RotationCount]
}

// Piece is a piece instance: a type, a rotation and an anchor on the board
type Piece struct {
	Type     PieceType
	Rotation Rotation
	Row      int
	Col      int
}

// Shape returns the piece's geometry at its current rotation
func (p Piece) Shape() Shape {
	return ShapeOf(p.Type, p.Rotation)
}

// Cells returns the absolute positions of the piece's 4 cells
func (p Piece) Cells() [CellsPerPiece]Position {
	return p.Shape().At(p.Row, p.Col)
}

// RotateRight advances the rotation one clockwise step
func (p *Piece) RotateRight() {
	p.Rotation = p.Rotation.Next()
}

// RotateRightMultiple applies n clockwise steps
func (p *Piece) RotateRightMultiple(n int) {
	for range n {
		p.RotateRight()
	}
}
