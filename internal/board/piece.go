package board

import "fmt"

type PieceType uint8

const (
	None PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

// Piece is a (type, color) pair. The zero value is an empty tile.
type Piece struct {
	Type  PieceType
	Color Color
}

var NoPiece = Piece{}

var pieceLetters = [...]byte{None: 0, Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k'}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p.Type == None
}

// Char returns the FEN letter of the piece, uppercase for White. Empty tiles return 0.
func (p Piece) Char() byte {
	ch := pieceLetters[p.Type]
	if ch != 0 && p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	return string(p.Char())
}

// PieceFromChar maps a FEN letter to a piece.
func PieceFromChar(ch byte) (Piece, bool) {
	color := Black
	if ch >= 'A' && ch <= 'Z' {
		color = White
		ch += 'a' - 'A'
	}
	for t, letter := range pieceLetters {
		if letter != 0 && letter == ch {
			return Piece{Type: PieceType(t), Color: color}, true
		}
	}
	return NoPiece, false
}

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

// String returns the FEN side-to-move letter.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

// Name returns the upper-case wire name: WHITE, BLACK or NONE.
func (c Color) Name() string {
	switch c {
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	default:
		return "NONE"
	}
}

// ParseColor accepts a wire name or a FEN letter.
func ParseColor(s string) (Color, error) {
	switch s {
	case "WHITE", "w":
		return White, nil
	case "BLACK", "b":
		return Black, nil
	case "NONE", "-":
		return NoColor, nil
	default:
		return NoColor, fmt.Errorf("unknown color %q", s)
	}
}
