package board

import (
	"fmt"
	"strings"
)

// CastleRights holds the four castling permissions.
type CastleRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// String returns the FEN castling field.
func (r CastleRights) String() string {
	var sb strings.Builder
	if r.WhiteKingside {
		sb.WriteByte('K')
	}
	if r.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if r.BlackKingside {
		sb.WriteByte('k')
	}
	if r.BlackQueenside {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Position is the full state of one chess position plus derived caches.
// Copying a Position by value shares only the repetition table; use Clone
// for an independent copy.
type Position struct {
	tiles       [8][8]Piece // [rank][file]
	sideToMove  Color
	castle      CastleRights
	enPassant   Coordinate
	halfmove    int
	fullmove    int
	repetitions map[string]int
	controlled  [8][8]bool // tiles attacked by the opponent of sideToMove
	fen         string
}

// Clone returns a deep copy that shares nothing with p.
func (p *Position) Clone() *Position {
	c := *p
	c.repetitions = make(map[string]int, len(p.repetitions))
	for k, v := range p.repetitions {
		c.repetitions[k] = v
	}
	return &c
}

// PieceAt returns the piece on c, or NoPiece for empty or off-board tiles.
func (p *Position) PieceAt(c Coordinate) Piece {
	if !c.Valid() {
		return NoPiece
	}
	return p.tiles[c.Rank][c.File]
}

func (p *Position) at(c Coordinate) Piece {
	return p.tiles[c.Rank][c.File]
}

func (p *Position) set(c Coordinate, pc Piece) {
	p.tiles[c.Rank][c.File] = pc
}

func (p *Position) SideToMove() Color {
	return p.sideToMove
}

func (p *Position) CastleRights() CastleRights {
	return p.castle
}

// EnPassant returns the en-passant target, if any.
func (p *Position) EnPassant() (Coordinate, bool) {
	return p.enPassant, p.enPassant.Valid()
}

func (p *Position) HalfmoveClock() int {
	return p.halfmove
}

func (p *Position) FullmoveNumber() int {
	return p.fullmove
}

// FEN returns the cached FEN string.
func (p *Position) FEN() string {
	return p.fen
}

// Placement returns the piece-placement field of the FEN, the repetition key.
func (p *Position) Placement() string {
	if i := strings.IndexByte(p.fen, ' '); i >= 0 {
		return p.fen[:i]
	}
	return p.fen
}

// RepetitionCount returns how often a placement has occurred in the game.
func (p *Position) RepetitionCount(placement string) int {
	return p.repetitions[placement]
}

// Repetitions returns a copy of the repetition tally.
func (p *Position) Repetitions() map[string]int {
	out := make(map[string]int, len(p.repetitions))
	for k, v := range p.repetitions {
		out[k] = v
	}
	return out
}

// IsControlled reports whether the opponent of the side to move attacks c.
func (p *Position) IsControlled(c Coordinate) bool {
	return c.Valid() && p.controlled[c.Rank][c.File]
}

// ControlledTiles lists the tiles the opponent of the side to move attacks.
func (p *Position) ControlledTiles() []Coordinate {
	var out []Coordinate
	for _, c := range allCoordinates {
		if p.controlled[c.Rank][c.File] {
			out = append(out, c)
		}
	}
	return out
}

// KingSquare returns the king of the given color. It reports false unless
// exactly one such king is on the board.
func (p *Position) KingSquare(color Color) (Coordinate, bool) {
	found, n := NoSquare, 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if pc := p.tiles[r][f]; pc.Type == King && pc.Color == color {
				found = Coordinate{File: f, Rank: r}
				n++
			}
		}
	}
	return found, n == 1
}

func (p *Position) kingCount(color Color) int {
	n := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if pc := p.tiles[r][f]; pc.Type == King && pc.Color == color {
				n++
			}
		}
	}
	return n
}

// Degraded reports whether legality cannot be checked because the side to
// move does not have exactly one king.
func (p *Position) Degraded() bool {
	return p.kingCount(p.sideToMove) != 1
}

// InCheck reports whether the king of the side to move is attacked.
func (p *Position) InCheck() bool {
	king, ok := p.KingSquare(p.sideToMove)
	return ok && p.controlled[king.Rank][king.File]
}

// refresh recomputes the controlled tiles and the FEN string.
func (p *Position) refresh() {
	p.controlled = TilesControlled(p, p.sideToMove.Opposite())
	p.fen = p.serialize()
}

// apply plays m without touching the derived caches or the repetition table.
func (p *Position) apply(m Move) {
	mover := p.at(m.From)
	captured := p.at(m.To)

	if m.Flag == FlagEnPassant {
		behind := Coordinate{File: m.To.File, Rank: m.From.Rank}
		captured = p.at(behind)
		p.set(behind, NoPiece)
	}

	p.set(m.To, mover)
	p.set(m.From, NoPiece)

	switch {
	case m.Flag.IsCastle():
		rookFrom, rookTo := castleRookTiles(m)
		p.set(rookTo, p.at(rookFrom))
		p.set(rookFrom, NoPiece)
	case m.Flag.IsPromotion():
		p.set(m.To, Piece{Type: m.Flag.PromotionType(), Color: mover.Color})
	}

	if mover.Type == King {
		if mover.Color == White {
			p.castle.WhiteKingside, p.castle.WhiteQueenside = false, false
		} else {
			p.castle.BlackKingside, p.castle.BlackQueenside = false, false
		}
	}
	// A piece leaving or arriving on a rook corner ends that right.
	p.clearCornerRight(m.From)
	p.clearCornerRight(m.To)

	if mover.Type == Pawn || !captured.IsEmpty() {
		p.halfmove = 0
	} else {
		p.halfmove++
	}

	if m.Flag == FlagPawnTwoForward {
		p.enPassant = Coordinate{File: m.From.File, Rank: (m.From.Rank + m.To.Rank) / 2}
	} else {
		p.enPassant = NoSquare
	}

	if p.sideToMove == Black {
		p.fullmove++
	}
	p.sideToMove = p.sideToMove.Opposite()
}

func (p *Position) clearCornerRight(c Coordinate) {
	switch c {
	case Coordinate{File: 0, Rank: 0}:
		p.castle.WhiteQueenside = false
	case Coordinate{File: 7, Rank: 0}:
		p.castle.WhiteKingside = false
	case Coordinate{File: 0, Rank: 7}:
		p.castle.BlackQueenside = false
	case Coordinate{File: 7, Rank: 7}:
		p.castle.BlackKingside = false
	}
}

// ToASCII creates an ASCII representation of the board
func (p *Position) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 7; r >= 0; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < 8; f++ {
			sb.WriteString(p.tiles[r][f].String())
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}

func (p *Position) String() string {
	return p.fen
}

// castleRookTiles returns where the rook starts and lands for a castling move.
func castleRookTiles(m Move) (from, to Coordinate) {
	rank := m.From.Rank
	if m.Flag == FlagCastleKingside {
		return Coordinate{File: 7, Rank: rank}, Coordinate{File: 5, Rank: rank}
	}
	return Coordinate{File: 0, Rank: rank}, Coordinate{File: 3, Rank: rank}
}
