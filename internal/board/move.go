package board

import (
	"fmt"
	"strings"
)

type Flag uint8

const (
	FlagNone Flag = iota
	FlagPawnTwoForward
	FlagEnPassant
	FlagPromoteKnight
	FlagPromoteBishop
	FlagPromoteRook
	FlagPromoteQueen
	FlagCastleKingside
	FlagCastleQueenside
)

var flagNames = [...]string{
	FlagNone:            "NONE",
	FlagPawnTwoForward:  "PAWN_TWO_FORWARD",
	FlagEnPassant:       "EN_PASSANT",
	FlagPromoteKnight:   "PROMOTE_KNIGHT",
	FlagPromoteBishop:   "PROMOTE_BISHOP",
	FlagPromoteRook:     "PROMOTE_ROOK",
	FlagPromoteQueen:    "PROMOTE_QUEEN",
	FlagCastleKingside:  "CASTLE_KINGSIDE",
	FlagCastleQueenside: "CASTLE_QUEENSIDE",
}

func (f Flag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return fmt.Sprintf("Flag(%d)", uint8(f))
}

func ParseFlag(s string) (Flag, error) {
	for f, name := range flagNames {
		if name == s {
			return Flag(f), nil
		}
	}
	return FlagNone, fmt.Errorf("unknown move flag %q", s)
}

func (f Flag) IsPromotion() bool {
	return f >= FlagPromoteKnight && f <= FlagPromoteQueen
}

func (f Flag) IsCastle() bool {
	return f == FlagCastleKingside || f == FlagCastleQueenside
}

// PromotionType returns the piece a promotion flag produces, or None.
func (f Flag) PromotionType() PieceType {
	switch f {
	case FlagPromoteKnight:
		return Knight
	case FlagPromoteBishop:
		return Bishop
	case FlagPromoteRook:
		return Rook
	case FlagPromoteQueen:
		return Queen
	default:
		return None
	}
}

func promotionFlag(t PieceType) Flag {
	switch t {
	case Knight:
		return FlagPromoteKnight
	case Bishop:
		return FlagPromoteBishop
	case Rook:
		return FlagPromoteRook
	default:
		return FlagPromoteQueen
	}
}

// Move is comparable; two moves are equal when tiles and flag match.
type Move struct {
	From Coordinate
	To   Coordinate
	Flag Flag
}

func NewMove(from, to Coordinate, flag Flag) Move {
	return Move{From: from, To: to, Flag: flag}
}

// String returns the long algebraic form used by UCI, e.g. "e2e4" or "a7a8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if t := m.Flag.PromotionType(); t != None {
		s += string(pieceLetters[t])
	}
	return s
}

// InferFlag derives the flag of a move from the position it is played in.
// A pawn reaching the last rank without an explicit promotion piece promotes to a queen.
func InferFlag(p *Position, from, to Coordinate, promotion PieceType) Flag {
	if !from.Valid() || !to.Valid() {
		return FlagNone
	}
	piece := p.PieceAt(from)
	switch piece.Type {
	case Pawn:
		if abs(to.Rank-from.Rank) == 2 {
			return FlagPawnTwoForward
		}
		if ep, ok := p.EnPassant(); ok && to == ep && from.File != to.File {
			return FlagEnPassant
		}
		if to.Rank == lastRank(piece.Color) {
			return promotionFlag(promotion)
		}
	case King:
		switch to.File - from.File {
		case 2:
			return FlagCastleKingside
		case -2:
			return FlagCastleQueenside
		}
	}
	return FlagNone
}

// ParseMove reads a UCI move string against a position and infers its flag.
// The result is not checked for legality.
func ParseMove(p *Position, s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move %q: expected 4 or 5 characters", s)
	}
	from, err := ParseCoordinate(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseCoordinate(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	promotion := None
	if len(s) == 5 {
		pc, ok := PieceFromChar(s[4])
		if !ok || pc.Type == Pawn || pc.Type == King {
			return Move{}, fmt.Errorf("invalid move %q: bad promotion piece", s)
		}
		promotion = pc.Type
	}
	return NewMove(from, to, InferFlag(p, from, to, promotion)), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
