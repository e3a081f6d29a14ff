package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

var ErrMalformedFEN = errors.New("malformed FEN")

// MalformedFENError describes why a FEN string was rejected.
type MalformedFENError struct {
	FEN    string
	Reason string
}

func (e *MalformedFENError) Error() string {
	return "invalid FEN: " + e.Reason
}

func (e *MalformedFENError) Unwrap() error {
	return ErrMalformedFEN
}

func malformed(fen, format string, args ...any) error {
	return &MalformedFENError{FEN: fen, Reason: fmt.Sprintf(format, args...)}
}

// ParseFEN builds a position from a six-field FEN string. An en-passant
// field naming an off-board square is accepted and treated as "-".
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, malformed(fen, "expected 6 fields, got %d", len(parts))
	}

	p := &Position{enPassant: NoSquare}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, malformed(fen, "expected 8 ranks, got %d", len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return nil, malformed(fen, "rank %d has more than 8 files", rank+1)
				}
				continue
			}
			pc, ok := PieceFromChar(ch)
			if !ok {
				return nil, malformed(fen, "unknown piece %q in rank %d", ch, rank+1)
			}
			if file >= 8 {
				return nil, malformed(fen, "too many pieces in rank %d", rank+1)
			}
			p.tiles[rank][file] = pc
			file++
		}
		if file != 8 {
			return nil, malformed(fen, "rank %d has %d files", rank+1, file)
		}
	}

	switch parts[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, malformed(fen, "turn must be 'w' or 'b'")
	}

	if parts[2] != "-" {
		for _, ch := range parts[2] {
			switch ch {
			case 'K':
				p.castle.WhiteKingside = true
			case 'Q':
				p.castle.WhiteQueenside = true
			case 'k':
				p.castle.BlackKingside = true
			case 'q':
				p.castle.BlackQueenside = true
			default:
				return nil, malformed(fen, "unknown castling right %q", ch)
			}
		}
	}

	if parts[3] != "-" {
		if len(parts[3]) != 2 {
			return nil, malformed(fen, "en passant must be '-' or a square")
		}
		if c, err := ParseCoordinate(parts[3]); err == nil {
			p.enPassant = c
		}
	}

	var err error
	if p.halfmove, err = strconv.Atoi(parts[4]); err != nil || p.halfmove < 0 {
		return nil, malformed(fen, "halfmove counter")
	}
	if p.fullmove, err = strconv.Atoi(parts[5]); err != nil || p.fullmove < 0 {
		return nil, malformed(fen, "fullmove counter")
	}

	p.refresh()
	p.repetitions = map[string]int{p.Placement(): 1}
	return p, nil
}

func (p *Position) serialize() string {
	var sb strings.Builder
	sb.Grow(90)

	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pc := p.tiles[r][f]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.sideToMove.String())
	sb.WriteByte(' ')
	sb.WriteString(p.castle.String())
	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmove))

	return sb.String()
}
