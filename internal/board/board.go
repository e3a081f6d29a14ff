package board

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrNoHistory   = errors.New("no move to unmake")
)

// IllegalMoveError reports a move that cannot be applied to the board at all.
// It is a structural check; legality is the caller's responsibility.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

type undo struct {
	prev Position
	key  string // placement counted by the move
}

// Board owns a live position and the history needed to unmake moves.
// It is not safe for concurrent use.
type Board struct {
	pos     Position
	history []undo
}

func NewBoard() *Board {
	b, err := NewBoardFromFEN(StartingFEN)
	if err != nil {
		panic(err)
	}
	return b
}

func NewBoardFromFEN(fen string) (*Board, error) {
	p, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Board{pos: *p}, nil
}

// NewBoardFromPosition starts a board from a copy of p.
func NewBoardFromPosition(p *Position) *Board {
	return &Board{pos: *p.Clone()}
}

// Reset replaces the live position with a copy of p and clears the history.
func (b *Board) Reset(p *Position) {
	b.pos = *p.Clone()
	b.history = nil
}

// Position returns a deep copy of the live position.
func (b *Board) Position() *Position {
	return b.pos.Clone()
}

func (b *Board) FEN() string {
	return b.pos.fen
}

func (b *Board) SideToMove() Color {
	return b.pos.sideToMove
}

func (b *Board) PieceAt(c Coordinate) Piece {
	return b.pos.PieceAt(c)
}

func (b *Board) InCheck() bool {
	return b.pos.InCheck()
}

func (b *Board) LegalMoves() []Move {
	return LegalMoves(&b.pos)
}

func (b *Board) State() GameState {
	return InferState(&b.pos)
}

func (b *Board) ToASCII() string {
	return b.pos.ToASCII()
}

// History returns the number of moves that can be unmade.
func (b *Board) History() int {
	return len(b.history)
}

// MakeMove applies m. Only structural validity is checked: both tiles must
// be on the board and the start tile must hold a piece.
func (b *Board) MakeMove(m Move) error {
	if !m.From.Valid() || !m.To.Valid() {
		return &IllegalMoveError{Move: m, Reason: "tile off the board"}
	}
	if b.pos.at(m.From).IsEmpty() {
		return &IllegalMoveError{Move: m, Reason: "no piece on start tile"}
	}

	b.history = append(b.history, undo{prev: b.pos})

	b.pos.apply(m)
	b.pos.refresh()

	key := b.pos.Placement()
	b.pos.repetitions[key]++
	b.history[len(b.history)-1].key = key
	return nil
}

// UnmakeMove restores the position from before the last MakeMove.
func (b *Board) UnmakeMove() error {
	if len(b.history) == 0 {
		return ErrNoHistory
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	reps := b.pos.repetitions
	if reps[last.key] <= 1 {
		delete(reps, last.key)
	} else {
		reps[last.key]--
	}
	b.pos = last.prev
	b.pos.repetitions = reps
	return nil
}
