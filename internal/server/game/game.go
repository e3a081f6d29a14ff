// Package game wraps a board with the bookkeeping of a hosted game: the move
// list, the two seats and the result.
package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"netchess/internal/board"
	"netchess/internal/server/core"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrSeatTaken   = errors.New("seat already taken")
	ErrIllegalMove = errors.New("illegal move")
)

// MoveResult tracks the last applied move
type MoveResult struct {
	Move        string      `json:"move"`
	PlayerColor board.Color `json:"playerColor"`
	Flag        board.Flag  `json:"flag"`
}

// Snapshot is a copy of everything a response needs, safe to use after the
// game has moved on.
type Snapshot struct {
	FEN         string
	Turn        board.Color
	State       board.GameState
	Moves       []string
	Check       bool
	WhiteSeated bool
	BlackSeated bool
	LastResult  *MoveResult
	LegalMoves  []string
}

// Game is not safe for concurrent use; the processor serializes access.
type Game struct {
	board        *board.Board
	initialFEN   string
	moves        []string
	players      map[board.Color]*core.Player
	state        board.GameState
	lastResult   *MoveResult
	lastActivity time.Time
}

func New(initialFEN string) (*Game, error) {
	b, err := board.NewBoardFromFEN(initialFEN)
	if err != nil {
		return nil, err
	}
	g := &Game{
		board:        b,
		initialFEN:   b.FEN(),
		players:      make(map[board.Color]*core.Player, 2),
		lastActivity: time.Now(),
	}
	g.state = b.State()
	warnDegraded(b.Position())
	return g, nil
}

// warnDegraded notes once per position that move legality is not checked
// because the side to move does not have exactly one king.
func warnDegraded(p *board.Position) {
	if p.Degraded() {
		log.Printf("game: %q does not have one %s king, legal moves are unchecked",
			p.FEN(), p.SideToMove().Name())
	}
}

// CurrentFEN returns the current position in FEN notation
func (g *Game) CurrentFEN() string {
	return g.board.FEN()
}

func (g *Game) InitialFEN() string {
	return g.initialFEN
}

func (g *Game) NextTurnColor() board.Color {
	return g.board.SideToMove()
}

func (g *Game) State() board.GameState {
	return g.state
}

func (g *Game) InCheck() bool {
	return g.board.InCheck()
}

// Position returns a copy of the live position.
func (g *Game) Position() *board.Position {
	return g.board.Position()
}

func (g *Game) ToASCII() string {
	return g.board.ToASCII()
}

func (g *Game) LastResult() *MoveResult {
	return g.lastResult
}

// LastActivity is the time of the last state change.
func (g *Game) LastActivity() time.Time {
	return g.lastActivity
}

// Moves returns a copy of the UCI move list.
func (g *Game) Moves() []string {
	moves := make([]string, len(g.moves))
	copy(moves, g.moves)
	return moves
}

func (g *Game) MoveCount() int {
	return len(g.moves)
}

// LegalMoves lists the legal moves of the side to move in UCI form. A
// finished game has none.
func (g *Game) LegalMoves() []string {
	if g.state.IsTerminal() {
		return []string{}
	}
	legal := g.board.LegalMoves()
	out := make([]string, 0, len(legal))
	for _, m := range legal {
		out = append(out, m.String())
	}
	return out
}

// GetPlayer returns the seat holder of color, or nil.
func (g *Game) GetPlayer(color board.Color) *core.Player {
	return g.players[color]
}

// Claim seats a new player. NoColor takes the first free seat, White first.
func (g *Game) Claim(color board.Color) (*core.Player, error) {
	switch color {
	case board.White, board.Black:
		if g.players[color] != nil {
			return nil, fmt.Errorf("%w: %s", ErrSeatTaken, color.Name())
		}
	case board.NoColor:
		switch {
		case g.players[board.White] == nil:
			color = board.White
		case g.players[board.Black] == nil:
			color = board.Black
		default:
			return nil, fmt.Errorf("%w: game is full", ErrSeatTaken)
		}
	default:
		return nil, fmt.Errorf("invalid seat color %d", color)
	}

	p := core.NewPlayer(color)
	g.players[color] = p
	g.lastActivity = time.Now()
	return p, nil
}

// Release frees the seat held by token. It reports whether a seat was freed.
func (g *Game) Release(token string) bool {
	for color, p := range g.players {
		if p.ID == token {
			delete(g.players, color)
			g.lastActivity = time.Now()
			return true
		}
	}
	return false
}

// ColorOf returns the seat color of token, or NoColor for unknown tokens.
func (g *Game) ColorOf(token string) board.Color {
	if token == "" {
		return board.NoColor
	}
	for color, p := range g.players {
		if p.ID == token {
			return color
		}
	}
	return board.NoColor
}

// ApplyMove plays a UCI move after checking it against the legal moves.
func (g *Game) ApplyMove(uci string) (board.Move, error) {
	if g.state.IsTerminal() {
		return board.Move{}, fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}

	m, err := board.ParseMove(g.board.Position(), uci)
	if err != nil {
		return board.Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return m, g.apply(m)
}

// ApplyBoardMove plays an already decoded move. The flag must match the one
// the legal move generator produces.
func (g *Game) ApplyBoardMove(m board.Move) error {
	if g.state.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}
	return g.apply(m)
}

func (g *Game) apply(m board.Move) error {
	if !board.IsLegal(g.board.Position(), m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	mover := g.board.SideToMove()
	if err := g.board.MakeMove(m); err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}

	g.moves = append(g.moves, m.String())
	g.lastResult = &MoveResult{Move: m.String(), PlayerColor: mover, Flag: m.Flag}
	g.state = g.board.State()
	g.lastActivity = time.Now()
	warnDegraded(p)
	return nil
}

// UndoMoves takes back count moves and recomputes the state.
func (g *Game) UndoMoves(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}
	if available := g.board.History(); available < count {
		return fmt.Errorf("cannot undo %d moves: only %d moves available", count, available)
	}

	for i := 0; i < count; i++ {
		if err := g.board.UnmakeMove(); err != nil {
			return err
		}
	}
	g.moves = g.moves[:len(g.moves)-count]
	g.lastResult = nil
	g.state = g.board.State()
	g.lastActivity = time.Now()
	return nil
}

// Reset restarts the game from fen, keeping the seats.
func (g *Game) Reset(fen string) error {
	p, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	g.board.Reset(p)
	g.initialFEN = p.FEN()
	g.moves = nil
	g.lastResult = nil
	g.state = g.board.State()
	g.lastActivity = time.Now()
	return nil
}

// Snapshot copies the state for response building
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		FEN:         g.CurrentFEN(),
		Turn:        g.NextTurnColor(),
		State:       g.state,
		Moves:       g.Moves(),
		Check:       g.InCheck(),
		WhiteSeated: g.players[board.White] != nil,
		BlackSeated: g.players[board.Black] != nil,
		LegalMoves:  g.LegalMoves(),
	}
	if g.lastResult != nil {
		r := *g.lastResult
		s.LastResult = &r
	}
	return s
}
