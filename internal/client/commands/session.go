package commands

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"netchess/internal/board"
	"netchess/internal/client/api"
	"netchess/internal/protocol"
	"netchess/internal/savestore"
)

// Mode selects where moves go
type Mode int

const (
	ModeLocal  Mode = iota // in-process board
	ModeRemote             // REST game on a server
	ModeSocket             // shared game on a socket host
)

func (m Mode) String() string {
	switch m {
	case ModeRemote:
		return "remote"
	case ModeSocket:
		return "socket"
	default:
		return "local"
	}
}

var errNoSaves = errors.New("saved positions are unavailable")

// Session is the client state shared by all commands. Socket messages arrive
// on a separate goroutine, so fields are guarded by mu.
type Session struct {
	out     io.Writer
	client  *api.Client
	saves   *savestore.Store
	verbose bool

	mu   sync.Mutex
	mode Mode

	// local
	board      *board.Board
	initialFEN string
	moves      []string

	// remote
	gameID        string
	token         string
	color         string
	lastMoveCount int

	// socket
	conn        *protocol.Conn
	socketColor board.Color
	socketFEN   string
	socketState board.GameState
	updates     chan struct{}
}

// NewSession starts a local game from fen. saves may be nil.
func NewSession(out io.Writer, fen string, client *api.Client, saves *savestore.Store) (*Session, error) {
	b, err := board.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	if client != nil && client.Out == nil {
		client.Out = out
	}
	return &Session{
		out:        out,
		client:     client,
		saves:      saves,
		board:      b,
		initialFEN: b.FEN(),
		updates:    make(chan struct{}, 16),
	}, nil
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) SetVerbose(v bool) {
	s.verbose = v
	if s.client != nil {
		s.client.SetVerbose(v)
	}
}

// Prompt reflects the mode and, for local games, the side to move
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.mode {
	case ModeRemote:
		return fmt.Sprintf("chess[%s]", shortID(s.gameID))
	case ModeSocket:
		return fmt.Sprintf("chess[%s]", s.socketColor.Name())
	default:
		return "chess[" + s.board.SideToMove().Name() + "]"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Position returns a copy of the position the active mode is playing.
// Remote games are not tracked locally.
func (s *Session) Position() (*board.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.mode {
	case ModeSocket:
		if s.socketFEN == "" {
			return nil, errors.New("no state received from the host yet")
		}
		return board.ParseFEN(s.socketFEN)
	case ModeRemote:
		return nil, errors.New("position is held by the server")
	default:
		return s.board.Position(), nil
	}
}

// LocalGame returns the initial FEN and moves of the local game.
func (s *Session) LocalGame() (string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moves := make([]string, len(s.moves))
	copy(moves, s.moves)
	return s.initialFEN, moves
}

// SocketState returns the last state received from the host.
func (s *Session) SocketState() (fen string, state board.GameState, color board.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.socketFEN, s.socketState, s.socketColor
}

// Updates is signalled after each message from the socket host.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// resetLocal replaces the local game. Caller holds mu.
func (s *Session) resetLocal(fen string) error {
	p, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	s.board.Reset(p)
	s.initialFEN = p.FEN()
	s.moves = nil
	return nil
}

// replay rebuilds the local game from fen and a move list. On an illegal
// move the game is left at the last legal position and the error returned.
func (s *Session) replay(fen string, moves []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetLocal(fen); err != nil {
		return err
	}
	for _, uci := range moves {
		if _, err := s.playLocal(uci); err != nil {
			return fmt.Errorf("replaying %s: %w", uci, err)
		}
	}
	return nil
}

// playLocal applies a UCI move to the local board. Caller holds mu.
func (s *Session) playLocal(uci string) (board.Move, error) {
	if state := s.board.State(); state.IsTerminal() {
		return board.Move{}, fmt.Errorf("game is over: %s", state)
	}
	m, err := board.ParseMove(s.board.Position(), uci)
	if err != nil {
		return board.Move{}, err
	}
	if !board.IsLegal(s.board.Position(), m) {
		return board.Move{}, fmt.Errorf("illegal move: %s", m)
	}
	if err := s.board.MakeMove(m); err != nil {
		return board.Move{}, err
	}
	s.moves = append(s.moves, m.String())
	return m, nil
}

// Close drops any socket connection.
func (s *Session) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}
