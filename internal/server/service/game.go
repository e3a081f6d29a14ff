package service

import (
	"fmt"
	"time"

	"netchess/internal/board"
	"netchess/internal/server/core"
	"netchess/internal/server/game"
	"netchess/internal/server/storage"

	"github.com/google/uuid"
)

// Game sources as archived
const (
	SourceAPI    = "api"
	SourceSocket = "socket"
)

// CreateGame registers a new game started from initialFEN
func (s *Service) CreateGame(id, initialFEN, source string) (*game.Game, error) {
	g, err := game.New(initialFEN)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return nil, fmt.Errorf("game %s already exists", id)
	}
	if len(s.games) >= MaxGames {
		return nil, ErrTooManyGames
	}

	s.games[id] = &entry{game: g, source: source}

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			InitialFEN:   g.InitialFEN(),
			Source:       source,
			Result:       g.State().String(),
			StartTimeUTC: time.Now().UTC(),
		})
		if g.State().IsTerminal() {
			s.store.UpdateResult(id, g.State().String(), true)
		}
	}

	return g, nil
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return e.game, nil
}

// GameCount returns the number of hosted games.
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// ClaimSeat seats a new player on the game
func (s *Service) ClaimSeat(gameID string, color board.Color) (*core.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return e.game.Claim(color)
}

// ReleaseSeat frees the seat held by token
func (s *Service) ReleaseSeat(gameID, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return e.game.Release(token), nil
}

// ApplyMove plays a UCI move and archives it
func (s *Service) ApplyMove(gameID, moveUCI string) (board.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return board.Move{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	mover := e.game.NextTurnColor()
	m, err := e.game.ApplyMove(moveUCI)
	if err != nil {
		return board.Move{}, err
	}
	s.afterMove(gameID, e.game, mover)
	return m, nil
}

// ApplyBoardMove plays a decoded move and archives it
func (s *Service) ApplyBoardMove(gameID string, m board.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	mover := e.game.NextTurnColor()
	if err := e.game.ApplyBoardMove(m); err != nil {
		return err
	}
	s.afterMove(gameID, e.game, mover)
	return nil
}

// afterMove must be called with s.mu held.
func (s *Service) afterMove(gameID string, g *game.Game, mover board.Color) {
	s.waiter.NotifyGame(gameID, g.MoveCount())

	if s.store == nil {
		return
	}
	moves := g.Moves()
	s.store.RecordMove(storage.MoveRecord{
		GameID:       gameID,
		MoveNumber:   len(moves),
		MoveUCI:      moves[len(moves)-1],
		FENAfterMove: g.CurrentFEN(),
		PlayerColor:  mover.String(),
		MoveTimeUTC:  time.Now().UTC(),
	})
	if g.State().IsTerminal() {
		s.store.UpdateResult(gameID, g.State().String(), true)
	}
}

// UndoMoves removes the specified number of moves from game history
func (s *Service) UndoMoves(gameID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	wasTerminal := e.game.State().IsTerminal()
	if err := e.game.UndoMoves(count); err != nil {
		return err
	}

	s.waiter.NotifyGame(gameID, e.game.MoveCount())

	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, e.game.MoveCount())
		if wasTerminal {
			st := e.game.State()
			s.store.UpdateResult(gameID, st.String(), st.IsTerminal())
		}
	}

	return nil
}

// ResetGame restarts a game from fen, keeping its seats
func (s *Service) ResetGame(gameID, fen string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if err := e.game.Reset(fen); err != nil {
		return err
	}

	s.waiter.NotifyAll(gameID)

	if s.store != nil {
		s.store.ResetGame(gameID, e.game.InitialFEN())
		if st := e.game.State(); st.IsTerminal() {
			s.store.UpdateResult(gameID, st.String(), true)
		}
	}
	return nil
}

// DeleteGame removes a game from memory. The archive keeps it.
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	s.waiter.RemoveGame(gameID)
	delete(s.games, gameID)
	return nil
}
