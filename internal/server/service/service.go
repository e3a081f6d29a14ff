// Package service keeps the hosted games in memory, archives them through
// the optional store and wakes long-polling clients on change.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"netchess/internal/server/game"
	"netchess/internal/server/storage"
)

const (
	MaxGames           = 1000
	IdleGameTTL        = 2 * time.Hour
	CleanupJobInterval = 10 * time.Minute
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrTooManyGames = errors.New("game limit reached")
)

// Service coordinates game state, long-poll waiters and storage
type Service struct {
	games  map[string]*entry
	mu     sync.RWMutex
	store  *storage.Store
	waiter *WaitRegistry
}

type entry struct {
	game   *game.Game
	source string
}

// New creates a new service instance with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		games:  make(map[string]*entry),
		store:  store,
		waiter: NewWaitRegistry(WaitTimeout),
	}
}

// NewWithWaitTimeout is New with a custom long-poll timeout.
func NewWithWaitTimeout(store *storage.Store, timeout time.Duration) *Service {
	s := New(store)
	s.waiter = NewWaitRegistry(timeout)
	return s
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// RegisterWait registers a client to wait for game state changes
func (s *Service) RegisterWait(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	return s.waiter.RegisterWait(ctx, gameID, moveCount)
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*entry)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RunCleanupJob periodically drops games idle for longer than ttl
func (s *Service) RunCleanupJob(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.cleanupIdle(ttl); n > 0 {
				log.Printf("cleanup: removed %d idle games", n)
			}
		}
	}
}

func (s *Service) cleanupIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.games {
		if e.source == SourceSocket {
			continue
		}
		if e.game.LastActivity().Before(cutoff) {
			s.waiter.RemoveGame(id)
			delete(s.games, id)
			removed++
		}
	}
	return removed
}
