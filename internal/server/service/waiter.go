package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// WaitTimeout is the maximum time a client can wait for notifications
const WaitTimeout = 25 * time.Second

// WaitRegistry manages long-polling clients waiting for game state changes
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string][]*WaitRequest // gameID → waiting clients
	timeout  time.Duration
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

// WaitRequest represents a single client waiting for game updates. Notify is
// closed exactly once: on change, timeout, game removal or shutdown.
type WaitRequest struct {
	GameID    string
	MoveCount int
	Notify    chan struct{}
	timer     *time.Timer
	once      sync.Once
}

func (r *WaitRequest) fire() {
	r.once.Do(func() {
		r.timer.Stop()
		close(r.Notify)
	})
}

func NewWaitRegistry(timeout time.Duration) *WaitRegistry {
	if timeout <= 0 {
		timeout = WaitTimeout
	}
	return &WaitRegistry{
		waiters:  make(map[string][]*WaitRequest),
		timeout:  timeout,
		shutdown: make(chan struct{}),
	}
}

// RegisterWait registers a client to wait for game state changes
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	req := &WaitRequest{
		GameID:    gameID,
		MoveCount: moveCount,
		Notify:    make(chan struct{}),
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	req.timer = time.AfterFunc(w.timeout, func() {
		w.removeWaiter(req)
		req.fire()
	})

	if w.closed {
		req.fire()
		return req.Notify
	}

	w.waiters[gameID] = append(w.waiters[gameID], req)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			w.removeWaiter(req)
			req.fire()
		case <-req.Notify:
		case <-w.shutdown:
			req.fire()
		}
	}()

	return req.Notify
}

// NotifyGame wakes the waiters on a game whose known move count differs
// from currentMoveCount.
func (w *WaitRegistry) NotifyGame(gameID string, currentMoveCount int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[gameID]
	kept := waitList[:0]
	for _, req := range waitList {
		if req.MoveCount != currentMoveCount {
			req.fire()
			continue
		}
		kept = append(kept, req)
	}
	w.setList(gameID, kept)
}

// NotifyAll wakes every waiter on a game regardless of move count.
func (w *WaitRegistry) NotifyAll(gameID string) {
	w.RemoveGame(gameID)
}

// RemoveGame removes all waiters for a game (called before game deletion)
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		req.fire()
	}
}

// Waiting returns the number of clients waiting on a game.
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[gameID])
}

// Shutdown releases all waiters and waits for their goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.shutdown)
	}
	w.waiters = make(map[string][]*WaitRequest)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timeout exceeded")
	}
}

func (w *WaitRegistry) removeWaiter(req *WaitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[req.GameID]
	for i, waiter := range waitList {
		if waiter == req {
			waitList = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}
	w.setList(req.GameID, waitList)
}

func (w *WaitRegistry) setList(gameID string, list []*WaitRequest) {
	if len(list) == 0 {
		delete(w.waiters, gameID)
		return
	}
	w.waiters[gameID] = list
}
