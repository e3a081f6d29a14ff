// Package tcp hosts one shared game over the line protocol. The first two
// connections are seated as White and Black; later ones watch.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"

	"netchess/internal/board"
	"netchess/internal/protocol"
	"netchess/internal/server/core"
	"netchess/internal/server/processor"
)

var ErrHostClosed = errors.New("socket host closed")

type client struct {
	conn  *protocol.Conn
	color board.Color
}

// Host serves a single game created through the processor.
type Host struct {
	proc   *processor.Processor
	gameID string

	mu       sync.Mutex
	listener net.Listener
	slots    []*client // 0 is White, 1 is Black, the rest spectate; nil marks a free seat
	closed   bool
	wg       sync.WaitGroup
}

// NewHost creates the shared game from fen, or the starting position when
// fen is empty.
func NewHost(proc *processor.Processor, fen string) (*Host, error) {
	resp := proc.Execute(processor.NewCreateSocketGameCommand(fen))
	if !resp.Success {
		return nil, fmt.Errorf("create socket game: %s", resp.Error.Error)
	}
	g := resp.Data.(core.GameResponse)
	return &Host{proc: proc, gameID: g.GameID}, nil
}

func (h *Host) GameID() string {
	return h.gameID
}

// Listen binds addr. Serve must be called to accept connections.
func (h *Host) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		ln.Close()
		return ErrHostClosed
	}
	h.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (h *Host) Addr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

// Serve accepts connections until Shutdown. It returns nil after a clean
// shutdown.
func (h *Host) Serve() error {
	h.mu.Lock()
	ln := h.listener
	h.mu.Unlock()
	if ln == nil {
		return errors.New("socket host is not listening")
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			h.mu.Lock()
			closed := h.closed
			h.mu.Unlock()
			if closed {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		h.wg.Add(1)
		go h.handle(conn)
	}
}

// Shutdown closes the listener and every connection, then waits for the
// connection goroutines until ctx ends.
func (h *Host) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	var errs []error
	if h.listener != nil {
		if err := h.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
	}
	for _, c := range h.slots {
		if c != nil {
			c.conn.Close()
		}
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, fmt.Errorf("socket host shutdown: %w", ctx.Err()))
	}
	return errors.Join(errs...)
}

// Seats reports the seated players and the number of spectators.
func (h *Host) Seats() (white, black bool, spectators int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, c := range h.slots {
		switch {
		case c == nil:
		case i == 0:
			white = true
		case i == 1:
			black = true
		default:
			spectators++
		}
	}
	return
}

func (h *Host) handle(nc net.Conn) {
	defer h.wg.Done()

	c := &client{conn: protocol.NewConn(nc)}
	if !h.seat(c) {
		c.conn.Close()
		return
	}
	defer h.unseat(c)

	log.Printf("socket client %s connected as %s", nc.RemoteAddr(), c.color.Name())

	if err := c.conn.Send(protocol.ColorMessage(c.color)); err != nil {
		return
	}
	h.sendState(c)

	err := c.conn.ReadLoop(
		func(msg protocol.Message) { h.onMessage(c, msg) },
		func(err error) {
			log.Printf("socket client %s: %v", nc.RemoteAddr(), err)
			h.reject(c, err.Error())
		},
	)
	if err != nil {
		log.Printf("socket client %s: %v", nc.RemoteAddr(), err)
	}
	log.Printf("socket client %s disconnected", nc.RemoteAddr())
}

// seat puts c into the first free slot. It reports false after Shutdown.
func (h *Host) seat(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}

	index := -1
	for i, s := range h.slots {
		if s == nil {
			index = i
			break
		}
	}
	if index == -1 {
		h.slots = append(h.slots, c)
		index = len(h.slots) - 1
	} else {
		h.slots[index] = c
	}

	switch index {
	case 0:
		c.color = board.White
	case 1:
		c.color = board.Black
	default:
		c.color = board.NoColor
	}
	return true
}

// unseat frees a player seat for the next connection and drops spectators.
func (h *Host) unseat(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, s := range h.slots {
		if s != c {
			continue
		}
		if i < 2 {
			h.slots[i] = nil
		} else {
			h.slots = append(h.slots[:i], h.slots[i+1:]...)
		}
		break
	}
	c.conn.Close()
}

func (h *Host) onMessage(c *client, msg protocol.Message) {
	switch msg.Cmd() {
	case protocol.CmdMove:
		h.onMove(c, msg)
	case protocol.CmdRestart:
		if err := h.Reset(); err != nil {
			h.reject(c, err.Error())
		}
	default:
		h.reject(c, fmt.Sprintf("unknown command %q", msg.Cmd()))
	}
}

func (h *Host) onMove(c *client, msg protocol.Message) {
	m, err := msg.Move()
	if err != nil {
		h.reject(c, err.Error())
		return
	}
	if c.color == board.NoColor {
		h.reject(c, "spectators cannot move")
		return
	}

	resp := h.proc.Execute(processor.NewPlayMoveCommand(h.gameID, c.color, m))
	if !resp.Success {
		log.Printf("socket move %s by %s rejected: %s", m, c.color.Name(), resp.Error.Error)
		h.reject(c, resp.Error.Error)
		return
	}
	h.broadcastState()
}

// reject answers the sender with an error and the unchanged state.
func (h *Host) reject(c *client, reason string) {
	if err := c.conn.Send(protocol.ErrorMessage(reason)); err != nil {
		return
	}
	h.sendState(c)
}

// Position returns a copy of the hosted position.
func (h *Host) Position() (*board.Position, error) {
	resp := h.proc.Execute(processor.NewGetPositionCommand(h.gameID))
	if !resp.Success {
		return nil, fmt.Errorf("get position: %s", resp.Error.Error)
	}
	return resp.Data.(*board.Position), nil
}

// SetPosition restarts the hosted game from fen and broadcasts it.
func (h *Host) SetPosition(fen string) error {
	resp := h.proc.Execute(processor.NewSetPositionCommand(h.gameID, core.SetPositionRequest{FEN: fen}))
	if !resp.Success {
		return fmt.Errorf("set position: %s", resp.Error.Error)
	}
	h.broadcastState()
	return nil
}

// Reset restarts the hosted game from the starting position and broadcasts it.
func (h *Host) Reset() error {
	resp := h.proc.Execute(processor.NewResetGameCommand(h.gameID))
	if !resp.Success {
		return fmt.Errorf("reset: %s", resp.Error.Error)
	}
	h.broadcastState()
	return nil
}

func (h *Host) sendState(c *client) {
	p, err := h.Position()
	if err != nil {
		log.Printf("socket host: %v", err)
		return
	}
	c.conn.Send(protocol.PositionMessage(p))
}

func (h *Host) broadcastState() {
	p, err := h.Position()
	if err != nil {
		log.Printf("socket host: %v", err)
		return
	}
	msg := protocol.PositionMessage(p)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.slots {
		if c == nil {
			continue
		}
		if err := c.conn.Send(msg); err != nil {
			log.Printf("socket host: send to %s: %v", c.conn.RemoteAddr(), err)
		}
	}
}
