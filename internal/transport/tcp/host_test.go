package tcp

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"netchess/internal/board"
	"netchess/internal/protocol"
	"netchess/internal/server/processor"
	"netchess/internal/server/service"
)

func startHost(t *testing.T) *Host {
	t.Helper()
	svc := service.New(nil)
	proc := processor.New(svc)

	h, err := NewHost(proc, "")
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	if err := h.Listen("127.0.0.1:0"); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	go h.Serve()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		h.Shutdown(ctx)
		proc.Close()
		svc.Shutdown(time.Second)
	})
	return h
}

func dial(t *testing.T, h *Host) *protocol.Conn {
	t.Helper()
	c, err := protocol.Dial(context.Background(), h.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func recv(t *testing.T, c *protocol.Conn) protocol.Message {
	t.Helper()
	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	msg, err := c.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	return msg
}

func expect(t *testing.T, c *protocol.Conn, cmd string) protocol.Message {
	t.Helper()
	msg := recv(t, c)
	if msg.Cmd() != cmd {
		t.Fatalf("got %v, want %s", msg, cmd)
	}
	return msg
}

// join dials and consumes the color and state greeting.
func join(t *testing.T, h *Host, want board.Color) *protocol.Conn {
	t.Helper()
	c := dial(t, h)
	color, err := expect(t, c, protocol.CmdColor).Color()
	if err != nil || color != want {
		t.Fatalf("seat = %v (%v), want %s", color, err, want.Name())
	}
	fen, _, err := expect(t, c, protocol.CmdState).State()
	if err != nil || fen == "" {
		t.Fatalf("greeting state: %q, %v", fen, err)
	}
	return c
}

func move(t *testing.T, s string, flag board.Flag) protocol.Message {
	t.Helper()
	from, _ := board.ParseCoordinate(s[:2])
	to, _ := board.ParseCoordinate(s[2:])
	return protocol.MoveMessage(board.NewMove(from, to, flag))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSeatingOrder(t *testing.T) {
	h := startHost(t)

	join(t, h, board.White)
	black := join(t, h, board.Black)
	join(t, h, board.NoColor)

	waitFor(t, func() bool {
		w, b, s := h.Seats()
		return w && b && s == 1
	})

	black.Close()
	waitFor(t, func() bool {
		_, b, _ := h.Seats()
		return !b
	})
	join(t, h, board.Black)
}

func TestMovesAreCheckedAndBroadcast(t *testing.T) {
	h := startHost(t)
	white := join(t, h, board.White)
	black := join(t, h, board.Black)
	watcher := join(t, h, board.NoColor)

	// Out of turn.
	black.Send(move(t, "e7e5", board.FlagPawnTwoForward))
	expect(t, black, protocol.CmdError)
	fen, _, _ := expect(t, black, protocol.CmdState).State()
	if fen != board.StartingFEN {
		t.Errorf("state after rejected move = %q", fen)
	}

	// Wrong flag is illegal.
	white.Send(move(t, "e2e4", board.FlagNone))
	expect(t, white, protocol.CmdError)
	expect(t, white, protocol.CmdState)

	// Spectators cannot move.
	watcher.Send(move(t, "e2e4", board.FlagPawnTwoForward))
	expect(t, watcher, protocol.CmdError)
	expect(t, watcher, protocol.CmdState)

	white.Send(move(t, "e2e4", board.FlagPawnTwoForward))
	const after = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	for _, c := range []*protocol.Conn{white, black, watcher} {
		fen, state, err := expect(t, c, protocol.CmdState).State()
		if err != nil || fen != after || state != board.Ongoing {
			t.Errorf("broadcast = %q %v %v", fen, state, err)
		}
	}
}

func TestRestartAndMalformedInput(t *testing.T) {
	h := startHost(t)
	white := join(t, h, board.White)

	white.Send(move(t, "g1f3", board.FlagNone))
	expect(t, white, protocol.CmdState)

	white.Send(protocol.RestartMessage())
	fen, _, _ := expect(t, white, protocol.CmdState).State()
	if fen != board.StartingFEN {
		t.Errorf("after restart fen = %q", fen)
	}

	white.Send(protocol.Message{protocol.KeyCmd: "dance"})
	expect(t, white, protocol.CmdError)
	expect(t, white, protocol.CmdState)
}

func TestConsoleOperations(t *testing.T) {
	h := startHost(t)
	white := join(t, h, board.White)

	const fen = "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	if err := h.SetPosition(fen); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	got, _, _ := expect(t, white, protocol.CmdState).State()
	if got != fen {
		t.Errorf("broadcast fen = %q", got)
	}
	if err := h.SetPosition("bogus"); err == nil {
		t.Error("SetPosition with a bad FEN should fail")
	}

	p, err := h.Position()
	if err != nil || p.FEN() != fen {
		t.Errorf("Position = %v, %v", p, err)
	}
}

func TestShutdownClosesClients(t *testing.T) {
	h := startHost(t)
	c := join(t, h, board.White)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := c.Receive(); !errors.Is(err, io.EOF) {
		t.Errorf("Receive after shutdown = %v, want EOF", err)
	}
	if err := h.Listen("127.0.0.1:0"); !errors.Is(err, ErrHostClosed) {
		t.Errorf("Listen after shutdown = %v", err)
	}
}
