package protocol

import (
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"netchess/internal/board"
)

func TestEncodeDecode(t *testing.T) {
	e2, _ := board.ParseCoordinate("e2")
	e4, _ := board.ParseCoordinate("e4")

	tests := []struct {
		name string
		msg  Message
		wire string
	}{
		{"color", ColorMessage(board.Black), `{"cmd":"color","color":"BLACK"}`},
		{"spectator", ColorMessage(board.NoColor), `{"cmd":"color","color":"NONE"}`},
		{"move", MoveMessage(board.NewMove(e2, e4, board.FlagPawnTwoForward)),
			`{"cmd":"move","end":"e4","flag":"PAWN_TWO_FORWARD","start":"e2"}`},
		{"state", StateMessage(board.StartingFEN, board.Ongoing),
			`{"cmd":"state","fen":"` + board.StartingFEN + `","state":"ONGOING"}`},
		{"restart", RestartMessage(), `{"cmd":"restart"}`},
		{"error", ErrorMessage(`bad "move"`), `{"cmd":"error","error":"bad \"move\""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.msg)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if string(data) != tt.wire+"\n" {
				t.Errorf("Encode = %s, want %s", data, tt.wire)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			for k, v := range tt.msg {
				if got[k] != v {
					t.Errorf("key %s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	for _, line := range []string{"", "not json", `{"fen":"x"}`, `{"cmd":1}`, `["cmd"]`} {
		if _, err := Decode([]byte(line)); !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q) = %v, want ErrMalformed", line, err)
		}
	}
	if _, err := Encode(Message{KeyFEN: "x"}); !errors.Is(err, ErrNoCommand) {
		t.Errorf("Encode without cmd = %v", err)
	}
	if _, err := Encode(ErrorMessage(strings.Repeat("x", MaxLineLength))); !errors.Is(err, ErrLineTooLong) {
		t.Errorf("Encode of a huge message = %v", err)
	}
}

func TestMovePayload(t *testing.T) {
	m, err := Message{KeyCmd: CmdMove, KeyStart: "e1", KeyEnd: "g1", KeyFlag: "CASTLE_KINGSIDE"}.Move()
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if m.String() != "e1g1" || m.Flag != board.FlagCastleKingside {
		t.Errorf("Move = %v %v", m, m.Flag)
	}

	m, err = Message{KeyCmd: CmdMove, KeyStart: "g1", KeyEnd: "f3"}.Move()
	if err != nil || m.Flag != board.FlagNone {
		t.Errorf("missing flag: %v, %v", m.Flag, err)
	}

	bad := []Message{
		{KeyStart: "z9", KeyEnd: "e4"},
		{KeyStart: "e2", KeyEnd: ""},
		{KeyStart: "e2", KeyEnd: "e4", KeyFlag: "SIDEWAYS"},
	}
	for _, msg := range bad {
		if _, err := msg.Move(); err == nil {
			t.Errorf("Move(%v) should fail", msg)
		}
	}
}

func TestStateAndColorPayload(t *testing.T) {
	p, err := board.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	fen, state, err := PositionMessage(p).State()
	if err != nil || fen != p.FEN() || state != board.DrawStalemate {
		t.Errorf("State() = %q, %v, %v", fen, state, err)
	}
	if _, _, err := (Message{KeyCmd: CmdState}).State(); err == nil {
		t.Error("state without fen should fail")
	}

	c, err := ColorMessage(board.White).Color()
	if err != nil || c != board.White {
		t.Errorf("Color() = %v, %v", c, err)
	}
}

func TestConnOverPipe(t *testing.T) {
	a, b := net.Pipe()
	client, server := NewConn(a), NewConn(b)
	defer client.Close()

	go func() {
		server.Send(ColorMessage(board.White))
		server.conn.Write([]byte("\n{broken\n"))
		server.Send(StateMessage(board.StartingFEN, board.Ongoing))
		server.Close()
	}()

	var (
		got     []Message
		badSeen int
	)
	done := make(chan error, 1)
	go func() {
		done <- client.ReadLoop(func(m Message) { got = append(got, m) }, func(error) { badSeen++ })
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ReadLoop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLoop did not return after the peer closed")
	}

	if len(got) != 2 || got[0].Cmd() != CmdColor || got[1].Cmd() != CmdState {
		t.Errorf("messages = %v", got)
	}
	if badSeen != 1 {
		t.Errorf("malformed lines reported = %d, want 1", badSeen)
	}
}

func TestSendAfterClose(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()
	c := NewConn(a)
	c.Close()
	if err := c.Send(RestartMessage()); !errors.Is(err, net.ErrClosed) {
		t.Errorf("Send after Close = %v, want net.ErrClosed", err)
	}
}
