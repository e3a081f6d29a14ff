package processor

import (
	"context"
	"testing"
	"time"

	"netchess/internal/board"
	"netchess/internal/server/core"
	"netchess/internal/server/service"
)

func newProcessor(t *testing.T) *Processor {
	t.Helper()
	svc := service.New(nil)
	p := New(svc)
	t.Cleanup(func() {
		p.Close()
		svc.Shutdown(time.Second)
	})
	return p
}

func createGame(t *testing.T, p *Processor, fen string) core.GameResponse {
	t.Helper()
	resp := p.Execute(NewCreateGameCommand("", core.CreateGameRequest{FEN: fen}))
	if !resp.Success {
		t.Fatalf("create game: %+v", resp.Error)
	}
	return resp.Data.(core.GameResponse)
}

func wantError(t *testing.T, resp ProcessorResponse, code string) {
	t.Helper()
	if resp.Success {
		t.Fatalf("expected %s, got success", code)
	}
	if resp.Error.Code != code {
		t.Fatalf("error code = %s (%s), want %s", resp.Error.Code, resp.Error.Error, code)
	}
}

func TestCreateGame(t *testing.T) {
	p := newProcessor(t)

	g := createGame(t, p, "")
	if g.FEN != board.StartingFEN || g.Turn != "w" || g.State != "ONGOING" {
		t.Errorf("game = %+v", g)
	}
	if len(g.LegalMoves) != 20 || len(g.Moves) != 0 {
		t.Errorf("legal %d, moves %d", len(g.LegalMoves), len(g.Moves))
	}

	wantError(t, p.Execute(NewCreateGameCommand("", core.CreateGameRequest{FEN: "8/8/8 w - - 0 1"})), core.ErrInvalidFEN)
	wantError(t, p.Execute(NewCreateGameCommand("", core.CreateGameRequest{FEN: "8/8/8/8/8/8/8/8 w - - 0 1\x00"})), core.ErrInvalidFEN)

	mate := createGame(t, p, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if mate.State != "WIN_WHITE" {
		t.Errorf("mated position state = %s", mate.State)
	}
}

func TestMakeMoveFlow(t *testing.T) {
	p := newProcessor(t)
	g := createGame(t, p, "")

	resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: " E2E4 "}))
	if !resp.Success {
		t.Fatalf("move: %+v", resp.Error)
	}
	after := resp.Data.(core.GameResponse)
	if after.Turn != "b" || len(after.Moves) != 1 || after.LastMove == nil || after.LastMove.Flag != "PAWN_TWO_FORWARD" {
		t.Errorf("after move: %+v", after)
	}

	wantError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "e2e4"})), core.ErrInvalidMove)
	wantError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "e7e8k"})), core.ErrInvalidMove)
	wantError(t, p.Execute(NewMakeMoveCommand("missing", core.MoveRequest{Move: "e7e5"})), core.ErrGameNotFound)
}

func TestSeatTokensGateMoves(t *testing.T) {
	p := newProcessor(t)
	g := createGame(t, p, "")

	join := func(color string) core.JoinResponse {
		resp := p.Execute(NewJoinGameCommand(g.GameID, core.JoinGameRequest{Color: color}))
		if !resp.Success {
			t.Fatalf("join %s: %+v", color, resp.Error)
		}
		return resp.Data.(core.JoinResponse)
	}
	white := join("w")
	black := join("any")
	if white.Color != "w" || black.Color != "b" {
		t.Fatalf("seats = %s/%s", white.Color, black.Color)
	}
	wantError(t, p.Execute(NewJoinGameCommand(g.GameID, core.JoinGameRequest{Color: "b"})), core.ErrSeatTaken)

	wantError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "e2e4"})), core.ErrNotYourTurn)
	wantError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "e2e4", Token: black.Token})), core.ErrNotYourTurn)

	if resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "e2e4", Token: white.Token})); !resp.Success {
		t.Fatalf("white move: %+v", resp.Error)
	}

	if resp := p.Execute(NewLeaveGameCommand(g.GameID, black.Token)); !resp.Success {
		t.Fatalf("leave: %+v", resp.Error)
	}
	wantError(t, p.Execute(NewLeaveGameCommand(g.GameID, black.Token)), core.ErrInvalidRequest)

	// Black's seat is open again, so anyone may move for black.
	if resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "e7e5"})); !resp.Success {
		t.Fatalf("open seat move: %+v", resp.Error)
	}
}

func TestPlayMove(t *testing.T) {
	p := newProcessor(t)
	g := createGame(t, p, "")

	e2, _ := board.ParseCoordinate("e2")
	e4, _ := board.ParseCoordinate("e4")
	m := board.NewMove(e2, e4, board.FlagPawnTwoForward)

	wantError(t, p.Execute(NewPlayMoveCommand(g.GameID, board.Black, m)), core.ErrNotYourTurn)
	wantError(t, p.Execute(NewPlayMoveCommand(g.GameID, board.White, board.NewMove(e2, e4, board.FlagNone))), core.ErrInvalidMove)
	if resp := p.Execute(NewPlayMoveCommand(g.GameID, board.White, m)); !resp.Success {
		t.Fatalf("play: %+v", resp.Error)
	}
}

func TestGameOverUndoAndReset(t *testing.T) {
	p := newProcessor(t)
	g := createGame(t, p, "")

	for _, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: m})); !resp.Success {
			t.Fatalf("move %s: %+v", m, resp.Error)
		}
	}
	got := p.Execute(NewGetGameCommand(g.GameID)).Data.(core.GameResponse)
	if got.State != "WIN_BLACK" || !got.Check {
		t.Errorf("state = %s check = %v", got.State, got.Check)
	}
	wantError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "a2a3"})), core.ErrGameOver)

	resp := p.Execute(NewUndoMoveCommand(g.GameID, core.UndoRequest{Count: 2}))
	if !resp.Success {
		t.Fatalf("undo: %+v", resp.Error)
	}
	if u := resp.Data.(core.GameResponse); u.State != "ONGOING" || len(u.Moves) != 2 {
		t.Errorf("after undo: %+v", u)
	}
	wantError(t, p.Execute(NewUndoMoveCommand(g.GameID, core.UndoRequest{Count: 5})), core.ErrInvalidRequest)

	const fen = "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	resp = p.Execute(NewSetPositionCommand(g.GameID, core.SetPositionRequest{FEN: fen}))
	if !resp.Success || resp.Data.(core.GameResponse).FEN != fen {
		t.Fatalf("set position: %+v", resp)
	}
	wantError(t, p.Execute(NewSetPositionCommand(g.GameID, core.SetPositionRequest{FEN: "junk"})), core.ErrInvalidFEN)

	resp = p.Execute(NewResetGameCommand(g.GameID))
	if !resp.Success || resp.Data.(core.GameResponse).FEN != board.StartingFEN {
		t.Fatalf("reset: %+v", resp)
	}
}

func TestBoardPositionAndLegalMoves(t *testing.T) {
	p := newProcessor(t)
	g := createGame(t, p, "")

	b := p.Execute(NewGetBoardCommand(g.GameID)).Data.(core.BoardResponse)
	if b.FEN != board.StartingFEN || b.Board == "" {
		t.Errorf("board = %+v", b)
	}
	pos := p.Execute(NewGetPositionCommand(g.GameID)).Data.(*board.Position)
	if pos.FEN() != board.StartingFEN {
		t.Errorf("position FEN = %q", pos.FEN())
	}
	lm := p.Execute(NewLegalMovesCommand(g.GameID)).Data.(core.LegalMovesResponse)
	if len(lm.Moves) != 20 {
		t.Errorf("legal moves = %d", len(lm.Moves))
	}

	if resp := p.Execute(NewDeleteGameCommand(g.GameID)); !resp.Success {
		t.Fatalf("delete: %+v", resp.Error)
	}
	wantError(t, p.Execute(NewGetBoardCommand(g.GameID)), core.ErrGameNotFound)
}

func TestExecuteAfterClose(t *testing.T) {
	svc := service.New(nil)
	defer svc.Shutdown(time.Second)
	p := New(svc)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	wantError(t, p.Execute(NewGetGameCommand("x")), core.ErrInternalError)
}

func TestExecuteContextCancelled(t *testing.T) {
	p := newProcessor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resp := p.ExecuteContext(ctx, NewGetGameCommand("x"))
	// Either the cancelled context or a fast worker may win the race.
	if resp.Success {
		t.Fatal("unexpected success")
	}
}

func TestIsMoveSafe(t *testing.T) {
	p := &Processor{}
	for _, m := range []string{"e2e4", "a7a8q", "h1a8", "b2b1n"} {
		if !p.isMoveSafe(m) {
			t.Errorf("isMoveSafe(%q) = false", m)
		}
	}
	for _, m := range []string{"", "e2e", "e2e4qq", "i2e4", "e0e4", "e7e8k", "e2\ne4"} {
		if p.isMoveSafe(m) {
			t.Errorf("isMoveSafe(%q) = true", m)
		}
	}
}
