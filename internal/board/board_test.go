package board

import (
	"errors"
	"strings"
	"testing"
)

func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, uci := range moves {
		m, err := ParseMove(b.Position(), uci)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", uci, err)
		}
		if !IsLegal(b.Position(), m) {
			t.Fatalf("%s is not legal in %s", uci, b.FEN())
		}
		if err := b.MakeMove(m); err != nil {
			t.Fatalf("MakeMove(%s): %v", uci, err)
		}
	}
}

func TestMakeUnmakeRestoresPosition(t *testing.T) {
	fens := []string{
		StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"1n5k/P7/8/8/8/8/8/K7 w - - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b, err := NewBoardFromFEN(fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN: %v", err)
			}
			before := b.Position()

			for _, m := range b.LegalMoves() {
				if err := b.MakeMove(m); err != nil {
					t.Fatalf("MakeMove(%v): %v", m, err)
				}
				if err := b.UnmakeMove(); err != nil {
					t.Fatalf("UnmakeMove after %v: %v", m, err)
				}

				after := b.Position()
				if after.FEN() != before.FEN() {
					t.Fatalf("after %v: FEN %q, want %q", m, after.FEN(), before.FEN())
				}
				if after.controlled != before.controlled {
					t.Fatalf("after %v: controlled tiles differ", m)
				}
				if len(after.repetitions) != len(before.repetitions) ||
					after.RepetitionCount(after.Placement()) != 1 {
					t.Fatalf("after %v: repetitions %v, want %v", m, after.repetitions, before.repetitions)
				}
			}
			if b.History() != 0 {
				t.Errorf("History() = %d, want 0", b.History())
			}
		})
	}
}

func TestUnmakeWithoutHistory(t *testing.T) {
	b := NewBoard()
	if err := b.UnmakeMove(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("UnmakeMove() = %v, want ErrNoHistory", err)
	}
}

func TestMakeMoveStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		m    Move
	}{
		{"empty start", NewMove(Coordinate{4, 3}, Coordinate{4, 4}, FlagNone)},
		{"off board from", NewMove(Coordinate{-1, 0}, Coordinate{0, 0}, FlagNone)},
		{"off board to", NewMove(Coordinate{4, 1}, Coordinate{4, 8}, FlagNone)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard()
			err := b.MakeMove(tc.m)
			if !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("MakeMove() = %v, want ErrIllegalMove", err)
			}
			var ime *IllegalMoveError
			if !errors.As(err, &ime) || ime.Move != tc.m {
				t.Errorf("error %v does not carry the move", err)
			}
			if b.FEN() != StartingFEN || b.History() != 0 {
				t.Error("rejected move changed the board")
			}
		})
	}
}

func TestMakeMoveSkipsLegality(t *testing.T) {
	// A rook jumping over its own pawn is structurally fine.
	b := NewBoard()
	if err := b.MakeMove(NewMove(Coordinate{0, 0}, Coordinate{0, 4}, FlagNone)); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if pc := b.PieceAt(Coordinate{0, 4}); pc != NewPiece(Rook, White) {
		t.Errorf("a5 holds %v, want white rook", pc)
	}
	if b.Position().CastleRights().WhiteQueenside {
		t.Error("queenside right should be cleared when the a1 rook leaves")
	}
}

func TestCastlingRightsClearing(t *testing.T) {
	const fen = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"

	tests := []struct {
		name  string
		moves []string
		want  string
	}{
		{"king move", []string{"e1f1"}, "kq"},
		{"kingside rook", []string{"h1h2"}, "Qkq"},
		{"queenside rook", []string{"a1b1"}, "Kkq"},
		{"rook captured", []string{"a1a8"}, "Kk"},
		{"castle short", []string{"e1g1"}, "kq"},
		{"black castles long", []string{"e1e2", "e8c8"}, "-"},
		{"rook captured with check", []string{"h1h8", "e8e7"}, "Q"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBoardFromFEN(fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN: %v", err)
			}
			play(t, b, tc.moves...)
			if got := b.Position().CastleRights().String(); got != tc.want {
				t.Errorf("castling = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCastlingMovesRook(t *testing.T) {
	b, err := NewBoardFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	play(t, b, "e1g1", "e8c8")

	if got, want := b.FEN(), "2kr3r/8/8/8/8/8/8/R4RK1 w - - 2 2"; got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}
}

func TestCountersAndEnPassantTarget(t *testing.T) {
	b := NewBoard()

	play(t, b, "g1f3")
	if p := b.Position(); p.HalfmoveClock() != 1 || p.FullmoveNumber() != 1 {
		t.Errorf("after g1f3: half=%d full=%d, want 1/1", p.HalfmoveClock(), p.FullmoveNumber())
	}

	play(t, b, "e7e5")
	p := b.Position()
	if p.HalfmoveClock() != 0 || p.FullmoveNumber() != 2 {
		t.Errorf("after e7e5: half=%d full=%d, want 0/2", p.HalfmoveClock(), p.FullmoveNumber())
	}
	if ep, ok := p.EnPassant(); !ok || ep.String() != "e6" {
		t.Errorf("en passant = %v, want e6", ep)
	}

	play(t, b, "f3e5")
	p = b.Position()
	if p.HalfmoveClock() != 0 {
		t.Errorf("capture must reset the halfmove clock, got %d", p.HalfmoveClock())
	}
	if _, ok := p.EnPassant(); ok {
		t.Error("en passant target should expire after one move")
	}
}

func TestPositionIsIndependent(t *testing.T) {
	b := NewBoard()
	snapshot := b.Position()
	play(t, b, "e2e4", "e7e5")

	if snapshot.FEN() != StartingFEN {
		t.Errorf("snapshot FEN changed to %q", snapshot.FEN())
	}
	if len(snapshot.Repetitions()) != 1 {
		t.Errorf("snapshot repetitions = %v, want one entry", snapshot.Repetitions())
	}

	clone := snapshot.Clone()
	clone.repetitions["x"] = 9
	if snapshot.RepetitionCount("x") != 0 {
		t.Error("Clone shares its repetition table")
	}
}

func TestLegalMovesDoesNotTouchRepetitions(t *testing.T) {
	b := NewBoard()
	before := b.Position().Repetitions()
	_ = b.LegalMoves()
	_ = b.State()
	after := b.Position().Repetitions()
	if len(after) != len(before) {
		t.Errorf("repetitions grew from %v to %v", before, after)
	}
}

func TestResetClearsHistory(t *testing.T) {
	b := NewBoard()
	play(t, b, "d2d4")

	p, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	b.Reset(p)
	if b.History() != 0 {
		t.Errorf("History() = %d, want 0", b.History())
	}
	if b.FEN() != p.FEN() {
		t.Errorf("FEN = %q, want %q", b.FEN(), p.FEN())
	}
}

func TestToASCII(t *testing.T) {
	b := NewBoard()
	lines := strings.Split(b.ToASCII(), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if lines[0] != "  a b c d e f g h" || lines[9] != "  a b c d e f g h" {
		t.Errorf("file labels missing: %q / %q", lines[0], lines[9])
	}
	if lines[1] != "8 r n b q k b n r  8" {
		t.Errorf("rank 8 = %q", lines[1])
	}
	if lines[8] != "1 R N B Q K B N R  1" {
		t.Errorf("rank 1 = %q", lines[8])
	}
}
