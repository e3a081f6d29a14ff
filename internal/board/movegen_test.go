package board

import (
	"testing"
)

func mustParse(t *testing.T, fen string) *Position {
	t.Helper()
	p, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

func sq(t *testing.T, s string) Coordinate {
	t.Helper()
	c, err := ParseCoordinate(s)
	if err != nil {
		t.Fatalf("ParseCoordinate(%q): %v", s, err)
	}
	return c
}

func containsMove(moves []Move, m Move) bool {
	for _, x := range moves {
		if x == m {
			return true
		}
	}
	return false
}

func TestLegalMovesStartingPosition(t *testing.T) {
	p := mustParse(t, StartingFEN)
	moves := LegalMoves(p)
	if len(moves) != 20 {
		t.Fatalf("len(LegalMoves) = %d, want 20", len(moves))
	}
	if !containsMove(moves, NewMove(sq(t, "e2"), sq(t, "e4"), FlagPawnTwoForward)) {
		t.Error("missing e2e4 flagged PAWN_TWO_FORWARD")
	}
	if !containsMove(moves, NewMove(sq(t, "g1"), sq(t, "f3"), FlagNone)) {
		t.Error("missing g1f3")
	}
}

func TestCastlingKingside(t *testing.T) {
	castle := Move{From: Coordinate{4, 0}, To: Coordinate{6, 0}, Flag: FlagCastleKingside}

	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"clear", "4k2r/8/8/8/8/8/8/4K2R w K - 0 1", true},
		{"no right", "4k2r/8/8/8/8/8/8/4K2R w - - 0 1", false},
		{"f1 occupied", "4k2r/8/8/8/8/8/8/4KB1R w K - 0 1", false},
		{"g1 occupied", "4k2r/8/8/8/8/8/8/4K1NR w K - 0 1", false},
		{"e1 attacked", "4k3/8/8/4r3/8/8/8/4K2R w K - 0 1", false},
		{"f1 attacked", "4kr2/8/8/8/8/8/8/4K2R w K - 0 1", false},
		{"g1 attacked", "4k1r1/8/8/8/8/8/8/4K2R w K - 0 1", false},
		{"h1 attacked", "4k2r/8/8/8/8/8/8/4K2R w K - 0 1", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParse(t, tc.fen)
			if got := containsMove(LegalMoves(p), castle); got != tc.want {
				t.Errorf("castling generated = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCastlingQueenside(t *testing.T) {
	castle := Move{From: Coordinate{4, 7}, To: Coordinate{2, 7}, Flag: FlagCastleQueenside}

	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"clear", "r3k3/8/8/8/8/8/8/4K3 b q - 0 1", true},
		{"b8 occupied", "rn2k3/8/8/8/8/8/8/4K3 b q - 0 1", false},
		{"b8 attacked only", "r3k3/8/8/8/8/8/8/1R2K3 b q - 0 1", true},
		{"d8 attacked", "r3k3/8/8/8/8/8/8/3RK3 b q - 0 1", false},
		{"c8 attacked", "r3k3/8/8/8/8/8/8/2R1K3 b q - 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParse(t, tc.fen)
			if got := containsMove(LegalMoves(p), castle); got != tc.want {
				t.Errorf("castling generated = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEnPassantCapture(t *testing.T) {
	b := NewBoard()
	for _, uci := range []string{"e2e4", "a7a6", "e4e5", "d7d5"} {
		m, err := ParseMove(b.Position(), uci)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", uci, err)
		}
		if err := b.MakeMove(m); err != nil {
			t.Fatalf("MakeMove(%s): %v", uci, err)
		}
	}

	if got, want := b.FEN(), "rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3"; got != want {
		t.Fatalf("FEN = %q, want %q", got, want)
	}

	ep := NewMove(sq(t, "e5"), sq(t, "d6"), FlagEnPassant)
	if !containsMove(b.LegalMoves(), ep) {
		t.Fatal("e5d6 en passant not generated")
	}
	if err := b.MakeMove(ep); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}

	if pc := b.PieceAt(sq(t, "d5")); !pc.IsEmpty() {
		t.Errorf("d5 holds %v, want empty", pc)
	}
	if pc := b.PieceAt(sq(t, "d6")); pc != NewPiece(Pawn, White) {
		t.Errorf("d6 holds %v, want white pawn", pc)
	}
	if got, want := b.FEN(), "rnbqkbnr/1pp1pppp/p2P4/8/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3"; got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}
}

func TestEnPassantPinnedAlongRank(t *testing.T) {
	p := mustParse(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")

	if !containsMove(PseudoLegalMoves(p), NewMove(sq(t, "e4"), sq(t, "d3"), FlagEnPassant)) {
		t.Fatal("pseudo-legal en passant missing")
	}
	for _, m := range LegalMoves(p) {
		if m.Flag == FlagEnPassant {
			t.Errorf("en passant %v exposes the king and must be filtered", m)
		}
	}
	if n := len(LegalMoves(p)); n != 6 {
		t.Errorf("len(LegalMoves) = %d, want 6", n)
	}
}

func TestPromotionExpandsToFourMoves(t *testing.T) {
	p := mustParse(t, "1n5k/P7/8/8/8/8/8/K7 w - - 0 1")

	var push, capture int
	for _, m := range LegalMoves(p) {
		if !m.Flag.IsPromotion() {
			continue
		}
		switch m.To {
		case sq(t, "a8"):
			push++
		case sq(t, "b8"):
			capture++
		}
	}
	if push != 4 || capture != 4 {
		t.Errorf("promotions: push=%d capture=%d, want 4 each", push, capture)
	}

	b := NewBoardFromPosition(p)
	if err := b.MakeMove(NewMove(sq(t, "a7"), sq(t, "b8"), FlagPromoteKnight)); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if pc := b.PieceAt(sq(t, "b8")); pc != NewPiece(Knight, White) {
		t.Errorf("b8 holds %v, want white knight", pc)
	}
	if pc := b.PieceAt(sq(t, "a7")); !pc.IsEmpty() {
		t.Errorf("a7 holds %v, want empty", pc)
	}
}

func TestTilesControlledPawnDiagonals(t *testing.T) {
	// The white pawn on e4 attacks d5 and f5 even though nothing is there,
	// while its forward square is never controlled.
	p := mustParse(t, "4k3/8/8/8/4P3/8/8/4K3 b - - 0 1")

	attacked := TilesControlled(p, White)
	if !attacked[4][3] || !attacked[4][5] {
		t.Error("pawn diagonals d5/f5 not controlled")
	}
	if attacked[4][4] {
		t.Error("pawn push square e5 must not be controlled")
	}
	if !p.IsControlled(sq(t, "d5")) {
		t.Error("cached controlled tiles disagree with TilesControlled")
	}

	// Friendly pieces on the diagonal are still covered by a pawn.
	p = mustParse(t, "4k3/8/8/3N4/4P3/8/8/4K3 b - - 0 1")
	if !TilesControlled(p, White)[4][3] {
		t.Error("pawn must cover a friendly piece on its diagonal")
	}
}

func TestSlidingStopsAtPieces(t *testing.T) {
	p := mustParse(t, "4k3/8/8/8/R2p2P1/8/8/4K3 w - - 0 1")

	var targets []string
	for _, m := range PseudoLegalMoves(p) {
		if m.From == sq(t, "a4") && m.To.Rank == 3 {
			targets = append(targets, m.To.String())
		}
	}
	want := map[string]bool{"b4": true, "c4": true, "d4": true}
	if len(targets) != len(want) {
		t.Fatalf("rook rank moves = %v, want b4 c4 d4", targets)
	}
	for _, s := range targets {
		if !want[s] {
			t.Errorf("unexpected rook target %s", s)
		}
	}
}

func TestNoSelfCheck(t *testing.T) {
	fens := []string{
		StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/5PPq/8/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"4k3/8/8/8/4r3/8/4B3/4K3 w - - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			p := mustParse(t, fen)
			mover := p.SideToMove()
			for _, m := range LegalMoves(p) {
				b := NewBoardFromPosition(p)
				if err := b.MakeMove(m); err != nil {
					t.Fatalf("MakeMove(%v): %v", m, err)
				}
				after := b.Position()
				king, ok := after.KingSquare(mover)
				if !ok {
					t.Fatalf("king missing after %v", m)
				}
				if TilesControlled(after, mover.Opposite())[king.Rank][king.File] {
					t.Errorf("%v leaves the %s king attacked", m, mover.Name())
				}
			}
		})
	}
}

func TestPinnedPieceCannotMoveOffLine(t *testing.T) {
	p := mustParse(t, "4k3/8/8/8/4r3/8/4B3/4K3 w - - 0 1")
	for _, m := range LegalMoves(p) {
		if m.From == sq(t, "e2") {
			t.Errorf("pinned bishop move %v generated", m)
		}
	}
}

func TestDegradedWithoutKing(t *testing.T) {
	p := mustParse(t, "8/8/8/8/8/8/4P3/8 w - - 0 1")
	if !p.Degraded() {
		t.Fatal("position without a white king should be degraded")
	}
	pseudo := PseudoLegalMoves(p)
	legal := LegalMoves(p)
	if len(legal) != len(pseudo) || len(legal) != 2 {
		t.Errorf("legal=%d pseudo=%d, want both 2", len(legal), len(pseudo))
	}

	p = mustParse(t, "4k3/8/8/8/8/8/8/K6K w - - 0 1")
	if !p.Degraded() {
		t.Error("two white kings should be degraded")
	}
}

func TestParseMoveInfersFlags(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		uci  string
		want Flag
	}{
		{"quiet", StartingFEN, "g1f3", FlagNone},
		{"double push", StartingFEN, "d2d4", FlagPawnTwoForward},
		{"en passant", "rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", "e5d6", FlagEnPassant},
		{"castle short", "4k2r/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", FlagCastleKingside},
		{"castle long", "r3k3/8/8/8/8/8/8/4K3 b q - 0 1", "e8c8", FlagCastleQueenside},
		{"promote default", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8", FlagPromoteQueen},
		{"promote rook", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8r", FlagPromoteRook},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParse(t, tc.fen)
			m, err := ParseMove(p, tc.uci)
			if err != nil {
				t.Fatalf("ParseMove: %v", err)
			}
			if m.Flag != tc.want {
				t.Errorf("flag = %v, want %v", m.Flag, tc.want)
			}
			if castle := tc.want == FlagCastleKingside || tc.want == FlagCastleQueenside; m.Flag.IsCastle() != castle {
				t.Errorf("IsCastle = %v, want %v", m.Flag.IsCastle(), castle)
			}
			if !IsLegal(p, m) {
				t.Errorf("%v should be legal", m)
			}
		})
	}

	for _, bad := range []string{"", "e2", "e2e9", "i2e4", "e7e8k", "e7e8x", "e2e4e4"} {
		if _, err := ParseMove(mustParse(t, StartingFEN), bad); err == nil {
			t.Errorf("ParseMove(%q) should fail", bad)
		}
	}
}

func TestVectorScale(t *testing.T) {
	from := sq(t, "e2")
	if got := from.Shift(Vector{DRank: 1}.Scale(2)); got != sq(t, "e4") {
		t.Errorf("e2 + 2*up = %v, want e4", got)
	}
	if got := from.Shift(Vector{DFile: -1, DRank: 1}.Scale(3)); got != sq(t, "b5") {
		t.Errorf("e2 + 3*up-left = %v, want b5", got)
	}
	if got := from.Shift(Vector{DRank: -1}.Scale(2)); got.Valid() {
		t.Errorf("e2 + 2*down = %v, want off the board", got)
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{NewMove(Coordinate{4, 1}, Coordinate{4, 3}, FlagPawnTwoForward), "e2e4"},
		{NewMove(Coordinate{0, 6}, Coordinate{0, 7}, FlagPromoteQueen), "a7a8q"},
		{NewMove(Coordinate{1, 1}, Coordinate{2, 0}, FlagPromoteKnight), "b2c1n"},
		{NewMove(Coordinate{4, 0}, Coordinate{6, 0}, FlagCastleKingside), "e1g1"},
	}
	for _, tc := range tests {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
