package board

import "testing"

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []int64 // indexed by depth-1
	}{
		{"start", StartingFEN, []int64{20, 400, 8902, 197281}},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []int64{48, 2039, 97862}},
		{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []int64{14, 191, 2812, 43238}},
		{"en passant pin", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", []int64{6, 94}},
		{"promotions", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", []int64{24, 496, 9483}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBoardFromFEN(tc.fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN: %v", err)
			}
			for i, want := range tc.nodes {
				depth := i + 1
				if depth >= 4 && testing.Short() {
					break
				}
				if got := Perft(b, depth); got != want {
					t.Errorf("Perft(%d) = %d, want %d", depth, got, want)
				}
			}
			if b.FEN() != tc.fen || b.History() != 0 {
				t.Errorf("perft left the board at %q with %d moves of history", b.FEN(), b.History())
			}
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	b := NewBoard()
	div := Divide(b, 3)
	if len(div) != 20 {
		t.Fatalf("Divide returned %d root moves, want 20", len(div))
	}

	var total int64
	for _, n := range div {
		total += n
	}
	if total != 8902 {
		t.Errorf("sum of Divide(3) = %d, want 8902", total)
	}
	if div["e2e4"] != 600 {
		t.Errorf("Divide(3)[e2e4] = %d, want 600", div["e2e4"])
	}
	if len(Divide(b, 0)) != 0 {
		t.Error("Divide(0) should be empty")
	}
}
