package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) int64 {
	if depth <= 0 {
		return 1
	}

	moves := b.LegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		if err := b.MakeMove(m); err != nil {
			continue
		}
		nodes += Perft(b, depth-1)
		b.UnmakeMove()
	}
	return nodes
}

// Divide returns the perft count below each legal root move, keyed by the
// move's long algebraic form.
func Divide(b *Board, depth int) map[string]int64 {
	out := make(map[string]int64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.LegalMoves() {
		if err := b.MakeMove(m); err != nil {
			continue
		}
		out[m.String()] += Perft(b, depth-1)
		b.UnmakeMove()
	}
	return out
}
