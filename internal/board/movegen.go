package board

// Offset and direction tables, shared and never modified.
var (
	knightOffsets = [...]Vector{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	bishopDirs    = [...]Vector{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookDirs      = [...]Vector{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	queenDirs     = [...]Vector{{0, 1}, {1, 0}, {0, -1}, {-1, 0}, {1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	kingOffsets   = queenDirs

	promotionFlags = [...]Flag{FlagPromoteKnight, FlagPromoteBishop, FlagPromoteRook, FlagPromoteQueen}
)

func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func homeRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

func lastRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

func backRank(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

// PseudoLegalMoves returns the moves of the side to move that obey piece
// movement and occupancy, ignoring the safety of the mover's king.
func PseudoLegalMoves(p *Position) []Move {
	return generate(p, p.sideToMove)
}

func generate(p *Position, color Color) []Move {
	moves := make([]Move, 0, 48)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			pc := p.tiles[r][f]
			if pc.Color != color {
				continue
			}
			from := Coordinate{File: f, Rank: r}
			switch pc.Type {
			case Pawn:
				genPawnMoves(p, from, color, &moves)
			case Knight:
				genStepMoves(p, from, color, knightOffsets[:], &moves)
			case Bishop:
				genSlideMoves(p, from, color, bishopDirs[:], &moves)
			case Rook:
				genSlideMoves(p, from, color, rookDirs[:], &moves)
			case Queen:
				genSlideMoves(p, from, color, queenDirs[:], &moves)
			case King:
				genStepMoves(p, from, color, kingOffsets[:], &moves)
				if color == p.sideToMove {
					genCastleMoves(p, from, color, &moves)
				}
			}
		}
	}
	return moves
}

func genSlideMoves(p *Position, from Coordinate, color Color, dirs []Vector, moves *[]Move) {
	for _, d := range dirs {
		for to := from.Shift(d); to.Valid(); to = to.Shift(d) {
			target := p.at(to)
			if target.Color == color {
				break
			}
			*moves = append(*moves, Move{From: from, To: to})
			if !target.IsEmpty() {
				break
			}
		}
	}
}

func genStepMoves(p *Position, from Coordinate, color Color, offsets []Vector, moves *[]Move) {
	for _, d := range offsets {
		to := from.Shift(d)
		if to.Valid() && p.at(to).Color != color {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

func genPawnMoves(p *Position, from Coordinate, color Color, moves *[]Move) {
	dir := pawnDirection(color)
	forward := Vector{DRank: dir}

	one := from.Shift(forward)
	if one.Valid() && p.at(one).IsEmpty() {
		addPawnMove(from, one, FlagNone, color, moves)
		if from.Rank == homeRank(color) {
			two := from.Shift(forward.Scale(2))
			if two.Valid() && p.at(two).IsEmpty() {
				*moves = append(*moves, Move{From: from, To: two, Flag: FlagPawnTwoForward})
			}
		}
	}

	for _, df := range [...]int{-1, 1} {
		to := from.Shift(Vector{DFile: df, DRank: dir})
		if !to.Valid() {
			continue
		}
		target := p.at(to)
		switch {
		case target.Color == color.Opposite():
			addPawnMove(from, to, FlagNone, color, moves)
		case target.IsEmpty() && to == p.enPassant:
			*moves = append(*moves, Move{From: from, To: to, Flag: FlagEnPassant})
		}
	}
}

// addPawnMove expands a move onto the last rank into the four promotions.
func addPawnMove(from, to Coordinate, flag Flag, color Color, moves *[]Move) {
	if to.Rank != lastRank(color) {
		*moves = append(*moves, Move{From: from, To: to, Flag: flag})
		return
	}
	for _, pf := range promotionFlags {
		*moves = append(*moves, Move{From: from, To: to, Flag: pf})
	}
}

// genCastleMoves relies on p.controlled, so it only runs for the side to move.
// The destination tile is left to the legality filter.
func genCastleMoves(p *Position, from Coordinate, color Color, moves *[]Move) {
	rank := backRank(color)
	if from != (Coordinate{File: 4, Rank: rank}) {
		return
	}
	rook := Piece{Type: Rook, Color: color}

	kingside, queenside := p.castle.WhiteKingside, p.castle.WhiteQueenside
	if color == Black {
		kingside, queenside = p.castle.BlackKingside, p.castle.BlackQueenside
	}

	if kingside &&
		p.tiles[rank][7] == rook &&
		p.tiles[rank][5].IsEmpty() && p.tiles[rank][6].IsEmpty() &&
		!p.controlled[rank][4] && !p.controlled[rank][5] {
		*moves = append(*moves, Move{From: from, To: Coordinate{File: 6, Rank: rank}, Flag: FlagCastleKingside})
	}

	if queenside &&
		p.tiles[rank][0] == rook &&
		p.tiles[rank][1].IsEmpty() && p.tiles[rank][2].IsEmpty() && p.tiles[rank][3].IsEmpty() &&
		!p.controlled[rank][4] && !p.controlled[rank][3] {
		*moves = append(*moves, Move{From: from, To: Coordinate{File: 2, Rank: rank}, Flag: FlagCastleQueenside})
	}
}

// TilesControlled returns the tiles attacked by the pieces of color. Pawns
// attack both forward diagonals whatever occupies them; castling never counts.
func TilesControlled(p *Position, color Color) [8][8]bool {
	var out [8][8]bool
	mark := func(c Coordinate) { out[c.Rank][c.File] = true }

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			pc := p.tiles[r][f]
			if pc.Color != color {
				continue
			}
			from := Coordinate{File: f, Rank: r}
			switch pc.Type {
			case Pawn:
				dir := pawnDirection(color)
				for _, df := range [...]int{-1, 1} {
					if to := from.Shift(Vector{DFile: df, DRank: dir}); to.Valid() {
						mark(to)
					}
				}
			case Knight:
				stepTargets(p, from, color, knightOffsets[:], mark)
			case Bishop:
				slideTargets(p, from, color, bishopDirs[:], mark)
			case Rook:
				slideTargets(p, from, color, rookDirs[:], mark)
			case Queen:
				slideTargets(p, from, color, queenDirs[:], mark)
			case King:
				stepTargets(p, from, color, kingOffsets[:], mark)
			}
		}
	}
	return out
}

func slideTargets(p *Position, from Coordinate, color Color, dirs []Vector, mark func(Coordinate)) {
	for _, d := range dirs {
		for to := from.Shift(d); to.Valid(); to = to.Shift(d) {
			target := p.at(to)
			if target.Color == color {
				break
			}
			mark(to)
			if !target.IsEmpty() {
				break
			}
		}
	}
}

func stepTargets(p *Position, from Coordinate, color Color, offsets []Vector, mark func(Coordinate)) {
	for _, d := range offsets {
		if to := from.Shift(d); to.Valid() && p.at(to).Color != color {
			mark(to)
		}
	}
}

// LegalMoves filters the pseudo-legal moves down to those that leave the
// mover's king unattacked. When the side to move does not have exactly one
// king the pseudo-legal list is returned unfiltered.
func LegalMoves(p *Position) []Move {
	mover := p.sideToMove
	moves := generate(p, mover)

	king, ok := p.KingSquare(mover)
	if !ok {
		return moves
	}

	legal := moves[:0]
	for _, m := range moves {
		sim := *p
		sim.apply(m)

		target := king
		if m.From == king {
			target = m.To
		}
		attacked := TilesControlled(&sim, mover.Opposite())
		if !attacked[target.Rank][target.File] {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegal reports whether m is among the legal moves of p.
func IsLegal(p *Position, m Move) bool {
	for _, lm := range LegalMoves(p) {
		if lm == m {
			return true
		}
	}
	return false
}
