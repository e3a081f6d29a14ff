package board

import "fmt"

type GameState int

const (
	Ongoing GameState = iota
	WinWhite
	WinBlack
	DrawStalemate
	DrawFiftyMove
	DrawRepetition
)

var stateNames = [...]string{
	Ongoing:        "ONGOING",
	WinWhite:       "WIN_WHITE",
	WinBlack:       "WIN_BLACK",
	DrawStalemate:  "DRAW_STALEMATE",
	DrawFiftyMove:  "DRAW_FIFTY_MOVE",
	DrawRepetition: "DRAW_REPETITION",
}

func (s GameState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

func ParseGameState(s string) (GameState, error) {
	for st, name := range stateNames {
		if name == s {
			return GameState(st), nil
		}
	}
	return Ongoing, fmt.Errorf("unknown game state %q", s)
}

func (s GameState) IsTerminal() bool {
	return s != Ongoing
}

// Winner returns the winning color, or NoColor for draws and ongoing games.
func (s GameState) Winner() Color {
	switch s {
	case WinWhite:
		return White
	case WinBlack:
		return Black
	default:
		return NoColor
	}
}

// InferState classifies p. Positions without legal moves are decided before
// the fifty-move and repetition counters are looked at.
func InferState(p *Position) GameState {
	if len(LegalMoves(p)) == 0 {
		if p.InCheck() {
			if p.sideToMove == White {
				return WinBlack
			}
			return WinWhite
		}
		return DrawStalemate
	}
	if p.halfmove >= 100 {
		return DrawFiftyMove
	}
	for _, n := range p.repetitions {
		if n >= 3 {
			return DrawRepetition
		}
	}
	return Ongoing
}
