package board

import "fmt"

// Coordinate addresses a tile. File 0 is the a-file and rank 0 is White's back rank.
type Coordinate struct {
	File int
	Rank int
}

// Vector is a translation between two tiles.
type Vector struct {
	DFile int
	DRank int
}

// NoSquare marks an absent coordinate, such as an empty en-passant target.
var NoSquare = Coordinate{File: -1, Rank: -1}

var allCoordinates = func() []Coordinate {
	out := make([]Coordinate, 0, 64)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			out = append(out, Coordinate{File: f, Rank: r})
		}
	}
	return out
}()

func NewCoordinate(file, rank int) Coordinate {
	return Coordinate{File: file, Rank: rank}
}

// AllCoordinates returns the 64 tiles, a1 first and h8 last.
func AllCoordinates() []Coordinate {
	out := make([]Coordinate, len(allCoordinates))
	copy(out, allCoordinates)
	return out
}

func (c Coordinate) Valid() bool {
	return c.File >= 0 && c.File < 8 && c.Rank >= 0 && c.Rank < 8
}

func (c Coordinate) Shift(v Vector) Coordinate {
	return Coordinate{File: c.File + v.DFile, Rank: c.Rank + v.DRank}
}

// String returns the algebraic name of the tile, "-" when off the board.
func (c Coordinate) String() string {
	if !c.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + c.File), byte('1' + c.Rank)})
}

// ParseCoordinate reads an algebraic tile name such as "e4".
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q: expected 2 characters", s)
	}
	c := Coordinate{File: int(s[0]) - 'a', Rank: int(s[1]) - '1'}
	if !c.Valid() {
		return NoSquare, fmt.Errorf("invalid square %q: off the board", s)
	}
	return c, nil
}

func (v Vector) Scale(n int) Vector {
	return Vector{DFile: v.DFile * n, DRank: v.DRank * n}
}
