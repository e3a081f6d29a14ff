package render

import (
	"bytes"
	"image/png"
	"testing"

	"netchess/internal/board"
)

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	p, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

func TestPNGDecodes(t *testing.T) {
	p := mustParse(t, board.StartingFEN)

	var buf bytes.Buffer
	if err := PNG(&buf, p, DefaultOptions()); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8*DefaultSquareSize || b.Dy() != 8*DefaultSquareSize {
		t.Errorf("bounds = %v", b)
	}
}

func TestSquareSizeClamped(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultSquareSize},
		{4, MinSquareSize},
		{500, MaxSquareSize},
		{40, 40},
	}
	for _, tt := range tests {
		if got := (Options{SquareSize: tt.in}).squareSize(); got != tt.want {
			t.Errorf("squareSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSquareColorsAndOrientation(t *testing.T) {
	p := mustParse(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	const size = 32
	img, err := Image(p, Options{SquareSize: size})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}

	// a1 is dark and sits bottom-left; h1 is light and sits bottom-right.
	if got := img.RGBAAt(2, 8*size-2); got != darkSquare {
		t.Errorf("a1 corner = %v, want dark", got)
	}
	if got := img.RGBAAt(8*size-2, 8*size-2); got != lightSquare {
		t.Errorf("h1 corner = %v, want light", got)
	}

	flipped, err := Image(p, Options{SquareSize: size, Flip: true})
	if err != nil {
		t.Fatalf("Image flipped: %v", err)
	}
	// Flipped, h1 sits top-left.
	if got := flipped.RGBAAt(2, 2); got != lightSquare {
		t.Errorf("flipped h1 corner = %v, want light", got)
	}
}

func TestPiecesAreDrawn(t *testing.T) {
	const size = 40
	empty, err := Image(mustParse(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"), Options{SquareSize: size})
	if err != nil {
		t.Fatal(err)
	}
	withQueen, err := Image(mustParse(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1"), Options{SquareSize: size})
	if err != nil {
		t.Fatal(err)
	}

	// The centre of a1 changes once a queen stands there.
	cx, cy := size/2, 8*size-size/2+6
	if empty.RGBAAt(cx, cy) == withQueen.RGBAAt(cx, cy) {
		t.Error("queen glyph left a1 unchanged")
	}
}

func TestCheckAndHighlight(t *testing.T) {
	p := mustParse(t, "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1")
	const size = 32
	e2, _ := board.ParseCoordinate("e2")
	img, err := Image(p, Options{SquareSize: size, Highlight: []board.Coordinate{e2}})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}

	// e8 corner shows the check tint, e2 corner the highlight.
	if got := img.RGBAAt(4*size+1, 1); got != checkTint {
		t.Errorf("e8 corner = %v, want check tint", got)
	}
	if got := img.RGBAAt(4*size+1, 6*size+1); got != highlight {
		t.Errorf("e2 corner = %v, want highlight", got)
	}
}
