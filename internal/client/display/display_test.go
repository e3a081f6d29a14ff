package display

import (
	"bytes"
	"strings"
	"testing"

	"netchess/internal/board"
)

func TestSetColor(t *testing.T) {
	SetColor(false)
	if Red != "" || Reset != "" || Prompt("chess") != "chess > " {
		t.Errorf("colors still set: %q %q", Red, Prompt("chess"))
	}
	SetColor(true)
	defer SetColor(false)
	if Red != "\033[31m" || !strings.HasPrefix(Prompt("chess"), Yellow) {
		t.Error("colors not restored")
	}
}

func TestAutoColorOffForBuffers(t *testing.T) {
	var buf bytes.Buffer
	if AutoColor(&buf) {
		t.Error("a buffer is not a terminal")
	}
	if Blue != "" {
		t.Error("AutoColor left colors on")
	}
}

func TestRenderBoard(t *testing.T) {
	SetColor(false)
	p, err := board.ParseFEN(board.StartingFEN)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	RenderBoard(&buf, p.ToASCII())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "8 r n b q k b n r") {
		t.Errorf("rank 8 = %q", lines[1])
	}

	SetColor(true)
	defer SetColor(false)
	buf.Reset()
	RenderBoard(&buf, p.ToASCII())
	if !strings.Contains(buf.String(), Blue+"K"+Reset) || !strings.Contains(buf.String(), Red+"k"+Reset) {
		t.Error("pieces are not colored by side")
	}
}

func TestFormatHistory(t *testing.T) {
	SetColor(false)
	tests := []struct {
		moves      []string
		firstBlack bool
		want       string
	}{
		{nil, false, ""},
		{[]string{"e2e4"}, false, "1.e2e4"},
		{[]string{"e2e4", "e7e5", "g1f3"}, false, "1.e2e4 e7e5 2.g1f3"},
		{[]string{"e7e5", "g1f3", "b8c6"}, true, "1...e7e5 2.g1f3 b8c6"},
	}
	for _, tt := range tests {
		if got := FormatHistory(tt.moves, tt.firstBlack); got != tt.want {
			t.Errorf("FormatHistory(%v, %v) = %q, want %q", tt.moves, tt.firstBlack, got, tt.want)
		}
	}
}

func TestColorForTurn(t *testing.T) {
	SetColor(false)
	for in, want := range map[string]string{"w": "White", "WHITE": "White", "b": "Black", "BLACK": "Black"} {
		if got := ColorForTurn(in); got != want {
			t.Errorf("ColorForTurn(%q) = %q", in, got)
		}
	}
}
