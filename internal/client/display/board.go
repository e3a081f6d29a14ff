package display

import (
	"fmt"
	"io"
	"strings"
)

// RenderBoard writes an ASCII board with colored pieces. The first and last
// lines are the file labels.
func RenderBoard(w io.Writer, asciiBoard string) {
	lines := strings.Split(strings.TrimRight(asciiBoard, "\n"), "\n")
	last := len(lines) - 1

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		isFileLine := i == 0 || i == last

		var sb strings.Builder
		for _, char := range line {
			switch {
			case char >= 'a' && char <= 'h' && isFileLine:
				sb.WriteString(Cyan + string(char) + Reset)
			case char >= 'A' && char <= 'Z':
				// White pieces
				sb.WriteString(Blue + string(char) + Reset)
			case char >= 'a' && char <= 'z' && !isFileLine:
				// Black pieces
				sb.WriteString(Red + string(char) + Reset)
			case char >= '1' && char <= '8':
				sb.WriteString(Cyan + string(char) + Reset)
			default:
				sb.WriteRune(char)
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "w" || turn == "WHITE" {
		return Blue + "White" + Reset
	}
	return Red + "Black" + Reset
}

// FormatHistory numbers a UCI move list: "1.e2e4 e7e5 2.g1f3".
func FormatHistory(moves []string, firstBlack bool) string {
	var sb strings.Builder
	n := 1
	black := firstBlack
	if black && len(moves) > 0 {
		sb.WriteString("1...")
	}
	for i, m := range moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if !black {
			fmt.Fprintf(&sb, "%d.", n)
		}
		sb.WriteString(m)
		if black {
			n++
		}
		black = !black
	}
	return sb.String()
}
