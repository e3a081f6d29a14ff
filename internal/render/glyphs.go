package render

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"netchess/internal/board"
)

// Piece outlines on a 45x45 canvas. Fill and stroke come from the wrapper.
var glyphShapes = map[board.PieceType]string{
	board.Pawn: `<circle cx="22.5" cy="13" r="5"/>
<path d="M15 36 L18 21 L27 21 L30 36 Z"/>
<rect x="11" y="36" width="23" height="4"/>`,
	board.Knight: `<path d="M13 38 L32 38 L31 26 C31 17 27 11 20 9 L19 12 L15 15 L10 24 L13 28 L19 24 L20 28 Z"/>`,
	board.Bishop: `<circle cx="22.5" cy="7" r="2.5"/>
<path d="M22.5 10 C16 15 15 22 18 28 L27 28 C30 22 29 15 22.5 10 Z"/>
<rect x="15" y="28" width="15" height="4"/>
<rect x="11" y="34" width="23" height="5"/>`,
	board.Rook: `<path d="M11 14 L11 9 L15 9 L15 11 L20 11 L20 9 L25 9 L25 11 L30 11 L30 9 L34 9 L34 14 Z"/>
<rect x="14" y="14" width="17" height="20"/>
<rect x="10" y="34" width="25" height="5"/>`,
	board.Queen: `<circle cx="9" cy="12" r="2"/>
<circle cx="18" cy="9" r="2"/>
<circle cx="27" cy="9" r="2"/>
<circle cx="36" cy="12" r="2"/>
<path d="M9 14 L14 32 L31 32 L36 14 L29 25 L27 11 L22.5 24 L18 11 L16 25 Z"/>
<rect x="12" y="33" width="21" height="6"/>`,
	board.King: `<path d="M22.5 5 L22.5 15 M18.5 9 L26.5 9" fill="none" stroke-width="2"/>
<path d="M11 32 C7 24 12 15 22.5 20 C33 15 38 24 34 32 Z"/>
<rect x="11" y="33" width="23" height="6"/>`,
}

func glyphSVG(p board.Piece) string {
	fill, stroke := "#ffffff", "#000000"
	if p.Color == board.Black {
		fill, stroke = "#202020", "#000000"
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">
<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">
%s
</g>
</svg>`, fill, stroke, glyphShapes[p.Type])
}

type glyphKey struct {
	piece board.Piece
	size  int
}

var (
	glyphMu    sync.Mutex
	glyphCache = make(map[glyphKey]*image.RGBA)
)

// glyph rasterizes the piece at size x size pixels. Results are cached.
func glyph(p board.Piece, size int) (*image.RGBA, error) {
	key := glyphKey{p, size}

	glyphMu.Lock()
	defer glyphMu.Unlock()

	if img, ok := glyphCache[key]; ok {
		return img, nil
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(glyphSVG(p)))
	if err != nil {
		return nil, fmt.Errorf("parse %s glyph: %w", p, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	glyphCache[key] = rgba
	return rgba, nil
}
