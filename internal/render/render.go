// Package render draws positions as PNG board diagrams.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"netchess/internal/board"
)

const (
	DefaultSquareSize = 60
	MinSquareSize     = 16
	MaxSquareSize     = 160
)

var (
	lightSquare = color.RGBA{0xf0, 0xd9, 0xb5, 0xff}
	darkSquare  = color.RGBA{0xb5, 0x88, 0x63, 0xff}
	highlight   = color.RGBA{0xcd, 0xd2, 0x6a, 0xff}
	checkTint   = color.RGBA{0xe0, 0x50, 0x50, 0xff}
)

// Options control the diagram layout.
type Options struct {
	SquareSize int
	Flip       bool // draw from Black's side
	Labels     bool
	Highlight  []board.Coordinate
}

func DefaultOptions() Options {
	return Options{SquareSize: DefaultSquareSize, Labels: true}
}

func (o Options) squareSize() int {
	switch {
	case o.SquareSize == 0:
		return DefaultSquareSize
	case o.SquareSize < MinSquareSize:
		return MinSquareSize
	case o.SquareSize > MaxSquareSize:
		return MaxSquareSize
	}
	return o.SquareSize
}

// origin returns the top-left pixel of c.
func (o Options) origin(c board.Coordinate, size int) image.Point {
	col, row := c.File, 7-c.Rank
	if o.Flip {
		col, row = 7-c.File, c.Rank
	}
	return image.Pt(col*size, row*size)
}

// Image draws p. A king in check has its square tinted.
func Image(p *board.Position, opts Options) (*image.RGBA, error) {
	size := opts.squareSize()
	img := image.NewRGBA(image.Rect(0, 0, 8*size, 8*size))

	marked := make(map[board.Coordinate]bool, len(opts.Highlight))
	for _, c := range opts.Highlight {
		marked[c] = true
	}
	checked := board.NoSquare
	if p.InCheck() {
		if k, ok := p.KingSquare(p.SideToMove()); ok {
			checked = k
		}
	}

	for _, c := range board.AllCoordinates() {
		fill := lightSquare
		if (c.File+c.Rank)%2 == 0 {
			fill = darkSquare
		}
		switch {
		case c == checked:
			fill = checkTint
		case marked[c]:
			fill = highlight
		}

		at := opts.origin(c, size)
		rect := image.Rect(at.X, at.Y, at.X+size, at.Y+size)
		draw.Draw(img, rect, &image.Uniform{fill}, image.Point{}, draw.Src)

		pc := p.PieceAt(c)
		if pc.IsEmpty() {
			continue
		}
		g, err := glyph(pc, size)
		if err != nil {
			return nil, err
		}
		draw.Draw(img, rect, g, image.Point{}, draw.Over)
	}

	if opts.Labels && size >= 24 {
		drawLabels(img, opts, size)
	}
	return img, nil
}

// drawLabels writes files along the bottom edge and ranks along the left edge.
func drawLabels(img *image.RGBA, opts Options, size int) {
	face := basicfont.Face7x13
	metrics := face.Metrics()

	for i := 0; i < 8; i++ {
		file := board.NewCoordinate(i, 0)
		rank := board.NewCoordinate(0, i)
		if opts.Flip {
			file = board.NewCoordinate(i, 7)
			rank = board.NewCoordinate(7, i)
		}

		at := opts.origin(file, size)
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(labelColor(file)),
			Face: face,
			Dot:  fixed.P(at.X+size-9, at.Y+size-metrics.Descent.Ceil()-1),
		}
		d.DrawString(string(rune('a' + file.File)))

		at = opts.origin(rank, size)
		d.Src = image.NewUniform(labelColor(rank))
		d.Dot = fixed.P(at.X+2, at.Y+metrics.Ascent.Ceil()+1)
		d.DrawString(string(rune('1' + rank.Rank)))
	}
}

// labelColor contrasts with the square the label sits on.
func labelColor(c board.Coordinate) color.Color {
	if (c.File+c.Rank)%2 == 0 {
		return lightSquare
	}
	return darkSquare
}

// PNG encodes the diagram of p to w.
func PNG(w io.Writer, p *board.Position, opts Options) error {
	img, err := Image(p, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
