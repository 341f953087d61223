// Package render draws read-only projections of an engine board. It holds
// no game logic: everything here is derived from position lookups.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/owalsh/minichess/internal/engine"
)

const (
	squareSize = 48
	margin     = 24
)

// BoardSVG writes the position as an SVG image, rank 8 at the top and the
// a-file on the left, with rank and file labels in the margins.
func BoardSVG(w io.Writer, b *engine.Board) {
	size := 8*squareSize + 2*margin
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:#f4f1ea")

	for rank := 8; rank >= 1; rank-- {
		y := margin + (8-rank)*squareSize
		for file := 1; file <= 8; file++ {
			x := margin + (file-1)*squareSize
			fill := "fill:#b58863"
			if (file+rank)%2 == 0 {
				fill = "fill:#f0d9b5"
			}
			canvas.Rect(x, y, squareSize, squareSize, fill)

			piece, ok := b.PieceAt(engine.Coordinate{File: file, Rank: rank})
			if !ok {
				continue
			}
			canvas.Text(
				x+squareSize/2,
				y+squareSize/2+squareSize/6,
				piece.Glyph(),
				fmt.Sprintf("text-anchor:middle;font-size:%dpx", squareSize*3/4),
			)
		}
	}

	for i := 0; i < 8; i++ {
		label := "text-anchor:middle;font-size:12px;fill:#555"
		canvas.Text(margin+i*squareSize+squareSize/2, size-margin/3, fmt.Sprintf("%c", 'a'+i), label)
		canvas.Text(margin/2, margin+i*squareSize+squareSize/2+4, fmt.Sprintf("%d", 8-i), label)
	}

	canvas.End()
}
