package model

import "github.com/owalsh/minichess/internal/engine"

// boardGrid projects the engine's position map into the 8x8 grid clients
// render: row 0 is rank 8, column 0 is the a-file, nil means empty.
func boardGrid(b *engine.Board) [][]*engine.Piece {
	grid := make([][]*engine.Piece, 8)
	for i := range grid {
		grid[i] = make([]*engine.Piece, 8)
	}
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			if piece, ok := b.PieceAt(engine.Coordinate{File: file, Rank: rank}); ok {
				p := piece
				grid[8-rank][file-1] = &p
			}
		}
	}
	return grid
}
