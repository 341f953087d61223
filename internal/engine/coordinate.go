package engine

import "fmt"

// Coordinate identifies a board square. File and Rank both run 1..8,
// with file 1 = the a-file. A Coordinate outside that range is never
// constructed through NewCoordinate.
type Coordinate struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

// NewCoordinate builds a Coordinate from a file letter ('a'..'h') and a
// rank. Out-of-range input fails with ErrInvalidCoordinate; it is never
// clamped, since this is the only guard between parsed text and the board.
func NewCoordinate(file byte, rank int) (Coordinate, error) {
	f := int(file-'a') + 1
	if f < 1 || f > 8 || rank < 1 || rank > 8 {
		return Coordinate{}, fmt.Errorf("%w: %c%d", ErrInvalidCoordinate, file, rank)
	}
	return Coordinate{File: f, Rank: rank}, nil
}

func (c Coordinate) onBoard() bool {
	return c.File >= 1 && c.File <= 8 && c.Rank >= 1 && c.Rank <= 8
}

func (c Coordinate) fileLetter() byte {
	return byte('a' + c.File - 1)
}

// String renders the square in algebraic form, e.g. "e2".
func (c Coordinate) String() string {
	return fmt.Sprintf("%c%d", c.fileLetter(), c.Rank)
}
