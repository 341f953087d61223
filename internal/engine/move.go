package engine

// Move is a plain value: the occupied origin, the destination, the type of
// the moving piece and whether the move captures. Two moves are the same
// move iff all four fields match, which is what MakeMove's containment
// check relies on.
type Move struct {
	From    Coordinate `json:"from"`
	To      Coordinate `json:"to"`
	Piece   PieceType  `json:"piece"`
	Capture bool       `json:"capture"`
}

func (m Move) rankDelta() int {
	d := m.To.Rank - m.From.Rank
	if d < 0 {
		return -d
	}
	return d
}
