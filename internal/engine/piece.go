package engine

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Notation returns the algebraic piece letter; pawns have none.
func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// pieceTypeFromLetter is the inverse of Notation for the non-pawn letters.
func pieceTypeFromLetter(b byte) (PieceType, bool) {
	switch b {
	case 'K':
		return King, true
	case 'Q':
		return Queen, true
	case 'R':
		return Rook, true
	case 'B':
		return Bishop, true
	case 'N':
		return Knight, true
	}
	return "", false
}

// Piece is a value owned by the board's position map; it has no identity
// beyond the square it occupies. HasMoved is set the first time the piece
// moves and never reverts. DoubledLastTurn marks a pawn that just advanced
// two ranks; at most one piece on the board carries it at a time, and only
// until the next move is applied.
type Piece struct {
	Type            PieceType `json:"type"`
	Color           Color     `json:"color"`
	HasMoved        bool      `json:"hasMoved"`
	DoubledLastTurn bool      `json:"doubledLastTurn"`
}

// Glyph returns the unicode figurine for the piece, for board rendering.
func (p Piece) Glyph() string {
	white := map[PieceType]string{
		King: "♔", Queen: "♕", Rook: "♖", Bishop: "♗", Knight: "♘", Pawn: "♙",
	}
	black := map[PieceType]string{
		King: "♚", Queen: "♛", Rook: "♜", Bishop: "♝", Knight: "♞", Pawn: "♟",
	}
	if p.Color == White {
		return white[p.Type]
	}
	return black[p.Type]
}
