package engine

import "strings"

// Board owns the position map, the side to move and the move history. It
// takes no locks of its own: exactly one goroutine is expected to own a
// Board for its whole lifetime (the session layer serializes access).
type Board struct {
	position  map[Coordinate]Piece
	turnColor Color
	history   []Move
	notation  Notation
}

// NewBoard returns a board with the standard starting position, White to
// move and an empty history. A nil notation defaults to short algebraic.
func NewBoard(notation Notation) *Board {
	if notation == nil {
		notation = ShortAlgebraic{}
	}
	b := &Board{
		position:  make(map[Coordinate]Piece, 32),
		turnColor: White,
		notation:  notation,
	}

	backRank := map[int]PieceType{
		1: Rook, 2: Knight, 3: Bishop, 4: Queen, 5: King, 6: Bishop, 7: Knight, 8: Rook,
	}
	for _, color := range []Color{White, Black} {
		pawnRank, homeRank := 2, 1
		if color == Black {
			pawnRank, homeRank = 7, 8
		}
		for file := 1; file <= 8; file++ {
			b.position[Coordinate{File: file, Rank: pawnRank}] = Piece{Type: Pawn, Color: color}
			b.position[Coordinate{File: file, Rank: homeRank}] = Piece{Type: backRank[file], Color: color}
		}
	}
	return b
}

// Turn reports the side to move.
func (b *Board) Turn() Color {
	return b.turnColor
}

// History returns the applied moves in order. The slice is a copy; the
// board's history is append-only and never rewritten.
func (b *Board) History() []Move {
	out := make([]Move, len(b.history))
	copy(out, b.history)
	return out
}

// PieceAt reports the piece occupying the square, if any.
func (b *Board) PieceAt(c Coordinate) (Piece, bool) {
	p, ok := b.position[c]
	return p, ok
}

// LegalMoves generates the pseudo-legal moves for the side to move. Only
// pawns and knights produce moves: sliding pieces and the king have no
// generation yet, en passant is never emitted (DoubledLastTurn is tracked
// but not consulted), and no king-safety filtering is applied. Callers
// must treat the result as an unordered set.
func (b *Board) LegalMoves() []Move {
	var moves []Move
	for from, piece := range b.position {
		if piece.Color != b.turnColor {
			continue
		}
		switch piece.Type {
		case Pawn:
			moves = append(moves, b.pawnMoves(from, piece)...)
		case Knight:
			moves = append(moves, b.knightMoves(from)...)
		}
	}
	return moves
}

func (b *Board) pawnMoves(from Coordinate, piece Piece) []Move {
	var moves []Move
	dir := 1
	if piece.Color == Black {
		dir = -1
	}

	one := Coordinate{File: from.File, Rank: from.Rank + dir}
	two := Coordinate{File: from.File, Rank: from.Rank + 2*dir}
	if _, occupied := b.position[one]; !occupied && one.onBoard() {
		moves = append(moves, Move{From: from, To: one, Piece: Pawn})
		if _, occupied := b.position[two]; !occupied && !piece.HasMoved && two.onBoard() {
			moves = append(moves, Move{From: from, To: two, Piece: Pawn})
		}
	}

	for _, df := range []int{-1, 1} {
		target := Coordinate{File: from.File + df, Rank: from.Rank + dir}
		if !target.onBoard() {
			continue
		}
		if victim, occupied := b.position[target]; occupied && victim.Color != piece.Color {
			moves = append(moves, Move{From: from, To: target, Piece: Pawn, Capture: true})
		}
	}
	return moves
}

var knightOffsets = [8][2]int{
	{-2, -1}, {-1, -2}, {-2, 1}, {-1, 2}, {2, 1}, {1, 2}, {2, -1}, {1, -2},
}

func (b *Board) knightMoves(from Coordinate) []Move {
	var moves []Move
	for _, off := range knightOffsets {
		target := Coordinate{File: from.File + off[0], Rank: from.Rank + off[1]}
		if !target.onBoard() {
			continue
		}
		occupant, occupied := b.position[target]
		if occupied && occupant.Color == b.turnColor {
			continue
		}
		moves = append(moves, Move{From: from, To: target, Piece: Knight, Capture: occupied})
	}
	return moves
}

// MakeMove applies the move if it is a member of the freshly recomputed
// legal-move set, and fails with ErrIllegalMove otherwise. On failure the
// board is left entirely unchanged.
func (b *Board) MakeMove(m Move) error {
	legal := false
	for _, candidate := range b.LegalMoves() {
		if candidate == m {
			legal = true
			break
		}
	}
	if !legal {
		return ErrIllegalMove
	}

	// The doubled flag only survives until the next applied move.
	for c, p := range b.position {
		if p.DoubledLastTurn {
			p.DoubledLastTurn = false
			b.position[c] = p
		}
	}

	piece := b.position[m.From]
	piece.HasMoved = true
	if piece.Type == Pawn && m.rankDelta() == 2 {
		piece.DoubledLastTurn = true
	}

	delete(b.position, m.From)
	b.position[m.To] = piece

	b.history = append(b.history, m)
	b.turnColor = b.turnColor.Opposite()
	return nil
}

// Parse decodes a line of notation text into a candidate move using the
// board's configured codec. The board is not consulted for legality here;
// that is MakeMove's job.
func (b *Board) Parse(text string) (Move, error) {
	return b.notation.Parse(b, strings.TrimSpace(text))
}

// Format renders a move in the board's configured notation.
func (b *Board) Format(m Move) string {
	return b.notation.Format(m)
}

// String renders the position as an 8x8 text grid, rank 8 first. Intended
// for logs and test failure output, not for clients.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		for file := 1; file <= 8; file++ {
			if piece, ok := b.position[Coordinate{File: file, Rank: rank}]; ok {
				sb.WriteString(piece.Glyph())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
