package engine

import (
	"fmt"
	"strings"
)

// Notation is a parse/format strategy for move text. A board is configured
// with exactly one strategy; the two variants are never mixed.
type Notation interface {
	// Parse decodes text into a candidate move against the given board.
	// It resolves origins and capture flags but performs no legality
	// check beyond what resolution itself requires.
	Parse(b *Board, text string) (Move, error)
	// Format is the inverse, for echoing applied moves and history.
	Format(m Move) string
}

// NotationByName maps a configuration value to a strategy.
func NotationByName(name string) (Notation, error) {
	switch name {
	case "short":
		return ShortAlgebraic{}, nil
	case "long":
		return LongAlgebraic{}, nil
	}
	return nil, fmt.Errorf("unknown notation %q (want short or long)", name)
}

// ShortAlgebraic reads and writes piece-letter notation: "e4", "exd5",
// "Nf3", "Nxf3". Disambiguation syntax (Nbd2) is not accepted; a piece
// move that two pieces could make is rejected as ambiguous.
type ShortAlgebraic struct{}

func (ShortAlgebraic) Parse(b *Board, text string) (Move, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Move{}, parseErrorf(text, "empty input")
	}

	if pieceType, ok := pieceTypeFromLetter(text[0]); ok {
		return parsePieceMove(b, text, pieceType)
	}
	if text[0] >= 'a' && text[0] <= 'h' {
		if len(text) >= 2 && text[1] == 'x' {
			return parsePawnCapture(b, text)
		}
		return parsePawnPush(b, text)
	}
	return Move{}, parseErrorf(text, "unrecognized leading character %q", text[0])
}

// parsePieceMove resolves "Nf3" / "Nxf3" against the current legal-move
// set: the unique legal move of that piece type onto that square, with the
// capture marker required to match.
func parsePieceMove(b *Board, text string, pieceType PieceType) (Move, error) {
	rest := text[1:]
	capture := false
	if strings.HasPrefix(rest, "x") {
		capture = true
		rest = rest[1:]
	}
	to, err := parseSquare(text, rest)
	if err != nil {
		return Move{}, err
	}

	var found []Move
	for _, m := range b.LegalMoves() {
		if m.Piece == pieceType && m.To == to && m.Capture == capture {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return Move{}, parseErrorf(text, "no %s move onto %s", pieceType, to)
	case 1:
		return found[0], nil
	}
	return Move{}, parseErrorf(text, "ambiguous: %d %ss can reach %s", len(found), pieceType, to)
}

// parsePawnCapture resolves "exd5": the capturing pawn is identified by
// its origin file, the destination by the trailing square.
func parsePawnCapture(b *Board, text string) (Move, error) {
	to, err := parseSquare(text, text[2:])
	if err != nil {
		return Move{}, err
	}
	fromFile := int(text[0]-'a') + 1
	for _, m := range b.LegalMoves() {
		if m.Piece == Pawn && m.Capture && m.From.File == fromFile && m.To == to {
			return m, nil
		}
	}
	return Move{}, parseErrorf(text, "no pawn on the %c-file captures on %s", text[0], to)
}

// parsePawnPush resolves "e4": the destination is the given square, the
// origin is the side-to-move pawn on that file. With several pawns on the
// file the one whose rank is nearest the destination wins, lower rank on a
// tie, so resolution is deterministic.
func parsePawnPush(b *Board, text string) (Move, error) {
	to, err := parseSquare(text, text)
	if err != nil {
		return Move{}, err
	}

	from := Coordinate{}
	found := false
	for c, p := range b.position {
		if p.Color != b.turnColor || p.Type != Pawn || c.File != to.File {
			continue
		}
		if !found || nearerPawn(c, from, to) {
			from = c
			found = true
		}
	}
	if !found {
		return Move{}, parseErrorf(text, "no %s pawn on the %c-file", b.turnColor, text[0])
	}
	return Move{From: from, To: to, Piece: Pawn}, nil
}

func nearerPawn(candidate, current, to Coordinate) bool {
	cd, dd := rankDistance(candidate, to), rankDistance(current, to)
	if cd != dd {
		return cd < dd
	}
	return candidate.Rank < current.Rank
}

func rankDistance(a, b Coordinate) int {
	d := a.Rank - b.Rank
	if d < 0 {
		return -d
	}
	return d
}

// parseSquare decodes a two-character destination like "d5". Errors are
// tagged with the full input text, not just the square.
func parseSquare(text, square string) (Coordinate, error) {
	if len(square) < 2 {
		return Coordinate{}, parseErrorf(text, "missing destination square")
	}
	if square[1] < '0' || square[1] > '9' {
		return Coordinate{}, parseErrorf(text, "rank %q is not a digit", square[1])
	}
	c, err := NewCoordinate(square[0], int(square[1]-'0'))
	if err != nil {
		return Coordinate{}, parseErrorf(text, "%v", err)
	}
	return c, nil
}

func (ShortAlgebraic) Format(m Move) string {
	var sb strings.Builder
	sb.WriteString(m.Piece.Notation())
	if m.Capture {
		if m.Piece == Pawn {
			sb.WriteByte(m.From.fileLetter())
		}
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	return sb.String()
}

// LongAlgebraic reads and writes coordinate-pair notation: exactly four
// characters, origin square then destination square ("e2e4"). Piece type
// and capture flag are derived from the position at parse time.
type LongAlgebraic struct{}

func (LongAlgebraic) Parse(b *Board, text string) (Move, error) {
	text = strings.TrimSpace(text)
	if len(text) != 4 {
		return Move{}, parseErrorf(text, "want exactly 4 characters")
	}
	from, err := parseSquare(text, text[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := parseSquare(text, text[2:])
	if err != nil {
		return Move{}, err
	}

	m := Move{From: from, To: to}
	// An empty origin leaves the piece type unset; MakeMove will reject
	// the move as illegal rather than parsing failing here.
	if piece, ok := b.PieceAt(from); ok {
		m.Piece = piece.Type
		if victim, ok := b.PieceAt(to); ok && victim.Color != piece.Color {
			m.Capture = true
		}
	}
	return m, nil
}

func (LongAlgebraic) Format(m Move) string {
	return m.From.String() + m.To.String()
}
