package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustCoord(t *testing.T, square string) Coordinate {
	t.Helper()
	c, err := NewCoordinate(square[0], int(square[1]-'0'))
	if err != nil {
		t.Fatalf("bad square %q: %v", square, err)
	}
	return c
}

// testBoard builds a board with an arbitrary position, for cases the
// starting position cannot reach.
func testBoard(turn Color, pieces map[Coordinate]Piece) *Board {
	return &Board{
		position:  pieces,
		turnColor: turn,
		notation:  ShortAlgebraic{},
	}
}

func moveSet(moves []Move) map[Move]bool {
	set := make(map[Move]bool, len(moves))
	for _, m := range moves {
		set[m] = true
	}
	return set
}

func TestOpeningLegalMoves(t *testing.T) {
	b := NewBoard(nil)

	want := make(map[Move]bool)
	for file := 1; file <= 8; file++ {
		from := Coordinate{File: file, Rank: 2}
		want[Move{From: from, To: Coordinate{File: file, Rank: 3}, Piece: Pawn}] = true
		want[Move{From: from, To: Coordinate{File: file, Rank: 4}, Piece: Pawn}] = true
	}
	for _, knight := range []struct{ from, to string }{
		{"b1", "a3"}, {"b1", "c3"}, {"g1", "f3"}, {"g1", "h3"},
	} {
		want[Move{
			From:  mustCoord(t, knight.from),
			To:    mustCoord(t, knight.to),
			Piece: Knight,
		}] = true
	}

	got := moveSet(b.LegalMoves())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("opening moves mismatch (-want +got):\n%s\n%s", diff, b)
	}
}

func TestMakeMovePawnDoubleStep(t *testing.T) {
	b := NewBoard(nil)

	move, err := b.Parse("e4")
	if err != nil {
		t.Fatalf("parse e4: %v", err)
	}
	if err := b.MakeMove(move); err != nil {
		t.Fatalf("make e4: %v", err)
	}

	if _, ok := b.PieceAt(mustCoord(t, "e2")); ok {
		t.Error("e2 should be empty after the pawn leaves it")
	}
	pawn, ok := b.PieceAt(mustCoord(t, "e4"))
	if !ok {
		t.Fatal("no piece on e4")
	}
	want := Piece{Type: Pawn, Color: White, HasMoved: true, DoubledLastTurn: true}
	if diff := cmp.Diff(want, pawn); diff != "" {
		t.Errorf("pawn on e4 mismatch (-want +got):\n%s", diff)
	}
	if got := b.Turn(); got != Black {
		t.Errorf("turn = %s, want %s", got, Black)
	}
	if got := len(b.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestMakeMoveRejectsReplay(t *testing.T) {
	b := NewBoard(nil)

	move, err := b.Parse("e4")
	if err != nil {
		t.Fatalf("parse e4: %v", err)
	}
	if err := b.MakeMove(move); err != nil {
		t.Fatalf("first application: %v", err)
	}

	err = b.MakeMove(move)
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("second application: got %v, want ErrIllegalMove", err)
	}
	if got := b.Turn(); got != Black {
		t.Errorf("failed move changed the turn to %s", got)
	}
	if got := len(b.History()); got != 1 {
		t.Errorf("failed move grew the history to %d", got)
	}
}

func TestMakeMoveUnknownMove(t *testing.T) {
	b := NewBoard(nil)

	// Structurally fine, but no rook moves are ever generated.
	move := Move{From: mustCoord(t, "a1"), To: mustCoord(t, "a3"), Piece: Rook}
	if err := b.MakeMove(move); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("got %v, want ErrIllegalMove", err)
	}
}

func TestTurnAlternation(t *testing.T) {
	b := NewBoard(nil)

	for i, text := range []string{"e4", "e5", "Nf3", "Nc6", "Nc3", "Nf6"} {
		if got, want := b.Turn(), turnForPly(i); got != want {
			t.Fatalf("before ply %d: turn = %s, want %s", i, got, want)
		}
		move, err := b.Parse(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		if err := b.MakeMove(move); err != nil {
			t.Fatalf("apply %q: %v\n%s", text, err, b)
		}
	}
	if got := b.Turn(); got != White {
		t.Errorf("after 6 plies: turn = %s, want %s", got, White)
	}
}

func turnForPly(i int) Color {
	if i%2 == 0 {
		return White
	}
	return Black
}

func TestDoubledLastTurnLifecycle(t *testing.T) {
	b := NewBoard(nil)

	apply := func(text string) {
		t.Helper()
		move, err := b.Parse(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		if err := b.MakeMove(move); err != nil {
			t.Fatalf("apply %q: %v", text, err)
		}
	}

	apply("e4")
	if got := doubledSquares(b); len(got) != 1 || got[0] != mustCoord(t, "e4") {
		t.Fatalf("after e4: doubled pawns on %v, want [e4]", got)
	}

	// The reply is itself a double step: the flag moves, it never piles up.
	apply("d5")
	if got := doubledSquares(b); len(got) != 1 || got[0] != mustCoord(t, "d5") {
		t.Fatalf("after d5: doubled pawns on %v, want [d5]", got)
	}

	apply("Nf3")
	if got := doubledSquares(b); len(got) != 0 {
		t.Fatalf("after Nf3: doubled pawns on %v, want none", got)
	}
}

func doubledSquares(b *Board) []Coordinate {
	var out []Coordinate
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			c := Coordinate{File: file, Rank: rank}
			if p, ok := b.PieceAt(c); ok && p.DoubledLastTurn {
				out = append(out, c)
			}
		}
	}
	return out
}

func TestKnightOnCorner(t *testing.T) {
	from := Coordinate{File: 1, Rank: 1}
	b := testBoard(White, map[Coordinate]Piece{
		from: {Type: Knight, Color: White},
	})

	want := moveSet([]Move{
		{From: from, To: Coordinate{File: 2, Rank: 3}, Piece: Knight},
		{From: from, To: Coordinate{File: 3, Rank: 2}, Piece: Knight},
	})
	got := moveSet(b.LegalMoves())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("corner knight moves mismatch (-want +got):\n%s", diff)
	}
}

func TestKnightBoxedInByOwnPieces(t *testing.T) {
	from := Coordinate{File: 4, Rank: 4} // d4
	pieces := map[Coordinate]Piece{
		from: {Type: Knight, Color: White},
	}
	for _, square := range []string{"b3", "b5", "c2", "c6", "e2", "e6", "f3", "f5"} {
		pieces[mustCoord(t, square)] = Piece{Type: Rook, Color: White}
	}
	b := testBoard(White, pieces)

	for _, m := range b.LegalMoves() {
		if m.Piece == Knight {
			t.Errorf("boxed-in knight generated %s -> %s", m.From, m.To)
		}
	}
}

func TestPawnBlockedBySameColor(t *testing.T) {
	b := testBoard(White, map[Coordinate]Piece{
		mustCoord(t, "e2"): {Type: Pawn, Color: White},
		mustCoord(t, "e3"): {Type: Rook, Color: White},
	})

	for _, m := range b.LegalMoves() {
		if m.Piece == Pawn {
			t.Errorf("blocked pawn generated %s -> %s", m.From, m.To)
		}
	}
}

func TestPawnDoubleStepNeedsBothSquaresEmpty(t *testing.T) {
	b := testBoard(White, map[Coordinate]Piece{
		mustCoord(t, "e2"): {Type: Pawn, Color: White},
		mustCoord(t, "e4"): {Type: Pawn, Color: Black},
	})

	want := moveSet([]Move{
		{From: mustCoord(t, "e2"), To: mustCoord(t, "e3"), Piece: Pawn},
	})
	got := moveSet(b.LegalMoves())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

func TestPawnCaptures(t *testing.T) {
	b := testBoard(White, map[Coordinate]Piece{
		mustCoord(t, "e4"): {Type: Pawn, Color: White, HasMoved: true},
		mustCoord(t, "d5"): {Type: Pawn, Color: Black, HasMoved: true},
		mustCoord(t, "f5"): {Type: Rook, Color: White},
	})

	want := moveSet([]Move{
		{From: mustCoord(t, "e4"), To: mustCoord(t, "e5"), Piece: Pawn},
		{From: mustCoord(t, "e4"), To: mustCoord(t, "d5"), Piece: Pawn, Capture: true},
	})
	got := moveSet(b.LegalMoves())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name     string
		notation Notation
	}{
		{"short", ShortAlgebraic{}},
		{"long", LongAlgebraic{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard(tc.notation)
			for _, m := range b.LegalMoves() {
				text := b.Format(m)
				parsed, err := b.Parse(text)
				if err != nil {
					t.Errorf("parse %q: %v", text, err)
					continue
				}
				if parsed != m {
					t.Errorf("round trip of %q: got %+v, want %+v", text, parsed, m)
				}
			}
		})
	}
}
