package render

import (
	"strings"
	"testing"

	"github.com/owalsh/minichess/internal/engine"
)

func TestBoardSVG(t *testing.T) {
	var sb strings.Builder
	BoardSVG(&sb, engine.NewBoard(nil))
	out := sb.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not a complete SVG document")
	}
	// The starting position shows both kings.
	for _, glyph := range []string{"♔", "♚", "♙", "♟"} {
		if !strings.Contains(out, glyph) {
			t.Errorf("missing %s in rendered board", glyph)
		}
	}
	if got := strings.Count(out, "<rect"); got < 64 {
		t.Errorf("only %d rects drawn, want at least the 64 squares", got)
	}
}
