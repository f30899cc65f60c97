package position_test

import (
	"testing"

	bb "chess-rules/bitboard"
	"chess-rules/board"
	"chess-rules/position"
)

func TestMaterial(t *testing.T) {
	p := position.New()
	if w, b := p.Material(board.White), p.Material(board.Black); w != 39 || b != 39 || p.Evaluation() != 0 {
		t.Fatalf("initial: white %d black %d eval %d", w, b, p.Evaluation())
	}
	mustPlay(t, p, bb.E2, bb.E4)
	mustPlay(t, p, bb.D7, bb.D5)
	mustPlay(t, p, bb.E4, bb.D5)
	if b := p.Material(board.Black); b != 38 || p.Evaluation() != 1 {
		t.Fatalf("after exd5: black %d eval %d", b, p.Evaluation())
	}

	cases := []struct {
		fen  string
		eval int
	}{
		{"8/4P3/8/8/8/8/k7/4K3 w - - 0 1", 1},
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", 0},
		{"r3k2r/8/8/8/8/8/8/1N2K1B1 w - - 0 1", -4},
		{"3qk3/8/8/8/8/8/8/R2QK2R w - - 0 1", 10},
	}
	for _, c := range cases {
		if got := mustFEN(t, c.fen).Evaluation(); got != c.eval {
			t.Errorf("%s: got %d want %d", c.fen, got, c.eval)
		}
	}
}
