package position_test

import (
	"testing"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"chess-rules/fen"
	"chess-rules/position"
)

func ourMoves(p *position.Position) []string {
	var out []string
	for _, m := range p.LegalMoves() {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

func dragontoothMoves(f string) []string {
	b := dragontoothmg.ParseFen(f)
	var out []string
	for _, m := range b.GenerateLegalMoves() {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

func gooseMoves(t *testing.T, f string) []string {
	t.Helper()
	b, err := goosemg.ParseFEN(f)
	if err != nil {
		t.Fatalf("goosemg.ParseFEN(%q): %v", f, err)
	}
	var out []string
	for _, m := range b.GenerateMoves() {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

// TestLegalMovesMatchOracles walks a deterministic line from each fixture
// and compares the legal move list against two independent generators at
// every ply.
func TestLegalMovesMatchOracles(t *testing.T) {
	for _, c := range perftCases {
		p := mustFEN(t, c.fen)
		for ply := 0; ply < 40; ply++ {
			f := fen.Format(p)
			ours := ourMoves(p)
			if want := dragontoothMoves(f); !slices.Equal(ours, want) {
				t.Fatalf("%s ply %d %q:\n ours %v\n dragontooth %v", c.name, ply, f, ours, want)
			}
			if want := gooseMoves(t, f); !slices.Equal(ours, want) {
				t.Fatalf("%s ply %d %q:\n ours %v\n goosemg %v", c.name, ply, f, ours, want)
			}
			moves := p.LegalMoves()
			if len(moves) == 0 {
				break
			}
			m := moves[(ply*7+3)%len(moves)]
			if res := p.MakeMove(m); res.Status == position.StatusIllegal {
				t.Fatalf("%s ply %d: legal move %v rejected: %v", c.name, ply, m, res.Reason)
			}
		}
	}
}

func TestPerftMatchesGoose(t *testing.T) {
	for _, c := range perftCases {
		p := mustFEN(t, c.fen)
		b, err := goosemg.ParseFEN(c.fen)
		if err != nil {
			t.Fatalf("goosemg.ParseFEN: %v", err)
		}
		if got, want := p.Perft(2), goosemg.Perft(b, 2); got != want {
			t.Fatalf("%s perft(2): got %d goosemg %d", c.name, got, want)
		}
	}
}

func TestStatusMatchesGoose(t *testing.T) {
	for _, f := range []string{
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		"6kR/5pp1/8/8/8/8/8/6K1 b - - 0 1",
	} {
		p := mustFEN(t, f)
		b, err := goosemg.ParseFEN(f)
		if err != nil {
			t.Fatalf("goosemg.ParseFEN(%q): %v", f, err)
		}
		if p.InCheckmate() != b.InCheckmate() || p.InStalemate() != b.InStalemate() {
			t.Fatalf("%q: mate %v/%v stalemate %v/%v", f,
				p.InCheckmate(), b.InCheckmate(), p.InStalemate(), b.InStalemate())
		}
	}
}
