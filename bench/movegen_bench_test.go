package bench

import (
	"testing"

	bb "chess-rules/bitboard"
	"chess-rules/board"
	"chess-rules/fen"
	"chess-rules/position"
)

func benchLegalMoves(b *testing.B, f string) {
	p, err := fen.New(f)
	if err != nil {
		b.Fatalf("fen.New: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.LegalMoves()
	}
}

func BenchmarkLegalMoves_Initial(b *testing.B) {
	benchLegalMoves(b, fen.StartPos)
}

func BenchmarkLegalMoves_Kiwipete(b *testing.B) {
	benchLegalMoves(b, kiwipete)
}

func BenchmarkLegalMoves_Pos6(b *testing.B) {
	benchLegalMoves(b, "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10")
}

func BenchmarkAttackedSquares_Kiwipete(b *testing.B) {
	p, err := fen.New(kiwipete)
	if err != nil {
		b.Fatalf("fen.New: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.AttackedSquares(board.Black)
	}
}

// Each iteration plays every legal move on a fresh clone.
func BenchmarkMakeMove_AllMoves_Initial(b *testing.B) {
	p := position.New()
	moves := p.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			if res := p.Clone().MakeMove(m); res.Status == position.StatusIllegal {
				b.Fatalf("illegal move in cached list: %v", m)
			}
		}
	}
}

func BenchmarkRejectSelfCheck(b *testing.B) {
	// the c2 pawn is pinned by the bishop on a4
	p, err := fen.New("4k3/8/8/8/b7/8/2P5/3K4 w - - 0 1")
	if err != nil {
		b.Fatalf("fen.New: %v", err)
	}
	m := position.NewMove(board.WhitePawn, bb.C2, bb.C3)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := p.MakeMove(m); res.Reason != position.SelfCheck {
			b.Fatalf("pinned pawn moved")
		}
	}
}

func BenchmarkParseFEN(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := fen.New(kiwipete); err != nil {
			b.Fatal(err)
		}
	}
}
