package main

import (
	"bytes"
	"strings"
	"testing"
)

func runShell(input string) string {
	var out bytes.Buffer
	run(strings.NewReader(input), &out)
	return out.String()
}

func TestShellMoves(t *testing.T) {
	out := runShell("e2e4\nmove e7e5\nd\nquit\nd\n")
	if !strings.Contains(out, "fen: rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Count(out, "fen:") != 1 {
		t.Fatalf("commands after quit were run:\n%s", out)
	}
}

func TestShellIllegal(t *testing.T) {
	out := runShell("e2e5\n")
	if !strings.Contains(out, "illegal: piece cannot move that way") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestShellPositionMoves(t *testing.T) {
	out := runShell("position startpos moves f2f3 e7e5 g2g4 d8h4\n")
	if !strings.Contains(out, "d8h4 checkmate, black wins") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestShellPromotionPrompt(t *testing.T) {
	out := runShell("position fen 8/4P3/8/8/8/8/k7/4K3 w - - 0 1\ne7e8\nx\nn\nbb wN\n")
	if !strings.Contains(out, "promote to (q/r/b/n): promote to (q/r/b/n): ") {
		t.Fatalf("expected a repeated prompt:\n%s", out)
	}
	if !strings.Contains(out, "e7e8n\n") {
		t.Fatalf("knight promotion not played:\n%s", out)
	}
	if !strings.Contains(out, "8 ░░░░▓░░░\n") {
		t.Fatalf("knight bitboard not drawn:\n%s", out)
	}
}

func TestShellPromotionAtEOF(t *testing.T) {
	out := runShell("position fen 8/4P3/8/8/8/8/k7/4K3 w - - 0 1\ne7e8\n")
	if !strings.Contains(out, "e7e8q") {
		t.Fatalf("expected a queen when input ends:\n%s", out)
	}
}

func TestShellLegalAndPerft(t *testing.T) {
	out := runShell("legal\nperft 2\nperft x\n")
	if !strings.HasPrefix(out, "20: ") {
		t.Fatalf("unexpected legal output:\n%s", out)
	}
	if !strings.Contains(out, "nodes 400\n") {
		t.Fatalf("unexpected perft output:\n%s", out)
	}
	if !strings.Contains(out, "info string Malformed perft depth: x") {
		t.Fatalf("bad depth not reported:\n%s", out)
	}
}

func TestShellUnknown(t *testing.T) {
	out := runShell("hello world\n")
	if !strings.Contains(out, "info string Unknown command: hello world") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
