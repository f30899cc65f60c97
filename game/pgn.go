package game

import (
	"fmt"
	"io"

	chess "github.com/corentings/chess/v2"

	bb "chess-rules/bitboard"
	"chess-rules/board"
)

// LoadPGN replays the main line of a PGN game through a new Game. The
// starting position comes from the FEN tag when present. It also returns
// the final placement the PGN reader itself arrived at, so callers can
// compare the two.
func LoadPGN(r io.Reader) (*Game, string, error) {
	pgnOpt, err := chess.PGN(r)
	if err != nil {
		return nil, "", fmt.Errorf("game: parsing PGN: %w", err)
	}
	ref := chess.NewGame(pgnOpt)

	g := New()
	if tag := ref.GetTagPair("FEN"); tag != "" {
		if g, err = FromFEN(tag); err != nil {
			return nil, "", fmt.Errorf("game: PGN start position: %w", err)
		}
	}

	for i, mv := range ref.Moves() {
		promote := board.NoPiece
		switch mv.Promo() {
		case chess.Queen:
			promote = board.Kind(board.White, board.Queen)
		case chess.Rook:
			promote = board.Kind(board.White, board.Rook)
		case chess.Bishop:
			promote = board.Kind(board.White, board.Bishop)
		case chess.Knight:
			promote = board.Kind(board.White, board.Knight)
		}
		if _, err := g.PlaySquares(bb.Square(mv.S1()), bb.Square(mv.S2()), promote); err != nil {
			return g, "", fmt.Errorf("game: PGN ply %d (%s%s): %w", i+1, bb.Square(mv.S1()), bb.Square(mv.S2()), err)
		}
	}
	return g, ref.Position().Board().String(), nil
}
