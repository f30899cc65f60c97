package game

import (
	"fmt"
	"strings"

	bb "chess-rules/bitboard"
	"chess-rules/board"
	"chess-rules/position"
)

// Coordinates is a move given as two squares plus an optional promotion
// letter, as in "e2e4" or "e7e8q".
type Coordinates struct {
	From, To  bb.Square
	Promotion board.PieceType
	Promotes  bool
}

// ParseCoordinates reads a coordinate move.
func ParseCoordinates(s string) (Coordinates, error) {
	var c Coordinates
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return c, fmt.Errorf("game: invalid move %q", s)
	}
	var err error
	if c.From, err = bb.ParseSquare(s[0:2]); err != nil {
		return c, fmt.Errorf("game: invalid move %q: %w", s, err)
	}
	if c.To, err = bb.ParseSquare(s[2:4]); err != nil {
		return c, fmt.Errorf("game: invalid move %q: %w", s, err)
	}
	if len(s) == 5 {
		pt, err := ParsePromotion(s[4:])
		if err != nil {
			return c, fmt.Errorf("game: invalid move %q: %w", s, err)
		}
		c.Promotion, c.Promotes = pt, true
	}
	return c, nil
}

// ParsePromotion reads one of "n", "b", "r", "q" (either case).
func ParsePromotion(s string) (board.PieceType, error) {
	switch strings.ToLower(s) {
	case "n":
		return board.Knight, nil
	case "b":
		return board.Bishop, nil
	case "r":
		return board.Rook, nil
	case "q":
		return board.Queen, nil
	}
	return 0, ErrInvalidPromotion
}

// PlayCoordinates parses s and plays it.
func (g *Game) PlayCoordinates(s string) (position.Result, error) {
	c, err := ParseCoordinates(s)
	if err != nil {
		return position.Result{}, err
	}
	promote := board.NoPiece
	if c.Promotes {
		// color is fixed up by the position from the mover
		promote = board.Kind(board.White, c.Promotion)
	}
	return g.PlaySquares(c.From, c.To, promote)
}
