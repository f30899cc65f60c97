package server

import (
	"fmt"

	bb "chess-rules/bitboard"
	"chess-rules/board"
	"chess-rules/game"
	"chess-rules/position"
)

// moveRequest accepts either coordinate notation ("e7e8q") in Move or the
// squares spelled out in From, To and Promotion.
type moveRequest struct {
	Move      string `json:"move,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Promotion string `json:"promotion,omitempty"`
}

func (req moveRequest) play(g *game.Game) (position.Result, error) {
	if req.Move != "" {
		return g.PlayCoordinates(req.Move)
	}
	from, err := bb.ParseSquare(req.From)
	if err != nil {
		return position.Result{}, fmt.Errorf("from: %w", err)
	}
	to, err := bb.ParseSquare(req.To)
	if err != nil {
		return position.Result{}, fmt.Errorf("to: %w", err)
	}
	promote := board.NoPiece
	if req.Promotion != "" {
		if promote, err = promotionKind(req.Promotion); err != nil {
			return position.Result{}, err
		}
	}
	return g.PlaySquares(from, to, promote)
}

// promotionKind maps a piece letter to a kind. The position recolors it
// for the mover.
func promotionKind(s string) (board.PieceKind, error) {
	pt, err := game.ParsePromotion(s)
	if err != nil {
		return board.NoPiece, err
	}
	return board.Kind(board.White, pt), nil
}

type moveResponse struct {
	Status string    `json:"status"`
	Reason string    `json:"reason,omitempty"`
	Move   string    `json:"move"`
	Check  bool      `json:"check"`
	Game   game.View `json:"game"`
}

func newMoveResponse(res position.Result, v game.View) moveResponse {
	out := moveResponse{
		Status: res.Status.String(),
		Move:   res.Move.String(),
		Check:  res.Check,
		Game:   v,
	}
	if res.Status == position.StatusIllegal {
		out.Reason = res.Reason.String()
	}
	return out
}
