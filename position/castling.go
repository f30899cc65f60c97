package position

import (
	bb "chess-rules/bitboard"
	"chess-rules/board"
)

// Wing selects the castling side.
type Wing uint8

const (
	Kingside  Wing = 0
	Queenside Wing = 1
)

func (w Wing) String() string {
	if w == Kingside {
		return "kingside"
	}
	return "queenside"
}

// CastlingRights holds one flag per side and wing, indexed [color][wing].
type CastlingRights [2][2]bool

// AllCastling grants every right.
func AllCastling() CastlingRights { return CastlingRights{{true, true}, {true, true}} }

// Has reports whether c may still castle on w.
func (cr CastlingRights) Has(c board.Color, w Wing) bool { return cr[c][w] }

// Any reports whether any right remains.
func (cr CastlingRights) Any() bool { return cr[0][0] || cr[0][1] || cr[1][0] || cr[1][1] }

// bits packs the rights into four bits for hashing.
func (cr CastlingRights) bits() int {
	var out int
	for c := 0; c < 2; c++ {
		for w := 0; w < 2; w++ {
			if cr[c][w] {
				out |= 1 << (c*2 + w)
			}
		}
	}
	return out
}

// castleRoute is the fixed geometry of one castling move.
type castleRoute struct {
	kingFrom, kingTo bb.Square
	rookFrom, rookTo bb.Square
	// between must be empty; transit must not be attacked.
	between, transit bb.Bitboard
}

var castleRoutes = [2][2]castleRoute{
	board.White: {
		Kingside: {bb.E1, bb.G1, bb.H1, bb.F1,
			bb.SetBits(0, bb.F1, bb.G1), bb.SetBits(0, bb.E1, bb.F1, bb.G1)},
		Queenside: {bb.E1, bb.C1, bb.A1, bb.D1,
			bb.SetBits(0, bb.B1, bb.C1, bb.D1), bb.SetBits(0, bb.E1, bb.D1, bb.C1)},
	},
	board.Black: {
		Kingside: {bb.E8, bb.G8, bb.H8, bb.F8,
			bb.SetBits(0, bb.F8, bb.G8), bb.SetBits(0, bb.E8, bb.F8, bb.G8)},
		Queenside: {bb.E8, bb.C8, bb.A8, bb.D8,
			bb.SetBits(0, bb.B8, bb.C8, bb.D8), bb.SetBits(0, bb.E8, bb.D8, bb.C8)},
	},
}

// castleWing returns the wing whose king route matches from/to.
func castleWing(c board.Color, from, to bb.Square) (Wing, bool) {
	for _, w := range []Wing{Kingside, Queenside} {
		r := castleRoutes[c][w]
		if r.kingFrom == from && r.kingTo == to {
			return w, true
		}
	}
	return 0, false
}

// rookWing returns the wing whose home corner is sq.
func rookWing(c board.Color, sq bb.Square) (Wing, bool) {
	for _, w := range []Wing{Kingside, Queenside} {
		if castleRoutes[c][w].rookFrom == sq {
			return w, true
		}
	}
	return 0, false
}

// castlingReason checks every precondition for c castling on w.
func (p *Position) castlingReason(c board.Color, w Wing) Reason {
	r := castleRoutes[c][w]
	if !p.castling.Has(c, w) {
		return CastlingPreconditionFailed
	}
	if !p.board.Bitboard(board.Kind(c, board.Rook)).Has(r.rookFrom) {
		return CastlingPreconditionFailed
	}
	if p.board.Occupied()&r.between != 0 {
		return CastlingPreconditionFailed
	}
	if p.AttackedSquares(c.Other())&r.transit != 0 {
		return CastlingPreconditionFailed
	}
	return ReasonNone
}
