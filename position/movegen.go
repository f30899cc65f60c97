package position

import (
	"cmp"

	"golang.org/x/exp/slices"

	bb "chess-rules/bitboard"
	"chess-rules/board"
)

// candidates lists every pseudo-legal move for the side to move, with
// promotions expanded to all four pieces and castling included.
func (p *Position) candidates() []Move {
	c := p.toMove
	out := make([]Move, 0, 64)
	for _, k := range board.KindsOf(c) {
		for pieces := p.board.Bitboard(k); pieces != 0; {
			from := pieces.PopLSB()
			targets := p.destinations(k, from)
			if k.Type() == board.King {
				for _, w := range []Wing{Kingside, Queenside} {
					if r := castleRoutes[c][w]; r.kingFrom == from && p.castling.Has(c, w) {
						targets = bb.SetBit(targets, r.kingTo)
					}
				}
			}
			for targets != 0 {
				to := targets.PopLSB()
				if k.Type() == board.Pawn && (to.Rank() == 0 || to.Rank() == 7) {
					for _, promo := range board.PromotionKinds(c) {
						m := NewMove(k, from, to)
						m.PromoteTo = promo
						out = append(out, m)
					}
					continue
				}
				out = append(out, NewMove(k, from, to))
			}
		}
	}
	return out
}

// legal runs the full legality test on a candidate without keeping it.
func (p *Position) legal(m *Move) bool {
	if p.validate(m) != ReasonNone {
		return false
	}
	if !m.Promotion {
		m.PromoteTo = board.NoPiece
	}
	st, ok := p.commit(*m)
	if ok {
		p.rollback(&st)
	}
	return ok
}

// LegalMoves returns every fully legal move for the side to move, ordered
// by origin, then destination, then promotion piece.
func (p *Position) LegalMoves() []Move {
	cands := p.candidates()
	out := cands[:0]
	for _, m := range cands {
		if p.legal(&m) {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b Move) int {
		if a.From != b.From {
			return cmp.Compare(a.From, b.From)
		}
		if a.To != b.To {
			return cmp.Compare(a.To, b.To)
		}
		return cmp.Compare(a.PromoteTo, b.PromoteTo)
	})
	return out
}

// HasAnyMoves reports whether the side to move has at least one legal move.
func (p *Position) HasAnyMoves() bool {
	for _, m := range p.candidates() {
		if p.legal(&m) {
			return true
		}
	}
	return false
}

// InCheckmate reports whether the side to move is checkmated.
func (p *Position) InCheckmate() bool {
	return p.inCheck[p.toMove] && !p.HasAnyMoves()
}

// InStalemate reports whether the side to move has no legal move and is
// not in check.
func (p *Position) InStalemate() bool {
	return !p.inCheck[p.toMove] && !p.HasAnyMoves()
}

// ==========================
// Perft
// ==========================

// Perft counts leaf nodes of the legal move tree to the given depth.
func (p *Position) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		st, _ := p.commit(m)
		nodes += p.Perft(depth - 1)
		p.rollback(&st)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func (p *Position) PerftDivide(depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range p.LegalMoves() {
		st, _ := p.commit(m)
		out[m] = p.Perft(depth - 1)
		p.rollback(&st)
	}
	return out
}
