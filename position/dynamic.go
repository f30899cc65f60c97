package position

import (
	"fmt"

	"chess-rules/attacks"
	bb "chess-rules/bitboard"
	"chess-rules/board"
)

// forward is the pawn step for c.
func forward(c board.Color) bb.Square {
	if c == board.White {
		return 8
	}
	return -8
}

// epMask is the live en-passant target if c may capture onto it.
func (p *Position) epMask(c board.Color) bb.Bitboard {
	if p.epTarget == bb.NoSquare || p.epSide == c {
		return 0
	}
	return bb.SquareBB(p.epTarget)
}

// pawnPushes returns the pushes available to a c pawn on sq: one step if
// empty, and two from the home rank if both squares are empty.
func (p *Position) pawnPushes(c board.Color, sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	pushes := p.board.PawnPushes(c, sq)
	one := sq + forward(c)
	if !pushes.Has(one) || occ.Has(one) {
		return 0
	}
	out := bb.SquareBB(one)
	if two := one + forward(c); pushes.Has(two) && !occ.Has(two) {
		out |= bb.SquareBB(two)
	}
	return out
}

// destinations is the pseudo-legal target set of kind k standing on sq.
// Castling is not included.
func (p *Position) destinations(k board.PieceKind, sq bb.Square) bb.Bitboard {
	c := k.Color()
	own := p.board.Pieces(c)
	enemy := p.board.Pieces(c.Other())
	occ := own | enemy
	switch k.Type() {
	case board.Pawn:
		return p.pawnPushes(c, sq, occ) | p.board.StaticAttacks(k, sq)&(enemy|p.epMask(c))
	case board.Knight, board.King:
		return p.board.StaticAttacks(k, sq) &^ own
	case board.Bishop:
		return attacks.BishopFrom(sq, occ) &^ own
	case board.Rook:
		return attacks.RookFrom(sq, occ) &^ own
	case board.Queen:
		return attacks.QueenFrom(sq, occ) &^ own
	default:
		panic(fmt.Sprintf("position: unknown piece type %d", k.Type()))
	}
}

// kindAttacks unions destinations over every k piece.
func (p *Position) kindAttacks(k board.PieceKind) bb.Bitboard {
	var out bb.Bitboard
	for pieces := p.board.Bitboard(k); pieces != 0; {
		out |= p.destinations(k, pieces.PopLSB())
	}
	return out
}

// AttackedSquares is every square c attacks, whatever stands on it. Pawns
// count their diagonals only.
func (p *Position) AttackedSquares(c board.Color) bb.Bitboard {
	occ := p.board.Occupied()
	var out bb.Bitboard
	for _, k := range board.KindsOf(c) {
		for pieces := p.board.Bitboard(k); pieces != 0; {
			sq := pieces.PopLSB()
			switch k.Type() {
			case board.Pawn, board.Knight, board.King:
				out |= p.board.StaticAttacks(k, sq)
			case board.Bishop:
				out |= attacks.BishopFrom(sq, occ)
			case board.Rook:
				out |= attacks.RookFrom(sq, occ)
			case board.Queen:
				out |= attacks.QueenFrom(sq, occ)
			default:
				panic(fmt.Sprintf("position: unknown piece type %d", k.Type()))
			}
		}
	}
	return out
}

// recompute regenerates all twelve dynamic attack sets and both check
// flags from the current occupancy.
func (p *Position) recompute() {
	for _, k := range board.Kinds {
		p.attacks[k] = p.kindAttacks(k)
	}
	for _, c := range []board.Color{board.White, board.Black} {
		p.inCheck[c] = p.AttackedSquares(c.Other()).Has(p.board.KingSquare(c))
	}
}
