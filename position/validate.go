package position

import (
	"fmt"

	"chess-rules/attacks"
	bb "chess-rules/bitboard"
	"chess-rules/board"
)

// validate runs the legality pipeline up to, but not including, the
// self-check test. It fills the move's flags and never mutates p.
func (p *Position) validate(m *Move) Reason {
	m.Capture, m.EnPassant, m.Castling, m.Promotion = false, false, false, false
	m.Captured = board.NoPiece
	if !m.Piece.Valid() || !m.From.Valid() || !m.To.Valid() {
		return GeometryViolation
	}

	c := m.Piece.Color()
	if c != p.toMove {
		return TurnViolation
	}
	if !p.board.Bitboard(m.Piece).Has(m.From) {
		return OriginMismatch
	}
	if m.From == m.To {
		return GeometryViolation
	}

	own := p.board.Pieces(c)
	enemy := p.board.Pieces(c.Other())
	occ := own | enemy

	switch m.Piece.Type() {
	case board.Pawn:
		if r := p.validatePawn(m, occ, enemy); r != ReasonNone {
			return r
		}
	case board.Knight:
		if !p.board.StaticAttacks(m.Piece, m.From).Has(m.To) {
			return GeometryViolation
		}
		if own.Has(m.To) {
			return PathBlocked
		}
	case board.King:
		if w, ok := castleWing(c, m.From, m.To); ok {
			if r := p.castlingReason(c, w); r != ReasonNone {
				return r
			}
			m.Castling = true
			return ReasonNone
		}
		if !p.board.StaticAttacks(m.Piece, m.From).Has(m.To) {
			return GeometryViolation
		}
		if own.Has(m.To) {
			return PathBlocked
		}
	case board.Bishop, board.Rook, board.Queen:
		if !p.board.StaticAttacks(m.Piece, m.From).Has(m.To) {
			return GeometryViolation
		}
		if !sliderFrom(m.Piece.Type(), m.From, occ).Has(m.To) || own.Has(m.To) {
			return PathBlocked
		}
	default:
		panic(fmt.Sprintf("position: unknown piece type %d", m.Piece.Type()))
	}

	if enemy.Has(m.To) {
		m.Capture = true
		m.Captured = p.board.PieceAt(m.To)
	}
	if m.Piece.Type() == board.Pawn {
		if m.EnPassant {
			m.Capture = true
			m.Captured = board.Kind(c.Other(), board.Pawn)
		}
		if lastRank := 7 * (1 - int(c)); m.To.Rank() == lastRank {
			m.Promotion = true
		}
	}
	return ReasonNone
}

func sliderFrom(pt board.PieceType, sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	switch pt {
	case board.Bishop:
		return attacks.BishopFrom(sq, occ)
	case board.Rook:
		return attacks.RookFrom(sq, occ)
	default:
		return attacks.QueenFrom(sq, occ)
	}
}

func (p *Position) validatePawn(m *Move, occ, enemy bb.Bitboard) Reason {
	c := m.Piece.Color()
	fwd := forward(c)
	switch {
	case m.To == m.From+fwd:
		if occ.Has(m.To) {
			return PathBlocked
		}
	case m.To == m.From+2*fwd:
		if !p.board.PawnPushes(c, m.From).Has(m.To) {
			return GeometryViolation
		}
		if occ.Has(m.From+fwd) || occ.Has(m.To) {
			return PathBlocked
		}
	case p.board.StaticAttacks(m.Piece, m.From).Has(m.To):
		switch {
		case enemy.Has(m.To):
		case p.epMask(c).Has(m.To):
			m.EnPassant = true
		default:
			return GeometryViolation
		}
	default:
		return GeometryViolation
	}
	return ReasonNone
}
