package position

import (
	"golang.org/x/exp/slices"

	bb "chess-rules/bitboard"
	"chess-rules/board"
)

// delta is one piece-map edit.
type delta struct {
	kind  board.PieceKind
	sq    bb.Square
	added bool
}

// moveState is the undo record for one applied move. Replaying deltas in
// reverse and restoring the saved fields returns the position to exactly
// its prior state.
type moveState struct {
	deltas []delta

	toMove        board.Color
	castling      CastlingRights
	epTarget      bb.Square
	epSide        board.Color
	halfmoveClock int
	halfmove      int
	inCheck       [2]bool
	attacks       [board.NumKinds]bb.Bitboard
}

func (p *Position) saveState() moveState {
	return moveState{
		deltas:        make([]delta, 0, 4),
		toMove:        p.toMove,
		castling:      p.castling,
		epTarget:      p.epTarget,
		epSide:        p.epSide,
		halfmoveClock: p.halfmoveClock,
		halfmove:      p.halfmove,
		inCheck:       p.inCheck,
		attacks:       p.attacks,
	}
}

func (p *Position) add(st *moveState, k board.PieceKind, sq bb.Square) {
	p.pieces.Add(k, sq)
	st.deltas = append(st.deltas, delta{k, sq, true})
}

func (p *Position) remove(st *moveState, k board.PieceKind, sq bb.Square) {
	p.pieces.Remove(k, sq)
	st.deltas = append(st.deltas, delta{k, sq, false})
}

// syncBoard rewrites the board bitboards of every kind touched by st.
func (p *Position) syncBoard(st *moveState) {
	changes := make(board.PieceMap, len(st.deltas))
	for _, d := range st.deltas {
		changes[d.kind] = p.pieces[d.kind]
	}
	p.board.UpdatePositionBitboards(changes)
}

// MakeMove validates m and, if legal, applies it in place.
//
// Illegal moves, including ones that leave the mover's king attacked, are
// reported with StatusIllegal and leave the position untouched. A promotion
// that would expose the king is refused before any piece is chosen. One
// with no preset piece and no chooser returns StatusPendingPromotion,
// also without mutation; call MakeMove again with PromoteTo set.
func (p *Position) MakeMove(m Move) Result {
	if r := p.validate(&m); r != ReasonNone {
		return Result{Status: StatusIllegal, Reason: r, Move: m}
	}
	c := m.Piece.Color()

	if m.Promotion {
		if pt, ok := m.presetPromotion(); ok {
			m.PromoteTo = board.Kind(c, pt)
		} else if !p.promotionSafe(m) {
			return Result{Status: StatusIllegal, Reason: SelfCheck, Move: m}
		} else if p.chooser != nil {
			options := board.PromotionKinds(c)
			choice := p.chooser.ChoosePromotion(options)
			if !slices.Contains(options, choice) {
				return Result{Status: StatusIllegal, Reason: InvalidPromotion, Move: m}
			}
			m.PromoteTo = choice
		} else {
			return Result{Status: StatusPendingPromotion, Move: m}
		}
	} else {
		m.PromoteTo = board.NoPiece
	}

	if _, ok := p.commit(m); !ok {
		return Result{Status: StatusIllegal, Reason: SelfCheck, Move: m}
	}

	them := c.Other()
	res := Result{Status: StatusAccepted, Move: m, Check: p.inCheck[them]}
	if res.Check && !p.HasAnyMoves() {
		res.Status = StatusCheckmate
	}
	return res
}

// promotionSafe trial-plays m with a queen. The promoted piece cannot
// change whether the mover's king is left attacked.
func (p *Position) promotionSafe(m Move) bool {
	m.PromoteTo = board.Kind(m.Piece.Color(), board.Queen)
	st, ok := p.commit(m)
	if ok {
		p.rollback(&st)
	}
	return ok
}

// commit applies a validated move. If the mover ends up in check the move
// is rolled back and ok is false; otherwise the side to move flips and
// the returned record can undo the move.
func (p *Position) commit(m Move) (st moveState, ok bool) {
	st = p.apply(m)
	if p.inCheck[m.Piece.Color()] {
		p.rollback(&st)
		return st, false
	}
	p.toMove = p.toMove.Other()
	return st, true
}

// apply performs the piece-map transaction for m, updates clocks, rights
// and en-passant state, then resyncs the board and dynamic attacks.
func (p *Position) apply(m Move) moveState {
	st := p.saveState()
	c := m.Piece.Color()

	if m.Capture {
		capSq := m.To
		if m.EnPassant {
			capSq = m.To - forward(c)
		}
		p.remove(&st, m.Captured, capSq)
		if m.Captured.Type() == board.Rook {
			if w, ok := rookWing(c.Other(), capSq); ok {
				p.castling[c.Other()][w] = false
			}
		}
	}

	p.remove(&st, m.Piece, m.From)
	placed := m.Piece
	if m.Promotion {
		placed = m.PromoteTo
	}
	p.add(&st, placed, m.To)

	if m.Castling {
		w, _ := castleWing(c, m.From, m.To)
		r := castleRoutes[c][w]
		rook := board.Kind(c, board.Rook)
		p.remove(&st, rook, r.rookFrom)
		p.add(&st, rook, r.rookTo)
	}

	if m.Capture || m.Piece.Type() == board.Pawn {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	p.halfmove++

	switch m.Piece.Type() {
	case board.King:
		p.castling[c] = [2]bool{}
	case board.Rook:
		if w, ok := rookWing(c, m.From); ok {
			p.castling[c][w] = false
		}
	}

	p.epTarget = bb.NoSquare
	if m.Piece.Type() == board.Pawn && (m.To-m.From == 16 || m.From-m.To == 16) {
		p.epTarget = (m.From + m.To) / 2
		p.epSide = c
	}

	p.syncBoard(&st)
	p.recompute()
	return st
}

// rollback undoes an applied move using its record.
func (p *Position) rollback(st *moveState) {
	for i := len(st.deltas) - 1; i >= 0; i-- {
		d := st.deltas[i]
		if d.added {
			p.pieces.Remove(d.kind, d.sq)
		} else {
			p.pieces.Add(d.kind, d.sq)
		}
	}
	p.syncBoard(st)

	p.toMove = st.toMove
	p.castling = st.castling
	p.epTarget = st.epTarget
	p.epSide = st.epSide
	p.halfmoveClock = st.halfmoveClock
	p.halfmove = st.halfmove
	p.inCheck = st.inCheck
	p.attacks = st.attacks
}
