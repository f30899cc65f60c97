// Package board stores piece occupancy as twelve bitboards and exposes
// the static attack geometry for each piece kind.
package board

import (
	"chess-rules/attacks"
	bb "chess-rules/bitboard"
)

// Board owns one occupancy bitboard per kind. The static attack tables are
// shared read-only with every other board in the process.
type Board struct {
	pieces [NumKinds]bb.Bitboard
	static [NumKinds]*[64]bb.Bitboard
	pushes [2]*[64]bb.Bitboard
}

// New builds a board from a piece map.
func New(pm PieceMap) *Board {
	b := &Board{}
	t := attacks.Default()
	for _, c := range []Color{White, Black} {
		b.static[Kind(c, Pawn)] = &t.PawnCaptures[c]
		b.static[Kind(c, Knight)] = &t.Knight
		b.static[Kind(c, Bishop)] = &t.Bishop
		b.static[Kind(c, Rook)] = &t.Rook
		b.static[Kind(c, Queen)] = &t.Queen
		b.static[Kind(c, King)] = &t.King
		b.pushes[c] = &t.PawnPushes[c]
	}
	for _, k := range Kinds {
		b.pieces[k] = pm.Bitboard(k)
	}
	return b
}

// NewStarting returns the standard initial position.
func NewStarting() *Board { return New(StartingPieceMap()) }

// Bitboard returns the occupancy of one kind.
func (b *Board) Bitboard(k PieceKind) bb.Bitboard { return b.pieces[k] }

// Pieces returns the union of c's six bitboards.
func (b *Board) Pieces(c Color) bb.Bitboard {
	var out bb.Bitboard
	for _, k := range KindsOf(c) {
		out |= b.pieces[k]
	}
	return out
}

func (b *Board) White() bb.Bitboard { return b.Pieces(White) }
func (b *Board) Black() bb.Bitboard { return b.Pieces(Black) }

// Occupied is every square holding a piece.
func (b *Board) Occupied() bb.Bitboard { return b.White() | b.Black() }

// Empty is the complement of Occupied.
func (b *Board) Empty() bb.Bitboard { return ^b.Occupied() }

// UpdatePositionBitboards rewrites the bitboards of exactly the kinds in
// changes from their square sets. Kinds not in changes are left alone.
func (b *Board) UpdatePositionBitboards(changes PieceMap) {
	for k := range changes {
		b.pieces[k] = changes.Bitboard(k)
	}
}

// StaticAttacks returns the empty-board attack of kind k standing on sq.
// For pawns this is the capture pattern.
func (b *Board) StaticAttacks(k PieceKind, sq bb.Square) bb.Bitboard {
	return b.static[k][sq]
}

// PawnPushes returns the push pattern of a c pawn on sq.
func (b *Board) PawnPushes(c Color, sq bb.Square) bb.Bitboard {
	return b.pushes[c][sq]
}

// PieceAt returns the kind on sq, or NoPiece.
func (b *Board) PieceAt(sq bb.Square) PieceKind {
	for _, k := range Kinds {
		if b.pieces[k].Has(sq) {
			return k
		}
	}
	return NoPiece
}

// KingSquare returns c's king square, or NoSquare when the king is missing.
func (b *Board) KingSquare(c Color) bb.Square {
	k := b.pieces[Kind(c, King)]
	if k == 0 {
		return bb.NoSquare
	}
	return bb.ForwardScan(k)
}

// Letterbox returns one two-character code per square, rank 8 in row 0
// and file a in column 0. Empty squares read "--".
func (b *Board) Letterbox() [8][8]string {
	var out [8][8]string
	for row := 0; row < 8; row++ {
		for file := 0; file < 8; file++ {
			out[row][file] = b.PieceAt(bb.NewSquare(file, 7-row)).Code()
		}
	}
	return out
}

// Validate checks that no square is claimed by two kinds and that each
// side has exactly one king.
func (b *Board) Validate() bool {
	var seen bb.Bitboard
	for _, k := range Kinds {
		if seen&b.pieces[k] != 0 {
			return false
		}
		seen |= b.pieces[k]
	}
	return b.pieces[WhiteKing].Count() == 1 && b.pieces[BlackKing].Count() == 1
}
