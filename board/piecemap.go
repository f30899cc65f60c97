package board

import (
	bb "chess-rules/bitboard"
	"chess-rules/utility"
)

// SquareSet is the set of squares held by one piece kind.
type SquareSet = utility.Set[bb.Square]

// PieceMap maps each kind to the squares it occupies. A full map carries
// all twelve keys, with empty sets for absent kinds.
type PieceMap map[PieceKind]SquareSet

// NewPieceMap returns a map with an empty set for every kind.
func NewPieceMap() PieceMap {
	pm := make(PieceMap, NumKinds)
	for _, k := range Kinds {
		pm[k] = utility.NewSet[bb.Square]()
	}
	return pm
}

// StartingPieceMap returns the standard initial placement.
func StartingPieceMap() PieceMap {
	pm := NewPieceMap()
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range back {
		pm.Add(Kind(White, pt), bb.NewSquare(file, 0))
		pm.Add(Kind(White, Pawn), bb.NewSquare(file, 1))
		pm.Add(Kind(Black, Pawn), bb.NewSquare(file, 6))
		pm.Add(Kind(Black, pt), bb.NewSquare(file, 7))
	}
	return pm
}

// Add places kind on sq, creating the kind's set if needed.
func (pm PieceMap) Add(k PieceKind, sq bb.Square) {
	s, ok := pm[k]
	if !ok {
		s = utility.NewSet[bb.Square]()
	}
	s.Add(sq)
	pm[k] = s
}

// Remove lifts kind off sq.
func (pm PieceMap) Remove(k PieceKind, sq bb.Square) {
	if s, ok := pm[k]; ok {
		s.Remove(sq)
	}
}

// Squares returns the kind's squares in ascending order.
func (pm PieceMap) Squares(k PieceKind) []bb.Square {
	s, ok := pm[k]
	if !ok {
		return nil
	}
	return s.Sorted()
}

// Bitboard packs the kind's squares.
func (pm PieceMap) Bitboard(k PieceKind) bb.Bitboard {
	return bb.FromSquares(pm.Squares(k))
}

// Clone deep-copies every set.
func (pm PieceMap) Clone() PieceMap {
	out := make(PieceMap, len(pm))
	for k, s := range pm {
		out[k] = s.Clone()
	}
	return out
}

// Equal compares members kind by kind. A missing kind equals an empty set.
func (pm PieceMap) Equal(other PieceMap) bool {
	for _, k := range Kinds {
		a, b := pm[k], other[k]
		if a.Len() != b.Len() {
			return false
		}
		if a.Len() > 0 && !a.Equal(b) {
			return false
		}
	}
	return true
}
