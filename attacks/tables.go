package attacks

import bb "chess-rules/bitboard"

// Tables is the full set of empty-board attack tables. Pawn tables are
// indexed by side, 0 for white and 1 for black.
type Tables struct {
	Rays         [8][64]bb.Bitboard
	Knight       [64]bb.Bitboard
	Bishop       [64]bb.Bitboard
	Rook         [64]bb.Bitboard
	Queen        [64]bb.Bitboard
	King         [64]bb.Bitboard
	PawnPushes   [2][64]bb.Bitboard
	PawnCaptures [2][64]bb.Bitboard
}

var tables Tables

func init() {
	initTables()
}

func initTables() {
	for sq := bb.A1; sq <= bb.H8; sq++ {
		for _, d := range Directions {
			tables.Rays[d][sq] = Ray(sq, d)
		}
		tables.Knight[sq] = Knight(sq)
		tables.Bishop[sq] = Bishop(sq)
		tables.Rook[sq] = Rook(sq)
		tables.Queen[sq] = Queen(sq)
		tables.King[sq] = King(sq)
		tables.PawnPushes[0][sq] = WhitePawnPushes(sq)
		tables.PawnPushes[1][sq] = BlackPawnPushes(sq)
		tables.PawnCaptures[0][sq] = WhitePawnCaptures(sq)
		tables.PawnCaptures[1][sq] = BlackPawnCaptures(sq)
	}
}

// Default returns the process-wide tables. Callers share the pointer and
// must treat the contents as read-only.
func Default() *Tables { return &tables }

// ==========================
// Occupancy-aware sliders
// ==========================

// Slide casts the ray from sq in direction d and cuts it after the first
// occupied square. The blocker itself stays in the result.
func Slide(sq bb.Square, d Direction, occ bb.Bitboard) bb.Bitboard {
	ray := tables.Rays[d][sq]
	blockers := ray & occ
	if blockers == 0 {
		return ray
	}
	var first bb.Square
	if d.Forward() {
		first = bb.ForwardScan(blockers)
	} else {
		first = bb.BackwardScan(blockers)
	}
	return ray &^ tables.Rays[d][first]
}

// RookFrom returns the rook attack from sq given the occupancy.
func RookFrom(sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	var out bb.Bitboard
	for _, d := range RookDirections {
		out |= Slide(sq, d, occ)
	}
	return out
}

// BishopFrom returns the bishop attack from sq given the occupancy.
func BishopFrom(sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	var out bb.Bitboard
	for _, d := range BishopDirections {
		out |= Slide(sq, d, occ)
	}
	return out
}

// QueenFrom returns the queen attack from sq given the occupancy.
func QueenFrom(sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	return RookFrom(sq, occ) | BishopFrom(sq, occ)
}
