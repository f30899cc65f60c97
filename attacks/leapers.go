package attacks

import bb "chess-rules/bitboard"

// Knight returns the knight attack from sq. Each jump is masked against
// the files it could wrap onto.
func Knight(sq bb.Square) bb.Bitboard {
	b := bb.SquareBB(sq)
	return (b<<17)&bb.NotAFile |
		(b<<15)&bb.NotHFile |
		(b<<10)&bb.NotABFile |
		(b<<6)&bb.NotGHFile |
		(b>>6)&bb.NotABFile |
		(b>>10)&bb.NotGHFile |
		(b>>15)&bb.NotAFile |
		(b>>17)&bb.NotHFile
}

// King returns the king attack from sq.
func King(sq bb.Square) bb.Bitboard {
	b := bb.SquareBB(sq)
	return (b<<9)&bb.NotAFile |
		b<<8 |
		(b<<7)&bb.NotHFile |
		(b<<1)&bb.NotAFile |
		(b>>1)&bb.NotHFile |
		(b>>7)&bb.NotAFile |
		b>>8 |
		(b>>9)&bb.NotHFile
}

// WhitePawnPushes is one square forward, plus two from the second rank.
func WhitePawnPushes(sq bb.Square) bb.Bitboard {
	b := bb.SquareBB(sq)
	out := b << 8
	if b&bb.Rank2 != 0 {
		out |= b << 16
	}
	return out
}

// BlackPawnPushes is one square forward, plus two from the seventh rank.
func BlackPawnPushes(sq bb.Square) bb.Bitboard {
	b := bb.SquareBB(sq)
	out := b >> 8
	if b&bb.Rank7 != 0 {
		out |= b >> 16
	}
	return out
}

// WhitePawnCaptures returns the two forward diagonals for a white pawn.
func WhitePawnCaptures(sq bb.Square) bb.Bitboard {
	b := bb.SquareBB(sq)
	return (b<<7)&bb.NotHFile | (b<<9)&bb.NotAFile
}

// BlackPawnCaptures returns the two forward diagonals for a black pawn.
func BlackPawnCaptures(sq bb.Square) bb.Bitboard {
	b := bb.SquareBB(sq)
	return (b>>9)&bb.NotHFile | (b>>7)&bb.NotAFile
}
