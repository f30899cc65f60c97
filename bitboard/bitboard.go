// Package bitboard holds the 64-bit occupancy word and the bit-level
// primitives every other package builds on. Bit i stands for square i,
// numbered rank-major from a1 (0) to h8 (63).
package bitboard

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard is a set of squares packed into one word.
type Bitboard uint64

// File and rank masks, plus the wrap guards used by shifted generators.
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0xFF
	Rank2 Bitboard = Rank1 << 8
	Rank7 Bitboard = Rank1 << 48
	Rank8 Bitboard = Rank1 << 56

	NotAFile  Bitboard = ^FileA
	NotHFile  Bitboard = ^FileH
	NotABFile Bitboard = ^(FileA | FileB)
	NotGHFile Bitboard = ^(FileG | FileH)

	Empty Bitboard = 0
	Full  Bitboard = ^Empty
)

// EmptyBitboardError reports a bitscan on a zero word. It is raised with
// panic: scanning nothing is a caller bug, not a game condition.
type EmptyBitboardError struct {
	Op string
}

func (e *EmptyBitboardError) Error() string {
	return fmt.Sprintf("bitboard: %s on empty bitboard", e.Op)
}

// SquareBB returns the single-bit board for sq.
func SquareBB(sq Square) Bitboard { return Bitboard(1) << uint(sq) }

// SetBit returns b with sq set.
func SetBit(b Bitboard, sq Square) Bitboard { return b | SquareBB(sq) }

// ClearBit returns b with sq cleared.
func ClearBit(b Bitboard, sq Square) Bitboard { return b &^ SquareBB(sq) }

// SetBits sets every square in sqs.
func SetBits(b Bitboard, sqs ...Square) Bitboard {
	for _, sq := range sqs {
		b = SetBit(b, sq)
	}
	return b
}

// ClearBits clears every square in sqs.
func ClearBits(b Bitboard, sqs ...Square) Bitboard {
	for _, sq := range sqs {
		b = ClearBit(b, sq)
	}
	return b
}

// ForwardScan returns the least significant set square.
func ForwardScan(b Bitboard) Square {
	if b == 0 {
		panic(&EmptyBitboardError{Op: "forward bitscan"})
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// BackwardScan returns the most significant set square.
func BackwardScan(b Bitboard) Square {
	if b == 0 {
		panic(&EmptyBitboardError{Op: "backward bitscan"})
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// FromSquares packs a square list into a bitboard.
func FromSquares(sqs []Square) Bitboard { return SetBits(Empty, sqs...) }

// Squares lists the set squares in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for b != 0 {
		out = append(out, b.PopLSB())
	}
	return out
}

// Has reports whether sq is set.
func (b Bitboard) Has(sq Square) bool { return b&SquareBB(sq) != 0 }

// Count returns the number of set squares.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// PopLSB clears and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	sq := ForwardScan(*b)
	*b &= *b - 1
	return sq
}

// Draw renders b as an 8x8 grid, rank 8 first, file a on the left.
// Set squares print as ▓ and clear squares as ░.
func (b Bitboard) Draw() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(file, rank)) {
				sb.WriteString("▓")
			} else {
				sb.WriteString("░")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
