// Package attacks generates empty-board attack geometry for every piece
// kind and truncates sliding rays against a live occupancy.
package attacks

import bb "chess-rules/bitboard"

// Direction is one of the eight compass directions a slider can travel.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// Directions lists all eight rays.
var Directions = [8]Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

var (
	// RookDirections are the file and rank rays.
	RookDirections = [4]Direction{North, South, East, West}
	// BishopDirections are the diagonal rays.
	BishopDirections = [4]Direction{NorthEast, NorthWest, SouthEast, SouthWest}
)

// step is a square offset plus the guard that drops squares reached by
// wrapping around the a/h edge.
type step struct {
	offset int
	guard  bb.Bitboard
}

var steps = [8]step{
	North:     {8, bb.Full},
	South:     {-8, bb.Full},
	East:      {1, bb.NotAFile},
	West:      {-1, bb.NotHFile},
	NorthEast: {9, bb.NotAFile},
	NorthWest: {7, bb.NotHFile},
	SouthEast: {-7, bb.NotAFile},
	SouthWest: {-9, bb.NotHFile},
}

// Forward reports whether the ray runs toward higher square indices, so
// that its nearest blocker is the least significant bit.
func (d Direction) Forward() bool {
	switch d {
	case North, East, NorthEast, NorthWest:
		return true
	default:
		return false
	}
}

func (d Direction) String() string {
	return [...]string{"N", "S", "E", "W", "NE", "NW", "SE", "SW"}[d]
}

func shift(b bb.Bitboard, d Direction) bb.Bitboard {
	s := steps[d]
	if s.offset > 0 {
		return (b << uint(s.offset)) & s.guard
	}
	return (b >> uint(-s.offset)) & s.guard
}

// Ray walks from sq in direction d to the board edge. The origin is not
// included.
func Ray(sq bb.Square, d Direction) bb.Bitboard {
	var out bb.Bitboard
	cur := bb.SquareBB(sq)
	for {
		cur = shift(cur, d)
		if cur == 0 {
			return out
		}
		out |= cur
	}
}

// FileAttack is the north and south rays together.
func FileAttack(sq bb.Square) bb.Bitboard { return Ray(sq, North) | Ray(sq, South) }

// RankAttack is the east and west rays together.
func RankAttack(sq bb.Square) bb.Bitboard { return Ray(sq, East) | Ray(sq, West) }

// Rook returns the empty-board rook attack from sq.
func Rook(sq bb.Square) bb.Bitboard { return FileAttack(sq) | RankAttack(sq) }

// Bishop returns the empty-board bishop attack from sq.
func Bishop(sq bb.Square) bb.Bitboard {
	var out bb.Bitboard
	for _, d := range BishopDirections {
		out |= Ray(sq, d)
	}
	return out
}

// Queen returns the empty-board queen attack from sq.
func Queen(sq bb.Square) bb.Bitboard { return Rook(sq) | Bishop(sq) }
