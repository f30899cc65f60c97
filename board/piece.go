package board

import "fmt"

// Color identifies a side. The values double as table indices.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceTypes lists the six types in ascending value.
var PieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

func (pt PieceType) String() string {
	return [...]string{"pawn", "knight", "bishop", "rook", "queen", "king"}[pt]
}

// Letter is the upper-case letter used in the letterbox view.
func (pt PieceType) Letter() byte { return "PNBRQK"[pt] }

// Slider reports whether the type moves along rays.
func (pt PieceType) Slider() bool { return pt == Bishop || pt == Rook || pt == Queen }

// PieceKind is one of the twelve colored pieces. White kinds come first so
// a kind is color*6 + type.
type PieceKind uint8

const (
	WhitePawn PieceKind = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing

	NumKinds = 12
	// NoPiece marks an empty square or an unset promotion.
	NoPiece PieceKind = 255
)

// Kinds lists all twelve kinds in index order.
var Kinds = [NumKinds]PieceKind{
	WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
	BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
}

// Kind combines a side and a type.
func Kind(c Color, pt PieceType) PieceKind { return PieceKind(uint8(c)*6 + uint8(pt)) }

// KindsOf returns the six kinds belonging to c.
func KindsOf(c Color) [6]PieceKind {
	var out [6]PieceKind
	for i, pt := range PieceTypes {
		out[i] = Kind(c, pt)
	}
	return out
}

// PromotionKinds are the kinds a pawn of color c may become.
func PromotionKinds(c Color) []PieceKind {
	return []PieceKind{Kind(c, Knight), Kind(c, Bishop), Kind(c, Rook), Kind(c, Queen)}
}

func (k PieceKind) Valid() bool { return k < NumKinds }

func (k PieceKind) Color() Color { return Color(k / 6) }

func (k PieceKind) Type() PieceType { return PieceType(k % 6) }

// Code returns the two-character letterbox code, e.g. "wP" or "bK".
func (k PieceKind) Code() string {
	if !k.Valid() {
		return "--"
	}
	side := byte('w')
	if k.Color() == Black {
		side = 'b'
	}
	return string([]byte{side, k.Type().Letter()})
}

func (k PieceKind) String() string {
	if !k.Valid() {
		return "none"
	}
	return fmt.Sprintf("%s %s", k.Color(), k.Type())
}

// ParseCode is the inverse of Code.
func ParseCode(code string) (PieceKind, error) {
	if len(code) != 2 {
		return NoPiece, fmt.Errorf("invalid piece code %q", code)
	}
	var c Color
	switch code[0] {
	case 'w':
		c = White
	case 'b':
		c = Black
	default:
		return NoPiece, fmt.Errorf("invalid piece code %q", code)
	}
	for _, pt := range PieceTypes {
		if pt.Letter() == code[1] {
			return Kind(c, pt), nil
		}
	}
	return NoPiece, fmt.Errorf("invalid piece code %q", code)
}
