package position

import (
	"fmt"
	"strings"

	bb "chess-rules/bitboard"
	"chess-rules/board"
)

// Move describes a requested move. Callers fill Piece, From and To, and
// may preset PromoteTo. The remaining flags are set during validation.
type Move struct {
	Piece     board.PieceKind
	From, To  bb.Square
	PromoteTo board.PieceKind

	Capture   bool
	EnPassant bool
	Castling  bool
	Promotion bool
	Captured  board.PieceKind
}

// NewMove returns a move with no promotion preset.
func NewMove(piece board.PieceKind, from, to bb.Square) Move {
	return Move{Piece: piece, From: from, To: to, PromoteTo: board.NoPiece, Captured: board.NoPiece}
}

// String renders the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion && m.PromoteTo.Valid() {
		s += strings.ToLower(string(m.PromoteTo.Type().Letter()))
	}
	return s
}

// presetPromotion reports whether PromoteTo names a piece a pawn can
// become. The color is taken from the mover, not from PromoteTo.
func (m Move) presetPromotion() (board.PieceType, bool) {
	if !m.PromoteTo.Valid() {
		return 0, false
	}
	switch pt := m.PromoteTo.Type(); pt {
	case board.Knight, board.Bishop, board.Rook, board.Queen:
		return pt, true
	}
	return 0, false
}

// Reason says why a move was refused.
type Reason uint8

const (
	ReasonNone Reason = iota
	TurnViolation
	OriginMismatch
	GeometryViolation
	PathBlocked
	CastlingPreconditionFailed
	SelfCheck
	InvalidPromotion
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case TurnViolation:
		return "not this side's turn"
	case OriginMismatch:
		return "piece not on origin square"
	case GeometryViolation:
		return "piece cannot move that way"
	case PathBlocked:
		return "path blocked"
	case CastlingPreconditionFailed:
		return "castling preconditions not met"
	case SelfCheck:
		return "own king in check"
	case InvalidPromotion:
		return "invalid promotion choice"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// Status is the outcome class of MakeMove. The zero Status is what
// callers get back alongside an error, before any move was tried.
type Status uint8

const (
	StatusNone Status = iota
	StatusAccepted
	StatusIllegal
	StatusCheckmate
	// StatusPendingPromotion means the move is legal so far but needs a
	// promotion piece. Nothing was mutated.
	StatusPendingPromotion
)

func (s Status) String() string {
	return [...]string{"none", "accepted", "illegal", "checkmate", "pending promotion"}[s]
}

// Result is returned by MakeMove. Reason is set only when Status is
// StatusIllegal. Check reports that the side now to move is in check.
type Result struct {
	Status Status
	Reason Reason
	Move   Move
	Check  bool
}

// Err returns an *IllegalMoveError for illegal results and nil otherwise.
func (r Result) Err() error {
	if r.Status != StatusIllegal {
		return nil
	}
	return &IllegalMoveError{Move: r.Move, Reason: r.Reason}
}

// IllegalMoveError carries the refused move and its reason.
type IllegalMoveError struct {
	Move   Move
	Reason Reason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

// PromotionChooser picks the piece for a promoting pawn. It is called
// synchronously from MakeMove with the four kinds of the mover's color and
// must return one of them.
type PromotionChooser interface {
	ChoosePromotion(options []board.PieceKind) board.PieceKind
}

// PromotionFunc adapts a function to PromotionChooser.
type PromotionFunc func(options []board.PieceKind) board.PieceKind

func (f PromotionFunc) ChoosePromotion(options []board.PieceKind) board.PieceKind {
	return f(options)
}

// AlwaysQueen promotes to a queen.
var AlwaysQueen = PromotionFunc(func(options []board.PieceKind) board.PieceKind {
	return options[len(options)-1]
})
