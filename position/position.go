// Package position is the rules state machine. A Position owns one board
// and its piece map, validates and applies moves, rolls back moves that
// leave the mover in check, and detects checkmate.
//
// A Position is not safe for concurrent use; hosts serialize access per
// game.
package position

import (
	"errors"
	"fmt"

	bb "chess-rules/bitboard"
	"chess-rules/board"
)

var (
	ErrKingCount       = errors.New("position: each side needs exactly one king")
	ErrOverlap         = errors.New("position: square claimed by two pieces")
	ErrPawnOnBackRank  = errors.New("position: pawn on first or last rank")
	ErrBadEnPassant    = errors.New("position: en-passant target not behind a pawn that just advanced two squares")
	ErrOpponentInCheck = errors.New("position: side not to move is in check")
)

type Position struct {
	board  *board.Board
	pieces board.PieceMap

	toMove        board.Color
	castling      CastlingRights
	epTarget      bb.Square
	epSide        board.Color
	halfmoveClock int
	halfmove      int

	inCheck [2]bool
	attacks [board.NumKinds]bb.Bitboard

	chooser PromotionChooser
}

// Option configures a Position at construction.
type Option func(*Position)

// WithPromotionChooser sets the collaborator asked for promotion pieces.
// Without one, promotions that carry no preset piece come back as
// StatusPendingPromotion.
func WithPromotionChooser(c PromotionChooser) Option {
	return func(p *Position) { p.chooser = c }
}

// Setup is a full description of a position, used to load one.
type Setup struct {
	Pieces        board.PieceMap
	ToMove        board.Color
	Castling      CastlingRights
	EnPassant     bb.Square
	HalfmoveClock int
	Halfmove      int
}

// StartingSetup describes the standard initial position.
func StartingSetup() Setup {
	return Setup{
		Pieces:    board.StartingPieceMap(),
		ToMove:    board.White,
		Castling:  AllCastling(),
		EnPassant: bb.NoSquare,
	}
}

// New returns the standard initial position.
func New(opts ...Option) *Position {
	p, err := FromSetup(StartingSetup(), opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// FromSetup validates s and builds a position from it. Castling rights
// whose king or rook is not on its home square are dropped.
func FromSetup(s Setup, opts ...Option) (*Position, error) {
	pieces := board.NewPieceMap()
	var seen bb.Bitboard
	for _, k := range board.Kinds {
		for _, sq := range s.Pieces.Squares(k) {
			if !sq.Valid() {
				return nil, fmt.Errorf("position: %v on invalid square %d", k, int(sq))
			}
			if seen.Has(sq) {
				return nil, fmt.Errorf("%w: %v", ErrOverlap, sq)
			}
			if k.Type() == board.Pawn && (sq.Rank() == 0 || sq.Rank() == 7) {
				return nil, fmt.Errorf("%w: %v", ErrPawnOnBackRank, sq)
			}
			seen = bb.SetBit(seen, sq)
			pieces.Add(k, sq)
		}
	}
	if pieces.Bitboard(board.WhiteKing).Count() != 1 || pieces.Bitboard(board.BlackKing).Count() != 1 {
		return nil, ErrKingCount
	}

	p := &Position{
		board:         board.New(pieces),
		pieces:        pieces,
		toMove:        s.ToMove,
		castling:      s.Castling,
		epTarget:      bb.NoSquare,
		epSide:        s.ToMove.Other(),
		halfmoveClock: s.HalfmoveClock,
		halfmove:      s.Halfmove,
	}
	for _, c := range []board.Color{board.White, board.Black} {
		for _, w := range []Wing{Kingside, Queenside} {
			r := castleRoutes[c][w]
			if !p.board.Bitboard(board.Kind(c, board.King)).Has(r.kingFrom) ||
				!p.board.Bitboard(board.Kind(c, board.Rook)).Has(r.rookFrom) {
				p.castling[c][w] = false
			}
		}
	}
	if s.EnPassant != bb.NoSquare {
		if err := p.setEnPassant(s.EnPassant); err != nil {
			return nil, err
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	p.recompute()
	if p.inCheck[p.toMove.Other()] {
		return nil, ErrOpponentInCheck
	}
	return p, nil
}

// setEnPassant accepts a target only if it sits directly behind an enemy
// pawn that could have just advanced two squares.
func (p *Position) setEnPassant(sq bb.Square) error {
	creator := p.toMove.Other()
	wantRank, behind := 2, sq+8
	if creator == board.Black {
		wantRank, behind = 5, sq-8
	}
	if !sq.Valid() || sq.Rank() != wantRank || p.board.Occupied().Has(sq) ||
		!p.board.Bitboard(board.Kind(creator, board.Pawn)).Has(behind) {
		return fmt.Errorf("%w: %v", ErrBadEnPassant, sq)
	}
	p.epTarget, p.epSide = sq, creator
	return nil
}

// Clone returns an independent deep copy.
func (p *Position) Clone() *Position {
	c := *p
	b := *p.board
	c.board = &b
	c.pieces = p.pieces.Clone()
	return &c
}

// ==========================
// Read-only export
// ==========================

// Board returns a copy of the board.
func (p *Position) Board() *board.Board {
	b := *p.board
	return &b
}

// PieceMap returns a copy of the kind to squares map.
func (p *Position) PieceMap() board.PieceMap { return p.pieces.Clone() }

// PieceAt returns the kind on sq, or board.NoPiece.
func (p *Position) PieceAt(sq bb.Square) board.PieceKind { return p.board.PieceAt(sq) }

// Letterbox is the board's two-character-per-square view.
func (p *Position) Letterbox() [8][8]string { return p.board.Letterbox() }

func (p *Position) SideToMove() board.Color    { return p.toMove }
func (p *Position) Castling() CastlingRights   { return p.castling }
func (p *Position) HalfmoveClock() int         { return p.halfmoveClock }
func (p *Position) Halfmove() int              { return p.halfmove }
func (p *Position) InCheck(c board.Color) bool { return p.inCheck[c] }

// EnPassant returns the live en-passant target, or bb.NoSquare.
func (p *Position) EnPassant() bb.Square { return p.epTarget }

// EnPassantSide is the color whose double push created the target.
func (p *Position) EnPassantSide() board.Color { return p.epSide }

// Attacks returns the dynamic pseudo-legal attack set of kind k: the
// union of destinations for every k piece under the current occupancy.
func (p *Position) Attacks(k board.PieceKind) bb.Bitboard { return p.attacks[k] }
