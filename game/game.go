// Package game hosts positions for concurrent callers. Each Game guards
// its position with one mutex and turns promotion into a two-step
// exchange: Play reports a pending promotion, ResolvePromotion finishes it.
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	bb "chess-rules/bitboard"
	"chess-rules/board"
	"chess-rules/fen"
	"chess-rules/position"
)

var (
	ErrGameOver           = errors.New("game: game is over")
	ErrPromotionPending   = errors.New("game: a promotion choice is pending")
	ErrNoPendingPromotion = errors.New("game: no promotion pending")
	ErrInvalidPromotion   = errors.New("game: promotion must be a knight, bishop, rook or queen")
	ErrEmptySquare        = errors.New("game: no piece on origin square")
)

// Outcome is the terminal state of a game, if any.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
)

func (o Outcome) String() string {
	return [...]string{"ongoing", "checkmate", "stalemate"}[o]
}

// Record is one accepted move with the state it produced.
type Record struct {
	Move  position.Move
	SAN   string
	Check bool
	Hash  uint64
	FEN   string
}

type Game struct {
	ID uuid.UUID

	mu      sync.Mutex
	start   string
	pos     *position.Position
	pending *position.Move
	history []Record
	outcome Outcome
	winner  board.Color
	subs    map[chan View]struct{}
}

// New starts a game from the standard position.
func New() *Game {
	return newGame(position.New())
}

// FromFEN starts a game from a FEN record.
func FromFEN(s string) (*Game, error) {
	p, err := fen.New(s)
	if err != nil {
		return nil, err
	}
	return newGame(p), nil
}

func newGame(p *position.Position) *Game {
	g := &Game{
		ID:    uuid.New(),
		start: fen.Format(p),
		pos:   p,
		subs:  make(map[chan View]struct{}),
	}
	g.updateOutcome()
	return g
}

// Play submits a move. Illegal moves return the result together with its
// *position.IllegalMoveError. A promotion without a preset piece leaves
// the game waiting for ResolvePromotion.
func (g *Game) Play(m position.Move) (position.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(); err != nil {
		return position.Result{}, err
	}
	return g.play(m)
}

// PlaySquares builds the move from the piece standing on from, the way a
// two-click board UI would. promote may be board.NoPiece.
func (g *Game) PlaySquares(from, to bb.Square, promote board.PieceKind) (position.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ready(); err != nil {
		return position.Result{}, err
	}
	if !from.Valid() || !to.Valid() {
		return position.Result{}, fmt.Errorf("game: square out of range")
	}
	k := g.pos.PieceAt(from)
	if k == board.NoPiece {
		return position.Result{}, fmt.Errorf("%w: %v", ErrEmptySquare, from)
	}
	m := position.NewMove(k, from, to)
	m.PromoteTo = promote
	return g.play(m)
}

// ResolvePromotion completes the pending promotion with kind. Only the
// piece type of kind matters; the color always follows the mover.
func (g *Game) ResolvePromotion(kind board.PieceKind) (position.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return position.Result{}, ErrNoPendingPromotion
	}
	if !kind.Valid() {
		return position.Result{}, ErrInvalidPromotion
	}
	switch kind.Type() {
	case board.Knight, board.Bishop, board.Rook, board.Queen:
	default:
		return position.Result{}, ErrInvalidPromotion
	}
	m := *g.pending
	g.pending = nil
	m.PromoteTo = kind
	return g.play(m)
}

// CancelPromotion drops a pending promotion so another move can be played.
func (g *Game) CancelPromotion() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return ErrNoPendingPromotion
	}
	g.pending = nil
	g.notify()
	return nil
}

func (g *Game) ready() error {
	if g.outcome != Ongoing {
		return ErrGameOver
	}
	if g.pending != nil {
		return ErrPromotionPending
	}
	return nil
}

// play runs one move under the lock.
func (g *Game) play(m position.Move) (position.Result, error) {
	res := g.pos.MakeMove(m)
	switch res.Status {
	case position.StatusIllegal:
		return res, res.Err()
	case position.StatusPendingPromotion:
		pending := res.Move
		g.pending = &pending
	default:
		g.history = append(g.history, Record{
			Move:  res.Move,
			SAN:   san(g.lastFEN(), res.Move),
			Check: res.Check,
			Hash:  g.pos.Hash(),
			FEN:   fen.Format(g.pos),
		})
		g.updateOutcome()
	}
	g.notify()
	return res, nil
}

// lastFEN is the position before the next move.
func (g *Game) lastFEN() string {
	if len(g.history) == 0 {
		return g.start
	}
	return g.history[len(g.history)-1].FEN
}

func (g *Game) updateOutcome() {
	switch {
	case g.pos.InCheckmate():
		g.outcome = Checkmate
		g.winner = g.pos.SideToMove().Other()
	case g.pos.InStalemate():
		g.outcome = Stalemate
	}
}

// Outcome returns the terminal state and, for checkmate, the winner.
func (g *Game) Outcome() (Outcome, board.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome, g.winner
}

// Pending returns the move waiting for a promotion piece.
func (g *Game) Pending() (position.Move, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return position.Move{}, false
	}
	return *g.pending, true
}

// History returns a copy of the accepted moves.
func (g *Game) History() []Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Record, len(g.history))
	copy(out, g.history)
	return out
}

// FEN returns the current position as a FEN record.
func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fen.Format(g.pos)
}

// Position returns a private copy of the current position.
func (g *Game) Position() *position.Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Clone()
}
