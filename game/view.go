package game

import (
	"chess-rules/board"
	"chess-rules/fen"
)

// View is a serializable snapshot of a game for clients.
type View struct {
	ID               string       `json:"id"`
	FEN              string       `json:"fen"`
	Board            [8][8]string `json:"board"`
	SideToMove       string       `json:"sideToMove"`
	Check            bool         `json:"check"`
	Outcome          string       `json:"outcome"`
	Winner           string       `json:"winner,omitempty"`
	PendingPromotion string       `json:"pendingPromotion,omitempty"`
	LegalMoves       []string     `json:"legalMoves"`
	History          []string     `json:"history"`
	SAN              []string     `json:"san"`
	Material         Material     `json:"material"`
}

// Material is the piece-value balance of the position.
type Material struct {
	White      int `json:"white"`
	Black      int `json:"black"`
	Evaluation int `json:"evaluation"`
}

// View snapshots the game.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

func (g *Game) view() View {
	v := View{
		ID:         g.ID.String(),
		FEN:        fen.Format(g.pos),
		Board:      g.pos.Letterbox(),
		SideToMove: g.pos.SideToMove().String(),
		Check:      g.pos.InCheck(g.pos.SideToMove()),
		Outcome:    g.outcome.String(),
		LegalMoves: []string{},
		History:    make([]string, 0, len(g.history)),
		SAN:        make([]string, 0, len(g.history)),
		Material: Material{
			White:      g.pos.Material(board.White),
			Black:      g.pos.Material(board.Black),
			Evaluation: g.pos.Evaluation(),
		},
	}
	if g.outcome == Checkmate {
		v.Winner = g.winner.String()
	}
	if g.pending != nil {
		v.PendingPromotion = g.pending.From.String() + g.pending.To.String()
	}
	if g.outcome == Ongoing {
		for _, m := range g.pos.LegalMoves() {
			v.LegalMoves = append(v.LegalMoves, m.String())
		}
	}
	for _, r := range g.history {
		v.History = append(v.History, r.Move.String())
		v.SAN = append(v.SAN, r.SAN)
	}
	return v
}

// Subscribe returns a channel that receives a View after every change,
// starting with the current one. Slow readers miss intermediate views.
// Call cancel to stop delivery; it closes the channel.
func (g *Game) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 8)
	g.mu.Lock()
	g.subs[ch] = struct{}{}
	ch <- g.view()
	g.mu.Unlock()

	cancel := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if _, ok := g.subs[ch]; ok {
			delete(g.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// notify pushes the current view to subscribers. Called with g.mu held.
func (g *Game) notify() {
	if len(g.subs) == 0 {
		return
	}
	v := g.view()
	for ch := range g.subs {
		select {
		case ch <- v:
		default:
		}
	}
}
