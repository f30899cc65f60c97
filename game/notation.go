package game

import (
	"fmt"

	chess "github.com/corentings/chess/v2"

	"chess-rules/fen"
	"chess-rules/position"
)

// san renders m in standard algebraic notation for the position fenStr.
// It falls back to coordinate form if the notation library disagrees.
func san(fenStr string, m position.Move) string {
	opt, err := chess.FEN(fenStr)
	if err != nil {
		return m.String()
	}
	pos := chess.NewGame(opt).Position()
	cm, err := chess.UCINotation{}.Decode(pos, m.String())
	if err != nil {
		return m.String()
	}
	return chess.AlgebraicNotation{}.Encode(pos, cm)
}

// PGN exports the accepted moves as a PGN game. Positions that do not
// start from the standard setup carry SetUp and FEN tags.
func (g *Game) PGN() (string, error) {
	g.mu.Lock()
	start := g.start
	history := make([]Record, len(g.history))
	copy(history, g.history)
	g.mu.Unlock()

	var opts []func(*chess.Game)
	if start != fen.StartPos {
		opt, err := chess.FEN(start)
		if err != nil {
			return "", fmt.Errorf("game: PGN start position: %w", err)
		}
		opts = append(opts, opt)
	}
	cg := chess.NewGame(opts...)
	cg.AddTagPair("Event", "chess-rules game")
	cg.AddTagPair("Site", g.ID.String())
	if start != fen.StartPos {
		cg.AddTagPair("SetUp", "1")
		cg.AddTagPair("FEN", start)
	}
	for i, r := range history {
		if err := cg.PushMove(r.SAN, nil); err != nil {
			return "", fmt.Errorf("game: PGN ply %d (%s): %w", i+1, r.SAN, err)
		}
	}
	return cg.String(), nil
}
