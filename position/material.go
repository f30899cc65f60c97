package position

import "chess-rules/board"

// PieceValues are the material weights by piece type. Kings carry none.
var PieceValues = [6]int{
	board.Pawn:   1,
	board.Knight: 3,
	board.Bishop: 3,
	board.Rook:   5,
	board.Queen:  9,
	board.King:   0,
}

// Material sums the piece values of color c.
func (p *Position) Material(c board.Color) int {
	total := 0
	for _, k := range board.KindsOf(c) {
		total += p.board.Bitboard(k).Count() * PieceValues[k.Type()]
	}
	return total
}

// Evaluation is white material minus black material.
func (p *Position) Evaluation() int {
	return p.Material(board.White) - p.Material(board.Black)
}
