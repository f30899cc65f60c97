package position

import (
	"math/rand"

	"chess-rules/board"
)

// Zobrist keys for pieces, castling state, en-passant file and side.
var zobristPiece [board.NumKinds][64]uint64
var zobristCastle [16]uint64
var zobristEnPassant [8]uint64
var zobristSide uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// fixed seed so hashes are stable across runs
	rnd := rand.New(rand.NewSource(0xC0DE))
	for k := 0; k < board.NumKinds; k++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[k][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Hash returns the Zobrist key of the position.
func (p *Position) Hash() uint64 {
	var key uint64
	for _, k := range board.Kinds {
		for pieces := p.board.Bitboard(k); pieces != 0; {
			key ^= zobristPiece[k][pieces.PopLSB()]
		}
	}
	if p.toMove == board.Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[p.castling.bits()]
	if p.epTarget.Valid() {
		key ^= zobristEnPassant[p.epTarget.File()]
	}
	return key
}
