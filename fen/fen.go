// Package fen reads and writes Forsyth-Edwards Notation for positions.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	bb "chess-rules/bitboard"
	"chess-rules/board"
	"chess-rules/position"
)

// StartPos is the FEN of the standard initial position.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalid wraps every parse failure.
var ErrInvalid = errors.New("invalid FEN")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

const pieceLetters = "PNBRQKpnbrqk"

// kindFromChar maps a FEN letter to its kind.
func kindFromChar(ch byte) (board.PieceKind, bool) {
	i := strings.IndexByte(pieceLetters, ch)
	if i < 0 {
		return board.NoPiece, false
	}
	return board.Kinds[i], true
}

// charFromKind is the inverse of kindFromChar.
func charFromKind(k board.PieceKind) byte { return pieceLetters[k] }

// Parse reads a FEN record into a position setup. The halfmove clock and
// fullmove number are optional.
func Parse(s string) (position.Setup, error) {
	var setup position.Setup
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return setup, invalid("not enough fields")
	}

	pieces, err := ParsePlacement(fields[0])
	if err != nil {
		return setup, err
	}
	setup.Pieces = pieces

	switch fields[1] {
	case "w":
		setup.ToMove = board.White
	case "b":
		setup.ToMove = board.Black
	default:
		return setup, invalid("side to move must be 'w' or 'b'")
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				setup.Castling[board.White][position.Kingside] = true
			case 'Q':
				setup.Castling[board.White][position.Queenside] = true
			case 'k':
				setup.Castling[board.Black][position.Kingside] = true
			case 'q':
				setup.Castling[board.Black][position.Queenside] = true
			default:
				return setup, invalid("castling character %q", ch)
			}
		}
	}

	setup.EnPassant = bb.NoSquare
	if fields[3] != "-" {
		sq, err := bb.ParseSquare(fields[3])
		if err != nil {
			return setup, invalid("en passant square %q", fields[3])
		}
		setup.EnPassant = sq
	}

	fullmove := 1
	if len(fields) > 4 {
		if setup.HalfmoveClock, err = strconv.Atoi(fields[4]); err != nil || setup.HalfmoveClock < 0 {
			return setup, invalid("halfmove clock %q", fields[4])
		}
	}
	if len(fields) > 5 {
		if fullmove, err = strconv.Atoi(fields[5]); err != nil || fullmove < 1 {
			return setup, invalid("fullmove number %q", fields[5])
		}
	}
	setup.Halfmove = (fullmove - 1) * 2
	if setup.ToMove == board.Black {
		setup.Halfmove++
	}
	return setup, nil
}

// ParsePlacement reads the piece placement field alone.
func ParsePlacement(field string) (board.PieceMap, error) {
	pm := board.NewPieceMap()
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, invalid("incorrect number of ranks")
	}
	for i, rankStr := range ranks {
		if rankStr == "" {
			return nil, invalid("empty rank description")
		}
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			k, ok := kindFromChar(ch)
			if !ok {
				return nil, invalid("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, invalid("too many squares in rank %d", rank+1)
			}
			pm.Add(k, bb.NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return nil, invalid("rank %d does not have 8 columns", rank+1)
		}
	}
	return pm, nil
}

// New parses s and builds a position from it.
func New(s string, opts ...position.Option) (*position.Position, error) {
	setup, err := Parse(s)
	if err != nil {
		return nil, err
	}
	p, err := position.FromSetup(setup, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return p, nil
}

// Placement writes the piece placement field for b.
func Placement(b *board.Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			k := b.PieceAt(bb.NewSquare(file, rank))
			if k == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(charFromKind(k))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Format writes the full FEN record for p.
func Format(p *position.Position) string {
	var sb strings.Builder
	sb.WriteString(Placement(p.Board()))

	if p.SideToMove() == board.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	cr := p.Castling()
	if !cr.Any() {
		sb.WriteByte('-')
	} else {
		for _, r := range []struct {
			c    board.Color
			w    position.Wing
			char byte
		}{
			{board.White, position.Kingside, 'K'},
			{board.White, position.Queenside, 'Q'},
			{board.Black, position.Kingside, 'k'},
			{board.Black, position.Queenside, 'q'},
		} {
			if cr.Has(r.c, r.w) {
				sb.WriteByte(r.char)
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant().String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock()))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Halfmove()/2 + 1))
	return sb.String()
}
