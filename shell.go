package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chess-rules/board"
	"chess-rules/fen"
	"chess-rules/game"
	"chess-rules/position"
)

func main() {
	run(os.Stdin, os.Stdout)
}

type shell struct {
	in  *bufio.Scanner
	out io.Writer
	pos *position.Position
}

// run reads commands from in until EOF or "quit".
func run(in io.Reader, out io.Writer) {
	sh := &shell{in: bufio.NewScanner(in), out: out}
	sh.pos = position.New(position.WithPromotionChooser(position.PromotionFunc(sh.askPromotion)))
	for sh.in.Scan() {
		tokens := strings.Fields(sh.in.Text())
		if len(tokens) == 0 {
			continue
		}
		if !sh.exec(tokens) {
			return
		}
	}
}

func (sh *shell) exec(tokens []string) bool {
	switch strings.ToLower(tokens[0]) {
	case "quit":
		return false
	case "position":
		sh.position(tokens[1:])
	case "move":
		if len(tokens) < 2 {
			fmt.Fprintln(sh.out, "info string move needs an argument")
			break
		}
		sh.move(tokens[1])
	case "d":
		sh.display()
	case "bb":
		sh.drawBitboard(tokens[1:])
	case "legal":
		var moves []string
		for _, m := range sh.pos.LegalMoves() {
			moves = append(moves, m.String())
		}
		fmt.Fprintf(sh.out, "%d: %s\n", len(moves), strings.Join(moves, " "))
	case "perft":
		if len(tokens) < 2 {
			fmt.Fprintln(sh.out, "info string perft needs a depth")
			break
		}
		depth, err := strconv.Atoi(tokens[1])
		if err != nil || depth < 1 {
			fmt.Fprintln(sh.out, "info string Malformed perft depth:", tokens[1])
			break
		}
		fmt.Fprintf(sh.out, "nodes %d\n", sh.pos.Perft(depth))
	default:
		if _, err := game.ParseCoordinates(tokens[0]); err == nil {
			sh.move(tokens[0])
			break
		}
		fmt.Fprintln(sh.out, "info string Unknown command:", strings.Join(tokens, " "))
	}
	return true
}

// position handles "startpos [moves ...]" and "fen <fields> [moves ...]".
func (sh *shell) position(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "info string position needs startpos or fen")
		return
	}
	var fenStr string
	switch args[0] {
	case "startpos":
		fenStr = fen.StartPos
		args = args[1:]
	case "fen":
		end := 1
		for end < len(args) && args[end] != "moves" {
			end++
		}
		fenStr = strings.Join(args[1:end], " ")
		args = args[end:]
	default:
		fmt.Fprintln(sh.out, "info string position needs startpos or fen")
		return
	}
	p, err := fen.New(fenStr, position.WithPromotionChooser(position.PromotionFunc(sh.askPromotion)))
	if err != nil {
		fmt.Fprintln(sh.out, "info string", err)
		return
	}
	sh.pos = p
	if len(args) == 0 || args[0] != "moves" {
		return
	}
	for _, s := range args[1:] {
		if !sh.move(s) {
			fmt.Fprintln(sh.out, "info string Move", s, "not applied to", fen.Format(sh.pos))
			return
		}
	}
}

// move plays one coordinate move and reports the result.
func (sh *shell) move(s string) bool {
	c, err := game.ParseCoordinates(s)
	if err != nil {
		fmt.Fprintln(sh.out, "info string", err)
		return false
	}
	k := sh.pos.PieceAt(c.From)
	if k == board.NoPiece {
		fmt.Fprintln(sh.out, "info string No piece on", c.From)
		return false
	}
	m := position.NewMove(k, c.From, c.To)
	if c.Promotes {
		m.PromoteTo = board.Kind(k.Color(), c.Promotion)
	}
	res := sh.pos.MakeMove(m)
	switch res.Status {
	case position.StatusIllegal:
		fmt.Fprintln(sh.out, "illegal:", res.Reason)
		return false
	case position.StatusCheckmate:
		fmt.Fprintf(sh.out, "%s checkmate, %s wins\n", res.Move, sh.pos.SideToMove().Other())
	default:
		switch {
		case res.Check:
			fmt.Fprintf(sh.out, "%s check\n", res.Move)
		case sh.pos.InStalemate():
			fmt.Fprintf(sh.out, "%s stalemate\n", res.Move)
		default:
			fmt.Fprintln(sh.out, res.Move)
		}
	}
	return true
}

// askPromotion prompts on the shell's input. End of input picks the queen.
func (sh *shell) askPromotion(options []board.PieceKind) board.PieceKind {
	for {
		fmt.Fprint(sh.out, "promote to (q/r/b/n): ")
		if !sh.in.Scan() {
			fmt.Fprintln(sh.out)
			return position.AlwaysQueen(options)
		}
		pt, err := game.ParsePromotion(strings.TrimSpace(sh.in.Text()))
		if err != nil {
			continue
		}
		for _, k := range options {
			if k.Type() == pt {
				return k
			}
		}
	}
}

func (sh *shell) display() {
	for row, rank := range sh.pos.Letterbox() {
		fmt.Fprintf(sh.out, "%d ", 8-row)
		for _, code := range rank {
			fmt.Fprintf(sh.out, " %s", code)
		}
		fmt.Fprintln(sh.out)
	}
	fmt.Fprintln(sh.out, "   a  b  c  d  e  f  g  h")
	fmt.Fprintln(sh.out, "fen:", fen.Format(sh.pos))
	fmt.Fprintf(sh.out, "hash: %016x\n", sh.pos.Hash())
	stm := sh.pos.SideToMove()
	fmt.Fprintf(sh.out, "to move: %s, in check: %v\n", stm, sh.pos.InCheck(stm))
}

// drawBitboard prints a piece bitboard ("bb wN"), its attacks
// ("bb wN attacks"), or "bb occupied", "bb white", "bb black".
func (sh *shell) drawBitboard(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "info string bb needs a piece code")
		return
	}
	b := sh.pos.Board()
	switch args[0] {
	case "occupied":
		fmt.Fprint(sh.out, b.Occupied().Draw())
		return
	case "white":
		fmt.Fprint(sh.out, b.White().Draw())
		return
	case "black":
		fmt.Fprint(sh.out, b.Black().Draw())
		return
	}
	k, err := board.ParseCode(args[0])
	if err != nil {
		fmt.Fprintln(sh.out, "info string", err)
		return
	}
	if len(args) > 1 && args[1] == "attacks" {
		fmt.Fprint(sh.out, sh.pos.Attacks(k).Draw())
		return
	}
	fmt.Fprint(sh.out, b.Bitboard(k).Draw())
}
