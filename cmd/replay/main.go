package main

import (
	"flag"
	"fmt"
	"os"

	"chess-rules/fen"
	"chess-rules/game"
)

func main() {
	verbose := flag.Bool("v", false, "Print the FEN after every ply")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-v] game.pgn\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(2)
	}
	defer f.Close()

	g, want, err := game.LoadPGN(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		if g != nil {
			fmt.Fprintf(os.Stderr, "stopped at %s\n", g.FEN())
		}
		os.Exit(1)
	}

	history := g.History()
	if *verbose {
		for i, r := range history {
			check := ""
			if r.Check {
				check = "+"
			}
			fmt.Printf("%3d %-6s %016x %s\n", i+1, r.Move.String()+check, r.Hash, r.FEN)
		}
	}

	got := fen.Placement(g.Position().Board())
	outcome, winner := g.Outcome()
	fmt.Printf("plies: %d\nfen: %s\noutcome: %s", len(history), g.FEN(), outcome)
	if outcome == game.Checkmate {
		fmt.Printf(" (%s wins)", winner)
	}
	fmt.Println()
	if got != want {
		fmt.Fprintf(os.Stderr, "placement mismatch:\n engine %s\n pgn    %s\n", got, want)
		os.Exit(1)
	}
}
