// Command perft counts (or divides) the legal move tree below a FEN
// position to a fixed depth.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"bitbucket.org/zurichess/perftkit/board"
	"bitbucket.org/zurichess/perftkit/lookup"
	"bitbucket.org/zurichess/perftkit/perft"
)

var (
	divide    = flag.Bool("divide", false, "report per-root-move node counts instead of just the total")
	multiply  = flag.Bool("multiply", false, "use the depth-2 multiply shortcut where applicable")
	magicFile = flag.String("magic-file", "", "path to a magic-number cache file (created if missing)")
)

func main() {
	log.SetFlags(log.Lshortfile)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	fen := flag.Arg(0)
	depth, err := parseDepth(flag.Arg(1))
	if err != nil {
		log.Println("error:", err)
		os.Exit(1)
	}

	store, err := openMagicStore(*magicFile)
	if err != nil {
		log.Println("error:", err)
		os.Exit(1)
	}
	table, err := lookup.New(store)
	if err != nil {
		log.Println("error:", err)
		os.Exit(1)
	}

	pos, err := board.NewFromFEN(fen)
	if err != nil {
		log.Println("error:", err)
		os.Exit(1)
	}

	opts := perft.Options{Multiply: *multiply}

	if *divide {
		entries := perft.Divide(table, pos, depth, opts)
		var total uint64
		for _, e := range entries {
			fmt.Printf("%v: %d\n", e.Move, e.Nodes)
			total += e.Nodes
		}
		fmt.Printf("\nNodes searched: %d\n", total)
		return
	}

	nodes := perft.Count(table, pos, depth, opts)
	fmt.Printf("Nodes searched: %d\n", nodes)
}

func parseDepth(s string) (int, error) {
	var depth int
	if _, err := fmt.Sscanf(s, "%d", &depth); err != nil {
		return 0, fmt.Errorf("invalid depth %q: %w", s, err)
	}
	if depth < 0 {
		return 0, fmt.Errorf("depth must be non-negative, got %d", depth)
	}
	return depth, nil
}

func openMagicStore(path string) (lookup.MagicStore, error) {
	if path == "" {
		return lookup.NewMemoryMagicStore(), nil
	}
	return lookup.NewFileMagicStore(path)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] <fen> <depth>\n", os.Args[0])
	flag.PrintDefaults()
}
