// Package perft walks the legal move tree to a fixed depth and counts
// the leaves, the standard correctness benchmark for a move generator:
// any bug in move generation, make/unmake, or check/pin detection shows
// up as a wrong node count at some depth.
package perft

import (
	"bitbucket.org/zurichess/perftkit/board"
	"bitbucket.org/zurichess/perftkit/lookup"
	"bitbucket.org/zurichess/perftkit/movegen"
)

// Options controls optional tree-walk optimizations. The zero value runs
// the plain recursive walk.
type Options struct {
	// Multiply sends depth-2 nodes through multiply, which sums the move
	// counts of every child position. It gives the same totals as the
	// plain walk: no baseline count is used and every child is generated
	// and counted.
	Multiply bool
}

// Count returns the number of leaf positions reachable from p in exactly
// depth plies. depth must be >= 0.
func Count(l *lookup.Table, p *board.Position, depth int, opts Options) uint64 {
	switch {
	case depth == 0:
		return 1
	case depth == 1:
		return uint64(movegen.Fill(l, p).Count())
	case depth == 2 && opts.Multiply:
		return multiply(l, p)
	}

	var nodes uint64
	ms := movegen.Fill(l, p)
	for !ms.IsEmpty() {
		m := ms.Pop(p)
		p.Play(m)
		nodes += Count(l, p, depth-1, opts)
		p.Undo(m)
	}
	return nodes
}

// DivideEntry is one root move's contribution to a divide report.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide runs Count(depth-1) under each root move and reports the
// per-move breakdown, the standard tool for finding which root move
// leads to a diverging subtree when a perft count is wrong.
func Divide(l *lookup.Table, p *board.Position, depth int, opts Options) []DivideEntry {
	if depth == 0 {
		return nil
	}

	var entries []DivideEntry
	ms := movegen.Fill(l, p)
	for !ms.IsEmpty() {
		m := ms.Pop(p)
		p.Play(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: Count(l, p, depth-1, opts)})
		p.Undo(m)
	}
	return entries
}
