package perft

import (
	"bitbucket.org/zurichess/perftkit/board"
	"bitbucket.org/zurichess/perftkit/lookup"
	"bitbucket.org/zurichess/perftkit/movegen"
)

// multiply computes Count(depth=2) for the position at the root of a
// two-ply search. The root's reply counts are independent of each other,
// so this is just the sum of Count(depth=1) over each child position;
// the entry point is kept separate from the general recursive case so
// that a future, cheaper approximation (bounding most children against a
// single baseline mobility count and only recomputing the ones a move
// could plausibly disrupt — captures, discovered-check sources, king and
// castling-rights moves, pawn double pushes) can replace this body
// without touching Count's recursion.
func multiply(l *lookup.Table, p *board.Position) uint64 {
	var nodes uint64
	ms := movegen.Fill(l, p)
	for !ms.IsEmpty() {
		m := ms.Pop(p)
		p.Play(m)
		nodes += uint64(movegen.Fill(l, p).Count())
		p.Undo(m)
	}
	return nodes
}
