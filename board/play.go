package board

import "bitbucket.org/zurichess/perftkit/bitboard"

// Play applies m to the position. m must have been produced by this
// position's legal move generator (or be its exact inverse supplied to
// Undo); Play performs no legality checking of its own.
func (p *Position) Play(m Move) {
	mover := p.turn

	if m.Captured.Type != bitboard.Empty {
		p.Remove(m.Captured.Square)
	}
	p.Remove(m.From.Square)
	p.Put(m.To.Square, m.To.Type, mover)

	if m.From.Type == bitboard.King && fileDiff(m.From.Square, m.To.Square) == 2 {
		rookFrom, rookTo := castlingRookSquares(m.To.Square)
		p.Remove(rookFrom)
		p.Put(rookTo, bitboard.Rook, mover)
	}

	p.castling &^= m.From.Square.Bitboard() | m.To.Square.Bitboard() | m.Captured.Square.Bitboard()

	if m.From.Type == bitboard.Pawn && rankDiff(m.From.Square, m.To.Square) == 2 {
		p.enPassant = bitboard.Square((int(m.From.Square) + int(m.To.Square)) / 2)
	} else {
		p.enPassant = bitboard.NoSquare
	}

	p.turn = mover.Opposite()
}

// Undo reverses m, restoring the position to exactly how it was before
// Play(m) was called. It relies only on the fields carried by m, not on
// any external history stack.
func (p *Position) Undo(m Move) {
	mover := p.turn.Opposite()

	p.Remove(m.To.Square)
	p.Put(m.From.Square, m.From.Type, mover)

	if m.From.Type == bitboard.King && fileDiff(m.From.Square, m.To.Square) == 2 {
		rookFrom, rookTo := castlingRookSquares(m.To.Square)
		p.Remove(rookTo)
		p.Put(rookFrom, bitboard.Rook, mover)
	}

	if m.Captured.Type != bitboard.Empty {
		p.Put(m.Captured.Square, m.Captured.Type, mover.Opposite())
	}

	p.enPassant = m.PriorEnPassant
	p.castling = m.PriorCastling
	p.turn = mover
}

func fileDiff(a, b bitboard.Square) int {
	d := a.File() - b.File()
	if d < 0 {
		d = -d
	}
	return d
}

func rankDiff(a, b bitboard.Square) int {
	d := a.Rank() - b.Rank()
	if d < 0 {
		d = -d
	}
	return d
}

// castlingRookSquares returns the rook's origin and destination squares
// for a castling move whose king lands on kingTo.
func castlingRookSquares(kingTo bitboard.Square) (from, to bitboard.Square) {
	rank := kingTo.Rank()
	if kingTo.File() == 2 { // queenside
		return bitboard.RankFile(rank, 0), bitboard.RankFile(rank, 3)
	}
	return bitboard.RankFile(rank, 7), bitboard.RankFile(rank, 5) // kingside
}
