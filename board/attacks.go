package board

import (
	"bitbucket.org/zurichess/perftkit/bitboard"
	"bitbucket.org/zurichess/perftkit/lookup"
)

// Attacked returns every square attacked by the pieces of color by. The
// defending king (the king of the other color) is excluded from the
// occupancy used for sliding attacks, so that a slider's attack continues
// through the square the king currently stands on — needed so the king
// cannot "hide" behind its own square when stepping back along a check
// ray.
func (p *Position) Attacked(l *lookup.Table, by bitboard.Color) bitboard.Bitboard {
	defenderKing := p.types[bitboard.King] & p.colors[by.Opposite()]
	occ := p.All() &^ defenderKing
	return p.attackedBy(l, by, occ)
}

func (p *Position) attackedBy(l *lookup.Table, by bitboard.Color, occ bitboard.Bitboard) bitboard.Bitboard {
	var attacked bitboard.Bitboard

	pawns := p.colors[by] & p.types[bitboard.Pawn]
	if by == bitboard.White {
		attacked |= pawns.ShiftNE() | pawns.ShiftNW()
	} else {
		attacked |= pawns.ShiftSE() | pawns.ShiftSW()
	}

	for _, pt := range [...]bitboard.PieceType{bitboard.Knight, bitboard.Bishop, bitboard.Rook, bitboard.Queen, bitboard.King} {
		bb := p.colors[by] & p.types[pt]
		for bb != 0 {
			sq := bb.Pop()
			attacked |= l.Attacks(sq, pt, occ)
		}
	}
	return attacked
}

// CheckersAndPins returns, for the side to move: the set of enemy pieces
// currently giving check, and the set of the side-to-move's own pieces
// that are pinned against its king.
func (p *Position) CheckersAndPins(l *lookup.Table) (checking, pinned bitboard.Bitboard) {
	us := p.turn
	them := us.Opposite()
	kingSq := p.King(us)
	kingBB := kingSq.Bitboard()

	theirPawns := p.colors[them] & p.types[bitboard.Pawn]
	var pawnCheckSquares bitboard.Bitboard
	if us == bitboard.White {
		pawnCheckSquares = kingBB.ShiftNE() | kingBB.ShiftNW()
	} else {
		pawnCheckSquares = kingBB.ShiftSE() | kingBB.ShiftSW()
	}
	checking |= pawnCheckSquares & theirPawns

	theirKnights := p.colors[them] & p.types[bitboard.Knight]
	checking |= l.Attacks(kingSq, bitboard.Knight, 0) & theirKnights

	theirBishops := p.colors[them] & p.types[bitboard.Bishop]
	theirRooks := p.colors[them] & p.types[bitboard.Rook]
	theirQueens := p.colors[them] & p.types[bitboard.Queen]
	theirOcc := p.colors[them]

	bishopCandidates := l.Attacks(kingSq, bitboard.Bishop, theirOcc) & (theirBishops | theirQueens)
	rookCandidates := l.Attacks(kingSq, bitboard.Rook, theirOcc) & (theirRooks | theirQueens)

	for candidates := bishopCandidates | rookCandidates; candidates != 0; {
		sq := candidates.Pop()
		between := l.SquaresBetween(kingSq, sq) & p.colors[us]
		switch between.Popcnt() {
		case 0:
			checking |= sq.Bitboard()
		case 1:
			pinned |= between
		}
	}

	return checking, pinned
}
