package movegen

import (
	"bitbucket.org/zurichess/perftkit/bitboard"
	"bitbucket.org/zurichess/perftkit/board"
)

// promotionOrder is the sequence Pop cycles a pawn map's back-rank
// destinations through: knight first, then bishop, rook, queen.
var promotionOrder = [...]bitboard.PieceType{
	bitboard.Knight,
	bitboard.Bishop,
	bitboard.Rook,
	bitboard.Queen,
}

// Pop removes and returns one move from the set. p is the position the
// moves were generated from; it supplies the occupant of the destination
// square (for captures) and the current en-passant square (to recognize
// an en-passant capture's displaced target). ms must not be empty.
func (ms *MoveSet) Pop(p *board.Position) board.Move {
	if len(ms.pendingPromotions) > 0 {
		promoted := ms.pendingPromotions[0]
		ms.pendingPromotions = ms.pendingPromotions[1:]
		return ms.buildMove(p, ms.pendingFrom, ms.pendingTo, ms.pendingMoved, promoted)
	}

	m := &ms.maps[ms.size-1]
	moved := m.Moved

	toCount := m.To.Popcnt()
	fromCount := m.From.Popcnt()
	offset := toCount - fromCount

	fromSq := m.From.Pop()
	toSq := m.To.Pop()
	if offset > 0 {
		m.From |= fromSq.Bitboard()
	} else if offset < 0 {
		m.To |= toSq.Bitboard()
	}
	if m.To == 0 || m.From == 0 {
		ms.size--
	}

	promoted := moved
	if moved == bitboard.Pawn && (toSq.Rank() == 0 || toSq.Rank() == 7) {
		promoted = promotionOrder[0]
		ms.pendingFrom, ms.pendingTo, ms.pendingMoved = fromSq, toSq, moved
		ms.pendingPromotions = append(ms.pendingPromotions[:0], promotionOrder[1:]...)
	}

	return ms.buildMove(p, fromSq, toSq, moved, promoted)
}

func (ms *MoveSet) buildMove(p *board.Position, fromSq, toSq bitboard.Square, moved, promoted bitboard.PieceType) board.Move {
	captured := board.NoPiece
	if ct, _, ok := p.Get(toSq); ok {
		captured = board.Piece{Type: ct, Square: toSq}
	} else if moved == bitboard.Pawn && toSq == p.EnPassant() {
		capturedSq := toSq + 8
		if p.Turn() == bitboard.Black {
			capturedSq = toSq - 8
		}
		captured = board.Piece{Type: bitboard.Pawn, Square: capturedSq}
	}

	return board.Move{
		From:           board.Piece{Type: moved, Square: fromSq},
		To:             board.Piece{Type: promoted, Square: toSq},
		Captured:       captured,
		PriorEnPassant: p.EnPassant(),
		PriorCastling:  p.Castling(),
	}
}
