// Package movegen builds the legal moves available in a position as a
// small set of bitboard "maps" rather than a flat move list. Each Map
// groups together every move that shares an origin-to-destination
// relationship (a single piece's destinations, or an entire class of
// pawns pushing or capturing in lockstep), which keeps move counting and
// generation proportional to the number of distinct move shapes instead
// of the number of individual moves.
package movegen

import (
	"bitbucket.org/zurichess/perftkit/bitboard"
	"bitbucket.org/zurichess/perftkit/board"
	"bitbucket.org/zurichess/perftkit/lookup"
)

// Map is a set of moves that share one from/to relationship: either a
// single origin square with many destinations (ordinary piece moves), a
// shift-aligned bijection between origin and destination sets (pawn
// pushes and diagonal captures), or many origins collapsing onto one
// destination (an en-passant capture).
type Map struct {
	To    bitboard.Bitboard
	From  bitboard.Bitboard
	Moved bitboard.PieceType
}

// maxMaps bounds the number of maps a single position can produce: one
// king map, one map per other non-pawn piece or pinned pawn (at most 15,
// since a side has at most 16 pieces including its king), four pawn maps,
// and one en-passant map: 21 at most, within the 32 reserved.
const maxMaps = 32

// MoveSet is the full set of legal moves for a position, decomposed into
// Maps. Pop destructively consumes MoveSet one move at a time.
type MoveSet struct {
	maps [maxMaps]Map
	size int

	// pendingPromotions holds the promotion choices still owed for the
	// pawn move most recently popped onto the back rank. Pop drains this
	// queue completely, one choice per call, before touching maps again —
	// kept separate from the maps themselves so that two different pawns
	// promoting within the same map (e.g. two bijective pushes landing on
	// the back rank in the same position) can never have their four-move
	// sequences interleaved by an unrelated bit winning the next
	// lowest-set-bit pop.
	pendingFrom       bitboard.Square
	pendingTo         bitboard.Square
	pendingMoved      bitboard.PieceType
	pendingPromotions []bitboard.PieceType
}

func (ms *MoveSet) add(to, from bitboard.Bitboard, moved bitboard.PieceType) {
	if to == 0 || from == 0 {
		return
	}
	ms.maps[ms.size] = Map{To: to, From: from, Moved: moved}
	ms.size++
}

// IsEmpty reports whether every move has been popped.
func (ms *MoveSet) IsEmpty() bool { return ms.size == 0 && len(ms.pendingPromotions) == 0 }

// Count returns the number of legal moves represented, without popping
// any of them. A pawn map's destinations on the back rank stand for four
// promotion choices each, so they count three extra.
func (ms *MoveSet) Count() int {
	total := 0
	for i := 0; i < ms.size; i++ {
		total += countMap(&ms.maps[i])
	}
	return total
}

func countMap(m *Map) int {
	n := m.To.Popcnt()
	if from := m.From.Popcnt(); from > n {
		n = from
	}
	if m.Moved == bitboard.Pawn {
		promo := (bitboard.Rank8 | bitboard.Rank1) & m.To
		n += promo.Popcnt() * 3
	}
	return n
}

// kingsideMasks and queensideMasks return the squares that must
// be empty, and the squares that must not be attacked, for castling to
// the given rank (0 for Black, 7 for White) in the given direction.
func kingsideMasks(rank int) (empty, safe bitboard.Bitboard) {
	f := bitboard.RankFile(rank, 5).Bitboard() | bitboard.RankFile(rank, 6).Bitboard()
	s := bitboard.RankFile(rank, 4).Bitboard() | f
	return f, s
}

func queensideMasks(rank int) (empty, safe bitboard.Bitboard) {
	e := bitboard.RankFile(rank, 1).Bitboard() | bitboard.RankFile(rank, 2).Bitboard() | bitboard.RankFile(rank, 3).Bitboard()
	s := bitboard.RankFile(rank, 2).Bitboard() | bitboard.RankFile(rank, 3).Bitboard() | bitboard.RankFile(rank, 4).Bitboard()
	return e, s
}

// Fill builds every legal move available to the side to move in p.
func Fill(l *lookup.Table, p *board.Position) *MoveSet {
	ms := &MoveSet{}

	us := p.Turn()
	them := us.Opposite()
	ourBB := p.Us()
	theirBB := p.Them()
	allBB := p.All()
	kingSq := p.King(us)
	kingBB := kingSq.Bitboard()

	checking, pinned := p.CheckersAndPins(l)
	numChecks := checking.Popcnt()

	var checkMask bitboard.Bitboard
	switch numChecks {
	case 0:
		checkMask = ^bitboard.Bitboard(0)
	case 1:
		checkMask = checking | l.SquaresBetween(kingSq, checking.AsSquare())
	default:
		checkMask = 0
	}

	attacked := p.Attacked(l, them)
	kingMoves := l.Attacks(kingSq, bitboard.King, allBB) &^ ourBB &^ attacked

	if numChecks == 0 {
		rank := kingSq.Rank()
		castling := p.Castling()

		if castling.Has(kingSq) && castling.Has(bitboard.RankFile(rank, 7)) {
			empty, safe := kingsideMasks(rank)
			if allBB&empty == 0 && attacked&safe == 0 {
				kingMoves |= bitboard.RankFile(rank, 6).Bitboard()
			}
		}
		if castling.Has(kingSq) && castling.Has(bitboard.RankFile(rank, 0)) {
			empty, safe := queensideMasks(rank)
			if allBB&empty == 0 && attacked&safe == 0 {
				kingMoves |= bitboard.RankFile(rank, 2).Bitboard()
			}
		}
	}
	ms.add(kingMoves, kingBB, bitboard.King)

	if numChecks == 2 {
		return ms
	}

	ourPawns := p.ByPiece(us, bitboard.Pawn)

	for bb := ourBB &^ ourPawns &^ kingBB; bb != 0; {
		sq := bb.Pop()
		pt, _, _ := p.Get(sq)
		moves := l.Attacks(sq, pt, allBB) &^ ourBB & checkMask
		if pinned.Has(sq) {
			moves &= l.LineOfSight(kingSq, sq)
		}
		ms.add(moves, sq.Bitboard(), pt)
	}

	fillPawnMoves(ms, us, ourPawns&^pinned, theirBB, allBB, checkMask)
	fillPinnedPawnMoves(ms, l, us, ourPawns&pinned, theirBB, allBB, checkMask, kingSq)
	fillEnPassant(ms, l, p, us, ourPawns, pinned, checking, numChecks, kingSq)

	return ms
}

func fillPawnMoves(ms *MoveSet, us bitboard.Color, pawns, theirBB, allBB, checkMask bitboard.Bitboard) {
	var attackA, attackH, singlePush, doublePushRank bitboard.Bitboard
	if us == bitboard.White {
		attackA = pawns.ShiftNW()
		attackH = pawns.ShiftNE()
		singlePush = pawns.ShiftN() &^ allBB
		doublePushRank = bitboard.RankBb(5)
	} else {
		attackA = pawns.ShiftSW()
		attackH = pawns.ShiftSE()
		singlePush = pawns.ShiftS() &^ allBB
		doublePushRank = bitboard.RankBb(2)
	}

	attackATo := attackA & theirBB & checkMask
	attackHTo := attackH & theirBB & checkMask
	if us == bitboard.White {
		ms.add(attackATo, attackATo.ShiftSE(), bitboard.Pawn)
		ms.add(attackHTo, attackHTo.ShiftSW(), bitboard.Pawn)
	} else {
		ms.add(attackATo, attackATo.ShiftNE(), bitboard.Pawn)
		ms.add(attackHTo, attackHTo.ShiftNW(), bitboard.Pawn)
	}

	singlePushTo := singlePush & checkMask
	if us == bitboard.White {
		ms.add(singlePushTo, singlePushTo.ShiftS(), bitboard.Pawn)
	} else {
		ms.add(singlePushTo, singlePushTo.ShiftN(), bitboard.Pawn)
	}

	doubleStart := singlePush & doublePushRank
	var doubleTo bitboard.Bitboard
	if us == bitboard.White {
		doubleTo = doubleStart.ShiftN() &^ allBB & checkMask
		ms.add(doubleTo, doubleTo.ShiftS().ShiftS(), bitboard.Pawn)
	} else {
		doubleTo = doubleStart.ShiftS() &^ allBB & checkMask
		ms.add(doubleTo, doubleTo.ShiftN().ShiftN(), bitboard.Pawn)
	}
}

func fillPinnedPawnMoves(ms *MoveSet, l *lookup.Table, us bitboard.Color, pawns, theirBB, allBB, checkMask bitboard.Bitboard, kingSq bitboard.Square) {
	for bb := pawns; bb != 0; {
		sq := bb.Pop()
		sqBB := sq.Bitboard()
		pinRay := l.LineOfSight(kingSq, sq)

		var moves bitboard.Bitboard
		if us == bitboard.White {
			moves |= sqBB.ShiftNW() & theirBB
			moves |= sqBB.ShiftNE() & theirBB
			push := sqBB.ShiftN() &^ allBB
			moves |= push
			if push != 0 {
				moves |= push.ShiftN() &^ allBB & bitboard.RankBb(4)
			}
		} else {
			moves |= sqBB.ShiftSW() & theirBB
			moves |= sqBB.ShiftSE() & theirBB
			push := sqBB.ShiftS() &^ allBB
			moves |= push
			if push != 0 {
				moves |= push.ShiftS() &^ allBB & bitboard.RankBb(3)
			}
		}
		moves &= pinRay & checkMask
		ms.add(moves, sqBB, bitboard.Pawn)
	}
}

func fillEnPassant(ms *MoveSet, l *lookup.Table, p *board.Position, us bitboard.Color, ourPawns, pinned, checking bitboard.Bitboard, numChecks int, kingSq bitboard.Square) {
	epSq := p.EnPassant()
	if epSq == bitboard.NoSquare {
		return
	}

	epBB := epSq.Bitboard()
	var capturedSq bitboard.Square
	var attackersFrom bitboard.Bitboard
	if us == bitboard.White {
		attackersFrom = epBB.ShiftSW() | epBB.ShiftSE()
		capturedSq = epSq + 8
	} else {
		attackersFrom = epBB.ShiftNW() | epBB.ShiftNE()
		capturedSq = epSq - 8
	}

	if numChecks == 1 && checking != capturedSq.Bitboard() {
		return
	}

	them := us.Opposite()
	theirRooks := p.ByPiece(them, bitboard.Rook)
	theirQueens := p.ByPiece(them, bitboard.Queen)
	all := p.All()

	var from bitboard.Bitboard
	for candidates := attackersFrom & ourPawns; candidates != 0; {
		sq := candidates.Pop()
		occWithout := all &^ sq.Bitboard() &^ capturedSq.Bitboard()
		exposers := l.Attacks(kingSq, bitboard.Rook, occWithout) & bitboard.RankBb(kingSq.Rank()) & (theirRooks | theirQueens)
		if exposers != 0 {
			continue
		}
		from |= sq.Bitboard()
	}
	if from == 0 {
		return
	}
	if from&pinned != 0 {
		from &= l.LineOfSight(kingSq, epSq)
	}
	ms.add(epBB, from, bitboard.Pawn)
}
