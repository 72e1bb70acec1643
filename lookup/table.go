// Package lookup builds the attack tables the move generator queries in
// O(1): knight and king attack rings, magic-bitboard-hashed bishop and
// rook attacks, and the squares-between/line-of-sight tables used to
// detect pins and checks.
package lookup

import (
	"fmt"
	"math/rand"

	"bitbucket.org/zurichess/perftkit/bitboard"
)

// Table holds every precomputed attack set. It is built once by New and
// is safe for concurrent read-only use afterward.
type Table struct {
	knightAttacks [64]bitboard.Bitboard
	kingAttacks   [64]bitboard.Bitboard

	bishopMagic [64]magicEntry
	rookMagic   [64]magicEntry

	squaresBetween [64][64]bitboard.Bitboard
	lineOfSight    [64][64]bitboard.Bitboard
}

// New builds a Table, reading and writing magic numbers through store.
// Construction order of magic numbers is bishop-then-rook per square,
// squares 0 through 63; a nil store behaves like NewMemoryMagicStore.
//
// New always builds bishop/rook attacks through the magic-bitboard path
// below. A PEXT-based build (replacing the magic multiply/shift with the
// BMI2 instruction) would avoid that multiply, but Go's standard
// toolchain has no portable PEXT intrinsic: using one means a
// hand-written assembly stub gated behind a //go:build amd64 tag, plus a
// software fallback for every other architecture, none of which can be
// verified without running it on real hardware.
func New(store MagicStore) (*Table, error) {
	if store == nil {
		store = NewMemoryMagicStore()
	}

	t := &Table{}
	initLeapers(t)

	wiz := &wizard{Rand: rand.New(rand.NewSource(1))}

	index := 0
	for sq := bitboard.Square(0); sq < 64; sq++ {
		wiz.Deltas = bishopDeltas
		magic, err := loadOrSearch(store, wiz, &t.bishopMagic[sq], sq, index)
		if err != nil {
			return nil, err
		}
		_ = magic
		index++

		wiz.Deltas = rookDeltas
		magic, err = loadOrSearch(store, wiz, &t.rookMagic[sq], sq, index)
		if err != nil {
			return nil, err
		}
		_ = magic
		index++
	}

	for s1 := bitboard.Square(0); s1 < 64; s1++ {
		for s2 := bitboard.Square(0); s2 < 64; s2++ {
			t.squaresBetween[s1][s2] = squaresBetween(s1, s2)
			t.lineOfSight[s1][s2] = lineOfSight(s1, s2)
		}
	}

	return t, nil
}

func loadOrSearch(store MagicStore, wiz *wizard, mi *magicEntry, sq bitboard.Square, index int) (uint64, error) {
	known, ok, err := store.Read(index)
	if err != nil {
		return 0, fmt.Errorf("lookup: read magic %d: %w", index, err)
	}
	magic := wiz.search(mi, sq, known)
	if !ok || magic != known {
		if err := store.Append(index, magic); err != nil {
			return 0, fmt.Errorf("lookup: append magic %d: %w", index, err)
		}
	}
	return magic, nil
}

func initLeapers(t *Table) {
	knightJumps := [][2]int{
		{-2, -1}, {-2, +1}, {+2, -1}, {+2, +1},
		{-1, -2}, {-1, +2}, {+1, -2}, {+1, +2},
	}
	kingJumps := [][2]int{
		{-1, -1}, {-1, +0}, {-1, +1}, {+0, +1},
		{+1, +1}, {+1, +0}, {+1, -1}, {+0, -1},
	}
	fillJumps(knightJumps, t.knightAttacks[:])
	fillJumps(kingJumps, t.kingAttacks[:])
}

func fillJumps(jumps [][2]int, attack []bitboard.Bitboard) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			bb := bitboard.Bitboard(0)
			for _, d := range jumps {
				r0, f0 := r+d[0], f+d[1]
				if r0 < 0 || r0 >= 8 || f0 < 0 || f0 >= 8 {
					continue
				}
				bb |= bitboard.RankFile(r0, f0).Bitboard()
			}
			attack[bitboard.RankFile(r, f)] = bb
		}
	}
}

// alignedDeltas returns the ray directions joining s1 and s2: rook deltas
// on a shared rank or file, bishop deltas on a shared diagonal, nil if
// the squares are not aligned.
func alignedDeltas(s1, s2 bitboard.Square) [][2]int {
	dr, df := s1.Rank()-s2.Rank(), s1.File()-s2.File()
	switch {
	case dr == 0 || df == 0:
		return rookDeltas
	case dr == df || dr == -df:
		return bishopDeltas
	}
	return nil
}

func squaresBetween(s1, s2 bitboard.Square) bitboard.Bitboard {
	deltas := alignedDeltas(s1, s2)
	if s1 == s2 || deltas == nil {
		return 0
	}
	return slidingAttack(s1, deltas, s2.Bitboard()) & slidingAttack(s2, deltas, s1.Bitboard())
}

func lineOfSight(s1, s2 bitboard.Square) bitboard.Bitboard {
	deltas := alignedDeltas(s1, s2)
	if s1 == s2 || deltas == nil {
		return 0
	}
	return slidingAttack(s1, deltas, 0)&slidingAttack(s2, deltas, 0) | s1.Bitboard() | s2.Bitboard()
}

// Attacks returns the attack set for a piece of type pt on square sq,
// given the current board occupancy. Pawn is not a valid argument: pawn
// attacks are direction-derived by the move generator, not stored here
// (the lookup table is color-agnostic).
func (t *Table) Attacks(sq bitboard.Square, pt bitboard.PieceType, occ bitboard.Bitboard) bitboard.Bitboard {
	switch pt {
	case bitboard.Knight:
		return t.knightAttacks[sq]
	case bitboard.King:
		return t.kingAttacks[sq]
	case bitboard.Bishop:
		return t.bishopMagic[sq].attacks(occ)
	case bitboard.Rook:
		return t.rookMagic[sq].attacks(occ)
	case bitboard.Queen:
		return t.bishopMagic[sq].attacks(occ) | t.rookMagic[sq].attacks(occ)
	default:
		panic(fmt.Sprintf("lookup: invalid piece type %v", pt))
	}
}

// SquaresBetween returns the (exclusive) set of squares on the
// rank/file/diagonal strictly between s1 and s2, or the empty board if
// they are not aligned.
func (t *Table) SquaresBetween(s1, s2 bitboard.Square) bitboard.Bitboard {
	return t.squaresBetween[s1][s2]
}

// LineOfSight returns the full rank/file/diagonal line through s1 and s2,
// including both squares, or the empty board if they are not aligned.
func (t *Table) LineOfSight(s1, s2 bitboard.Square) bitboard.Bitboard {
	return t.lineOfSight[s1][s2]
}

// BishopMask returns the relevant-occupancy mask used for the bishop
// magic hash on sq.
func (t *Table) BishopMask(sq bitboard.Square) bitboard.Bitboard {
	return t.bishopMagic[sq].mask
}

// RookMask returns the relevant-occupancy mask used for the rook magic
// hash on sq.
func (t *Table) RookMask(sq bitboard.Square) bitboard.Bitboard {
	return t.rookMagic[sq].mask
}
