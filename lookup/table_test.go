package lookup

import (
	"testing"

	"bitbucket.org/zurichess/perftkit/bitboard"
	"github.com/stretchr/testify/require"
)

func TestKnightAttacksCorner(t *testing.T) {
	tbl, err := New(NewMemoryMagicStore())
	require.NoError(t, err)

	a8 := bitboard.RankFile(0, 0)
	got := tbl.Attacks(a8, bitboard.Knight, 0)
	require.Equal(t, 2, got.Popcnt())
}

func TestRookAttacksOpenBoard(t *testing.T) {
	tbl, err := New(NewMemoryMagicStore())
	require.NoError(t, err)

	d4 := bitboard.RankFile(4, 3)
	got := tbl.Attacks(d4, bitboard.Rook, 0)
	require.Equal(t, 14, got.Popcnt())
}

func TestRookAttacksBlocked(t *testing.T) {
	tbl, err := New(NewMemoryMagicStore())
	require.NoError(t, err)

	d4 := bitboard.RankFile(4, 3)
	d6 := bitboard.RankFile(2, 3)
	occ := d6.Bitboard()
	got := tbl.Attacks(d4, bitboard.Rook, occ)
	require.True(t, got.Has(d6))
	require.False(t, got.Has(bitboard.RankFile(1, 3)))
}

func TestBishopAttacksOpenBoard(t *testing.T) {
	tbl, err := New(NewMemoryMagicStore())
	require.NoError(t, err)

	d4 := bitboard.RankFile(4, 3)
	got := tbl.Attacks(d4, bitboard.Bishop, 0)
	require.Equal(t, 13, got.Popcnt())
}

func TestSquaresBetweenAndLineOfSight(t *testing.T) {
	tbl, err := New(NewMemoryMagicStore())
	require.NoError(t, err)

	a1 := bitboard.RankFile(7, 0)
	a8 := bitboard.RankFile(0, 0)
	between := tbl.SquaresBetween(a1, a8)
	require.Equal(t, 6, between.Popcnt())
	require.False(t, between.Has(a1))
	require.False(t, between.Has(a8))

	line := tbl.LineOfSight(a1, a8)
	require.Equal(t, 8, line.Popcnt())
	require.True(t, line.Has(a1))
	require.True(t, line.Has(a8))

	e4 := bitboard.RankFile(4, 4)
	require.Equal(t, bitboard.Bitboard(0), tbl.SquaresBetween(a1, e4))
}

func TestMagicStoreRoundTrip(t *testing.T) {
	store := NewMemoryMagicStore()
	_, ok, err := store.Read(0)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Append(0, 12345))
	magic, ok, err := store.Read(0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(12345), magic)
}
