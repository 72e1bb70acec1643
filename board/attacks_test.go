package board

import (
	"testing"

	"bitbucket.org/zurichess/perftkit/bitboard"
	"bitbucket.org/zurichess/perftkit/lookup"
	"github.com/stretchr/testify/require"
)

func TestCheckersAndPinsDirectCheck(t *testing.T) {
	tbl, err := lookup.New(lookup.NewMemoryMagicStore())
	require.NoError(t, err)

	// White king on e1, black rook on e8: direct check along the e-file.
	p, err := NewFromFEN("4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	checking, pinned := p.CheckersAndPins(tbl)
	require.Equal(t, 1, checking.Popcnt())
	require.True(t, checking.Has(bitboard.RankFile(0, 4)))
	require.Equal(t, bitboard.Bitboard(0), pinned)
}

func TestCheckersAndPinsPin(t *testing.T) {
	tbl, err := lookup.New(lookup.NewMemoryMagicStore())
	require.NoError(t, err)

	// White king e1, white bishop e4 (blocker), black rook e8: bishop pinned.
	p, err := NewFromFEN("4r3/8/8/8/4B3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	checking, pinned := p.CheckersAndPins(tbl)
	require.Equal(t, bitboard.Bitboard(0), checking)
	require.Equal(t, 1, pinned.Popcnt())
	require.True(t, pinned.Has(bitboard.RankFile(4, 4)))
}

func TestAttackedExcludesDefendingKingFromOccupancy(t *testing.T) {
	tbl, err := lookup.New(lookup.NewMemoryMagicStore())
	require.NoError(t, err)

	// Black king e8, black rook e1 "attacking" through where white king stands on e4.
	p, err := NewFromFEN("4k3/8/8/8/4K3/8/8/4r3 w - - 0 1")
	require.NoError(t, err)

	attacked := p.Attacked(tbl, bitboard.Black)
	// The square behind the white king along the file must remain marked
	// attacked, since the king cannot step back along the checking ray.
	require.True(t, attacked.Has(bitboard.RankFile(3, 4)))
}
