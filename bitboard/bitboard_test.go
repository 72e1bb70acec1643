package bitboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSquareStringFromStringRoundTrip(t *testing.T) {
	for _, s := range []string{"a8", "h8", "a1", "h1", "e4", "d5"} {
		sq, err := FromString(s)
		require.NoError(t, err)
		require.Equal(t, s, sq.String())
	}
}

func TestSquareStringNoSquare(t *testing.T) {
	require.Equal(t, "-", NoSquare.String())
}

func TestFromStringInvalid(t *testing.T) {
	for _, s := range []string{"", "e", "e44", "i4", "e9"} {
		_, err := FromString(s)
		require.Error(t, err)
	}
}

func TestRankFileSquareRoundTrip(t *testing.T) {
	sq := RankFile(3, 5)
	require.Equal(t, 3, sq.Rank())
	require.Equal(t, 5, sq.File())
}

func TestShiftEClipsAtHFile(t *testing.T) {
	h4 := RankFile(4, 7)
	require.Equal(t, Bitboard(0), h4.Bitboard().ShiftE())
}

func TestShiftWClipsAtAFile(t *testing.T) {
	a4 := RankFile(4, 0)
	require.Equal(t, Bitboard(0), a4.Bitboard().ShiftW())
}

func TestShiftEWithinBoard(t *testing.T) {
	e4 := RankFile(4, 4)
	f4 := RankFile(4, 5)
	require.Equal(t, f4.Bitboard(), e4.Bitboard().ShiftE())
}

func TestShiftNEClipsAtHFile(t *testing.T) {
	h4 := RankFile(4, 7)
	require.Equal(t, Bitboard(0), h4.Bitboard().ShiftNE())
}

func TestShiftNWClipsAtAFile(t *testing.T) {
	a4 := RankFile(4, 0)
	require.Equal(t, Bitboard(0), a4.Bitboard().ShiftNW())
}

func TestShiftSEClipsAtHFile(t *testing.T) {
	h4 := RankFile(4, 7)
	require.Equal(t, Bitboard(0), h4.Bitboard().ShiftSE())
}

func TestShiftSWClipsAtAFile(t *testing.T) {
	a4 := RankFile(4, 0)
	require.Equal(t, Bitboard(0), a4.Bitboard().ShiftSW())
}

func TestShiftDiagonalsWithinBoard(t *testing.T) {
	e4 := RankFile(4, 4)
	bb := e4.Bitboard()
	require.Equal(t, RankFile(3, 5).Bitboard(), bb.ShiftNE())
	require.Equal(t, RankFile(3, 3).Bitboard(), bb.ShiftNW())
	require.Equal(t, RankFile(5, 5).Bitboard(), bb.ShiftSE())
	require.Equal(t, RankFile(5, 3).Bitboard(), bb.ShiftSW())
}

func TestShiftMatchesNamedShifts(t *testing.T) {
	bb := RankFile(4, 4).Bitboard()
	require.Equal(t, bb.ShiftN(), bb.Shift(-1, 0))
	require.Equal(t, bb.ShiftS(), bb.Shift(1, 0))
	require.Equal(t, bb.ShiftE(), bb.Shift(0, 1))
	require.Equal(t, bb.ShiftW(), bb.Shift(0, -1))
	require.Equal(t, bb.ShiftNE(), bb.Shift(-1, 1))
	require.Equal(t, bb.ShiftNW(), bb.Shift(-1, -1))
	require.Equal(t, bb.ShiftSE(), bb.Shift(1, 1))
	require.Equal(t, bb.ShiftSW(), bb.Shift(1, -1))
	require.Equal(t, Bitboard(0), bb.Shift(0, 0))
}

func TestPopcntMultiBit(t *testing.T) {
	bb := RankFile(0, 0).Bitboard() | RankFile(3, 4).Bitboard() | RankFile(7, 7).Bitboard()
	require.Equal(t, 3, bb.Popcnt())
}

func TestLSBAndPopMultiBit(t *testing.T) {
	lo := RankFile(1, 6)
	hi := RankFile(5, 2)
	bb := lo.Bitboard() | hi.Bitboard()

	require.Equal(t, lo.Bitboard(), bb.LSB())

	popped := bb.Pop()
	require.Equal(t, lo, popped)
	require.Equal(t, hi.Bitboard(), bb)

	popped = bb.Pop()
	require.Equal(t, hi, popped)
	require.Equal(t, Bitboard(0), bb)
}

func TestHas(t *testing.T) {
	bb := RankFile(2, 2).Bitboard() | RankFile(6, 6).Bitboard()
	require.True(t, bb.Has(RankFile(2, 2)))
	require.True(t, bb.Has(RankFile(6, 6)))
	require.False(t, bb.Has(RankFile(0, 0)))
}

func TestRankBbAndFileBb(t *testing.T) {
	rank0 := RankBb(0)
	for f := 0; f < 8; f++ {
		require.True(t, rank0.Has(RankFile(0, f)))
	}
	require.False(t, rank0.Has(RankFile(1, 0)))

	fileA := FileBb(0)
	for r := 0; r < 8; r++ {
		require.True(t, fileA.Has(RankFile(r, 0)))
	}
	require.False(t, fileA.Has(RankFile(0, 1)))
}

func TestColorOpposite(t *testing.T) {
	require.Equal(t, Black, White.Opposite())
	require.Equal(t, White, Black.Opposite())
}
