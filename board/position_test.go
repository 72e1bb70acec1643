package board

import (
	"testing"

	"bitbucket.org/zurichess/perftkit/bitboard"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestNewFromFENRoundTrip(t *testing.T) {
	p, err := NewFromFEN(startFEN)
	require.NoError(t, err)
	require.Equal(t, startFEN, p.String())
}

func TestPlayUndoRestoresPosition(t *testing.T) {
	p, err := NewFromFEN(startFEN)
	require.NoError(t, err)

	before := snapshot(p)

	e2 := bitboard.RankFile(6, 4)
	e4 := bitboard.RankFile(4, 4)
	m := Move{
		From:           Piece{bitboard.Pawn, e2},
		To:             Piece{bitboard.Pawn, e4},
		Captured:       NoPiece,
		PriorEnPassant: p.EnPassant(),
		PriorCastling:  p.Castling(),
	}

	p.Play(m)
	require.NotEqual(t, before, snapshot(p))
	require.Equal(t, bitboard.RankFile(5, 4), p.EnPassant())

	p.Undo(m)
	after := snapshot(p)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("position not restored by play+undo (-before +after):\n%s", diff)
	}
}

func TestPlayQuietMovePreservesCastlingRights(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	p, err := NewFromFEN(kiwipete)
	require.NoError(t, err)

	before := p.Castling()

	// A quiet knight move, nowhere near any king or rook square.
	e5 := bitboard.RankFile(3, 4)
	d3 := bitboard.RankFile(5, 3)
	m := Move{
		From:           Piece{bitboard.Knight, e5},
		To:             Piece{bitboard.Knight, d3},
		Captured:       NoPiece,
		PriorEnPassant: p.EnPassant(),
		PriorCastling:  p.Castling(),
	}

	p.Play(m)
	require.Equal(t, before, p.Castling(), "a quiet move must not touch unrelated castling rights")
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	p, err := NewFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	h8 := bitboard.RankFile(0, 7)
	require.True(t, p.Castling().Has(h8))

	m := Move{
		From:           Piece{bitboard.Rook, bitboard.RankFile(7, 7)},
		To:             Piece{bitboard.Rook, h8},
		Captured:       Piece{bitboard.Rook, h8},
		PriorEnPassant: p.EnPassant(),
		PriorCastling:  p.Castling(),
	}
	p.Play(m)
	require.False(t, p.Castling().Has(h8))

	p.Undo(m)
	require.True(t, p.Castling().Has(h8))
}

func snapshot(p *Position) Position {
	return *p
}
