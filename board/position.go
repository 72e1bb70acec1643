// Package board implements the bitboard chess position: storage, FEN
// ingest, make/unmake, and the attacked/checking/pinned queries the move
// generator builds legal moves from.
package board

import (
	"fmt"
	"strings"

	"bitbucket.org/zurichess/perftkit/bitboard"
	"bitbucket.org/zurichess/perftkit/fen"
)

// Piece names a piece type sitting on a square. Type == bitboard.Empty
// means "no piece" and Square is then meaningless.
type Piece struct {
	Type   bitboard.PieceType
	Square bitboard.Square
}

// NoPiece is the absent piece. Square is explicitly bitboard.NoSquare
// (not the zero value) so that Play's castling-rights mask, which ORs in
// m.Captured.Square.Bitboard() unconditionally, doesn't treat a
// non-capturing move as if it had captured on square 0 (a8).
var NoPiece = Piece{Type: bitboard.Empty, Square: bitboard.NoSquare}

// Move is an undo-complete record of a single ply: it carries everything
// Position.Undo needs to reverse itself without consulting any other
// state.
type Move struct {
	From     Piece // piece and origin square before the move
	To       Piece // piece and destination square after the move (promoted type, if any)
	Captured Piece // captured piece, Type == Empty if none; Square differs from To.Square on en passant

	PriorEnPassant bitboard.Square
	PriorCastling  bitboard.Bitboard
}

func (m Move) String() string {
	s := m.From.Square.String() + m.To.Square.String()
	if m.To.Type != m.From.Type && m.From.Type == bitboard.Pawn {
		s += promotionSymbol[m.To.Type]
	}
	return s
}

var promotionSymbol = map[bitboard.PieceType]string{
	bitboard.Knight: "n",
	bitboard.Bishop: "b",
	bitboard.Rook:   "r",
	bitboard.Queen:  "q",
}

// Position is the bitboard chess position: per-type and per-color
// bitboards, a square-indexed piece array, side to move, the en-passant
// target square (bitboard.NoSquare if none), and castling rights encoded
// as the bitboard of king and rook origin squares still available to
// castle with — a castling right exists iff both bits are still set.
type Position struct {
	types   [bitboard.PieceTypeCount]bitboard.Bitboard
	colors  [bitboard.ColorCount]bitboard.Bitboard
	squares [64]bitboard.PieceType

	turn      bitboard.Color
	enPassant bitboard.Square
	castling  bitboard.Bitboard
}

// New returns an empty position with White to move and no castling
// rights.
func New() *Position {
	p := &Position{enPassant: bitboard.NoSquare}
	for i := range p.squares {
		p.squares[i] = bitboard.Empty
	}
	return p
}

// NewFromFEN parses a FEN string into a Position.
func NewFromFEN(s string) (*Position, error) {
	placement, err := fen.Decode(s)
	if err != nil {
		return nil, err
	}

	p := New()
	for sq := bitboard.Square(0); sq < 64; sq++ {
		occ := placement.Squares[sq]
		if occ.Type == bitboard.Empty {
			continue
		}
		p.Put(sq, occ.Type, occ.Color)
	}
	p.turn = placement.Turn
	p.castling = placement.Castling
	p.enPassant = placement.EnPassant
	return p, nil
}

// String renders the position back to FEN. Halfmove clock and fullmove
// number, which Position does not retain, are always printed as 0 1.
func (p *Position) String() string {
	placement := fen.Placement{
		Turn:           p.turn,
		Castling:       p.castling,
		EnPassant:      p.enPassant,
		HalfMoveClock:  0,
		FullMoveNumber: 1,
	}
	for sq := bitboard.Square(0); sq < 64; sq++ {
		t, c, ok := p.Get(sq)
		if !ok {
			placement.Squares[sq] = fen.Empty
			continue
		}
		placement.Squares[sq] = fen.Square{Type: t, Color: c}
	}
	return fen.Encode(placement)
}

// PrettyPrint dumps an 8x8 board diagram to stdout, for debugging move
// generation failures.
func (p *Position) PrettyPrint() {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := bitboard.RankFile(r, f)
			t, c, ok := p.Get(sq)
			if !ok {
				sb.WriteString(" .")
				continue
			}
			sym := pieceLetters[t]
			if c == bitboard.Black {
				sym = strings.ToLower(sym)
			}
			sb.WriteString(" " + sym)
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}

var pieceLetters = map[bitboard.PieceType]string{
	bitboard.Pawn:   "P",
	bitboard.Knight: "N",
	bitboard.Bishop: "B",
	bitboard.Rook:   "R",
	bitboard.Queen:  "Q",
	bitboard.King:   "K",
}

// Turn returns the side to move.
func (p *Position) Turn() bitboard.Color { return p.turn }

// EnPassant returns the en-passant target square, or bitboard.NoSquare.
func (p *Position) EnPassant() bitboard.Square { return p.enPassant }

// Castling returns the bitboard of king/rook origin squares still
// eligible to castle.
func (p *Position) Castling() bitboard.Bitboard { return p.castling }

// Us returns the bitboard of the side-to-move's pieces.
func (p *Position) Us() bitboard.Bitboard { return p.colors[p.turn] }

// Them returns the bitboard of the opponent's pieces.
func (p *Position) Them() bitboard.Bitboard { return p.colors[p.turn.Opposite()] }

// All returns the bitboard of every occupied square.
func (p *Position) All() bitboard.Bitboard { return p.colors[bitboard.White] | p.colors[bitboard.Black] }

// ByColor returns the bitboard of every piece of the given color.
func (p *Position) ByColor(c bitboard.Color) bitboard.Bitboard { return p.colors[c] }

// ByType returns the bitboard of every piece of the given type,
// regardless of color.
func (p *Position) ByType(t bitboard.PieceType) bitboard.Bitboard { return p.types[t] }

// ByPiece returns the bitboard of pieces of type t and color c.
func (p *Position) ByPiece(c bitboard.Color, t bitboard.PieceType) bitboard.Bitboard {
	return p.types[t] & p.colors[c]
}

// Get returns the type and color of the piece on sq, or ok=false if sq is
// empty.
func (p *Position) Get(sq bitboard.Square) (bitboard.PieceType, bitboard.Color, bool) {
	t := p.squares[sq]
	if t == bitboard.Empty {
		return bitboard.Empty, bitboard.White, false
	}
	c := bitboard.White
	if p.colors[bitboard.Black].Has(sq) {
		c = bitboard.Black
	}
	return t, c, true
}

// Put places a piece of type t and color c on sq, which must be empty.
func (p *Position) Put(sq bitboard.Square, t bitboard.PieceType, c bitboard.Color) {
	bb := sq.Bitboard()
	p.types[t] |= bb
	p.colors[c] |= bb
	p.squares[sq] = t
}

// Remove clears sq, which must be occupied.
func (p *Position) Remove(sq bitboard.Square) {
	bb := sq.Bitboard()
	t := p.squares[sq]
	p.types[t] &^= bb
	p.colors[bitboard.White] &^= bb
	p.colors[bitboard.Black] &^= bb
	p.squares[sq] = bitboard.Empty
}

// King returns the square of the king of color c. Undefined if c has no
// king on the board.
func (p *Position) King(c bitboard.Color) bitboard.Square {
	return (p.types[bitboard.King] & p.colors[c]).AsSquare()
}
