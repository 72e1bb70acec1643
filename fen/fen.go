// Package fen decodes and encodes Forsyth-Edwards Notation. It is kept
// separate from board so the position representation never has to know
// about FEN's text grammar, and so the core stays usable with any other
// position-ingest format a caller wants to write.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"bitbucket.org/zurichess/perftkit/bitboard"
)

// Square is a piece occupying one board square. Type == bitboard.Empty
// means the square is unoccupied, in which case Color is meaningless.
type Square struct {
	Type  bitboard.PieceType
	Color bitboard.Color
}

// Empty is the occupant of an empty square.
var Empty = Square{Type: bitboard.Empty}

// Placement is the decoded content of a FEN string, in the fields this
// core consumes. HalfMoveClock and FullMoveNumber are parsed but not
// retained by board.Position; they exist only so Decode can validate a
// full six-field FEN string and Encode can round-trip it.
type Placement struct {
	Squares        [64]Square
	Turn           bitboard.Color
	Castling       bitboard.Bitboard
	EnPassant      bitboard.Square
	HalfMoveClock  int
	FullMoveNumber int
}

var symbolToSquare = map[rune]Square{
	'p': {bitboard.Pawn, bitboard.Black},
	'n': {bitboard.Knight, bitboard.Black},
	'b': {bitboard.Bishop, bitboard.Black},
	'r': {bitboard.Rook, bitboard.Black},
	'q': {bitboard.Queen, bitboard.Black},
	'k': {bitboard.King, bitboard.Black},

	'P': {bitboard.Pawn, bitboard.White},
	'N': {bitboard.Knight, bitboard.White},
	'B': {bitboard.Bishop, bitboard.White},
	'R': {bitboard.Rook, bitboard.White},
	'Q': {bitboard.Queen, bitboard.White},
	'K': {bitboard.King, bitboard.White},
}

var squareToSymbol = map[bitboard.PieceType][2]byte{
	bitboard.Pawn:   {'p', 'P'},
	bitboard.Knight: {'n', 'N'},
	bitboard.Bishop: {'b', 'B'},
	bitboard.Rook:   {'r', 'R'},
	bitboard.Queen:  {'q', 'Q'},
	bitboard.King:   {'k', 'K'},
}

// Standard starting squares for the rook/king pairs a castling letter
// refers to. Chess960 castling (arbitrary rook origins) is out of scope.
var (
	whiteKingHome  = bitboard.RankFile(7, 4)
	blackKingHome  = bitboard.RankFile(0, 4)
	whiteKingRook  = bitboard.RankFile(7, 7)
	whiteQueenRook = bitboard.RankFile(7, 0)
	blackKingRook  = bitboard.RankFile(0, 7)
	blackQueenRook = bitboard.RankFile(0, 0)
)

// Decode parses a FEN string into a Placement.
func Decode(s string) (Placement, error) {
	// Split into fields without the garbage of strings.Fields, mirroring
	// how a hot FEN parser on a tight allocation budget would do it.
	var f [6]string
	n := 0
	for i := 0; i < len(s); {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		start := i
		for i < len(s) && s[i] != ' ' {
			i++
		}
		if start == i {
			continue
		}
		if n >= len(f) {
			return Placement{}, fmt.Errorf("fen: too many fields")
		}
		f[n] = s[start:i]
		n++
	}
	if n < len(f) {
		return Placement{}, fmt.Errorf("fen: too few fields, got %d", n)
	}

	var p Placement
	if err := parsePlacement(f[0], &p); err != nil {
		return Placement{}, err
	}
	if err := parseTurn(f[1], &p); err != nil {
		return Placement{}, err
	}
	if err := parseCastling(f[2], &p); err != nil {
		return Placement{}, err
	}
	if err := parseEnPassant(f[3], &p); err != nil {
		return Placement{}, err
	}
	var err error
	if p.HalfMoveClock, err = strconv.Atoi(f[4]); err != nil {
		return Placement{}, fmt.Errorf("fen: halfmove clock: %w", err)
	}
	if p.FullMoveNumber, err = strconv.Atoi(f[5]); err != nil {
		return Placement{}, fmt.Errorf("fen: fullmove number: %w", err)
	}
	return p, nil
}

func parsePlacement(s string, p *Placement) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for i := range p.Squares {
		p.Squares[i] = Empty
	}
	for r, rank := range ranks {
		f := 0
		for _, ch := range rank {
			if '1' <= ch && ch <= '8' {
				f += int(ch - '0')
			} else if sq, ok := symbolToSquare[ch]; ok {
				if f >= 8 {
					return fmt.Errorf("fen: rank %d too long", 8-r)
				}
				p.Squares[bitboard.RankFile(r, f)] = sq
				f++
				continue
			} else {
				return fmt.Errorf("fen: unexpected rank character %q", ch)
			}
			if f > 8 {
				return fmt.Errorf("fen: rank %d too long", 8-r)
			}
		}
		if f != 8 {
			return fmt.Errorf("fen: rank %d has %d squares, want 8", 8-r, f)
		}
	}
	return nil
}

func parseTurn(s string, p *Placement) error {
	switch s {
	case "w":
		p.Turn = bitboard.White
	case "b":
		p.Turn = bitboard.Black
	default:
		return fmt.Errorf("fen: invalid side to move %q", s)
	}
	return nil
}

func parseCastling(s string, p *Placement) error {
	if s == "-" {
		return nil
	}
	for _, ch := range s {
		switch ch {
		case 'K':
			p.Castling |= whiteKingHome.Bitboard() | whiteKingRook.Bitboard()
		case 'Q':
			p.Castling |= whiteKingHome.Bitboard() | whiteQueenRook.Bitboard()
		case 'k':
			p.Castling |= blackKingHome.Bitboard() | blackKingRook.Bitboard()
		case 'q':
			p.Castling |= blackKingHome.Bitboard() | blackQueenRook.Bitboard()
		default:
			return fmt.Errorf("fen: invalid castling availability %q", s)
		}
	}
	return nil
}

func parseEnPassant(s string, p *Placement) error {
	if s == "-" {
		p.EnPassant = bitboard.NoSquare
		return nil
	}
	sq, err := bitboard.FromString(s)
	if err != nil {
		return fmt.Errorf("fen: en passant square: %w", err)
	}
	p.EnPassant = sq
	return nil
}

// Encode formats a Placement back into a FEN string.
func Encode(p Placement) string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := p.Squares[bitboard.RankFile(r, f)]
			if sq.Type == bitboard.Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			symbols := squareToSymbol[sq.Type]
			sb.WriteByte(symbols[sq.Color])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r != 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Turn == bitboard.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(encodeCastling(p.Castling))

	sb.WriteByte(' ')
	if p.EnPassant == bitboard.NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.EnPassant.String())
	}

	fmt.Fprintf(&sb, " %d %d", p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}

func encodeCastling(c bitboard.Bitboard) string {
	var sb strings.Builder
	if c.Has(whiteKingHome) && c.Has(whiteKingRook) {
		sb.WriteByte('K')
	}
	if c.Has(whiteKingHome) && c.Has(whiteQueenRook) {
		sb.WriteByte('Q')
	}
	if c.Has(blackKingHome) && c.Has(blackKingRook) {
		sb.WriteByte('k')
	}
	if c.Has(blackKingHome) && c.Has(blackQueenRook) {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
