// Package types contains shared data structures for chesshud.
package types

import "fmt"

// Color is a side of the board. White always moves first.
type Color uint8

const (
	White Color = iota
	Black
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Title returns the capitalised color name for display.
func (c Color) Title() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceKind identifies a piece regardless of its color.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Letter returns the notation letter of the piece. Pawns have none.
func (k PieceKind) Letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	default:
		return ""
	}
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	case NoKind:
		return "none"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Piece is a colored piece. The zero value means an empty square.
type Piece struct {
	Color Color
	Kind  PieceKind
}

// NoPiece is the empty square marker.
var NoPiece = Piece{}

// Empty reports whether p marks an empty square.
func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

// Symbol returns the unicode chess symbol for the piece, or a space.
func (p Piece) Symbol() rune {
	if p.Empty() {
		return ' '
	}
	white := [...]rune{' ', '♙', '♘', '♗', '♖', '♕', '♔'}
	black := [...]rune{' ', '♟', '♞', '♝', '♜', '♛', '♚'}
	if int(p.Kind) >= len(white) {
		return '?'
	}
	if p.Color == White {
		return white[p.Kind]
	}
	return black[p.Kind]
}

func (p Piece) String() string {
	if p.Empty() {
		return "none"
	}
	return p.Color.String() + "_" + p.Kind.String()
}

// Square indexes the board from a1 (0) to h8 (63).
type Square int8

// NoSquare marks an absent square, e.g. no en passant target.
const NoSquare Square = -1

// NewSquare builds a square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

func (s Square) Valid() bool { return s >= 0 && s < 64 }
func (s Square) File() int   { return int(s) & 7 }
func (s Square) Rank() int   { return int(s) >> 3 }

// FileLabel returns the file letter, "a" through "h".
func (s Square) FileLabel() string {
	if !s.Valid() {
		return "-"
	}
	return string(rune('a' + s.File()))
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare converts "e4" style coordinates to a Square.
func ParseSquare(coord string) (Square, bool) {
	if len(coord) != 2 {
		return NoSquare, false
	}
	file, rank := coord[0], coord[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, false
	}
	return NewSquare(int(file-'a'), int(rank-'1')), true
}
