package types

// MaxCaptures is the most pieces that can leave the board in one game:
// everything except the two kings.
const MaxCaptures = 30

// Captures is a fixed-capacity list of captured pieces. It is a plain value so
// it can live inside Position and MoveMeta without breaking == comparison.
type Captures struct {
	n      uint8
	pieces [MaxCaptures]Piece
}

// CapturesOf builds a list from the given pieces, dropping anything past capacity.
func CapturesOf(pieces ...Piece) Captures {
	var c Captures
	for _, p := range pieces {
		c = c.Add(p)
	}
	return c
}

// Add returns a copy of c with p appended. Empty pieces and overflow are ignored.
func (c Captures) Add(p Piece) Captures {
	if p.Empty() || int(c.n) >= MaxCaptures {
		return c
	}
	c.pieces[c.n] = p
	c.n++
	return c
}

func (c Captures) Len() int { return int(c.n) }

// At returns the i-th captured piece, or NoPiece when i is out of range.
func (c Captures) At(i int) Piece {
	if i < 0 || i >= int(c.n) {
		return NoPiece
	}
	return c.pieces[i]
}

// Slice returns the captured pieces as a fresh slice.
func (c Captures) Slice() []Piece {
	out := make([]Piece, c.n)
	copy(out, c.pieces[:c.n])
	return out
}

// CastlingRights is a bitmask of remaining castling options.
type CastlingRights uint8

const (
	CastlingWhiteKingside CastlingRights = 1 << iota
	CastlingWhiteQueenside
	CastlingBlackKingside
	CastlingBlackQueenside

	CastlingNone CastlingRights = 0
	CastlingAll                 = CastlingWhiteKingside | CastlingWhiteQueenside | CastlingBlackKingside | CastlingBlackQueenside
)

func (r CastlingRights) String() string {
	if r == CastlingNone {
		return "-"
	}
	out := ""
	if r&CastlingWhiteKingside != 0 {
		out += "K"
	}
	if r&CastlingWhiteQueenside != 0 {
		out += "Q"
	}
	if r&CastlingBlackKingside != 0 {
		out += "k"
	}
	if r&CastlingBlackQueenside != 0 {
		out += "q"
	}
	return out
}

// Position is the full board state as a value. It holds no pointers, maps or
// slices: assigning a Position copies it and == compares it structurally.
type Position struct {
	Board     [64]Piece
	Turn      Color
	Castling  CastlingRights
	EnPassant Square
	HalfMove  int
	FullMove  int
	Captured  Captures
}

// PieceAt returns the piece on sq, or NoPiece.
func (p Position) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return p.Board[sq]
}

// OnlyKings reports whether nothing but kings remain on the board.
func (p Position) OnlyKings() bool {
	for _, pc := range p.Board {
		if !pc.Empty() && pc.Kind != King {
			return false
		}
	}
	return true
}

// CapturedBy returns the pieces taken by the given color, in capture order.
func (p Position) CapturedBy(c Color) []Piece {
	var out []Piece
	for _, pc := range p.Captured.Slice() {
		if pc.Color != c {
			out = append(out, pc)
		}
	}
	return out
}

// StartingPosition returns the standard initial chess position.
func StartingPosition() Position {
	pos := Position{
		Turn:      White,
		Castling:  CastlingAll,
		EnPassant: NoSquare,
		FullMove:  1,
	}
	back := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		pos.Board[NewSquare(file, 0)] = Piece{White, back[file]}
		pos.Board[NewSquare(file, 1)] = Piece{White, Pawn}
		pos.Board[NewSquare(file, 6)] = Piece{Black, Pawn}
		pos.Board[NewSquare(file, 7)] = Piece{Black, back[file]}
	}
	return pos
}
