package types

// SpecialMove tags moves that do more than relocate one piece.
type SpecialMove uint8

const (
	SpecialNone SpecialMove = iota
	CastleKingside
	CastleQueenside
	EnPassant
	Promotion
)

func (s SpecialMove) String() string {
	switch s {
	case CastleKingside:
		return "castle-kingside"
	case CastleQueenside:
		return "castle-queenside"
	case EnPassant:
		return "en-passant"
	case Promotion:
		return "promotion"
	default:
		return "none"
	}
}

// MoveMeta describes a completed move as reported by the rules engine.
// It is comparable; two reports of the same move are equal values.
type MoveMeta struct {
	Ply       int // 1-based half-move number
	Mover     Color
	Piece     Piece
	From      Square
	To        Square
	Captured  Captures
	Special   SpecialMove
	Promotion PieceKind
}

// IsCapture reports whether the move removed at least one piece.
func (m MoveMeta) IsCapture() bool {
	return m.Captured.Len() > 0
}

// MoveRequest is a move asked of the rules engine by a player or the opponent.
type MoveRequest struct {
	From      Square
	To        Square
	Promotion PieceKind
}
