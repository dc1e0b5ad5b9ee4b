package history

import "chesshud/types"

// Notation renders a move as piece letter, capture marker and destination,
// e.g. "Nf3", "Bxe5", "e4". Pawn captures use the source file: "exd5".
func Notation(meta types.MoveMeta) string {
	prefix := meta.Piece.Kind.Letter()
	if meta.Piece.Kind == types.Pawn && meta.IsCapture() {
		prefix = meta.From.FileLabel()
	}
	if meta.IsCapture() {
		prefix += "x"
	}
	return prefix + meta.To.String()
}

// Tag labels special moves; ordinary moves have no tag.
func Tag(meta types.MoveMeta) string {
	switch meta.Special {
	case types.CastleKingside:
		return "O-O"
	case types.CastleQueenside:
		return "O-O-O"
	case types.EnPassant:
		return "e.p."
	case types.Promotion:
		return "=" + meta.Promotion.Letter()
	default:
		return ""
	}
}
