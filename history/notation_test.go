package history

import (
	"testing"

	"chesshud/types"
)

func TestNotation(t *testing.T) {
	blackPawn := types.CapturesOf(types.Piece{Color: types.Black, Kind: types.Pawn})
	tests := []struct {
		name string
		meta types.MoveMeta
		want string
		tag  string
	}{
		{"pawn push", types.MoveMeta{Piece: types.Piece{Kind: types.Pawn}, From: sq("e2"), To: sq("e4")}, "e4", ""},
		{"knight", types.MoveMeta{Piece: types.Piece{Kind: types.Knight}, From: sq("g1"), To: sq("f3")}, "Nf3", ""},
		{"bishop capture", types.MoveMeta{Piece: types.Piece{Kind: types.Bishop}, From: sq("c4"), To: sq("f7"), Captured: blackPawn}, "Bxf7", ""},
		{"pawn capture", types.MoveMeta{Piece: types.Piece{Kind: types.Pawn}, From: sq("e4"), To: sq("d5"), Captured: blackPawn}, "exd5", ""},
		{"en passant", types.MoveMeta{Piece: types.Piece{Kind: types.Pawn}, From: sq("e5"), To: sq("d6"), Captured: blackPawn, Special: types.EnPassant}, "exd6", "e.p."},
		{"short castle", types.MoveMeta{Piece: types.Piece{Kind: types.King}, From: sq("e1"), To: sq("g1"), Special: types.CastleKingside}, "Kg1", "O-O"},
		{"long castle", types.MoveMeta{Piece: types.Piece{Kind: types.King}, From: sq("e8"), To: sq("c8"), Special: types.CastleQueenside}, "Kc8", "O-O-O"},
		{"promotion", types.MoveMeta{Piece: types.Piece{Kind: types.Pawn}, From: sq("a7"), To: sq("a8"), Special: types.Promotion, Promotion: types.Queen}, "a8", "=Q"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Notation(tt.meta); got != tt.want {
				t.Errorf("Notation = %q, want %q", got, tt.want)
			}
			if got := Tag(tt.meta); got != tt.tag {
				t.Errorf("Tag = %q, want %q", got, tt.tag)
			}
		})
	}
}
