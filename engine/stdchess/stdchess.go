// Package stdchess implements engine.RulesEngine for standard chess on top of
// github.com/notnil/chess.
package stdchess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
	"go.uber.org/zap"

	"chesshud/engine"
	"chesshud/types"
)

// ErrDetached is returned by PlayMove while the board shows a position other
// than the live game.
var ErrDetached = errors.New("board is showing a past position")

var ErrInvalidPosition = errors.New("invalid position")

// Engine plays standard chess. The working position is what the board shows;
// it differs from the live game only while a past move is being previewed.
type Engine struct {
	fen    string
	game   *chess.Game
	logger *zap.Logger

	captured types.Captures
	live     types.Position
	working  types.Position

	moveCallback func(types.MoveMeta)
}

type Option func(*Engine)

// WithFEN starts games from fen instead of the standard position.
func WithFEN(fen string) Option {
	return func(e *Engine) { e.fen = fen }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine. Call Connect before use.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Connect starts a fresh game.
func (e *Engine) Connect() error {
	var gameOpts []func(*chess.Game)
	if e.fen != "" {
		fen, err := chess.FEN(e.fen)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPosition, err)
		}
		gameOpts = append(gameOpts, fen)
	}
	e.game = chess.NewGame(gameOpts...)
	e.captured = types.Captures{}
	e.live = convertPosition(e.game.Position(), e.captured)
	e.working = e.live
	return nil
}

func (e *Engine) Turn() types.Color {
	return fromColor(e.game.Position().Turn())
}

// Outcome maps the library's outcome and method onto types.Result.
func (e *Engine) Outcome() types.Result {
	if e.game.Outcome() == chess.NoOutcome {
		return types.Result{}
	}
	winner := types.White
	if e.game.Outcome() == chess.BlackWon {
		winner = types.Black
	}
	switch e.game.Method() {
	case chess.Checkmate:
		return types.Won(types.OutcomeCheckmate, winner)
	case chess.Resignation:
		return types.Won(types.OutcomeResignation, winner)
	case chess.Stalemate:
		return types.Drawn(types.OutcomeStalemate)
	case chess.ThreefoldRepetition, chess.FivefoldRepetition:
		return types.Drawn(types.OutcomeThreefold)
	case chess.FiftyMoveRule, chess.SeventyFiveMoveRule:
		return types.Drawn(types.OutcomeMoveLimit)
	case chess.InsufficientMaterial:
		return types.Drawn(types.OutcomeInsufficientMaterial)
	default:
		e.logger.Warn("unmapped game end", zap.Int("method", int(e.game.Method())))
		return types.Result{}
	}
}

func (e *Engine) Position() types.Position { return e.working }

// Live reports whether the working position is the live game.
func (e *Engine) Live() bool { return e.working == e.live }

// ApplyPosition swaps the working position. The position must describe a
// valid board; the live game is not touched.
func (e *Engine) ApplyPosition(pos types.Position) error {
	if _, err := chess.FEN(FEN(pos)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	e.working = pos
	return nil
}

// PlayMove plays from-to for the side to move. A pawn reaching the last rank
// without a promotion piece becomes a queen.
func (e *Engine) PlayMove(from, to types.Square, promo types.PieceKind) error {
	if e.game.Outcome() != chess.NoOutcome {
		return engine.ErrGameOver
	}
	if !e.Live() {
		return ErrDetached
	}
	move := e.findMove(from, to, promo)
	if move == nil {
		return fmt.Errorf("%s%s: %w", from, to, engine.ErrIllegalMove)
	}

	before := e.game.Position().Board()
	meta := types.MoveMeta{
		Ply:   len(e.game.Moves()) + 1,
		Mover: fromColor(e.game.Position().Turn()),
		Piece: fromPiece(before.Piece(move.S1())),
		From:  from,
		To:    to,
	}
	switch {
	case move.HasTag(chess.KingSideCastle):
		meta.Special = types.CastleKingside
	case move.HasTag(chess.QueenSideCastle):
		meta.Special = types.CastleQueenside
	case move.HasTag(chess.EnPassant):
		meta.Special = types.EnPassant
		meta.Captured = meta.Captured.Add(fromPiece(before.Piece(chess.Square(types.NewSquare(to.File(), from.Rank())))))
	case move.Promo() != chess.NoPieceType:
		meta.Special = types.Promotion
		meta.Promotion = fromKind(move.Promo())
	}
	if move.HasTag(chess.Capture) && meta.Special != types.EnPassant {
		meta.Captured = meta.Captured.Add(fromPiece(before.Piece(move.S2())))
	}

	if err := e.game.Move(move); err != nil {
		return fmt.Errorf("%s%s: %w", from, to, err)
	}
	e.claimRepetition()

	for i := 0; i < meta.Captured.Len(); i++ {
		e.captured = e.captured.Add(meta.Captured.At(i))
	}
	e.live = convertPosition(e.game.Position(), e.captured)
	e.working = e.live

	if e.moveCallback != nil {
		e.moveCallback(meta)
	}
	return nil
}

// claimRepetition ends the game on threefold repetition without waiting for
// a player to claim it.
func (e *Engine) claimRepetition() {
	if e.game.Outcome() != chess.NoOutcome {
		return
	}
	for _, m := range e.game.EligibleDraws() {
		if m == chess.ThreefoldRepetition {
			if err := e.game.Draw(m); err != nil {
				e.logger.Warn("threefold claim refused", zap.Error(err))
			}
			return
		}
	}
}

func (e *Engine) findMove(from, to types.Square, promo types.PieceKind) *chess.Move {
	if promo == types.NoKind {
		promo = types.Queen
	}
	for _, m := range e.game.ValidMoves() {
		if types.Square(m.S1()) != from || types.Square(m.S2()) != to {
			continue
		}
		if m.Promo() != chess.NoPieceType && fromKind(m.Promo()) != promo {
			continue
		}
		return m
	}
	return nil
}

func (e *Engine) LegalMoves() []types.MoveRequest {
	if e.game.Outcome() != chess.NoOutcome {
		return nil
	}
	valid := e.game.ValidMoves()
	out := make([]types.MoveRequest, 0, len(valid))
	for _, m := range valid {
		out = append(out, types.MoveRequest{
			From:      types.Square(m.S1()),
			To:        types.Square(m.S2()),
			Promotion: fromKind(m.Promo()),
		})
	}
	return out
}

func (e *Engine) Resign(loser types.Color) {
	e.game.Resign(toColor(loser))
}

func (e *Engine) OnMove(cb func(types.MoveMeta)) {
	e.moveCallback = cb
}

func (e *Engine) Close() {
	e.moveCallback = nil
}

// FENString returns the live game in FEN.
func (e *Engine) FENString() string {
	return e.game.Position().String()
}

func convertPosition(pos *chess.Position, captured types.Captures) types.Position {
	out := types.Position{
		Turn:      fromColor(pos.Turn()),
		EnPassant: types.NoSquare,
		FullMove:  1,
		Captured:  captured,
	}
	board := pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		out.Board[sq] = fromPiece(board.Piece(sq))
	}
	rights := pos.CastleRights()
	if rights.CanCastle(chess.White, chess.KingSide) {
		out.Castling |= types.CastlingWhiteKingside
	}
	if rights.CanCastle(chess.White, chess.QueenSide) {
		out.Castling |= types.CastlingWhiteQueenside
	}
	if rights.CanCastle(chess.Black, chess.KingSide) {
		out.Castling |= types.CastlingBlackKingside
	}
	if rights.CanCastle(chess.Black, chess.QueenSide) {
		out.Castling |= types.CastlingBlackQueenside
	}
	if ep := pos.EnPassantSquare(); ep != chess.NoSquare {
		out.EnPassant = types.Square(ep)
	}
	// the move counters are only exposed through the FEN
	if fields := strings.Fields(pos.String()); len(fields) == 6 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			out.HalfMove = n
		}
		if n, err := strconv.Atoi(fields[5]); err == nil {
			out.FullMove = n
		}
	}
	return out
}

// FEN renders a position in Forsyth-Edwards notation.
func FEN(pos types.Position) string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := pos.Board[types.NewSquare(file, rank)]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteByte(fenLetter(p))
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}
	turn := "w"
	if pos.Turn == types.Black {
		turn = "b"
	}
	full := pos.FullMove
	if full < 1 {
		full = 1
	}
	return fmt.Sprintf("%s %s %s %s %d %d", b.String(), turn, pos.Castling, pos.EnPassant, pos.HalfMove, full)
}

func fenLetter(p types.Piece) byte {
	var c byte
	switch p.Kind {
	case types.Pawn:
		c = 'p'
	case types.Knight:
		c = 'n'
	case types.Bishop:
		c = 'b'
	case types.Rook:
		c = 'r'
	case types.Queen:
		c = 'q'
	case types.King:
		c = 'k'
	default:
		return '?'
	}
	if p.Color == types.White {
		c -= 'a' - 'A'
	}
	return c
}

func fromColor(c chess.Color) types.Color {
	if c == chess.Black {
		return types.Black
	}
	return types.White
}

func toColor(c types.Color) chess.Color {
	if c == types.Black {
		return chess.Black
	}
	return chess.White
}

func fromKind(k chess.PieceType) types.PieceKind {
	switch k {
	case chess.King:
		return types.King
	case chess.Queen:
		return types.Queen
	case chess.Rook:
		return types.Rook
	case chess.Bishop:
		return types.Bishop
	case chess.Knight:
		return types.Knight
	case chess.Pawn:
		return types.Pawn
	default:
		return types.NoKind
	}
}

func fromPiece(p chess.Piece) types.Piece {
	if p == chess.NoPiece {
		return types.NoPiece
	}
	return types.Piece{Color: fromColor(p.Color()), Kind: fromKind(p.Type())}
}
