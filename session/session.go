// Package session runs one game: it feeds engine moves into the history,
// keeps the clocks, and switches between the live game and history previews.
//
// A Session is not safe for concurrent use. The UI calls it from its own
// event goroutine only, once per frame through Update and on key presses.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chesshud/audio"
	"chesshud/clock"
	"chesshud/engine"
	"chesshud/history"
	"chesshud/replay"
	"chesshud/snapshot"
	"chesshud/types"
)

var (
	ErrPreviewActive = errors.New("return to the live game to move")
	ErrGameOver      = engine.ErrGameOver
	ErrNotYourTurn   = errors.New("not your turn")
)

type Option func(*Session)

// WithChooser sets how the computer picks its moves.
func WithChooser(c engine.MoveChooser) Option {
	return func(s *Session) { s.chooser = c }
}

// WithReplayInterval sets the autoplay step period.
func WithReplayInterval(d time.Duration) Option {
	return func(s *Session) { s.replayInterval = d }
}

type Session struct {
	id     string
	cfg    engine.GameConfig
	eng    engine.RulesEngine
	cues   audio.Player
	logger *zap.Logger

	chooser        engine.MoveChooser
	replayInterval time.Duration

	store    *snapshot.Store
	recorder *history.Recorder
	clocks   *clock.Manager
	replay   *replay.Controller

	result types.Result
	now    time.Time

	engineWaiting bool
	engineDue     time.Time
}

// New connects the engine and starts a game at now.
func New(cfg engine.GameConfig, eng engine.RulesEngine, cues audio.Player, logger *zap.Logger, now time.Time, opts ...Option) (*Session, error) {
	if cues == nil {
		cues = audio.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	s := &Session{
		id:             id,
		cfg:            cfg,
		eng:            eng,
		cues:           cues,
		logger:         logger.With(zap.String("session", id)),
		replayInterval: replay.DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chooser == nil {
		s.chooser = engine.NewRandomChooser(eng, now.UnixNano())
	}

	s.store = snapshot.NewStore()
	s.replay = replay.New(eng, s.store, s.logger, replay.WithInterval(s.replayInterval))
	s.recorder = history.NewRecorder(s.store, s.replay, cues, s.logger)
	eng.OnMove(s.onMove)

	if err := s.start(now); err != nil {
		return nil, err
	}
	s.logger.Info("game started",
		zap.Stringer("mode", cfg.Mode),
		zap.Stringer("timer", cfg.Timer),
		zap.String("white", cfg.Name(types.White)),
		zap.String("black", cfg.Name(types.Black)),
	)
	return s, nil
}

func (s *Session) start(now time.Time) error {
	s.now = now
	if err := s.eng.Connect(); err != nil {
		return fmt.Errorf("connect engine: %w", err)
	}
	limit := s.cfg.Timer.Limit()
	s.clocks = clock.New(limit, limit)
	s.result = types.Result{}
	s.engineWaiting = false
	s.scheduleEngine(now)
	return nil
}

// Reset starts a new game with the same configuration.
func (s *Session) Reset(now time.Time) error {
	if err := s.replay.ReturnToLive(); err != nil {
		s.logger.Warn("leaving preview before reset", zap.Error(err))
	}
	s.recorder.Reset()
	if err := s.start(now); err != nil {
		s.logger.Error("reset failed", zap.Error(err))
		return err
	}
	s.logger.Info("game reset")
	return nil
}

// Close releases the engine.
func (s *Session) Close() {
	s.eng.Close()
}

// onMove handles the engine's move-completed event.
func (s *Session) onMove(meta types.MoveMeta) {
	now := s.now
	entry, err := s.recorder.TryRecord(meta, s.eng.Position(), now)
	switch {
	case errors.Is(err, history.ErrDuplicateMove):
		s.logger.Debug("duplicate move report", zap.Int("ply", meta.Ply))
		return
	case err != nil:
		s.logger.Warn("move not recorded", zap.Int("ply", meta.Ply), zap.Error(err))
		return
	}

	s.clocks.OnTurnChanged(meta.Mover, s.eng.Turn(), now)
	if s.clocks.StartIfNeeded(meta.Mover, now) {
		s.logger.Debug("clocks started")
	}
	s.refreshOutcome(now)
	s.scheduleEngine(now)

	s.logger.Info("move",
		zap.Int("index", entry.Index),
		zap.String("notation", entry.Notation),
		zap.Stringer("mover", meta.Mover),
	)
}

func (s *Session) refreshOutcome(now time.Time) {
	if s.result.Over() {
		return
	}
	res := s.eng.Outcome()
	if !res.Over() && s.eng.Position().OnlyKings() {
		res = types.Drawn(types.OutcomeInsufficientMaterial)
	}
	if res.Over() {
		s.finish(res, now)
	}
}

func (s *Session) finish(res types.Result, now time.Time) {
	s.result = res
	s.engineWaiting = false
	s.clocks.Pause(now)
	s.logger.Info("game over",
		zap.Stringer("outcome", res.Kind),
		zap.String("message", s.Message()),
	)
}

func (s *Session) scheduleEngine(now time.Time) {
	if s.result.Over() || !s.cfg.EngineTurn(s.eng.Turn()) {
		s.engineWaiting = false
		return
	}
	s.engineWaiting = true
	s.engineDue = now.Add(s.cfg.EngineDelay)
}

// Update advances autoplay, checks the clocks and lets the computer move.
// Problems are logged; a bad frame never stops the game.
func (s *Session) Update(now time.Time) {
	s.now = now

	if s.replay.Mode() == replay.Playing {
		stepped, err := s.replay.Tick(now)
		if err != nil {
			s.logger.Warn("autoplay step failed", zap.Error(err))
		}
		if s.replay.Live() {
			s.resumeClocks(now)
		} else if stepped {
			s.stepCue()
		}
	}

	if s.result.Over() {
		return
	}
	if loser, out := s.clocks.CheckTimeout(now); out {
		s.finish(types.Won(types.OutcomeTimeout, loser.Opposite()), now)
		return
	}

	if s.engineWaiting && s.replay.Live() && !now.Before(s.engineDue) {
		s.engineWaiting = false
		s.playEngineMove()
	}
}

func (s *Session) playEngineMove() {
	mv, err := s.chooser.ChooseMove()
	if err != nil {
		s.logger.Warn("computer found no move", zap.Error(err))
		return
	}
	if err := s.eng.PlayMove(mv.From, mv.To, mv.Promotion); err != nil {
		s.logger.Error("computer move rejected",
			zap.Stringer("from", mv.From),
			zap.Stringer("to", mv.To),
			zap.Error(err),
		)
	}
}

// Play submits a move for the side to move.
func (s *Session) Play(from, to types.Square, promo types.PieceKind, now time.Time) error {
	s.now = now
	if s.replay.PreviewActive() {
		return ErrPreviewActive
	}
	if s.result.Over() {
		return ErrGameOver
	}
	if s.cfg.EngineTurn(s.eng.Turn()) {
		return ErrNotYourTurn
	}
	return s.eng.PlayMove(from, to, promo)
}

// Resign ends the game. The side to move loses; against the computer the
// person always does.
func (s *Session) Resign(now time.Time) error {
	s.now = now
	if s.result.Over() {
		return ErrGameOver
	}
	if s.replay.PreviewActive() {
		return ErrPreviewActive
	}
	loser := s.eng.Turn()
	if s.cfg.Mode == engine.ModeEngine {
		loser = s.cfg.EngineColor.Opposite()
	}
	s.eng.Resign(loser)
	s.finish(types.Won(types.OutcomeResignation, loser.Opposite()), now)
	return nil
}

// Preview shows the position after move idx and pauses the clocks.
func (s *Session) Preview(idx int, now time.Time) error {
	wasLive := s.replay.Live()
	if err := s.replay.EnterPreview(idx, now); err != nil {
		return err
	}
	if wasLive {
		s.clocks.Pause(now)
	}
	s.stepCue()
	return nil
}

// Step moves the preview cursor by delta; from the live game it starts at
// the latest move.
func (s *Session) Step(delta int, now time.Time) error {
	wasLive := s.replay.Live()
	before, _ := s.replay.Cursor()
	if err := s.replay.Step(delta, now); err != nil {
		return err
	}
	if wasLive {
		s.clocks.Pause(now)
	}
	if after, _ := s.replay.Cursor(); wasLive || after != before {
		s.stepCue()
	}
	return nil
}

// TogglePlay starts or pauses autoplay through the history.
func (s *Session) TogglePlay(now time.Time) error {
	wasLive := s.replay.Live()
	wasPlaying := s.replay.Mode() == replay.Playing
	if err := s.replay.TogglePlay(now); err != nil {
		return err
	}
	if wasLive {
		s.clocks.Pause(now)
	}
	if !wasPlaying {
		s.stepCue()
	}
	return nil
}

// ReturnToLive restores the live game and restarts the clocks.
func (s *Session) ReturnToLive(now time.Time) error {
	if s.replay.Live() {
		return nil
	}
	if err := s.replay.ReturnToLive(); err != nil {
		return err
	}
	s.resumeClocks(now)
	return nil
}

func (s *Session) resumeClocks(now time.Time) {
	if s.result.Over() {
		return
	}
	s.clocks.Resume(now)
	if s.engineWaiting && now.After(s.engineDue) {
		s.engineDue = now.Add(s.cfg.EngineDelay)
	}
}

// stepCue plays a capture cue if the previewed move took a piece.
func (s *Session) stepCue() {
	idx, ok := s.replay.Cursor()
	if !ok {
		return
	}
	cur, err := s.store.Get(idx)
	if err != nil {
		return
	}
	prev := 0
	if idx > 0 {
		if p, err := s.store.Get(idx - 1); err == nil {
			prev = p.Position.Captured.Len()
		}
	}
	cue := audio.CueMove
	if cur.Position.Captured.Len() > prev {
		cue = audio.CueCapture
	}
	if err := s.cues.Play(cue); err != nil {
		s.logger.Warn("audio cue failed", zap.Stringer("cue", cue), zap.Error(err))
	}
}

func (s *Session) ID() string                { return s.id }
func (s *Session) Config() engine.GameConfig { return s.cfg }
func (s *Session) Result() types.Result      { return s.result }
func (s *Session) Turn() types.Color         { return s.eng.Turn() }
func (s *Session) Mode() replay.Mode         { return s.replay.Mode() }
func (s *Session) Cursor() (int, bool)       { return s.replay.Cursor() }
func (s *Session) PreviewActive() bool       { return s.replay.PreviewActive() }

// Position is what the board should draw: the live game or the preview.
func (s *Session) Position() types.Position { return s.eng.Position() }

// History returns a copy of the recorded moves.
func (s *Session) History() []history.Entry { return s.recorder.Entries() }

// ClocksStarted reports whether the countdown has begun.
func (s *Session) ClocksStarted() bool { return s.clocks.Started() }

// Display is the clock text value for c at now.
func (s *Session) Display(c types.Color, now time.Time) (time.Duration, bool) {
	return s.clocks.Display(c, now)
}

// Names returns the white and black display names.
func (s *Session) Names() (string, string) {
	return s.cfg.Name(types.White), s.cfg.Name(types.Black)
}

// Message is the end-of-game line, empty while the game goes on.
func (s *Session) Message() string {
	white, black := s.Names()
	return s.result.Message(white, black)
}

// Highlight returns the squares of the previewed move, or of the last move
// while live.
func (s *Session) Highlight() (from, to types.Square, ok bool) {
	entries := s.recorder.Entries()
	if len(entries) == 0 {
		return types.NoSquare, types.NoSquare, false
	}
	idx := len(entries) - 1
	if cur, previewing := s.replay.Cursor(); previewing {
		idx = cur
	}
	m := entries[idx].Meta
	return m.From, m.To, true
}
