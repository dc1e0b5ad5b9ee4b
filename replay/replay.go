// Package replay lets the player look back through the history without
// touching the live game.
//
// The controller only reads snapshots and swaps the board's working
// position. It saves the live position before the first swap and puts it
// back on ReturnToLive.
package replay

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"chesshud/snapshot"
	"chesshud/types"
)

// DefaultInterval is the autoplay step period.
const DefaultInterval = 700 * time.Millisecond

var (
	ErrOutOfRange   = errors.New("preview index out of range")
	ErrEmptyHistory = errors.New("no moves to preview")
)

// Mode is the replay state.
type Mode int

const (
	Live Mode = iota
	Previewing
	Playing
)

func (m Mode) String() string {
	switch m {
	case Live:
		return "LIVE"
	case Previewing:
		return "PREVIEW"
	case Playing:
		return "PLAYING"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Board is the working position the controller swaps.
type Board interface {
	Position() types.Position
	ApplyPosition(types.Position) error
}

// Source is read-only access to recorded snapshots.
type Source interface {
	Len() int
	Get(index int) (snapshot.Snapshot, error)
}

type Option func(*Controller)

// WithInterval overrides the autoplay step period.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

type Controller struct {
	board  Board
	snaps  Source
	logger *zap.Logger

	mode     Mode
	cursor   int
	saved    types.Position
	hasSaved bool
	lastTick time.Time
	interval time.Duration
}

func New(board Board, snaps Source, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		board:    board,
		snaps:    snaps,
		logger:   logger,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Mode() Mode { return c.mode }

// Cursor returns the previewed index; ok is false while live.
func (c *Controller) Cursor() (int, bool) {
	if c.mode == Live {
		return 0, false
	}
	return c.cursor, true
}

// Live reports whether the board shows the live game.
func (c *Controller) Live() bool { return c.mode == Live }

// PreviewActive reports whether move input must be blocked.
func (c *Controller) PreviewActive() bool { return c.mode != Live }

func (c *Controller) clamp(idx int) int {
	if idx < 0 {
		return 0
	}
	if last := c.snaps.Len() - 1; idx > last {
		return last
	}
	return idx
}

// show applies snapshot idx to the board. On failure the board is put back
// to what it showed before and the controller state is left alone.
func (c *Controller) show(idx int) error {
	snap, err := c.snaps.Get(idx)
	if err != nil {
		return err
	}
	before := c.board.Position()
	if err := c.board.ApplyPosition(snap.Position); err != nil {
		if rerr := c.board.ApplyPosition(before); rerr != nil {
			c.logger.Error("restoring board after failed preview", zap.Error(rerr))
		}
		return fmt.Errorf("apply snapshot %d: %w", idx, err)
	}
	c.cursor = idx
	return nil
}

// saveLive remembers the live position before the first swap.
func (c *Controller) saveLive() {
	if c.mode == Live {
		c.saved = c.board.Position()
		c.hasSaved = true
	}
}

// dropSaved forgets a live save that never led to a preview.
func (c *Controller) dropSaved(wasLive bool) {
	if wasLive {
		c.saved = types.Position{}
		c.hasSaved = false
	}
}

// EnterPreview shows the position after move idx.
func (c *Controller) EnterPreview(idx int, now time.Time) error {
	if c.snaps.Len() == 0 {
		return ErrEmptyHistory
	}
	if idx < 0 || idx >= c.snaps.Len() {
		return fmt.Errorf("preview %d of %d: %w", idx, c.snaps.Len(), ErrOutOfRange)
	}
	wasLive := c.mode == Live
	c.saveLive()
	if err := c.show(idx); err != nil {
		c.dropSaved(wasLive)
		c.logger.Warn("enter preview failed", zap.Int("index", idx), zap.Error(err))
		return err
	}
	c.mode = Previewing
	c.logger.Debug("preview", zap.Int("index", idx))
	return nil
}

// Step moves the cursor by delta, clamped to the history. From live it
// starts at the latest move.
func (c *Controller) Step(delta int, now time.Time) error {
	if c.snaps.Len() == 0 {
		return ErrEmptyHistory
	}
	if c.mode == Live {
		return c.EnterPreview(c.clamp(c.snaps.Len()-1+delta), now)
	}
	idx := c.clamp(c.cursor + delta)
	if idx == c.cursor {
		return nil
	}
	if err := c.show(idx); err != nil {
		c.logger.Warn("step failed", zap.Int("index", idx), zap.Error(err))
		return err
	}
	return nil
}

// TogglePlay starts autoplay from the first move, or pauses it.
func (c *Controller) TogglePlay(now time.Time) error {
	if c.mode == Playing {
		c.mode = Previewing
		return nil
	}
	if c.snaps.Len() == 0 {
		return ErrEmptyHistory
	}
	wasLive := c.mode == Live
	c.saveLive()
	if err := c.show(0); err != nil {
		c.dropSaved(wasLive)
		c.logger.Warn("autoplay start failed", zap.Error(err))
		return err
	}
	c.mode = Playing
	c.lastTick = now
	return nil
}

// ReturnToLive restores the saved live position. It is a no-op when live.
func (c *Controller) ReturnToLive() error {
	if c.mode == Live {
		return nil
	}
	if c.hasSaved {
		if err := c.board.ApplyPosition(c.saved); err != nil {
			c.logger.Error("restore live position failed", zap.Error(err))
			return fmt.Errorf("restore live position: %w", err)
		}
	}
	c.mode = Live
	c.cursor = 0
	c.saved = types.Position{}
	c.hasSaved = false
	c.lastTick = time.Time{}
	return nil
}

// Tick advances autoplay once the interval has passed and returns to live
// after the last move. It reports whether the board changed.
func (c *Controller) Tick(now time.Time) (bool, error) {
	if c.mode != Playing || now.Sub(c.lastTick) < c.interval {
		return false, nil
	}
	c.lastTick = now
	if err := c.Step(1, now); err != nil {
		return false, err
	}
	if c.cursor >= c.snaps.Len()-1 {
		if err := c.ReturnToLive(); err != nil {
			return true, err
		}
	}
	return true, nil
}
