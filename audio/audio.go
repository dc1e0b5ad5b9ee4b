// Package audio plays short cues for game events.
package audio

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// Cue is a sound the game asks for.
type Cue int

const (
	CueMove Cue = iota
	CueCapture
)

func (c Cue) String() string {
	if c == CueCapture {
		return "capture"
	}
	return "move"
}

// Player plays cues. Implementations must not block the caller for long;
// errors are reported but callers treat them as soft failures.
type Player interface {
	Play(Cue) error
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(Cue) error

func (f PlayerFunc) Play(c Cue) error { return f(c) }

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue) error { return nil }

var ErrNoScreen = errors.New("no screen to ring")

// Bell rings the terminal bell. Captures ring twice.
type Bell struct {
	screen tcell.Screen
}

func NewBell(screen tcell.Screen) *Bell {
	return &Bell{screen: screen}
}

func (b *Bell) Play(c Cue) error {
	if b == nil || b.screen == nil {
		return ErrNoScreen
	}
	if err := b.screen.Beep(); err != nil {
		return err
	}
	if c == CueCapture {
		return b.screen.Beep()
	}
	return nil
}
