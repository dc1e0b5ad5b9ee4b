// Package clock keeps the two countdown timers of a game.
//
// The manager never reads the wall clock itself; every operation takes the
// sampled frame time, so callers decide what "now" means.
package clock

import (
	"fmt"
	"time"

	"chesshud/types"
)

// Limit is the time budget of one color. Untimed colors have Timed == false.
type Limit struct {
	Duration time.Duration
	Timed    bool
}

// Untimed is a color with no countdown.
var Untimed = Limit{}

// Limited returns a countdown of d, clamped at zero.
func Limited(d time.Duration) Limit {
	if d < 0 {
		d = 0
	}
	return Limit{Duration: d, Timed: true}
}

// Manager owns the per-color remaining time and the turn baseline.
type Manager struct {
	remaining   [2]Limit
	active      types.Color
	started     bool
	paused      bool
	baseline    time.Time
	hasBaseline bool
}

// New returns a stopped clock with White to move.
func New(white, black Limit) *Manager {
	return &Manager{
		remaining: [2]Limit{types.White: white, types.Black: black},
		active:    types.White,
	}
}

func (m *Manager) anyTimed() bool {
	return m.remaining[types.White].Timed || m.remaining[types.Black].Timed
}

// StartIfNeeded starts the clocks the first time White completes a move,
// provided at least one color is timed. It reports whether the clocks started.
func (m *Manager) StartIfNeeded(mover types.Color, now time.Time) bool {
	if m.started || mover != types.White || !m.anyTimed() {
		return false
	}
	m.started = true
	if !m.paused {
		m.baseline = now
		m.hasBaseline = true
	}
	return true
}

// CommitElapsed charges the time since the baseline to c and moves the
// baseline to now. Calling it again at the same instant charges nothing.
func (m *Manager) CommitElapsed(c types.Color, now time.Time) {
	if !m.started || !m.hasBaseline || !m.remaining[c].Timed {
		return
	}
	elapsed := now.Sub(m.baseline)
	if elapsed <= 0 {
		return
	}
	left := m.remaining[c].Duration - elapsed
	if left < 0 {
		left = 0
	}
	m.remaining[c].Duration = left
	m.baseline = now
}

// CheckTimeout returns the active color if its time has run out.
func (m *Manager) CheckTimeout(now time.Time) (types.Color, bool) {
	if !m.started || m.paused || !m.hasBaseline || !m.remaining[m.active].Timed {
		return m.active, false
	}
	left := m.remaining[m.active].Duration - now.Sub(m.baseline)
	if left <= 0 {
		return m.active, true
	}
	return m.active, false
}

// OnTurnChanged commits the old color's time and hands the countdown to next.
// Before the clocks start the baseline stays unset.
func (m *Manager) OnTurnChanged(old, next types.Color, now time.Time) {
	m.CommitElapsed(old, now)
	m.active = next
	if m.started && !m.paused {
		m.baseline = now
		m.hasBaseline = true
	}
}

// Pause commits the active color's time and stops the countdown.
func (m *Manager) Pause(now time.Time) {
	if m.paused {
		return
	}
	m.CommitElapsed(m.active, now)
	m.paused = true
	m.hasBaseline = false
}

// Resume restarts the countdown from now. Time spent paused is never charged.
func (m *Manager) Resume(now time.Time) {
	if !m.paused {
		return
	}
	m.paused = false
	if m.started {
		m.baseline = now
		m.hasBaseline = true
	}
}

// Remaining returns the committed time of c; ok is false for untimed colors.
func (m *Manager) Remaining(c types.Color) (time.Duration, bool) {
	l := m.remaining[c]
	return l.Duration, l.Timed
}

// Display returns what the HUD should show for c at now: the committed time
// minus the running turn of the active color, never below zero.
func (m *Manager) Display(c types.Color, now time.Time) (time.Duration, bool) {
	l := m.remaining[c]
	if !l.Timed {
		return 0, false
	}
	left := l.Duration
	if c == m.active && m.started && !m.paused && m.hasBaseline {
		if elapsed := now.Sub(m.baseline); elapsed > 0 {
			left -= elapsed
		}
	}
	if left < 0 {
		left = 0
	}
	return left, true
}

func (m *Manager) Started() bool       { return m.started }
func (m *Manager) Paused() bool        { return m.paused }
func (m *Manager) Active() types.Color { return m.active }

// Format renders a duration as m:ss, or m:ss.t under ten seconds.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < 10*time.Second {
		tenths := int(d / (100 * time.Millisecond))
		return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
