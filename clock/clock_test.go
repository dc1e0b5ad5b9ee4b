package clock

import (
	"math"
	"testing"
	"time"

	"chesshud/types"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(secs float64) time.Time {
	return t0.Add(time.Duration(math.Round(secs*1000)) * time.Millisecond)
}

func TestClockAccountingAfterFirstMoves(t *testing.T) {
	m := New(Limited(300*time.Second), Limited(300*time.Second))

	// white completes move 1 at t=0
	m.OnTurnChanged(types.White, types.Black, at(0))
	if !m.StartIfNeeded(types.White, at(0)) {
		t.Fatal("clock should start after white's first move")
	}
	if m.Active() != types.Black {
		t.Fatalf("black should be active, got %v", m.Active())
	}

	// black moves at t=12.4
	m.OnTurnChanged(types.Black, types.White, at(12.4))
	m.StartIfNeeded(types.Black, at(12.4))

	got, ok := m.Remaining(types.Black)
	if !ok || got != 287600*time.Millisecond {
		t.Fatalf("black remaining = %v, want 287.6s", got)
	}
	white, _ := m.Remaining(types.White)
	if white != 300*time.Second {
		t.Fatalf("white remaining = %v, want 300s", white)
	}
	// white's turn is measured from 12.4
	if d, _ := m.Display(types.White, at(14.4)); d != 298*time.Second {
		t.Fatalf("white display = %v, want 298s", d)
	}
}

func TestCheckTimeout(t *testing.T) {
	m := New(Limited(time.Minute), Limited(300*time.Millisecond))
	m.OnTurnChanged(types.White, types.Black, at(0))
	m.StartIfNeeded(types.White, at(0))

	if _, out := m.CheckTimeout(at(0.2)); out {
		t.Fatal("black should still have time at 0.2s")
	}
	loser, out := m.CheckTimeout(at(0.5))
	if !out || loser != types.Black {
		t.Fatalf("CheckTimeout = %v, %v; want black, true", loser, out)
	}
	if loser.Opposite() != types.White {
		t.Fatal("winner should be white")
	}
}

func TestClockNotStartedBeforeWhiteMoves(t *testing.T) {
	m := New(Limited(time.Minute), Limited(time.Minute))
	if m.StartIfNeeded(types.Black, at(0)) {
		t.Fatal("black's move should not start the clock")
	}
	m.CommitElapsed(types.White, at(30))
	if got, _ := m.Remaining(types.White); got != time.Minute {
		t.Fatalf("commit before start should be a no-op, got %v", got)
	}
	if _, out := m.CheckTimeout(at(120)); out {
		t.Fatal("unstarted clock should never time out")
	}
	if m.Started() {
		t.Fatal("clock reports started")
	}
	if !m.StartIfNeeded(types.White, at(121)) || !m.Started() {
		t.Fatal("white's move should start the clock")
	}
}

func TestUntimedNeverStarts(t *testing.T) {
	m := New(Untimed, Untimed)
	m.OnTurnChanged(types.White, types.Black, at(0))
	if m.StartIfNeeded(types.White, at(0)) {
		t.Fatal("untimed game should not start clocks")
	}
	if _, ok := m.Remaining(types.White); ok {
		t.Fatal("untimed color should report no remaining time")
	}
	if _, ok := m.Display(types.Black, at(5)); ok {
		t.Fatal("untimed color should report no display time")
	}
}

func TestCommitElapsedClampsAndIsIncremental(t *testing.T) {
	m := New(Limited(time.Second), Limited(time.Second))
	m.OnTurnChanged(types.White, types.Black, at(0))
	m.StartIfNeeded(types.White, at(0))

	m.CommitElapsed(types.Black, at(0.4))
	m.CommitElapsed(types.Black, at(0.4))
	if got, _ := m.Remaining(types.Black); got != 600*time.Millisecond {
		t.Fatalf("repeat commit double-subtracted: %v", got)
	}
	// time going backwards is ignored
	m.CommitElapsed(types.Black, at(0.1))
	if got, _ := m.Remaining(types.Black); got != 600*time.Millisecond {
		t.Fatalf("negative elapsed changed remaining: %v", got)
	}
	m.CommitElapsed(types.Black, at(10))
	if got, _ := m.Remaining(types.Black); got != 0 {
		t.Fatalf("remaining should clamp at zero, got %v", got)
	}
	if d, _ := m.Display(types.Black, at(20)); d != 0 {
		t.Fatalf("display should clamp at zero, got %v", d)
	}
}

func TestPauseResume(t *testing.T) {
	m := New(Limited(time.Minute), Limited(time.Minute))
	m.OnTurnChanged(types.White, types.Black, at(0))
	m.StartIfNeeded(types.White, at(0))

	m.Pause(at(10))
	if !m.Paused() {
		t.Fatal("clock should be paused")
	}
	if got, _ := m.Remaining(types.Black); got != 50*time.Second {
		t.Fatalf("pause should commit elapsed, got %v", got)
	}
	if _, out := m.CheckTimeout(at(500)); out {
		t.Fatal("paused clock should not time out")
	}
	if d, _ := m.Display(types.Black, at(500)); d != 50*time.Second {
		t.Fatalf("paused display should freeze, got %v", d)
	}

	m.Resume(at(100))
	if d, _ := m.Display(types.Black, at(105)); d != 45*time.Second {
		t.Fatalf("time spent paused was charged: %v", d)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{300 * time.Second, "5:00"},
		{287600 * time.Millisecond, "4:47"},
		{9500 * time.Millisecond, "0:09.5"},
		{-time.Second, "0:00.0"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
