package replay

import (
	"errors"
	"testing"
	"time"

	"chesshud/snapshot"
	"chesshud/types"
)

var errApply = errors.New("apply refused")

type fakeBoard struct {
	pos     types.Position
	failFor func(types.Position) bool
	applies int
}

func (b *fakeBoard) Position() types.Position { return b.pos }

func (b *fakeBoard) ApplyPosition(p types.Position) error {
	b.applies++
	if b.failFor != nil && b.failFor(p) {
		return errApply
	}
	b.pos = p
	return nil
}

// livePosition is distinct from every recorded snapshot.
func livePosition() types.Position {
	pos := types.StartingPosition()
	pos.Board[types.NewSquare(4, 1)] = types.NoPiece
	pos.Board[types.NewSquare(4, 3)] = types.Piece{Color: types.White, Kind: types.Pawn}
	pos.Captured = pos.Captured.Add(types.Piece{Color: types.Black, Kind: types.Knight})
	pos.HalfMove = 99
	return pos
}

func setup(t *testing.T, moves int) (*Controller, *fakeBoard, *snapshot.Store) {
	t.Helper()
	store := snapshot.NewStore()
	for i := 0; i < moves; i++ {
		pos := types.StartingPosition()
		pos.FullMove = i + 1
		if _, err := store.Capture(i, pos, time.Unix(int64(i), 0)); err != nil {
			t.Fatal(err)
		}
	}
	board := &fakeBoard{pos: livePosition()}
	return New(board, store, nil), board, store
}

var t0 = time.Unix(1000, 0)

func TestPreviewThenReturnRestoresLive(t *testing.T) {
	c, board, store := setup(t, 10)
	before := board.Position()

	if err := c.EnterPreview(3, t0); err != nil {
		t.Fatalf("enter preview: %v", err)
	}
	want, _ := store.Get(3)
	if board.Position() != want.Position {
		t.Fatal("board should show the position after move 3")
	}
	if c.Mode() != Previewing || !c.PreviewActive() || c.Live() {
		t.Fatalf("mode = %v", c.Mode())
	}
	if idx, ok := c.Cursor(); !ok || idx != 3 {
		t.Fatalf("cursor = %d, %v", idx, ok)
	}

	if err := c.ReturnToLive(); err != nil {
		t.Fatalf("return: %v", err)
	}
	if board.Position() != before {
		t.Fatal("live position not restored exactly")
	}
	if c.Mode() != Live {
		t.Fatalf("mode = %v, want LIVE", c.Mode())
	}
	if _, ok := c.Cursor(); ok {
		t.Fatal("cursor should be cleared when live")
	}
}

func TestRoundtripEveryIndex(t *testing.T) {
	c, board, _ := setup(t, 10)
	before := board.Position()
	for i := 0; i < 10; i++ {
		if err := c.EnterPreview(i, t0); err != nil {
			t.Fatalf("EnterPreview(%d): %v", i, err)
		}
		if err := c.ReturnToLive(); err != nil {
			t.Fatal(err)
		}
		if board.Position() != before {
			t.Fatalf("roundtrip through %d changed live position", i)
		}
	}
}

func TestEnterPreviewOutOfRange(t *testing.T) {
	c, board, _ := setup(t, 3)
	before := board.Position()
	for _, idx := range []int{-1, 3, 50} {
		if err := c.EnterPreview(idx, t0); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("EnterPreview(%d): expected ErrOutOfRange, got %v", idx, err)
		}
	}
	if c.Mode() != Live || board.Position() != before || board.applies != 0 {
		t.Fatal("failed preview must not touch the board")
	}
}

func TestEmptyHistory(t *testing.T) {
	c, _, _ := setup(t, 0)
	if err := c.EnterPreview(0, t0); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("EnterPreview: %v", err)
	}
	if err := c.Step(-1, t0); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("Step: %v", err)
	}
	if err := c.TogglePlay(t0); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("TogglePlay: %v", err)
	}
	if c.Mode() != Live {
		t.Fatal("should stay live")
	}
}

func TestStepClamps(t *testing.T) {
	c, _, _ := setup(t, 5)
	if err := c.EnterPreview(2, t0); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		delta int
		want  int
	}{
		{1, 3},
		{10, 4},
		{1, 4},
		{-2, 2},
		{-100, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if err := c.Step(tt.delta, t0); err != nil {
			t.Fatalf("Step(%d): %v", tt.delta, err)
		}
		if idx, _ := c.Cursor(); idx != tt.want {
			t.Fatalf("Step(%d): cursor %d, want %d", tt.delta, idx, tt.want)
		}
	}
}

func TestStepFromLive(t *testing.T) {
	c, _, _ := setup(t, 5)
	if err := c.Step(-1, t0); err != nil {
		t.Fatal(err)
	}
	if idx, ok := c.Cursor(); !ok || idx != 3 {
		t.Fatalf("step back from live: cursor %d, %v", idx, ok)
	}
	c.ReturnToLive()
	if err := c.Step(1, t0); err != nil {
		t.Fatal(err)
	}
	if idx, _ := c.Cursor(); idx != 4 {
		t.Fatalf("step forward from live should clamp to last, got %d", idx)
	}
}

func TestAutoplayReturnsToLive(t *testing.T) {
	c, board, store := setup(t, 10)
	before := board.Position()
	if err := c.EnterPreview(0, t0); err != nil {
		t.Fatal(err)
	}
	if err := c.TogglePlay(t0); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != Playing {
		t.Fatalf("mode = %v, want PLAYING", c.Mode())
	}

	if stepped, _ := c.Tick(t0.Add(699 * time.Millisecond)); stepped {
		t.Fatal("should not step before the interval")
	}
	now := t0
	for i := 1; i < 9; i++ {
		now = now.Add(DefaultInterval)
		if stepped, err := c.Tick(now); !stepped || err != nil {
			t.Fatalf("tick %d: %v, %v", i, stepped, err)
		}
		if idx, _ := c.Cursor(); idx != i {
			t.Fatalf("tick %d: cursor %d", i, idx)
		}
		want, _ := store.Get(i)
		if board.Position() != want.Position {
			t.Fatalf("tick %d: board not showing snapshot", i)
		}
	}
	now = now.Add(DefaultInterval)
	if _, err := c.Tick(now); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != Live {
		t.Fatalf("after reaching the last move mode = %v, want LIVE", c.Mode())
	}
	if board.Position() != before {
		t.Fatal("autoplay end should restore the live position")
	}
}

func TestTogglePlayPauses(t *testing.T) {
	c, board, _ := setup(t, 4)
	before := board.Position()
	if err := c.TogglePlay(t0); err != nil {
		t.Fatal(err)
	}
	if idx, _ := c.Cursor(); idx != 0 || c.Mode() != Playing {
		t.Fatalf("toggle from live should play from 0, got %d %v", idx, c.Mode())
	}
	c.TogglePlay(t0)
	if c.Mode() != Previewing {
		t.Fatalf("second toggle should pause, got %v", c.Mode())
	}
	if stepped, _ := c.Tick(t0.Add(time.Hour)); stepped {
		t.Fatal("paused autoplay should not tick")
	}
	c.ReturnToLive()
	if board.Position() != before {
		t.Fatal("live position lost after toggling from live")
	}
}

func TestWithInterval(t *testing.T) {
	store := snapshot.NewStore()
	store.Capture(0, types.Position{}, t0)
	store.Capture(1, types.Position{FullMove: 2}, t0)
	store.Capture(2, types.Position{FullMove: 3}, t0)
	c := New(&fakeBoard{}, store, nil, WithInterval(100*time.Millisecond))
	c.TogglePlay(t0)
	if stepped, _ := c.Tick(t0.Add(100 * time.Millisecond)); !stepped {
		t.Fatal("custom interval not honoured")
	}
}

func TestFailedApplyKeepsLive(t *testing.T) {
	c, board, _ := setup(t, 5)
	before := board.Position()
	board.failFor = func(p types.Position) bool { return p.FullMove == 3 }

	if err := c.EnterPreview(2, t0); !errors.Is(err, errApply) {
		t.Fatalf("expected apply error, got %v", err)
	}
	if c.Mode() != Live || board.Position() != before {
		t.Fatal("failed preview should leave the live game in place")
	}

	// a failed step keeps the last good preview
	if err := c.EnterPreview(0, t0); err != nil {
		t.Fatal(err)
	}
	if err := c.Step(2, t0); err == nil {
		t.Fatal("expected step to fail")
	}
	if idx, _ := c.Cursor(); idx != 0 || c.Mode() != Previewing {
		t.Fatalf("cursor %d mode %v after failed step", idx, c.Mode())
	}
	if err := c.ReturnToLive(); err != nil {
		t.Fatal(err)
	}
	if board.Position() != before {
		t.Fatal("live position lost after failed step")
	}
}
