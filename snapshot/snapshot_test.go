package snapshot

import (
	"errors"
	"testing"
	"time"

	"chesshud/types"
)

func TestCaptureAndGet(t *testing.T) {
	s := NewStore()
	now := time.Unix(100, 0)
	pos := types.StartingPosition()

	snap, err := s.Capture(0, pos, now)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if snap.Position != pos || !snap.CapturedAt.Equal(now) {
		t.Fatal("returned snapshot should match input")
	}
	got, err := s.Get(0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != snap {
		t.Fatal("stored snapshot differs from captured one")
	}
}

func TestSnapshotDoesNotAliasLiveState(t *testing.T) {
	s := NewStore()
	live := types.StartingPosition()
	if _, err := s.Capture(0, live, time.Time{}); err != nil {
		t.Fatal(err)
	}

	live.Board[types.NewSquare(4, 1)] = types.NoPiece
	live.Captured = live.Captured.Add(types.Piece{Color: types.Black, Kind: types.Pawn})
	live.Turn = types.Black

	got, _ := s.Get(0)
	if got.Position != types.StartingPosition() {
		t.Fatal("mutating live position changed the stored snapshot")
	}
}

func TestCaptureMisaligned(t *testing.T) {
	s := NewStore()
	if _, err := s.Capture(1, types.Position{}, time.Time{}); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("failed capture should not append, len %d", s.Len())
	}
}

func TestGetOutOfRange(t *testing.T) {
	s := NewStore()
	s.Capture(0, types.Position{}, time.Time{})
	for _, idx := range []int{-1, 1, 10} {
		if _, err := s.Get(idx); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Get(%d): expected ErrOutOfRange, got %v", idx, err)
		}
	}
}

func TestLastAndClear(t *testing.T) {
	s := NewStore()
	if _, ok := s.Last(); ok {
		t.Fatal("empty store should have no last snapshot")
	}
	s.Capture(0, types.Position{HalfMove: 1}, time.Time{})
	s.Capture(1, types.Position{HalfMove: 2}, time.Time{})
	last, ok := s.Last()
	if !ok || last.Position.HalfMove != 2 {
		t.Fatalf("Last = %+v, %v", last.Position.HalfMove, ok)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("clear should empty store, len %d", s.Len())
	}
	if _, err := s.Capture(0, types.Position{}, time.Time{}); err != nil {
		t.Fatalf("capture after clear should start at 0: %v", err)
	}
}
