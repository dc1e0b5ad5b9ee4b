// Package snapshot stores one board position per recorded move.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"chesshud/types"
)

var (
	ErrOutOfRange = errors.New("snapshot index out of range")
	ErrMisaligned = errors.New("snapshot index does not match history")
)

// Snapshot is the position right after a move. Position is a value, so a
// stored snapshot never changes when the live game moves on.
type Snapshot struct {
	Position   types.Position
	CapturedAt time.Time
}

// Store is an append-only list of snapshots, index-aligned with the history.
type Store struct {
	snaps []Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Capture appends pos at index, which must be the next free slot.
func (s *Store) Capture(index int, pos types.Position, now time.Time) (Snapshot, error) {
	if index != len(s.snaps) {
		return Snapshot{}, fmt.Errorf("capture at %d with %d stored: %w", index, len(s.snaps), ErrMisaligned)
	}
	snap := Snapshot{Position: pos, CapturedAt: now}
	s.snaps = append(s.snaps, snap)
	return snap, nil
}

// Get returns the snapshot at index.
func (s *Store) Get(index int) (Snapshot, error) {
	if index < 0 || index >= len(s.snaps) {
		return Snapshot{}, fmt.Errorf("get %d of %d: %w", index, len(s.snaps), ErrOutOfRange)
	}
	return s.snaps[index], nil
}

func (s *Store) Len() int { return len(s.snaps) }

// Last returns the newest snapshot, if any.
func (s *Store) Last() (Snapshot, bool) {
	if len(s.snaps) == 0 {
		return Snapshot{}, false
	}
	return s.snaps[len(s.snaps)-1], true
}

// Clear drops every snapshot. Only used when a new game starts.
func (s *Store) Clear() {
	s.snaps = nil
}
