// Package history records completed moves and their notation.
package history

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"chesshud/audio"
	"chesshud/snapshot"
	"chesshud/types"
)

var (
	ErrRecordingSuspended = errors.New("recording suspended outside live mode")
	ErrDuplicateMove      = errors.New("move already recorded")
)

// Entry is one recorded move. Index matches its position in the history and
// in the snapshot store.
type Entry struct {
	Index    int
	Notation string
	Meta     types.MoveMeta
	Tag      string
}

// Gate reports whether the game is live. Nothing is recorded otherwise.
type Gate interface {
	Live() bool
}

// GateFunc adapts a function to Gate.
type GateFunc func() bool

func (f GateFunc) Live() bool { return f() }

// AlwaysLive is a gate that never suspends recording.
var AlwaysLive Gate = GateFunc(func() bool { return true })

// Recorder appends moves to the history and captures the matching snapshot.
type Recorder struct {
	entries []Entry
	store   *snapshot.Store
	gate    Gate
	cues    audio.Player
	logger  *zap.Logger
}

func NewRecorder(store *snapshot.Store, gate Gate, cues audio.Player, logger *zap.Logger) *Recorder {
	if store == nil {
		store = snapshot.NewStore()
	}
	if gate == nil {
		gate = AlwaysLive
	}
	if cues == nil {
		cues = audio.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, gate: gate, cues: cues, logger: logger}
}

// TryRecord appends meta and captures pos as its snapshot. A report equal to
// the last recorded move is rejected, so the engine may report a move more
// than once without duplicating history.
func (r *Recorder) TryRecord(meta types.MoveMeta, pos types.Position, now time.Time) (Entry, error) {
	if !r.gate.Live() {
		r.logger.Debug("move rejected while previewing", zap.Int("ply", meta.Ply))
		return Entry{}, ErrRecordingSuspended
	}
	if last, ok := r.Last(); ok && last.Meta == meta {
		return Entry{}, ErrDuplicateMove
	}

	entry := Entry{
		Index:    len(r.entries),
		Notation: Notation(meta),
		Meta:     meta,
		Tag:      Tag(meta),
	}
	r.entries = append(r.entries, entry)
	if _, err := r.store.Capture(entry.Index, pos, now); err != nil {
		r.entries = r.entries[:entry.Index]
		r.logger.DPanic("history and snapshots out of step",
			zap.Error(err),
			zap.Int("history_len", len(r.entries)),
			zap.Int("snapshot_len", r.store.Len()),
		)
		return Entry{}, err
	}

	cue := audio.CueMove
	if meta.IsCapture() {
		cue = audio.CueCapture
	}
	if err := r.cues.Play(cue); err != nil {
		r.logger.Warn("audio cue failed", zap.Stringer("cue", cue), zap.Error(err))
	}

	r.logger.Debug("move recorded",
		zap.Int("index", entry.Index),
		zap.String("notation", entry.Notation),
		zap.String("tag", entry.Tag),
	)
	return entry, nil
}

// Entries returns a copy of the history.
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Recorder) Len() int { return len(r.entries) }

func (r *Recorder) Last() (Entry, bool) {
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Store returns the snapshot store the recorder writes to.
func (r *Recorder) Store() *snapshot.Store { return r.store }

// Reset clears the history and its snapshots for a new game.
func (r *Recorder) Reset() {
	r.entries = nil
	r.store.Clear()
}
