// Package engine defines the interface for chess rules engines.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"chesshud/clock"
	"chesshud/types"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
	ErrNoMoves     = errors.New("no legal moves")
)

// RulesEngine owns move legality and the live game.
type RulesEngine interface {
	// Connect sets up a new game from the starting position.
	Connect() error

	// Turn returns the side to move in the live game.
	Turn() types.Color

	// Outcome returns the result of the live game; the zero Result while it is ongoing.
	Outcome() types.Result

	// Position returns the working position shown on the board.
	Position() types.Position

	// ApplyPosition replaces the working position, e.g. to show a past move.
	// The live game is kept and comes back when its own position is applied.
	ApplyPosition(types.Position) error

	// PlayMove plays a move for the side to move.
	// Returns an error if the move is illegal.
	PlayMove(from, to types.Square, promo types.PieceKind) error

	// LegalMoves lists the moves available to the side to move.
	LegalMoves() []types.MoveRequest

	// Resign ends the game with the given color losing.
	Resign(loser types.Color)

	// OnMove registers a callback fired once per completed move, before
	// PlayMove returns.
	OnMove(func(types.MoveMeta))

	// Close releases the engine.
	Close()
}

// MoveChooser picks a move for the computer opponent.
type MoveChooser interface {
	ChooseMove() (types.MoveRequest, error)
}

// GameMode selects who plays the second side.
type GameMode int

const (
	ModePlayers GameMode = iota // two people at one terminal
	ModeEngine                  // one person against the computer
)

func (m GameMode) String() string {
	if m == ModeEngine {
		return "engine"
	}
	return "players"
}

// ParseGameMode accepts "players" or "engine".
func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "players", "pvp", "":
		return ModePlayers, nil
	case "engine", "ai", "computer":
		return ModeEngine, nil
	}
	return ModePlayers, fmt.Errorf("unknown game mode %q", s)
}

// TimerPreset is a time control for both sides.
type TimerPreset int

const (
	TimerTimeless TimerPreset = iota
	TimerBullet
	TimerBlitz
	TimerRapid
	TimerClassic
)

// TimerPresets lists presets in menu order.
var TimerPresets = []TimerPreset{TimerBullet, TimerBlitz, TimerRapid, TimerClassic, TimerTimeless}

func (p TimerPreset) String() string {
	switch p {
	case TimerBullet:
		return "bullet"
	case TimerBlitz:
		return "blitz"
	case TimerRapid:
		return "rapid"
	case TimerClassic:
		return "classic"
	default:
		return "timeless"
	}
}

// Label is the menu text, e.g. "Blitz (5 min)".
func (p TimerPreset) Label() string {
	l := p.Limit()
	name := strings.ToUpper(p.String()[:1]) + p.String()[1:]
	if !l.Timed {
		return name
	}
	return fmt.Sprintf("%s (%d min)", name, int(l.Duration/time.Minute))
}

// Limit returns the per-side time budget of the preset.
func (p TimerPreset) Limit() clock.Limit {
	switch p {
	case TimerBullet:
		return clock.Limited(60 * time.Second)
	case TimerBlitz:
		return clock.Limited(300 * time.Second)
	case TimerRapid:
		return clock.Limited(600 * time.Second)
	case TimerClassic:
		return clock.Limited(1800 * time.Second)
	default:
		return clock.Untimed
	}
}

// ParseTimerPreset accepts a preset name.
func ParseTimerPreset(s string) (TimerPreset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range TimerPresets {
		if p.String() == s {
			return p, nil
		}
	}
	if s == "" || s == "none" {
		return TimerTimeless, nil
	}
	return TimerTimeless, fmt.Errorf("unknown timer preset %q", s)
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Mode        GameMode
	Timer       TimerPreset
	WhiteName   string
	BlackName   string
	EngineColor types.Color   // side the computer plays in ModeEngine
	EngineDelay time.Duration // pause before the computer moves
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Mode:        ModePlayers,
		Timer:       TimerBlitz,
		WhiteName:   "White",
		BlackName:   "Black",
		EngineColor: types.Black,
		EngineDelay: 180 * time.Millisecond,
	}
}

// Name returns the display name of c, falling back to the color.
func (c GameConfig) Name(color types.Color) string {
	name := c.WhiteName
	if color == types.Black {
		name = c.BlackName
	}
	if strings.TrimSpace(name) == "" {
		return color.Title()
	}
	return name
}

// EngineTurn reports whether the computer should move for c.
func (c GameConfig) EngineTurn(color types.Color) bool {
	return c.Mode == ModeEngine && c.EngineColor == color
}
