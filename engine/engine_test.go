package engine

import (
	"testing"
	"time"

	"chesshud/types"
)

func TestTimerPresets(t *testing.T) {
	tests := []struct {
		name  string
		want  TimerPreset
		limit time.Duration
		timed bool
		label string
	}{
		{"bullet", TimerBullet, time.Minute, true, "Bullet (1 min)"},
		{"Blitz", TimerBlitz, 5 * time.Minute, true, "Blitz (5 min)"},
		{"rapid", TimerRapid, 10 * time.Minute, true, "Rapid (10 min)"},
		{" classic ", TimerClassic, 30 * time.Minute, true, "Classic (30 min)"},
		{"timeless", TimerTimeless, 0, false, "Timeless"},
	}
	for _, tt := range tests {
		p, err := ParseTimerPreset(tt.name)
		if err != nil {
			t.Fatalf("ParseTimerPreset(%q): %v", tt.name, err)
		}
		if p != tt.want {
			t.Fatalf("ParseTimerPreset(%q) = %v", tt.name, p)
		}
		l := p.Limit()
		if l.Timed != tt.timed || l.Duration != tt.limit {
			t.Errorf("%v limit = %+v", p, l)
		}
		if p.Label() != tt.label {
			t.Errorf("%v label = %q, want %q", p, p.Label(), tt.label)
		}
	}
	if _, err := ParseTimerPreset("hyper"); err == nil {
		t.Fatal("unknown preset should fail")
	}
}

func TestParseGameMode(t *testing.T) {
	if m, err := ParseGameMode("engine"); err != nil || m != ModeEngine {
		t.Fatalf("engine: %v %v", m, err)
	}
	if m, err := ParseGameMode("players"); err != nil || m != ModePlayers {
		t.Fatalf("players: %v %v", m, err)
	}
	if _, err := ParseGameMode("network"); err == nil {
		t.Fatal("unknown mode should fail")
	}
}

func TestGameConfigName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WhiteName = "Alice"
	cfg.BlackName = "  "
	if cfg.Name(types.White) != "Alice" {
		t.Fatal("white name")
	}
	if cfg.Name(types.Black) != "Black" {
		t.Fatal("blank name should fall back to color")
	}
	if cfg.EngineTurn(types.Black) {
		t.Fatal("players mode has no engine turns")
	}
	cfg.Mode = ModeEngine
	if !cfg.EngineTurn(types.Black) || cfg.EngineTurn(types.White) {
		t.Fatal("engine plays black by default")
	}
}
