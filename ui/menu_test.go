package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"chesshud/config"
	"chesshud/engine"
)

func drawAt(t *testing.T, p tview.Primitive, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	p.SetRect(0, 0, w, h)
	p.Draw(screen)
	return screen
}

func borderColor(s tcell.SimulationScreen, x, y int) tcell.Color {
	_, _, style, _ := s.GetContent(x, y)
	fg, _, _ := style.Decompose()
	return fg
}

func TestSetupUsesMenuColors(t *testing.T) {
	setup := NewGameSetup(engine.DefaultConfig(), func(engine.GameConfig) {}, func() {}, nil)
	screen := drawAt(t, setup.Form(), 80, 24)
	if got := borderColor(screen, 0, 0); got != MenuColors.Border {
		t.Fatalf("form border = %v, want %v", got, MenuColors.Border)
	}
}

func TestColorScreenUsesMenuColors(t *testing.T) {
	cfg := config.DefaultConfig
	cc := NewColorConfig(&cfg, func() {})
	screen := drawAt(t, cc.Flex(), 80, 24)
	if got := borderColor(screen, 0, 0); got != MenuColors.Border {
		t.Fatalf("list border = %v, want %v", got, MenuColors.Border)
	}
	if got := borderColor(screen, 32, 0); got != MenuColors.Border {
		t.Fatalf("preview border = %v, want %v", got, MenuColors.Border)
	}

	// the top left preview square is light
	_, _, style, _ := screen.GetContent(32+2, 1)
	if _, bg, _ := style.Decompose(); bg != tcell.PaletteColor(cfg.Theme.Colors.LightSquare) {
		t.Fatalf("preview square background = %v", bg)
	}
}

func TestSetupConfigFollowsDefaults(t *testing.T) {
	defaults := engine.DefaultConfig()
	defaults.Timer = engine.TimerRapid
	defaults.WhiteName = "Alice"
	setup := NewGameSetup(defaults, func(engine.GameConfig) {}, func() {}, nil)
	if setup.Config() != defaults {
		t.Fatalf("config = %+v", setup.Config())
	}
}
