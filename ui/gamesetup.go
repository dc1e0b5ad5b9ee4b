package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"chesshud/engine"
	"chesshud/types"
)

const maxNameLen = 24

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	cfg engine.GameConfig
}

// NewGameSetup creates a new game setup form seeded with defaults.
func NewGameSetup(defaults engine.GameConfig, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		cfg:      defaults,
	}

	modes := []string{"Two players", "Against the computer"}
	timers := make([]string, len(engine.TimerPresets))
	timerIdx := 0
	for i, p := range engine.TimerPresets {
		timers[i] = p.Label()
		if p == defaults.Timer {
			timerIdx = i
		}
	}
	engineColors := []string{"Black (you play White)", "White (you play Black)"}
	engineIdx := 0
	if defaults.EngineColor == types.White {
		engineIdx = 1
	}

	form := tview.NewForm()

	form.AddDropDown("Mode", modes, int(defaults.Mode), func(option string, index int) {
		setup.cfg.Mode = engine.GameMode(index)
	})

	form.AddDropDown("Timer", timers, timerIdx, func(option string, index int) {
		setup.cfg.Timer = engine.TimerPresets[index]
	})

	form.AddInputField("White", defaults.WhiteName, maxNameLen, nil, func(text string) {
		setup.cfg.WhiteName = strings.TrimSpace(text)
	})

	form.AddInputField("Black", defaults.BlackName, maxNameLen, nil, func(text string) {
		setup.cfg.BlackName = strings.TrimSpace(text)
	})

	form.AddDropDown("Computer plays", engineColors, engineIdx, func(option string, index int) {
		setup.cfg.EngineColor = types.Black
		if index == 1 {
			setup.cfg.EngineColor = types.White
		}
	})

	form.AddButton("Start Game", func() {
		onStart(setup.Config())
	})

	form.AddButton("Board Color", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitleColor(MenuColors.Title)
	form.SetLabelColor(MenuColors.Label)
	form.SetFieldBackgroundColor(MenuColors.FieldBG)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Config returns the game the form currently describes.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.cfg
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
