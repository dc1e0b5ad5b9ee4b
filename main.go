// chesshud is a terminal chess board with clocks and move replay.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"chesshud/audio"
	"chesshud/config"
	"chesshud/engine"
	"chesshud/engine/stdchess"
	"chesshud/logging"
	"chesshud/session"
	"chesshud/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

const frameRate = 60

// Command-line flags
var (
	flagMode       = flag.String("mode", "", "Game mode (players or engine)")
	flagTimer      = flag.String("timer", "", "Timer preset (bullet, blitz, rapid, classic, timeless)")
	flagWhite      = flag.String("white", "", "White player's name")
	flagBlack      = flag.String("black", "", "Black player's name")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger *zap.Logger
var cues audio.Player = audio.Nop{}

// swapped in tests
var stderr io.Writer = os.Stderr
var exit = os.Exit

// fatal reports a startup failure on the terminal and in the log, then exits.
func fatal(code int, err error) {
	if logger != nil {
		logger.Error("startup failed", zap.Error(err))
		logger.Sync()
	}
	fmt.Fprintf(stderr, "chesshud: %v\n", err)
	exit(code)
}

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("chesshud %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fatal(1, err)
	}
	logger, err = logging.New(cfg.Log)
	if err != nil {
		fatal(1, err)
	}
	defer logger.Sync()

	flagCfg, err := buildGameConfigFromFlags()
	if err != nil {
		fatal(2, err)
	}
	quickStart := *flagQuickStart || *flagMode != "" || *flagTimer != "" || *flagWhite != "" || *flagBlack != "" || *flagFocus

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal(1, fmt.Errorf("terminal unavailable: %w", err))
	}
	if cfg.Game.Bell {
		cues = audio.NewBell(screen)
	}

	app = tview.NewApplication()
	app.SetScreen(screen)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ♞ chesshud ")

	gameHint = tview.NewTextView()
	gameHint.SetDynamicColors(true)
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		now := time.Now()
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.HasPieceSelected() {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			gameBoard.Select(now)
		case tcell.KeyEsc:
			gameBoard.ReturnToLive(now)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, -1)
			case 'k':
				gameBoard.MoveSelection(0, 1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case '[':
				gameBoard.Step(-1, now)
			case ']':
				gameBoard.Step(1, now)
			case 'p':
				gameBoard.TogglePlay(now)
			case 'r':
				gameBoard.Resign(now)
			case ' ':
				if gameBoard.IsFinished() {
					gameBoard.Restart(now)
				}
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	setupUI := ui.NewGameSetup(flagCfg,
		func(gameCfg engine.GameConfig) {
			cfg.Remember(gameCfg)
			if err := cfg.Save(); err != nil {
				logger.Warn("could not save game defaults", zap.Error(err))
			}
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(flagCfg)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	done := make(chan struct{})
	go runFrames(done)

	err = app.SetRoot(rootPage, true).Run()
	close(done)
	gameBoard.Close()
	if err != nil {
		logger.Error("ui stopped", zap.Error(err))
		os.Exit(1)
	}
}

// runFrames drives the game loop at frameRate until done is closed. The
// frame itself runs on the UI goroutine.
func runFrames(done <-chan struct{}) {
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			app.QueueUpdateDraw(func() {
				gameBoard.Update(time.Now())
			})
		}
	}
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()

	eng := stdchess.New(stdchess.WithLogger(logger))
	sess, err := session.New(gameCfg, eng, cues, logger, time.Now(),
		session.WithReplayInterval(cfg.ReplayInterval()))
	if err != nil {
		logger.Error("could not start game", zap.Error(err))
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	gameBoard.SetSession(sess)
	rootPage.SwitchToPage("gameview")
}

// buildGameConfigFromFlags starts from the saved defaults and applies flags.
func buildGameConfigFromFlags() (engine.GameConfig, error) {
	gameCfg, err := cfg.GameConfig()
	if err != nil {
		return gameCfg, err
	}
	if *flagMode != "" {
		if gameCfg.Mode, err = engine.ParseGameMode(*flagMode); err != nil {
			return gameCfg, err
		}
	}
	if *flagTimer != "" {
		if gameCfg.Timer, err = engine.ParseTimerPreset(*flagTimer); err != nil {
			return gameCfg, err
		}
	}
	if *flagWhite != "" {
		gameCfg.WhiteName = *flagWhite
	}
	if *flagBlack != "" {
		gameCfg.BlackName = *flagBlack
	}
	return gameCfg, nil
}
