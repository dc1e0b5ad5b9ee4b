package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"chesshud/clock"
	"chesshud/history"
	"chesshud/session"
	"chesshud/types"
)

const panelWidth = 28

// hintHeight fits two status lines inside the hint's border.
const hintHeight = 4

// GameInfoPanel displays the clocks, captured material and move history
// alongside the board.
type GameInfoPanel struct {
	box     *tview.TextView
	sess    *session.Session
	unicode bool
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel(unicode bool) *GameInfoPanel {
	panel := &GameInfoPanel{
		box:     tview.NewTextView(),
		unicode: unicode,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

func (p *GameInfoPanel) SetSession(s *session.Session) {
	p.sess = s
}

// Refresh updates the panel text.
func (p *GameInfoPanel) Refresh(now time.Time) {
	if p.sess == nil {
		p.box.SetText("")
		return
	}
	p.box.SetText(p.render(now))
}

func (p *GameInfoPanel) render(now time.Time) string {
	var text strings.Builder
	white, black := p.sess.Names()

	text.WriteString("[white::b]Game Info[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	text.WriteString(p.playerLine(types.White, white, now))
	text.WriteString(p.playerLine(types.Black, black, now))
	fmt.Fprintf(&text, "[white]Timer:[-:-:-] %s\n", p.sess.Config().Timer.Label())
	if p.sess.Config().Timer.Limit().Timed && !p.sess.ClocksStarted() {
		text.WriteString("[dimgray]Clocks start after White moves[-]\n")
	}

	mode := p.sess.Mode().String()
	entries := p.sess.History()
	if idx, ok := p.sess.Cursor(); ok {
		mode = fmt.Sprintf("[yellow]%s %d/%d[-]", mode, idx+1, len(entries))
	}
	fmt.Fprintf(&text, "[white]Mode:[-:-:-] %s\n", mode)

	pos := p.sess.Position()
	fmt.Fprintf(&text, "[white]Taken by %s:[-:-:-] %s\n", types.White.Title(), p.captured(pos.CapturedBy(types.White)))
	fmt.Fprintf(&text, "[white]Taken by %s:[-:-:-] %s\n", types.Black.Title(), p.captured(pos.CapturedBy(types.Black)))

	if msg := p.sess.Message(); msg != "" {
		fmt.Fprintf(&text, "\n[yellow::b]%s[-:-:-]\n", msg)
	}

	if len(entries) > 0 {
		text.WriteString("\n[white::b]Moves[-:-:-]\n")
		text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
		cursor, previewing := p.sess.Cursor()
		if !previewing {
			cursor = len(entries) - 1
		}
		text.WriteString(moveList(entries, cursor, 10))
	}
	return text.String()
}

func (p *GameInfoPanel) playerLine(c types.Color, name string, now time.Time) string {
	marker := " "
	if p.sess.Turn() == c && !p.sess.Result().Over() {
		marker = "[white]>[-]"
	}
	remaining := "--:--"
	if d, timed := p.sess.Display(c, now); timed {
		remaining = clock.Format(d)
	}
	glyph := types.Piece{Color: c, Kind: types.King}.Symbol()
	return fmt.Sprintf("%s%c %-12s %s\n", marker, glyph, tview.Escape(name), remaining)
}

func (p *GameInfoPanel) captured(pieces []types.Piece) string {
	if len(pieces) == 0 {
		return "[dimgray]-[-]"
	}
	var sb strings.Builder
	for _, piece := range pieces {
		if p.unicode {
			sb.WriteRune(piece.Symbol())
		} else {
			sb.WriteRune(pieceRune(piece, false))
		}
	}
	return sb.String()
}

// moveList renders up to maxRows full moves, keeping the cursor's row visible.
func moveList(entries []history.Entry, cursor, maxRows int) string {
	rows := (len(entries) + 1) / 2
	cursorRow := cursor / 2
	start := 0
	if rows > maxRows {
		start = rows - maxRows
		if cursorRow < start {
			start = cursorRow
		}
	}
	end := start + maxRows
	if end > rows {
		end = rows
	}

	var text strings.Builder
	if start > 0 {
		fmt.Fprintf(&text, "[dimgray]  ··· %d earlier[-]\n", start)
	}
	for row := start; row < end; row++ {
		marker := " "
		if row == cursorRow {
			marker = "[white]>[-]"
		}
		fmt.Fprintf(&text, "%s[dimgray]%3d.[-] %s", marker, row+1, moveCell(entries[row*2], cursor == row*2))
		if i := row*2 + 1; i < len(entries) {
			text.WriteString(" " + moveCell(entries[i], cursor == i))
		}
		text.WriteString("\n")
	}
	if end < rows {
		fmt.Fprintf(&text, "[dimgray]  ··· %d later[-]\n", rows-end)
	}
	return text.String()
}

func moveCell(e history.Entry, current bool) string {
	cell := fmt.Sprintf("%-9s", e.Notation+e.Tag)
	if current {
		return "[yellow]" + cell + "[-]"
	}
	return cell
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel(board.cfg.Theme.UnicodePieces)
	board.infoPanel = infoPanel
	if s := board.Session(); s != nil {
		infoPanel.SetSession(s)
		infoPanel.Refresh(time.Now())
	}

	boardWidth, boardHeight := BoardSize()
	boardCol := tview.NewFlex().SetDirection(tview.FlexRow)
	boardCol.AddItem(board.Box, boardHeight, 0, true)
	boardCol.AddItem(nil, 0, 1, false)

	// board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(boardCol, boardWidth, 0, true)
	boardRow.AddItem(nil, 2, 0, false)
	boardRow.AddItem(infoPanel.Box(), panelWidth, 0, false)
	boardRow.AddItem(nil, 0, 1, false)

	// status bar at the bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, hintHeight, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()
	boardWidth, boardHeight := BoardSize()

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false) // bottom spacer
}
