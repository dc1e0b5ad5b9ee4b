// Package ui specifies custom controls for tview to play chess in the terminal.
package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"chesshud/config"
	"chesshud/engine"
	"chesshud/replay"
	"chesshud/session"
	"chesshud/types"
)

const cellWidth = 3

// style indexes
const (
	styleLight = iota
	styleDark
	styleWhitePiece
	styleBlackPiece
	styleCursor
	styleSelected
	styleHighlight
	stylePreview
)

type BoardUI struct {
	Box       *tview.Box
	hint      *tview.TextView
	cfg       *config.Config
	sess      *session.Session
	styles    []tcell.Color
	infoPanel *GameInfoPanel
	focusMode bool
	flipped   bool

	selFile int
	selRank int
	from    types.Square
	status  string
}

func NewBoard(c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:  tview.NewBox(),
		hint: hint,
		from: types.NoSquare,
	}
	board.ResetSelection()
	board.SetConfig(c)
	board.Box.SetBorder(true)
	board.Box.SetDrawFunc(board.draw)
	return board
}

// SetSession attaches a running game to the board.
func (b *BoardUI) SetSession(s *session.Session) {
	b.sess = s
	cfg := s.Config()
	b.flipped = cfg.Mode == engine.ModeEngine && cfg.EngineColor == types.White
	b.status = ""
	b.ResetSelection()
	if b.infoPanel != nil {
		b.infoPanel.SetSession(s)
	}
	b.refresh(time.Now())
}

func (b *BoardUI) Session() *session.Session { return b.sess }

func (b *BoardUI) SetConfig(c *config.Config) {
	b.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.LightSquare),   // 0
		tcell.PaletteColor(c.Theme.Colors.DarkSquare),    // 1
		tcell.PaletteColor(c.Theme.Colors.WhitePiece),    // 2
		tcell.PaletteColor(c.Theme.Colors.BlackPiece),    // 3
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG), // 4
		tcell.PaletteColor(c.Theme.Colors.SelectedBG),    // 5
		tcell.PaletteColor(c.Theme.Colors.HighlightBG),   // 6
		tcell.PaletteColor(c.Theme.Colors.PreviewBorder), // 7
	}
	b.cfg = c
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (b *BoardUI) ToggleFocusMode() bool {
	b.focusMode = !b.focusMode
	b.refreshHint()
	return b.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (b *BoardUI) SetFocusMode(enabled bool) {
	b.focusMode = enabled
	b.refreshHint()
}

// SelectedTile returns the square under the cursor, if shown.
func (b *BoardUI) SelectedTile() (types.Square, bool) {
	if b.selFile == -1 {
		return types.NoSquare, false
	}
	return types.NewSquare(b.selFile, b.selRank), true
}

// MoveSelection moves the cursor; v > 0 is up the screen.
func (b *BoardUI) MoveSelection(h, v int) {
	if _, ok := b.SelectedTile(); !ok {
		b.selFile, b.selRank = 4, 1
		if b.flipped {
			b.selRank = 6
		}
		return
	}
	if b.flipped {
		h, v = -h, -v
	}
	if f := b.selFile + h; f >= 0 && f < 8 {
		b.selFile = f
	}
	if r := b.selRank + v; r >= 0 && r < 8 {
		b.selRank = r
	}
}

func (b *BoardUI) ResetSelection() {
	b.selFile = -1
	b.selRank = -1
	b.from = types.NoSquare
}

// HasPieceSelected reports whether a piece is picked up.
func (b *BoardUI) HasPieceSelected() bool {
	return b.from != types.NoSquare
}

// Select picks up the piece under the cursor, or moves the picked-up piece
// to the cursor.
func (b *BoardUI) Select(now time.Time) {
	sq, ok := b.SelectedTile()
	if b.sess == nil || !ok {
		return
	}
	if b.sess.PreviewActive() {
		b.setStatus(session.ErrPreviewActive)
		return
	}
	piece := b.sess.Position().PieceAt(sq)
	switch {
	case b.from == sq:
		b.from = types.NoSquare
	case !piece.Empty() && piece.Color == b.sess.Turn():
		b.from = sq
	case b.from != types.NoSquare:
		err := b.sess.Play(b.from, sq, types.NoKind, now)
		b.from = types.NoSquare
		b.setStatus(err)
	}
	b.refresh(now)
}

func (b *BoardUI) Step(delta int, now time.Time) {
	b.run(now, func() error { return b.sess.Step(delta, now) })
}

func (b *BoardUI) TogglePlay(now time.Time) {
	b.run(now, func() error { return b.sess.TogglePlay(now) })
}

func (b *BoardUI) ReturnToLive(now time.Time) {
	b.run(now, func() error { return b.sess.ReturnToLive(now) })
}

func (b *BoardUI) Resign(now time.Time) {
	b.run(now, func() error { return b.sess.Resign(now) })
}

// Restart starts a new game with the same settings.
func (b *BoardUI) Restart(now time.Time) {
	b.run(now, func() error { return b.sess.Reset(now) })
}

func (b *BoardUI) run(now time.Time, fn func() error) {
	if b.sess == nil {
		return
	}
	b.from = types.NoSquare
	b.setStatus(fn())
	b.refresh(now)
}

func (b *BoardUI) setStatus(err error) {
	switch {
	case err == nil:
		b.status = ""
	case errors.Is(err, replay.ErrEmptyHistory):
		b.status = "No moves yet"
	default:
		b.status = err.Error()
	}
}

// Update runs one frame of the game.
func (b *BoardUI) Update(now time.Time) {
	if b.sess == nil {
		return
	}
	b.sess.Update(now)
	b.refresh(now)
}

// Close ends the attached game.
func (b *BoardUI) Close() {
	if b.sess == nil {
		return
	}
	b.sess.Close()
	b.sess = nil
}

func (b *BoardUI) IsFinished() bool {
	return b.sess != nil && b.sess.Result().Over()
}

func (b *BoardUI) refresh(now time.Time) {
	if b.infoPanel != nil {
		b.infoPanel.Refresh(now)
	}
	b.Box.SetBorderColor(tcell.ColorDefault)
	b.Box.SetTitle("")
	if b.sess != nil && b.sess.PreviewActive() {
		idx, _ := b.sess.Cursor()
		b.Box.SetBorderColor(b.styles[stylePreview])
		b.Box.SetTitle(fmt.Sprintf(" %s %d/%d ", b.sess.Mode(), idx+1, len(b.sess.History())))
	}
	b.refreshHint()
}

func (b *BoardUI) refreshHint() {
	if b.focusMode {
		b.hint.SetText("  f to toggle")
		return
	}
	if b.sess == nil {
		b.hint.SetText("")
		return
	}

	var statusLine, controlsLine string
	switch {
	case b.sess.Result().Over():
		statusLine = fmt.Sprintf("  %s", b.sess.Message())
		controlsLine = "   space · new game   [ ] · review   q · menu"
	case b.sess.PreviewActive():
		statusLine = "  Reviewing history"
		controlsLine = "   [ ] step   p play/pause   esc live"
	default:
		white, black := b.sess.Names()
		name := white
		if b.sess.Turn() == types.Black {
			name = black
		}
		if b.sess.Config().EngineTurn(b.sess.Turn()) {
			statusLine = fmt.Sprintf("  ◌ %s is thinking...", name)
		} else {
			statusLine = fmt.Sprintf("  %s to move (%s)", name, b.sess.Turn().Title())
		}
		controlsLine = "   hjkl/↑↓←→ move  ⏎ select  [ ] review  p replay  r resign  q quit"
	}
	if b.status != "" {
		statusLine += fmt.Sprintf("  [red]%s[-]", b.status)
	}
	b.hint.SetText(statusLine + "\n" + controlsLine)
}

// squareAt maps a board cell (col from the left, row from the top) to a square.
func squareAt(col, row int, flipped bool) types.Square {
	if flipped {
		return types.NewSquare(7-col, row)
	}
	return types.NewSquare(col, 7-row)
}

func pieceRune(p types.Piece, unicode bool) rune {
	if p.Empty() {
		return ' '
	}
	if unicode {
		// the filled glyphs read better on colored squares; color tells sides apart
		return types.Piece{Color: types.Black, Kind: p.Kind}.Symbol()
	}
	letter := p.Kind.Letter()
	if p.Kind == types.Pawn {
		letter = "P"
	}
	r := rune(letter[0])
	if p.Color == types.Black {
		r += 'a' - 'A'
	}
	return r
}

func (b *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if b.sess == nil {
		return x, y, width, height
	}
	innerX, innerY := x+1, y+1
	pos := b.sess.Position()
	hlFrom, hlTo, hasHL := b.sess.Highlight()
	hasHL = hasHL && b.cfg.Theme.ShowHighlights
	cursor, hasCursor := b.SelectedTile()

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := squareAt(col, row, b.flipped)
			bg := b.styles[styleLight]
			if (sq.File()+sq.Rank())%2 == 0 {
				bg = b.styles[styleDark]
			}
			switch {
			case hasCursor && sq == cursor:
				bg = b.styles[styleCursor]
			case sq == b.from:
				bg = b.styles[styleSelected]
			case hasHL && (sq == hlFrom || sq == hlTo):
				bg = b.styles[styleHighlight]
			}
			piece := pos.PieceAt(sq)
			fg := b.styles[styleWhitePiece]
			if piece.Color == types.Black {
				fg = b.styles[styleBlackPiece]
			}
			drawSquareCell(screen, tcell.StyleDefault.Background(bg).Foreground(fg), pieceRune(piece, b.cfg.Theme.UnicodePieces), col, row, innerX+2, innerY)
		}
	}
	drawCoordinates(screen, innerX, innerY, b)
	return x, y, width, height
}

// drawSquareCell draws one square, cellWidth characters wide.
func drawSquareCell(s tcell.Screen, c tcell.Style, r rune, col, row, l, t int) {
	s.SetContent(l+col*cellWidth, t+row, ' ', nil, c)
	s.SetContent(l+col*cellWidth+1, t+row, r, nil, c)
	s.SetContent(l+col*cellWidth+2, t+row, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, b *BoardUI) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(b.styles[styleCursor])
	cursor, hasCursor := b.SelectedTile()

	for col := 0; col < 8; col++ {
		sq := squareAt(col, 7, b.flipped)
		_style := style
		if hasCursor && sq.File() == cursor.File() {
			_style = highlight
		}
		s.SetContent(x+2+col*cellWidth+1, y+8, rune('a'+sq.File()), nil, _style)
	}
	for row := 0; row < 8; row++ {
		sq := squareAt(0, row, b.flipped)
		_style := style
		if hasCursor && sq.Rank() == cursor.Rank() {
			_style = highlight
		}
		s.SetContent(x, y+row, rune('1'+sq.Rank()), nil, _style)
	}
}

// BoardSize is the space the board needs, border included.
func BoardSize() (int, int) {
	return 8*cellWidth + 4, 8 + 3
}
