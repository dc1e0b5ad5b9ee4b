package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"chesshud/config"
	"chesshud/types"
)

// ColorConfigUI provides a square color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()
	saveErr   error

	selectedLight int
	selectedDark  int
	editingDark   bool // false = editing light squares
}

type paletteEntry struct {
	code int
	name string
}

// Light square colors (pale wood and stone tones)
var lightColors = []paletteEntry{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{223, "Peach"},
	{222, "Gold"},
	{188, "Light Beige"},
	{187, "Sand"},
	{181, "Dusty Rose"},
	{180, "Tan"},
	{152, "Pale Blue"},
	{151, "Pale Green"},
	{252, "Light Gray"},
	{250, "Gray"},
}

// Dark square colors (contrast with the light set)
var darkColors = []paletteEntry{
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{136, "Dark Brown"},
	{137, "Walnut"},
	{88, "Dark Red"},
	{22, "Dark Green"},
	{65, "Olive Green"},
	{23, "Teal"},
	{24, "Dark Cyan"},
	{60, "Slate"},
	{54, "Purple"},
	{240, "Gray"},
	{236, "Dark Gray"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:           cfg,
		onDone:        onDone,
		selectedLight: cfg.Theme.Colors.LightSquare,
		selectedDark:  cfg.Theme.Colors.DarkSquare,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.SetBorderColor(MenuColors.Border)
	cc.colorList.SetTitleColor(MenuColors.Title)
	cc.colorList.ShowSecondaryText(false)
	cc.colorList.SetMainTextColor(MenuColors.Label)
	cc.colorList.SetShortcutColor(MenuColors.Accent)
	cc.colorList.SetSelectedBackgroundColor(MenuColors.Selected)
	cc.populateColorList()

	// Moving through the list previews the color
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if code, ok := cc.entryAt(index); ok {
			if cc.editingDark {
				cc.selectedDark = code
			} else {
				cc.selectedLight = code
			}
		}
	})

	// Enter applies it
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if _, ok := cc.entryAt(index); !ok {
			return
		}
		if !cc.editingDark {
			cc.cfg.Theme.Colors.LightSquare = cc.selectedLight
			cc.editingDark = true
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.DarkSquare = cc.selectedDark
		cc.saveErr = cc.cfg.Save()
		if cc.saveErr != nil {
			cc.colorList.SetTitle(fmt.Sprintf(" Save failed: %v ", cc.saveErr))
			return
		}
		cc.editingDark = false
		cc.populateColorList()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetBorderColor(MenuColors.Border)
	cc.preview.SetTitleColor(MenuColors.Title)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// list on the left, preview on the right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 32, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) palette() []paletteEntry {
	if cc.editingDark {
		return darkColors
	}
	return lightColors
}

func (cc *ColorConfigUI) entryAt(index int) (int, bool) {
	p := cc.palette()
	if index < 0 || index >= len(p) {
		return 0, false
	}
	return p[index].code, true
}

// populateColorList fills the list for the square shade being edited.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedLight
	cc.colorList.SetTitle(" Light Squares (Tab: dark) ")
	if cc.editingDark {
		current = cc.selectedDark
		cc.colorList.SetTitle(" Dark Squares (Tab: light) ")
	}
	for i, c := range cc.palette() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.palette() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

// previewPieces is a corner of the board in FEN order, rank 8 first.
var previewPieces = [4]string{"rnbq", "pp.p", "..p.", "...P"}

func previewPiece(c byte) types.Piece {
	kinds := map[byte]types.PieceKind{'p': types.Pawn, 'n': types.Knight, 'b': types.Bishop, 'r': types.Rook, 'q': types.Queen, 'k': types.King}
	if kind, ok := kinds[c|0x20]; ok {
		color := types.Black
		if c < 'a' {
			color = types.White
		}
		return types.Piece{Color: color, Kind: kind}
	}
	return types.Piece{}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < 20 || height < 8 {
		return x, y, width, height
	}
	light := tcell.PaletteColor(cc.selectedLight)
	dark := tcell.PaletteColor(cc.selectedDark)
	whiteFg := tcell.PaletteColor(cc.cfg.Theme.Colors.WhitePiece)
	blackFg := tcell.PaletteColor(cc.cfg.Theme.Colors.BlackPiece)

	startX, startY := x+2, y+1
	for row, rank := range previewPieces {
		for col := 0; col < len(rank); col++ {
			piece := previewPiece(rank[col])
			bg := light
			if (row+col)%2 == 1 {
				bg = dark
			}
			fg := whiteFg
			if piece.Color == types.Black {
				fg = blackFg
			}
			style := tcell.StyleDefault.Background(bg).Foreground(fg)
			drawSquareCell(screen, style, pieceRune(piece, cc.cfg.Theme.UnicodePieces), col, row, startX, startY)
		}
	}

	info := fmt.Sprintf("Light: %d  Dark: %d", cc.selectedLight, cc.selectedDark)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+len(previewPieces)+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between light and dark square editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingDark = !cc.editingDark
	cc.populateColorList()
}
