package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette shared by the setup and color screens.
var MenuColors = struct {
	Border     tcell.Color
	Title      tcell.Color
	Accent     tcell.Color // list shortcuts
	Label      tcell.Color
	Hint       tcell.Color
	Selected   tcell.Color // highlighted list row
	FieldBG    tcell.Color
	ButtonBG   tcell.Color
	ButtonText tcell.Color
}{
	Border:     tcell.PaletteColor(60),
	Title:      tcell.PaletteColor(255),
	Accent:     tcell.PaletteColor(109),
	Label:      tcell.PaletteColor(250),
	Hint:       tcell.PaletteColor(245),
	Selected:   tcell.PaletteColor(109),
	FieldBG:    tcell.PaletteColor(236),
	ButtonBG:   tcell.PaletteColor(60),
	ButtonText: tcell.PaletteColor(255),
}
