package config

import (
	"time"

	"chesshud/replay"
)

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		UnicodePieces:  true,
		ShowHighlights: true,
		Colors: ConfigColors{
			LightSquare:   180,
			DarkSquare:    94,
			WhitePiece:    255,
			BlackPiece:    232,
			CursorColorBG: 4,
			SelectedBG:    2,
			HighlightBG:   143,
			PreviewBorder: 214,
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameDefaults{
			Mode:             "players",
			Timer:            "blitz",
			WhiteName:        "White",
			BlackName:        "Black",
			EngineColor:      "black",
			EngineDelayMs:    180,
			AutoplayInterval: int(replay.DefaultInterval / time.Millisecond),
			Bell:             true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
