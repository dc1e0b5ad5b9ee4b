package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"chesshud/engine"
	"chesshud/replay"
	"chesshud/types"
)

var (
	cfgFile = "chesshud/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare   int `json:"light_square"`
	DarkSquare    int `json:"dark_square"`
	WhitePiece    int `json:"white_piece"`
	BlackPiece    int `json:"black_piece"`
	CursorColorBG int `json:"cursor_bg"`
	SelectedBG    int `json:"selected_bg"`
	HighlightBG   int `json:"highlight_bg"`
	PreviewBorder int `json:"preview_border"`
}

type Theme struct {
	UnicodePieces  bool         `json:"unicode_pieces"`
	ShowHighlights bool         `json:"show_highlights"`
	Colors         ConfigColors `json:"colors"`
}

// GameDefaults are the values the setup screen starts with.
type GameDefaults struct {
	Mode             string `json:"mode"`
	Timer            string `json:"timer"`
	WhiteName        string `json:"white_name"`
	BlackName        string `json:"black_name"`
	EngineColor      string `json:"engine_color"`
	EngineDelayMs    int    `json:"engine_delay_ms"`
	AutoplayInterval int    `json:"autoplay_interval_ms"`
	Bell             bool   `json:"bell"`
}

type LogConfig struct {
	Level string `json:"level"`
	// File overrides the default log location under the XDG state dir.
	File string `json:"file,omitempty"`
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameDefaults `json:"game"`
	Log   LogConfig    `json:"log"`
}

// InitConfig loads the user's config file, if any, over the defaults.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, nil
	}
	return Load(absPath)
}

// Load reads a config file over the defaults and validates it.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if _, err := c.GameConfig(); err != nil {
		return err
	}
	if c.Game.EngineDelayMs < 0 || c.Game.AutoplayInterval < 0 {
		return &InvalidConfig{"delays must not be negative"}
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	for _, n := range []string{c.Game.WhiteName, c.Game.BlackName} {
		if len([]rune(n)) > 24 {
			return &InvalidConfig{"player names are limited to 24 characters"}
		}
	}
	return nil
}

// GameConfig converts the defaults into a game configuration.
func (c *Config) GameConfig() (engine.GameConfig, error) {
	cfg := engine.DefaultConfig()
	mode, err := engine.ParseGameMode(c.Game.Mode)
	if err != nil {
		return cfg, &InvalidConfig{err.Error()}
	}
	timer, err := engine.ParseTimerPreset(c.Game.Timer)
	if err != nil {
		return cfg, &InvalidConfig{err.Error()}
	}
	cfg.Mode = mode
	cfg.Timer = timer
	cfg.WhiteName = c.Game.WhiteName
	cfg.BlackName = c.Game.BlackName
	switch strings.ToLower(c.Game.EngineColor) {
	case "", "black":
		cfg.EngineColor = types.Black
	case "white":
		cfg.EngineColor = types.White
	default:
		return cfg, &InvalidConfig{fmt.Sprintf("engine color must be white or black, got %q", c.Game.EngineColor)}
	}
	cfg.EngineDelay = time.Duration(c.Game.EngineDelayMs) * time.Millisecond
	return cfg, nil
}

// Remember stores g as the defaults for the next setup screen.
func (c *Config) Remember(g engine.GameConfig) {
	c.Game.Mode = g.Mode.String()
	c.Game.Timer = g.Timer.String()
	c.Game.WhiteName = g.WhiteName
	c.Game.BlackName = g.BlackName
	c.Game.EngineColor = g.EngineColor.String()
}

// ReplayInterval is the autoplay period, falling back to the default.
func (c *Config) ReplayInterval() time.Duration {
	if c.Game.AutoplayInterval <= 0 {
		return replay.DefaultInterval
	}
	return time.Duration(c.Game.AutoplayInterval) * time.Millisecond
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
