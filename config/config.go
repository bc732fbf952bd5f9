package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-multierror"
)

var (
	cfgFile = "baghchal-tui/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor    int `json:"board"`
	LineColor     int `json:"line"`
	GoatColor     int `json:"goat"`
	BaghColor     int `json:"bagh"`
	CursorColorBG int `json:"cursor_bg"`
	SelectedBG    int `json:"selected_bg"`
	HistoryDim    int `json:"history_dim"`
}

type ConfigSymbols struct {
	GoatPiece rune `json:"goat"`
	BaghPiece rune `json:"bagh"`
	Junction  rune `json:"junction"`
}

type Theme struct {
	Colors  ConfigColors  `json:"colors"`
	Symbols ConfigSymbols `json:"symbols"`
}

// ServerConfig holds connection and new-game defaults for the game server.
type ServerConfig struct {
	BaseURL           string `json:"base_url"`
	DefaultMode       string `json:"default_mode"`
	DefaultDifficulty int    `json:"default_difficulty"`
}

type Config struct {
	Theme  Theme        `json:"theme"`
	Server ServerConfig `json:"server"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		readCfgFile(absPath, &config)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate collects every violation rather than stopping at the first.
func (c *Config) Validate() error {
	var result *multierror.Error
	for _, r := range []rune{c.Theme.Symbols.GoatPiece, c.Theme.Symbols.BaghPiece, c.Theme.Symbols.Junction} {
		if r < 32 || (r >= 127 && r <= 159) {
			result = multierror.Append(result, &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"})
		}
	}
	if c.Server.BaseURL == "" {
		result = multierror.Append(result, &InvalidConfig{"server base_url must not be empty"})
	}
	if c.Server.DefaultDifficulty < 1 || c.Server.DefaultDifficulty > 6 {
		result = multierror.Append(result, &InvalidConfig{"default_difficulty must be between 1 and 6"})
	}
	return result.ErrorOrNil()
}

func (c *Config) Save() {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		panic(err)
	}
	saveCfgFile(absPath, c, 0664)
}

// HistoryDir is where saved game records live.
func HistoryDir() string {
	return filepath.Join(xdg.DataHome, "baghchal-tui", "history")
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		panic(err)
	}
	err = os.WriteFile(filePath, jsonData, perm)
	if err != nil {
		panic(err)
	}
}

func readCfgFile(filePath string, a interface{}) {
	configReader, err := os.ReadFile(filePath)
	if err == nil {
		err = json.Unmarshal(configReader, &a)
		if err != nil {
			panic(err)
		}
	}
}
