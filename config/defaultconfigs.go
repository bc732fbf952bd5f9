package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		Colors: ConfigColors{
			BoardColor:    180,
			LineColor:     94,
			GoatColor:     255,
			BaghColor:     208,
			CursorColorBG: 4,
			SelectedBG:    2,
			HistoryDim:    245,
		},
		Symbols: ConfigSymbols{
			GoatPiece: '●',
			BaghPiece: '▲',
			Junction:  '┼',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Server: ServerConfig{
			BaseURL:           "http://localhost:8000",
			DefaultMode:       "PvC",
			DefaultDifficulty: 3,
		},
	}
}
