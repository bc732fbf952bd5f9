package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"baghchal-tui/config"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form *tview.Form
	flex *tview.Flex

	mode       string
	difficulty int
	serverURL  string
}

// NewGameSetup creates a new game setup form. onStart receives the chosen
// mode, engine difficulty and server base URL.
func NewGameSetup(cfg *config.Config, onStart func(mode string, difficulty int, serverURL string), onLoad func(), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		mode:       cfg.Server.DefaultMode,
		difficulty: cfg.Server.DefaultDifficulty,
		serverURL:  cfg.Server.BaseURL,
	}

	modes := []string{"PvC", "PvP", "CvC"}
	modeLabels := []string{"Player vs Computer", "Player vs Player", "Computer vs Computer"}
	levels := []string{"1 (easiest)", "2", "3", "4", "5", "6 (hardest)"}

	modeIndex := 0
	for i, m := range modes {
		if m == setup.mode {
			modeIndex = i
		}
	}
	levelIndex := setup.difficulty - 1
	if levelIndex < 0 || levelIndex >= len(levels) {
		levelIndex = 2
	}

	form := tview.NewForm()

	form.AddDropDown("Mode", modeLabels, modeIndex, func(option string, index int) {
		if index >= 0 && index < len(modes) {
			setup.mode = modes[index]
		}
	})

	form.AddDropDown("Engine Strength", levels, levelIndex, func(option string, index int) {
		setup.difficulty = index + 1
	})

	form.AddInputField("Server", setup.serverURL, 32, nil, func(text string) {
		setup.serverURL = strings.TrimSpace(text)
	})

	form.AddButton("Start Game", func() {
		onStart(setup.mode, setup.difficulty, setup.serverURL)
	})

	form.AddButton("Load Game", func() {
		if onLoad != nil {
			onLoad()
		}
	})

	form.AddButton("Board Colors", func() {
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
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// ServerURL returns the currently entered server URL.
func (s *GameSetupUI) ServerURL() string {
	return s.serverURL
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
