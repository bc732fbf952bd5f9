// baghchal-tui is a terminal client for playing Bagh-Chal against a remote
// engine server.
package main

import (
	"flag"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"baghchal-tui/api"
	"baghchal-tui/config"
	"baghchal-tui/game"
	"baghchal-tui/pgn"
	"baghchal-tui/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagServer     = flag.String("server", "", "Game server base URL")
	flagMode       = flag.String("mode", "", "Game mode (PvC, PvP or CvC)")
	flagDifficulty = flag.Int("difficulty", 0, "Engine difficulty (1-6)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BaghBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var historyUI *ui.HistoryBrowserUI
var cfg *config.Config
var client *api.Client
var sess *game.Session

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("baghchal-tui %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		panic(err)
	}

	// Flag overrides
	if *flagServer != "" {
		cfg.Server.BaseURL = *flagServer
	}
	if *flagMode == "PvC" || *flagMode == "PvP" || *flagMode == "CvC" {
		cfg.Server.DefaultMode = *flagMode
	}
	if *flagDifficulty >= 1 && *flagDifficulty <= 6 {
		cfg.Server.DefaultDifficulty = *flagDifficulty
	}

	client = api.NewClient(cfg.Server.BaseURL)
	sess = game.NewSession(client)

	quickStart := *flagQuickStart || *flagServer != "" || *flagMode != "" || *flagDifficulty > 0

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ᨁ baghchal ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBaghBoard(cfg, sess, gameHint)
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Redraw whenever the session mutates. The goroutine avoids deadlocking
	// when a mutation happens on the event loop itself.
	sess.OnChange(func() {
		go app.QueueUpdateDraw(gameBoard.RefreshHint)
	})

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if sess.View().Selection != nil {
				sess.ClearSelection()
			} else {
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveCursor(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveCursor(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveCursor(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveCursor(1, 0)
		case tcell.KeyEnter:
			pos := gameBoard.CursorPos()
			go sess.HandleClick(pos)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveCursor(-1, 0)
			case 'j':
				gameBoard.MoveCursor(0, 1)
			case 'k':
				gameBoard.MoveCursor(0, -1)
			case 'l':
				gameBoard.MoveCursor(1, 0)
			case 'u':
				go sess.Undo()
			case 'b':
				go sess.EngineMove()
			case '[':
				go sess.SeekRelative(-1)
			case ']':
				go sess.SeekRelative(1)
			case 'e':
				go sess.SeekLive()
			case 's':
				go func() {
					sess.SaveRecord(config.HistoryDir())
				}()
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg,
		func(mode string, difficulty int, serverURL string) {
			if serverURL != "" {
				cfg.Server.BaseURL = serverURL
				client.BaseURL = serverURL
			}
			startGame(mode, difficulty)
		},
		func() {
			historyUI.Refresh()
			rootPage.SwitchToPage("history")
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Saved game browser
	historyUI = ui.NewHistoryBrowser(
		func(info pgn.GameInfo) {
			loadGame(info)
		},
		func() {
			rootPage.SwitchToPage("setup")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			gameBoard.SetConfig(cfg)
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", setupUI.Form(), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("history", historyUI.Flex(), true, false)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(cfg.Server.DefaultMode, cfg.Server.DefaultDifficulty)
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
}

// startGame creates a new server-side game and switches to the board.
func startGame(mode string, difficulty int) {
	rootPage.SwitchToPage("gameview")
	gameBoard.RefreshHint()
	go func() {
		if err := sess.NewGame(mode, difficulty); err != nil {
			showError(fmt.Sprintf("Failed to start game:\n%s", err.Error()))
		}
	}()
}

// loadGame creates a server-side game from a saved record.
func loadGame(info pgn.GameInfo) {
	rootPage.SwitchToPage("gameview")
	gameBoard.RefreshHint()
	go func() {
		if err := sess.LoadGame(info.PGN, info.Mode, info.Difficulty); err != nil {
			showError(fmt.Sprintf("Failed to load game:\n%s", err.Error()))
		}
	}()
}

// showError pops a modal over the current page. Safe to call off the event
// loop.
func showError(text string) {
	go app.QueueUpdateDraw(func() {
		modal := tview.NewModal().
			SetText(text).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
				rootPage.SwitchToPage("setup")
			})
		rootPage.AddPage("error", modal, true, true)
	})
}
