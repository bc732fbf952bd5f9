package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"baghchal-tui/config"
	"baghchal-tui/pgn"
)

// HistoryBrowserUI provides a screen for browsing saved game records.
// Selecting a record hands its move text to the load-game path.
type HistoryBrowserUI struct {
	flex     *tview.Flex
	gameList *tview.List
	preview  *tview.TextView
	hint     *tview.TextView
	games    []pgn.GameInfo
	selected int
	onLoad   func(pgn.GameInfo)
	onDone   func()
}

// NewHistoryBrowser creates a new history browser screen.
func NewHistoryBrowser(onLoad func(pgn.GameInfo), onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		onLoad: onLoad,
		onDone: onDone,
	}

	hb.gameList = tview.NewList()
	hb.gameList.SetBorder(true)
	hb.gameList.SetTitle(" Saved Games ")
	hb.gameList.ShowSecondaryText(false)
	hb.gameList.SetHighlightFullLine(true)
	hb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	hb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))

	hb.preview = tview.NewTextView()
	hb.preview.SetDynamicColors(true)
	hb.preview.SetBorder(true)
	hb.preview.SetTitle(" Preview ")

	hb.hint = tview.NewTextView()
	hb.hint.SetDynamicColors(true)
	hb.hint.SetBorder(false)
	hb.hint.SetText("  [dimgray]⏎[-] load  [dimgray]d[-] delete  [dimgray]q[-] back")

	hb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.selected = index
		hb.refreshPreview()
	})
	hb.gameList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.loadSelected()
	})

	hb.gameList.SetInputCapture(hb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(hb.gameList, 38, 0, true).
		AddItem(hb.preview, 0, 1, false)

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hb.hint, 1, 0, false)

	hb.loadGames()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the game list from disk.
func (hb *HistoryBrowserUI) Refresh() {
	hb.loadGames()
}

// loadGames scans the history directory for saved records.
func (hb *HistoryBrowserUI) loadGames() {
	hb.gameList.Clear()
	hb.games = nil
	hb.selected = 0

	games, err := pgn.ListGames(config.HistoryDir())
	if err != nil || len(games) == 0 {
		hb.gameList.AddItem("[dimgray]No games found[-]", "", 0, nil)
		hb.preview.SetText("")
		return
	}

	hb.games = games
	for _, g := range games {
		result := resultLabel(g.Result)
		label := fmt.Sprintf("%s  %s  %s", g.Date, g.Mode, result)
		hb.gameList.AddItem(label, "", 0, nil)
	}
	hb.refreshPreview()
}

// handleInput processes keyboard input for the history browser.
func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if hb.onDone != nil {
				hb.onDone()
			}
			return nil
		case 'd':
			hb.deleteSelected()
			return nil
		}
	}
	return event
}

// loadSelected hands the selected record to the load callback.
func (hb *HistoryBrowserUI) loadSelected() {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return
	}
	if hb.onLoad != nil {
		hb.onLoad(hb.games[hb.selected])
	}
}

// deleteSelected removes the currently selected record file.
func (hb *HistoryBrowserUI) deleteSelected() {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return
	}

	game := hb.games[hb.selected]
	os.Remove(game.FilePath)
	hb.loadGames()
}

// refreshPreview shows the metadata and the opening of the selected record.
func (hb *HistoryBrowserUI) refreshPreview() {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		hb.preview.SetText("")
		return
	}
	game := hb.games[hb.selected]

	var text string
	text += fmt.Sprintf("[white]Date:[-]    %s\n", game.Date)
	text += fmt.Sprintf("[white]Mode:[-]    %s (level %d)\n", game.Mode, game.Difficulty)
	text += fmt.Sprintf("[white]Moves:[-]   %d\n", game.MoveCount)
	text += fmt.Sprintf("[white]Result:[-]  %s\n", resultLabel(game.Result))

	tokens := pgn.ParseMoveList(game.PGN)
	if len(tokens) > 0 {
		shown := tokens
		if len(shown) > 16 {
			shown = shown[:16]
		}
		text += fmt.Sprintf("\n[dimgray]%s", strings.Join(shown, " "))
		if len(tokens) > len(shown) {
			text += " ···"
		}
		text += "[-]\n"
	}

	hb.preview.SetText(text)
}

func resultLabel(result string) string {
	switch result {
	case "G":
		return "Goats won"
	case "B":
		return "Baghs won"
	case "":
		return "Unfinished"
	default:
		return result
	}
}
