package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"baghchal-tui/game"
	"baghchal-tui/pgn"
	"baghchal-tui/types"
)

// GameInfoPanel displays counters and the move record alongside the board.
type GameInfoPanel struct {
	box  *tview.TextView
	view game.View
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetView updates the panel with the current session state.
func (p *GameInfoPanel) SetView(v game.View) {
	p.view = v
	p.refresh()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	v := p.view
	if v.Viewed == nil {
		p.box.SetText("")
		return
	}
	snap := v.Viewed

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Mode:[-:-:-] %s (level %d)\n", v.Mode, v.Difficulty)
	text += fmt.Sprintf("[white]Goats placed:[-:-:-] %d/%d\n", snap.GoatsPlaced, types.GoatQuota)
	text += fmt.Sprintf("[white]Goats captured:[-:-:-] %d\n", snap.GoatsCaptured)
	text += fmt.Sprintf("[white]Baghs trapped:[-:-:-] %d\n", snap.BaghsTrapped)

	var moves []string
	if v.Live != nil {
		moves = pgn.ParseMoveList(v.Live.PGN)
	}
	if len(moves) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		// Show the window of moves around the viewed index.
		maxVisible := 12
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
			if v.ViewedIndex-1 < start {
				start = v.ViewedIndex - 1
			}
			if start < 0 {
				start = 0
			}
		}

		for i := start; i < len(moves) && i < start+maxVisible; i++ {
			marker := " "
			if i == v.ViewedIndex-1 {
				marker = "[yellow]>[-]"
			}
			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s\n", marker, i+1, moves[i])
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	if !v.AtLive() {
		text += fmt.Sprintf("\n[yellow]Viewing %d/%d[-]\n", v.ViewedIndex, v.TotalMoves)
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BaghBoardUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 3, 0, false)

	return mainFlex
}
