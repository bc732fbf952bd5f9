package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"baghchal-tui/config"
	"baghchal-tui/types"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	target int // which theme color is being edited
}

// Editable theme targets, cycled with Tab.
const (
	targetLine = iota
	targetGoat
	targetBagh
	targetCount
)

var targetNames = []string{"Lines", "Goats", "Baghs"}

// Palette entries offered for each target.
var paletteChoices = []struct {
	code int
	name string
}{
	{94, "Saddle Brown"},
	{136, "Dark Brown"},
	{172, "Brown"},
	{180, "Tan"},
	{208, "Dark Orange"},
	{214, "Orange Gold"},
	{220, "Bright Yellow"},
	{255, "White"},
	{250, "Gray"},
	{244, "Dark Gray"},
	{109, "Blue"},
	{71, "Green"},
	{160, "Red"},
}

// NewColorConfig creates the color configuration screen. Changes apply to cfg
// immediately and are persisted when the screen closes.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:    cfg,
		onDone: onDone,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.colorList.SetHighlightFullLine(true)
	cc.colorList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))

	for _, choice := range paletteChoices {
		cc.colorList.AddItem(choice.name, "", 0, nil)
	}
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.applyChoice(index)
	})
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.applyChoice(index)
		cfg.Save()
		if cc.onDone != nil {
			cc.onDone()
		}
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	hint := tview.NewTextView()
	hint.SetDynamicColors(true)
	hint.SetText("  [dimgray]Tab[-] switch target  [dimgray]⏎[-] apply  [dimgray]q[-] back")

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	cc.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hint, 1, 0, false)

	cc.updateTitle()
	return cc
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// ToggleMode cycles which theme color the list edits.
func (cc *ColorConfigUI) ToggleMode() {
	cc.target = (cc.target + 1) % targetCount
	cc.updateTitle()
}

// SetInputCapture sets the input capture function for the list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

func (cc *ColorConfigUI) updateTitle() {
	cc.colorList.SetTitle(fmt.Sprintf(" %s Color ", targetNames[cc.target]))
}

func (cc *ColorConfigUI) applyChoice(index int) {
	if index < 0 || index >= len(paletteChoices) {
		return
	}
	code := paletteChoices[index].code
	switch cc.target {
	case targetLine:
		cc.cfg.Theme.Colors.LineColor = code
	case targetGoat:
		cc.cfg.Theme.Colors.GoatColor = code
	case targetBagh:
		cc.cfg.Theme.Colors.BaghColor = code
	}
}

// drawPreview renders a small sample board with the current theme.
func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	lineStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.LineColor))
	goatStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.GoatColor))
	baghStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.BaghColor))

	// Sample position: baghs in the corners, a few goats placed.
	sample := [types.BoardSize][types.BoardSize]string{}
	sample[0][0], sample[0][4], sample[4][0], sample[4][4] = types.Bagh, types.Bagh, types.Bagh, types.Bagh
	sample[2][1], sample[2][2], sample[1][3] = types.Goat, types.Goat, types.Goat

	startX := x + 3
	startY := y + 2
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			var ch rune
			style := lineStyle
			switch sample[row][col] {
			case types.Goat:
				ch = cc.cfg.Theme.Symbols.GoatPiece
				style = goatStyle
			case types.Bagh:
				ch = cc.cfg.Theme.Symbols.BaghPiece
				style = baghStyle
			default:
				ch = gridRune(row+1, col+1, cc.cfg.Theme.Symbols.Junction)
			}
			screen.SetContent(startX+col*2, startY+row, ch, nil, style)
			if col < types.BoardSize-1 && sample[row][col] == types.Empty && sample[row][col+1] == types.Empty {
				screen.SetContent(startX+col*2+1, startY+row, '─', nil, lineStyle)
			}
		}
	}

	return x, y, width, height
}
