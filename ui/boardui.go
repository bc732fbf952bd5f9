// Package ui specifies custom controls for tview to assist in playing
// Bagh-Chal in the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"baghchal-tui/config"
	"baghchal-tui/game"
	"baghchal-tui/types"
)

// Style slice indexes.
const (
	styleBoard = iota
	styleLine
	styleGoat
	styleBagh
	styleCursorBG
	styleSelectedBG
	styleHistoryDim
)

// BaghBoardUI renders the 5x5 board from the session's viewed position and
// tracks the keyboard cursor. The piece selection itself lives in the session.
type BaghBoardUI struct {
	Box  *tview.Box
	sess *game.Session
	hint *tview.TextView
	cfg  *config.Config

	cursorX int // 0-indexed column
	cursorY int // 0-indexed row

	infoPanel *GameInfoPanel
	styles    []tcell.Color
}

func NewBaghBoard(c *config.Config, sess *game.Session, hint *tview.TextView) *BaghBoardUI {
	board := &BaghBoardUI{
		Box:     tview.NewBox(),
		sess:    sess,
		hint:    hint,
		cursorX: types.BoardSize / 2,
		cursorY: types.BoardSize / 2,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	return board
}

// CursorPos returns the cursor as a 1-indexed board position.
func (g *BaghBoardUI) CursorPos() types.BoardPos {
	return types.BoardPos{Row: g.cursorY + 1, Col: g.cursorX + 1}
}

// MoveCursor shifts the cursor, staying on the board.
func (g *BaghBoardUI) MoveCursor(h, v int) {
	if g.cursorX+h < 0 || g.cursorX+h >= types.BoardSize {
		return
	}
	if g.cursorY+v < 0 || g.cursorY+v >= types.BoardSize {
		return
	}
	g.cursorX += h
	g.cursorY += v
}

func (g *BaghBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),
		tcell.PaletteColor(c.Theme.Colors.LineColor),
		tcell.PaletteColor(c.Theme.Colors.GoatColor),
		tcell.PaletteColor(c.Theme.Colors.BaghColor),
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),
		tcell.PaletteColor(c.Theme.Colors.SelectedBG),
		tcell.PaletteColor(c.Theme.Colors.HistoryDim),
	}
	g.cfg = c
}

// draw renders the viewed snapshot. Pieces use the theme symbols; the cursor
// and the session's selected piece get background highlights, and the whole
// board dims while replaying history.
func (g *BaghBoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	v := g.sess.View()
	boardW, boardH := types.BoardSize*2, types.BoardSize

	for row := 1; row <= types.BoardSize; row++ {
		for col := 1; col <= types.BoardSize; col++ {
			occupant := v.Viewed.At(row, col)

			var drawRune rune
			var fg tcell.Color
			switch occupant {
			case types.Goat:
				drawRune = g.cfg.Theme.Symbols.GoatPiece
				fg = g.styles[styleGoat]
			case types.Bagh:
				drawRune = g.cfg.Theme.Symbols.BaghPiece
				fg = g.styles[styleBagh]
			default:
				drawRune = gridRune(row, col, g.cfg.Theme.Symbols.Junction)
				fg = g.styles[styleLine]
			}
			if !v.AtLive() {
				fg = g.styles[styleHistoryDim]
			}

			style := tcell.StyleDefault.Foreground(fg)
			pos := types.BoardPos{Row: row, Col: col}
			if col-1 == g.cursorX && row-1 == g.cursorY {
				style = style.Background(g.styles[styleCursorBG])
			} else if v.Selection != nil && *v.Selection == pos {
				style = style.Background(g.styles[styleSelectedBG])
			}

			hasPieceRight := col < types.BoardSize && v.Viewed.At(row, col+1) != types.Empty
			drawCell(screen, style, drawRune, col-1, row-1, x+4, y+1, occupant != types.Empty, hasPieceRight)
		}
	}
	g.drawCoordinates(screen, x, y)

	return x, y, boardW + 4, boardH + 2
}

// drawCell draws one 2-character cell: the junction or piece, then a line
// segment toward the next column unless a piece interrupts it.
func drawCell(s tcell.Screen, style tcell.Style, r rune, cx, cy, left, top int, hasPiece, hasPieceRight bool) {
	s.SetContent(left+cx*2, top+cy, r, nil, style)

	conn := '─'
	if cx == types.BoardSize-1 || hasPiece || hasPieceRight {
		conn = ' '
	}
	s.SetContent(left+cx*2+1, top+cy, conn, nil, style)
}

// gridRune picks the box-drawing character for an empty junction.
func gridRune(row, col int, inner rune) rune {
	isTop := row == 1
	isBottom := row == types.BoardSize
	isLeft := col == 1
	isRight := col == types.BoardSize

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return inner
	}
}

// drawCoordinates labels columns across the top and rows down the left side,
// 1-indexed to match move notation.
func (g *BaghBoardUI) drawCoordinates(screen tcell.Screen, x, y int) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[styleCursorBG])

	for col := 0; col < types.BoardSize; col++ {
		_style := style
		if col == g.cursorX {
			_style = highlight
		}
		screen.SetContent(x+4+col*2, y, rune('1'+col), nil, _style)
	}
	for row := 0; row < types.BoardSize; row++ {
		_style := style
		if row == g.cursorY {
			_style = highlight
		}
		screen.SetContent(x+2, y+1+row, rune('1'+row), nil, _style)
	}
}

// RefreshHint rebuilds the status bar and side panel from the session.
func (g *BaghBoardUI) RefreshHint() {
	v := g.sess.View()
	if g.infoPanel != nil {
		g.infoPanel.SetView(v)
	}

	var statusLine, turnLine, controlsLine string

	if v.Status != "" {
		statusLine = fmt.Sprintf("  %s\n", v.Status)
	}

	switch {
	case v.Viewed == nil:
		turnLine = "  No game in progress\n"
	case v.Viewed.GameOver:
		turnLine = fmt.Sprintf("  Game over — %s\n", winnerLabel(v.Viewed.Winner))
	case v.Busy:
		turnLine = "  ◌ Waiting for server...\n"
	case !v.AtLive():
		turnLine = fmt.Sprintf("  Viewing move %d/%d (history)\n", v.ViewedIndex, v.TotalMoves)
	case v.Viewed.PlacingPhase():
		turnLine = fmt.Sprintf("  ● Goats to place: %d\n", types.GoatQuota-v.Viewed.GoatsPlaced)
	case v.Viewed.Turn == types.Goat:
		turnLine = "  ● Goat to move\n"
	default:
		turnLine = "  ▲ Bagh to move\n"
	}

	controlsLine = "  ⏎ play  u undo  b engine  [ ] history  e live  s save  q back"

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

func winnerLabel(winner string) string {
	switch winner {
	case types.Goat:
		return "goats win"
	case types.Bagh:
		return "baghs win"
	case "":
		return "no winner"
	default:
		return winner
	}
}
